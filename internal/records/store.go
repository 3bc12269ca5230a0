// ABOUTME: Generic ordered in-memory record store with store-assigned immutable ids
// ABOUTME: Exposes create/update/apply/delete and a version counter for filter memoisation

package records

import "github.com/google/uuid"

// Keyed is implemented by every record type held in a Store.
// WithKey returns a copy of the record carrying the given id.
type Keyed[T any] interface {
	Key() string
	WithKey(id string) T
}

// Option configures a Store.
type Option func(*options)

type options struct {
	newID func() string
}

// WithIDGenerator overrides the id generator. The generator must not
// repeat ids that are in use for the lifetime of the store.
func WithIDGenerator(fn func() string) Option {
	return func(o *options) { o.newID = fn }
}

// Store is an ordered collection of records of type T.
type Store[T Keyed[T]] struct {
	items   []T
	newID   func() string
	version uint64
}

// NewStore creates a store seeded with the given records. Seed ids are kept
// as-is; ids generated later never collide with them.
func NewStore[T Keyed[T]](seed []T, opts ...Option) *Store[T] {
	o := options{newID: uuid.NewString}
	for _, opt := range opts {
		opt(&o)
	}

	items := make([]T, len(seed))
	copy(items, seed)

	return &Store[T]{
		items: items,
		newID: o.newID,
	}
}

// Create assigns a fresh id to draft, appends it and returns the stored record.
// Any id already present on the draft is discarded.
func (s *Store[T]) Create(draft T) T {
	id := s.newID()
	for s.indexOf(id) >= 0 {
		id = s.newID()
	}

	rec := draft.WithKey(id)
	s.items = append(s.items, rec)
	s.version++
	return rec
}

// Update replaces the record with the given id, keeping its position.
// The patch's own id is ignored so ids never change after creation.
func (s *Store[T]) Update(id string, patch T) (T, error) {
	i := s.indexOf(id)
	if i < 0 {
		var zero T
		return zero, ErrNotFound
	}

	rec := patch.WithKey(id)
	s.items[i] = rec
	s.version++
	return rec, nil
}

// Apply replaces the record with the given id by fn's result.
func (s *Store[T]) Apply(id string, fn func(T) T) (T, error) {
	i := s.indexOf(id)
	if i < 0 {
		var zero T
		return zero, ErrNotFound
	}

	rec := fn(s.items[i]).WithKey(id)
	s.items[i] = rec
	s.version++
	return rec, nil
}

// Delete removes the record with the given id.
func (s *Store[T]) Delete(id string) error {
	i := s.indexOf(id)
	if i < 0 {
		return ErrNotFound
	}

	s.items = append(s.items[:i:i], s.items[i+1:]...)
	s.version++
	return nil
}

// Get returns the record with the given id.
func (s *Store[T]) Get(id string) (T, error) {
	i := s.indexOf(id)
	if i < 0 {
		var zero T
		return zero, ErrNotFound
	}
	return s.items[i], nil
}

// All returns a copy of every record in insertion order.
func (s *Store[T]) All() []T {
	cp := make([]T, len(s.items))
	copy(cp, s.items)
	return cp
}

// Len returns the number of records.
func (s *Store[T]) Len() int { return len(s.items) }

// Version increases on every committed mutation.
func (s *Store[T]) Version() uint64 { return s.version }

func (s *Store[T]) indexOf(id string) int {
	for i, it := range s.items {
		if it.Key() == id {
			return i
		}
	}
	return -1
}
