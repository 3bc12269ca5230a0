// ABOUTME: Filter Engine: stable text and category filtering over records
// ABOUTME: View memoises the filtered rows for the last (version, search, category) triple

package records

import "strings"

// AllCategories is the reserved category value that matches every record.
const AllCategories = "__ALL_AGENTS__"

// Query is the user-controlled filter input for one screen.
type Query struct {
	Search   string
	Category string
}

// MatchesAllCategories reports whether the category filter passes everything.
// An empty category is treated like AllCategories.
func (q Query) MatchesAllCategories() bool {
	return q.Category == "" || q.Category == AllCategories
}

// Matcher names the fields a filter inspects.
type Matcher[T any] struct {
	// Search fields are OR-ed together; a case-insensitive substring
	// match on any of them passes the text test.
	Search []func(T) string

	// Category returns the value compared exactly against Query.Category.
	// Nil means the screen has no categorical filter.
	Category func(T) string
}

// Match reports whether rec passes q.
func (m Matcher[T]) Match(rec T, q Query) bool {
	return m.matchCategory(rec, q) && m.matchText(rec, strings.ToLower(q.Search))
}

func (m Matcher[T]) matchCategory(rec T, q Query) bool {
	if m.Category == nil || q.MatchesAllCategories() {
		return true
	}
	return m.Category(rec) == q.Category
}

func (m Matcher[T]) matchText(rec T, needle string) bool {
	if needle == "" || len(m.Search) == 0 {
		return true
	}
	for _, field := range m.Search {
		if strings.Contains(strings.ToLower(field(rec)), needle) {
			return true
		}
	}
	return false
}

// Filter returns the records passing q, preserving their relative order.
func Filter[T any](items []T, m Matcher[T], q Query) []T {
	out := make([]T, 0, len(items))
	for _, it := range items {
		if m.Match(it, q) {
			out = append(out, it)
		}
	}
	return out
}

// View caches the filtered rows of a Store for the last input triple.
type View[T Keyed[T]] struct {
	matcher Matcher[T]

	valid   bool
	version uint64
	query   Query
	rows    []T
}

// NewView creates a View using the given matcher.
func NewView[T Keyed[T]](m Matcher[T]) *View[T] {
	return &View[T]{matcher: m}
}

// Rows returns the filtered records of s for q, recomputing only when the
// store has changed or the query differs from the previous call.
func (v *View[T]) Rows(s *Store[T], q Query) []T {
	if v.valid && v.version == s.Version() && v.query == q {
		return v.rows
	}

	v.rows = Filter(s.All(), v.matcher, q)
	v.version = s.Version()
	v.query = q
	v.valid = true
	return v.rows
}
