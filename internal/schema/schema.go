// ABOUTME: Parametric field schema shared by every CRUD screen
// ABOUTME: Typed accessors, draft defaults, validation and the filter matcher derive from it

package schema

import (
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"github.com/2389/tymex-console/internal/records"
)

var (
	// ErrUnknownField is returned when a field name is not part of a schema.
	ErrUnknownField = errors.New("unknown field")

	// ErrReadOnly is returned when a field cannot change in the current mode.
	ErrReadOnly = errors.New("field is read-only")
)

// Kind selects the input control and the validation rule for a field.
type Kind int

const (
	KindText Kind = iota
	KindEmail
	KindEnum
	KindAgent
)

func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindEmail:
		return "email"
	case KindEnum:
		return "enum"
	case KindAgent:
		return "agent"
	default:
		return "unknown"
	}
}

// Field describes one editable attribute of T.
type Field[T any] struct {
	Name        string
	Label       string
	Placeholder string
	Kind        Kind
	Options     OptionSet
	Default     string
	Required    bool
	Searchable  bool

	// HideOnCreate keeps the field out of the create form; its value comes
	// from Default or the screen's create hook instead.
	HideOnCreate bool

	// ReadOnlyOnEdit freezes the field once the record exists.
	ReadOnlyOnEdit bool

	Get func(T) string
	Set func(*T, string)

	// Check is an extra rule run after the kind-specific checks pass.
	// It returns a message, or "" when the value is acceptable.
	Check func(string) string
}

// Schema is the ordered field list for a record type.
type Schema[T any] struct {
	// Entity is the singular display name, e.g. "Channel Permission".
	Entity string
	Fields []Field[T]

	// Category names the field compared against the categorical filter.
	// Empty means the screen has no categorical filter.
	Category string
}

// Field returns the named field.
func (s *Schema[T]) Field(name string) (*Field[T], error) {
	for i := range s.Fields {
		if s.Fields[i].Name == name {
			return &s.Fields[i], nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownField, name)
}

// Set writes value into the named field of rec. No validation happens here.
func (s *Schema[T]) Set(rec *T, name, value string) error {
	f, err := s.Field(name)
	if err != nil {
		return err
	}
	f.Set(rec, value)
	return nil
}

// Draft returns a record populated with field defaults. Agent fields take
// agent, which is expected to be the first selectable agent.
func (s *Schema[T]) Draft(agent string) T {
	var rec T
	for _, f := range s.Fields {
		switch {
		case f.Kind == KindAgent:
			f.Set(&rec, agent)
		case f.Default != "":
			f.Set(&rec, f.Default)
		}
	}
	return rec
}

// Validate checks every field of rec. The returned error is a
// *records.ValidationError listing each failing field, or nil.
func (s *Schema[T]) Validate(rec T) error {
	verr := &records.ValidationError{}
	for _, f := range s.Fields {
		if msg := f.validate(f.Get(rec)); msg != "" {
			verr.Add(f.Name, msg)
		}
	}
	return verr.Err()
}

func (f Field[T]) validate(value string) string {
	trimmed := strings.TrimSpace(value)
	switch f.Kind {
	case KindEnum:
		if !f.Options.Contains(value) {
			return "must be one of: " + strings.Join(f.Options.Values(), ", ")
		}
	case KindAgent:
		if trimmed == "" {
			return "select an agent"
		}
	case KindEmail:
		if trimmed == "" {
			if f.Required {
				return "is required"
			}
			return ""
		}
		addr, err := mail.ParseAddress(trimmed)
		if err != nil || addr.Address != trimmed {
			return "must be a valid email address"
		}
	default:
		if f.Required && trimmed == "" {
			return "is required"
		}
	}

	if f.Check != nil {
		return f.Check(value)
	}
	return ""
}

// Matcher builds the filter matcher from the searchable fields and the
// category field.
func (s *Schema[T]) Matcher() records.Matcher[T] {
	var m records.Matcher[T]
	for _, f := range s.Fields {
		if f.Searchable {
			m.Search = append(m.Search, f.Get)
		}
		if s.Category != "" && f.Name == s.Category {
			m.Category = f.Get
		}
	}
	return m
}

// Visible returns the fields shown in the dialog for the given mode.
func (s *Schema[T]) Visible(creating bool) []Field[T] {
	out := make([]Field[T], 0, len(s.Fields))
	for _, f := range s.Fields {
		if creating && f.HideOnCreate {
			continue
		}
		out = append(out, f)
	}
	return out
}

// PrefixRule returns a Check requiring non-blank values to start with prefix.
func PrefixRule(prefix string) func(string) string {
	return func(v string) string {
		v = strings.TrimSpace(v)
		if v != "" && !strings.HasPrefix(v, prefix) {
			return "must start with " + prefix
		}
		return ""
	}
}
