// ABOUTME: Dialog Controller state machine for create-or-edit record forms
// ABOUTME: Validates the typed draft before writing through a Sink and closing

package dialog

import (
	"context"
	"errors"
	"fmt"

	"github.com/2389/tymex-console/internal/records"
	"github.com/2389/tymex-console/internal/schema"
)

// ErrClosed is returned when a field change or submit arrives while no
// dialog is open.
var ErrClosed = errors.New("dialog is closed")

// Mode is the controller state.
type Mode int

const (
	ModeClosed Mode = iota
	ModeCreating
	ModeEditing
)

func (m Mode) String() string {
	switch m {
	case ModeClosed:
		return "closed"
	case ModeCreating:
		return "creating"
	case ModeEditing:
		return "editing"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// Sink receives validated drafts.
type Sink[T any] interface {
	Create(ctx context.Context, draft T) (T, error)
	Update(ctx context.Context, id string, draft T) (T, error)
}

// Controller owns the draft of one dialog.
type Controller[T records.Keyed[T]] struct {
	schema *schema.Schema[T]
	sink   Sink[T]

	mode   Mode
	target string
	draft  T
	errs   *records.ValidationError
}

// New creates a closed controller.
func New[T records.Keyed[T]](s *schema.Schema[T], sink Sink[T]) *Controller[T] {
	return &Controller[T]{schema: s, sink: sink}
}

// OpenCreate opens the dialog for a new record seeded with defaults.
// Any previous draft is discarded.
func (c *Controller[T]) OpenCreate(defaults T) {
	c.mode = ModeCreating
	c.target = ""
	c.draft = defaults
	c.errs = nil
}

// OpenEdit opens the dialog on a copy of rec. Any previous draft is discarded.
func (c *Controller[T]) OpenEdit(rec T) {
	c.mode = ModeEditing
	c.target = rec.Key()
	c.draft = rec
	c.errs = nil
}

// SetField updates one field of the draft without validating it.
func (c *Controller[T]) SetField(name, value string) error {
	if c.mode == ModeClosed {
		return ErrClosed
	}
	f, err := c.schema.Field(name)
	if err != nil {
		return err
	}
	if c.mode == ModeEditing && f.ReadOnlyOnEdit {
		return fmt.Errorf("%w: %s", schema.ErrReadOnly, name)
	}
	f.Set(&c.draft, value)
	return nil
}

// Submit validates the draft and writes it through the sink.
//
// A validation failure leaves the dialog open with the draft intact and
// returns a *records.ValidationError; the sink may reject a draft the same
// way. records.ErrNotFound from the sink closes the dialog, since the
// record being edited no longer exists.
func (c *Controller[T]) Submit(ctx context.Context) (T, error) {
	var zero T
	if c.mode == ModeClosed {
		return zero, ErrClosed
	}

	if err := c.schema.Validate(c.draft); err != nil {
		errors.As(err, &c.errs)
		return zero, err
	}
	c.errs = nil

	var (
		rec T
		err error
	)
	if c.mode == ModeCreating {
		rec, err = c.sink.Create(ctx, c.draft)
	} else {
		rec, err = c.sink.Update(ctx, c.target, c.draft)
	}
	if err != nil {
		switch {
		case errors.Is(err, records.ErrNotFound):
			c.close()
		default:
			errors.As(err, &c.errs)
		}
		return zero, err
	}

	c.close()
	return rec, nil
}

// Cancel closes the dialog and discards the draft.
func (c *Controller[T]) Cancel() {
	c.close()
}

func (c *Controller[T]) close() {
	var zero T
	c.mode = ModeClosed
	c.target = ""
	c.draft = zero
	c.errs = nil
}

// Mode returns the current state.
func (c *Controller[T]) Mode() Mode { return c.mode }

// Open reports whether the dialog is showing.
func (c *Controller[T]) Open() bool { return c.mode != ModeClosed }

// Target returns the id being edited, or "" when creating or closed.
func (c *Controller[T]) Target() string { return c.target }

// Draft returns the working copy.
func (c *Controller[T]) Draft() T { return c.draft }

// Errors returns the field errors from the last failed submit, or nil.
func (c *Controller[T]) Errors() *records.ValidationError { return c.errs }
