// ABOUTME: Generic record screen wiring store, filter view, dialog and table together
// ABOUTME: One implementation serves every permission and user table

package screens

import (
	"context"
	"errors"

	"github.com/2389/tymex-console/internal/agents"
	"github.com/2389/tymex-console/internal/dialog"
	"github.com/2389/tymex-console/internal/records"
	"github.com/2389/tymex-console/internal/schema"
	"github.com/2389/tymex-console/internal/table"
)

type dialogText struct {
	createTitle       string
	editTitle         string
	createDescription string
	editDescription   string
}

type deactivation[T any] struct {
	done  func(T) bool
	apply func(T) T
}

// entity configures a record screen for one record type.
type entity[T records.Keyed[T]] struct {
	nav         Navigation
	header      Header
	dialog      dialogText
	searchHint  string
	createLabel string
	schema      *schema.Schema[T]
	columns     []table.Column[T]
	actions     func(T) []table.Action
	agents      agents.Directory
	onCreate    func(T) T
	checkUpdate func(prev, next T) error
	deactivate  *deactivation[T]
}

type recordScreen[T records.Keyed[T]] struct {
	def      *entity[T]
	store    *records.Store[T]
	view     *records.View[T]
	dialog   *dialog.Controller[T]
	query    records.Query
	observer Observer
}

func mount[T records.Keyed[T]](def *entity[T], seed []T, obs Observer, opts ...records.Option) *recordScreen[T] {
	s := &recordScreen[T]{
		def:      def,
		store:    records.NewStore(seed, opts...),
		view:     records.NewView(def.schema.Matcher()),
		query:    records.Query{Category: records.AllCategories},
		observer: obs,
	}
	s.dialog = dialog.New(def.schema, storeSink[T]{s})
	return s
}

func (s *recordScreen[T]) Nav() Navigation           { return s.def.nav }
func (s *recordScreen[T]) Header() Header            { return s.def.header }
func (s *recordScreen[T]) Query() records.Query      { return s.query }
func (s *recordScreen[T]) SetQuery(q records.Query)  { s.query = q }
func (s *recordScreen[T]) SearchPlaceholder() string { return s.def.searchHint }
func (s *recordScreen[T]) CreateLabel() string       { return s.def.createLabel }

func (s *recordScreen[T]) Categories() []CategoryOption {
	if s.def.schema.Category == "" {
		return nil
	}
	out := []CategoryOption{{Value: records.AllCategories, Label: "All Agents"}}
	for _, a := range s.def.agents.Selectable() {
		out = append(out, CategoryOption{Value: a.Name, Label: a.Name})
	}
	return out
}

func (s *recordScreen[T]) Table() table.Table {
	return table.Build(s.view.Rows(s.store, s.query), s.def.columns, s.def.actions)
}

func (s *recordScreen[T]) OpenCreate() {
	s.dialog.OpenCreate(s.def.schema.Draft(s.def.agents.FirstSelectable()))
}

func (s *recordScreen[T]) OpenEdit(id string) error {
	rec, err := s.store.Get(id)
	if err != nil {
		return err
	}
	s.dialog.OpenEdit(rec)
	return nil
}

func (s *recordScreen[T]) SetField(name, value string) error {
	return s.dialog.SetField(name, value)
}

func (s *recordScreen[T]) Submit(ctx context.Context) error {
	_, err := s.dialog.Submit(ctx)
	var verr *records.ValidationError
	if errors.As(err, &verr) {
		s.observer.Rejected(ctx, s.def.nav, verr)
	}
	return err
}

func (s *recordScreen[T]) Cancel() { s.dialog.Cancel() }

// Delete removes a record. Screens whose records deactivate never delete.
func (s *recordScreen[T]) Delete(ctx context.Context, id string) error {
	if s.def.deactivate != nil {
		return ErrUnsupported
	}
	rec, err := s.store.Get(id)
	if err != nil {
		return err
	}
	if err := s.store.Delete(id); err != nil {
		return err
	}
	s.notify(ctx, MutationDelete, rec)
	return nil
}

func (s *recordScreen[T]) Deactivate(ctx context.Context, id string) error {
	d := s.def.deactivate
	if d == nil {
		return ErrUnsupported
	}
	rec, err := s.store.Get(id)
	if err != nil {
		return err
	}
	if d.done(rec) {
		return nil
	}
	rec, err = s.store.Apply(id, d.apply)
	if err != nil {
		return err
	}
	s.notify(ctx, MutationDeactivate, rec)
	return nil
}

func (s *recordScreen[T]) Dialog() DialogView {
	if !s.dialog.Open() {
		return DialogView{}
	}

	creating := s.dialog.Mode() == dialog.ModeCreating
	v := DialogView{
		Open:        true,
		Creating:    creating,
		TargetID:    s.dialog.Target(),
		Title:       s.def.dialog.editTitle,
		Description: s.def.dialog.editDescription,
		SubmitLabel: "Save Changes",
	}
	if creating {
		v.Title = s.def.dialog.createTitle
		v.Description = s.def.dialog.createDescription
		v.SubmitLabel = "Create"
	}

	draft := s.dialog.Draft()
	errs := s.dialog.Errors()
	for _, f := range s.def.schema.Visible(creating) {
		value := f.Get(draft)
		v.Fields = append(v.Fields, FieldView{
			Name:        f.Name,
			Label:       f.Label,
			Placeholder: f.Placeholder,
			Kind:        f.Kind.String(),
			Value:       value,
			Options:     s.fieldOptions(f, value),
			Disabled:    !creating && f.ReadOnlyOnEdit,
			Error:       errs.For(f.Name),
		})
	}
	return v
}

// fieldOptions lists the choices for enum and agent fields. A current value
// outside the choices is kept visible so the select does not silently
// change it.
func (s *recordScreen[T]) fieldOptions(f schema.Field[T], current string) []schema.Option {
	var opts []schema.Option
	switch f.Kind {
	case schema.KindEnum:
		opts = append(opts, f.Options.Options...)
	case schema.KindAgent:
		for _, a := range s.def.agents.Selectable() {
			opts = append(opts, schema.Option{Value: a.Name, Label: a.Name})
		}
	default:
		return nil
	}

	if current == "" {
		return opts
	}
	for _, o := range opts {
		if o.Value == current {
			return opts
		}
	}
	return append(opts, schema.Option{Value: current, Label: current, Style: schema.StyleNeutral})
}

func (s *recordScreen[T]) notify(ctx context.Context, kind MutationKind, rec T) {
	detail := make(map[string]string, len(s.def.schema.Fields))
	for _, f := range s.def.schema.Fields {
		detail[f.Name] = f.Get(rec)
	}
	s.observer.Committed(ctx, Mutation{
		Screen:   s.def.nav,
		Kind:     kind,
		TargetID: rec.Key(),
		Detail:   detail,
	})
}

// storeSink commits validated drafts from the dialog.
type storeSink[T records.Keyed[T]] struct {
	s *recordScreen[T]
}

func (k storeSink[T]) Create(ctx context.Context, draft T) (T, error) {
	if k.s.def.onCreate != nil {
		draft = k.s.def.onCreate(draft)
	}
	rec := k.s.store.Create(draft)
	k.s.notify(ctx, MutationCreate, rec)
	return rec, nil
}

func (k storeSink[T]) Update(ctx context.Context, id string, draft T) (T, error) {
	if k.s.def.checkUpdate != nil {
		prev, err := k.s.store.Get(id)
		if err != nil {
			return prev, err
		}
		if err := k.s.def.checkUpdate(prev, draft); err != nil {
			var zero T
			return zero, err
		}
	}
	rec, err := k.s.store.Update(id, draft)
	if err != nil {
		return rec, err
	}
	k.s.notify(ctx, MutationUpdate, rec)
	return rec, nil
}
