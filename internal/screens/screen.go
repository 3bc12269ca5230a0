// ABOUTME: Type-erased screen interfaces consumed by the web and CLI surfaces
// ABOUTME: Record screens expose query, table, dialog and row actions; dashboards expose agent cards

package screens

import (
	"context"
	"errors"

	"github.com/2389/tymex-console/internal/agents"
	"github.com/2389/tymex-console/internal/records"
	"github.com/2389/tymex-console/internal/schema"
	"github.com/2389/tymex-console/internal/table"
)

// ErrUnsupported is returned when a row action does not apply to a screen.
var ErrUnsupported = errors.New("action not supported on this screen")

// Header is the card title and description above a screen.
type Header struct {
	Title       string
	Description string
}

// Screen is anything the console can mount.
type Screen interface {
	Nav() Navigation
	Header() Header
}

// DashboardScreen shows agent cards.
type DashboardScreen interface {
	Screen
	Agents() []agents.Agent
}

// CategoryOption is one entry of the categorical filter.
type CategoryOption struct {
	Value string
	Label string
}

// FieldView is one dialog input.
type FieldView struct {
	Name        string
	Label       string
	Placeholder string
	Kind        string
	Value       string
	Options     []schema.Option
	Disabled    bool
	Error       string
}

// DialogView is the renderable state of the dialog.
type DialogView struct {
	Open        bool
	Creating    bool
	TargetID    string
	Title       string
	Description string
	SubmitLabel string
	Fields      []FieldView
}

// RecordScreen is a searchable table of records with a create/edit dialog.
type RecordScreen interface {
	Screen

	Query() records.Query
	SetQuery(q records.Query)
	SearchPlaceholder() string
	// Categories returns the categorical filter options, nil when the
	// screen has none.
	Categories() []CategoryOption
	CreateLabel() string
	Table() table.Table

	Dialog() DialogView
	OpenCreate()
	OpenEdit(id string) error
	SetField(name, value string) error
	Submit(ctx context.Context) error
	Cancel()

	Delete(ctx context.Context, id string) error
	Deactivate(ctx context.Context, id string) error
}
