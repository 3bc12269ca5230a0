// ABOUTME: Table Presenter turning filtered records into rows, badges and row actions
// ABOUTME: The view model is shared by the HTML templates and the terminal renderer

package table

import (
	"strings"
	"unicode"

	"github.com/2389/tymex-console/internal/records"
	"github.com/2389/tymex-console/internal/schema"
)

// Row action names.
const (
	ActionEdit       = "edit"
	ActionDelete     = "delete"
	ActionDeactivate = "deactivate"
)

// Badge is an enumerated value rendered with its display style.
type Badge struct {
	Label string
	Style schema.Style
}

// Cell is one rendered value.
type Cell struct {
	Text      string
	Secondary string
	Avatar    string
	Mono      bool
	Badge     *Badge
}

// Action is an entry in a row's action menu.
type Action struct {
	Name        string
	Label       string
	Disabled    bool
	Destructive bool
}

// Column renders one cell per record.
type Column[T any] struct {
	Title string
	Cell  func(T) Cell
}

// Row is one rendered record.
type Row struct {
	ID      string
	Cells   []Cell
	Actions []Action
}

// Table is the complete view model for one screen's records.
type Table struct {
	Columns []string
	Rows    []Row
}

// Empty reports whether there are no rows to show.
func (t Table) Empty() bool { return len(t.Rows) == 0 }

// Build renders items in order. actions may be nil for read-only tables.
func Build[T records.Keyed[T]](items []T, cols []Column[T], actions func(T) []Action) Table {
	t := Table{
		Columns: make([]string, len(cols)),
		Rows:    make([]Row, 0, len(items)),
	}
	for i, c := range cols {
		t.Columns[i] = c.Title
	}

	for _, it := range items {
		row := Row{ID: it.Key(), Cells: make([]Cell, len(cols))}
		for i, c := range cols {
			row.Cells[i] = c.Cell(it)
		}
		if actions != nil {
			row.Actions = actions(it)
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}

// Text is a plain column.
func Text[T any](title string, get func(T) string) Column[T] {
	return Column[T]{Title: title, Cell: func(rec T) Cell { return Cell{Text: get(rec)} }}
}

// Mono is a plain column set in a fixed-width face.
func Mono[T any](title string, get func(T) string) Column[T] {
	return Column[T]{Title: title, Cell: func(rec T) Cell { return Cell{Text: get(rec), Mono: true} }}
}

// Badged renders an enumerated value with the style its option set maps
// it to; values outside the set get the neutral style.
func Badged[T any](title string, get func(T) string, set schema.OptionSet) Column[T] {
	return Column[T]{Title: title, Cell: func(rec T) Cell {
		v := get(rec)
		return Cell{Badge: &Badge{Label: set.LabelFor(v), Style: set.StyleFor(v)}}
	}}
}

// Person renders a name with an avatar initial and a secondary line.
func Person[T any](title string, name, secondary func(T) string) Column[T] {
	return Column[T]{Title: title, Cell: func(rec T) Cell {
		n := name(rec)
		return Cell{Text: n, Secondary: secondary(rec), Avatar: Initial(n)}
	}}
}

// Initial returns the upper-cased first letter of name, or "U" when name
// has none.
func Initial(name string) string {
	for _, r := range strings.TrimSpace(name) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return strings.ToUpper(string(r))
		}
		break
	}
	return "U"
}

// EditDelete is the action menu for permission rows.
func EditDelete[T any](T) []Action {
	return []Action{
		{Name: ActionEdit, Label: "Edit"},
		{Name: ActionDelete, Label: "Delete", Destructive: true},
	}
}
