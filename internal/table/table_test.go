// ABOUTME: Tests for the table presenter and terminal renderer
// ABOUTME: Checks row order, badge styles, actions and avatar fallbacks

package table

import (
	"bytes"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/2389/tymex-console/internal/schema"
)

type row struct {
	ID    string
	Name  string
	Email string
	Scope string
}

func (r row) Key() string { return r.ID }

func (r row) WithKey(id string) row {
	r.ID = id
	return r
}

func columns() []Column[row] {
	return []Column[row]{
		Person("User", func(r row) string { return r.Name }, func(r row) string { return r.Email }),
		Badged("Scope", func(r row) string { return r.Scope }, schema.AccessScopes),
	}
}

func TestBuildPreservesOrderAndStyles(t *testing.T) {
	items := []row{
		{ID: "a", Name: "alice", Email: "alice@example.com", Scope: "allowed"},
		{ID: "b", Name: "", Email: "x@example.com", Scope: "Look up"},
	}

	tbl := Build(items, columns(), EditDelete[row])

	assert.Equal(t, []string{"User", "Scope"}, tbl.Columns)
	require.Len(t, tbl.Rows, 2)
	assert.Equal(t, "a", tbl.Rows[0].ID)
	assert.Equal(t, "A", tbl.Rows[0].Cells[0].Avatar)
	assert.Equal(t, "U", tbl.Rows[1].Cells[0].Avatar)
	assert.Equal(t, schema.StyleGreen, tbl.Rows[0].Cells[1].Badge.Style)
	assert.Equal(t, "Allowed", tbl.Rows[0].Cells[1].Badge.Label)
	assert.Equal(t, schema.StyleNeutral, tbl.Rows[1].Cells[1].Badge.Style)
	assert.Equal(t, "Look up", tbl.Rows[1].Cells[1].Badge.Label)

	require.Len(t, tbl.Rows[0].Actions, 2)
	assert.Equal(t, ActionEdit, tbl.Rows[0].Actions[0].Name)
	assert.True(t, tbl.Rows[0].Actions[1].Destructive)
}

func TestBuildWithoutActions(t *testing.T) {
	tbl := Build([]row{{ID: "a"}}, columns(), nil)
	assert.Nil(t, tbl.Rows[0].Actions)
	assert.False(t, tbl.Empty())
	assert.True(t, Build(nil, columns(), nil).Empty())
}

func TestInitial(t *testing.T) {
	assert.Equal(t, "J", Initial("john Doe"))
	assert.Equal(t, "U", Initial(""))
	assert.Equal(t, "U", Initial("   "))
	assert.Equal(t, "U", Initial("#general"))
}

func TestRenderAlignsColumns(t *testing.T) {
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = false })

	tbl := Build([]row{
		{ID: "a", Name: "Bob", Email: "bob@example.com", Scope: "custom"},
	}, columns(), nil)

	var buf bytes.Buffer
	require.NoError(t, Render(&buf, tbl))
	out := buf.String()
	assert.Contains(t, out, "User")
	assert.Contains(t, out, "Bob <bob@example.com>  Custom")

	buf.Reset()
	require.NoError(t, Render(&buf, Build(nil, columns(), nil)))
	assert.Contains(t, buf.String(), "(no records)")
}
