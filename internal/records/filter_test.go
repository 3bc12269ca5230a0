// ABOUTME: Tests for the filter engine and memoised view
// ABOUTME: Covers text/category composition, stability, idempotence, and recompute triggers

package records

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func channelMatcher() Matcher[channel] {
	return Matcher[channel]{
		Search:   []func(channel) string{func(c channel) string { return c.Name }},
		Category: func(c channel) string { return c.Agent },
	}
}

func TestFilter_SearchScenario(t *testing.T) {
	items := []channel{{ID: "1", Name: "#general", Agent: "GoTeddy"}}

	got := Filter(items, channelMatcher(), Query{Search: "gen", Category: AllCategories})
	assert.Equal(t, items, got)

	got = Filter(items, channelMatcher(), Query{Search: "xyz", Category: AllCategories})
	assert.Empty(t, got)
}

func TestFilter_CaseInsensitive(t *testing.T) {
	items := seedChannels()
	got := Filter(items, channelMatcher(), Query{Search: "DEV"})
	require.Len(t, got, 1)
	assert.Equal(t, "2", got[0].ID)
}

func TestFilter_CategoryAndText(t *testing.T) {
	items := append(seedChannels(), channel{ID: "4", Name: "#general-2", Agent: "CodeHelper"})

	got := Filter(items, channelMatcher(), Query{Search: "general", Category: "CodeHelper"})
	require.Len(t, got, 1)
	assert.Equal(t, "4", got[0].ID)

	got = Filter(items, channelMatcher(), Query{Category: "CodeHelper"})
	assert.Len(t, got, 2)
}

func TestFilter_EmptyCategoryMatchesAll(t *testing.T) {
	got := Filter(seedChannels(), channelMatcher(), Query{})
	assert.Len(t, got, 3)
}

func TestFilter_BlankCategoryValueMatchesExactly(t *testing.T) {
	items := []channel{
		{ID: "1", Name: "#a", Agent: "GoTeddy"},
		{ID: "2", Name: "#b", Agent: ""},
	}
	m := channelMatcher()
	// A blank agent name is not selectable, but records carrying it are
	// still subject to the exact category comparison.
	got := Filter(items, m, Query{Category: "GoTeddy"})
	require.Len(t, got, 1)
	assert.Equal(t, "1", got[0].ID)
}

func TestFilter_SearchFieldsAreORed(t *testing.T) {
	type user struct{ Name, Email string }
	m := Matcher[user]{Search: []func(user) string{
		func(u user) string { return u.Name },
		func(u user) string { return u.Email },
	}}
	items := []user{
		{Name: "Alice Wonderland", Email: "alice@example.com"},
		{Name: "Bob The Builder", Email: "bob@example.com"},
	}

	assert.Len(t, Filter(items, m, Query{Search: "bob@"}), 1)
	assert.Len(t, Filter(items, m, Query{Search: "wonder"}), 1)
	assert.Len(t, Filter(items, m, Query{Search: "example"}), 2)
}

func TestFilter_PreservesOrderAndIsIdempotent(t *testing.T) {
	items := []channel{
		{ID: "a", Name: "#x-one", Agent: "GoTeddy"},
		{ID: "b", Name: "#other", Agent: "GoTeddy"},
		{ID: "c", Name: "#x-two", Agent: "CodeHelper"},
		{ID: "d", Name: "#x-three", Agent: "GoTeddy"},
	}
	q := Query{Search: "x-", Category: "GoTeddy"}

	once := Filter(items, channelMatcher(), q)
	twice := Filter(once, channelMatcher(), q)

	require.Len(t, once, 2)
	assert.Equal(t, "a", once[0].ID)
	assert.Equal(t, "d", once[1].ID)
	assert.Equal(t, once, twice)
}

func TestView_RecomputesOnlyWhenInputsChange(t *testing.T) {
	s := NewStore(seedChannels())
	calls := 0
	m := channelMatcher()
	inner := m.Search[0]
	m.Search[0] = func(c channel) string {
		calls++
		return inner(c)
	}
	v := NewView(m)
	q := Query{Search: "e"}

	first := v.Rows(s, q)
	afterFirst := calls
	second := v.Rows(s, q)
	assert.Equal(t, first, second)
	assert.Equal(t, afterFirst, calls, "same triple reuses the cached rows")

	v.Rows(s, Query{Search: "dev"})
	assert.Greater(t, calls, afterFirst)

	afterQuery := calls
	s.Create(channel{Name: "#new-dev", Agent: "GoTeddy"})
	rows := v.Rows(s, Query{Search: "dev"})
	assert.Greater(t, calls, afterQuery)
	assert.Len(t, rows, 2, "mutations are visible on the next recompute")
}
