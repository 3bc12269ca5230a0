// ABOUTME: Tests for the dialog state machine
// ABOUTME: Drives the controller against a real records.Store through a test sink

package dialog

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/2389/tymex-console/internal/records"
	"github.com/2389/tymex-console/internal/schema"
)

type perm struct {
	ID        string
	Channel   string
	ChannelID string
	Agent     string
	Catchup   string
	Scope     string
}

func (p perm) Key() string { return p.ID }

func (p perm) WithKey(id string) perm {
	p.ID = id
	return p
}

type storeSink struct {
	store *records.Store[perm]
}

func (s storeSink) Create(_ context.Context, draft perm) (perm, error) {
	return s.store.Create(draft), nil
}

func (s storeSink) Update(_ context.Context, id string, draft perm) (perm, error) {
	return s.store.Update(id, draft)
}

func permSchema() *schema.Schema[perm] {
	return &schema.Schema[perm]{
		Entity:   "Channel Permission",
		Category: "agent",
		Fields: []schema.Field[perm]{
			{
				Name: "channelName", Kind: schema.KindText, Required: true, Searchable: true,
				Get:   func(p perm) string { return p.Channel },
				Set:   func(p *perm, v string) { p.Channel = v },
				Check: schema.PrefixRule("#"),
			},
			{
				Name: "channelId", Kind: schema.KindText, ReadOnlyOnEdit: true,
				Get: func(p perm) string { return p.ChannelID },
				Set: func(p *perm, v string) { p.ChannelID = v },
			},
			{
				Name: "agent", Kind: schema.KindAgent,
				Get: func(p perm) string { return p.Agent },
				Set: func(p *perm, v string) { p.Agent = v },
			},
			{
				Name: "catchup", Kind: schema.KindEnum, Options: schema.ChannelCatchup, Default: "daily",
				Get: func(p perm) string { return p.Catchup },
				Set: func(p *perm, v string) { p.Catchup = v },
			},
			{
				Name: "scope", Kind: schema.KindEnum, Options: schema.AccessScopes, Default: "allowed",
				Get: func(p perm) string { return p.Scope },
				Set: func(p *perm, v string) { p.Scope = v },
			},
		},
	}
}

func setup() (*records.Store[perm], *Controller[perm]) {
	st := records.NewStore([]perm{
		{ID: "1", Channel: "#general", Agent: "GoTeddy", Catchup: "daily", Scope: "allowed"},
	}, records.WithIDGenerator(func() string { return "new-1" }))
	return st, New(permSchema(), storeSink{store: st})
}

func TestCreateScenario(t *testing.T) {
	st, c := setup()
	c.OpenCreate(permSchema().Draft("GoTeddy"))
	require.Equal(t, ModeCreating, c.Mode())

	require.NoError(t, c.SetField("channelName", "#qa"))
	rec, err := c.Submit(context.Background())
	require.NoError(t, err)

	assert.Equal(t, perm{ID: "new-1", Channel: "#qa", Agent: "GoTeddy", Catchup: "daily", Scope: "allowed"}, rec)
	assert.Equal(t, 2, st.Len())
	assert.Equal(t, ModeClosed, c.Mode())
}

func TestEditUpdatesInPlace(t *testing.T) {
	st, c := setup()
	rec, err := st.Get("1")
	require.NoError(t, err)

	c.OpenEdit(rec)
	assert.Equal(t, "1", c.Target())
	require.NoError(t, c.SetField("scope", "custom"))
	_, err = c.Submit(context.Background())
	require.NoError(t, err)

	got, err := st.Get("1")
	require.NoError(t, err)
	assert.Equal(t, "custom", got.Scope)
	assert.False(t, c.Open())
}

func TestCancelNeverMutatesStore(t *testing.T) {
	st, c := setup()
	before := st.All()
	version := st.Version()

	c.OpenEdit(before[0])
	require.NoError(t, c.SetField("channelName", "#changed"))
	require.NoError(t, c.SetField("scope", ""))
	c.Cancel()

	c.OpenCreate(permSchema().Draft("GoTeddy"))
	require.NoError(t, c.SetField("channelName", "#draft"))
	c.Cancel()

	assert.Equal(t, before, st.All())
	assert.Equal(t, version, st.Version())
	assert.Equal(t, perm{}, c.Draft())
}

func TestValidationFailureKeepsDialogOpen(t *testing.T) {
	st, c := setup()
	c.OpenCreate(permSchema().Draft("GoTeddy"))
	require.NoError(t, c.SetField("channelName", ""))

	_, err := c.Submit(context.Background())
	var verr *records.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "is required", verr.For("channelName"))

	assert.Equal(t, ModeCreating, c.Mode())
	assert.Equal(t, "GoTeddy", c.Draft().Agent, "draft survives")
	assert.Equal(t, "is required", c.Errors().For("channelName"))
	assert.Equal(t, 1, st.Len())

	require.NoError(t, c.SetField("channelName", "#fixed"))
	_, err = c.Submit(context.Background())
	require.NoError(t, err)
	assert.Nil(t, c.Errors())
}

func TestReopenResetsDraft(t *testing.T) {
	st, c := setup()
	rec, _ := st.Get("1")

	c.OpenCreate(permSchema().Draft("GoTeddy"))
	require.NoError(t, c.SetField("channelName", "#stale"))
	c.OpenEdit(rec)
	assert.Equal(t, "#general", c.Draft().Channel)

	require.NoError(t, c.SetField("channelName", "#stale-edit"))
	c.OpenCreate(permSchema().Draft("CodeHelper"))
	assert.Equal(t, "", c.Draft().Channel)
	assert.Equal(t, "CodeHelper", c.Draft().Agent)
	assert.Equal(t, "", c.Target())
}

func TestSubmitAfterDeleteClosesWithNotFound(t *testing.T) {
	st, c := setup()
	rec, _ := st.Get("1")
	c.OpenEdit(rec)
	require.NoError(t, st.Delete("1"))

	_, err := c.Submit(context.Background())
	assert.ErrorIs(t, err, records.ErrNotFound)
	assert.Equal(t, ModeClosed, c.Mode())
	assert.Equal(t, 0, st.Len())
}

type rejectingSink struct {
	storeSink
}

func (s rejectingSink) Update(_ context.Context, _ string, _ perm) (perm, error) {
	verr := &records.ValidationError{}
	verr.Add("scope", "cannot change")
	return perm{}, verr
}

func TestSinkRejectionKeepsDialogOpen(t *testing.T) {
	st := records.NewStore([]perm{
		{ID: "1", Channel: "#general", Agent: "GoTeddy", Catchup: "daily", Scope: "allowed"},
	})
	c := New(permSchema(), rejectingSink{storeSink{store: st}})
	rec, _ := st.Get("1")
	c.OpenEdit(rec)
	require.NoError(t, c.SetField("scope", "custom"))

	_, err := c.Submit(context.Background())
	var verr *records.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, ModeEditing, c.Mode())
	assert.Equal(t, "custom", c.Draft().Scope)
	assert.Equal(t, "cannot change", c.Errors().For("scope"))

	got, _ := st.Get("1")
	assert.Equal(t, "allowed", got.Scope)
}

func TestClosedControllerRejectsInput(t *testing.T) {
	_, c := setup()
	assert.ErrorIs(t, c.SetField("channelName", "#x"), ErrClosed)
	_, err := c.Submit(context.Background())
	assert.ErrorIs(t, err, ErrClosed)
}

func TestUnknownField(t *testing.T) {
	_, c := setup()
	c.OpenCreate(permSchema().Draft("GoTeddy"))
	assert.ErrorIs(t, c.SetField("bogus", "x"), schema.ErrUnknownField)
}

func TestReadOnlyOnEditField(t *testing.T) {
	st, c := setup()
	c.OpenCreate(permSchema().Draft("GoTeddy"))
	require.NoError(t, c.SetField("channelId", "C999"))

	rec, _ := st.Get("1")
	c.OpenEdit(rec)
	assert.ErrorIs(t, c.SetField("channelId", "C000"), schema.ErrReadOnly)
	assert.Equal(t, "", c.Draft().ChannelID)
}
