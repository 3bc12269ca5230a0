// ABOUTME: Tests for screen composition, navigation and record screen behaviour
// ABOUTME: Exercises the seeded screens end to end through the RecordScreen interface

package screens

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/2389/tymex-console/internal/records"
	"github.com/2389/tymex-console/internal/schema"
	"github.com/2389/tymex-console/internal/table"
)

type recordingObserver struct {
	mounted   []Navigation
	committed []Mutation
	rejected  int
}

func (o *recordingObserver) Mounted(_ context.Context, nav Navigation) {
	o.mounted = append(o.mounted, nav)
}

func (o *recordingObserver) Committed(_ context.Context, m Mutation) {
	o.committed = append(o.committed, m)
}

func (o *recordingObserver) Rejected(context.Context, Navigation, *records.ValidationError) {
	o.rejected++
}

func testEnv(t *testing.T) (*Env, *recordingObserver) {
	t.Helper()
	seeds, err := LoadSeeds()
	require.NoError(t, err)

	obs := &recordingObserver{}
	env := NewEnv(seeds)
	env.Observer = obs
	env.Now = func() time.Time { return time.UnixMilli(1700000004321) }
	n := 0
	env.NewID = func() string {
		n++
		return fmt.Sprintf("gen-%d", n)
	}
	return env, obs
}

func mountRecords(t *testing.T, env *Env, nav Navigation) RecordScreen {
	t.Helper()
	scr, err := env.Mount(context.Background(), nav)
	require.NoError(t, err)
	rs, ok := scr.(RecordScreen)
	require.True(t, ok, "%s is not a record screen", nav)
	return rs
}

func TestParseNavigation(t *testing.T) {
	for _, n := range Navigations {
		got, err := ParseNavigation(string(n))
		require.NoError(t, err)
		assert.Equal(t, n, got)
	}

	_, err := ParseNavigation("settings")
	assert.ErrorIs(t, err, ErrUnknownNavigation)
}

func TestLoadSeeds(t *testing.T) {
	seeds, err := LoadSeeds()
	require.NoError(t, err)

	assert.Len(t, seeds.SlackAgents, 1)
	assert.Len(t, seeds.WebAgents, 3)
	assert.Len(t, seeds.Channels, 4)
	assert.Len(t, seeds.UserPermissions, 3)
	assert.Len(t, seeds.WebUserPermissions, 3)
	assert.Len(t, seeds.PlatformUsers, 4)
	assert.Equal(t, "#general", seeds.Channels[0].ChannelName)
	assert.Equal(t, "Never", seeds.PlatformUsers[3].LastLogin)
}

func TestMountEveryNavigation(t *testing.T) {
	env, obs := testEnv(t)
	for _, n := range Navigations {
		scr, err := env.Mount(context.Background(), n)
		require.NoError(t, err)
		assert.Equal(t, n, scr.Nav())
		assert.NotEmpty(t, scr.Header().Title)
	}
	assert.Equal(t, Navigations, obs.mounted)

	_, err := env.Mount(context.Background(), Navigation("nope"))
	assert.ErrorIs(t, err, ErrUnknownNavigation)
}

func TestDashboardsListTheirAgents(t *testing.T) {
	env, _ := testEnv(t)

	scr, err := env.Mount(context.Background(), NavWebDashboard)
	require.NoError(t, err)
	dash, ok := scr.(DashboardScreen)
	require.True(t, ok)
	require.Len(t, dash.Agents(), 3)
	assert.Equal(t, "Visual UI Testing", dash.Agents()[0].Name)
}

func TestChannelSearchScenario(t *testing.T) {
	env, _ := testEnv(t)
	scr := mountRecords(t, env, NavChannelPermissions)

	scr.SetQuery(records.Query{Search: "gen", Category: records.AllCategories})
	tbl := scr.Table()
	require.Len(t, tbl.Rows, 1)
	assert.Equal(t, "1", tbl.Rows[0].ID)

	scr.SetQuery(records.Query{Search: "xyz", Category: records.AllCategories})
	assert.True(t, scr.Table().Empty())

	scr.SetQuery(records.Query{Category: "CodeHelper"})
	tbl = scr.Table()
	require.Len(t, tbl.Rows, 1)
	assert.Equal(t, "#dev-team", tbl.Rows[0].Cells[0].Text)
}

func TestChannelCreateScenario(t *testing.T) {
	env, obs := testEnv(t)
	scr := mountRecords(t, env, NavChannelPermissions)
	ctx := context.Background()

	scr.OpenCreate()
	dlg := scr.Dialog()
	require.True(t, dlg.Open)
	assert.Equal(t, "Create Channel Permission", dlg.Title)
	assert.Equal(t, "Create", dlg.SubmitLabel)

	require.NoError(t, scr.SetField("channelName", "#qa"))
	require.NoError(t, scr.Submit(ctx))
	assert.False(t, scr.Dialog().Open)

	tbl := scr.Table()
	require.Len(t, tbl.Rows, 5)
	last := tbl.Rows[4]
	assert.Equal(t, "gen-1", last.ID)
	assert.Equal(t, "#qa", last.Cells[0].Text)
	assert.Equal(t, "GoTeddy", last.Cells[2].Text)
	assert.Equal(t, "daily", last.Cells[3].Text)
	assert.Equal(t, "Allowed", last.Cells[4].Badge.Label)
	assert.Equal(t, schema.StyleGreen, last.Cells[4].Badge.Style)

	require.Len(t, obs.committed, 1)
	assert.Equal(t, MutationCreate, obs.committed[0].Kind)
	assert.Equal(t, "#qa", obs.committed[0].Detail["channelName"])
}

func TestChannelValidationRejectsBadDraft(t *testing.T) {
	env, obs := testEnv(t)
	scr := mountRecords(t, env, NavChannelPermissions)

	scr.OpenCreate()
	require.NoError(t, scr.SetField("channelName", "qa"))
	err := scr.Submit(context.Background())

	var verr *records.ValidationError
	require.True(t, errors.As(err, &verr))
	dlg := scr.Dialog()
	require.True(t, dlg.Open)
	assert.Equal(t, "must start with #", dlg.Fields[0].Error)
	assert.Equal(t, "qa", dlg.Fields[0].Value)
	assert.Equal(t, 1, obs.rejected)
	assert.Len(t, scr.Table().Rows, 4)
}

func TestEditKeepsUnknownAgentVisible(t *testing.T) {
	env, _ := testEnv(t)
	scr := mountRecords(t, env, NavChannelPermissions)

	require.NoError(t, scr.OpenEdit("2"))
	dlg := scr.Dialog()
	assert.Equal(t, "Edit Channel Permission", dlg.Title)
	assert.Equal(t, "Save Changes", dlg.SubmitLabel)

	var agentField FieldView
	for _, f := range dlg.Fields {
		if f.Name == "agent" {
			agentField = f
		}
	}
	require.Equal(t, "CodeHelper", agentField.Value)
	values := make([]string, 0, len(agentField.Options))
	for _, o := range agentField.Options {
		values = append(values, o.Value)
	}
	assert.Equal(t, []string{"GoTeddy", "CodeHelper"}, values)

	assert.ErrorIs(t, scr.OpenEdit("missing"), records.ErrNotFound)
}

func TestCategoriesSkipBlankAgents(t *testing.T) {
	env, _ := testEnv(t)
	env.Seeds.SlackAgents = append(env.Seeds.SlackAgents, env.Seeds.SlackAgents[0])
	env.Seeds.SlackAgents[1].Name = "  "
	scr := mountRecords(t, env, NavChannelPermissions)

	cats := scr.Categories()
	require.Len(t, cats, 2)
	assert.Equal(t, records.AllCategories, cats[0].Value)
	assert.Equal(t, "GoTeddy", cats[1].Value)

	um := mountRecords(t, env, NavUserManagement)
	assert.Nil(t, um.Categories())
}

func TestUserPermissionGeneratesExternalID(t *testing.T) {
	env, _ := testEnv(t)
	scr := mountRecords(t, env, NavUserPermissions)

	scr.OpenCreate()
	require.NoError(t, scr.SetField("userName", "Dana"))
	require.NoError(t, scr.SetField("userEmail", "dana@example.com"))
	require.NoError(t, scr.Submit(context.Background()))

	rows := scr.Table().Rows
	require.Len(t, rows, 4)
	assert.Equal(t, "U-NEW-4321", rows[3].Cells[2].Text)
	assert.Equal(t, "Browser Web", rows[3].Cells[5].Badge.Label)
}

func TestUserPermissionKeepsSuppliedExternalID(t *testing.T) {
	env, _ := testEnv(t)
	scr := mountRecords(t, env, NavUserPermissions)

	scr.OpenCreate()
	require.NoError(t, scr.SetField("userName", "Dana"))
	require.NoError(t, scr.SetField("userEmail", "dana@example.com"))
	require.NoError(t, scr.SetField("userId", "U-DANA"))
	require.NoError(t, scr.Submit(context.Background()))

	rows := scr.Table().Rows
	assert.Equal(t, "U-DANA", rows[3].Cells[2].Text)
}

func TestUserPermissionSearchMatchesNameOrEmail(t *testing.T) {
	env, _ := testEnv(t)
	scr := mountRecords(t, env, NavUserPermissions)

	scr.SetQuery(records.Query{Search: "BOB@"})
	require.Len(t, scr.Table().Rows, 1)

	scr.SetQuery(records.Query{Search: "wonder"})
	require.Len(t, scr.Table().Rows, 1)
}

func TestGeneratedUserID(t *testing.T) {
	assert.Equal(t, "U-NEW-0007", GeneratedUserID(time.UnixMilli(1700000000007)))
}

func TestPlatformUserCreateIsPending(t *testing.T) {
	env, _ := testEnv(t)
	scr := mountRecords(t, env, NavUserManagement)

	scr.OpenCreate()
	dlg := scr.Dialog()
	assert.Equal(t, "Add New User", dlg.Title)
	for _, f := range dlg.Fields {
		assert.NotEqual(t, "status", f.Name, "status is fixed on create")
	}

	require.NoError(t, scr.SetField("name", "Eve Adams"))
	require.NoError(t, scr.SetField("email", "eve@company.com"))
	require.NoError(t, scr.Submit(context.Background()))

	rows := scr.Table().Rows
	require.Len(t, rows, 5)
	assert.Equal(t, "pending", rows[4].Cells[2].Badge.Label)
	assert.Equal(t, "Never", rows[4].Cells[3].Text)
	assert.Equal(t, "Viewer", rows[4].Cells[1].Badge.Label)
	assert.Equal(t, "E", rows[4].Cells[0].Avatar)
}

func TestDeactivateScenario(t *testing.T) {
	env, obs := testEnv(t)
	scr := mountRecords(t, env, NavUserManagement)
	ctx := context.Background()

	require.NoError(t, scr.Deactivate(ctx, "2"))
	row := scr.Table().Rows[1]
	assert.Equal(t, "inactive", row.Cells[2].Badge.Label)
	assert.True(t, row.Actions[1].Disabled)

	require.NoError(t, scr.Deactivate(ctx, "2"))
	assert.Equal(t, "inactive", scr.Table().Rows[1].Cells[2].Badge.Label)
	assert.Len(t, obs.committed, 1, "second deactivate is a no-op")

	assert.ErrorIs(t, scr.Deactivate(ctx, "99"), records.ErrNotFound)
}

func TestDeactivatedUserCannotBeReactivated(t *testing.T) {
	env, obs := testEnv(t)
	scr := mountRecords(t, env, NavUserManagement)
	ctx := context.Background()

	require.NoError(t, scr.Deactivate(ctx, "2"))
	require.NoError(t, scr.OpenEdit("2"))
	require.NoError(t, scr.SetField("status", "active"))

	err := scr.Submit(ctx)
	var verr *records.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "Deactivated users cannot be reactivated", verr.For("status"))

	view := scr.Dialog()
	assert.True(t, view.Open, "dialog stays open with the error")
	assert.Equal(t, "inactive", scr.Table().Rows[1].Cells[2].Badge.Label)
	assert.Len(t, obs.committed, 1, "only the deactivation was committed")
	assert.Equal(t, 1, obs.rejected)

	require.NoError(t, scr.SetField("status", "inactive"))
	require.NoError(t, scr.SetField("role", "Viewer"))
	require.NoError(t, scr.Submit(ctx))
	assert.Equal(t, "Viewer", scr.Table().Rows[1].Cells[1].Badge.Label)
	assert.Equal(t, "inactive", scr.Table().Rows[1].Cells[2].Badge.Label)
}

func TestPendingUserCanBeActivated(t *testing.T) {
	env, _ := testEnv(t)
	scr := mountRecords(t, env, NavUserManagement)
	ctx := context.Background()

	require.NoError(t, scr.OpenEdit("4"))
	require.NoError(t, scr.SetField("status", "active"))
	require.NoError(t, scr.Submit(ctx))
	assert.Equal(t, "active", scr.Table().Rows[3].Cells[2].Badge.Label)
}

func TestDeactivateUnsupportedOnPermissions(t *testing.T) {
	env, _ := testEnv(t)
	scr := mountRecords(t, env, NavChannelPermissions)
	assert.ErrorIs(t, scr.Deactivate(context.Background(), "1"), ErrUnsupported)
}

func TestDeleteUnsupportedOnPlatformUsers(t *testing.T) {
	env, obs := testEnv(t)
	scr := mountRecords(t, env, NavUserManagement)

	assert.ErrorIs(t, scr.Delete(context.Background(), "1"), ErrUnsupported)
	assert.Len(t, scr.Table().Rows, 4)
	assert.Empty(t, obs.committed)
}

func TestDeleteRemovesAndReportsMissing(t *testing.T) {
	env, obs := testEnv(t)
	scr := mountRecords(t, env, NavChannelPermissions)
	ctx := context.Background()

	require.NoError(t, scr.Delete(ctx, "1"))
	assert.Len(t, scr.Table().Rows, 3)
	require.Len(t, obs.committed, 1)
	assert.Equal(t, MutationDelete, obs.committed[0].Kind)
	assert.Equal(t, "1", obs.committed[0].TargetID)

	assert.ErrorIs(t, scr.Delete(ctx, "1"), records.ErrNotFound)
	assert.Len(t, scr.Table().Rows, 3)
}

func TestSubmitAfterDeleteReturnsNotFound(t *testing.T) {
	env, _ := testEnv(t)
	scr := mountRecords(t, env, NavChannelPermissions)
	ctx := context.Background()

	require.NoError(t, scr.OpenEdit("3"))
	require.NoError(t, scr.Delete(ctx, "3"))
	assert.ErrorIs(t, scr.Submit(ctx), records.ErrNotFound)
	assert.False(t, scr.Dialog().Open)
}

func TestPermissionRowsOfferEditAndDelete(t *testing.T) {
	env, _ := testEnv(t)
	scr := mountRecords(t, env, NavChannelPermissions)

	acts := scr.Table().Rows[0].Actions
	require.Len(t, acts, 2)
	assert.Equal(t, table.ActionEdit, acts[0].Name)
	assert.Equal(t, table.ActionDelete, acts[1].Name)
}

func TestConfiguredScopeSetDrivesBadges(t *testing.T) {
	env, _ := testEnv(t)
	env.ChannelScopes = schema.CapabilityScopes
	scr := mountRecords(t, env, NavChannelPermissions)

	// Seed scopes come from the other enumeration and render neutral.
	badge := scr.Table().Rows[0].Cells[4].Badge
	assert.Equal(t, schema.StyleNeutral, badge.Style)

	require.NoError(t, scr.OpenEdit("1"))
	err := scr.Submit(context.Background())
	var verr *records.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.NotEmpty(t, verr.For("scope"))

	require.NoError(t, scr.SetField("scope", "Look up"))
	require.NoError(t, scr.Submit(context.Background()))
}
