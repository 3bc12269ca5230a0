// ABOUTME: Schemas, columns and dialog text for each record screen
// ABOUTME: Env mounts a fresh screen for a navigation item from the parsed seeds

package screens

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/2389/tymex-console/internal/agents"
	"github.com/2389/tymex-console/internal/records"
	"github.com/2389/tymex-console/internal/schema"
	"github.com/2389/tymex-console/internal/table"
)

// Env carries what every mounted screen needs. It is shared by all
// consoles and never mutated after construction.
type Env struct {
	Seeds         *Seeds
	ChannelScopes schema.OptionSet
	UserScopes    schema.OptionSet
	Observer      Observer

	// Now and NewID default to time.Now and the store's generator.
	Now   func() time.Time
	NewID func() string
}

// NewEnv returns an Env with the default scope sets and no observer.
func NewEnv(seeds *Seeds) *Env {
	return &Env{
		Seeds:         seeds,
		ChannelScopes: schema.AccessScopes,
		UserScopes:    schema.CapabilityScopes,
		Observer:      NopObserver{},
		Now:           time.Now,
	}
}

// Mount builds a screen with freshly restored seed data.
func (e *Env) Mount(ctx context.Context, nav Navigation) (Screen, error) {
	var opts []records.Option
	if e.NewID != nil {
		opts = append(opts, records.WithIDGenerator(e.NewID))
	}
	slack := agents.NewDirectory(e.Seeds.SlackAgents...)
	web := agents.NewDirectory(e.Seeds.WebAgents...)

	var scr Screen
	switch nav {
	case NavDashboard:
		scr = &dashboard{nav: nav, dir: slack, header: Header{
			Title:       "Slack AI Agents Dashboard",
			Description: "Overview of your AI Agent bots.",
		}}
	case NavWebDashboard:
		scr = &dashboard{nav: nav, dir: web, header: Header{
			Title:       "Web AI Agents Dashboard",
			Description: "Overview of your AI Agent bots.",
		}}
	case NavChannelPermissions:
		scr = mount(e.channelEntity(slack), e.Seeds.Channels, e.Observer, opts...)
	case NavUserPermissions:
		def := e.userEntity(nav, slack, Header{
			Title:       "User Permissions",
			Description: "Manage individual user access to AI agents.",
		})
		scr = mount(def, e.Seeds.UserPermissions, e.Observer, opts...)
	case NavWebUserPermissions:
		def := e.userEntity(nav, web, Header{
			Title:       "Web User Permissions",
			Description: "Manage individual user access to web AI agents.",
		})
		scr = mount(def, e.Seeds.WebUserPermissions, e.Observer, opts...)
	case NavUserManagement:
		scr = mount(e.platformUserEntity(), e.Seeds.PlatformUsers, e.Observer, opts...)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownNavigation, nav)
	}

	e.Observer.Mounted(ctx, nav)
	return scr, nil
}

// defaultScope prefers "allowed" and otherwise takes the first member.
func defaultScope(set schema.OptionSet) string {
	if set.Contains("allowed") {
		return "allowed"
	}
	if len(set.Options) > 0 {
		return set.Options[0].Value
	}
	return ""
}

func (e *Env) channelEntity(dir agents.Directory) *entity[ChannelPermission] {
	scopes := e.ChannelScopes
	s := &schema.Schema[ChannelPermission]{
		Entity:   "Channel Permission",
		Category: "agent",
		Fields: []schema.Field[ChannelPermission]{
			{
				Name: "channelName", Label: "Channel Name", Placeholder: "#example-channel",
				Kind: schema.KindText, Required: true, Searchable: true,
				Get:   func(p ChannelPermission) string { return p.ChannelName },
				Set:   func(p *ChannelPermission, v string) { p.ChannelName = v },
				Check: schema.PrefixRule("#"),
			},
			{
				Name: "channelId", Label: "Channel ID", Placeholder: "C012AB3CD",
				Kind: schema.KindText,
				Get:  func(p ChannelPermission) string { return p.ChannelID },
				Set:  func(p *ChannelPermission, v string) { p.ChannelID = v },
			},
			{
				Name: "agent", Label: "Agent", Placeholder: "Select an agent", Kind: schema.KindAgent,
				Get: func(p ChannelPermission) string { return p.Agent },
				Set: func(p *ChannelPermission, v string) { p.Agent = v },
			},
			{
				Name: "catchup", Label: "Catchup", Kind: schema.KindEnum,
				Options: schema.ChannelCatchup, Default: "daily",
				Get: func(p ChannelPermission) string { return p.Catchup },
				Set: func(p *ChannelPermission, v string) { p.Catchup = v },
			},
			{
				Name: "scope", Label: "Scope", Placeholder: "Select scope", Kind: schema.KindEnum,
				Options: scopes, Default: defaultScope(scopes),
				Get: func(p ChannelPermission) string { return p.Scope },
				Set: func(p *ChannelPermission, v string) { p.Scope = v },
			},
		},
	}

	return &entity[ChannelPermission]{
		nav: NavChannelPermissions,
		header: Header{
			Title:       "Channel Permissions",
			Description: "Manage Slack channel access to AI agents.",
		},
		dialog: dialogText{
			createTitle:       "Create Channel Permission",
			editTitle:         "Edit Channel Permission",
			createDescription: "Fill in the details for the new Slack channel permission.",
			editDescription:   "Update the Slack channel permission details.",
		},
		searchHint:  "Search by Channel...",
		createLabel: "Add Channel Permission",
		schema:      s,
		columns: []table.Column[ChannelPermission]{
			table.Text("Channel Name", func(p ChannelPermission) string { return p.ChannelName }),
			table.Mono("Channel ID", func(p ChannelPermission) string { return p.ChannelID }),
			table.Text("Agent", func(p ChannelPermission) string { return p.Agent }),
			table.Text("Catchup", func(p ChannelPermission) string { return p.Catchup }),
			table.Badged("Scope", func(p ChannelPermission) string { return p.Scope }, scopes),
		},
		actions: table.EditDelete[ChannelPermission],
		agents:  dir,
	}
}

func (e *Env) userEntity(nav Navigation, dir agents.Directory, header Header) *entity[UserPermission] {
	scopes := e.UserScopes
	s := &schema.Schema[UserPermission]{
		Entity:   "User Permission",
		Category: "agent",
		Fields: []schema.Field[UserPermission]{
			{
				Name: "userName", Label: "User Name", Kind: schema.KindText, Required: true, Searchable: true,
				Get: func(p UserPermission) string { return p.UserName },
				Set: func(p *UserPermission, v string) { p.UserName = v },
			},
			{
				Name: "userEmail", Label: "User Email", Kind: schema.KindEmail, Required: true, Searchable: true,
				Get: func(p UserPermission) string { return p.UserEmail },
				Set: func(p *UserPermission, v string) { p.UserEmail = v },
			},
			{
				Name: "userId", Label: "User ID", Placeholder: "Auto-generated if empty",
				Kind: schema.KindText, ReadOnlyOnEdit: true,
				Get: func(p UserPermission) string { return p.UserID },
				Set: func(p *UserPermission, v string) { p.UserID = v },
			},
			{
				Name: "agent", Label: "Agent", Placeholder: "Select an agent", Kind: schema.KindAgent,
				Get: func(p UserPermission) string { return p.Agent },
				Set: func(p *UserPermission, v string) { p.Agent = v },
			},
			{
				Name: "catchup", Label: "Catchup", Placeholder: "Select catchup type", Kind: schema.KindEnum,
				Options: schema.UserCatchup, Default: "daily",
				Get: func(p UserPermission) string { return p.Catchup },
				Set: func(p *UserPermission, v string) { p.Catchup = v },
			},
			{
				Name: "scope", Label: "Scope", Placeholder: "Select scope", Kind: schema.KindEnum,
				Options: scopes, Default: defaultScope(scopes),
				Get: func(p UserPermission) string { return p.Scope },
				Set: func(p *UserPermission, v string) { p.Scope = v },
			},
		},
	}

	now := e.Now
	if now == nil {
		now = time.Now
	}

	return &entity[UserPermission]{
		nav:    nav,
		header: header,
		dialog: dialogText{
			createTitle:       "Create User Permission",
			editTitle:         "Edit User Permission",
			createDescription: "Fill in the details for the new user permission.",
			editDescription:   "Update the user permission details.",
		},
		searchHint:  "Search by User...",
		createLabel: "Add User Permission",
		schema:      s,
		columns: []table.Column[UserPermission]{
			table.Text("User Name", func(p UserPermission) string { return p.UserName }),
			table.Text("User Email", func(p UserPermission) string { return p.UserEmail }),
			table.Mono("User ID", func(p UserPermission) string { return p.UserID }),
			table.Text("Agent", func(p UserPermission) string { return p.Agent }),
			table.Text("Catchup", func(p UserPermission) string { return p.Catchup }),
			table.Badged("Scope", func(p UserPermission) string { return p.Scope }, scopes),
		},
		actions: table.EditDelete[UserPermission],
		agents:  dir,
		onCreate: func(p UserPermission) UserPermission {
			if strings.TrimSpace(p.UserID) == "" {
				p.UserID = GeneratedUserID(now())
			}
			return p
		},
	}
}

// GeneratedUserID is the placeholder external id for users created
// without one: "U-NEW-" and the last four digits of the millisecond clock.
func GeneratedUserID(t time.Time) string {
	return fmt.Sprintf("U-NEW-%04d", t.UnixMilli()%10000)
}

func (e *Env) platformUserEntity() *entity[PlatformUser] {
	s := &schema.Schema[PlatformUser]{
		Entity: "User",
		Fields: []schema.Field[PlatformUser]{
			{
				Name: "name", Label: "Name", Kind: schema.KindText, Required: true, Searchable: true,
				Get: func(u PlatformUser) string { return u.Name },
				Set: func(u *PlatformUser, v string) { u.Name = v },
			},
			{
				Name: "email", Label: "Email", Kind: schema.KindEmail, Required: true, Searchable: true,
				Get: func(u PlatformUser) string { return u.Email },
				Set: func(u *PlatformUser, v string) { u.Email = v },
			},
			{
				Name: "role", Label: "Role", Kind: schema.KindEnum, Options: schema.Roles, Default: "Viewer",
				Get: func(u PlatformUser) string { return u.Role },
				Set: func(u *PlatformUser, v string) { u.Role = v },
			},
			{
				Name: "status", Label: "Status", Kind: schema.KindEnum, Options: schema.UserStatuses,
				Default: UserPending, HideOnCreate: true,
				Get: func(u PlatformUser) string { return u.Status },
				Set: func(u *PlatformUser, v string) { u.Status = v },
			},
		},
	}

	return &entity[PlatformUser]{
		nav: NavUserManagement,
		header: Header{
			Title:       "User Management",
			Description: "Manage platform users, roles, and overall status.",
		},
		dialog: dialogText{
			createTitle:       "Add New User",
			editTitle:         "Edit User",
			createDescription: "Fill in the details for the new user.",
			editDescription:   "Update user details.",
		},
		searchHint:  "Search by Name or Email...",
		createLabel: "Add User",
		schema:      s,
		columns: []table.Column[PlatformUser]{
			table.Person("User", func(u PlatformUser) string { return u.Name }, func(u PlatformUser) string { return u.Email }),
			table.Badged("Role", func(u PlatformUser) string { return u.Role }, schema.Roles),
			table.Badged("Status", func(u PlatformUser) string { return u.Status }, schema.UserStatuses),
			table.Text("Last Login", func(u PlatformUser) string { return u.LastLogin }),
		},
		actions: func(u PlatformUser) []table.Action {
			return []table.Action{
				{Name: table.ActionEdit, Label: "Edit"},
				{Name: table.ActionDeactivate, Label: "Deactivate", Destructive: true, Disabled: u.Status == UserInactive},
			}
		},
		onCreate: func(u PlatformUser) PlatformUser {
			u.Status = UserPending
			u.LastLogin = NeverLoggedIn
			return u
		},
		checkUpdate: func(prev, next PlatformUser) error {
			if prev.Status == UserInactive && next.Status != UserInactive {
				verr := &records.ValidationError{}
				verr.Add("status", "Deactivated users cannot be reactivated")
				return verr
			}
			return nil
		},
		deactivate: &deactivation[PlatformUser]{
			done: func(u PlatformUser) bool { return u.Status == UserInactive },
			apply: func(u PlatformUser) PlatformUser {
				u.Status = UserInactive
				return u
			},
		},
	}
}
