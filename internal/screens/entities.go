// ABOUTME: Record types owned by the permission and user management screens
// ABOUTME: Each implements records.Keyed so the generic store can hold it

package screens

// ChannelPermission grants an agent access to a Slack channel.
type ChannelPermission struct {
	ID          string `yaml:"id"`
	ChannelName string `yaml:"channel_name"`
	ChannelID   string `yaml:"channel_id"`
	Agent       string `yaml:"agent"`
	Catchup     string `yaml:"catchup"`
	Scope       string `yaml:"scope"`
}

func (p ChannelPermission) Key() string { return p.ID }

func (p ChannelPermission) WithKey(id string) ChannelPermission {
	p.ID = id
	return p
}

// UserPermission grants an agent access on behalf of one user.
type UserPermission struct {
	ID        string `yaml:"id"`
	UserName  string `yaml:"user_name"`
	UserEmail string `yaml:"user_email"`
	UserID    string `yaml:"user_id"`
	Agent     string `yaml:"agent"`
	Catchup   string `yaml:"catchup"`
	Scope     string `yaml:"scope"`
}

func (p UserPermission) Key() string { return p.ID }

func (p UserPermission) WithKey(id string) UserPermission {
	p.ID = id
	return p
}

// Platform user states.
const (
	UserActive   = "active"
	UserInactive = "inactive"
	UserPending  = "pending"
)

// NeverLoggedIn is the last-login text for users who have not signed in.
const NeverLoggedIn = "Never"

// PlatformUser is an account on the admin platform itself.
type PlatformUser struct {
	ID        string `yaml:"id"`
	Name      string `yaml:"name"`
	Email     string `yaml:"email"`
	Role      string `yaml:"role"`
	Status    string `yaml:"status"`
	LastLogin string `yaml:"last_login"`
	Avatar    string `yaml:"avatar,omitempty"`
}

func (u PlatformUser) Key() string { return u.ID }

func (u PlatformUser) WithKey(id string) PlatformUser {
	u.ID = id
	return u
}
