// ABOUTME: Embedded YAML fixtures restored every time a screen mounts
// ABOUTME: Parsed once at startup; each mount copies the slices

package screens

import (
	"embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/2389/tymex-console/internal/agents"
)

//go:embed seed/*.yaml
var seedFS embed.FS

// Seeds holds the initial contents of every screen.
type Seeds struct {
	SlackAgents        []agents.Agent
	WebAgents          []agents.Agent
	Channels           []ChannelPermission
	UserPermissions    []UserPermission
	WebUserPermissions []UserPermission
	PlatformUsers      []PlatformUser
}

// LoadSeeds parses the embedded fixtures.
func LoadSeeds() (*Seeds, error) {
	var agentFile struct {
		Slack []agents.Agent `yaml:"slack"`
		Web   []agents.Agent `yaml:"web"`
	}
	if err := decodeSeed("agents.yaml", &agentFile); err != nil {
		return nil, err
	}

	s := &Seeds{
		SlackAgents: agentFile.Slack,
		WebAgents:   agentFile.Web,
	}
	for name, dst := range map[string]any{
		"channel_permissions.yaml":  &s.Channels,
		"user_permissions.yaml":     &s.UserPermissions,
		"web_user_permissions.yaml": &s.WebUserPermissions,
		"users.yaml":                &s.PlatformUsers,
	} {
		if err := decodeSeed(name, dst); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func decodeSeed(name string, dst any) error {
	data, err := seedFS.ReadFile("seed/" + name)
	if err != nil {
		return fmt.Errorf("reading seed %s: %w", name, err)
	}
	if err := yaml.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("parsing seed %s: %w", name, err)
	}
	return nil
}
