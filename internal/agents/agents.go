// ABOUTME: Agent directory supplied to permission screens as read-only input
// ABOUTME: Derives selectable agent options while tolerating blank agent names

package agents

import "strings"

// Status is the operational state reported for an agent.
type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
	StatusError    Status = "error"
)

// Agent is an AI agent that permissions are granted to.
type Agent struct {
	ID          string `yaml:"id"`
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Status      Status `yaml:"status"`
	IconName    string `yaml:"icon"`
}

// Selectable reports whether the agent can be offered as a choice.
// Agents with a blank name still exist but cannot be picked.
func (a Agent) Selectable() bool {
	return strings.TrimSpace(a.Name) != ""
}

// Icon returns the icon name, falling back to "Bot" for unknown icons.
func (a Agent) Icon() string {
	switch a.IconName {
	case "Bot", "Cpu", "Zap", "Brain":
		return a.IconName
	default:
		return "Bot"
	}
}

// StatusColor returns the indicator colour used for the agent's status dot.
func (a Agent) StatusColor() string {
	switch a.Status {
	case StatusActive:
		return "green"
	case StatusInactive:
		return "yellow"
	case StatusError:
		return "red"
	default:
		return "gray"
	}
}

// Directory is an ordered, read-only list of agents.
// Screens receive it by value and never modify it.
type Directory struct {
	agents []Agent
}

// NewDirectory copies the given agents into a Directory, preserving order.
func NewDirectory(list ...Agent) Directory {
	cp := make([]Agent, len(list))
	copy(cp, list)
	return Directory{agents: cp}
}

// All returns a copy of every agent, including ones with blank names.
func (d Directory) All() []Agent {
	cp := make([]Agent, len(d.agents))
	copy(cp, d.agents)
	return cp
}

// Len returns the number of agents.
func (d Directory) Len() int { return len(d.agents) }

// Selectable returns agents that may appear as a choice, in order.
func (d Directory) Selectable() []Agent {
	var out []Agent
	for _, a := range d.agents {
		if a.Selectable() {
			out = append(out, a)
		}
	}
	return out
}

// FirstSelectable returns the name of the first agent with a non-blank name,
// or an empty string when no agent qualifies.
func (d Directory) FirstSelectable() string {
	for _, a := range d.agents {
		if a.Selectable() {
			return a.Name
		}
	}
	return ""
}
