// ABOUTME: Enumerated option sets and their display styles
// ABOUTME: Holds both scope enumerations as named sets selectable from configuration

package schema

import (
	"errors"
	"fmt"
	"slices"
)

// Style is a visual category used when rendering an enumerated value as a badge.
type Style string

const (
	StyleGreen       Style = "green"
	StyleRed         Style = "red"
	StyleBlue        Style = "blue"
	StyleSky         Style = "sky"
	StyleAmber       Style = "amber"
	StyleViolet      Style = "violet"
	StyleYellow      Style = "yellow"
	StyleGray        Style = "gray"
	StyleDestructive Style = "destructive"
	StyleOutline     Style = "outline"
	StyleNeutral     Style = "neutral"
)

// ErrUnknownOptionSet is returned when a named option set does not exist.
var ErrUnknownOptionSet = errors.New("unknown option set")

// Option is one member of an enumerated set.
type Option struct {
	Value string
	Label string
	Style Style
}

// OptionSet is a closed, ordered enumeration.
type OptionSet struct {
	Name    string
	Options []Option
}

// Contains reports whether v is a member of the set.
func (s OptionSet) Contains(v string) bool {
	return slices.ContainsFunc(s.Options, func(o Option) bool { return o.Value == v })
}

// StyleFor returns the display style for v. Values outside the set get
// StyleNeutral.
func (s OptionSet) StyleFor(v string) Style {
	for _, o := range s.Options {
		if o.Value == v {
			return o.Style
		}
	}
	return StyleNeutral
}

// LabelFor returns the display label for v, or v itself when unmapped.
func (s OptionSet) LabelFor(v string) string {
	for _, o := range s.Options {
		if o.Value == v {
			return o.Label
		}
	}
	return v
}

// Values lists the member values in order.
func (s OptionSet) Values() []string {
	out := make([]string, len(s.Options))
	for i, o := range s.Options {
		out[i] = o.Value
	}
	return out
}

// Scope set names accepted in configuration.
const (
	ScopeSetAccess     = "access"
	ScopeSetCapability = "capability"
)

var (
	// AccessScopes grants or withholds an agent's access outright.
	AccessScopes = OptionSet{Name: ScopeSetAccess, Options: []Option{
		{Value: "custom", Label: "Custom", Style: StyleBlue},
		{Value: "allowed", Label: "Allowed", Style: StyleGreen},
		{Value: "not_allowed", Label: "Not Allowed", Style: StyleRed},
	}}

	// CapabilityScopes names the capability an agent may use for a subject.
	CapabilityScopes = OptionSet{Name: ScopeSetCapability, Options: []Option{
		{Value: "Browser Web", Label: "Browser Web", Style: StyleSky},
		{Value: "Catch up", Label: "Catch up", Style: StyleAmber},
		{Value: "Look up", Label: "Look up", Style: StyleViolet},
	}}

	ChannelCatchup = OptionSet{Name: "channel-catchup", Options: []Option{
		{Value: "real-time", Label: "Real-time", Style: StyleNeutral},
		{Value: "hourly", Label: "Hourly", Style: StyleNeutral},
		{Value: "daily", Label: "Daily", Style: StyleNeutral},
		{Value: "weekly", Label: "Weekly", Style: StyleNeutral},
	}}

	UserCatchup = OptionSet{Name: "user-catchup", Options: []Option{
		{Value: "hourly", Label: "Hourly", Style: StyleNeutral},
		{Value: "daily", Label: "Daily", Style: StyleNeutral},
		{Value: "weekly", Label: "Weekly", Style: StyleNeutral},
	}}

	Roles = OptionSet{Name: "role", Options: []Option{
		{Value: "Admin", Label: "Admin", Style: StyleDestructive},
		{Value: "Editor", Label: "Editor", Style: StyleBlue},
		{Value: "Viewer", Label: "Viewer", Style: StyleOutline},
	}}

	UserStatuses = OptionSet{Name: "status", Options: []Option{
		{Value: "active", Label: "active", Style: StyleGreen},
		{Value: "inactive", Label: "inactive", Style: StyleGray},
		{Value: "pending", Label: "pending", Style: StyleYellow},
	}}
)

// ScopeSet resolves a configured scope set name. The two scope
// enumerations are never merged.
func ScopeSet(name string) (OptionSet, error) {
	switch name {
	case ScopeSetAccess:
		return AccessScopes, nil
	case ScopeSetCapability:
		return CapabilityScopes, nil
	default:
		return OptionSet{}, fmt.Errorf("%w: %q", ErrUnknownOptionSet, name)
	}
}
