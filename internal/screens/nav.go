// ABOUTME: Closed navigation set selecting which screen a console mounts
// ABOUTME: Parsing rejects anything outside the set

package screens

import (
	"errors"
	"fmt"
)

// ErrUnknownNavigation is returned for selections outside the navigation set.
var ErrUnknownNavigation = errors.New("unknown navigation item")

// Navigation identifies one sidebar entry.
type Navigation string

const (
	NavDashboard          Navigation = "dashboard"
	NavChannelPermissions Navigation = "channel-permissions"
	NavUserPermissions    Navigation = "user-permissions"
	NavUserManagement     Navigation = "user-management"
	NavWebDashboard       Navigation = "web-dashboard"
	NavWebUserPermissions Navigation = "web-user-permissions"
)

// Navigations lists every item in sidebar order.
var Navigations = []Navigation{
	NavDashboard,
	NavChannelPermissions,
	NavUserPermissions,
	NavWebDashboard,
	NavWebUserPermissions,
	NavUserManagement,
}

// ParseNavigation validates s.
func ParseNavigation(s string) (Navigation, error) {
	for _, n := range Navigations {
		if string(n) == s {
			return n, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownNavigation, s)
}

// Label is the sidebar text.
func (n Navigation) Label() string {
	switch n {
	case NavDashboard, NavWebDashboard:
		return "Dashboard"
	case NavChannelPermissions:
		return "Channel Permissions"
	case NavUserPermissions, NavWebUserPermissions:
		return "User Permissions"
	case NavUserManagement:
		return "User Management"
	default:
		return string(n)
	}
}

// Group is the sidebar section the item sits under, or "" for top level.
func (n Navigation) Group() string {
	switch n {
	case NavDashboard, NavChannelPermissions, NavUserPermissions:
		return "Slack"
	case NavWebDashboard, NavWebUserPermissions:
		return "Web"
	default:
		return ""
	}
}
