// ABOUTME: Package screens composes record stores, filters, dialogs and tables per entity
// ABOUTME: Also owns navigation, seed fixtures and the per-workspace console

// Package screens wires the generic record pattern into the console's
// screens.
//
// Each navigation item mounts a screen. Record screens (channel
// permissions, user permissions, web user permissions and user
// management) share one generic implementation parameterised by a field
// schema, table columns and row actions. Dashboards list agents.
//
// A Console owns the mounted screen for one browser workspace. Switching
// navigation remounts the target screen from the embedded seed fixtures,
// so record changes last only as long as the screen stays selected.
// Consoles serialize their events; Workspaces hands them out by cookie id
// and drops idle ones.
//
// Committed mutations and rejected drafts are reported to an Observer.
// Recorder is the production observer: it writes audit entries and
// updates metrics, logging rather than surfacing its own failures.
package screens
