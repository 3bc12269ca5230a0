// ABOUTME: Package store provides the console's audit ledger
// ABOUTME: SQLite-backed with an in-memory mock for tests

// Package store records who changed which console record.
//
// Screen data itself is never persisted: every screen restores its seed
// fixtures when it mounts. The ledger is the only durable state, and by
// default it too lives in memory (MemoryPath) unless an operator points
// the database path at a file.
//
// # Drivers
//
// SQLiteStore works with either registered SQLite driver:
//
//   - DriverModernc ("sqlite"): pure Go, the default
//   - DriverCgo ("sqlite3"): github.com/mattn/go-sqlite3, requires cgo
//
// # Entries
//
// AuditEntry carries the actor (the signed-in user's email), the action,
// the navigation item that owns the record, the record id, and the field
// values after the change as JSON detail. ListAuditLog filters on any of
// those and returns entries newest first, 100 by default and at most 1000.
//
// MockStore implements the same interface and filtering rules in memory.
package store
