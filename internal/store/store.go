// ABOUTME: Store interface for the console's audit ledger
// ABOUTME: Implemented by SQLiteStore for real use and MockStore for tests

package store

import (
	"context"
	"errors"
)

// ErrUnknownDriver is returned when the configured SQL driver is not supported.
var ErrUnknownDriver = errors.New("unknown database driver")

// Store records and lists audit entries.
type Store interface {
	AppendAuditLog(ctx context.Context, e *AuditEntry) error
	ListAuditLog(ctx context.Context, f AuditFilter) ([]AuditEntry, error)
	Close() error
}

var (
	_ Store = (*SQLiteStore)(nil)
	_ Store = (*MockStore)(nil)
)
