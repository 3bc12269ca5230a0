// ABOUTME: Mock Store implementation for testing
// ABOUTME: Keeps audit entries in memory with the same filtering rules as SQLite

package store

import (
	"context"
	"errors"
	"sort"
	"sync"
)

// ErrClosed is returned by MockStore after Close.
var ErrClosed = errors.New("store closed")

// MockStore is an in-memory Store implementation for testing.
type MockStore struct {
	mu      sync.RWMutex
	entries []AuditEntry
	closed  bool

	// AppendErr, when set, is returned by AppendAuditLog.
	AppendErr error
}

// NewMockStore creates a new MockStore.
func NewMockStore() *MockStore {
	return &MockStore{}
}

// AppendAuditLog stores a copy of e.
func (m *MockStore) AppendAuditLog(ctx context.Context, e *AuditEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrClosed
	}
	if m.AppendErr != nil {
		return m.AppendErr
	}

	stamp(e)
	cp := *e
	if e.Detail != nil {
		cp.Detail = make(map[string]any, len(e.Detail))
		for k, v := range e.Detail {
			cp.Detail[k] = v
		}
	}
	m.entries = append(m.entries, cp)
	return nil
}

// ListAuditLog returns matching entries newest first.
func (m *MockStore) ListAuditLog(ctx context.Context, f AuditFilter) ([]AuditEntry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return nil, ErrClosed
	}

	out := []AuditEntry{}
	for i := len(m.entries) - 1; i >= 0; i-- {
		e := m.entries[i]
		switch {
		case f.Since != nil && e.Timestamp.Before(*f.Since),
			f.Until != nil && e.Timestamp.After(*f.Until),
			f.Actor != nil && e.Actor != *f.Actor,
			f.Action != nil && e.Action != *f.Action,
			f.Screen != nil && e.Screen != *f.Screen,
			f.TargetID != nil && e.TargetID != *f.TargetID:
			continue
		}
		out = append(out, e)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp.After(out[j].Timestamp)
	})

	if limit := normalizeAuditLimit(f.Limit); len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// Close marks the store closed.
func (m *MockStore) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}
