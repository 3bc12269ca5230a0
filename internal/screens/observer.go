// ABOUTME: Mutation observers notified after every committed record change
// ABOUTME: Recorder appends audit entries and bumps metrics; failures are logged only

package screens

import (
	"context"
	"log/slog"

	"github.com/2389/tymex-console/internal/metrics"
	"github.com/2389/tymex-console/internal/records"
	"github.com/2389/tymex-console/internal/store"
)

// MutationKind names a committed change.
type MutationKind string

const (
	MutationCreate     MutationKind = "create"
	MutationUpdate     MutationKind = "update"
	MutationDelete     MutationKind = "delete"
	MutationDeactivate MutationKind = "deactivate"
)

// Mutation describes one committed change to a screen's records.
type Mutation struct {
	Screen   Navigation
	Kind     MutationKind
	TargetID string
	Detail   map[string]string
}

// Observer is told about screen lifecycle and record changes. It must not
// fail the operation that triggered it.
type Observer interface {
	Mounted(ctx context.Context, nav Navigation)
	Committed(ctx context.Context, m Mutation)
	Rejected(ctx context.Context, nav Navigation, verr *records.ValidationError)
}

// NopObserver ignores everything.
type NopObserver struct{}

func (NopObserver) Mounted(context.Context, Navigation)                            {}
func (NopObserver) Committed(context.Context, Mutation)                            {}
func (NopObserver) Rejected(context.Context, Navigation, *records.ValidationError) {}

// AuditLog is the subset of the store used for recording mutations.
type AuditLog interface {
	AppendAuditLog(ctx context.Context, e *store.AuditEntry) error
}

// Recorder writes mutations to the audit log and metrics.
type Recorder struct {
	audit   AuditLog
	metrics *metrics.Metrics
	actor   func(context.Context) string
	logger  *slog.Logger
}

// NewRecorder creates a Recorder. actor extracts the signed-in user from
// the request context; m may be nil when metrics are disabled.
func NewRecorder(audit AuditLog, m *metrics.Metrics, actor func(context.Context) string) *Recorder {
	return &Recorder{
		audit:   audit,
		metrics: m,
		actor:   actor,
		logger:  slog.Default().With("component", "screens"),
	}
}

var auditActions = map[MutationKind]store.AuditAction{
	MutationCreate:     store.AuditCreateRecord,
	MutationUpdate:     store.AuditUpdateRecord,
	MutationDelete:     store.AuditDeleteRecord,
	MutationDeactivate: store.AuditDeactivateUser,
}

func (r *Recorder) Mounted(_ context.Context, nav Navigation) {
	r.metrics.ObserveMount(string(nav))
}

func (r *Recorder) Committed(ctx context.Context, m Mutation) {
	r.metrics.ObserveMutation(string(m.Screen), string(m.Kind))

	detail := make(map[string]any, len(m.Detail))
	for k, v := range m.Detail {
		detail[k] = v
	}
	entry := &store.AuditEntry{
		Actor:    r.actor(ctx),
		Action:   auditActions[m.Kind],
		Screen:   string(m.Screen),
		TargetID: m.TargetID,
		Detail:   detail,
	}
	if err := r.audit.AppendAuditLog(ctx, entry); err != nil {
		r.logger.Error("failed to append audit entry", "error", err, "screen", m.Screen, "action", m.Kind, "target", m.TargetID)
		return
	}
	r.logger.Info("record changed", "screen", m.Screen, "action", m.Kind, "target", m.TargetID, "actor", entry.Actor)
}

func (r *Recorder) Rejected(_ context.Context, nav Navigation, verr *records.ValidationError) {
	r.metrics.ObserveRejection(string(nav))
	r.logger.Debug("draft rejected", "screen", nav, "error", verr)
}
