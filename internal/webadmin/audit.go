// ABOUTME: Audit log page listing recorded console mutations
// ABOUTME: Supports filtering by screen, actor and action through query parameters

package webadmin

import (
	"net/http"
	"slices"

	"github.com/2389/tymex-console/internal/store"
)

const auditPageLimit = 200

func (a *Admin) handleAudit(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()
	data := auditData{
		shellData: a.buildShell(r, "", "Audit Log"),
		Screen:    params.Get("screen"),
		Actor:     params.Get("actor"),
		Action:    params.Get("action"),
		Actions:   store.ValidAuditActions,
	}

	filter := store.AuditFilter{Limit: auditPageLimit}
	if data.Screen != "" {
		filter.Screen = &data.Screen
	}
	if data.Actor != "" {
		filter.Actor = &data.Actor
	}
	if data.Action != "" {
		action := store.AuditAction(data.Action)
		if !slices.Contains(store.ValidAuditActions, action) {
			http.Error(w, "unknown audit action", http.StatusBadRequest)
			return
		}
		filter.Action = &action
	}

	if a.audit != nil {
		entries, err := a.audit.ListAuditLog(r.Context(), filter)
		if err != nil {
			a.logger.Error("failed to list audit log", "error", err)
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		data.Entries = entries
	}

	a.renderAudit(w, data)
}
