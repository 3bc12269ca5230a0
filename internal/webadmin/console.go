// ABOUTME: Console route handlers driving the mounted screen of a workspace
// ABOUTME: Maps filter, dialog and row-action requests onto screens and renders the result

package webadmin

import (
	"errors"
	"net/http"

	"github.com/2389/tymex-console/internal/dialog"
	"github.com/2389/tymex-console/internal/records"
	"github.com/2389/tymex-console/internal/schema"
	"github.com/2389/tymex-console/internal/screens"
)

var (
	errNotRecordScreen = errors.New("screen has no records")
	errDuplicateSubmit = errors.New("form already submitted")
)

// statusFor maps console errors onto HTTP status codes
func statusFor(err error) int {
	var verr *records.ValidationError
	switch {
	case errors.As(err, &verr):
		return http.StatusUnprocessableEntity
	case errors.Is(err, records.ErrNotFound),
		errors.Is(err, screens.ErrUnknownNavigation),
		errors.Is(err, errNotRecordScreen):
		return http.StatusNotFound
	case errors.Is(err, dialog.ErrClosed), errors.Is(err, errDuplicateSubmit):
		return http.StatusConflict
	case errors.Is(err, schema.ErrUnknownField),
		errors.Is(err, schema.ErrReadOnly),
		errors.Is(err, screens.ErrUnsupported):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// navFromRequest parses the {nav} path value, writing 404 when unknown
func (a *Admin) navFromRequest(w http.ResponseWriter, r *http.Request) (screens.Navigation, bool) {
	nav, err := screens.ParseNavigation(r.PathValue("nav"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return "", false
	}
	return nav, true
}

// applyQuery updates the screen's filter from search/agent query params.
// Absent params keep the current values.
func applyQuery(rs screens.RecordScreen, r *http.Request) {
	params := r.URL.Query()
	q := rs.Query()
	if params.Has("search") {
		q.Search = params.Get("search")
	}
	if params.Has("agent") {
		q.Category = params.Get("agent")
	}
	rs.SetQuery(q)
}

// recordAction runs fn against the record screen for nav and renders the
// resulting screen state. Validation failures keep the dialog open and
// render it with field errors.
func (a *Admin) recordAction(w http.ResponseWriter, r *http.Request, c *screens.Console, fn func(rs screens.RecordScreen) error) {
	nav, ok := a.navFromRequest(w, r)
	if !ok {
		return
	}

	var (
		data    screenData
		actErr  error
		loadErr error
	)
	loadErr = c.With(r.Context(), nav, func(scr screens.Screen) error {
		rs, ok := scr.(screens.RecordScreen)
		if !ok {
			return errNotRecordScreen
		}
		actErr = fn(rs)
		data = a.buildScreenData(r, rs)
		return nil
	})
	if loadErr != nil {
		http.Error(w, loadErr.Error(), statusFor(loadErr))
		return
	}

	status := http.StatusOK
	if actErr != nil {
		status = statusFor(actErr)
		if status == http.StatusInternalServerError {
			a.logger.Error("console action failed", "screen", nav, "error", actErr)
			http.Error(w, "internal error", status)
			return
		}
		if status != http.StatusUnprocessableEntity {
			data.Flash = actErr.Error()
		}
	}
	a.renderScreen(w, r, status, data)
}

// handleScreen renders the full page for a navigation item
func (a *Admin) handleScreen(w http.ResponseWriter, r *http.Request, c *screens.Console) {
	nav, ok := a.navFromRequest(w, r)
	if !ok {
		return
	}

	var (
		page     screenData
		dash     dashboardData
		isRecord bool
	)
	err := c.With(r.Context(), nav, func(scr screens.Screen) error {
		switch s := scr.(type) {
		case screens.RecordScreen:
			applyQuery(s, r)
			page = a.buildScreenData(r, s)
			isRecord = true
		case screens.DashboardScreen:
			dash = dashboardData{
				shellData: a.buildShell(r, nav, s.Header().Title),
				Header:    s.Header(),
				Agents:    s.Agents(),
			}
		default:
			return errNotRecordScreen
		}
		return nil
	})
	if err != nil {
		http.Error(w, err.Error(), statusFor(err))
		return
	}

	if isRecord {
		a.renderScreen(w, r, http.StatusOK, page)
		return
	}
	a.renderDashboard(w, dash)
}

// handleRows renders only the table for live search and agent filtering
func (a *Admin) handleRows(w http.ResponseWriter, r *http.Request, c *screens.Console) {
	nav, ok := a.navFromRequest(w, r)
	if !ok {
		return
	}

	var data screenData
	err := c.With(r.Context(), nav, func(scr screens.Screen) error {
		rs, ok := scr.(screens.RecordScreen)
		if !ok {
			return errNotRecordScreen
		}
		applyQuery(rs, r)
		data = a.buildScreenData(r, rs)
		return nil
	})
	if err != nil {
		http.Error(w, err.Error(), statusFor(err))
		return
	}
	a.renderPartial(w, http.StatusOK, "table", data)
}

func (a *Admin) handleDialogNew(w http.ResponseWriter, r *http.Request, c *screens.Console) {
	a.recordAction(w, r, c, func(rs screens.RecordScreen) error {
		rs.OpenCreate()
		return nil
	})
}

func (a *Admin) handleDialogEdit(w http.ResponseWriter, r *http.Request, c *screens.Console) {
	id := r.PathValue("id")
	a.recordAction(w, r, c, func(rs screens.RecordScreen) error {
		return rs.OpenEdit(id)
	})
}

// handleDialogField sets one draft field, used by selects that post on change
func (a *Admin) handleDialogField(w http.ResponseWriter, r *http.Request, c *screens.Console) {
	name, value := r.FormValue("name"), r.FormValue("value")
	a.recordAction(w, r, c, func(rs screens.RecordScreen) error {
		return rs.SetField(name, value)
	})
}

// handleDialogSubmit copies every editable field from the form into the
// draft and submits it. A submit token is honoured once.
func (a *Admin) handleDialogSubmit(w http.ResponseWriter, r *http.Request, c *screens.Console) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form data", http.StatusBadRequest)
		return
	}
	a.recordAction(w, r, c, func(rs screens.RecordScreen) error {
		view := rs.Dialog()
		if !view.Open {
			return dialog.ErrClosed
		}
		if !a.claimSubmit(r) {
			return errDuplicateSubmit
		}
		for _, f := range view.Fields {
			if f.Disabled || !r.PostForm.Has(f.Name) {
				continue
			}
			if err := rs.SetField(f.Name, r.PostForm.Get(f.Name)); err != nil {
				return err
			}
		}
		return rs.Submit(r.Context())
	})
}

func (a *Admin) handleDialogCancel(w http.ResponseWriter, r *http.Request, c *screens.Console) {
	a.recordAction(w, r, c, func(rs screens.RecordScreen) error {
		rs.Cancel()
		return nil
	})
}

func (a *Admin) handleRecordDelete(w http.ResponseWriter, r *http.Request, c *screens.Console) {
	id := r.PathValue("id")
	a.recordAction(w, r, c, func(rs screens.RecordScreen) error {
		if !a.claimSubmit(r) {
			return errDuplicateSubmit
		}
		return rs.Delete(r.Context(), id)
	})
}

func (a *Admin) handleRecordDeactivate(w http.ResponseWriter, r *http.Request, c *screens.Console) {
	id := r.PathValue("id")
	a.recordAction(w, r, c, func(rs screens.RecordScreen) error {
		if !a.claimSubmit(r) {
			return errDuplicateSubmit
		}
		return rs.Deactivate(r.Context(), id)
	})
}

// claimSubmit reports whether the request's submit token is unused.
// Requests without a token are let through.
func (a *Admin) claimSubmit(r *http.Request) bool {
	token := r.FormValue("submit_token")
	if token == "" || a.guard == nil {
		return true
	}
	return a.guard.Claim(token)
}
