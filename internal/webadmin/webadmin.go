// ABOUTME: Admin web UI package for the tymex-console
// ABOUTME: Provides login, session and CSRF middleware, workspace cookies and public routes

package webadmin

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/2389/tymex-console/internal/dedupe"
	"github.com/2389/tymex-console/internal/metrics"
	"github.com/2389/tymex-console/internal/screens"
	"github.com/2389/tymex-console/internal/session"
	"github.com/2389/tymex-console/internal/store"
)

const (
	// CSRFCookieName is the name of the CSRF token cookie
	CSRFCookieName = "tymex_csrf"

	// WorkspaceCookieName identifies the browser's console workspace
	WorkspaceCookieName = "tymex_workspace"

	// ThemeCookieName stores the light/dark preference
	ThemeCookieName = "tymex_theme"
)

// Themes
const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)

// contextKey is a custom type for context keys to avoid collisions
type contextKey string

const csrfContextKey contextKey = "csrf_token"

// Config holds admin UI configuration
type Config struct {
	// SecureCookies marks every cookie Secure; enable behind HTTPS.
	SecureCookies bool

	// MetricsPath mounts the Prometheus handler when Metrics is non-nil.
	MetricsPath string
}

// AuditReader lists audit entries for the audit page.
type AuditReader interface {
	ListAuditLog(ctx context.Context, f store.AuditFilter) ([]store.AuditEntry, error)
}

// Admin handles console routes and authentication
type Admin struct {
	sessions   *session.Manager
	workspaces *screens.Workspaces
	audit      AuditReader
	guard      *dedupe.Guard
	metrics    *metrics.Metrics
	config     Config
	logger     *slog.Logger
}

// New creates a new Admin handler. audit and m may be nil.
func New(sessions *session.Manager, workspaces *screens.Workspaces, audit AuditReader, guard *dedupe.Guard, m *metrics.Metrics, cfg Config) *Admin {
	return &Admin{
		sessions:   sessions,
		workspaces: workspaces,
		audit:      audit,
		guard:      guard,
		metrics:    m,
		config:     cfg,
		logger:     slog.Default().With("component", "admin"),
	}
}

// Handler returns a mux with every route registered.
func (a *Admin) Handler() http.Handler {
	mux := http.NewServeMux()
	a.RegisterRoutes(mux)
	return mux
}

// RegisterRoutes registers all admin routes on the given mux
func (a *Admin) RegisterRoutes(mux *http.ServeMux) {
	// Public routes (no auth required)
	mux.HandleFunc("GET /login", a.handleLoginPage)
	mux.HandleFunc("POST /login", a.handleLogin)
	mux.HandleFunc("POST /login/microsoft", a.handleLoginMicrosoft)
	mux.HandleFunc("POST /theme", a.handleTheme)
	mux.HandleFunc("GET /health", a.handleHealth)

	// Protected routes (auth required)
	mux.HandleFunc("GET /{$}", a.requireAuth(a.handleRoot))
	mux.HandleFunc("POST /logout", a.requireAuth(a.handleLogout))
	mux.HandleFunc("GET /help", a.requireAuth(a.handleHelp))
	mux.HandleFunc("GET /console/audit", a.requireAuth(a.handleAudit))

	// Screens
	mux.HandleFunc("GET /console/{nav}", a.withConsole(a.handleScreen))
	mux.HandleFunc("GET /console/{nav}/rows", a.withConsole(a.handleRows))

	// Dialog
	mux.HandleFunc("POST /console/{nav}/dialog/new", a.withConsole(a.handleDialogNew))
	mux.HandleFunc("POST /console/{nav}/dialog/edit/{id}", a.withConsole(a.handleDialogEdit))
	mux.HandleFunc("POST /console/{nav}/dialog/field", a.withConsole(a.handleDialogField))
	mux.HandleFunc("POST /console/{nav}/dialog/submit", a.withConsole(a.handleDialogSubmit))
	mux.HandleFunc("POST /console/{nav}/dialog/cancel", a.withConsole(a.handleDialogCancel))

	// Row actions
	mux.HandleFunc("POST /console/{nav}/records/{id}/delete", a.withConsole(a.handleRecordDelete))
	mux.HandleFunc("POST /console/{nav}/records/{id}/deactivate", a.withConsole(a.handleRecordDeactivate))

	if a.metrics != nil && a.config.MetricsPath != "" {
		mux.Handle("GET "+a.config.MetricsPath, a.metrics.Handler())
	}

	a.logger.Info("admin routes registered")
}

// requireAuth wraps a handler to require a session and a valid CSRF token
// on POST. The user is stored in the request context.
func (a *Admin) requireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, err := a.sessions.FromRequest(r)
		if err != nil {
			if !errors.Is(err, session.ErrNoSession) {
				a.logger.Debug("rejecting session", "error", err)
			}
			a.redirect(w, r, "/login")
			return
		}

		if r.Method == http.MethodPost && !a.validateCSRF(r) {
			http.Error(w, "invalid CSRF token", http.StatusForbidden)
			return
		}

		r, _ = a.ensureCSRFToken(w, r)
		ctx := session.WithUser(r.Context(), user)
		next(w, r.WithContext(ctx))
	}
}

// consoleHandler is a handler that runs against the caller's workspace.
type consoleHandler func(w http.ResponseWriter, r *http.Request, c *screens.Console)

// withConsole wraps requireAuth and resolves the workspace cookie,
// issuing a new workspace when the cookie is missing or expired.
func (a *Admin) withConsole(next consoleHandler) http.HandlerFunc {
	return a.requireAuth(func(w http.ResponseWriter, r *http.Request) {
		var id string
		if cookie, err := r.Cookie(WorkspaceCookieName); err == nil {
			id = cookie.Value
		}

		newID, console, err := a.workspaces.Get(r.Context(), id)
		if err != nil {
			a.logger.Error("failed to open workspace", "error", err)
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		if newID != id {
			http.SetCookie(w, &http.Cookie{
				Name:     WorkspaceCookieName,
				Value:    newID,
				Path:     "/",
				HttpOnly: true,
				Secure:   a.config.SecureCookies,
				SameSite: http.SameSiteLaxMode,
			})
			a.metrics.SetWorkspaces(a.workspaces.Len())
		}

		next(w, r, console)
	})
}

// redirect sends the browser to path, using HX-Redirect for htmx requests
func (a *Admin) redirect(w http.ResponseWriter, r *http.Request, path string) {
	if isHTMX(r) {
		w.Header().Set("HX-Redirect", path)
		w.WriteHeader(http.StatusOK)
		return
	}
	http.Redirect(w, r, path, http.StatusSeeOther)
}

func isHTMX(r *http.Request) bool {
	return r.Header.Get("HX-Request") == "true"
}

// getCSRFToken retrieves the CSRF token from the request context
func getCSRFToken(r *http.Request) string {
	token, _ := r.Context().Value(csrfContextKey).(string)
	return token
}

// ensureCSRFToken generates a CSRF token if not present and adds it to context
func (a *Admin) ensureCSRFToken(w http.ResponseWriter, r *http.Request) (*http.Request, string) {
	cookie, err := r.Cookie(CSRFCookieName)
	if err == nil && cookie.Value != "" {
		ctx := context.WithValue(r.Context(), csrfContextKey, cookie.Value)
		return r.WithContext(ctx), cookie.Value
	}

	token, err := generateSecureToken(32)
	if err != nil {
		a.logger.Error("failed to generate CSRF token", "error", err)
		token = "" // Will fail validation, but won't crash
	}

	http.SetCookie(w, &http.Cookie{
		Name:     CSRFCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   a.config.SecureCookies,
		SameSite: http.SameSiteStrictMode,
	})

	ctx := context.WithValue(r.Context(), csrfContextKey, token)
	return r.WithContext(ctx), token
}

// validateCSRF checks the CSRF token from form against cookie
func (a *Admin) validateCSRF(r *http.Request) bool {
	cookie, err := r.Cookie(CSRFCookieName)
	if err != nil || cookie.Value == "" {
		return false
	}

	formToken := r.FormValue("csrf_token")
	if formToken == "" {
		// Also check header for htmx requests
		formToken = r.Header.Get("X-CSRF-Token")
	}

	return formToken != "" && formToken == cookie.Value
}

// generateSecureToken generates a cryptographically secure random token
func generateSecureToken(length int) (string, error) {
	b := make([]byte, length)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// themeFromRequest returns the stored theme, defaulting to light
func themeFromRequest(r *http.Request) string {
	if c, err := r.Cookie(ThemeCookieName); err == nil && c.Value == ThemeDark {
		return ThemeDark
	}
	return ThemeLight
}

func (a *Admin) handleLoginPage(w http.ResponseWriter, r *http.Request) {
	if _, err := a.sessions.FromRequest(r); err == nil {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	r, csrfToken := a.ensureCSRFToken(w, r)
	a.renderLoginPage(w, http.StatusOK, loginData{
		Title:     "Login",
		Theme:     themeFromRequest(r),
		CSRFToken: csrfToken,
	})
}

func (a *Admin) handleLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		_, csrfToken := a.ensureCSRFToken(w, r)
		a.renderLoginPage(w, http.StatusBadRequest, loginData{Title: "Login", Theme: themeFromRequest(r), Error: "Invalid form data", CSRFToken: csrfToken})
		return
	}

	if !a.validateCSRF(r) {
		_, csrfToken := a.ensureCSRFToken(w, r)
		a.renderLoginPage(w, http.StatusForbidden, loginData{Title: "Login", Theme: themeFromRequest(r), Error: "Invalid request, please try again", CSRFToken: csrfToken})
		return
	}

	email := r.FormValue("email")
	user, err := a.sessions.Login(email, r.FormValue("password"))
	if err != nil {
		_, csrfToken := a.ensureCSRFToken(w, r)
		a.renderLoginPage(w, http.StatusBadRequest, loginData{
			Title:     "Login",
			Theme:     themeFromRequest(r),
			Error:     "Please enter your email address",
			Email:     email,
			CSRFToken: csrfToken,
		})
		return
	}

	a.completeLogin(w, r, user, session.MethodPassword)
}

func (a *Admin) handleLoginMicrosoft(w http.ResponseWriter, r *http.Request) {
	if !a.validateCSRF(r) {
		http.Error(w, "invalid CSRF token", http.StatusForbidden)
		return
	}
	a.completeLogin(w, r, a.sessions.LoginWithMicrosoft(), session.MethodMicrosoft)
}

func (a *Admin) completeLogin(w http.ResponseWriter, r *http.Request, user session.User, method string) {
	if err := a.sessions.Issue(w, user); err != nil {
		a.logger.Error("failed to issue session", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	a.metrics.ObserveLogin(method)
	a.logger.Info("user logged in", "email", user.Email, "method", method)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (a *Admin) handleLogout(w http.ResponseWriter, r *http.Request) {
	a.sessions.Clear(w)
	a.redirect(w, r, "/login")
}

func (a *Admin) handleRoot(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/console/"+string(screens.NavDashboard), http.StatusSeeOther)
}

// handleTheme stores the theme preference and returns to the referring page
func (a *Admin) handleTheme(w http.ResponseWriter, r *http.Request) {
	if !a.validateCSRF(r) {
		http.Error(w, "invalid CSRF token", http.StatusForbidden)
		return
	}

	theme := r.FormValue("theme")
	if theme != ThemeLight && theme != ThemeDark {
		http.Error(w, "theme must be light or dark", http.StatusBadRequest)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     ThemeCookieName,
		Value:    theme,
		Path:     "/",
		MaxAge:   365 * 24 * 60 * 60,
		Secure:   a.config.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	})

	a.redirect(w, r, localPath(r.FormValue("return_to")))
}

// localPath returns back when it is a path on this host, "/" otherwise.
// Browsers treat a leading "/\" like "//".
func localPath(back string) string {
	if !strings.HasPrefix(back, "/") || strings.HasPrefix(back, "//") || strings.HasPrefix(back, "/\\") {
		return "/"
	}
	u, err := url.Parse(back)
	if err != nil || u.Scheme != "" || u.Host != "" {
		return "/"
	}
	return back
}

func (a *Admin) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(map[string]any{
		"status":     "ok",
		"workspaces": a.workspaces.Len(),
	}); err != nil {
		a.logger.Error("failed to write health response", "error", err)
	}
}
