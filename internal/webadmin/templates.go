// ABOUTME: Template rendering functions for the console UI
// ABOUTME: Loads templates from the embedded filesystem and builds page data for them

package webadmin

import (
	"bytes"
	"html/template"
	"net/http"
	"time"

	"github.com/yuin/goldmark"

	"github.com/2389/tymex-console/internal/agents"
	"github.com/2389/tymex-console/internal/records"
	"github.com/2389/tymex-console/internal/schema"
	"github.com/2389/tymex-console/internal/screens"
	"github.com/2389/tymex-console/internal/session"
	"github.com/2389/tymex-console/internal/store"
	"github.com/2389/tymex-console/internal/table"
)

// Template data types
type loginData struct {
	Title     string
	Theme     string
	Error     string
	Email     string
	CSRFToken string
}

type navItem struct {
	Nav    screens.Navigation
	Label  string
	Active bool
}

type navGroup struct {
	Label string
	Items []navItem
}

// shellData is the layout shared by every signed-in page
type shellData struct {
	Title     string
	Theme     string
	Path      string
	User      session.User
	Initial   string
	CSRFToken string
	Groups    []navGroup
}

type screenData struct {
	shellData
	Nav               screens.Navigation
	Header            screens.Header
	Query             records.Query
	SearchPlaceholder string
	Categories        []screens.CategoryOption
	CreateLabel       string
	Table             table.Table
	Dialog            screens.DialogView
	SubmitToken       string
	Flash             string
}

type dashboardData struct {
	shellData
	Header screens.Header
	Agents []agents.Agent
}

type auditData struct {
	shellData
	Entries []store.AuditEntry
	Screen  string
	Actor   string
	Action  string
	Actions []store.AuditAction
}

type helpData struct {
	shellData
	Topics  []helpTopic
	Content template.HTML
}

var templateFuncs = template.FuncMap{
	"badgeClass": func(s schema.Style) string { return "badge badge-" + string(s) },
	"markdown":   renderMarkdown,
	"timestamp":  func(t time.Time) string { return t.Local().Format("2006-01-02 15:04:05") },
	"allAgents":  func() string { return records.AllCategories },
}

// renderMarkdown converts agent descriptions and help pages to HTML
func renderMarkdown(src string) template.HTML {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(src), &buf); err != nil {
		return template.HTML(template.HTMLEscapeString(src))
	}
	return template.HTML(buf.String())
}

// parsePage parses the layout, partials and the named page template
func parsePage(page string) *template.Template {
	return template.Must(template.New("base.html").Funcs(templateFuncs).ParseFS(templateFS,
		"templates/base.html",
		"templates/partials/*.html",
		"templates/"+page,
	))
}

// buildShell collects the sidebar, user and theme for a signed-in page
func (a *Admin) buildShell(r *http.Request, active screens.Navigation, title string) shellData {
	user, _ := session.FromContext(r.Context())

	var groups []navGroup
	index := map[string]int{}
	for _, n := range screens.Navigations {
		g := n.Group()
		i, ok := index[g]
		if !ok {
			i = len(groups)
			index[g] = i
			groups = append(groups, navGroup{Label: g})
		}
		groups[i].Items = append(groups[i].Items, navItem{
			Nav:    n,
			Label:  n.Label(),
			Active: n == active,
		})
	}

	return shellData{
		Title:     title,
		Theme:     themeFromRequest(r),
		Path:      r.URL.RequestURI(),
		User:      user,
		Initial:   table.Initial(user.Name),
		CSRFToken: getCSRFToken(r),
		Groups:    groups,
	}
}

// buildScreenData snapshots a record screen. It must run under the
// console lock.
func (a *Admin) buildScreenData(r *http.Request, rs screens.RecordScreen) screenData {
	data := screenData{
		shellData:         a.buildShell(r, rs.Nav(), rs.Header().Title),
		Nav:               rs.Nav(),
		Header:            rs.Header(),
		Query:             rs.Query(),
		SearchPlaceholder: rs.SearchPlaceholder(),
		Categories:        rs.Categories(),
		CreateLabel:       rs.CreateLabel(),
		Table:             rs.Table(),
		Dialog:            rs.Dialog(),
	}
	token, err := generateSecureToken(16)
	if err != nil {
		a.logger.Error("failed to generate submit token", "error", err)
	}
	data.SubmitToken = token
	return data
}

func (a *Admin) render(w http.ResponseWriter, status int, tmpl *template.Template, name string, data any) {
	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		a.logger.Error("failed to render template", "template", name, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

// renderLoginPage renders the login page
func (a *Admin) renderLoginPage(w http.ResponseWriter, status int, data loginData) {
	tmpl := template.Must(template.New("login.html").Funcs(templateFuncs).ParseFS(templateFS, "templates/login.html"))
	a.render(w, status, tmpl, "login.html", data)
}

// renderScreen renders a record screen, as the screen body for htmx
// requests and as a full page otherwise
func (a *Admin) renderScreen(w http.ResponseWriter, r *http.Request, status int, data screenData) {
	if isHTMX(r) {
		a.renderPartial(w, status, "screen_body", data)
		return
	}
	a.render(w, status, parsePage("screen.html"), "base.html", data)
}

// renderPartial renders one named partial
func (a *Admin) renderPartial(w http.ResponseWriter, status int, name string, data any) {
	tmpl := template.Must(template.New(name).Funcs(templateFuncs).ParseFS(templateFS, "templates/partials/*.html"))
	a.render(w, status, tmpl, name, data)
}

// renderDashboard renders an agent dashboard
func (a *Admin) renderDashboard(w http.ResponseWriter, data dashboardData) {
	a.render(w, http.StatusOK, parsePage("dashboard.html"), "base.html", data)
}

// renderAudit renders the audit log page
func (a *Admin) renderAudit(w http.ResponseWriter, data auditData) {
	a.render(w, http.StatusOK, parsePage("audit.html"), "base.html", data)
}

// renderHelp renders a help topic
func (a *Admin) renderHelp(w http.ResponseWriter, data helpData) {
	a.render(w, http.StatusOK, parsePage("help.html"), "base.html", data)
}
