// Package webadmin provides the browser interface of the console.
//
// # Overview
//
// The web admin serves the sidebar screens: the Slack and web agent
// dashboards, channel and user permission tables, web user permissions
// and platform user management. It also serves an audit log page and
// embedded help.
//
// # Workspaces
//
// Each browser gets a workspace cookie naming a screens.Console. The
// console keeps the selected screen and its records; requests for the
// same workspace are serialized by the console. Selecting a different
// sidebar item remounts that screen from seed data.
//
// # Routes
//
//	GET  /console/{nav}                         full page, search/agent params filter
//	GET  /console/{nav}/rows                    table partial for live filtering
//	POST /console/{nav}/dialog/new              open the create dialog
//	POST /console/{nav}/dialog/edit/{id}        open the edit dialog
//	POST /console/{nav}/dialog/field            set one draft field
//	POST /console/{nav}/dialog/submit           validate and commit the draft
//	POST /console/{nav}/dialog/cancel           close the dialog
//	POST /console/{nav}/records/{id}/delete     delete a permission
//	POST /console/{nav}/records/{id}/deactivate deactivate a platform user
//
// Requests carrying HX-Request receive the screen body partial; other
// requests receive the full page. Validation failures answer 422 with the
// dialog still open, missing records 404, and replayed submit tokens 409.
//
// # Authentication
//
// Login is a mock: any email signs in, and "Sign in with Microsoft"
// signs in a fixed account. The user is kept in a signed session cookie
// managed by the session package.
//
// # CSRF Protection
//
// All form submissions require CSRF tokens:
//
//	<input type="hidden" name="csrf_token" value="{{.CSRFToken}}">
//
// htmx requests may send the token in the X-CSRF-Token header instead.
//
// # Templates
//
// Templates use html/template and are embedded with //go:embed. Help
// pages in docs/help are markdown rendered with goldmark, as are agent
// descriptions on the dashboards.
package webadmin
