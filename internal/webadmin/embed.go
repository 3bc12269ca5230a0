// ABOUTME: Embeds HTML templates and help pages into the binary using go:embed
// ABOUTME: Provides templateFS and helpDocsFS for loading them at runtime

package webadmin

import "embed"

//go:embed templates/*.html templates/partials/*.html
var templateFS embed.FS

//go:embed docs/help/*.md
var helpDocsFS embed.FS
