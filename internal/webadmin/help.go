// ABOUTME: Help pages rendered from embedded markdown
// ABOUTME: Topics are listed from docs/help and converted with goldmark

package webadmin

import (
	"io/fs"
	"net/http"
	"path"
	"sort"
	"strings"
)

const defaultHelpTopic = "getting-started"

// helpTopic represents a help documentation topic
type helpTopic struct {
	Slug   string
	Title  string
	Active bool
}

// helpTopicOrder places topics in reading order; unknown topics sort last
var helpTopicOrder = map[string]int{
	"getting-started": 1,
	"permissions":     2,
	"scopes":          3,
	"user-management": 4,
	"audit-log":       5,
	"command-line":    6,
}

func (a *Admin) handleHelp(w http.ResponseWriter, r *http.Request) {
	selected := r.URL.Query().Get("topic")
	if selected == "" {
		selected = defaultHelpTopic
	}

	entries, err := fs.ReadDir(helpDocsFS, "docs/help")
	if err != nil {
		a.logger.Error("failed to read help docs", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	var topics []helpTopic
	found := false
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".md") {
			continue
		}
		slug := strings.TrimSuffix(entry.Name(), ".md")
		topics = append(topics, helpTopic{
			Slug:   slug,
			Title:  formatHelpTitle(slug),
			Active: slug == selected,
		})
		found = found || slug == selected
	}
	if !found {
		http.Error(w, "help topic not found", http.StatusNotFound)
		return
	}

	sort.Slice(topics, func(i, j int) bool {
		orderI, okI := helpTopicOrder[topics[i].Slug]
		orderJ, okJ := helpTopicOrder[topics[j].Slug]
		if !okI {
			orderI = 100
		}
		if !okJ {
			orderJ = 100
		}
		if orderI != orderJ {
			return orderI < orderJ
		}
		return topics[i].Slug < topics[j].Slug
	})

	md, err := helpDocsFS.ReadFile(path.Join("docs/help", selected+".md"))
	if err != nil {
		a.logger.Error("failed to read help topic", "topic", selected, "error", err)
		md = []byte("# Not Found\n\nThis help topic could not be found.")
	}

	a.renderHelp(w, helpData{
		shellData: a.buildShell(r, "", "Help"),
		Topics:    topics,
		Content:   renderMarkdown(string(md)),
	})
}

// formatHelpTitle converts a slug to a display title
func formatHelpTitle(slug string) string {
	words := strings.Split(slug, "-")
	for i, word := range words {
		if word == "" {
			continue
		}
		words[i] = strings.ToUpper(word[:1]) + word[1:]
	}
	return strings.Join(words, " ")
}
