// ABOUTME: Terminal rendering of a Table with coloured badges
// ABOUTME: Used by the CLI show command

package table

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/fatih/color"

	"github.com/2389/tymex-console/internal/schema"
)

var styleColors = map[schema.Style]*color.Color{
	schema.StyleGreen:       color.New(color.FgGreen),
	schema.StyleRed:         color.New(color.FgRed),
	schema.StyleBlue:        color.New(color.FgBlue),
	schema.StyleSky:         color.New(color.FgCyan),
	schema.StyleAmber:       color.New(color.FgYellow),
	schema.StyleViolet:      color.New(color.FgMagenta),
	schema.StyleYellow:      color.New(color.FgHiYellow),
	schema.StyleGray:        color.New(color.FgHiBlack),
	schema.StyleDestructive: color.New(color.FgHiRed, color.Bold),
	schema.StyleOutline:     color.New(color.FgWhite),
}

var headerColor = color.New(color.Bold)

// Plain returns the uncoloured text of a cell.
func (c Cell) Plain() string {
	if c.Badge != nil {
		return c.Badge.Label
	}
	if c.Secondary != "" {
		return c.Text + " <" + c.Secondary + ">"
	}
	return c.Text
}

// Render writes t as an aligned, colourised table.
func Render(w io.Writer, t Table) error {
	widths := make([]int, len(t.Columns))
	for i, c := range t.Columns {
		widths[i] = utf8.RuneCountInString(c)
	}
	for _, r := range t.Rows {
		for i, c := range r.Cells {
			if n := utf8.RuneCountInString(c.Plain()); n > widths[i] {
				widths[i] = n
			}
		}
	}

	var b strings.Builder
	for i, c := range t.Columns {
		b.WriteString(headerColor.Sprint(pad(c, widths[i])))
		b.WriteString("  ")
	}
	b.WriteString("\n")

	if t.Empty() {
		b.WriteString("(no records)\n")
	}
	for _, r := range t.Rows {
		for i, c := range r.Cells {
			text := pad(c.Plain(), widths[i])
			if c.Badge != nil {
				if col, ok := styleColors[c.Badge.Style]; ok {
					text = col.Sprint(text)
				}
			}
			b.WriteString(text)
			b.WriteString("  ")
		}
		b.WriteString("\n")
	}

	_, err := fmt.Fprint(w, b.String())
	return err
}

func pad(s string, width int) string {
	n := utf8.RuneCountInString(s)
	if n >= width {
		return s
	}
	return s + strings.Repeat(" ", width-n)
}
