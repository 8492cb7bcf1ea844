package ui

import (
	"strings"

	"github.com/charmbracelet/glamour"
)

// markdownRenderer turns markdown into terminal output.
type markdownRenderer interface {
	Render(in string) (string, error)
}

// NewMarkdownRenderer returns a glamour renderer wrapped at width columns, or
// nil when one cannot be built.
func NewMarkdownRenderer(width int) markdownRenderer {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil
	}
	return r
}

// renderMarkdown falls back to the raw text when rendering is unavailable.
func renderMarkdown(r markdownRenderer, content string) string {
	if r == nil {
		return content
	}
	out, err := r.Render(content)
	if err != nil {
		return content
	}
	return strings.Trim(out, "\n")
}
