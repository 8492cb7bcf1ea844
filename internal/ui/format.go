package ui

import (
	"strings"

	"github.com/Cyclone1070/codereview/internal/tool"
	"github.com/Cyclone1070/codereview/internal/workflow"
	"github.com/charmbracelet/lipgloss"
)

// formatter turns events into transcript lines. ThinkingEvent and
// DoneEvent without an error produce nothing.
type formatter struct {
	md      markdownRenderer
	styled  bool
	verbose bool
}

func (f formatter) lines(e workflow.Event) []string {
	switch ev := e.(type) {
	case workflow.MessageEvent:
		return []string{f.message(ev)}
	case workflow.TextEvent:
		if f.verbose {
			return []string{f.style(ToolStyle, ev.Text)}
		}
	case workflow.ToolStartEvent:
		if f.verbose {
			line := "> " + ev.ToolName
			if ev.RequestDisplay != "" {
				line += " " + ev.RequestDisplay
			}
			return []string{f.style(ToolStyle, line)}
		}
	case workflow.ToolEndEvent:
		if f.verbose {
			return f.toolEnd(ev)
		}
	case workflow.DoneEvent:
		if ev.Err != nil {
			return []string{f.style(ErrorStyle, "Error: "+ev.Err.Error())}
		}
	}
	return nil
}

func (f formatter) message(ev workflow.MessageEvent) string {
	if ev.Role == "user" {
		return f.style(UserMessageStyle, "You:") + " " + ev.Text
	}
	if !f.styled {
		return "Agent: " + ev.Text
	}
	body := renderMarkdown(f.md, ev.Text)
	if strings.Contains(body, "\n") {
		return AgentMessageStyle.Render("Agent:") + "\n" + body
	}
	return AgentMessageStyle.Render("Agent:") + " " + strings.TrimSpace(body)
}

func (f formatter) toolEnd(ev workflow.ToolEndEvent) []string {
	switch d := ev.Display.(type) {
	case tool.ErrorDisplay:
		return []string{f.style(ToolErrorStyle, "  x "+string(d))}
	case tool.StringDisplay:
		if d != "" {
			return []string{f.style(ToolStyle, "  "+string(d))}
		}
	}
	return nil
}

func (f formatter) style(s lipgloss.Style, text string) string {
	if !f.styled {
		return text
	}
	return s.Render(text)
}
