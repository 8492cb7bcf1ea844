package ui

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/Cyclone1070/codereview/internal/tool"
	"github.com/Cyclone1070/codereview/internal/workflow"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

type mockRenderer struct {
	RenderFunc func(string) (string, error)
}

func (m *mockRenderer) Render(in string) (string, error) {
	return m.RenderFunc(in)
}

func TestPrinter_PlainTranscript(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf, true)

	events := make(chan workflow.Event, 8)
	events <- workflow.MessageEvent{Role: "user", Text: "review my changes"}
	events <- workflow.ThinkingEvent{}
	events <- workflow.ToolStartEvent{ToolName: "git_status"}
	events <- workflow.ToolEndEvent{ToolName: "git_status", Display: tool.StringDisplay("On branch main")}
	events <- workflow.ToolStartEvent{ToolName: "read_file", RequestDisplay: "Reading x.go"}
	events <- workflow.ToolEndEvent{ToolName: "read_file", Display: tool.ErrorDisplay("Error reading file: file not found")}
	events <- workflow.MessageEvent{Role: "agent", Text: "Looks good."}
	close(events)

	p.Run(context.Background(), events)

	want := "You: review my changes\n" +
		"> git_status\n" +
		"  On branch main\n" +
		"> read_file Reading x.go\n" +
		"  x Error reading file: file not found\n" +
		"Agent: Looks good.\n"
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Errorf("transcript mismatch (-want +got):\n%s", diff)
	}
}

func TestPrinter_QuietHidesTools(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf, false)

	p.Handle(workflow.ToolStartEvent{ToolName: "git_diff"})
	p.Handle(workflow.ToolEndEvent{ToolName: "git_diff", Display: tool.StringDisplay("diff --git")})
	p.Handle(workflow.TextEvent{Text: "checking the diff"})
	p.Handle(workflow.MessageEvent{Role: "agent", Text: "done"})

	assert.Equal(t, "Agent: done\n", buf.String())
}

func TestPrinter_DoneWithError(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf, true)

	p.Handle(workflow.DoneEvent{})
	p.Handle(workflow.DoneEvent{Err: errors.New("provider unavailable")})

	assert.Equal(t, "Error: provider unavailable\n", buf.String())
}

func TestFormatter_StyledUsesMarkdown(t *testing.T) {
	md := &mockRenderer{RenderFunc: func(in string) (string, error) {
		return "\n  RENDERED " + in + "\n\n", nil
	}}
	f := formatter{md: md, styled: true}

	lines := f.lines(workflow.MessageEvent{Role: "agent", Text: "**ok**"})

	assert.Len(t, lines, 1)
	assert.Contains(t, lines[0], "Agent:")
	assert.Contains(t, lines[0], "RENDERED **ok**")
}

func TestRenderMarkdown_Fallback(t *testing.T) {
	failing := &mockRenderer{RenderFunc: func(string) (string, error) {
		return "", errors.New("boom")
	}}

	assert.Equal(t, "# title", renderMarkdown(nil, "# title"))
	assert.Equal(t, "# title", renderMarkdown(failing, "# title"))
}

func TestPrinter_RunStopsOnCancel(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf, true)

	events := make(chan workflow.Event, 1)
	events <- workflow.MessageEvent{Role: "user", Text: "hi"}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p.Run(ctx, events)

	assert.Equal(t, "You: hi\n", buf.String())
}
