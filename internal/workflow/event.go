// Package workflow holds the events the review workflow reports to its
// presentation layer.
package workflow

import (
	"context"

	"github.com/Cyclone1070/codereview/internal/tool"
)

// Event is the interface for all workflow events.
// UI handles events via type switch.
type Event interface {
	isEvent()
}

// MessageEvent is emitted for every message that enters the conversation
// history, the seed user message included.
type MessageEvent struct {
	Role string
	Text string
}

func (MessageEvent) isEvent() {}

// TextEvent is emitted when the model produces intermediate text alongside
// tool calls.
type TextEvent struct {
	Text string
}

func (TextEvent) isEvent() {}

// ThinkingEvent is emitted before each model round-trip.
type ThinkingEvent struct{}

func (ThinkingEvent) isEvent() {}

// DoneEvent is emitted when a run completes, successfully or not.
type DoneEvent struct {
	Err error
}

func (DoneEvent) isEvent() {}

// ToolStartEvent is emitted when a tool execution begins.
type ToolStartEvent struct {
	ToolName       string
	RequestDisplay string // e.g., "Reading src/index.ts"
}

func (ToolStartEvent) isEvent() {}

// ToolEndEvent is emitted when a tool completes.
type ToolEndEvent struct {
	ToolName string
	Display  tool.ToolDisplay
}

func (ToolEndEvent) isEvent() {}

// Emit sends e unless events is nil. It gives up when ctx is done so a
// stalled consumer cannot wedge the workflow.
func Emit(ctx context.Context, events chan<- Event, e Event) {
	if events == nil {
		return
	}
	select {
	case events <- e:
	case <-ctx.Done():
	}
}
