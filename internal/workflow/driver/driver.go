// Package driver seeds a conversation and drains it until it stops growing.
package driver

import (
	"context"
	"errors"
	"fmt"

	"github.com/Cyclone1070/codereview/internal/workflow"
	"github.com/Cyclone1070/codereview/internal/workflow/conversation"
	"github.com/chainguard-dev/clog"
)

var ErrMaxTurns = errors.New("max turns reached")

// stepper advances a conversation by one turn.
type stepper interface {
	Step(ctx context.Context, history conversation.History) (conversation.History, error)
}

// StopFunc reports whether the drain loop should stop after a turn that
// took the history from before to after.
type StopFunc func(before, after conversation.History) bool

// StopWhenUnchanged stops the first time a turn does not grow the history.
func StopWhenUnchanged(before, after conversation.History) bool {
	return len(after) <= len(before)
}

// Driver runs a review from a single user request to quiescence.
type Driver struct {
	loop     stepper
	events   chan<- workflow.Event
	stop     StopFunc
	maxTurns int
}

// New creates a Driver. events may be nil; stop defaults to StopWhenUnchanged.
func New(loop stepper, events chan<- workflow.Event, stop StopFunc, maxTurns int) *Driver {
	if stop == nil {
		stop = StopWhenUnchanged
	}
	return &Driver{
		loop:     loop,
		events:   events,
		stop:     stop,
		maxTurns: maxTurns,
	}
}

// Run seeds the history with text and steps until the stop predicate fires.
// It returns every message text in order. On error the texts gathered so far
// are returned with it.
func (d *Driver) Run(ctx context.Context, text string) ([]string, error) {
	log := clog.FromContext(ctx)

	history := conversation.History{{Role: conversation.RoleUser, Content: text}}
	d.emit(ctx, history[0])

	for turn := 1; ; turn++ {
		if turn > d.maxTurns {
			return history.Texts(), fmt.Errorf("%w (%d)", ErrMaxTurns, d.maxTurns)
		}

		next, err := d.loop.Step(ctx, history)
		if err != nil {
			log.With("turn", turn).With("error", err).Warn("turn failed")
			return history.Texts(), err
		}

		for _, m := range next[len(history):] {
			d.emit(ctx, m)
		}

		if d.stop(history, next) {
			log.With("turns", turn).With("messages", len(next)).Debug("conversation settled")
			return next.Texts(), nil
		}
		history = next
	}
}

func (d *Driver) emit(ctx context.Context, m conversation.Message) {
	workflow.Emit(ctx, d.events, workflow.MessageEvent{Role: string(m.Role), Text: m.Content})
}
