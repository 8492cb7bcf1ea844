// Package conversation advances a review conversation by one agent turn.
package conversation

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/chainguard-dev/clog"
)

// Role identifies who authored a history message.
type Role string

const (
	RoleUser  Role = "user"
	RoleAgent Role = "agent"
)

// Message is one immutable entry of the conversation history.
type Message struct {
	Role    Role
	Content string
}

// History is the chronological, append-only conversation.
type History []Message

// Texts returns the message contents in order.
func (h History) Texts() []string {
	texts := make([]string, len(h))
	for i, m := range h {
		texts[i] = m.Content
	}
	return texts
}

// Reasoner produces the agent's reply to input given the earlier history.
// It owns whatever tools it uses; its scratch work never enters the history.
type Reasoner interface {
	Reason(ctx context.Context, input string, prior History) (string, error)
}

var (
	ErrReasoning      = errors.New("reasoning failed")
	ErrTurnInProgress = errors.New("a turn is already in progress")
)

// Step runs one turn. When the last message is from the user, the reasoner
// answers it and the reply is appended; otherwise history comes back as is.
// An empty reply also leaves history unchanged. The caller's slice is never
// modified in place.
func Step(ctx context.Context, r Reasoner, history History) (History, error) {
	if len(history) == 0 {
		return history, nil
	}
	last := history[len(history)-1]
	if last.Role != RoleUser {
		return history, nil
	}

	prior := history[:len(history)-1:len(history)-1]
	output, err := r.Reason(ctx, last.Content, prior)
	if err != nil {
		return history, fmt.Errorf("%w: %w", ErrReasoning, err)
	}
	if output == "" {
		clog.FromContext(ctx).Warn("reasoner returned an empty reply")
		return history, nil
	}

	next := make(History, len(history), len(history)+1)
	copy(next, history)
	return append(next, Message{Role: RoleAgent, Content: output}), nil
}

// Loop runs turns for a single conversation, one at a time.
type Loop struct {
	reasoner Reasoner
	mu       sync.Mutex
}

// NewLoop creates a Loop around r.
func NewLoop(r Reasoner) *Loop {
	return &Loop{reasoner: r}
}

// Step is Step guarded against concurrent turns. A call made while another
// is running fails with ErrTurnInProgress.
func (l *Loop) Step(ctx context.Context, history History) (History, error) {
	if !l.mu.TryLock() {
		return history, ErrTurnInProgress
	}
	defer l.mu.Unlock()
	return Step(ctx, l.reasoner, history)
}
