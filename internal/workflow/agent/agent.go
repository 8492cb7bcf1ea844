// Package agent answers one user message by alternating model calls and tool
// calls until the model replies without requesting tools.
package agent

import (
	"context"
	"errors"
	"fmt"

	"github.com/Cyclone1070/codereview/internal/config"
	"github.com/Cyclone1070/codereview/internal/provider"
	"github.com/Cyclone1070/codereview/internal/retry"
	"github.com/Cyclone1070/codereview/internal/workflow"
	"github.com/Cyclone1070/codereview/internal/workflow/conversation"
	"github.com/chainguard-dev/clog"
)

var ErrMaxIterations = errors.New("max iterations reached")

// Agent is a conversation.Reasoner backed by a model and a tool registry.
type Agent struct {
	provider      llmProvider
	tools         toolManager
	events        chan<- workflow.Event
	policy        retry.Policy
	maxIterations int
	systemPrompt  string
}

// New creates an Agent. events may be nil.
func New(p llmProvider, tools toolManager, cfg *config.Config, events chan<- workflow.Event) *Agent {
	return &Agent{
		provider:      p,
		tools:         tools,
		events:        events,
		policy:        retry.FromConfig(cfg.Provider),
		maxIterations: cfg.Agent.MaxIterations,
		systemPrompt:  SystemPrompt,
	}
}

var _ conversation.Reasoner = (*Agent)(nil)

// Reason answers input in the context of prior. Tool traffic stays in a
// scratch transcript local to this call; only the final text is returned.
func (a *Agent) Reason(ctx context.Context, input string, prior conversation.History) (string, error) {
	messages := a.buildMessages(input, prior)
	decls := a.tools.Declarations()
	log := clog.FromContext(ctx)

	for i := 0; i < a.maxIterations; i++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		workflow.Emit(ctx, a.events, workflow.ThinkingEvent{})

		resp, err := retry.Do(ctx, a.policy, "provider.Generate", provider.IsRetryable, func() (*provider.Message, error) {
			return a.provider.Generate(ctx, messages, decls)
		})
		if err != nil {
			return "", fmt.Errorf("provider.Generate: %w", err)
		}

		messages = append(messages, *resp)

		if len(resp.ToolCalls) == 0 {
			log.With("iterations", i+1).Debug("reasoning finished")
			return resp.Content, nil
		}

		if resp.Content != "" {
			workflow.Emit(ctx, a.events, workflow.TextEvent{Text: resp.Content})
		}

		for _, tc := range resp.ToolCalls {
			toolResp, err := a.tools.Execute(ctx, tc, a.events)
			if err != nil {
				return "", fmt.Errorf("tools.Execute (%s): %w", tc.Name, err)
			}
			messages = append(messages, toolResp)
		}
	}

	return "", fmt.Errorf("%w (%d)", ErrMaxIterations, a.maxIterations)
}

func (a *Agent) buildMessages(input string, prior conversation.History) []provider.Message {
	messages := make([]provider.Message, 0, len(prior)+2)
	messages = append(messages, provider.Message{Role: provider.RoleSystem, Content: a.systemPrompt})
	for _, m := range prior {
		role := provider.RoleUser
		if m.Role == conversation.RoleAgent {
			role = provider.RoleAssistant
		}
		messages = append(messages, provider.Message{Role: role, Content: m.Content})
	}
	return append(messages, provider.Message{Role: provider.RoleUser, Content: input})
}
