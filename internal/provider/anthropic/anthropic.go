// Package anthropic adapts the Anthropic Messages API to the provider types.
package anthropic

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Cyclone1070/codereview/internal/provider"
	"github.com/Cyclone1070/codereview/internal/tool"
	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/chainguard-dev/clog"
)

const providerName = "anthropic"

// messageClient is the slice of the SDK's messages service we call.
type messageClient interface {
	New(ctx context.Context, body anthropic.MessageNewParams, opts ...option.RequestOption) (*anthropic.Message, error)
}

// Provider generates assistant messages with Claude models.
type Provider struct {
	client messageClient
	opts   provider.Options
}

// New creates a Provider around a messages client.
func New(client messageClient, opts provider.Options) *Provider {
	return &Provider{client: client, opts: opts}
}

// Dial builds a Provider backed by the official SDK.
func Dial(apiKey string, opts provider.Options) *Provider {
	client := anthropic.NewClient(option.WithAPIKey(apiKey))
	return New(&client.Messages, opts)
}

// Generate sends the conversation and returns the model's reply.
func (p *Provider) Generate(ctx context.Context, messages []provider.Message, tools []tool.Declaration) (*provider.Message, error) {
	params := p.buildParams(messages, tools)

	clog.FromContext(ctx).With("model", p.opts.Model).With("messages", len(params.Messages)).Debug("anthropic request")

	resp, err := p.client.New(ctx, params)
	if err != nil {
		return nil, mapError(err)
	}
	return fromMessage(resp)
}

func (p *Provider) buildParams(messages []provider.Message, tools []tool.Declaration) anthropic.MessageNewParams {
	system, rest := provider.SplitSystem(messages)

	params := anthropic.MessageNewParams{
		Model:       anthropic.Model(p.opts.Model),
		MaxTokens:   int64(p.opts.MaxOutputTokens),
		Messages:    toMessageParams(rest),
		Temperature: anthropic.Float(p.opts.Temperature),
	}
	if system != "" {
		params.System = []anthropic.TextBlockParam{{Text: system}}
	}

	for _, t := range tools {
		params.Tools = append(params.Tools, anthropic.ToolUnionParam{
			OfTool: &anthropic.ToolParam{
				Name:        t.Name,
				Description: anthropic.String(t.Description),
				InputSchema: anthropic.ToolInputSchemaParam{
					Properties: provider.SchemaProperties(t.Parameters),
					Required:   provider.SchemaRequired(t.Parameters),
				},
			},
		})
	}
	return params
}

// toMessageParams converts the conversation. Tool results are user-role
// blocks, and consecutive results share one user message.
func toMessageParams(messages []provider.Message) []anthropic.MessageParam {
	params := make([]anthropic.MessageParam, 0, len(messages))
	lastWasTool := false

	for _, msg := range messages {
		switch msg.Role {
		case provider.RoleTool:
			block := anthropic.ContentBlockParamUnion{
				OfToolResult: &anthropic.ToolResultBlockParam{
					ToolUseID: msg.ToolCallID,
					Content: []anthropic.ToolResultBlockParamContentUnion{{
						OfText: &anthropic.TextBlockParam{Text: msg.Content},
					}},
				},
			}
			if lastWasTool {
				last := &params[len(params)-1]
				last.Content = append(last.Content, block)
			} else {
				params = append(params, anthropic.MessageParam{
					Role:    anthropic.MessageParamRoleUser,
					Content: []anthropic.ContentBlockParamUnion{block},
				})
			}
			lastWasTool = true
			continue

		case provider.RoleAssistant:
			var blocks []anthropic.ContentBlockParamUnion
			if msg.Content != "" {
				blocks = append(blocks, anthropic.NewTextBlock(msg.Content))
			}
			for _, call := range msg.ToolCalls {
				input := call.Args
				if input == nil {
					input = map[string]any{}
				}
				blocks = append(blocks, anthropic.ContentBlockParamUnion{
					OfToolUse: &anthropic.ToolUseBlockParam{
						ID:    call.ID,
						Name:  call.Name,
						Input: input,
					},
				})
			}
			if len(blocks) > 0 {
				params = append(params, anthropic.MessageParam{Role: anthropic.MessageParamRoleAssistant, Content: blocks})
			}

		default:
			params = append(params, anthropic.MessageParam{
				Role:    anthropic.MessageParamRoleUser,
				Content: []anthropic.ContentBlockParamUnion{anthropic.NewTextBlock(msg.Content)},
			})
		}
		lastWasTool = false
	}
	return params
}

func fromMessage(resp *anthropic.Message) (*provider.Message, error) {
	if resp == nil {
		return nil, &provider.Error{Provider: providerName, Code: provider.ErrorCodeEmptyResponse, Message: "no message in response"}
	}

	switch resp.StopReason {
	case anthropic.StopReasonMaxTokens:
		return nil, &provider.Error{Provider: providerName, Code: provider.ErrorCodeContextLength, Message: "response truncated due to max tokens"}
	case anthropic.StopReasonRefusal:
		return nil, &provider.Error{Provider: providerName, Code: provider.ErrorCodeContentBlocked, Message: "model refused the request"}
	}

	msg := &provider.Message{Role: provider.RoleAssistant}
	for _, block := range resp.Content {
		switch block.Type {
		case "text":
			msg.Content += block.Text
		case "tool_use":
			args := map[string]any{}
			if len(block.Input) > 0 {
				if err := json.Unmarshal(block.Input, &args); err != nil {
					return nil, &provider.Error{
						Provider:   providerName,
						Code:       provider.ErrorCodeInvalidRequest,
						Message:    fmt.Sprintf("malformed input for %s", block.Name),
						Underlying: err,
					}
				}
			}
			msg.ToolCalls = append(msg.ToolCalls, provider.ToolCall{ID: block.ID, Name: block.Name, Args: args})
		}
	}
	return msg, nil
}

func mapError(err error) error {
	var apiErr *anthropic.Error
	if errors.As(err, &apiErr) {
		mapped := provider.FromStatus(providerName, apiErr.StatusCode, "API error", err)
		// 529 is Anthropic's overloaded status.
		if apiErr.StatusCode == 529 {
			mapped.Code, mapped.Retryable = provider.ErrorCodeUnavailable, true
		}
		return mapped
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return &provider.Error{Provider: providerName, Code: provider.ErrorCodeNetwork, Message: "network error", Underlying: err, Retryable: true}
}
