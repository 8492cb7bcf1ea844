// Package openai adapts the OpenAI chat completions API to the provider types.
package openai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Cyclone1070/codereview/internal/provider"
	"github.com/Cyclone1070/codereview/internal/tool"
	"github.com/chainguard-dev/clog"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

const providerName = "openai"

// chatClient is the slice of the SDK's chat completions service we call.
type chatClient interface {
	New(ctx context.Context, body openai.ChatCompletionNewParams, opts ...option.RequestOption) (*openai.ChatCompletion, error)
}

// Provider generates assistant messages with OpenAI chat models.
type Provider struct {
	client chatClient
	opts   provider.Options
}

// New creates a Provider around a chat completions client.
func New(client chatClient, opts provider.Options) *Provider {
	return &Provider{client: client, opts: opts}
}

// Dial builds a Provider backed by the official SDK.
func Dial(apiKey string, opts provider.Options) *Provider {
	client := openai.NewClient(option.WithAPIKey(apiKey))
	return New(&client.Chat.Completions, opts)
}

// Generate sends the conversation and returns the model's reply.
func (p *Provider) Generate(ctx context.Context, messages []provider.Message, tools []tool.Declaration) (*provider.Message, error) {
	params, err := p.buildParams(messages, tools)
	if err != nil {
		return nil, err
	}

	clog.FromContext(ctx).With("model", p.opts.Model).With("messages", len(params.Messages)).Debug("openai request")

	resp, err := p.client.New(ctx, params)
	if err != nil {
		return nil, mapError(err)
	}
	return fromCompletion(resp)
}

func (p *Provider) buildParams(messages []provider.Message, tools []tool.Declaration) (openai.ChatCompletionNewParams, error) {
	params := openai.ChatCompletionNewParams{
		Model:       openai.ChatModel(p.opts.Model),
		Temperature: openai.Float(p.opts.Temperature),
	}
	if p.opts.MaxOutputTokens > 0 {
		params.MaxCompletionTokens = openai.Int(int64(p.opts.MaxOutputTokens))
	}

	for _, msg := range messages {
		param, err := toMessageParam(msg)
		if err != nil {
			return params, err
		}
		params.Messages = append(params.Messages, param)
	}

	for _, t := range tools {
		params.Tools = append(params.Tools, openai.ChatCompletionToolParam{
			Function: openai.FunctionDefinitionParam{
				Name:        t.Name,
				Description: openai.String(t.Description),
				Parameters: openai.FunctionParameters{
					"type":       "object",
					"properties": provider.SchemaProperties(t.Parameters),
					"required":   provider.SchemaRequired(t.Parameters),
				},
			},
		})
	}
	return params, nil
}

func toMessageParam(msg provider.Message) (openai.ChatCompletionMessageParamUnion, error) {
	switch msg.Role {
	case provider.RoleSystem:
		return openai.SystemMessage(msg.Content), nil
	case provider.RoleUser:
		return openai.UserMessage(msg.Content), nil
	case provider.RoleTool:
		return openai.ToolMessage(msg.Content, msg.ToolCallID), nil
	case provider.RoleAssistant:
		assistant := &openai.ChatCompletionAssistantMessageParam{}
		if msg.Content != "" {
			assistant.Content.OfString = openai.String(msg.Content)
		}
		for _, call := range msg.ToolCalls {
			args, err := json.Marshal(call.Args)
			if err != nil {
				return openai.ChatCompletionMessageParamUnion{}, fmt.Errorf("encoding arguments for %s: %w", call.Name, err)
			}
			assistant.ToolCalls = append(assistant.ToolCalls, openai.ChatCompletionMessageToolCallParam{
				ID: call.ID,
				Function: openai.ChatCompletionMessageToolCallFunctionParam{
					Name:      call.Name,
					Arguments: string(args),
				},
			})
		}
		return openai.ChatCompletionMessageParamUnion{OfAssistant: assistant}, nil
	default:
		return openai.ChatCompletionMessageParamUnion{}, fmt.Errorf("unsupported role %q", msg.Role)
	}
}

func fromCompletion(resp *openai.ChatCompletion) (*provider.Message, error) {
	if resp == nil || len(resp.Choices) == 0 {
		return nil, &provider.Error{Provider: providerName, Code: provider.ErrorCodeEmptyResponse, Message: "no choices in response"}
	}

	choice := resp.Choices[0]
	switch choice.FinishReason {
	case "length":
		return nil, &provider.Error{Provider: providerName, Code: provider.ErrorCodeContextLength, Message: "response truncated due to max tokens"}
	case "content_filter":
		return nil, &provider.Error{Provider: providerName, Code: provider.ErrorCodeContentBlocked, Message: "content blocked by safety filters"}
	}

	msg := &provider.Message{Role: provider.RoleAssistant, Content: choice.Message.Content}
	for _, call := range choice.Message.ToolCalls {
		args := map[string]any{}
		if call.Function.Arguments != "" {
			if err := json.Unmarshal([]byte(call.Function.Arguments), &args); err != nil {
				return nil, &provider.Error{
					Provider:   providerName,
					Code:       provider.ErrorCodeInvalidRequest,
					Message:    fmt.Sprintf("malformed arguments for %s", call.Function.Name),
					Underlying: err,
				}
			}
		}
		msg.ToolCalls = append(msg.ToolCalls, provider.ToolCall{
			ID:   call.ID,
			Name: call.Function.Name,
			Args: args,
		})
	}
	return msg, nil
}

func mapError(err error) error {
	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		return provider.FromStatus(providerName, apiErr.StatusCode, "API error", err)
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return &provider.Error{Provider: providerName, Code: provider.ErrorCodeNetwork, Message: "network error", Underlying: err, Retryable: true}
}
