// Package gemini adapts the Google Gemini API to the provider types.
package gemini

import (
	"context"

	"github.com/Cyclone1070/codereview/internal/provider"
	"github.com/Cyclone1070/codereview/internal/tool"
	"github.com/chainguard-dev/clog"
)

// GeminiProvider generates assistant messages with Google Gemini.
type GeminiProvider struct {
	client GeminiClient
	opts   provider.Options
}

// New creates a GeminiProvider with the given client and options.
func New(client GeminiClient, opts provider.Options) *GeminiProvider {
	return &GeminiProvider{
		client: client,
		opts:   opts,
	}
}

// Generate sends the conversation and returns the model's reply.
func (p *GeminiProvider) Generate(ctx context.Context, messages []provider.Message, tools []tool.Declaration) (*provider.Message, error) {
	instruction, contents := toGeminiContents(messages)
	cfg := toGeminiConfig(p.opts, instruction, tools)

	clog.FromContext(ctx).With("model", p.opts.Model).With("messages", len(contents)).Debug("gemini request")

	resp, err := p.client.GenerateContent(ctx, p.opts.Model, contents, cfg)
	if err != nil {
		return nil, mapGeminiError(err)
	}
	return fromGeminiResponse(resp)
}
