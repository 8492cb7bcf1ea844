package gemini

import (
	"context"

	"google.golang.org/genai"
)

// generateCall records one GenerateContent request.
type generateCall struct {
	model    string
	contents []*genai.Content
	config   *genai.GenerateContentConfig
}

// scriptedClient answers every request with the same response or error.
type scriptedClient struct {
	resp  *genai.GenerateContentResponse
	err   error
	calls []generateCall
}

func (c *scriptedClient) GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	c.calls = append(c.calls, generateCall{model: model, contents: contents, config: config})
	if c.err != nil {
		return nil, c.err
	}
	return c.resp, nil
}

func textResponse(text string) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{Candidates: []*genai.Candidate{{
		FinishReason: genai.FinishReasonStop,
		Content:      &genai.Content{Role: "model", Parts: []*genai.Part{{Text: text}}},
	}}}
}
