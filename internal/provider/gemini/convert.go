package gemini

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Cyclone1070/codereview/internal/provider"
	"github.com/Cyclone1070/codereview/internal/tool"
	"github.com/google/uuid"
	"google.golang.org/genai"
)

const providerName = "gemini"

// toGeminiContents converts the conversation to Gemini contents. Leading
// system messages become the system instruction.
func toGeminiContents(messages []provider.Message) (*genai.Content, []*genai.Content) {
	system, rest := provider.SplitSystem(messages)

	var instruction *genai.Content
	if system != "" {
		instruction = &genai.Content{Parts: []*genai.Part{genai.NewPartFromText(system)}}
	}

	contents := make([]*genai.Content, 0, len(rest))
	for _, msg := range rest {
		content := messageToGeminiContent(msg)
		if content == nil {
			continue
		}
		// Consecutive tool results answer one model turn and travel together.
		if n := len(contents); n > 0 && msg.Role == provider.RoleTool && isFunctionResponse(contents[n-1]) {
			contents[n-1].Parts = append(contents[n-1].Parts, content.Parts...)
			continue
		}
		contents = append(contents, content)
	}
	return instruction, contents
}

// messageToGeminiContent converts a single message to Gemini Content format.
func messageToGeminiContent(msg provider.Message) *genai.Content {
	role := "user"
	if msg.Role == provider.RoleAssistant {
		role = "model"
	}

	parts := make([]*genai.Part, 0, 1+len(msg.ToolCalls))

	if msg.Role == provider.RoleTool {
		parts = append(parts, &genai.Part{
			FunctionResponse: &genai.FunctionResponse{
				ID:   msg.ToolCallID,
				Name: msg.Name,
				Response: map[string]any{
					"content": msg.Content,
				},
			},
		})
		return &genai.Content{Role: role, Parts: parts}
	}

	if msg.Content != "" {
		parts = append(parts, genai.NewPartFromText(msg.Content))
	}
	for _, call := range msg.ToolCalls {
		parts = append(parts, &genai.Part{
			FunctionCall: &genai.FunctionCall{
				ID:   call.ID,
				Name: call.Name,
				Args: call.Args,
			},
		})
	}

	if len(parts) == 0 {
		return nil
	}
	return &genai.Content{Role: role, Parts: parts}
}

func isFunctionResponse(c *genai.Content) bool {
	return len(c.Parts) > 0 && c.Parts[0].FunctionResponse != nil
}

// toGeminiConfig builds the request config from provider options.
func toGeminiConfig(opts provider.Options, instruction *genai.Content, tools []tool.Declaration) *genai.GenerateContentConfig {
	cfg := &genai.GenerateContentConfig{
		SafetySettings:    defaultSafetySettings(),
		SystemInstruction: instruction,
		Temperature:       genai.Ptr(float32(opts.Temperature)),
		Tools:             toGeminiTools(tools),
	}
	if opts.MaxOutputTokens > 0 {
		cfg.MaxOutputTokens = int32(opts.MaxOutputTokens)
	}
	return cfg
}

// defaultSafetySettings disables blocking: diffs routinely quote code that
// trips the default filters.
func defaultSafetySettings() []*genai.SafetySetting {
	categories := []genai.HarmCategory{
		genai.HarmCategoryHateSpeech,
		genai.HarmCategoryDangerousContent,
		genai.HarmCategoryHarassment,
		genai.HarmCategorySexuallyExplicit,
	}
	settings := make([]*genai.SafetySetting, 0, len(categories))
	for _, c := range categories {
		settings = append(settings, &genai.SafetySetting{Category: c, Threshold: genai.HarmBlockThresholdOff})
	}
	return settings
}

// toGeminiTools converts tool declarations to Gemini tools.
func toGeminiTools(tools []tool.Declaration) []*genai.Tool {
	if len(tools) == 0 {
		return nil
	}

	decls := make([]*genai.FunctionDeclaration, 0, len(tools))
	for _, t := range tools {
		fd := &genai.FunctionDeclaration{
			Name:        t.Name,
			Description: t.Description,
		}
		if t.Parameters != nil {
			fd.Parameters = toGeminiSchema(t.Parameters)
		}
		decls = append(decls, fd)
	}
	return []*genai.Tool{{FunctionDeclarations: decls}}
}

// toGeminiSchema converts a tool schema recursively.
func toGeminiSchema(s *tool.Schema) *genai.Schema {
	schema := &genai.Schema{
		Type:        toGeminiType(s.Type),
		Description: s.Description,
		Enum:        s.Enum,
		Required:    s.Required,
	}
	if len(s.Properties) > 0 {
		schema.Properties = make(map[string]*genai.Schema, len(s.Properties))
		for name, prop := range s.Properties {
			schema.Properties[name] = toGeminiSchema(prop)
		}
	}
	if s.Items != nil {
		schema.Items = toGeminiSchema(s.Items)
	}
	return schema
}

func toGeminiType(t tool.Type) genai.Type {
	switch t {
	case tool.TypeString:
		return genai.TypeString
	case tool.TypeNumber:
		return genai.TypeNumber
	case tool.TypeInteger:
		return genai.TypeInteger
	case tool.TypeBoolean:
		return genai.TypeBoolean
	case tool.TypeArray:
		return genai.TypeArray
	case tool.TypeObject:
		return genai.TypeObject
	default:
		return genai.TypeString
	}
}

// fromGeminiResponse converts the first candidate to an assistant message.
func fromGeminiResponse(resp *genai.GenerateContentResponse) (*provider.Message, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return nil, &provider.Error{
			Provider: providerName,
			Code:     provider.ErrorCodeEmptyResponse,
			Message:  "no candidates in response",
		}
	}

	candidate := resp.Candidates[0]
	switch candidate.FinishReason {
	case genai.FinishReasonSafety:
		return nil, &provider.Error{
			Provider: providerName,
			Code:     provider.ErrorCodeContentBlocked,
			Message:  "content blocked by safety filters",
		}
	case genai.FinishReasonMaxTokens:
		return nil, &provider.Error{
			Provider: providerName,
			Code:     provider.ErrorCodeContextLength,
			Message:  "response truncated due to max tokens",
		}
	}

	msg := &provider.Message{Role: provider.RoleAssistant}
	if candidate.Content == nil {
		return msg, nil
	}

	var text strings.Builder
	for _, part := range candidate.Content.Parts {
		switch {
		case part.FunctionCall != nil:
			id := part.FunctionCall.ID
			if id == "" {
				id = uuid.New().String()
			}
			msg.ToolCalls = append(msg.ToolCalls, provider.ToolCall{
				ID:   id,
				Name: part.FunctionCall.Name,
				Args: part.FunctionCall.Args,
			})
		case part.Text != "" && !part.Thought:
			text.WriteString(part.Text)
		}
	}
	msg.Content = text.String()
	return msg, nil
}

// mapGeminiError maps Gemini API errors to provider errors.
func mapGeminiError(err error) error {
	if err == nil {
		return nil
	}

	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return provider.FromStatus(providerName, apiErr.Code, fmt.Sprintf("API error: %s", apiErr.Message), err)
	}
	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) {
		return provider.FromStatus(providerName, apiErrPtr.Code, fmt.Sprintf("API error: %s", apiErrPtr.Message), err)
	}

	return &provider.Error{
		Provider:   providerName,
		Code:       provider.ErrorCodeNetwork,
		Message:    "network error",
		Underlying: err,
		Retryable:  true,
	}
}
