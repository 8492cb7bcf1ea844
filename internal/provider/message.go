// Package provider defines the provider-neutral chat types exchanged with
// language model backends.
package provider

import "github.com/Cyclone1070/codereview/internal/config"

// Role identifies the author of a Message.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleTool      Role = "tool"
)

// ToolCall is a function invocation requested by the model.
type ToolCall struct {
	ID   string
	Name string
	Args map[string]any
}

// Message is one entry in a model conversation.
//
// Assistant messages may carry ToolCalls. Tool messages answer exactly one
// call: ToolCallID and Name identify it and Content holds the result.
type Message struct {
	Role       Role
	Content    string
	ToolCalls  []ToolCall
	ToolCallID string
	Name       string
}

// Options are the generation settings shared by every backend.
type Options struct {
	Model           string
	Temperature     float64
	MaxOutputTokens int
}

// OptionsFromConfig resolves generation settings for the configured provider.
func OptionsFromConfig(cfg config.ProviderConfig) Options {
	return Options{
		Model:           cfg.ResolvedModel(),
		Temperature:     cfg.Temperature,
		MaxOutputTokens: cfg.MaxOutputTokens,
	}
}

// SplitSystem separates leading system messages from the rest of the
// conversation. Backends that take the system prompt out of band use it.
func SplitSystem(messages []Message) (string, []Message) {
	var system string
	i := 0
	for ; i < len(messages) && messages[i].Role == RoleSystem; i++ {
		if system != "" {
			system += "\n\n"
		}
		system += messages[i].Content
	}
	return system, messages[i:]
}
