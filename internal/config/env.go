package config

import (
	"context"
	"fmt"

	"github.com/sethvargo/go-envconfig"
)

// Env holds credentials and per-invocation overrides read from the environment.
type Env struct {
	OpenAIAPIKey    string `env:"OPENAI_API_KEY"`
	GeminiAPIKey    string `env:"GEMINI_API_KEY"`
	AnthropicAPIKey string `env:"ANTHROPIC_API_KEY"`
	SerpAPIKey      string `env:"SERPAPI_API_KEY"`

	Provider string `env:"CODE_REVIEW_PROVIDER"`
	Model    string `env:"CODE_REVIEW_MODEL"`
	LogLevel string `env:"LOG_LEVEL,default=warn"`

	// Quiet hides the tool trace and keeps only the conversation.
	Quiet bool `env:"CODE_REVIEW_QUIET"`
}

// LoadEnv reads Env using the given lookuper. A nil lookuper reads the process environment.
func LoadEnv(ctx context.Context, lookuper envconfig.Lookuper) (*Env, error) {
	if lookuper == nil {
		lookuper = envconfig.OsLookuper()
	}
	var env Env
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &env,
		Lookuper: lookuper,
	}); err != nil {
		return nil, fmt.Errorf("processing environment: %w", err)
	}
	return &env, nil
}

// Apply overlays environment overrides on cfg and re-validates it.
func (e *Env) Apply(cfg *Config) error {
	if e.Provider != "" {
		cfg.Provider.Name = e.Provider
	}
	if e.Model != "" {
		cfg.Provider.Model = e.Model
	}
	return cfg.Validate()
}

// APIKey returns the credential for the named provider.
func (e *Env) APIKey(provider string) (string, error) {
	var key, name string
	switch provider {
	case ProviderOpenAI:
		key, name = e.OpenAIAPIKey, "OPENAI_API_KEY"
	case ProviderGemini:
		key, name = e.GeminiAPIKey, "GEMINI_API_KEY"
	case ProviderAnthropic:
		key, name = e.AnthropicAPIKey, "ANTHROPIC_API_KEY"
	default:
		return "", fmt.Errorf("unknown provider %q", provider)
	}
	if key == "" {
		return "", fmt.Errorf("%s environment variable is required", name)
	}
	return key, nil
}
