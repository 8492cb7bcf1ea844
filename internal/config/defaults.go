package config

// Config holds all application configuration values.
// Defaults are set in DefaultConfig() and can be overridden via dotfile.
// NOTE: Values in config files override defaults, including explicit zero values.
// Missing keys are left at their default values.
type Config struct {
	Agent    AgentConfig    `json:"agent"`
	Provider ProviderConfig `json:"provider"`
	Tools    ToolsConfig    `json:"tools"`
	Search   SearchConfig   `json:"search"`
}

type AgentConfig struct {
	// Upper bound on drain loop iterations per run.
	MaxTurns int `json:"max_turns"` // Default: 25

	// Upper bound on model round-trips while answering one user message.
	MaxIterations int `json:"max_iterations"` // Default: 15
}

type ProviderConfig struct {
	Name            string  `json:"name"`              // Default: "openai"
	Model           string  `json:"model"`             // Default: "" (provider default)
	Temperature     float64 `json:"temperature"`       // Default: 0
	MaxOutputTokens int     `json:"max_output_tokens"` // Default: 4096

	// Retry
	MaxRetries    int `json:"max_retries"`     // Default: 3
	BaseBackoffMs int `json:"base_backoff_ms"` // Default: 1000
	MaxBackoffMs  int `json:"max_backoff_ms"`  // Default: 30000
	MaxJitterMs   int `json:"max_jitter_ms"`   // Default: 500
}

type ToolsConfig struct {
	// File Operations
	MaxFileSize int64 `json:"max_file_size"` // Default: 5 * 1024 * 1024 (5MB)

	// Command Execution
	GitBinary                string `json:"git_binary"`                  // Default: "git"
	GitCommandTimeoutSeconds int    `json:"git_command_timeout_seconds"` // Default: 60
	GracefulShutdownMs       int    `json:"graceful_shutdown_ms"`        // Default: 2000
	MaxCommandOutputSize     int64  `json:"max_command_output_size"`     // Default: 10 * 1024 * 1024 (10MB)
}

type SearchConfig struct {
	Endpoint          string  `json:"endpoint"`            // Default: "https://serpapi.com/search.json"
	Engine            string  `json:"engine"`              // Default: "google"
	MaxResults        int     `json:"max_results"`         // Default: 5
	RequestsPerSecond float64 `json:"requests_per_second"` // Default: 1
	TimeoutSeconds    int     `json:"timeout_seconds"`     // Default: 30
}

// Provider names accepted in provider.name.
const (
	ProviderOpenAI    = "openai"
	ProviderGemini    = "gemini"
	ProviderAnthropic = "anthropic"
)

var defaultModels = map[string]string{
	ProviderOpenAI:    "gpt-4-1106-preview",
	ProviderGemini:    "gemini-2.5-flash",
	ProviderAnthropic: "claude-sonnet-4-5",
}

// ResolvedModel returns the configured model, or the provider's default when unset.
func (p ProviderConfig) ResolvedModel() string {
	if p.Model != "" {
		return p.Model
	}
	return defaultModels[p.Name]
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Agent: AgentConfig{
			MaxTurns:      25,
			MaxIterations: 15,
		},
		Provider: ProviderConfig{
			Name:            ProviderOpenAI,
			Temperature:     0,
			MaxOutputTokens: 4096,
			MaxRetries:      3,
			BaseBackoffMs:   1000,
			MaxBackoffMs:    30000,
			MaxJitterMs:     500,
		},
		Tools: ToolsConfig{
			MaxFileSize:              5 * 1024 * 1024,
			GitBinary:                "git",
			GitCommandTimeoutSeconds: 60,
			GracefulShutdownMs:       2000,
			MaxCommandOutputSize:     10 * 1024 * 1024,
		},
		Search: SearchConfig{
			Endpoint:          "https://serpapi.com/search.json",
			Engine:            "google",
			MaxResults:        5,
			RequestsPerSecond: 1,
			TimeoutSeconds:    30,
		},
	}
}
