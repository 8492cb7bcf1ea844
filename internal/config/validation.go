package config

import (
	"fmt"
)

// Validate checks config values for correctness.
// Returns an error if any values are invalid.
func (c *Config) Validate() error {
	var errs []string

	// Agent validation
	if c.Agent.MaxTurns < 1 {
		errs = append(errs, "agent.max_turns must be >= 1")
	}
	if c.Agent.MaxIterations < 1 {
		errs = append(errs, "agent.max_iterations must be >= 1")
	}

	// Provider validation
	switch c.Provider.Name {
	case ProviderOpenAI, ProviderGemini, ProviderAnthropic:
	default:
		errs = append(errs, fmt.Sprintf("provider.name must be one of %s, %s, %s (got %q)",
			ProviderOpenAI, ProviderGemini, ProviderAnthropic, c.Provider.Name))
	}
	if c.Provider.Temperature < 0 || c.Provider.Temperature > 2 {
		errs = append(errs, "provider.temperature must be between 0 and 2")
	}
	if c.Provider.MaxOutputTokens < 1 {
		errs = append(errs, "provider.max_output_tokens must be >= 1")
	}
	if c.Provider.MaxRetries < 0 {
		errs = append(errs, "provider.max_retries must be >= 0")
	}
	if c.Provider.BaseBackoffMs < 0 {
		errs = append(errs, "provider.base_backoff_ms must be >= 0")
	}
	if c.Provider.MaxBackoffMs < c.Provider.BaseBackoffMs {
		errs = append(errs, "provider.max_backoff_ms must be >= provider.base_backoff_ms")
	}
	if c.Provider.MaxJitterMs < 0 {
		errs = append(errs, "provider.max_jitter_ms must be >= 0")
	}

	// Tools validation
	if c.Tools.MaxFileSize < 1 {
		errs = append(errs, "tools.max_file_size must be >= 1")
	}
	if c.Tools.GitBinary == "" {
		errs = append(errs, "tools.git_binary must not be empty")
	}
	if c.Tools.GitCommandTimeoutSeconds < 1 {
		errs = append(errs, "tools.git_command_timeout_seconds must be >= 1")
	}
	if c.Tools.GracefulShutdownMs < 1 {
		errs = append(errs, "tools.graceful_shutdown_ms must be >= 1")
	}
	if c.Tools.MaxCommandOutputSize < 1 {
		errs = append(errs, "tools.max_command_output_size must be >= 1")
	}

	// Search validation
	if c.Search.Endpoint == "" {
		errs = append(errs, "search.endpoint must not be empty")
	}
	if c.Search.MaxResults < 1 {
		errs = append(errs, "search.max_results must be >= 1")
	}
	if c.Search.RequestsPerSecond <= 0 {
		errs = append(errs, "search.requests_per_second must be > 0")
	}
	if c.Search.TimeoutSeconds < 1 {
		errs = append(errs, "search.timeout_seconds must be >= 1")
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed: %v", errs)
	}

	return nil
}
