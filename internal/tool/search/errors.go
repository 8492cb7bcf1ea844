package search

import (
	"errors"
	"fmt"
)

var (
	ErrQueryRequired = errors.New("query is required")
	ErrAPIKeyMissing = errors.New("search API key is not set")
)

// StatusError is returned for a non-2xx response from the search API.
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("search API returned %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("search API returned %d", e.StatusCode)
}

// Retryable reports whether the request may succeed if repeated.
func (e *StatusError) Retryable() bool {
	return e.StatusCode == 429 || e.StatusCode >= 500
}

func isRetryable(err error) bool {
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.Retryable()
	}
	return false
}
