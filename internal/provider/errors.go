package provider

import (
	"errors"
	"fmt"
)

// Sentinel errors for common backend failures.
var (
	ErrContextLengthExceeded = errors.New("context length exceeded")
	ErrContentBlocked        = errors.New("content blocked by safety filters")
	ErrRateLimit             = errors.New("rate limit exceeded")
	ErrAuthentication        = errors.New("authentication failed")
	ErrServiceUnavailable    = errors.New("service unavailable")
	ErrInvalidRequest        = errors.New("invalid request")
	ErrNetwork               = errors.New("network error")
	ErrEmptyResponse         = errors.New("empty response")
)

// ErrorCode classifies a backend failure.
type ErrorCode string

const (
	ErrorCodeContextLength  ErrorCode = "context_length_exceeded"
	ErrorCodeContentBlocked ErrorCode = "content_blocked"
	ErrorCodeRateLimit      ErrorCode = "rate_limit"
	ErrorCodeAuth           ErrorCode = "authentication_failed"
	ErrorCodeUnavailable    ErrorCode = "service_unavailable"
	ErrorCodeInvalidRequest ErrorCode = "invalid_request"
	ErrorCodeNetwork        ErrorCode = "network_error"
	ErrorCodeEmptyResponse  ErrorCode = "empty_response"
)

var codeSentinels = map[ErrorCode]error{
	ErrorCodeContextLength:  ErrContextLengthExceeded,
	ErrorCodeContentBlocked: ErrContentBlocked,
	ErrorCodeRateLimit:      ErrRateLimit,
	ErrorCodeAuth:           ErrAuthentication,
	ErrorCodeUnavailable:    ErrServiceUnavailable,
	ErrorCodeInvalidRequest: ErrInvalidRequest,
	ErrorCodeNetwork:        ErrNetwork,
	ErrorCodeEmptyResponse:  ErrEmptyResponse,
}

// Error wraps a backend failure with its classification.
type Error struct {
	Provider   string
	Code       ErrorCode
	Message    string
	Underlying error
	Retryable  bool
}

func (e *Error) Error() string {
	if e.Underlying != nil {
		return fmt.Sprintf("%s: %s: %s (%v)", e.Provider, e.Code, e.Message, e.Underlying)
	}
	return fmt.Sprintf("%s: %s: %s", e.Provider, e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.Underlying }

// Is matches the sentinel for the error's code.
func (e *Error) Is(target error) bool {
	return codeSentinels[e.Code] == target
}

// IsRetryable reports whether err is a transient backend failure.
func IsRetryable(err error) bool {
	var providerErr *Error
	if errors.As(err, &providerErr) {
		return providerErr.Retryable
	}
	return false
}

// FromStatus classifies an HTTP status returned by a backend API.
func FromStatus(name string, status int, message string, err error) *Error {
	e := &Error{Provider: name, Message: message, Underlying: err}
	switch {
	case status == 401 || status == 403:
		e.Code = ErrorCodeAuth
	case status == 429:
		e.Code, e.Retryable = ErrorCodeRateLimit, true
	case status == 400 || status == 404 || status == 413 || status == 422:
		e.Code = ErrorCodeInvalidRequest
	case status >= 500:
		e.Code, e.Retryable = ErrorCodeUnavailable, true
	default:
		e.Code, e.Retryable = ErrorCodeNetwork, true
	}
	return e
}
