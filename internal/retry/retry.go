// Package retry re-runs transient failures with capped exponential backoff.
package retry

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/Cyclone1070/codereview/internal/config"
	"github.com/chainguard-dev/clog"
)

// Policy bounds how often and how long an operation is retried.
// MaxRetries of 0 runs the operation exactly once.
type Policy struct {
	MaxRetries  int
	BaseBackoff time.Duration
	MaxBackoff  time.Duration
	MaxJitter   time.Duration
}

// FromConfig builds a Policy from the provider section of the config.
func FromConfig(cfg config.ProviderConfig) Policy {
	return Policy{
		MaxRetries:  cfg.MaxRetries,
		BaseBackoff: time.Duration(cfg.BaseBackoffMs) * time.Millisecond,
		MaxBackoff:  time.Duration(cfg.MaxBackoffMs) * time.Millisecond,
		MaxJitter:   time.Duration(cfg.MaxJitterMs) * time.Millisecond,
	}
}

// Validate rejects negative values.
func (p Policy) Validate() error {
	var errs []error
	if p.MaxRetries < 0 {
		errs = append(errs, errors.New("max retries cannot be negative"))
	}
	if p.BaseBackoff < 0 {
		errs = append(errs, errors.New("base backoff cannot be negative"))
	}
	if p.MaxBackoff < 0 {
		errs = append(errs, errors.New("max backoff cannot be negative"))
	}
	if p.MaxJitter < 0 {
		errs = append(errs, errors.New("max jitter cannot be negative"))
	}
	return errors.Join(errs...)
}

// ExhaustedError wraps the last failure once every attempt has been used.
type ExhaustedError struct {
	Operation string
	Attempts  int
	Last      error
}

func (e *ExhaustedError) Error() string {
	return fmt.Sprintf("%s failed after %d attempts: %v", e.Operation, e.Attempts, e.Last)
}
func (e *ExhaustedError) Unwrap() error { return e.Last }

// Do calls fn until it succeeds, returns an error isRetryable rejects, the
// policy runs out, or ctx is done.
func Do[T any](ctx context.Context, p Policy, operation string, isRetryable func(error) bool, fn func() (T, error)) (T, error) {
	var (
		result T
		err    error
	)

	for attempt := 0; ; attempt++ {
		result, err = fn()
		if err == nil {
			return result, nil
		}
		if !isRetryable(err) {
			return result, err
		}
		if attempt >= p.MaxRetries {
			return result, &ExhaustedError{Operation: operation, Attempts: attempt + 1, Last: err}
		}

		wait := p.Backoff(attempt)
		clog.FromContext(ctx).With("operation", operation).
			With("attempt", attempt+1).
			With("max_retries", p.MaxRetries).
			With("backoff", wait).
			With("error", err.Error()).
			Warn("transient failure, retrying")

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return result, ctx.Err()
		case <-timer.C:
		}
	}
}

// Backoff returns the wait before retry number attempt+1:
// BaseBackoff doubled per attempt, capped at MaxBackoff, plus jitter.
func (p Policy) Backoff(attempt int) time.Duration {
	wait := p.BaseBackoff
	for i := 0; i < attempt && wait < p.MaxBackoff; i++ {
		wait *= 2
	}
	if p.MaxBackoff > 0 {
		wait = min(wait, p.MaxBackoff)
	}
	if p.MaxJitter > 0 {
		if n, err := rand.Int(rand.Reader, big.NewInt(int64(p.MaxJitter))); err == nil {
			wait += time.Duration(n.Int64())
		}
	}
	return wait
}
