/*
Copyright 2026 The Triagebot Authors
SPDX-License-Identifier: Apache-2.0
*/

package retry

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/chainguard-dev/clog"
)

// Config configures retry behavior for forge and model API calls.
// The policy is deliberately simple: a fixed number of attempts with a fixed
// inter-attempt delay. These bots are low-volume batch jobs, not
// high-throughput clients, so exponential backoff buys nothing here.
type Config struct {
	// MaxAttempts is the total number of attempts, including the first
	// (default: 3). Values below 1 are treated as 1.
	MaxAttempts int
	// Delay is the fixed pause between attempts (default: 2s).
	Delay time.Duration
}

// Validate checks that the retry configuration has valid values.
func (c Config) Validate() error {
	if c.MaxAttempts < 0 {
		return errors.New("max attempts cannot be negative")
	}
	if c.Delay < 0 {
		return errors.New("delay cannot be negative")
	}
	return nil
}

// DefaultConfig returns the retry configuration used by the bots:
// three total attempts separated by two seconds.
func DefaultConfig() Config {
	return Config{
		MaxAttempts: 3,
		Delay:       2 * time.Second,
	}
}

// ExhaustedError reports that every attempt at an operation failed with a
// transient error. It carries the last underlying error.
type ExhaustedError struct {
	Operation string
	Attempts  int
	Err       error
}

func (e *ExhaustedError) Error() string {
	return fmt.Sprintf("%s failed after %d attempts: %v", e.Operation, e.Attempts, e.Err)
}

func (e *ExhaustedError) Unwrap() error {
	return e.Err
}

// Do executes fn, retrying on errors that isRetryable classifies as
// transient. Non-retryable errors are returned immediately without consuming
// the retry budget. When all attempts fail, Do returns an *ExhaustedError
// wrapping the last error.
func Do[T any](ctx context.Context, cfg Config, operation string, isRetryable func(error) bool, fn func() (T, error)) (T, error) {
	var result T
	var lastErr error

	attempts := max(cfg.MaxAttempts, 1)
	for attempt := 1; attempt <= attempts; attempt++ {
		result, lastErr = fn()
		if lastErr == nil {
			return result, nil
		}

		if !isRetryable(lastErr) {
			return result, lastErr
		}

		if attempt == attempts {
			break
		}

		clog.FromContext(ctx).With("operation", operation).
			With("attempt", attempt).
			With("max_attempts", attempts).
			With("delay", cfg.Delay).
			With("error", lastErr.Error()).
			Warn("Transient failure, retrying")

		select {
		case <-ctx.Done():
			return result, ctx.Err()
		case <-time.After(cfg.Delay):
		}
	}

	return result, &ExhaustedError{Operation: operation, Attempts: attempts, Err: lastErr}
}
