/*
Copyright 2026 The Triagebot Authors
SPDX-License-Identifier: Apache-2.0
*/

package planner

import (
	"fmt"
	"strings"

	"github.com/agentic-community/triagebot/retry"
)

// Option is a functional option for configuring the planner.
type Option func(*Planner) error

// WithModel allows overriding the model name.
func WithModel(model string) Option {
	return func(p *Planner) error {
		if !strings.HasPrefix(model, "claude-") {
			return fmt.Errorf("model %q does not appear to be a Claude model (expected claude-* format)", model)
		}
		p.modelName = model
		return nil
	}
}

// WithMaxTokens sets the maximum tokens for responses.
func WithMaxTokens(tokens int64) Option {
	return func(p *Planner) error {
		if tokens <= 0 {
			return fmt.Errorf("max tokens must be positive, got %d", tokens)
		}
		p.maxTokens = tokens
		return nil
	}
}

// WithTemperature sets the sampling temperature. Lower values produce more
// deterministic output; triage wants consistency, so the default is 0.1.
func WithTemperature(temp float64) Option {
	return func(p *Planner) error {
		if temp < 0.0 || temp > 1.0 {
			return fmt.Errorf("temperature must be between 0.0 and 1.0, got %f", temp)
		}
		p.temperature = temp
		return nil
	}
}

// WithSystemInstructions sets the system instructions for the conversation.
func WithSystemInstructions(instructions string) Option {
	return func(p *Planner) error {
		if instructions == "" {
			return fmt.Errorf("system instructions cannot be empty")
		}
		p.systemInstructions = instructions
		return nil
	}
}

// WithRetryConfig sets the retry configuration for transient model API
// errors, particularly 429 rate limit and 529 overloaded responses.
func WithRetryConfig(cfg retry.Config) Option {
	return func(p *Planner) error {
		if err := cfg.Validate(); err != nil {
			return err
		}
		p.retryConfig = cfg
		return nil
	}
}
