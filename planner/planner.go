/*
Copyright 2026 The Triagebot Authors
SPDX-License-Identifier: Apache-2.0
*/

package planner

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/agentic-community/triagebot/retry"
	"github.com/anthropics/anthropic-sdk-go"
	"github.com/chainguard-dev/clog"
)

// Planner runs tool-calling conversations against a hosted model.
type Planner struct {
	client             anthropic.Client
	modelName          string
	systemInstructions string
	maxTokens          int64
	temperature        float64
	retryConfig        retry.Config
}

// New creates a Planner with the given model client.
func New(client anthropic.Client, opts ...Option) (*Planner, error) {
	p := &Planner{
		client:      client,
		modelName:   "claude-sonnet-4-5",
		maxTokens:   8192,
		temperature: 0.1, // low temperature for consistent triage decisions
		retryConfig: retry.DefaultConfig(),
	}

	for _, opt := range opts {
		if err := opt(p); err != nil {
			return nil, fmt.Errorf("failed to apply option: %w", err)
		}
	}

	return p, nil
}

// Decide runs one conversation: the prompt and tool surface go in, the
// model's final narrative comes out. Tools are executed as the model requests
// them; the conversation ends when the model responds without tool calls.
func (p *Planner) Decide(ctx context.Context, prompt string, tools []Tool) (string, error) {
	log := clog.FromContext(ctx)

	byName := make(map[string]Tool, len(tools))
	toolDefs := make([]anthropic.ToolUnionParam, 0, len(tools))
	for _, t := range tools {
		byName[t.Name] = t
		toolDefs = append(toolDefs, t.definition())
	}

	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(p.modelName),
		MaxTokens: p.maxTokens,
		Messages: []anthropic.MessageParam{{
			Role: anthropic.MessageParamRoleUser,
			Content: []anthropic.ContentBlockParamUnion{
				anthropic.NewTextBlock(prompt),
			},
		}},
		Tools: toolDefs,
	}
	params.Temperature = anthropic.Float(p.temperature)
	if p.systemInstructions != "" {
		params.System = []anthropic.TextBlockParam{{Text: p.systemInstructions}}
	}

	log.With("model", p.modelName).
		With("prompt_length", len(prompt)).
		With("tools", len(tools)).
		Info("Starting planner conversation")

	for {
		// Stream the response with retry for transient model errors.
		message, err := retry.Do(ctx, p.retryConfig, "stream_message", isRetryableModelError, func() (anthropic.Message, error) {
			stream := p.client.Messages.NewStreaming(ctx, params)
			var msg anthropic.Message
			for stream.Next() {
				event := stream.Current()
				if err := msg.Accumulate(event); err != nil {
					return msg, fmt.Errorf("failed to accumulate event: %w", err)
				}
			}
			if err := stream.Err(); err != nil {
				return msg, err
			}
			return msg, nil
		})
		if err != nil {
			return "", fmt.Errorf("failed to stream model response: %w", err)
		}

		var toolUseBlocks []anthropic.ToolUseBlock
		var textContent string
		for _, content := range message.Content {
			switch content.Type {
			case "text":
				textContent = content.Text
			case "tool_use":
				toolUseBlocks = append(toolUseBlocks, anthropic.ToolUseBlock{
					ID:    content.ID,
					Name:  content.Name,
					Input: content.Input,
				})
			}
		}

		if len(toolUseBlocks) > 0 {
			params.Messages = append(params.Messages, message.ToParam())

			var toolResults []anthropic.ContentBlockParamUnion
			for _, toolUse := range toolUseBlocks {
				result, err := p.executeToolCall(ctx, byName, toolUse)
				if err != nil {
					return "", err
				}
				toolResults = append(toolResults, result)
			}

			params.Messages = append(params.Messages, anthropic.MessageParam{
				Role:    anthropic.MessageParamRoleUser,
				Content: toolResults,
			})
			continue
		}

		if textContent != "" {
			log.Info("Planner conversation complete")
			return textContent, nil
		}

		return "", errors.New("no content in model response")
	}
}

// executeToolCall runs a single tool call and packages its result for the
// conversation. Unknown tools and handler failures are reported to the model
// as error maps, never as hard failures.
func (p *Planner) executeToolCall(ctx context.Context, tools map[string]Tool, toolUse anthropic.ToolUseBlock) (anthropic.ContentBlockParamUnion, error) {
	log := clog.FromContext(ctx)
	log.With("tool", toolUse.Name).With("id", toolUse.ID).Info("Executing tool call")

	var result map[string]any
	if tool, ok := tools[toolUse.Name]; ok {
		var args map[string]any
		if len(toolUse.Input) > 0 {
			if err := json.Unmarshal(toolUse.Input, &args); err != nil {
				result = Error("malformed tool arguments: %v", err)
			}
		}
		if result == nil {
			result = tool.Handler(ctx, ToolCall{ID: toolUse.ID, Name: toolUse.Name, Args: args})
		}
	} else {
		log.With("tool", toolUse.Name).Error("Unknown tool requested")
		result = Error("unknown tool: %q", toolUse.Name)
	}

	resultBytes, err := json.Marshal(result)
	if err != nil {
		return anthropic.ContentBlockParamUnion{}, fmt.Errorf("failed to marshal tool result: %w", err)
	}

	return anthropic.ContentBlockParamUnion{
		OfToolResult: &anthropic.ToolResultBlockParam{
			ToolUseID: toolUse.ID,
			Content: []anthropic.ToolResultBlockParamContentUnion{{
				OfText: &anthropic.TextBlockParam{
					Text: string(resultBytes),
				},
			}},
		},
	}, nil
}

// isRetryableModelError checks if an error is a retryable model API error.
// Returns true for rate limit, overloaded, and transient server errors.
func isRetryableModelError(err error) bool {
	var apiErr *anthropic.Error
	if errors.As(err, &apiErr) {
		switch apiErr.StatusCode {
		case 429, 503, 504, 529:
			return true
		}
	}
	return false
}
