/*
Copyright 2026 The Triagebot Authors
SPDX-License-Identifier: Apache-2.0
*/

package planner

import (
	"context"

	"github.com/anthropics/anthropic-sdk-go"
)

// ToolCall is the model's request to invoke one tool.
type ToolCall struct {
	ID   string
	Name string
	Args map[string]any
}

// Parameter describes a single tool parameter.
type Parameter struct {
	Name        string
	Type        string // "string", "integer", "boolean", "number"
	Description string
	Required    bool
}

// Tool pairs a tool definition with the handler that executes it.
//
// Handlers return a result map that is serialized back to the model. A
// handler that fails returns an {"error": ...} map (see Error) instead of
// aborting the conversation.
type Tool struct {
	Name        string
	Description string
	Parameters  []Parameter
	Handler     func(ctx context.Context, call ToolCall) map[string]any
}

// definition converts the tool to the model SDK's schema representation.
func (t Tool) definition() anthropic.ToolUnionParam {
	properties := make(map[string]any, len(t.Parameters))
	var required []string
	for _, p := range t.Parameters {
		properties[p.Name] = map[string]any{
			"type":        p.Type,
			"description": p.Description,
		}
		if p.Required {
			required = append(required, p.Name)
		}
	}

	return anthropic.ToolUnionParam{
		OfTool: &anthropic.ToolParam{
			Name:        t.Name,
			Description: anthropic.String(t.Description),
			InputSchema: anthropic.ToolInputSchemaParam{
				Type:       "object",
				Properties: properties,
				Required:   required,
			},
		},
	}
}
