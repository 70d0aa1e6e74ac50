//go:build withauth

/*
Copyright 2026 The Triagebot Authors
SPDX-License-Identifier: Apache-2.0
*/

package planner_test

import (
	"context"
	"os"
	"sync/atomic"
	"testing"

	"github.com/agentic-community/triagebot/planner"
	"github.com/anthropics/anthropic-sdk-go"
)

// TestDecideWithTools runs one real conversation against the API and checks
// that the model drives the tool surface. Requires ANTHROPIC_API_KEY.
func TestDecideWithTools(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping live API test in short mode.")
	}
	if os.Getenv("ANTHROPIC_API_KEY") == "" {
		t.Skip("Skipping integration test: ANTHROPIC_API_KEY not set")
	}

	ctx := context.Background()
	p, err := planner.New(anthropic.NewClient(),
		planner.WithSystemInstructions("You label issues. Use the add_label tool, then summarize what you did."),
	)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	var calls atomic.Int32
	tools := []planner.Tool{{
		Name:        "add_label",
		Description: "Add a category label to an issue.",
		Parameters: []planner.Parameter{
			{Name: "issue_number", Type: "integer", Description: "Issue number.", Required: true},
			{Name: "label", Type: "string", Description: "Label to apply.", Required: true},
		},
		Handler: func(ctx context.Context, call planner.ToolCall) map[string]any {
			calls.Add(1)
			label, errResp := planner.Param[string](call, "label")
			if errResp != nil {
				return errResp
			}
			return planner.Success(map[string]any{"applied_label": label})
		},
	}}

	narrative, err := p.Decide(ctx, `Label issue #7 ("docs: fix typo in README") with the "documentation" label.`, tools)
	if err != nil {
		t.Fatalf("Decide: %v", err)
	}
	if calls.Load() == 0 {
		t.Error("expected at least one add_label call")
	}
	if narrative == "" {
		t.Error("expected a closing narrative")
	}
	t.Logf("narrative: %s", narrative)
}
