/*
Copyright 2026 The Triagebot Authors
SPDX-License-Identifier: Apache-2.0
*/

package main

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/agentic-community/triagebot/forge"
	"github.com/agentic-community/triagebot/planner"
	"github.com/agentic-community/triagebot/retry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type gqlRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables"`
}

// newModerationHarness wires the moderation tool surface against a local
// GraphQL test server.
func newModerationHarness(t *testing.T, handler func(w http.ResponseWriter, req gqlRequest)) []planner.Tool {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/graphql", func(w http.ResponseWriter, r *http.Request) {
		var req gqlRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		handler(w, req)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	fc, err := forge.New(context.Background(), "test-org", "test-repo", "fake-token",
		forge.WithEnterpriseURLs(srv.URL, srv.URL+"/graphql"),
		forge.WithRetryConfig(retry.Config{MaxAttempts: 3, Delay: time.Millisecond}),
	)
	require.NoError(t, err)

	return discussionTools(fc)
}

func toolByName(t *testing.T, tools []planner.Tool, name string) planner.Tool {
	t.Helper()
	for _, tool := range tools {
		if tool.Name == name {
			return tool
		}
	}
	t.Fatalf("tool %q not found", name)
	return planner.Tool{}
}

func writeData(t *testing.T, w http.ResponseWriter, data any) {
	t.Helper()
	require.NoError(t, json.NewEncoder(w).Encode(map[string]any{"data": data}))
}

func TestGetDiscussionTool(t *testing.T) {
	tools := newModerationHarness(t, func(w http.ResponseWriter, req gqlRequest) {
		assert.EqualValues(t, 21, req.Variables["number"])
		writeData(t, w, map[string]any{"repository": map[string]any{"discussion": map[string]any{
			"id":     "D_21",
			"title":  "Cart schema questions",
			"body":   "context",
			"author": map[string]any{"login": "erin"},
			"comments": map[string]any{"nodes": []map[string]any{
				{"author": map[string]any{"login": "frank"}, "body": "@maintainers please weigh in", "createdAt": "2026-08-10T12:00:00Z"},
			}},
			"labels": map[string]any{"nodes": []map[string]any{}},
		}}})
	})

	result := toolByName(t, tools, "get_discussion").Handler(context.Background(), planner.ToolCall{
		Name: "get_discussion",
		Args: map[string]any{"discussion_number": float64(21)},
	})

	require.Equal(t, "success", result["status"])
	d, ok := result["discussion"].(forge.Discussion)
	require.True(t, ok, "unexpected discussion payload type %T", result["discussion"])
	assert.Equal(t, "D_21", d.ID)
	assert.Equal(t, 21, d.Number)
	assert.Len(t, d.Comments, 1)
}

func TestGetDiscussionTool_NotFound(t *testing.T) {
	tools := newModerationHarness(t, func(w http.ResponseWriter, req gqlRequest) {
		writeData(t, w, map[string]any{"repository": map[string]any{"discussion": nil}})
	})

	result := toolByName(t, tools, "get_discussion").Handler(context.Background(), planner.ToolCall{
		Name: "get_discussion",
		Args: map[string]any{"discussion_number": float64(404)},
	})

	assert.Contains(t, result["error"], "not found")
	assert.EqualValues(t, 404, result["discussion_number"])
}

func TestAddLabelToDiscussionTool(t *testing.T) {
	var mutated bool
	tools := newModerationHarness(t, func(w http.ResponseWriter, req gqlRequest) {
		switch {
		case strings.Contains(req.Query, "addLabelsToLabelable"):
			mutated = true
			input, _ := req.Variables["input"].(map[string]any)
			assert.Equal(t, "D_21", input["labelableId"])
			writeData(t, w, map[string]any{"addLabelsToLabelable": map[string]any{"clientMutationId": "x"}})
		case strings.Contains(req.Query, "labels(first: 100)"):
			writeData(t, w, map[string]any{"repository": map[string]any{"labels": map[string]any{
				"nodes": []map[string]any{{"id": "L_9", "name": "needs-review"}},
			}}})
		default:
			t.Errorf("unexpected graphql query: %s", req.Query)
		}
	})

	result := toolByName(t, tools, "add_label_to_discussion").Handler(context.Background(), planner.ToolCall{
		Name: "add_label_to_discussion",
		Args: map[string]any{"discussion_id": "D_21", "label": "needs-review"},
	})

	assert.Equal(t, "success", result["status"])
	assert.Equal(t, "needs-review", result["applied_label"])
	assert.True(t, mutated, "expected the label mutation to run")
}

func TestAddCommentToDiscussionTool(t *testing.T) {
	tools := newModerationHarness(t, func(w http.ResponseWriter, req gqlRequest) {
		require.Contains(t, req.Query, "addDiscussionComment")
		input, _ := req.Variables["input"].(map[string]any)
		assert.Equal(t, "D_21", input["discussionId"])
		assert.Equal(t, "a maintainer will follow up", input["body"])
		writeData(t, w, map[string]any{"addDiscussionComment": map[string]any{"clientMutationId": "x"}})
	})

	result := toolByName(t, tools, "add_comment_to_discussion").Handler(context.Background(), planner.ToolCall{
		Name: "add_comment_to_discussion",
		Args: map[string]any{"discussion_id": "D_21", "body": "a maintainer will follow up"},
	})

	assert.Equal(t, "success", result["status"])
}

func TestModerationTools_MissingParams(t *testing.T) {
	tools := newModerationHarness(t, func(w http.ResponseWriter, req gqlRequest) {
		t.Errorf("unexpected graphql request: %s", req.Query)
	})

	for _, name := range []string{"get_discussion", "add_label_to_discussion", "add_comment_to_discussion"} {
		result := toolByName(t, tools, name).Handler(context.Background(), planner.ToolCall{
			Name: name,
			Args: map[string]any{},
		})
		assert.Contains(t, result["error"], "required", "tool %s must reject empty args", name)
	}
}
