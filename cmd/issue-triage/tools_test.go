/*
Copyright 2026 The Triagebot Authors
SPDX-License-Identifier: Apache-2.0
*/

package main

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/agentic-community/triagebot/forge"
	"github.com/agentic-community/triagebot/planner"
	"github.com/agentic-community/triagebot/retry"
	"github.com/agentic-community/triagebot/triage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newToolHarness wires the tool surface against a local test server and
// returns the tools plus a counter of requests the server actually saw.
func newToolHarness(t *testing.T, reg *triage.Registry, roster triage.Roster, handler http.HandlerFunc) ([]planner.Tool, *atomic.Int64) {
	t.Helper()

	var requests atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		handler(w, r)
	}))
	t.Cleanup(srv.Close)

	fc, err := forge.New(context.Background(), "test-org", "test-repo", "fake-token",
		forge.WithEnterpriseURLs(srv.URL, srv.URL+"/graphql"),
		forge.WithRetryConfig(retry.Config{MaxAttempts: 3, Delay: time.Millisecond}),
	)
	require.NoError(t, err)

	return issueTools(fc, reg, roster), &requests
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

func TestAddLabel_RejectsUnknownCategory(t *testing.T) {
	tools, requests := newToolHarness(t, triage.DefaultRegistry(), triage.DefaultRoster(), func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("unexpected request to %s", r.URL.Path)
	})

	result := toolByName(t, tools, "add_label").Handler(context.Background(), planner.ToolCall{
		Name: "add_label",
		Args: map[string]any{"issue_number": float64(7), "label": "wontfix"},
	})

	assert.Contains(t, result["error"], "not an allowed category label")
	assert.Equal(t, int64(0), requests.Load(), "rejected labels must not reach the forge")
}

func TestAddLabel_Applies(t *testing.T) {
	var gotBody []string
	tools, requests := newToolHarness(t, triage.DefaultRegistry(), triage.DefaultRoster(), func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v3/repos/test-org/test-repo/issues/7/labels", r.URL.Path)
		data, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(data, &gotBody))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"name": "sdk"}]`))
	})

	result := toolByName(t, tools, "add_label").Handler(context.Background(), planner.ToolCall{
		Name: "add_label",
		Args: map[string]any{"issue_number": float64(7), "label": "sdk"},
	})

	assert.Equal(t, "success", result["status"])
	assert.Equal(t, "sdk", result["applied_label"])
	assert.Equal(t, []string{"sdk"}, gotBody)
	assert.Equal(t, int64(1), requests.Load())
}

func TestAddOwner_AssignsFirstTeamMember(t *testing.T) {
	reg, err := triage.NewRegistry(triage.CategoryOwner{Category: "sdk", Team: "sdk-team"})
	require.NoError(t, err)
	roster := triage.NewRoster(map[string][]string{"sdk-team": {"alice", "bob"}})

	var gotBody map[string][]string
	tools, _ := newToolHarness(t, reg, roster, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v3/repos/test-org/test-repo/issues/12/assignees", r.URL.Path)
		data, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(data, &gotBody))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"number": 12}`))
	})

	result := toolByName(t, tools, "add_owner").Handler(context.Background(), planner.ToolCall{
		Name: "add_owner",
		Args: map[string]any{"issue_number": float64(12), "label": "sdk"},
	})

	assert.Equal(t, "success", result["status"])
	assert.Equal(t, "alice", result["assigned_owner"])
	assert.Equal(t, []string{"alice"}, gotBody["assignees"])
}

func TestAddOwner_WarnsOnEmptyTeam(t *testing.T) {
	reg, err := triage.NewRegistry(triage.CategoryOwner{Category: "governance", Team: "governance-committee"})
	require.NoError(t, err)
	roster := triage.NewRoster(nil)

	tools, requests := newToolHarness(t, reg, roster, func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("unexpected request to %s", r.URL.Path)
	})

	result := toolByName(t, tools, "add_owner").Handler(context.Background(), planner.ToolCall{
		Name: "add_owner",
		Args: map[string]any{"issue_number": float64(3), "label": "governance"},
	})

	assert.Equal(t, "warning", result["status"])
	assert.Contains(t, result["message"], "governance-committee")
	assert.Equal(t, int64(0), requests.Load())
}

func TestAddOwner_RejectsUnknownLabel(t *testing.T) {
	tools, requests := newToolHarness(t, triage.DefaultRegistry(), triage.DefaultRoster(), func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("unexpected request to %s", r.URL.Path)
	})

	result := toolByName(t, tools, "add_owner").Handler(context.Background(), planner.ToolCall{
		Name: "add_owner",
		Args: map[string]any{"issue_number": float64(3), "label": "bogus"},
	})

	assert.Contains(t, result["error"], "not a valid category label")
	assert.Equal(t, int64(0), requests.Load())
}

func TestChangeIssueType(t *testing.T) {
	var gotBody map[string]string
	tools, _ := newToolHarness(t, triage.DefaultRegistry(), triage.DefaultRoster(), func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "/api/v3/repos/test-org/test-repo/issues/5", r.URL.Path)
		data, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(data, &gotBody))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"number": 5}`))
	})

	result := toolByName(t, tools, "change_issue_type").Handler(context.Background(), planner.ToolCall{
		Name: "change_issue_type",
		Args: map[string]any{"issue_number": float64(5), "issue_type": "Bug"},
	})

	assert.Equal(t, "success", result["status"])
	assert.Equal(t, "Bug", result["issue_type"])
	assert.Equal(t, "Bug", gotBody["type"])
}

func TestToolHandlers_MissingParams(t *testing.T) {
	tools, requests := newToolHarness(t, triage.DefaultRegistry(), triage.DefaultRoster(), func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("unexpected request to %s", r.URL.Path)
	})

	for _, name := range []string{"add_label", "add_owner", "change_issue_type", "add_comment"} {
		result := toolByName(t, tools, name).Handler(context.Background(), planner.ToolCall{
			Name: name,
			Args: map[string]any{},
		})
		assert.Contains(t, result["error"], "required", "tool %s must reject empty args", name)
	}
	assert.Equal(t, int64(0), requests.Load())
}
