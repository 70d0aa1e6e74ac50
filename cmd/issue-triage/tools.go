/*
Copyright 2026 The Triagebot Authors
SPDX-License-Identifier: Apache-2.0
*/

package main

import (
	"context"
	"errors"

	"github.com/agentic-community/triagebot/forge"
	"github.com/agentic-community/triagebot/planner"
	"github.com/agentic-community/triagebot/triage"
	"github.com/chainguard-dev/clog"
)

// issueTools builds the planner's tool surface for issue triage. Every
// handler reports failures back to the conversation as error maps so the
// planner can adjust instead of aborting the whole run.
func issueTools(fc *forge.Client, reg *triage.Registry, roster triage.Roster) []planner.Tool {
	return []planner.Tool{
		{
			Name:        "add_label",
			Description: "Add the specified category label to the given issue number.",
			Parameters: []planner.Parameter{
				{Name: "issue_number", Type: "integer", Description: "Issue number of the GitHub issue.", Required: true},
				{Name: "label", Type: "string", Description: "Category label to apply.", Required: true},
			},
			Handler: func(ctx context.Context, call planner.ToolCall) map[string]any {
				number, errResp := planner.Param[int](call, "issue_number")
				if errResp != nil {
					return errResp
				}
				label, errResp := planner.Param[string](call, "label")
				if errResp != nil {
					return errResp
				}

				clog.FromContext(ctx).With("issue", number).With("label", label).Info("Adding label to issue")
				if !reg.Contains(label) {
					return planner.Error("label %q is not an allowed category label, will not apply", label)
				}
				if err := fc.AddLabels(ctx, number, label); err != nil {
					return planner.ErrorWithContext(err, map[string]any{"issue_number": number})
				}
				return planner.Success(map[string]any{"applied_label": label})
			},
		},
		{
			Name:        "add_owner",
			Description: "Assign an owner to the issue based on its category label.",
			Parameters: []planner.Parameter{
				{Name: "issue_number", Type: "integer", Description: "Issue number of the GitHub issue.", Required: true},
				{Name: "label", Type: "string", Description: "Category label that determines the owner to assign.", Required: true},
			},
			Handler: func(ctx context.Context, call planner.ToolCall) map[string]any {
				number, errResp := planner.Param[int](call, "issue_number")
				if errResp != nil {
					return errResp
				}
				label, errResp := planner.Param[string](call, "label")
				if errResp != nil {
					return errResp
				}

				log := clog.FromContext(ctx).With("issue", number).With("label", label)
				log.Info("Assigning owner for label")

				owner, err := triage.ResolveOwner(label, reg, roster)
				var unknownErr *triage.UnknownCategoryError
				var emptyErr *triage.EmptyTeamError
				switch {
				case errors.As(err, &unknownErr):
					return planner.Error("label %q is not a valid category label", label)
				case errors.As(err, &emptyErr):
					// Missing roster data is a warning, not a failure; the rest
					// of the triage actions still apply.
					log.With("team", emptyErr.Team).Warn("No members defined for team, will not assign")
					return map[string]any{
						"status":  "warning",
						"message": "team " + emptyErr.Team + " for label " + label + " has no members defined, will not assign",
					}
				case err != nil:
					return planner.ErrorWithContext(err, map[string]any{"issue_number": number})
				}

				log.With("owner", owner).Info("Assigning default team member")
				if err := fc.AddAssignees(ctx, number, owner); err != nil {
					return planner.ErrorWithContext(err, map[string]any{"issue_number": number})
				}
				return planner.Success(map[string]any{"assigned_owner": owner})
			},
		},
		{
			Name:        "change_issue_type",
			Description: "Change the issue type of the given issue number, e.g. Bug or Feature.",
			Parameters: []planner.Parameter{
				{Name: "issue_number", Type: "integer", Description: "Issue number of the GitHub issue.", Required: true},
				{Name: "issue_type", Type: "string", Description: "Issue type to assign.", Required: true},
			},
			Handler: func(ctx context.Context, call planner.ToolCall) map[string]any {
				number, errResp := planner.Param[int](call, "issue_number")
				if errResp != nil {
					return errResp
				}
				issueType, errResp := planner.Param[string](call, "issue_type")
				if errResp != nil {
					return errResp
				}

				clog.FromContext(ctx).With("issue", number).With("type", issueType).Info("Changing issue type")
				if err := fc.SetIssueType(ctx, number, issueType); err != nil {
					return planner.ErrorWithContext(err, map[string]any{"issue_number": number})
				}
				return planner.Success(map[string]any{"issue_type": issueType})
			},
		},
		{
			Name:        "add_comment",
			Description: "Add a comment to the given issue number.",
			Parameters: []planner.Parameter{
				{Name: "issue_number", Type: "integer", Description: "Issue number of the GitHub issue.", Required: true},
				{Name: "body", Type: "string", Description: "Comment body in GitHub markdown.", Required: true},
			},
			Handler: func(ctx context.Context, call planner.ToolCall) map[string]any {
				number, errResp := planner.Param[int](call, "issue_number")
				if errResp != nil {
					return errResp
				}
				body, errResp := planner.Param[string](call, "body")
				if errResp != nil {
					return errResp
				}

				clog.FromContext(ctx).With("issue", number).Info("Adding comment to issue")
				if err := fc.AddComment(ctx, number, body); err != nil {
					return planner.ErrorWithContext(err, map[string]any{"issue_number": number})
				}
				return planner.Success(map[string]any{"message": "comment added"})
			},
		},
	}
}
