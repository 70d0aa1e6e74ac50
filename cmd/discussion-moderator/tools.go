/*
Copyright 2026 The Triagebot Authors
SPDX-License-Identifier: Apache-2.0
*/

package main

import (
	"context"

	"github.com/agentic-community/triagebot/forge"
	"github.com/agentic-community/triagebot/planner"
	"github.com/chainguard-dev/clog"
)

// discussionTools builds the planner's tool surface for moderation. Mutations
// take the discussion's GraphQL node ID, which the planner obtains from
// get_discussion; failures flow back as error maps.
func discussionTools(fc *forge.Client) []planner.Tool {
	return []planner.Tool{
		{
			Name:        "get_discussion",
			Description: "Fetch a discussion's title, body, labels, and recent comments.",
			Parameters: []planner.Parameter{
				{Name: "discussion_number", Type: "integer", Description: "The number of the GitHub discussion.", Required: true},
			},
			Handler: func(ctx context.Context, call planner.ToolCall) map[string]any {
				number, errResp := planner.Param[int](call, "discussion_number")
				if errResp != nil {
					return errResp
				}

				clog.FromContext(ctx).With("discussion", number).Info("Fetching discussion")
				d, err := fc.GetDiscussion(ctx, number)
				if err != nil {
					return planner.ErrorWithContext(err, map[string]any{"discussion_number": number})
				}
				return planner.Success(map[string]any{"discussion": d})
			},
		},
		{
			Name:        "add_label_to_discussion",
			Description: "Add a label, by name, to a discussion identified by its node ID.",
			Parameters: []planner.Parameter{
				{Name: "discussion_id", Type: "string", Description: "GraphQL node ID of the discussion, from get_discussion.", Required: true},
				{Name: "label", Type: "string", Description: "Name of the label to apply.", Required: true},
			},
			Handler: func(ctx context.Context, call planner.ToolCall) map[string]any {
				discussionID, errResp := planner.Param[string](call, "discussion_id")
				if errResp != nil {
					return errResp
				}
				label, errResp := planner.Param[string](call, "label")
				if errResp != nil {
					return errResp
				}

				clog.FromContext(ctx).With("discussion_id", discussionID).With("label", label).Info("Adding label to discussion")
				if err := fc.AddDiscussionLabel(ctx, discussionID, label); err != nil {
					return planner.ErrorWithContext(err, map[string]any{"discussion_id": discussionID})
				}
				return planner.Success(map[string]any{"applied_label": label})
			},
		},
		{
			Name:        "add_comment_to_discussion",
			Description: "Post a comment on a discussion identified by its node ID.",
			Parameters: []planner.Parameter{
				{Name: "discussion_id", Type: "string", Description: "GraphQL node ID of the discussion, from get_discussion.", Required: true},
				{Name: "body", Type: "string", Description: "Comment body in GitHub markdown.", Required: true},
			},
			Handler: func(ctx context.Context, call planner.ToolCall) map[string]any {
				discussionID, errResp := planner.Param[string](call, "discussion_id")
				if errResp != nil {
					return errResp
				}
				body, errResp := planner.Param[string](call, "body")
				if errResp != nil {
					return errResp
				}

				clog.FromContext(ctx).With("discussion_id", discussionID).Info("Adding comment to discussion")
				if err := fc.AddDiscussionComment(ctx, discussionID, body); err != nil {
					return planner.ErrorWithContext(err, map[string]any{"discussion_id": discussionID})
				}
				return planner.Success(map[string]any{"message": "comment added"})
			},
		},
	}
}
