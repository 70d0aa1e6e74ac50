/*
Copyright 2026 The Triagebot Authors
SPDX-License-Identifier: Apache-2.0
*/

// Package planner drives a hosted model through a tool-calling conversation.
//
// The planner is the decision-making half of each bot: the caller supplies a
// prompt describing pre-filtered, pre-annotated candidates and a fixed tool
// surface; the model decides which tools to invoke and in what order, and the
// planner returns its final narrative once it stops calling tools.
//
// Tool handlers report failures as {"error": ...} result maps handed back to
// the model rather than aborting the conversation, so one item's failed
// mutation never takes down the rest of a batch.
//
// Transient model API errors (rate limiting, overload) are retried with the
// same bounded policy used for forge calls.
//
// # Basic Usage
//
//	p, err := planner.New(anthropic.NewClient(),
//	    planner.WithModel("claude-sonnet-4-5"),
//	    planner.WithSystemInstructions(instructions),
//	)
//	...
//	narrative, err := p.Decide(ctx, prompt, tools)
package planner
