/*
Copyright 2026 The Triagebot Authors
SPDX-License-Identifier: Apache-2.0
*/

package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/agentic-community/triagebot/triage"
)

// categoryGuidelines is the rubric the planner uses to pick a category label.
// Keep the entries in sync with the default registry.
const categoryGuidelines = `Category rubric and disambiguation rules:
- "core-protocol": Issues related to base communication layer, global context, breaking changes or major refactors.
- "governance": Issues related to project governance, contribution guidelines, licensing.
- "capability": Issues suggesting new schemas (Discovery, Cart, etc.) or extensions, or bugs in existing ones.
- "documentation": Issues about documentation (README, guides).
- "infrastructure": Issues about CI/CD, linters, build scripts, repo setup.
- "maintenance": Issues about version bumps, lockfile updates, minor bug fixes, dependency updates.
- "sdk": Issues related to language specific SDKs.
- "samples-conformance": Issues about samples or conformance suite.

When unsure between categories, prefer the most specific match. If a category
cannot be assigned confidently, do not call the labeling tool.`

// systemInstructions renders the planner's standing instructions. The
// interactive flag switches between autonomous labeling and waiting for user
// approval before each label.
func systemInstructions(owner, repo string, reg *triage.Registry, interactive bool) string {
	approval := "Do not ask for user approval for labeling! If you can't find an appropriate category for the issue, do not label it."
	if interactive {
		approval = "Only label issues when the user approves the labeling!"
	}

	return fmt.Sprintf(`You are a triaging bot for the GitHub %s repo with the owner %s.
Your goal is to triage new issues by assigning a category label and setting issue type.
IMPORTANT: %s

%s

## Triaging Workflow

Each issue will have flags indicating what actions are needed:
- needs_category_label: true if the issue needs a category label.
- needs_owner: true if the issue needs an owner assigned.

For each issue, perform ONLY the required actions based on the flags:

1. If needs_category_label is true:
   - Use add_label to add ONE appropriate category label from the list: %s.
   - Use change_issue_type to set the issue type:
     - If it's a bug report, use "Bug"
     - If it's a feature request, use "Feature"
     - Otherwise, do not change the issue type
2. If needs_owner is true:
   - Use add_owner to assign an owner based on the category label.
   - If the issue already has a category label (existing_category_label), use that
     existing label to determine the owner. If you just added a category label, use
     that label to determine the owner.

Do NOT add a category label if needs_category_label is false.
Do NOT assign an owner if needs_owner is false.

Response quality requirements:
- Summarize the issue in your own words without leaving template placeholders.
- Justify the chosen category label with a short explanation referencing the issue details.
- If no label is applied, clearly state why.

Present the following in an easy to read format highlighting issue number and your label:
- the issue summary in a few sentences
- your category label recommendation and justification`,
		repo, owner, approval, categoryGuidelines, strings.Join(reg.Categories(), ", "))
}

// singleIssuePrompt renders the task for triaging one externally-selected
// issue. The candidate snapshot travels as JSON so the model sees exactly the
// fields classification used.
func singleIssuePrompt(c triage.Candidate) (string, error) {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encoding candidate: %w", err)
	}
	return fmt.Sprintf("Triage the following issue according to its flags:\n\n%s", data), nil
}

// batchPrompt renders the task for a batch of pre-filtered candidates.
func batchPrompt(cs []triage.Candidate) (string, error) {
	data, err := json.MarshalIndent(cs, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encoding candidates: %w", err)
	}
	return fmt.Sprintf("Triage each of the following %d issues according to their flags:\n\n%s", len(cs), data), nil
}
