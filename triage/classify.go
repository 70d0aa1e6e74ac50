/*
Copyright 2026 The Triagebot Authors
SPDX-License-Identifier: Apache-2.0
*/

package triage

import "fmt"

// UnknownCategoryError reports a label that is not in the registry.
type UnknownCategoryError struct {
	Label string
}

func (e *UnknownCategoryError) Error() string {
	return fmt.Sprintf("label %q is not a known category", e.Label)
}

// EmptyTeamError reports a team with no roster entries.
type EmptyTeamError struct {
	Team string
}

func (e *EmptyTeamError) Error() string {
	return fmt.Sprintf("team %q has no members", e.Team)
}

// Classify computes the action flags for an item against the registry.
//
// Classify is a pure function: the same snapshot and registry always produce
// the same flags. When the item carries more than one known category label,
// the first category in registry order is reported as the existing label.
func Classify(item Item, reg *Registry) ActionFlags {
	present := make(map[string]struct{}, len(item.Labels))
	for _, l := range item.Labels {
		present[l] = struct{}{}
	}

	flags := ActionFlags{
		NeedsOwner: len(item.Assignees) == 0,
	}
	for _, cat := range reg.order {
		if _, ok := present[cat]; ok {
			flags.ExistingCategoryLabel = cat
			break
		}
	}
	flags.NeedsCategoryLabel = flags.ExistingCategoryLabel == ""
	return flags
}

// FilterCandidates classifies items and keeps those that still need action.
// Bot-authored items are dropped before classification so they can never have
// actions proposed against them. When maxItems is positive, filtering stops
// once that many candidates are collected.
func FilterCandidates(items []Item, reg *Registry, maxItems int) []Candidate {
	var candidates []Candidate
	for _, item := range items {
		if item.IsBotAuthored() {
			continue
		}
		flags := Classify(item, reg)
		if !flags.NeedsAction() {
			continue
		}
		candidates = append(candidates, Candidate{Item: item, Flags: flags})
		if maxItems > 0 && len(candidates) >= maxItems {
			break
		}
	}
	return candidates
}

// ResolveOwner returns the default assignee for a category label: the first
// member of the team that owns the category. Failures here are non-fatal to a
// batch; callers report them and skip the owner-assignment step.
func ResolveOwner(label string, reg *Registry, roster Roster) (string, error) {
	team, ok := reg.Team(label)
	if !ok {
		return "", &UnknownCategoryError{Label: label}
	}
	members := roster.Members(team)
	if len(members) == 0 || members[0] == "" {
		return "", &EmptyTeamError{Team: team}
	}
	return members[0], nil
}
