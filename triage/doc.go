/*
Copyright 2026 The Triagebot Authors
SPDX-License-Identifier: Apache-2.0
*/

// Package triage computes what remains to be done for forge items.
//
// The package is pure: it performs no I/O and holds no mutable state. Given
// an immutable Item snapshot and an ownership Registry, Classify derives
// ActionFlags describing the missing category label and owner. Classifying
// the same snapshot twice yields identical flags, which is what makes repeat
// bot runs over the same repository safe.
//
// Bot-authored items are filtered out before classification ever happens, so
// no mutating action is ever proposed for them.
//
// # Ownership data
//
// Registry maps category labels to owning teams; Roster maps teams to an
// ordered member list whose first entry is the default assignee. Both are
// loaded once at process start, either from the built-in defaults or from a
// YAML ownership file:
//
//	categories:
//	  - name: core-protocol
//	    team: technical-committee
//	teams:
//	  technical-committee: [alice, bob]
package triage
