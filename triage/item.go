/*
Copyright 2026 The Triagebot Authors
SPDX-License-Identifier: Apache-2.0
*/

package triage

import (
	"strings"
	"time"
)

// Item is an immutable snapshot of a forge issue or discussion at fetch time.
// It is never mutated after creation; a later processing run supersedes it
// with a fresh fetch.
type Item struct {
	Number    int       `json:"number"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	Author    string    `json:"author"`
	Labels    []string  `json:"labels"`
	Assignees []string  `json:"assignees"`
	CreatedAt time.Time `json:"created_at"`

	// AuthorIsBot records the forge's own account-type marker for the author.
	AuthorIsBot bool `json:"author_is_bot,omitempty"`
}

// botSuffix marks forge logins operated by automation, e.g. "renovate[bot]".
const botSuffix = "[bot]"

// IsBotAuthored reports whether the item was opened by an automated account,
// either by the forge's account-type field or by the login suffix convention.
func (i Item) IsBotAuthored() bool {
	return i.AuthorIsBot || strings.HasSuffix(i.Author, botSuffix)
}

// ActionFlags describes what remains to be done for an item. Flags are a pure
// function of the item snapshot and the registry; they are derived on each
// run, never stored.
type ActionFlags struct {
	// NeedsCategoryLabel is set when none of the item's labels is a known
	// category.
	NeedsCategoryLabel bool `json:"needs_category_label"`

	// NeedsOwner is set when the item has no assignees.
	NeedsOwner bool `json:"needs_owner"`

	// ExistingCategoryLabel is the category label already on the item, when
	// one exists. With multiple known categories present, the first in
	// registry order wins.
	ExistingCategoryLabel string `json:"existing_category_label,omitempty"`
}

// NeedsAction reports whether any triage action remains for the item.
func (f ActionFlags) NeedsAction() bool {
	return f.NeedsCategoryLabel || f.NeedsOwner
}

// Candidate pairs an item snapshot with its computed flags. Candidates are
// what the planner receives.
type Candidate struct {
	Item  Item        `json:"item"`
	Flags ActionFlags `json:"flags"`
}
