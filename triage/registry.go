/*
Copyright 2026 The Triagebot Authors
SPDX-License-Identifier: Apache-2.0
*/

package triage

import (
	"fmt"
	"os"
	"slices"

	"gopkg.in/yaml.v3"
)

// CategoryOwner associates a category label with the team responsible for it.
type CategoryOwner struct {
	Category string `yaml:"name"`
	Team     string `yaml:"team"`
}

// Registry is a closed enumeration of category labels and their owning teams.
// It preserves insertion order so that classification tie-breaks are
// deterministic. A Registry is immutable after construction.
type Registry struct {
	order  []string
	owners map[string]string
}

// NewRegistry builds a registry from ordered category/team pairs.
// Duplicate or empty category names are rejected.
func NewRegistry(entries ...CategoryOwner) (*Registry, error) {
	r := &Registry{
		order:  make([]string, 0, len(entries)),
		owners: make(map[string]string, len(entries)),
	}
	for _, e := range entries {
		if e.Category == "" {
			return nil, fmt.Errorf("category name cannot be empty")
		}
		if _, ok := r.owners[e.Category]; ok {
			return nil, fmt.Errorf("duplicate category %q", e.Category)
		}
		r.order = append(r.order, e.Category)
		r.owners[e.Category] = e.Team
	}
	return r, nil
}

// Contains reports whether label is a known category.
func (r *Registry) Contains(label string) bool {
	_, ok := r.owners[label]
	return ok
}

// Team returns the team owning the given category label.
func (r *Registry) Team(category string) (string, bool) {
	team, ok := r.owners[category]
	return team, ok
}

// Categories returns the category labels in registry order.
func (r *Registry) Categories() []string {
	return slices.Clone(r.order)
}

// Roster maps team names to an ordered member list. The first member of each
// team is the designated default assignee. A Roster is immutable after
// construction.
type Roster struct {
	members map[string][]string
}

// NewRoster copies the given membership map into an immutable roster.
func NewRoster(members map[string][]string) Roster {
	copied := make(map[string][]string, len(members))
	for team, logins := range members {
		copied[team] = slices.Clone(logins)
	}
	return Roster{members: copied}
}

// Members returns the ordered member list for a team, or nil when the team is
// unknown.
func (r Roster) Members(team string) []string {
	return slices.Clone(r.members[team])
}

// DefaultRegistry returns the built-in category-to-team mapping.
func DefaultRegistry() *Registry {
	r, err := NewRegistry(
		CategoryOwner{Category: "core-protocol", Team: "technical-committee"},
		CategoryOwner{Category: "governance", Team: "governance-committee"},
		CategoryOwner{Category: "capability", Team: "maintainers"},
		CategoryOwner{Category: "documentation", Team: "maintainers"},
		CategoryOwner{Category: "infrastructure", Team: "devops-maintainers"},
		CategoryOwner{Category: "maintenance", Team: "devops-maintainers"},
		CategoryOwner{Category: "sdk", Team: "devops-maintainers"},
		CategoryOwner{Category: "samples-conformance", Team: "maintainers"},
	)
	if err != nil {
		panic(err) // static data
	}
	return r
}

// DefaultRoster returns the built-in team membership. The first login of each
// team is the default assignee.
func DefaultRoster() Roster {
	return NewRoster(map[string][]string{
		"technical-committee": {
			"igrigorik",
			"aglazer",
			"amithanda",
			"maximenajim",
			"vvemula",
			"lemonmade",
			"mnaga",
			"sinhanurag",
			"ihoosain",
			"raginpirate",
			"drewolson-google",
		},
		"governance-committee": {
			"igrigorik",
			"amithanda",
		},
		"maintainers": {
			"richmolj",
			"westeezy",
			"jingyli",
			"DanielFalconGuedes",
			"mmohades",
			"yanheChen",
			"alexpark20",
			"knightlin-shopify",
		},
		"devops-maintainers": {
			"wry-ry",
			"ptiper",
			"nearlyforget",
			"aksbro-gpu",
			"MitkoDeyanovMitev",
			"damaz91",
			"carol-w-tech",
		},
	})
}

// ownershipFile mirrors the on-disk YAML ownership document.
type ownershipFile struct {
	Categories []CategoryOwner     `yaml:"categories"`
	Teams      map[string][]string `yaml:"teams"`
}

// LoadOwnership reads a registry and roster from a YAML ownership file.
func LoadOwnership(path string) (*Registry, Roster, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, Roster{}, fmt.Errorf("reading ownership file: %w", err)
	}

	var doc ownershipFile
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, Roster{}, fmt.Errorf("parsing ownership file %s: %w", path, err)
	}
	if len(doc.Categories) == 0 {
		return nil, Roster{}, fmt.Errorf("ownership file %s defines no categories", path)
	}

	reg, err := NewRegistry(doc.Categories...)
	if err != nil {
		return nil, Roster{}, fmt.Errorf("ownership file %s: %w", path, err)
	}
	return reg, NewRoster(doc.Teams), nil
}
