// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// TechCategory classifies a technology for grouping on the about and skills pages.
type TechCategory string

const (
	TechBackend  TechCategory = "backend"
	TechFrontend TechCategory = "frontend"
	TechDatabase TechCategory = "database"
	TechTool     TechCategory = "tool"
	TechLanguage TechCategory = "language"
)

// TechCategories lists every category in display order.
var TechCategories = []TechCategory{TechLanguage, TechBackend, TechFrontend, TechDatabase, TechTool}

// Valid reports whether c is one of the known categories.
func (c TechCategory) Valid() bool {
	switch c {
	case TechBackend, TechFrontend, TechDatabase, TechTool, TechLanguage:
		return true
	}
	return false
}

// Label returns the human-readable name of the category.
func (c TechCategory) Label() string {
	switch c {
	case TechBackend:
		return "Backend"
	case TechFrontend:
		return "Frontend"
	case TechDatabase:
		return "Database"
	case TechLanguage:
		return "Language"
	default:
		return "Tool"
	}
}

// Proficiency bounds.
const (
	MinProficiency     = 1
	MaxProficiency     = 5
	DefaultProficiency = 3
)

// Technology is a language, framework or tool used in projects.
type Technology struct {
	ID          uuid.UUID    `json:"id"`
	Name        string       `json:"name"`
	Slug        string       `json:"slug"`
	Category    TechCategory `json:"category"`
	Icon        string       `json:"icon"`
	Color       string       `json:"color"`
	Proficiency int          `json:"proficiency"`
	SortOrder   int          `json:"sort_order"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

// Stars renders proficiency as filled and empty stars, e.g. "★★★☆☆".
func (t *Technology) Stars() string {
	p := t.Proficiency
	if p < 0 {
		p = 0
	}
	if p > MaxProficiency {
		p = MaxProficiency
	}
	out := make([]rune, 0, MaxProficiency)
	for i := 0; i < MaxProficiency; i++ {
		if i < p {
			out = append(out, '★')
		} else {
			out = append(out, '☆')
		}
	}
	return string(out)
}

// TechGroup is a set of technologies sharing a category.
type TechGroup struct {
	Category     TechCategory
	Technologies []Technology
}

// GroupTechnologies buckets technologies by category, following the order
// of TechCategories. Empty groups are omitted and the input order is kept
// within each group.
func GroupTechnologies(techs []Technology) []TechGroup {
	buckets := make(map[TechCategory][]Technology)
	for _, t := range techs {
		c := t.Category
		if !c.Valid() {
			c = TechTool
		}
		buckets[c] = append(buckets[c], t)
	}
	var groups []TechGroup
	for _, c := range TechCategories {
		if len(buckets[c]) == 0 {
			continue
		}
		groups = append(groups, TechGroup{Category: c, Technologies: buckets[c]})
	}
	return groups
}
