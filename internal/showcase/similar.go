// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package showcase

import (
	"sort"

	"github.com/google/uuid"

	"portfolio/internal/models"
	"portfolio/internal/store"
)

// RankSimilar orders candidates by same category first, then by number
// of shared technologies, then display order, most recent completion and
// id. Duplicates are dropped and at most n projects are returned.
func RankSimilar(cands []store.SimilarCandidate, n int) []models.Project {
	if n <= 0 || len(cands) == 0 {
		return nil
	}

	seen := make(map[uuid.UUID]bool, len(cands))
	unique := make([]store.SimilarCandidate, 0, len(cands))
	for _, c := range cands {
		if seen[c.Project.ID] {
			continue
		}
		seen[c.Project.ID] = true
		unique = append(unique, c)
	}

	sort.SliceStable(unique, func(i, j int) bool {
		a, b := unique[i], unique[j]
		if a.SameCategory != b.SameCategory {
			return a.SameCategory
		}
		if a.SharedTechs != b.SharedTechs {
			return a.SharedTechs > b.SharedTechs
		}
		if a.Project.SortOrder != b.Project.SortOrder {
			return a.Project.SortOrder < b.Project.SortOrder
		}
		ac, bc := a.Project.CompletedAt, b.Project.CompletedAt
		switch {
		case ac != nil && bc == nil:
			return true
		case ac == nil && bc != nil:
			return false
		case ac != nil && bc != nil && !ac.Equal(*bc):
			return ac.After(*bc)
		}
		return a.Project.ID.String() < b.Project.ID.String()
	})

	if len(unique) > n {
		unique = unique[:n]
	}
	out := make([]models.Project, len(unique))
	for i, c := range unique {
		out[i] = c.Project
	}
	return out
}

// Neighbors returns the entries before and after id in order. Either is
// nil at the ends of the list, and both are nil when id is not present.
func Neighbors(order []store.NavEntry, id uuid.UUID) (prev, next *store.NavEntry) {
	for i := range order {
		if order[i].ID != id {
			continue
		}
		if i > 0 {
			prev = &order[i-1]
		}
		if i+1 < len(order) {
			next = &order[i+1]
		}
		return prev, next
	}
	return nil, nil
}
