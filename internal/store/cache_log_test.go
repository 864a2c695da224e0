// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"testing"

	"github.com/google/uuid"
)

func TestCacheLogStoreRecord(t *testing.T) {
	db := testDB(t)
	s := NewCacheLogStore(db)

	a, b := uuid.New(), uuid.New()
	t.Cleanup(func() {
		db.Exec("DELETE FROM cache_invalidation_log WHERE entity_id IN ($1, $2)", a, b)
	})

	s.Record("project", "publish", []uuid.UUID{a, b, a})
	s.Record("project", "noop", nil)

	var count int
	err := db.QueryRow(
		"SELECT COUNT(*) FROM cache_invalidation_log WHERE entity_id IN ($1, $2) AND action = 'publish'", a, b,
	).Scan(&count)
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if count != 2 {
		t.Errorf("expected one row per distinct id, got %d", count)
	}
}

func TestCacheLogStoreRecent(t *testing.T) {
	db := testDB(t)
	s := NewCacheLogStore(db)

	p, tech := uuid.New(), uuid.New()
	t.Cleanup(func() {
		db.Exec("DELETE FROM cache_invalidation_log WHERE entity_id IN ($1, $2)", p, tech)
	})
	s.Record("project", "create", []uuid.UUID{p})
	s.Record("technology", "proficiency", []uuid.UUID{tech})

	entries, err := s.Recent("", 10)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(entries) < 2 {
		t.Fatalf("expected at least 2 entries, got %d", len(entries))
	}
	for i := 1; i < len(entries); i++ {
		if entries[i-1].InvalidatedAt.Before(entries[i].InvalidatedAt) {
			t.Fatal("expected entries ordered by invalidated_at DESC")
		}
	}

	techOnly, err := s.Recent("technology", 50)
	if err != nil {
		t.Fatalf("Recent(technology): %v", err)
	}
	found := false
	for _, e := range techOnly {
		if e.EntityType != "technology" {
			t.Errorf("unexpected entity type %q", e.EntityType)
		}
		if e.EntityID == tech && e.Action == "proficiency" {
			found = true
		}
	}
	if !found {
		t.Error("technology entry missing from filtered result")
	}
}
