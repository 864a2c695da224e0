// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// cache_log.go keeps an audit trail of showcase writes that dropped the
// sidebar, navigation or page caches. Bulk actions write one row per
// affected entity in a single statement.
package store

import (
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// CacheLogStore handles cache invalidation log operations.
type CacheLogStore struct {
	db *sql.DB
}

// NewCacheLogStore creates a new CacheLogStore.
func NewCacheLogStore(db *sql.DB) *CacheLogStore {
	return &CacheLogStore{db: db}
}

// CacheLogEntry is one invalidation caused by a write to an entity.
type CacheLogEntry struct {
	ID            int64
	EntityType    string
	EntityID      uuid.UUID
	Action        string
	InvalidatedAt time.Time
}

// Record logs that action on the given entities invalidated the caches.
// Failures are logged and otherwise ignored.
func (s *CacheLogStore) Record(entityType, action string, ids []uuid.UUID) {
	ids = uniqueIDs(ids)
	if len(ids) == 0 {
		return
	}
	ins := psql.Insert("cache_invalidation_log").Columns("entity_type", "entity_id", "action")
	for _, id := range ids {
		ins = ins.Values(entityType, id.String(), action)
	}
	query, args, err := ins.ToSql()
	if err == nil {
		_, err = s.db.Exec(query, args...)
	}
	if err != nil {
		slog.Warn("failed to log cache invalidation",
			"entity_type", entityType,
			"action", action,
			"count", len(ids),
			"error", err,
		)
		return
	}
	slog.Debug("cache invalidation logged", "entity_type", entityType, "action", action, "count", len(ids))
}

// Recent returns the latest invalidations, newest first. An empty
// entityType matches every entity.
func (s *CacheLogStore) Recent(entityType string, limit int) ([]CacheLogEntry, error) {
	if limit <= 0 {
		limit = 20
	}
	q := psql.Select("id", "entity_type", "entity_id", "action", "invalidated_at").
		From("cache_invalidation_log").
		OrderBy("invalidated_at DESC", "id DESC").
		Limit(uint64(limit))
	if entityType != "" {
		q = q.Where("entity_type = ?", entityType)
	}
	query, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build cache log query: %w", err)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("query cache log: %w", err)
	}
	defer rows.Close()

	var entries []CacheLogEntry
	for rows.Next() {
		var e CacheLogEntry
		if err := rows.Scan(&e.ID, &e.EntityType, &e.EntityID, &e.Action, &e.InvalidatedAt); err != nil {
			return nil, fmt.Errorf("scan cache log: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
