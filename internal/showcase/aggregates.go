// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package showcase holds the project showcase logic that sits above the
// store: cached sidebar aggregates and navigation order, similar-project
// ranking, and the write path that keeps those caches correct.
package showcase

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"portfolio/internal/cache"
	"portfolio/internal/store"
)

// Cache keys for derived data. Both are rebuilt on demand after invalidation.
const (
	KeySidebar    = "sidebar_aggregates"
	KeyNavigation = "navigation_order"

	DefaultTTL = 30 * time.Minute
)

// Sidebar is the filter sidebar shown next to the project list.
type Sidebar struct {
	Technologies   []store.FacetCount `json:"technologies"`
	Categories     []store.FacetCount `json:"categories"`
	TotalPublished int                `json:"total_published"`
}

// Source computes the aggregates from the database. *store.ProjectStore
// implements it.
type Source interface {
	TechnologyCounts() ([]store.FacetCount, error)
	CategoryCounts() ([]store.FacetCount, error)
	CountPublished() (int, error)
	NavigationOrder() ([]store.NavEntry, error)
}

// Aggregates serves the sidebar and navigation order cache-aside. Cache
// failures are logged and never reach the caller; the value is recomputed.
type Aggregates struct {
	cache cache.Store
	src   Source
	ttl   time.Duration
}

// NewAggregates creates an aggregate cache. A zero ttl uses DefaultTTL.
func NewAggregates(c cache.Store, src Source, ttl time.Duration) *Aggregates {
	if ttl == 0 {
		ttl = DefaultTTL
	}
	return &Aggregates{cache: c, src: src, ttl: ttl}
}

// Sidebar returns the technology and category counts of published projects.
func (a *Aggregates) Sidebar(ctx context.Context) (*Sidebar, error) {
	return cached(ctx, a, KeySidebar, func() (*Sidebar, error) {
		techs, err := a.src.TechnologyCounts()
		if err != nil {
			return nil, err
		}
		cats, err := a.src.CategoryCounts()
		if err != nil {
			return nil, err
		}
		total, err := a.src.CountPublished()
		if err != nil {
			return nil, err
		}
		return &Sidebar{Technologies: techs, Categories: cats, TotalPublished: total}, nil
	})
}

// Navigation returns all published projects in canonical display order.
func (a *Aggregates) Navigation(ctx context.Context) ([]store.NavEntry, error) {
	return cached(ctx, a, KeyNavigation, a.src.NavigationOrder)
}

// InvalidateSidebar drops the sidebar aggregates.
func (a *Aggregates) InvalidateSidebar(ctx context.Context) {
	a.invalidate(ctx, KeySidebar)
}

// InvalidateAll drops the sidebar aggregates and the navigation order.
func (a *Aggregates) InvalidateAll(ctx context.Context) {
	a.invalidate(ctx, KeySidebar, KeyNavigation)
}

func (a *Aggregates) invalidate(ctx context.Context, keys ...string) {
	if err := a.cache.Delete(ctx, keys...); err != nil {
		slog.Warn("aggregate invalidation failed", "keys", keys, "error", err)
		return
	}
	slog.Debug("aggregates invalidated", "keys", keys)
}

func cached[T any](ctx context.Context, a *Aggregates, key string, compute func() (T, error)) (T, error) {
	raw, err := a.cache.Get(ctx, key)
	switch {
	case err == nil:
		var v T
		jerr := json.Unmarshal(raw, &v)
		if jerr == nil {
			return v, nil
		}
		slog.Warn("discarding undecodable cache entry", "key", key, "error", jerr)
	case !errors.Is(err, cache.ErrMiss):
		slog.Warn("aggregate cache read failed", "key", key, "error", err)
	}

	v, err := compute()
	if err != nil {
		var zero T
		return zero, err
	}

	data, err := json.Marshal(v)
	if err != nil {
		slog.Warn("encode aggregate", "key", key, "error", err)
		return v, nil
	}
	if err := a.cache.Set(ctx, key, data, a.ttl); err != nil {
		slog.Warn("aggregate cache write failed", "key", key, "error", err)
	}
	return v, nil
}
