// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// page.go provides a full-page HTML cache for the project listing.
// Rendered pages are keyed by path and normalized query so that
// ?sort=title&tech=go and ?tech=go&sort=title share one entry.
package cache

import (
	"context"
	"errors"
	"log/slog"
	"net/url"
	"sort"
	"time"
)

const (
	// pageKeyPrefix is the key prefix for cached pages.
	pageKeyPrefix = "page:"

	// DefaultPageTTL is how long a rendered page stays cached.
	DefaultPageTTL = 15 * time.Minute
)

// PageCache manages full-page HTML caching.
type PageCache struct {
	store Store
	ttl   time.Duration
}

// NewPageCache creates a new page cache backed by the given store.
func NewPageCache(store Store, ttl time.Duration) *PageCache {
	if ttl == 0 {
		ttl = DefaultPageTTL
	}
	return &PageCache{store: store, ttl: ttl}
}

// Get retrieves cached HTML for a page key. Errors are logged and reported as a miss.
func (pc *PageCache) Get(ctx context.Context, key string) ([]byte, bool) {
	val, err := pc.store.Get(ctx, pageKeyPrefix+key)
	if errors.Is(err, ErrMiss) {
		return nil, false
	}
	if err != nil {
		slog.Warn("page cache get error", "key", key, "error", err)
		return nil, false
	}
	slog.Debug("page cache hit", "key", key)
	return val, true
}

// Set stores rendered HTML for a page key with the configured TTL.
func (pc *PageCache) Set(ctx context.Context, key string, html []byte) {
	if err := pc.store.Set(ctx, pageKeyPrefix+key, html, pc.ttl); err != nil {
		slog.Warn("page cache set error", "key", key, "error", err)
	}
}

// InvalidateAll removes all cached pages.
func (pc *PageCache) InvalidateAll(ctx context.Context) {
	deleted, err := pc.store.DeletePrefix(ctx, pageKeyPrefix)
	if err != nil {
		slog.Warn("page cache clear error", "error", err)
		return
	}
	if deleted > 0 {
		slog.Info("page cache fully cleared", "deleted", deleted)
	}
}

// PageKey builds the cache key for a path and query string. Parameters
// and their values are sorted; empty values are dropped.
func PageKey(path string, query url.Values) string {
	clean := url.Values{}
	for k, vs := range query {
		for _, v := range vs {
			if v != "" {
				clean.Add(k, v)
			}
		}
		sort.Strings(clean[k])
	}
	if len(clean) == 0 {
		return path
	}
	return path + "?" + clean.Encode()
}
