// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package middleware

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"net/netip"
	"strings"
	"time"

	"portfolio/internal/cache"
	"portfolio/internal/i18n"
)

// RateLimiter caps requests per client address within a fixed window.
// Counters live in the shared cache so every instance sees the same count.
// The window starts on the first request and is not extended by later ones.
type RateLimiter struct {
	store  cache.Store
	scope  string
	limit  int
	window time.Duration
}

// NewRateLimiter creates a limiter allowing limit requests per window.
// scope namespaces the counters, e.g. "contact_form".
func NewRateLimiter(store cache.Store, scope string, limit int, window time.Duration) *RateLimiter {
	return &RateLimiter{store: store, scope: scope, limit: limit, window: window}
}

// Key returns the cache key holding the counter for ip.
func (rl *RateLimiter) Key(ip string) string {
	return "ratelimit:" + rl.scope + ":" + ip
}

// Allow counts a request from ip and reports whether it is within the
// limit. When the cache is unavailable the request is allowed.
func (rl *RateLimiter) Allow(ctx context.Context, ip string) bool {
	n, err := rl.store.Incr(ctx, rl.Key(ip), rl.window)
	if err != nil {
		slog.Warn("rate limiter unavailable, allowing request", "scope", rl.scope, "ip", ip, "error", err)
		return true
	}
	return n <= int64(rl.limit)
}

// Middleware rejects requests over the limit with 403 Forbidden.
func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := ClientIP(r)
		if !rl.Allow(r.Context(), ip) {
			slog.Info("rate limit exceeded", "scope", rl.scope, "ip", ip)
			http.Error(w, i18n.Ctx(r.Context(), i18n.MsgRateLimited), http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// ClientIP extracts the client's IP address, checking X-Forwarded-For
// and X-Real-IP headers for proxied requests. The headers are trusted as
// sent, but a value that is not an IP address is skipped. It returns ""
// when no address parses.
func ClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		if ip, ok := parseIP(first); ok {
			return ip
		}
	}

	if ip, ok := parseIP(r.Header.Get("X-Real-IP")); ok {
		return ip
	}

	host := r.RemoteAddr
	if h, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		host = h
	}
	if ip, ok := parseIP(host); ok {
		return ip
	}
	return ""
}

// parseIP normalizes s to its canonical text form without a zone.
func parseIP(s string) (string, bool) {
	addr, err := netip.ParseAddr(strings.TrimSpace(s))
	if err != nil {
		return "", false
	}
	return addr.Unmap().WithZone("").String(), true
}
