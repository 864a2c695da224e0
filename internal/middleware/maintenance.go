// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package middleware

import (
	"net/http"
	"strings"
)

// maintenanceExempt lists path prefixes served during maintenance.
var maintenanceExempt = []string{"/static/", "/media/"}

// Maintenance answers every request with page and status 503 while
// enabled, except the health check and static or media files. page is
// expected to write its own body; the status is set before it runs.
func Maintenance(enabled bool, page http.Handler) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if !enabled {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == "/health" || hasAnyPrefix(r.URL.Path, maintenanceExempt) {
				next.ServeHTTP(w, r)
				return
			}
			w.Header().Set("Retry-After", "3600")
			page.ServeHTTP(&statusOverride{ResponseWriter: w, status: http.StatusServiceUnavailable}, r)
		})
	}
}

func hasAnyPrefix(path string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(path, p) {
			return true
		}
	}
	return false
}

// statusOverride forces a status code regardless of what the wrapped
// handler writes.
type statusOverride struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
}

func (s *statusOverride) WriteHeader(int) {
	if !s.wroteHeader {
		s.wroteHeader = true
		s.ResponseWriter.WriteHeader(s.status)
	}
}

func (s *statusOverride) Write(b []byte) (int, error) {
	s.WriteHeader(s.status)
	return s.ResponseWriter.Write(b)
}
