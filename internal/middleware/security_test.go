// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func serveSecure(dev bool, proto string) *httptest.ResponseRecorder {
	handler := SecureHeaders(dev)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if proto != "" {
		req.Header.Set("X-Forwarded-Proto", proto)
	}
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	return rr
}

func TestSecureHeaders(t *testing.T) {
	rr := serveSecure(true, "")

	tests := []struct {
		header string
		want   string
	}{
		{"X-Content-Type-Options", "nosniff"},
		{"X-Frame-Options", "SAMEORIGIN"},
		{"X-XSS-Protection", "0"},
		{"Referrer-Policy", "strict-origin-when-cross-origin"},
		{"Permissions-Policy", "interest-cohort=()"},
	}

	for _, tt := range tests {
		t.Run(tt.header, func(t *testing.T) {
			got := rr.Header().Get(tt.header)
			if got != tt.want {
				t.Errorf("%s: got %q, want %q", tt.header, got, tt.want)
			}
		})
	}

	if rr.Header().Get("Content-Security-Policy") != "" {
		t.Error("CSP should not be sent in development")
	}
}

func TestSecureHeadersProduction(t *testing.T) {
	rr := serveSecure(false, "https")
	if got := rr.Header().Get("Content-Security-Policy"); got != ContentSecurityPolicy {
		t.Errorf("CSP = %q", got)
	}
	if got := rr.Header().Get("Strict-Transport-Security"); got == "" {
		t.Error("HSTS should be sent over TLS in production")
	}

	rr = serveSecure(true, "https")
	if got := rr.Header().Get("Strict-Transport-Security"); got != "" {
		t.Errorf("HSTS should not be sent in development, got %q", got)
	}
}
