// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package middleware

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
)

func TestLimitBody(t *testing.T) {
	var gotName string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotName = r.PostFormValue("name")
		w.WriteHeader(http.StatusNoContent)
	})
	h := LimitBody(64)(next)

	tests := []struct {
		name     string
		method   string
		body     string
		wantCode int
		wantName string
	}{
		{"small form", http.MethodPost, url.Values{"name": {"Ann"}}.Encode(), http.StatusNoContent, "Ann"},
		{"oversized form", http.MethodPost, "name=" + strings.Repeat("a", 100), http.StatusRequestEntityTooLarge, ""},
		{"malformed form", http.MethodPost, "name=%zz", http.StatusBadRequest, ""},
		{"get passes through", http.MethodGet, "", http.StatusNoContent, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotName = ""
			req := httptest.NewRequest(tt.method, "/contact", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
			rr := httptest.NewRecorder()
			h.ServeHTTP(rr, req)

			if rr.Code != tt.wantCode {
				t.Errorf("status = %d, want %d", rr.Code, tt.wantCode)
			}
			if gotName != tt.wantName {
				t.Errorf("name = %q, want %q", gotName, tt.wantName)
			}
		})
	}
}

func TestLimitBodyRunsBeforeCSRF(t *testing.T) {
	reached := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { reached = true })
	h := LimitBody(64)(NewCSRF(false)(next))

	body := "csrf_token=tok&message=" + strings.Repeat("a", 1<<20)
	req := httptest.NewRequest(http.MethodPost, "/contact", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.AddCookie(&http.Cookie{Name: CSRFCookieName, Value: "tok"})
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if rr.Code != http.StatusRequestEntityTooLarge {
		t.Errorf("status = %d, want 413", rr.Code)
	}
	if reached {
		t.Error("handler ran for an oversized body")
	}
}
