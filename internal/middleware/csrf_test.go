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

	"golang.org/x/text/language"

	"portfolio/internal/i18n"
)

// csrfEcho answers with the token the middleware put in the context.
func csrfEcho(secure bool) http.Handler {
	return NewCSRF(secure)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(CSRFTokenFromCtx(r.Context())))
	}))
}

func csrfCookie(rr *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range rr.Result().Cookies() {
		if c.Name == CSRFCookieName {
			return c
		}
	}
	return nil
}

func TestCSRFIssuesCookie(t *testing.T) {
	for _, secure := range []bool{true, false} {
		rr := httptest.NewRecorder()
		csrfEcho(secure).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/contact", nil))

		c := csrfCookie(rr)
		if c == nil {
			t.Fatal("CSRF cookie not set")
		}
		if c.Secure != secure {
			t.Errorf("Secure: got %v, want %v", c.Secure, secure)
		}
		if !c.HttpOnly || c.SameSite != http.SameSiteStrictMode || c.Path != "/" {
			t.Errorf("unexpected cookie attributes: %+v", c)
		}
		if len(c.Value) != 2*csrfTokenLength {
			t.Errorf("token length: got %d", len(c.Value))
		}
		if rr.Body.String() != c.Value {
			t.Error("context token should match the cookie")
		}
	}
}

func TestCSRFReusesExistingCookie(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/contact", nil)
	req.AddCookie(&http.Cookie{Name: CSRFCookieName, Value: "existing"})
	rr := httptest.NewRecorder()
	csrfEcho(false).ServeHTTP(rr, req)

	if csrfCookie(rr) != nil {
		t.Error("cookie should not be reissued")
	}
	if rr.Body.String() != "existing" {
		t.Errorf("context token: got %q", rr.Body.String())
	}
}

func TestCSRFChecksUnsafeMethods(t *testing.T) {
	const token = "contact-form-token"

	tests := []struct {
		name     string
		method   string
		cookie   bool
		header   string
		field    string
		wantCode int
	}{
		{"get passes", http.MethodGet, false, "", "", http.StatusOK},
		{"head passes", http.MethodHead, false, "", "", http.StatusOK},
		{"post without token", http.MethodPost, true, "", "", http.StatusForbidden},
		{"post with wrong field", http.MethodPost, true, "", "forged", http.StatusForbidden},
		{"post with form field", http.MethodPost, true, "", token, http.StatusOK},
		{"post with header", http.MethodPost, true, token, "", http.StatusOK},
		{"post without cookie", http.MethodPost, false, "", token, http.StatusForbidden},
		{"delete without token", http.MethodDelete, true, "", "", http.StatusForbidden},
		{"put with header", http.MethodPut, true, token, "", http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var body *strings.Reader
			if tt.field != "" {
				body = strings.NewReader(url.Values{CSRFFormField: {tt.field}}.Encode())
			} else {
				body = strings.NewReader("")
			}
			req := httptest.NewRequest(tt.method, "/contact", body)
			req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
			if tt.cookie {
				req.AddCookie(&http.Cookie{Name: CSRFCookieName, Value: token})
			}
			if tt.header != "" {
				req.Header.Set(CSRFHeaderName, tt.header)
			}
			rr := httptest.NewRecorder()
			csrfEcho(false).ServeHTTP(rr, req)
			if rr.Code != tt.wantCode {
				t.Errorf("status: got %d, want %d", rr.Code, tt.wantCode)
			}
		})
	}
}

func TestCSRFRejectionIsLocalized(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/contact", nil)
	req = req.WithContext(i18n.WithLanguage(req.Context(), language.French))
	rr := httptest.NewRecorder()
	csrfEcho(false).ServeHTTP(rr, req)

	if rr.Code != http.StatusForbidden {
		t.Fatalf("status: got %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "Requête refusée.") {
		t.Errorf("body: got %q", rr.Body.String())
	}
}

func TestCSRFTokenFromCtxEmpty(t *testing.T) {
	if got := CSRFTokenFromCtx(httptest.NewRequest(http.MethodGet, "/", nil).Context()); got != "" {
		t.Errorf("got %q, want empty", got)
	}
}
