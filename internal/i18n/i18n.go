// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package i18n resolves the visitor's language and translates the short
// user-facing strings of the public site. French is the default; English
// is selected by ?lang=en, the language cookie, or Accept-Language.
package i18n

import (
	"context"
	"net/http"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	// LangParam is the query parameter that switches language.
	LangParam = "lang"
	// CookieName stores the chosen language.
	CookieName = "pf_lang"
)

// Supported lists the site languages; the first one is the fallback.
var Supported = []language.Tag{language.French, language.English}

var matcher = language.NewMatcher(Supported)

type ctxKey struct{}

// Parse returns the supported tag for value, if any.
func Parse(value string) (language.Tag, bool) {
	tag, err := language.Parse(strings.TrimSpace(value))
	if err != nil {
		return language.Und, false
	}
	base, _ := tag.Base()
	for _, s := range Supported {
		if sb, _ := s.Base(); sb == base {
			return s, true
		}
	}
	return language.Und, false
}

// Match picks the best supported tag for an Accept-Language header.
func Match(acceptLanguage string, fallback language.Tag) language.Tag {
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return fallback
	}
	_, idx, conf := matcher.Match(tags...)
	if conf == language.No {
		return fallback
	}
	return Supported[idx]
}

// Resolve determines the request language. The bool reports whether it
// came from the query parameter and should be persisted.
func Resolve(r *http.Request, fallback language.Tag) (language.Tag, bool) {
	if tag, ok := Parse(r.URL.Query().Get(LangParam)); ok {
		return tag, true
	}
	if c, err := r.Cookie(CookieName); err == nil {
		if tag, ok := Parse(c.Value); ok {
			return tag, false
		}
	}
	if accept := r.Header.Get("Accept-Language"); accept != "" {
		return Match(accept, fallback), false
	}
	return fallback, false
}

// Middleware stores the resolved language in the request context.
func Middleware(fallback language.Tag) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tag, persist := Resolve(r, fallback)
			if persist {
				http.SetCookie(w, &http.Cookie{
					Name:     CookieName,
					Value:    tag.String(),
					Path:     "/",
					MaxAge:   int((365 * 24 * time.Hour).Seconds()),
					SameSite: http.SameSiteLaxMode,
				})
			}
			next.ServeHTTP(w, r.WithContext(WithLanguage(r.Context(), tag)))
		})
	}
}

// WithLanguage returns a context carrying tag.
func WithLanguage(ctx context.Context, tag language.Tag) context.Context {
	return context.WithValue(ctx, ctxKey{}, tag)
}

// FromContext returns the request language, or the first supported one.
func FromContext(ctx context.Context) language.Tag {
	if tag, ok := ctx.Value(ctxKey{}).(language.Tag); ok {
		return tag
	}
	return Supported[0]
}

// T translates key for tag. Unknown keys are returned unchanged.
func T(tag language.Tag, key string, args ...any) string {
	return message.NewPrinter(tag).Sprintf(key, args...)
}

// Ctx translates key for the language stored in ctx.
func Ctx(ctx context.Context, key string, args ...any) string {
	return T(FromContext(ctx), key, args...)
}
