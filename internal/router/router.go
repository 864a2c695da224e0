// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package router sets up all HTTP routes and middleware chains for the
// portfolio site.
package router

import (
	"io/fs"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"golang.org/x/text/language"

	"portfolio/internal/handlers"
	"portfolio/internal/i18n"
	"portfolio/internal/middleware"
)

// Options carries everything the router wires together.
type Options struct {
	Public       *handlers.Public
	ContactLimit *middleware.RateLimiter // nil disables rate limiting

	// Static holds the files served under /static/.
	Static fs.FS

	// Media serves uploaded files under MediaPrefix. Nil when uploads are
	// served directly by object storage.
	Media       http.Handler
	MediaPrefix string

	DefaultLang   language.Tag
	Dev           bool
	SecureCookies bool
	Maintenance   bool
}

// maxFormBytes caps posted form bodies.
const maxFormBytes = 64 << 10

// New creates and returns the configured Chi router with all middleware
// and routes wired up.
func New(opts Options) chi.Router {
	r := chi.NewRouter()
	public := opts.Public

	// Global middleware, applied to every request.
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.SecureHeaders(opts.Dev))
	r.Use(i18n.Middleware(opts.DefaultLang))
	r.Use(middleware.Maintenance(opts.Maintenance, http.HandlerFunc(public.Maintenance)))

	// Health check, no CSRF.
	r.Get("/health", healthHandler)

	if opts.Static != nil {
		r.Handle("/static/*", http.StripPrefix("/static/", http.FileServerFS(opts.Static)))
	}
	if opts.Media != nil {
		prefix := "/" + strings.Trim(opts.MediaPrefix, "/")
		r.Handle(prefix+"/*", http.StripPrefix(prefix, opts.Media))
	}

	r.Get("/sitemap.xml", public.Sitemap)
	r.Get("/robots.txt", public.Robots)

	r.Group(func(r chi.Router) {
		r.Use(middleware.LimitBody(maxFormBytes))
		r.Use(middleware.NewCSRF(opts.SecureCookies))

		r.Get("/", public.Home)
		r.Get("/about", public.About)
		r.Get("/skills", public.Skills)
		r.Get("/projects", public.Projects)
		r.Get("/projects/{slug}", public.Project)

		r.Get("/contact", public.ContactForm)
		r.With(rateLimit(opts.ContactLimit)).Post("/contact", public.ContactSubmit)
	})

	r.NotFound(public.NotFound)

	return r
}

func rateLimit(rl *middleware.RateLimiter) func(http.Handler) http.Handler {
	if rl == nil {
		return func(next http.Handler) http.Handler { return next }
	}
	return rl.Middleware
}

// healthHandler returns a simple JSON health check response.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
