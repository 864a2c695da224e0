// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package render provides HTML template rendering for the public site.
// It supports full-page and HTMX partial rendering, automatically detecting
// the request type via the HX-Request header.
package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"path"
	"strings"
	"time"

	"portfolio/internal/i18n"
	"portfolio/internal/markdown"
	"portfolio/internal/middleware"
	"portfolio/internal/models"
)

//go:embed templates/*.html
var templateFS embed.FS

// Site is the owner identity shown in the layout on every page.
type Site struct {
	Name     string
	Title    string
	Baseline string
	Location string
	Email    string
	GitHub   string
	LinkedIn string
	Years    int
	URL      string // absolute base URL, no trailing slash
}

// PageData holds all data passed to page templates.
type PageData struct {
	Title       string         // Page title for <title> tag
	Description string         // meta description
	Section     string         // Active nav item (e.g., "projects")
	Lang        string         // "fr" or "en", set by Page
	CSRFToken   string         // CSRF token for forms
	Site        Site           // set by Page
	Path        string         // request path, for canonical and language links
	Data        map[string]any // Page-specific data
}

// Renderer handles template parsing and execution.
type Renderer struct {
	templates map[string]*template.Template
	site      Site
}

// standaloneTemplates render as full HTML pages without the base layout.
var standaloneTemplates = map[string]bool{
	"maintenance": true,
}

// New creates a Renderer by parsing all page templates from the embedded
// filesystem. Each page template is paired with the base layout.
// When devMode is true, templates load HTMX from a CDN; when false, they
// reference the vendored copy under /static/.
func New(devMode bool, site Site) (*Renderer, error) {
	funcMap := template.FuncMap{
		"t": func(lang, key string, args ...any) string {
			tag, ok := i18n.Parse(lang)
			if !ok {
				tag = i18n.Supported[0]
			}
			return i18n.T(tag, key, args...)
		},
		"markdown": markdown.Render,
		// deref safely dereferences a string pointer.
		"deref": func(s *string) string {
			if s == nil {
				return ""
			}
			return *s
		},
		// css marks a value built from validated hex colors as safe CSS.
		"css":         func(s string) template.CSS { return template.CSS(s) },
		"isDev":       func() bool { return devMode },
		"monthYear":   monthYear,
		"techLabel":   func(c models.TechCategory) string { return c.Label() },
		"projectsURL": ProjectsURL,
		"toggleTech":  ToggleTech,
		"setCategory": SetCategory,
		"setSort":     SetSort,
		"pageURL":     PageURL,
		"hasTech":     HasTech,
		"add":         func(a, b int) int { return a + b },
		"year":        func() int { return time.Now().Year() },
	}

	pages, err := fs.Glob(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("glob templates: %w", err)
	}

	r := &Renderer{templates: make(map[string]*template.Template), site: site}
	for _, page := range pages {
		name := path.Base(page)
		if name == "base.html" {
			continue
		}
		tmplName := strings.TrimSuffix(name, ".html")

		var tmpl *template.Template
		var parseErr error
		if standaloneTemplates[tmplName] {
			tmpl, parseErr = template.New(name).Funcs(funcMap).ParseFS(templateFS, page)
		} else {
			tmpl, parseErr = template.New("base.html").Funcs(funcMap).ParseFS(
				templateFS, "templates/base.html", page,
			)
		}
		if parseErr != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, parseErr)
		}
		r.templates[tmplName] = tmpl
	}

	return r, nil
}

// Has reports whether a page template exists.
func (rn *Renderer) Has(name string) bool {
	_, ok := rn.templates[name]
	return ok
}

// Render executes a page into a byte slice. HTMX requests get only the
// "content" block.
func (rn *Renderer) Render(r *http.Request, name string, data *PageData) ([]byte, error) {
	tmpl, ok := rn.templates[name]
	if !ok {
		return nil, fmt.Errorf("template %q not found", name)
	}
	if data.Data == nil {
		data.Data = map[string]any{}
	}
	data.CSRFToken = middleware.CSRFTokenFromCtx(r.Context())
	data.Lang = i18n.FromContext(r.Context()).String()
	data.Site = rn.site
	if data.Path == "" {
		data.Path = r.URL.Path
	}

	execName := "base.html"
	switch {
	case standaloneTemplates[name]:
		execName = name + ".html"
	case IsHTMX(r):
		execName = "content"
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, execName, data); err != nil {
		return nil, fmt.Errorf("execute template %s: %w", name, err)
	}
	return buf.Bytes(), nil
}

// Page renders a page with the given status. Output is buffered so a
// template error never leaves a half-written response.
func (rn *Renderer) Page(w http.ResponseWriter, r *http.Request, name string, status int, data *PageData) {
	body, err := rn.Render(r, name, data)
	if err != nil {
		slog.Error("render page failed", "template", name, "error", err)
		http.Error(w, i18n.Ctx(r.Context(), i18n.MsgServerError), http.StatusInternalServerError)
		return
	}
	Write(w, status, body)
}

// Write sends an already rendered HTML body.
func Write(w http.ResponseWriter, status int, body []byte) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if status != http.StatusOK {
		w.WriteHeader(status)
	}
	w.Write(body)
}

// IsHTMX returns true if the request was made by HTMX (has HX-Request header).
func IsHTMX(r *http.Request) bool {
	return r.Header.Get("HX-Request") == "true"
}

func monthYear(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("01/2006")
}
