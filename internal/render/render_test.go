// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package render

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/language"

	"portfolio/internal/i18n"
	"portfolio/internal/models"
	"portfolio/internal/store"
)

var testSite = Site{Name: "Jane Doe", Title: "Go Developer", Baseline: "I build things.", Years: 7, URL: "https://example.com"}

func newTestRenderer(t *testing.T, dev bool) *Renderer {
	t.Helper()
	rn, err := New(dev, testSite)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return rn
}

func requestIn(tag language.Tag, target string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	return req.WithContext(i18n.WithLanguage(req.Context(), tag))
}

func sampleProject(title, slug string) models.Project {
	done := time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)
	return models.Project{
		ID:             uuid.New(),
		Title:          title,
		Slug:           slug,
		Tagline:        "A tagline",
		Description:    "## Overview\n\nSome **bold** text.",
		PrimaryColor:   "#667eea",
		SecondaryColor: "#764ba2",
		Features:       []string{"Fast search"},
		CompletedAt:    &done,
		Technologies: []models.Technology{
			{Name: "Go", Slug: "go", Color: "#00add8", Proficiency: 5, Category: models.TechLanguage},
		},
	}
}

func TestNew(t *testing.T) {
	rn := newTestRenderer(t, false)
	for _, name := range []string{"home", "about", "skills", "project_list", "project_detail", "contact", "not_found", "maintenance"} {
		if !rn.Has(name) {
			t.Errorf("expected template %q to be parsed", name)
		}
	}
	if rn.Has("base") {
		t.Error("base.html should not be registered as a separate template")
	}
}

func TestDevAndProdAssets(t *testing.T) {
	tests := []struct {
		name     string
		dev      bool
		want     string
		dontWant string
	}{
		{"dev uses CDN", true, "unpkg.com/htmx.org", "/static/js/htmx.min.js"},
		{"prod uses vendored copy", false, "/static/js/htmx.min.js", "unpkg.com"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rn := newTestRenderer(t, tt.dev)
			w := httptest.NewRecorder()
			rn.Page(w, requestIn(language.French, "/"), "not_found", http.StatusNotFound, &PageData{})
			body := w.Body.String()
			if !strings.Contains(body, tt.want) {
				t.Errorf("expected %q in output", tt.want)
			}
			if strings.Contains(body, tt.dontWant) {
				t.Errorf("did not expect %q in output", tt.dontWant)
			}
		})
	}
}

func TestPageLocalizesLayout(t *testing.T) {
	rn := newTestRenderer(t, false)

	w := httptest.NewRecorder()
	rn.Page(w, requestIn(language.French, "/missing"), "not_found", http.StatusNotFound, &PageData{})
	if w.Code != http.StatusNotFound {
		t.Errorf("status: got %d, want 404", w.Code)
	}
	body := w.Body.String()
	for _, want := range []string{`<html lang="fr">`, "Page introuvable.", "Compétences", `href="https://example.com/missing"`} {
		if !strings.Contains(body, want) {
			t.Errorf("french page should contain %q", want)
		}
	}
	if ct := w.Header().Get("Content-Type"); ct != "text/html; charset=utf-8" {
		t.Errorf("Content-Type: got %q", ct)
	}

	w = httptest.NewRecorder()
	rn.Page(w, requestIn(language.English, "/missing"), "not_found", http.StatusNotFound, &PageData{})
	if !strings.Contains(w.Body.String(), "Page not found.") {
		t.Error("english page should contain English text")
	}
}

func TestHTMXPartialRendering(t *testing.T) {
	rn := newTestRenderer(t, false)
	req := requestIn(language.English, "/projects")
	req.Header.Set("HX-Request", "true")

	page := &store.ProjectPage{Items: []models.Project{sampleProject("Alpha", "alpha")}, Number: 1, Size: 12, Total: 1, TotalPages: 1}
	body, err := rn.Render(req, "project_list", &PageData{Data: map[string]any{
		"Filter": store.ProjectFilter{Sort: store.SortOrder, Page: 1},
		"Page":   page,
	}})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	s := string(body)
	if strings.Contains(s, "<!DOCTYPE html>") {
		t.Error("HTMX partial should not contain the layout")
	}
	if !strings.Contains(s, `id="project-list"`) || !strings.Contains(s, "Alpha") {
		t.Error("HTMX partial should contain the listing")
	}
}

func TestProjectListPagination(t *testing.T) {
	rn := newTestRenderer(t, false)
	f := store.ProjectFilter{Techs: []string{"go"}, Sort: store.SortTitle, Page: 2}
	page := &store.ProjectPage{Items: []models.Project{sampleProject("Bravo", "bravo")}, Number: 2, Size: 1, Total: 3, TotalPages: 3}

	body, err := rn.Render(requestIn(language.English, "/projects"), "project_list", &PageData{Data: map[string]any{
		"Filter": f,
		"Page":   page,
	}})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	s := string(body)
	for _, want := range []string{
		"3 project(s)",
		`href="/projects?sort=title&amp;tech=go" rel="prev"`,
		`href="/projects?page=3&amp;sort=title&amp;tech=go" rel="next"`,
		"Clear filters",
	} {
		if !strings.Contains(s, want) {
			t.Errorf("listing should contain %q", want)
		}
	}
}

func TestProjectDetail(t *testing.T) {
	rn := newTestRenderer(t, false)
	p := sampleProject("Alpha", "alpha")
	body, err := rn.Render(requestIn(language.French, "/projects/alpha"), "project_detail", &PageData{Data: map[string]any{
		"Project": &p,
		"Similar": []models.Project{sampleProject("Bravo", "bravo")},
		"Prev":    &store.NavEntry{Slug: "zulu", Title: "Zulu"},
		"Next":    (*store.NavEntry)(nil),
	}})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	s := string(body)
	for _, want := range []string{
		`<h2 id="overview">Overview</h2>`,
		"<strong>bold</strong>",
		"linear-gradient(135deg, #667eea 0%, #764ba2 100%)",
		"Terminé en 06/2025",
		"Projets similaires",
		`href="/projects/zulu" rel="prev"`,
	} {
		if !strings.Contains(s, want) {
			t.Errorf("detail should contain %q", want)
		}
	}
	if strings.Contains(s, `rel="next"`) {
		t.Error("no next link expected")
	}
}

func TestContactFormShowsErrorsAndToken(t *testing.T) {
	rn := newTestRenderer(t, false)
	body, err := rn.Render(requestIn(language.English, "/contact"), "contact", &PageData{Data: map[string]any{
		"Form":        struct{ Name, Email, Phone, Subject, Message string }{Name: "Ann <b>", Message: "short"},
		"FieldErrors": map[string]string{"message": "This field must be at least 20 characters."},
	}})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	s := string(body)
	if !strings.Contains(s, `name="csrf_token"`) {
		t.Error("form should carry the CSRF field")
	}
	if !strings.Contains(s, "Ann &lt;b&gt;") {
		t.Error("submitted values should be re-rendered escaped")
	}
	if !strings.Contains(s, "at least 20 characters") {
		t.Error("field error should be rendered")
	}
	if !strings.Contains(s, `name="website"`) {
		t.Error("honeypot field should be present")
	}
}

func TestMaintenanceIsStandalone(t *testing.T) {
	rn := newTestRenderer(t, false)
	body, err := rn.Render(requestIn(language.English, "/"), "maintenance", &PageData{})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	s := string(body)
	if !strings.Contains(s, "under maintenance") {
		t.Error("maintenance text expected")
	}
	if strings.Contains(s, "site-header") {
		t.Error("maintenance page should not use the base layout")
	}
}

func TestRenderUnknownTemplate(t *testing.T) {
	rn := newTestRenderer(t, false)
	w := httptest.NewRecorder()
	rn.Page(w, requestIn(language.English, "/"), "nope", http.StatusOK, &PageData{})
	if w.Code != http.StatusInternalServerError {
		t.Errorf("status: got %d, want 500", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Internal server error.") {
		t.Errorf("body: got %q", w.Body.String())
	}
}

func TestListingLinks(t *testing.T) {
	f := store.ProjectFilter{Techs: []string{"go"}, Category: "api", Sort: store.SortOrder, Page: 3}

	tests := []struct {
		name, got, want string
	}{
		{"projects url drops page", ProjectsURL(f), "/projects?category=api&tech=go"},
		{"toggle adds tech", ToggleTech(f, "htmx"), "/projects?category=api&tech=go&tech=htmx"},
		{"toggle removes tech", ToggleTech(f, "go"), "/projects?category=api"},
		{"same category clears", SetCategory(f, "api"), "/projects?tech=go"},
		{"other category replaces", SetCategory(f, "web"), "/projects?category=web&tech=go"},
		{"sort", SetSort(f, "recent"), "/projects?category=api&sort=recent&tech=go"},
		{"unknown sort is default", SetSort(f, "bogus"), "/projects?category=api&tech=go"},
		{"page one omitted", PageURL(f, 1), "/projects?category=api&tech=go"},
		{"page two", PageURL(f, 2), "/projects?category=api&page=2&tech=go"},
		{"empty filter", ProjectsURL(store.ProjectFilter{}), "/projects"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %q, want %q", tt.got, tt.want)
			}
		})
	}
	if len(f.Techs) != 1 {
		t.Error("helpers must not modify the caller's filter")
	}
}
