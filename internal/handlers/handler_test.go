// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// handler_test.go provides in-memory fakes for the handler dependencies
// and a shared test environment. No database is needed.
package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"portfolio/internal/cache"
	"portfolio/internal/contact"
	"portfolio/internal/i18n"
	"portfolio/internal/models"
	"portfolio/internal/render"
	"portfolio/internal/showcase"
	"portfolio/internal/store"
)

type fakeProjects struct {
	projects   []models.Project
	sitemap    []store.SitemapEntry
	err        error
	listCalls  int
	lastFilter store.ProjectFilter
	findCalls  int
}

func (f *fakeProjects) ListPublished(filter store.ProjectFilter) (*store.ProjectPage, error) {
	f.listCalls++
	f.lastFilter = filter
	if f.err != nil {
		return nil, f.err
	}
	return &store.ProjectPage{
		Items:      f.projects,
		Number:     1,
		Size:       filter.PageSize,
		Total:      len(f.projects),
		TotalPages: 1,
	}, nil
}

func (f *fakeProjects) FindPublishedBySlug(slug string) (*models.Project, error) {
	f.findCalls++
	if f.err != nil {
		return nil, f.err
	}
	for i := range f.projects {
		if f.projects[i].Slug == slug {
			p := f.projects[i]
			return &p, nil
		}
	}
	return nil, nil
}

func (f *fakeProjects) Featured(limit int) ([]models.Project, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []models.Project
	for _, p := range f.projects {
		if p.IsFeatured && len(out) < limit {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeProjects) CountPublished() (int, error) { return len(f.projects), f.err }

func (f *fakeProjects) SitemapEntries() ([]store.SitemapEntry, error) { return f.sitemap, f.err }

type fakeTechs struct {
	techs []models.Technology
}

func (f *fakeTechs) List() ([]models.Technology, error)              { return f.techs, nil }
func (f *fakeTechs) ListByProficiency() ([]models.Technology, error) { return f.techs, nil }
func (f *fakeTechs) Count() (int, error)                             { return len(f.techs), nil }

type fakeShowcase struct {
	similar []models.Project
	prev    *store.NavEntry
	next    *store.NavEntry
	err     error
}

func (f *fakeShowcase) Similar(context.Context, *models.Project, int) ([]models.Project, error) {
	return f.similar, f.err
}

func (f *fakeShowcase) Neighbors(context.Context, uuid.UUID) (*store.NavEntry, *store.NavEntry, error) {
	return f.prev, f.next, f.err
}

type fakeSidebar struct {
	sidebar *showcase.Sidebar
	err     error
}

func (f *fakeSidebar) Sidebar(context.Context) (*showcase.Sidebar, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.sidebar, nil
}

type fakeIntake struct {
	err  error
	form contact.Form
	ip   string
}

func (f *fakeIntake) Submit(ctx context.Context, form contact.Form, ip string) (*models.ContactMessage, error) {
	f.form, f.ip = form, ip
	if f.err != nil {
		return nil, f.err
	}
	return &models.ContactMessage{ID: uuid.New(), Name: form.Name}, nil
}

// testEnv bundles a Public handler group with its fakes.
type testEnv struct {
	Public   *Public
	Projects *fakeProjects
	Techs    *fakeTechs
	Showcase *fakeShowcase
	Sidebar  *fakeSidebar
	Intake   *fakeIntake
	Cache    *cache.Memory
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	rn, err := render.New(false, render.Site{Name: "Jane Doe", Title: "Go Developer", URL: "https://example.com"})
	require.NoError(t, err)

	done := time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)
	env := &testEnv{
		Projects: &fakeProjects{
			projects: []models.Project{
				{ID: uuid.New(), Title: "Alpha", Slug: "alpha", Tagline: "First", PrimaryColor: "#667eea", SecondaryColor: "#764ba2", IsFeatured: true, CompletedAt: &done},
				{ID: uuid.New(), Title: "Bravo", Slug: "bravo", Tagline: "Second", PrimaryColor: "#667eea", SecondaryColor: "#764ba2"},
			},
			sitemap: []store.SitemapEntry{
				{Slug: "alpha", UpdatedAt: time.Date(2025, time.April, 2, 10, 0, 0, 0, time.UTC)},
			},
		},
		Techs: &fakeTechs{techs: []models.Technology{
			{ID: uuid.New(), Name: "Go", Slug: "go", Category: models.TechLanguage, Color: "#00add8", Proficiency: 5},
		}},
		Showcase: &fakeShowcase{},
		Sidebar: &fakeSidebar{sidebar: &showcase.Sidebar{
			Technologies:   []store.FacetCount{{Slug: "go", Name: "Go", Count: 2}},
			TotalPublished: 2,
		}},
		Intake: &fakeIntake{},
		Cache:  cache.NewMemory(),
	}
	env.Public = NewPublic(rn, env.Projects, env.Techs, env.Showcase, env.Sidebar, env.Intake,
		cache.NewPageCache(env.Cache, 0),
		Options{SiteURL: "https://example.com", PageSize: 12, SimilarLimit: 3, FeaturedLimit: 4})
	return env
}

// get builds a GET request in the given language.
func get(tag language.Tag, target string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	return req.WithContext(i18n.WithLanguage(req.Context(), tag))
}

func contextWithLang(ctx context.Context, tag language.Tag) context.Context {
	return i18n.WithLanguage(ctx, tag)
}
