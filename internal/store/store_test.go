// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// store_test.go provides a shared test database helper for all store
// integration tests. Tests are skipped if PostgreSQL is not available.
package store

import (
	"database/sql"
	"os"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"portfolio/internal/database"
	"portfolio/internal/models"
)

// testDSN returns the PostgreSQL connection string for testing.
// Uses environment variables with defaults matching docker-compose.yml.
func testDSN() string {
	host := envOr("POSTGRES_HOST", "localhost")
	port := envOr("POSTGRES_PORT", "5432")
	user := envOr("POSTGRES_USER", "portfolio")
	pass := envOr("POSTGRES_PASSWORD", "changeme")
	name := envOr("POSTGRES_DB", "portfolio")
	return "postgres://" + user + ":" + pass + "@" + host + ":" + port + "/" + name + "?sslmode=disable"
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// testDB opens a connection to the test database and runs migrations.
// If the database is unavailable, the test is skipped. A cleanup
// function is registered to close the connection when the test finishes.
func testDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("pgx", testDSN())
	if err != nil {
		t.Skipf("skipping integration test: cannot open DB: %v", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		t.Skipf("skipping integration test: DB not reachable: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		db.Close()
		t.Fatalf("failed to run migrations: %v", err)
	}

	// Downgrade goose global state.
	goose.SetBaseFS(nil)

	t.Cleanup(func() { db.Close() })
	return db
}

// fixture creates uniquely named rows so tests can run against a shared
// database. Everything it creates is removed in t.Cleanup.
type fixture struct {
	t      *testing.T
	db     *sql.DB
	prefix string

	categories *CategoryStore
	techs      *TechnologyStore
	projects   *ProjectStore
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := testDB(t)
	f := &fixture{
		t:          t,
		db:         db,
		prefix:     "t" + strings.ReplaceAll(uuid.NewString()[:8], "-", ""),
		categories: NewCategoryStore(db),
		techs:      NewTechnologyStore(db),
		projects:   NewProjectStore(db),
	}
	t.Cleanup(func() {
		like := f.prefix + "%"
		db.Exec(`DELETE FROM projects WHERE slug LIKE $1`, like)
		db.Exec(`DELETE FROM technologies WHERE slug LIKE $1`, like)
		db.Exec(`DELETE FROM categories WHERE slug LIKE $1`, like)
	})
	return f
}

func (f *fixture) slug(name string) string { return f.prefix + "-" + name }

func (f *fixture) category(name string, order int) *models.Category {
	f.t.Helper()
	c, err := f.categories.Create(&models.Category{Name: f.slug(name), Slug: f.slug(name), SortOrder: order})
	if err != nil {
		f.t.Fatalf("create category: %v", err)
	}
	return c
}

func (f *fixture) tech(name string) *models.Technology {
	f.t.Helper()
	tech, err := f.techs.Create(&models.Technology{Name: f.slug(name), Slug: f.slug(name)})
	if err != nil {
		f.t.Fatalf("create technology: %v", err)
	}
	return tech
}

type projectOpt func(*models.Project)

func withCategory(c *models.Category) projectOpt {
	return func(p *models.Project) { p.CategoryID = &c.ID }
}

func withOrder(n int) projectOpt { return func(p *models.Project) { p.SortOrder = n } }

func completed(y int, m time.Month, d int) projectOpt {
	return func(p *models.Project) {
		t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
		p.CompletedAt = &t
	}
}

func unpublished() projectOpt { return func(p *models.Project) { p.IsPublished = false } }

func withText(title, tagline, description string) projectOpt {
	return func(p *models.Project) {
		p.Title, p.Tagline, p.Description = title, tagline, description
	}
}

func (f *fixture) project(name string, techs []*models.Technology, opts ...projectOpt) *models.Project {
	f.t.Helper()
	p := &models.Project{Title: name, Slug: f.slug(name), IsPublished: true}
	for _, o := range opts {
		o(p)
	}
	created, err := f.projects.Create(p)
	if err != nil {
		f.t.Fatalf("create project %s: %v", name, err)
	}
	if len(techs) > 0 {
		ids := make([]uuid.UUID, len(techs))
		for i, tech := range techs {
			ids[i] = tech.ID
		}
		if err := f.projects.SetTechnologies(created.ID, ids); err != nil {
			f.t.Fatalf("set technologies: %v", err)
		}
	}
	return created
}

// slugs returns the slugs of projects, trimmed of the fixture prefix.
func (f *fixture) slugs(items []models.Project) []string {
	out := make([]string, len(items))
	for i, p := range items {
		out[i] = strings.TrimPrefix(p.Slug, f.prefix+"-")
	}
	return out
}

func sortedCopy(in []string) []string {
	out := append([]string(nil), in...)
	sort.Strings(out)
	return out
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
