// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package loader imports projects from a JSON file. Categories and
// technologies named by the projects are created or refreshed first, then
// each project is upserted by slug and its technologies replaced.
package loader

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/afero"

	"portfolio/internal/models"
	"portfolio/internal/slug"
)

const (
	maxSlugLen = 220

	// DefaultCategory is assigned to projects that name none.
	DefaultCategory = "Uncategorized"

	defaultColor       = "#ff6b35"
	defaultIcon        = "📁"
	defaultProficiency = 4
)

// DefaultCompletedAt is used when a project has no completion date.
var DefaultCompletedAt = time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

// ProjectInput is one element of the JSON array.
type ProjectInput struct {
	Title            string   `json:"title"`
	Slug             string   `json:"slug"`
	Tagline          string   `json:"tagline"`
	Description      string   `json:"description"`
	PrimaryColor     string   `json:"primary_color"`
	SecondaryColor   string   `json:"secondary_color"`
	BackgroundStyle  string   `json:"background_style"`
	Category         string   `json:"category"`
	Technologies     []string `json:"technologies"`
	Challenges       string   `json:"challenges"`
	Learnings        string   `json:"learnings"`
	Features         []string `json:"features"`
	GithubURL        string   `json:"github_url"`
	DemoURL          string   `json:"demo_url"`
	DocumentationURL string   `json:"documentation_url"`
	CompletedAt      string   `json:"completed_at"` // YYYY-MM-DD
	Duration         string   `json:"duration"`
	IsFeatured       bool     `json:"is_featured"`
	IsPublished      *bool    `json:"is_published"`
	Order            int      `json:"order"`
}

func (in ProjectInput) categoryName() string {
	if in.Category == "" {
		return DefaultCategory
	}
	return in.Category
}

// Writer performs the writes and their cache invalidation.
// *showcase.Service implements it.
type Writer interface {
	CreateCategory(ctx context.Context, c *models.Category) (*models.Category, error)
	UpdateCategory(ctx context.Context, c *models.Category) error
	CreateTechnology(ctx context.Context, t *models.Technology) (*models.Technology, error)
	UpdateTechnology(ctx context.Context, t *models.Technology) error
	CreateProject(ctx context.Context, p *models.Project) (*models.Project, error)
	UpdateProject(ctx context.Context, p *models.Project) error
	SetProjectTechnologies(ctx context.Context, id uuid.UUID, techIDs []uuid.UUID) error
}

// CategoryFinder looks categories up. *store.CategoryStore implements it.
type CategoryFinder interface {
	FindByName(name string) (*models.Category, error)
	FindBySlug(slug string) (*models.Category, error)
}

// TechnologyFinder looks technologies up. *store.TechnologyStore implements it.
type TechnologyFinder interface {
	FindByName(name string) (*models.Technology, error)
	FindBySlug(slug string) (*models.Technology, error)
}

// ProjectFinder looks projects up by slug. *store.ProjectStore implements it.
type ProjectFinder interface {
	FindBySlug(slug string) (*models.Project, error)
}

// Report counts what a load changed.
type Report struct {
	Processed           int
	CategoriesCreated   int
	TechnologiesCreated int
	ProjectsCreated     int
	ProjectsUpdated     int
}

// Loader imports project files.
type Loader struct {
	writer     Writer
	categories CategoryFinder
	techs      TechnologyFinder
	projects   ProjectFinder
}

// New creates a Loader.
func New(w Writer, categories CategoryFinder, techs TechnologyFinder, projects ProjectFinder) *Loader {
	return &Loader{writer: w, categories: categories, techs: techs, projects: projects}
}

// LoadFile reads path from fsys and loads it.
func (l *Loader) LoadFile(ctx context.Context, fsys afero.Fs, path string) (*Report, error) {
	f, err := fsys.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open project file: %w", err)
	}
	defer f.Close()
	return l.Load(ctx, f)
}

// Decode parses and checks a project file without writing anything.
func Decode(r io.Reader) ([]ProjectInput, error) {
	var inputs []ProjectInput
	if err := json.NewDecoder(r).Decode(&inputs); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) && typeErr.Field == "" {
			return nil, errors.New("decode project file: JSON root must be an array of projects")
		}
		return nil, fmt.Errorf("decode project file: %w", err)
	}
	for i, in := range inputs {
		if in.Slug == "" {
			return nil, fmt.Errorf("project %d (%q): slug is required", i+1, in.Title)
		}
		// The detail route only serves canonical slugs.
		if want := slug.Generate(in.Slug); want != in.Slug {
			return nil, fmt.Errorf("project %d (%q): slug %q is not canonical, use %q", i+1, in.Title, in.Slug, want)
		}
		if len(in.Slug) > maxSlugLen {
			return nil, fmt.Errorf("project %d (%q): slug longer than %d bytes", i+1, in.Title, maxSlugLen)
		}
		if in.CompletedAt != "" {
			if _, err := time.Parse(time.DateOnly, in.CompletedAt); err != nil {
				return nil, fmt.Errorf("project %q: completed_at: %w", in.Slug, err)
			}
		}
	}
	return inputs, nil
}

// Load decodes r and applies it. The whole file is checked before the
// first write.
func (l *Loader) Load(ctx context.Context, r io.Reader) (*Report, error) {
	inputs, err := Decode(r)
	if err != nil {
		return nil, err
	}
	report := &Report{Processed: len(inputs)}

	categories := make(map[string]*models.Category)
	for _, in := range inputs {
		name := in.categoryName()
		if _, ok := categories[name]; ok {
			continue
		}
		c, created, err := l.upsertCategory(ctx, name)
		if err != nil {
			return report, err
		}
		if created {
			report.CategoriesCreated++
		}
		categories[name] = c
	}

	techs := make(map[string]*models.Technology)
	for _, name := range technologyNames(inputs) {
		t, created, err := l.upsertTechnology(ctx, name)
		if err != nil {
			return report, err
		}
		if created {
			report.TechnologiesCreated++
		}
		techs[name] = t
	}

	for _, in := range inputs {
		created, err := l.upsertProject(ctx, in, categories[in.categoryName()], techs)
		if err != nil {
			return report, err
		}
		if created {
			report.ProjectsCreated++
		} else {
			report.ProjectsUpdated++
		}
	}
	return report, nil
}

// upsertCategory matches by name, then by slug, else creates. Existing
// categories keep their slug and get empty display fields filled.
func (l *Loader) upsertCategory(ctx context.Context, name string) (*models.Category, bool, error) {
	existing, err := l.categories.FindByName(name)
	if err != nil {
		return nil, false, err
	}
	if existing == nil {
		existing, err = l.categories.FindBySlug(slug.Generate(name))
		if err != nil {
			return nil, false, err
		}
	}

	if existing == nil {
		c, err := l.writer.CreateCategory(ctx, &models.Category{
			Name:        name,
			Description: "Category " + name,
			Color:       defaultColor,
			Icon:        defaultIcon,
		})
		if err != nil {
			return nil, false, fmt.Errorf("create category %q: %w", name, err)
		}
		slog.Info("category created", "name", name, "slug", c.Slug)
		return c, true, nil
	}

	existing.Name = name
	if existing.Description == "" {
		existing.Description = "Category " + name
	}
	if existing.Color == "" {
		existing.Color = defaultColor
	}
	if existing.Icon == "" {
		existing.Icon = defaultIcon
	}
	if err := l.writer.UpdateCategory(ctx, existing); err != nil {
		return nil, false, fmt.Errorf("update category %q: %w", name, err)
	}
	return existing, false, nil
}

// upsertTechnology matches by name, then by slug, else creates. Category
// and color always come from the built-in tables.
func (l *Loader) upsertTechnology(ctx context.Context, name string) (*models.Technology, bool, error) {
	base := slug.Generate(name)
	existing, err := l.techs.FindByName(name)
	if err != nil {
		return nil, false, err
	}
	if existing == nil {
		existing, err = l.techs.FindBySlug(base)
		if err != nil {
			return nil, false, err
		}
	}

	category, color := TechnologyStyle(name)
	if existing == nil {
		t, err := l.writer.CreateTechnology(ctx, &models.Technology{
			Name:        name,
			Category:    category,
			Color:       color,
			Icon:        base,
			Proficiency: defaultProficiency,
		})
		if err != nil {
			return nil, false, fmt.Errorf("create technology %q: %w", name, err)
		}
		slog.Info("technology created", "name", name, "slug", t.Slug)
		return t, true, nil
	}

	existing.Name = name
	existing.Category = category
	existing.Color = color
	existing.Icon = base
	if existing.Proficiency == 0 {
		existing.Proficiency = defaultProficiency
	}
	if err := l.writer.UpdateTechnology(ctx, existing); err != nil {
		return nil, false, fmt.Errorf("update technology %q: %w", name, err)
	}
	return existing, false, nil
}

func (l *Loader) upsertProject(ctx context.Context, in ProjectInput, category *models.Category, techs map[string]*models.Technology) (bool, error) {
	existing, err := l.projects.FindBySlug(in.Slug)
	if err != nil {
		return false, err
	}

	p := &models.Project{}
	if existing != nil {
		p = existing
	}
	apply(p, in)
	if category != nil {
		p.CategoryID = &category.ID
	}

	var techIDs []uuid.UUID
	for _, name := range in.Technologies {
		if t, ok := techs[name]; ok {
			techIDs = append(techIDs, t.ID)
		}
	}

	created := existing == nil
	if created {
		saved, err := l.writer.CreateProject(ctx, p)
		if err != nil {
			return false, fmt.Errorf("create project %q: %w", in.Slug, err)
		}
		p = saved
		slog.Info("project created", "slug", p.Slug)
	} else {
		if err := l.writer.UpdateProject(ctx, p); err != nil {
			return false, fmt.Errorf("update project %q: %w", in.Slug, err)
		}
		slog.Info("project updated", "slug", p.Slug)
	}

	if err := l.writer.SetProjectTechnologies(ctx, p.ID, techIDs); err != nil {
		return false, fmt.Errorf("set technologies of %q: %w", in.Slug, err)
	}
	return created, nil
}

// apply copies the input fields onto p. Images and the id are left alone.
func apply(p *models.Project, in ProjectInput) {
	p.Title = in.Title
	p.Slug = in.Slug
	p.Tagline = in.Tagline
	p.Description = in.Description
	p.PrimaryColor = in.PrimaryColor
	p.SecondaryColor = in.SecondaryColor
	p.BackgroundStyle = models.BackgroundStyle(in.BackgroundStyle)
	p.Challenges = in.Challenges
	p.Learnings = in.Learnings
	p.Features = in.Features
	p.GithubURL = in.GithubURL
	p.DemoURL = in.DemoURL
	p.DocumentationURL = in.DocumentationURL
	p.Duration = in.Duration
	p.IsFeatured = in.IsFeatured
	p.IsPublished = in.IsPublished == nil || *in.IsPublished
	p.SortOrder = in.Order

	completed := DefaultCompletedAt
	if in.CompletedAt != "" {
		// Checked by Decode.
		completed, _ = time.Parse(time.DateOnly, in.CompletedAt)
	}
	p.CompletedAt = &completed
}

// technologyNames returns every technology named by inputs, sorted and
// without duplicates.
func technologyNames(inputs []ProjectInput) []string {
	seen := make(map[string]bool)
	var names []string
	for _, in := range inputs {
		for _, name := range in.Technologies {
			if name != "" && !seen[name] {
				seen[name] = true
				names = append(names, name)
			}
		}
	}
	slices.Sort(names)
	return names
}
