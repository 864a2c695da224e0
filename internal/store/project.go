// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"encoding/json"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"portfolio/internal/models"
	"portfolio/internal/slug"
)

// ProjectStore manages projects and their technology associations.
type ProjectStore struct {
	db         *sql.DB
	categories *CategoryStore
	techs      *TechnologyStore
}

// NewProjectStore returns a new ProjectStore.
func NewProjectStore(db *sql.DB) *ProjectStore {
	return &ProjectStore{
		db:         db,
		categories: NewCategoryStore(db),
		techs:      NewTechnologyStore(db),
	}
}

// projectColumns is qualified with the p alias so it can be used in joins.
var projectColumns = []string{
	"p.id", "p.title", "p.slug", "p.tagline", "p.description",
	"p.primary_color", "p.secondary_color", "p.background_style",
	"p.featured_image", "p.logo", "p.category_id",
	"p.challenges", "p.learnings", "p.features",
	"p.github_url", "p.demo_url", "p.documentation_url",
	"p.completed_at", "p.duration",
	"p.is_featured", "p.is_published", "p.sort_order",
	"p.created_at", "p.updated_at",
}

// projectFields returns pointers to p's columns in projectColumns order.
// The features column is read into raw and decoded by decodeFeatures.
func projectFields(p *models.Project, raw *[]byte) []any {
	return []any{
		&p.ID, &p.Title, &p.Slug, &p.Tagline, &p.Description,
		&p.PrimaryColor, &p.SecondaryColor, &p.BackgroundStyle,
		&p.FeaturedImage, &p.Logo, &p.CategoryID,
		&p.Challenges, &p.Learnings, raw,
		&p.GithubURL, &p.DemoURL, &p.DocumentationURL,
		&p.CompletedAt, &p.Duration,
		&p.IsFeatured, &p.IsPublished, &p.SortOrder,
		&p.CreatedAt, &p.UpdatedAt,
	}
}

func decodeFeatures(p *models.Project, raw []byte) error {
	p.Features = []string{}
	if len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, &p.Features); err != nil {
		return fmt.Errorf("decode features of %s: %w", p.Slug, err)
	}
	return nil
}

// scanProject scans a row selected with projectColumns.
func scanProject(scanner interface{ Scan(...any) error }) (*models.Project, error) {
	var p models.Project
	var raw []byte
	if err := scanner.Scan(projectFields(&p, &raw)...); err != nil {
		return nil, err
	}
	if err := decodeFeatures(&p, raw); err != nil {
		return nil, err
	}
	return &p, nil
}

// queryProjects runs a select built on projectColumns and loads relations.
func (s *ProjectStore) queryProjects(b sq.SelectBuilder) ([]models.Project, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build project query: %w", err)
	}
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("query projects: %w", err)
	}
	defer rows.Close()

	var items []models.Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("scan project: %w", err)
		}
		items = append(items, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate projects: %w", err)
	}
	if err := s.loadRelations(items); err != nil {
		return nil, err
	}
	return items, nil
}

// loadRelations batch-loads categories and technologies for projects.
func (s *ProjectStore) loadRelations(items []models.Project) error {
	if len(items) == 0 {
		return nil
	}
	ids := make([]uuid.UUID, 0, len(items))
	var catIDs []uuid.UUID
	for _, p := range items {
		ids = append(ids, p.ID)
		if p.CategoryID != nil {
			catIDs = append(catIDs, *p.CategoryID)
		}
	}

	cats, err := s.categories.FindByIDs(catIDs)
	if err != nil {
		return err
	}
	techs, err := s.techs.ForProjects(ids)
	if err != nil {
		return err
	}
	for i := range items {
		if items[i].CategoryID != nil {
			items[i].Category = cats[*items[i].CategoryID]
		}
		items[i].Technologies = techs[items[i].ID]
	}
	return nil
}

func (s *ProjectStore) findOne(b sq.SelectBuilder) (*models.Project, error) {
	items, err := s.queryProjects(b.Limit(1))
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, nil
	}
	return &items[0], nil
}

func selectProjects() sq.SelectBuilder {
	return psql.Select(projectColumns...).From("projects p")
}

// FindByID retrieves a project regardless of publication state. Returns nil if not found.
func (s *ProjectStore) FindByID(id uuid.UUID) (*models.Project, error) {
	p, err := s.findOne(selectProjects().Where(sq.Eq{"p.id": id.String()}))
	if err != nil {
		return nil, fmt.Errorf("find project by id: %w", err)
	}
	return p, nil
}

// FindBySlug retrieves a project regardless of publication state. Returns nil if not found.
func (s *ProjectStore) FindBySlug(slug string) (*models.Project, error) {
	p, err := s.findOne(selectProjects().Where(sq.Eq{"p.slug": slug}))
	if err != nil {
		return nil, fmt.Errorf("find project by slug: %w", err)
	}
	return p, nil
}

// FindPublishedBySlug retrieves a published project with its gallery.
// Returns nil if the slug is unknown or the project is unpublished.
func (s *ProjectStore) FindPublishedBySlug(slug string) (*models.Project, error) {
	p, err := s.findOne(selectProjects().Where(sq.Eq{"p.slug": slug, "p.is_published": true}))
	if err != nil {
		return nil, fmt.Errorf("find published project: %w", err)
	}
	if p == nil {
		return nil, nil
	}
	images, err := NewProjectImageStore(s.db).ListByProject(p.ID)
	if err != nil {
		return nil, err
	}
	p.Images = images
	return p, nil
}

// Featured returns up to limit published, featured projects in display order.
func (s *ProjectStore) Featured(limit int) ([]models.Project, error) {
	return s.queryProjects(selectProjects().
		Where(sq.Eq{"p.is_published": true, "p.is_featured": true}).
		OrderBy("p.sort_order", "p.id").
		Limit(uint64(limit)))
}

// CountPublished returns the number of published projects.
func (s *ProjectStore) CountPublished() (int, error) {
	var n int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM projects WHERE is_published`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count published projects: %w", err)
	}
	return n, nil
}

// SlugExists reports whether a project already uses slug.
func (s *ProjectStore) SlugExists(slug string) (bool, error) {
	var exists bool
	err := s.db.QueryRow(`SELECT EXISTS (SELECT 1 FROM projects WHERE slug = $1)`, slug).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("project slug exists: %w", err)
	}
	return exists, nil
}

func (s *ProjectStore) prepare(p *models.Project) ([]byte, error) {
	p.ApplyDefaults()
	if err := p.Validate(); err != nil {
		return nil, err
	}
	features, err := json.Marshal(p.Features)
	if err != nil {
		return nil, fmt.Errorf("encode features: %w", err)
	}
	return features, nil
}

// Create inserts a project. An empty slug is derived from the title and
// made unique; a set slug is stored as given.
func (s *ProjectStore) Create(p *models.Project) (*models.Project, error) {
	features, err := s.prepare(p)
	if err != nil {
		return nil, err
	}
	if p.Slug == "" {
		generated, err := slug.Unique(slug.Generate(p.Title), "project", s.SlugExists)
		if err != nil {
			return nil, fmt.Errorf("create project: %w", err)
		}
		p.Slug = generated
	}

	query, args, err := psql.Insert("projects").
		Columns("title", "slug", "tagline", "description", "primary_color", "secondary_color",
			"background_style", "featured_image", "logo", "category_id", "challenges", "learnings",
			"features", "github_url", "demo_url", "documentation_url", "completed_at", "duration",
			"is_featured", "is_published", "sort_order").
		Values(p.Title, p.Slug, p.Tagline, p.Description, p.PrimaryColor, p.SecondaryColor,
			string(p.BackgroundStyle), p.FeaturedImage, p.Logo, p.CategoryID, p.Challenges, p.Learnings,
			string(features), p.GithubURL, p.DemoURL, p.DocumentationURL, p.CompletedAt, p.Duration,
			p.IsFeatured, p.IsPublished, p.SortOrder).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build project insert: %w", err)
	}

	var id uuid.UUID
	if err := s.db.QueryRow(query, args...).Scan(&id); err != nil {
		return nil, fmt.Errorf("create project: %w", err)
	}
	return s.FindByID(id)
}

// Update saves all editable fields. If the stored slug is set it is never
// regenerated; an empty slug on the argument keeps the stored one.
func (s *ProjectStore) Update(p *models.Project) error {
	features, err := s.prepare(p)
	if err != nil {
		return err
	}
	if p.Slug == "" {
		existing, err := s.FindByID(p.ID)
		if err != nil {
			return err
		}
		if existing == nil {
			return fmt.Errorf("project %s: %w", p.ID, ErrNotFound)
		}
		p.Slug = existing.Slug
	}

	query, args, err := psql.Update("projects").SetMap(map[string]any{
		"title":             p.Title,
		"slug":              p.Slug,
		"tagline":           p.Tagline,
		"description":       p.Description,
		"primary_color":     p.PrimaryColor,
		"secondary_color":   p.SecondaryColor,
		"background_style":  string(p.BackgroundStyle),
		"featured_image":    p.FeaturedImage,
		"logo":              p.Logo,
		"category_id":       p.CategoryID,
		"challenges":        p.Challenges,
		"learnings":         p.Learnings,
		"features":          string(features),
		"github_url":        p.GithubURL,
		"demo_url":          p.DemoURL,
		"documentation_url": p.DocumentationURL,
		"completed_at":      p.CompletedAt,
		"duration":          p.Duration,
		"is_featured":       p.IsFeatured,
		"is_published":      p.IsPublished,
		"sort_order":        p.SortOrder,
		"updated_at":        sq.Expr("NOW()"),
	}).Where(sq.Eq{"id": p.ID.String()}).ToSql()
	if err != nil {
		return fmt.Errorf("build project update: %w", err)
	}

	res, err := s.db.Exec(query, args...)
	if err != nil {
		return fmt.Errorf("update project: %w", err)
	}
	return requireAffected(res, "project", p.ID)
}

// Delete removes a project. Gallery images and technology links cascade.
func (s *ProjectStore) Delete(id uuid.UUID) error {
	res, err := s.db.Exec(`DELETE FROM projects WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete project: %w", err)
	}
	return requireAffected(res, "project", id)
}

// SetTechnologies replaces a project's technologies in one transaction.
func (s *ProjectStore) SetTechnologies(projectID uuid.UUID, techIDs []uuid.UUID) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM project_technologies WHERE project_id = $1`, projectID); err != nil {
		return fmt.Errorf("clear project technologies: %w", err)
	}

	techIDs = uniqueIDs(techIDs)
	if len(techIDs) > 0 {
		ins := psql.Insert("project_technologies").Columns("project_id", "technology_id")
		for _, tid := range techIDs {
			ins = ins.Values(projectID.String(), tid.String())
		}
		query, args, err := ins.ToSql()
		if err != nil {
			return fmt.Errorf("build project technologies insert: %w", err)
		}
		if _, err := tx.Exec(query, args...); err != nil {
			return fmt.Errorf("insert project technologies: %w", err)
		}
	}

	if _, err := tx.Exec(`UPDATE projects SET updated_at = NOW() WHERE id = $1`, projectID); err != nil {
		return fmt.Errorf("touch project: %w", err)
	}

	return tx.Commit()
}

// setFlag updates a boolean column on several projects and returns how
// many rows changed.
func (s *ProjectStore) setFlag(column string, ids []uuid.UUID, value bool) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	query, args, err := psql.Update("projects").
		Set(column, value).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": idStrings(uniqueIDs(ids))}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build %s update: %w", column, err)
	}
	res, err := s.db.Exec(query, args...)
	if err != nil {
		return 0, fmt.Errorf("set %s: %w", column, err)
	}
	return res.RowsAffected()
}

// SetFeatured marks projects as featured or not.
func (s *ProjectStore) SetFeatured(ids []uuid.UUID, featured bool) (int64, error) {
	return s.setFlag("is_featured", ids, featured)
}

// SetPublished publishes or unpublishes projects.
func (s *ProjectStore) SetPublished(ids []uuid.UUID, published bool) (int64, error) {
	return s.setFlag("is_published", ids, published)
}

// ResolveRefs maps each reference, a UUID or a slug, to a project id.
// Unknown references yield ErrNotFound naming the first missing one.
func (s *ProjectStore) ResolveRefs(refs []string) ([]uuid.UUID, error) {
	ids := make([]uuid.UUID, 0, len(refs))
	for _, ref := range refs {
		var p *models.Project
		var err error
		if id, perr := uuid.Parse(ref); perr == nil {
			p, err = s.FindByID(id)
		} else {
			p, err = s.FindBySlug(ref)
		}
		if err != nil {
			return nil, err
		}
		if p == nil {
			return nil, fmt.Errorf("project %q: %w", ref, ErrNotFound)
		}
		ids = append(ids, p.ID)
	}
	return ids, nil
}
