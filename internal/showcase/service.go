// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package showcase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"portfolio/internal/cache"
	"portfolio/internal/models"
	"portfolio/internal/store"
)

// ProjectRepository is the project persistence the service writes through.
type ProjectRepository interface {
	Create(p *models.Project) (*models.Project, error)
	Update(p *models.Project) error
	Delete(id uuid.UUID) error
	SetTechnologies(projectID uuid.UUID, techIDs []uuid.UUID) error
	SetFeatured(ids []uuid.UUID, featured bool) (int64, error)
	SetPublished(ids []uuid.UUID, published bool) (int64, error)
	SimilarCandidates(p *models.Project) ([]store.SimilarCandidate, error)
}

// CategoryRepository is the category persistence the service writes through.
type CategoryRepository interface {
	Create(c *models.Category) (*models.Category, error)
	Update(c *models.Category) error
	Delete(id uuid.UUID) error
}

// TechnologyRepository is the technology persistence the service writes through.
type TechnologyRepository interface {
	Create(t *models.Technology) (*models.Technology, error)
	Update(t *models.Technology) error
	Delete(id uuid.UUID) error
	UpdateProficiency(changes map[uuid.UUID]int) error
}

// InvalidationLog records invalidation events. *store.CacheLogStore implements it.
type InvalidationLog interface {
	Record(entityType, action string, ids []uuid.UUID)
}

// Service is the write path for projects and their taxonomy. Every
// successful write invalidates the caches derived from it before returning.
//
// Project writes drop both aggregate keys and all cached pages. Category
// and technology writes drop the sidebar and cached pages; navigation
// order does not depend on them.
type Service struct {
	projects   ProjectRepository
	categories CategoryRepository
	techs      TechnologyRepository
	agg        *Aggregates
	pages      *cache.PageCache // may be nil
	log        InvalidationLog  // may be nil
}

// NewService creates a Service.
func NewService(
	projects ProjectRepository,
	categories CategoryRepository,
	techs TechnologyRepository,
	agg *Aggregates,
	pages *cache.PageCache,
	log InvalidationLog,
) *Service {
	return &Service{
		projects:   projects,
		categories: categories,
		techs:      techs,
		agg:        agg,
		pages:      pages,
		log:        log,
	}
}

// Aggregates returns the aggregate cache the service invalidates.
func (s *Service) Aggregates() *Aggregates { return s.agg }

func (s *Service) projectsChanged(ctx context.Context, action string, ids ...uuid.UUID) {
	s.agg.InvalidateAll(ctx)
	s.purgePages(ctx)
	s.record("project", action, ids)
}

func (s *Service) taxonomyChanged(ctx context.Context, entity, action string, ids ...uuid.UUID) {
	s.agg.InvalidateSidebar(ctx)
	s.purgePages(ctx)
	s.record(entity, action, ids)
}

func (s *Service) purgePages(ctx context.Context) {
	if s.pages != nil {
		s.pages.InvalidateAll(ctx)
	}
}

func (s *Service) record(entity, action string, ids []uuid.UUID) {
	if s.log != nil {
		s.log.Record(entity, action, ids)
	}
}

// ClearCaches drops every derived cache entry.
func (s *Service) ClearCaches(ctx context.Context) {
	s.agg.InvalidateAll(ctx)
	s.purgePages(ctx)
	slog.Info("showcase caches cleared")
}

// CreateProject inserts a project.
func (s *Service) CreateProject(ctx context.Context, p *models.Project) (*models.Project, error) {
	created, err := s.projects.Create(p)
	if err != nil {
		return nil, err
	}
	s.projectsChanged(ctx, "create", created.ID)
	return created, nil
}

// UpdateProject saves a project's fields.
func (s *Service) UpdateProject(ctx context.Context, p *models.Project) error {
	if err := s.projects.Update(p); err != nil {
		return err
	}
	s.projectsChanged(ctx, "update", p.ID)
	return nil
}

// DeleteProject removes a project.
func (s *Service) DeleteProject(ctx context.Context, id uuid.UUID) error {
	if err := s.projects.Delete(id); err != nil {
		return err
	}
	s.projectsChanged(ctx, "delete", id)
	return nil
}

// SetProjectTechnologies replaces a project's technologies.
func (s *Service) SetProjectTechnologies(ctx context.Context, id uuid.UUID, techIDs []uuid.UUID) error {
	if err := s.projects.SetTechnologies(id, techIDs); err != nil {
		return err
	}
	s.projectsChanged(ctx, "technologies", id)
	return nil
}

// SetFeatured toggles the featured flag on several projects.
func (s *Service) SetFeatured(ctx context.Context, ids []uuid.UUID, featured bool) (int64, error) {
	n, err := s.projects.SetFeatured(ids, featured)
	if err != nil {
		return 0, err
	}
	s.projectsChanged(ctx, flagAction("feature", featured), ids...)
	return n, nil
}

// SetPublished publishes or unpublishes several projects.
func (s *Service) SetPublished(ctx context.Context, ids []uuid.UUID, published bool) (int64, error) {
	n, err := s.projects.SetPublished(ids, published)
	if err != nil {
		return 0, err
	}
	s.projectsChanged(ctx, flagAction("publish", published), ids...)
	return n, nil
}

func flagAction(verb string, on bool) string {
	if on {
		return verb
	}
	return "un" + verb
}

// CreateCategory inserts a category.
func (s *Service) CreateCategory(ctx context.Context, c *models.Category) (*models.Category, error) {
	created, err := s.categories.Create(c)
	if err != nil {
		return nil, err
	}
	s.taxonomyChanged(ctx, "category", "create", created.ID)
	return created, nil
}

// UpdateCategory saves a category.
func (s *Service) UpdateCategory(ctx context.Context, c *models.Category) error {
	if err := s.categories.Update(c); err != nil {
		return err
	}
	s.taxonomyChanged(ctx, "category", "update", c.ID)
	return nil
}

// DeleteCategory removes a category. Its projects become uncategorized.
func (s *Service) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	if err := s.categories.Delete(id); err != nil {
		return err
	}
	s.taxonomyChanged(ctx, "category", "delete", id)
	return nil
}

// CreateTechnology inserts a technology.
func (s *Service) CreateTechnology(ctx context.Context, t *models.Technology) (*models.Technology, error) {
	created, err := s.techs.Create(t)
	if err != nil {
		return nil, err
	}
	s.taxonomyChanged(ctx, "technology", "create", created.ID)
	return created, nil
}

// UpdateTechnology saves a technology.
func (s *Service) UpdateTechnology(ctx context.Context, t *models.Technology) error {
	if err := s.techs.Update(t); err != nil {
		return err
	}
	s.taxonomyChanged(ctx, "technology", "update", t.ID)
	return nil
}

// DeleteTechnology removes a technology and its project links.
func (s *Service) DeleteTechnology(ctx context.Context, id uuid.UUID) error {
	if err := s.techs.Delete(id); err != nil {
		return err
	}
	s.taxonomyChanged(ctx, "technology", "delete", id)
	return nil
}

// UpdateProficiency applies a batch of proficiency changes with a single
// invalidation. An empty batch is a no-op.
func (s *Service) UpdateProficiency(ctx context.Context, changes map[uuid.UUID]int) error {
	if len(changes) == 0 {
		return nil
	}
	if err := s.techs.UpdateProficiency(changes); err != nil {
		return fmt.Errorf("update proficiency: %w", err)
	}
	ids := make([]uuid.UUID, 0, len(changes))
	for id := range changes {
		ids = append(ids, id)
	}
	s.taxonomyChanged(ctx, "technology", "proficiency", ids...)
	return nil
}

// Similar returns up to n published projects related to p.
func (s *Service) Similar(ctx context.Context, p *models.Project, n int) ([]models.Project, error) {
	if n <= 0 {
		return nil, nil
	}
	cands, err := s.projects.SimilarCandidates(p)
	if err != nil {
		return nil, fmt.Errorf("similar projects: %w", err)
	}
	return RankSimilar(cands, n), nil
}

// Neighbors returns the previous and next published projects around id.
func (s *Service) Neighbors(ctx context.Context, id uuid.UUID) (prev, next *store.NavEntry, err error) {
	order, err := s.agg.Navigation(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("navigation order: %w", err)
	}
	prev, next = Neighbors(order, id)
	return prev, next, nil
}
