// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"portfolio/internal/models"
	"portfolio/internal/slug"
)

// TechnologyStore manages technologies in the database.
type TechnologyStore struct {
	db *sql.DB
}

// NewTechnologyStore returns a new TechnologyStore.
func NewTechnologyStore(db *sql.DB) *TechnologyStore {
	return &TechnologyStore{db: db}
}

const technologyColumns = `id, name, slug, category, icon, color, proficiency, sort_order, created_at, updated_at`

// scanTechnology scans a row into a Technology struct.
func scanTechnology(scanner interface{ Scan(...any) error }) (*models.Technology, error) {
	var t models.Technology
	err := scanner.Scan(
		&t.ID, &t.Name, &t.Slug, &t.Category, &t.Icon, &t.Color,
		&t.Proficiency, &t.SortOrder, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (s *TechnologyStore) list(orderBy string) ([]models.Technology, error) {
	rows, err := s.db.Query(`SELECT ` + technologyColumns + ` FROM technologies ORDER BY ` + orderBy)
	if err != nil {
		return nil, fmt.Errorf("list technologies: %w", err)
	}
	defer rows.Close()

	var items []models.Technology
	for rows.Next() {
		t, err := scanTechnology(rows)
		if err != nil {
			return nil, fmt.Errorf("scan technology: %w", err)
		}
		items = append(items, *t)
	}
	return items, rows.Err()
}

// List returns all technologies in display order.
func (s *TechnologyStore) List() ([]models.Technology, error) {
	return s.list("sort_order, name")
}

// ListByProficiency returns all technologies, strongest first, then by name.
func (s *TechnologyStore) ListByProficiency() ([]models.Technology, error) {
	return s.list("proficiency DESC, name")
}

// Count returns the number of technologies.
func (s *TechnologyStore) Count() (int, error) {
	var n int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM technologies`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count technologies: %w", err)
	}
	return n, nil
}

func (s *TechnologyStore) findOne(where string, arg any) (*models.Technology, error) {
	row := s.db.QueryRow(`SELECT `+technologyColumns+` FROM technologies WHERE `+where, arg)
	t, err := scanTechnology(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return t, err
}

// FindByID retrieves a technology by ID. Returns nil if not found.
func (s *TechnologyStore) FindByID(id uuid.UUID) (*models.Technology, error) {
	t, err := s.findOne("id = $1", id)
	if err != nil {
		return nil, fmt.Errorf("find technology by id: %w", err)
	}
	return t, nil
}

// FindBySlug retrieves a technology by slug. Returns nil if not found.
func (s *TechnologyStore) FindBySlug(slug string) (*models.Technology, error) {
	t, err := s.findOne("slug = $1", slug)
	if err != nil {
		return nil, fmt.Errorf("find technology by slug: %w", err)
	}
	return t, nil
}

// FindByName retrieves a technology by exact name. Returns nil if not found.
func (s *TechnologyStore) FindByName(name string) (*models.Technology, error) {
	t, err := s.findOne("name = $1", name)
	if err != nil {
		return nil, fmt.Errorf("find technology by name: %w", err)
	}
	return t, nil
}

// ForProjects returns the technologies of each project, keyed by project id,
// in display order.
func (s *TechnologyStore) ForProjects(projectIDs []uuid.UUID) (map[uuid.UUID][]models.Technology, error) {
	out := make(map[uuid.UUID][]models.Technology, len(projectIDs))
	if len(projectIDs) == 0 {
		return out, nil
	}
	query, args, err := psql.
		Select("pt.project_id", "t.id", "t.name", "t.slug", "t.category", "t.icon", "t.color",
			"t.proficiency", "t.sort_order", "t.created_at", "t.updated_at").
		From("project_technologies pt").
		Join("technologies t ON t.id = pt.technology_id").
		Where(sq.Eq{"pt.project_id": idStrings(uniqueIDs(projectIDs))}).
		OrderBy("t.sort_order", "t.name").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build technologies for projects: %w", err)
	}
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("technologies for projects: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var pid uuid.UUID
		var t models.Technology
		if err := rows.Scan(&pid, &t.ID, &t.Name, &t.Slug, &t.Category, &t.Icon, &t.Color,
			&t.Proficiency, &t.SortOrder, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan project technology: %w", err)
		}
		out[pid] = append(out[pid], t)
	}
	return out, rows.Err()
}

// SlugExists reports whether a technology already uses slug.
func (s *TechnologyStore) SlugExists(slug string) (bool, error) {
	var exists bool
	err := s.db.QueryRow(`SELECT EXISTS (SELECT 1 FROM technologies WHERE slug = $1)`, slug).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("technology slug exists: %w", err)
	}
	return exists, nil
}

func normalizeTechnology(t *models.Technology) error {
	if t.Category == "" {
		t.Category = models.TechTool
	}
	if !t.Category.Valid() {
		return fmt.Errorf("category: unknown technology category %q", t.Category)
	}
	if t.Color == "" {
		t.Color = models.DefaultPrimaryColor
	}
	if t.Proficiency == 0 {
		t.Proficiency = models.DefaultProficiency
	}
	if t.Proficiency < models.MinProficiency || t.Proficiency > models.MaxProficiency {
		return fmt.Errorf("proficiency: %d is outside %d-%d", t.Proficiency, models.MinProficiency, models.MaxProficiency)
	}
	return models.CheckHexColor("color", t.Color)
}

// Create inserts a new technology. An empty slug is derived from the name
// and made unique.
func (s *TechnologyStore) Create(t *models.Technology) (*models.Technology, error) {
	if err := normalizeTechnology(t); err != nil {
		return nil, err
	}
	if t.Slug == "" {
		generated, err := slug.Unique(slug.Generate(t.Name), "technology", s.SlugExists)
		if err != nil {
			return nil, fmt.Errorf("create technology: %w", err)
		}
		t.Slug = generated
	}
	row := s.db.QueryRow(`
		INSERT INTO technologies (name, slug, category, icon, color, proficiency, sort_order)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING `+technologyColumns,
		t.Name, t.Slug, t.Category, t.Icon, t.Color, t.Proficiency, t.SortOrder,
	)
	result, err := scanTechnology(row)
	if err != nil {
		return nil, fmt.Errorf("create technology: %w", err)
	}
	return result, nil
}

// Update modifies an existing technology. An empty slug keeps the stored one.
func (s *TechnologyStore) Update(t *models.Technology) error {
	if err := normalizeTechnology(t); err != nil {
		return err
	}
	res, err := s.db.Exec(`
		UPDATE technologies SET
			name = $1, slug = COALESCE(NULLIF($2, ''), slug), category = $3, icon = $4,
			color = $5, proficiency = $6, sort_order = $7, updated_at = NOW()
		WHERE id = $8
	`, t.Name, t.Slug, t.Category, t.Icon, t.Color, t.Proficiency, t.SortOrder, t.ID)
	if err != nil {
		return fmt.Errorf("update technology: %w", err)
	}
	return requireAffected(res, "technology", t.ID)
}

// UpdateProficiency applies several proficiency changes in one transaction.
func (s *TechnologyStore) UpdateProficiency(changes map[uuid.UUID]int) error {
	for id, p := range changes {
		if p < models.MinProficiency || p > models.MaxProficiency {
			return fmt.Errorf("technology %s: proficiency %d is outside %d-%d",
				id, p, models.MinProficiency, models.MaxProficiency)
		}
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`UPDATE technologies SET proficiency = $1, updated_at = NOW() WHERE id = $2`)
	if err != nil {
		return fmt.Errorf("prepare proficiency update: %w", err)
	}
	defer stmt.Close()

	for id, p := range changes {
		res, err := stmt.Exec(p, id)
		if err != nil {
			return fmt.Errorf("update proficiency %s: %w", id, err)
		}
		if err := requireAffected(res, "technology", id); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// Delete removes a technology. Its project associations cascade.
func (s *TechnologyStore) Delete(id uuid.UUID) error {
	res, err := s.db.Exec(`DELETE FROM technologies WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete technology: %w", err)
	}
	return requireAffected(res, "technology", id)
}
