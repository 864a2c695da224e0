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

// CategoryStore manages project categories in the database.
type CategoryStore struct {
	db *sql.DB
}

// NewCategoryStore returns a new CategoryStore.
func NewCategoryStore(db *sql.DB) *CategoryStore {
	return &CategoryStore{db: db}
}

const categoryColumns = `id, name, slug, description, color, icon, sort_order, created_at, updated_at`

// scanCategory scans a row into a Category struct.
func scanCategory(scanner interface{ Scan(...any) error }) (*models.Category, error) {
	var c models.Category
	err := scanner.Scan(
		&c.ID, &c.Name, &c.Slug, &c.Description,
		&c.Color, &c.Icon, &c.SortOrder, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// List returns all categories ordered by sort_order, then name.
func (s *CategoryStore) List() ([]models.Category, error) {
	rows, err := s.db.Query(`SELECT ` + categoryColumns + ` FROM categories ORDER BY sort_order, name`)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var items []models.Category
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		items = append(items, *c)
	}
	return items, rows.Err()
}

// FindByIDs returns the categories with the given ids keyed by id.
func (s *CategoryStore) FindByIDs(ids []uuid.UUID) (map[uuid.UUID]*models.Category, error) {
	out := make(map[uuid.UUID]*models.Category, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	query, args, err := psql.Select(categoryColumns).From("categories").
		Where(sq.Eq{"id": idStrings(uniqueIDs(ids))}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build categories by ids: %w", err)
	}
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("find categories by ids: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		out[c.ID] = c
	}
	return out, rows.Err()
}

func (s *CategoryStore) findOne(where string, arg any) (*models.Category, error) {
	row := s.db.QueryRow(`SELECT `+categoryColumns+` FROM categories WHERE `+where, arg)
	c, err := scanCategory(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return c, err
}

// FindByID retrieves a category by ID. Returns nil if not found.
func (s *CategoryStore) FindByID(id uuid.UUID) (*models.Category, error) {
	c, err := s.findOne("id = $1", id)
	if err != nil {
		return nil, fmt.Errorf("find category by id: %w", err)
	}
	return c, nil
}

// FindBySlug retrieves a category by slug. Returns nil if not found.
func (s *CategoryStore) FindBySlug(slug string) (*models.Category, error) {
	c, err := s.findOne("slug = $1", slug)
	if err != nil {
		return nil, fmt.Errorf("find category by slug: %w", err)
	}
	return c, nil
}

// FindByName retrieves a category by exact name. Returns nil if not found.
func (s *CategoryStore) FindByName(name string) (*models.Category, error) {
	c, err := s.findOne("name = $1", name)
	if err != nil {
		return nil, fmt.Errorf("find category by name: %w", err)
	}
	return c, nil
}

// SlugExists reports whether a category already uses slug.
func (s *CategoryStore) SlugExists(slug string) (bool, error) {
	var exists bool
	err := s.db.QueryRow(`SELECT EXISTS (SELECT 1 FROM categories WHERE slug = $1)`, slug).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("category slug exists: %w", err)
	}
	return exists, nil
}

// Create inserts a new category and returns it. An empty slug is derived
// from the name and made unique.
func (s *CategoryStore) Create(c *models.Category) (*models.Category, error) {
	if c.Slug == "" {
		generated, err := slug.Unique(slug.Generate(c.Name), "category", s.SlugExists)
		if err != nil {
			return nil, fmt.Errorf("create category: %w", err)
		}
		c.Slug = generated
	}
	if c.Color == "" {
		c.Color = models.DefaultPrimaryColor
	}
	if err := models.CheckHexColor("color", c.Color); err != nil {
		return nil, err
	}
	row := s.db.QueryRow(`
		INSERT INTO categories (name, slug, description, color, icon, sort_order)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+categoryColumns,
		c.Name, c.Slug, c.Description, c.Color, c.Icon, c.SortOrder,
	)
	result, err := scanCategory(row)
	if err != nil {
		return nil, fmt.Errorf("create category: %w", err)
	}
	return result, nil
}

// Update modifies an existing category. The slug is kept as stored when
// the caller leaves it empty.
func (s *CategoryStore) Update(c *models.Category) error {
	if err := models.CheckHexColor("color", c.Color); err != nil {
		return err
	}
	res, err := s.db.Exec(`
		UPDATE categories SET
			name = $1, slug = COALESCE(NULLIF($2, ''), slug), description = $3,
			color = $4, icon = $5, sort_order = $6, updated_at = NOW()
		WHERE id = $7
	`, c.Name, c.Slug, c.Description, c.Color, c.Icon, c.SortOrder, c.ID)
	if err != nil {
		return fmt.Errorf("update category: %w", err)
	}
	return requireAffected(res, "category", c.ID)
}

// Delete removes a category by ID. Projects referencing it become
// uncategorized (ON DELETE SET NULL).
func (s *CategoryStore) Delete(id uuid.UUID) error {
	res, err := s.db.Exec(`DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	return requireAffected(res, "category", id)
}

// requireAffected turns a zero-row update into ErrNotFound.
func requireAffected(res sql.Result, entity string, id uuid.UUID) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s rows affected: %w", entity, err)
	}
	if n == 0 {
		return fmt.Errorf("%s %s: %w", entity, id, ErrNotFound)
	}
	return nil
}
