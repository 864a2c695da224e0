// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"portfolio/internal/models"
)

// ProjectImageStore manages project gallery images.
type ProjectImageStore struct {
	db *sql.DB
}

// NewProjectImageStore returns a new ProjectImageStore.
func NewProjectImageStore(db *sql.DB) *ProjectImageStore {
	return &ProjectImageStore{db: db}
}

const projectImageColumns = `id, project_id, image, caption, sort_order, created_at`

func scanProjectImage(scanner interface{ Scan(...any) error }) (*models.ProjectImage, error) {
	var img models.ProjectImage
	if err := scanner.Scan(&img.ID, &img.ProjectID, &img.Image, &img.Caption, &img.SortOrder, &img.CreatedAt); err != nil {
		return nil, err
	}
	return &img, nil
}

// ListByProject returns a project's images in gallery order.
func (s *ProjectImageStore) ListByProject(projectID uuid.UUID) ([]models.ProjectImage, error) {
	rows, err := s.db.Query(`
		SELECT `+projectImageColumns+` FROM project_images
		WHERE project_id = $1
		ORDER BY sort_order, created_at
	`, projectID)
	if err != nil {
		return nil, fmt.Errorf("list project images: %w", err)
	}
	defer rows.Close()

	var items []models.ProjectImage
	for rows.Next() {
		img, err := scanProjectImage(rows)
		if err != nil {
			return nil, fmt.Errorf("scan project image: %w", err)
		}
		items = append(items, *img)
	}
	return items, rows.Err()
}

// Create adds an image to a project's gallery.
func (s *ProjectImageStore) Create(img *models.ProjectImage) (*models.ProjectImage, error) {
	row := s.db.QueryRow(`
		INSERT INTO project_images (project_id, image, caption, sort_order)
		VALUES ($1, $2, $3, $4)
		RETURNING `+projectImageColumns,
		img.ProjectID, img.Image, img.Caption, img.SortOrder,
	)
	result, err := scanProjectImage(row)
	if err != nil {
		return nil, fmt.Errorf("create project image: %w", err)
	}
	return result, nil
}

// NextSortOrder returns the sort_order for an image appended to the gallery.
func (s *ProjectImageStore) NextSortOrder(projectID uuid.UUID) (int, error) {
	var maxOrder sql.NullInt64
	err := s.db.QueryRow(`SELECT MAX(sort_order) FROM project_images WHERE project_id = $1`, projectID).Scan(&maxOrder)
	if err != nil {
		return 0, fmt.Errorf("next image order: %w", err)
	}
	if maxOrder.Valid {
		return int(maxOrder.Int64) + 1, nil
	}
	return 0, nil
}
