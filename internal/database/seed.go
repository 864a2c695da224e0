// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package database

import (
	"database/sql"
	"fmt"
	"log/slog"
)

type seedCategory struct {
	name, slug, description, color, icon string
	order                                int
}

type seedTechnology struct {
	name, slug, category, color string
	proficiency, order          int
}

var seedCategories = []seedCategory{
	{"Web Application", "web-application", "Full-stack web applications", "#ff6b35", "🌐", 1},
	{"API", "api", "Backend services and public APIs", "#2d9cdb", "🔌", 2},
	{"Tooling", "tooling", "Command-line tools and automation", "#27ae60", "🛠", 3},
}

var seedTechnologies = []seedTechnology{
	{"Go", "go", "language", "#00add8", 5, 1},
	{"PostgreSQL", "postgresql", "database", "#336791", 4, 2},
	{"Valkey", "valkey", "database", "#dc382d", 4, 3},
	{"HTMX", "htmx", "frontend", "#3366cc", 3, 4},
	{"Docker", "docker", "tool", "#2496ed", 4, 5},
}

// Seed populates the database with initial development data.
// It inserts a small set of categories and technologies if none exist,
// so the project filters have something to show on a fresh install.
func Seed(db *sql.DB) error {
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM technologies").Scan(&count); err != nil {
		return fmt.Errorf("seed check technologies: %w", err)
	}

	if count > 0 {
		slog.Info("database already seeded, skipping")
		return nil
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("seed begin tx: %w", err)
	}
	defer tx.Rollback()

	for _, c := range seedCategories {
		_, err := tx.Exec(`
			INSERT INTO categories (name, slug, description, color, icon, sort_order)
			VALUES ($1, $2, $3, $4, $5, $6)
			ON CONFLICT DO NOTHING
		`, c.name, c.slug, c.description, c.color, c.icon, c.order)
		if err != nil {
			return fmt.Errorf("seed insert category %s: %w", c.slug, err)
		}
	}

	for _, t := range seedTechnologies {
		_, err := tx.Exec(`
			INSERT INTO technologies (name, slug, category, icon, color, proficiency, sort_order)
			VALUES ($1, $2, $3, $2, $4, $5, $6)
			ON CONFLICT DO NOTHING
		`, t.name, t.slug, t.category, t.color, t.proficiency, t.order)
		if err != nil {
			return fmt.Errorf("seed insert technology %s: %w", t.slug, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed commit: %w", err)
	}

	slog.Info("database seeded",
		"categories", len(seedCategories),
		"technologies", len(seedTechnologies),
	)
	return nil
}
