// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// BackgroundStyle controls how a project's hero section is painted.
type BackgroundStyle string

const (
	BackgroundSolid    BackgroundStyle = "solid"
	BackgroundGradient BackgroundStyle = "gradient"
	BackgroundPattern  BackgroundStyle = "pattern"
	BackgroundImage    BackgroundStyle = "image"
)

// Valid reports whether s is a known background style.
func (s BackgroundStyle) Valid() bool {
	switch s {
	case BackgroundSolid, BackgroundGradient, BackgroundPattern, BackgroundImage:
		return true
	}
	return false
}

// Project is a portfolio entry.
type Project struct {
	ID               uuid.UUID       `json:"id"`
	Title            string          `json:"title"`
	Slug             string          `json:"slug"`
	Tagline          string          `json:"tagline"`
	Description      string          `json:"description"` // Markdown
	PrimaryColor     string          `json:"primary_color"`
	SecondaryColor   string          `json:"secondary_color"`
	BackgroundStyle  BackgroundStyle `json:"background_style"`
	FeaturedImage    *string         `json:"featured_image,omitempty"`
	Logo             *string         `json:"logo,omitempty"`
	CategoryID       *uuid.UUID      `json:"category_id,omitempty"`
	Challenges       string          `json:"challenges"`
	Learnings        string          `json:"learnings"`
	Features         []string        `json:"features"`
	GithubURL        string          `json:"github_url"`
	DemoURL          string          `json:"demo_url"`
	DocumentationURL string          `json:"documentation_url"`
	CompletedAt      *time.Time      `json:"completed_at,omitempty"`
	Duration         string          `json:"duration"`
	IsFeatured       bool            `json:"is_featured"`
	IsPublished      bool            `json:"is_published"`
	SortOrder        int             `json:"sort_order"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`

	// Populated by store methods.
	Category     *Category      `json:"category,omitempty"`
	Technologies []Technology   `json:"technologies,omitempty"`
	Images       []ProjectImage `json:"images,omitempty"`
}

// ApplyDefaults fills unset colors and background style.
func (p *Project) ApplyDefaults() {
	if p.PrimaryColor == "" {
		p.PrimaryColor = DefaultPrimaryColor
	}
	if p.SecondaryColor == "" {
		p.SecondaryColor = DefaultSecondaryColor
	}
	if p.BackgroundStyle == "" {
		p.BackgroundStyle = BackgroundGradient
	}
	if p.Features == nil {
		p.Features = []string{}
	}
}

// Validate checks field constraints that the database does not report
// in a user-friendly way.
func (p *Project) Validate() error {
	var errs []error
	if strings.TrimSpace(p.Title) == "" {
		errs = append(errs, errors.New("title: required"))
	}
	if err := CheckHexColor("primary_color", p.PrimaryColor); err != nil {
		errs = append(errs, err)
	}
	if err := CheckHexColor("secondary_color", p.SecondaryColor); err != nil {
		errs = append(errs, err)
	}
	if !p.BackgroundStyle.Valid() {
		errs = append(errs, fmt.Errorf("background_style: unknown value %q", p.BackgroundStyle))
	}
	return errors.Join(errs...)
}

// GradientCSS returns the CSS background for the project's brand colors.
func (p *Project) GradientCSS() string {
	return fmt.Sprintf("linear-gradient(135deg, %s 0%%, %s 100%%)", p.PrimaryColor, p.SecondaryColor)
}

// ProjectImage is one gallery image of a project.
type ProjectImage struct {
	ID        uuid.UUID `json:"id"`
	ProjectID uuid.UUID `json:"project_id"`
	Image     string    `json:"image"`
	Caption   string    `json:"caption"`
	SortOrder int       `json:"sort_order"`
	CreatedAt time.Time `json:"created_at"`
}
