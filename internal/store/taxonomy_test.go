// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"errors"
	"testing"

	"github.com/google/uuid"

	"portfolio/internal/models"
)

func TestCategoryStoreCRUD(t *testing.T) {
	f := newFixture(t)

	c, err := f.categories.Create(&models.Category{Name: f.prefix + " Web Apps"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if c.Slug != f.prefix+"-web-apps" {
		t.Errorf("slug = %q", c.Slug)
	}
	if c.Color != models.DefaultPrimaryColor {
		t.Errorf("color = %q, want default", c.Color)
	}

	c.Name = f.prefix + " Websites"
	c.Slug = ""
	c.Color = "#123abc"
	if err := f.categories.Update(c); err != nil {
		t.Fatalf("Update: %v", err)
	}
	got, _ := f.categories.FindBySlug(f.prefix + "-web-apps")
	if got == nil || got.Name != f.prefix+" Websites" || got.Color != "#123abc" {
		t.Errorf("after update = %+v", got)
	}

	if _, err := f.categories.Create(&models.Category{Name: f.slug("bad"), Color: "red"}); err == nil {
		t.Error("expected error for invalid color")
	}

	// Deleting a category leaves its projects uncategorized.
	p := f.project("orphan", nil, withCategory(c))
	if err := f.categories.Delete(c.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	reloaded, _ := f.projects.FindByID(p.ID)
	if reloaded.CategoryID != nil {
		t.Error("project category should be cleared")
	}
	if err := f.categories.Delete(c.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("second Delete = %v, want ErrNotFound", err)
	}
}

func TestTechnologyStoreDefaultsAndProficiency(t *testing.T) {
	f := newFixture(t)

	a := f.tech("alpha")
	if a.Category != models.TechTool || a.Proficiency != models.DefaultProficiency {
		t.Errorf("defaults = %s/%d", a.Category, a.Proficiency)
	}
	b, err := f.techs.Create(&models.Technology{Name: f.slug("beta"), Category: models.TechLanguage, Proficiency: 5})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if _, err := f.techs.Create(&models.Technology{Name: f.slug("bad"), Proficiency: 6}); err == nil {
		t.Error("expected error for proficiency 6")
	}
	if _, err := f.techs.Create(&models.Technology{Name: f.slug("bad2"), Category: "hardware"}); err == nil {
		t.Error("expected error for unknown category")
	}

	if err := f.techs.UpdateProficiency(map[uuid.UUID]int{a.ID: 4, b.ID: 2}); err != nil {
		t.Fatalf("UpdateProficiency: %v", err)
	}
	ra, _ := f.techs.FindByID(a.ID)
	rb, _ := f.techs.FindByID(b.ID)
	if ra.Proficiency != 4 || rb.Proficiency != 2 {
		t.Errorf("proficiency = %d/%d, want 4/2", ra.Proficiency, rb.Proficiency)
	}

	// One unknown id rolls back the whole batch.
	err = f.techs.UpdateProficiency(map[uuid.UUID]int{a.ID: 1, uuid.New(): 1})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("UpdateProficiency with unknown id = %v", err)
	}
	ra, _ = f.techs.FindByID(a.ID)
	if ra.Proficiency != 4 {
		t.Errorf("proficiency changed despite rollback: %d", ra.Proficiency)
	}

	if err := f.techs.UpdateProficiency(map[uuid.UUID]int{a.ID: 0}); err == nil {
		t.Error("expected range error")
	}
}

func TestTechnologiesForProjects(t *testing.T) {
	f := newFixture(t)
	goT, pgT := f.tech("go"), f.tech("pg")
	p := f.project("p", []*models.Technology{pgT, goT, goT})

	m, err := f.techs.ForProjects([]uuid.UUID{p.ID})
	if err != nil {
		t.Fatalf("ForProjects: %v", err)
	}
	if len(m[p.ID]) != 2 {
		t.Fatalf("got %d technologies, want 2", len(m[p.ID]))
	}

	// Gallery images cascade with the project.
	images := NewProjectImageStore(f.db)
	order, _ := images.NextSortOrder(p.ID)
	if order != 0 {
		t.Errorf("first NextSortOrder = %d", order)
	}
	if _, err := images.Create(&models.ProjectImage{ProjectID: p.ID, Image: "/media/a.jpg", SortOrder: order}); err != nil {
		t.Fatalf("create image: %v", err)
	}
	if order, _ = images.NextSortOrder(p.ID); order != 1 {
		t.Errorf("second NextSortOrder = %d", order)
	}
	pub, err := f.projects.FindPublishedBySlug(p.Slug)
	if err != nil || pub == nil || len(pub.Images) != 1 {
		t.Fatalf("FindPublishedBySlug images = %v, %v", pub, err)
	}
	if err := f.projects.Delete(p.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	left, _ := images.ListByProject(p.ID)
	if len(left) != 0 {
		t.Errorf("%d images left after project delete", len(left))
	}
}
