// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"portfolio/internal/models"
)

// ProjectSort selects the listing order.
type ProjectSort string

const (
	SortOrder  ProjectSort = "order"
	SortRecent ProjectSort = "recent"
	SortTitle  ProjectSort = "title"
)

// ParseSort returns the sort for s, falling back to SortOrder.
func ParseSort(s string) ProjectSort {
	switch ProjectSort(s) {
	case SortRecent, SortTitle:
		return ProjectSort(s)
	}
	return SortOrder
}

// orderBy returns the ORDER BY terms. Every ordering ends with the id so
// pages are stable.
func (s ProjectSort) orderBy() []string {
	switch s {
	case SortRecent:
		return []string{"p.completed_at DESC NULLS LAST", "p.sort_order", "p.id"}
	case SortTitle:
		return []string{"p.title", "p.id"}
	default:
		return []string{"p.sort_order", "p.completed_at DESC NULLS LAST", "p.id"}
	}
}

// ProjectFilter holds the listing parameters. The zero value lists all
// published projects in display order.
type ProjectFilter struct {
	Techs    []string // technology slugs; a project must use all of them
	Category string   // category slug
	Query    string   // case-insensitive search in title, description, tagline
	Sort     ProjectSort
	Page     int // 1-based
	PageSize int
}

// ParseProjectFilter reads a filter from listing query parameters.
// Invalid values are ignored rather than rejected.
func ParseProjectFilter(v url.Values, pageSize int) ProjectFilter {
	f := ProjectFilter{
		Category: strings.TrimSpace(v.Get("category")),
		Query:    strings.TrimSpace(v.Get("q")),
		Sort:     ParseSort(v.Get("sort")),
		PageSize: pageSize,
		Page:     1,
	}
	for _, t := range v["tech"] {
		if t = strings.TrimSpace(t); t != "" {
			f.Techs = append(f.Techs, t)
		}
	}
	f.Techs = dedupeStrings(f.Techs)
	if n, err := strconv.Atoi(v.Get("page")); err == nil && n > 0 {
		f.Page = n
	}
	return f
}

// Values encodes the filter back into query parameters, omitting defaults.
// Page is left out so templates can append their own.
func (f ProjectFilter) Values() url.Values {
	v := url.Values{}
	for _, t := range f.Techs {
		v.Add("tech", t)
	}
	if f.Category != "" {
		v.Set("category", f.Category)
	}
	if f.Query != "" {
		v.Set("q", f.Query)
	}
	if f.Sort != "" && f.Sort != SortOrder {
		v.Set("sort", string(f.Sort))
	}
	return v
}

// IsFiltered reports whether any narrowing parameter is set.
func (f ProjectFilter) IsFiltered() bool {
	return len(f.Techs) > 0 || f.Category != "" || f.Query != ""
}

func dedupeStrings(in []string) []string {
	if len(in) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(in))
	out := in[:0:0]
	for _, s := range in {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	return out
}

// where applies the filter's predicates to a builder selecting from projects p.
func (f ProjectFilter) where(b sq.SelectBuilder) (sq.SelectBuilder, error) {
	b = b.Where(sq.Eq{"p.is_published": true})

	techs := dedupeStrings(f.Techs)
	if len(techs) > 0 {
		// Set intersection: keep projects linked to every requested slug.
		sub, args, err := sq.Select("pt.project_id").
			From("project_technologies pt").
			Join("technologies t ON t.id = pt.technology_id").
			Where(sq.Eq{"t.slug": techs}).
			GroupBy("pt.project_id").
			Having("COUNT(DISTINCT t.slug) = ?", len(techs)).
			ToSql()
		if err != nil {
			return b, fmt.Errorf("build technology filter: %w", err)
		}
		b = b.Where("p.id IN ("+sub+")", args...)
	}

	if f.Category != "" {
		b = b.Where("p.category_id = (SELECT c.id FROM categories c WHERE c.slug = ?)", f.Category)
	}

	if q := strings.TrimSpace(f.Query); q != "" {
		pattern := containsPattern(q)
		b = b.Where(sq.Or{
			sq.ILike{"p.title": pattern},
			sq.ILike{"p.description": pattern},
			sq.ILike{"p.tagline": pattern},
		})
	}
	return b, nil
}

// ProjectPage is one page of listing results.
type ProjectPage struct {
	Items      []models.Project
	Number     int // current page, 1-based
	Size       int
	Total      int // projects matching the filter across all pages
	TotalPages int
}

// HasPrev reports whether a previous page exists.
func (p *ProjectPage) HasPrev() bool { return p.Number > 1 }

// HasNext reports whether a next page exists.
func (p *ProjectPage) HasNext() bool { return p.Number < p.TotalPages }

// Pages lists all page numbers for pagination links.
func (p *ProjectPage) Pages() []int {
	out := make([]int, p.TotalPages)
	for i := range out {
		out[i] = i + 1
	}
	return out
}

// clampPage returns a page number within [1, totalPages] and the page count.
func clampPage(page, size, total int) (int, int) {
	totalPages := (total + size - 1) / size
	if totalPages < 1 {
		totalPages = 1
	}
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}
	return page, totalPages
}

// ListPublished returns the filtered, sorted page of published projects.
// Out-of-range pages are clamped to the nearest valid page.
func (s *ProjectStore) ListPublished(f ProjectFilter) (*ProjectPage, error) {
	size := f.PageSize
	if size <= 0 {
		size = 12
	}

	countQ, err := f.where(psql.Select("COUNT(*)").From("projects p"))
	if err != nil {
		return nil, err
	}
	query, args, err := countQ.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build project count: %w", err)
	}
	var total int
	if err := s.db.QueryRow(query, args...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count filtered projects: %w", err)
	}

	page, totalPages := clampPage(f.Page, size, total)
	result := &ProjectPage{Number: page, Size: size, Total: total, TotalPages: totalPages}
	if total == 0 {
		return result, nil
	}

	listQ, err := f.where(selectProjects())
	if err != nil {
		return nil, err
	}
	items, err := s.queryProjects(listQ.
		OrderBy(f.Sort.orderBy()...).
		Limit(uint64(size)).
		Offset(uint64((page - 1) * size)))
	if err != nil {
		return nil, fmt.Errorf("list published projects: %w", err)
	}
	result.Items = items
	return result, nil
}

// NavEntry is one project in the canonical navigation order.
type NavEntry struct {
	ID    uuid.UUID `json:"id"`
	Slug  string    `json:"slug"`
	Title string    `json:"title"`
}

// NavigationOrder returns all published projects in display order.
func (s *ProjectStore) NavigationOrder() ([]NavEntry, error) {
	query, args, err := psql.Select("p.id", "p.slug", "p.title").
		From("projects p").
		Where(sq.Eq{"p.is_published": true}).
		OrderBy(SortOrder.orderBy()...).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build navigation order: %w", err)
	}
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("navigation order: %w", err)
	}
	defer rows.Close()

	var out []NavEntry
	for rows.Next() {
		var e NavEntry
		if err := rows.Scan(&e.ID, &e.Slug, &e.Title); err != nil {
			return nil, fmt.Errorf("scan navigation entry: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// FacetCount is a technology or category with its published project count.
type FacetCount struct {
	Name  string `json:"name"`
	Slug  string `json:"slug"`
	Color string `json:"color"`
	Count int    `json:"count"`
}

// TechnologyCounts returns technologies used by at least one published
// project, most used first, then by name.
func (s *ProjectStore) TechnologyCounts() ([]FacetCount, error) {
	return s.facetCounts(`
		SELECT t.name, t.slug, t.color, COUNT(p.id) AS n
		FROM technologies t
		JOIN project_technologies pt ON pt.technology_id = t.id
		JOIN projects p ON p.id = pt.project_id AND p.is_published
		GROUP BY t.id, t.name, t.slug, t.color
		ORDER BY n DESC, t.name
	`)
}

// CategoryCounts returns categories with at least one published project,
// in display order.
func (s *ProjectStore) CategoryCounts() ([]FacetCount, error) {
	return s.facetCounts(`
		SELECT c.name, c.slug, c.color, COUNT(p.id) AS n
		FROM categories c
		JOIN projects p ON p.category_id = c.id AND p.is_published
		GROUP BY c.id, c.name, c.slug, c.color, c.sort_order
		ORDER BY c.sort_order, c.name
	`)
}

func (s *ProjectStore) facetCounts(query string) ([]FacetCount, error) {
	rows, err := s.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("facet counts: %w", err)
	}
	defer rows.Close()

	var out []FacetCount
	for rows.Next() {
		var f FacetCount
		if err := rows.Scan(&f.Name, &f.Slug, &f.Color, &f.Count); err != nil {
			return nil, fmt.Errorf("scan facet count: %w", err)
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

// SimilarCandidate is a published project related to another one by
// category or shared technologies.
type SimilarCandidate struct {
	Project      models.Project
	SameCategory bool
	SharedTechs  int
}

// SimilarCandidates returns every other published project that shares the
// category or at least one technology with p. Ordering is left to the caller.
func (s *ProjectStore) SimilarCandidates(p *models.Project) ([]SimilarCandidate, error) {
	var catID any
	if p.CategoryID != nil {
		catID = p.CategoryID.String()
	}
	sharedExpr := `(SELECT COUNT(*) FROM project_technologies x
		WHERE x.project_id = p.id AND x.technology_id IN
			(SELECT y.technology_id FROM project_technologies y WHERE y.project_id = ?))`

	query, args, err := psql.Select(projectColumns...).
		Column(sq.Expr("COALESCE(p.category_id = ?, FALSE) AS same_category", catID)).
		Column(sq.Alias(sq.Expr(sharedExpr, p.ID.String()), "shared_techs")).
		From("projects p").
		Where(sq.Eq{"p.is_published": true}).
		Where(sq.NotEq{"p.id": p.ID.String()}).
		Where(sq.Or{
			sq.Expr("p.category_id = ?", catID),
			sq.Expr(sharedExpr+" > 0", p.ID.String()),
		}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build similar candidates: %w", err)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("similar candidates: %w", err)
	}
	defer rows.Close()

	var out []SimilarCandidate
	for rows.Next() {
		var c SimilarCandidate
		var raw []byte
		fields := append(projectFields(&c.Project, &raw), &c.SameCategory, &c.SharedTechs)
		if err := rows.Scan(fields...); err != nil {
			return nil, fmt.Errorf("scan similar candidate: %w", err)
		}
		if err := decodeFeatures(&c.Project, raw); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	projects := make([]models.Project, len(out))
	for i := range out {
		projects[i] = out[i].Project
	}
	if err := s.loadRelations(projects); err != nil {
		return nil, err
	}
	for i := range out {
		out[i].Project = projects[i]
	}
	return out, nil
}

// SitemapEntry is a published project's location and last change.
type SitemapEntry struct {
	Slug      string
	UpdatedAt time.Time
}

// SitemapEntries lists published projects for the sitemap in display order.
func (s *ProjectStore) SitemapEntries() ([]SitemapEntry, error) {
	rows, err := s.db.Query(`
		SELECT slug, updated_at FROM projects
		WHERE is_published
		ORDER BY sort_order, completed_at DESC NULLS LAST, id
	`)
	if err != nil {
		return nil, fmt.Errorf("sitemap entries: %w", err)
	}
	defer rows.Close()

	var out []SitemapEntry
	for rows.Next() {
		var e SitemapEntry
		if err := rows.Scan(&e.Slug, &e.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan sitemap entry: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
