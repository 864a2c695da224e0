// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package handlers implements the public pages of the portfolio: home,
// about, skills, the project showcase, the contact form and the crawler
// endpoints.
package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"portfolio/internal/cache"
	"portfolio/internal/contact"
	"portfolio/internal/i18n"
	"portfolio/internal/middleware"
	"portfolio/internal/models"
	"portfolio/internal/render"
	"portfolio/internal/showcase"
	"portfolio/internal/store"
)

// ProjectReader is the read side of the project store.
type ProjectReader interface {
	ListPublished(f store.ProjectFilter) (*store.ProjectPage, error)
	FindPublishedBySlug(slug string) (*models.Project, error)
	Featured(limit int) ([]models.Project, error)
	CountPublished() (int, error)
	SitemapEntries() ([]store.SitemapEntry, error)
}

// TechnologyReader is the read side of the technology store.
type TechnologyReader interface {
	List() ([]models.Technology, error)
	ListByProficiency() ([]models.Technology, error)
	Count() (int, error)
}

// Showcase computes derived project data. *showcase.Service implements it.
type Showcase interface {
	Similar(ctx context.Context, p *models.Project, n int) ([]models.Project, error)
	Neighbors(ctx context.Context, id uuid.UUID) (prev, next *store.NavEntry, err error)
}

// SidebarSource provides the cached listing facets. *showcase.Aggregates
// implements it.
type SidebarSource interface {
	Sidebar(ctx context.Context) (*showcase.Sidebar, error)
}

// ContactSubmitter accepts contact form submissions. *contact.Intake
// implements it.
type ContactSubmitter interface {
	Submit(ctx context.Context, f contact.Form, ip string) (*models.ContactMessage, error)
}

// Options are the listing and site settings the handlers need.
type Options struct {
	SiteURL       string
	PageSize      int
	SimilarLimit  int
	FeaturedLimit int
}

// Public groups handlers for the public-facing site. The project listing
// is served from the page cache when possible.
type Public struct {
	renderer  *render.Renderer
	projects  ProjectReader
	techs     TechnologyReader
	showcase  Showcase
	sidebar   SidebarSource
	intake    ContactSubmitter
	pageCache *cache.PageCache
	opts      Options
}

// NewPublic creates a new Public handler group. pageCache may be nil to
// disable listing page caching.
func NewPublic(renderer *render.Renderer, projects ProjectReader, techs TechnologyReader, sc Showcase, sidebar SidebarSource, intake ContactSubmitter, pageCache *cache.PageCache, opts Options) *Public {
	if opts.PageSize <= 0 {
		opts.PageSize = 12
	}
	return &Public{
		renderer:  renderer,
		projects:  projects,
		techs:     techs,
		showcase:  sc,
		sidebar:   sidebar,
		intake:    intake,
		pageCache: pageCache,
		opts:      opts,
	}
}

// serverError logs err and answers 500 with a generic localized message.
func serverError(w http.ResponseWriter, r *http.Request, msg string, err error) {
	slog.Error(msg, "error", err, "path", r.URL.Path)
	http.Error(w, i18n.Ctx(r.Context(), i18n.MsgServerError), http.StatusInternalServerError)
}

// Home renders the landing page with featured projects.
func (p *Public) Home(w http.ResponseWriter, r *http.Request) {
	featured, err := p.projects.Featured(p.opts.FeaturedLimit)
	if err != nil {
		serverError(w, r, "list featured projects failed", err)
		return
	}
	projectCount, techCount, err := p.counts()
	if err != nil {
		serverError(w, r, "count portfolio failed", err)
		return
	}

	p.renderer.Page(w, r, "home", http.StatusOK, &render.PageData{
		Section: "home",
		Data: map[string]any{
			"Featured":     featured,
			"ProjectCount": projectCount,
			"TechCount":    techCount,
		},
	})
}

// About renders the profile page with statistics and skills by group.
func (p *Public) About(w http.ResponseWriter, r *http.Request) {
	projectCount, techCount, err := p.counts()
	if err != nil {
		serverError(w, r, "count portfolio failed", err)
		return
	}
	techs, err := p.techs.ListByProficiency()
	if err != nil {
		serverError(w, r, "list technologies failed", err)
		return
	}

	p.renderer.Page(w, r, "about", http.StatusOK, &render.PageData{
		Title:   i18n.Ctx(r.Context(), i18n.MsgAbout),
		Section: "about",
		Data: map[string]any{
			"ProjectCount": projectCount,
			"TechCount":    techCount,
			"Groups":       models.GroupTechnologies(techs),
		},
	})
}

// Skills renders all technologies grouped by category.
func (p *Public) Skills(w http.ResponseWriter, r *http.Request) {
	techs, err := p.techs.List()
	if err != nil {
		serverError(w, r, "list technologies failed", err)
		return
	}
	p.renderer.Page(w, r, "skills", http.StatusOK, &render.PageData{
		Title:   i18n.Ctx(r.Context(), i18n.MsgSkills),
		Section: "skills",
		Data:    map[string]any{"Groups": models.GroupTechnologies(techs)},
	})
}

func (p *Public) counts() (projects, techs int, err error) {
	if projects, err = p.projects.CountPublished(); err != nil {
		return 0, 0, err
	}
	if techs, err = p.techs.Count(); err != nil {
		return 0, 0, err
	}
	return projects, techs, nil
}

// listingCacheKey keys the rendered listing on language and response
// shape as well as the normalized query.
func listingCacheKey(r *http.Request, f store.ProjectFilter) string {
	shape := "full"
	if render.IsHTMX(r) {
		shape = "partial"
	}
	q := f.Values()
	if f.Page > 1 {
		q.Set("page", strconv.Itoa(f.Page))
	}
	return i18n.FromContext(r.Context()).String() + ":" + shape + ":" + cache.PageKey("/projects", q)
}

// Projects renders the filtered project listing. Rendered pages are
// cached until the next project or taxonomy write.
func (p *Public) Projects(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	f := store.ParseProjectFilter(r.URL.Query(), p.opts.PageSize)
	f.Query = limitSearch(f.Query)

	key := listingCacheKey(r, f)
	if p.pageCache != nil {
		if cached, ok := p.pageCache.Get(ctx, key); ok {
			render.Write(w, http.StatusOK, cached)
			return
		}
	}

	page, err := p.projects.ListPublished(f)
	if err != nil {
		serverError(w, r, "list projects failed", err)
		return
	}
	f.Page = page.Number

	sidebar, err := p.sidebar.Sidebar(ctx)
	if err != nil {
		slog.Warn("sidebar aggregates unavailable", "error", err)
		sidebar = nil
	}

	body, err := p.renderer.Render(r, "project_list", &render.PageData{
		Title:   i18n.Ctx(ctx, i18n.MsgProjects),
		Section: "projects",
		Data: map[string]any{
			"Filter":  f,
			"Page":    page,
			"Sidebar": sidebar,
		},
	})
	if err != nil {
		serverError(w, r, "render project list failed", err)
		return
	}
	if p.pageCache != nil && sidebar != nil {
		p.pageCache.Set(ctx, key, body)
	}
	render.Write(w, http.StatusOK, body)
}

// Project renders one published project with its gallery, similar
// projects and previous/next links.
func (p *Public) Project(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	slug := chi.URLParam(r, "slug")
	if !validSlug(slug) {
		p.NotFound(w, r)
		return
	}

	project, err := p.projects.FindPublishedBySlug(slug)
	if err != nil {
		serverError(w, r, "find project failed", err)
		return
	}
	if project == nil {
		p.NotFound(w, r)
		return
	}

	similar, err := p.showcase.Similar(ctx, project, p.opts.SimilarLimit)
	if err != nil {
		slog.Warn("similar projects unavailable", "error", err, "slug", slug)
	}
	prev, next, err := p.showcase.Neighbors(ctx, project.ID)
	if err != nil {
		slog.Warn("project navigation unavailable", "error", err, "slug", slug)
	}

	p.renderer.Page(w, r, "project_detail", http.StatusOK, &render.PageData{
		Title:       project.Title,
		Description: project.Tagline,
		Section:     "projects",
		Data: map[string]any{
			"Project": project,
			"Similar": similar,
			"Prev":    prev,
			"Next":    next,
		},
	})
}

// ContactForm renders the empty contact form, or the confirmation banner
// after a successful submission.
func (p *Public) ContactForm(w http.ResponseWriter, r *http.Request) {
	p.renderContact(w, r, contact.Form{}, nil, r.URL.Query().Get("sent") == "1")
}

// ContactSubmit handles the posted contact form. Rate limiting and CSRF
// checks happen in middleware before this runs, as does the body size
// limit.
func (p *Public) ContactSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, i18n.Ctx(r.Context(), i18n.MsgFormError), http.StatusBadRequest)
		return
	}
	form := contact.FormFromValues(r.PostForm)

	_, err := p.intake.Submit(r.Context(), form, middleware.ClientIP(r))
	var verr *contact.ValidationError
	switch {
	case errors.As(err, &verr):
		form.Website = ""
		p.renderContact(w, r, form, verr, false)
	case err != nil:
		serverError(w, r, "contact submission failed", err)
	default:
		http.Redirect(w, r, "/contact?sent=1", http.StatusSeeOther)
	}
}

func (p *Public) renderContact(w http.ResponseWriter, r *http.Request, form contact.Form, verr *contact.ValidationError, sent bool) {
	fieldErrors := map[string]string{}
	if verr != nil && verr.Fields != nil {
		fieldErrors = verr.Fields
	}
	p.renderer.Page(w, r, "contact", http.StatusOK, &render.PageData{
		Title:   i18n.Ctx(r.Context(), i18n.MsgContact),
		Section: "contact",
		Data: map[string]any{
			"Form":        form,
			"Errors":      verr,
			"FieldErrors": fieldErrors,
			"Sent":        sent,
		},
	})
}

// NotFound renders the localized 404 page.
func (p *Public) NotFound(w http.ResponseWriter, r *http.Request) {
	p.renderer.Page(w, r, "not_found", http.StatusNotFound, &render.PageData{
		Title: i18n.Ctx(r.Context(), i18n.MsgNotFound),
	})
}

// Maintenance renders the standalone maintenance page.
func (p *Public) Maintenance(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Retry-After", "3600")
	p.renderer.Page(w, r, "maintenance", http.StatusServiceUnavailable, &render.PageData{})
}
