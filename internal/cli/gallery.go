// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package cli

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"portfolio/internal/imaging"
	"portfolio/internal/models"
	"portfolio/internal/storage"
	"portfolio/internal/store"
)

const (
	galleryPrefix  = "projects/gallery"
	featuredPrefix = "projects/featured"
)

type galleryProjects interface {
	FindBySlug(slug string) (*models.Project, error)
}

type galleryImages interface {
	Create(img *models.ProjectImage) (*models.ProjectImage, error)
	NextSortOrder(projectID uuid.UUID) (int, error)
}

type projectUpdater interface {
	UpdateProject(ctx context.Context, p *models.Project) error
}

// galleryImporter optimizes local image files, uploads them and records
// them on a project.
type galleryImporter struct {
	fs        afero.Fs
	projects  galleryProjects
	images    galleryImages
	updater   projectUpdater
	storage   storage.Storage
	optimizer *imaging.Optimizer
	now       func() time.Time
}

// importResult counts the outcome of an import.
type importResult struct {
	Added    int
	Failed   int
	Featured string // URL of the new featured image, if any
}

// Import adds files to the gallery of the project with slug and, when
// featured is set, replaces its featured image. A file that cannot be
// read or stored is reported and skipped.
func (g *galleryImporter) Import(ctx context.Context, slug string, files []string, featured string) (*importResult, error) {
	p, err := g.projects.FindBySlug(slug)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, fmt.Errorf("project %q: %w", slug, store.ErrNotFound)
	}

	res := &importResult{}
	order, err := g.images.NextSortOrder(p.ID)
	if err != nil {
		return nil, err
	}
	for _, path := range files {
		url, err := g.upload(ctx, galleryPrefix, path)
		if err != nil {
			slog.Error("gallery image skipped", "file", path, "error", err)
			res.Failed++
			continue
		}
		if _, err := g.images.Create(&models.ProjectImage{
			ProjectID: p.ID,
			Image:     url,
			Caption:   captionFromFilename(path),
			SortOrder: order,
		}); err != nil {
			return res, err
		}
		order++
		res.Added++
	}

	if featured != "" {
		url, err := g.upload(ctx, featuredPrefix, featured)
		if err != nil {
			return res, fmt.Errorf("featured image: %w", err)
		}
		previous := p.FeaturedImage
		p.FeaturedImage = &url
		if err := g.updater.UpdateProject(ctx, p); err != nil {
			return res, err
		}
		res.Featured = url
		if previous != nil {
			g.discard(ctx, *previous)
		}
	}
	return res, nil
}

func (g *galleryImporter) upload(ctx context.Context, prefix, path string) (string, error) {
	data, err := afero.ReadFile(g.fs, path)
	if err != nil {
		return "", fmt.Errorf("read image: %w", err)
	}
	up := g.optimizer.Prepare(data, filepath.Base(path))
	key := storage.ObjectKey(prefix, up.Ext, g.now())
	url, err := g.storage.Put(ctx, key, up.ContentType, up.Data)
	if err != nil {
		return "", err
	}
	slog.Info("image uploaded", "file", path, "url", url, "optimized", up.Optimized)
	return url, nil
}

// discard deletes a replaced object. Failures only leave an orphan file.
func (g *galleryImporter) discard(ctx context.Context, url string) {
	key, ok := g.storage.KeyFromURL(url)
	if !ok {
		return
	}
	if err := g.storage.Delete(ctx, key); err != nil {
		slog.Warn("delete replaced image failed", "url", url, "error", err)
	}
}

// maxCaptionLen matches project_images.caption.
const maxCaptionLen = 200

// captionFromFilename turns "dark-mode_screen.png" into "dark mode screen".
// Captions are cut to maxCaptionLen runes.
func captionFromFilename(path string) string {
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	caption := strings.TrimSpace(strings.NewReplacer("-", " ", "_", " ").Replace(name))
	if runes := []rune(caption); len(runes) > maxCaptionLen {
		caption = strings.TrimSpace(string(runes[:maxCaptionLen]))
	}
	return caption
}

func newGalleryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gallery",
		Short: "Manage project images",
	}

	var featured string
	importCmd := &cobra.Command{
		Use:   "import <project-slug> [files...]",
		Short: "Optimize and upload images into a project's gallery",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 && featured == "" {
				return fmt.Errorf("nothing to import: pass image files or --featured")
			}
			return withApp(cmd, func(a *app) error {
				st, _, err := a.mediaStorage()
				if err != nil {
					return err
				}
				g := &galleryImporter{
					fs:        afero.NewOsFs(),
					projects:  a.projects,
					images:    a.images,
					updater:   a.showcase,
					storage:   st,
					optimizer: imaging.NewOptimizer(a.cfg.ImageMaxWidth, a.cfg.ImageQuality),
					now:       time.Now,
				}
				res, err := g.Import(cmd.Context(), args[0], args[1:], featured)
				if res != nil {
					fmt.Fprintf(cmd.OutOrStdout(), "%d images added, %d failed.\n", res.Added, res.Failed)
					if res.Featured != "" {
						fmt.Fprintf(cmd.OutOrStdout(), "Featured image: %s\n", res.Featured)
					}
				}
				if err != nil {
					return err
				}
				if res.Failed > 0 {
					return fmt.Errorf("%d images could not be imported", res.Failed)
				}
				return nil
			})
		},
	}
	importCmd.Flags().StringVar(&featured, "featured", "", "image file to use as the project's featured image")
	cmd.AddCommand(importCmd)
	return cmd
}
