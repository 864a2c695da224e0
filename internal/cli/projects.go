// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package cli

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

func newProjectsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "projects",
		Short: "Feature or publish projects in bulk",
		Long: `Projects are given by id or slug. Caches derived from the projects
are invalidated after each change.`,
	}

	actions := []struct {
		use, short, done string
		apply            func(ctx context.Context, a *app, ids []uuid.UUID) (int64, error)
	}{
		{"feature", "Mark projects as featured", "featured",
			func(ctx context.Context, a *app, ids []uuid.UUID) (int64, error) { return a.showcase.SetFeatured(ctx, ids, true) }},
		{"unfeature", "Remove projects from the featured list", "unfeatured",
			func(ctx context.Context, a *app, ids []uuid.UUID) (int64, error) { return a.showcase.SetFeatured(ctx, ids, false) }},
		{"publish", "Publish projects", "published",
			func(ctx context.Context, a *app, ids []uuid.UUID) (int64, error) { return a.showcase.SetPublished(ctx, ids, true) }},
		{"unpublish", "Hide projects from the site", "unpublished",
			func(ctx context.Context, a *app, ids []uuid.UUID) (int64, error) { return a.showcase.SetPublished(ctx, ids, false) }},
	}
	for _, act := range actions {
		cmd.AddCommand(&cobra.Command{
			Use:   act.use + " <ids|slugs...>",
			Short: act.short,
			Args:  cobra.MinimumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return withApp(cmd, func(a *app) error {
					ids, err := a.projects.ResolveRefs(args)
					if err != nil {
						return err
					}
					n, err := act.apply(cmd.Context(), a, ids)
					if err != nil {
						return err
					}
					fmt.Fprintf(cmd.OutOrStdout(), "%d projects %s.\n", n, act.done)
					return nil
				})
			},
		})
	}
	return cmd
}
