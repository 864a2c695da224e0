// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package cli

import (
	"fmt"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"portfolio/internal/loader"
)

func newLoadCmd() *cobra.Command {
	var check bool
	cmd := &cobra.Command{
		Use:   "load <file.json>",
		Short: "Create or update projects from a JSON file",
		Long: `Reads a JSON array of projects. Categories and technologies are
matched by name, then by slug, and created when missing. Projects are
matched by slug and their technologies replaced.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fsys := afero.NewOsFs()
			if check {
				f, err := fsys.Open(args[0])
				if err != nil {
					return fmt.Errorf("open project file: %w", err)
				}
				defer f.Close()
				inputs, err := loader.Decode(f)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%d projects are valid.\n", len(inputs))
				return nil
			}

			return withApp(cmd, func(a *app) error {
				l := loader.New(a.showcase, a.categories, a.techs, a.projects)
				report, err := l.LoadFile(cmd.Context(), fsys, args[0])
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(),
					"%d projects processed. Created: %d, updated: %d. New categories: %d, new technologies: %d.\n",
					report.Processed, report.ProjectsCreated, report.ProjectsUpdated,
					report.CategoriesCreated, report.TechnologiesCreated)
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&check, "check", false, "validate the file without touching the database")
	return cmd
}
