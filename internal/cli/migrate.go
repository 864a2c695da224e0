// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package cli

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"portfolio/internal/database"
	"portfolio/internal/store"
)

func newMigrateCmd() *cobra.Command {
	var seed, status bool
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := database.Connect(configFrom(cmd).DSN())
			if err != nil {
				return err
			}
			defer db.Close()

			if status {
				current, latest, err := database.Status(db)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Schema version %d of %d.\n", current, latest)
				return nil
			}
			if err := database.Migrate(db); err != nil {
				return err
			}
			if seed {
				return database.Seed(db)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&seed, "seed", false, "insert starter categories and technologies into an empty database")
	cmd.Flags().BoolVar(&status, "status", false, "print the applied and latest schema versions without migrating")
	cmd.MarkFlagsMutuallyExclusive("seed", "status")
	return cmd
}

func newCacheCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage derived caches",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Drop the sidebar, navigation and rendered page caches",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(a *app) error {
				a.showcase.ClearCaches(cmd.Context())
				fmt.Fprintln(cmd.OutOrStdout(), "Caches cleared.")
				return nil
			})
		},
	})

	var entity string
	var limit int
	logCmd := &cobra.Command{
		Use:   "log",
		Short: "Show the writes that recently invalidated the caches",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(a *app) error {
				entries, err := store.NewCacheLogStore(a.db).Recent(entity, limit)
				if err != nil {
					return err
				}
				tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
				fmt.Fprintln(tw, "AT\tENTITY\tACTION\tID")
				for _, e := range entries {
					fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", e.InvalidatedAt.Format(time.DateTime), e.EntityType, e.Action, e.EntityID)
				}
				return tw.Flush()
			})
		},
	}
	logCmd.Flags().StringVar(&entity, "entity", "", "only show project, category or technology entries")
	logCmd.Flags().IntVar(&limit, "limit", 20, "maximum number of entries")
	cmd.AddCommand(logCmd)
	return cmd
}
