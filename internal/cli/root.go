// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package cli implements the portfolio command line: the web server, the
// notification worker, migrations and the maintenance tools.
package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"portfolio/internal/config"
)

type cfgKey struct{}

// NewRootCmd builds the command tree. Configuration is loaded once before
// any subcommand runs.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "portfolio",
		Short: "Portfolio website and its maintenance tools",
		Long: `Serves the portfolio site and manages its content.

Usage:

	portfolio serve
	portfolio load projects.json
	portfolio projects publish my-project
`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			slog.SetDefault(newLogger(cfg))
			cmd.SetContext(context.WithValue(cmd.Context(), cfgKey{}, cfg))
			return nil
		},
	}

	root.AddCommand(
		newServeCmd(),
		newMigrateCmd(),
		newWorkerCmd(),
		newLoadCmd(),
		newProficiencyCmd(),
		newGalleryCmd(),
		newMessagesCmd(),
		newProjectsCmd(),
		newCacheCmd(),
	)
	return root
}

// Execute runs the command line.
func Execute(ctx context.Context) error {
	return NewRootCmd().ExecuteContext(ctx)
}

func configFrom(cmd *cobra.Command) *config.Config {
	cfg, _ := cmd.Context().Value(cfgKey{}).(*config.Config)
	return cfg
}

// withApp opens the shared connections for the duration of fn.
func withApp(cmd *cobra.Command, fn func(a *app) error) error {
	a, err := openApp(configFrom(cmd))
	if err != nil {
		return fmt.Errorf("open application: %w", err)
	}
	defer a.Close()
	return fn(a)
}
