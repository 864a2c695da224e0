// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"
	"github.com/spf13/cobra"

	"portfolio/internal/database"
	"portfolio/internal/notify"
	"portfolio/internal/store"
)

func newWorkerCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "worker",
		Short: "Run the contact notification worker",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := configFrom(cmd)
			if cfg.ValkeyDisabled {
				return errors.New("the worker needs Valkey; unset VALKEY_DISABLED")
			}

			db, err := database.Connect(cfg.DSN())
			if err != nil {
				return err
			}
			defer db.Close()

			srv := asynq.NewServer(
				notify.RedisOpt(cfg.ValkeyAddr(), cfg.ValkeyPassword, 0),
				asynq.Config{
					Concurrency:     cfg.WorkerConcurrency,
					ShutdownTimeout: 30 * time.Second,
					IsFailure:       func(err error) bool { return !notify.IsPermanent(err) },
					ErrorHandler: asynq.ErrorHandlerFunc(func(ctx context.Context, task *asynq.Task, err error) {
						slog.Error("task failed", "type", task.Type(), "error", err)
					}),
				},
			)

			mux := asynq.NewServeMux()
			notify.NewHandler(store.NewContactStore(db), notify.LogMailer{To: cfg.Profile.Email}).Register(mux)

			slog.Info("worker starting", "concurrency", cfg.WorkerConcurrency)
			// Run blocks until SIGINT or SIGTERM.
			if err := srv.Run(mux); err != nil {
				return fmt.Errorf("run worker: %w", err)
			}
			return nil
		},
	}
}
