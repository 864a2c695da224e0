// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package cli

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"
	"github.com/spf13/cobra"

	"portfolio/internal/contact"
	"portfolio/internal/database"
	"portfolio/internal/handlers"
	"portfolio/internal/i18n"
	"portfolio/internal/middleware"
	"portfolio/internal/notify"
	"portfolio/internal/render"
	"portfolio/internal/router"
	"portfolio/web"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(a *app) error {
				return serve(cmd.Context(), a)
			})
		},
	}
}

func serve(ctx context.Context, a *app) error {
	cfg := a.cfg
	slog.Info("configuration loaded", "env", cfg.Env, "addr", cfg.Addr())

	if err := database.Migrate(a.db); err != nil {
		return err
	}
	// Seed development data (no-op if data already exists).
	if cfg.IsDev() {
		if err := database.Seed(a.db); err != nil {
			return err
		}
	}

	defaultLang, ok := i18n.Parse(cfg.DefaultLang)
	if !ok {
		return fmt.Errorf("DEFAULT_LANG %q is not a supported language", cfg.DefaultLang)
	}

	p := cfg.Profile
	renderer, err := render.New(cfg.IsDev(), render.Site{
		Name:     p.Name,
		Title:    p.Title,
		Baseline: p.Baseline,
		Location: p.Location,
		Email:    p.Email,
		GitHub:   p.GitHub,
		LinkedIn: p.LinkedIn,
		Years:    p.Years,
		URL:      cfg.SiteURL,
	})
	if err != nil {
		return fmt.Errorf("init template renderer: %w", err)
	}

	// Contact notifications go through the asynq queue on the same Valkey.
	var queue *notify.Queue
	if a.valkey != nil {
		client := asynq.NewClient(notify.RedisOpt(cfg.ValkeyAddr(), cfg.ValkeyPassword, 0))
		defer client.Close()
		queue = notify.NewQueue(client)
	} else {
		slog.Warn("valkey disabled, contact notifications are not queued")
	}

	_, local, err := a.mediaStorage()
	if err != nil {
		return err
	}

	public := handlers.NewPublic(renderer, a.projects, a.techs, a.showcase, a.agg,
		contact.NewIntake(a.contacts, queue), a.pages,
		handlers.Options{
			SiteURL:       cfg.SiteURL,
			PageSize:      cfg.PageSize,
			SimilarLimit:  cfg.SimilarLimit,
			FeaturedLimit: cfg.FeaturedLimit,
		})

	static, err := fs.Sub(web.StaticFS, "static")
	if err != nil {
		return fmt.Errorf("static assets: %w", err)
	}

	opts := router.Options{
		Public:        public,
		ContactLimit:  middleware.NewRateLimiter(a.cache, "contact_form", cfg.ContactRateLimit, cfg.ContactRateWindow),
		Static:        static,
		MediaPrefix:   cfg.MediaURLPrefix,
		DefaultLang:   defaultLang,
		Dev:           cfg.IsDev(),
		SecureCookies: cfg.SecureCookie || !cfg.IsDev(),
		Maintenance:   cfg.Maintenance,
	}
	if local != nil {
		opts.Media = local.Handler()
	}
	if cfg.Maintenance {
		slog.Warn("maintenance mode enabled")
	}

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      router.New(opts),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server starting", "addr", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
		slog.Info("shutdown signal received")
	}

	// Give active requests up to 30 seconds to complete.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	slog.Info("server stopped gracefully")
	return nil
}
