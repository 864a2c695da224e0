// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package cli

import (
	"database/sql"
	"fmt"
	"log/slog"
	"os"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/afero"

	"portfolio/internal/cache"
	"portfolio/internal/config"
	"portfolio/internal/database"
	"portfolio/internal/showcase"
	"portfolio/internal/storage"
	"portfolio/internal/store"
)

// newLogger builds the process logger: text in development, JSON otherwise.
func newLogger(cfg *config.Config) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.SlogLevel()}
	if cfg.IsDev() {
		return slog.New(slog.NewTextHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, opts))
}

// app holds the connections and stores shared by the commands.
type app struct {
	cfg    *config.Config
	db     *sql.DB
	valkey *redis.Client // nil when Valkey is disabled
	cache  cache.Store

	projects   *store.ProjectStore
	images     *store.ProjectImageStore
	categories *store.CategoryStore
	techs      *store.TechnologyStore
	contacts   *store.ContactStore

	pages    *cache.PageCache
	agg      *showcase.Aggregates
	showcase *showcase.Service
}

// openApp connects to PostgreSQL and the cache and builds the stores.
func openApp(cfg *config.Config) (*app, error) {
	db, err := database.Connect(cfg.DSN())
	if err != nil {
		return nil, err
	}

	a := &app{cfg: cfg, db: db}
	if cfg.ValkeyDisabled {
		slog.Warn("valkey disabled, using in-process cache")
		a.cache = cache.NewMemory()
	} else {
		a.valkey, err = cache.ConnectValkey(cfg.ValkeyAddr(), cfg.ValkeyPassword, 0)
		if err != nil {
			db.Close()
			return nil, err
		}
		a.cache = cache.NewValkey(a.valkey)
	}

	a.projects = store.NewProjectStore(db)
	a.images = store.NewProjectImageStore(db)
	a.categories = store.NewCategoryStore(db)
	a.techs = store.NewTechnologyStore(db)
	a.contacts = store.NewContactStore(db)

	a.pages = cache.NewPageCache(a.cache, cfg.PageCacheTTL)
	a.agg = showcase.NewAggregates(a.cache, a.projects, cfg.SidebarTTL)
	a.showcase = showcase.NewService(a.projects, a.categories, a.techs, a.agg, a.pages, store.NewCacheLogStore(db))
	return a, nil
}

// mediaStorage returns S3 storage when configured, local disk otherwise.
// local is nil when S3 is used.
func (a *app) mediaStorage() (st storage.Storage, local *storage.Local, err error) {
	cfg := a.cfg
	s3, err := storage.NewS3(cfg.S3Endpoint, cfg.S3Region, cfg.S3AccessKey, cfg.S3SecretKey, cfg.S3Bucket, cfg.S3PublicURL)
	if err != nil {
		return nil, nil, fmt.Errorf("init s3 storage: %w", err)
	}
	if s3 != nil {
		slog.Info("s3 storage configured", "endpoint", cfg.S3Endpoint, "bucket", cfg.S3Bucket)
		return s3, nil, nil
	}
	local, err = storage.NewLocal(afero.NewOsFs(), cfg.MediaDir, cfg.MediaURLPrefix)
	if err != nil {
		return nil, nil, fmt.Errorf("init local storage: %w", err)
	}
	slog.Info("local media storage configured", "dir", cfg.MediaDir)
	return local, local, nil
}

func (a *app) Close() {
	if a.valkey != nil {
		a.valkey.Close()
	}
	a.db.Close()
}
