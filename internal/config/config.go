// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package config handles application configuration loading from environment
// variables. It provides a centralized Config struct used across the application.
package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Config holds all application configuration values loaded from the environment.
type Config struct {
	// Server settings
	Host     string `env:"APP_HOST" envDefault:"0.0.0.0"`
	Port     string `env:"APP_PORT" envDefault:"8080" validate:"required,numeric"`
	Env      string `env:"APP_ENV" envDefault:"development" validate:"oneof=development production testing"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info" validate:"oneof=debug info warn error"`

	// PostgreSQL connection
	DBHost     string `env:"POSTGRES_HOST" envDefault:"localhost"`
	DBPort     string `env:"POSTGRES_PORT" envDefault:"5432"`
	DBUser     string `env:"POSTGRES_USER" envDefault:"portfolio"`
	DBPassword string `env:"POSTGRES_PASSWORD" envDefault:"changeme"`
	DBName     string `env:"POSTGRES_DB" envDefault:"portfolio"`

	// Valkey (Redis-compatible cache). When disabled, an in-process
	// cache is used instead, which is only correct for a single instance.
	ValkeyHost     string `env:"VALKEY_HOST" envDefault:"localhost"`
	ValkeyPort     string `env:"VALKEY_PORT" envDefault:"6379"`
	ValkeyPassword string `env:"VALKEY_PASSWORD"`
	ValkeyDisabled bool   `env:"VALKEY_DISABLED" envDefault:"false"`

	// S3-compatible media storage. Local disk is used when S3Endpoint is empty.
	S3Endpoint     string `env:"S3_ENDPOINT"`
	S3Region       string `env:"S3_REGION" envDefault:"fsn1"`
	S3AccessKey    string `env:"S3_ACCESS_KEY"`
	S3SecretKey    string `env:"S3_SECRET_KEY"`
	S3Bucket       string `env:"S3_BUCKET" envDefault:"portfolio-media"`
	S3PublicURL    string `env:"S3_PUBLIC_URL"`
	MediaDir       string `env:"MEDIA_DIR" envDefault:"media"`
	MediaURLPrefix string `env:"MEDIA_URL_PREFIX" envDefault:"/media"`

	// Public site
	SiteURL      string `env:"SITE_URL" envDefault:"http://localhost:8080" validate:"required,url"`
	Profile      Profile
	DefaultLang  string `env:"DEFAULT_LANG" envDefault:"fr"`
	Maintenance  bool   `env:"MAINTENANCE_MODE" envDefault:"false"`
	SecureCookie bool   `env:"SECURE_COOKIES" envDefault:"false"`

	// Project showcase
	PageSize      int           `env:"PAGE_SIZE" envDefault:"12" validate:"gte=1,lte=100"`
	SimilarLimit  int           `env:"SIMILAR_LIMIT" envDefault:"3" validate:"gte=0,lte=20"`
	SidebarTTL    time.Duration `env:"SIDEBAR_CACHE_TTL" envDefault:"30m"`
	PageCacheTTL  time.Duration `env:"PAGE_CACHE_TTL" envDefault:"15m"`
	ImageMaxWidth int           `env:"IMAGE_MAX_WIDTH" envDefault:"1920" validate:"gte=1"`
	ImageQuality  int           `env:"IMAGE_QUALITY" envDefault:"85" validate:"gte=1,lte=100"`
	FeaturedLimit int           `env:"FEATURED_LIMIT" envDefault:"4" validate:"gte=0"`

	// Contact intake
	ContactRateLimit  int           `env:"CONTACT_RATE_LIMIT" envDefault:"3" validate:"gte=1"`
	ContactRateWindow time.Duration `env:"CONTACT_RATE_WINDOW" envDefault:"1h"`

	// Background worker
	WorkerConcurrency int `env:"WORKER_CONCURRENCY" envDefault:"5" validate:"gte=1,lte=1000"`
}

// Profile is the site owner's public identity shown on the home and about pages.
type Profile struct {
	Name     string `env:"PROFILE_NAME" envDefault:"Portfolio Owner"`
	Title    string `env:"PROFILE_TITLE" envDefault:"Software Developer"`
	Baseline string `env:"PROFILE_BASELINE" envDefault:"I build reliable web applications."`
	Location string `env:"PROFILE_LOCATION"`
	Email    string `env:"PROFILE_EMAIL" validate:"omitempty,email"`
	GitHub   string `env:"PROFILE_GITHUB" validate:"omitempty,url"`
	LinkedIn string `env:"PROFILE_LINKEDIN" validate:"omitempty,url"`
	Years    int    `env:"PROFILE_YEARS" envDefault:"3"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Load reads configuration from environment variables, applying defaults
// for development where appropriate. A .env file in the working directory
// is loaded first if present. Returns an error if critical values are
// missing in production mode.
func Load() (*Config, error) {
	if err := godotenv.Load(); err == nil {
		slog.Debug("loaded .env file")
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}
	cfg.SiteURL = strings.TrimRight(cfg.SiteURL, "/")

	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	if cfg.Env == "production" {
		if cfg.DBPassword == "changeme" {
			return nil, fmt.Errorf("POSTGRES_PASSWORD must be set in production")
		}
	}

	return cfg, nil
}

// DSN returns the PostgreSQL connection string.
func (c *Config) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName,
	)
}

// Addr returns the server listen address (host:port).
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

// ValkeyAddr returns the Valkey address (host:port).
func (c *Config) ValkeyAddr() string {
	return fmt.Sprintf("%s:%s", c.ValkeyHost, c.ValkeyPort)
}

// IsDev returns true if the application is running in development mode.
func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// SlogLevel maps LogLevel onto a slog.Level.
func (c *Config) SlogLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
