// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package config handles application-wide settings and environment parsing.

It leverages 'caarlos0/env' to map OS environment variables into a strongly-typed
Go struct, providing early validation and default values.

Usage:

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}

Architecture:

  - Immutability: Once loaded, configuration is read-only.
  - DI-Friendly: Passed to core components (DB, Redis, book policy) via constructors.
  - Zero Hidden State: No global variables are used to store config.
*/
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Storage and cache backends.
const (
	DriverPostgres = "postgres"
	DriverRedis    = "redis"
	DriverMemory   = "memory"
)

// # Configuration Schema

// Config holds all runtime configuration for the catalog API server.
type Config struct {

	// Server settings
	ServerPort  string `env:"SERVER_PORT"  envDefault:"8080"`
	Environment string `env:"ENVIRONMENT"  envDefault:"development"`
	Debug       bool   `env:"DEBUG"        envDefault:"false"`

	// StoreDriver selects the book store: "postgres" or "memory".
	StoreDriver string `env:"STORE_DRIVER" envDefault:"postgres"`

	// CacheDriver selects the invalidation target: "redis" or "memory".
	CacheDriver string `env:"CACHE_DRIVER" envDefault:"redis"`

	// Relational Database (PostgreSQL)
	DatabaseURL string `env:"DATABASE_URL"`

	// MigrationPath is the filesystem path to the SQL migrations directory.
	MigrationPath string `env:"MIGRATION_PATH" envDefault:"./data/migrations"`

	// Key-Value Cache (Redis)
	RedisURL string `env:"REDIS_URL"`

	// Cross-Origin Resource Sharing
	AllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:","`

	// Book holds the catalog business policy.
	Book BookConfig `envPrefix:"BOOK_"`
}

// BookConfig carries the injectable data of the book validation rules.
type BookConfig struct {
	// BlockedTitleWords are rejected in any title, case-insensitively.
	BlockedTitleWords []string `env:"BLOCKED_TITLE_WORDS" envSeparator:"," envDefault:"badword,offensive,banned"`

	// ChildrenRestrictedWords are rejected in Children titles, case-insensitively.
	ChildrenRestrictedWords []string `env:"CHILDREN_RESTRICTED_WORDS" envSeparator:"," envDefault:"violence,horror,adult,death,kill,blood"`

	// DailyLimit caps the number of books created per UTC day.
	DailyLimit int `env:"DAILY_LIMIT" envDefault:"500"`

	// CacheKey is removed from the cache after each successful creation.
	CacheKey string `env:"CACHE_KEY" envDefault:"all_books"`
}

// # Configuration Loading

// Load parses environment variables into a [Config] struct.
func Load() (*Config, error) {

	// Initialize an empty config struct
	cfg := &Config{}

	// Use the 'env' package to map environment variables to struct fields.
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// validate enforces the cross-field requirements env tags cannot express.
func (c *Config) validate() error {
	switch c.StoreDriver {
	case DriverPostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("config: DATABASE_URL is required for store driver %q", c.StoreDriver)
		}
	case DriverMemory:
	default:
		return fmt.Errorf("config: unsupported STORE_DRIVER %q", c.StoreDriver)
	}

	switch c.CacheDriver {
	case DriverRedis:
		if c.RedisURL == "" {
			return fmt.Errorf("config: REDIS_URL is required for cache driver %q", c.CacheDriver)
		}
	case DriverMemory:
	default:
		return fmt.Errorf("config: unsupported CACHE_DRIVER %q", c.CacheDriver)
	}

	if c.Book.DailyLimit <= 0 {
		return fmt.Errorf("config: BOOK_DAILY_LIMIT must be positive, got %d", c.Book.DailyLimit)
	}

	return nil
}

// IsDevelopment reports whether the server is running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// Origins returns the configured CORS allow-list.
func (c *Config) Origins() []string {
	return c.AllowedOrigins
}
