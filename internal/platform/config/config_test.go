// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/bookcatalog/internal/platform/config"
)

/*
TestLoad_Defaults verifies the book policy defaults with in-memory drivers.
*/
func TestLoad_Defaults(t *testing.T) {
	t.Setenv("STORE_DRIVER", "memory")
	t.Setenv("CACHE_DRIVER", "memory")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.ServerPort)
	assert.True(t, cfg.IsDevelopment())
	assert.Equal(t, []string{"badword", "offensive", "banned"}, cfg.Book.BlockedTitleWords)
	assert.Equal(t, []string{"violence", "horror", "adult", "death", "kill", "blood"}, cfg.Book.ChildrenRestrictedWords)
	assert.Equal(t, 500, cfg.Book.DailyLimit)
	assert.Equal(t, "all_books", cfg.Book.CacheKey)
}

/*
TestLoad_Overrides checks that prefixed book settings are read from the environment.
*/
func TestLoad_Overrides(t *testing.T) {
	t.Setenv("STORE_DRIVER", "memory")
	t.Setenv("CACHE_DRIVER", "memory")
	t.Setenv("BOOK_BLOCKED_TITLE_WORDS", "spoiler,leak")
	t.Setenv("BOOK_DAILY_LIMIT", "10")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example,https://b.example")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, []string{"spoiler", "leak"}, cfg.Book.BlockedTitleWords)
	assert.Equal(t, 10, cfg.Book.DailyLimit)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Origins())
}

/*
TestLoad_DriverRequirements ensures each driver demands its connection URL.
*/
func TestLoad_DriverRequirements(t *testing.T) {
	tests := []struct {
		name  string
		store string
		cache string
	}{
		{"postgres_without_url", "postgres", "memory"},
		{"redis_without_url", "memory", "redis"},
		{"unknown_store", "sqlite", "memory"},
		{"unknown_cache", "memory", "memcached"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("STORE_DRIVER", tt.store)
			t.Setenv("CACHE_DRIVER", tt.cache)
			t.Setenv("DATABASE_URL", "")
			t.Setenv("REDIS_URL", "")

			_, err := config.Load()
			assert.Error(t, err)
		})
	}
}
