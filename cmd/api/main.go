// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command api is the entry point for the book catalog HTTP API server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Open the book store (PostgreSQL + migrations, or memory).
//  4. Open the list cache (Redis, or memory).
//  5. Wire metrics, the book service and HTTP handlers.
//  6. Start HTTP server with graceful shutdown.
//
// No business logic lives here. All wiring is explicit constructor injection.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/shopspring/decimal"

	"github.com/taibuivan/bookcatalog/internal/api"
	"github.com/taibuivan/bookcatalog/internal/core/book"
	"github.com/taibuivan/bookcatalog/internal/platform/config"
	"github.com/taibuivan/bookcatalog/internal/platform/constants"
	"github.com/taibuivan/bookcatalog/internal/platform/metrics"
	"github.com/taibuivan/bookcatalog/internal/platform/migration"
	pgstore "github.com/taibuivan/bookcatalog/internal/platform/postgres"
	redisstore "github.com/taibuivan/bookcatalog/internal/platform/redis"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	log := newLogger(slog.LevelInfo)
	slog.SetDefault(log)

	log.Info("service_initializing", slog.String("version", constants.AppVersion))

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		log = newLogger(slog.LevelDebug)
		slog.SetDefault(log)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
		slog.String("store_driver", cfg.StoreDriver),
		slog.String("cache_driver", cfg.CacheDriver),
	)

	// Prices are JSON numbers on the wire.
	decimal.MarshalJSONWithoutQuotes = true

	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer startupCancel()

	var checks []api.HealthCheck

	// ── 3. Book store ─────────────────────────────────────────────────────
	var repository book.Repository
	switch cfg.StoreDriver {
	case config.DriverPostgres:
		pool, err := pgstore.NewPool(startupCtx, cfg.DatabaseURL, log)
		must(log, err, "connect to postgres")
		defer func() {
			log.Info("closing_postgres_pool")
			pool.Close()
		}()

		must(log, migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log), "run migrations")

		repository = book.NewPostgresRepository(pool)
		checks = append(checks, api.HealthCheck{Name: "postgres", Check: func(ctx context.Context) error {
			return pgstore.Ping(ctx, pool)
		}})
	default:
		log.Warn("memory_store_enabled")
		repository = book.NewMemoryRepository()
	}

	// ── 4. List cache ─────────────────────────────────────────────────────
	var cache book.Cache
	switch cfg.CacheDriver {
	case config.DriverRedis:
		rdb, err := redisstore.NewClient(startupCtx, cfg.RedisURL, log)
		must(log, err, "connect to redis")
		defer func() {
			log.Info("closing_redis_client")
			if closeErr := rdb.Close(); closeErr != nil {
				log.Error("redis_close_failed", slog.Any("error", closeErr))
			}
		}()

		cache = book.NewRedisCache(rdb)
		checks = append(checks, api.HealthCheck{Name: "redis", Check: func(ctx context.Context) error {
			return redisstore.Ping(ctx, rdb)
		}})
	default:
		cache = book.NewMemoryCache()
	}

	// ── 5. Domain Wiring ──────────────────────────────────────────────────
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	bookService := book.NewService(repository, cache,
		book.WithPolicy(book.Policy{
			BlockedTitleWords:       cfg.Book.BlockedTitleWords,
			ChildrenRestrictedWords: cfg.Book.ChildrenRestrictedWords,
			DailyLimit:              cfg.Book.DailyLimit,
		}),
		book.WithCacheKey(cfg.Book.CacheKey),
		book.WithMetrics(metrics.NewBookMetrics(registry)),
	)

	liveness, readiness := api.NewHealthHandlers(log, checks...)

	// ── 6. HTTP Server ────────────────────────────────────────────────────
	serverCtx, serverCancel := context.WithCancel(context.Background())
	defer serverCancel()

	server := api.NewServer(serverCtx, cfg, log, api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Metrics:   promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		Book:      book.NewHandler(bookService),
	})

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case sig := <-quit:
		log.Info("shutdown_signal_received", slog.String("signal", sig.String()))
	case err := <-serverErr:
		log.Error("server_startup_error", slog.Any("error", err))
	}

	log.Info("server_shutting_down", slog.Duration("timeout", constants.ShutdownTimeout))

	if err := server.Shutdown(constants.ShutdownTimeout); err != nil {
		log.Error("shutdown_error", slog.Any("error", err))
		return
	}

	log.Info("server_stopped_cleanly")
}

// newLogger builds the JSON logger tagged with the application name.
func newLogger(level slog.Level) *slog.Logger {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	return slog.New(handler).With(slog.String("app", constants.AppName))
}

// must logs a structured fatal error and terminates the process if err is non-nil.
// It is only used during startup wiring.
func must(log *slog.Logger, err error, step string) {
	if err != nil {
		log.Error("startup_failure",
			slog.String("step", step),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
