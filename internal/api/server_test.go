// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package api_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/bookcatalog/internal/api"
	"github.com/taibuivan/bookcatalog/internal/core/book"
	"github.com/taibuivan/bookcatalog/internal/platform/config"
	"github.com/taibuivan/bookcatalog/internal/platform/metrics"
)

func newTestServer(t *testing.T, checks ...api.HealthCheck) http.Handler {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	registry := prometheus.NewRegistry()

	service := book.NewService(book.NewMemoryRepository(), book.NewMemoryCache(),
		book.WithMetrics(metrics.NewBookMetrics(registry)),
	)
	liveness, readiness := api.NewHealthHandlers(logger, checks...)

	cfg := &config.Config{ServerPort: "0", Environment: "development"}
	server := api.NewServer(ctx, cfg, logger, api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Metrics:   promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		Book:      book.NewHandler(service),
	})
	return server.Handler()
}

/*
TestServer_CreateBook reaches the book handler through the full middleware chain
and echoes the client's correlation id.
*/
func TestServer_CreateBook(t *testing.T) {
	handler := newTestServer(t)

	published := time.Now().UTC().AddDate(-1, 0, 0).Format(time.RFC3339)
	body := `{"title":"Clean Code","author":"Robert Martin","isbn":"9780132350884","category":"NonFiction","price":35.5,"publishedDate":"` + published + `"}`

	request := httptest.NewRequest(http.MethodPost, "/api/v1/books", strings.NewReader(body))
	request.Header.Set("X-Correlation-Id", "corr-123")
	request.RemoteAddr = "10.0.0.1:1234"
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)

	require.Equal(t, http.StatusCreated, recorder.Code, recorder.Body.String())
	assert.Equal(t, "corr-123", recorder.Header().Get("X-Correlation-Id"))
	assert.True(t, strings.HasPrefix(recorder.Header().Get("Location"), "/api/v1/books/"))

	// The creation shows up on /metrics.
	metricsRecorder := httptest.NewRecorder()
	handler.ServeHTTP(metricsRecorder, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Contains(t, metricsRecorder.Body.String(), `bookcatalog_book_creations_total{outcome="created"} 1`)
}

/*
TestReadiness reports each registered dependency.
*/
func TestReadiness(t *testing.T) {
	tests := []struct {
		name   string
		checks []api.HealthCheck
		status int
		body   string
	}{
		{"no_checks", nil, http.StatusOK, `"ready"`},
		{
			"healthy",
			[]api.HealthCheck{{Name: "postgres", Check: func(context.Context) error { return nil }}},
			http.StatusOK, `"postgres"`,
		},
		{
			"degraded",
			[]api.HealthCheck{{Name: "redis", Check: func(context.Context) error { return errors.New("dial tcp: refused") }}},
			http.StatusServiceUnavailable, `"degraded"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := httptest.NewRecorder()
			newTestServer(t, tt.checks...).ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/ready", nil))

			assert.Equal(t, tt.status, recorder.Code)
			assert.Contains(t, recorder.Body.String(), tt.body)
		})
	}
}

/*
TestLiveness always answers ok.
*/
func TestLiveness(t *testing.T) {
	recorder := httptest.NewRecorder()
	newTestServer(t).ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.JSONEq(t, `{"data":{"status":"ok"}}`, recorder.Body.String())
}
