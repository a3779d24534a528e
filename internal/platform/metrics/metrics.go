// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package metrics exposes the prometheus collectors of the catalog API.

Book creation is measured per stage (validation, persistence, total) and
counted per outcome. The same record is logged as one structured event so a
single request can be traced without scraping.
*/
package metrics

import (
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "bookcatalog"

// Creation outcomes.
const (
	OutcomeCreated          = "created"
	OutcomeValidationFailed = "validation_failed"
	OutcomeConflict         = "isbn_conflict"
	OutcomeStoreError       = "store_error"
	OutcomeCanceled         = "canceled"
)

// Creation is the measurement of one create-book request.
type Creation struct {
	OperationID string
	Title       string
	ISBN        string
	Category    string

	Validation  time.Duration
	Persistence time.Duration
	Total       time.Duration

	Success     bool
	ErrorReason string
}

// Outcome returns the counter label for the measurement.
func (c Creation) Outcome() string {
	if c.Success {
		return OutcomeCreated
	}
	if c.ErrorReason == "" {
		return OutcomeStoreError
	}
	return c.ErrorReason
}

// LogValue implements [slog.LogValuer].
func (c Creation) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.String("operation_id", c.OperationID),
		slog.String("title", c.Title),
		slog.String("isbn", c.ISBN),
		slog.String("category", c.Category),
		slog.Float64("validation_ms", milliseconds(c.Validation)),
		slog.Float64("persistence_ms", milliseconds(c.Persistence)),
		slog.Float64("total_ms", milliseconds(c.Total)),
		slog.Bool("success", c.Success),
	}
	if c.ErrorReason != "" {
		attrs = append(attrs, slog.String("error_reason", c.ErrorReason))
	}
	return slog.GroupValue(attrs...)
}

// BookMetrics holds the collectors for book creation.
type BookMetrics struct {
	creations *prometheus.CounterVec
	durations *prometheus.HistogramVec
}

// NewBookMetrics registers the book collectors on registerer.
func NewBookMetrics(registerer prometheus.Registerer) *BookMetrics {
	factory := promauto.With(registerer)

	return &BookMetrics{
		creations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "book",
			Name:      "creations_total",
			Help:      "Create-book requests by outcome.",
		}, []string{"outcome"}),
		durations: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "book",
			Name:      "creation_stage_seconds",
			Help:      "Duration of each create-book stage.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"stage"}),
	}
}

// ObserveCreation records one measurement.
func (m *BookMetrics) ObserveCreation(c Creation) {
	m.creations.WithLabelValues(c.Outcome()).Inc()

	m.durations.WithLabelValues("validation").Observe(c.Validation.Seconds())
	if c.Persistence > 0 {
		m.durations.WithLabelValues("persistence").Observe(c.Persistence.Seconds())
	}
	m.durations.WithLabelValues("total").Observe(c.Total.Seconds())
}

func milliseconds(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
