// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package book

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/taibuivan/bookcatalog/internal/platform/apperr"
	"github.com/taibuivan/bookcatalog/internal/platform/constants"
	"github.com/taibuivan/bookcatalog/internal/platform/ctxutil"
	"github.com/taibuivan/bookcatalog/internal/platform/metrics"
	"github.com/taibuivan/bookcatalog/pkg/uuid"
)

// MetricsRecorder receives one measurement per creation attempt.
type MetricsRecorder interface {
	ObserveCreation(metrics.Creation)
}

type noopRecorder struct{}

func (noopRecorder) ObserveCreation(metrics.Creation) {}

// Service orchestrates book creation.
type Service struct {
	repo      Repository
	cache     Cache
	validator *Validator
	recorder  MetricsRecorder

	policy   Policy
	cacheKey string
	now      func() time.Time
	newID    func() string
}

// Option customises a [Service].
type Option func(*Service)

// WithPolicy replaces [DefaultPolicy].
func WithPolicy(policy Policy) Option {
	return func(s *Service) { s.policy = policy }
}

// WithClock sets the source of creation and evaluation timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithIDGenerator sets how new book ids are minted.
func WithIDGenerator(newID func() string) Option {
	return func(s *Service) { s.newID = newID }
}

// WithMetrics sets the creation metrics sink.
func WithMetrics(recorder MetricsRecorder) Option {
	return func(s *Service) { s.recorder = recorder }
}

// WithCacheKey sets the key removed after each creation.
func WithCacheKey(key string) Option {
	return func(s *Service) { s.cacheKey = key }
}

// NewService constructs a new [Service].
func NewService(repo Repository, cache Cache, opts ...Option) *Service {
	service := &Service{
		repo:     repo,
		cache:    cache,
		recorder: noopRecorder{},
		policy:   DefaultPolicy(),
		cacheKey: constants.CacheKeyAllBooks,
		now:      time.Now,
		newID:    uuid.New,
	}
	for _, opt := range opts {
		opt(service)
	}

	service.validator = NewValidator(repo, service.policy, service.now)
	return service
}

// CreateBook validates req, stores it as a new book and returns its profile.
//
// Errors:
//   - CONFLICT when the ISBN is already stored, even if other rules also
//     failed; nothing is written.
//   - VALIDATION_ERROR when any other rule fails; nothing is written.
//   - the context error when ctx ends before the book is stored.
//   - INTERNAL_ERROR when the store fails.
//
// Once the book is stored, cache invalidation runs even if ctx is canceled,
// and its failure is logged without failing the request.
func (s *Service) CreateBook(ctx context.Context, req *CreateRequest) (*Profile, error) {
	logger := ctxutil.GetLogger(ctx)
	startedAt := time.Now()

	measurement := metrics.Creation{
		OperationID: ctxutil.GetRequestID(ctx),
		Title:       req.Title,
		ISBN:        req.ISBN,
		Category:    req.Category.String(),
	}
	defer func() {
		measurement.Total = time.Since(startedAt)
		s.recorder.ObserveCreation(measurement)
		logger.Info("book_creation_metrics", slog.Any("metrics", measurement))
	}()

	logger.Info("book_creation_started",
		slog.String("title", req.Title),
		slog.String("author", req.Author),
		slog.String("category", req.Category.String()),
		slog.String("isbn", req.ISBN),
	)

	// 1. Validate
	validationStart := time.Now()
	err := s.validator.Validate(ctx, req)
	measurement.Validation = time.Since(validationStart)
	if err != nil {
		appError := apperr.As(err)
		if appError != nil && appError.Code == apperr.CodeValidation {
			logger.Warn("book_validation_failed", slog.Any("errors", appError.Fields()))

			// A stored ISBN is a conflict, not a field error.
			if slices.Contains(appError.Fields()[FieldISBN], MessageISBNTaken) {
				return nil, s.isbnConflict(logger, &measurement, req.ISBN)
			}
		}
		measurement.ErrorReason = failureReason(err)
		return nil, err
	}

	// 2. Re-check the ISBN right before writing
	exists, err := s.repo.ExistsByISBN(ctx, req.ISBN)
	if err != nil {
		measurement.ErrorReason = failureReason(err)
		return nil, err
	}
	if exists {
		return nil, s.isbnConflict(logger, &measurement, req.ISBN)
	}

	if err := ctx.Err(); err != nil {
		measurement.ErrorReason = metrics.OutcomeCanceled
		return nil, err
	}

	// 3. Persist
	book := NewBook(req, s.newID(), s.now())

	persistStart := time.Now()
	err = s.repo.Create(ctx, book)
	measurement.Persistence = time.Since(persistStart)
	if err != nil {
		measurement.ErrorReason = failureReason(err)
		logger.Error("book_persist_failed", slog.String("isbn", req.ISBN), slog.Any("error", err))
		return nil, err
	}

	// 4. Invalidate list views, detached from the caller
	if err := s.cache.Remove(context.WithoutCancel(ctx), s.cacheKey); err != nil {
		logger.Warn("book_cache_invalidation_failed", slog.String("key", s.cacheKey), slog.Any("error", err))
	} else {
		logger.Info("book_cache_invalidated", slog.String("key", s.cacheKey))
	}

	// 5. Project
	profile := NewProfile(book, s.now())
	measurement.Success = true

	logger.Info("book_created",
		slog.String("book_id", book.ID),
		slog.String("isbn", book.ISBN),
	)

	return profile, nil
}

func (s *Service) isbnConflict(logger *slog.Logger, measurement *metrics.Creation, isbn string) error {
	measurement.ErrorReason = metrics.OutcomeConflict
	logger.Warn("book_isbn_conflict", slog.String("isbn", isbn))
	return apperr.Conflict(fmt.Sprintf("A book with ISBN '%s' already exists.", isbn))
}

func failureReason(err error) string {
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return metrics.OutcomeCanceled
	case apperr.IsCode(err, apperr.CodeValidation):
		return metrics.OutcomeValidationFailed
	case apperr.IsCode(err, apperr.CodeConflict):
		return metrics.OutcomeConflict
	default:
		return metrics.OutcomeStoreError
	}
}
