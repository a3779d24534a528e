// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package book_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/bookcatalog/internal/core/book"
	"github.com/taibuivan/bookcatalog/internal/platform/apperr"
	"github.com/taibuivan/bookcatalog/internal/platform/metrics"
)

// fixedNow is the evaluation instant of every test in this package.
var fixedNow = time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)

func clock() time.Time { return fixedNow }

var errStoreDown = errors.New("store down")

// validRequest returns a NonFiction submission that passes every rule.
func validRequest() *book.CreateRequest {
	return &book.CreateRequest{
		Title:         "The Go Programming Language",
		Author:        "Alan Donovan",
		ISBN:          "978-0-13-419044-0",
		Category:      book.CategoryNonFiction,
		Price:         decimal.RequireFromString("44.99"),
		PublishedDate: fixedNow.AddDate(-1, 0, 0),
		StockQuantity: 3,
	}
}

// fieldErrors extracts the field → messages map of a validation error.
func fieldErrors(t *testing.T, err error) map[string][]string {
	t.Helper()

	appError := apperr.As(err)
	require.NotNil(t, appError, "expected an AppError, got %v", err)
	require.Equal(t, apperr.CodeValidation, appError.Code)
	return appError.Fields()
}

// # Lookup stub

type stubLookup struct {
	isbnTaken  bool
	titleTaken bool
	count      int
	err        error
}

func (s stubLookup) ExistsByISBN(context.Context, string) (bool, error) {
	return s.isbnTaken, s.err
}

func (s stubLookup) ExistsByTitleAuthor(context.Context, string, string) (bool, error) {
	return s.titleTaken, s.err
}

func (s stubLookup) CountCreatedSince(context.Context, time.Time) (int, error) {
	return s.count, s.err
}

// # Repository doubles

// racingRepository hides ISBNs from the validator's first lookup, as if a
// concurrent request stored the same ISBN in between.
type racingRepository struct {
	*book.MemoryRepository

	mu    sync.Mutex
	calls int
}

func (r *racingRepository) ExistsByISBN(ctx context.Context, isbn string) (bool, error) {
	r.mu.Lock()
	r.calls++
	first := r.calls == 1
	r.mu.Unlock()

	if first {
		return false, nil
	}
	return r.MemoryRepository.ExistsByISBN(ctx, isbn)
}

// failingRepository accepts every lookup and fails on Create.
type failingRepository struct {
	*book.MemoryRepository
}

func (failingRepository) Create(context.Context, *book.Book) error {
	return apperr.Internal(errStoreDown)
}

// cancelingRepository cancels the request right after a successful Create.
type cancelingRepository struct {
	*book.MemoryRepository
	cancel context.CancelFunc
}

func (r cancelingRepository) Create(ctx context.Context, b *book.Book) error {
	err := r.MemoryRepository.Create(ctx, b)
	r.cancel()
	return err
}

// # Cache doubles

type recordingCache struct {
	mu      sync.Mutex
	removed []string
	ctxErrs []error
	err     error
}

func (c *recordingCache) Remove(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.removed = append(c.removed, key)
	c.ctxErrs = append(c.ctxErrs, ctx.Err())
	return c.err
}

// # Metrics double

type recordingMetrics struct {
	mu  sync.Mutex
	got []metrics.Creation
}

func (m *recordingMetrics) ObserveCreation(c metrics.Creation) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.got = append(m.got, c)
}

func (m *recordingMetrics) last(t *testing.T) metrics.Creation {
	t.Helper()
	m.mu.Lock()
	defer m.mu.Unlock()
	require.NotEmpty(t, m.got)
	return m.got[len(m.got)-1]
}
