// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package dberr provides a bridge between low-level database errors and
// higher-level application errors.
package dberr

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/taibuivan/bookcatalog/internal/platform/apperr"
)

var (
	// ErrNotFound is a standard error returned when a queried row doesn't exist.
	ErrNotFound = apperr.NotFound("Resource")
)

// Wrap inspects a database error and wraps it into a meaningful [apperr.AppError].
// It hides internal database details from the client while classifying the error type.
//
// Context cancellation is returned untouched so callers can tell an aborted
// request apart from a failing store.
func Wrap(err error, action string) error {
	if err == nil {
		return nil
	}

	// 1. Caller gave up
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}

	// 2. Not Found mapping
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}

	// 3. Unique constraint violations surface as conflicts
	var pgError *pgconn.PgError
	if errors.As(err, &pgError) && pgError.Code == pgerrcode.UniqueViolation {
		conflict := apperr.Conflict(conflictMessage(pgError.ConstraintName))
		conflict.Cause = fmt.Errorf("%s: %w", action, err)
		return conflict
	}

	// 4. Unknown query errors become Internal Server Errors
	return apperr.Internal(fmt.Errorf("%s: %w", action, err))
}

// conflictMessage renders a client-safe message for a violated constraint.
func conflictMessage(constraint string) string {
	if message, ok := constraintMessages[constraint]; ok {
		return message
	}
	return "Resource already exists"
}

// constraintMessages maps unique indexes to client messages.
var constraintMessages = map[string]string{
	"book_isbn_key":         "A book with this ISBN already exists.",
	"book_title_author_key": "A book with this title already exists for this author.",
}
