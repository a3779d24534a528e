// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package book

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // dialect registration
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/bookcatalog/internal/platform/database/schema"
	"github.com/taibuivan/bookcatalog/internal/platform/dberr"
)

const dialectPostgres = "postgres"

var (
	bookTable = goqu.S(schema.CatalogBook.Schema).Table(schema.CatalogBook.Table)
	builder   = goqu.Dialect(dialectPostgres)
)

// PostgresRepository implements [Repository] on the catalog.book table.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository constructs a new [PostgresRepository].
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// Create inserts book. A unique index violation surfaces as a CONFLICT error.
func (r *PostgresRepository) Create(ctx context.Context, book *Book) error {
	query, args, err := buildInsertQuery(book)
	if err != nil {
		return fmt.Errorf("book: build insert: %w", err)
	}

	_, err = r.pool.Exec(ctx, query, args...)
	return dberr.Wrap(err, "create_book")
}

// ExistsByISBN reports whether a book with the exact submitted isbn is stored.
func (r *PostgresRepository) ExistsByISBN(ctx context.Context, isbn string) (bool, error) {
	return r.exists(ctx, "exists_book_by_isbn", goqu.Ex{schema.CatalogBook.ISBN: isbn})
}

// ExistsByTitleAuthor reports whether the author already has a book with this title.
func (r *PostgresRepository) ExistsByTitleAuthor(ctx context.Context, title, author string) (bool, error) {
	return r.exists(ctx, "exists_book_by_title_author", goqu.Ex{
		schema.CatalogBook.Title:  title,
		schema.CatalogBook.Author: author,
	})
}

// CountCreatedSince counts the books whose createdat is at or after since.
func (r *PostgresRepository) CountCreatedSince(ctx context.Context, since time.Time) (int, error) {
	query, args, err := buildCountCreatedSinceQuery(since)
	if err != nil {
		return 0, fmt.Errorf("book: build count: %w", err)
	}

	var count int64
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, dberr.Wrap(err, "count_books_created_since")
	}
	return int(count), nil
}

func (r *PostgresRepository) exists(ctx context.Context, action string, where goqu.Ex) (bool, error) {
	query, args, err := buildExistsQuery(where)
	if err != nil {
		return false, fmt.Errorf("book: build %s: %w", action, err)
	}

	var one int
	err = r.pool.QueryRow(ctx, query, args...).Scan(&one)
	switch {
	case errors.Is(err, pgx.ErrNoRows):
		return false, nil
	case err != nil:
		return false, dberr.Wrap(err, action)
	}
	return true, nil
}

// # Query Builders

func buildInsertQuery(book *Book) (string, []any, error) {
	columns := schema.CatalogBook

	var cover any
	if book.CoverImageURL != nil {
		cover = *book.CoverImageURL
	}

	return builder.
		Insert(bookTable).
		Rows(goqu.Record{
			columns.ID:            book.ID,
			columns.Title:         book.Title,
			columns.Author:        book.Author,
			columns.ISBN:          book.ISBN,
			columns.Category:      book.Category.String(),
			columns.Price:         book.Price.String(),
			columns.PublishedDate: book.PublishedDate.UTC(),
			columns.CoverImageURL: cover,
			columns.StockQuantity: book.StockQuantity,
			columns.IsAvailable:   book.IsAvailable,
			columns.CreatedAt:     book.CreatedAt.UTC(),
		}).
		Prepared(true).
		ToSQL()
}

func buildExistsQuery(where goqu.Ex) (string, []any, error) {
	return builder.
		From(bookTable).
		Select(goqu.L("1")).
		Where(where).
		Limit(1).
		Prepared(true).
		ToSQL()
}

func buildCountCreatedSinceQuery(since time.Time) (string, []any, error) {
	return builder.
		From(bookTable).
		Select(goqu.COUNT(goqu.Star())).
		Where(goqu.C(schema.CatalogBook.CreatedAt).Gte(since.UTC())).
		Prepared(true).
		ToSQL()
}
