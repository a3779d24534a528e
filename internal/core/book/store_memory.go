// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package book

import (
	"context"
	"sync"
	"time"
)

// MemoryRepository is a process-local [Repository] for development and tests.
//
// It enforces no unique indexes: the read-then-write race of the creation flow
// can store two books with the same ISBN.
type MemoryRepository struct {
	mu    sync.RWMutex
	books []Book
}

// NewMemoryRepository returns a repository holding copies of seed.
func NewMemoryRepository(seed ...*Book) *MemoryRepository {
	repo := &MemoryRepository{}
	for _, book := range seed {
		repo.books = append(repo.books, *book)
	}
	return repo
}

// Create stores a copy of book.
func (r *MemoryRepository) Create(ctx context.Context, book *Book) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.books = append(r.books, *book)
	return nil
}

// ExistsByISBN reports whether a stored book has exactly this isbn.
func (r *MemoryRepository) ExistsByISBN(ctx context.Context, isbn string) (bool, error) {
	count, err := r.count(ctx, func(book *Book) bool { return book.ISBN == isbn })
	return count > 0, err
}

// ExistsByTitleAuthor reports whether the author already has a book with this title.
func (r *MemoryRepository) ExistsByTitleAuthor(ctx context.Context, title, author string) (bool, error) {
	count, err := r.count(ctx, func(book *Book) bool { return book.Title == title && book.Author == author })
	return count > 0, err
}

// CountCreatedSince counts the books created at or after since.
func (r *MemoryRepository) CountCreatedSince(ctx context.Context, since time.Time) (int, error) {
	return r.count(ctx, func(book *Book) bool { return !book.CreatedAt.Before(since) })
}

// Len returns the number of stored books.
func (r *MemoryRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.books)
}

// Books returns copies of the stored books in insertion order.
func (r *MemoryRepository) Books() []Book {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]Book(nil), r.books...)
}

func (r *MemoryRepository) count(ctx context.Context, match func(*Book) bool) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	count := 0
	for i := range r.books {
		if match(&r.books[i]) {
			count++
		}
	}
	return count, nil
}
