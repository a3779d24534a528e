// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package book

import "context"

// Repository is the book store used by the creation flow.
//
// Uniqueness is checked before Create without a transaction, so two concurrent
// submissions of the same ISBN can both pass. Stores that enforce unique
// indexes report the loser as a CONFLICT [apperr.AppError]; others keep both rows.
type Repository interface {
	Lookup
	Create(ctx context.Context, book *Book) error
}

// Cache is the invalidation target of successful creations.
type Cache interface {
	Remove(ctx context.Context, key string) error
}
