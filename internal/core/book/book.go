// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package book implements catalog book creation.

A submission is checked by the [Validator] rule table, re-checked for a
duplicate ISBN, persisted through a [Repository], announced to downstream list
views by removing a [Cache] key, and returned as a display-oriented [Profile].
*/
package book

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// # Category

// Category is the closed set of catalog sections.
type Category int

const (
	CategoryFiction Category = iota
	CategoryNonFiction
	CategoryTechnical
	CategoryChildren
)

// categoryInvalid marks input that named no known category.
const categoryInvalid Category = -1

var categoryNames = [...]string{
	CategoryFiction:    "Fiction",
	CategoryNonFiction: "NonFiction",
	CategoryTechnical:  "Technical",
	CategoryChildren:   "Children",
}

// Valid reports whether c is one of the defined categories.
func (c Category) Valid() bool {
	return c >= CategoryFiction && c <= CategoryChildren
}

// String returns the category name, or a diagnostic form for invalid values.
func (c Category) String() string {
	if !c.Valid() {
		return "Category(" + strconv.Itoa(int(c)) + ")"
	}
	return categoryNames[c]
}

// DisplayName returns the shelf label shown to readers.
func (c Category) DisplayName() string {
	switch c {
	case CategoryFiction:
		return "Fiction & Literature"
	case CategoryNonFiction:
		return "Non-Fiction"
	case CategoryTechnical:
		return "Technical & Professional"
	case CategoryChildren:
		return "Children's Books"
	default:
		return "Uncategorized"
	}
}

// ParseCategory accepts a category name (case-insensitive) or its numeric code.
func ParseCategory(raw string) (Category, bool) {
	raw = strings.TrimSpace(raw)

	if code, err := strconv.Atoi(raw); err == nil {
		category := Category(code)
		return category, category.Valid()
	}

	for index, name := range categoryNames {
		if strings.EqualFold(name, raw) {
			return Category(index), true
		}
	}
	return categoryInvalid, false
}

// MarshalJSON encodes the category by name.
func (c Category) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(c.String())), nil
}

// UnmarshalJSON accepts a name or a numeric code.
//
// Unknown values decode to an invalid category instead of failing, so the
// rule table reports them with the other field errors.
func (c *Category) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return nil
	}

	raw := string(data)
	if strings.HasPrefix(raw, `"`) {
		unquoted, err := strconv.Unquote(raw)
		if err != nil {
			return fmt.Errorf("book: invalid category %s: %w", raw, err)
		}
		raw = unquoted
	}

	// Out-of-range numeric codes keep their value for diagnostics.
	*c, _ = ParseCategory(raw)
	return nil
}

// # Entity

// Book is the persisted catalog record.
//
// ISBN keeps the submitted formatting; only validation works on the stripped form.
// IsAvailable is derived from StockQuantity at creation and is never set directly.
type Book struct {
	ID            string          `json:"id"`
	Title         string          `json:"title"`
	Author        string          `json:"author"`
	ISBN          string          `json:"isbn"`
	Category      Category        `json:"category"`
	Price         decimal.Decimal `json:"price"`
	PublishedDate time.Time       `json:"publishedDate"`
	CoverImageURL *string         `json:"coverImageUrl"`
	StockQuantity int             `json:"stockQuantity"`
	IsAvailable   bool            `json:"isAvailable"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     *time.Time      `json:"updatedAt"`
}

// # Creation Request

// DefaultStockQuantity applies when a submission omits stockQuantity.
const DefaultStockQuantity = 1

// CreateRequest is the submission accepted by the create-book operation.
type CreateRequest struct {
	Title         string          `json:"title"`
	Author        string          `json:"author"`
	ISBN          string          `json:"isbn"`
	Category      Category        `json:"category"`
	Price         decimal.Decimal `json:"price"`
	PublishedDate time.Time       `json:"publishedDate"`
	CoverImageURL *string         `json:"coverImageUrl"`
	StockQuantity int             `json:"stockQuantity"`
}

// NewCreateRequest returns a request carrying the submission defaults.
func NewCreateRequest() CreateRequest {
	return CreateRequest{StockQuantity: DefaultStockQuantity}
}

// # Profile

// Profile is the read-side projection returned to callers. It is never stored.
type Profile struct {
	ID                  string          `json:"id"`
	Title               string          `json:"title"`
	Author              string          `json:"author"`
	ISBN                string          `json:"isbn"`
	CategoryDisplayName string          `json:"categoryDisplayName"`
	Price               decimal.Decimal `json:"price"`
	FormattedPrice      string          `json:"formattedPrice"`
	PublishedDate       time.Time       `json:"publishedDate"`
	CreatedAt           time.Time       `json:"createdAt"`
	CoverImageURL       *string         `json:"coverImageUrl"`
	IsAvailable         bool            `json:"isAvailable"`
	StockQuantity       int             `json:"stockQuantity"`
	PublishedAge        string          `json:"publishedAge"`
	AuthorInitials      string          `json:"authorInitials"`
	AvailabilityStatus  string          `json:"availabilityStatus"`
}

// Global field names for validation
const (
	FieldTitle         = "title"
	FieldAuthor        = "author"
	FieldISBN          = "isbn"
	FieldCategory      = "category"
	FieldPrice         = "price"
	FieldPublishedDate = "publishedDate"
	FieldStockQuantity = "stockQuantity"
	FieldCoverImageURL = "coverImageUrl"
	FieldRequest       = "request"
)
