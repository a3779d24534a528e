// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package book

import (
	"fmt"
	"math"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/taibuivan/bookcatalog/pkg/pointer"
)

var (
	childrenDiscount = decimal.RequireFromString("0.9")
	pricePrinter     = message.NewPrinter(language.AmericanEnglish)
)

// Age buckets in days.
const (
	newReleaseDays = 30
	monthDays      = 30
	yearDays       = 365
	classicDays    = 1825
)

// Availability labels.
const (
	StatusOutOfStock   = "Out of Stock"
	StatusUnavailable  = "Unavailable"
	StatusLastCopy     = "Last Copy"
	StatusLimitedStock = "Limited Stock"
	StatusInStock      = "In Stock"
)

// # Request → Entity

// NewBook builds the entity for an accepted request.
func NewBook(req *CreateRequest, id string, now time.Time) *Book {
	return &Book{
		ID:            id,
		Title:         req.Title,
		Author:        req.Author,
		ISBN:          req.ISBN,
		Category:      req.Category,
		Price:         req.Price,
		PublishedDate: req.PublishedDate,
		CoverImageURL: pointer.Clone(req.CoverImageURL),
		StockQuantity: req.StockQuantity,
		IsAvailable:   req.StockQuantity > 0,
		CreatedAt:     now.UTC(),
	}
}

// # Entity → Profile

// NewProfile projects book for display as of now.
func NewProfile(book *Book, now time.Time) *Profile {
	price := EffectivePrice(book)

	profile := &Profile{
		ID:                  book.ID,
		Title:               book.Title,
		Author:              book.Author,
		ISBN:                book.ISBN,
		CategoryDisplayName: book.Category.DisplayName(),
		Price:               price,
		FormattedPrice:      FormatPrice(price),
		PublishedDate:       book.PublishedDate,
		CreatedAt:           book.CreatedAt,
		IsAvailable:         book.IsAvailable,
		StockQuantity:       book.StockQuantity,
		PublishedAge:        PublishedAge(book.PublishedDate, now),
		AuthorInitials:      AuthorInitials(book.Author),
		AvailabilityStatus:  AvailabilityStatus(book),
	}

	// Children's listings never show a cover.
	if book.Category != CategoryChildren {
		profile.CoverImageURL = pointer.Clone(book.CoverImageURL)
	}

	return profile
}

// EffectivePrice applies the Children discount, rounded to cents.
func EffectivePrice(book *Book) decimal.Decimal {
	if book.Category == CategoryChildren {
		return book.Price.Mul(childrenDiscount).Round(2)
	}
	return book.Price
}

// FormatPrice renders amount as US dollars, e.g. "$44.99" or "$1,250.00".
// Half cents round away from zero.
func FormatPrice(amount decimal.Decimal) string {
	cents := amount.Round(2).InexactFloat64()
	formatted := pricePrinter.Sprint(currency.Symbol(currency.USD.Amount(cents)))
	return strings.Replace(formatted, " ", "", 1)
}

// PublishedAge buckets the time since publication into a reader-facing label.
func PublishedAge(published, now time.Time) string {
	days := now.Sub(published).Hours() / 24

	switch {
	case days < newReleaseDays:
		return "New Release"
	case days < yearDays:
		return fmt.Sprintf("%d months old", int(math.Floor(days/monthDays)))
	case days < classicDays:
		return fmt.Sprintf("%d years old", int(math.Floor(days/yearDays)))
	default:
		return "Classic"
	}
}

// AuthorInitials returns the upper-cased first letters of the first and last names.
func AuthorInitials(author string) string {
	parts := strings.Fields(author)

	switch len(parts) {
	case 0:
		return "?"
	case 1:
		return initial(parts[0])
	default:
		return initial(parts[0]) + initial(parts[len(parts)-1])
	}
}

func initial(word string) string {
	first, _ := utf8.DecodeRuneInString(word)
	return string(unicode.ToUpper(first))
}

// AvailabilityStatus labels the stock situation of book.
func AvailabilityStatus(book *Book) string {
	switch {
	case !book.IsAvailable:
		return StatusOutOfStock
	case book.StockQuantity == 0:
		return StatusUnavailable
	case book.StockQuantity == 1:
		return StatusLastCopy
	case book.StockQuantity <= 5:
		return StatusLimitedStock
	default:
		return StatusInStock
	}
}
