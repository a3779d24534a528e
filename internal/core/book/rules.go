// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package book

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"slices"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/taibuivan/bookcatalog/internal/platform/ctxutil"
	"github.com/taibuivan/bookcatalog/internal/platform/validate"
)

// # Limits

const (
	titleMaxLength       = 200
	authorMinLength      = 2
	authorMaxLength      = 100
	fictionAuthorMinimum = 5
	minPublishedYear     = 1400
	maxStockQuantity     = 100000
	technicalMaxAgeYears = 5
	highValueMaxStock    = 20
	premiumMaxStock      = 10
)

var (
	priceCeiling      = decimal.NewFromInt(10000)
	technicalMinPrice = decimal.RequireFromString("20.00")
	childrenMaxPrice  = decimal.RequireFromString("50.00")
	highValuePrice    = decimal.NewFromInt(100)
	premiumPrice      = decimal.NewFromInt(500)

	authorPattern    = regexp.MustCompile(`^[a-zA-Z\s\-'.]+$`)
	isbnSeparators   = strings.NewReplacer("-", "", " ", "")
	coverExtensions  = []string{".jpg", ".jpeg", ".png", ".gif", ".webp"}
	validISBNLengths = []int{10, 13}
)

// MessageISBNTaken is reported against the isbn field when the ISBN is already stored.
const MessageISBNTaken = "ISBN already exists in the system."

// # Policy

// Policy carries the configurable parts of the rule set.
type Policy struct {
	BlockedTitleWords       []string
	ChildrenRestrictedWords []string
	DailyLimit              int
}

// DefaultPolicy returns the stock blocklists and a daily limit of 500.
func DefaultPolicy() Policy {
	return Policy{
		BlockedTitleWords:       []string{"badword", "offensive", "banned"},
		ChildrenRestrictedWords: []string{"violence", "horror", "adult", "death", "kill", "blood"},
		DailyLimit:              500,
	}
}

// # Store Lookups

// Lookup answers the store-backed questions asked during validation.
type Lookup interface {
	ExistsByISBN(ctx context.Context, isbn string) (bool, error)
	ExistsByTitleAuthor(ctx context.Context, title, author string) (bool, error)
	CountCreatedSince(ctx context.Context, since time.Time) (int, error)
}

// # Rules

// Subject is what a rule inspects: the submission and the instant of evaluation.
type Subject struct {
	*CreateRequest
	Now time.Time
}

// Rule is one named predicate reported against a field when it fails.
// When, if set, gates the rule so it only runs for matching subjects.
type Rule struct {
	Name    string
	Field   string
	Message string
	When    func(Subject) bool
	Check   func(ctx context.Context, subject Subject) (bool, error)
}

func (r Rule) applies(subject Subject) bool {
	return r.When == nil || r.When(subject)
}

// pure adapts a predicate that needs neither the context nor the store.
func pure(check func(Subject) bool) func(context.Context, Subject) (bool, error) {
	return func(_ context.Context, subject Subject) (bool, error) {
		return check(subject), nil
	}
}

// # Validator

// Validator evaluates the full rule table and reports every failure at once.
type Validator struct {
	lookup Lookup
	policy Policy
	now    func() time.Time

	fieldRules    []Rule
	categoryRules map[Category][]Rule
	requestRules  []Rule
}

// NewValidator builds the rule table for policy. now defaults to time.Now.
func NewValidator(lookup Lookup, policy Policy, now func() time.Time) *Validator {
	if now == nil {
		now = time.Now
	}

	v := &Validator{lookup: lookup, policy: policy, now: now}
	v.fieldRules = v.buildFieldRules()
	v.categoryRules = v.buildCategoryRules()
	v.requestRules = v.buildRequestRules()
	return v
}

// Rules returns the ordered rules evaluated for a submission in category.
func (v *Validator) Rules(category Category) []Rule {
	return slices.Concat(v.fieldRules, v.categoryRules[category], v.requestRules)
}

// Validate runs every applicable rule against req.
//
// It returns a VALIDATION_ERROR [apperr.AppError] carrying all failures, or a
// plain error when a store lookup fails. The evaluation instant is taken once.
func (v *Validator) Validate(ctx context.Context, req *CreateRequest) error {
	subject := Subject{CreateRequest: req, Now: v.now().UTC()}
	collector := &validate.Validator{}

	for _, rule := range v.Rules(req.Category) {
		if !rule.applies(subject) {
			continue
		}

		ok, err := rule.Check(ctx, subject)
		if err != nil {
			return fmt.Errorf("book rule %s: %w", rule.Name, err)
		}
		collector.Check(rule.Field, ok, rule.Message)
	}

	return collector.Err()
}

func (v *Validator) buildFieldRules() []Rule {
	return []Rule{
		// Title
		{Name: "title_required", Field: FieldTitle, Message: "Title is required.",
			Check: pure(func(s Subject) bool { return validate.NotBlank(s.Title) })},
		{Name: "title_length", Field: FieldTitle, Message: "Title must be between 1 and 200 characters.",
			Check: pure(func(s Subject) bool { return validate.LengthBetween(s.Title, 1, titleMaxLength) })},
		{Name: "title_blocked_words", Field: FieldTitle, Message: "Title contains inappropriate content.",
			Check: pure(func(s Subject) bool {
				return validate.NotBlank(s.Title) && !validate.ContainsAnyFold(s.Title, v.policy.BlockedTitleWords)
			})},
		{Name: "title_author_unique", Field: FieldTitle, Message: "A book with this title already exists for this author.",
			Check: v.titleAuthorUnique},

		// Author
		{Name: "author_required", Field: FieldAuthor, Message: "Author name is required.",
			Check: pure(func(s Subject) bool { return validate.NotBlank(s.Author) })},
		{Name: "author_length", Field: FieldAuthor, Message: "Author name must be between 2 and 100 characters.",
			Check: pure(func(s Subject) bool { return validate.LengthBetween(s.Author, authorMinLength, authorMaxLength) })},
		{Name: "author_characters", Field: FieldAuthor, Message: "Author name contains invalid characters.",
			Check: pure(func(s Subject) bool { return validate.Matches(s.Author, authorPattern) })},

		// ISBN
		{Name: "isbn_required", Field: FieldISBN, Message: "ISBN is required.",
			Check: pure(func(s Subject) bool { return validate.NotBlank(s.ISBN) })},
		{Name: "isbn_format", Field: FieldISBN, Message: "Invalid ISBN format.",
			Check: pure(func(s Subject) bool { return ValidISBN(s.ISBN) })},
		{Name: "isbn_unique", Field: FieldISBN, Message: MessageISBNTaken,
			Check: v.isbnUnique},

		// Category
		{Name: "category_defined", Field: FieldCategory, Message: "Invalid book category.",
			Check: pure(func(s Subject) bool { return s.Category.Valid() })},

		// Price
		{Name: "price_positive", Field: FieldPrice, Message: "Price must be greater than 0.",
			Check: pure(func(s Subject) bool { return s.Price.IsPositive() })},
		{Name: "price_ceiling", Field: FieldPrice, Message: "Price cannot exceed $10,000.",
			Check: pure(func(s Subject) bool { return s.Price.LessThan(priceCeiling) })},

		// Published date
		{Name: "published_not_future", Field: FieldPublishedDate, Message: "Published date cannot be in the future.",
			Check: pure(func(s Subject) bool { return !s.PublishedDate.After(s.Now) })},
		{Name: "published_min_year", Field: FieldPublishedDate, Message: "Published date cannot be before year 1400.",
			Check: pure(func(s Subject) bool { return s.PublishedDate.Year() >= minPublishedYear })},

		// Stock
		{Name: "stock_not_negative", Field: FieldStockQuantity, Message: "Stock quantity cannot be negative.",
			Check: pure(func(s Subject) bool { return s.StockQuantity >= 0 })},
		{Name: "stock_ceiling", Field: FieldStockQuantity, Message: "Stock quantity exceeds reasonable limit (100,000).",
			Check: pure(func(s Subject) bool { return s.StockQuantity <= maxStockQuantity })},

		// Cover image
		{Name: "cover_image_url", Field: FieldCoverImageURL, Message: "Invalid Cover Image URL.",
			When:  func(s Subject) bool { return s.CoverImageURL != nil && *s.CoverImageURL != "" },
			Check: pure(func(s Subject) bool { return ValidCoverImageURL(*s.CoverImageURL) })},

		// Composite
		{Name: "business_rules", Field: FieldRequest, Message: "Business validation rules failed.",
			Check: v.passesBusinessRules},
	}
}

func (v *Validator) buildCategoryRules() map[Category][]Rule {
	return map[Category][]Rule{
		CategoryTechnical: {
			{Name: "technical_min_price", Field: FieldPrice, Message: "Technical books must be at least $20.00.",
				Check: pure(func(s Subject) bool { return s.Price.GreaterThanOrEqual(technicalMinPrice) })},
			{Name: "technical_recent", Field: FieldPublishedDate, Message: "Technical books must be published within the last 5 years.",
				Check: pure(func(s Subject) bool {
					return !s.PublishedDate.Before(s.Now.AddDate(-technicalMaxAgeYears, 0, 0))
				})},
		},
		CategoryChildren: {
			{Name: "children_max_price", Field: FieldPrice, Message: "Children's books cannot exceed $50.00.",
				Check: pure(func(s Subject) bool { return s.Price.LessThanOrEqual(childrenMaxPrice) })},
			{Name: "children_title_words", Field: FieldTitle, Message: "Children's book title contains restricted words.",
				Check: pure(func(s Subject) bool {
					return s.Title != "" && !validate.ContainsAnyFold(s.Title, v.policy.ChildrenRestrictedWords)
				})},
		},
		CategoryFiction: {
			{Name: "fiction_author_full_name", Field: FieldAuthor, Message: "Fiction authors must provide full name (minimum 5 characters).",
				Check: pure(func(s Subject) bool { return validate.MinLength(s.Author, fictionAuthorMinimum) })},
		},
	}
}

func (v *Validator) buildRequestRules() []Rule {
	return []Rule{
		{Name: "high_value_stock", Field: FieldStockQuantity, Message: "High-value books (> $100) are limited to 20 stock units.",
			When:  func(s Subject) bool { return s.Price.GreaterThan(highValuePrice) },
			Check: pure(func(s Subject) bool { return s.StockQuantity <= highValueMaxStock })},
		{Name: "daily_limit", Field: FieldRequest, Message: fmt.Sprintf("Daily book addition limit (%d) reached.", v.policy.DailyLimit),
			Check: v.underDailyLimit},
	}
}

// # Store-Backed Checks

func (v *Validator) titleAuthorUnique(ctx context.Context, s Subject) (bool, error) {
	exists, err := v.lookup.ExistsByTitleAuthor(ctx, s.Title, s.Author)
	return !exists, err
}

func (v *Validator) isbnUnique(ctx context.Context, s Subject) (bool, error) {
	exists, err := v.lookup.ExistsByISBN(ctx, s.ISBN)
	return !exists, err
}

func (v *Validator) underDailyLimit(ctx context.Context, s Subject) (bool, error) {
	count, err := v.lookup.CountCreatedSince(ctx, StartOfDay(s.Now))
	if err != nil {
		return false, err
	}
	return count < v.policy.DailyLimit, nil
}

// passesBusinessRules is the composite check. Each failing branch logs its reason.
func (v *Validator) passesBusinessRules(ctx context.Context, s Subject) (bool, error) {
	logger := ctxutil.GetLogger(ctx).With(slog.String("isbn", s.ISBN))

	count, err := v.lookup.CountCreatedSince(ctx, StartOfDay(s.Now))
	if err != nil {
		return false, err
	}

	switch {
	case count >= v.policy.DailyLimit:
		logger.Warn("book_business_rule_failed", slog.String("reason", "daily_limit_reached"), slog.Int("count", count))
		return false, nil

	case s.Category == CategoryTechnical && s.Price.LessThan(technicalMinPrice):
		logger.Warn("book_business_rule_failed", slog.String("reason", "technical_min_price"), slog.String("price", s.Price.String()))
		return false, nil

	case s.Category == CategoryChildren && validate.ContainsAnyFold(s.Title, v.policy.ChildrenRestrictedWords):
		logger.Warn("book_business_rule_failed", slog.String("reason", "children_restricted_title"), slog.String("title", s.Title))
		return false, nil

	case s.Price.GreaterThan(premiumPrice) && s.StockQuantity > premiumMaxStock:
		logger.Warn("book_business_rule_failed", slog.String("reason", "premium_stock_limit"), slog.Int("stock_quantity", s.StockQuantity))
		return false, nil
	}

	return true, nil
}

// # Helpers

// ValidISBN reports whether isbn is 10 or 13 digits once hyphens and spaces are removed.
func ValidISBN(isbn string) bool {
	cleaned := isbnSeparators.Replace(isbn)
	return slices.Contains(validISBNLengths, len(cleaned)) && validate.Digits(cleaned)
}

// ValidCoverImageURL reports whether raw is an absolute http(s) URL to a supported image.
func ValidCoverImageURL(raw string) bool {
	return validate.AbsoluteHTTPURL(raw) && validate.HasSuffixFold(raw, coverExtensions...)
}

// StartOfDay returns UTC midnight of the day containing t.
func StartOfDay(t time.Time) time.Time {
	year, month, day := t.UTC().Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
