// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package validate provides a chainable Validator that collects field-level
// errors before returning a single [apperr.AppError], plus the string and URL
// predicates that rule tables are built from.
//
// # Architecture
//
// Rule tables in the domain packages are built from these predicates; handlers
// only use ErrInvalidJSON for bodies that cannot be decoded.
package validate

import (
	"net/url"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/taibuivan/bookcatalog/internal/platform/apperr"
)

var (
	// ErrInvalidJSON is returned when the request body cannot be decoded.
	ErrInvalidJSON = apperr.ValidationError("Invalid JSON payload")
)

// FailedMessage is the top-level message of every aggregated validation error.
const FailedMessage = "One or more validation errors occurred."

// Validator collects field-level validation errors via a fluent, chainable API.
//
// # Concurrency
//
// Validator is not safe for concurrent use. A new instance must be created
// for every request/operation.
type Validator struct {
	errs []apperr.FieldError
}

// Check records message against field when ok is false.
//
// # Example
//
//	v.Check("price", price > 0, "Price must be greater than 0.")
func (v *Validator) Check(field string, ok bool, message string) *Validator {
	if !ok {
		v.add(field, message)
	}
	return v
}

// Err returns a [apperr.AppError] (VALIDATION_ERROR) if any rules failed,
// or nil if all rules passed.
//
// Call it at the end of the chain.
func (v *Validator) Err() error {
	if len(v.errs) == 0 {
		return nil
	}
	return apperr.ValidationError(FailedMessage, v.errs...)
}

// add appends a [apperr.FieldError] to the internal slice.
func (v *Validator) add(field, message string) {
	v.errs = append(v.errs, apperr.FieldError{Field: field, Message: message})
}

// # Predicates

// NotBlank reports whether value contains anything besides whitespace.
func NotBlank(value string) bool {
	return strings.TrimSpace(value) != ""
}

// LengthBetween reports whether the Unicode character count of value lies in [min, max].
func LengthBetween(value string, min, max int) bool {
	count := utf8.RuneCountInString(value)
	return count >= min && count <= max
}

// MinLength reports whether value has at least min Unicode characters.
func MinLength(value string, min int) bool {
	return utf8.RuneCountInString(value) >= min
}

// Matches reports whether value matches the compiled expression.
func Matches(value string, expression *regexp.Regexp) bool {
	return expression.MatchString(value)
}

// ContainsAnyFold reports whether value contains any of words, ignoring case.
func ContainsAnyFold(value string, words []string) bool {
	lower := strings.ToLower(value)
	for _, word := range words {
		if word != "" && strings.Contains(lower, strings.ToLower(word)) {
			return true
		}
	}
	return false
}

// HasSuffixFold reports whether value ends with any of suffixes, ignoring case.
func HasSuffixFold(value string, suffixes ...string) bool {
	lower := strings.ToLower(value)
	for _, suffix := range suffixes {
		if strings.HasSuffix(lower, strings.ToLower(suffix)) {
			return true
		}
	}
	return false
}

// AbsoluteHTTPURL reports whether raw parses as an absolute http or https URL with a host.
func AbsoluteHTTPURL(raw string) bool {
	parsed, err := url.Parse(raw)
	if err != nil || !parsed.IsAbs() || parsed.Host == "" {
		return false
	}
	return parsed.Scheme == "http" || parsed.Scheme == "https"
}

// Digits reports whether value is non-empty and made only of ASCII digits.
func Digits(value string) bool {
	if value == "" {
		return false
	}
	for i := 0; i < len(value); i++ {
		if value[i] < '0' || value[i] > '9' {
			return false
		}
	}
	return true
}
