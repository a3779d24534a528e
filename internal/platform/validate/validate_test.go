// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package validate_test

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/bookcatalog/internal/platform/apperr"
	"github.com/taibuivan/bookcatalog/internal/platform/validate"
)

/*
TestValidator_Check tests the single-rule recording logic.
*/
func TestValidator_Check(t *testing.T) {
	tests := []struct {
		name     string
		ok       bool
		hasError bool
	}{
		{"passing_rule", true, false},
		{"failing_rule", false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &validate.Validator{}
			v.Check("title", tt.ok, "Title is required.")

			if tt.hasError {
				err := v.Err()
				require.NotNil(t, err)

				ae := apperr.As(err)
				require.NotNil(t, ae)
				assert.Equal(t, "VALIDATION_ERROR", ae.Code)
				assert.Equal(t, "title", ae.Details[0].Field)
				assert.Equal(t, "Title is required.", ae.Details[0].Message)
			} else {
				assert.Nil(t, v.Err())
			}
		})
	}
}

/*
TestValidator_Chain_Failure tests error accumulation in the chain.
*/
func TestValidator_Chain_Failure(t *testing.T) {
	v := &validate.Validator{}

	err := v.
		Check("author", false, "Author name is required.").
		Check("author", false, "Author name must be between 2 and 100 characters.").
		Check("isbn", false, "Invalid ISBN format.").
		Check("isbn", true, "never recorded").
		Err()

	require.Error(t, err)
	ae := apperr.As(err)
	require.NotNil(t, ae)

	assert.Len(t, ae.Details, 3)
	assert.Equal(t, map[string][]string{
		"author": {"Author name is required.", "Author name must be between 2 and 100 characters."},
		"isbn":   {"Invalid ISBN format."},
	}, ae.Fields())
}

/*
TestPredicates covers the string predicates used by rule tables.
*/
func TestPredicates(t *testing.T) {
	assert.True(t, validate.NotBlank(" a "))
	assert.False(t, validate.NotBlank(" \t "))

	assert.True(t, validate.LengthBetween("ab", 2, 100))
	assert.False(t, validate.LengthBetween("a", 2, 100))
	assert.True(t, validate.LengthBetween("éé", 2, 2))

	assert.True(t, validate.MinLength("Homer", 5))
	assert.False(t, validate.MinLength("Homr", 5))

	assert.True(t, validate.Matches("O'Brien", regexp.MustCompile(`^[a-zA-Z\s\-'.]+$`)))

	assert.True(t, validate.ContainsAnyFold("A BadWord Story", []string{"badword"}))
	assert.False(t, validate.ContainsAnyFold("Clean", []string{"badword", ""}))

	assert.True(t, validate.HasSuffixFold("cover.JPG", ".jpg", ".png"))
	assert.False(t, validate.HasSuffixFold("cover.bmp", ".jpg", ".png"))

	assert.True(t, validate.Digits("9783161484100"))
	assert.False(t, validate.Digits("978316148410X"))
	assert.False(t, validate.Digits(""))
}

/*
TestAbsoluteHTTPURL checks scheme and host requirements.
*/
func TestAbsoluteHTTPURL(t *testing.T) {
	tests := []struct {
		raw     string
		isValid bool
	}{
		{"http://x.com/img.jpg", true},
		{"https://cdn.example.org/a/b.png", true},
		{"ftp://x.com/img.jpg", false},
		{"/relative/img.jpg", false},
		{"not a url", false},
		{"http:///img.jpg", false},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.isValid, validate.AbsoluteHTTPURL(tt.raw))
		})
	}
}
