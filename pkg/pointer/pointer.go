// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package pointer holds small generic helpers for optional fields.

Optional request and entity fields (such as a cover image URL) are modelled as
pointers; these helpers keep copies of them from aliasing the caller's value.
*/
package pointer

// To returns a pointer to a copy of v.
func To[T any](v T) *T {
	return &v
}

// Val dereferences p, returning the zero value when p is nil.
func Val[T any](p *T) T {
	if p == nil {
		var zero T
		return zero
	}
	return *p
}

// Clone returns a pointer to a fresh copy of *p, or nil when p is nil.
func Clone[T any](p *T) *T {
	if p == nil {
		return nil
	}
	return To(*p)
}
