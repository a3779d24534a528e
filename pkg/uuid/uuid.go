// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package uuid generates the identifiers of catalog records.

Book ids are UUIDv7: time-ordered, so new rows append to the end of the
primary key index, and still stored in a standard 'uuid' column.
*/
package uuid

import "github.com/google/uuid"

// New generates a UUIDv7 string.
//
// If the entropy source fails, it falls back to a random v4 id.
func New() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

// Valid reports whether s is a well-formed UUID of any version.
func Valid(s string) bool {
	return uuid.Validate(s) == nil
}

// Version returns the version of s, or 0 if s is not a UUID.
func Version(s string) int {
	id, err := uuid.Parse(s)
	if err != nil {
		return 0
	}
	return int(id.Version())
}
