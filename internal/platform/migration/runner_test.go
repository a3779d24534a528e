// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package migration_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/bookcatalog/internal/platform/migration"
)

/*
TestPgx5DSN rewrites only the postgres URL schemes.
*/
func TestPgx5DSN(t *testing.T) {
	tests := map[string]string{
		"postgres://u:p@db:5432/catalog":   "pgx5://u:p@db:5432/catalog",
		"postgresql://u:p@db:5432/catalog": "pgx5://u:p@db:5432/catalog",
		"pgx5://u:p@db:5432/catalog":       "pgx5://u:p@db:5432/catalog",
		"host=db user=u":                   "host=db user=u",
	}

	for input, want := range tests {
		assert.Equal(t, want, migration.Pgx5DSN(input), input)
	}
}
