// Copyright (c) 2025 Yahya Qadeer Dar. All rights reserved.
// Use of this source code is governed by an Apache 2.0 license that can be found in the LICENSE file.

package sqlbuilder

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YahyaDar/gravity/errors"
)

func TestLookup(t *testing.T) {
	cases := map[string]string{
		"":           "standard",
		"ANSI":       "standard",
		"postgresql": "postgres",
		"pgx":        "postgres",
		"mysql":      "mysql",
		"MariaDB":    "mariadb",
		"sqlite3":    "sqlite",
	}
	for name, want := range cases {
		d, err := Lookup(name)
		require.NoError(t, err, name)
		assert.Equal(t, want, d.Name(), name)
	}

	_, err := Lookup("oracle")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrUnknownDialect))
}

func TestDriverNames(t *testing.T) {
	assert.Equal(t, "postgres", Postgres().DriverName())
	assert.Equal(t, "mysql", MySQL().DriverName())
	assert.Equal(t, "mysql", MariaDB().DriverName())
	assert.Equal(t, "sqlite3", SQLite().DriverName())
	assert.Empty(t, Standard().DriverName())
}

func TestLimitOffset(t *testing.T) {
	cases := []struct {
		dialect       Dialect
		limit, offset int64
		want          string
	}{
		{Standard(), 10, -1, "LIMIT 10"},
		{Standard(), 10, 5, "LIMIT 10 OFFSET 5"},
		{Standard(), -1, 5, "OFFSET 5"},
		{Standard(), -1, -1, ""},
		{MySQL(), 10, 5, "LIMIT 5, 10"},
		{MySQL(), 10, -1, "LIMIT 10"},
		{MySQL(), -1, 5, "LIMIT 5, 18446744073709551615"},
		{MariaDB(), 1, 2, "LIMIT 2, 1"},
		{Postgres(), 10, 5, "LIMIT 10 OFFSET 5"},
		{SQLite(), -1, 5, "LIMIT -1 OFFSET 5"},
		{SQLite(), 3, -1, "LIMIT 3"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, tc.dialect.LimitOffset(tc.limit, tc.offset), "%s %d %d", tc.dialect.Name(), tc.limit, tc.offset)
	}
}

func TestCompoundSupport(t *testing.T) {
	for _, d := range []Dialect{Standard(), Postgres(), SQLite(), MariaDB()} {
		for _, op := range []CompoundType{CompoundUnion, CompoundIntersect, CompoundExcept} {
			assert.True(t, d.SupportsCompound(op), "%s %s", d.Name(), op)
		}
	}
	assert.True(t, MySQL().SupportsCompound(CompoundUnion))
	assert.False(t, MySQL().SupportsCompound(CompoundIntersect))
	assert.False(t, MySQL().SupportsCompound(CompoundExcept))
}

func TestReturningSupport(t *testing.T) {
	assert.False(t, Standard().SupportsReturning())
	assert.False(t, MySQL().SupportsReturning())
	assert.True(t, MariaDB().SupportsReturning())
	assert.True(t, Postgres().SupportsReturning())
	assert.True(t, SQLite().SupportsReturning())
}

func TestRegexpOperators(t *testing.T) {
	assert.Equal(t, "REGEXP", MySQL().RegexpOperator(false))
	assert.Equal(t, "NOT REGEXP", SQLite().RegexpOperator(true))
	assert.Equal(t, "~", Postgres().RegexpOperator(false))
	assert.Equal(t, "!~", Postgres().RegexpOperator(true))
}

func TestModeAllowLists(t *testing.T) {
	assert.Equal(t, []string{"LOW_PRIORITY", "IGNORE"}, Standard().Modes(ModeUpdate))
	assert.Equal(t, []string{"LOW_PRIORITY", "DELAYED"}, MySQL().Modes(ModeReplace))
	assert.Equal(t, []string{"LOW_PRIORITY", "HIGH_PRIORITY", "IGNORE"}, MySQL().Modes(ModeInsertSelect))
	assert.Empty(t, Postgres().Modes(ModeInsert))
	assert.Contains(t, SQLite().Modes(ModeUpdate), "OR REPLACE")
	assert.Empty(t, SQLite().Modes(ModeReplace))
	assert.Equal(t, "insert-select", ModeInsertSelect.String())
}

func TestUpsertClauses(t *testing.T) {
	assert.Equal(t, "ON DUPLICATE KEY UPDATE a = 1", MySQL().Upsert("id", "a = 1"))
	assert.Empty(t, MySQL().Upsert("id", ""))
	assert.Equal(t, "ON CONFLICT (id) DO UPDATE SET a = 1", Postgres().Upsert("id", "a = 1"))
	assert.Equal(t, "ON CONFLICT DO NOTHING", SQLite().Upsert("", ""))
}

func TestPostgresLockModes(t *testing.T) {
	modes := Postgres().LockModes()
	assert.Contains(t, modes, "FOR KEY SHARE NOWAIT")
	assert.Contains(t, modes, "FOR NO KEY UPDATE SKIP LOCKED")
	assert.NotContains(t, modes, "LOCK IN SHARE MODE")
	assert.Empty(t, SQLite().LockModes())
}

func TestDialectEscapers(t *testing.T) {
	assert.Equal(t, "`t`", MariaDB().Escaper().QuoteIdentifier("t"))
	assert.Equal(t, `"t"`, SQLite().Escaper().QuoteIdentifier("t"))
	assert.Equal(t, "1", SQLite().Escaper().EscapeValue(true))
	assert.Equal(t, "TRUE", Standard().Escaper().EscapeValue(true))
}
