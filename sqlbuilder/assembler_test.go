// Copyright (c) 2025 Yahya Qadeer Dar. All rights reserved.
// Use of this source code is governed by an Apache 2.0 license that can be found in the LICENSE file.

package sqlbuilder

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YahyaDar/gravity/errors"
)

func TestSelectComponentOrder(t *testing.T) {
	b := New(MySQL()).
		SelectMode("SQL_NO_CACHE").
		Select("a", "COUNT(*)").
		From("t").
		Join("u", "LEFT").On("u.id", "t.uid").
		Where("t.x", "1").
		GroupBy("a").
		HavingOp("COUNT(*)", ">", "2").
		OrderBy("a").
		Limit(5).
		LockMode("for update")

	assert.Equal(t,
		"SELECT SQL_NO_CACHE a, COUNT(*) FROM t LEFT JOIN u ON u.id = t.uid WHERE t.x = 1"+
			" GROUP BY a HAVING COUNT(*) > 2 ORDER BY a LIMIT 5 FOR UPDATE",
		b.SelectSQL())
}

func TestCompoundWrapsBaseSelect(t *testing.T) {
	b := New(nil).Select("col").From("t").Union("(SELECT c2 FROM t2)", SetDefault)
	assert.Equal(t, "(SELECT col FROM t) UNION (SELECT c2 FROM t2)", b.SelectSQL())
}

func TestRecursiveWith(t *testing.T) {
	b := New(nil).WithRecursive("a", "anchor", "rec", false).Select("*").From("a")
	assert.Equal(t, "WITH RECURSIVE a AS ( anchor UNION rec ) SELECT * FROM a", b.SelectSQL())
}

func TestWithPrecedesCompound(t *testing.T) {
	b := New(Postgres()).
		With("x", "SELECT 1 AS n").
		From("x").
		Union("(SELECT 2)", SetAll)
	assert.Equal(t, "WITH x AS ( SELECT 1 AS n ) (SELECT * FROM x) UNION ALL (SELECT 2)", b.SelectSQL())
}

func TestMissingTableReference(t *testing.T) {
	cases := []struct {
		kind   Kind
		clause string
	}{
		{KindDelete, "from"},
		{KindInsert, "into"},
		{KindReplace, "into"},
		{KindUpdate, "update"},
	}
	for _, tc := range cases {
		_, err := New(nil).Where("a", "b").SQL(tc.kind)
		require.Error(t, err, tc.kind.String())
		assert.True(t, errors.Is(err, errors.ErrMissingTableReference), tc.kind.String())

		var missing *errors.MissingTableReferenceError
		require.True(t, errors.As(err, &missing))
		assert.Equal(t, tc.clause, missing.Clause)
	}

	query, err := New(nil).SQL(KindSelect)
	require.NoError(t, err)
	assert.Equal(t, "SELECT *", query)
}

func TestDeleteSingleTable(t *testing.T) {
	b := New(Postgres()).
		From("t").
		Where("id", "1").
		OrderBy("id").
		Limit(1).
		Returning("id")

	query, err := b.DeleteSQL()
	require.NoError(t, err)
	assert.Equal(t, "DELETE FROM t WHERE id = 1 ORDER BY id LIMIT 1 RETURNING id", query)
}

func TestDeleteMultiTableDropsOrderAndLimit(t *testing.T) {
	b := New(MySQL()).
		DeleteMode("quick", "bogus").
		Delete("t1").
		From("t1").
		InnerJoin("t2").On("t1.id", "t2.id").
		OrderBy("t1.id").
		Limit(3)

	query, err := b.DeleteSQL()
	require.NoError(t, err)
	assert.Equal(t, "DELETE QUICK t1 FROM t1 INNER JOIN t2 ON t1.id = t2.id", query)
}

func TestInsertValues(t *testing.T) {
	b := New(MySQL()).
		InsertMode("ignore", "delayed").
		Into("t").
		Columns("a", "b").
		Values("1", "'x'").
		Values("2", "'y'").
		Upsert("b", "VALUES(b)")

	query, err := b.InsertSQL()
	require.NoError(t, err)
	assert.Equal(t, "INSERT IGNORE DELAYED INTO t (a, b) VALUES (1, 'x'), (2, 'y') ON DUPLICATE KEY UPDATE b = VALUES(b)", query)
}

func TestInsertSet(t *testing.T) {
	b := New(MySQL()).Into("t").SetMap(map[string]string{"b": "2", "a": "1"})

	query, err := b.InsertSQL()
	require.NoError(t, err)
	assert.Equal(t, "INSERT INTO t SET a = 1, b = 2", query)
}

func TestInsertSelectFiltersModes(t *testing.T) {
	b := New(MySQL()).
		InsertMode("DELAYED", "HIGH_PRIORITY").
		Into("t").
		Columns("a").
		Values("1").
		SelectStatement("SELECT a FROM s")

	query, err := b.InsertSQL()
	require.NoError(t, err)
	assert.Equal(t, "INSERT HIGH_PRIORITY INTO t (a) SELECT a FROM s", query)
}

func TestInsertWildcardColumnsRenderNoList(t *testing.T) {
	b := New(nil).Into("t").Columns("*").SelectStatement("SELECT * FROM s")

	query, err := b.InsertSQL()
	require.NoError(t, err)
	assert.Equal(t, "INSERT INTO t SELECT * FROM s", query)
}

func TestInsertOnConflictPostgres(t *testing.T) {
	b := New(Postgres()).
		Into("t").
		Columns("id", "n").
		Values("1", "2").
		OnConflict("id").
		Upsert("n", "EXCLUDED.n").
		Returning("id")

	query, err := b.InsertSQL()
	require.NoError(t, err)
	assert.Equal(t, "INSERT INTO t (id, n) VALUES (1, 2) ON CONFLICT (id) DO UPDATE SET n = EXCLUDED.n RETURNING id", query)

	b = New(SQLite()).InsertMode("or ignore").Into("t").Values("1").OnConflictDoNothing()
	query, err = b.InsertSQL()
	require.NoError(t, err)
	assert.Equal(t, "INSERT OR IGNORE INTO t VALUES (1) ON CONFLICT DO NOTHING", query)

	b = New(MySQL()).Into("t").Values("1").OnConflictDoNothing("id")
	query, err = b.InsertSQL()
	require.NoError(t, err)
	assert.Equal(t, "INSERT INTO t VALUES (1)", query)
}

func TestReplace(t *testing.T) {
	b := New(MySQL()).
		InsertMode("LOW_PRIORITY", "IGNORE").
		Into("t").
		Columns("a").
		Values("1").
		Upsert("a", "2")

	query, err := b.ReplaceSQL()
	require.NoError(t, err)
	assert.Equal(t, "REPLACE LOW_PRIORITY INTO t (a) VALUES (1)", query)
}

func TestUpdateSingleTableKeepsOrderAndLimit(t *testing.T) {
	b := New(MySQL()).
		UpdateMode("ignore", "delayed").
		Update("t1").
		Set("a", "1").
		Where("id", "2").
		OrderBy("c").
		Limit(1)

	query, err := b.UpdateSQL()
	require.NoError(t, err)
	assert.Equal(t, "UPDATE IGNORE t1 SET a = 1 WHERE id = 2 ORDER BY c LIMIT 1", query)
}

func TestUpdateMultiTableDropsOrderAndLimit(t *testing.T) {
	b := New(MySQL()).Update("t1,t2").Set("a", "1").OrderBy("c").Limit(1)

	query, err := b.UpdateSQL()
	require.NoError(t, err)
	assert.Equal(t, "UPDATE t1,t2 SET a = 1", query)

	b = New(MySQL()).Update("t1").InnerJoin("t2").Using("id").Set("a", "1").OrderBy("c")
	query, err = b.UpdateSQL()
	require.NoError(t, err)
	assert.Equal(t, "UPDATE t1 INNER JOIN t2 USING (id) SET a = 1", query)
}

func TestKindParsing(t *testing.T) {
	k, err := ParseKind(" delete ")
	require.NoError(t, err)
	assert.Equal(t, KindDelete, k)
	assert.Equal(t, "DELETE", k.String())

	_, err = ParseKind("merge")
	assert.Error(t, err)

	_, err = New(nil).SQL(Kind(42))
	assert.Error(t, err)
	assert.Equal(t, "Kind(42)", Kind(42).String())
}
