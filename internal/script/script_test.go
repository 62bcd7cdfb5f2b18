// Copyright (c) 2025 Yahya Qadeer Dar. All rights reserved.
// Use of this source code is governed by an Apache 2.0 license that can be found in the LICENSE file.

package script

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/YahyaDar/gravity/errors"
	"github.com/YahyaDar/gravity/sqlbuilder"
)

const selectScript = `
dialect: mysql
kind: select
params:
  name: "O'Hara"
  ids: [1, 2, 3]
  missing: null
steps:
  - select: [id, name]
  - from: users
  - left_join: [orders o]
  - on: [o.user_id, users.id]
  - where: [name, "${name}"]
  - or
  - start_where_group
  - where_in: [id, "${ids}"]
  - where_op: [deleted_at, IS, "${missing}"]
  - end_where_group
  - order_by_desc: id
  - limit: [10, 20]
`

func parseOne(t *testing.T, src string) *Document {
	t.Helper()

	docs, err := Parse(strings.NewReader(src))
	require.NoError(t, err)
	require.Len(t, docs, 1)
	return docs[0]
}

func TestParseSteps(t *testing.T) {
	doc := parseOne(t, selectScript)

	assert.Equal(t, "mysql", doc.Dialect)
	assert.Equal(t, "select", doc.Kind)
	require.Len(t, doc.Steps, 12)
	assert.Equal(t, Step{Op: "select", Args: []string{"id", "name"}}, doc.Steps[0])
	assert.Equal(t, Step{Op: "from", Args: []string{"users"}}, doc.Steps[1])
	assert.Equal(t, Step{Op: "or"}, doc.Steps[5])
	assert.Equal(t, Step{Op: "limit", Args: []string{"10", "20"}}, doc.Steps[11])
}

func TestRenderSubstitutesEscapedParams(t *testing.T) {
	doc := parseOne(t, selectScript)

	query, err := doc.Render(sqlbuilder.MySQL())
	require.NoError(t, err)
	assert.Equal(t,
		"SELECT id, name FROM users LEFT JOIN orders o ON o.user_id = users.id"+
			" WHERE name = 'O''Hara' OR (id IN (1, 2, 3) AND deleted_at IS NULL)"+
			" ORDER BY id DESC LIMIT 20, 10",
		query)
}

func TestRenderDefaultsToSelect(t *testing.T) {
	doc := parseOne(t, "steps:\n  - from: t\n")

	kind, err := doc.StatementKind()
	require.NoError(t, err)
	assert.Equal(t, sqlbuilder.KindSelect, kind)

	query, err := doc.Render(nil)
	require.NoError(t, err)
	assert.Equal(t, "SELECT * FROM t", query)
}

func TestRenderInsertWithUpsert(t *testing.T) {
	doc := parseOne(t, `
kind: insert
steps:
  - into: t
  - columns: [id, n]
  - values: [1, 2]
  - on_conflict: id
  - upsert: [n, EXCLUDED.n]
  - returning: id
`)

	query, err := doc.Render(sqlbuilder.Postgres())
	require.NoError(t, err)
	assert.Equal(t, "INSERT INTO t (id, n) VALUES (1, 2) ON CONFLICT (id) DO UPDATE SET n = EXCLUDED.n RETURNING id", query)
}

func TestRenderCompoundAndRecursiveWith(t *testing.T) {
	doc := parseOne(t, `
steps:
  - with_recursive: [tree, SELECT id FROM nodes WHERE parent IS NULL, SELECT n.id FROM nodes n JOIN tree ON n.parent = tree.id, true, id]
  - from: tree
  - union: ["(SELECT 0)", all]
`)

	query, err := doc.Render(sqlbuilder.Standard())
	require.NoError(t, err)
	assert.Equal(t,
		"WITH RECURSIVE tree (id) AS ( SELECT id FROM nodes WHERE parent IS NULL UNION ALL"+
			" SELECT n.id FROM nodes n JOIN tree ON n.parent = tree.id ) (SELECT * FROM tree) UNION ALL (SELECT 0)",
		query)
}

func TestRenderMissingTableReference(t *testing.T) {
	doc := parseOne(t, "kind: delete\nsteps:\n  - where: [a, 1]\n")

	_, err := doc.Render(sqlbuilder.Standard())
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrMissingTableReference))
}

func TestApplyErrors(t *testing.T) {
	cases := map[string]error{
		"steps:\n  - explode: [t]\n":      ErrUnknownOp,
		"steps:\n  - where: [a]\n":        ErrArity,
		"steps:\n  - order_by: [a, b]\n":  ErrArity,
		"steps:\n  - where: [a, \"${x}\"]\nparams: {y: 1}\n": ErrUnknownParam,
	}
	for src, want := range cases {
		doc := parseOne(t, src)
		err := doc.Apply(sqlbuilder.New(nil))
		require.Error(t, err, src)
		assert.True(t, errors.Is(err, want), "%s: %v", src, err)
		assert.Contains(t, err.Error(), "step 1")
	}

	doc := parseOne(t, "steps:\n  - limit: [ten]\n")
	assert.Error(t, doc.Apply(sqlbuilder.New(nil)))

	doc = parseOne(t, "steps:\n  - union: [x, sometimes]\n")
	assert.Error(t, doc.Apply(sqlbuilder.New(nil)))

	doc = parseOne(t, "kind: merge\nsteps: []\n")
	_, err := doc.Render(nil)
	assert.Error(t, err)
}

func TestParseRejectsMalformedSteps(t *testing.T) {
	bad := []string{
		"steps:\n  - {where: [a, b], from: t}\n",
		"steps:\n  - where: {a: b}\n",
		"steps:\n  - [from, t]\n",
		"unknown_key: 1\nsteps: []\n",
	}
	for _, src := range bad {
		_, err := Parse(strings.NewReader(src))
		assert.Error(t, err, src)
	}

	_, err := Parse(strings.NewReader(""))
	assert.Error(t, err)
}

func TestParseMultipleDocuments(t *testing.T) {
	docs, err := Parse(strings.NewReader("steps:\n  - from: a\n---\nkind: delete\nsteps:\n  - from: b\n"))
	require.NoError(t, err)
	require.Len(t, docs, 2)

	query, err := docs[1].Render(nil)
	require.NoError(t, err)
	assert.Equal(t, "DELETE FROM b", query)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stmt.yaml")
	require.NoError(t, os.WriteFile(path, []byte("steps:\n  - from: t\n"), 0o644))

	docs, err := Load(path)
	require.NoError(t, err)
	require.Len(t, docs, 1)

	_, err = Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestStepRoundTrip(t *testing.T) {
	doc := &Document{Steps: []Step{{Op: "distinct"}, {Op: "from", Args: []string{"t"}}}}

	out, err := yaml.Marshal(doc)
	require.NoError(t, err)

	back := parseOne(t, string(out))
	assert.Equal(t, doc.Steps, back.Steps)
}

func TestOperationsSorted(t *testing.T) {
	ops := Operations()
	assert.Contains(t, ops, "where_not_regexp")
	assert.Contains(t, ops, "on_conflict_do_nothing")
	assert.IsIncreasing(t, ops)
}
