// Copyright (c) 2025 Yahya Qadeer Dar. All rights reserved.
// Use of this source code is governed by an Apache 2.0 license that can be found in the LICENSE file.

package reflect

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YahyaDar/gravity/errors"
)

type Audit struct {
	CreatedAt time.Time
	UpdatedBy string `db:"updated_by;omitempty"`
}

type account struct {
	*Audit
	ID       int64  `db:"id;readonly"`
	UserName string `db:"column:login"`
	Email    string
	Secret   string `db:"-"`
	internal string
}

func TestColumns(t *testing.T) {
	columns, err := Columns(&account{})
	require.NoError(t, err)

	names := make([]string, len(columns))
	for i, c := range columns {
		names[i] = c.Name
	}
	assert.Equal(t, []string{"created_at", "updated_by", "id", "login", "email"}, names)

	assert.True(t, columns[1].OmitEmpty)
	assert.True(t, columns[2].ReadOnly)
	assert.Equal(t, []int{0, 1}, columns[1].Index)

	again, err := Columns(account{})
	require.NoError(t, err)
	assert.Equal(t, columns, again)
}

func TestColumnsRejectsNonStruct(t *testing.T) {
	_, err := Columns(42)
	require.Error(t, err)

	var merr *errors.ModelError
	require.True(t, errors.As(err, &merr))
	assert.Equal(t, "int", merr.Model)

	_, err = Columns(nil)
	require.Error(t, err)
}

func TestValue(t *testing.T) {
	columns, err := Columns(account{})
	require.NoError(t, err)

	a := account{ID: 7, UserName: "ada"}
	assert.Nil(t, Value(a, columns[1]), "nil embedded pointer")
	assert.Equal(t, int64(7), Value(a, columns[2]))
	assert.Equal(t, "ada", Value(&a, columns[3]))

	a.Audit = &Audit{UpdatedBy: "root"}
	assert.Equal(t, "root", Value(&a, columns[1]))
}

func TestIsNilAndIndirect(t *testing.T) {
	var p *int
	var s []string
	n := 3

	assert.True(t, IsNil(nil))
	assert.True(t, IsNil(p))
	assert.True(t, IsNil(s))
	assert.False(t, IsNil(0))
	assert.False(t, IsNil(&n))

	assert.Nil(t, Indirect(p))
	assert.Equal(t, 3, Indirect(&n))
	pp := &n
	assert.Equal(t, 3, Indirect(&pp))
	assert.Equal(t, "x", Indirect("x"))
}

func TestElements(t *testing.T) {
	items, ok := Elements([]int{1, 2})
	require.True(t, ok)
	assert.Equal(t, []interface{}{1, 2}, items)

	items, ok = Elements([2]string{"a", "b"})
	require.True(t, ok)
	assert.Equal(t, []interface{}{"a", "b"}, items)

	_, ok = Elements([]byte("raw"))
	assert.False(t, ok)

	_, ok = Elements("abc")
	assert.False(t, ok)
}

func TestParseTag(t *testing.T) {
	name, settings := ParseTag("user_id;omitempty")
	assert.Equal(t, "user_id", name)
	assert.Contains(t, settings, "omitempty")

	name, settings = ParseTag("readonly")
	assert.Empty(t, name)
	assert.Contains(t, settings, "readonly")

	name, _ = ParseTag("column:login;readonly")
	assert.Equal(t, "login", name)
}

func TestToSnakeCase(t *testing.T) {
	assert.Equal(t, "user_id", ToSnakeCase("UserID"))
	assert.Equal(t, "http_server", ToSnakeCase("HTTPServer"))
	assert.Equal(t, "created_at", ToSnakeCase("CreatedAt"))
	assert.Equal(t, "email", ToSnakeCase("Email"))
}

func TestIsZero(t *testing.T) {
	assert.True(t, IsZero(""))
	assert.True(t, IsZero(nil))
	assert.False(t, IsZero(1))
}
