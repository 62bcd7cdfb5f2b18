// Copyright (c) 2025 Yahya Qadeer Dar. All rights reserved.
// Use of this source code is governed by an Apache 2.0 license that can be found in the LICENSE file.

package errors

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMissingTableReferenceError(t *testing.T) {
	err := NewMissingTableReferenceError("from")

	assert.Equal(t, "missing table reference: no from clause", err.Error())
	assert.True(t, Is(err, ErrMissingTableReference))
	assert.True(t, err.GravityError())

	wrapped := Wrap(err, "rendering delete")
	var target *MissingTableReferenceError
	require.True(t, As(wrapped, &target))
	assert.Equal(t, "from", target.Clause)
}

func TestQueryErrorUnwrap(t *testing.T) {
	cause := fmt.Errorf("syntax error at or near")
	err := NewQueryError("SELECT", "exec failed", cause)

	assert.Equal(t, "query error: exec failed: syntax error at or near", err.Error())
	assert.True(t, Is(err, ErrQueryFailed))
	assert.Equal(t, cause, err.Unwrap())
}

func TestConfigErrorBuilders(t *testing.T) {
	err := NewConfigError("unsupported dialect", nil).WithKey("dialect").WithValue("oracle")

	assert.Equal(t, "config error (dialect): unsupported dialect [oracle]", err.Error())
	assert.True(t, Is(err, ErrInvalidConfig))
}

func TestValidationErrorSortsFields(t *testing.T) {
	err := NewValidationError("config", map[string]string{
		"database.dsn":    "cannot be empty",
		"database.driver": "cannot be empty",
	}, nil)

	assert.Equal(t,
		"validation error (config): database.driver: cannot be empty; database.dsn: cannot be empty",
		err.Error())
	assert.True(t, Is(err, ErrValidationFailed))
}

func TestWrapNil(t *testing.T) {
	assert.Nil(t, Wrap(nil, "ignored"))
	assert.Nil(t, Wrapf(nil, "ignored %d", 1))
}

func TestPrettyFormatListsCauses(t *testing.T) {
	err := Wrap(NewMissingTableReferenceError("into"), "render insert")

	out := PrettyFormat(err)
	assert.Contains(t, out, "render insert: missing table reference: no into clause")
	assert.Contains(t, out, "clause: into")
	assert.Contains(t, out, "cause 1: missing table reference: no into clause")
}

func TestJSONFormat(t *testing.T) {
	out, err := JSONFormat(NewConnectionError("postgres", "ping failed", nil))
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.Equal(t, "connection error (postgres): ping failed", decoded["message"])
	assert.Equal(t, map[string]interface{}{"driver": "postgres"}, decoded["context"])
}
