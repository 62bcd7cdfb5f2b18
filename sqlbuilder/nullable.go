// Copyright (c) 2025 Yahya Qadeer Dar. All rights reserved.
// Use of this source code is governed by an Apache 2.0 license that can be found in the LICENSE file.

package sqlbuilder

import (
	"database/sql/driver"

	"github.com/YahyaDar/gravity/internal/reflect"
)

// Null is the SQL NULL literal.
const Null = "NULL"

// Nullable wraps an escaping function so that a nil input renders NULL
// without calling fn.
func Nullable[T any](fn func(T) string) func(*T) string {
	return func(v *T) string {
		if v == nil {
			return Null
		}
		return fn(*v)
	}
}

// isNull reports whether v stands for SQL NULL: nil, a nil pointer or
// reference, or a driver.Valuer yielding nil.
func isNull(v interface{}) bool {
	if reflect.IsNil(v) {
		return true
	}
	if valuer, ok := v.(driver.Valuer); ok {
		dv, err := valuer.Value()
		return err == nil && dv == nil
	}
	return false
}

// NullOrValue returns NULL for a null v, EscapeValue otherwise.
func (e *Escaper) NullOrValue(v interface{}, opts ...ValueOption) string {
	if isNull(v) {
		return Null
	}
	return e.EscapeValue(v, opts...)
}

// NullOrList returns NULL for a null list, EscapeList otherwise.
func (e *Escaper) NullOrList(values interface{}, opts ...ValueOption) string {
	if isNull(values) {
		return Null
	}
	return e.EscapeList(values, opts...)
}

// NullOrIdentifier returns NULL for a nil name, QuoteIdentifier otherwise.
func (e *Escaper) NullOrIdentifier(name *string) string {
	return Nullable(e.QuoteIdentifier)(name)
}

// NullOrQualified returns NULL for a nil name, QuoteQualified otherwise.
func (e *Escaper) NullOrQualified(name *string) string {
	return Nullable(e.QuoteQualified)(name)
}

// NullOrSubquery returns NULL for a nil statement, EscapeSubquery otherwise.
func (e *Escaper) NullOrSubquery(sql *string, alias string) string {
	return Nullable(func(s string) string { return e.EscapeSubquery(s, alias) })(sql)
}
