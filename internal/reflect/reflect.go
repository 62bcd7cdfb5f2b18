// Copyright (c) 2025 Yahya Qadeer Dar. All rights reserved.
// Use of this source code is governed by an Apache 2.0 license that can be found in the LICENSE file.

// Package reflect provides the reflection helpers behind value escaping:
// nil detection, pointer indirection, slice flattening and db-tagged struct
// column extraction.
package reflect

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/YahyaDar/gravity/errors"
)

// columnCache stores extracted columns per struct type to avoid repeated
// reflection over the same record types
var (
	columnCache     = make(map[reflect.Type][]*Column)
	columnCacheLock sync.RWMutex
)

// TagKey is the struct tag key read for column annotations
const TagKey = "db"

// Column describes one struct field mapped to a database column
type Column struct {
	// Field is the Go field name
	Field string

	// Name is the column name
	Name string

	// Index is the field index path, including embedded structs
	Index []int

	// Type is the Go type of the field
	Type reflect.Type

	// OmitEmpty skips the column when the field holds its zero value
	OmitEmpty bool

	// ReadOnly skips the column when writing records
	ReadOnly bool
}

// IsNil reports whether v is nil or a nil pointer, map, slice, interface,
// channel or function.
func IsNil(v interface{}) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Slice, reflect.Interface, reflect.Chan, reflect.Func:
		return rv.IsNil()
	}
	return false
}

// Indirect dereferences pointers until a non-pointer value is reached. A nil
// pointer anywhere along the way yields nil.
func Indirect(v interface{}) interface{} {
	if v == nil {
		return nil
	}
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Ptr {
		if rv.IsNil() {
			return nil
		}
		rv = rv.Elem()
	}
	return rv.Interface()
}

// IndirectType dereferences pointer types to get the underlying type
func IndirectType(t reflect.Type) reflect.Type {
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t
}

// Elements returns the items of a slice or array as interface values. The
// second result is false for any other kind, and for byte slices, which are
// treated as scalar values.
func Elements(v interface{}) ([]interface{}, bool) {
	if v == nil {
		return nil, false
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}
	if rv.Type().Elem().Kind() == reflect.Uint8 {
		return nil, false
	}

	items := make([]interface{}, rv.Len())
	for i := range items {
		items[i] = rv.Index(i).Interface()
	}
	return items, true
}

// Primitive converts a value of a named boolean, numeric or string type to
// its underlying predeclared type.
func Primitive(v interface{}) (interface{}, bool) {
	if v == nil {
		return nil, false
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Bool:
		return rv.Bool(), true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int(), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return rv.Uint(), true
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	case reflect.String:
		return rv.String(), true
	}
	return nil, false
}

// IsZero reports whether v holds the zero value of its type.
func IsZero(v interface{}) bool {
	if v == nil {
		return true
	}
	return reflect.ValueOf(v).IsZero()
}

// Columns returns the db-tagged columns of a struct or struct pointer, in
// field order with embedded structs flattened in place. Fields tagged "-"
// and unexported fields are skipped.
func Columns(model interface{}) ([]*Column, error) {
	if model == nil {
		return nil, errors.NewModelError("<nil>", "model cannot be nil", nil)
	}
	modelType := IndirectType(reflect.TypeOf(model))
	if modelType.Kind() != reflect.Struct {
		return nil, errors.NewModelError(fmt.Sprintf("%T", model), "model must be a struct", nil)
	}

	columnCacheLock.RLock()
	cached, ok := columnCache[modelType]
	columnCacheLock.RUnlock()
	if ok {
		return cached, nil
	}

	columns := extractColumns(modelType, nil)

	columnCacheLock.Lock()
	columnCache[modelType] = columns
	columnCacheLock.Unlock()

	return columns, nil
}

func extractColumns(t reflect.Type, parent []int) []*Column {
	columns := make([]*Column, 0, t.NumField())
	seen := make(map[string]bool)

	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		index := append(append([]int{}, parent...), i)
		tag, tagged := sf.Tag.Lookup(TagKey)

		if sf.Anonymous && !tagged {
			ft := IndirectType(sf.Type)
			if ft.Kind() == reflect.Struct {
				for _, c := range extractColumns(ft, index) {
					if !seen[c.Name] {
						columns = append(columns, c)
						seen[c.Name] = true
					}
				}
				continue
			}
		}

		if sf.PkgPath != "" {
			continue
		}

		c := &Column{
			Field: sf.Name,
			Name:  ToSnakeCase(sf.Name),
			Index: index,
			Type:  sf.Type,
		}

		if tagged {
			name, settings := ParseTag(tag)
			if name == "-" {
				continue
			}
			if name != "" {
				c.Name = name
			}
			_, c.OmitEmpty = settings["omitempty"]
			_, c.ReadOnly = settings["readonly"]
		}

		if seen[c.Name] {
			continue
		}
		seen[c.Name] = true
		columns = append(columns, c)
	}

	return columns
}

// Value returns the value held by column c of model. A nil embedded pointer
// on the index path yields nil.
func Value(model interface{}, c *Column) interface{} {
	rv := reflect.ValueOf(model)
	for _, i := range c.Index {
		for rv.Kind() == reflect.Ptr {
			if rv.IsNil() {
				return nil
			}
			rv = rv.Elem()
		}
		rv = rv.Field(i)
	}
	return rv.Interface()
}

// ParseTag splits a tag such as "user_id;omitempty;readonly" into the column
// name and its settings. "column:name" is accepted as an explicit name.
func ParseTag(tag string) (string, map[string]string) {
	var name string
	settings := make(map[string]string)

	for i, part := range strings.Split(tag, ";") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		keyValue := strings.SplitN(part, ":", 2)
		key := strings.TrimSpace(keyValue[0])
		if len(keyValue) == 1 && i == 0 && !isTagOption(key) {
			name = key
			continue
		}

		var value string
		if len(keyValue) > 1 {
			value = strings.TrimSpace(keyValue[1])
		}
		if key == "column" {
			name = value
			continue
		}
		settings[strings.ToLower(key)] = value
	}

	return name, settings
}

func isTagOption(s string) bool {
	switch strings.ToLower(s) {
	case "omitempty", "readonly":
		return true
	}
	return false
}

var (
	matchFirstCapRe = regexp.MustCompile("(.)([A-Z][a-z]+)")
	matchAllCapRe   = regexp.MustCompile("([a-z0-9])([A-Z])")
)

// ToSnakeCase converts a camelCase or PascalCase string to snake_case
func ToSnakeCase(str string) string {
	snake := matchFirstCapRe.ReplaceAllString(str, "${1}_${2}")
	snake = matchAllCapRe.ReplaceAllString(snake, "${1}_${2}")
	return strings.ToLower(snake)
}

// ClearCache clears the column cache
func ClearCache() {
	columnCacheLock.Lock()
	defer columnCacheLock.Unlock()

	columnCache = make(map[reflect.Type][]*Column)
}
