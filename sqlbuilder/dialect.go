// Copyright (c) 2025 Yahya Qadeer Dar. All rights reserved.
// Use of this source code is governed by an Apache 2.0 license that can be found in the LICENSE file.

package sqlbuilder

import (
	"fmt"
	"strings"

	"github.com/YahyaDar/gravity/errors"
)

// Dialect represents the SQL dialect-specific behavior the builder defers to.
// Implementations override only what differs from the neutral base.
type Dialect interface {
	// Name returns the canonical dialect name
	Name() string

	// DriverName returns the database/sql driver name for this dialect
	DriverName() string

	// Escaper returns the value and identifier escaper for this dialect
	Escaper() *Escaper

	// LimitOffset returns the LIMIT clause for the dialect; negative values
	// mean "not set"
	LimitOffset(limit, offset int64) string

	// RegexpOperator returns the regular expression match operator
	RegexpOperator(negate bool) string

	// SupportsCompound reports whether the set operation is available
	SupportsCompound(op CompoundType) bool

	// SupportsReturning reports whether statements accept a RETURNING clause
	SupportsReturning() bool

	// LockModes returns the accepted row locking clauses
	LockModes() []string

	// Modes returns the modifier keywords accepted in the given context
	Modes(ctx ModeContext) []string

	// Upsert renders the conflict handling clause of an INSERT. An empty
	// assignment list asks for the conflict to be ignored.
	Upsert(target, assignments string) string
}

// ModeContext identifies where a modifier keyword list is rendered.
type ModeContext int

const (
	// ModeSelect covers keywords following SELECT
	ModeSelect ModeContext = iota
	// ModeInsert covers keywords following INSERT with VALUES or SET
	ModeInsert
	// ModeInsertSelect covers keywords following INSERT fed by a sub-select
	ModeInsertSelect
	// ModeReplace covers keywords following REPLACE
	ModeReplace
	// ModeUpdate covers keywords following UPDATE
	ModeUpdate
	// ModeDelete covers keywords following DELETE
	ModeDelete
)

// String returns the context name
func (c ModeContext) String() string {
	switch c {
	case ModeSelect:
		return "select"
	case ModeInsert:
		return "insert"
	case ModeInsertSelect:
		return "insert-select"
	case ModeReplace:
		return "replace"
	case ModeUpdate:
		return "update"
	case ModeDelete:
		return "delete"
	default:
		return "unknown"
	}
}

// CompoundType is the set operation joining two SELECT statements.
type CompoundType string

const (
	// CompoundUnion is UNION
	CompoundUnion CompoundType = "UNION"
	// CompoundIntersect is INTERSECT
	CompoundIntersect CompoundType = "INTERSECT"
	// CompoundExcept is EXCEPT
	CompoundExcept CompoundType = "EXCEPT"
)

// baseDialect implements the neutral behavior shared by every dialect.
type baseDialect struct {
	name    string
	driver  string
	escaper *Escaper
}

var (
	neutralSelectModes = []string{
		"ALL", "DISTINCT", "DISTINCTROW", "HIGH_PRIORITY", "STRAIGHT_JOIN",
		"SQL_SMALL_RESULT", "SQL_BIG_RESULT", "SQL_BUFFER_RESULT",
		"SQL_CACHE", "SQL_NO_CACHE", "SQL_CALC_FOUND_ROWS",
	}
	neutralInsertModes       = []string{"LOW_PRIORITY", "DELAYED", "HIGH_PRIORITY", "IGNORE"}
	neutralInsertSelectModes = []string{"LOW_PRIORITY", "HIGH_PRIORITY", "IGNORE"}
	neutralReplaceModes      = []string{"LOW_PRIORITY", "DELAYED"}
	neutralUpdateModes       = []string{"LOW_PRIORITY", "IGNORE"}
	neutralDeleteModes       = []string{"LOW_PRIORITY", "QUICK", "IGNORE"}
)

func (d *baseDialect) Name() string       { return d.name }
func (d *baseDialect) DriverName() string { return d.driver }
func (d *baseDialect) Escaper() *Escaper  { return d.escaper }

// LimitOffset returns LIMIT n OFFSET m
func (d *baseDialect) LimitOffset(limit, offset int64) string {
	var parts []string
	if limit >= 0 {
		parts = append(parts, fmt.Sprintf("LIMIT %d", limit))
	}
	if offset >= 0 {
		parts = append(parts, fmt.Sprintf("OFFSET %d", offset))
	}
	return strings.Join(parts, " ")
}

func (d *baseDialect) RegexpOperator(negate bool) string {
	if negate {
		return "NOT REGEXP"
	}
	return "REGEXP"
}

func (d *baseDialect) SupportsCompound(op CompoundType) bool {
	return op == CompoundUnion || op == CompoundIntersect || op == CompoundExcept
}

func (d *baseDialect) SupportsReturning() bool { return false }

func (d *baseDialect) LockModes() []string {
	return []string{"FOR UPDATE", "FOR SHARE", "LOCK IN SHARE MODE"}
}

func (d *baseDialect) Modes(ctx ModeContext) []string {
	switch ctx {
	case ModeSelect:
		return neutralSelectModes
	case ModeInsert:
		return neutralInsertModes
	case ModeInsertSelect:
		return neutralInsertSelectModes
	case ModeReplace:
		return neutralReplaceModes
	case ModeUpdate:
		return neutralUpdateModes
	case ModeDelete:
		return neutralDeleteModes
	}
	return nil
}

// Upsert returns ON DUPLICATE KEY UPDATE; the target is implied by the
// table's unique keys.
func (d *baseDialect) Upsert(target, assignments string) string {
	if assignments == "" {
		return ""
	}
	return "ON DUPLICATE KEY UPDATE " + assignments
}

// Standard returns the dialect-neutral base: double-quoted identifiers, no
// backslash escapes and the full keyword allow-lists.
func Standard() Dialect {
	return &baseDialect{
		name:   "standard",
		driver: "",
		escaper: NewEscaper(EscaperConfig{
			IdentifierQuote: `"`,
			TrueLiteral:     "TRUE",
			FalseLiteral:    "FALSE",
		}),
	}
}

// Lookup resolves a dialect by name or driver alias.
func Lookup(name string) (Dialect, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "standard", "ansi":
		return Standard(), nil
	case "postgres", "postgresql", "pgx":
		return Postgres(), nil
	case "mysql":
		return MySQL(), nil
	case "mariadb":
		return MariaDB(), nil
	case "sqlite", "sqlite3":
		return SQLite(), nil
	}
	return nil, fmt.Errorf("%w: %s", errors.ErrUnknownDialect, name)
}

// allowed reports whether mode is in list.
func allowed(list []string, mode string) bool {
	for _, m := range list {
		if m == mode {
			return true
		}
	}
	return false
}
