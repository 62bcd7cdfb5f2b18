// Copyright (c) 2025 Yahya Qadeer Dar. All rights reserved.
// Use of this source code is governed by an Apache 2.0 license that can be found in the LICENSE file.

package sqlbuilder

import (
	"fmt"
	"strings"

	"github.com/YahyaDar/gravity/errors"
)

// Kind is the type of statement a builder is rendered as.
type Kind int

const (
	// KindSelect renders a SELECT
	KindSelect Kind = iota
	// KindInsert renders an INSERT
	KindInsert
	// KindReplace renders a REPLACE
	KindReplace
	// KindUpdate renders an UPDATE
	KindUpdate
	// KindDelete renders a DELETE
	KindDelete
)

// String returns the SQL verb of the kind
func (k Kind) String() string {
	switch k {
	case KindSelect:
		return "SELECT"
	case KindInsert:
		return "INSERT"
	case KindReplace:
		return "REPLACE"
	case KindUpdate:
		return "UPDATE"
	case KindDelete:
		return "DELETE"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// ParseKind converts a statement verb such as "select" into a Kind.
func ParseKind(s string) (Kind, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "SELECT":
		return KindSelect, nil
	case "INSERT":
		return KindInsert, nil
	case "REPLACE":
		return KindReplace, nil
	case "UPDATE":
		return KindUpdate, nil
	case "DELETE":
		return KindDelete, nil
	}
	return 0, fmt.Errorf("unknown statement kind %q", s)
}

// SQL renders the statement as the given kind.
func (b *Builder) SQL(kind Kind) (string, error) {
	switch kind {
	case KindSelect:
		return b.SelectSQL(), nil
	case KindInsert:
		return b.InsertSQL()
	case KindReplace:
		return b.ReplaceSQL()
	case KindUpdate:
		return b.UpdateSQL()
	case KindDelete:
		return b.DeleteSQL()
	}
	return "", fmt.Errorf("unknown statement kind %d", int(kind))
}

// SelectSQL renders a SELECT. With a compound chain the base query is
// parenthesized and the chain appended; WITH precedes both.
func (b *Builder) SelectSQL() string {
	projection := b.sel
	if projection == "" {
		projection = "*"
	}

	query := "SELECT " + concat(
		modes(b.selectMode, b.dialect.Modes(ModeSelect)),
		projection,
		b.from,
		b.join,
		b.where,
		b.groupBy,
		b.having,
		b.orderBy,
		b.limit,
		b.lockMode,
	)

	if b.compound != "" {
		query = "(" + query + ") " + b.compound
	}

	return concat(b.withClause(), query)
}

// DeleteSQL renders a DELETE. ORDER BY, LIMIT and RETURNING are only
// rendered for a single-table delete without explicit tables or joins.
func (b *Builder) DeleteSQL() (string, error) {
	if b.from == "" {
		return "", errors.NewMissingTableReferenceError("from")
	}

	parts := []string{
		modes(b.deleteMode, b.dialect.Modes(ModeDelete)),
		b.del,
		b.from,
		b.join,
		b.where,
	}
	if b.del == "" && b.join == "" {
		parts = append(parts, b.orderBy, b.limit, b.returning)
	}

	return "DELETE " + concat(parts...), nil
}

// InsertSQL renders an INSERT fed by a sub-select, a SET list or VALUES, in
// that order of preference, followed by the conflict clause and RETURNING.
func (b *Builder) InsertSQL() (string, error) {
	if b.into == "" {
		return "", errors.NewMissingTableReferenceError("into")
	}

	ctx := ModeInsert
	if b.selectStatement != "" {
		ctx = ModeInsertSelect
	}

	return "INSERT " + concat(
		modes(b.insertMode, b.dialect.Modes(ctx)),
		b.into,
		b.insertSource(),
		b.conflictClause(),
		b.returning,
	), nil
}

// ReplaceSQL renders a REPLACE; it takes the same sources as INSERT but no
// conflict clause.
func (b *Builder) ReplaceSQL() (string, error) {
	if b.into == "" {
		return "", errors.NewMissingTableReferenceError("into")
	}

	return "REPLACE " + concat(
		modes(b.insertMode, b.dialect.Modes(ModeReplace)),
		b.into,
		b.insertSource(),
		b.returning,
	), nil
}

// UpdateSQL renders an UPDATE. ORDER BY and LIMIT are only rendered when a
// single table is updated without joins.
func (b *Builder) UpdateSQL() (string, error) {
	if b.update == "" {
		return "", errors.NewMissingTableReferenceError("update")
	}

	parts := []string{
		modes(b.updateMode, b.dialect.Modes(ModeUpdate)),
		b.update,
		b.join,
		b.set,
		b.where,
	}
	if !strings.Contains(b.update, ",") && b.join == "" {
		parts = append(parts, b.orderBy, b.limit)
	}

	return "UPDATE " + concat(parts...), nil
}

func (b *Builder) withClause() string {
	switch {
	case b.with == "":
		return ""
	case b.isRecursive:
		return "WITH RECURSIVE " + b.with
	default:
		return "WITH " + b.with
	}
}

// insertSource picks the row source of an INSERT or REPLACE
func (b *Builder) insertSource() string {
	switch {
	case b.selectStatement != "":
		return concat(b.columnList(), b.selectStatement)
	case b.set != "":
		return b.set
	default:
		return concat(b.columnList(), b.values)
	}
}

func (b *Builder) columnList() string {
	columns := implode(b.columnNames)
	if columns == "" {
		return ""
	}
	return "(" + columns + ")"
}

func (b *Builder) conflictClause() string {
	if b.upsert == "" && !b.conflictIgnore {
		return ""
	}
	return b.dialect.Upsert(b.conflictTarget, b.upsert)
}
