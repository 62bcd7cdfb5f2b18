// Copyright (c) 2025 Yahya Qadeer Dar. All rights reserved.
// Use of this source code is governed by an Apache 2.0 license that can be found in the LICENSE file.

// Package sqlbuilder assembles SELECT, INSERT, REPLACE, UPDATE and DELETE
// statements from a fluent sequence of calls and renders them as a single
// query string for a given SQL dialect.
//
// A Builder accumulates each clause in its own buffer. Repeated calls to the
// same clause are merged with that clause's separator, conditions are joined
// with AND unless And or Or says otherwise, and a JOIN accepts either ON or
// USING but never both. Values reach the builder already escaped; use the
// dialect's Escaper to produce them.
//
//	b := sqlbuilder.New(sqlbuilder.Postgres())
//	esc := b.Escaper()
//	query := b.Select("u.id", "u.name").
//		From(esc.QuoteIdentifier("users") + " u").
//		LeftJoin("orders o").On("o.user_id", "u.id").
//		Where("u.active", esc.EscapeValue(true)).
//		OrderByDesc("u.id").
//		Limit(10).
//		SelectSQL()
package sqlbuilder

// Builder accumulates the clauses of one SQL statement. It is not safe for
// concurrent use and has no reset; construct a new Builder per statement.
type Builder struct {
	dialect Dialect

	// projection
	sel        string
	selectMode []string
	returning  string

	// mutation targets
	update          string
	updateMode      []string
	del             string
	deleteMode      []string
	into            string
	insertMode      []string
	set             string
	columnNames     string
	values          string
	upsert          string
	conflictTarget  string
	conflictIgnore  bool
	selectStatement string

	// source
	from string
	join string

	// filter
	where     string
	having    string
	connector string

	// grouping and ordering
	groupBy string
	orderBy string
	limit   string

	// set operations and common table expressions
	compound    string
	with        string
	isRecursive bool

	joinState joinState
	lockMode  string
}

// New creates a builder for the given dialect; a nil dialect selects
// Standard.
func New(dialect Dialect) *Builder {
	if dialect == nil {
		dialect = Standard()
	}
	return &Builder{dialect: dialect}
}

// Dialect returns the dialect the builder renders for
func (b *Builder) Dialect() Dialect {
	return b.dialect
}

// Escaper returns the dialect's escaper
func (b *Builder) Escaper() *Escaper {
	return b.dialect.Escaper()
}

// clauseKind selects the buffer a condition or group targets.
type clauseKind int

const (
	clauseWhere clauseKind = iota
	clauseHaving
	clauseOn
)

// keyword returns the prefix written before the first contribution
func (k clauseKind) keyword() string {
	switch k {
	case clauseWhere:
		return "WHERE "
	case clauseHaving:
		return "HAVING "
	default:
		return " ON "
	}
}

// buffer returns the string buffer holding the clause
func (b *Builder) buffer(k clauseKind) *string {
	switch k {
	case clauseWhere:
		return &b.where
	case clauseHaving:
		return &b.having
	default:
		return &b.join
	}
}

// joinState tracks ON/USING exclusivity for the most recent JOIN.
type joinState int

const (
	// joinFresh: no join yet, or the last join is bound and a NATURAL join followed
	joinFresh joinState = iota
	// joinAwaitingCondition: a join was opened and has no ON or USING yet
	joinAwaitingCondition
	// joinBoundOn: the join is qualified by ON
	joinBoundOn
	// joinBoundUsing: the join is qualified by USING
	joinBoundUsing
)

// opened moves to the state following a JOIN of the given type. A NATURAL
// join clears the ON/USING binding but keeps a pending join awaiting.
func (s joinState) opened(natural bool) joinState {
	if !natural {
		return joinAwaitingCondition
	}
	if s == joinAwaitingCondition {
		return s
	}
	return joinFresh
}

// bindOn moves to the state following an ON condition or group start. The
// second result is false when the join is bound to USING, in which case the
// ON contribution must be dropped.
func (s joinState) bindOn() (joinState, bool) {
	switch s {
	case joinBoundUsing:
		return s, false
	case joinAwaitingCondition:
		return joinBoundOn, true
	default:
		return s, true
	}
}

// bindUsing moves to the state following USING. The second result is false
// when the join is bound to ON.
func (s joinState) bindUsing() (joinState, bool) {
	if s == joinBoundOn {
		return s, false
	}
	return joinBoundUsing, true
}

// awaiting reports whether the current join still lacks a qualifier
func (s joinState) awaiting() bool {
	return s == joinAwaitingCondition
}
