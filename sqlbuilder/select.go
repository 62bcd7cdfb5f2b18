// Copyright (c) 2025 Yahya Qadeer Dar. All rights reserved.
// Use of this source code is governed by an Apache 2.0 license that can be found in the LICENSE file.

package sqlbuilder

import "strings"

// SetOperator qualifies a set operation with ALL or DISTINCT.
type SetOperator string

const (
	// SetDefault leaves the set operation unqualified
	SetDefault SetOperator = ""
	// SetAll keeps duplicate rows
	SetAll SetOperator = "ALL"
	// SetDistinct removes duplicate rows
	SetDistinct SetOperator = "DISTINCT"
)

// Select adds expressions to the projection. Calling it without arguments
// adds NULL.
func (b *Builder) Select(exprs ...string) *Builder {
	appendList(&b.sel, "", exprs)
	return b
}

// SelectMode adds modifier keywords such as DISTINCT or SQL_CACHE. Keywords
// the dialect does not accept are dropped when the statement is rendered.
func (b *Builder) SelectMode(modes ...string) *Builder {
	b.selectMode = append(b.selectMode, normalizeModes(modes)...)
	return b
}

// Distinct is shorthand for SelectMode("DISTINCT")
func (b *Builder) Distinct() *Builder {
	return b.SelectMode("DISTINCT")
}

// Returning adds expressions to the RETURNING clause. It does nothing for
// dialects without RETURNING.
func (b *Builder) Returning(exprs ...string) *Builder {
	if !b.dialect.SupportsReturning() {
		return b
	}
	appendList(&b.returning, "RETURNING ", exprs)
	return b
}

// From adds a table reference, optionally followed by index hints.
func (b *Builder) From(table string, hints ...string) *Builder {
	b.setFrom(table, hints)
	return b
}

// Join opens a join of the given type ("", "INNER", "LEFT OUTER",
// "NATURAL", "STRAIGHT", ...). Every non-NATURAL join awaits ON or USING.
func (b *Builder) Join(table, joinType string, hints ...string) *Builder {
	b.setJoin(table, joinType, hints)
	return b
}

// InnerJoin opens an INNER JOIN
func (b *Builder) InnerJoin(table string, hints ...string) *Builder {
	return b.Join(table, "INNER", hints...)
}

// LeftJoin opens a LEFT JOIN
func (b *Builder) LeftJoin(table string, hints ...string) *Builder {
	return b.Join(table, "LEFT", hints...)
}

// RightJoin opens a RIGHT JOIN
func (b *Builder) RightJoin(table string, hints ...string) *Builder {
	return b.Join(table, "RIGHT", hints...)
}

// CrossJoin opens a CROSS JOIN
func (b *Builder) CrossJoin(table string, hints ...string) *Builder {
	return b.Join(table, "CROSS", hints...)
}

// NaturalJoin adds a NATURAL JOIN, which takes no condition
func (b *Builder) NaturalJoin(table string, hints ...string) *Builder {
	return b.Join(table, "NATURAL", hints...)
}

// StraightJoin opens a STRAIGHT_JOIN
func (b *Builder) StraightJoin(table string, hints ...string) *Builder {
	return b.Join(table, "STRAIGHT", hints...)
}

// Using qualifies the current join with USING. It is ignored once the join
// has an ON condition; repeated calls extend the column list.
func (b *Builder) Using(columns ...string) *Builder {
	if len(columns) == 0 {
		return b
	}
	b.setUsing(strings.Join(columns, ", "))
	return b
}

// GroupBy adds grouping expressions
func (b *Builder) GroupBy(exprs ...string) *Builder {
	if len(exprs) == 0 {
		return b
	}
	appendList(&b.groupBy, "GROUP BY ", exprs)
	return b
}

// OrderBy adds an ascending sort expression
func (b *Builder) OrderBy(expr string) *Builder {
	appendList(&b.orderBy, "ORDER BY ", []string{expr})
	return b
}

// OrderByDesc adds a descending sort expression
func (b *Builder) OrderByDesc(expr string) *Builder {
	return b.OrderBy(expr + " DESC")
}

// Limit sets the maximum number of rows. A negative value clears it.
func (b *Builder) Limit(n int64) *Builder {
	return b.LimitOffset(n, -1)
}

// LimitOffset sets the row count and the number of rows to skip. A negative
// value leaves the corresponding part out.
func (b *Builder) LimitOffset(n, offset int64) *Builder {
	b.limit = b.dialect.LimitOffset(n, offset)
	return b
}

// LockMode sets the row locking clause, e.g. "FOR UPDATE". Modes the dialect
// does not support are ignored.
func (b *Builder) LockMode(mode string) *Builder {
	m := strings.Join(strings.Fields(strings.ToUpper(mode)), " ")
	if allowed(b.dialect.LockModes(), m) {
		b.lockMode = m
	}
	return b
}

// Union appends UNION query to the compound chain.
func (b *Builder) Union(query string, op SetOperator) *Builder {
	b.setCompound(query, CompoundUnion, op)
	return b
}

// Intersect appends INTERSECT query when the dialect supports it.
func (b *Builder) Intersect(query string, op SetOperator) *Builder {
	if b.dialect.SupportsCompound(CompoundIntersect) {
		b.setCompound(query, CompoundIntersect, op)
	}
	return b
}

// Except appends EXCEPT query when the dialect supports it.
func (b *Builder) Except(query string, op SetOperator) *Builder {
	if b.dialect.SupportsCompound(CompoundExcept) {
		b.setCompound(query, CompoundExcept, op)
	}
	return b
}

// With adds a common table expression. The newest expression is rendered
// first.
func (b *Builder) With(alias, query string, columns ...string) *Builder {
	b.setWith(alias, query, "", "", columns)
	return b
}

// WithRecursive adds a recursive common table expression built from an
// anchor and a recursive part joined by UNION, or UNION ALL when unionAll is
// set. Any recursive expression turns the clause into WITH RECURSIVE.
func (b *Builder) WithRecursive(alias, anchor, recursive string, unionAll bool, columns ...string) *Builder {
	keyword := "UNION"
	if unionAll {
		keyword = "UNION ALL"
	}
	b.setWith(alias, anchor, recursive, keyword, columns)
	return b
}
