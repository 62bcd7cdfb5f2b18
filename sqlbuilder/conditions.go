// Copyright (c) 2025 Yahya Qadeer Dar. All rights reserved.
// Use of this source code is governed by an Apache 2.0 license that can be found in the LICENSE file.

package sqlbuilder

// Conditions take pre-escaped operands. The first condition of a clause
// receives the clause keyword, later ones are joined with AND unless a
// pending And or Or says otherwise. ON conditions apply to the most recent
// join and are ignored when that join uses USING.

func negated(negate bool, positive, negative string) string {
	if negate {
		return negative
	}
	return positive
}

func (b *Builder) like(kind clauseKind, left, right string, negate bool) *Builder {
	b.setCondition(left, right, negated(negate, "LIKE", "NOT LIKE"), kind)
	return b
}

func (b *Builder) in(kind clauseKind, left, list string, negate bool) *Builder {
	b.setCondition(left, list, negated(negate, "IN", "NOT IN"), kind)
	return b
}

func (b *Builder) between(kind clauseKind, left, lower, upper string, negate bool) *Builder {
	b.setCondition(left, lower+" AND "+upper, negated(negate, "BETWEEN", "NOT BETWEEN"), kind)
	return b
}

func (b *Builder) null(kind clauseKind, left string, negate bool) *Builder {
	b.setCondition(left, Null, negated(negate, "IS", "IS NOT"), kind)
	return b
}

func (b *Builder) regexp(kind clauseKind, left, pattern string, negate bool) *Builder {
	b.setCondition(left, pattern, b.dialect.RegexpOperator(negate), kind)
	return b
}

// And makes the next condition or group join with AND
func (b *Builder) And() *Builder {
	b.connector = "AND"
	return b
}

// Or makes the next condition or group join with OR
func (b *Builder) Or() *Builder {
	b.connector = "OR"
	return b
}

// SQLAnd is an alias of And.
//
// Deprecated: use And.
func (b *Builder) SQLAnd() *Builder {
	return b.And()
}

// SQLOr is an alias of Or.
//
// Deprecated: use Or.
func (b *Builder) SQLOr() *Builder {
	return b.Or()
}

// Where adds left = right
func (b *Builder) Where(left, right string) *Builder {
	return b.WhereOp(left, "=", right)
}

// WhereOp adds left operator right
func (b *Builder) WhereOp(left, operator, right string) *Builder {
	b.setCondition(left, right, operator, clauseWhere)
	return b
}

// WhereLike adds left LIKE right
func (b *Builder) WhereLike(left, right string) *Builder {
	return b.like(clauseWhere, left, right, false)
}

// WhereNotLike adds left NOT LIKE right
func (b *Builder) WhereNotLike(left, right string) *Builder {
	return b.like(clauseWhere, left, right, true)
}

// WhereIn adds left IN list; list is an escaped, parenthesized list
func (b *Builder) WhereIn(left, list string) *Builder {
	return b.in(clauseWhere, left, list, false)
}

// WhereNotIn adds left NOT IN list
func (b *Builder) WhereNotIn(left, list string) *Builder {
	return b.in(clauseWhere, left, list, true)
}

// WhereBetween adds left BETWEEN lower AND upper
func (b *Builder) WhereBetween(left, lower, upper string) *Builder {
	return b.between(clauseWhere, left, lower, upper, false)
}

// WhereNotBetween adds left NOT BETWEEN lower AND upper
func (b *Builder) WhereNotBetween(left, lower, upper string) *Builder {
	return b.between(clauseWhere, left, lower, upper, true)
}

// WhereNull adds left IS NULL
func (b *Builder) WhereNull(left string) *Builder {
	return b.null(clauseWhere, left, false)
}

// WhereNotNull adds left IS NOT NULL
func (b *Builder) WhereNotNull(left string) *Builder {
	return b.null(clauseWhere, left, true)
}

// WhereRegexp adds a regular expression match using the dialect's operator
func (b *Builder) WhereRegexp(left, pattern string) *Builder {
	return b.regexp(clauseWhere, left, pattern, false)
}

// WhereNotRegexp adds a negated regular expression match
func (b *Builder) WhereNotRegexp(left, pattern string) *Builder {
	return b.regexp(clauseWhere, left, pattern, true)
}

// StartWhereGroup opens a parenthesized group in WHERE
func (b *Builder) StartWhereGroup() *Builder {
	b.groupStart(clauseWhere)
	return b
}

// EndWhereGroup closes the innermost WHERE group
func (b *Builder) EndWhereGroup() *Builder {
	b.groupEnd(clauseWhere)
	return b
}

// Having adds left = right to HAVING
func (b *Builder) Having(left, right string) *Builder {
	return b.HavingOp(left, "=", right)
}

// HavingOp adds left operator right to HAVING
func (b *Builder) HavingOp(left, operator, right string) *Builder {
	b.setCondition(left, right, operator, clauseHaving)
	return b
}

// HavingLike adds left LIKE right to HAVING
func (b *Builder) HavingLike(left, right string) *Builder {
	return b.like(clauseHaving, left, right, false)
}

// HavingNotLike adds left NOT LIKE right to HAVING
func (b *Builder) HavingNotLike(left, right string) *Builder {
	return b.like(clauseHaving, left, right, true)
}

// HavingIn adds left IN list to HAVING
func (b *Builder) HavingIn(left, list string) *Builder {
	return b.in(clauseHaving, left, list, false)
}

// HavingNotIn adds left NOT IN list to HAVING
func (b *Builder) HavingNotIn(left, list string) *Builder {
	return b.in(clauseHaving, left, list, true)
}

// HavingBetween adds left BETWEEN lower AND upper to HAVING
func (b *Builder) HavingBetween(left, lower, upper string) *Builder {
	return b.between(clauseHaving, left, lower, upper, false)
}

// HavingNotBetween adds left NOT BETWEEN lower AND upper to HAVING
func (b *Builder) HavingNotBetween(left, lower, upper string) *Builder {
	return b.between(clauseHaving, left, lower, upper, true)
}

// HavingNull adds left IS NULL to HAVING
func (b *Builder) HavingNull(left string) *Builder {
	return b.null(clauseHaving, left, false)
}

// HavingNotNull adds left IS NOT NULL to HAVING
func (b *Builder) HavingNotNull(left string) *Builder {
	return b.null(clauseHaving, left, true)
}

// HavingRegexp adds a regular expression match to HAVING
func (b *Builder) HavingRegexp(left, pattern string) *Builder {
	return b.regexp(clauseHaving, left, pattern, false)
}

// HavingNotRegexp adds a negated regular expression match to HAVING
func (b *Builder) HavingNotRegexp(left, pattern string) *Builder {
	return b.regexp(clauseHaving, left, pattern, true)
}

// StartHavingGroup opens a parenthesized group in HAVING
func (b *Builder) StartHavingGroup() *Builder {
	b.groupStart(clauseHaving)
	return b
}

// EndHavingGroup closes the innermost HAVING group
func (b *Builder) EndHavingGroup() *Builder {
	b.groupEnd(clauseHaving)
	return b
}

// On adds left = right to the current join
func (b *Builder) On(left, right string) *Builder {
	return b.OnOp(left, "=", right)
}

// OnOp adds left operator right to the current join
func (b *Builder) OnOp(left, operator, right string) *Builder {
	b.setCondition(left, right, operator, clauseOn)
	return b
}

// OnLike adds left LIKE right to the current join
func (b *Builder) OnLike(left, right string) *Builder {
	return b.like(clauseOn, left, right, false)
}

// OnNotLike adds left NOT LIKE right to the current join
func (b *Builder) OnNotLike(left, right string) *Builder {
	return b.like(clauseOn, left, right, true)
}

// OnIn adds left IN list to the current join
func (b *Builder) OnIn(left, list string) *Builder {
	return b.in(clauseOn, left, list, false)
}

// OnNotIn adds left NOT IN list to the current join
func (b *Builder) OnNotIn(left, list string) *Builder {
	return b.in(clauseOn, left, list, true)
}

// OnBetween adds left BETWEEN lower AND upper to the current join
func (b *Builder) OnBetween(left, lower, upper string) *Builder {
	return b.between(clauseOn, left, lower, upper, false)
}

// OnNotBetween adds left NOT BETWEEN lower AND upper to the current join
func (b *Builder) OnNotBetween(left, lower, upper string) *Builder {
	return b.between(clauseOn, left, lower, upper, true)
}

// OnNull adds left IS NULL to the current join
func (b *Builder) OnNull(left string) *Builder {
	return b.null(clauseOn, left, false)
}

// OnNotNull adds left IS NOT NULL to the current join
func (b *Builder) OnNotNull(left string) *Builder {
	return b.null(clauseOn, left, true)
}

// OnRegexp adds a regular expression match to the current join
func (b *Builder) OnRegexp(left, pattern string) *Builder {
	return b.regexp(clauseOn, left, pattern, false)
}

// OnNotRegexp adds a negated regular expression match to the current join
func (b *Builder) OnNotRegexp(left, pattern string) *Builder {
	return b.regexp(clauseOn, left, pattern, true)
}

// StartOnGroup opens a parenthesized group in the current join's ON clause
func (b *Builder) StartOnGroup() *Builder {
	b.groupStart(clauseOn)
	return b
}

// EndOnGroup closes the innermost ON group
func (b *Builder) EndOnGroup() *Builder {
	b.groupEnd(clauseOn)
	return b
}
