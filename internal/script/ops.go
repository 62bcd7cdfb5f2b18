// Copyright (c) 2025 Yahya Qadeer Dar. All rights reserved.
// Use of this source code is governed by an Apache 2.0 license that can be found in the LICENSE file.

package script

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/YahyaDar/gravity/sqlbuilder"
)

type builder = sqlbuilder.Builder

// operation binds a step name to a builder method. max < 0 means the
// operation takes any number of arguments from min upward.
type operation struct {
	min, max int
	apply    func(b *builder, args []string) error
}

var operations = map[string]operation{
	// projection and sources
	"select":        variadic(0, (*builder).Select),
	"select_mode":   variadic(1, (*builder).SelectMode),
	"distinct":      nullary((*builder).Distinct),
	"returning":     variadic(1, (*builder).Returning),
	"from":          withHints((*builder).From),
	"join":          {min: 2, max: -1, apply: join},
	"inner_join":    withHints((*builder).InnerJoin),
	"left_join":     withHints((*builder).LeftJoin),
	"right_join":    withHints((*builder).RightJoin),
	"cross_join":    withHints((*builder).CrossJoin),
	"natural_join":  withHints((*builder).NaturalJoin),
	"straight_join": withHints((*builder).StraightJoin),
	"using":         variadic(1, (*builder).Using),

	// conditions
	"and":               nullary((*builder).And),
	"or":                nullary((*builder).Or),
	"where":             binary((*builder).Where),
	"where_op":          ternary((*builder).WhereOp),
	"where_like":        binary((*builder).WhereLike),
	"where_not_like":    binary((*builder).WhereNotLike),
	"where_in":          binary((*builder).WhereIn),
	"where_not_in":      binary((*builder).WhereNotIn),
	"where_between":     ternary((*builder).WhereBetween),
	"where_not_between": ternary((*builder).WhereNotBetween),
	"where_null":        unary((*builder).WhereNull),
	"where_not_null":    unary((*builder).WhereNotNull),
	"where_regexp":      binary((*builder).WhereRegexp),
	"where_not_regexp":  binary((*builder).WhereNotRegexp),
	"start_where_group": nullary((*builder).StartWhereGroup),
	"end_where_group":   nullary((*builder).EndWhereGroup),

	"having":             binary((*builder).Having),
	"having_op":          ternary((*builder).HavingOp),
	"having_like":        binary((*builder).HavingLike),
	"having_not_like":    binary((*builder).HavingNotLike),
	"having_in":          binary((*builder).HavingIn),
	"having_not_in":      binary((*builder).HavingNotIn),
	"having_between":     ternary((*builder).HavingBetween),
	"having_not_between": ternary((*builder).HavingNotBetween),
	"having_null":        unary((*builder).HavingNull),
	"having_not_null":    unary((*builder).HavingNotNull),
	"having_regexp":      binary((*builder).HavingRegexp),
	"having_not_regexp":  binary((*builder).HavingNotRegexp),
	"start_having_group": nullary((*builder).StartHavingGroup),
	"end_having_group":   nullary((*builder).EndHavingGroup),

	"on":             binary((*builder).On),
	"on_op":          ternary((*builder).OnOp),
	"on_like":        binary((*builder).OnLike),
	"on_not_like":    binary((*builder).OnNotLike),
	"on_in":          binary((*builder).OnIn),
	"on_not_in":      binary((*builder).OnNotIn),
	"on_between":     ternary((*builder).OnBetween),
	"on_not_between": ternary((*builder).OnNotBetween),
	"on_null":        unary((*builder).OnNull),
	"on_not_null":    unary((*builder).OnNotNull),
	"on_regexp":      binary((*builder).OnRegexp),
	"on_not_regexp":  binary((*builder).OnNotRegexp),
	"start_on_group": nullary((*builder).StartOnGroup),
	"end_on_group":   nullary((*builder).EndOnGroup),

	// ordering, grouping and locking
	"group_by":      variadic(1, (*builder).GroupBy),
	"order_by":      unary((*builder).OrderBy),
	"order_by_desc": unary((*builder).OrderByDesc),
	"limit":         {min: 1, max: 2, apply: limit},
	"lock_mode":     unary((*builder).LockMode),

	// compound and common table expressions
	"union":          compound((*builder).Union),
	"intersect":      compound((*builder).Intersect),
	"except":         compound((*builder).Except),
	"with":           {min: 2, max: -1, apply: with},
	"with_recursive": {min: 3, max: -1, apply: withRecursive},

	// data manipulation
	"into":                   unary((*builder).Into),
	"insert_mode":            variadic(1, (*builder).InsertMode),
	"columns":                variadic(1, (*builder).Columns),
	"values":                 variadic(0, (*builder).Values),
	"set":                    binary((*builder).Set),
	"select_statement":       unary((*builder).SelectStatement),
	"upsert":                 binary((*builder).Upsert),
	"on_conflict":            variadic(0, (*builder).OnConflict),
	"on_conflict_do_nothing": variadic(0, (*builder).OnConflictDoNothing),
	"update":                 variadic(1, (*builder).Update),
	"update_mode":            variadic(1, (*builder).UpdateMode),
	"delete":                 variadic(0, (*builder).Delete),
	"delete_mode":            variadic(1, (*builder).DeleteMode),
}

// Operations lists the known step names in sorted order.
func Operations() []string {
	names := make([]string, 0, len(operations))
	for name := range operations {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func apply(b *builder, name string, args []string) error {
	op, ok := operations[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return fmt.Errorf("%w %q", ErrUnknownOp, name)
	}

	if len(args) < op.min || (op.max >= 0 && len(args) > op.max) {
		return fmt.Errorf("%w: got %d, want %s", ErrArity, len(args), op.arity())
	}
	return op.apply(b, args)
}

func (o operation) arity() string {
	switch {
	case o.max < 0:
		return fmt.Sprintf("at least %d", o.min)
	case o.min == o.max:
		return strconv.Itoa(o.min)
	default:
		return fmt.Sprintf("%d to %d", o.min, o.max)
	}
}

func nullary(fn func(*builder) *builder) operation {
	return operation{apply: func(b *builder, _ []string) error {
		fn(b)
		return nil
	}}
}

func unary(fn func(*builder, string) *builder) operation {
	return operation{min: 1, max: 1, apply: func(b *builder, args []string) error {
		fn(b, args[0])
		return nil
	}}
}

func binary(fn func(*builder, string, string) *builder) operation {
	return operation{min: 2, max: 2, apply: func(b *builder, args []string) error {
		fn(b, args[0], args[1])
		return nil
	}}
}

func ternary(fn func(*builder, string, string, string) *builder) operation {
	return operation{min: 3, max: 3, apply: func(b *builder, args []string) error {
		fn(b, args[0], args[1], args[2])
		return nil
	}}
}

func variadic(min int, fn func(*builder, ...string) *builder) operation {
	return operation{min: min, max: -1, apply: func(b *builder, args []string) error {
		fn(b, args...)
		return nil
	}}
}

func withHints(fn func(*builder, string, ...string) *builder) operation {
	return operation{min: 1, max: -1, apply: func(b *builder, args []string) error {
		fn(b, args[0], args[1:]...)
		return nil
	}}
}

func compound(fn func(*builder, string, sqlbuilder.SetOperator) *builder) operation {
	return operation{min: 1, max: 2, apply: func(b *builder, args []string) error {
		op := sqlbuilder.SetDefault
		if len(args) == 2 {
			switch strings.ToUpper(strings.TrimSpace(args[1])) {
			case "":
			case "ALL":
				op = sqlbuilder.SetAll
			case "DISTINCT":
				op = sqlbuilder.SetDistinct
			default:
				return fmt.Errorf("set operator must be ALL or DISTINCT, got %q", args[1])
			}
		}
		fn(b, args[0], op)
		return nil
	}}
}

func join(b *builder, args []string) error {
	b.Join(args[0], args[1], args[2:]...)
	return nil
}

func limit(b *builder, args []string) error {
	n, err := strconv.ParseInt(strings.TrimSpace(args[0]), 10, 64)
	if err != nil {
		return fmt.Errorf("limit: %w", err)
	}
	if len(args) == 1 {
		b.Limit(n)
		return nil
	}

	offset, err := strconv.ParseInt(strings.TrimSpace(args[1]), 10, 64)
	if err != nil {
		return fmt.Errorf("offset: %w", err)
	}
	b.LimitOffset(n, offset)
	return nil
}

func with(b *builder, args []string) error {
	b.With(args[0], args[1], args[2:]...)
	return nil
}

// withRecursive takes alias, anchor, recursive part, an optional "all" flag
// and the column list.
func withRecursive(b *builder, args []string) error {
	var (
		unionAll bool
		columns  []string
	)
	if len(args) > 3 {
		all, err := strconv.ParseBool(strings.TrimSpace(args[3]))
		if err != nil {
			return fmt.Errorf("union all flag: %w", err)
		}
		unionAll = all
		columns = args[4:]
	}

	b.WithRecursive(args[0], args[1], args[2], unionAll, columns...)
	return nil
}
