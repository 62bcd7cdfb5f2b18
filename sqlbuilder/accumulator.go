// Copyright (c) 2025 Yahya Qadeer Dar. All rights reserved.
// Use of this source code is governed by an Apache 2.0 license that can be found in the LICENSE file.

package sqlbuilder

import "strings"

// appendList adds exprs to a comma separated buffer. The first contribution
// is prefixed with keyword; an empty expression stands for NULL.
func appendList(buf *string, keyword string, exprs []string) {
	if len(exprs) == 0 {
		exprs = []string{""}
	}
	for _, expr := range exprs {
		if strings.TrimSpace(expr) == "" {
			expr = Null
		}
		if *buf == "" {
			*buf = keyword + expr
		} else {
			*buf += ", " + expr
		}
	}
}

// indexHints renders the hint suffix of a table reference
func indexHints(hints []string) string {
	kept := make([]string, 0, len(hints))
	for _, h := range hints {
		if h = strings.TrimSpace(h); h != "" {
			kept = append(kept, h)
		}
	}
	if len(kept) == 0 {
		return ""
	}
	return " " + strings.Join(kept, ", ")
}

func (b *Builder) setFrom(table string, hints []string) {
	ref := table + indexHints(hints)
	if b.from == "" {
		b.from = "FROM " + ref
	} else {
		b.from += ", " + ref
	}
}

func (b *Builder) setJoin(table, joinType string, hints []string) {
	t := strings.ToUpper(strings.TrimSpace(joinType))

	keyword := "STRAIGHT_JOIN "
	if t != "STRAIGHT" {
		keyword = strings.TrimLeft(t+" JOIN ", " ")
	}

	if b.join != "" {
		b.join += " "
	}
	b.join += keyword + table + indexHints(hints)
	b.joinState = b.joinState.opened(strings.HasPrefix(t, "NATURAL"))
}

func (b *Builder) setUsing(columns string) {
	next, ok := b.joinState.bindUsing()
	if !ok {
		return
	}
	if b.joinState == joinBoundUsing {
		b.join = strings.TrimSuffix(b.join, ")") + ", " + columns + ")"
	} else {
		b.join += " USING (" + columns + ")"
	}
	b.joinState = next
}

// openContribution writes whatever must precede a new condition or group in
// the target clause: the clause keyword, the pending connector or the default
// AND. It returns false when the contribution must be dropped because the
// current join is bound to USING.
func (b *Builder) openContribution(kind clauseKind) bool {
	buf := b.buffer(kind)
	awaiting := false

	if kind == clauseOn {
		awaiting = b.joinState.awaiting()
		next, ok := b.joinState.bindOn()
		if !ok {
			return false
		}
		b.joinState = next
	}

	switch {
	case kind == clauseOn && (awaiting || strings.Trim(*buf, "(") == ""):
		*buf += kind.keyword()
	case kind != clauseOn && strings.Trim(*buf, "(") == "":
		*buf = kind.keyword() + *buf
	case strings.HasSuffix(*buf, "("):
		// first item of a group takes no connector
	case b.connector != "":
		*buf += " " + b.connector + " "
	default:
		*buf += " AND "
	}
	b.connector = ""
	return true
}

func (b *Builder) setCondition(left, right, operator string, kind clauseKind) {
	if !b.openContribution(kind) {
		return
	}
	*b.buffer(kind) += left + " " + operator + " " + right
}

func (b *Builder) groupStart(kind clauseKind) {
	if !b.openContribution(kind) {
		return
	}
	*b.buffer(kind) += "("
}

func (b *Builder) groupEnd(kind clauseKind) {
	if kind == clauseOn && b.joinState == joinBoundUsing {
		return
	}
	*b.buffer(kind) += ")"
}

func (b *Builder) setCompound(query string, t CompoundType, op SetOperator) {
	part := string(t)
	if op != SetDefault {
		part += " " + string(op)
	}
	part += " " + query

	if b.compound == "" {
		b.compound = part
	} else {
		b.compound += " " + part
	}
}

// setWith prepends a CTE so the newest definition comes first
func (b *Builder) setWith(alias, query, recursive, unionKeyword string, columns []string) {
	cte := alias
	if len(columns) > 0 {
		cte += " (" + strings.Join(columns, ", ") + ")"
	}
	cte += " AS ( " + query
	if recursive != "" {
		cte += " " + unionKeyword + " " + recursive
		b.isRecursive = true
	}
	cte += " )"

	if b.with == "" {
		b.with = cte
	} else {
		b.with = cte + ", " + b.with
	}
}

// implode joins the non-empty parts with single spaces. A result consisting
// of the lone wildcard "*" is returned empty.
func implode(parts ...string) string {
	out := concat(parts...)
	if out == "*" {
		return ""
	}
	return out
}

// concat joins the non-empty, trimmed parts with single spaces
func concat(parts ...string) string {
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, " ")
}

// modes renders a modifier list: duplicates are removed keeping the first
// occurrence and keywords outside the allow-list are dropped.
func modes(list []string, allow []string) string {
	seen := make(map[string]bool, len(list))
	kept := make([]string, 0, len(list))
	for _, m := range list {
		if seen[m] || !allowed(allow, m) {
			continue
		}
		seen[m] = true
		kept = append(kept, m)
	}
	return strings.Join(kept, " ")
}

// normalizeModes upper-cases and trims modifier keywords, collapsing inner
// whitespace
func normalizeModes(list []string) []string {
	out := make([]string, 0, len(list))
	for _, m := range list {
		if m = strings.Join(strings.Fields(strings.ToUpper(m)), " "); m != "" {
			out = append(out, m)
		}
	}
	return out
}
