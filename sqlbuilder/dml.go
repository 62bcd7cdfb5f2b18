// Copyright (c) 2025 Yahya Qadeer Dar. All rights reserved.
// Use of this source code is governed by an Apache 2.0 license that can be found in the LICENSE file.

package sqlbuilder

import (
	"sort"
	"strings"
)

// Into sets the INSERT or REPLACE target table
func (b *Builder) Into(table string) *Builder {
	b.into = "INTO " + table
	return b
}

// InsertMode adds modifier keywords for INSERT and REPLACE. The keywords are
// filtered against the dialect's allow-list for the rendered statement.
func (b *Builder) InsertMode(modes ...string) *Builder {
	b.insertMode = append(b.insertMode, normalizeModes(modes)...)
	return b
}

// Columns sets the column list of an INSERT or REPLACE. A lone "*" renders
// no column list.
func (b *Builder) Columns(columns ...string) *Builder {
	b.columnNames = strings.Join(columns, ", ")
	return b
}

// Values adds one row of escaped values
func (b *Builder) Values(row ...string) *Builder {
	tuple := "(" + strings.Join(row, ", ") + ")"
	if b.values == "" {
		b.values = "VALUES " + tuple
	} else {
		b.values += ", " + tuple
	}
	return b
}

// Set adds column = value to the SET clause
func (b *Builder) Set(column, value string) *Builder {
	appendList(&b.set, "SET ", []string{column + " = " + value})
	return b
}

// SetMap adds every column = value pair of assignments in column order
func (b *Builder) SetMap(assignments map[string]string) *Builder {
	columns := make([]string, 0, len(assignments))
	for c := range assignments {
		columns = append(columns, c)
	}
	sort.Strings(columns)

	for _, c := range columns {
		b.Set(c, assignments[c])
	}
	return b
}

// SelectStatement feeds an INSERT or REPLACE from a rendered SELECT
func (b *Builder) SelectStatement(query string) *Builder {
	b.selectStatement = query
	return b
}

// Upsert adds column = value to the assignments applied when an INSERT
// conflicts with an existing row
func (b *Builder) Upsert(column, value string) *Builder {
	appendList(&b.upsert, "", []string{column + " = " + value})
	return b
}

// OnConflict sets the conflict target for dialects that name one
func (b *Builder) OnConflict(target ...string) *Builder {
	b.conflictTarget = strings.Join(target, ", ")
	return b
}

// OnConflictDoNothing makes a conflicting INSERT skip the row. Dialects
// without such a clause render nothing; use InsertMode("IGNORE") there.
func (b *Builder) OnConflictDoNothing(target ...string) *Builder {
	if len(target) > 0 {
		b.OnConflict(target...)
	}
	b.conflictIgnore = true
	return b
}

// Update adds the tables an UPDATE modifies
func (b *Builder) Update(tables ...string) *Builder {
	if len(tables) == 0 {
		return b
	}
	appendList(&b.update, "", []string{strings.Join(tables, ", ")})
	return b
}

// UpdateMode adds modifier keywords for UPDATE
func (b *Builder) UpdateMode(modes ...string) *Builder {
	b.updateMode = append(b.updateMode, normalizeModes(modes)...)
	return b
}

// Delete names the tables a multi-table DELETE removes rows from
func (b *Builder) Delete(tables ...string) *Builder {
	if len(tables) == 0 {
		return b
	}
	appendList(&b.del, "", []string{strings.Join(tables, ", ")})
	return b
}

// DeleteMode adds modifier keywords for DELETE
func (b *Builder) DeleteMode(modes ...string) *Builder {
	b.deleteMode = append(b.deleteMode, normalizeModes(modes)...)
	return b
}
