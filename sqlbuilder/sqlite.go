// Copyright (c) 2025 Yahya Qadeer Dar. All rights reserved.
// Use of this source code is governed by an Apache 2.0 license that can be found in the LICENSE file.

package sqlbuilder

import "fmt"

// sqliteDialect implements the Dialect interface for SQLite
type sqliteDialect struct {
	baseDialect
}

var (
	sqliteSelectModes   = []string{"ALL", "DISTINCT"}
	sqliteConflictModes = []string{"OR ROLLBACK", "OR ABORT", "OR REPLACE", "OR FAIL", "OR IGNORE"}
)

// SQLite returns the SQLite dialect.
func SQLite() Dialect {
	return &sqliteDialect{baseDialect{
		name:   "sqlite",
		driver: "sqlite3",
		escaper: NewEscaper(EscaperConfig{
			IdentifierQuote: `"`,
			TrueLiteral:     "1",
			FalseLiteral:    "0",
		}),
	}}
}

// LimitOffset returns LIMIT/OFFSET; SQLite needs LIMIT -1 for an offset alone
func (d *sqliteDialect) LimitOffset(limit, offset int64) string {
	if limit < 0 && offset >= 0 {
		return fmt.Sprintf("LIMIT -1 OFFSET %d", offset)
	}
	return d.baseDialect.LimitOffset(limit, offset)
}

// SupportsReturning returns true
func (d *sqliteDialect) SupportsReturning() bool { return true }

// LockModes returns nothing; SQLite locks whole databases
func (d *sqliteDialect) LockModes() []string { return nil }

// Modes returns the conflict resolution clauses for INSERT and UPDATE
func (d *sqliteDialect) Modes(ctx ModeContext) []string {
	switch ctx {
	case ModeSelect:
		return sqliteSelectModes
	case ModeInsert, ModeInsertSelect, ModeUpdate:
		return sqliteConflictModes
	}
	return nil
}

// Upsert returns ON CONFLICT (target) DO UPDATE SET ...
func (d *sqliteDialect) Upsert(target, assignments string) string {
	return onConflict(target, assignments)
}
