// Copyright (c) 2025 Yahya Qadeer Dar. All rights reserved.
// Use of this source code is governed by an Apache 2.0 license that can be found in the LICENSE file.

package sqlbuilder

// postgresDialect implements the Dialect interface for PostgreSQL
type postgresDialect struct {
	baseDialect
}

var (
	postgresSelectModes = []string{"ALL", "DISTINCT"}
	postgresLockModes   = withLockWaitPolicies(
		"FOR UPDATE", "FOR NO KEY UPDATE", "FOR SHARE", "FOR KEY SHARE",
	)
)

// Postgres returns the PostgreSQL dialect.
func Postgres() Dialect {
	return &postgresDialect{baseDialect{
		name:   "postgres",
		driver: "postgres",
		escaper: NewEscaper(EscaperConfig{
			IdentifierQuote: `"`,
			TrueLiteral:     "TRUE",
			FalseLiteral:    "FALSE",
			ByteaHex:        true,
		}),
	}}
}

// RegexpOperator returns the POSIX match operators
func (d *postgresDialect) RegexpOperator(negate bool) string {
	if negate {
		return "!~"
	}
	return "~"
}

// SupportsReturning returns true
func (d *postgresDialect) SupportsReturning() bool { return true }

func (d *postgresDialect) LockModes() []string { return postgresLockModes }

// Modes accepts DISTINCT and ALL after SELECT; PostgreSQL has no modifier
// keywords for the data modification statements.
func (d *postgresDialect) Modes(ctx ModeContext) []string {
	if ctx == ModeSelect {
		return postgresSelectModes
	}
	return nil
}

// Upsert returns ON CONFLICT (target) DO UPDATE SET ...
func (d *postgresDialect) Upsert(target, assignments string) string {
	return onConflict(target, assignments)
}

func onConflict(target, assignments string) string {
	clause := "ON CONFLICT"
	if target != "" {
		clause += " (" + target + ")"
	}
	if assignments == "" {
		return clause + " DO NOTHING"
	}
	return clause + " DO UPDATE SET " + assignments
}

// withLockWaitPolicies expands each lock clause with its NOWAIT and
// SKIP LOCKED variants.
func withLockWaitPolicies(modes ...string) []string {
	out := make([]string, 0, len(modes)*3)
	for _, m := range modes {
		out = append(out, m, m+" NOWAIT", m+" SKIP LOCKED")
	}
	return out
}
