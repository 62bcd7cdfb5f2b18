// Copyright (c) 2025 Yahya Qadeer Dar. All rights reserved.
// Use of this source code is governed by an Apache 2.0 license that can be found in the LICENSE file.

package sqlbuilder

import "fmt"

// mysqlDialect implements the Dialect interface for MySQL
type mysqlDialect struct {
	baseDialect
}

// MySQL returns the MySQL dialect: backtick identifiers, backslash escapes,
// UNION as the only set operation and ON DUPLICATE KEY UPDATE upserts.
func MySQL() Dialect {
	return &mysqlDialect{baseDialect{
		name:    "mysql",
		driver:  "mysql",
		escaper: mysqlEscaper(),
	}}
}

func mysqlEscaper() *Escaper {
	return NewEscaper(EscaperConfig{
		IdentifierQuote:  "`",
		BackslashEscapes: true,
		TrueLiteral:      "1",
		FalseLiteral:     "0",
	})
}

// LimitOffset returns LIMIT offset, count for MySQL
func (d *mysqlDialect) LimitOffset(limit, offset int64) string {
	switch {
	case limit >= 0 && offset >= 0:
		return fmt.Sprintf("LIMIT %d, %d", offset, limit)
	case limit >= 0:
		return fmt.Sprintf("LIMIT %d", limit)
	case offset >= 0:
		// MySQL requires a row count whenever an offset is given
		return fmt.Sprintf("LIMIT %d, 18446744073709551615", offset)
	}
	return ""
}

// SupportsCompound returns true for UNION only
func (d *mysqlDialect) SupportsCompound(op CompoundType) bool {
	return op == CompoundUnion
}

// mariadbDialect implements the Dialect interface for MariaDB
type mariadbDialect struct {
	mysqlDialect
}

// MariaDB returns the MariaDB dialect: MySQL plus INTERSECT, EXCEPT and
// RETURNING.
func MariaDB() Dialect {
	return &mariadbDialect{mysqlDialect{baseDialect{
		name:    "mariadb",
		driver:  "mysql",
		escaper: mysqlEscaper(),
	}}}
}

// SupportsCompound returns true for every set operation
func (d *mariadbDialect) SupportsCompound(op CompoundType) bool {
	return d.baseDialect.SupportsCompound(op)
}

// SupportsReturning returns true
func (d *mariadbDialect) SupportsReturning() bool { return true }
