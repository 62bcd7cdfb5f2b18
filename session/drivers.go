// Copyright (c) 2025 Yahya Qadeer Dar. All rights reserved.
// Use of this source code is governed by an Apache 2.0 license that can be found in the LICENSE file.

package session

import (
	"database/sql"

	_ "github.com/go-sql-driver/mysql" // mysql, also used for MariaDB
	_ "github.com/jackc/pgx/v5/stdlib" // pgx
	_ "github.com/lib/pq"              // postgres
	_ "github.com/mattn/go-sqlite3"    // sqlite3 (cgo)
	_ "modernc.org/sqlite"             // sqlite (pure Go)
)

// Drivers returns the sorted names of the registered database/sql drivers.
func Drivers() []string {
	return sql.Drivers()
}
