// Copyright (c) 2025 Yahya Qadeer Dar. All rights reserved.
// Use of this source code is governed by an Apache 2.0 license that can be found in the LICENSE file.

package main

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/YahyaDar/gravity/internal/cli"
	"github.com/YahyaDar/gravity/internal/script"
	"github.com/YahyaDar/gravity/session"
	"github.com/YahyaDar/gravity/sqlbuilder"
)

var (
	execParallel int
	execTx       bool
)

var execCmd = &cobra.Command{
	Use:   "exec FILE",
	Short: "Render a statement script and execute it",
	Long: `Render every document of the script with the connection's dialect and
execute the statements in order. SELECT results are printed as a table.

With --parallel the statements run concurrently and must not depend on each
other; scripts holding SELECT documents are rejected because their rows could
not be printed. With --tx they run inside a single transaction.`,
	Example: `  # Run a migration script against the configured database
  gravity exec scripts/backfill.yaml

  # Run independent cleanup statements four at a time
  gravity exec --parallel 4 scripts/cleanup.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if execParallel > 0 && execTx {
			return cli.GeneralError("--parallel and --tx cannot be combined", nil)
		}

		dialect, err := resolveDialect("")
		if err != nil {
			return err
		}

		stmts, err := renderScript(args[0], dialect)
		if err != nil {
			return err
		}
		if execParallel > 0 {
			for i, st := range stmts {
				if st.kind == sqlbuilder.KindSelect {
					return cli.GeneralError(fmt.Sprintf("document %d is a SELECT, which --parallel cannot print", i+1), nil)
				}
			}
		}

		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}

		s, err := session.Open(ctx, cfg.Database, dialect, session.WithLogger(logger))
		if err != nil {
			return cli.DBError("connecting to database", err)
		}
		defer func() { _ = s.Close() }()

		out := cmd.OutOrStdout()
		switch {
		case execParallel > 0:
			queries := make([]string, len(stmts))
			for i, st := range stmts {
				queries[i] = st.query
			}
			err = s.ExecBatch(ctx, queries, execParallel)
		case execTx:
			err = s.WithTx(ctx, func(tx *session.Tx) error {
				return runStatements(ctx, out, tx, stmts)
			})
		default:
			err = runStatements(ctx, out, s, stmts)
		}
		if err != nil {
			return cli.DBError("executing script", err)
		}
		return nil
	},
}

func init() {
	execCmd.Flags().IntVar(&execParallel, "parallel", 0, "run statements concurrently with this many workers")
	execCmd.Flags().BoolVar(&execTx, "tx", false, "run all statements in one transaction")
}

type statement struct {
	kind  sqlbuilder.Kind
	query string
}

// runner is satisfied by both *session.Session and *session.Tx
type runner interface {
	Exec(ctx context.Context, query string) (sql.Result, error)
	Query(ctx context.Context, query string) (*sql.Rows, error)
}

// renderScript renders every document of the script for dialect. A document
// naming a different dialect is rejected.
func renderScript(path string, dialect sqlbuilder.Dialect) ([]statement, error) {
	docs, err := script.Load(path)
	if err != nil {
		return nil, cli.BuildError("loading script", err)
	}

	stmts := make([]statement, 0, len(docs))
	for i, doc := range docs {
		if doc.Dialect != "" {
			own, err := sqlbuilder.Lookup(doc.Dialect)
			if err != nil {
				return nil, cli.BuildError(fmt.Sprintf("document %d", i+1), err)
			}
			if own.Name() != dialect.Name() {
				return nil, cli.BuildError(fmt.Sprintf("document %d targets %s but the connection uses %s", i+1, own.Name(), dialect.Name()), nil)
			}
		}

		kind, err := doc.StatementKind()
		if err != nil {
			return nil, cli.BuildError(fmt.Sprintf("document %d", i+1), err)
		}
		query, err := doc.Render(dialect)
		if err != nil {
			return nil, cli.BuildError(fmt.Sprintf("rendering document %d", i+1), err)
		}
		stmts = append(stmts, statement{kind: kind, query: query})
	}
	return stmts, nil
}

func runStatements(ctx context.Context, out io.Writer, r runner, stmts []statement) error {
	for _, st := range stmts {
		if st.kind == sqlbuilder.KindSelect {
			rows, err := r.Query(ctx, st.query)
			if err != nil {
				return err
			}
			err = printRows(out, rows)
			_ = rows.Close()
			if err != nil {
				return err
			}
			continue
		}

		res, err := r.Exec(ctx, st.query)
		if err != nil {
			return err
		}
		if n, err := res.RowsAffected(); err == nil {
			fmt.Fprintf(out, "%s: %d rows affected\n", st.kind, n)
		}
	}
	return nil
}

func printRows(out io.Writer, rows *sql.Rows) error {
	columns, err := rows.Columns()
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, strings.Join(columns, "\t"))

	values := make([]sql.RawBytes, len(columns))
	dest := make([]interface{}, len(columns))
	for i := range values {
		dest[i] = &values[i]
	}

	for rows.Next() {
		if err := rows.Scan(dest...); err != nil {
			return err
		}
		cells := make([]string, len(values))
		for i, v := range values {
			if v == nil {
				cells[i] = "NULL"
			} else {
				cells[i] = string(v)
			}
		}
		fmt.Fprintln(w, strings.Join(cells, "\t"))
	}
	if err := rows.Err(); err != nil {
		return err
	}
	return w.Flush()
}
