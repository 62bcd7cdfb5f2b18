// Copyright (c) 2025 Yahya Qadeer Dar. All rights reserved.
// Use of this source code is governed by an Apache 2.0 license that can be found in the LICENSE file.

// Package session executes rendered statements against a database/sql
// connection pool. Builders obtained from a session share its dialect, and a
// statement that fails to render never reaches the driver.
package session

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/YahyaDar/gravity/config"
	"github.com/YahyaDar/gravity/errors"
	"github.com/YahyaDar/gravity/log"
	"github.com/YahyaDar/gravity/sqlbuilder"
)

// execQuerier is satisfied by both *sql.DB and *sql.Tx
type execQuerier interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
}

// Session pairs a connection pool with a dialect and a logger.
type Session struct {
	db      *sql.DB
	dialect sqlbuilder.Dialect
	logger  log.Logger
}

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the logger statements are reported to. Executed statements
// are logged at debug level and failures at error level.
func WithLogger(logger log.Logger) Option {
	return func(s *Session) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New wraps an open pool. A nil dialect selects the standard dialect.
func New(db *sql.DB, dialect sqlbuilder.Dialect, opts ...Option) *Session {
	if dialect == nil {
		dialect = sqlbuilder.Standard()
	}

	s := &Session{
		db:      db,
		dialect: dialect,
		logger:  log.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Open connects using cfg and verifies the connection with a ping. An empty
// driver name falls back to the dialect's driver.
func Open(ctx context.Context, cfg config.DatabaseConfig, dialect sqlbuilder.Dialect, opts ...Option) (*Session, error) {
	if dialect == nil {
		dialect = sqlbuilder.Standard()
	}

	driver := cfg.Driver
	if driver == "" {
		driver = dialect.DriverName()
	}
	if driver == "" {
		return nil, errors.NewConnectionError(dialect.Name(), "no driver configured", nil)
	}

	db, err := sql.Open(driver, cfg.DSN)
	if err != nil {
		return nil, errors.NewConnectionError(driver, "failed to open database", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	if cfg.MaxIdleConns > 0 {
		db.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	db.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, errors.NewConnectionError(driver, "failed to ping database", err)
	}

	s := New(db, dialect, opts...)
	s.logger.Debug("database connection established",
		log.F("driver", driver),
		log.F("dialect", dialect.Name()),
	)
	return s, nil
}

// DB returns the underlying pool.
func (s *Session) DB() *sql.DB { return s.db }

// Dialect returns the session dialect.
func (s *Session) Dialect() sqlbuilder.Dialect { return s.dialect }

// Builder returns an empty builder for the session dialect.
func (s *Session) Builder() *sqlbuilder.Builder {
	return sqlbuilder.New(s.dialect)
}

// Exec runs a statement that returns no rows.
func (s *Session) Exec(ctx context.Context, query string) (sql.Result, error) {
	return s.exec(ctx, s.db, query)
}

// Query runs a statement that returns rows. The caller closes the rows.
func (s *Session) Query(ctx context.Context, query string) (*sql.Rows, error) {
	return s.query(ctx, s.db, query)
}

// ExecStatement renders b as kind and executes it.
func (s *Session) ExecStatement(ctx context.Context, b *sqlbuilder.Builder, kind sqlbuilder.Kind) (sql.Result, error) {
	query, err := b.SQL(kind)
	if err != nil {
		return nil, err
	}
	return s.Exec(ctx, query)
}

// QueryStatement renders b as a SELECT and runs it.
func (s *Session) QueryStatement(ctx context.Context, b *sqlbuilder.Builder) (*sql.Rows, error) {
	return s.Query(ctx, b.SelectSQL())
}

// ExecBatch runs independent statements concurrently, at most limit at a
// time; a limit of zero or less means no bound. The first failure cancels the
// statements that have not started yet and is returned.
func (s *Session) ExecBatch(ctx context.Context, queries []string, limit int) error {
	g, ctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}

	for _, query := range queries {
		query := query
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			_, err := s.exec(ctx, s.db, query)
			return err
		})
	}

	return g.Wait()
}

// WithTx runs fn inside a transaction. The transaction is committed when fn
// returns nil and rolled back otherwise.
func (s *Session) WithTx(ctx context.Context, fn func(tx *Tx) error) error {
	sqlTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.NewQueryError("BEGIN", "failed to begin transaction", err)
	}

	tx := &Tx{session: s, tx: sqlTx}
	if err := fn(tx); err != nil {
		if rbErr := sqlTx.Rollback(); rbErr != nil {
			s.logger.Error("rollback failed", log.F("error", rbErr))
		}
		return err
	}

	if err := sqlTx.Commit(); err != nil {
		return errors.NewQueryError("COMMIT", "failed to commit transaction", err)
	}
	return nil
}

// Close closes the pool.
func (s *Session) Close() error {
	if err := s.db.Close(); err != nil {
		return errors.NewConnectionError(s.dialect.DriverName(), "failed to close database", err)
	}
	return nil
}

// Tx executes statements inside a transaction opened by WithTx.
type Tx struct {
	session *Session
	tx      *sql.Tx
}

// Exec runs a statement that returns no rows.
func (t *Tx) Exec(ctx context.Context, query string) (sql.Result, error) {
	return t.session.exec(ctx, t.tx, query)
}

// Query runs a statement that returns rows.
func (t *Tx) Query(ctx context.Context, query string) (*sql.Rows, error) {
	return t.session.query(ctx, t.tx, query)
}

// ExecStatement renders b as kind and executes it.
func (t *Tx) ExecStatement(ctx context.Context, b *sqlbuilder.Builder, kind sqlbuilder.Kind) (sql.Result, error) {
	query, err := b.SQL(kind)
	if err != nil {
		return nil, err
	}
	return t.Exec(ctx, query)
}

func (s *Session) exec(ctx context.Context, conn execQuerier, query string) (sql.Result, error) {
	id, start := uuid.NewString(), time.Now()

	res, err := conn.ExecContext(ctx, query)
	s.report(ctx, id, query, start, err)
	if err != nil {
		return nil, errors.NewQueryError(query, "exec failed", err)
	}
	return res, nil
}

func (s *Session) query(ctx context.Context, conn execQuerier, query string) (*sql.Rows, error) {
	id, start := uuid.NewString(), time.Now()

	rows, err := conn.QueryContext(ctx, query)
	s.report(ctx, id, query, start, err)
	if err != nil {
		return nil, errors.NewQueryError(query, "query failed", err)
	}
	return rows, nil
}

func (s *Session) report(ctx context.Context, id, query string, start time.Time, err error) {
	fields := []log.Field{
		log.F("statement_id", id),
		log.F("dialect", s.dialect.Name()),
		log.F("sql", query),
		log.F("duration", time.Since(start).String()),
	}

	if err != nil {
		s.logger.ErrorContext(ctx, "statement failed", append(fields, log.F("error", err))...)
		return
	}
	s.logger.DebugContext(ctx, "statement executed", fields...)
}
