// Package db provides the pooled relational access primitives shared by the
// entity repositories: a bounded connection pool with a scoped-acquisition
// helper, the identifier allow-list, statement builders for the dynamic
// queries, and write-result normalization.
package db

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/mkorobovs/sitekeeper/internal/common"
)

// MaxConns is the hard cap on concurrently checked-out connections. It is
// fixed for the lifetime of the process; the next caller past the cap blocks
// until a release.
const MaxConns = 5

// DBTX is the subset of database/sql a repository needs on an acquired
// connection. *sql.Conn, *sql.DB and *sql.Tx all satisfy it.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Pool is the connection pool manager. It is constructed explicitly, passed
// by reference to the repositories, and torn down with Close; there is no
// ambient/static instance.
type Pool struct {
	db *sql.DB
}

// Open connects to Postgres via the pgx stdlib driver and applies the pool
// cap.
func Open(dsn string) (*Pool, error) {
	sqlDB, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}

	return NewPool(sqlDB), nil
}

// NewPool wraps an existing *sql.DB (tests hand in a mock here) and applies
// the pool cap.
func NewPool(sqlDB *sql.DB) *Pool {
	sqlDB.SetMaxOpenConns(MaxConns)
	sqlDB.SetMaxIdleConns(MaxConns)
	return &Pool{db: sqlDB}
}

// DB exposes the underlying handle for the migration runner.
func (p *Pool) DB() *sql.DB {
	return p.db
}

// Acquire checks a connection out of the pool, blocking while the cap is
// saturated. Failures are wrapped in common.ErrPoolAcquire.
func (p *Pool) Acquire(ctx context.Context) (*sql.Conn, error) {
	conn, err := p.db.Conn(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrPoolAcquire, err)
	}
	return conn, nil
}

// WithConn acquires a connection, runs fn with it, and returns it to the
// pool on every exit path, including panic. This is the scoped-acquisition
// discipline every repository operation goes through.
func (p *Pool) WithConn(ctx context.Context, fn func(ctx context.Context, conn DBTX) error) (err error) {
	conn, err := p.Acquire(ctx)
	if err != nil {
		return err
	}

	defer func() {
		if cerr := conn.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	return fn(ctx, conn)
}

// Close tears the pool down. It must not be invoked while operations are in
// flight.
func (p *Pool) Close() error {
	return p.db.Close()
}
