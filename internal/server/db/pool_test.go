package db

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestWithConn_ReleasesOnSuccess(t *testing.T) {
	sqlDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	pool := NewPool(sqlDB)
	defer pool.Close()

	mock.ExpectQuery(`SELECT\s+"uid"\s+FROM\s+users`).
		WillReturnRows(sqlmock.NewRows([]string{"uid"}).AddRow("u-1"))

	var got string
	err = pool.WithConn(context.Background(), func(ctx context.Context, conn DBTX) error {
		return conn.QueryRowContext(ctx, `SELECT "uid" FROM users WHERE "uid" = $1`, "u-1").Scan(&got)
	})
	if err != nil {
		t.Fatalf("WithConn error: %v", err)
	}
	if got != "u-1" {
		t.Fatalf("unexpected scan result: %q", got)
	}

	// The connection must be back in the pool, so the stats show nothing
	// checked out.
	if in := sqlDB.Stats().InUse; in != 0 {
		t.Fatalf("connection still checked out after WithConn: %d", in)
	}
}

func TestWithConn_ReleasesOnCallbackError(t *testing.T) {
	sqlDB, _, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	pool := NewPool(sqlDB)
	defer pool.Close()

	sentinel := errors.New("boom")
	err = pool.WithConn(context.Background(), func(ctx context.Context, conn DBTX) error {
		return sentinel
	})
	if !errors.Is(err, sentinel) {
		t.Fatalf("want callback error, got %v", err)
	}
	if in := sqlDB.Stats().InUse; in != 0 {
		t.Fatalf("connection leaked on error path: %d", in)
	}
}

func TestWithConn_ReleasesOnPanic(t *testing.T) {
	sqlDB, _, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	pool := NewPool(sqlDB)
	defer pool.Close()

	func() {
		defer func() {
			if recover() == nil {
				t.Fatalf("expected panic to propagate")
			}
		}()
		_ = pool.WithConn(context.Background(), func(ctx context.Context, conn DBTX) error {
			panic("boom")
		})
	}()

	if in := sqlDB.Stats().InUse; in != 0 {
		t.Fatalf("connection leaked on panic path: %d", in)
	}
}

func TestAcquire_CapApplied(t *testing.T) {
	sqlDB, _, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	pool := NewPool(sqlDB)
	defer pool.Close()

	if max := sqlDB.Stats().MaxOpenConnections; max != MaxConns {
		t.Fatalf("pool cap not applied: %d", max)
	}
}
