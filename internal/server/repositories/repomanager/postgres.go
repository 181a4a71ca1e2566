package repomanager

import (
	"context"
	"database/sql"

	"github.com/mkorobovs/sitekeeper/internal/server/db"
	"github.com/mkorobovs/sitekeeper/internal/server/migrations"
	"github.com/mkorobovs/sitekeeper/internal/server/repositories/articles"
	"github.com/mkorobovs/sitekeeper/internal/server/repositories/events"
	"github.com/mkorobovs/sitekeeper/internal/server/repositories/gallery"
	"github.com/mkorobovs/sitekeeper/internal/server/repositories/users"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

// PostgresRepositoryManager vends PostgreSQL-backed repository
// implementations bound to a shared connection pool and exposes a schema
// migration hook.
type PostgresRepositoryManager struct {
	pool *db.Pool
}

// NewPostgresRepositoryManager constructs a PostgreSQL-backed
// RepositoryManager over the given pool.
func NewPostgresRepositoryManager(pool *db.Pool) (RepositoryManager, error) {
	return &PostgresRepositoryManager{pool: pool}, nil
}

// Users returns a users.Repository bound to the pool.
func (m *PostgresRepositoryManager) Users() users.Repository {
	return users.NewPostgresRepository(m.pool)
}

// Articles returns an articles.Repository bound to the pool.
func (m *PostgresRepositoryManager) Articles() articles.Repository {
	return articles.NewPostgresRepository(m.pool)
}

// Events returns an events.Repository bound to the pool.
func (m *PostgresRepositoryManager) Events() events.Repository {
	return events.NewPostgresRepository(m.pool)
}

// Gallery returns a gallery.Repository bound to the pool.
func (m *PostgresRepositoryManager) Gallery() gallery.Repository {
	return gallery.NewPostgresRepository(m.pool)
}

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// RunMigrations sets up goose with the embedded migrations and runs them
// against the manager's database connection.
func (m *PostgresRepositoryManager) RunMigrations(ctx context.Context) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("pgx"); err != nil {
		return err
	}
	return gooseUpContext(ctx, m.pool.DB(), ".")
}
