package gallery

import (
	"context"
	"fmt"

	"github.com/mkorobovs/sitekeeper/internal/server/db"
	"github.com/mkorobovs/sitekeeper/internal/server/models"
)

type PostgresRepository struct {
	pool *db.Pool
}

func NewPostgresRepository(pool *db.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

func (r *PostgresRepository) Create(ctx context.Context, media *models.GalleryMedia) (bool, error) {
	query, err := db.BuildInsert(db.TableGallery, []db.Column{
		db.ColMonth, db.ColYear, db.ColMedia, db.ColAuthor, db.ColUserUID,
	})
	if err != nil {
		return false, err
	}

	var created bool
	err = r.pool.WithConn(ctx, func(ctx context.Context, conn db.DBTX) error {
		res, err := conn.ExecContext(ctx, query,
			media.Month, media.Year, media.Media, media.Author, media.UserUID)
		if err != nil {
			return fmt.Errorf("db error: %w", err)
		}
		wr, err := db.NewWriteResult(res)
		if err != nil {
			return err
		}
		created = wr.OK()
		return nil
	})
	return created, err
}

func (r *PostgresRepository) Delete(ctx context.Context, id int64, ownerUID string) (bool, error) {
	query, err := db.BuildDelete(db.TableGallery, []db.Column{db.ColUserUID, db.ColID})
	if err != nil {
		return false, err
	}

	var deleted bool
	err = r.pool.WithConn(ctx, func(ctx context.Context, conn db.DBTX) error {
		res, err := conn.ExecContext(ctx, query, ownerUID, id)
		if err != nil {
			return fmt.Errorf("db error: %w", err)
		}
		wr, err := db.NewWriteResult(res)
		if err != nil {
			return err
		}
		deleted = wr.OK()
		return nil
	})
	return deleted, err
}

func (r *PostgresRepository) Years(ctx context.Context) ([]string, error) {
	query, err := db.BuildSelectDistinct(db.TableGallery, db.ColYear, nil)
	if err != nil {
		return nil, err
	}

	var years []string
	err = r.pool.WithConn(ctx, func(ctx context.Context, conn db.DBTX) error {
		rows, err := conn.QueryContext(ctx, query)
		if err != nil {
			return fmt.Errorf("db error: %w", err)
		}
		defer rows.Close()

		for rows.Next() {
			var y string
			if err := rows.Scan(&y); err != nil {
				return fmt.Errorf("db error: %w", err)
			}
			years = append(years, y)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, err
	}
	return years, nil
}

func (r *PostgresRepository) MonthsByYear(ctx context.Context, year string) ([]int, error) {
	query, err := db.BuildSelectDistinct(db.TableGallery, db.ColMonth, []db.Column{db.ColYear})
	if err != nil {
		return nil, err
	}

	var months []int
	err = r.pool.WithConn(ctx, func(ctx context.Context, conn db.DBTX) error {
		rows, err := conn.QueryContext(ctx, query, year)
		if err != nil {
			return fmt.Errorf("db error: %w", err)
		}
		defer rows.Close()

		for rows.Next() {
			var m int
			if err := rows.Scan(&m); err != nil {
				return fmt.Errorf("db error: %w", err)
			}
			months = append(months, m)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, err
	}
	return months, nil
}

func (r *PostgresRepository) MediaByYear(ctx context.Context, limit int, year string) ([]*models.GalleryMedia, error) {
	query, err := db.BuildList(db.TableGallery,
		[]db.Column{db.ColID, db.ColMedia, db.ColMonth, db.ColUserUID},
		[]db.Column{db.ColYear}, db.ColCreatedAt)
	if err != nil {
		return nil, err
	}

	var result []*models.GalleryMedia
	err = r.pool.WithConn(ctx, func(ctx context.Context, conn db.DBTX) error {
		rows, err := conn.QueryContext(ctx, query, year, limit)
		if err != nil {
			return fmt.Errorf("db error: %w", err)
		}
		defer rows.Close()

		for rows.Next() {
			m := &models.GalleryMedia{Year: year}
			if err := rows.Scan(&m.ID, &m.Media, &m.Month, &m.UserUID); err != nil {
				return fmt.Errorf("db error: %w", err)
			}
			result = append(result, m)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
