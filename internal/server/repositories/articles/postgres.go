package articles

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

func (r *PostgresRepository) Create(ctx context.Context, article *models.Article) (bool, error) {
	cols := []db.Column{db.ColTitle, db.ColDate, db.ColBody, db.ColAuthor, db.ColUserUID}
	values := []any{article.Title, article.Date, article.Body, article.Author, article.UserUID}

	if article.ImgThumb != "" {
		cols = append(cols, db.ColImgThumb)
		values = append(values, article.ImgThumb)
	}
	if article.ImgMain != "" {
		cols = append(cols, db.ColImgMain)
		values = append(values, article.ImgMain)
	}
	if article.File != "" {
		cols = append(cols, db.ColFile)
		values = append(values, article.File)
	}
	if article.FileName != "" {
		cols = append(cols, db.ColFileName)
		values = append(values, article.FileName)
	}

	query, err := db.BuildInsert(db.TableArticles, cols)
	if err != nil {
		return false, err
	}

	var created bool
	err = r.pool.WithConn(ctx, func(ctx context.Context, conn db.DBTX) error {
		res, err := conn.ExecContext(ctx, query, values...)
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
	query, err := db.BuildDelete(db.TableArticles, []db.Column{db.ColUserUID, db.ColID})
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

func (r *PostgresRepository) List(ctx context.Context, limit int) ([]*models.Article, error) {
	// COALESCE keeps the optional file columns scannable as plain strings.
	query :=
		`SELECT "ID", "title", "date", "body", "author", "createdAt",
		        COALESCE("imgThumb", ''), COALESCE("imgMain", ''),
		        COALESCE("file", ''), COALESCE("fileName", ''), "userUid"
		 FROM articles
		 ORDER BY "createdAt" DESC
		 LIMIT $1
		 `

	var result []*models.Article
	err := r.pool.WithConn(ctx, func(ctx context.Context, conn db.DBTX) error {
		rows, err := conn.QueryContext(ctx, query, limit)
		if err != nil {
			return fmt.Errorf("db error: %w", err)
		}
		defer rows.Close()

		for rows.Next() {
			a := &models.Article{}
			if err := rows.Scan(&a.ID, &a.Title, &a.Date, &a.Body, &a.Author, &a.CreatedAt,
				&a.ImgThumb, &a.ImgMain, &a.File, &a.FileName, &a.UserUID); err != nil {
				return fmt.Errorf("db error: %w", err)
			}
			result = append(result, a)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
