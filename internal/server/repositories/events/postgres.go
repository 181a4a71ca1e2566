package events

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

func (r *PostgresRepository) Create(ctx context.Context, event *models.Event) (bool, error) {
	query, err := db.BuildInsert(db.TableEvents, []db.Column{
		db.ColTitle, db.ColStartDateTime, db.ColEndDateTime,
		db.ColRecurring, db.ColAllDay, db.ColDescription,
		db.ColAuthor, db.ColUserUID,
	})
	if err != nil {
		return false, err
	}

	var created bool
	err = r.pool.WithConn(ctx, func(ctx context.Context, conn db.DBTX) error {
		res, err := conn.ExecContext(ctx, query,
			event.Title, event.StartDateTime, event.EndDateTime,
			event.Recurring, event.AllDay, event.Description,
			event.Author, event.UserUID)
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
	query, err := db.BuildDelete(db.TableEvents, []db.Column{db.ColUserUID, db.ColID})
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

func (r *PostgresRepository) List(ctx context.Context, limit int) ([]*models.Event, error) {
	query :=
		`SELECT "ID", "title", "startDateTime", "endDateTime",
		        COALESCE("description", ''), COALESCE("recurring", ''),
		        "allDay", "author", "userUid"
		 FROM events
		 LIMIT $1
		 `

	var result []*models.Event
	err := r.pool.WithConn(ctx, func(ctx context.Context, conn db.DBTX) error {
		rows, err := conn.QueryContext(ctx, query, limit)
		if err != nil {
			return fmt.Errorf("db error: %w", err)
		}
		defer rows.Close()

		for rows.Next() {
			e := &models.Event{}
			if err := rows.Scan(&e.ID, &e.Title, &e.StartDateTime, &e.EndDateTime,
				&e.Description, &e.Recurring, &e.AllDay, &e.Author, &e.UserUID); err != nil {
				return fmt.Errorf("db error: %w", err)
			}
			result = append(result, e)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
