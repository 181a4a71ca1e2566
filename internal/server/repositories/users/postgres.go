package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/mkorobovs/sitekeeper/internal/common"
	"github.com/mkorobovs/sitekeeper/internal/cryptox"
	"github.com/mkorobovs/sitekeeper/internal/server/db"
	"github.com/mkorobovs/sitekeeper/internal/server/models"
)

// sidByteLen is the number of random bytes behind a session correlation
// token; hex-encoded it fills the 14-character sid column.
const sidByteLen = 7

type PostgresRepository struct {
	pool *db.Pool
}

func NewPostgresRepository(pool *db.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

func (r *PostgresRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {

	if user.UID == "" {
		user.UID = uuid.New().String()
	}
	if user.SID == "" {
		sid, err := common.MakeRandHexString(sidByteLen)
		if err != nil {
			return nil, fmt.Errorf("sid generation error: %w", err)
		}
		user.SID = sid
	}

	query :=
		`INSERT INTO users ("username", "password", "email", "membership", "uid", "sid")
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING "ID"
		 `

	err := r.pool.WithConn(ctx, func(ctx context.Context, conn db.DBTX) error {
		err := conn.QueryRowContext(ctx, query,
			user.Username, user.Password, user.Email, user.Membership, user.UID, user.SID).Scan(&user.ID)
		if err != nil {
			return fmt.Errorf("db error: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return user, nil
}

func (r *PostgresRepository) Exists(ctx context.Context, value string, column db.Column) (bool, error) {
	query, err := db.BuildSelect(db.TableUsers, []db.Column{column}, []db.Column{column})
	if err != nil {
		return false, err
	}

	var found bool
	err = r.pool.WithConn(ctx, func(ctx context.Context, conn db.DBTX) error {
		var got string
		err := conn.QueryRowContext(ctx, query, value).Scan(&got)
		if errors.Is(err, sql.ErrNoRows) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("db error: %w", err)
		}
		found = got == value
		return nil
	})
	return found, err
}

func (r *PostgresRepository) CrossCheck(ctx context.Context, value string, column db.Column, xValue string, xColumn db.Column) (bool, error) {
	// A single statement with both constraints: two independent existence
	// checks would pass for values belonging to different rows.
	query, err := db.BuildSelect(db.TableUsers, []db.Column{column, xColumn}, []db.Column{column, xColumn})
	if err != nil {
		return false, err
	}

	var found bool
	err = r.pool.WithConn(ctx, func(ctx context.Context, conn db.DBTX) error {
		var got, xGot string
		err := conn.QueryRowContext(ctx, query, value, xValue).Scan(&got, &xGot)
		if errors.Is(err, sql.ErrNoRows) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("db error: %w", err)
		}
		found = got == value && xGot == xValue
		return nil
	})
	return found, err
}

func (r *PostgresRepository) GetField(ctx context.Context, column, constraintColumn db.Column, constraint string) (string, error) {
	query, err := db.BuildSelect(db.TableUsers, []db.Column{column}, []db.Column{constraintColumn})
	if err != nil {
		return "", err
	}

	var value string
	err = r.pool.WithConn(ctx, func(ctx context.Context, conn db.DBTX) error {
		err := conn.QueryRowContext(ctx, query, constraint).Scan(&value)
		if errors.Is(err, sql.ErrNoRows) {
			return common.ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("db error: %w", err)
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	return value, nil
}

func (r *PostgresRepository) UpdateField(ctx context.Context, value string, column, constraintColumn db.Column, constraint string) (bool, error) {
	if column == db.ColPassword {
		hashed, err := cryptox.HashPassword(value)
		if err != nil {
			return false, fmt.Errorf("hash error: %w", err)
		}
		value = hashed
	}

	query, err := db.BuildUpdate(db.TableUsers, []db.Column{column}, constraintColumn)
	if err != nil {
		return false, err
	}

	var updated bool
	err = r.pool.WithConn(ctx, func(ctx context.Context, conn db.DBTX) error {
		res, err := conn.ExecContext(ctx, query, value, constraint)
		if err != nil {
			return fmt.Errorf("db error: %w", err)
		}
		wr, err := db.NewWriteResult(res)
		if err != nil {
			return err
		}
		updated = wr.OK()
		return nil
	})
	return updated, err
}

func (r *PostgresRepository) Login(ctx context.Context, username, password string) (*models.User, error) {
	query :=
		`SELECT "username", "password", "email", "membership", "uid", "sid" FROM users
		 WHERE "username" = $1
		 `

	user := &models.User{}
	err := r.pool.WithConn(ctx, func(ctx context.Context, conn db.DBTX) error {
		err := conn.QueryRowContext(ctx, query, username).Scan(
			&user.Username, &user.Password, &user.Email, &user.Membership, &user.UID, &user.SID)
		if errors.Is(err, sql.ErrNoRows) {
			return common.ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("db error: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if !cryptox.VerifyPassword(password, user.Password) {
		return nil, common.ErrUnauthorized
	}

	user.ScrubPassword()
	return user, nil
}

func (r *PostgresRepository) UpdateAccount(ctx context.Context, currentEmail string, update AccountUpdate) (bool, error) {
	if update.Empty() {
		return false, nil
	}

	var cols []db.Column
	var values []any

	if update.Username != "" {
		cols = append(cols, db.ColUsername)
		values = append(values, update.Username)
	}
	if update.Password != "" {
		hashed, err := cryptox.HashPassword(update.Password)
		if err != nil {
			return false, fmt.Errorf("hash error: %w", err)
		}
		cols = append(cols, db.ColPassword)
		values = append(values, hashed)
	}
	if update.Email != "" {
		cols = append(cols, db.ColEmail)
		values = append(values, update.Email)
	}
	if update.Membership != "" {
		cols = append(cols, db.ColMembership)
		values = append(values, update.Membership)
	}

	query, err := db.BuildUpdate(db.TableUsers, cols, db.ColEmail)
	if err != nil {
		return false, err
	}
	values = append(values, currentEmail)

	var updated bool
	err = r.pool.WithConn(ctx, func(ctx context.Context, conn db.DBTX) error {
		res, err := conn.ExecContext(ctx, query, values...)
		if err != nil {
			return fmt.Errorf("db error: %w", err)
		}
		wr, err := db.NewWriteResult(res)
		if err != nil {
			return err
		}
		updated = wr.OK()
		return nil
	})
	return updated, err
}
