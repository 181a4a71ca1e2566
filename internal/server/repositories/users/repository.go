// Package users implements the accounts repository: typed CRUD plus the
// generic existence, cross-check, and field operations the session layer
// relies on.
package users

import (
	"context"

	"github.com/mkorobovs/sitekeeper/internal/server/db"
	"github.com/mkorobovs/sitekeeper/internal/server/models"
)

// AccountUpdate carries the optional fields of an account update. Empty
// fields are left untouched; an update with no fields set is a no-op.
type AccountUpdate struct {
	Username   string
	Password   string
	Email      string
	Membership string
}

// Empty reports whether the update carries no fields.
func (u AccountUpdate) Empty() bool {
	return u.Username == "" && u.Password == "" && u.Email == "" && u.Membership == ""
}

type Repository interface {
	// Create inserts an account row, generating uid and sid when absent.
	// The password must already be hashed by the caller.
	Create(ctx context.Context, user *models.User) (*models.User, error)

	// Exists reports whether any row's column equals value.
	Exists(ctx context.Context, value string, column db.Column) (bool, error)

	// CrossCheck reports whether a single row satisfies both equalities
	// simultaneously. This is what prevents a hijacked sid from being
	// paired with a different user's uid.
	CrossCheck(ctx context.Context, value string, column db.Column, xValue string, xColumn db.Column) (bool, error)

	// GetField returns the column value of the row matched by the
	// constraint, or common.ErrNotFound.
	GetField(ctx context.Context, column, constraintColumn db.Column, constraint string) (string, error)

	// UpdateField sets a single column on the matched row. Password values
	// are hashed before writing.
	UpdateField(ctx context.Context, value string, column, constraintColumn db.Column, constraint string) (bool, error)

	// Login matches the username and verifies the password; the returned
	// row has the password scrubbed.
	Login(ctx context.Context, username, password string) (*models.User, error)

	// UpdateAccount applies a dynamic update of only the supplied fields to
	// the row matched by currentEmail. Password values are hashed before
	// writing. Returns false without touching the database when the update
	// is empty.
	UpdateAccount(ctx context.Context, currentEmail string, update AccountUpdate) (bool, error)
}
