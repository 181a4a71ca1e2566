// Package services is the call surface the route handlers consume. Each
// service converts repository and gateway failures into plain false/nil
// results after logging them; only pool-acquisition failure propagates,
// since nothing above this layer can do better than report it.
package services

import (
	"context"
	"errors"

	"github.com/mkorobovs/sitekeeper/internal/common"
	"github.com/mkorobovs/sitekeeper/internal/logging"
	"github.com/mkorobovs/sitekeeper/internal/server/db"
	"github.com/mkorobovs/sitekeeper/internal/server/models"
	"github.com/mkorobovs/sitekeeper/internal/server/repositories/repomanager"
	"github.com/mkorobovs/sitekeeper/internal/server/repositories/users"
)

// squash logs err and swallows it unless it is a pool-acquisition failure.
func squash(ctx context.Context, logger logging.Logger, op string, err error, args ...any) error {
	if err == nil {
		return nil
	}
	logger.Error(ctx, op+" failed", append(args, "error", err)...)
	if errors.Is(err, common.ErrPoolAcquire) {
		return err
	}
	return nil
}

// UserService handles account operations and session validity checks.
type UserService struct {
	repomanager repomanager.RepositoryManager
	logger      logging.Logger
}

func NewUserService(m repomanager.RepositoryManager, logger logging.Logger) *UserService {
	return &UserService{repomanager: m, logger: logger}
}

// Login verifies the credentials and returns the scrubbed account row, or
// nil when the username is unknown or the password does not match.
func (s *UserService) Login(ctx context.Context, username, password string) (*models.User, error) {
	user, err := s.repomanager.Users().Login(ctx, username, password)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) || errors.Is(err, common.ErrUnauthorized) {
			s.logger.Info(ctx, "login rejected", "username", username)
			return nil, nil
		}
		return nil, squash(ctx, s.logger, "login", err, "username", username)
	}
	return user, nil
}

// UpdateAccount applies the non-empty fields of update to the account
// identified by currentEmail.
func (s *UserService) UpdateAccount(ctx context.Context, currentEmail string, update users.AccountUpdate) (bool, error) {
	ok, err := s.repomanager.Users().UpdateAccount(ctx, currentEmail, update)
	if err != nil {
		return false, squash(ctx, s.logger, "update account", err, "email", currentEmail)
	}
	return ok, nil
}

// ValidSession reports whether uid and sid belong to the same account row.
// A sid paired with a different user's uid fails the check.
func (s *UserService) ValidSession(ctx context.Context, uid, sid string) (bool, error) {
	ok, err := s.repomanager.Users().CrossCheck(ctx, uid, db.ColUID, sid, db.ColSID)
	if err != nil {
		return false, squash(ctx, s.logger, "session check", err, "uid", uid)
	}
	return ok, nil
}
