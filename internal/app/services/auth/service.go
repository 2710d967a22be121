// Package auth implements login against the external identity provider and
// maintains the local user shadow.
package auth

import (
	"context"

	"github.com/chefos/platform/internal/app/domain/user"
	"github.com/chefos/platform/internal/app/storage"
	"github.com/chefos/platform/internal/identity"
	"github.com/chefos/platform/internal/logging"
)

// PasswordAuthenticator is the slice of the identity client this service
// needs; tests substitute a fake.
type PasswordAuthenticator interface {
	LoginWithPassword(ctx context.Context, email, password string) (identity.Session, error)
}

// Login is the result handed to the HTTP layer.
type Login struct {
	AccessToken string
	UserID      int64
	Email       string
	Permissions []string
	Roles       []string
}

// Service authenticates users and upserts their local records.
type Service struct {
	provider PasswordAuthenticator
	users    storage.UserStore
	log      *logging.Logger
}

// New creates the service. A nil logger falls back to the default.
func New(provider PasswordAuthenticator, users storage.UserStore, log *logging.Logger) *Service {
	if log == nil {
		log = logging.NewDefault("auth")
	}
	return &Service{provider: provider, users: users, log: log}
}

// Login authenticates against the provider and mirrors the account locally.
// The provider error (including the 403 for bad credentials) propagates
// untouched.
func (s *Service) Login(ctx context.Context, email, password string) (Login, error) {
	sess, err := s.provider.LoginWithPassword(ctx, email, password)
	if err != nil {
		return Login{}, err
	}

	u, err := s.users.UpsertUser(ctx, user.User{Subject: sess.Subject, Email: sess.Email})
	if err != nil {
		s.log.WithContext(ctx).WithError(err).Error("upsert user after login")
		return Login{}, err
	}

	permissions := sess.Permissions
	if permissions == nil {
		permissions = []string{}
	}

	return Login{
		AccessToken: sess.AccessToken,
		UserID:      u.ID,
		Email:       u.Email,
		Permissions: permissions,
		// Roles are owned by the identity provider and are not surfaced
		// by the password grant.
		Roles: []string{},
	}, nil
}
