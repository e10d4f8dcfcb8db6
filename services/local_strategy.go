package services

import (
	"context"
	"errors"

	"github.com/road-estimator/road-estimator-api/models"
)

// LocalStrategy authenticates an email and password against the user store.
type LocalStrategy struct {
	users    UserStore
	verifier CredentialVerifier
}

// NewLocalStrategy creates the email/password strategy
func NewLocalStrategy(users UserStore, verifier CredentialVerifier) *LocalStrategy {
	return &LocalStrategy{users: users, verifier: verifier}
}

// Authenticate returns ErrInvalidCredentials for an unknown email, an account
// without a local password, or a wrong password. Store and hashing failures
// are returned as-is.
func (s *LocalStrategy) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if errors.Is(err, ErrUserNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if !user.HasPassword() {
		return nil, ErrInvalidCredentials
	}

	ok, err := s.verifier.Verify(password, *user.PasswordHash)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}
