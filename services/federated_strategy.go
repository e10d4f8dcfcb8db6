package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/road-estimator/road-estimator-api/models"
)

// Identity is a verified assertion from an external identity provider.
type Identity struct {
	Subject string // stable provider user id
	Email   string
	Name    string
}

// FederatedStrategy finds or registers the user behind a federated identity.
type FederatedStrategy struct {
	users UserStore
}

// NewFederatedStrategy creates the federated login strategy
func NewFederatedStrategy(users UserStore) *FederatedStrategy {
	return &FederatedStrategy{users: users}
}

// Authenticate returns the user linked to identity.Subject, creating one on
// first sign-in. Created users have no local password.
func (s *FederatedStrategy) Authenticate(ctx context.Context, identity Identity) (*models.User, error) {
	if identity.Subject == "" {
		return nil, fmt.Errorf("federated identity has no subject")
	}

	user, err := s.users.FindByGoogleID(ctx, identity.Subject)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, ErrUserNotFound) {
		return nil, err
	}

	name := identity.Name
	if name == "" {
		name = identity.Email
	}
	googleID := identity.Subject
	user = &models.User{
		Name:     name,
		Email:    identity.Email,
		GoogleID: &googleID,
	}

	if err := s.users.Create(ctx, user); err != nil {
		// A concurrent first sign-in may have created the same user.
		if existing, findErr := s.users.FindByGoogleID(ctx, identity.Subject); findErr == nil {
			return existing, nil
		}
		return nil, fmt.Errorf("failed to register federated user: %w", err)
	}
	return user, nil
}
