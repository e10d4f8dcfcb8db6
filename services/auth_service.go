package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/road-estimator/road-estimator-api/models"
)

// AuthServiceConfig carries the collaborators of an AuthService.
type AuthServiceConfig struct {
	Users      UserStore
	Sessions   SessionStore
	Verifier   CredentialVerifier
	Local      *LocalStrategy
	Federated  *FederatedStrategy
	SessionTTL time.Duration
}

// AuthService registers users, runs the login strategies and manages the
// sessions that carry a signed-in user between requests.
type AuthService struct {
	users      UserStore
	sessions   SessionStore
	verifier   CredentialVerifier
	local      *LocalStrategy
	federated  *FederatedStrategy
	sessionTTL time.Duration
}

// NewAuthService builds the service. Strategies left nil are created from
// the user store and verifier.
func NewAuthService(cfg AuthServiceConfig) *AuthService {
	local := cfg.Local
	if local == nil {
		local = NewLocalStrategy(cfg.Users, cfg.Verifier)
	}
	federated := cfg.Federated
	if federated == nil {
		federated = NewFederatedStrategy(cfg.Users)
	}
	ttl := cfg.SessionTTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}

	return &AuthService{
		users:      cfg.Users,
		sessions:   cfg.Sessions,
		verifier:   cfg.Verifier,
		local:      local,
		federated:  federated,
		sessionTTL: ttl,
	}
}

// SessionTTL is how long a new session stays valid.
func (s *AuthService) SessionTTL() time.Duration {
	return s.sessionTTL
}

// Register creates a local account. It returns ErrEmailTaken when the email
// is already in use and a *models.ValidationError when a field is missing.
func (s *AuthService) Register(ctx context.Context, name, email, password string) (*models.User, error) {
	if password == "" {
		return nil, models.MissingField("User", "password")
	}

	_, err := s.users.FindByEmail(ctx, email)
	if err == nil {
		return nil, ErrEmailTaken
	}
	if !errors.Is(err, ErrUserNotFound) {
		return nil, err
	}

	hash, err := s.verifier.Hash(password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Name:         name,
		Email:        email,
		PasswordHash: &hash,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	log.Printf("Registered user %s", user.ID)
	return user, nil
}

// Login runs the local strategy.
func (s *AuthService) Login(ctx context.Context, email, password string) (*models.User, error) {
	return s.local.Authenticate(ctx, email, password)
}

// LoginFederated runs the federated strategy.
func (s *AuthService) LoginFederated(ctx context.Context, identity Identity) (*models.User, error) {
	return s.federated.Authenticate(ctx, identity)
}

// StartSession issues a new session token for user.
func (s *AuthService) StartSession(ctx context.Context, user *models.User) (string, error) {
	token, err := NewSessionToken()
	if err != nil {
		return "", err
	}
	if err := s.sessions.Save(ctx, token, user.ID, s.sessionTTL); err != nil {
		return "", err
	}
	return token, nil
}

// ResolveSession returns the user behind token. Unknown or expired tokens and
// users that no longer exist yield (nil, nil).
func (s *AuthService) ResolveSession(ctx context.Context, token string) (*models.User, error) {
	if token == "" {
		return nil, nil
	}

	userID, ok, err := s.sessions.Load(ctx, token)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}

	user, err := s.users.FindByID(ctx, userID)
	if errors.Is(err, ErrUserNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to resolve session user: %w", err)
	}
	return user, nil
}

// EndSession deletes the session behind token.
func (s *AuthService) EndSession(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return s.sessions.Delete(ctx, token)
}
