package services

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"github.com/road-estimator/road-estimator-api/models"
	"gorm.io/gorm"
)

// SessionStore maps opaque session tokens to user ids. Handlers call Load at
// the start of a request and Save/Delete on login and logout.
type SessionStore interface {
	Save(ctx context.Context, token, userID string, ttl time.Duration) error
	// Load reports ok=false for unknown and expired tokens.
	Load(ctx context.Context, token string) (userID string, ok bool, err error)
	Delete(ctx context.Context, token string) error
}

// NewSessionToken returns 32 random bytes encoded as unpadded base64url.
func NewSessionToken() (string, error) {
	return randomToken(32)
}

func randomToken(size int) (string, error) {
	buf := make([]byte, size)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate random token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// GormSessionStore keeps sessions in the sessions table. Expired rows are
// removed when they are next loaded.
type GormSessionStore struct {
	db  *gorm.DB
	now func() time.Time
}

// NewGormSessionStore creates a session store backed by db
func NewGormSessionStore(db *gorm.DB) *GormSessionStore {
	return &GormSessionStore{db: db, now: time.Now}
}

func (s *GormSessionStore) Save(ctx context.Context, token, userID string, ttl time.Duration) error {
	session := models.Session{
		Token:     token,
		UserID:    userID,
		ExpiresAt: s.now().Add(ttl),
	}
	if err := s.db.WithContext(ctx).Create(&session).Error; err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

func (s *GormSessionStore) Load(ctx context.Context, token string) (string, bool, error) {
	var session models.Session
	err := s.db.WithContext(ctx).Where("token = ?", token).First(&session).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to load session: %w", err)
	}

	if session.Expired(s.now()) {
		if err := s.Delete(ctx, token); err != nil {
			return "", false, err
		}
		return "", false, nil
	}
	return session.UserID, true, nil
}

func (s *GormSessionStore) Delete(ctx context.Context, token string) error {
	if err := s.db.WithContext(ctx).Where("token = ?", token).Delete(&models.Session{}).Error; err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}
