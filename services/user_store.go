package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/road-estimator/road-estimator-api/models"
	"gorm.io/gorm"
)

// UserStore is the identity store behind both login strategies.
type UserStore interface {
	FindByID(ctx context.Context, id string) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByGoogleID(ctx context.Context, googleID string) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
}

// GormUserStore implements UserStore on the users table.
type GormUserStore struct {
	db *gorm.DB
}

// NewGormUserStore creates a user store backed by db
func NewGormUserStore(db *gorm.DB) *GormUserStore {
	return &GormUserStore{db: db}
}

func (s *GormUserStore) FindByID(ctx context.Context, id string) (*models.User, error) {
	return s.first(ctx, "id = ?", id)
}

// FindByEmail matches the email exactly; no case folding is applied.
func (s *GormUserStore) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.first(ctx, "email = ?", email)
}

func (s *GormUserStore) FindByGoogleID(ctx context.Context, googleID string) (*models.User, error) {
	return s.first(ctx, "google_id = ?", googleID)
}

func (s *GormUserStore) Create(ctx context.Context, user *models.User) error {
	if err := s.db.WithContext(ctx).Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrEmailTaken
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func (s *GormUserStore) first(ctx context.Context, query string, arg any) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).Where(query, arg).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	return &user, nil
}
