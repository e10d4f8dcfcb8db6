package models

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// User represents an account holder. Accounts are created either by local
// registration (email + password) or on first Google sign-in.
type User struct {
	ID           string         `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Name         string         `gorm:"not null" json:"name"`
	Email        string         `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash *string        `json:"-"`                                     // nil when the account has no local credential
	GoogleID     *string        `gorm:"uniqueIndex" json:"googleId,omitempty"` // Google 'sub' claim
	CreatedAt    time.Time      `json:"createdAt"`
	UpdatedAt    time.Time      `json:"updatedAt"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for the User model
func (User) TableName() string {
	return "users"
}

// HasPassword reports whether the user can sign in with a local password.
func (u *User) HasPassword() bool {
	return u.PasswordHash != nil && *u.PasswordHash != ""
}

// Summary is the public projection returned by the auth endpoints.
func (u *User) Summary() UserSummary {
	return UserSummary{ID: u.ID, Name: u.Name, Email: u.Email}
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	assignID(&u.ID)
	return nil
}

func (u *User) BeforeSave(tx *gorm.DB) error {
	if strings.TrimSpace(u.Email) == "" {
		return missingField("User", "email")
	}
	if strings.TrimSpace(u.Name) == "" {
		return missingField("User", "name")
	}
	return nil
}

// UserSummary is the {id, name, email} shape used in auth responses.
type UserSummary struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}
