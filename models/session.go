package models

import "time"

// Session maps an opaque cookie token to the signed-in user. Only used by
// the database-backed session store.
type Session struct {
	Token     string    `gorm:"primaryKey;size:64"`
	UserID    string    `gorm:"not null;index"`
	ExpiresAt time.Time `gorm:"not null"`
	CreatedAt time.Time
}

// TableName specifies the table name for the Session model
func (Session) TableName() string {
	return "sessions"
}

// Expired reports whether the session is past its expiry at the given time.
func (s *Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}
