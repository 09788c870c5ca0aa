package models

import (
	"time"

	"github.com/google/uuid"
)

// User is the credential record. Password holds the cleartext demo
// credential used by the seeded in-memory store only; PasswordHash is
// the bcrypt hash used by the database-backed store. Neither field is
// ever serialized, so a user snapshot embedded in token claims carries
// no secret material.
type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"     json:"id"`
	Name         string    `gorm:"not null"                 json:"name"`
	Username     string    `gorm:"uniqueIndex;not null"     json:"username"`
	Password     string    `gorm:"-"                        json:"-"`
	PasswordHash string    `gorm:"column:password_hash"     json:"-"`
}

// Session associates a client-presented identifier with an
// authenticated user until logout or expiry.
type Session struct {
	ID        string    `gorm:"primaryKey;size:64" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;index;not null" json:"user_id"`
	ExpiresAt time.Time `gorm:"index;not null"     json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}

func (s *Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}

// Credentials is the transient login input; never persisted.
type Credentials struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
}
