package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Session is a device-scoped login holding one refresh token.
type Session struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID       uuid.UUID  `gorm:"type:uuid;not null;index" json:"user_id"`
	RefreshToken string     `gorm:"size:255;uniqueIndex;not null" json:"-"`
	DeviceName   string     `gorm:"size:255" json:"device_name"`
	IsActive     bool       `gorm:"not null;default:true" json:"is_active"`
	CreatedAt    time.Time  `json:"created_at"`
	ExpiresAt    time.Time  `gorm:"not null;index" json:"expires_at"`
	LastUsedAt   time.Time  `json:"last_used_at"`
	RevokedAt    *time.Time `json:"revoked_at,omitempty"`
}

func (s *Session) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// ActiveAt reports whether the session can still be exchanged for access tokens at now.
func (s *Session) ActiveAt(now time.Time) bool {
	return s.IsActive && s.RevokedAt == nil && s.ExpiresAt.After(now)
}
