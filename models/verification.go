package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Verification struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ReportID   uuid.UUID `gorm:"type:uuid;not null;index" json:"report_id"`
	AdminID    uuid.UUID `gorm:"type:uuid;not null;index" json:"admin_id"`
	Notes      string    `gorm:"type:text" json:"notes"`
	VerifiedAt time.Time `gorm:"autoCreateTime" json:"verified_at"`
}

func (v *Verification) BeforeCreate(tx *gorm.DB) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	return nil
}
