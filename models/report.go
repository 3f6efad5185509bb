package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Report struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID         uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	LocationID     uuid.UUID `gorm:"type:uuid;not null" json:"location_id"`
	ReportStatusID uuid.UUID `gorm:"type:uuid;not null;index" json:"report_status_id"`
	Category       string    `gorm:"size:100;not null" json:"category"`
	Description    string    `gorm:"type:text" json:"description"`
	CreatedAt      time.Time `gorm:"index" json:"created_at"`

	Location      Location       `gorm:"foreignKey:LocationID" json:"location"`
	ReportStatus  ReportStatus   `gorm:"foreignKey:ReportStatusID" json:"report_status"`
	Media         []Media        `gorm:"foreignKey:ReportID;constraint:OnDelete:CASCADE" json:"media"`
	Verifications []Verification `gorm:"foreignKey:ReportID;constraint:OnDelete:CASCADE" json:"-"`
}

func (r *Report) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
