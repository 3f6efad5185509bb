package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	StatusPending  = "Pending"
	StatusVerified = "Verified"
	StatusRejected = "Rejected"
)

// SeedStatuses are the lifecycle states every installation starts with.
var SeedStatuses = []string{StatusPending, StatusVerified, StatusRejected}

type ReportStatus struct {
	ID   uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name string    `gorm:"size:50;uniqueIndex;not null" json:"name"`
}

func (s *ReportStatus) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
