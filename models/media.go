package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	MediaTypeImage = "image"
	MediaTypeVideo = "video"
)

// Media points at an object-storage key. URL is filled per response and never stored.
type Media struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ReportID  uuid.UUID `gorm:"type:uuid;not null;index" json:"report_id"`
	MediaURL  string    `gorm:"column:media_url;size:1024;not null" json:"media_url"`
	MediaType string    `gorm:"size:20;not null" json:"media_type"`
	CreatedAt time.Time `json:"created_at"`
	URL       string    `gorm:"-" json:"url,omitempty"`
}

func (Media) TableName() string {
	return "medias"
}

func (m *Media) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// MediaTypeFor maps a MIME type onto image or video, or "" when it is neither.
func MediaTypeFor(contentType string) string {
	switch {
	case strings.HasPrefix(contentType, "image/"):
		return MediaTypeImage
	case strings.HasPrefix(contentType, "video/"):
		return MediaTypeVideo
	}
	return ""
}
