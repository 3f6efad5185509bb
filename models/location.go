package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Location is stored as a PostGIS point; Latitude and Longitude are the
// values callers read and write.
type Location struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Coordinates GeoPoint  `gorm:"type:geometry(Point,4326);not null;index:idx_locations_coordinates,type:gist" json:"-"`
	Latitude    float64   `gorm:"-" json:"latitude"`
	Longitude   float64   `gorm:"-" json:"longitude"`
	Address     string    `gorm:"size:500" json:"address"`
	City        string    `gorm:"size:255" json:"city"`
	CreatedAt   time.Time `json:"created_at"`
}

func (l *Location) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}

func (l *Location) BeforeSave(tx *gorm.DB) error {
	l.Coordinates = GeoPoint{Lat: l.Latitude, Lon: l.Longitude}
	return nil
}

func (l *Location) AfterFind(tx *gorm.DB) error {
	l.Latitude = l.Coordinates.Lat
	l.Longitude = l.Coordinates.Lon
	return nil
}

// NearbyLocation is a Location annotated with its spheroid distance from a query point.
type NearbyLocation struct {
	Location
	DistanceMeters float64 `gorm:"column:distance_m" json:"distance_m"`
}
