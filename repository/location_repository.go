package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/ishala/illegal-waste-reporter-BE/models"
	"gorm.io/gorm"
)

// KmPerDegree approximates one degree of latitude for the ST_DWithin pre-filter.
const KmPerDegree = 111.0

const queryPoint = "ST_SetSRID(ST_MakePoint(?, ?), 4326)"

type gormLocationRepository struct {
	db *gorm.DB
}

func (r *gormLocationRepository) Create(ctx context.Context, location *models.Location) error {
	return translate(r.db.WithContext(ctx).Create(location).Error)
}

func (r *gormLocationRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Location, error) {
	var location models.Location
	if err := r.db.WithContext(ctx).First(&location, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &location, nil
}

func (r *gormLocationRepository) List(ctx context.Context, page Page) ([]models.Location, error) {
	var locations []models.Location
	err := r.db.WithContext(ctx).Scopes(paginate(page)).Order("created_at DESC").Find(&locations).Error
	return locations, translate(err)
}

func (r *gormLocationRepository) Update(ctx context.Context, location *models.Location) error {
	location.Coordinates = models.GeoPoint{Lat: location.Latitude, Lon: location.Longitude}
	res := r.db.WithContext(ctx).Model(&models.Location{}).Where("id = ?", location.ID).Updates(map[string]interface{}{
		"coordinates": location.Coordinates,
		"address":     location.Address,
		"city":        location.City,
	})
	return affected(res)
}

func (r *gormLocationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return affected(r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Location{}))
}

// Nearby uses the GiST index through ST_DWithin on the degree radius and
// orders by spheroid distance.
func (r *gormLocationRepository) Nearby(ctx context.Context, lat, lon, radiusKm float64, limit int) ([]models.NearbyLocation, error) {
	var locations []models.NearbyLocation
	err := r.db.WithContext(ctx).
		Model(&models.Location{}).
		Select("locations.*, ST_Distance(coordinates::geography, "+queryPoint+"::geography) AS distance_m", lon, lat).
		Where("ST_DWithin(coordinates, "+queryPoint+", ?)", lon, lat, radiusKm/KmPerDegree).
		Order("distance_m ASC").
		Limit(limit).
		Find(&locations).Error
	return locations, translate(err)
}

func (r *gormLocationRepository) DistanceMeters(ctx context.Context, id uuid.UUID, lat, lon float64) (float64, error) {
	var distance float64
	row := r.db.WithContext(ctx).
		Raw("SELECT ST_Distance(coordinates::geography, "+queryPoint+"::geography) FROM locations WHERE id = ?", lon, lat, id).
		Row()
	if err := row.Scan(&distance); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, ErrNotFound
		}
		return 0, err
	}
	return distance, nil
}
