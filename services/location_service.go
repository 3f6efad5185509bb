package services

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/ishala/illegal-waste-reporter-BE/models"
	"github.com/ishala/illegal-waste-reporter-BE/repository"
)

const (
	DefaultNearbyRadiusKm = 5.0
	DefaultNearbyLimit    = 100
)

type LocationInput struct {
	Latitude  float64
	Longitude float64
	Address   string
	City      string
}

type NearbyInput struct {
	Latitude  float64
	Longitude float64
	RadiusKm  *float64
	Limit     int
}

type LocationService struct {
	locations repository.LocationRepository
}

func NewLocationService(locations repository.LocationRepository) *LocationService {
	return &LocationService{locations: locations}
}

func (s *LocationService) Create(ctx context.Context, in LocationInput) (*models.Location, error) {
	if err := validateCoordinates(in.Latitude, in.Longitude); err != nil {
		return nil, err
	}
	location := &models.Location{
		Latitude:  in.Latitude,
		Longitude: in.Longitude,
		Address:   strings.TrimSpace(in.Address),
		City:      strings.TrimSpace(in.City),
	}
	if err := s.locations.Create(ctx, location); err != nil {
		return nil, err
	}
	return location, nil
}

func (s *LocationService) Get(ctx context.Context, id uuid.UUID) (*models.Location, error) {
	location, err := s.locations.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, ErrLocationNotFound)
	}
	return location, nil
}

func (s *LocationService) List(ctx context.Context, page repository.Page) ([]models.Location, error) {
	return s.locations.List(ctx, page)
}

func (s *LocationService) Update(ctx context.Context, caller *models.User, id uuid.UUID, in LocationInput) (*models.Location, error) {
	if err := RequireAdmin(caller); err != nil {
		return nil, err
	}
	if err := validateCoordinates(in.Latitude, in.Longitude); err != nil {
		return nil, err
	}
	location := &models.Location{
		ID:        id,
		Latitude:  in.Latitude,
		Longitude: in.Longitude,
		Address:   strings.TrimSpace(in.Address),
		City:      strings.TrimSpace(in.City),
	}
	if err := s.locations.Update(ctx, location); err != nil {
		return nil, notFound(err, ErrLocationNotFound)
	}
	return s.Get(ctx, id)
}

func (s *LocationService) Delete(ctx context.Context, caller *models.User, id uuid.UUID) error {
	if err := RequireAdmin(caller); err != nil {
		return err
	}
	err := s.locations.Delete(ctx, id)
	if errors.Is(err, repository.ErrInUse) {
		return invalid("id", "location belongs to a report; delete the report instead")
	}
	return notFound(err, ErrLocationNotFound)
}

// Nearby returns locations within the radius, nearest first.
func (s *LocationService) Nearby(ctx context.Context, in NearbyInput) ([]models.NearbyLocation, error) {
	if err := validateCoordinates(in.Latitude, in.Longitude); err != nil {
		return nil, err
	}
	radius := DefaultNearbyRadiusKm
	if in.RadiusKm != nil {
		radius = *in.RadiusKm
	}
	if radius < 0 {
		return nil, invalid("radius_km", "must not be negative")
	}
	limit := in.Limit
	if limit <= 0 {
		limit = DefaultNearbyLimit
	}
	if limit > repository.MaxLimit {
		limit = repository.MaxLimit
	}
	locations, err := s.locations.Nearby(ctx, in.Latitude, in.Longitude, radius, limit)
	if err != nil {
		return nil, err
	}
	if locations == nil {
		locations = []models.NearbyLocation{}
	}
	return locations, nil
}

// DistanceMeters is the spheroid distance from the location to a point.
func (s *LocationService) DistanceMeters(ctx context.Context, id uuid.UUID, lat, lon float64) (float64, error) {
	if err := validateCoordinates(lat, lon); err != nil {
		return 0, err
	}
	distance, err := s.locations.DistanceMeters(ctx, id, lat, lon)
	if err != nil {
		return 0, notFound(err, ErrLocationNotFound)
	}
	return distance, nil
}
