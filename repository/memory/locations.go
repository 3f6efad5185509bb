package memory

import (
	"context"
	"math"
	"sort"

	"github.com/google/uuid"
	"github.com/ishala/illegal-waste-reporter-BE/models"
	"github.com/ishala/illegal-waste-reporter-BE/repository"
)

const earthRadiusMeters = 6371008.8

type locationRepository struct{ s *Store }

func (r *locationRepository) Create(ctx context.Context, location *models.Location) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if location.ID == uuid.Nil {
		location.ID = uuid.New()
	}
	location.Coordinates = models.GeoPoint{Lat: location.Latitude, Lon: location.Longitude}
	location.CreatedAt = r.s.stamp()
	r.s.data.locations[location.ID] = *location
	return nil
}

func (r *locationRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Location, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	location, ok := r.s.data.locations[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &location, nil
}

func (r *locationRepository) List(ctx context.Context, page repository.Page) ([]models.Location, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	locations := make([]models.Location, 0, len(r.s.data.locations))
	for _, l := range r.s.data.locations {
		locations = append(locations, l)
	}
	sort.Slice(locations, func(i, j int) bool { return locations[i].CreatedAt.After(locations[j].CreatedAt) })
	return window(locations, page), nil
}

func (r *locationRepository) Update(ctx context.Context, location *models.Location) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	current, ok := r.s.data.locations[location.ID]
	if !ok {
		return repository.ErrNotFound
	}
	current.Latitude = location.Latitude
	current.Longitude = location.Longitude
	current.Coordinates = models.GeoPoint{Lat: location.Latitude, Lon: location.Longitude}
	current.Address = location.Address
	current.City = location.City
	r.s.data.locations[location.ID] = current
	return nil
}

func (r *locationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.data.locations[id]; !ok {
		return repository.ErrNotFound
	}
	for _, report := range r.s.data.reports {
		if report.LocationID == id {
			return repository.ErrInUse
		}
	}
	delete(r.s.data.locations, id)
	return nil
}

// Nearby pre-filters on a degree bounding box and keeps points whose
// haversine distance is within the radius.
func (r *locationRepository) Nearby(ctx context.Context, lat, lon, radiusKm float64, limit int) ([]models.NearbyLocation, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	latDelta := radiusKm / repository.KmPerDegree
	lonDelta := math.Inf(1)
	if c := math.Cos(lat * math.Pi / 180); c > 1e-9 {
		lonDelta = radiusKm / (repository.KmPerDegree * c)
	}

	var out []models.NearbyLocation
	for _, l := range r.s.data.locations {
		if math.Abs(l.Latitude-lat) > latDelta || math.Abs(l.Longitude-lon) > lonDelta {
			continue
		}
		d := haversineMeters(lat, lon, l.Latitude, l.Longitude)
		if d > radiusKm*1000 {
			continue
		}
		out = append(out, models.NearbyLocation{Location: l, DistanceMeters: d})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DistanceMeters < out[j].DistanceMeters })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *locationRepository) DistanceMeters(ctx context.Context, id uuid.UUID, lat, lon float64) (float64, error) {
	location, err := r.GetByID(ctx, id)
	if err != nil {
		return 0, err
	}
	return haversineMeters(lat, lon, location.Latitude, location.Longitude), nil
}

func haversineMeters(lat1, lon1, lat2, lon2 float64) float64 {
	const rad = math.Pi / 180
	dLat := (lat2 - lat1) * rad
	dLon := (lon2 - lon1) * rad
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1*rad)*math.Cos(lat2*rad)*math.Sin(dLon/2)*math.Sin(dLon/2)
	return 2 * earthRadiusMeters * math.Asin(math.Min(1, math.Sqrt(a)))
}
