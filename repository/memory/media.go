package memory

import (
	"context"

	"github.com/google/uuid"
	"github.com/ishala/illegal-waste-reporter-BE/models"
	"github.com/ishala/illegal-waste-reporter-BE/repository"
)

type mediaRepository struct{ s *Store }

func (r *mediaRepository) Create(ctx context.Context, media *models.Media) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.data.reports[media.ReportID]; !ok {
		return repository.ErrNotFound
	}
	if media.ID == uuid.Nil {
		media.ID = uuid.New()
	}
	media.CreatedAt = r.s.stamp()
	stored := *media
	stored.URL = ""
	r.s.data.media[media.ID] = stored
	return nil
}

func (r *mediaRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Media, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	media, ok := r.s.data.media[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &media, nil
}

func (r *mediaRepository) ListByReport(ctx context.Context, reportID uuid.UUID) ([]models.Media, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return mediaOf(r.s.data, reportID), nil
}

func (r *mediaRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.data.media[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.s.data.media, id)
	return nil
}

func (r *mediaRepository) DeleteByReport(ctx context.Context, reportID uuid.UUID) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var count int64
	for id, m := range r.s.data.media {
		if m.ReportID == reportID {
			delete(r.s.data.media, id)
			count++
		}
	}
	return count, nil
}
