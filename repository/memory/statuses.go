package memory

import (
	"context"
	"sort"

	"github.com/google/uuid"
	"github.com/ishala/illegal-waste-reporter-BE/models"
	"github.com/ishala/illegal-waste-reporter-BE/repository"
)

type statusRepository struct{ s *Store }

func (r *statusRepository) Ensure(ctx context.Context, name string) (*models.ReportStatus, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, status := range r.s.data.statuses {
		if status.Name == name {
			return &status, nil
		}
	}
	status := models.ReportStatus{ID: uuid.New(), Name: name}
	r.s.data.statuses[status.ID] = status
	return &status, nil
}

func (r *statusRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.ReportStatus, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	status, ok := r.s.data.statuses[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &status, nil
}

func (r *statusRepository) GetByName(ctx context.Context, name string) (*models.ReportStatus, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, status := range r.s.data.statuses {
		if status.Name == name {
			return &status, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *statusRepository) List(ctx context.Context) ([]models.ReportStatus, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	statuses := make([]models.ReportStatus, 0, len(r.s.data.statuses))
	for _, status := range r.s.data.statuses {
		statuses = append(statuses, status)
	}
	sort.Slice(statuses, func(i, j int) bool { return statuses[i].Name < statuses[j].Name })
	return statuses, nil
}
