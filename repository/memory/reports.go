package memory

import (
	"context"
	"sort"

	"github.com/google/uuid"
	"github.com/ishala/illegal-waste-reporter-BE/models"
	"github.com/ishala/illegal-waste-reporter-BE/repository"
)

type reportRepository struct{ s *Store }

// hydrate attaches location, status and media. Callers must hold mu.
func (r *reportRepository) hydrate(report models.Report) models.Report {
	report.Location = r.s.data.locations[report.LocationID]
	report.ReportStatus = r.s.data.statuses[report.ReportStatusID]
	report.Media = mediaOf(r.s.data, report.ID)
	return report
}

func mediaOf(data *state, reportID uuid.UUID) []models.Media {
	media := []models.Media{}
	for _, m := range data.media {
		if m.ReportID == reportID {
			media = append(media, m)
		}
	}
	sort.Slice(media, func(i, j int) bool { return media[i].CreatedAt.Before(media[j].CreatedAt) })
	return media
}

func (r *reportRepository) Create(ctx context.Context, report *models.Report) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.data.users[report.UserID]; !ok {
		return repository.ErrNotFound
	}
	if _, ok := r.s.data.locations[report.LocationID]; !ok {
		return repository.ErrNotFound
	}
	if _, ok := r.s.data.statuses[report.ReportStatusID]; !ok {
		return repository.ErrNotFound
	}
	if report.ID == uuid.Nil {
		report.ID = uuid.New()
	}
	report.CreatedAt = r.s.stamp()
	stored := *report
	stored.Location = models.Location{}
	stored.ReportStatus = models.ReportStatus{}
	stored.Media = nil
	r.s.data.reports[report.ID] = stored
	return nil
}

func (r *reportRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Report, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	report, ok := r.s.data.reports[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	report = r.hydrate(report)
	return &report, nil
}

func (r *reportRepository) List(ctx context.Context, filter repository.ReportFilter) ([]models.Report, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var reports []models.Report
	for _, report := range r.s.data.reports {
		if filter.UserID != nil && report.UserID != *filter.UserID {
			continue
		}
		if filter.StatusID != nil && report.ReportStatusID != *filter.StatusID {
			continue
		}
		reports = append(reports, r.hydrate(report))
	}
	sort.Slice(reports, func(i, j int) bool { return reports[i].CreatedAt.After(reports[j].CreatedAt) })
	return window(reports, filter.Page), nil
}

func (r *reportRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Report, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var reports []models.Report
	for _, report := range r.s.data.reports {
		if report.UserID == userID {
			reports = append(reports, r.hydrate(report))
		}
	}
	return reports, nil
}

func (r *reportRepository) Update(ctx context.Context, report *models.Report) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	current, ok := r.s.data.reports[report.ID]
	if !ok {
		return repository.ErrNotFound
	}
	current.LocationID = report.LocationID
	current.ReportStatusID = report.ReportStatusID
	current.Category = report.Category
	current.Description = report.Description
	r.s.data.reports[report.ID] = current
	return nil
}

func (r *reportRepository) SetStatus(ctx context.Context, id, statusID uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	current, ok := r.s.data.reports[id]
	if !ok {
		return repository.ErrNotFound
	}
	current.ReportStatusID = statusID
	r.s.data.reports[id] = current
	return nil
}

func (r *reportRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.data.reports[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.s.data.reports, id)
	return nil
}
