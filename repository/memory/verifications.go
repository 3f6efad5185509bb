package memory

import (
	"context"
	"sort"

	"github.com/google/uuid"
	"github.com/ishala/illegal-waste-reporter-BE/models"
	"github.com/ishala/illegal-waste-reporter-BE/repository"
)

type verificationRepository struct{ s *Store }

func (r *verificationRepository) Create(ctx context.Context, verification *models.Verification) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.data.reports[verification.ReportID]; !ok {
		return repository.ErrNotFound
	}
	if verification.ID == uuid.Nil {
		verification.ID = uuid.New()
	}
	verification.VerifiedAt = r.s.stamp()
	r.s.data.verifications[verification.ID] = *verification
	return nil
}

func (r *verificationRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Verification, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	verification, ok := r.s.data.verifications[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &verification, nil
}

func (r *verificationRepository) List(ctx context.Context, filter repository.VerificationFilter) ([]models.Verification, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var verifications []models.Verification
	for _, v := range r.s.data.verifications {
		if filter.ReportID != nil && v.ReportID != *filter.ReportID {
			continue
		}
		verifications = append(verifications, v)
	}
	sort.Slice(verifications, func(i, j int) bool { return verifications[i].VerifiedAt.After(verifications[j].VerifiedAt) })
	return window(verifications, filter.Page), nil
}

func (r *verificationRepository) Update(ctx context.Context, verification *models.Verification) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	current, ok := r.s.data.verifications[verification.ID]
	if !ok {
		return repository.ErrNotFound
	}
	current.Notes = verification.Notes
	r.s.data.verifications[verification.ID] = current
	return nil
}

func (r *verificationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.data.verifications[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.s.data.verifications, id)
	return nil
}

func (r *verificationRepository) DeleteByReport(ctx context.Context, reportID uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for id, v := range r.s.data.verifications {
		if v.ReportID == reportID {
			delete(r.s.data.verifications, id)
		}
	}
	return nil
}

func (r *verificationRepository) DeleteByAdmin(ctx context.Context, adminID uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for id, v := range r.s.data.verifications {
		if v.AdminID == adminID {
			delete(r.s.data.verifications, id)
		}
	}
	return nil
}
