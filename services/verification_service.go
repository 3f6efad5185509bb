package services

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/ishala/illegal-waste-reporter-BE/models"
	"github.com/ishala/illegal-waste-reporter-BE/repository"
)

type CreateVerificationInput struct {
	ReportID     uuid.UUID
	Notes        string
	ReportStatus string
}

type VerificationService struct {
	store repository.Store
}

func NewVerificationService(store repository.Store) *VerificationService {
	return &VerificationService{store: store}
}

// Create records an admin decision on a report and moves the report to the
// named status in the same transaction. A verification has to resolve to a
// status other than Pending.
func (s *VerificationService) Create(ctx context.Context, caller *models.User, in CreateVerificationInput) (*models.Verification, error) {
	if err := RequireAdmin(caller); err != nil {
		return nil, err
	}
	statusName := strings.TrimSpace(in.ReportStatus)
	if statusName == "" {
		return nil, invalid("report_status", "is required")
	}
	if strings.EqualFold(statusName, models.StatusPending) {
		return nil, invalid("report_status", "a verification cannot set a report back to %s", models.StatusPending)
	}

	verification := &models.Verification{
		ReportID: in.ReportID,
		AdminID:  caller.ID,
		Notes:    strings.TrimSpace(in.Notes),
	}
	err := s.store.Transaction(ctx, func(tx repository.Store) error {
		status, err := tx.Statuses().GetByName(ctx, statusName)
		if err != nil {
			return notFound(err, ErrStatusNotFound)
		}
		if _, err := tx.Reports().GetByID(ctx, in.ReportID); err != nil {
			return notFound(err, ErrReportNotFound)
		}
		if err := tx.Verifications().Create(ctx, verification); err != nil {
			return notFound(err, ErrReportNotFound)
		}
		return notFound(tx.Reports().SetStatus(ctx, in.ReportID, status.ID), ErrReportNotFound)
	})
	if err != nil {
		return nil, err
	}
	return verification, nil
}

func (s *VerificationService) Get(ctx context.Context, caller *models.User, id uuid.UUID) (*models.Verification, error) {
	if err := RequireAdmin(caller); err != nil {
		return nil, err
	}
	verification, err := s.store.Verifications().GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, ErrVerificationNotFound)
	}
	return verification, nil
}

func (s *VerificationService) List(ctx context.Context, caller *models.User, filter repository.VerificationFilter) ([]models.Verification, error) {
	if err := RequireAdmin(caller); err != nil {
		return nil, err
	}
	return s.store.Verifications().List(ctx, filter)
}

// UpdateNotes edits the notes only; the status change a verification made stays.
func (s *VerificationService) UpdateNotes(ctx context.Context, caller *models.User, id uuid.UUID, notes string) (*models.Verification, error) {
	verification, err := s.Get(ctx, caller, id)
	if err != nil {
		return nil, err
	}
	verification.Notes = strings.TrimSpace(notes)
	if err := s.store.Verifications().Update(ctx, verification); err != nil {
		return nil, notFound(err, ErrVerificationNotFound)
	}
	return verification, nil
}

func (s *VerificationService) Delete(ctx context.Context, caller *models.User, id uuid.UUID) error {
	if err := RequireAdmin(caller); err != nil {
		return err
	}
	return notFound(s.store.Verifications().Delete(ctx, id), ErrVerificationNotFound)
}
