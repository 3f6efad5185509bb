package services

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/ishala/illegal-waste-reporter-BE/models"
	"github.com/ishala/illegal-waste-reporter-BE/repository"
)

type CreateReportInput struct {
	Category       string
	Description    string
	Latitude       float64
	Longitude      float64
	Address        string
	City           string
	ReportStatusID *uuid.UUID
	Files          []MediaFile
}

type UpdateReportInput struct {
	Category       *string
	Description    *string
	Latitude       *float64
	Longitude      *float64
	Address        *string
	City           *string
	ReportStatusID *uuid.UUID
}

type ListReportsInput struct {
	repository.Page
	Status string
	UserID *uuid.UUID
}

type ReportService struct {
	store repository.Store
	media *MediaService
}

func NewReportService(store repository.Store, media *MediaService) *ReportService {
	return &ReportService{store: store, media: media}
}

func validateCoordinates(lat, lon float64) error {
	if lat < -90 || lat > 90 {
		return invalid("latitude", "must be between -90 and 90")
	}
	if lon < -180 || lon > 180 {
		return invalid("longitude", "must be between -180 and 180")
	}
	return nil
}

// resolveStatus returns the requested status, or Pending when none is given.
// Only admins may open a report in any other state.
func resolveStatus(ctx context.Context, store repository.Store, caller *models.User, id *uuid.UUID) (*models.ReportStatus, error) {
	if id == nil {
		status, err := store.Statuses().GetByName(ctx, models.StatusPending)
		return status, notFound(err, ErrStatusNotFound)
	}
	status, err := store.Statuses().GetByID(ctx, *id)
	if err != nil {
		return nil, notFound(err, ErrStatusNotFound)
	}
	if status.Name != models.StatusPending && !caller.IsAdmin() {
		return nil, ErrForbidden
	}
	return status, nil
}

// Create stores the location and report together, then uploads any files.
// A failed upload removes the report again.
func (s *ReportService) Create(ctx context.Context, caller *models.User, in CreateReportInput) (*models.Report, error) {
	if caller == nil {
		return nil, ErrUnauthenticated
	}
	category := strings.TrimSpace(in.Category)
	if category == "" {
		return nil, invalid("category", "is required")
	}
	if err := validateCoordinates(in.Latitude, in.Longitude); err != nil {
		return nil, err
	}

	report := &models.Report{
		UserID:      caller.ID,
		Category:    category,
		Description: strings.TrimSpace(in.Description),
	}
	err := s.store.Transaction(ctx, func(tx repository.Store) error {
		status, err := resolveStatus(ctx, tx, caller, in.ReportStatusID)
		if err != nil {
			return err
		}
		location := &models.Location{
			Latitude:  in.Latitude,
			Longitude: in.Longitude,
			Address:   strings.TrimSpace(in.Address),
			City:      strings.TrimSpace(in.City),
		}
		if err := tx.Locations().Create(ctx, location); err != nil {
			return err
		}
		report.LocationID = location.ID
		report.ReportStatusID = status.ID
		return tx.Reports().Create(ctx, report)
	})
	if err != nil {
		return nil, err
	}

	if len(in.Files) > 0 {
		if _, err := s.media.upload(ctx, report.ID, in.Files); err != nil {
			if delErr := s.delete(ctx, report.ID); delErr != nil {
				slog.Error("failed to remove report after media error", "report_id", report.ID, "error", delErr)
			}
			return nil, err
		}
	}
	return s.Get(ctx, report.ID)
}

func (s *ReportService) Get(ctx context.Context, id uuid.UUID) (*models.Report, error) {
	report, err := s.store.Reports().GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, ErrReportNotFound)
	}
	report.Media = s.media.withURLs(ctx, report.Media)
	return report, nil
}

func (s *ReportService) List(ctx context.Context, in ListReportsInput) ([]models.Report, error) {
	filter := repository.ReportFilter{Page: in.Page, UserID: in.UserID}
	if in.Status != "" {
		status, err := s.store.Statuses().GetByName(ctx, in.Status)
		if err != nil {
			return nil, notFound(err, ErrStatusNotFound)
		}
		filter.StatusID = &status.ID
	}
	reports, err := s.store.Reports().List(ctx, filter)
	if err != nil {
		return nil, err
	}
	for i := range reports {
		reports[i].Media = s.media.withURLs(ctx, reports[i].Media)
	}
	return reports, nil
}

// Update never edits a location in place: any location change creates a
// fresh Location and drops the old one.
func (s *ReportService) Update(ctx context.Context, caller *models.User, id uuid.UUID, in UpdateReportInput) (*models.Report, error) {
	if (in.Latitude == nil) != (in.Longitude == nil) {
		return nil, invalid("latitude", "latitude and longitude must be given together")
	}
	if in.Latitude != nil {
		if err := validateCoordinates(*in.Latitude, *in.Longitude); err != nil {
			return nil, err
		}
	}

	err := s.store.Transaction(ctx, func(tx repository.Store) error {
		report, err := tx.Reports().GetByID(ctx, id)
		if err != nil {
			return notFound(err, ErrReportNotFound)
		}
		if err := RequireOwnerOrAdmin(report.UserID, caller); err != nil {
			return err
		}

		if in.Category != nil {
			category := strings.TrimSpace(*in.Category)
			if category == "" {
				return invalid("category", "must not be empty")
			}
			report.Category = category
		}
		if in.Description != nil {
			report.Description = strings.TrimSpace(*in.Description)
		}
		if in.ReportStatusID != nil {
			if err := RequireAdmin(caller); err != nil {
				return err
			}
			if _, err := tx.Statuses().GetByID(ctx, *in.ReportStatusID); err != nil {
				return notFound(err, ErrStatusNotFound)
			}
			report.ReportStatusID = *in.ReportStatusID
		}

		oldLocationID := uuid.Nil
		if in.Latitude != nil || in.Address != nil || in.City != nil {
			location := models.Location{
				Latitude:  report.Location.Latitude,
				Longitude: report.Location.Longitude,
				Address:   report.Location.Address,
				City:      report.Location.City,
			}
			if in.Latitude != nil {
				location.Latitude, location.Longitude = *in.Latitude, *in.Longitude
			}
			if in.Address != nil {
				location.Address = strings.TrimSpace(*in.Address)
			}
			if in.City != nil {
				location.City = strings.TrimSpace(*in.City)
			}
			if err := tx.Locations().Create(ctx, &location); err != nil {
				return err
			}
			oldLocationID = report.LocationID
			report.LocationID = location.ID
		}

		if err := tx.Reports().Update(ctx, report); err != nil {
			return notFound(err, ErrReportNotFound)
		}
		if oldLocationID != uuid.Nil {
			if err := tx.Locations().Delete(ctx, oldLocationID); err != nil && !errors.Is(err, repository.ErrNotFound) {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

func (s *ReportService) Delete(ctx context.Context, caller *models.User, id uuid.UUID) error {
	report, err := s.store.Reports().GetByID(ctx, id)
	if err != nil {
		return notFound(err, ErrReportNotFound)
	}
	if err := RequireOwnerOrAdmin(report.UserID, caller); err != nil {
		return err
	}
	return s.delete(ctx, id)
}

// delete removes blobs first, then media, verifications, the report and its
// location in one transaction.
func (s *ReportService) delete(ctx context.Context, id uuid.UUID) error {
	return s.store.Transaction(ctx, func(tx repository.Store) error {
		return purgeReport(ctx, tx, s.media, id)
	})
}

func purgeReport(ctx context.Context, tx repository.Store, media *MediaService, id uuid.UUID) error {
	report, err := tx.Reports().GetByID(ctx, id)
	if err != nil {
		return notFound(err, ErrReportNotFound)
	}
	if _, err := media.DeleteByReport(ctx, tx, id); err != nil {
		return err
	}
	if err := tx.Verifications().DeleteByReport(ctx, id); err != nil {
		return err
	}
	if err := tx.Reports().Delete(ctx, id); err != nil {
		return notFound(err, ErrReportNotFound)
	}
	if err := tx.Locations().Delete(ctx, report.LocationID); err != nil && !errors.Is(err, repository.ErrNotFound) {
		return err
	}
	return nil
}

func (s *ReportService) Statuses(ctx context.Context) ([]models.ReportStatus, error) {
	return s.store.Statuses().List(ctx)
}
