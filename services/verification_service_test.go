package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/ishala/illegal-waste-reporter-BE/models"
	"github.com/ishala/illegal-waste-reporter-BE/repository"
)

func TestVerificationUpdatesReportStatus(t *testing.T) {
	f := newFixture(t)
	owner := f.user(t, "v-owner@example.com")
	admin := f.admin(t, "v-admin@example.com")
	report := f.report(t, owner)
	ctx := context.Background()

	verification, err := f.verifications.Create(ctx, admin, CreateVerificationInput{
		ReportID:     report.ID,
		Notes:        " confirmed on site ",
		ReportStatus: models.StatusVerified,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if verification.AdminID != admin.ID || verification.Notes != "confirmed on site" {
		t.Fatalf("unexpected verification: %+v", verification)
	}

	got, _ := f.reports.Get(ctx, report.ID)
	if got.ReportStatus.Name != models.StatusVerified {
		t.Fatalf("expected report Verified, got %q", got.ReportStatus.Name)
	}
	stored, err := f.verifications.Get(ctx, admin, verification.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if stored.ReportID != report.ID {
		t.Fatalf("verification not linked to report")
	}
}

func TestVerificationRejectsPending(t *testing.T) {
	f := newFixture(t)
	owner := f.user(t, "p-owner@example.com")
	admin := f.admin(t, "p-admin@example.com")
	report := f.report(t, owner)

	var verr *ValidationError
	_, err := f.verifications.Create(context.Background(), admin, CreateVerificationInput{ReportID: report.ID, ReportStatus: "pending"})
	if !errors.As(err, &verr) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestVerificationUnknownStatusPersistsNothing(t *testing.T) {
	f := newFixture(t)
	owner := f.user(t, "u-owner@example.com")
	admin := f.admin(t, "u-admin@example.com")
	report := f.report(t, owner)
	ctx := context.Background()

	_, err := f.verifications.Create(ctx, admin, CreateVerificationInput{ReportID: report.ID, ReportStatus: "Escalated"})
	if !errors.Is(err, ErrStatusNotFound) {
		t.Fatalf("expected ErrStatusNotFound, got %v", err)
	}
	all, _ := f.verifications.List(ctx, admin, repository.VerificationFilter{})
	if len(all) != 0 {
		t.Fatalf("expected no verifications, got %d", len(all))
	}
	got, _ := f.reports.Get(ctx, report.ID)
	if got.ReportStatus.Name != models.StatusPending {
		t.Fatalf("report status changed to %q", got.ReportStatus.Name)
	}
}

func TestVerificationMissingReport(t *testing.T) {
	f := newFixture(t)
	admin := f.admin(t, "m-admin@example.com")

	_, err := f.verifications.Create(context.Background(), admin, CreateVerificationInput{ReportID: uuid.New(), ReportStatus: models.StatusRejected})
	if !errors.Is(err, ErrReportNotFound) {
		t.Fatalf("expected ErrReportNotFound, got %v", err)
	}
}

func TestVerificationRequiresAdmin(t *testing.T) {
	f := newFixture(t)
	owner := f.user(t, "na-owner@example.com")
	report := f.report(t, owner)
	ctx := context.Background()

	if _, err := f.verifications.Create(ctx, owner, CreateVerificationInput{ReportID: report.ID, ReportStatus: models.StatusVerified}); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if _, err := f.verifications.List(ctx, owner, repository.VerificationFilter{}); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden on list, got %v", err)
	}
}

func TestVerificationUpdateNotesAndDelete(t *testing.T) {
	f := newFixture(t)
	owner := f.user(t, "n-owner@example.com")
	admin := f.admin(t, "n-admin@example.com")
	report := f.report(t, owner)
	ctx := context.Background()

	verification, _ := f.verifications.Create(ctx, admin, CreateVerificationInput{ReportID: report.ID, ReportStatus: models.StatusRejected})
	updated, err := f.verifications.UpdateNotes(ctx, admin, verification.ID, "duplicate of another report")
	if err != nil {
		t.Fatalf("update notes: %v", err)
	}
	if updated.Notes != "duplicate of another report" {
		t.Fatalf("notes not updated")
	}
	if err := f.verifications.Delete(ctx, admin, verification.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := f.verifications.Get(ctx, admin, verification.ID); !errors.Is(err, ErrVerificationNotFound) {
		t.Fatalf("expected ErrVerificationNotFound, got %v", err)
	}
}
