package services

import (
	"context"
	"errors"
	"testing"

	"github.com/ishala/illegal-waste-reporter-BE/models"
	"github.com/ishala/illegal-waste-reporter-BE/repository"
)

func TestUpdateUserRoleRequiresAdmin(t *testing.T) {
	f := newFixture(t)
	user := f.user(t, "climber@example.com")
	admin := f.admin(t, "root@example.com")
	ctx := context.Background()

	role := models.RoleAdmin
	if _, err := f.users.Update(ctx, user, user.ID, UpdateUserInput{Role: &role}); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	promoted, err := f.users.Update(ctx, admin, user.ID, UpdateUserInput{Role: &role})
	if err != nil {
		t.Fatalf("admin update: %v", err)
	}
	if !promoted.IsAdmin() {
		t.Fatalf("user not promoted")
	}
}

func TestUpdateUserSelf(t *testing.T) {
	f := newFixture(t)
	user := f.user(t, "self@example.com")
	other := f.user(t, "taken2@example.com")
	ctx := context.Background()

	name := "Renamed"
	updated, err := f.users.Update(ctx, user, user.ID, UpdateUserInput{Name: &name})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Name != name {
		t.Fatalf("name not updated")
	}
	email := other.Email
	if _, err := f.users.Update(ctx, user, user.ID, UpdateUserInput{Email: &email}); !errors.Is(err, ErrEmailExists) {
		t.Fatalf("expected ErrEmailExists, got %v", err)
	}
	if _, err := f.users.Update(ctx, user, other.ID, UpdateUserInput{Name: &name}); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}

	password := "new-password"
	if _, err := f.users.Update(ctx, user, user.ID, UpdateUserInput{Password: &password}); err != nil {
		t.Fatalf("password update: %v", err)
	}
	if _, err := f.auth.Login(ctx, user.Email, password, ""); err != nil {
		t.Fatalf("login with new password: %v", err)
	}
}

func TestDeleteUserCascades(t *testing.T) {
	f := newFixture(t)
	user := f.user(t, "leaving@example.com")
	admin := f.admin(t, "deleter@example.com")
	ctx := context.Background()

	report := f.report(t, user, file("a.jpg", "image/jpeg", "a"))
	f.auth.Login(ctx, user.Email, "password123", "")
	f.verifications.Create(ctx, admin, CreateVerificationInput{ReportID: report.ID, ReportStatus: models.StatusVerified})

	if err := f.users.Delete(ctx, user, user.ID); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if err := f.users.Delete(ctx, admin, user.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	if _, err := f.users.Get(ctx, admin, user.ID); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
	if reports, _ := f.store.Reports().ListByUser(ctx, user.ID); len(reports) != 0 {
		t.Fatalf("reports left: %d", len(reports))
	}
	if v, _ := f.store.Verifications().List(ctx, repository.VerificationFilter{}); len(v) != 0 {
		t.Fatalf("verifications left: %d", len(v))
	}
	if n := f.activeSessions(t, user); n != 0 {
		t.Fatalf("sessions left: %d", n)
	}
	if f.objects.Len() != 0 {
		t.Fatalf("blobs left: %d", f.objects.Len())
	}
}

func TestListUsersAdminOnly(t *testing.T) {
	f := newFixture(t)
	user := f.user(t, "lu@example.com")
	admin := f.admin(t, "lu-admin@example.com")
	ctx := context.Background()

	if _, err := f.users.List(ctx, user, repository.Page{}); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	users, err := f.users.List(ctx, admin, repository.Page{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(users) != 2 {
		t.Fatalf("expected 2 users, got %d", len(users))
	}
}
