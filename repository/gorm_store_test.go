package repository

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/ishala/illegal-waste-reporter-BE/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newSQLiteStore(t *testing.T) *GormStore {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=on", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Session{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return NewGormStore(db)
}

func createUser(t *testing.T, store Store, email string) *models.User {
	t.Helper()
	user := &models.User{Name: "Reporter", Email: email, Password: "hash", Role: models.RoleUser}
	if err := store.Users().Create(context.Background(), user); err != nil {
		t.Fatalf("create user: %v", err)
	}
	return user
}

func TestGormUserRepositoryDuplicateEmail(t *testing.T) {
	store := newSQLiteStore(t)
	createUser(t, store, "a@example.com")

	err := store.Users().Create(context.Background(), &models.User{Name: "B", Email: "a@example.com", Password: "x", Role: models.RoleUser})
	if !errors.Is(err, ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}
}

func TestGormUserRepositoryGetMissing(t *testing.T) {
	store := newSQLiteStore(t)
	if _, err := store.Users().GetByEmail(context.Background(), "nobody@example.com"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestGormUserRepositoryUpdate(t *testing.T) {
	store := newSQLiteStore(t)
	ctx := context.Background()
	user := createUser(t, store, "u@example.com")

	user.Name = "Renamed"
	user.Role = models.RoleAdmin
	if err := store.Users().Update(ctx, user); err != nil {
		t.Fatalf("update: %v", err)
	}
	got, err := store.Users().GetByID(ctx, user.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Name != "Renamed" || !got.IsAdmin() {
		t.Fatalf("update not persisted: %+v", got)
	}
}

func TestGormSessionLifecycle(t *testing.T) {
	store := newSQLiteStore(t)
	ctx := context.Background()
	user := createUser(t, store, "s@example.com")
	now := time.Now().UTC()

	live := &models.Session{UserID: user.ID, RefreshToken: "live", IsActive: true, ExpiresAt: now.Add(24 * time.Hour), LastUsedAt: now}
	expired := &models.Session{UserID: user.ID, RefreshToken: "expired", IsActive: true, ExpiresAt: now.Add(-24 * time.Hour), LastUsedAt: now}
	for _, s := range []*models.Session{live, expired} {
		if err := store.Sessions().Create(ctx, s); err != nil {
			t.Fatalf("create session: %v", err)
		}
	}

	if _, err := store.Sessions().GetActiveByToken(ctx, "live", now); err != nil {
		t.Fatalf("live session should be active: %v", err)
	}
	if _, err := store.Sessions().GetActiveByToken(ctx, "expired", now); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expired session should not be active, got %v", err)
	}
	if _, err := store.Sessions().GetByToken(ctx, "expired"); err != nil {
		t.Fatalf("expired session should still be found: %v", err)
	}

	active, err := store.Sessions().ListActive(ctx, user.ID, now)
	if err != nil {
		t.Fatalf("list active: %v", err)
	}
	if len(active) != 1 || active[0].ID != live.ID {
		t.Fatalf("unexpected active sessions: %+v", active)
	}

	deleted, err := store.Sessions().DeleteExpired(ctx, now)
	if err != nil {
		t.Fatalf("sweep: %v", err)
	}
	if deleted != 1 {
		t.Fatalf("expected 1 expired row deleted, got %d", deleted)
	}

	revoked, err := store.Sessions().RevokeAllForUser(ctx, user.ID, now)
	if err != nil {
		t.Fatalf("revoke all: %v", err)
	}
	if revoked != 1 {
		t.Fatalf("expected 1 revoked, got %d", revoked)
	}
	got, err := store.Sessions().GetByID(ctx, live.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.IsActive || got.RevokedAt == nil {
		t.Fatalf("session not revoked: %+v", got)
	}
}

func TestGormStoreTransactionRollback(t *testing.T) {
	store := newSQLiteStore(t)
	ctx := context.Background()
	boom := errors.New("boom")

	err := store.Transaction(ctx, func(tx Store) error {
		if err := tx.Users().Create(ctx, &models.User{Name: "T", Email: "t@example.com", Password: "x", Role: models.RoleUser}); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
	if _, err := store.Users().GetByEmail(ctx, "t@example.com"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("insert should have been rolled back, got %v", err)
	}
}

func TestPageNormalize(t *testing.T) {
	p := Page{Skip: -3, Limit: 0}.Normalize()
	if p.Skip != 0 || p.Limit != DefaultLimit {
		t.Fatalf("unexpected page %+v", p)
	}
	if p := (Page{Limit: MaxLimit + 1}).Normalize(); p.Limit != MaxLimit {
		t.Fatalf("limit not clamped: %+v", p)
	}
}
