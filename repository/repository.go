// Package repository holds the persistence interfaces the services depend on
// and their gorm-backed implementation.
package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/ishala/illegal-waste-reporter-BE/models"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("duplicate record")
	ErrInUse     = errors.New("record is still referenced")
)

const (
	DefaultLimit = 100
	MaxLimit     = 1000
)

// Page is a skip/limit window.
type Page struct {
	Skip  int
	Limit int
}

// Normalize clamps the window into a usable range.
func (p Page) Normalize() Page {
	if p.Skip < 0 {
		p.Skip = 0
	}
	if p.Limit <= 0 {
		p.Limit = DefaultLimit
	}
	if p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}
	return p
}

type ReportFilter struct {
	Page
	UserID   *uuid.UUID
	StatusID *uuid.UUID
}

type VerificationFilter struct {
	Page
	ReportID *uuid.UUID
}

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	List(ctx context.Context, page Page) ([]models.User, error)
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type SessionRepository interface {
	Create(ctx context.Context, session *models.Session) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Session, error)
	GetByToken(ctx context.Context, token string) (*models.Session, error)
	GetActiveByToken(ctx context.Context, token string, now time.Time) (*models.Session, error)
	Touch(ctx context.Context, id uuid.UUID, at time.Time) error
	ReplaceToken(ctx context.Context, id uuid.UUID, token string, at time.Time) error
	Revoke(ctx context.Context, id uuid.UUID, at time.Time) error
	RevokeAllForUser(ctx context.Context, userID uuid.UUID, at time.Time) (int64, error)
	ListActive(ctx context.Context, userID uuid.UUID, now time.Time) ([]models.Session, error)
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
	DeleteByUser(ctx context.Context, userID uuid.UUID) error
}

type LocationRepository interface {
	Create(ctx context.Context, location *models.Location) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Location, error)
	List(ctx context.Context, page Page) ([]models.Location, error)
	Update(ctx context.Context, location *models.Location) error
	Delete(ctx context.Context, id uuid.UUID) error
	Nearby(ctx context.Context, lat, lon, radiusKm float64, limit int) ([]models.NearbyLocation, error)
	DistanceMeters(ctx context.Context, id uuid.UUID, lat, lon float64) (float64, error)
}

type ReportRepository interface {
	Create(ctx context.Context, report *models.Report) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Report, error)
	List(ctx context.Context, filter ReportFilter) ([]models.Report, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Report, error)
	Update(ctx context.Context, report *models.Report) error
	SetStatus(ctx context.Context, id, statusID uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type ReportStatusRepository interface {
	Ensure(ctx context.Context, name string) (*models.ReportStatus, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.ReportStatus, error)
	GetByName(ctx context.Context, name string) (*models.ReportStatus, error)
	List(ctx context.Context) ([]models.ReportStatus, error)
}

type VerificationRepository interface {
	Create(ctx context.Context, verification *models.Verification) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Verification, error)
	List(ctx context.Context, filter VerificationFilter) ([]models.Verification, error)
	Update(ctx context.Context, verification *models.Verification) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByReport(ctx context.Context, reportID uuid.UUID) error
	DeleteByAdmin(ctx context.Context, adminID uuid.UUID) error
}

type MediaRepository interface {
	Create(ctx context.Context, media *models.Media) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Media, error)
	ListByReport(ctx context.Context, reportID uuid.UUID) ([]models.Media, error)
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByReport(ctx context.Context, reportID uuid.UUID) (int64, error)
}

// Store groups the repositories so a unit of work can span several of them.
type Store interface {
	Users() UserRepository
	Sessions() SessionRepository
	Locations() LocationRepository
	Reports() ReportRepository
	Statuses() ReportStatusRepository
	Verifications() VerificationRepository
	Media() MediaRepository

	// Transaction runs fn against a Store bound to a single transaction.
	// Returning an error from fn rolls back every write made through it.
	Transaction(ctx context.Context, fn func(tx Store) error) error
	Ping(ctx context.Context) error
}
