package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/ishala/illegal-waste-reporter-BE/models"
	"github.com/ishala/illegal-waste-reporter-BE/repository"
	"github.com/ishala/illegal-waste-reporter-BE/token"
)

const tokenCollisionRetries = 3

// SessionRegistry owns refresh-token sessions.
type SessionRegistry struct {
	sessions repository.SessionRepository
	now      func() time.Time
	newToken func() (string, error)
}

func NewSessionRegistry(sessions repository.SessionRepository) *SessionRegistry {
	return &SessionRegistry{
		sessions: sessions,
		now:      func() time.Time { return time.Now().UTC() },
		newToken: token.NewRefreshToken,
	}
}

func notFound(err, replacement error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return replacement
	}
	return err
}

// Create opens a session that expires ttlDays from now.
func (r *SessionRegistry) Create(ctx context.Context, userID uuid.UUID, deviceName string, ttlDays int) (*models.Session, error) {
	if ttlDays <= 0 {
		return nil, invalid("ttl_days", "must be positive")
	}
	now := r.now()
	for attempt := 0; ; attempt++ {
		refresh, err := r.newToken()
		if err != nil {
			return nil, err
		}
		session := &models.Session{
			UserID:       userID,
			RefreshToken: refresh,
			DeviceName:   deviceName,
			IsActive:     true,
			ExpiresAt:    now.AddDate(0, 0, ttlDays),
			LastUsedAt:   now,
		}
		err = r.sessions.Create(ctx, session)
		if err == nil {
			return session, nil
		}
		if !errors.Is(err, repository.ErrDuplicate) || attempt+1 >= tokenCollisionRetries {
			return nil, fmt.Errorf("create session: %w", err)
		}
	}
}

func (r *SessionRegistry) FindActiveByToken(ctx context.Context, refresh string) (*models.Session, error) {
	session, err := r.sessions.GetActiveByToken(ctx, refresh, r.now())
	if err != nil {
		return nil, notFound(err, ErrSessionNotFound)
	}
	return session, nil
}

// FindByToken ignores the active state.
func (r *SessionRegistry) FindByToken(ctx context.Context, refresh string) (*models.Session, error) {
	session, err := r.sessions.GetByToken(ctx, refresh)
	if err != nil {
		return nil, notFound(err, ErrSessionNotFound)
	}
	return session, nil
}

func (r *SessionRegistry) FindByID(ctx context.Context, id uuid.UUID) (*models.Session, error) {
	session, err := r.sessions.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, ErrSessionNotFound)
	}
	return session, nil
}

func (r *SessionRegistry) Touch(ctx context.Context, id uuid.UUID) error {
	return notFound(r.sessions.Touch(ctx, id, r.now()), ErrSessionNotFound)
}

// Rotate swaps the session's refresh token in place and returns the new one.
func (r *SessionRegistry) Rotate(ctx context.Context, id uuid.UUID) (string, error) {
	for attempt := 0; ; attempt++ {
		refresh, err := r.newToken()
		if err != nil {
			return "", err
		}
		err = r.sessions.ReplaceToken(ctx, id, refresh, r.now())
		if err == nil {
			return refresh, nil
		}
		if !errors.Is(err, repository.ErrDuplicate) || attempt+1 >= tokenCollisionRetries {
			return "", notFound(err, ErrSessionNotFound)
		}
	}
}

func (r *SessionRegistry) Revoke(ctx context.Context, id uuid.UUID) error {
	return notFound(r.sessions.Revoke(ctx, id, r.now()), ErrSessionNotFound)
}

func (r *SessionRegistry) RevokeAll(ctx context.Context, userID uuid.UUID) (int64, error) {
	return r.sessions.RevokeAllForUser(ctx, userID, r.now())
}

// ListActive returns the user's active sessions, newest first.
func (r *SessionRegistry) ListActive(ctx context.Context, userID uuid.UUID) ([]models.Session, error) {
	return r.sessions.ListActive(ctx, userID, r.now())
}

func (r *SessionRegistry) SweepExpired(ctx context.Context) (int64, error) {
	return r.sessions.DeleteExpired(ctx, r.now())
}
