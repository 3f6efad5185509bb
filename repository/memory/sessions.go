package memory

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/ishala/illegal-waste-reporter-BE/models"
	"github.com/ishala/illegal-waste-reporter-BE/repository"
)

type sessionRepository struct{ s *Store }

func (r *sessionRepository) Create(ctx context.Context, session *models.Session) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.data.sessions {
		if existing.RefreshToken == session.RefreshToken {
			return repository.ErrDuplicate
		}
	}
	if session.ID == uuid.Nil {
		session.ID = uuid.New()
	}
	session.CreatedAt = r.s.stamp()
	r.s.data.sessions[session.ID] = *session
	return nil
}

func (r *sessionRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Session, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	session, ok := r.s.data.sessions[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &session, nil
}

func (r *sessionRepository) GetByToken(ctx context.Context, token string) (*models.Session, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, session := range r.s.data.sessions {
		if session.RefreshToken == token {
			return &session, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *sessionRepository) GetActiveByToken(ctx context.Context, token string, now time.Time) (*models.Session, error) {
	session, err := r.GetByToken(ctx, token)
	if err != nil {
		return nil, err
	}
	if !session.ActiveAt(now) {
		return nil, repository.ErrNotFound
	}
	return session, nil
}

func (r *sessionRepository) update(id uuid.UUID, fn func(*models.Session)) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	session, ok := r.s.data.sessions[id]
	if !ok {
		return repository.ErrNotFound
	}
	fn(&session)
	r.s.data.sessions[id] = session
	return nil
}

func (r *sessionRepository) Touch(ctx context.Context, id uuid.UUID, at time.Time) error {
	return r.update(id, func(s *models.Session) { s.LastUsedAt = at })
}

func (r *sessionRepository) ReplaceToken(ctx context.Context, id uuid.UUID, token string, at time.Time) error {
	return r.update(id, func(s *models.Session) {
		s.RefreshToken = token
		s.LastUsedAt = at
	})
}

func (r *sessionRepository) Revoke(ctx context.Context, id uuid.UUID, at time.Time) error {
	return r.update(id, func(s *models.Session) {
		s.IsActive = false
		s.RevokedAt = &at
	})
}

func (r *sessionRepository) RevokeAllForUser(ctx context.Context, userID uuid.UUID, at time.Time) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var count int64
	for id, session := range r.s.data.sessions {
		if session.UserID != userID || !session.ActiveAt(at) {
			continue
		}
		revokedAt := at
		session.IsActive = false
		session.RevokedAt = &revokedAt
		r.s.data.sessions[id] = session
		count++
	}
	return count, nil
}

func (r *sessionRepository) ListActive(ctx context.Context, userID uuid.UUID, now time.Time) ([]models.Session, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var sessions []models.Session
	for _, session := range r.s.data.sessions {
		if session.UserID == userID && session.ActiveAt(now) {
			sessions = append(sessions, session)
		}
	}
	sort.Slice(sessions, func(i, j int) bool { return sessions[i].CreatedAt.After(sessions[j].CreatedAt) })
	return sessions, nil
}

func (r *sessionRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var count int64
	for id, session := range r.s.data.sessions {
		if session.ExpiresAt.Before(now) {
			delete(r.s.data.sessions, id)
			count++
		}
	}
	return count, nil
}

func (r *sessionRepository) DeleteByUser(ctx context.Context, userID uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for id, session := range r.s.data.sessions {
		if session.UserID == userID {
			delete(r.s.data.sessions, id)
		}
	}
	return nil
}
