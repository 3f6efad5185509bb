package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/ishala/illegal-waste-reporter-BE/models"
	"gorm.io/gorm"
)

type gormSessionRepository struct {
	db *gorm.DB
}

// active restricts a query to sessions that are usable at now.
func active(now time.Time) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("is_active = ? AND revoked_at IS NULL AND expires_at > ?", true, now)
	}
}

func (r *gormSessionRepository) Create(ctx context.Context, session *models.Session) error {
	return translate(r.db.WithContext(ctx).Create(session).Error)
}

func (r *gormSessionRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Session, error) {
	var session models.Session
	if err := r.db.WithContext(ctx).First(&session, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &session, nil
}

func (r *gormSessionRepository) GetByToken(ctx context.Context, token string) (*models.Session, error) {
	var session models.Session
	if err := r.db.WithContext(ctx).Where("refresh_token = ?", token).First(&session).Error; err != nil {
		return nil, translate(err)
	}
	return &session, nil
}

func (r *gormSessionRepository) GetActiveByToken(ctx context.Context, token string, now time.Time) (*models.Session, error) {
	var session models.Session
	err := r.db.WithContext(ctx).Scopes(active(now)).Where("refresh_token = ?", token).First(&session).Error
	if err != nil {
		return nil, translate(err)
	}
	return &session, nil
}

func (r *gormSessionRepository) Touch(ctx context.Context, id uuid.UUID, at time.Time) error {
	res := r.db.WithContext(ctx).Model(&models.Session{}).Where("id = ?", id).Update("last_used_at", at)
	return affected(res)
}

func (r *gormSessionRepository) ReplaceToken(ctx context.Context, id uuid.UUID, token string, at time.Time) error {
	res := r.db.WithContext(ctx).Model(&models.Session{}).Where("id = ?", id).Updates(map[string]interface{}{
		"refresh_token": token,
		"last_used_at":  at,
	})
	return affected(res)
}

func (r *gormSessionRepository) Revoke(ctx context.Context, id uuid.UUID, at time.Time) error {
	res := r.db.WithContext(ctx).Model(&models.Session{}).Where("id = ?", id).Updates(map[string]interface{}{
		"is_active":  false,
		"revoked_at": at,
	})
	return affected(res)
}

func (r *gormSessionRepository) RevokeAllForUser(ctx context.Context, userID uuid.UUID, at time.Time) (int64, error) {
	res := r.db.WithContext(ctx).Model(&models.Session{}).
		Scopes(active(at)).
		Where("user_id = ?", userID).
		Updates(map[string]interface{}{
			"is_active":  false,
			"revoked_at": at,
		})
	return res.RowsAffected, translate(res.Error)
}

func (r *gormSessionRepository) ListActive(ctx context.Context, userID uuid.UUID, now time.Time) ([]models.Session, error) {
	var sessions []models.Session
	err := r.db.WithContext(ctx).
		Scopes(active(now)).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&sessions).Error
	return sessions, translate(err)
}

func (r *gormSessionRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	res := r.db.WithContext(ctx).Where("expires_at < ?", now).Delete(&models.Session{})
	return res.RowsAffected, translate(res.Error)
}

func (r *gormSessionRepository) DeleteByUser(ctx context.Context, userID uuid.UUID) error {
	return translate(r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&models.Session{}).Error)
}
