package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/ishala/illegal-waste-reporter-BE/models"
	"gorm.io/gorm"
)

type gormMediaRepository struct {
	db *gorm.DB
}

func (r *gormMediaRepository) Create(ctx context.Context, media *models.Media) error {
	return translate(r.db.WithContext(ctx).Create(media).Error)
}

func (r *gormMediaRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Media, error) {
	var media models.Media
	if err := r.db.WithContext(ctx).First(&media, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &media, nil
}

func (r *gormMediaRepository) ListByReport(ctx context.Context, reportID uuid.UUID) ([]models.Media, error) {
	var media []models.Media
	err := r.db.WithContext(ctx).Where("report_id = ?", reportID).Order("created_at ASC").Find(&media).Error
	return media, translate(err)
}

func (r *gormMediaRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return affected(r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Media{}))
}

// DeleteByReport removes every media row of the report in one statement.
func (r *gormMediaRepository) DeleteByReport(ctx context.Context, reportID uuid.UUID) (int64, error) {
	res := r.db.WithContext(ctx).Where("report_id = ?", reportID).Delete(&models.Media{})
	return res.RowsAffected, translate(res.Error)
}
