package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/ishala/illegal-waste-reporter-BE/models"
	"gorm.io/gorm"
)

type gormVerificationRepository struct {
	db *gorm.DB
}

func (r *gormVerificationRepository) Create(ctx context.Context, verification *models.Verification) error {
	return translate(r.db.WithContext(ctx).Create(verification).Error)
}

func (r *gormVerificationRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Verification, error) {
	var verification models.Verification
	if err := r.db.WithContext(ctx).First(&verification, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &verification, nil
}

func (r *gormVerificationRepository) List(ctx context.Context, filter VerificationFilter) ([]models.Verification, error) {
	var verifications []models.Verification
	query := r.db.WithContext(ctx).Scopes(paginate(filter.Page))
	if filter.ReportID != nil {
		query = query.Where("report_id = ?", *filter.ReportID)
	}
	err := query.Order("verified_at DESC").Find(&verifications).Error
	return verifications, translate(err)
}

func (r *gormVerificationRepository) Update(ctx context.Context, verification *models.Verification) error {
	res := r.db.WithContext(ctx).Model(&models.Verification{}).
		Where("id = ?", verification.ID).
		Update("notes", verification.Notes)
	return affected(res)
}

func (r *gormVerificationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return affected(r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Verification{}))
}

func (r *gormVerificationRepository) DeleteByReport(ctx context.Context, reportID uuid.UUID) error {
	return translate(r.db.WithContext(ctx).Where("report_id = ?", reportID).Delete(&models.Verification{}).Error)
}

func (r *gormVerificationRepository) DeleteByAdmin(ctx context.Context, adminID uuid.UUID) error {
	return translate(r.db.WithContext(ctx).Where("admin_id = ?", adminID).Delete(&models.Verification{}).Error)
}
