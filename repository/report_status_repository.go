package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/ishala/illegal-waste-reporter-BE/models"
	"gorm.io/gorm"
)

type gormReportStatusRepository struct {
	db *gorm.DB
}

func (r *gormReportStatusRepository) Ensure(ctx context.Context, name string) (*models.ReportStatus, error) {
	var status models.ReportStatus
	err := r.db.WithContext(ctx).Where(models.ReportStatus{Name: name}).FirstOrCreate(&status).Error
	if err != nil {
		return nil, translate(err)
	}
	return &status, nil
}

func (r *gormReportStatusRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.ReportStatus, error) {
	var status models.ReportStatus
	if err := r.db.WithContext(ctx).First(&status, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &status, nil
}

func (r *gormReportStatusRepository) GetByName(ctx context.Context, name string) (*models.ReportStatus, error) {
	var status models.ReportStatus
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&status).Error; err != nil {
		return nil, translate(err)
	}
	return &status, nil
}

func (r *gormReportStatusRepository) List(ctx context.Context) ([]models.ReportStatus, error) {
	var statuses []models.ReportStatus
	err := r.db.WithContext(ctx).Order("name ASC").Find(&statuses).Error
	return statuses, translate(err)
}
