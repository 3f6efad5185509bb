package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/ishala/illegal-waste-reporter-BE/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type gormReportRepository struct {
	db *gorm.DB
}

func withReportRelations(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Location").
		Preload("ReportStatus").
		Preload("Media", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		})
}

func (r *gormReportRepository) Create(ctx context.Context, report *models.Report) error {
	return translate(r.db.WithContext(ctx).Omit(clause.Associations).Create(report).Error)
}

func (r *gormReportRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Report, error) {
	var report models.Report
	if err := r.db.WithContext(ctx).Scopes(withReportRelations).First(&report, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &report, nil
}

func (r *gormReportRepository) List(ctx context.Context, filter ReportFilter) ([]models.Report, error) {
	var reports []models.Report
	query := r.db.WithContext(ctx).Scopes(withReportRelations, paginate(filter.Page))
	if filter.UserID != nil {
		query = query.Where("user_id = ?", *filter.UserID)
	}
	if filter.StatusID != nil {
		query = query.Where("report_status_id = ?", *filter.StatusID)
	}
	err := query.Order("created_at DESC").Find(&reports).Error
	return reports, translate(err)
}

func (r *gormReportRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Report, error) {
	var reports []models.Report
	err := r.db.WithContext(ctx).Preload("Media").Where("user_id = ?", userID).Find(&reports).Error
	return reports, translate(err)
}

func (r *gormReportRepository) Update(ctx context.Context, report *models.Report) error {
	res := r.db.WithContext(ctx).Model(&models.Report{}).Where("id = ?", report.ID).Updates(map[string]interface{}{
		"location_id":      report.LocationID,
		"report_status_id": report.ReportStatusID,
		"category":         report.Category,
		"description":      report.Description,
	})
	return affected(res)
}

func (r *gormReportRepository) SetStatus(ctx context.Context, id, statusID uuid.UUID) error {
	res := r.db.WithContext(ctx).Model(&models.Report{}).Where("id = ?", id).Update("report_status_id", statusID)
	return affected(res)
}

func (r *gormReportRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return affected(r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Report{}))
}
