package repository

import (
	"context"

	"gatormarket/internal/models"

	"gorm.io/gorm"
)

// ReportRepository defines persistence operations for user and listing reports.
type ReportRepository interface {
	CreateUserReport(ctx context.Context, report *models.UserReport) error
	CreateListingReport(ctx context.Context, report *models.ListingReport) error
	ListListingReports(ctx context.Context, status models.ReportStatus, limit, offset int) ([]models.ListingReport, error)
	ListUserReports(ctx context.Context, limit, offset int) ([]models.UserReport, error)
	GetListingReport(ctx context.Context, id uint) (*models.ListingReport, error)
	UpdateListingReportStatus(ctx context.Context, id uint, status models.ReportStatus) error
}

type reportRepository struct {
	db *gorm.DB
}

// NewReportRepository returns a new ReportRepository implementation.
func NewReportRepository(db *gorm.DB) ReportRepository {
	return &reportRepository{db: db}
}

func (r *reportRepository) CreateUserReport(ctx context.Context, report *models.UserReport) error {
	if err := r.db.WithContext(ctx).Create(report).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *reportRepository) CreateListingReport(ctx context.Context, report *models.ListingReport) error {
	if err := r.db.WithContext(ctx).Create(report).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// ListListingReports returns reports newest first. An empty status lists all.
func (r *reportRepository) ListListingReports(ctx context.Context, status models.ReportStatus, limit, offset int) ([]models.ListingReport, error) {
	var reports []models.ListingReport
	q := r.db.WithContext(ctx)
	if status != "" {
		q = q.Where("status = ?", status)
	}
	err := q.Order("created_at DESC, id DESC").
		Limit(clampLimit(limit, 50, 100)).
		Offset(offset).
		Find(&reports).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return reports, nil
}

func (r *reportRepository) ListUserReports(ctx context.Context, limit, offset int) ([]models.UserReport, error) {
	var reports []models.UserReport
	err := r.db.WithContext(ctx).
		Order("created_at DESC, id DESC").
		Limit(clampLimit(limit, 50, 100)).
		Offset(offset).
		Find(&reports).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return reports, nil
}

func (r *reportRepository) GetListingReport(ctx context.Context, id uint) (*models.ListingReport, error) {
	var report models.ListingReport
	if err := r.db.WithContext(ctx).First(&report, id).Error; err != nil {
		return nil, notFoundOr(err, "Report", id)
	}
	return &report, nil
}

func (r *reportRepository) UpdateListingReportStatus(ctx context.Context, id uint, status models.ReportStatus) error {
	res := r.db.WithContext(ctx).Model(&models.ListingReport{}).Where("id = ?", id).Update("status", status)
	if res.Error != nil {
		return models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("Report", id)
	}
	return nil
}
