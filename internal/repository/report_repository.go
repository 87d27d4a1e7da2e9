package repository

import (
	"context"

	"gorm.io/gorm"

	"hotelcluster/internal/model"
)

// ReportRepository defines daily report persistence operations.
type ReportRepository interface {
	Create(ctx context.Context, report *model.DailyReport) error
	List(ctx context.Context) ([]model.DailyReport, error)
	ListByReporter(ctx context.Context, principal string) ([]model.DailyReport, error)
	ListByHotel(ctx context.Context, hotelID int64) ([]model.DailyReport, error)
}

type reportRepository struct {
	db *gorm.DB
}

// NewReportRepository creates a new report repository.
func NewReportRepository(db *gorm.DB) ReportRepository {
	return &reportRepository{db: db}
}

// Create stores a daily report.
func (r *reportRepository) Create(ctx context.Context, report *model.DailyReport) error {
	return r.db.WithContext(ctx).Create(report).Error
}

// List lists all daily reports, newest first.
func (r *reportRepository) List(ctx context.Context) ([]model.DailyReport, error) {
	var reports []model.DailyReport
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&reports).Error; err != nil {
		return nil, err
	}
	return reports, nil
}

// ListByReporter lists the reports submitted by the given principal.
func (r *reportRepository) ListByReporter(ctx context.Context, principal string) ([]model.DailyReport, error) {
	var reports []model.DailyReport
	err := r.db.WithContext(ctx).
		Where("reporter_principal = ?", principal).
		Order("created_at DESC").
		Find(&reports).Error
	if err != nil {
		return nil, err
	}
	return reports, nil
}

// ListByHotel lists the reports for a hotel.
func (r *reportRepository) ListByHotel(ctx context.Context, hotelID int64) ([]model.DailyReport, error) {
	var reports []model.DailyReport
	err := r.db.WithContext(ctx).
		Where("hotel_id = ?", hotelID).
		Order("created_at DESC").
		Find(&reports).Error
	if err != nil {
		return nil, err
	}
	return reports, nil
}
