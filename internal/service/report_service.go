package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"hotelcluster/internal/auth"
	apperrors "hotelcluster/internal/errors"
	"hotelcluster/internal/model"
	"hotelcluster/internal/repository"
)

// DailyReportInput carries the operational counters for one day.
type DailyReportInput struct {
	HotelID         int64
	Occupancy       int64
	VIPArrivals     int64
	GuestIncidents  int64
	StaffIncidents  int64
	GuestComplaints int64
	GuestInjuries   int64
	StaffInjuries   int64
}

// ReportService handles daily operational reports.
type ReportService interface {
	// SaveDailyReport stores a report for the caller. All counters must be
	// non-negative; an all-zero report is valid.
	SaveDailyReport(ctx context.Context, caller auth.Principal, input DailyReportInput) (*model.DailyReport, error)
	GetMyDailyReports(ctx context.Context, caller auth.Principal) ([]model.DailyReport, error)
	GetAllDailyReports(ctx context.Context, caller auth.Principal) ([]model.DailyReport, error)
}

type reportService struct {
	reportRepo repository.ReportRepository
	hotelRepo  repository.HotelRepository
	userRepo   repository.UserRepository
	audit      AuditRecorder
}

// NewReportService creates a new report service.
func NewReportService(reportRepo repository.ReportRepository, hotelRepo repository.HotelRepository, userRepo repository.UserRepository, audit AuditRecorder) ReportService {
	return &reportService{
		reportRepo: reportRepo,
		hotelRepo:  hotelRepo,
		userRepo:   userRepo,
		audit:      audit,
	}
}

func (s *reportService) SaveDailyReport(ctx context.Context, caller auth.Principal, input DailyReportInput) (*model.DailyReport, error) {
	if _, err := requireActiveProfile(ctx, s.userRepo, caller); err != nil {
		return nil, err
	}

	counters := []int64{
		input.Occupancy, input.VIPArrivals,
		input.GuestIncidents, input.StaffIncidents,
		input.GuestComplaints, input.GuestInjuries, input.StaffInjuries,
	}
	for _, c := range counters {
		if c < 0 {
			return nil, apperrors.ErrInvalidCounter
		}
	}

	if _, err := s.hotelRepo.FindByID(ctx, input.HotelID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrHotelNotFound
		}
		return nil, fmt.Errorf("check hotel: %w", err)
	}

	report := &model.DailyReport{
		ID:                uuid.New().String(),
		HotelID:           input.HotelID,
		ReporterPrincipal: caller.String(),
		Occupancy:         input.Occupancy,
		VIPArrivals:       input.VIPArrivals,
		GuestIncidents:    input.GuestIncidents,
		StaffIncidents:    input.StaffIncidents,
		GuestComplaints:   input.GuestComplaints,
		GuestInjuries:     input.GuestInjuries,
		StaffInjuries:     input.StaffInjuries,
	}
	if err := s.reportRepo.Create(ctx, report); err != nil {
		return nil, fmt.Errorf("save daily report: %w", err)
	}

	s.audit.Record(ctx, caller, AuditReportSubmitted, &input.HotelID, fmt.Sprintf("daily report %s submitted", report.ID))
	return report, nil
}

func (s *reportService) GetMyDailyReports(ctx context.Context, caller auth.Principal) ([]model.DailyReport, error) {
	if _, err := requireActiveProfile(ctx, s.userRepo, caller); err != nil {
		return nil, err
	}
	return s.reportRepo.ListByReporter(ctx, caller.String())
}

func (s *reportService) GetAllDailyReports(ctx context.Context, caller auth.Principal) ([]model.DailyReport, error) {
	if _, err := requireAdmin(ctx, s.userRepo, caller); err != nil {
		return nil, err
	}
	return s.reportRepo.List(ctx)
}
