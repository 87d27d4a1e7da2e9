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

// EmergencyInput carries a new emergency alert.
type EmergencyInput struct {
	HotelID  int64
	Category string
	Severity string
	Details  string
}

// EmergencyService handles emergency alerts and their notification
// recipient list.
type EmergencyService interface {
	SubmitEmergency(ctx context.Context, caller auth.Principal, input EmergencyInput) (*model.Emergency, error)
	GetAllEmergencies(ctx context.Context, caller auth.Principal) ([]model.Emergency, error)
	AddRecipient(ctx context.Context, caller auth.Principal, contact string) error
	RemoveRecipient(ctx context.Context, caller auth.Principal, contact string) error
	ListRecipients(ctx context.Context, caller auth.Principal) ([]model.EmergencyRecipient, error)
}

type emergencyService struct {
	emergencyRepo repository.EmergencyRepository
	hotelRepo     repository.HotelRepository
	userRepo      repository.UserRepository
	audit         AuditRecorder
}

// NewEmergencyService creates a new emergency service.
func NewEmergencyService(emergencyRepo repository.EmergencyRepository, hotelRepo repository.HotelRepository, userRepo repository.UserRepository, audit AuditRecorder) EmergencyService {
	return &emergencyService{
		emergencyRepo: emergencyRepo,
		hotelRepo:     hotelRepo,
		userRepo:      userRepo,
		audit:         audit,
	}
}

func (s *emergencyService) SubmitEmergency(ctx context.Context, caller auth.Principal, input EmergencyInput) (*model.Emergency, error) {
	if _, err := requireActiveProfile(ctx, s.userRepo, caller); err != nil {
		return nil, err
	}

	if _, err := s.hotelRepo.FindByID(ctx, input.HotelID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrHotelNotFound
		}
		return nil, fmt.Errorf("check hotel: %w", err)
	}

	emergency := &model.Emergency{
		ID:                uuid.New().String(),
		HotelID:           input.HotelID,
		Category:          input.Category,
		Severity:          input.Severity,
		Details:           input.Details,
		ReporterPrincipal: caller.String(),
	}
	if err := s.emergencyRepo.Create(ctx, emergency); err != nil {
		return nil, fmt.Errorf("submit emergency: %w", err)
	}

	s.audit.Record(ctx, caller, AuditEmergencyRaised, &input.HotelID, fmt.Sprintf("%s emergency: %s", input.Severity, input.Category))
	return emergency, nil
}

func (s *emergencyService) GetAllEmergencies(ctx context.Context, caller auth.Principal) ([]model.Emergency, error) {
	if _, err := requireAdmin(ctx, s.userRepo, caller); err != nil {
		return nil, err
	}
	return s.emergencyRepo.List(ctx)
}

func (s *emergencyService) AddRecipient(ctx context.Context, caller auth.Principal, contact string) error {
	if _, err := requireAdmin(ctx, s.userRepo, caller); err != nil {
		return err
	}
	if err := s.emergencyRepo.AddRecipient(ctx, &model.EmergencyRecipient{Contact: contact}); err != nil {
		return fmt.Errorf("add recipient: %w", err)
	}
	s.audit.Record(ctx, caller, AuditRecipientAdded, nil, fmt.Sprintf("added recipient %q", contact))
	return nil
}

func (s *emergencyService) RemoveRecipient(ctx context.Context, caller auth.Principal, contact string) error {
	if _, err := requireAdmin(ctx, s.userRepo, caller); err != nil {
		return err
	}
	if err := s.emergencyRepo.RemoveRecipient(ctx, contact); err != nil {
		return fmt.Errorf("remove recipient: %w", err)
	}
	s.audit.Record(ctx, caller, AuditRecipientRemoved, nil, fmt.Sprintf("removed recipient %q", contact))
	return nil
}

func (s *emergencyService) ListRecipients(ctx context.Context, caller auth.Principal) ([]model.EmergencyRecipient, error) {
	if _, err := requireAdmin(ctx, s.userRepo, caller); err != nil {
		return nil, err
	}
	return s.emergencyRepo.ListRecipients(ctx)
}
