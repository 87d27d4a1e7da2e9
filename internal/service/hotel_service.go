package service

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"hotelcluster/internal/auth"
	apperrors "hotelcluster/internal/errors"
	"hotelcluster/internal/model"
	"hotelcluster/internal/repository"
)

// HotelService handles hotel CRUD. Ids are assigned server-side inside a
// transaction; the historical client-side max+1 computation raced under
// concurrent admins.
type HotelService interface {
	GetAllHotels(ctx context.Context, caller auth.Principal) ([]model.Hotel, error)
	// CreateHotel assigns the next id (max existing id + 1, starting at 1)
	// and creates the hotel atomically.
	CreateHotel(ctx context.Context, caller auth.Principal, name string, isActive bool) (int64, error)
	// CreateManualHotel creates a hotel under an explicit id, rejecting
	// duplicates.
	CreateManualHotel(ctx context.Context, caller auth.Principal, id int64, name string, isActive bool) error
	UpdateHotel(ctx context.Context, caller auth.Principal, id int64, name string, isActive bool) error
	// DeleteHotel removes a hotel; rejected while users remain assigned.
	DeleteHotel(ctx context.Context, caller auth.Principal, id int64) error
}

type hotelService struct {
	hotelRepo repository.HotelRepository
	userRepo  repository.UserRepository
	audit     AuditRecorder
}

// NewHotelService creates a new hotel service.
func NewHotelService(hotelRepo repository.HotelRepository, userRepo repository.UserRepository, audit AuditRecorder) HotelService {
	return &hotelService{
		hotelRepo: hotelRepo,
		userRepo:  userRepo,
		audit:     audit,
	}
}

func (s *hotelService) GetAllHotels(ctx context.Context, caller auth.Principal) ([]model.Hotel, error) {
	if caller.IsAnonymous() {
		return nil, apperrors.ErrUnauthorized
	}
	return s.hotelRepo.List(ctx)
}

func (s *hotelService) CreateHotel(ctx context.Context, caller auth.Principal, name string, isActive bool) (int64, error) {
	if _, err := requireAdmin(ctx, s.userRepo, caller); err != nil {
		return 0, err
	}

	var assigned int64
	err := s.hotelRepo.WithTransaction(ctx, func(ctx context.Context, repo repository.HotelRepository) error {
		maxID, err := repo.MaxID(ctx)
		if err != nil {
			return fmt.Errorf("max hotel id: %w", err)
		}
		assigned = maxID + 1
		return repo.Create(ctx, &model.Hotel{ID: assigned, Name: name, IsActive: isActive})
	})
	if err != nil {
		return 0, fmt.Errorf("create hotel: %w", err)
	}

	s.audit.Record(ctx, caller, AuditHotelCreated, &assigned, fmt.Sprintf("created hotel %q", name))
	return assigned, nil
}

func (s *hotelService) CreateManualHotel(ctx context.Context, caller auth.Principal, id int64, name string, isActive bool) error {
	if _, err := requireAdmin(ctx, s.userRepo, caller); err != nil {
		return err
	}

	if _, err := s.hotelRepo.FindByID(ctx, id); err == nil {
		return apperrors.ErrHotelAlreadyExists
	} else if err != gorm.ErrRecordNotFound {
		return fmt.Errorf("check hotel id: %w", err)
	}

	if err := s.hotelRepo.Create(ctx, &model.Hotel{ID: id, Name: name, IsActive: isActive}); err != nil {
		return fmt.Errorf("create hotel: %w", err)
	}

	s.audit.Record(ctx, caller, AuditHotelCreated, &id, fmt.Sprintf("created hotel %q", name))
	return nil
}

func (s *hotelService) UpdateHotel(ctx context.Context, caller auth.Principal, id int64, name string, isActive bool) error {
	if _, err := requireAdmin(ctx, s.userRepo, caller); err != nil {
		return err
	}

	hotel, err := s.hotelRepo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return apperrors.ErrHotelNotFound
		}
		return fmt.Errorf("find hotel: %w", err)
	}

	hotel.Name = name
	hotel.IsActive = isActive
	if err := s.hotelRepo.Update(ctx, hotel); err != nil {
		return fmt.Errorf("update hotel: %w", err)
	}

	s.audit.Record(ctx, caller, AuditHotelUpdated, &id, fmt.Sprintf("updated hotel %q", name))
	return nil
}

func (s *hotelService) DeleteHotel(ctx context.Context, caller auth.Principal, id int64) error {
	if _, err := requireAdmin(ctx, s.userRepo, caller); err != nil {
		return err
	}

	hotel, err := s.hotelRepo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return apperrors.ErrHotelNotFound
		}
		return fmt.Errorf("find hotel: %w", err)
	}

	assigned, err := s.userRepo.CountByHotel(ctx, id)
	if err != nil {
		return fmt.Errorf("count hotel users: %w", err)
	}
	if assigned > 0 {
		return apperrors.ErrHotelHasUsers
	}

	if err := s.hotelRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete hotel: %w", err)
	}

	s.audit.Record(ctx, caller, AuditHotelDeleted, &id, fmt.Sprintf("deleted hotel %q", hotel.Name))
	return nil
}
