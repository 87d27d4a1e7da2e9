package repository

import (
	"context"

	"gorm.io/gorm"

	"hotelcluster/internal/model"
)

// UserRepository defines user profile persistence operations.
type UserRepository interface {
	Create(ctx context.Context, profile *model.UserProfile) error
	Save(ctx context.Context, profile *model.UserProfile) error
	Delete(ctx context.Context, principal string) error
	FindByPrincipal(ctx context.Context, principal string) (*model.UserProfile, error)
	FindByUsername(ctx context.Context, username string) (*model.UserProfile, error)
	List(ctx context.Context) ([]model.UserProfile, error)
	ListPrincipalsByHotels(ctx context.Context, hotelIDs []int64) ([]string, error)
	CountByHotel(ctx context.Context, hotelID int64) (int64, error)
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

// Create creates a new user profile.
func (r *userRepository) Create(ctx context.Context, profile *model.UserProfile) error {
	return r.db.WithContext(ctx).Create(profile).Error
}

// Save creates or overwrites a user profile.
func (r *userRepository) Save(ctx context.Context, profile *model.UserProfile) error {
	return r.db.WithContext(ctx).Save(profile).Error
}

// Delete removes a user profile by principal.
func (r *userRepository) Delete(ctx context.Context, principal string) error {
	return r.db.WithContext(ctx).
		Where("principal = ?", principal).
		Delete(&model.UserProfile{}).Error
}

// FindByPrincipal finds a profile by principal.
func (r *userRepository) FindByPrincipal(ctx context.Context, principal string) (*model.UserProfile, error) {
	var profile model.UserProfile
	if err := r.db.WithContext(ctx).Where("principal = ?", principal).First(&profile).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

// FindByUsername finds a profile by username.
func (r *userRepository) FindByUsername(ctx context.Context, username string) (*model.UserProfile, error) {
	var profile model.UserProfile
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&profile).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

// List lists all user profiles.
func (r *userRepository) List(ctx context.Context) ([]model.UserProfile, error) {
	var profiles []model.UserProfile
	if err := r.db.WithContext(ctx).Order("username").Find(&profiles).Error; err != nil {
		return nil, err
	}
	return profiles, nil
}

// ListPrincipalsByHotels lists the principals of all users assigned to any
// of the given hotels.
func (r *userRepository) ListPrincipalsByHotels(ctx context.Context, hotelIDs []int64) ([]string, error) {
	if len(hotelIDs) == 0 {
		return nil, nil
	}
	var principals []string
	if err := r.db.WithContext(ctx).Model(&model.UserProfile{}).
		Where("hotel_id IN ?", hotelIDs).
		Pluck("principal", &principals).Error; err != nil {
		return nil, err
	}
	return principals, nil
}

// CountByHotel counts the users assigned to a hotel.
func (r *userRepository) CountByHotel(ctx context.Context, hotelID int64) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.UserProfile{}).
		Where("hotel_id = ?", hotelID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
