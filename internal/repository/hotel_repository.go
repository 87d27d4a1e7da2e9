package repository

import (
	"context"

	"gorm.io/gorm"

	"hotelcluster/internal/model"
)

// HotelRepository defines hotel persistence operations.
type HotelRepository interface {
	Create(ctx context.Context, hotel *model.Hotel) error
	Update(ctx context.Context, hotel *model.Hotel) error
	Delete(ctx context.Context, id int64) error
	FindByID(ctx context.Context, id int64) (*model.Hotel, error)
	List(ctx context.Context) ([]model.Hotel, error)
	MaxID(ctx context.Context) (int64, error)
	// WithTransaction executes fn against a transactional repository, so id
	// assignment and the insert commit atomically.
	WithTransaction(ctx context.Context, fn func(ctx context.Context, repo HotelRepository) error) error
}

type hotelRepository struct {
	db *gorm.DB
}

// NewHotelRepository creates a new hotel repository.
func NewHotelRepository(db *gorm.DB) HotelRepository {
	return &hotelRepository{db: db}
}

// Create creates a new hotel.
func (r *hotelRepository) Create(ctx context.Context, hotel *model.Hotel) error {
	return r.db.WithContext(ctx).Create(hotel).Error
}

// Update updates an existing hotel.
func (r *hotelRepository) Update(ctx context.Context, hotel *model.Hotel) error {
	return r.db.WithContext(ctx).Save(hotel).Error
}

// Delete removes a hotel by id.
func (r *hotelRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Hotel{}).Error
}

// FindByID finds a hotel by id.
func (r *hotelRepository) FindByID(ctx context.Context, id int64) (*model.Hotel, error) {
	var hotel model.Hotel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&hotel).Error; err != nil {
		return nil, err
	}
	return &hotel, nil
}

// List lists all hotels ordered by id.
func (r *hotelRepository) List(ctx context.Context) ([]model.Hotel, error) {
	var hotels []model.Hotel
	if err := r.db.WithContext(ctx).Order("id").Find(&hotels).Error; err != nil {
		return nil, err
	}
	return hotels, nil
}

// MaxID returns the highest existing hotel id, 0 when no hotels exist.
func (r *hotelRepository) MaxID(ctx context.Context) (int64, error) {
	var maxID int64
	err := r.db.WithContext(ctx).Model(&model.Hotel{}).
		Select("COALESCE(MAX(id), 0)").
		Scan(&maxID).Error
	if err != nil {
		return 0, err
	}
	return maxID, nil
}

// WithTransaction executes fn within a database transaction.
func (r *hotelRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context, repo HotelRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txRepo := &hotelRepository{db: tx}
		return fn(ctx, txRepo)
	})
}
