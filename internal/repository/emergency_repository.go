package repository

import (
	"context"

	"gorm.io/gorm"

	"hotelcluster/internal/model"
)

// EmergencyRepository defines emergency alert and recipient persistence.
type EmergencyRepository interface {
	Create(ctx context.Context, emergency *model.Emergency) error
	List(ctx context.Context) ([]model.Emergency, error)
	AddRecipient(ctx context.Context, recipient *model.EmergencyRecipient) error
	RemoveRecipient(ctx context.Context, contact string) error
	ListRecipients(ctx context.Context) ([]model.EmergencyRecipient, error)
}

type emergencyRepository struct {
	db *gorm.DB
}

// NewEmergencyRepository creates a new emergency repository.
func NewEmergencyRepository(db *gorm.DB) EmergencyRepository {
	return &emergencyRepository{db: db}
}

// Create stores an emergency alert.
func (r *emergencyRepository) Create(ctx context.Context, emergency *model.Emergency) error {
	return r.db.WithContext(ctx).Create(emergency).Error
}

// List lists all emergencies, newest first.
func (r *emergencyRepository) List(ctx context.Context) ([]model.Emergency, error) {
	var emergencies []model.Emergency
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&emergencies).Error; err != nil {
		return nil, err
	}
	return emergencies, nil
}

// AddRecipient registers a notification contact.
func (r *emergencyRepository) AddRecipient(ctx context.Context, recipient *model.EmergencyRecipient) error {
	return r.db.WithContext(ctx).Create(recipient).Error
}

// RemoveRecipient removes a notification contact.
func (r *emergencyRepository) RemoveRecipient(ctx context.Context, contact string) error {
	return r.db.WithContext(ctx).
		Where("contact = ?", contact).
		Delete(&model.EmergencyRecipient{}).Error
}

// ListRecipients lists all notification contacts.
func (r *emergencyRepository) ListRecipients(ctx context.Context) ([]model.EmergencyRecipient, error) {
	var recipients []model.EmergencyRecipient
	if err := r.db.WithContext(ctx).Order("contact").Find(&recipients).Error; err != nil {
		return nil, err
	}
	return recipients, nil
}
