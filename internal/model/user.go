package model

import "time"

// UserProfile is the application-level user record, keyed by the principal
// issued by the external identity provider. One profile per principal.
type UserProfile struct {
	Principal       string    `json:"principal" gorm:"primaryKey;size:128"`
	Name            string    `json:"name" gorm:"size:255;not null"`
	Username        string    `json:"username" gorm:"uniqueIndex;size:255;not null"`
	PasswordHash    string    `json:"-" gorm:"size:255"` // Never expose in JSON
	Role            Role      `json:"role" gorm:"size:50;default:'user';index"`
	HotelID         *int64    `json:"hotel_id,omitempty" gorm:"index"`
	IsActive        bool      `json:"is_active" gorm:"default:true;index"`
	SecurityManager *string   `json:"security_manager,omitempty" gorm:"size:255"`
	ContactNumber   *string   `json:"contact_number,omitempty" gorm:"size:64"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// PrincipalProfile pairs a principal with its profile, mirroring the
// list shape returned by the directory listing.
type PrincipalProfile struct {
	Principal string      `json:"principal"`
	Profile   UserProfile `json:"profile"`
}
