package model

import "time"

// AuditLog is an append-only record generated by the backend on every
// mutation. Read-only to clients.
type AuditLog struct {
	ID             string    `json:"id" gorm:"type:char(36);primaryKey"`
	Action         string    `json:"action" gorm:"size:128;not null;index"`
	HotelID        *int64    `json:"hotel_id,omitempty" gorm:"index"`
	Timestamp      time.Time `json:"timestamp" gorm:"autoCreateTime;index"`
	Details        string    `json:"details" gorm:"type:text"`
	ActorPrincipal string    `json:"actor_principal" gorm:"size:128;index"`
}
