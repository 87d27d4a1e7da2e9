package model

import "time"

// Emergency is an alert raised by hotel staff against a hotel.
type Emergency struct {
	ID                string    `json:"id" gorm:"type:char(36);primaryKey"`
	HotelID           int64     `json:"hotel_id" gorm:"index;not null"`
	Category          string    `json:"category" gorm:"size:128;not null"`
	Severity          string    `json:"severity" gorm:"size:50;not null;index"`
	Details           string    `json:"details" gorm:"type:text"`
	ReporterPrincipal string    `json:"reporter_principal" gorm:"size:128;index"`
	CreatedAt         time.Time `json:"created_at" gorm:"index"`
}

// EmergencyRecipient is a contact notified when an emergency is raised.
type EmergencyRecipient struct {
	ID      uint   `json:"id" gorm:"primaryKey"`
	Contact string `json:"contact" gorm:"uniqueIndex;size:255;not null"`
}
