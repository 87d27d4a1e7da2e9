package model

import "time"

// DailyReport holds the operational counters submitted by hotel staff once
// per day. All counters are non-negative; a report with every counter at
// zero is valid.
type DailyReport struct {
	ID                string    `json:"id" gorm:"type:char(36);primaryKey"`
	HotelID           int64     `json:"hotel_id" gorm:"index;not null"`
	ReporterPrincipal string    `json:"reporter_principal" gorm:"size:128;index;not null"`
	Occupancy         int64     `json:"occupancy"`
	VIPArrivals       int64     `json:"vip_arrivals"`
	GuestIncidents    int64     `json:"guest_incidents"`
	StaffIncidents    int64     `json:"staff_incidents"`
	GuestComplaints   int64     `json:"guest_complaints"`
	GuestInjuries     int64     `json:"guest_injuries"`
	StaffInjuries     int64     `json:"staff_injuries"`
	CreatedAt         time.Time `json:"created_at" gorm:"index"`
}

// HasIncidents reports whether any incident-class counter is non-zero,
// used to render flagged reports distinctly.
func (r *DailyReport) HasIncidents() bool {
	return r.GuestIncidents > 0 || r.StaffIncidents > 0 ||
		r.GuestComplaints > 0 || r.GuestInjuries > 0 || r.StaffInjuries > 0
}
