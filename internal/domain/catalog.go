package domain

import "time"

// Professional performs services; Capacity is the max simultaneous bookings per slot
type Professional struct {
	ID         int64
	BusinessID int64
	Name       string
	Capacity   int
	IsActive   bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// SupportsParallelBookings returns true if more than one client can share a slot
func (p *Professional) SupportsParallelBookings() bool {
	return p.Capacity > 1
}

// Service is a bookable offering of a business
type Service struct {
	ID              int64
	BusinessID      int64
	Name            string
	DurationMinutes int
	Price           float64
	Category        string
	RequiresDeposit bool
	IsActive        bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// InitialStatus returns the status a new appointment for this service starts in
func (s *Service) InitialStatus() AppointmentStatus {
	if s.RequiresDeposit {
		return StatusPendingPayment
	}
	return StatusPending
}
