package domain

import (
	"time"

	"github.com/contatodubela-dotcom/cleverya-booking/pkg/types"
)

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	StatusPendingPayment AppointmentStatus = "pending_payment"
	StatusPending        AppointmentStatus = "pending"
	StatusConfirmed      AppointmentStatus = "confirmed"
	StatusCompleted      AppointmentStatus = "completed"
	StatusCancelled      AppointmentStatus = "cancelled"
	StatusNoShow         AppointmentStatus = "no_show"
)

// transitions lists the statuses reachable in one owner-triggered step
var transitions = map[AppointmentStatus][]AppointmentStatus{
	StatusPendingPayment: {StatusPending, StatusCancelled},
	StatusPending:        {StatusConfirmed, StatusCancelled, StatusNoShow},
	StatusConfirmed:      {StatusCompleted, StatusCancelled, StatusNoShow},
}

// ParseAppointmentStatus validates a raw status string
func ParseAppointmentStatus(s string) (AppointmentStatus, bool) {
	status := AppointmentStatus(s)
	switch status {
	case StatusPendingPayment, StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled, StatusNoShow:
		return status, true
	default:
		return "", false
	}
}

// CanTransition reports whether from -> to is a single valid step.
// Staying in the same status is not a transition; callers treat it as a no-op.
func CanTransition(from, to AppointmentStatus) bool {
	for _, allowed := range transitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// OccupiesSlot returns true if the status counts toward slot occupancy
func (s AppointmentStatus) OccupiesSlot() bool {
	return s == StatusPending || s == StatusConfirmed
}

// IsTerminal returns true if no further transitions are possible
func (s AppointmentStatus) IsTerminal() bool {
	return len(transitions[s]) == 0
}

// Appointment represents an admitted booking
type Appointment struct {
	ID             int64
	BusinessID     int64
	ClientID       int64
	ProfessionalID int64
	ServiceID      int64
	Date           time.Time
	Time           types.TimeString
	Status         AppointmentStatus
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// OccupiesSlot returns true if the appointment holds one unit of capacity
func (a *Appointment) OccupiesSlot() bool {
	return a.Status.OccupiesSlot()
}

// AppointmentsFilter filter for the owner dashboard listing
type AppointmentsFilter struct {
	BusinessID     int64              // Required
	ProfessionalID *int64             // Optional
	ClientID       *int64             // Optional
	StartDate      *time.Time         // Inclusive, optional
	EndDate        *time.Time         // Inclusive, optional
	Status         *AppointmentStatus // Optional; pending_payment is only returned when requested explicitly
}
