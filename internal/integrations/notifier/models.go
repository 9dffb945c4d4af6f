package notifier

import "time"

// EventType тип события о записи
type EventType string

const (
	EventAppointmentCreated       EventType = "appointment.created"
	EventAppointmentStatusChanged EventType = "appointment.status_changed"
	EventAppointmentExpired       EventType = "appointment.expired"
)

// Event событие о записи для сервиса уведомлений
type Event struct {
	EventID        string    `json:"event_id"`
	EventType      EventType `json:"event_type"`
	AppointmentID  int64     `json:"appointment_id"`
	BusinessID     int64     `json:"business_id"`
	ClientID       int64     `json:"client_id,omitempty"`
	ProfessionalID int64     `json:"professional_id,omitempty"`
	ServiceID      int64     `json:"service_id,omitempty"`
	Date           string    `json:"date,omitempty"`
	Time           string    `json:"time,omitempty"`
	Status         string    `json:"status"`
	PreviousStatus string    `json:"previous_status,omitempty"`
	OccurredAt     time.Time `json:"occurred_at"`
}
