package domain

// Default configuration values
const (
	DefaultSlotGranularityMinutes = 30
	DefaultCandidateWindowDays    = 14
	DefaultProfessionalCapacity   = 1
	DefaultNoShowBlockThreshold   = 2
)

// Business validation constants
const (
	MinSlotGranularityMinutes = 5
	MaxSlotGranularityMinutes = 240
	MaxCandidateWindowDays    = 90
	MinProfessionalCapacity   = 1
	MaxProfessionalCapacity   = 100
	MinServiceDurationMinutes = 5
	MaxServiceDurationMinutes = 480 // 8 hours
	MaxNameLength             = 120
	MaxBlockReasonLength      = 500
	MinPhoneDigits            = 8
	MaxPhoneDigits            = 15
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// OccupyingStatuses список статусов, занимающих место в слоте
// Используется при подсчёте занятости
var OccupyingStatuses = []AppointmentStatus{
	StatusPending,
	StatusConfirmed,
}

// DashboardStatuses список статусов, отображаемых владельцу по умолчанию
// pending_payment не попадает в выборку, пока не перейдёт в pending
var DashboardStatuses = []AppointmentStatus{
	StatusPending,
	StatusConfirmed,
	StatusCompleted,
	StatusCancelled,
	StatusNoShow,
}

// StatusStrings converts statuses for SQL IN clauses
func StatusStrings(statuses []AppointmentStatus) []string {
	out := make([]string, len(statuses))
	for i, s := range statuses {
		out[i] = string(s)
	}
	return out
}
