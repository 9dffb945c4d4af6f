package domain

import (
	"errors"
	"time"

	"github.com/contatodubela-dotcom/cleverya-booking/pkg/types"
)

var (
	ErrInvalidDayOfWeek = errors.New("day of week must be between 0 and 6")
	ErrInvalidWindow    = errors.New("start time must be before end time")
)

// AvailabilityWindow is a weekly recurring open/close window of a business.
// DayOfWeek follows time.Weekday: 0 = Sunday ... 6 = Saturday.
type AvailabilityWindow struct {
	ID         int64
	BusinessID int64
	DayOfWeek  int
	StartTime  types.TimeString
	EndTime    types.TimeString
	IsActive   bool
	UpdatedAt  time.Time
}

// Validate checks the window invariants
func (w *AvailabilityWindow) Validate() error {
	if w.DayOfWeek < 0 || w.DayOfWeek > 6 {
		return ErrInvalidDayOfWeek
	}
	if !w.IsActive {
		return nil
	}
	if err := w.StartTime.Validate(); err != nil {
		return err
	}
	if err := w.EndTime.Validate(); err != nil {
		return err
	}
	if !w.StartTime.IsBefore(w.EndTime) {
		return ErrInvalidWindow
	}
	return nil
}

// Weekday returns the window day as time.Weekday
func (w *AvailabilityWindow) Weekday() time.Weekday {
	return time.Weekday(w.DayOfWeek)
}

// WeeklyCalendar holds at most one window per day of week
type WeeklyCalendar map[time.Weekday]*AvailabilityWindow

// NewWeeklyCalendar indexes windows by weekday; a later window for the same day wins
func NewWeeklyCalendar(windows []*AvailabilityWindow) WeeklyCalendar {
	cal := make(WeeklyCalendar, len(windows))
	for _, w := range windows {
		if w == nil {
			continue
		}
		cal[w.Weekday()] = w
	}
	return cal
}

// ActiveWindow returns the active window for the date's weekday, or nil
func (c WeeklyCalendar) ActiveWindow(date time.Time) *AvailabilityWindow {
	w, ok := c[date.Weekday()]
	if !ok || !w.IsActive {
		return nil
	}
	return w
}
