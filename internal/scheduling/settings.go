package scheduling

import (
	"time"

	"github.com/contatodubela-dotcom/cleverya-booking/internal/domain"
)

// Settings параметры генерации слотов
type Settings struct {
	GranularityMinutes int
	WindowDays         int
	Location           *time.Location // часовой пояс сопоставления дней недели
}

// DefaultSettings значения по умолчанию (30 минут, 14 дней, UTC)
func DefaultSettings() Settings {
	return Settings{
		GranularityMinutes: domain.DefaultSlotGranularityMinutes,
		WindowDays:         domain.DefaultCandidateWindowDays,
		Location:           time.UTC,
	}
}

// WithDefaults подставляет значения по умолчанию вместо незаданных
func (s Settings) WithDefaults() Settings {
	def := DefaultSettings()
	if s.GranularityMinutes <= 0 {
		s.GranularityMinutes = def.GranularityMinutes
	}
	if s.WindowDays <= 0 {
		s.WindowDays = def.WindowDays
	}
	if s.WindowDays > domain.MaxCandidateWindowDays {
		s.WindowDays = domain.MaxCandidateWindowDays
	}
	if s.Location == nil {
		s.Location = def.Location
	}
	return s
}

// Now переводит момент времени в часовой пояс бизнеса
func (s Settings) Now(t time.Time) time.Time {
	return t.In(s.location())
}

// LocalDate трактует календарную дату date как дату в часовом поясе бизнеса
func (s Settings) LocalDate(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, s.location())
}

// BeyondHorizon проверяет, что дата дальше максимального окна бронирования
func (s Settings) BeyondHorizon(date, now time.Time) bool {
	today := DateOnly(s.Now(now))
	last := today.AddDate(0, 0, domain.MaxCandidateWindowDays-1)
	return s.LocalDate(date).After(last)
}

func (s Settings) location() *time.Location {
	if s.Location == nil {
		return time.UTC
	}
	return s.Location
}
