package scheduling

import (
	"time"

	"github.com/contatodubela-dotcom/cleverya-booking/internal/domain"
	"github.com/contatodubela-dotcom/cleverya-booking/pkg/types"
)

// CandidateDays возвращает даты от today до today+windowLengthDays-1,
// для дня недели которых есть активное окно доступности
// Функция чистая: повторный вызов с теми же аргументами дает тот же результат
func CandidateDays(windowLengthDays int, today time.Time, windows []*domain.AvailabilityWindow) []time.Time {
	days := make([]time.Time, 0)
	if windowLengthDays <= 0 {
		return days
	}

	calendar := domain.NewWeeklyCalendar(windows)
	start := DateOnly(today)

	for i := 0; i < windowLengthDays; i++ {
		day := start.AddDate(0, 0, i)
		if calendar.ActiveWindow(day) != nil {
			days = append(days, day)
		}
	}

	return days
}

// TimeSlotsForDay генерирует времена начала слотов в окне window с шагом granularityMinutes
// Слот включается, если он начинается строго раньше конца окна (без учета длительности услуги)
// Для сегодняшней даты отбрасываются слоты, которые начинаются не позже текущей минуты
func TimeSlotsForDay(window *domain.AvailabilityWindow, granularityMinutes int, date, now time.Time) []types.TimeString {
	slots := make([]types.TimeString, 0)

	// Закрытый день или некорректный шаг
	if window == nil || !window.IsActive || granularityMinutes <= 0 {
		return slots
	}
	if window.Weekday() != date.Weekday() {
		return slots
	}

	// Дата в прошлом
	if IsDateInPast(date, now) {
		return slots
	}

	start := window.StartTime.Minutes()
	end := window.EndTime.Minutes()
	if start < 0 || end < 0 {
		return slots
	}

	cutoff := -1
	if IsSameDay(date, now) {
		cutoff = now.Hour()*60 + now.Minute()
	}

	for m := start; m < end; m += granularityMinutes {
		if m <= cutoff {
			continue
		}
		slot, err := types.FromMinutes(m)
		if err != nil {
			break
		}
		slots = append(slots, slot)
	}

	return slots
}

// IsOnGrid проверяет, что время t совпадает с одним из слотов окна
func IsOnGrid(window *domain.AvailabilityWindow, granularityMinutes int, t types.TimeString) bool {
	if window == nil || !window.IsActive || granularityMinutes <= 0 {
		return false
	}
	m := t.Minutes()
	start := window.StartTime.Minutes()
	end := window.EndTime.Minutes()
	if m < 0 || m < start || m >= end {
		return false
	}
	return (m-start)%granularityMinutes == 0
}

// IsPast проверяет, что слот t в дату date уже наступил относительно now (с точностью до минуты)
func IsPast(date time.Time, t types.TimeString, now time.Time) bool {
	if IsDateInPast(date, now) {
		return true
	}
	if !IsSameDay(date, now) {
		return false
	}
	return t.Minutes() <= now.Hour()*60+now.Minute()
}

// DateOnly обнуляет время, сохраняя часовой пояс
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// IsSameDay проверяет, что две даты относятся к одному календарному дню
func IsSameDay(date1, date2 time.Time) bool {
	y1, m1, d1 := date1.Date()
	y2, m2, d2 := date2.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// IsDateInPast проверяет, что дата раньше сегодняшнего дня
func IsDateInPast(date, now time.Time) bool {
	y1, m1, d1 := date.Date()
	y2, m2, d2 := now.Date()
	return time.Date(y1, m1, d1, 0, 0, 0, 0, time.UTC).Before(time.Date(y2, m2, d2, 0, 0, 0, 0, time.UTC))
}
