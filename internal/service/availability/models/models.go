package models

import (
	"time"

	"github.com/contatodubela-dotcom/cleverya-booking/internal/domain"
	"github.com/contatodubela-dotcom/cleverya-booking/pkg/types"
)

// WindowRequest окно доступности на день недели
type WindowRequest struct {
	DayOfWeek int    `json:"dayOfWeek"` // 0 = воскресенье ... 6 = суббота
	StartTime string `json:"startTime,omitempty"`
	EndTime   string `json:"endTime,omitempty"`
	IsActive  bool   `json:"isActive"`
}

// ReplaceWeekRequest запрос на замену недельного расписания
// Дни, отсутствующие в запросе, сохраняются неактивными
type ReplaceWeekRequest struct {
	Windows []WindowRequest `json:"windows"`
}

// WindowResponse окно доступности
type WindowResponse struct {
	DayOfWeek int        `json:"dayOfWeek"`
	StartTime string     `json:"startTime,omitempty"`
	EndTime   string     `json:"endTime,omitempty"`
	IsActive  bool       `json:"isActive"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
}

// WeekResponse расписание на все 7 дней, по порядку с воскресенья
type WeekResponse struct {
	BusinessID int64            `json:"businessId"`
	Windows    []WindowResponse `json:"windows"`
}

// ToDomainWindow конвертирует запрос в domain модель
func (w WindowRequest) ToDomainWindow(businessID int64) *domain.AvailabilityWindow {
	return &domain.AvailabilityWindow{
		BusinessID: businessID,
		DayOfWeek:  w.DayOfWeek,
		StartTime:  types.TimeString(w.StartTime),
		EndTime:    types.TimeString(w.EndTime),
		IsActive:   w.IsActive,
	}
}

// FromDomainCalendar строит ответ на 7 дней; дни без окна считаются закрытыми
func FromDomainCalendar(businessID int64, calendar domain.WeeklyCalendar) *WeekResponse {
	resp := &WeekResponse{
		BusinessID: businessID,
		Windows:    make([]WindowResponse, 0, 7),
	}

	for day := time.Sunday; day <= time.Saturday; day++ {
		w, ok := calendar[day]
		if !ok {
			resp.Windows = append(resp.Windows, WindowResponse{DayOfWeek: int(day)})
			continue
		}

		item := WindowResponse{
			DayOfWeek: w.DayOfWeek,
			StartTime: w.StartTime.String(),
			EndTime:   w.EndTime.String(),
			IsActive:  w.IsActive,
		}
		if !w.UpdatedAt.IsZero() {
			updatedAt := w.UpdatedAt
			item.UpdatedAt = &updatedAt
		}
		resp.Windows = append(resp.Windows, item)
	}

	return resp
}
