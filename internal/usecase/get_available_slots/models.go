package get_available_slots

import (
	"time"

	"github.com/contatodubela-dotcom/cleverya-booking/pkg/types"
)

// Request модель запроса на получение доступных слотов
type Request struct {
	BusinessID     int64     // ID бизнеса
	ProfessionalID int64     // ID мастера
	ServiceID      *int64    // ID услуги (опционально, влияет только на длительность)
	Date           time.Time // Дата для получения слотов (без времени)
}

// Response модель ответа со списком доступных слотов
type Response struct {
	Date           time.Time
	BusinessID     int64
	ProfessionalID int64
	ServiceID      *int64
	Slots          []Slot // По возрастанию времени, заполненные слоты не включаются
}

// Slot модель временного слота
type Slot struct {
	StartTime       types.TimeString // Время начала слота (например, "10:00")
	DurationMinutes int              // Длительность услуги или шаг сетки
	AvailableSpots  int              // Количество свободных мест
	TotalSpots      int              // Вместимость мастера
}
