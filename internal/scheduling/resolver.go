package scheduling

import (
	"time"

	"github.com/contatodubela-dotcom/cleverya-booking/internal/domain"
	"github.com/contatodubela-dotcom/cleverya-booking/pkg/types"
)

// AvailableSlots возвращает слоты дня, в которых занятость меньше вместимости мастера
// Порядок по возрастанию времени
func AvailableSlots(
	professional *domain.Professional,
	date time.Time,
	window *domain.AvailabilityWindow,
	occupancy domain.Occupancy,
	granularityMinutes int,
	now time.Time,
) []types.TimeString {
	details := AvailableSlotDetails(professional, date, window, occupancy, granularityMinutes, now)

	result := make([]types.TimeString, len(details))
	for i, slot := range details {
		result[i] = slot.StartTime
	}
	return result
}

// AvailableSlotDetails то же, что AvailableSlots, но с количеством свободных мест
func AvailableSlotDetails(
	professional *domain.Professional,
	date time.Time,
	window *domain.AvailabilityWindow,
	occupancy domain.Occupancy,
	granularityMinutes int,
	now time.Time,
) []domain.AvailableSlot {
	result := make([]domain.AvailableSlot, 0)
	if professional == nil || !professional.IsActive || professional.Capacity <= 0 {
		return result
	}

	for _, t := range TimeSlotsForDay(window, granularityMinutes, date, now) {
		available := professional.Capacity - occupancy.At(t)
		if available <= 0 {
			continue
		}
		result = append(result, domain.AvailableSlot{
			StartTime:      t,
			AvailableSpots: available,
			TotalSpots:     professional.Capacity,
		})
	}

	return result
}

// HasCapacity проверяет, что в слоте осталось место
func HasCapacity(professional *domain.Professional, occupied int) bool {
	return professional != nil && occupied < professional.Capacity
}
