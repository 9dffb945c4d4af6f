package scheduling

import "github.com/contatodubela-dotcom/cleverya-booking/internal/domain"

// CountOccupancy считает занятость по времени начала для записей одного мастера на одну дату
// Учитываются только pending и confirmed
func CountOccupancy(appointments []*domain.Appointment) domain.Occupancy {
	occupancy := make(domain.Occupancy)
	for _, a := range appointments {
		if a == nil || !a.OccupiesSlot() {
			continue
		}
		occupancy[a.Time]++
	}
	return occupancy
}
