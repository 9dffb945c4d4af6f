package domain

import "github.com/contatodubela-dotcom/cleverya-booking/pkg/types"

// AvailableSlot represents a time slot offerable to a client
type AvailableSlot struct {
	StartTime      types.TimeString
	AvailableSpots int // Capacity minus occupancy
	TotalSpots     int // Professional capacity
}

// IsFull returns true if the slot has no available spots
func (s *AvailableSlot) IsFull() bool {
	return s.AvailableSpots <= 0
}

// IsPartiallyAvailable returns true if the slot has some but not all spots available
func (s *AvailableSlot) IsPartiallyAvailable() bool {
	return s.AvailableSpots > 0 && s.AvailableSpots < s.TotalSpots
}

// OccupancyRate returns the occupancy rate as a percentage (0-100)
func (s *AvailableSlot) OccupancyRate() float64 {
	if s.TotalSpots == 0 {
		return 0
	}
	occupied := s.TotalSpots - s.AvailableSpots
	return float64(occupied) / float64(s.TotalSpots) * 100
}

// Occupancy maps slot start time to the number of occupying appointments
type Occupancy map[types.TimeString]int

// At returns the occupancy at t (0 when absent)
func (o Occupancy) At(t types.TimeString) int {
	return o[t]
}
