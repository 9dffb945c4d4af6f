package scheduling

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/contatodubela-dotcom/cleverya-booking/internal/domain"
	"github.com/contatodubela-dotcom/cleverya-booking/pkg/types"
)

func TestCountOccupancy(t *testing.T) {
	appointments := []*domain.Appointment{
		{Time: "09:00", Status: domain.StatusPending},
		{Time: "09:00", Status: domain.StatusConfirmed},
		{Time: "09:00", Status: domain.StatusCancelled},
		{Time: "09:30", Status: domain.StatusCompleted},
		{Time: "09:30", Status: domain.StatusNoShow},
		{Time: "10:00", Status: domain.StatusPendingPayment},
		nil,
	}

	occupancy := CountOccupancy(appointments)
	assert.Equal(t, 2, occupancy.At("09:00"))
	assert.Equal(t, 0, occupancy.At("09:30"))
	assert.Equal(t, 0, occupancy.At("10:00"))
	assert.Len(t, occupancy, 1)
}

func TestAvailableSlots(t *testing.T) {
	window := mondayWindow("09:00", "10:00")
	beforeOpening := monday.Add(8 * time.Hour)

	t.Run("monday scenario", func(t *testing.T) {
		professional := &domain.Professional{ID: 1, Capacity: 1, IsActive: true}

		slots := AvailableSlots(professional, monday, window, nil, 30, beforeOpening)
		assert.Equal(t, []types.TimeString{"09:00", "09:30"}, slots)

		occupancy := CountOccupancy([]*domain.Appointment{{Time: "09:00", Status: domain.StatusPending}})
		slots = AvailableSlots(professional, monday, window, occupancy, 30, beforeOpening)
		assert.Equal(t, []types.TimeString{"09:30"}, slots)
	})

	t.Run("full slot is never offered", func(t *testing.T) {
		for capacity := 1; capacity <= 4; capacity++ {
			professional := &domain.Professional{Capacity: capacity, IsActive: true}
			occupancy := domain.Occupancy{"09:30": capacity}
			slots := AvailableSlots(professional, monday, window, occupancy, 30, beforeOpening)
			assert.NotContains(t, slots, types.TimeString("09:30"))
			assert.Contains(t, slots, types.TimeString("09:00"))
		}
	})

	t.Run("past slots are never offered", func(t *testing.T) {
		professional := &domain.Professional{Capacity: 3, IsActive: true}
		wide := mondayWindow("00:00", "23:59")
		for minute := 0; minute < 24*60; minute += 17 {
			now := monday.Add(time.Duration(minute) * time.Minute)
			for _, slot := range AvailableSlots(professional, monday, wide, nil, 30, now) {
				assert.Greater(t, slot.Minutes(), minute)
			}
		}
	})

	t.Run("details carry spots", func(t *testing.T) {
		professional := &domain.Professional{Capacity: 3, IsActive: true}
		details := AvailableSlotDetails(professional, monday, window, domain.Occupancy{"09:00": 2}, 30, beforeOpening)
		require.Len(t, details, 2)
		assert.Equal(t, 1, details[0].AvailableSpots)
		assert.Equal(t, 3, details[0].TotalSpots)
		assert.True(t, details[0].IsPartiallyAvailable())
		assert.Equal(t, 3, details[1].AvailableSpots)
	})

	t.Run("ascending order", func(t *testing.T) {
		professional := &domain.Professional{Capacity: 1, IsActive: true}
		slots := AvailableSlots(professional, monday, mondayWindow("09:00", "12:00"), nil, 30, beforeOpening)
		for i := 1; i < len(slots); i++ {
			assert.True(t, slots[i-1].IsBefore(slots[i]))
		}
	})

	t.Run("inactive professional", func(t *testing.T) {
		professional := &domain.Professional{Capacity: 1}
		assert.Empty(t, AvailableSlots(professional, monday, window, nil, 30, beforeOpening))
	})

	t.Run("day without window", func(t *testing.T) {
		professional := &domain.Professional{Capacity: 1, IsActive: true}
		assert.Empty(t, AvailableSlots(professional, monday.AddDate(0, 0, 1), nil, nil, 30, beforeOpening))
	})
}

func TestHasCapacity(t *testing.T) {
	p := &domain.Professional{Capacity: 2}
	assert.True(t, HasCapacity(p, 1))
	assert.False(t, HasCapacity(p, 2))
	assert.False(t, HasCapacity(nil, 0))
}
