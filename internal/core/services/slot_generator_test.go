package services_test

import (
	"testing"

	"github.com/redsalud/agenda-engine/internal/core/domain"
	"github.com/redsalud/agenda-engine/internal/core/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustTime(t *testing.T, raw string) domain.TimeOfDay {
	t.Helper()
	parsed, err := domain.ParseTimeOfDay(raw)
	require.NoError(t, err)
	return parsed
}

func TestGenerateSlots(t *testing.T) {
	t.Run("three hours at thirty minutes yields six slots", func(t *testing.T) {
		slots, err := services.GenerateSlots(mustTime(t, "09:00"), mustTime(t, "12:00"), 30)
		require.NoError(t, err)
		require.Len(t, slots, 6)

		assert.Equal(t, 0, slots[0].Index)
		assert.Equal(t, "09:00", slots[0].Start.String())
		assert.Equal(t, "09:30", slots[0].End.String())

		last := slots[len(slots)-1]
		assert.Equal(t, 5, last.Index)
		assert.Equal(t, "11:30", last.Start.String())
		assert.Equal(t, "12:00", last.End.String())
	})

	t.Run("trailing partial slot is dropped", func(t *testing.T) {
		slots, err := services.GenerateSlots(mustTime(t, "09:00"), mustTime(t, "10:00"), 40)
		require.NoError(t, err)
		require.Len(t, slots, 1)
		assert.Equal(t, "09:00", slots[0].Start.String())
		assert.Equal(t, "09:40", slots[0].End.String())
	})

	t.Run("duration longer than window yields empty sequence, not error", func(t *testing.T) {
		slots, err := services.GenerateSlots(mustTime(t, "09:00"), mustTime(t, "09:30"), 45)
		require.NoError(t, err)
		assert.Empty(t, slots)
		assert.NotNil(t, slots)
	})

	t.Run("rejects end at or before start", func(t *testing.T) {
		_, err := services.GenerateSlots(mustTime(t, "12:00"), mustTime(t, "09:00"), 30)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)

		_, err = services.GenerateSlots(mustTime(t, "09:00"), mustTime(t, "09:00"), 30)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("rejects non-positive duration", func(t *testing.T) {
		_, err := services.GenerateSlots(mustTime(t, "09:00"), mustTime(t, "12:00"), 0)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("count matches the closed form", func(t *testing.T) {
		windows := []struct {
			start, end string
			duration   int
		}{
			{"09:00", "12:00", 30},
			{"08:00", "14:00", 45},
			{"00:00", "23:59", 60},
			{"10:15", "10:45", 10},
			{"09:00", "10:00", 7},
		}
		for _, w := range windows {
			start, end := mustTime(t, w.start), mustTime(t, w.end)
			slots, err := services.GenerateSlots(start, end, w.duration)
			require.NoError(t, err)

			want := (end.Minutes() - start.Minutes()) / w.duration
			assert.Len(t, slots, want, "%s-%s/%d", w.start, w.end, w.duration)
			assert.Equal(t, want, services.SlotCount(start, end, w.duration))
		}
	})

	t.Run("slots are contiguous and ordered", func(t *testing.T) {
		slots, err := services.GenerateSlots(mustTime(t, "08:00"), mustTime(t, "11:00"), 20)
		require.NoError(t, err)

		for i, slot := range slots {
			assert.Equal(t, i, slot.Index)
			assert.Equal(t, 20, slot.End.Minutes()-slot.Start.Minutes())
			if i > 0 {
				assert.Equal(t, slots[i-1].End, slot.Start)
			}
		}
	})
}

func TestSlotCountDegenerateInput(t *testing.T) {
	assert.Zero(t, services.SlotCount(mustTime(t, "12:00"), mustTime(t, "09:00"), 30))
	assert.Zero(t, services.SlotCount(mustTime(t, "09:00"), mustTime(t, "12:00"), 0))
}
