package services

import (
	"fmt"

	"github.com/redsalud/agenda-engine/internal/core/domain"
)

// GenerateSlots expands a [start, end) window into discrete bookable slots
// of durationMinutes each. Slot 0 starts at start; generation stops as soon
// as a slot's end would pass the window end, so a trailing partial slot is
// dropped rather than truncated. A duration longer than the window yields an
// empty, non-nil slice.
func GenerateSlots(start, end domain.TimeOfDay, durationMinutes int) ([]domain.Slot, error) {
	if durationMinutes <= 0 {
		return nil, fmt.Errorf("%w: durationMinutes must be positive, got %d", domain.ErrInvalidInput, durationMinutes)
	}
	if end.Minutes() <= start.Minutes() {
		return nil, fmt.Errorf("%w: end %s must be after start %s", domain.ErrInvalidInput, end, start)
	}

	slots := make([]domain.Slot, 0, SlotCount(start, end, durationMinutes))
	for cursor := start.Minutes(); cursor+durationMinutes <= end.Minutes(); cursor += durationMinutes {
		slotStart, err := domain.TimeOfDayFromMinutes(cursor)
		if err != nil {
			return nil, err
		}
		slotEnd, err := domain.TimeOfDayFromMinutes(cursor + durationMinutes)
		if err != nil {
			return nil, err
		}

		slots = append(slots, domain.Slot{
			Index: len(slots),
			Start: slotStart,
			End:   slotEnd,
		})
	}

	return slots, nil
}

// SlotCount is the closed form of len(GenerateSlots(start, end, d)):
// floor((end-start)/d). Reporting uses it directly without materializing
// the slots.
func SlotCount(start, end domain.TimeOfDay, durationMinutes int) int {
	if durationMinutes <= 0 || end.Minutes() <= start.Minutes() {
		return 0
	}
	return (end.Minutes() - start.Minutes()) / durationMinutes
}
