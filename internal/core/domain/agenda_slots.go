package domain

import "github.com/google/uuid"

// EntrySlots is the slot expansion of one registered schedule entry.
// SlotCount duplicates len(Slots) so reporting consumers can aggregate
// without walking the slot list.
type EntrySlots struct {
	EntryIndex   int    `json:"entryIndex"`
	SpecialtyRef string `json:"specialtyRef,omitempty"`
	Slots        []Slot `json:"slots"`
	SlotCount    int    `json:"slotCount"`
}

// AgendaSlots is the bookable expansion of one location's availability on
// one weekday.
type AgendaSlots struct {
	ProviderID uuid.UUID    `json:"providerId"`
	Address    string       `json:"address"`
	Day        Weekday      `json:"day"`
	Entries    []EntrySlots `json:"entries"`
	TotalSlots int          `json:"totalSlots"`
}
