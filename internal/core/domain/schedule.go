package domain

import (
	"fmt"

	"github.com/google/uuid"
)

// ScheduleEntry is one recurring weekly availability window, owned by exactly
// one Location. Entries are replaced whole, never partially mutated.
type ScheduleEntry struct {
	Days                WeekdaySet `json:"days"`
	Start               TimeOfDay  `json:"start"`
	End                 TimeOfDay  `json:"end"`
	SlotDurationMinutes int        `json:"slotDurationMinutes"`
	SpecialtyRef        string     `json:"specialtyRef,omitempty"`
}

// NewScheduleEntry is the normalization boundary for raw form input. The
// legacy forms send day names in mixed spellings and times as strings; this
// is the only place those variants are parsed, so the engine itself never
// branches on raw representations. Fails fast, naming the offending field.
func NewScheduleEntry(rawDays []string, rawStart, rawEnd string, slotDurationMinutes int, specialtyRef string) (ScheduleEntry, error) {
	days, err := ParseWeekdaySet(rawDays)
	if err != nil {
		return ScheduleEntry{}, fmt.Errorf("days: %w", err)
	}

	start, err := ParseTimeOfDay(rawStart)
	if err != nil {
		return ScheduleEntry{}, fmt.Errorf("start: %w", err)
	}

	end, err := ParseTimeOfDay(rawEnd)
	if err != nil {
		return ScheduleEntry{}, fmt.Errorf("end: %w", err)
	}

	if end.Minutes() <= start.Minutes() {
		return ScheduleEntry{}, fmt.Errorf("%w: end %s must be after start %s", ErrInvalidInput, end, start)
	}

	if slotDurationMinutes <= 0 {
		return ScheduleEntry{}, fmt.Errorf("%w: slotDurationMinutes must be positive, got %d", ErrInvalidInput, slotDurationMinutes)
	}

	return ScheduleEntry{
		Days:                days,
		Start:               start,
		End:                 end,
		SlotDurationMinutes: slotDurationMinutes,
		SpecialtyRef:        specialtyRef,
	}, nil
}

// Range returns the entry's time window.
func (e ScheduleEntry) Range() TimeRange {
	return TimeRange{Start: e.Start, End: e.End}
}

// AgendaEntry is a proposed schedule entry as posted by the admin UI: the
// window itself plus the address of the location it should attach to.
type AgendaEntry struct {
	ScheduleEntry
	LocationAddress string `json:"locationAddress"`
}

// Location is a physical address at which a provider offers availability
// (lugar de atención). Owned by exactly one Provider.
type Location struct {
	Address  string          `json:"address"`
	Schedule []ScheduleEntry `json:"schedule"`
}

// Provider is a healthcare professional in the network directory
// (prestador), with declared specialties, registered locations and an
// effective-dated lifecycle record.
type Provider struct {
	ID          uuid.UUID       `json:"id"`
	Name        string          `json:"name"`
	Specialties []string        `json:"specialties"`
	Locations   []Location      `json:"locations"`
	Lifecycle   LifecycleRecord `json:"lifecycle"`
}

// HasSpecialty reports whether ref belongs to the provider's declared set.
func (p Provider) HasSpecialty(ref string) bool {
	for _, specialty := range p.Specialties {
		if specialty == ref {
			return true
		}
	}
	return false
}
