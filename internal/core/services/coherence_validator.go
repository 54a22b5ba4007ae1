package services

import (
	"fmt"
	"strings"

	"github.com/redsalud/agenda-engine/internal/core/domain"
)

// ValidateAgendaAgainstProvider checks a proposed agenda for coherence with
// the provider's declared capabilities: every referenced specialty must be
// declared, every address must match a registered location, and every
// proposed window must be fully contained in some registered availability of
// that location. All violations are collected and returned together; a
// first-failure result would leave the operator fixing one field at a time.
//
// Overlap detection is a separate concern; callers compose both checks.
func ValidateAgendaAgainstProvider(provider domain.Provider, proposed []domain.AgendaEntry) domain.ValidationResult {
	violations := make([]domain.Violation, 0)

	for i, entry := range proposed {
		if entry.SpecialtyRef != "" && !provider.HasSpecialty(entry.SpecialtyRef) {
			violations = append(violations, domain.Violation{
				Code:       domain.ViolationUnknownSpecialty,
				EntryIndex: i,
				Message:    fmt.Sprintf("specialty %q is not declared by the provider", entry.SpecialtyRef),
			})
		}

		location := findLocation(provider, entry.LocationAddress)
		if location == nil {
			violations = append(violations, domain.Violation{
				Code:       domain.ViolationUnknownLocation,
				EntryIndex: i,
				Message:    fmt.Sprintf("address %q is not a registered location of the provider", entry.LocationAddress),
			})
			continue
		}

		if !containedInRegistered(entry.ScheduleEntry, location.Schedule) {
			violations = append(violations, domain.Violation{
				Code:       domain.ViolationOutsideAvailability,
				EntryIndex: i,
				Message: fmt.Sprintf("window %s-%s exceeds the registered availability at %q",
					entry.Start, entry.End, location.Address),
			})
		}
	}

	return domain.ValidationResult{
		Valid:      len(violations) == 0,
		Violations: violations,
	}
}

// findLocation matches an address against the provider's registered
// locations, case-insensitively.
func findLocation(provider domain.Provider, address string) *domain.Location {
	for i := range provider.Locations {
		if strings.EqualFold(provider.Locations[i].Address, address) {
			return &provider.Locations[i]
		}
	}
	return nil
}

// containedInRegistered reports whether every proposed day+window is a
// sub-window of at least one registered entry: for each proposed day there
// must be a registered entry covering that day with start >= registered
// start and end <= registered end. A proposed agenda may narrow a declared
// capability, never exceed it.
func containedInRegistered(proposed domain.ScheduleEntry, registered []domain.ScheduleEntry) bool {
	for _, day := range proposed.Days.Sorted() {
		if !dayContained(day, proposed, registered) {
			return false
		}
	}
	return true
}

func dayContained(day domain.Weekday, proposed domain.ScheduleEntry, registered []domain.ScheduleEntry) bool {
	for _, entry := range registered {
		if !entry.Days.Contains(day) {
			continue
		}
		if proposed.Start.Minutes() >= entry.Start.Minutes() && proposed.End.Minutes() <= entry.End.Minutes() {
			return true
		}
	}
	return false
}
