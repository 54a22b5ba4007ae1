package services

import (
	"github.com/redsalud/agenda-engine/internal/core/domain"
)

// entriesConflict reports the weekdays on which two entries collide. Two
// entries conflict iff they share at least one weekday and their time ranges
// intersect; an empty day set on either side can never conflict.
func entriesConflict(a, b domain.ScheduleEntry) []domain.Weekday {
	shared := a.Days.Intersect(b.Days)
	if len(shared) == 0 {
		return nil
	}
	if !a.Range().Overlaps(b.Range()) {
		return nil
	}
	return shared
}

// DetectConflictsWithinLocation examines every unordered entry pair (i, j),
// i < j, of a single location and reports each pair that shares a weekday
// with intersecting time ranges. The result follows pair enumeration order
// (0,1), (0,2), ..., (1,2), ... and contains every conflict, not just the
// first: the caller decides whether a non-empty result blocks the save.
func DetectConflictsWithinLocation(entries []domain.ScheduleEntry) []domain.Conflict {
	conflicts := make([]domain.Conflict, 0)

	for i := 0; i < len(entries); i++ {
		for j := i + 1; j < len(entries); j++ {
			shared := entriesConflict(entries[i], entries[j])
			if len(shared) == 0 {
				continue
			}

			conflicts = append(conflicts, domain.Conflict{
				IndexA:     i,
				IndexB:     j,
				SharedDays: shared,
				RangeA:     entries[i].Range(),
				RangeB:     entries[j].Range(),
			})
		}
	}

	return conflicts
}

// DetectConflictsAcrossLocations applies the same day-and-range test to
// every entry pair drawn from two distinct locations of the same provider:
// one person cannot attend two addresses over overlapping time. Results are
// ordered location-pair-major, entry-pair-minor.
func DetectConflictsAcrossLocations(locations []domain.Location) []domain.CrossConflict {
	conflicts := make([]domain.CrossConflict, 0)

	for la := 0; la < len(locations); la++ {
		for lb := la + 1; lb < len(locations); lb++ {
			for i, entryA := range locations[la].Schedule {
				for j, entryB := range locations[lb].Schedule {
					shared := entriesConflict(entryA, entryB)
					if len(shared) == 0 {
						continue
					}

					conflicts = append(conflicts, domain.CrossConflict{
						AddressA:   locations[la].Address,
						AddressB:   locations[lb].Address,
						IndexA:     i,
						IndexB:     j,
						SharedDays: shared,
						RangeA:     entryA.Range(),
						RangeB:     entryB.Range(),
					})
				}
			}
		}
	}

	return conflicts
}
