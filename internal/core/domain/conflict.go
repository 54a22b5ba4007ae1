package domain

// TimeRange is a half-open [Start, End) window within a single day.
type TimeRange struct {
	Start TimeOfDay `json:"start"`
	End   TimeOfDay `json:"end"`
}

// Overlaps reports whether two ranges intersect. The check is symmetric and
// touching endpoints (one range ending exactly where the other starts) do
// not overlap.
func (r TimeRange) Overlaps(other TimeRange) bool {
	return r.Start.Minutes() < other.End.Minutes() && other.Start.Minutes() < r.End.Minutes()
}

// Conflict is a pair of schedule entries within one location that share a
// weekday and whose time ranges intersect.
type Conflict struct {
	IndexA     int       `json:"indexA"`
	IndexB     int       `json:"indexB"`
	SharedDays []Weekday `json:"sharedDays"`
	RangeA     TimeRange `json:"rangeA"`
	RangeB     TimeRange `json:"rangeB"`
}

// CrossConflict is a conflicting entry pair across two different locations
// of the same provider: the provider would be expected in two places over
// overlapping time.
type CrossConflict struct {
	AddressA   string    `json:"addressA"`
	AddressB   string    `json:"addressB"`
	IndexA     int       `json:"indexA"`
	IndexB     int       `json:"indexB"`
	SharedDays []Weekday `json:"sharedDays"`
	RangeA     TimeRange `json:"rangeA"`
	RangeB     TimeRange `json:"rangeB"`
}
