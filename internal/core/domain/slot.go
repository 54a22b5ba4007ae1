package domain

// Slot is one discrete bookable unit cut from a recurring availability
// window at a fixed duration. Index 0 starts at the window start.
type Slot struct {
	Index int       `json:"index"`
	Start TimeOfDay `json:"start"`
	End   TimeOfDay `json:"end"`
}
