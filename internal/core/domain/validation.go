package domain

// ViolationCode identifies which declared capability a proposed agenda
// entry is missing.
type ViolationCode string

const (
	// ViolationUnknownSpecialty - the entry references a specialty the
	// provider has not declared.
	ViolationUnknownSpecialty ViolationCode = "unknown_specialty"
	// ViolationUnknownLocation - the entry's address matches none of the
	// provider's registered locations.
	ViolationUnknownLocation ViolationCode = "unknown_location"
	// ViolationOutsideAvailability - the entry's day and time window is not
	// fully contained in any registered availability of the location.
	ViolationOutsideAvailability ViolationCode = "outside_availability"
)

// Violation is one coherence failure of a proposed agenda entry against its
// provider's declared capabilities. All violations are reported together so
// the UI can render a complete error summary.
type Violation struct {
	Code       ViolationCode `json:"code"`
	EntryIndex int           `json:"entryIndex"`
	Message    string        `json:"message"`
}

// ValidationResult is the coherence validator's verdict.
type ValidationResult struct {
	Valid      bool        `json:"valid"`
	Violations []Violation `json:"violations"`
}

// AgendaVerdict combines coherence violations with overlap conflicts for a
// proposed agenda. The caller blocks the save on Valid == false.
type AgendaVerdict struct {
	Valid          bool            `json:"valid"`
	Violations     []Violation     `json:"violations"`
	Conflicts      []Conflict      `json:"conflicts"`
	CrossConflicts []CrossConflict `json:"crossConflicts"`
}

// ProviderStatus is the resolved state of an effective-dated record at a
// reference date, as served to the admin UI and the reporting subsystem.
type ProviderStatus struct {
	Active              bool        `json:"active"`
	Class               StatusClass `json:"class"`
	PendingActivation   bool        `json:"pendingActivation"`
	PendingDeactivation bool        `json:"pendingDeactivation"`
	EffectiveStart      Date        `json:"effectiveStart"`
	EffectiveEnd        *Date       `json:"effectiveEnd,omitempty"`
	AsOf                Date        `json:"asOf"`
}
