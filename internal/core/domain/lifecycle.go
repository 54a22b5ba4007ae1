package domain

import "github.com/google/uuid"

// LifecycleRecord tracks an entity's effective-dated activation state.
// EffectiveStart is the alta date, EffectiveEnd the optional baja date.
// Records are never deleted; scheduling a new transition overwrites the
// dates in place. An EffectiveEnd earlier than EffectiveStart is accepted
// as-is: status always follows from comparing each date against "now",
// never from comparing the two dates to each other.
type LifecycleRecord struct {
	EffectiveStart Date  `json:"effectiveStart"`
	EffectiveEnd   *Date `json:"effectiveEnd,omitempty"`
}

// StatusClass is the three-way classification of a lifecycle record against
// a reference date.
type StatusClass string

const (
	// StatusNotYetStarted - alta is in the future.
	StatusNotYetStarted StatusClass = "not_yet_started"
	// StatusActive - alta has passed and no baja has taken effect.
	StatusActive StatusClass = "active"
	// StatusEnded - baja has taken effect.
	StatusEnded StatusClass = "ended"
)

// Affiliate is a plan member in the network directory, carrying the same
// effective-dated lifecycle as providers.
type Affiliate struct {
	ID        uuid.UUID       `json:"id"`
	Name      string          `json:"name"`
	PlanRef   string          `json:"planRef"`
	Lifecycle LifecycleRecord `json:"lifecycle"`
	Members   []Member        `json:"members,omitempty"`
}

// Member is a person covered under an affiliate's plan, with an independent
// lifecycle record (a member can be dropped while the affiliate stays active).
type Member struct {
	ID        uuid.UUID       `json:"id"`
	Name      string          `json:"name"`
	Lifecycle LifecycleRecord `json:"lifecycle"`
}
