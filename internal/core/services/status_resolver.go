package services

import (
	"github.com/redsalud/agenda-engine/internal/core/domain"
)

// ClassifyStatus resolves a lifecycle record against a reference date. The
// reference date is always an explicit argument; the engine never reads the
// system clock, so results are reproducible.
//
// A baja earlier than the alta is accepted as-is: each date is compared
// against now independently, the two dates are never compared to each other.
func ClassifyStatus(rec domain.LifecycleRecord, now domain.Date) domain.StatusClass {
	if rec.EffectiveStart.After(now) {
		return domain.StatusNotYetStarted
	}
	if rec.EffectiveEnd != nil && !rec.EffectiveEnd.After(now) {
		return domain.StatusEnded
	}
	return domain.StatusActive
}

// IsActive collapses the three-way classification to a boolean.
func IsActive(rec domain.LifecycleRecord, now domain.Date) bool {
	return ClassifyStatus(rec, now) == domain.StatusActive
}

// HasPendingDeactivation reports a baja scheduled for a future date; the
// entity is still active today.
func HasPendingDeactivation(rec domain.LifecycleRecord, now domain.Date) bool {
	return rec.EffectiveEnd != nil && rec.EffectiveEnd.After(now)
}

// HasPendingActivation reports an alta scheduled for a future date.
func HasPendingActivation(rec domain.LifecycleRecord, now domain.Date) bool {
	return rec.EffectiveStart.After(now)
}

// ResolveStatus assembles the full status payload for a record.
func ResolveStatus(rec domain.LifecycleRecord, now domain.Date) domain.ProviderStatus {
	return domain.ProviderStatus{
		Active:              IsActive(rec, now),
		Class:               ClassifyStatus(rec, now),
		PendingActivation:   HasPendingActivation(rec, now),
		PendingDeactivation: HasPendingDeactivation(rec, now),
		EffectiveStart:      rec.EffectiveStart,
		EffectiveEnd:        rec.EffectiveEnd,
		AsOf:                now,
	}
}

// Operator transitions. Each overwrites the record's dates in place; the
// caller persists the record atomically. Nothing here retries or rolls back.

// ActivateNow makes the record active as of today. Also used to cancel an
// in-effect deactivation.
func ActivateNow(rec *domain.LifecycleRecord, today domain.Date) {
	rec.EffectiveStart = today
	rec.EffectiveEnd = nil
}

// ScheduleActivation sets a future alta. An activation always supersedes a
// pending deactivation, so the baja is cleared.
func ScheduleActivation(rec *domain.LifecycleRecord, date domain.Date) {
	rec.EffectiveStart = date
	rec.EffectiveEnd = nil
}

// DeactivateNow sets today's date as the baja.
func DeactivateNow(rec *domain.LifecycleRecord, today domain.Date) {
	end := today
	rec.EffectiveEnd = &end
}

// ScheduleDeactivation sets a baja for the given date. The date is not
// validated against the alta; status resolution stays permissive.
func ScheduleDeactivation(rec *domain.LifecycleRecord, date domain.Date) {
	end := date
	rec.EffectiveEnd = &end
}

// CancelPendingDeactivation clears the baja, leaving the alta untouched.
// Clearing an already-absent baja is a no-op.
func CancelPendingDeactivation(rec *domain.LifecycleRecord) {
	rec.EffectiveEnd = nil
}

// CancelPendingActivation abandons a scheduled alta by activating today.
func CancelPendingActivation(rec *domain.LifecycleRecord, today domain.Date) {
	ActivateNow(rec, today)
}
