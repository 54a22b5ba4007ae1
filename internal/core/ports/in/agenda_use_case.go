package in

import (
	"context"

	"github.com/google/uuid"
	"github.com/redsalud/agenda-engine/internal/core/domain"
)

// AgendaUseCase validates proposed agendas and expands registered
// availability into bookable slots.
type AgendaUseCase interface {
	// Full coherence plus overlap verdict for a proposed agenda.
	ValidateAgenda(ctx context.Context, providerID uuid.UUID, proposed []domain.AgendaEntry) (*domain.AgendaVerdict, error)

	// Bookable slots for one registered location on one weekday.
	GenerateAgendaSlots(ctx context.Context, providerID uuid.UUID, address string, day domain.Weekday) (*domain.AgendaSlots, error)
}

// StatusUseCase resolves effective-dated lifecycle state as of an explicit
// reference date.
type StatusUseCase interface {
	ResolveProviderStatus(ctx context.Context, providerID uuid.UUID, asOf domain.Date) (*domain.ProviderStatus, error)
	ResolveAffiliateStatus(ctx context.Context, affiliateID uuid.UUID, asOf domain.Date) (*domain.ProviderStatus, error)
}

// CacheInvalidationUseCase is consumed by the directory-change listener.
type CacheInvalidationUseCase interface {
	InvalidateProvider(ctx context.Context, providerID uuid.UUID)
	InvalidateAffiliate(ctx context.Context, affiliateID uuid.UUID)
}
