package out

import (
	"context"

	"github.com/google/uuid"
	"github.com/redsalud/agenda-engine/internal/core/domain"
)

// DirectoryPort reads providers and affiliates from the network
// administration directory. The engine never writes through this port;
// persistence stays with the admin API.
type DirectoryPort interface {
	GetProvider(ctx context.Context, providerID uuid.UUID) (*domain.Provider, error)
	GetAffiliate(ctx context.Context, affiliateID uuid.UUID) (*domain.Affiliate, error)
}
