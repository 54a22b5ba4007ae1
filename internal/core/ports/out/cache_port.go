package out

import (
	"context"

	"github.com/google/uuid"
	"github.com/redsalud/agenda-engine/internal/core/domain"
)

// CachePort caches directory lookups. Entries are invalidated by the
// directory-change listener, never expired by the engine itself.
type CachePort interface {
	GetProvider(ctx context.Context, providerID uuid.UUID) (*domain.Provider, bool)
	StoreProvider(ctx context.Context, provider domain.Provider)
	InvalidateProvider(ctx context.Context, providerID uuid.UUID)

	GetAffiliate(ctx context.Context, affiliateID uuid.UUID) (*domain.Affiliate, bool)
	StoreAffiliate(ctx context.Context, affiliate domain.Affiliate)
	InvalidateAffiliate(ctx context.Context, affiliateID uuid.UUID)
}
