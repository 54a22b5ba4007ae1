package cache

import (
	"context"
	"sync"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/redsalud/agenda-engine/internal/config"
	"github.com/redsalud/agenda-engine/internal/core/domain"
	"github.com/redsalud/agenda-engine/internal/core/ports/out"
)

// LRUCacheAdapter caches directory records between validation calls. The
// RabbitMQ listener invalidates entries when the directory changes; there is
// no time-based expiry.
type LRUCacheAdapter struct {
	providers  *lru.Cache[uuid.UUID, *domain.Provider]
	affiliates *lru.Cache[uuid.UUID, *domain.Affiliate]
	mu         sync.RWMutex
	logger     out.LoggerPort
}

func NewLRUCacheAdapter(cfg *config.Config, logger out.LoggerPort) (*LRUCacheAdapter, error) {
	providers, err := lru.New[uuid.UUID, *domain.Provider](cfg.Cache.Size)
	if err != nil {
		logger.Error("cache.init.failed", out.LogFields{
			"error": err.Error(),
			"size":  cfg.Cache.Size,
		})
		return nil, err
	}

	affiliates, err := lru.New[uuid.UUID, *domain.Affiliate](cfg.Cache.Size)
	if err != nil {
		logger.Error("cache.init.failed", out.LogFields{
			"error": err.Error(),
			"size":  cfg.Cache.Size,
		})
		return nil, err
	}

	return &LRUCacheAdapter{
		providers:  providers,
		affiliates: affiliates,
		logger:     logger.WithModule("CacheAdapter"),
	}, nil
}

func (c *LRUCacheAdapter) GetProvider(ctx context.Context, providerID uuid.UUID) (*domain.Provider, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	provider, exists := c.providers.Get(providerID)
	if !exists {
		c.logger.Debug("cache.provider.miss", out.LogFields{
			"providerId": providerID,
		})
		return nil, false
	}

	c.logger.Debug("cache.provider.hit", out.LogFields{
		"providerId": providerID,
	})
	return provider, true
}

func (c *LRUCacheAdapter) StoreProvider(ctx context.Context, provider domain.Provider) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.logger.Debug("cache.provider.store", out.LogFields{
		"providerId": provider.ID,
	})
	c.providers.Add(provider.ID, &provider)
}

func (c *LRUCacheAdapter) InvalidateProvider(ctx context.Context, providerID uuid.UUID) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.logger.Debug("cache.provider.invalidate", out.LogFields{
		"providerId": providerID,
	})
	c.providers.Remove(providerID)
}

func (c *LRUCacheAdapter) GetAffiliate(ctx context.Context, affiliateID uuid.UUID) (*domain.Affiliate, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	affiliate, exists := c.affiliates.Get(affiliateID)
	if !exists {
		c.logger.Debug("cache.affiliate.miss", out.LogFields{
			"affiliateId": affiliateID,
		})
		return nil, false
	}

	c.logger.Debug("cache.affiliate.hit", out.LogFields{
		"affiliateId": affiliateID,
	})
	return affiliate, true
}

func (c *LRUCacheAdapter) StoreAffiliate(ctx context.Context, affiliate domain.Affiliate) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.logger.Debug("cache.affiliate.store", out.LogFields{
		"affiliateId": affiliate.ID,
	})
	c.affiliates.Add(affiliate.ID, &affiliate)
}

func (c *LRUCacheAdapter) InvalidateAffiliate(ctx context.Context, affiliateID uuid.UUID) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.logger.Debug("cache.affiliate.invalidate", out.LogFields{
		"affiliateId": affiliateID,
	})
	c.affiliates.Remove(affiliateID)
}
