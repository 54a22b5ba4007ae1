package directory

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/redsalud/agenda-engine/internal/config"
	"github.com/redsalud/agenda-engine/internal/core/domain"
	"github.com/redsalud/agenda-engine/internal/core/ports/out"
)

// DirectoryAdapter reads providers and affiliates from the network
// administration API over HTTP basic auth.
type DirectoryAdapter struct {
	client   *http.Client
	baseURL  string
	username string
	password string
	logger   out.LoggerPort
}

func NewDirectoryAdapter(cfg *config.Config, logger out.LoggerPort) *DirectoryAdapter {
	return &DirectoryAdapter{
		client:   &http.Client{Timeout: 10 * time.Second},
		baseURL:  cfg.Directory.URL,
		username: cfg.Directory.Username,
		password: cfg.Directory.Password,
		logger:   logger,
	}
}

func (a *DirectoryAdapter) GetProvider(ctx context.Context, providerID uuid.UUID) (*domain.Provider, error) {
	a.logger.Info("directory.provider.fetch", out.LogFields{
		"providerId": providerID,
	})

	var dto providerDTO
	if err := a.getJSON(ctx, fmt.Sprintf("%s/prestadores/%s", a.baseURL, providerID), &dto); err != nil {
		a.logger.Error("directory.provider.fetch_failed", out.LogFields{
			"providerId": providerID,
			"error":      err.Error(),
		})
		return nil, err
	}

	provider, err := dto.toDomain()
	if err != nil {
		a.logger.Error("directory.provider.normalize_failed", out.LogFields{
			"providerId": providerID,
			"error":      err.Error(),
		})
		return nil, fmt.Errorf("directory.provider.normalize_failed: %w", err)
	}

	a.logger.Debug("directory.provider.fetch_success", out.LogFields{
		"providerId": providerID,
		"locations":  len(provider.Locations),
	})

	return provider, nil
}

func (a *DirectoryAdapter) GetAffiliate(ctx context.Context, affiliateID uuid.UUID) (*domain.Affiliate, error) {
	a.logger.Info("directory.affiliate.fetch", out.LogFields{
		"affiliateId": affiliateID,
	})

	var dto affiliateDTO
	if err := a.getJSON(ctx, fmt.Sprintf("%s/afiliados/%s", a.baseURL, affiliateID), &dto); err != nil {
		a.logger.Error("directory.affiliate.fetch_failed", out.LogFields{
			"affiliateId": affiliateID,
			"error":       err.Error(),
		})
		return nil, err
	}

	affiliate, err := dto.toDomain()
	if err != nil {
		a.logger.Error("directory.affiliate.normalize_failed", out.LogFields{
			"affiliateId": affiliateID,
			"error":       err.Error(),
		})
		return nil, fmt.Errorf("directory.affiliate.normalize_failed: %w", err)
	}

	return affiliate, nil
}

func (a *DirectoryAdapter) getJSON(ctx context.Context, url string, target interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}

	req.SetBasicAuth(a.username, a.password)

	resp, err := a.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return fmt.Errorf("%w: %s", domain.ErrNotFound, url)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	return json.NewDecoder(resp.Body).Decode(target)
}
