package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/redsalud/agenda-engine/internal/core/domain"
	"github.com/redsalud/agenda-engine/internal/core/ports/out"
)

// AgendaService composes the pure engine functions with the directory and
// cache ports. It implements in.AgendaUseCase, in.StatusUseCase and
// in.CacheInvalidationUseCase.
type AgendaService struct {
	directoryPort out.DirectoryPort
	cachePort     out.CachePort
	logger        out.LoggerPort
}

func NewAgendaService(
	directoryPort out.DirectoryPort,
	cachePort out.CachePort,
	logger out.LoggerPort,
) *AgendaService {
	return &AgendaService{
		directoryPort: directoryPort,
		cachePort:     cachePort,
		logger:        logger.WithModule("AgendaService"),
	}
}

// ValidateAgenda runs the coherence validator and both overlap detectors
// over a proposed agenda. Overlaps are checked among the proposed entries
// themselves, grouped by location; the registered availability windows are
// capabilities, not bookings, so a proposal contained in one is not a
// conflict with it.
func (s *AgendaService) ValidateAgenda(ctx context.Context, providerID uuid.UUID, proposed []domain.AgendaEntry) (*domain.AgendaVerdict, error) {
	s.logger.Info("agenda.validate.started", out.LogFields{
		"providerId":   providerID,
		"entriesCount": len(proposed),
	})

	provider, err := s.getProvider(ctx, providerID)
	if err != nil {
		s.logger.Error("agenda.validate.provider.fetch_failed", out.LogFields{
			"providerId": providerID,
			"error":      err.Error(),
		})
		return nil, fmt.Errorf("agenda.validate.provider.fetch_failed: %w", err)
	}

	result := ValidateAgendaAgainstProvider(*provider, proposed)

	grouped := groupProposed(provider.Locations, proposed)
	conflicts := make([]domain.Conflict, 0)
	for _, location := range grouped {
		conflicts = append(conflicts, DetectConflictsWithinLocation(location.Schedule)...)
	}
	crossConflicts := DetectConflictsAcrossLocations(grouped)

	verdict := &domain.AgendaVerdict{
		Valid:          result.Valid && len(conflicts) == 0 && len(crossConflicts) == 0,
		Violations:     result.Violations,
		Conflicts:      conflicts,
		CrossConflicts: crossConflicts,
	}

	s.logger.Info("agenda.validate.finished", out.LogFields{
		"providerId":     providerID,
		"valid":          verdict.Valid,
		"violations":     len(verdict.Violations),
		"conflicts":      len(verdict.Conflicts),
		"crossConflicts": len(verdict.CrossConflicts),
	})

	return verdict, nil
}

// GenerateAgendaSlots expands every registered entry of the addressed
// location that covers the given weekday.
func (s *AgendaService) GenerateAgendaSlots(ctx context.Context, providerID uuid.UUID, address string, day domain.Weekday) (*domain.AgendaSlots, error) {
	s.logger.Info("agenda.slots.started", out.LogFields{
		"providerId": providerID,
		"address":    address,
		"day":        day,
	})

	provider, err := s.getProvider(ctx, providerID)
	if err != nil {
		s.logger.Error("agenda.slots.provider.fetch_failed", out.LogFields{
			"providerId": providerID,
			"error":      err.Error(),
		})
		return nil, fmt.Errorf("agenda.slots.provider.fetch_failed: %w", err)
	}

	var location *domain.Location
	for i := range provider.Locations {
		if strings.EqualFold(provider.Locations[i].Address, address) {
			location = &provider.Locations[i]
			break
		}
	}
	if location == nil {
		return nil, fmt.Errorf("%w: location %q of provider %s", domain.ErrNotFound, address, providerID)
	}

	result := &domain.AgendaSlots{
		ProviderID: providerID,
		Address:    location.Address,
		Day:        day,
		Entries:    make([]domain.EntrySlots, 0),
	}

	for i, entry := range location.Schedule {
		if !entry.Days.Contains(day) {
			continue
		}

		slots, err := GenerateSlots(entry.Start, entry.End, entry.SlotDurationMinutes)
		if err != nil {
			// Registered entries are normalized on the way in, so this only
			// trips on corrupt directory data.
			s.logger.Error("agenda.slots.generate_failed", out.LogFields{
				"providerId": providerID,
				"entryIndex": i,
				"error":      err.Error(),
			})
			return nil, fmt.Errorf("agenda.slots.generate_failed: %w", err)
		}

		result.Entries = append(result.Entries, domain.EntrySlots{
			EntryIndex:   i,
			SpecialtyRef: entry.SpecialtyRef,
			Slots:        slots,
			SlotCount:    len(slots),
		})
		result.TotalSlots += len(slots)
	}

	s.logger.Debug("agenda.slots.finished", out.LogFields{
		"providerId": providerID,
		"address":    location.Address,
		"totalSlots": result.TotalSlots,
	})

	return result, nil
}

// ResolveProviderStatus classifies a provider's lifecycle record as of the
// given date. The reference date travels in from the caller so results stay
// deterministic.
func (s *AgendaService) ResolveProviderStatus(ctx context.Context, providerID uuid.UUID, asOf domain.Date) (*domain.ProviderStatus, error) {
	provider, err := s.getProvider(ctx, providerID)
	if err != nil {
		s.logger.Error("status.provider.fetch_failed", out.LogFields{
			"providerId": providerID,
			"error":      err.Error(),
		})
		return nil, fmt.Errorf("status.provider.fetch_failed: %w", err)
	}

	status := ResolveStatus(provider.Lifecycle, asOf)
	return &status, nil
}

// ResolveAffiliateStatus classifies an affiliate's lifecycle record as of
// the given date.
func (s *AgendaService) ResolveAffiliateStatus(ctx context.Context, affiliateID uuid.UUID, asOf domain.Date) (*domain.ProviderStatus, error) {
	affiliate, err := s.getAffiliate(ctx, affiliateID)
	if err != nil {
		s.logger.Error("status.affiliate.fetch_failed", out.LogFields{
			"affiliateId": affiliateID,
			"error":       err.Error(),
		})
		return nil, fmt.Errorf("status.affiliate.fetch_failed: %w", err)
	}

	status := ResolveStatus(affiliate.Lifecycle, asOf)
	return &status, nil
}

func (s *AgendaService) InvalidateProvider(ctx context.Context, providerID uuid.UUID) {
	if s.cachePort == nil {
		return
	}
	s.cachePort.InvalidateProvider(ctx, providerID)
}

func (s *AgendaService) InvalidateAffiliate(ctx context.Context, affiliateID uuid.UUID) {
	if s.cachePort == nil {
		return
	}
	s.cachePort.InvalidateAffiliate(ctx, affiliateID)
}

func (s *AgendaService) getProvider(ctx context.Context, providerID uuid.UUID) (*domain.Provider, error) {
	if s.cachePort != nil {
		if provider, exists := s.cachePort.GetProvider(ctx, providerID); exists {
			s.logger.Debug("directory.provider.cache.hit", out.LogFields{
				"providerId": providerID,
			})
			return provider, nil
		}
	}

	s.logger.Debug("directory.provider.cache.miss", out.LogFields{
		"providerId": providerID,
	})

	provider, err := s.directoryPort.GetProvider(ctx, providerID)
	if err != nil {
		return nil, err
	}

	if s.cachePort != nil {
		s.cachePort.StoreProvider(ctx, *provider)
	}

	return provider, nil
}

func (s *AgendaService) getAffiliate(ctx context.Context, affiliateID uuid.UUID) (*domain.Affiliate, error) {
	if s.cachePort != nil {
		if affiliate, exists := s.cachePort.GetAffiliate(ctx, affiliateID); exists {
			s.logger.Debug("directory.affiliate.cache.hit", out.LogFields{
				"affiliateId": affiliateID,
			})
			return affiliate, nil
		}
	}

	s.logger.Debug("directory.affiliate.cache.miss", out.LogFields{
		"affiliateId": affiliateID,
	})

	affiliate, err := s.directoryPort.GetAffiliate(ctx, affiliateID)
	if err != nil {
		return nil, err
	}

	if s.cachePort != nil {
		s.cachePort.StoreAffiliate(ctx, *affiliate)
	}

	return affiliate, nil
}

// groupProposed arranges the proposed entries into per-location groups for
// the overlap detectors, keeping proposal order within each group. Addresses
// are canonicalized against the registered locations so two spellings of the
// same address land in one group; an unregistered address still forms its
// own group (the coherence validator reports it separately, and its entries
// can still collide with each other).
func groupProposed(locations []domain.Location, proposed []domain.AgendaEntry) []domain.Location {
	grouped := make([]domain.Location, 0)

	for _, entry := range proposed {
		address := entry.LocationAddress
		for i := range locations {
			if strings.EqualFold(locations[i].Address, address) {
				address = locations[i].Address
				break
			}
		}

		placed := false
		for i := range grouped {
			if strings.EqualFold(grouped[i].Address, address) {
				grouped[i].Schedule = append(grouped[i].Schedule, entry.ScheduleEntry)
				placed = true
				break
			}
		}
		if !placed {
			grouped = append(grouped, domain.Location{
				Address:  address,
				Schedule: []domain.ScheduleEntry{entry.ScheduleEntry},
			})
		}
	}

	return grouped
}
