package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/redsalud/agenda-engine/internal/core/domain"
	"github.com/redsalud/agenda-engine/internal/core/ports/out"
	"github.com/redsalud/agenda-engine/internal/core/services"
	"github.com/stretchr/testify/assert"
	testifymock "github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) Debug(string, out.LogFields) {}
func (nopLogger) Info(string, out.LogFields)  {}
func (nopLogger) Warn(string, out.LogFields)  {}
func (nopLogger) Error(string, out.LogFields) {}

func (l nopLogger) WithFields(out.LogFields) out.LoggerPort { return l }
func (l nopLogger) WithModule(string) out.LoggerPort        { return l }

type MockDirectoryPort struct {
	testifymock.Mock
}

func (m *MockDirectoryPort) GetProvider(ctx context.Context, providerID uuid.UUID) (*domain.Provider, error) {
	args := m.Called(ctx, providerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Provider), args.Error(1)
}

func (m *MockDirectoryPort) GetAffiliate(ctx context.Context, affiliateID uuid.UUID) (*domain.Affiliate, error) {
	args := m.Called(ctx, affiliateID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Affiliate), args.Error(1)
}

func testProvider(t *testing.T, id uuid.UUID) *domain.Provider {
	t.Helper()
	return &domain.Provider{
		ID:          id,
		Name:        "Dra. Gomez",
		Specialties: []string{"clinica"},
		Locations: []domain.Location{
			{
				Address: "Av. Rivadavia 1234",
				Schedule: []domain.ScheduleEntry{
					entryWithDuration(t, []string{"lunes", "miercoles"}, "08:00", "14:00", 30),
				},
			},
			{
				Address: "Calle Mitre 99",
				Schedule: []domain.ScheduleEntry{
					entryWithDuration(t, []string{"viernes"}, "09:00", "12:00", 20),
				},
			},
		},
		Lifecycle: record(t, "2024-01-01", ""),
	}
}

func entryWithDuration(t *testing.T, days []string, start, end string, duration int) domain.ScheduleEntry {
	t.Helper()
	e, err := domain.NewScheduleEntry(days, start, end, duration, "")
	require.NoError(t, err)
	return e
}

func TestAgendaServiceValidateAgenda(t *testing.T) {
	ctx := context.Background()

	t.Run("contained non-overlapping proposal is fully valid", func(t *testing.T) {
		providerID := uuid.New()
		directoryPort := new(MockDirectoryPort)
		directoryPort.On("GetProvider", ctx, providerID).Return(testProvider(t, providerID), nil)

		service := services.NewAgendaService(directoryPort, nil, nopLogger{})

		verdict, err := service.ValidateAgenda(ctx, providerID, []domain.AgendaEntry{
			{
				ScheduleEntry:   entryWithDuration(t, []string{"lunes"}, "09:00", "10:00", 30),
				LocationAddress: "Av. Rivadavia 1234",
			},
			{
				ScheduleEntry:   entryWithDuration(t, []string{"miercoles"}, "10:00", "12:00", 30),
				LocationAddress: "Av. Rivadavia 1234",
			},
		})
		require.NoError(t, err)

		assert.True(t, verdict.Valid)
		assert.Empty(t, verdict.Violations)
		assert.Empty(t, verdict.Conflicts)
		assert.Empty(t, verdict.CrossConflicts)
		directoryPort.AssertExpectations(t)
	})

	t.Run("proposal outside registered availability is a violation", func(t *testing.T) {
		providerID := uuid.New()
		directoryPort := new(MockDirectoryPort)
		directoryPort.On("GetProvider", ctx, providerID).Return(testProvider(t, providerID), nil)

		service := services.NewAgendaService(directoryPort, nil, nopLogger{})

		verdict, err := service.ValidateAgenda(ctx, providerID, []domain.AgendaEntry{
			{
				ScheduleEntry:   entryWithDuration(t, []string{"martes"}, "09:00", "10:00", 30),
				LocationAddress: "Av. Rivadavia 1234",
			},
		})
		require.NoError(t, err)

		assert.False(t, verdict.Valid)
		require.Len(t, verdict.Violations, 1)
		assert.Equal(t, domain.ViolationOutsideAvailability, verdict.Violations[0].Code)
		assert.Empty(t, verdict.Conflicts)
	})

	t.Run("overlapping proposals at one location conflict", func(t *testing.T) {
		providerID := uuid.New()
		directoryPort := new(MockDirectoryPort)
		directoryPort.On("GetProvider", ctx, providerID).Return(testProvider(t, providerID), nil)

		service := services.NewAgendaService(directoryPort, nil, nopLogger{})

		verdict, err := service.ValidateAgenda(ctx, providerID, []domain.AgendaEntry{
			{
				ScheduleEntry:   entryWithDuration(t, []string{"lunes"}, "09:00", "11:00", 30),
				LocationAddress: "Av. Rivadavia 1234",
			},
			{
				// Same location under a different spelling of the address.
				ScheduleEntry:   entryWithDuration(t, []string{"lunes"}, "10:00", "12:00", 30),
				LocationAddress: "AV. RIVADAVIA 1234",
			},
		})
		require.NoError(t, err)

		assert.False(t, verdict.Valid)
		assert.Empty(t, verdict.Violations)
		require.Len(t, verdict.Conflicts, 1)
		assert.Equal(t, 0, verdict.Conflicts[0].IndexA)
		assert.Equal(t, 1, verdict.Conflicts[0].IndexB)
	})

	t.Run("overlapping proposals across locations are cross conflicts", func(t *testing.T) {
		providerID := uuid.New()
		directoryPort := new(MockDirectoryPort)
		directoryPort.On("GetProvider", ctx, providerID).Return(testProvider(t, providerID), nil)

		service := services.NewAgendaService(directoryPort, nil, nopLogger{})

		verdict, err := service.ValidateAgenda(ctx, providerID, []domain.AgendaEntry{
			{
				ScheduleEntry:   entryWithDuration(t, []string{"viernes"}, "09:30", "11:00", 30),
				LocationAddress: "Av. Rivadavia 1234",
			},
			{
				ScheduleEntry:   entryWithDuration(t, []string{"viernes"}, "10:00", "11:30", 20),
				LocationAddress: "Calle Mitre 99",
			},
		})
		require.NoError(t, err)

		assert.False(t, verdict.Valid)
		require.Len(t, verdict.CrossConflicts, 1)
		assert.Equal(t, "Av. Rivadavia 1234", verdict.CrossConflicts[0].AddressA)
		assert.Equal(t, "Calle Mitre 99", verdict.CrossConflicts[0].AddressB)
		assert.Equal(t, []domain.Weekday{domain.WeekdayFriday}, verdict.CrossConflicts[0].SharedDays)
	})

	t.Run("directory failure propagates", func(t *testing.T) {
		providerID := uuid.New()
		directoryPort := new(MockDirectoryPort)
		directoryPort.On("GetProvider", ctx, providerID).Return(nil, domain.ErrNotFound)

		service := services.NewAgendaService(directoryPort, nil, nopLogger{})

		_, err := service.ValidateAgenda(ctx, providerID, nil)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestAgendaServiceGenerateAgendaSlots(t *testing.T) {
	ctx := context.Background()

	t.Run("expands the addressed location for the day", func(t *testing.T) {
		providerID := uuid.New()
		directoryPort := new(MockDirectoryPort)
		directoryPort.On("GetProvider", ctx, providerID).Return(testProvider(t, providerID), nil)

		service := services.NewAgendaService(directoryPort, nil, nopLogger{})

		result, err := service.GenerateAgendaSlots(ctx, providerID, "av. rivadavia 1234", domain.WeekdayMonday)
		require.NoError(t, err)

		assert.Equal(t, "Av. Rivadavia 1234", result.Address)
		require.Len(t, result.Entries, 1)
		// 08:00-14:00 at 30 minutes
		assert.Equal(t, 12, result.Entries[0].SlotCount)
		assert.Equal(t, 12, result.TotalSlots)
		assert.Len(t, result.Entries[0].Slots, 12)
	})

	t.Run("day not covered yields an empty expansion", func(t *testing.T) {
		providerID := uuid.New()
		directoryPort := new(MockDirectoryPort)
		directoryPort.On("GetProvider", ctx, providerID).Return(testProvider(t, providerID), nil)

		service := services.NewAgendaService(directoryPort, nil, nopLogger{})

		result, err := service.GenerateAgendaSlots(ctx, providerID, "Av. Rivadavia 1234", domain.WeekdaySunday)
		require.NoError(t, err)
		assert.Empty(t, result.Entries)
		assert.Zero(t, result.TotalSlots)
	})

	t.Run("unknown address fails with not found", func(t *testing.T) {
		providerID := uuid.New()
		directoryPort := new(MockDirectoryPort)
		directoryPort.On("GetProvider", ctx, providerID).Return(testProvider(t, providerID), nil)

		service := services.NewAgendaService(directoryPort, nil, nopLogger{})

		_, err := service.GenerateAgendaSlots(ctx, providerID, "Calle Falsa 123", domain.WeekdayMonday)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestAgendaServiceResolveStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("provider status as of an explicit date", func(t *testing.T) {
		providerID := uuid.New()
		provider := testProvider(t, providerID)
		end := date(t, "2024-06-01")
		provider.Lifecycle.EffectiveEnd = &end

		directoryPort := new(MockDirectoryPort)
		directoryPort.On("GetProvider", ctx, providerID).Return(provider, nil)

		service := services.NewAgendaService(directoryPort, nil, nopLogger{})

		status, err := service.ResolveProviderStatus(ctx, providerID, date(t, "2024-03-01"))
		require.NoError(t, err)
		assert.True(t, status.Active)
		assert.True(t, status.PendingDeactivation)

		directoryPort.ExpectedCalls = nil
		directoryPort.On("GetProvider", ctx, providerID).Return(provider, nil)

		status, err = service.ResolveProviderStatus(ctx, providerID, date(t, "2024-07-01"))
		require.NoError(t, err)
		assert.False(t, status.Active)
		assert.Equal(t, domain.StatusEnded, status.Class)
	})

	t.Run("affiliate status", func(t *testing.T) {
		affiliateID := uuid.New()
		affiliate := &domain.Affiliate{
			ID:        affiliateID,
			PlanRef:   "plan-210",
			Lifecycle: record(t, "2024-01-01", "2024-06-01"),
		}

		directoryPort := new(MockDirectoryPort)
		directoryPort.On("GetAffiliate", ctx, affiliateID).Return(affiliate, nil)

		service := services.NewAgendaService(directoryPort, nil, nopLogger{})

		status, err := service.ResolveAffiliateStatus(ctx, affiliateID, date(t, "2024-03-01"))
		require.NoError(t, err)
		assert.True(t, status.Active)
		assert.True(t, status.PendingDeactivation)
	})
}

type fakeCache struct {
	providers  map[uuid.UUID]*domain.Provider
	affiliates map[uuid.UUID]*domain.Affiliate
}

func newFakeCache() *fakeCache {
	return &fakeCache{
		providers:  make(map[uuid.UUID]*domain.Provider),
		affiliates: make(map[uuid.UUID]*domain.Affiliate),
	}
}

func (c *fakeCache) GetProvider(_ context.Context, id uuid.UUID) (*domain.Provider, bool) {
	provider, exists := c.providers[id]
	return provider, exists
}

func (c *fakeCache) StoreProvider(_ context.Context, provider domain.Provider) {
	c.providers[provider.ID] = &provider
}

func (c *fakeCache) InvalidateProvider(_ context.Context, id uuid.UUID) {
	delete(c.providers, id)
}

func (c *fakeCache) GetAffiliate(_ context.Context, id uuid.UUID) (*domain.Affiliate, bool) {
	affiliate, exists := c.affiliates[id]
	return affiliate, exists
}

func (c *fakeCache) StoreAffiliate(_ context.Context, affiliate domain.Affiliate) {
	c.affiliates[affiliate.ID] = &affiliate
}

func (c *fakeCache) InvalidateAffiliate(_ context.Context, id uuid.UUID) {
	delete(c.affiliates, id)
}

func TestAgendaServiceCaching(t *testing.T) {
	ctx := context.Background()

	t.Run("cached provider skips the directory", func(t *testing.T) {
		providerID := uuid.New()
		cache := newFakeCache()
		cache.providers[providerID] = testProvider(t, providerID)

		directoryPort := new(MockDirectoryPort)

		service := services.NewAgendaService(directoryPort, cache, nopLogger{})

		status, err := service.ResolveProviderStatus(ctx, providerID, date(t, "2024-03-01"))
		require.NoError(t, err)
		assert.True(t, status.Active)
		directoryPort.AssertNotCalled(t, "GetProvider", ctx, providerID)
	})

	t.Run("miss fetches and stores", func(t *testing.T) {
		providerID := uuid.New()
		cache := newFakeCache()

		directoryPort := new(MockDirectoryPort)
		directoryPort.On("GetProvider", ctx, providerID).Return(testProvider(t, providerID), nil).Once()

		service := services.NewAgendaService(directoryPort, cache, nopLogger{})

		_, err := service.ResolveProviderStatus(ctx, providerID, date(t, "2024-03-01"))
		require.NoError(t, err)

		_, cached := cache.providers[providerID]
		assert.True(t, cached)

		// Second call is served from the cache; Once above would fail otherwise.
		_, err = service.ResolveProviderStatus(ctx, providerID, date(t, "2024-03-01"))
		require.NoError(t, err)
		directoryPort.AssertExpectations(t)
	})

	t.Run("invalidation drops the cached record", func(t *testing.T) {
		providerID := uuid.New()
		cache := newFakeCache()
		cache.providers[providerID] = testProvider(t, providerID)

		service := services.NewAgendaService(new(MockDirectoryPort), cache, nopLogger{})

		service.InvalidateProvider(ctx, providerID)

		_, cached := cache.providers[providerID]
		assert.False(t, cached)
	})

	t.Run("invalidation without a cache is a no-op", func(t *testing.T) {
		service := services.NewAgendaService(new(MockDirectoryPort), nil, nopLogger{})
		assert.NotPanics(t, func() {
			service.InvalidateProvider(ctx, uuid.New())
			service.InvalidateAffiliate(ctx, uuid.New())
		})
	})
}
