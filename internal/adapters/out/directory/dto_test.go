package directory

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/redsalud/agenda-engine/internal/core/domain"
)

func TestScheduleEntryDTONormalization(t *testing.T) {
	t.Run("modern field names", func(t *testing.T) {
		dto := scheduleEntryDTO{
			Dias:            []string{"lunes", "miercoles"},
			HoraInicio:      "08:00",
			HoraFin:         "12:00",
			DuracionMinutos: 30,
			Especialidad:    "clinica",
		}

		entry, err := dto.toDomain()
		require.NoError(t, err)

		assert.Equal(t, "08:00", entry.Start.String())
		assert.Equal(t, "12:00", entry.End.String())
		assert.Equal(t, 30, entry.SlotDurationMinutes)
		assert.Equal(t, "clinica", entry.SpecialtyRef)
		assert.True(t, entry.Days.Contains(domain.WeekdayMonday))
		assert.True(t, entry.Days.Contains(domain.WeekdayWednesday))
	})

	t.Run("legacy field names", func(t *testing.T) {
		dto := scheduleEntryDTO{
			Dias:             []string{"sábado"},
			Desde:            "09:00",
			Hasta:            "13:00",
			DuracionConsulta: 20,
		}

		entry, err := dto.toDomain()
		require.NoError(t, err)

		assert.Equal(t, "09:00", entry.Start.String())
		assert.Equal(t, "13:00", entry.End.String())
		assert.Equal(t, 20, entry.SlotDurationMinutes)
		assert.True(t, entry.Days.Contains(domain.WeekdaySaturday))
	})

	t.Run("modern names win when both variants are present", func(t *testing.T) {
		dto := scheduleEntryDTO{
			Dias:             []string{"viernes"},
			HoraInicio:       "10:00",
			Desde:            "08:00",
			HoraFin:          "11:00",
			Hasta:            "14:00",
			DuracionMinutos:  15,
			DuracionConsulta: 45,
		}

		entry, err := dto.toDomain()
		require.NoError(t, err)

		assert.Equal(t, "10:00", entry.Start.String())
		assert.Equal(t, "11:00", entry.End.String())
		assert.Equal(t, 15, entry.SlotDurationMinutes)
	})

	t.Run("malformed time is rejected", func(t *testing.T) {
		dto := scheduleEntryDTO{
			Dias:            []string{"lunes"},
			HoraInicio:      "8am",
			HoraFin:         "12:00",
			DuracionMinutos: 30,
		}

		_, err := dto.toDomain()
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrInvalidTimeFormat)
	})
}

func TestLifecycleDTOToDomain(t *testing.T) {
	t.Run("open record", func(t *testing.T) {
		dto := lifecycleDTO{FechaAlta: "2024-03-01"}

		record, err := dto.toDomain()
		require.NoError(t, err)

		assert.Equal(t, "2024-03-01", record.EffectiveStart.String())
		assert.Nil(t, record.EffectiveEnd)
	})

	t.Run("closed record", func(t *testing.T) {
		baja := "2025-06-30"
		dto := lifecycleDTO{FechaAlta: "2024-03-01", FechaBaja: &baja}

		record, err := dto.toDomain()
		require.NoError(t, err)

		require.NotNil(t, record.EffectiveEnd)
		assert.Equal(t, "2025-06-30", record.EffectiveEnd.String())
	})

	t.Run("malformed alta", func(t *testing.T) {
		dto := lifecycleDTO{FechaAlta: "01/03/2024"}

		_, err := dto.toDomain()
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})
}

func TestProviderDTOToDomain(t *testing.T) {
	payload := `{
		"id": "7b0d1f6e-9f1d-4c1a-9a68-0c2f1d3a4b5c",
		"nombre": "Dra. Gomez",
		"especialidades": ["clinica", "pediatria"],
		"fechaAlta": "2024-01-15",
		"lugaresDeAtencion": [
			{
				"direccion": "Av. Rivadavia 1234",
				"agenda": [
					{"dias": ["lunes", "miércoles"], "horaInicio": "08:00", "horaFin": "14:00", "duracionMinutos": 30},
					{"dias": ["viernes"], "desde": "09:00", "hasta": "12:00", "duracionConsulta": 20}
				]
			}
		]
	}`

	var dto providerDTO
	require.NoError(t, json.Unmarshal([]byte(payload), &dto))

	provider, err := dto.toDomain()
	require.NoError(t, err)

	assert.Equal(t, "Dra. Gomez", provider.Name)
	assert.Equal(t, []string{"clinica", "pediatria"}, provider.Specialties)
	assert.Equal(t, "2024-01-15", provider.Lifecycle.EffectiveStart.String())
	require.Len(t, provider.Locations, 1)
	require.Len(t, provider.Locations[0].Schedule, 2)

	// Accented day names normalize to the same weekday as unaccented ones.
	assert.True(t, provider.Locations[0].Schedule[0].Days.Contains(domain.WeekdayWednesday))
	assert.Equal(t, 20, provider.Locations[0].Schedule[1].SlotDurationMinutes)
}

func TestAffiliateDTOToDomain(t *testing.T) {
	baja := "2026-12-31"
	dto := affiliateDTO{
		Nombre:      "Familia Perez",
		Plan:        "plan-310",
		Integrantes: []memberDTO{{Nombre: "Juan Perez", lifecycleDTO: lifecycleDTO{FechaAlta: "2024-02-01"}}},
		lifecycleDTO: lifecycleDTO{
			FechaAlta: "2024-02-01",
			FechaBaja: &baja,
		},
	}

	affiliate, err := dto.toDomain()
	require.NoError(t, err)

	assert.Equal(t, "plan-310", affiliate.PlanRef)
	require.NotNil(t, affiliate.Lifecycle.EffectiveEnd)
	require.Len(t, affiliate.Members, 1)
	assert.Equal(t, "Juan Perez", affiliate.Members[0].Name)
	assert.Nil(t, affiliate.Members[0].Lifecycle.EffectiveEnd)
}
