package directory

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/redsalud/agenda-engine/internal/core/domain"
)

// The directory API still serves the legacy record shapes, where the same
// field appears under different names depending on which form wrote it
// (horaInicio vs desde, duracionMinutos vs duracionConsulta, accented and
// unaccented day names). These DTOs absorb every variant here at the
// boundary; the engine only ever sees the canonical domain types.

type scheduleEntryDTO struct {
	Dias             []string `json:"dias"`
	HoraInicio       string   `json:"horaInicio"`
	Desde            string   `json:"desde"`
	HoraFin          string   `json:"horaFin"`
	Hasta            string   `json:"hasta"`
	DuracionMinutos  int      `json:"duracionMinutos"`
	DuracionConsulta int      `json:"duracionConsulta"`
	Especialidad     string   `json:"especialidad"`
}

func (d scheduleEntryDTO) toDomain() (domain.ScheduleEntry, error) {
	start := d.HoraInicio
	if start == "" {
		start = d.Desde
	}

	end := d.HoraFin
	if end == "" {
		end = d.Hasta
	}

	duration := d.DuracionMinutos
	if duration == 0 {
		duration = d.DuracionConsulta
	}

	return domain.NewScheduleEntry(d.Dias, start, end, duration, d.Especialidad)
}

type locationDTO struct {
	Direccion string             `json:"direccion"`
	Agenda    []scheduleEntryDTO `json:"agenda"`
}

func (d locationDTO) toDomain() (domain.Location, error) {
	schedule := make([]domain.ScheduleEntry, 0, len(d.Agenda))
	for i, raw := range d.Agenda {
		entry, err := raw.toDomain()
		if err != nil {
			return domain.Location{}, fmt.Errorf("agenda[%d]: %w", i, err)
		}
		schedule = append(schedule, entry)
	}

	return domain.Location{
		Address:  d.Direccion,
		Schedule: schedule,
	}, nil
}

type lifecycleDTO struct {
	FechaAlta string  `json:"fechaAlta"`
	FechaBaja *string `json:"fechaBaja,omitempty"`
}

func (d lifecycleDTO) toDomain() (domain.LifecycleRecord, error) {
	start, err := domain.ParseDate(d.FechaAlta)
	if err != nil {
		return domain.LifecycleRecord{}, fmt.Errorf("fechaAlta: %w", err)
	}

	record := domain.LifecycleRecord{EffectiveStart: start}

	if d.FechaBaja != nil {
		end, err := domain.ParseDate(*d.FechaBaja)
		if err != nil {
			return domain.LifecycleRecord{}, fmt.Errorf("fechaBaja: %w", err)
		}
		record.EffectiveEnd = &end
	}

	return record, nil
}

type providerDTO struct {
	ID             uuid.UUID     `json:"id"`
	Nombre         string        `json:"nombre"`
	Especialidades []string      `json:"especialidades"`
	Lugares        []locationDTO `json:"lugaresDeAtencion"`
	lifecycleDTO
}

func (d providerDTO) toDomain() (*domain.Provider, error) {
	lifecycle, err := d.lifecycleDTO.toDomain()
	if err != nil {
		return nil, err
	}

	locations := make([]domain.Location, 0, len(d.Lugares))
	for i, raw := range d.Lugares {
		location, err := raw.toDomain()
		if err != nil {
			return nil, fmt.Errorf("lugaresDeAtencion[%d]: %w", i, err)
		}
		locations = append(locations, location)
	}

	return &domain.Provider{
		ID:          d.ID,
		Name:        d.Nombre,
		Specialties: d.Especialidades,
		Locations:   locations,
		Lifecycle:   lifecycle,
	}, nil
}

type memberDTO struct {
	ID     uuid.UUID `json:"id"`
	Nombre string    `json:"nombre"`
	lifecycleDTO
}

type affiliateDTO struct {
	ID          uuid.UUID   `json:"id"`
	Nombre      string      `json:"nombre"`
	Plan        string      `json:"plan"`
	Integrantes []memberDTO `json:"integrantes"`
	lifecycleDTO
}

func (d affiliateDTO) toDomain() (*domain.Affiliate, error) {
	lifecycle, err := d.lifecycleDTO.toDomain()
	if err != nil {
		return nil, err
	}

	members := make([]domain.Member, 0, len(d.Integrantes))
	for i, raw := range d.Integrantes {
		memberLifecycle, err := raw.lifecycleDTO.toDomain()
		if err != nil {
			return nil, fmt.Errorf("integrantes[%d]: %w", i, err)
		}
		members = append(members, domain.Member{
			ID:        raw.ID,
			Name:      raw.Nombre,
			Lifecycle: memberLifecycle,
		})
	}

	return &domain.Affiliate{
		ID:        d.ID,
		Name:      d.Nombre,
		PlanRef:   d.Plan,
		Lifecycle: lifecycle,
		Members:   members,
	}, nil
}
