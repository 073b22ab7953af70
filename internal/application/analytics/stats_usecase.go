// Package analytics estadísticas de cartera que acompañan a los listados de edificios,
// unidades e inquilinos. Siempre se calculan sobre las tablas completas.
package analytics

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/estatedesk-api/internal/application/dto"
	"github.com/jhoicas/estatedesk-api/internal/domain/entity"
	"github.com/jhoicas/estatedesk-api/internal/domain/occupancy"
	"github.com/jhoicas/estatedesk-api/internal/domain/repository"
)

// StatsUseCase agregados por listado.
//
// Fuente de datos: StatsRepository (consultas read-only). Las consultas de cada
// listado corren en paralelo.
type StatsUseCase struct {
	statsRepo repository.StatsRepository
}

// NewStatsUseCase construye el caso de uso.
func NewStatsUseCase(statsRepo repository.StatsRepository) *StatsUseCase {
	return &StatsUseCase{statsRepo: statsRepo}
}

type countResult struct {
	n   int
	err error
}

func (uc *StatsUseCase) count(fn func() (int, error)) <-chan countResult {
	ch := make(chan countResult, 1)
	go func() {
		n, err := fn()
		ch <- countResult{n, err}
	}()
	return ch
}

// Buildings total de edificios, total de unidades y ocupación promedio (unidades no
// disponibles sobre el total de unidades).
func (uc *StatsUseCase) Buildings(ctx context.Context) (*dto.BuildingStats, error) {
	buildingsCh := uc.count(func() (int, error) { return uc.statsRepo.CountBuildings(ctx) })
	unitsCh := uc.count(func() (int, error) { return uc.statsRepo.CountUnits(ctx, "") })
	occupiedCh := uc.count(func() (int, error) { return uc.statsRepo.CountUnits(ctx, entity.VacancyUnavailable) })

	buildings, units, occupied := <-buildingsCh, <-unitsCh, <-occupiedCh
	if buildings.err != nil {
		return nil, fmt.Errorf("stats: edificios: %w", buildings.err)
	}
	if units.err != nil {
		return nil, fmt.Errorf("stats: unidades: %w", units.err)
	}
	if occupied.err != nil {
		return nil, fmt.Errorf("stats: unidades ocupadas: %w", occupied.err)
	}
	return &dto.BuildingStats{
		TotalBuildings:   buildings.n,
		TotalUnits:       units.n,
		AverageOccupancy: occupancy.Rate(occupied.n, units.n),
	}, nil
}

// Units total de unidades, disponibles y tasa de ocupación.
func (uc *StatsUseCase) Units(ctx context.Context) (*dto.UnitStats, error) {
	totalCh := uc.count(func() (int, error) { return uc.statsRepo.CountUnits(ctx, "") })
	availableCh := uc.count(func() (int, error) { return uc.statsRepo.CountUnits(ctx, entity.VacancyAvailable) })
	occupiedCh := uc.count(func() (int, error) { return uc.statsRepo.CountUnits(ctx, entity.VacancyUnavailable) })

	total, available, occupied := <-totalCh, <-availableCh, <-occupiedCh
	for _, r := range []countResult{total, available, occupied} {
		if r.err != nil {
			return nil, fmt.Errorf("stats: unidades: %w", r.err)
		}
	}
	return &dto.UnitStats{
		TotalUnits:     total.n,
		AvailableUnits: available.n,
		OccupancyRate:  occupancy.Rate(occupied.n, total.n),
	}, nil
}

// Tenants total de inquilinos, activos y renta promedio de los activos (2 decimales).
func (uc *StatsUseCase) Tenants(ctx context.Context) (*dto.TenantStats, error) {
	type rentResult struct {
		avg decimal.Decimal
		err error
	}
	totalCh := uc.count(func() (int, error) { return uc.statsRepo.CountTenants(ctx, "") })
	activeCh := uc.count(func() (int, error) { return uc.statsRepo.CountTenants(ctx, entity.TenantActive) })
	rentCh := make(chan rentResult, 1)
	go func() {
		avg, err := uc.statsRepo.AverageRent(ctx, entity.TenantActive)
		rentCh <- rentResult{avg, err}
	}()

	total, active, rent := <-totalCh, <-activeCh, <-rentCh
	if total.err != nil {
		return nil, fmt.Errorf("stats: inquilinos: %w", total.err)
	}
	if active.err != nil {
		return nil, fmt.Errorf("stats: inquilinos activos: %w", active.err)
	}
	if rent.err != nil {
		return nil, fmt.Errorf("stats: renta promedio: %w", rent.err)
	}
	return &dto.TenantStats{
		TotalTenants:  total.n,
		ActiveTenants: active.n,
		AverageRent:   rent.avg.Round(2),
	}, nil
}
