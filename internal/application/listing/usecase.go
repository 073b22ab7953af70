// Package listing listados de edificios, unidades e inquilinos con búsqueda, filtros,
// orden y estadísticas de cartera.
package listing

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/estatedesk-api/internal/application/dto"
	"github.com/jhoicas/estatedesk-api/internal/domain/entity"
	"github.com/jhoicas/estatedesk-api/internal/domain/occupancy"
	"github.com/jhoicas/estatedesk-api/internal/domain/repository"
)

// DefaultPageSize filas por listado (siempre las primeras N).
const DefaultPageSize = 12

// Stats agregados que acompañan a cada listado.
type Stats interface {
	Buildings(ctx context.Context) (*dto.BuildingStats, error)
	Units(ctx context.Context) (*dto.UnitStats, error)
	Tenants(ctx context.Context) (*dto.TenantStats, error)
}

// UseCase listados de la cartera.
type UseCase struct {
	listingRepo repository.ListingRepository
	stats       Stats
	pageSize    int
}

// NewUseCase construye el caso de uso. pageSize <= 0 usa DefaultPageSize.
func NewUseCase(listingRepo repository.ListingRepository, stats Stats, pageSize int) *UseCase {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &UseCase{listingRepo: listingRepo, stats: stats, pageSize: pageSize}
}

// Buildings listado de edificios; filas y estadísticas se consultan en paralelo.
func (uc *UseCase) Buildings(ctx context.Context, q dto.BuildingListQuery) (*dto.BuildingListResponse, error) {
	sort := BuildingFields.Resolve(q.ListQuery)
	filter := repository.BuildingFilter{
		Search: strings.TrimSpace(q.Search),
		ZoneID: optionalID(q.ZoneID),
		Sort:   sort,
		Limit:  uc.pageSize,
	}

	type rowsResult struct {
		rows []*repository.BuildingRow
		err  error
	}
	type statsResult struct {
		stats *dto.BuildingStats
		err   error
	}
	rowsCh := make(chan rowsResult, 1)
	statsCh := make(chan statsResult, 1)
	go func() {
		rows, err := uc.listingRepo.ListBuildings(ctx, filter)
		rowsCh <- rowsResult{rows, err}
	}()
	go func() {
		s, err := uc.stats.Buildings(ctx)
		statsCh <- statsResult{s, err}
	}()
	rows, stats := <-rowsCh, <-statsCh
	if rows.err != nil {
		return nil, fmt.Errorf("listing: edificios: %w", rows.err)
	}
	if stats.err != nil {
		return nil, stats.err
	}

	out := &dto.BuildingListResponse{
		Items: make([]dto.BuildingListItem, 0, len(rows.rows)),
		Stats: *stats.stats,
		Sort:  sortState(sort),
	}
	for _, r := range rows.rows {
		b := r.Building
		out.Items = append(out.Items, dto.BuildingListItem{
			BuildingResponse: dto.NewBuildingResponse(&b),
			ZoneName:         r.ZoneName,
			ZoneSlug:         r.ZoneSlug,
			UnitsCount:       r.UnitsCount,
			OccupiedUnits:    r.OccupiedCount,
			OccupancyRate:    occupancy.Rate(r.OccupiedCount, r.UnitsCount),
		})
	}
	return out, nil
}

// Units listado de unidades con estadísticas y tipos distintos.
func (uc *UseCase) Units(ctx context.Context, q dto.UnitListQuery) (*dto.UnitListResponse, error) {
	sort := UnitFields.Resolve(q.ListQuery)
	filter := repository.UnitFilter{
		Search:     strings.TrimSpace(q.Search),
		BuildingID: optionalID(q.BuildingID),
		ZoneID:     optionalID(q.ZoneID),
		Vacancy:    entity.Vacancy(q.Vacancy),
		Type:       q.Type,
		Sort:       sort,
		Limit:      uc.pageSize,
	}

	type rowsResult struct {
		rows []*repository.UnitRow
		err  error
	}
	type statsResult struct {
		stats *dto.UnitStats
		err   error
	}
	type typesResult struct {
		types []string
		err   error
	}
	rowsCh := make(chan rowsResult, 1)
	statsCh := make(chan statsResult, 1)
	typesCh := make(chan typesResult, 1)
	go func() {
		rows, err := uc.listingRepo.ListUnits(ctx, filter)
		rowsCh <- rowsResult{rows, err}
	}()
	go func() {
		s, err := uc.stats.Units(ctx)
		statsCh <- statsResult{s, err}
	}()
	go func() {
		t, err := uc.listingRepo.UnitTypes(ctx)
		typesCh <- typesResult{t, err}
	}()
	rows, stats, types := <-rowsCh, <-statsCh, <-typesCh
	if rows.err != nil {
		return nil, fmt.Errorf("listing: unidades: %w", rows.err)
	}
	if stats.err != nil {
		return nil, stats.err
	}
	if types.err != nil {
		return nil, fmt.Errorf("listing: tipos de unidad: %w", types.err)
	}

	out := &dto.UnitListResponse{
		Items: make([]dto.UnitListItem, 0, len(rows.rows)),
		Stats: *stats.stats,
		Types: types.types,
		Sort:  sortState(sort),
	}
	if out.Types == nil {
		out.Types = []string{}
	}
	for _, r := range rows.rows {
		u := r.Unit
		out.Items = append(out.Items, dto.UnitListItem{
			UnitResponse:  dto.NewUnitResponse(&u),
			BuildingName:  r.BuildingName,
			BuildingSlug:  r.BuildingSlug,
			ZoneName:      r.ZoneName,
			ZoneSlug:      r.ZoneSlug,
			ActiveTenants: r.ActiveTenants,
		})
	}
	return out, nil
}

// Tenants listado de inquilinos con banderas de contrato y estado del portal.
func (uc *UseCase) Tenants(ctx context.Context, q dto.TenantListQuery) (*dto.TenantListResponse, error) {
	sort := TenantFields.Resolve(q.ListQuery)
	filter := repository.TenantFilter{
		Search:     strings.TrimSpace(q.Search),
		BuildingID: optionalID(q.BuildingID),
		ZoneID:     optionalID(q.ZoneID),
		Status:     entity.TenantStatus(q.Status),
		Portal:     repository.PortalFilter(q.Portal),
		Sort:       sort,
		Limit:      uc.pageSize,
	}

	type rowsResult struct {
		rows []*repository.TenantRow
		err  error
	}
	type statsResult struct {
		stats *dto.TenantStats
		err   error
	}
	rowsCh := make(chan rowsResult, 1)
	statsCh := make(chan statsResult, 1)
	go func() {
		rows, err := uc.listingRepo.ListTenants(ctx, filter)
		rowsCh <- rowsResult{rows, err}
	}()
	go func() {
		s, err := uc.stats.Tenants(ctx)
		statsCh <- statsResult{s, err}
	}()
	rows, stats := <-rowsCh, <-statsCh
	if rows.err != nil {
		return nil, fmt.Errorf("listing: inquilinos: %w", rows.err)
	}
	if stats.err != nil {
		return nil, stats.err
	}

	now := time.Now()
	out := &dto.TenantListResponse{
		Items: make([]dto.TenantListItem, 0, len(rows.rows)),
		Stats: *stats.stats,
		Sort:  sortState(sort),
	}
	for _, r := range rows.rows {
		t := r.Tenant
		out.Items = append(out.Items, dto.TenantListItem{
			TenantResponse:  dto.NewTenantResponse(&t, now),
			UnitName:        r.UnitName,
			UnitSlug:        r.UnitSlug,
			BuildingName:    r.BuildingName,
			BuildingSlug:    r.BuildingSlug,
			ZoneName:        r.ZoneName,
			ZoneSlug:        r.ZoneSlug,
			HasPortalAccess: r.HasPortalAccess,
		})
	}
	return out, nil
}

func optionalID(id int64) *int64 {
	if id <= 0 {
		return nil
	}
	return &id
}
