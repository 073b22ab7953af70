package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/estatedesk-api/internal/domain/entity"
)

// SortDir dirección de ordenamiento.
type SortDir string

const (
	Asc  SortDir = "asc"
	Desc SortDir = "desc"
)

// Sort campo y dirección de ordenamiento de un listado.
type Sort struct {
	Field string
	Dir   SortDir
}

// PortalFilter filtro por existencia de cuenta de portal.
type PortalFilter string

const (
	PortalAny     PortalFilter = ""
	PortalHasUser PortalFilter = "has_user"
	PortalNoUser  PortalFilter = "no_user"
)

// BuildingFilter criterios del listado de edificios.
type BuildingFilter struct {
	Search string
	ZoneID *int64
	Sort   Sort
	Limit  int
}

// BuildingRow fila del listado de edificios con conteos de unidades.
type BuildingRow struct {
	Building      entity.Building
	ZoneName      string
	ZoneSlug      string
	UnitsCount    int
	OccupiedCount int
}

// UnitFilter criterios del listado de unidades.
type UnitFilter struct {
	Search     string
	BuildingID *int64
	ZoneID     *int64
	Vacancy    entity.Vacancy
	Type       string
	Sort       Sort
	Limit      int
}

// UnitRow fila del listado de unidades con su cadena edificio/zona.
type UnitRow struct {
	Unit          entity.Unit
	BuildingName  string
	BuildingSlug  string
	ZoneName      string
	ZoneSlug      string
	ActiveTenants int
}

// TenantFilter criterios del listado de inquilinos.
type TenantFilter struct {
	Search     string
	BuildingID *int64
	ZoneID     *int64
	Status     entity.TenantStatus
	Portal     PortalFilter
	Sort       Sort
	Limit      int
}

// TenantRow fila del listado de inquilinos con su cadena unidad/edificio/zona.
type TenantRow struct {
	Tenant          entity.Tenant
	UnitName        string
	UnitSlug        string
	BuildingName    string
	BuildingSlug    string
	ZoneName        string
	ZoneSlug        string
	HasPortalAccess bool
}

// ListingRepository consultas read-only de los listados con búsqueda, filtros y orden.
type ListingRepository interface {
	ListBuildings(ctx context.Context, f BuildingFilter) ([]*BuildingRow, error)
	ListUnits(ctx context.Context, f UnitFilter) ([]*UnitRow, error)
	ListTenants(ctx context.Context, f TenantFilter) ([]*TenantRow, error)
	UnitTypes(ctx context.Context) ([]string, error)
}

// StatsRepository agregados sobre las tablas completas (no sobre el listado filtrado).
type StatsRepository interface {
	CountBuildings(ctx context.Context) (int, error)
	// CountUnits cuenta unidades; vacancy vacío = todas.
	CountUnits(ctx context.Context, vacancy entity.Vacancy) (int, error)
	// CountTenants cuenta inquilinos; status vacío = todos.
	CountTenants(ctx context.Context, status entity.TenantStatus) (int, error)
	// AverageRent renta promedio de los inquilinos con el estado dado; cero si no hay.
	AverageRent(ctx context.Context, status entity.TenantStatus) (decimal.Decimal, error)
}
