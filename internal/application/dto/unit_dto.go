package dto

import (
	"time"

	"github.com/jhoicas/estatedesk-api/internal/domain/entity"
)

// CreateUnitRequest entrada para crear una unidad en un edificio.
type CreateUnitRequest struct {
	BuildingID int64   `json:"building_id" validate:"required,gt=0"`
	Name       string  `json:"name" validate:"required,max=255"`
	Type       string  `json:"type" validate:"required,max=255"`
	Address    string  `json:"address" validate:"required,max=255"`
	Postcode   *string `json:"postcode" validate:"omitempty,max=10"`
	Vacancy    string  `json:"vacancy" validate:"omitempty,oneof=available pending"`
}

// UpdateVacancyRequest cambio manual de ocupación.
type UpdateVacancyRequest struct {
	Vacancy string `json:"vacancy" validate:"required,oneof=available unavailable pending"`
}

// UnitResponse salida de una unidad.
type UnitResponse struct {
	ID         int64     `json:"id"`
	Name       string    `json:"name"`
	Slug       string    `json:"slug"`
	Type       string    `json:"type"`
	Address    string    `json:"address"`
	Postcode   *string   `json:"postcode,omitempty"`
	BuildingID int64     `json:"building_id"`
	Vacancy    string    `json:"vacancy"`
	CreatedAt  time.Time `json:"created_at"`
}

// UnitDetailResponse unidad con su cadena edificio/zona e inquilinos.
type UnitDetailResponse struct {
	UnitResponse
	Building      BuildingResponse `json:"building"`
	Zone          ZoneResponse     `json:"zone"`
	Tenants       []TenantResponse `json:"tenants"`
	CurrentTenant *TenantResponse  `json:"current_tenant,omitempty"`
}

// UnitListItem fila del listado de unidades.
type UnitListItem struct {
	UnitResponse
	BuildingName  string `json:"building_name"`
	BuildingSlug  string `json:"building_slug"`
	ZoneName      string `json:"zone_name"`
	ZoneSlug      string `json:"zone_slug"`
	ActiveTenants int    `json:"active_tenants"`
}

// UnitStats agregados del listado de unidades.
type UnitStats struct {
	TotalUnits     int `json:"total_units"`
	AvailableUnits int `json:"available_units"`
	OccupancyRate  int `json:"occupancy_rate"`
}

// UnitListResponse listado de unidades con estadísticas y tipos distintos.
type UnitListResponse struct {
	Items []UnitListItem `json:"items"`
	Stats UnitStats      `json:"stats"`
	Types []string       `json:"types"`
	Sort  SortState      `json:"sort"`
}

// UnitListQuery parámetros del listado de unidades.
type UnitListQuery struct {
	ListQuery
	BuildingID int64  `query:"building_id" validate:"omitempty,gt=0"`
	ZoneID     int64  `query:"zone_id" validate:"omitempty,gt=0"`
	Vacancy    string `query:"vacancy" validate:"omitempty,oneof=available unavailable pending"`
	Type       string `query:"type" validate:"omitempty,max=255"`
}

// NewUnitResponse mapea la entidad a la respuesta.
func NewUnitResponse(u *entity.Unit) UnitResponse {
	return UnitResponse{
		ID: u.ID, Name: u.Name, Slug: u.Slug, Type: u.Type, Address: u.Address,
		Postcode: u.Postcode, BuildingID: u.BuildingID, Vacancy: string(u.Vacancy), CreatedAt: u.CreatedAt,
	}
}
