package dto

import (
	"time"

	"github.com/jhoicas/estatedesk-api/internal/domain/entity"
)

// CreateBuildingRequest entrada para crear un edificio en una zona.
type CreateBuildingRequest struct {
	ZoneID int64   `json:"zone_id" validate:"required,gt=0"`
	Name   string  `json:"name" validate:"required,max=255"`
	Street *string `json:"street" validate:"omitempty,max=255"`
}

// BuildingResponse salida de un edificio.
type BuildingResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	Street    *string   `json:"street,omitempty"`
	ZoneID    int64     `json:"zone_id"`
	CreatedAt time.Time `json:"created_at"`
}

// BuildingDetailResponse edificio con su zona y unidades.
type BuildingDetailResponse struct {
	BuildingResponse
	Zone          ZoneResponse   `json:"zone"`
	Units         []UnitResponse `json:"units"`
	OccupancyRate int            `json:"occupancy_rate"`
}

// BuildingListItem fila del listado de edificios.
type BuildingListItem struct {
	BuildingResponse
	ZoneName      string `json:"zone_name"`
	ZoneSlug      string `json:"zone_slug"`
	UnitsCount    int    `json:"units_count"`
	OccupiedUnits int    `json:"occupied_units"`
	OccupancyRate int    `json:"occupancy_rate"`
}

// BuildingStats agregados del listado de edificios.
type BuildingStats struct {
	TotalBuildings   int `json:"total_buildings"`
	TotalUnits       int `json:"total_units"`
	AverageOccupancy int `json:"average_occupancy"`
}

// BuildingListResponse listado de edificios con estadísticas.
type BuildingListResponse struct {
	Items []BuildingListItem `json:"items"`
	Stats BuildingStats      `json:"stats"`
	Sort  SortState          `json:"sort"`
}

// BuildingListQuery parámetros del listado de edificios.
type BuildingListQuery struct {
	ListQuery
	ZoneID int64 `query:"zone_id" validate:"omitempty,gt=0"`
}

// NewBuildingResponse mapea la entidad a la respuesta.
func NewBuildingResponse(b *entity.Building) BuildingResponse {
	return BuildingResponse{ID: b.ID, Name: b.Name, Slug: b.Slug, Street: b.Street, ZoneID: b.ZoneID, CreatedAt: b.CreatedAt}
}
