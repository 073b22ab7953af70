package dto

import (
	"time"

	"github.com/jhoicas/estatedesk-api/internal/domain/entity"
)

// CreateZoneRequest entrada para crear una zona.
type CreateZoneRequest struct {
	Name string `json:"name" validate:"required,max=255"`
}

// ZoneResponse salida de una zona.
type ZoneResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	CreatedAt time.Time `json:"created_at"`
}

// ZoneDetailResponse zona con sus edificios.
type ZoneDetailResponse struct {
	ZoneResponse
	Buildings []BuildingResponse `json:"buildings"`
}

// NewZoneResponse mapea la entidad a la respuesta.
func NewZoneResponse(z *entity.Zone) ZoneResponse {
	return ZoneResponse{ID: z.ID, Name: z.Name, Slug: z.Slug, CreatedAt: z.CreatedAt}
}
