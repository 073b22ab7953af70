package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/estatedesk-api/internal/domain/entity"
	"github.com/jhoicas/estatedesk-api/internal/domain/occupancy"
)

// CreateTenantRequest entrada para registrar un inquilino en una unidad.
// Fechas en formato YYYY-MM-DD; las del contrato son opcionales.
type CreateTenantRequest struct {
	Title          *string         `json:"title" validate:"omitempty,max=10"`
	FirstName      string          `json:"first_name" validate:"required,max=255"`
	LastName       string          `json:"last_name" validate:"required,max=255"`
	Email          string          `json:"email" validate:"required,email,max=255"`
	Phone          *string         `json:"phone" validate:"omitempty,max=20"`
	Rent           decimal.Decimal `json:"rent"`
	LeaseStartDate string          `json:"lease_start_date" validate:"omitempty,datetime=2006-01-02"`
	LeaseEndDate   string          `json:"lease_end_date" validate:"omitempty,datetime=2006-01-02"`
	RentDueDate    *string         `json:"rent_due_date" validate:"omitempty,datetime=2006-01-02"`
	Status         string          `json:"status" validate:"omitempty,oneof=active inactive terminated"`
}

// ChangeTenantStatusRequest cambio de estado del inquilino.
type ChangeTenantStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=active inactive terminated"`
}

// TenantResponse salida de un inquilino con sus banderas de contrato.
type TenantResponse struct {
	ID                int64           `json:"id"`
	Title             *string         `json:"title,omitempty"`
	FirstName         string          `json:"first_name"`
	LastName          string          `json:"last_name"`
	FullName          string          `json:"full_name"`
	Email             string          `json:"email"`
	Phone             *string         `json:"phone,omitempty"`
	UnitID            int64           `json:"unit_id"`
	Rent              decimal.Decimal `json:"rent"`
	LeaseStartDate    *string         `json:"lease_start_date,omitempty"`
	LeaseEndDate      *string         `json:"lease_end_date,omitempty"`
	RentDueDate       *string         `json:"rent_due_date,omitempty"`
	Status            string          `json:"status"`
	LeaseExpiringSoon bool            `json:"lease_expiring_soon"`
	RentOverdue       bool            `json:"rent_overdue"`
	CreatedAt         time.Time       `json:"created_at"`
}

// TenantDetailResponse inquilino con su cadena unidad/edificio/zona y estado del portal.
type TenantDetailResponse struct {
	TenantResponse
	Unit            UnitResponse     `json:"unit"`
	Building        BuildingResponse `json:"building"`
	Zone            ZoneResponse     `json:"zone"`
	HasPortalAccess bool             `json:"has_portal_access"`
	PortalUser      *UserResponse    `json:"portal_user,omitempty"`
}

// TenantListItem fila del listado de inquilinos.
type TenantListItem struct {
	TenantResponse
	UnitName        string `json:"unit_name"`
	UnitSlug        string `json:"unit_slug"`
	BuildingName    string `json:"building_name"`
	BuildingSlug    string `json:"building_slug"`
	ZoneName        string `json:"zone_name"`
	ZoneSlug        string `json:"zone_slug"`
	HasPortalAccess bool   `json:"has_portal_access"`
}

// TenantStats agregados del listado de inquilinos.
type TenantStats struct {
	TotalTenants  int             `json:"total_tenants"`
	ActiveTenants int             `json:"active_tenants"`
	AverageRent   decimal.Decimal `json:"average_rent"`
}

// TenantListResponse listado de inquilinos con estadísticas.
type TenantListResponse struct {
	Items []TenantListItem `json:"items"`
	Stats TenantStats      `json:"stats"`
	Sort  SortState        `json:"sort"`
}

// TenantListQuery parámetros del listado de inquilinos.
type TenantListQuery struct {
	ListQuery
	BuildingID int64  `query:"building_id" validate:"omitempty,gt=0"`
	ZoneID     int64  `query:"zone_id" validate:"omitempty,gt=0"`
	Status     string `query:"status" validate:"omitempty,oneof=active inactive terminated"`
	Portal     string `query:"portal" validate:"omitempty,oneof=has_user no_user"`
}

// NewTenantResponse mapea la entidad a la respuesta calculando las banderas en now.
func NewTenantResponse(t *entity.Tenant, now time.Time) TenantResponse {
	flags := occupancy.FlagsFor(t, now)
	out := TenantResponse{
		ID:                t.ID,
		Title:             t.Title,
		FirstName:         t.FirstName,
		LastName:          t.LastName,
		FullName:          t.FullName(),
		Email:             t.Email,
		Phone:             t.Phone,
		UnitID:            t.UnitID,
		Rent:              t.Rent,
		LeaseStartDate:    formatDate(t.LeaseStartDate),
		LeaseEndDate:      formatDate(t.LeaseEndDate),
		RentDueDate:       formatDate(t.RentDueDate),
		Status:            string(t.Status),
		LeaseExpiringSoon: flags.LeaseExpiringSoon,
		RentOverdue:       flags.RentOverdue,
		CreatedAt:         t.CreatedAt,
	}
	return out
}

// formatDate fecha opcional en YYYY-MM-DD; nil si no hay fecha.
func formatDate(d *time.Time) *string {
	if d == nil {
		return nil
	}
	s := d.Format(dateLayout)
	return &s
}
