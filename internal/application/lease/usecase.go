// Package lease ciclo de vida de los inquilinos: alta, cambio de estado y baja.
// Toda verificación de ocupación se hace en la misma transacción que la escritura,
// con la fila de la unidad bloqueada.
package lease

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/estatedesk-api/internal/application/dto"
	"github.com/jhoicas/estatedesk-api/internal/domain"
	"github.com/jhoicas/estatedesk-api/internal/domain/entity"
	"github.com/jhoicas/estatedesk-api/internal/domain/occupancy"
	"github.com/jhoicas/estatedesk-api/internal/domain/repository"
	"github.com/jhoicas/estatedesk-api/pkg/logger"
)

const dateLayout = "2006-01-02"

var maxRent = decimal.RequireFromString("999999.99")

// TenantUseCase casos de uso del inquilino.
type TenantUseCase struct {
	repos   repository.Repos
	tx      repository.TxRunner
	metrics TransitionRecorder
	log     *logger.Logger
}

// NewTenantUseCase construye el caso de uso. metrics puede ser nil.
func NewTenantUseCase(repos repository.Repos, tx repository.TxRunner, metrics TransitionRecorder, log *logger.Logger) *TenantUseCase {
	if metrics == nil {
		metrics = nopRecorder{}
	}
	return &TenantUseCase{repos: repos, tx: tx, metrics: metrics, log: log.Component("lease")}
}

// Create registra un inquilino en la unidad. Un inquilino activo en una unidad ya ocupada
// devuelve ErrUnitOccupied sin cambios; si es activo la unidad pasa a unavailable.
func (uc *TenantUseCase) Create(ctx context.Context, unitID int64, in dto.CreateTenantRequest) (*dto.TenantResponse, error) {
	t, err := tenantFromRequest(unitID, in)
	if err != nil {
		return nil, err
	}
	err = uc.tx.Run(ctx, func(r repository.Repos) error {
		unit, err := r.Units.GetForUpdate(ctx, unitID)
		if err != nil {
			return err
		}
		if unit == nil {
			return domain.ErrNotFound
		}
		active, err := r.Tenants.CountActiveByUnit(ctx, unitID, 0)
		if err != nil {
			return err
		}
		if err := occupancy.CanAdmit(active, t.Status); err != nil {
			return err
		}
		if err := r.Tenants.Create(ctx, t); err != nil {
			return err
		}
		if t.IsActive() {
			return r.Units.UpdateVacancy(ctx, unitID, occupancy.Derive(active+1))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.metrics.TenantTransition("none", string(t.Status))
	uc.log.Info().Int64("tenant_id", t.ID).Int64("unit_id", unitID).Str("status", string(t.Status)).Msg("inquilino creado")
	out := dto.NewTenantResponse(t, time.Now())
	return &out, nil
}

// ChangeStatus cambia el estado del inquilino y recalcula la ocupación de su unidad.
func (uc *TenantUseCase) ChangeStatus(ctx context.Context, tenantID int64, in dto.ChangeTenantStatusRequest) (*dto.ActionResult, error) {
	next := entity.TenantStatus(in.Status)
	if !next.Valid() {
		return nil, validationError("status", "must be one of active, inactive, terminated")
	}
	var prev entity.TenantStatus
	err := uc.tx.Run(ctx, func(r repository.Repos) error {
		t, err := r.Tenants.GetByID(ctx, tenantID)
		if err != nil {
			return err
		}
		if t == nil {
			return domain.ErrNotFound
		}
		if _, err := r.Units.GetForUpdate(ctx, t.UnitID); err != nil {
			return err
		}
		prev = t.Status
		others, err := r.Tenants.CountActiveByUnit(ctx, t.UnitID, t.ID)
		if err != nil {
			return err
		}
		if err := occupancy.CanAdmit(others, next); err != nil {
			return err
		}
		if err := r.Tenants.UpdateStatus(ctx, t.ID, next); err != nil {
			return err
		}
		active := others
		if next == entity.TenantActive {
			active++
		}
		return r.Units.UpdateVacancy(ctx, t.UnitID, occupancy.Derive(active))
	})
	if err != nil {
		return nil, err
	}
	uc.metrics.TenantTransition(string(prev), string(next))
	uc.log.Info().Int64("tenant_id", tenantID).Str("from", string(prev)).Str("to", string(next)).Msg("estado de inquilino actualizado")
	return &dto.ActionResult{Message: fmt.Sprintf("Tenant status updated from %s to %s.", prev, next)}, nil
}

// Delete borra el inquilino (y su cuenta de portal) y recalcula la ocupación de la unidad.
func (uc *TenantUseCase) Delete(ctx context.Context, tenantID int64) (*dto.ActionResult, error) {
	var name string
	err := uc.tx.Run(ctx, func(r repository.Repos) error {
		t, err := r.Tenants.GetByID(ctx, tenantID)
		if err != nil {
			return err
		}
		if t == nil {
			return domain.ErrNotFound
		}
		if _, err := r.Units.GetForUpdate(ctx, t.UnitID); err != nil {
			return err
		}
		name = t.FullName()
		if err := r.Tenants.Delete(ctx, t.ID); err != nil {
			return err
		}
		active, err := r.Tenants.CountActiveByUnit(ctx, t.UnitID, 0)
		if err != nil {
			return err
		}
		return r.Units.UpdateVacancy(ctx, t.UnitID, occupancy.Derive(active))
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Int64("tenant_id", tenantID).Msg("inquilino eliminado")
	return &dto.ActionResult{Message: fmt.Sprintf("Tenant %s deleted.", name)}, nil
}

// Get inquilino con su cadena unidad/edificio/zona, banderas de contrato y estado del portal.
func (uc *TenantUseCase) Get(ctx context.Context, tenantID int64) (*dto.TenantDetailResponse, error) {
	t, err := uc.repos.Tenants.GetByID(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, domain.ErrNotFound
	}
	unit, err := uc.repos.Units.GetByID(ctx, t.UnitID)
	if err != nil {
		return nil, err
	}
	if unit == nil {
		return nil, domain.ErrNotFound
	}
	b, err := uc.repos.Buildings.GetByID(ctx, unit.BuildingID)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, domain.ErrNotFound
	}
	z, err := uc.repos.Zones.GetByID(ctx, b.ZoneID)
	if err != nil {
		return nil, err
	}
	if z == nil {
		return nil, domain.ErrNotFound
	}
	user, err := uc.repos.Users.GetByTenantID(ctx, t.ID)
	if err != nil {
		return nil, err
	}
	return &dto.TenantDetailResponse{
		TenantResponse:  dto.NewTenantResponse(t, time.Now()),
		Unit:            dto.NewUnitResponse(unit),
		Building:        dto.NewBuildingResponse(b),
		Zone:            dto.NewZoneResponse(z),
		HasPortalAccess: user != nil,
		PortalUser:      dto.NewUserResponse(user),
	}, nil
}

// tenantFromRequest valida la entrada y construye la entidad.
func tenantFromRequest(unitID int64, in dto.CreateTenantRequest) (*entity.Tenant, error) {
	verr := domain.NewValidationError()
	t := &entity.Tenant{
		FirstName: strings.TrimSpace(in.FirstName),
		LastName:  strings.TrimSpace(in.LastName),
		Email:     strings.ToLower(strings.TrimSpace(in.Email)),
		UnitID:    unitID,
		Rent:      in.Rent,
		Status:    entity.TenantStatus(in.Status),
		Title:     trimmedOrNil(in.Title),
		Phone:     trimmedOrNil(in.Phone),
	}
	if t.Status == "" {
		t.Status = entity.TenantActive
	}
	if !t.Status.Valid() {
		verr.Add("status", "must be one of active, inactive, terminated")
	}
	if t.FirstName == "" {
		verr.Add("first_name", "is required")
	}
	if t.LastName == "" {
		verr.Add("last_name", "is required")
	}
	if t.Email == "" {
		verr.Add("email", "is required")
	}
	if t.Rent.IsNegative() || t.Rent.GreaterThan(maxRent) {
		verr.Add("rent", "must be between 0 and 999999.99")
	}
	t.Rent = t.Rent.Round(2)

	t.LeaseStartDate = optionalDate(verr, "lease_start_date", in.LeaseStartDate)
	t.LeaseEndDate = optionalDate(verr, "lease_end_date", in.LeaseEndDate)
	if t.LeaseStartDate != nil && t.LeaseEndDate != nil && t.LeaseEndDate.Before(*t.LeaseStartDate) {
		verr.Add("lease_end_date", "must be on or after the lease start date")
	}
	if in.RentDueDate != nil && *in.RentDueDate != "" {
		due, err := time.Parse(dateLayout, *in.RentDueDate)
		if err != nil {
			verr.Add("rent_due_date", "must be a date (YYYY-MM-DD)")
		} else {
			t.RentDueDate = &due
		}
	}
	if err := verr.OrNil(); err != nil {
		return nil, err
	}
	return t, nil
}

func trimmedOrNil(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

func validationError(field, msg string) error {
	verr := domain.NewValidationError()
	verr.Add(field, msg)
	return verr
}

// optionalDate interpreta una fecha YYYY-MM-DD opcional; vacía devuelve nil.
func optionalDate(verr *domain.ValidationError, field, raw string) *time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	d, err := time.Parse(dateLayout, raw)
	if err != nil {
		verr.Add(field, "must be a date (YYYY-MM-DD)")
		return nil
	}
	return &d
}
