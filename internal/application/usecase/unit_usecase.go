package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/estatedesk-api/internal/application/dto"
	"github.com/jhoicas/estatedesk-api/internal/domain"
	"github.com/jhoicas/estatedesk-api/internal/domain/entity"
	"github.com/jhoicas/estatedesk-api/internal/domain/occupancy"
	"github.com/jhoicas/estatedesk-api/internal/domain/repository"
	"github.com/jhoicas/estatedesk-api/pkg/logger"
)

// UnitUseCase casos de uso de unidades.
type UnitUseCase struct {
	repos repository.Repos
	tx    repository.TxRunner
	blobs BlobRemover
	log   *logger.Logger
}

// NewUnitUseCase construye el caso de uso.
func NewUnitUseCase(repos repository.Repos, tx repository.TxRunner, blobs BlobRemover, log *logger.Logger) *UnitUseCase {
	return &UnitUseCase{repos: repos, tx: tx, blobs: blobs, log: log.Component("units")}
}

// Create crea una unidad en un edificio existente. La ocupación inicial es available o pending.
func (uc *UnitUseCase) Create(ctx context.Context, in dto.CreateUnitRequest) (*dto.UnitResponse, error) {
	verr := domain.NewValidationError()
	name := strings.TrimSpace(in.Name)
	if name == "" {
		verr.Add("name", "is required")
	}
	vacancy := entity.Vacancy(in.Vacancy)
	if vacancy == "" {
		vacancy = entity.VacancyAvailable
	}
	if vacancy != entity.VacancyAvailable && vacancy != entity.VacancyPending {
		verr.Add("vacancy", "must be available or pending")
	}
	if err := verr.OrNil(); err != nil {
		return nil, err
	}
	b, err := uc.repos.Buildings.GetByID(ctx, in.BuildingID)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, validationError("building_id", "building does not exist")
	}
	u := &entity.Unit{
		Name:       name,
		Type:       strings.TrimSpace(in.Type),
		Address:    strings.TrimSpace(in.Address),
		BuildingID: b.ID,
		Vacancy:    vacancy,
	}
	if in.Postcode != nil {
		if pc := strings.TrimSpace(*in.Postcode); pc != "" {
			u.Postcode = &pc
		}
	}
	source := entity.UnitSlugSource(name, b.Slug, time.Now())
	if u.Slug, err = uniqueSlug(ctx, source, "unit", uc.repos.Units.SlugExists); err != nil {
		return nil, err
	}
	if err := uc.repos.Units.Create(ctx, u); err != nil {
		return nil, err
	}
	out := dto.NewUnitResponse(u)
	return &out, nil
}

// GetBySlug unidad con su edificio, zona, inquilinos e inquilino actual.
func (uc *UnitUseCase) GetBySlug(ctx context.Context, slug string) (*dto.UnitDetailResponse, error) {
	u, err := uc.repos.Units.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.ErrNotFound
	}
	b, err := uc.repos.Buildings.GetByID(ctx, u.BuildingID)
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
	tenants, err := uc.repos.Tenants.ListByUnit(ctx, u.ID)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	out := &dto.UnitDetailResponse{
		UnitResponse: dto.NewUnitResponse(u),
		Building:     dto.NewBuildingResponse(b),
		Zone:         dto.NewZoneResponse(z),
		Tenants:      make([]dto.TenantResponse, 0, len(tenants)),
	}
	for _, t := range tenants {
		tr := dto.NewTenantResponse(t, now)
		out.Tenants = append(out.Tenants, tr)
		if t.IsActive() && out.CurrentTenant == nil {
			cur := tr
			out.CurrentTenant = &cur
		}
	}
	return out, nil
}

// UpdateVacancy cambio manual de ocupación (available/pending) con la fila de la unidad bloqueada.
func (uc *UnitUseCase) UpdateVacancy(ctx context.Context, id int64, in dto.UpdateVacancyRequest) (*dto.ActionResult, error) {
	target := entity.Vacancy(in.Vacancy)
	err := uc.tx.Run(ctx, func(r repository.Repos) error {
		u, err := r.Units.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if u == nil {
			return domain.ErrNotFound
		}
		active, err := r.Tenants.CountActiveByUnit(ctx, id, 0)
		if err != nil {
			return err
		}
		if err := occupancy.ValidateManualVacancy(target, active); err != nil {
			return err
		}
		return r.Units.UpdateVacancy(ctx, id, target)
	})
	if err != nil {
		return nil, err
	}
	return &dto.ActionResult{Message: fmt.Sprintf("Unit vacancy set to %s.", target)}, nil
}

// Delete borra la unidad con sus inquilinos y documentos.
func (uc *UnitUseCase) Delete(ctx context.Context, id int64) (*dto.ActionResult, error) {
	var name string
	var paths []string
	err := uc.tx.Run(ctx, func(r repository.Repos) error {
		u, err := r.Units.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if u == nil {
			return domain.ErrNotFound
		}
		name = u.Name
		if paths, err = r.Documents.DeleteSubtree(ctx, entity.UnitOwner(id)); err != nil {
			return err
		}
		return r.Units.Delete(ctx, id)
	})
	if err != nil {
		return nil, err
	}
	removeBlobs(ctx, uc.blobs, uc.log, paths)
	uc.log.Info().Int64("unit_id", id).Int("documents", len(paths)).Msg("unidad eliminada")
	return &dto.ActionResult{Message: fmt.Sprintf("Unit %s deleted.", name)}, nil
}
