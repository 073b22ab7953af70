package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/estatedesk-api/internal/application/dto"
	"github.com/jhoicas/estatedesk-api/internal/domain"
	"github.com/jhoicas/estatedesk-api/internal/domain/entity"
	"github.com/jhoicas/estatedesk-api/internal/domain/occupancy"
	"github.com/jhoicas/estatedesk-api/internal/domain/repository"
	"github.com/jhoicas/estatedesk-api/pkg/logger"
)

// BuildingUseCase casos de uso de edificios.
type BuildingUseCase struct {
	repos repository.Repos
	tx    repository.TxRunner
	blobs BlobRemover
	log   *logger.Logger
}

// NewBuildingUseCase construye el caso de uso.
func NewBuildingUseCase(repos repository.Repos, tx repository.TxRunner, blobs BlobRemover, log *logger.Logger) *BuildingUseCase {
	return &BuildingUseCase{repos: repos, tx: tx, blobs: blobs, log: log.Component("buildings")}
}

// Create crea un edificio en una zona existente. Slug = slug(nombre-calle).
func (uc *BuildingUseCase) Create(ctx context.Context, in dto.CreateBuildingRequest) (*dto.BuildingResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, validationError("name", "is required")
	}
	zone, err := uc.repos.Zones.GetByID(ctx, in.ZoneID)
	if err != nil {
		return nil, err
	}
	if zone == nil {
		return nil, validationError("zone_id", "zone does not exist")
	}
	b := &entity.Building{Name: name, ZoneID: zone.ID}
	if in.Street != nil {
		if street := strings.TrimSpace(*in.Street); street != "" {
			b.Street = &street
		}
	}
	if b.Slug, err = uniqueSlug(ctx, b.SlugSource(), "building", uc.repos.Buildings.SlugExists); err != nil {
		return nil, err
	}
	if err := uc.repos.Buildings.Create(ctx, b); err != nil {
		return nil, err
	}
	out := dto.NewBuildingResponse(b)
	return &out, nil
}

// GetBySlug edificio con su zona, unidades y tasa de ocupación.
func (uc *BuildingUseCase) GetBySlug(ctx context.Context, slug string) (*dto.BuildingDetailResponse, error) {
	b, err := uc.repos.Buildings.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, domain.ErrNotFound
	}
	zone, err := uc.repos.Zones.GetByID(ctx, b.ZoneID)
	if err != nil {
		return nil, err
	}
	if zone == nil {
		return nil, domain.ErrNotFound
	}
	units, err := uc.repos.Units.ListByBuilding(ctx, b.ID)
	if err != nil {
		return nil, err
	}
	out := &dto.BuildingDetailResponse{
		BuildingResponse: dto.NewBuildingResponse(b),
		Zone:             dto.NewZoneResponse(zone),
		Units:            make([]dto.UnitResponse, 0, len(units)),
	}
	occupied := 0
	for _, u := range units {
		if u.Vacancy == entity.VacancyUnavailable {
			occupied++
		}
		out.Units = append(out.Units, dto.NewUnitResponse(u))
	}
	out.OccupancyRate = occupancy.Rate(occupied, len(units))
	return out, nil
}

// Delete borra el edificio con sus unidades, inquilinos y documentos.
func (uc *BuildingUseCase) Delete(ctx context.Context, id int64) (*dto.ActionResult, error) {
	var name string
	var paths []string
	err := uc.tx.Run(ctx, func(r repository.Repos) error {
		b, err := r.Buildings.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if b == nil {
			return domain.ErrNotFound
		}
		name = b.Name
		if paths, err = r.Documents.DeleteSubtree(ctx, entity.BuildingOwner(id)); err != nil {
			return err
		}
		return r.Buildings.Delete(ctx, id)
	})
	if err != nil {
		return nil, err
	}
	removeBlobs(ctx, uc.blobs, uc.log, paths)
	uc.log.Info().Int64("building_id", id).Int("documents", len(paths)).Msg("edificio eliminado")
	return &dto.ActionResult{Message: fmt.Sprintf("Building %s deleted.", name)}, nil
}
