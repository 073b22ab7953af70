package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/estatedesk-api/internal/application/dto"
	"github.com/jhoicas/estatedesk-api/internal/domain"
	"github.com/jhoicas/estatedesk-api/internal/domain/entity"
	"github.com/jhoicas/estatedesk-api/internal/domain/repository"
	"github.com/jhoicas/estatedesk-api/pkg/logger"
)

// ZoneUseCase casos de uso de zonas.
type ZoneUseCase struct {
	repos repository.Repos
	tx    repository.TxRunner
	blobs BlobRemover
	log   *logger.Logger
}

// NewZoneUseCase construye el caso de uso.
func NewZoneUseCase(repos repository.Repos, tx repository.TxRunner, blobs BlobRemover, log *logger.Logger) *ZoneUseCase {
	return &ZoneUseCase{repos: repos, tx: tx, blobs: blobs, log: log.Component("zones")}
}

// Create crea una zona con nombre único; el slug se calcula una sola vez.
func (uc *ZoneUseCase) Create(ctx context.Context, in dto.CreateZoneRequest) (*dto.ZoneResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, validationError("name", "is required")
	}
	s, err := uniqueSlug(ctx, name, "zone", uc.repos.Zones.SlugExists)
	if err != nil {
		return nil, err
	}
	z := &entity.Zone{Name: name, Slug: s}
	if err := uc.repos.Zones.Create(ctx, z); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, validationError("name", "has already been taken")
		}
		return nil, err
	}
	out := dto.NewZoneResponse(z)
	return &out, nil
}

// List zonas ordenadas por nombre.
func (uc *ZoneUseCase) List(ctx context.Context) ([]dto.ZoneResponse, error) {
	zones, err := uc.repos.Zones.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ZoneResponse, 0, len(zones))
	for _, z := range zones {
		out = append(out, dto.NewZoneResponse(z))
	}
	return out, nil
}

// GetBySlug zona con sus edificios.
func (uc *ZoneUseCase) GetBySlug(ctx context.Context, slug string) (*dto.ZoneDetailResponse, error) {
	z, err := uc.zone(ctx, slug)
	if err != nil {
		return nil, err
	}
	buildings, err := uc.repos.Buildings.ListByZone(ctx, z.ID)
	if err != nil {
		return nil, err
	}
	out := &dto.ZoneDetailResponse{ZoneResponse: dto.NewZoneResponse(z), Buildings: make([]dto.BuildingResponse, 0, len(buildings))}
	for _, b := range buildings {
		out.Buildings = append(out.Buildings, dto.NewBuildingResponse(b))
	}
	return out, nil
}

// Units unidades de todos los edificios de la zona.
func (uc *ZoneUseCase) Units(ctx context.Context, slug string) ([]dto.UnitResponse, error) {
	z, err := uc.zone(ctx, slug)
	if err != nil {
		return nil, err
	}
	units, err := uc.repos.Units.ListByZone(ctx, z.ID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.UnitResponse, 0, len(units))
	for _, u := range units {
		out = append(out, dto.NewUnitResponse(u))
	}
	return out, nil
}

// Tenants inquilinos de todas las unidades de la zona.
func (uc *ZoneUseCase) Tenants(ctx context.Context, slug string) ([]dto.TenantResponse, error) {
	z, err := uc.zone(ctx, slug)
	if err != nil {
		return nil, err
	}
	tenants, err := uc.repos.Tenants.ListByZone(ctx, z.ID)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	out := make([]dto.TenantResponse, 0, len(tenants))
	for _, t := range tenants {
		out = append(out, dto.NewTenantResponse(t, now))
	}
	return out, nil
}

// Delete borra la zona con sus edificios, unidades, inquilinos y documentos.
func (uc *ZoneUseCase) Delete(ctx context.Context, id int64) (*dto.ActionResult, error) {
	var name string
	var paths []string
	err := uc.tx.Run(ctx, func(r repository.Repos) error {
		z, err := r.Zones.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if z == nil {
			return domain.ErrNotFound
		}
		name = z.Name
		if paths, err = r.Documents.DeleteSubtree(ctx, entity.ZoneOwner(id)); err != nil {
			return err
		}
		return r.Zones.Delete(ctx, id)
	})
	if err != nil {
		return nil, err
	}
	removeBlobs(ctx, uc.blobs, uc.log, paths)
	uc.log.Info().Int64("zone_id", id).Int("documents", len(paths)).Msg("zona eliminada")
	return &dto.ActionResult{Message: fmt.Sprintf("Zone %s deleted.", name)}, nil
}

func (uc *ZoneUseCase) zone(ctx context.Context, slug string) (*entity.Zone, error) {
	z, err := uc.repos.Zones.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if z == nil {
		return nil, domain.ErrNotFound
	}
	return z, nil
}
