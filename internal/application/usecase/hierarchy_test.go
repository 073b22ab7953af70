package usecase_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/estatedesk-api/internal/application/dto"
	"github.com/jhoicas/estatedesk-api/internal/application/usecase"
	"github.com/jhoicas/estatedesk-api/internal/domain"
	"github.com/jhoicas/estatedesk-api/internal/domain/entity"
	"github.com/jhoicas/estatedesk-api/internal/testutil/memstore"
	"github.com/jhoicas/estatedesk-api/pkg/logger"
)

// blobSpy registra las rutas borradas; falla las que contienen "broken".
type blobSpy struct{ deleted []string }

func (b *blobSpy) Delete(_ context.Context, path string) error {
	if strings.Contains(path, "broken") {
		return errors.New("storage offline")
	}
	b.deleted = append(b.deleted, path)
	return nil
}

func strPtr(s string) *string { return &s }

func TestZone_CreateSlugsYDuplicados(t *testing.T) {
	store := memstore.New()
	uc := usecase.NewZoneUseCase(store.Repos(), store, nil, logger.Nop())
	ctx := context.Background()

	z, err := uc.Create(ctx, dto.CreateZoneRequest{Name: "  Río Norte "})
	require.NoError(t, err)
	assert.Equal(t, "Río Norte", z.Name)
	assert.Equal(t, "rio-norte", z.Slug)

	z2, err := uc.Create(ctx, dto.CreateZoneRequest{Name: "Rio Norte!"})
	require.NoError(t, err)
	assert.Equal(t, "rio-norte-2", z2.Slug)

	_, err = uc.Create(ctx, dto.CreateZoneRequest{Name: "Río Norte"})
	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "has already been taken", verr.Fields["name"])

	_, err = uc.Create(ctx, dto.CreateZoneRequest{Name: "   "})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	list, err := uc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 2)

	_, err = uc.GetBySlug(ctx, "nowhere")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestZone_ConsultasTransitivas(t *testing.T) {
	store := memstore.New()
	fx := store.SeedHierarchy()
	store.SeedUnit(fx.Building, "Flat 2")
	store.SeedTenant(fx.Unit.ID, "ada@example.com", entity.TenantActive)
	uc := usecase.NewZoneUseCase(store.Repos(), store, nil, logger.Nop())

	units, err := uc.Units(context.Background(), "north")
	require.NoError(t, err)
	assert.Len(t, units, 2)

	tenants, err := uc.Tenants(context.Background(), "north")
	require.NoError(t, err)
	require.Len(t, tenants, 1)
	assert.Equal(t, "ada@example.com", tenants[0].Email)

	detail, err := uc.GetBySlug(context.Background(), "north")
	require.NoError(t, err)
	require.Len(t, detail.Buildings, 1)
	assert.Equal(t, "Tower A", detail.Buildings[0].Name)
}

func TestZone_DeleteEnCascada(t *testing.T) {
	store := memstore.New()
	fx := store.SeedHierarchy()
	ctx := context.Background()
	repos := store.Repos()
	tenant := store.SeedTenant(fx.Unit.ID, "ada@example.com", entity.TenantActive)
	tid := tenant.ID
	require.NoError(t, repos.Users.Create(ctx, &entity.User{Name: "Ada", Email: "ada@example.com", Role: entity.RoleTenant, TenantID: &tid}))
	for _, d := range []*entity.Document{
		{Name: "z.pdf", Path: "north/general/z.pdf", Owner: entity.ZoneOwner(fx.Zone.ID)},
		{Name: "b.pdf", Path: "north/buildings/tower-a/b.pdf", Owner: entity.BuildingOwner(fx.Building.ID)},
		{Name: "u.pdf", Path: "north/buildings/tower-a/units/broken/u.pdf", Owner: entity.UnitOwner(fx.Unit.ID)},
	} {
		require.NoError(t, repos.Documents.Create(ctx, d))
	}

	blobs := &blobSpy{}
	uc := usecase.NewZoneUseCase(repos, store, blobs, logger.Nop())
	res, err := uc.Delete(ctx, fx.Zone.ID)
	require.NoError(t, err, "un fallo de almacenamiento no revierte el borrado")
	assert.Equal(t, "Zone North deleted.", res.Message)
	assert.ElementsMatch(t, []string{"north/general/z.pdf", "north/buildings/tower-a/b.pdf"}, blobs.deleted)

	b, err := repos.Buildings.GetByID(ctx, fx.Building.ID)
	require.NoError(t, err)
	assert.Nil(t, b)
	u, err := repos.Users.GetByTenantID(ctx, tenant.ID)
	require.NoError(t, err)
	assert.Nil(t, u)
	d, err := repos.Documents.ListByOwner(ctx, entity.UnitOwner(fx.Unit.ID), "")
	require.NoError(t, err)
	assert.Empty(t, d)

	_, err = uc.Delete(ctx, fx.Zone.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestBuilding_Create(t *testing.T) {
	store := memstore.New()
	fx := store.SeedHierarchy()
	uc := usecase.NewBuildingUseCase(store.Repos(), store, nil, logger.Nop())
	ctx := context.Background()

	b, err := uc.Create(ctx, dto.CreateBuildingRequest{ZoneID: fx.Zone.ID, Name: "Tower A", Street: strPtr("High Street")})
	require.NoError(t, err)
	assert.Equal(t, "tower-a-high-street-2", b.Slug, "colisión con el edificio sembrado")

	b, err = uc.Create(ctx, dto.CreateBuildingRequest{ZoneID: fx.Zone.ID, Name: "Annex"})
	require.NoError(t, err)
	assert.Equal(t, "annex", b.Slug)

	_, err = uc.Create(ctx, dto.CreateBuildingRequest{ZoneID: 999, Name: "Ghost"})
	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Contains(t, verr.Fields, "zone_id")
}

func TestBuilding_DetalleConOcupacion(t *testing.T) {
	store := memstore.New()
	fx := store.SeedHierarchy()
	ctx := context.Background()
	store.SeedUnit(fx.Building, "Flat 2")
	require.NoError(t, store.Repos().Units.UpdateVacancy(ctx, fx.Unit.ID, entity.VacancyUnavailable))
	uc := usecase.NewBuildingUseCase(store.Repos(), store, nil, logger.Nop())

	out, err := uc.GetBySlug(ctx, fx.Building.Slug)
	require.NoError(t, err)
	assert.Equal(t, "North", out.Zone.Name)
	assert.Len(t, out.Units, 2)
	assert.Equal(t, 50, out.OccupancyRate)

	res, err := uc.Delete(ctx, fx.Building.ID)
	require.NoError(t, err)
	assert.Equal(t, "Building Tower A deleted.", res.Message)
	_, err = uc.GetBySlug(ctx, fx.Building.Slug)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUnit_Create(t *testing.T) {
	store := memstore.New()
	fx := store.SeedHierarchy()
	uc := usecase.NewUnitUseCase(store.Repos(), store, nil, logger.Nop())
	ctx := context.Background()

	u, err := uc.Create(ctx, dto.CreateUnitRequest{
		BuildingID: fx.Building.ID, Name: "Flat 9", Type: "flat", Address: "9 High Street", Postcode: strPtr(" N1 "),
	})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(u.Slug, "flat-9-tower-a-high-street-"), u.Slug)
	assert.Equal(t, "available", u.Vacancy)
	require.NotNil(t, u.Postcode)
	assert.Equal(t, "N1", *u.Postcode)

	_, err = uc.Create(ctx, dto.CreateUnitRequest{BuildingID: fx.Building.ID, Name: "X", Vacancy: "unavailable"})
	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Contains(t, verr.Fields, "vacancy")

	_, err = uc.Create(ctx, dto.CreateUnitRequest{BuildingID: 404, Name: "X"})
	require.True(t, errors.As(err, &verr))
	assert.Contains(t, verr.Fields, "building_id")
}

func TestUnit_UpdateVacancy(t *testing.T) {
	store := memstore.New()
	fx := store.SeedHierarchy()
	uc := usecase.NewUnitUseCase(store.Repos(), store, nil, logger.Nop())
	ctx := context.Background()

	res, err := uc.UpdateVacancy(ctx, fx.Unit.ID, dto.UpdateVacancyRequest{Vacancy: "pending"})
	require.NoError(t, err)
	assert.Equal(t, "Unit vacancy set to pending.", res.Message)

	_, err = uc.UpdateVacancy(ctx, fx.Unit.ID, dto.UpdateVacancyRequest{Vacancy: "unavailable"})
	assert.ErrorIs(t, err, domain.ErrInvalidVacancy)

	store.SeedTenant(fx.Unit.ID, "ada@example.com", entity.TenantActive)
	_, err = uc.UpdateVacancy(ctx, fx.Unit.ID, dto.UpdateVacancyRequest{Vacancy: "available"})
	assert.ErrorIs(t, err, domain.ErrInvalidVacancy)

	_, err = uc.UpdateVacancy(ctx, 999, dto.UpdateVacancyRequest{Vacancy: "pending"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUnit_DetalleConInquilinoActual(t *testing.T) {
	store := memstore.New()
	fx := store.SeedHierarchy()
	store.SeedTenant(fx.Unit.ID, "old@example.com", entity.TenantTerminated)
	current := store.SeedTenant(fx.Unit.ID, "ada@example.com", entity.TenantActive)
	uc := usecase.NewUnitUseCase(store.Repos(), store, nil, logger.Nop())

	out, err := uc.GetBySlug(context.Background(), fx.Unit.Slug)
	require.NoError(t, err)
	assert.Len(t, out.Tenants, 2)
	require.NotNil(t, out.CurrentTenant)
	assert.Equal(t, current.ID, out.CurrentTenant.ID)
	assert.Equal(t, "north", out.Zone.Slug)

	blobs := &blobSpy{}
	require.NoError(t, store.Repos().Documents.Create(context.Background(), &entity.Document{
		Name: "a.pdf", Path: "north/x/a.pdf", Owner: entity.UnitOwner(fx.Unit.ID),
	}))
	res, err := usecase.NewUnitUseCase(store.Repos(), store, blobs, logger.Nop()).Delete(context.Background(), fx.Unit.ID)
	require.NoError(t, err)
	assert.Equal(t, "Unit Flat 1 deleted.", res.Message)
	assert.Equal(t, []string{"north/x/a.pdf"}, blobs.deleted)
}
