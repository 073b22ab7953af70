package lease_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/estatedesk-api/internal/application/dto"
	"github.com/jhoicas/estatedesk-api/internal/application/lease"
	"github.com/jhoicas/estatedesk-api/internal/domain"
	"github.com/jhoicas/estatedesk-api/internal/domain/entity"
	"github.com/jhoicas/estatedesk-api/internal/testutil/memstore"
	"github.com/jhoicas/estatedesk-api/pkg/logger"
)

type recorder struct{ transitions []string }

func (r *recorder) TenantTransition(from, to string) {
	r.transitions = append(r.transitions, from+"->"+to)
}

func newUseCase(t *testing.T) (*lease.TenantUseCase, *memstore.Store, memstore.Fixture, *recorder) {
	t.Helper()
	store := memstore.New()
	fx := store.SeedHierarchy()
	rec := &recorder{}
	return lease.NewTenantUseCase(store.Repos(), store, rec, logger.Nop()), store, fx, rec
}

func request(email, status string) dto.CreateTenantRequest {
	return dto.CreateTenantRequest{
		FirstName:      "Grace",
		LastName:       "Hopper",
		Email:          email,
		Rent:           decimal.RequireFromString("1200.50"),
		LeaseStartDate: "2026-01-01",
		LeaseEndDate:   "2026-12-31",
		Status:         status,
	}
}

func unitVacancy(t *testing.T, store *memstore.Store, id int64) entity.Vacancy {
	t.Helper()
	u, err := store.Repos().Units.GetByID(context.Background(), id)
	require.NoError(t, err)
	require.NotNil(t, u)
	return u.Vacancy
}

func TestCreate_ActivoOcupaLaUnidad(t *testing.T) {
	uc, store, fx, rec := newUseCase(t)

	out, err := uc.Create(context.Background(), fx.Unit.ID, request("grace@example.com", ""))
	require.NoError(t, err)
	assert.Equal(t, "active", out.Status)
	assert.Equal(t, "Grace Hopper", out.FullName)
	require.NotNil(t, out.LeaseEndDate)
	assert.Equal(t, "2026-12-31", *out.LeaseEndDate)
	assert.Equal(t, entity.VacancyUnavailable, unitVacancy(t, store, fx.Unit.ID))
	assert.Equal(t, []string{"none->active"}, rec.transitions)
}

func TestCreate_SegundoActivoRechazado(t *testing.T) {
	uc, store, fx, _ := newUseCase(t)
	_, err := uc.Create(context.Background(), fx.Unit.ID, request("first@example.com", "active"))
	require.NoError(t, err)

	_, err = uc.Create(context.Background(), fx.Unit.ID, request("second@example.com", "active"))
	assert.ErrorIs(t, err, domain.ErrUnitOccupied)

	tenants, err := store.Repos().Tenants.ListByUnit(context.Background(), fx.Unit.ID)
	require.NoError(t, err)
	assert.Len(t, tenants, 1, "el rechazo no debe dejar filas")
}

func TestCreate_InactivoNoOcupa(t *testing.T) {
	uc, store, fx, _ := newUseCase(t)
	_, err := uc.Create(context.Background(), fx.Unit.ID, request("old@example.com", "inactive"))
	require.NoError(t, err)
	assert.Equal(t, entity.VacancyAvailable, unitVacancy(t, store, fx.Unit.ID))
}

func TestCreate_SinFechasDeContrato(t *testing.T) {
	uc, store, fx, _ := newUseCase(t)

	in := request("nodates@example.com", "active")
	in.LeaseStartDate, in.LeaseEndDate = "", ""
	out, err := uc.Create(context.Background(), fx.Unit.ID, in)
	require.NoError(t, err)
	assert.Nil(t, out.LeaseStartDate)
	assert.Nil(t, out.LeaseEndDate)
	assert.False(t, out.LeaseExpiringSoon)
	assert.Equal(t, entity.VacancyUnavailable, unitVacancy(t, store, fx.Unit.ID))

	got, err := store.Repos().Tenants.GetByID(context.Background(), out.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Nil(t, got.LeaseStartDate)
	assert.Nil(t, got.LeaseEndDate)
}

func TestCreate_SoloFechaDeFin(t *testing.T) {
	uc, _, fx, _ := newUseCase(t)

	in := request("endonly@example.com", "active")
	in.LeaseStartDate = ""
	in.LeaseEndDate = "2020-01-01"
	out, err := uc.Create(context.Background(), fx.Unit.ID, in)
	require.NoError(t, err, "sin fecha de inicio no se compara el orden")
	assert.Nil(t, out.LeaseStartDate)
	require.NotNil(t, out.LeaseEndDate)
	assert.Equal(t, "2020-01-01", *out.LeaseEndDate)
}

func TestCreate_Validaciones(t *testing.T) {
	uc, _, fx, _ := newUseCase(t)

	in := request("bad@example.com", "active")
	in.LeaseEndDate = "2025-12-31"
	in.Rent = decimal.RequireFromString("1000000")
	in.FirstName = " "
	_, err := uc.Create(context.Background(), fx.Unit.ID, in)

	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Contains(t, verr.Fields, "lease_end_date")
	assert.Contains(t, verr.Fields, "rent")
	assert.Contains(t, verr.Fields, "first_name")
}

func TestCreate_EmailDuplicado(t *testing.T) {
	uc, _, fx, _ := newUseCase(t)
	_, err := uc.Create(context.Background(), fx.Unit.ID, request("dup@example.com", "inactive"))
	require.NoError(t, err)
	_, err = uc.Create(context.Background(), fx.Unit.ID, request("DUP@example.com", "inactive"))
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestCreate_UnidadInexistente(t *testing.T) {
	uc, _, _, _ := newUseCase(t)
	_, err := uc.Create(context.Background(), 9999, request("x@example.com", "active"))
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestChangeStatus(t *testing.T) {
	uc, store, fx, rec := newUseCase(t)
	tenant := store.SeedTenant(fx.Unit.ID, "ada@example.com", entity.TenantInactive)

	res, err := uc.ChangeStatus(context.Background(), tenant.ID, dto.ChangeTenantStatusRequest{Status: "active"})
	require.NoError(t, err)
	assert.Equal(t, "Tenant status updated from inactive to active.", res.Message)
	assert.Equal(t, entity.VacancyUnavailable, unitVacancy(t, store, fx.Unit.ID))

	res, err = uc.ChangeStatus(context.Background(), tenant.ID, dto.ChangeTenantStatusRequest{Status: "terminated"})
	require.NoError(t, err)
	assert.Equal(t, "Tenant status updated from active to terminated.", res.Message)
	assert.Equal(t, entity.VacancyAvailable, unitVacancy(t, store, fx.Unit.ID))
	assert.Equal(t, []string{"inactive->active", "active->terminated"}, rec.transitions)
}

func TestChangeStatus_UnidadOcupadaPorOtro(t *testing.T) {
	uc, store, fx, _ := newUseCase(t)
	store.SeedTenant(fx.Unit.ID, "one@example.com", entity.TenantActive)
	other := store.SeedTenant(fx.Unit.ID, "two@example.com", entity.TenantInactive)

	_, err := uc.ChangeStatus(context.Background(), other.ID, dto.ChangeTenantStatusRequest{Status: "active"})
	assert.ErrorIs(t, err, domain.ErrUnitOccupied)

	got, err := store.Repos().Tenants.GetByID(context.Background(), other.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.TenantInactive, got.Status)
}

func TestChangeStatus_ReactivarMismoInquilino(t *testing.T) {
	uc, store, fx, _ := newUseCase(t)
	tenant := store.SeedTenant(fx.Unit.ID, "same@example.com", entity.TenantActive)

	_, err := uc.ChangeStatus(context.Background(), tenant.ID, dto.ChangeTenantStatusRequest{Status: "active"})
	assert.NoError(t, err, "el propio inquilino activo no cuenta como ocupante")
}

func TestChangeStatus_PendienteSeRecalcula(t *testing.T) {
	uc, store, fx, _ := newUseCase(t)
	require.NoError(t, store.Repos().Units.UpdateVacancy(context.Background(), fx.Unit.ID, entity.VacancyPending))
	tenant := store.SeedTenant(fx.Unit.ID, "p@example.com", entity.TenantInactive)

	_, err := uc.ChangeStatus(context.Background(), tenant.ID, dto.ChangeTenantStatusRequest{Status: "active"})
	require.NoError(t, err)
	assert.Equal(t, entity.VacancyUnavailable, unitVacancy(t, store, fx.Unit.ID))
}

func TestDelete_LiberaLaUnidad(t *testing.T) {
	uc, store, fx, _ := newUseCase(t)
	out, err := uc.Create(context.Background(), fx.Unit.ID, request("bye@example.com", "active"))
	require.NoError(t, err)

	res, err := uc.Delete(context.Background(), out.ID)
	require.NoError(t, err)
	assert.Equal(t, "Tenant Grace Hopper deleted.", res.Message)
	assert.Equal(t, entity.VacancyAvailable, unitVacancy(t, store, fx.Unit.ID))

	_, err = uc.Delete(context.Background(), out.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestGet(t *testing.T) {
	uc, store, fx, _ := newUseCase(t)
	tenant := store.SeedTenant(fx.Unit.ID, "ada@example.com", entity.TenantActive)

	out, err := uc.Get(context.Background(), tenant.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ada Lovelace", out.FullName)
	assert.Equal(t, fx.Unit.Slug, out.Unit.Slug)
	assert.Equal(t, "tower-a-high-street", out.Building.Slug)
	assert.Equal(t, "north", out.Zone.Slug)
	assert.False(t, out.HasPortalAccess)
	assert.Nil(t, out.PortalUser)

	_, err = uc.Get(context.Background(), 4242)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
