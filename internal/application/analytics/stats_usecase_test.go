package analytics_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/estatedesk-api/internal/application/analytics"
	"github.com/jhoicas/estatedesk-api/internal/domain/entity"
	"github.com/jhoicas/estatedesk-api/internal/testutil/memstore"
)

func TestStats_Vacio(t *testing.T) {
	uc := analytics.NewStatsUseCase(memstore.New())

	b, err := uc.Buildings(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, b.AverageOccupancy)

	tn, err := uc.Tenants(context.Background())
	require.NoError(t, err)
	assert.True(t, tn.AverageRent.IsZero())
}

func TestStats_Cartera(t *testing.T) {
	store := memstore.New()
	fx := store.SeedHierarchy()
	ctx := context.Background()
	second := store.SeedUnit(fx.Building, "Flat 2")
	store.SeedUnit(fx.Building, "Flat 3")
	require.NoError(t, store.Repos().Units.UpdateVacancy(ctx, fx.Unit.ID, entity.VacancyUnavailable))
	require.NoError(t, store.Repos().Units.UpdateVacancy(ctx, second.ID, entity.VacancyPending))

	store.SeedTenant(fx.Unit.ID, "a@example.com", entity.TenantActive)
	store.SeedTenant(second.ID, "b@example.com", entity.TenantActive)
	store.SeedTenant(second.ID, "c@example.com", entity.TenantTerminated)

	uc := analytics.NewStatsUseCase(store)

	b, err := uc.Buildings(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, b.TotalBuildings)
	assert.Equal(t, 3, b.TotalUnits)
	assert.Equal(t, 33, b.AverageOccupancy)

	u, err := uc.Units(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, u.TotalUnits)
	assert.Equal(t, 1, u.AvailableUnits)
	assert.Equal(t, 33, u.OccupancyRate)

	tn, err := uc.Tenants(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, tn.TotalTenants)
	assert.Equal(t, 2, tn.ActiveTenants)
	assert.True(t, decimal.RequireFromString("950.00").Equal(tn.AverageRent))
}
