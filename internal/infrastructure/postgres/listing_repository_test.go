package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/estatedesk-api/internal/domain/entity"
	"github.com/jhoicas/estatedesk-api/internal/domain/repository"
)

func TestBuildingsQuery_BusquedaYFiltros(t *testing.T) {
	zone := int64(7)
	query, args, err := buildingsQuery(repository.BuildingFilter{
		Search: "tower",
		ZoneID: &zone,
		Sort:   repository.Sort{Field: "units_count", Dir: repository.Desc},
		Limit:  12,
	})
	require.NoError(t, err)

	assert.Contains(t, query, "(b.name ILIKE $1 OR b.street ILIKE $2 OR z.name ILIKE $3)")
	assert.Contains(t, query, "b.zone_id = $4")
	assert.Contains(t, query, "GROUP BY b.id, z.name, z.slug")
	assert.Contains(t, query, "ORDER BY units_count DESC, b.id")
	assert.Contains(t, query, "LIMIT 12")
	assert.Equal(t, []any{"%tower%", "%tower%", "%tower%", int64(7)}, args)
}

func TestBuildingsQuery_SinFiltros(t *testing.T) {
	query, args, err := buildingsQuery(repository.BuildingFilter{})
	require.NoError(t, err)
	// Los FILTER (WHERE …) de los conteos no son filtros de filas.
	assert.Contains(t, query, "LEFT JOIN units u ON u.building_id = b.id GROUP BY")
	assert.NotContains(t, query, "ILIKE")
	assert.NotContains(t, query, "b.zone_id =")
	assert.NotContains(t, query, "LIMIT")
	assert.Contains(t, query, "ORDER BY b.name ASC, b.id")
	assert.Empty(t, args)
}

func TestUnitsQuery_Filtros(t *testing.T) {
	building := int64(3)
	query, args, err := unitsQuery(repository.UnitFilter{
		BuildingID: &building,
		Vacancy:    entity.VacancyPending,
		Type:       "Flat",
		Sort:       repository.Sort{Field: "building", Dir: repository.Asc},
	})
	require.NoError(t, err)
	assert.Contains(t, query, "u.building_id = $1")
	assert.Contains(t, query, "u.vacancy = $2")
	assert.Contains(t, query, "u.type = $3")
	assert.Contains(t, query, "ORDER BY b.name ASC, u.id")
	assert.Equal(t, []any{int64(3), "pending", "Flat"}, args)
}

func TestTenantsQuery_Portal(t *testing.T) {
	query, _, err := tenantsQuery(repository.TenantFilter{Portal: repository.PortalNoUser})
	require.NoError(t, err)
	assert.Contains(t, query, "WHERE NOT EXISTS (SELECT 1 FROM users us WHERE us.tenant_id = t.id)")

	query, _, err = tenantsQuery(repository.TenantFilter{Portal: repository.PortalHasUser, Status: entity.TenantActive})
	require.NoError(t, err)
	assert.Contains(t, query, "t.status = $1")
	assert.Contains(t, query, "AND EXISTS (SELECT 1 FROM users us WHERE us.tenant_id = t.id)")
}

func TestOrderBy_CampoDesconocidoUsaDefault(t *testing.T) {
	got := orderBy(tenantSortColumns, repository.Sort{Field: "password; DROP TABLE users", Dir: repository.Desc}, "first_name", "t.id")
	assert.Equal(t, "t.first_name DESC, t.id", got)

	got = orderBy(tenantSortColumns, repository.Sort{Field: "full_name"}, "first_name", "t.id")
	assert.Equal(t, "(t.first_name || ' ' || t.last_name) ASC, t.id", got)
}

func TestSearchAny_EscapaComodines(t *testing.T) {
	assert.Nil(t, searchAny("   ", "t.email"))

	sql, args, err := searchAny("50%_off", "t.email").ToSql()
	require.NoError(t, err)
	assert.Equal(t, "(t.email ILIKE ?)", sql)
	assert.Equal(t, []any{`%50\%\_off%`}, args)
}

func TestEmbeddedMigrations(t *testing.T) {
	list, err := embeddedMigrations()
	require.NoError(t, err)
	require.NotEmpty(t, list)
	assert.Equal(t, uint(1), list[0].Version)
	assert.Equal(t, "init", list[0].Name)
}

func TestPgx5URL(t *testing.T) {
	assert.Equal(t, "pgx5://u:p@db:5432/estatedesk?sslmode=disable", pgx5URL("postgres://u:p@db:5432/estatedesk?sslmode=disable"))
	assert.Equal(t, "pgx5://u:p@db/x", pgx5URL("postgresql://u:p@db/x"))
	assert.Equal(t, "pgx5://already", pgx5URL("pgx5://already"))
}
