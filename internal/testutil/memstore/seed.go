package memstore

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/estatedesk-api/internal/domain/entity"
	"github.com/jhoicas/estatedesk-api/pkg/slug"
)

// Fixture jerarquía mínima zona -> edificio -> unidad para pruebas.
type Fixture struct {
	Zone     *entity.Zone
	Building *entity.Building
	Unit     *entity.Unit
}

// SeedHierarchy crea una zona, un edificio y una unidad disponibles.
func (s *Store) SeedHierarchy() Fixture {
	ctx := context.Background()
	r := s.Repos()
	z := &entity.Zone{Name: "North", Slug: "north"}
	mustNil(r.Zones.Create(ctx, z))
	street := "High Street"
	b := &entity.Building{Name: "Tower A", Slug: "tower-a-high-street", Street: &street, ZoneID: z.ID}
	mustNil(r.Buildings.Create(ctx, b))
	u := s.SeedUnit(b, "Flat 1")
	return Fixture{Zone: z, Building: b, Unit: u}
}

// SeedUnit agrega una unidad disponible al edificio.
func (s *Store) SeedUnit(b *entity.Building, name string) *entity.Unit {
	u := &entity.Unit{
		Name: name, Slug: slug.Make(b.Slug + "-" + name), Type: "flat", Address: "1 High Street",
		BuildingID: b.ID, Vacancy: entity.VacancyAvailable,
	}
	mustNil(s.Repos().Units.Create(context.Background(), u))
	return u
}

// SeedTenant agrega un inquilino a la unidad con el estado dado, sin tocar la ocupación.
func (s *Store) SeedTenant(unitID int64, email string, status entity.TenantStatus) *entity.Tenant {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(1, 0, 0)
	t := &entity.Tenant{
		FirstName: "Ada", LastName: "Lovelace", Email: email, UnitID: unitID,
		Rent: decimal.RequireFromString("950.00"), LeaseStartDate: &start, LeaseEndDate: &end,
		Status: status,
	}
	mustNil(s.Repos().Tenants.Create(context.Background(), t))
	return t
}

func mustNil(err error) {
	if err != nil {
		panic(err)
	}
}
