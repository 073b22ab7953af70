// Package reports documentos generados a partir de los datos de la cartera.
package reports

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/estatedesk-api/internal/domain"
	"github.com/jhoicas/estatedesk-api/internal/domain/entity"
	"github.com/jhoicas/estatedesk-api/internal/domain/occupancy"
	"github.com/jhoicas/estatedesk-api/internal/domain/repository"
)

// Statement datos de la constancia de arrendamiento de un inquilino.
type Statement struct {
	Tenant      *entity.Tenant
	Unit        *entity.Unit
	Building    *entity.Building
	Zone        *entity.Zone
	Flags       occupancy.Flags
	Documents   []*entity.Document // solo los visibles para el inquilino
	GeneratedAt time.Time
}

// StatementGenerator genera el PDF de la constancia (implementado en infrastructure/pdf).
type StatementGenerator interface {
	GenerateStatementPDF(ctx context.Context, s *Statement) ([]byte, error)
}

// StatementUseCase arma la constancia y delega el render.
type StatementUseCase struct {
	repos repository.Repos
	gen   StatementGenerator
	now   func() time.Time
}

// NewStatementUseCase construye el caso de uso.
func NewStatementUseCase(repos repository.Repos, gen StatementGenerator) *StatementUseCase {
	return &StatementUseCase{repos: repos, gen: gen, now: time.Now}
}

// Generate devuelve los bytes del PDF y el nombre de archivo sugerido.
func (uc *StatementUseCase) Generate(ctx context.Context, tenantID int64) ([]byte, string, error) {
	s, err := uc.load(ctx, tenantID)
	if err != nil {
		return nil, "", err
	}
	pdf, err := uc.gen.GenerateStatementPDF(ctx, s)
	if err != nil {
		return nil, "", err
	}
	return pdf, fmt.Sprintf("statement-%d-%s.pdf", s.Tenant.ID, s.GeneratedAt.Format("20060102")), nil
}

func (uc *StatementUseCase) load(ctx context.Context, tenantID int64) (*Statement, error) {
	t, err := uc.repos.Tenants.GetByID(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, domain.ErrNotFound
	}
	u, err := uc.repos.Units.GetByID(ctx, t.UnitID)
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
	docs, err := uc.repos.Documents.ListVisibleForUnit(ctx, u.ID)
	if err != nil {
		return nil, err
	}
	now := uc.now()
	return &Statement{
		Tenant:      t,
		Unit:        u,
		Building:    b,
		Zone:        z,
		Flags:       occupancy.FlagsFor(t, now),
		Documents:   docs,
		GeneratedAt: now,
	}, nil
}
