package reports_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/estatedesk-api/internal/application/reports"
	"github.com/jhoicas/estatedesk-api/internal/domain"
	"github.com/jhoicas/estatedesk-api/internal/domain/entity"
	"github.com/jhoicas/estatedesk-api/internal/testutil/memstore"
)

type captureGenerator struct{ got *reports.Statement }

func (g *captureGenerator) GenerateStatementPDF(_ context.Context, s *reports.Statement) ([]byte, error) {
	g.got = s
	return []byte("%PDF-fake"), nil
}

func TestGenerate(t *testing.T) {
	store := memstore.New()
	fx := store.SeedHierarchy()
	tenant := store.SeedTenant(fx.Unit.ID, "ada@example.com", entity.TenantActive)
	ctx := context.Background()
	require.NoError(t, store.Repos().Documents.Create(ctx, &entity.Document{
		Name: "lease.pdf", Path: "x/lease.pdf", Owner: entity.UnitOwner(fx.Unit.ID), VisibleToTenants: entity.VisibleYes,
	}))
	require.NoError(t, store.Repos().Documents.Create(ctx, &entity.Document{
		Name: "internal.pdf", Path: "x/internal.pdf", Owner: entity.UnitOwner(fx.Unit.ID), VisibleToTenants: entity.VisibleNo,
	}))

	gen := &captureGenerator{}
	pdf, name, err := reports.NewStatementUseCase(store.Repos(), gen).Generate(ctx, tenant.ID)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-fake", string(pdf))
	assert.Regexp(t, `^statement-\d+-\d{8}\.pdf$`, name)

	require.NotNil(t, gen.got)
	assert.Equal(t, "North", gen.got.Zone.Name)
	assert.Equal(t, "Tower A", gen.got.Building.Name)
	require.Len(t, gen.got.Documents, 1)
	assert.Equal(t, "lease.pdf", gen.got.Documents[0].Name)
}

func TestGenerate_InquilinoInexistente(t *testing.T) {
	_, _, err := reports.NewStatementUseCase(memstore.New().Repos(), &captureGenerator{}).Generate(context.Background(), 1)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
