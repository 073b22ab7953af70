package portal_test

import (
	"context"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/estatedesk-api/internal/application/portal"
	"github.com/jhoicas/estatedesk-api/internal/domain"
	"github.com/jhoicas/estatedesk-api/internal/domain/entity"
	"github.com/jhoicas/estatedesk-api/internal/testutil/memstore"
	"github.com/jhoicas/estatedesk-api/pkg/logger"
)

type recorder struct{ actions []string }

func (r *recorder) PortalAction(action string) { r.actions = append(r.actions, action) }

func setup(t *testing.T) (*portal.UseCase, *memstore.Store, memstore.Fixture, *entity.Tenant, *recorder) {
	t.Helper()
	store := memstore.New()
	fx := store.SeedHierarchy()
	tenant := store.SeedTenant(fx.Unit.ID, "ada@example.com", entity.TenantActive)
	rec := &recorder{}
	return portal.NewUseCase(store.Repos(), store, rec, logger.Nop()), store, fx, tenant, rec
}

func TestCreateAccess(t *testing.T) {
	uc, store, _, tenant, rec := setup(t)

	out, err := uc.CreateAccess(context.Background(), tenant.ID)
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", out.Email)
	assert.Regexp(t, regexp.MustCompile(`^[A-Za-z0-9]{12}$`), out.TemporaryPassword)

	user, err := store.Repos().Users.GetByTenantID(context.Background(), tenant.ID)
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, "Ada Lovelace", user.Name)
	assert.Equal(t, entity.RoleTenant, user.Role)
	assert.True(t, user.MustChangePassword)
	assert.NotEqual(t, out.TemporaryPassword, user.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(out.TemporaryPassword)))
	assert.Equal(t, []string{portal.ActionCreate}, rec.actions)
}

func TestCreateAccess_Duplicado(t *testing.T) {
	uc, _, _, tenant, _ := setup(t)
	_, err := uc.CreateAccess(context.Background(), tenant.ID)
	require.NoError(t, err)

	_, err = uc.CreateAccess(context.Background(), tenant.ID)
	assert.ErrorIs(t, err, domain.ErrPortalAccessExists)
	assert.Equal(t, "tenant already has portal access", err.Error())
}

func TestCreateAccess_InquilinoInexistente(t *testing.T) {
	uc, _, _, _, _ := setup(t)
	_, err := uc.CreateAccess(context.Background(), 777)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRemoveAccess(t *testing.T) {
	uc, store, _, tenant, _ := setup(t)

	_, err := uc.RemoveAccess(context.Background(), tenant.ID)
	assert.ErrorIs(t, err, domain.ErrNoPortalAccess)

	_, err = uc.CreateAccess(context.Background(), tenant.ID)
	require.NoError(t, err)
	res, err := uc.RemoveAccess(context.Background(), tenant.ID)
	require.NoError(t, err)
	assert.Equal(t, "Portal access removed.", res.Message)

	user, err := store.Repos().Users.GetByTenantID(context.Background(), tenant.ID)
	require.NoError(t, err)
	assert.Nil(t, user)
	still, err := store.Repos().Tenants.GetByID(context.Background(), tenant.ID)
	require.NoError(t, err)
	assert.NotNil(t, still, "el inquilino no se toca")
}

func TestDocuments_SoloVisiblesDeLaUnidad(t *testing.T) {
	uc, store, fx, tenant, _ := setup(t)
	ctx := context.Background()
	docs := store.Repos().Documents
	visible := &entity.Document{Name: "lease.pdf", Path: "north/buildings/b/units/u/lease.pdf", Type: "application/pdf",
		Owner: entity.UnitOwner(fx.Unit.ID), VisibleToTenants: entity.VisibleYes}
	hidden := &entity.Document{Name: "notes.txt", Path: "north/buildings/b/units/u/notes.txt", Type: "text/plain",
		Owner: entity.UnitOwner(fx.Unit.ID), VisibleToTenants: entity.VisibleNo}
	zoneDoc := &entity.Document{Name: "acc.pdf", Path: "north/general/acc.pdf", Type: "application/pdf",
		Owner: entity.ZoneOwner(fx.Zone.ID), VisibleToTenants: entity.VisibleYes}
	for _, d := range []*entity.Document{visible, hidden, zoneDoc} {
		require.NoError(t, docs.Create(ctx, d))
	}

	out, err := uc.Documents(ctx, tenant.ID)
	require.NoError(t, err)
	require.Len(t, out.Items, 1)
	assert.Equal(t, "lease.pdf", out.Items[0].Name)

	got, err := uc.VisibleDocument(ctx, tenant.ID, visible.ID)
	require.NoError(t, err)
	assert.Equal(t, visible.ID, got.ID)
	_, err = uc.VisibleDocument(ctx, tenant.ID, hidden.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = uc.VisibleDocument(ctx, tenant.ID, zoneDoc.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestMe(t *testing.T) {
	uc, _, fx, tenant, _ := setup(t)
	out, err := uc.Me(context.Background(), tenant.ID)
	require.NoError(t, err)
	assert.Equal(t, tenant.ID, out.Tenant.ID)
	assert.Equal(t, fx.Unit.Name, out.Unit.Name)
	assert.Equal(t, "Tower A", out.Building.Name)
	assert.Equal(t, "North", out.Zone.Name)
}
