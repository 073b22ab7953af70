package auth_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/estatedesk-api/internal/application/auth"
	"github.com/jhoicas/estatedesk-api/internal/application/dto"
	"github.com/jhoicas/estatedesk-api/internal/application/portal"
	"github.com/jhoicas/estatedesk-api/internal/domain"
	"github.com/jhoicas/estatedesk-api/internal/domain/entity"
	"github.com/jhoicas/estatedesk-api/internal/testutil/memstore"
	"github.com/jhoicas/estatedesk-api/pkg/jwt"
	"github.com/jhoicas/estatedesk-api/pkg/logger"
)

const secret = "test-secret"

func newAuth(store *memstore.Store) *auth.AuthUseCase {
	return auth.NewAuthUseCase(store.Repos().Users, auth.JWTConfig{Secret: secret, ExpMinutes: 5, Issuer: "estatedesk"})
}

func TestCreateStaffYLogin(t *testing.T) {
	store := memstore.New()
	uc := newAuth(store)
	ctx := context.Background()

	user, err := uc.CreateStaff(ctx, dto.CreateStaffRequest{Email: "Boss@Example.com", Password: "s3cret-pass", Name: "Boss"})
	require.NoError(t, err)
	assert.Equal(t, "boss@example.com", user.Email)
	assert.Equal(t, entity.RoleStaff, user.Role)

	_, err = uc.CreateStaff(ctx, dto.CreateStaffRequest{Email: "boss@example.com", Password: "another-pass", Name: "Dup"})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)

	out, err := uc.Login(ctx, dto.LoginRequest{Email: "boss@example.com", Password: "s3cret-pass"})
	require.NoError(t, err)
	id, err := jwt.Parse(secret, out.Token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, id.UserID)
	assert.Equal(t, entity.RoleStaff, id.Role)
	assert.Zero(t, id.TenantID)
}

func TestLogin_CredencialesInvalidas(t *testing.T) {
	store := memstore.New()
	uc := newAuth(store)
	ctx := context.Background()
	_, err := uc.CreateStaff(ctx, dto.CreateStaffRequest{Email: "a@example.com", Password: "right-pass", Name: "A"})
	require.NoError(t, err)

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "a@example.com", Password: "wrong-pass"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	_, err = uc.Login(ctx, dto.LoginRequest{Email: "nobody@example.com", Password: "right-pass"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLogin_InquilinoYCambioDeContrasena(t *testing.T) {
	store := memstore.New()
	fx := store.SeedHierarchy()
	tenant := store.SeedTenant(fx.Unit.ID, "ada@example.com", entity.TenantActive)
	access, err := portal.NewUseCase(store.Repos(), store, nil, logger.Nop()).CreateAccess(context.Background(), tenant.ID)
	require.NoError(t, err)

	uc := newAuth(store)
	ctx := context.Background()
	out, err := uc.Login(ctx, dto.LoginRequest{Email: "ada@example.com", Password: access.TemporaryPassword})
	require.NoError(t, err)
	assert.True(t, out.User.MustChangePassword)
	id, err := jwt.Parse(secret, out.Token)
	require.NoError(t, err)
	assert.Equal(t, entity.RoleTenant, id.Role)
	assert.Equal(t, tenant.ID, id.TenantID)

	_, err = uc.ChangePassword(ctx, access.UserID, dto.ChangePasswordRequest{CurrentPassword: "nope", NewPassword: "brand-new-pass"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	res, err := uc.ChangePassword(ctx, access.UserID, dto.ChangePasswordRequest{
		CurrentPassword: access.TemporaryPassword, NewPassword: "brand-new-pass",
	})
	require.NoError(t, err)
	assert.Equal(t, "Password updated.", res.Message)

	must, err := uc.MustChangePassword(ctx, access.UserID)
	require.NoError(t, err)
	assert.False(t, must)

	out, err = uc.Login(ctx, dto.LoginRequest{Email: "ada@example.com", Password: "brand-new-pass"})
	require.NoError(t, err)
	assert.False(t, out.User.MustChangePassword)
}
