package repository

import (
	"context"

	"github.com/jhoicas/estatedesk-api/internal/domain/entity"
)

// UserRepository puerto de persistencia para User.
type UserRepository interface {
	// Create persiste el usuario; email duplicado => domain.ErrEmailAlreadyExists,
	// tenant_id duplicado => domain.ErrPortalAccessExists.
	Create(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id int64) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	GetByTenantID(ctx context.Context, tenantID int64) (*entity.User, error)
	// UpdatePassword reemplaza el hash y limpia must_change_password.
	UpdatePassword(ctx context.Context, id int64, hash string) error
	Delete(ctx context.Context, id int64) error
}
