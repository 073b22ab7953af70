package repository

import (
	"context"

	"github.com/jhoicas/estatedesk-api/internal/domain/entity"
)

// TenantRepository puerto de persistencia para Tenant.
type TenantRepository interface {
	// Create persiste el inquilino; email duplicado => domain.ErrEmailAlreadyExists.
	Create(ctx context.Context, t *entity.Tenant) error
	GetByID(ctx context.Context, id int64) (*entity.Tenant, error)
	// GetForUpdate bloquea la fila del inquilino hasta el fin de la transacción.
	GetForUpdate(ctx context.Context, id int64) (*entity.Tenant, error)
	ListByUnit(ctx context.Context, unitID int64) ([]*entity.Tenant, error)
	ListByZone(ctx context.Context, zoneID int64) ([]*entity.Tenant, error)
	// CountActiveByUnit cuenta inquilinos activos de la unidad, excluyendo exceptID (0 = ninguno).
	CountActiveByUnit(ctx context.Context, unitID, exceptID int64) (int, error)
	UpdateStatus(ctx context.Context, id int64, status entity.TenantStatus) error
	Delete(ctx context.Context, id int64) error
}
