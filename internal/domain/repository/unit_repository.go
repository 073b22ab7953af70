package repository

import (
	"context"

	"github.com/jhoicas/estatedesk-api/internal/domain/entity"
)

// UnitRepository puerto de persistencia para Unit.
type UnitRepository interface {
	Create(ctx context.Context, u *entity.Unit) error
	GetByID(ctx context.Context, id int64) (*entity.Unit, error)
	GetBySlug(ctx context.Context, slug string) (*entity.Unit, error)
	// GetForUpdate bloquea la fila de la unidad hasta el fin de la transacción (SELECT ... FOR UPDATE).
	GetForUpdate(ctx context.Context, id int64) (*entity.Unit, error)
	SlugExists(ctx context.Context, slug string) (bool, error)
	ListByBuilding(ctx context.Context, buildingID int64) ([]*entity.Unit, error)
	ListByZone(ctx context.Context, zoneID int64) ([]*entity.Unit, error)
	UpdateVacancy(ctx context.Context, id int64, v entity.Vacancy) error
	Delete(ctx context.Context, id int64) error
}
