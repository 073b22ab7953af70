package repository

import (
	"context"

	"github.com/jhoicas/estatedesk-api/internal/domain/entity"
)

// BuildingRepository puerto de persistencia para Building.
type BuildingRepository interface {
	Create(ctx context.Context, b *entity.Building) error
	GetByID(ctx context.Context, id int64) (*entity.Building, error)
	GetBySlug(ctx context.Context, slug string) (*entity.Building, error)
	SlugExists(ctx context.Context, slug string) (bool, error)
	ListByZone(ctx context.Context, zoneID int64) ([]*entity.Building, error)
	Delete(ctx context.Context, id int64) error
}
