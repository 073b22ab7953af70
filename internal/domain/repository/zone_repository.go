package repository

import (
	"context"

	"github.com/jhoicas/estatedesk-api/internal/domain/entity"
)

// ZoneRepository puerto de persistencia para Zone.
// Los métodos Get* devuelven (nil, nil) si el registro no existe.
type ZoneRepository interface {
	Create(ctx context.Context, z *entity.Zone) error
	GetByID(ctx context.Context, id int64) (*entity.Zone, error)
	GetBySlug(ctx context.Context, slug string) (*entity.Zone, error)
	SlugExists(ctx context.Context, slug string) (bool, error)
	List(ctx context.Context) ([]*entity.Zone, error)
	Delete(ctx context.Context, id int64) error
}
