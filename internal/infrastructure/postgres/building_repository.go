package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/estatedesk-api/internal/domain"
	"github.com/jhoicas/estatedesk-api/internal/domain/entity"
	"github.com/jhoicas/estatedesk-api/internal/domain/repository"
)

var _ repository.BuildingRepository = (*BuildingRepo)(nil)

// BuildingRepo implementación de BuildingRepository (usable con pool o tx).
type BuildingRepo struct {
	q Querier
}

// NewBuildingRepository construye el adaptador. Pasar pool o tx (Querier).
func NewBuildingRepository(q Querier) *BuildingRepo {
	return &BuildingRepo{q: q}
}

const buildingColumns = `id, name, slug, street, zone_id, created_at, updated_at`

func scanBuilding(row pgx.Row) (*entity.Building, error) {
	var b entity.Building
	if err := row.Scan(&b.ID, &b.Name, &b.Slug, &b.Street, &b.ZoneID, &b.CreatedAt, &b.UpdatedAt); err != nil {
		return nil, err
	}
	return &b, nil
}

// Create persiste un edificio. Zona inexistente => domain.ErrNotFound.
func (r *BuildingRepo) Create(ctx context.Context, b *entity.Building) error {
	query := `
		INSERT INTO buildings (name, slug, street, zone_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, now(), now())
		RETURNING id, created_at, updated_at`
	err := r.q.QueryRow(ctx, query, b.Name, b.Slug, b.Street, b.ZoneID).Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		switch {
		case isUniqueViolation(err):
			return domain.ErrDuplicate
		case isForeignKeyViolation(err):
			return domain.ErrNotFound
		}
		return fmt.Errorf("insert building: %w", err)
	}
	return nil
}

// GetByID obtiene un edificio por ID.
func (r *BuildingRepo) GetByID(ctx context.Context, id int64) (*entity.Building, error) {
	b, err := scanBuilding(r.q.QueryRow(ctx, `SELECT `+buildingColumns+` FROM buildings WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get building: %w", err)
	}
	return b, nil
}

// GetBySlug obtiene un edificio por slug.
func (r *BuildingRepo) GetBySlug(ctx context.Context, slug string) (*entity.Building, error) {
	b, err := scanBuilding(r.q.QueryRow(ctx, `SELECT `+buildingColumns+` FROM buildings WHERE slug = $1`, slug))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get building by slug: %w", err)
	}
	return b, nil
}

// SlugExists indica si el slug ya está tomado.
func (r *BuildingRepo) SlugExists(ctx context.Context, slug string) (bool, error) {
	var exists bool
	if err := r.q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM buildings WHERE slug = $1)`, slug).Scan(&exists); err != nil {
		return false, fmt.Errorf("building slug exists: %w", err)
	}
	return exists, nil
}

// ListByZone edificios de la zona ordenados por nombre.
func (r *BuildingRepo) ListByZone(ctx context.Context, zoneID int64) ([]*entity.Building, error) {
	rows, err := r.q.Query(ctx, `SELECT `+buildingColumns+` FROM buildings WHERE zone_id = $1 ORDER BY name`, zoneID)
	if err != nil {
		return nil, fmt.Errorf("list buildings: %w", err)
	}
	defer rows.Close()

	var list []*entity.Building
	for rows.Next() {
		b, err := scanBuilding(rows)
		if err != nil {
			return nil, fmt.Errorf("scan building: %w", err)
		}
		list = append(list, b)
	}
	return list, rows.Err()
}

// Delete elimina el edificio; unidades e inquilinos caen por cascada.
func (r *BuildingRepo) Delete(ctx context.Context, id int64) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM buildings WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete building: %w", err)
	}
	return nil
}
