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

var _ repository.ZoneRepository = (*ZoneRepo)(nil)

// ZoneRepo implementación de ZoneRepository sobre PostgreSQL (usable con pool o tx).
type ZoneRepo struct {
	q Querier
}

// NewZoneRepository construye el adaptador. Pasar pool o tx (Querier).
func NewZoneRepository(q Querier) *ZoneRepo {
	return &ZoneRepo{q: q}
}

const zoneColumns = `id, name, slug, created_at, updated_at`

// Create persiste una zona y completa ID y fechas.
func (r *ZoneRepo) Create(ctx context.Context, z *entity.Zone) error {
	query := `
		INSERT INTO zones (name, slug, created_at, updated_at)
		VALUES ($1, $2, now(), now())
		RETURNING id, created_at, updated_at`
	err := r.q.QueryRow(ctx, query, z.Name, z.Slug).Scan(&z.ID, &z.CreatedAt, &z.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert zone: %w", err)
	}
	return nil
}

// GetByID obtiene una zona por ID.
func (r *ZoneRepo) GetByID(ctx context.Context, id int64) (*entity.Zone, error) {
	return r.findOne(ctx, `SELECT `+zoneColumns+` FROM zones WHERE id = $1`, id)
}

// GetBySlug obtiene una zona por slug.
func (r *ZoneRepo) GetBySlug(ctx context.Context, slug string) (*entity.Zone, error) {
	return r.findOne(ctx, `SELECT `+zoneColumns+` FROM zones WHERE slug = $1`, slug)
}

func (r *ZoneRepo) findOne(ctx context.Context, query string, arg any) (*entity.Zone, error) {
	var z entity.Zone
	err := r.q.QueryRow(ctx, query, arg).Scan(&z.ID, &z.Name, &z.Slug, &z.CreatedAt, &z.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get zone: %w", err)
	}
	return &z, nil
}

// SlugExists indica si el slug ya está tomado.
func (r *ZoneRepo) SlugExists(ctx context.Context, slug string) (bool, error) {
	var exists bool
	if err := r.q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM zones WHERE slug = $1)`, slug).Scan(&exists); err != nil {
		return false, fmt.Errorf("zone slug exists: %w", err)
	}
	return exists, nil
}

// List devuelve todas las zonas ordenadas por nombre.
func (r *ZoneRepo) List(ctx context.Context) ([]*entity.Zone, error) {
	rows, err := r.q.Query(ctx, `SELECT `+zoneColumns+` FROM zones ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list zones: %w", err)
	}
	defer rows.Close()

	var list []*entity.Zone
	for rows.Next() {
		var z entity.Zone
		if err := rows.Scan(&z.ID, &z.Name, &z.Slug, &z.CreatedAt, &z.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan zone: %w", err)
		}
		list = append(list, &z)
	}
	return list, rows.Err()
}

// Delete elimina la zona; edificios, unidades, inquilinos y cuentas de portal caen por cascada.
func (r *ZoneRepo) Delete(ctx context.Context, id int64) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM zones WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete zone: %w", err)
	}
	return nil
}
