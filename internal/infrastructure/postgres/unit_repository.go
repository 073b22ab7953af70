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

var _ repository.UnitRepository = (*UnitRepo)(nil)

// UnitRepo implementación de UnitRepository (usable con pool o tx).
type UnitRepo struct {
	q Querier
}

// NewUnitRepository construye el adaptador. Pasar pool o tx (Querier).
func NewUnitRepository(q Querier) *UnitRepo {
	return &UnitRepo{q: q}
}

const unitColumns = `u.id, u.name, u.slug, u.type, u.address, u.postcode, u.building_id, u.vacancy, u.created_at, u.updated_at`

func scanUnit(row pgx.Row) (*entity.Unit, error) {
	var u entity.Unit
	err := row.Scan(&u.ID, &u.Name, &u.Slug, &u.Type, &u.Address, &u.Postcode, &u.BuildingID, &u.Vacancy,
		&u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// Create persiste una unidad. Edificio inexistente => domain.ErrNotFound.
func (r *UnitRepo) Create(ctx context.Context, u *entity.Unit) error {
	if u.Vacancy == "" {
		u.Vacancy = entity.VacancyAvailable
	}
	query := `
		INSERT INTO units (name, slug, type, address, postcode, building_id, vacancy, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, now(), now())
		RETURNING id, created_at, updated_at`
	err := r.q.QueryRow(ctx, query,
		u.Name, u.Slug, u.Type, u.Address, u.Postcode, u.BuildingID, u.Vacancy,
	).Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		switch {
		case isUniqueViolation(err):
			return domain.ErrDuplicate
		case isForeignKeyViolation(err):
			return domain.ErrNotFound
		}
		return fmt.Errorf("insert unit: %w", err)
	}
	return nil
}

func (r *UnitRepo) getOne(ctx context.Context, query string, arg any) (*entity.Unit, error) {
	u, err := scanUnit(r.q.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get unit: %w", err)
	}
	return u, nil
}

// GetByID obtiene una unidad por ID.
func (r *UnitRepo) GetByID(ctx context.Context, id int64) (*entity.Unit, error) {
	return r.getOne(ctx, `SELECT `+unitColumns+` FROM units u WHERE u.id = $1`, id)
}

// GetBySlug obtiene una unidad por slug.
func (r *UnitRepo) GetBySlug(ctx context.Context, slug string) (*entity.Unit, error) {
	return r.getOne(ctx, `SELECT `+unitColumns+` FROM units u WHERE u.slug = $1`, slug)
}

// GetForUpdate obtiene la unidad y bloquea la fila (SELECT FOR UPDATE).
func (r *UnitRepo) GetForUpdate(ctx context.Context, id int64) (*entity.Unit, error) {
	return r.getOne(ctx, `SELECT `+unitColumns+` FROM units u WHERE u.id = $1 FOR UPDATE`, id)
}

// SlugExists indica si el slug ya está tomado.
func (r *UnitRepo) SlugExists(ctx context.Context, slug string) (bool, error) {
	var exists bool
	if err := r.q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM units WHERE slug = $1)`, slug).Scan(&exists); err != nil {
		return false, fmt.Errorf("unit slug exists: %w", err)
	}
	return exists, nil
}

// ListByBuilding unidades del edificio ordenadas por nombre.
func (r *UnitRepo) ListByBuilding(ctx context.Context, buildingID int64) ([]*entity.Unit, error) {
	return r.list(ctx, `SELECT `+unitColumns+` FROM units u WHERE u.building_id = $1 ORDER BY u.name`, buildingID)
}

// ListByZone unidades de todos los edificios de la zona.
func (r *UnitRepo) ListByZone(ctx context.Context, zoneID int64) ([]*entity.Unit, error) {
	query := `
		SELECT ` + unitColumns + `
		FROM units u
		JOIN buildings b ON b.id = u.building_id
		WHERE b.zone_id = $1
		ORDER BY u.name`
	return r.list(ctx, query, zoneID)
}

func (r *UnitRepo) list(ctx context.Context, query string, arg any) ([]*entity.Unit, error) {
	rows, err := r.q.Query(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("list units: %w", err)
	}
	defer rows.Close()

	var list []*entity.Unit
	for rows.Next() {
		u, err := scanUnit(rows)
		if err != nil {
			return nil, fmt.Errorf("scan unit: %w", err)
		}
		list = append(list, u)
	}
	return list, rows.Err()
}

// UpdateVacancy guarda el estado de ocupación.
func (r *UnitRepo) UpdateVacancy(ctx context.Context, id int64, v entity.Vacancy) error {
	tag, err := r.q.Exec(ctx, `UPDATE units SET vacancy = $2, updated_at = now() WHERE id = $1`, id, v)
	if err != nil {
		return fmt.Errorf("update vacancy: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina la unidad; sus inquilinos caen por cascada.
func (r *UnitRepo) Delete(ctx context.Context, id int64) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM units WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete unit: %w", err)
	}
	return nil
}
