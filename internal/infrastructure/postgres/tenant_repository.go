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

var _ repository.TenantRepository = (*TenantRepo)(nil)

// TenantRepo implementación de TenantRepository (usable con pool o tx).
type TenantRepo struct {
	q Querier
}

// NewTenantRepository construye el adaptador. Pasar pool o tx (Querier).
func NewTenantRepository(q Querier) *TenantRepo {
	return &TenantRepo{q: q}
}

const tenantColumns = `t.id, t.title, t.first_name, t.last_name, t.email, t.phone, t.unit_id, t.rent,
	t.lease_start_date, t.lease_end_date, t.rent_due_date, t.status, t.created_at, t.updated_at`

func scanTenant(row pgx.Row) (*entity.Tenant, error) {
	var t entity.Tenant
	err := row.Scan(&t.ID, &t.Title, &t.FirstName, &t.LastName, &t.Email, &t.Phone, &t.UnitID, &t.Rent,
		&t.LeaseStartDate, &t.LeaseEndDate, &t.RentDueDate, &t.Status, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// Create persiste un inquilino. Email duplicado => domain.ErrEmailAlreadyExists;
// unidad inexistente => domain.ErrNotFound.
func (r *TenantRepo) Create(ctx context.Context, t *entity.Tenant) error {
	if t.Status == "" {
		t.Status = entity.TenantActive
	}
	query := `
		INSERT INTO tenants (title, first_name, last_name, email, phone, unit_id, rent,
			lease_start_date, lease_end_date, rent_due_date, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, now(), now())
		RETURNING id, created_at, updated_at`
	err := r.q.QueryRow(ctx, query,
		t.Title, t.FirstName, t.LastName, t.Email, t.Phone, t.UnitID, t.Rent,
		t.LeaseStartDate, t.LeaseEndDate, t.RentDueDate, t.Status,
	).Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		switch {
		case isUniqueViolation(err):
			return domain.ErrEmailAlreadyExists
		case isForeignKeyViolation(err):
			return domain.ErrNotFound
		}
		return fmt.Errorf("insert tenant: %w", err)
	}
	return nil
}

func (r *TenantRepo) getOne(ctx context.Context, query string, id int64) (*entity.Tenant, error) {
	t, err := scanTenant(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get tenant: %w", err)
	}
	return t, nil
}

// GetByID obtiene un inquilino por ID.
func (r *TenantRepo) GetByID(ctx context.Context, id int64) (*entity.Tenant, error) {
	return r.getOne(ctx, `SELECT `+tenantColumns+` FROM tenants t WHERE t.id = $1`, id)
}

// GetForUpdate obtiene el inquilino y bloquea la fila (SELECT FOR UPDATE).
func (r *TenantRepo) GetForUpdate(ctx context.Context, id int64) (*entity.Tenant, error) {
	return r.getOne(ctx, `SELECT `+tenantColumns+` FROM tenants t WHERE t.id = $1 FOR UPDATE`, id)
}

// ListByUnit inquilinos de la unidad en orden de alta.
func (r *TenantRepo) ListByUnit(ctx context.Context, unitID int64) ([]*entity.Tenant, error) {
	return r.list(ctx, `SELECT `+tenantColumns+` FROM tenants t WHERE t.unit_id = $1 ORDER BY t.id`, unitID)
}

// ListByZone inquilinos de todas las unidades de la zona.
func (r *TenantRepo) ListByZone(ctx context.Context, zoneID int64) ([]*entity.Tenant, error) {
	query := `
		SELECT ` + tenantColumns + `
		FROM tenants t
		JOIN units u ON u.id = t.unit_id
		JOIN buildings b ON b.id = u.building_id
		WHERE b.zone_id = $1
		ORDER BY t.id`
	return r.list(ctx, query, zoneID)
}

func (r *TenantRepo) list(ctx context.Context, query string, arg int64) ([]*entity.Tenant, error) {
	rows, err := r.q.Query(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("list tenants: %w", err)
	}
	defer rows.Close()

	var list []*entity.Tenant
	for rows.Next() {
		t, err := scanTenant(rows)
		if err != nil {
			return nil, fmt.Errorf("scan tenant: %w", err)
		}
		list = append(list, t)
	}
	return list, rows.Err()
}

// CountActiveByUnit cuenta inquilinos activos de la unidad excluyendo exceptID.
func (r *TenantRepo) CountActiveByUnit(ctx context.Context, unitID, exceptID int64) (int, error) {
	query := `SELECT COUNT(*) FROM tenants WHERE unit_id = $1 AND status = $2 AND id <> $3`
	var n int
	if err := r.q.QueryRow(ctx, query, unitID, entity.TenantActive, exceptID).Scan(&n); err != nil {
		return 0, fmt.Errorf("count active tenants: %w", err)
	}
	return n, nil
}

// UpdateStatus guarda el nuevo estado del contrato.
func (r *TenantRepo) UpdateStatus(ctx context.Context, id int64, status entity.TenantStatus) error {
	tag, err := r.q.Exec(ctx, `UPDATE tenants SET status = $2, updated_at = now() WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("update tenant status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina el inquilino; su cuenta de portal cae por cascada.
func (r *TenantRepo) Delete(ctx context.Context, id int64) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM tenants WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete tenant: %w", err)
	}
	return nil
}
