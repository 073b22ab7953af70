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

var _ repository.DocumentRepository = (*DocumentRepo)(nil)

// DocumentRepo implementación de DocumentRepository (usable con pool o tx).
// El dueño es polimórfico: owner_type + owner_id, sin llave foránea.
type DocumentRepo struct {
	q Querier
}

// NewDocumentRepository construye el adaptador. Pasar pool o tx (Querier).
func NewDocumentRepository(q Querier) *DocumentRepo {
	return &DocumentRepo{q: q}
}

const documentColumns = `id, name, path, folder_path, document_type, year, size, type,
	owner_type, owner_id, visible_to_tenants, created_at, updated_at`

func scanDocument(row pgx.Row) (*entity.Document, error) {
	var d entity.Document
	err := row.Scan(&d.ID, &d.Name, &d.Path, &d.FolderPath, &d.DocumentType, &d.Year, &d.Size, &d.Type,
		&d.Owner.Kind, &d.Owner.ID, &d.VisibleToTenants, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// Create persiste el registro del documento (los bytes ya están en almacenamiento).
func (r *DocumentRepo) Create(ctx context.Context, d *entity.Document) error {
	if d.VisibleToTenants == "" {
		d.VisibleToTenants = entity.VisibleNo
	}
	query := `
		INSERT INTO documents (name, path, folder_path, document_type, year, size, type,
			owner_type, owner_id, visible_to_tenants, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, now(), now())
		RETURNING id, created_at, updated_at`
	err := r.q.QueryRow(ctx, query,
		d.Name, d.Path, d.FolderPath, d.DocumentType, d.Year, d.Size, d.Type,
		d.Owner.Kind, d.Owner.ID, d.VisibleToTenants,
	).Scan(&d.ID, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert document: %w", err)
	}
	return nil
}

// GetByID obtiene un documento por ID.
func (r *DocumentRepo) GetByID(ctx context.Context, id int64) (*entity.Document, error) {
	d, err := scanDocument(r.q.QueryRow(ctx, `SELECT `+documentColumns+` FROM documents WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get document: %w", err)
	}
	return d, nil
}

// ListByOwner documentos del dueño, más recientes primero, opcionalmente limitados a una carpeta.
func (r *DocumentRepo) ListByOwner(ctx context.Context, owner entity.DocumentOwner, folder string) ([]*entity.Document, error) {
	query := `
		SELECT ` + documentColumns + `
		FROM documents
		WHERE owner_type = $1 AND owner_id = $2
		  AND ($3 = '' OR folder_path = $3 OR folder_path LIKE $3 || '/%')
		ORDER BY created_at DESC, id DESC`
	return r.list(ctx, query, owner.Kind, owner.ID, folder)
}

// ListVisibleForUnit documentos de la unidad marcados visibles para inquilinos.
func (r *DocumentRepo) ListVisibleForUnit(ctx context.Context, unitID int64) ([]*entity.Document, error) {
	query := `
		SELECT ` + documentColumns + `
		FROM documents
		WHERE owner_type = $1 AND owner_id = $2 AND visible_to_tenants = $3
		ORDER BY created_at DESC, id DESC`
	return r.list(ctx, query, entity.OwnerUnit, unitID, entity.VisibleYes)
}

func (r *DocumentRepo) list(ctx context.Context, query string, args ...any) ([]*entity.Document, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	defer rows.Close()

	var list []*entity.Document
	for rows.Next() {
		d, err := scanDocument(rows)
		if err != nil {
			return nil, fmt.Errorf("scan document: %w", err)
		}
		list = append(list, d)
	}
	return list, rows.Err()
}

// Folders carpetas distintas usadas por los documentos del dueño.
func (r *DocumentRepo) Folders(ctx context.Context, owner entity.DocumentOwner) ([]string, error) {
	query := `
		SELECT DISTINCT folder_path
		FROM documents
		WHERE owner_type = $1 AND owner_id = $2 AND folder_path IS NOT NULL
		ORDER BY folder_path`
	rows, err := r.q.Query(ctx, query, owner.Kind, owner.ID)
	if err != nil {
		return nil, fmt.Errorf("list folders: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var f string
		if err := rows.Scan(&f); err != nil {
			return nil, fmt.Errorf("scan folder: %w", err)
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

// UpdateVisibility guarda la bandera de visibilidad.
func (r *DocumentRepo) UpdateVisibility(ctx context.Context, id int64, v entity.Visibility) error {
	tag, err := r.q.Exec(ctx, `UPDATE documents SET visible_to_tenants = $2, updated_at = now() WHERE id = $1`, id, v)
	if err != nil {
		return fmt.Errorf("update visibility: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina el registro del documento.
func (r *DocumentRepo) Delete(ctx context.Context, id int64) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM documents WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete document: %w", err)
	}
	return nil
}

// subtreeQueries borra los documentos del dueño y de sus descendientes, devolviendo las rutas.
var subtreeQueries = map[entity.OwnerKind]string{
	entity.OwnerZone: `
		DELETE FROM documents d
		WHERE (d.owner_type = 'zone' AND d.owner_id = $1)
		   OR (d.owner_type = 'building' AND d.owner_id IN (SELECT id FROM buildings WHERE zone_id = $1))
		   OR (d.owner_type = 'unit' AND d.owner_id IN (
				SELECT u.id FROM units u JOIN buildings b ON b.id = u.building_id WHERE b.zone_id = $1))
		RETURNING d.path`,
	entity.OwnerBuilding: `
		DELETE FROM documents d
		WHERE (d.owner_type = 'building' AND d.owner_id = $1)
		   OR (d.owner_type = 'unit' AND d.owner_id IN (SELECT id FROM units WHERE building_id = $1))
		RETURNING d.path`,
	entity.OwnerUnit: `
		DELETE FROM documents d
		WHERE d.owner_type = 'unit' AND d.owner_id = $1
		RETURNING d.path`,
}

// DeleteSubtree borra los documentos de la jerarquía bajo el dueño; debe correr antes de
// borrar las filas de zona/edificio/unidad para poder resolver los descendientes.
func (r *DocumentRepo) DeleteSubtree(ctx context.Context, owner entity.DocumentOwner) ([]string, error) {
	query, ok := subtreeQueries[owner.Kind]
	if !ok {
		return nil, fmt.Errorf("delete subtree: tipo de dueño desconocido %q", owner.Kind)
	}
	rows, err := r.q.Query(ctx, query, owner.ID)
	if err != nil {
		return nil, fmt.Errorf("delete subtree: %w", err)
	}
	defer rows.Close()

	var paths []string
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return nil, fmt.Errorf("scan path: %w", err)
		}
		paths = append(paths, p)
	}
	return paths, rows.Err()
}
