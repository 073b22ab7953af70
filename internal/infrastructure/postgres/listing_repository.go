package postgres

import (
	"context"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"

	"github.com/jhoicas/estatedesk-api/internal/domain/repository"
)

var _ repository.ListingRepository = (*ListingRepo)(nil)

// ListingRepo consultas de listados con búsqueda, filtros y orden. Solo lectura.
type ListingRepo struct {
	q Querier
}

// NewListingRepository construye el adaptador de listados.
func NewListingRepository(q Querier) *ListingRepo {
	return &ListingRepo{q: q}
}

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// Columnas de orden por listado; las claves son los campos aceptados por la API.
var (
	buildingSortColumns = map[string]string{
		"name":        "b.name",
		"street":      "b.street",
		"zone":        "z.name",
		"units_count": "units_count",
		"occupancy":   "occupancy",
		"created_at":  "b.created_at",
	}
	unitSortColumns = map[string]string{
		"name":       "u.name",
		"type":       "u.type",
		"vacancy":    "u.vacancy",
		"postcode":   "u.postcode",
		"building":   "b.name",
		"zone":       "z.name",
		"created_at": "u.created_at",
	}
	tenantSortColumns = map[string]string{
		"first_name":     "t.first_name",
		"last_name":      "t.last_name",
		"full_name":      "(t.first_name || ' ' || t.last_name)",
		"email":          "t.email",
		"rent":           "t.rent",
		"status":         "t.status",
		"lease_end_date": "t.lease_end_date",
		"building":       "b.name",
		"zone":           "z.name",
		"created_at":     "t.created_at",
	}
)

// orderBy traduce el orden pedido a una columna de la lista blanca; campo desconocido => def.
func orderBy(cols map[string]string, s repository.Sort, def, tiebreak string) string {
	col, ok := cols[s.Field]
	if !ok {
		col = cols[def]
	}
	dir := "ASC"
	if s.Dir == repository.Desc {
		dir = "DESC"
	}
	return fmt.Sprintf("%s %s, %s", col, dir, tiebreak)
}

// searchAny OR de ILIKE '%term%' sobre las columnas; nil si no hay término.
func searchAny(term string, cols ...string) sq.Sqlizer {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil
	}
	pattern := "%" + likeEscaper.Replace(term) + "%"
	or := sq.Or{}
	for _, c := range cols {
		or = append(or, sq.ILike{c: pattern})
	}
	return or
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func withLimit(b sq.SelectBuilder, limit int) sq.SelectBuilder {
	if limit > 0 {
		return b.Limit(uint64(limit))
	}
	return b
}

func buildingsQuery(f repository.BuildingFilter) (string, []any, error) {
	b := psql.Select(
		"b.id", "b.name", "b.slug", "b.street", "b.zone_id", "b.created_at", "b.updated_at",
		"z.name", "z.slug",
		"COUNT(u.id) AS units_count",
		"COUNT(u.id) FILTER (WHERE u.vacancy = 'unavailable') AS occupied_count",
		"COALESCE(COUNT(u.id) FILTER (WHERE u.vacancy = 'unavailable')::float / NULLIF(COUNT(u.id), 0), 0) AS occupancy",
	).
		From("buildings b").
		Join("zones z ON z.id = b.zone_id").
		LeftJoin("units u ON u.building_id = b.id").
		GroupBy("b.id", "z.name", "z.slug")

	if s := searchAny(f.Search, "b.name", "b.street", "z.name"); s != nil {
		b = b.Where(s)
	}
	if f.ZoneID != nil {
		b = b.Where(sq.Eq{"b.zone_id": *f.ZoneID})
	}
	b = b.OrderBy(orderBy(buildingSortColumns, f.Sort, "name", "b.id"))
	return withLimit(b, f.Limit).ToSql()
}

// ListBuildings edificios con conteo de unidades y de unidades ocupadas.
func (r *ListingRepo) ListBuildings(ctx context.Context, f repository.BuildingFilter) ([]*repository.BuildingRow, error) {
	query, args, err := buildingsQuery(f)
	if err != nil {
		return nil, fmt.Errorf("build buildings query: %w", err)
	}
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list buildings: %w", err)
	}
	defer rows.Close()

	var out []*repository.BuildingRow
	for rows.Next() {
		var row repository.BuildingRow
		var occupancy float64
		b := &row.Building
		if err := rows.Scan(
			&b.ID, &b.Name, &b.Slug, &b.Street, &b.ZoneID, &b.CreatedAt, &b.UpdatedAt,
			&row.ZoneName, &row.ZoneSlug, &row.UnitsCount, &row.OccupiedCount, &occupancy,
		); err != nil {
			return nil, fmt.Errorf("scan building row: %w", err)
		}
		out = append(out, &row)
	}
	return out, rows.Err()
}

func unitsQuery(f repository.UnitFilter) (string, []any, error) {
	b := psql.Select(
		"u.id", "u.name", "u.slug", "u.type", "u.address", "u.postcode", "u.building_id", "u.vacancy",
		"u.created_at", "u.updated_at",
		"b.name", "b.slug", "z.name", "z.slug",
		"(SELECT COUNT(*) FROM tenants t WHERE t.unit_id = u.id AND t.status = 'active') AS active_tenants",
	).
		From("units u").
		Join("buildings b ON b.id = u.building_id").
		Join("zones z ON z.id = b.zone_id")

	if s := searchAny(f.Search, "u.name", "u.address", "u.postcode", "b.name"); s != nil {
		b = b.Where(s)
	}
	if f.BuildingID != nil {
		b = b.Where(sq.Eq{"u.building_id": *f.BuildingID})
	}
	if f.ZoneID != nil {
		b = b.Where(sq.Eq{"b.zone_id": *f.ZoneID})
	}
	if f.Vacancy != "" {
		b = b.Where(sq.Eq{"u.vacancy": string(f.Vacancy)})
	}
	if f.Type != "" {
		b = b.Where(sq.Eq{"u.type": f.Type})
	}
	b = b.OrderBy(orderBy(unitSortColumns, f.Sort, "name", "u.id"))
	return withLimit(b, f.Limit).ToSql()
}

// ListUnits unidades con su cadena edificio/zona y el número de inquilinos activos.
func (r *ListingRepo) ListUnits(ctx context.Context, f repository.UnitFilter) ([]*repository.UnitRow, error) {
	query, args, err := unitsQuery(f)
	if err != nil {
		return nil, fmt.Errorf("build units query: %w", err)
	}
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list units: %w", err)
	}
	defer rows.Close()

	var out []*repository.UnitRow
	for rows.Next() {
		var row repository.UnitRow
		u := &row.Unit
		if err := rows.Scan(
			&u.ID, &u.Name, &u.Slug, &u.Type, &u.Address, &u.Postcode, &u.BuildingID, &u.Vacancy,
			&u.CreatedAt, &u.UpdatedAt,
			&row.BuildingName, &row.BuildingSlug, &row.ZoneName, &row.ZoneSlug, &row.ActiveTenants,
		); err != nil {
			return nil, fmt.Errorf("scan unit row: %w", err)
		}
		out = append(out, &row)
	}
	return out, rows.Err()
}

const portalExists = "EXISTS (SELECT 1 FROM users us WHERE us.tenant_id = t.id)"

func tenantsQuery(f repository.TenantFilter) (string, []any, error) {
	b := psql.Select(
		"t.id", "t.title", "t.first_name", "t.last_name", "t.email", "t.phone", "t.unit_id", "t.rent",
		"t.lease_start_date", "t.lease_end_date", "t.rent_due_date", "t.status", "t.created_at", "t.updated_at",
		"u.name", "u.slug", "b.name", "b.slug", "z.name", "z.slug",
		portalExists+" AS has_portal_access",
	).
		From("tenants t").
		Join("units u ON u.id = t.unit_id").
		Join("buildings b ON b.id = u.building_id").
		Join("zones z ON z.id = b.zone_id")

	if s := searchAny(f.Search, "t.first_name", "t.last_name", "t.email", "u.name", "b.name"); s != nil {
		b = b.Where(s)
	}
	if f.BuildingID != nil {
		b = b.Where(sq.Eq{"u.building_id": *f.BuildingID})
	}
	if f.ZoneID != nil {
		b = b.Where(sq.Eq{"b.zone_id": *f.ZoneID})
	}
	if f.Status != "" {
		b = b.Where(sq.Eq{"t.status": string(f.Status)})
	}
	switch f.Portal {
	case repository.PortalHasUser:
		b = b.Where(sq.Expr(portalExists))
	case repository.PortalNoUser:
		b = b.Where(sq.Expr("NOT " + portalExists))
	}
	b = b.OrderBy(orderBy(tenantSortColumns, f.Sort, "first_name", "t.id"))
	return withLimit(b, f.Limit).ToSql()
}

// ListTenants inquilinos con su cadena unidad/edificio/zona y si tienen cuenta de portal.
func (r *ListingRepo) ListTenants(ctx context.Context, f repository.TenantFilter) ([]*repository.TenantRow, error) {
	query, args, err := tenantsQuery(f)
	if err != nil {
		return nil, fmt.Errorf("build tenants query: %w", err)
	}
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list tenants: %w", err)
	}
	defer rows.Close()

	var out []*repository.TenantRow
	for rows.Next() {
		var row repository.TenantRow
		t := &row.Tenant
		if err := rows.Scan(
			&t.ID, &t.Title, &t.FirstName, &t.LastName, &t.Email, &t.Phone, &t.UnitID, &t.Rent,
			&t.LeaseStartDate, &t.LeaseEndDate, &t.RentDueDate, &t.Status, &t.CreatedAt, &t.UpdatedAt,
			&row.UnitName, &row.UnitSlug, &row.BuildingName, &row.BuildingSlug, &row.ZoneName, &row.ZoneSlug,
			&row.HasPortalAccess,
		); err != nil {
			return nil, fmt.Errorf("scan tenant row: %w", err)
		}
		out = append(out, &row)
	}
	return out, rows.Err()
}

// UnitTypes tipos de unidad distintos, en orden alfabético.
func (r *ListingRepo) UnitTypes(ctx context.Context) ([]string, error) {
	rows, err := r.q.Query(ctx, `SELECT DISTINCT type FROM units WHERE type <> '' ORDER BY type`)
	if err != nil {
		return nil, fmt.Errorf("list unit types: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var t string
		if err := rows.Scan(&t); err != nil {
			return nil, fmt.Errorf("scan unit type: %w", err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}
