package postgres

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/estatedesk-api/internal/domain/entity"
	"github.com/jhoicas/estatedesk-api/internal/domain/repository"
)

var _ repository.StatsRepository = (*StatsRepo)(nil)

// StatsRepo agregados de solo lectura para las tarjetas de los listados.
// Siempre sobre las tablas completas, nunca sobre el listado filtrado.
type StatsRepo struct {
	q Querier
}

// NewStatsRepository construye el adaptador de estadísticas.
func NewStatsRepository(q Querier) *StatsRepo {
	return &StatsRepo{q: q}
}

func (r *StatsRepo) scalar(ctx context.Context, b sq.SelectBuilder, dest any) error {
	query, args, err := b.ToSql()
	if err != nil {
		return err
	}
	return r.q.QueryRow(ctx, query, args...).Scan(dest)
}

// CountBuildings total de edificios.
func (r *StatsRepo) CountBuildings(ctx context.Context) (int, error) {
	var n int
	if err := r.scalar(ctx, psql.Select("COUNT(*)").From("buildings"), &n); err != nil {
		return 0, fmt.Errorf("stats.CountBuildings: %w", err)
	}
	return n, nil
}

// CountUnits total de unidades, opcionalmente con un estado de ocupación.
func (r *StatsRepo) CountUnits(ctx context.Context, vacancy entity.Vacancy) (int, error) {
	b := psql.Select("COUNT(*)").From("units")
	if vacancy != "" {
		b = b.Where(sq.Eq{"vacancy": string(vacancy)})
	}
	var n int
	if err := r.scalar(ctx, b, &n); err != nil {
		return 0, fmt.Errorf("stats.CountUnits: %w", err)
	}
	return n, nil
}

// CountTenants total de inquilinos, opcionalmente con un estado.
func (r *StatsRepo) CountTenants(ctx context.Context, status entity.TenantStatus) (int, error) {
	b := psql.Select("COUNT(*)").From("tenants")
	if status != "" {
		b = b.Where(sq.Eq{"status": string(status)})
	}
	var n int
	if err := r.scalar(ctx, b, &n); err != nil {
		return 0, fmt.Errorf("stats.CountTenants: %w", err)
	}
	return n, nil
}

// AverageRent renta promedio de los inquilinos con el estado dado; cero si no hay ninguno.
func (r *StatsRepo) AverageRent(ctx context.Context, status entity.TenantStatus) (decimal.Decimal, error) {
	b := psql.Select("COALESCE(AVG(rent), 0)").From("tenants")
	if status != "" {
		b = b.Where(sq.Eq{"status": string(status)})
	}
	var avg decimal.Decimal
	if err := r.scalar(ctx, b, &avg); err != nil {
		return decimal.Zero, fmt.Errorf("stats.AverageRent: %w", err)
	}
	return avg, nil
}
