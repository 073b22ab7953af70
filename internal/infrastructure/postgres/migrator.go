package postgres

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"sort"
	"strconv"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// MigrationStatus estado de una migración embebida frente a la base.
type MigrationStatus struct {
	Version uint
	Name    string
	Applied bool
}

// Migrator aplica y revierte las migraciones SQL embebidas en el binario.
type Migrator struct {
	m *migrate.Migrate
}

// NewMigrator abre el migrador contra la base del connection string (postgres:// o postgresql://).
func NewMigrator(databaseURL string) (*Migrator, error) {
	src, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return nil, fmt.Errorf("migrations source: %w", err)
	}
	m, err := migrate.NewWithSourceInstance("iofs", src, pgx5URL(databaseURL))
	if err != nil {
		return nil, fmt.Errorf("open migrator: %w", err)
	}
	return &Migrator{m: m}, nil
}

// pgx5URL cambia el esquema al registrado por el driver pgx/v5 de golang-migrate.
func pgx5URL(databaseURL string) string {
	for _, prefix := range []string{"postgresql://", "postgres://"} {
		if strings.HasPrefix(databaseURL, prefix) {
			return "pgx5://" + strings.TrimPrefix(databaseURL, prefix)
		}
	}
	return databaseURL
}

// Up aplica todas las migraciones pendientes. Sin cambios no es error.
func (m *Migrator) Up() error {
	if err := m.m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migrate up: %w", err)
	}
	return nil
}

// Down revierte la última migración aplicada.
func (m *Migrator) Down() error {
	if err := m.m.Steps(-1); err != nil {
		if errors.Is(err, fs.ErrNotExist) || errors.Is(err, migrate.ErrNilVersion) {
			return fmt.Errorf("migrate down: no hay migraciones aplicadas")
		}
		return fmt.Errorf("migrate down: %w", err)
	}
	return nil
}

// Status lista las migraciones embebidas marcando las aplicadas; dirty indica una migración a medias.
func (m *Migrator) Status() (list []MigrationStatus, dirty bool, err error) {
	current, dirty, err := m.m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return nil, false, fmt.Errorf("migrate version: %w", err)
	}
	list, err = embeddedMigrations()
	if err != nil {
		return nil, false, err
	}
	for i := range list {
		list[i].Applied = current > 0 && list[i].Version <= current
	}
	return list, dirty, nil
}

// Close libera la conexión del migrador.
func (m *Migrator) Close() error {
	srcErr, dbErr := m.m.Close()
	return errors.Join(srcErr, dbErr)
}

// embeddedMigrations versiones y nombres de los archivos *.up.sql embebidos.
func embeddedMigrations() ([]MigrationStatus, error) {
	entries, err := fs.ReadDir(migrationsFS, "migrations")
	if err != nil {
		return nil, fmt.Errorf("read migrations: %w", err)
	}
	var out []MigrationStatus
	for _, e := range entries {
		name := e.Name()
		if !strings.HasSuffix(name, ".up.sql") {
			continue
		}
		base := strings.TrimSuffix(name, ".up.sql")
		versionPart, label, _ := strings.Cut(base, "_")
		v, err := strconv.ParseUint(versionPart, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("migración con versión inválida %q", name)
		}
		out = append(out, MigrationStatus{Version: uint(v), Name: label})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Version < out[j].Version })
	return out, nil
}
