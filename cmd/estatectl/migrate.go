package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/jhoicas/estatedesk-api/internal/infrastructure/postgres"
	"github.com/jhoicas/estatedesk-api/pkg/config"
)

func newMigrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Aplica, revierte o lista las migraciones del esquema",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Aplica todas las migraciones pendientes",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return withMigrator(func(m *postgres.Migrator) error {
					if err := m.Up(); err != nil {
						return err
					}
					fmt.Fprintln(cmd.OutOrStdout(), "Migraciones aplicadas.")
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "down",
			Short: "Revierte la última migración aplicada",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return withMigrator(func(m *postgres.Migrator) error {
					if err := m.Down(); err != nil {
						return err
					}
					fmt.Fprintln(cmd.OutOrStdout(), "Última migración revertida.")
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "status",
			Short: "Lista las migraciones y si están aplicadas",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return withMigrator(func(m *postgres.Migrator) error {
					list, dirty, err := m.Status()
					if err != nil {
						return err
					}
					printStatus(cmd.OutOrStdout(), list, dirty)
					return nil
				})
			},
		},
	)
	return cmd
}

func withMigrator(fn func(m *postgres.Migrator) error) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("cargar configuración: %w", err)
	}
	m, err := postgres.NewMigrator(cfg.DB.ConnectionString())
	if err != nil {
		return err
	}
	defer m.Close()
	return fn(m)
}

func printStatus(w io.Writer, list []postgres.MigrationStatus, dirty bool) {
	fmt.Fprintf(w, "%-16s  %-30s  %-8s\n", "Version", "Name", "Status")
	for _, s := range list {
		status := "Pending"
		if s.Applied {
			status = "Applied"
		}
		fmt.Fprintf(w, "%-16d  %-30s  %-8s\n", s.Version, s.Name, status)
	}
	if dirty {
		fmt.Fprintln(w, "ATENCIÓN: la última migración quedó a medias (dirty); revise el esquema antes de continuar.")
	}
}
