package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jhoicas/estatedesk-api/internal/application/auth"
	"github.com/jhoicas/estatedesk-api/internal/application/dto"
	"github.com/jhoicas/estatedesk-api/internal/infrastructure/postgres"
	"github.com/jhoicas/estatedesk-api/pkg/config"
)

func newStaffCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "staff",
		Short: "Gestión de usuarios del staff",
	}
	cmd.AddCommand(newStaffCreateCmd())
	return cmd
}

func newStaffCreateCmd() *cobra.Command {
	var in dto.CreateStaffRequest
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Crea un usuario del staff (el primero no puede crearse desde la API)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(in.Password) < 8 {
				return fmt.Errorf("la contraseña debe tener al menos 8 caracteres")
			}
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("cargar configuración: %w", err)
			}
			ctx := context.Background()
			pool, err := postgres.NewPool(ctx, cfg.DB)
			if err != nil {
				return err
			}
			defer pool.Close()

			uc := auth.NewAuthUseCase(postgres.NewUserRepository(pool), auth.JWTConfig{})
			user, err := uc.CreateStaff(ctx, in)
			if err != nil {
				return fmt.Errorf("crear usuario: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Usuario %s creado (id %d).\n", user.Email, user.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&in.Email, "email", "", "email del usuario")
	cmd.Flags().StringVar(&in.Password, "password", "", "contraseña (mínimo 8 caracteres)")
	cmd.Flags().StringVar(&in.Name, "name", "", "nombre visible")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}
