// Command estatectl tareas de operación: migraciones y alta de usuarios del staff.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

const errExitCode = 1

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(errExitCode)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "estatectl",
		Short:         "Herramientas de operación de EstateDesk",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.AddCommand(newMigrateCmd(), newStaffCmd())
	return cmd
}
