package commands

import (
	"fmt"

	"knowledge-base/services"

	"github.com/spf13/cobra"
)

var downSteps int

// migrateCmd represents the migrate command
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Manage the knowledge base schema",
	Long: `Apply or revert the knowledge base schema.

MySQL runs the embedded versioned migrations; postgres and sqlite are
created from the model definitions.

Subcommands:
  up       - Apply pending migrations
  down     - Revert migrations
  version  - Show the applied schema version`,
}

var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply pending migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		return services.Migrate(cmd.Context(), db, log)
	},
}

var migrateDownCmd = &cobra.Command{
	Use:   "down",
	Short: "Revert migrations",
	Long: `Revert applied migrations.

Examples:
  knowledge migrate down --steps 1     # Revert the last migration
  knowledge migrate down               # Revert everything`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return services.MigrateDown(cmd.Context(), db, downSteps, log)
	},
}

var migrateVersionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show the applied schema version",
	RunE: func(cmd *cobra.Command, args []string) error {
		version, dirty, ok, err := services.MigrationVersion(cmd.Context(), db)
		if err != nil {
			return err
		}
		if jsonOutput {
			if !ok {
				return printJSON(cmd, map[string]any{"version": nil, "dirty": false})
			}
			return printJSON(cmd, map[string]any{"version": version, "dirty": dirty})
		}
		if !ok {
			fmt.Fprintln(cmd.OutOrStdout(), "no versioned migrations applied")
			return nil
		}
		fmt.Fprintf(cmd.OutOrStdout(), "version %d (dirty: %t)\n", version, dirty)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
	migrateCmd.AddCommand(migrateUpCmd, migrateDownCmd, migrateVersionCmd)

	migrateDownCmd.Flags().IntVar(&downSteps, "steps", 0, "Number of migrations to revert (0 = all)")
}
