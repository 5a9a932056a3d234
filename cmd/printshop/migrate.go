package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Simplici0/printdesk/internal/db"
	"github.com/Simplici0/printdesk/internal/migrations"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending database migrations",
	RunE:  runMigrate,
}

func init() {
	migrateCmd.Flags().StringVar(&migrationsDirFlag, "dir", "", "Migrations directory (default $MIGRATIONS_DIR or migrations)")
	rootCmd.AddCommand(migrateCmd)
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	database, err := db.Open(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer database.Close()

	if err := migrations.Up(database, cfg.MigrationsDir); err != nil {
		return err
	}

	version, err := migrations.Version(database)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "database at version %d\n", version)
	return nil
}
