// Package main implements the printshop maintenance CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Simplici0/printdesk/internal/config"
	"github.com/Simplici0/printdesk/internal/logging"
)

// cfg is loaded once logging is configured; non-empty flags override it.
var (
	cfg config.Config

	dbFlag            string
	logLevelFlag      string
	migrationsDirFlag string
)

var rootCmd = &cobra.Command{
	Use:           "printshop",
	Short:         "Print shop back office tools",
	Long:          "printshop prices print jobs and manages the estimate database used by the back office server.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		if err := logging.Configure(cmd.ErrOrStderr(), "info", true); err != nil {
			return err
		}
		cfg = config.Load()
		if dbFlag != "" {
			cfg.DBPath = dbFlag
		}
		if logLevelFlag != "" {
			cfg.LogLevel = logLevelFlag
		}
		if migrationsDirFlag != "" {
			cfg.MigrationsDir = migrationsDirFlag
		}
		return logging.Configure(cmd.ErrOrStderr(), cfg.LogLevel, cfg.IsDev())
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbFlag, "db", "", "SQLite database path (default $DB_PATH or ./dev.db)")
	rootCmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "", "Log level (default $LOG_LEVEL or info)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
