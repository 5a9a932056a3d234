package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Simplici0/printdesk/internal/db"
	"github.com/Simplici0/printdesk/internal/seed"
	"github.com/Simplici0/printdesk/internal/store"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Insert the default client and sample estimate",
	Long:  "Inserts the walk-in client and a priced sample estimate. Safe to run repeatedly.",
	RunE:  runSeed,
}

func init() {
	rootCmd.AddCommand(seedCmd)
}

func runSeed(cmd *cobra.Command, _ []string) error {
	database, err := db.Open(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer database.Close()

	stats, err := seed.Run(cmd.Context(), store.New(database))
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "seed inserted %d rows\n", stats.Inserts)
	return nil
}
