package main

import (
	"fmt"
	"os"

	"github.com/cashtrackr/cashtrackr-api/internal/config"
	"github.com/cashtrackr/cashtrackr-api/internal/database"
	"github.com/cashtrackr/cashtrackr-api/internal/logging"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

var rootCmd = &cobra.Command{
	Use:   "cashtrackr",
	Short: "CashTrackr - personal budget and expense tracking",
	Long: `CashTrackr is a REST API for tracking personal budgets and expenses.

Run 'cashtrackr serve' to start the server, 'cashtrackr migrate' to prepare
the database, or 'cashtrackr mail-worker' to deliver queued emails.`,
	SilenceUsage: true,
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(createUserCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(mailWorkerCmd)
}

// bootstrap loads configuration, installs the logger and opens a migrated
// database.
func bootstrap() (*config.Config, *gorm.DB, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	logging.New(cfg.Log.Level, cfg.Log.Format)

	db, err := database.Connect(cfg.Database.URL)
	if err != nil {
		return nil, nil, err
	}
	if err := database.Migrate(db); err != nil {
		return nil, nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return cfg, db, nil
}
