package main

import (
	"log/slog"
	"strings"

	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema and exit",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, _, err := bootstrap()
		if err != nil {
			return err
		}
		slog.Info("database ready", "driver", driverName(cfg.Database.URL))
		return nil
	},
}

func driverName(url string) string {
	if url == "" || url == ":memory:" || strings.HasPrefix(url, "sqlite:") {
		return "sqlite"
	}
	return "postgres"
}
