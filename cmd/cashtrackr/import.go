package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/cashtrackr/cashtrackr-api/internal/repository"
	"github.com/cashtrackr/cashtrackr-api/internal/services"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

var (
	importFile  string
	importEmail string
	strictMode  bool
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import budgets from JSON file",
	Long: `Import budgets and their expenses for an existing account.

Expected JSON format:
[
  {"name": "Casa", "amount": 2000, "expenses": [{"name": "Renta", "amount": 1200}]},
  {"name": "Ocio", "amount": "350.50"}
]

By default, entries with an empty name or a non positive amount are skipped.
Use --strict to fail on any validation error instead.`,
	Example: `  cashtrackr import -f budgets.json -e juan@correo.com
  cashtrackr import -f budgets.json -e juan@correo.com --strict`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, db, err := bootstrap()
		if err != nil {
			return err
		}
		return runImport(cmd.Context(), db, importFile, importEmail, strictMode)
	},
}

func init() {
	importCmd.Flags().StringVarP(&importFile, "file", "f", "", "JSON file to import (required)")
	importCmd.Flags().StringVarP(&importEmail, "email", "e", "", "Email of the account that owns the budgets (required)")
	importCmd.Flags().BoolVar(&strictMode, "strict", false, "Fail on any validation error")
	importCmd.MarkFlagRequired("file")
	importCmd.MarkFlagRequired("email")
}

func runImport(ctx context.Context, db *gorm.DB, path, email string, strict bool) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}

	var entries []services.BudgetImport
	if err := json.Unmarshal(data, &entries); err != nil {
		return fmt.Errorf("failed to parse JSON: %w", err)
	}

	budgetService := services.NewBudgetService(repository.NewBudgetRepository(db))
	expenseService := services.NewExpenseService(repository.NewExpenseRepository(db))
	importService := services.NewImportService(repository.NewUserRepository(db), budgetService, expenseService)

	slog.Info("starting import", "budgets", len(entries), "file", path, "email", email)

	result, err := importService.ImportBudgets(ctx, email, entries, strict)
	if err != nil {
		return fmt.Errorf("import failed: %w", err)
	}

	slog.Info("import complete",
		"budgets", result.Budgets,
		"expenses", result.Expenses,
		"skipped", result.Skipped)
	return nil
}
