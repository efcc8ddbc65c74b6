package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/cashtrackr/cashtrackr-api/internal/repository"
	"github.com/shopspring/decimal"
)

var ErrInvalidImport = errors.New("invalid import entry")

type ExpenseImport struct {
	Name   string          `json:"name"`
	Amount decimal.Decimal `json:"amount"`
}

type BudgetImport struct {
	Name     string          `json:"name"`
	Amount   decimal.Decimal `json:"amount"`
	Expenses []ExpenseImport `json:"expenses"`
}

type ImportResult struct {
	Budgets  int
	Expenses int
	Skipped  int
}

// ImportService loads budgets for an existing account from an export file.
type ImportService struct {
	userRepo *repository.UserRepository
	budgets  *BudgetService
	expenses *ExpenseService
}

func NewImportService(userRepo *repository.UserRepository, budgets *BudgetService, expenses *ExpenseService) *ImportService {
	return &ImportService{
		userRepo: userRepo,
		budgets:  budgets,
		expenses: expenses,
	}
}

// ImportBudgets creates every valid budget with its expenses. Invalid
// entries are skipped and logged unless strict is set, in which case the
// first one aborts the import.
func (s *ImportService) ImportBudgets(ctx context.Context, email string, entries []BudgetImport, strict bool) (ImportResult, error) {
	var result ImportResult

	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return result, err
	}
	if user == nil {
		return result, ErrUserNotFound
	}

	for _, entry := range entries {
		if err := validateBudgetImport(entry); err != nil {
			if strict {
				return result, fmt.Errorf("budget %q: %w", entry.Name, err)
			}
			slog.Warn("skipping budget", "name", entry.Name, "error", err)
			result.Skipped++
			continue
		}

		budget, err := s.budgets.Create(ctx, user.ID, strings.TrimSpace(entry.Name), entry.Amount)
		if err != nil {
			return result, fmt.Errorf("failed to create budget %q: %w", entry.Name, err)
		}
		result.Budgets++

		for _, e := range entry.Expenses {
			if _, err := s.expenses.Create(ctx, budget.ID, strings.TrimSpace(e.Name), e.Amount); err != nil {
				return result, fmt.Errorf("failed to create expense %q: %w", e.Name, err)
			}
			result.Expenses++
		}

		slog.Info("imported budget", "name", budget.Name, "amount", budget.Amount.String(), "expenses", len(entry.Expenses))
	}

	return result, nil
}

func validateBudgetImport(entry BudgetImport) error {
	if strings.TrimSpace(entry.Name) == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidImport)
	}
	if !entry.Amount.IsPositive() {
		return fmt.Errorf("%w: amount must be greater than 0", ErrInvalidImport)
	}
	for _, e := range entry.Expenses {
		if strings.TrimSpace(e.Name) == "" {
			return fmt.Errorf("%w: expense with empty name", ErrInvalidImport)
		}
		if !e.Amount.IsPositive() {
			return fmt.Errorf("%w: expense %q amount must be greater than 0", ErrInvalidImport, e.Name)
		}
	}
	return nil
}
