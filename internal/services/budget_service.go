package services

import (
	"context"

	"github.com/cashtrackr/cashtrackr-api/internal/models"
	"github.com/cashtrackr/cashtrackr-api/internal/repository"
	"github.com/shopspring/decimal"
)

type BudgetService struct {
	budgetRepo *repository.BudgetRepository
}

func NewBudgetService(budgetRepo *repository.BudgetRepository) *BudgetService {
	return &BudgetService{budgetRepo: budgetRepo}
}

func (s *BudgetService) Create(ctx context.Context, userID uint, name string, amount decimal.Decimal) (*models.Budget, error) {
	budget := &models.Budget{
		Name:   name,
		Amount: amount,
		UserID: userID,
	}
	if err := s.budgetRepo.Create(ctx, budget); err != nil {
		return nil, err
	}
	return budget, nil
}

// List returns the user's budgets, newest first.
func (s *BudgetService) List(ctx context.Context, userID uint) ([]models.Budget, error) {
	budgets, err := s.budgetRepo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if budgets == nil {
		budgets = []models.Budget{}
	}
	return budgets, nil
}

// Get returns nil when no budget has the id. Expenses are loaded.
func (s *BudgetService) Get(ctx context.Context, id uint) (*models.Budget, error) {
	return s.budgetRepo.FindByID(ctx, id)
}

func (s *BudgetService) Update(ctx context.Context, budget *models.Budget, name string, amount decimal.Decimal) error {
	budget.Name = name
	budget.Amount = amount
	return s.budgetRepo.Update(ctx, budget)
}

func (s *BudgetService) Delete(ctx context.Context, budget *models.Budget) error {
	return s.budgetRepo.Delete(ctx, budget)
}
