package services

import (
	"context"

	"github.com/cashtrackr/cashtrackr-api/internal/models"
	"github.com/cashtrackr/cashtrackr-api/internal/repository"
	"github.com/shopspring/decimal"
)

type ExpenseService struct {
	expenseRepo *repository.ExpenseRepository
}

func NewExpenseService(expenseRepo *repository.ExpenseRepository) *ExpenseService {
	return &ExpenseService{expenseRepo: expenseRepo}
}

func (s *ExpenseService) Create(ctx context.Context, budgetID uint, name string, amount decimal.Decimal) (*models.Expense, error) {
	expense := &models.Expense{
		Name:     name,
		Amount:   amount,
		BudgetID: budgetID,
	}
	if err := s.expenseRepo.Create(ctx, expense); err != nil {
		return nil, err
	}
	return expense, nil
}

func (s *ExpenseService) Get(ctx context.Context, id uint) (*models.Expense, error) {
	return s.expenseRepo.FindByID(ctx, id)
}

func (s *ExpenseService) Update(ctx context.Context, expense *models.Expense, name string, amount decimal.Decimal) error {
	expense.Name = name
	expense.Amount = amount
	return s.expenseRepo.Update(ctx, expense)
}

func (s *ExpenseService) Delete(ctx context.Context, expense *models.Expense) error {
	return s.expenseRepo.Delete(ctx, expense)
}
