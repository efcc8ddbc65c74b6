package repository

import (
	"context"
	"errors"

	"github.com/cashtrackr/cashtrackr-api/internal/models"
	"gorm.io/gorm"
)

type ExpenseRepository struct {
	db *gorm.DB
}

func NewExpenseRepository(db *gorm.DB) *ExpenseRepository {
	return &ExpenseRepository{db: db}
}

func (r *ExpenseRepository) Create(ctx context.Context, expense *models.Expense) error {
	return r.db.WithContext(ctx).Create(expense).Error
}

func (r *ExpenseRepository) FindByID(ctx context.Context, id uint) (*models.Expense, error) {
	var expense models.Expense
	err := r.db.WithContext(ctx).First(&expense, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &expense, nil
}

func (r *ExpenseRepository) ListByBudgetID(ctx context.Context, budgetID uint) ([]models.Expense, error) {
	var expenses []models.Expense
	err := r.db.WithContext(ctx).
		Where("budget_id = ?", budgetID).
		Order("created_at ASC").
		Find(&expenses).Error
	return expenses, err
}

func (r *ExpenseRepository) Update(ctx context.Context, expense *models.Expense) error {
	return r.db.WithContext(ctx).Model(expense).
		Select("name", "amount", "updated_at").
		Updates(expense).Error
}

func (r *ExpenseRepository) Delete(ctx context.Context, expense *models.Expense) error {
	return r.db.WithContext(ctx).Delete(&models.Expense{}, expense.ID).Error
}
