package repository

import (
	"context"
	"errors"

	"github.com/cashtrackr/cashtrackr-api/internal/models"
	"gorm.io/gorm"
)

type BudgetRepository struct {
	db *gorm.DB
}

func NewBudgetRepository(db *gorm.DB) *BudgetRepository {
	return &BudgetRepository{db: db}
}

func (r *BudgetRepository) Create(ctx context.Context, budget *models.Budget) error {
	return r.db.WithContext(ctx).Create(budget).Error
}

// FindByID loads a budget together with its expenses.
func (r *BudgetRepository) FindByID(ctx context.Context, id uint) (*models.Budget, error) {
	var budget models.Budget
	err := r.db.WithContext(ctx).
		Preload("Expenses", func(db *gorm.DB) *gorm.DB {
			return db.Order("expenses.created_at ASC")
		}).
		First(&budget, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &budget, nil
}

func (r *BudgetRepository) ListByUserID(ctx context.Context, userID uint) ([]models.Budget, error) {
	var budgets []models.Budget
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&budgets).Error
	return budgets, err
}

// Update writes the scalar columns only; expenses are managed separately.
func (r *BudgetRepository) Update(ctx context.Context, budget *models.Budget) error {
	return r.db.WithContext(ctx).Model(budget).
		Select("name", "amount", "updated_at").
		Updates(budget).Error
}

// Delete removes the budget and its expenses in one transaction.
func (r *BudgetRepository) Delete(ctx context.Context, budget *models.Budget) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("budget_id = ?", budget.ID).Delete(&models.Expense{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Budget{}, budget.ID).Error
	})
}
