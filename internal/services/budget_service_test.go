package services

import (
	"context"
	"testing"

	"github.com/cashtrackr/cashtrackr-api/internal/database"
	"github.com/cashtrackr/cashtrackr-api/internal/models"
	"github.com/cashtrackr/cashtrackr-api/internal/repository"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type budgetFixture struct {
	users    *repository.UserRepository
	budgets  *BudgetService
	expenses *ExpenseService
	imports  *ImportService
}

func setupBudgetTestDB(t *testing.T) *budgetFixture {
	db, err := database.Connect(":memory:")
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	f := &budgetFixture{
		users:    repository.NewUserRepository(db),
		budgets:  NewBudgetService(repository.NewBudgetRepository(db)),
		expenses: NewExpenseService(repository.NewExpenseRepository(db)),
	}
	f.imports = NewImportService(f.users, f.budgets, f.expenses)
	return f
}

func (f *budgetFixture) createUser(t *testing.T, email string) *models.User {
	user := &models.User{Name: "Test", Email: email, Password: "hash", Confirmed: true}
	require.NoError(t, f.users.Create(context.Background(), user))
	return user
}

func TestBudgetService_CreateAndList(t *testing.T) {
	f := setupBudgetTestDB(t)
	ctx := context.Background()
	user := f.createUser(t, "juan@test.com")

	empty, err := f.budgets.List(ctx, user.ID)
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Len(t, empty, 0)

	budget, err := f.budgets.Create(ctx, user.ID, "Gastos", decimal.NewFromInt(3000))
	require.NoError(t, err)
	assert.Equal(t, user.ID, budget.UserID)

	list, err := f.budgets.List(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Gastos", list[0].Name)
}

func TestBudgetService_UpdateAndDelete(t *testing.T) {
	f := setupBudgetTestDB(t)
	ctx := context.Background()
	user := f.createUser(t, "juan@test.com")

	budget, err := f.budgets.Create(ctx, user.ID, "Gastos", decimal.NewFromInt(3000))
	require.NoError(t, err)
	_, err = f.expenses.Create(ctx, budget.ID, "Comida", decimal.NewFromInt(100))
	require.NoError(t, err)

	require.NoError(t, f.budgets.Update(ctx, budget, "Vacaciones", decimal.RequireFromString("4500.50")))

	found, err := f.budgets.Get(ctx, budget.ID)
	require.NoError(t, err)
	assert.Equal(t, "Vacaciones", found.Name)
	assert.True(t, decimal.RequireFromString("4500.5").Equal(found.Amount))
	assert.Len(t, found.Expenses, 1)

	require.NoError(t, f.budgets.Delete(ctx, found))
	gone, err := f.budgets.Get(ctx, budget.ID)
	assert.NoError(t, err)
	assert.Nil(t, gone)
}

func TestExpenseService_Lifecycle(t *testing.T) {
	f := setupBudgetTestDB(t)
	ctx := context.Background()
	user := f.createUser(t, "juan@test.com")
	budget, err := f.budgets.Create(ctx, user.ID, "Gastos", decimal.NewFromInt(3000))
	require.NoError(t, err)

	expense, err := f.expenses.Create(ctx, budget.ID, "Comida", decimal.NewFromInt(100))
	require.NoError(t, err)
	assert.Equal(t, budget.ID, expense.BudgetID)

	require.NoError(t, f.expenses.Update(ctx, expense, "Cena", decimal.NewFromInt(250)))
	found, err := f.expenses.Get(ctx, expense.ID)
	require.NoError(t, err)
	assert.Equal(t, "Cena", found.Name)

	require.NoError(t, f.expenses.Delete(ctx, found))
	gone, err := f.expenses.Get(ctx, expense.ID)
	assert.NoError(t, err)
	assert.Nil(t, gone)
}

func TestImportService_ImportBudgets(t *testing.T) {
	f := setupBudgetTestDB(t)
	ctx := context.Background()
	user := f.createUser(t, "juan@test.com")

	entries := []BudgetImport{
		{
			Name:   "Casa",
			Amount: decimal.NewFromInt(2000),
			Expenses: []ExpenseImport{
				{Name: "Renta", Amount: decimal.NewFromInt(1200)},
				{Name: "Luz", Amount: decimal.NewFromInt(80)},
			},
		},
		{Name: "", Amount: decimal.NewFromInt(10)},
		{Name: "Ocio", Amount: decimal.Zero},
	}

	result, err := f.imports.ImportBudgets(ctx, "juan@test.com", entries, false)
	require.NoError(t, err)
	assert.Equal(t, ImportResult{Budgets: 1, Expenses: 2, Skipped: 2}, result)

	list, err := f.budgets.List(ctx, user.ID)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestImportService_Strict(t *testing.T) {
	f := setupBudgetTestDB(t)
	ctx := context.Background()
	f.createUser(t, "juan@test.com")

	entries := []BudgetImport{{Name: "Ocio", Amount: decimal.NewFromInt(-5)}}

	_, err := f.imports.ImportBudgets(ctx, "juan@test.com", entries, true)
	assert.ErrorIs(t, err, ErrInvalidImport)

	_, err = f.imports.ImportBudgets(ctx, "nobody@test.com", entries, false)
	assert.Equal(t, ErrUserNotFound, err)
}
