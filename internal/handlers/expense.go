package handlers

import (
	"net/http"

	"github.com/cashtrackr/cashtrackr-api/internal/middleware"
	"github.com/cashtrackr/cashtrackr-api/internal/services"
	"github.com/gin-gonic/gin"
)

type ExpenseHandler struct {
	expenseService *services.ExpenseService
}

func NewExpenseHandler(expenseService *services.ExpenseService) *ExpenseHandler {
	return &ExpenseHandler{expenseService: expenseService}
}

// CreateExpense godoc
// @Summary Add an expense to a budget
// @Tags expenses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param budgetId path int true "Budget ID"
// @Param request body AmountRequest true "Expense"
// @Success 201 {string} string "Gasto creado"
// @Failure 400 {object} validation.ErrorsResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /budgets/{budgetId}/expenses [post]
func (h *ExpenseHandler) CreateExpense(c *gin.Context) {
	var req AmountRequest
	if !bindBody(c, &req) {
		return
	}

	budget := middleware.ScopeFrom(c).Budget
	if _, err := h.expenseService.Create(c.Request.Context(), budget.ID, req.Name, req.Amount); err != nil {
		serverError(c, err)
		return
	}

	c.JSON(http.StatusCreated, "Gasto creado")
}

// GetExpense godoc
// @Summary Get an expense
// @Tags expenses
// @Produce json
// @Security BearerAuth
// @Param budgetId path int true "Budget ID"
// @Param expenseId path int true "Expense ID"
// @Success 200 {object} models.Expense
// @Failure 400 {object} validation.ErrorsResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /budgets/{budgetId}/expenses/{expenseId} [get]
func (h *ExpenseHandler) GetExpense(c *gin.Context) {
	c.JSON(http.StatusOK, middleware.ScopeFrom(c).Expense)
}

// UpdateExpense godoc
// @Summary Update an expense
// @Tags expenses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param budgetId path int true "Budget ID"
// @Param expenseId path int true "Expense ID"
// @Param request body AmountRequest true "Expense"
// @Success 200 {string} string "Gasto actualizado"
// @Failure 400 {object} validation.ErrorsResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /budgets/{budgetId}/expenses/{expenseId} [put]
func (h *ExpenseHandler) UpdateExpense(c *gin.Context) {
	var req AmountRequest
	if !bindBody(c, &req) {
		return
	}

	expense := middleware.ScopeFrom(c).Expense
	if err := h.expenseService.Update(c.Request.Context(), expense, req.Name, req.Amount); err != nil {
		serverError(c, err)
		return
	}

	c.JSON(http.StatusOK, "Gasto actualizado")
}

// DeleteExpense godoc
// @Summary Delete an expense
// @Tags expenses
// @Produce json
// @Security BearerAuth
// @Param budgetId path int true "Budget ID"
// @Param expenseId path int true "Expense ID"
// @Success 200 {string} string "Gasto eliminado"
// @Failure 400 {object} validation.ErrorsResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /budgets/{budgetId}/expenses/{expenseId} [delete]
func (h *ExpenseHandler) DeleteExpense(c *gin.Context) {
	if err := h.expenseService.Delete(c.Request.Context(), middleware.ScopeFrom(c).Expense); err != nil {
		serverError(c, err)
		return
	}

	c.JSON(http.StatusOK, "Gasto eliminado")
}
