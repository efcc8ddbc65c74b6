package handlers

import (
	"net/http"

	"github.com/cashtrackr/cashtrackr-api/internal/middleware"
	"github.com/cashtrackr/cashtrackr-api/internal/models"
	"github.com/cashtrackr/cashtrackr-api/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type BudgetHandler struct {
	budgetService *services.BudgetService
}

func NewBudgetHandler(budgetService *services.BudgetService) *BudgetHandler {
	return &BudgetHandler{budgetService: budgetService}
}

// AmountRequest is the body shared by budgets and expenses.
type AmountRequest struct {
	Name   string          `json:"name" example:"Gastos"`
	Amount decimal.Decimal `json:"amount" swaggertype:"number" example:"3000"`
}

// BudgetDetail always carries the expenses list, empty or not.
type BudgetDetail struct {
	models.Budget
	Expenses []models.Expense `json:"expenses"`
}

// CreateBudget godoc
// @Summary Create a budget
// @Tags budgets
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body AmountRequest true "Budget"
// @Success 201 {string} string "Presupuesto creado"
// @Failure 400 {object} validation.ErrorsResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /budgets [post]
func (h *BudgetHandler) CreateBudget(c *gin.Context) {
	var req AmountRequest
	if !bindBody(c, &req) {
		return
	}

	user := middleware.CurrentUser(c)
	if _, err := h.budgetService.Create(c.Request.Context(), user.ID, req.Name, req.Amount); err != nil {
		serverError(c, err)
		return
	}

	c.JSON(http.StatusCreated, "Presupuesto creado")
}

// ListBudgets godoc
// @Summary List budgets
// @Description Budgets owned by the caller, newest first
// @Tags budgets
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.Budget
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /budgets [get]
func (h *BudgetHandler) ListBudgets(c *gin.Context) {
	budgets, err := h.budgetService.List(c.Request.Context(), middleware.CurrentUser(c).ID)
	if err != nil {
		serverError(c, err)
		return
	}

	c.JSON(http.StatusOK, budgets)
}

// GetBudget godoc
// @Summary Get a budget with its expenses
// @Tags budgets
// @Produce json
// @Security BearerAuth
// @Param budgetId path int true "Budget ID"
// @Success 200 {object} BudgetDetail
// @Failure 400 {object} validation.ErrorsResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /budgets/{budgetId} [get]
func (h *BudgetHandler) GetBudget(c *gin.Context) {
	budget := middleware.ScopeFrom(c).Budget

	detail := BudgetDetail{Budget: *budget, Expenses: budget.Expenses}
	if detail.Expenses == nil {
		detail.Expenses = []models.Expense{}
	}
	c.JSON(http.StatusOK, detail)
}

// UpdateBudget godoc
// @Summary Update a budget
// @Tags budgets
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param budgetId path int true "Budget ID"
// @Param request body AmountRequest true "Budget"
// @Success 200 {string} string "Presupuesto actualizado"
// @Failure 400 {object} validation.ErrorsResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /budgets/{budgetId} [put]
func (h *BudgetHandler) UpdateBudget(c *gin.Context) {
	var req AmountRequest
	if !bindBody(c, &req) {
		return
	}

	budget := middleware.ScopeFrom(c).Budget
	if err := h.budgetService.Update(c.Request.Context(), budget, req.Name, req.Amount); err != nil {
		serverError(c, err)
		return
	}

	c.JSON(http.StatusOK, "Presupuesto actualizado")
}

// DeleteBudget godoc
// @Summary Delete a budget and its expenses
// @Tags budgets
// @Produce json
// @Security BearerAuth
// @Param budgetId path int true "Budget ID"
// @Success 200 {string} string "Presupuesto eliminado"
// @Failure 400 {object} validation.ErrorsResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /budgets/{budgetId} [delete]
func (h *BudgetHandler) DeleteBudget(c *gin.Context) {
	if err := h.budgetService.Delete(c.Request.Context(), middleware.ScopeFrom(c).Budget); err != nil {
		serverError(c, err)
		return
	}

	c.JSON(http.StatusOK, "Presupuesto eliminado")
}
