package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/cashtrackr/cashtrackr-api/internal/services"
	"github.com/cashtrackr/cashtrackr-api/internal/validation"
	"github.com/gin-gonic/gin"
)

type Resource string

const (
	ResourceBudget  Resource = "budget"
	ResourceExpense Resource = "expense"
)

// accessPolicy describes how one resource kind is resolved and checked.
type accessPolicy struct {
	param    string
	notFound string
	// status answered when the principal may not touch the resource
	denied int
	load   func(ctx context.Context, s *Scope, id uint) (bool, error)
	owns   func(s *Scope) bool
}

// OwnershipGuard validates a path id, loads the row into the request scope
// and rejects principals that do not own it.
type OwnershipGuard struct {
	policies map[Resource]accessPolicy
}

func NewOwnershipGuard(budgets *services.BudgetService, expenses *services.ExpenseService) *OwnershipGuard {
	return &OwnershipGuard{
		policies: map[Resource]accessPolicy{
			ResourceBudget: {
				param:    "budgetId",
				notFound: "Presupuesto no encontrado",
				denied:   http.StatusUnauthorized,
				load: func(ctx context.Context, s *Scope, id uint) (bool, error) {
					budget, err := budgets.Get(ctx, id)
					if err != nil || budget == nil {
						return false, err
					}
					s.Budget = budget
					return true, nil
				},
				owns: func(s *Scope) bool {
					return s.User != nil && s.Budget.UserID == s.User.ID
				},
			},
			ResourceExpense: {
				param:    "expenseId",
				notFound: "Gasto no encontrado",
				denied:   http.StatusForbidden,
				load: func(ctx context.Context, s *Scope, id uint) (bool, error) {
					expense, err := expenses.Get(ctx, id)
					if err != nil || expense == nil {
						return false, err
					}
					s.Expense = expense
					return true, nil
				},
				owns: func(s *Scope) bool {
					return s.Budget != nil && s.Expense.BudgetID == s.Budget.ID
				},
			},
		},
	}
}

// Budget guards routes carrying :budgetId. Requires RequireAuth upstream.
func (g *OwnershipGuard) Budget() []gin.HandlerFunc {
	return g.chain(ResourceBudget)
}

// Expense guards routes carrying :expenseId below an already guarded budget.
func (g *OwnershipGuard) Expense() []gin.HandlerFunc {
	return g.chain(ResourceExpense)
}

func (g *OwnershipGuard) chain(resource Resource) []gin.HandlerFunc {
	p := g.policies[resource]
	return []gin.HandlerFunc{
		g.validateID(p),
		g.resolve(resource, p),
		g.authorize(p),
	}
}

func (g *OwnershipGuard) validateID(p accessPolicy) gin.HandlerFunc {
	return func(c *gin.Context) {
		if errs := validation.Run(c, validation.ID(p.param)); len(errs) > 0 {
			c.AbortWithStatusJSON(http.StatusBadRequest, validation.ErrorsResponse{Errors: errs})
			return
		}
		c.Next()
	}
}

func (g *OwnershipGuard) resolve(resource Resource, p accessPolicy) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param(p.param), 10, 63)
		if err != nil {
			// positive but beyond any stored id
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": p.notFound})
			return
		}

		found, err := p.load(c.Request.Context(), scopeOf(c), uint(id))
		if err != nil {
			slog.ErrorContext(c.Request.Context(), "failed to load resource",
				"resource", resource, "id", id, "error", err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Hubo un error"})
			return
		}
		if !found {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": p.notFound})
			return
		}
		c.Next()
	}
}

func (g *OwnershipGuard) authorize(p accessPolicy) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !p.owns(scopeOf(c)) {
			c.AbortWithStatusJSON(p.denied, gin.H{"error": "Acción no válida"})
			return
		}
		c.Next()
	}
}
