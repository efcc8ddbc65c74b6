package middleware

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/cashtrackr/cashtrackr-api/internal/auth"
	"github.com/cashtrackr/cashtrackr-api/internal/database"
	"github.com/cashtrackr/cashtrackr-api/internal/mail"
	"github.com/cashtrackr/cashtrackr-api/internal/models"
	"github.com/cashtrackr/cashtrackr-api/internal/ratelimit"
	"github.com/cashtrackr/cashtrackr-api/internal/repository"
	"github.com/cashtrackr/cashtrackr-api/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type guardFixture struct {
	router   *gin.Engine
	sessions *auth.SessionTokens
	users    *repository.UserRepository
	budgets  *services.BudgetService
	expenses *services.ExpenseService
	loads    int
}

func setupGuardTest(t *testing.T) *guardFixture {
	gin.SetMode(gin.TestMode)

	db, err := database.Connect(":memory:")
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	f := &guardFixture{
		sessions: auth.NewSessionTokens("test-secret", time.Hour),
		users:    repository.NewUserRepository(db),
		budgets:  services.NewBudgetService(repository.NewBudgetRepository(db)),
		expenses: services.NewExpenseService(repository.NewExpenseRepository(db)),
	}
	authService := services.NewAuthService(f.users, f.sessions,
		mail.NewAuthEmails("test@test.com", "http://localhost"), mail.NewLogMailer(slog.Default()))

	authMiddleware := NewAuthMiddleware(f.sessions, authService)
	guard := NewOwnershipGuard(f.budgets, f.expenses)

	f.router = gin.New()
	api := f.router.Group("/budgets", authMiddleware.RequireAuth())
	api.GET("", func(c *gin.Context) {
		c.JSON(http.StatusOK, CurrentUser(c))
	})
	budget := api.Group("/:budgetId", guard.Budget()...)
	budget.GET("", func(c *gin.Context) {
		f.loads++
		c.JSON(http.StatusOK, ScopeFrom(c).Budget)
	})
	budget.GET("/expenses/:expenseId", append(guard.Expense(), func(c *gin.Context) {
		c.JSON(http.StatusOK, ScopeFrom(c).Expense)
	})...)

	return f
}

func (f *guardFixture) createUser(t *testing.T, email string) (*models.User, string) {
	user := &models.User{Name: "Test", Email: email, Password: "hash", Confirmed: true}
	require.NoError(t, f.users.Create(context.Background(), user))
	token, err := f.sessions.Issue(user.ID)
	require.NoError(t, err)
	return user, token
}

func (f *guardFixture) get(path, authorization string) (*httptest.ResponseRecorder, map[string]any) {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)

	var body map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &body)
	return w, body
}

func TestRequireAuth(t *testing.T) {
	f := setupGuardTest(t)
	user, token := f.createUser(t, "juan@test.com")

	w, body := f.get("/budgets", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "No autorizado", body["error"])

	w, body = f.get("/budgets", "Bearer")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Token no válido", body["error"])

	w, body = f.get("/budgets", "Bearer not_valid")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Token no válido", body["error"])

	w, body = f.get("/budgets", "Bearer "+token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(user.ID), body["id"])
	assert.Equal(t, "juan@test.com", body["email"])
	assert.NotContains(t, body, "password")
}

func TestRequireAuth_UnknownUser(t *testing.T) {
	f := setupGuardTest(t)

	token, err := f.sessions.Issue(999)
	require.NoError(t, err)

	w, body := f.get("/budgets", "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "No autorizado", body["error"])
}

func TestBudgetGuard(t *testing.T) {
	f := setupGuardTest(t)
	owner, ownerToken := f.createUser(t, "owner@test.com")
	_, otherToken := f.createUser(t, "other@test.com")

	budget, err := f.budgets.Create(context.Background(), owner.ID, "Gastos", decimal.NewFromInt(3000))
	require.NoError(t, err)

	w, body := f.get("/budgets/not_valid_id", "Bearer "+ownerToken)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	errs, ok := body["errors"].([]any)
	require.True(t, ok)
	require.Len(t, errs, 1)
	assert.Equal(t, "ID no válido", errs[0].(map[string]any)["msg"])
	assert.Equal(t, 0, f.loads)

	w, body = f.get("/budgets/4000", "Bearer "+ownerToken)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Presupuesto no encontrado", body["error"])

	w, _ = f.get("/budgets/99999999999999999999", "Bearer "+ownerToken)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, body = f.get("/budgets/"+itoa(budget.ID), "Bearer "+otherToken)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Acción no válida", body["error"])

	w, body = f.get("/budgets/"+itoa(budget.ID), "Bearer "+ownerToken)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Gastos", body["name"])
	assert.Equal(t, 1, f.loads)
}

func TestExpenseGuard(t *testing.T) {
	f := setupGuardTest(t)
	ctx := context.Background()
	owner, token := f.createUser(t, "owner@test.com")

	first, err := f.budgets.Create(ctx, owner.ID, "Casa", decimal.NewFromInt(1000))
	require.NoError(t, err)
	second, err := f.budgets.Create(ctx, owner.ID, "Ocio", decimal.NewFromInt(500))
	require.NoError(t, err)
	expense, err := f.expenses.Create(ctx, first.ID, "Renta", decimal.NewFromInt(700))
	require.NoError(t, err)

	w, body := f.get("/budgets/"+itoa(first.ID)+"/expenses/abc", "Bearer "+token)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Len(t, body["errors"], 1)

	w, body = f.get("/budgets/"+itoa(first.ID)+"/expenses/4000", "Bearer "+token)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Gasto no encontrado", body["error"])

	w, body = f.get("/budgets/"+itoa(second.ID)+"/expenses/"+itoa(expense.ID), "Bearer "+token)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "Acción no válida", body["error"])

	w, body = f.get("/budgets/"+itoa(first.ID)+"/expenses/"+itoa(expense.ID), "Bearer "+token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Renta", body["name"])
	assert.Equal(t, float64(first.ID), body["budgetId"])
}

func TestRateLimit(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(RateLimit(ratelimit.NewLimiter(ratelimit.NewMemoryStore(), 2, time.Minute)))
	router.GET("/ping", func(c *gin.Context) { c.JSON(http.StatusOK, "pong") })

	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "2", w.Header().Get("RateLimit-Limit"))
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Has alcanzado el límite de peticiones", body["error"])
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
