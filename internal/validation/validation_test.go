package validation

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRouter(method, path string, chains []*Chain) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Handle(method, path, Check(chains...), func(c *gin.Context) {
		c.JSON(http.StatusOK, "ok")
	})
	return router
}

func perform(router *gin.Engine, method, path, body string) (*httptest.ResponseRecorder, ErrorsResponse) {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var resp ErrorsResponse
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	return w, resp
}

func messages(errs []FieldError) []string {
	out := make([]string, len(errs))
	for i, e := range errs {
		out[i] = e.Msg
	}
	return out
}

func TestCreateAccount_EmptyBody(t *testing.T) {
	router := setupRouter(http.MethodPost, "/create-account", CreateAccount())

	w, resp := perform(router, http.MethodPost, "/create-account", "")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Len(t, resp.Errors, 3)
	assert.Equal(t, []string{
		"El nombre no puede ir vacío",
		"La contraseña debe tener mínimo 8 caracteres",
		"Correo no válido",
	}, messages(resp.Errors))
	for _, e := range resp.Errors {
		assert.Equal(t, "field", e.Type)
		assert.Equal(t, LocationBody, e.Location)
	}
}

func TestCreateAccount_InvalidEmail(t *testing.T) {
	router := setupRouter(http.MethodPost, "/create-account", CreateAccount())

	w, resp := perform(router, http.MethodPost, "/create-account",
		`{"name":"Juan","password":"password","email":"not_valid_email"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	require.Len(t, resp.Errors, 1)
	assert.Equal(t, "Correo no válido", resp.Errors[0].Msg)
	assert.Equal(t, "email", resp.Errors[0].Path)
	assert.Equal(t, "not_valid_email", resp.Errors[0].Value)
}

func TestCreateAccount_ShortPassword(t *testing.T) {
	router := setupRouter(http.MethodPost, "/create-account", CreateAccount())

	w, resp := perform(router, http.MethodPost, "/create-account",
		`{"name":"Juan","password":"short","email":"test@test.com"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	require.Len(t, resp.Errors, 1)
	assert.Equal(t, "La contraseña debe tener mínimo 8 caracteres", resp.Errors[0].Msg)
}

func TestCreateAccount_Valid(t *testing.T) {
	router := setupRouter(http.MethodPost, "/create-account", CreateAccount())

	w, _ := perform(router, http.MethodPost, "/create-account",
		`{"name":"Juan","password":"password","email":"test@test.com"}`)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestLogin_EmptyBody(t *testing.T) {
	router := setupRouter(http.MethodPost, "/login", Login())

	w, resp := perform(router, http.MethodPost, "/login", "{}")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Len(t, resp.Errors, 2)
}

func TestValidateToken_EmptyReportsBothRules(t *testing.T) {
	router := setupRouter(http.MethodPost, "/validate-token", ValidateToken())

	_, resp := perform(router, http.MethodPost, "/validate-token", `{"token":""}`)

	assert.Equal(t, []string{"Token no válido", DefaultMessage}, messages(resp.Errors))
}

func TestConfirmAccount_AcceptsNumericToken(t *testing.T) {
	router := setupRouter(http.MethodPost, "/confirm-account", ConfirmAccount())

	w, _ := perform(router, http.MethodPost, "/confirm-account", `{"token":123456}`)
	assert.Equal(t, http.StatusOK, w.Code)

	w, resp := perform(router, http.MethodPost, "/confirm-account", `{"token":"12"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	require.Len(t, resp.Errors, 1)
	assert.Equal(t, "Token no válido", resp.Errors[0].Msg)
}

func TestBudgetInput(t *testing.T) {
	router := setupRouter(http.MethodPost, "/budgets", BudgetInput())

	tests := []struct {
		name     string
		body     string
		expected []string
	}{
		{
			name: "empty body",
			body: "{}",
			expected: []string{
				"El nombre del presupuesto no puede ir vacio",
				"La cantidad del presupuesto no puede ir vacia",
				"Cantidad no válida",
				"El presupuesto debe ser mayor a 0",
			},
		},
		{
			name:     "not a number",
			body:     `{"name":"Gastos","amount":"abc"}`,
			expected: []string{"Cantidad no válida", "El presupuesto debe ser mayor a 0"},
		},
		{
			name:     "zero",
			body:     `{"name":"Gastos","amount":0}`,
			expected: []string{"El presupuesto debe ser mayor a 0"},
		},
		{
			name: "valid number",
			body: `{"name":"Gastos","amount":3000}`,
		},
		{
			name: "valid numeric string",
			body: `{"name":"Gastos","amount":"150.75"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, resp := perform(router, http.MethodPost, "/budgets", tt.body)
			if len(tt.expected) == 0 {
				assert.Equal(t, http.StatusOK, w.Code)
				return
			}
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, tt.expected, messages(resp.Errors))
		})
	}
}

func TestExpenseInput_EmptyBody(t *testing.T) {
	router := setupRouter(http.MethodPost, "/expenses", ExpenseInput())

	_, resp := perform(router, http.MethodPost, "/expenses", "")

	assert.Len(t, resp.Errors, 4)
	assert.Equal(t, "El gasto debe ser mayor a 0", resp.Errors[3].Msg)
}

func TestID(t *testing.T) {
	router := setupRouter(http.MethodGet, "/budgets/:budgetId", []*Chain{ID("budgetId")})

	for _, id := range []string{"not_valid_id", "0", "-3", "1.5"} {
		w, resp := perform(router, http.MethodGet, "/budgets/"+id, "")
		assert.Equal(t, http.StatusBadRequest, w.Code, id)
		require.Len(t, resp.Errors, 1, id)
		assert.Equal(t, "ID no válido", resp.Errors[0].Msg)
		assert.Equal(t, LocationParams, resp.Errors[0].Location)
		assert.Equal(t, "budgetId", resp.Errors[0].Path)
	}

	w, _ := perform(router, http.MethodGet, "/budgets/12", "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCheck_BodyRemainsBindable(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	var bound struct {
		Name string `json:"name"`
	}
	router.POST("/budgets", Check(BudgetInput()...), func(c *gin.Context) {
		require.NoError(t, c.ShouldBindBodyWith(&bound, binding.JSON))
		c.Status(http.StatusNoContent)
	})

	w, _ := perform(router, http.MethodPost, "/budgets", `{"name":"Gastos","amount":10}`)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "Gastos", bound.Name)
}
