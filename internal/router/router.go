// Package router assembles the HTTP API.
package router

import (
	"log/slog"
	"net/http"

	"github.com/cashtrackr/cashtrackr-api/internal/auth"
	"github.com/cashtrackr/cashtrackr-api/internal/handlers"
	"github.com/cashtrackr/cashtrackr-api/internal/logging"
	"github.com/cashtrackr/cashtrackr-api/internal/mail"
	"github.com/cashtrackr/cashtrackr-api/internal/middleware"
	"github.com/cashtrackr/cashtrackr-api/internal/ratelimit"
	"github.com/cashtrackr/cashtrackr-api/internal/repository"
	"github.com/cashtrackr/cashtrackr-api/internal/services"
	"github.com/cashtrackr/cashtrackr-api/internal/validation"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	_ "github.com/cashtrackr/cashtrackr-api/docs"
)

type Deps struct {
	DB       *gorm.DB
	Logger   *slog.Logger
	Sessions *auth.SessionTokens
	Emails   *mail.AuthEmails
	Mailer   mail.Mailer
	// Limiter guards /api/auth. Nil disables rate limiting.
	Limiter     *ratelimit.Limiter
	AuthOptions []services.AuthOption
}

func New(d Deps) *gin.Engine {
	logger := d.Logger
	if logger == nil {
		logger = slog.Default()
	}

	userRepo := repository.NewUserRepository(d.DB)
	budgetRepo := repository.NewBudgetRepository(d.DB)
	expenseRepo := repository.NewExpenseRepository(d.DB)

	authService := services.NewAuthService(userRepo, d.Sessions, d.Emails, d.Mailer, d.AuthOptions...)
	budgetService := services.NewBudgetService(budgetRepo)
	expenseService := services.NewExpenseService(expenseRepo)

	authMiddleware := middleware.NewAuthMiddleware(d.Sessions, authService)
	guard := middleware.NewOwnershipGuard(budgetService, expenseService)

	authHandler := handlers.NewAuthHandler(authService)
	budgetHandler := handlers.NewBudgetHandler(budgetService)
	expenseHandler := handlers.NewExpenseHandler(expenseService)

	router := gin.New()
	router.Use(gin.Recovery(), logging.Middleware(logger))

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/docs", handlers.SwaggerUI("/swagger/doc.json"))
	router.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusFound, "/docs")
	})

	api := router.Group("/api")
	api.GET("/health", handlers.Health)

	authRoutes := api.Group("/auth")
	if d.Limiter != nil {
		authRoutes.Use(middleware.RateLimit(d.Limiter))
	}
	{
		authRoutes.POST("/create-account", validation.Check(validation.CreateAccount()...), authHandler.CreateAccount)
		authRoutes.POST("/confirm-account", validation.Check(validation.ConfirmAccount()...), authHandler.ConfirmAccount)
		authRoutes.POST("/login", validation.Check(validation.Login()...), authHandler.Login)
		authRoutes.POST("/forgot-password", validation.Check(validation.ForgotPassword()...), authHandler.ForgotPassword)
		authRoutes.POST("/validate-token", validation.Check(validation.ValidateToken()...), authHandler.ValidateToken)
		authRoutes.POST("/reset-password/:token", validation.Check(validation.ResetPassword()...), authHandler.ResetPassword)

		session := authRoutes.Group("", authMiddleware.RequireAuth())
		session.GET("/user", authHandler.User)
		session.PUT("/user", validation.Check(validation.UpdateProfile()...), authHandler.UpdateUser)
		session.POST("/update-password", validation.Check(validation.UpdatePassword()...), authHandler.UpdatePassword)
		session.POST("/check-password", validation.Check(validation.CheckPassword()...), authHandler.CheckPassword)
	}

	budgets := api.Group("/budgets", authMiddleware.RequireAuth())
	{
		budgets.POST("", validation.Check(validation.BudgetInput()...), budgetHandler.CreateBudget)
		budgets.GET("", budgetHandler.ListBudgets)

		budget := budgets.Group("/:budgetId", guard.Budget()...)
		budget.GET("", budgetHandler.GetBudget)
		budget.PUT("", validation.Check(validation.BudgetInput()...), budgetHandler.UpdateBudget)
		budget.DELETE("", budgetHandler.DeleteBudget)

		budget.POST("/expenses", validation.Check(validation.ExpenseInput()...), expenseHandler.CreateExpense)

		expense := budget.Group("/expenses/:expenseId", guard.Expense()...)
		expense.GET("", expenseHandler.GetExpense)
		expense.PUT("", validation.Check(validation.ExpenseInput()...), expenseHandler.UpdateExpense)
		expense.DELETE("", expenseHandler.DeleteExpense)
	}

	return router
}
