package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/cashtrackr/cashtrackr-api/internal/auth"
	"github.com/cashtrackr/cashtrackr-api/internal/services"
	"github.com/gin-gonic/gin"
)

type AuthMiddleware struct {
	sessions    *auth.SessionTokens
	authService *services.AuthService
}

func NewAuthMiddleware(sessions *auth.SessionTokens, authService *services.AuthService) *AuthMiddleware {
	return &AuthMiddleware{
		sessions:    sessions,
		authService: authService,
	}
}

// RequireAuth resolves the bearer token to a user and stores it in the
// request scope. A token that fails verification answers 500, not 401;
// existing clients depend on that status.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "No autorizado"})
			return
		}

		var tokenString string
		if parts := strings.Split(authHeader, " "); len(parts) > 1 {
			tokenString = parts[1]
		}
		if tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Token no válido"})
			return
		}

		userID, err := m.sessions.Verify(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Token no válido"})
			return
		}

		user, err := m.authService.UserByID(c.Request.Context(), userID)
		if err != nil {
			slog.ErrorContext(c.Request.Context(), "failed to load session user", "user_id", userID, "error", err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Hubo un error"})
			return
		}
		if user == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "No autorizado"})
			return
		}

		scopeOf(c).User = user
		c.Next()
	}
}
