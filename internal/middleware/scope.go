package middleware

import (
	"github.com/cashtrackr/cashtrackr-api/internal/models"
	"github.com/gin-gonic/gin"
)

const scopeKey = "cashtrackr.scope"

// Scope carries the entities resolved by the middleware chain. Each field is
// set at most once per request and is ownership-checked before handlers run.
type Scope struct {
	User    *models.User
	Budget  *models.Budget
	Expense *models.Expense
}

func scopeOf(c *gin.Context) *Scope {
	if v, ok := c.Get(scopeKey); ok {
		if s, ok := v.(*Scope); ok {
			return s
		}
	}
	s := &Scope{}
	c.Set(scopeKey, s)
	return s
}

// ScopeFrom returns the request scope. It is never nil.
func ScopeFrom(c *gin.Context) *Scope {
	return scopeOf(c)
}

func CurrentUser(c *gin.Context) *models.User {
	return scopeOf(c).User
}
