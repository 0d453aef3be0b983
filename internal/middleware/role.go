package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Virgile-Eratel/YDaysM1-api/internal/domain"
	"github.com/Virgile-Eratel/YDaysM1-api/internal/pkg/response"
)

// RequireRole ensures that the authenticated user has the given role.
func RequireRole(required domain.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get(CtxRole)
		if !exists {
			response.AbortError(c, http.StatusUnauthorized, "Role not found in token")
			return
		}

		if role.(string) != string(required) {
			response.AbortError(c, http.StatusForbidden, "Access denied: insufficient permissions")
			return
		}

		c.Next()
	}
}

// OwnerOnly restricts a route group to owner accounts.
func OwnerOnly() gin.HandlerFunc {
	return RequireRole(domain.RoleOwner)
}
