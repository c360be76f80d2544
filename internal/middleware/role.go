package middleware

import (
	"net/http"

	"sportshub/internal/domain"
	"sportshub/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

// Authorize lets the request through when the caller holds one of roles.
func Authorize(roles ...domain.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString(ContextRole)
		if role == "" {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Role not found in token")
			c.Abort()
			return
		}

		if !HasRole(domain.UserRole(role), roles...) {
			response.Error(c, http.StatusForbidden, "FORBIDDEN", "Access denied: insufficient permissions")
			c.Abort()
			return
		}

		c.Next()
	}
}

func HasRole(role domain.UserRole, allowed ...domain.UserRole) bool {
	for _, r := range allowed {
		if role == r {
			return true
		}
	}
	return false
}

// AdminOnly middleware requires admin role
func AdminOnly() gin.HandlerFunc {
	return Authorize(domain.RoleAdmin)
}

func UserOnly() gin.HandlerFunc {
	return Authorize(domain.RoleUser)
}
