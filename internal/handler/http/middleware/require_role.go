package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/coursehub-io/coursehub/internal/domain/entity"
)

func requireRole(role entity.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		userRole, exists := c.Get("userRole")
		if !exists || userRole.(string) != string(role) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "You do not have permission to perform this action"})
			return
		}
		c.Next()
	}
}

// RequireAdmin only lets authenticated admins through.
func RequireAdmin() gin.HandlerFunc {
	return requireRole(entity.UserRoleAdmin)
}

// RequireStudent only lets authenticated students through.
func RequireStudent() gin.HandlerFunc {
	return requireRole(entity.UserRoleStudent)
}
