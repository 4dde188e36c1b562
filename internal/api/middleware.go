package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/arkasetya/field-booking-backend/internal/auth"
	"github.com/arkasetya/field-booking-backend/internal/user"
)

// RequireAdmin ensures the authenticated user holds the admin role.
// The role is re-read from the database so a demotion takes effect
// before the access token expires. MUST be used after auth.AuthRequired.
func RequireAdmin(userService user.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := auth.GetUserID(c)
		if userID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		u, err := userService.GetByID(c.Request.Context(), userID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
			return
		}

		if u.Role != user.RoleAdmin || !u.IsActive {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden: admin access required"})
			return
		}

		c.Next()
	}
}
