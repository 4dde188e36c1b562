package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes wires the public auth endpoints.
func RegisterRoutes(g *gin.RouterGroup, h *Handler) {
	authGroup := g.Group("/auth")
	{
		authGroup.POST("/register", h.Register)
		authGroup.POST("/login", h.Login)
		authGroup.POST("/refresh", h.Refresh)
	}
}

// RegisterProtectedRoutes wires the endpoints that need a valid access
// token; the caller attaches the auth middleware to g.
func RegisterProtectedRoutes(g *gin.RouterGroup, h *Handler) {
	g.GET("/profile", h.Profile)
	g.PUT("/profile", h.UpdateProfile)
}

// RegisterAdminRoutes wires the admin user-management endpoints.
func RegisterAdminRoutes(g *gin.RouterGroup, h *Handler) {
	users := g.Group("/users")
	{
		users.GET("", h.AdminList)
		users.GET("/stats", h.AdminStats)
		users.PUT("/:id/role", h.ChangeRole)
		users.DELETE("/:id", h.Deactivate)
	}
}
