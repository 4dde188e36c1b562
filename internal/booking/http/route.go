package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes wires the user-facing booking endpoints; the caller is
// expected to have attached auth middleware to g.
func RegisterRoutes(g *gin.RouterGroup, h *Handler) {
	bookings := g.Group("/bookings")
	{
		bookings.POST("", h.Create)
		bookings.GET("", h.List)
		bookings.GET("/:id", h.Get)
		bookings.POST("/:id/cancel", h.Cancel)
	}
}

// RegisterAdminRoutes wires the admin booking endpoints.
func RegisterAdminRoutes(g *gin.RouterGroup, h *Handler) {
	bookings := g.Group("/bookings")
	{
		bookings.GET("", h.AdminList)
		bookings.GET("/stats", h.Stats)
		bookings.PUT("/:id", h.Update)
		bookings.POST("/:id/cancel", h.AdminCancel)
	}
}
