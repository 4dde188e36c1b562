package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes wires the public field endpoints.
func RegisterRoutes(g *gin.RouterGroup, h *Handler) {
	fields := g.Group("/fields")
	{
		fields.GET("", h.List)
		fields.GET("/:id", h.Get)
		fields.GET("/:id/images", h.ListImages)
	}

	g.GET("/featured-fields", h.Featured)

	images := g.Group("/field-images")
	{
		images.GET("/:id", h.ServeImage)
		images.GET("/:id/thumbnail", h.ServeThumbnail)
	}
}

// RegisterAdminRoutes wires the admin CRUD endpoints; the caller is
// expected to have attached auth + admin middleware to g.
func RegisterAdminRoutes(g *gin.RouterGroup, h *Handler) {
	fields := g.Group("/fields")
	{
		fields.GET("", h.AdminList)
		fields.POST("", h.Create)
		fields.PUT("/:id", h.Update)
		fields.DELETE("/:id", h.Delete)
		fields.POST("/:id/images", h.UploadImage)
	}
}
