package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers asset routes. Reads (including barcode lookup for
// the scanner) are open to any authenticated user; writes require admin.
func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware, adminMiddleware gin.HandlerFunc) {
	group := g.Group("/assets")
	group.Use(authMiddleware)
	{
		group.GET("", h.List)
		group.GET("/lookup", h.Lookup)
		group.GET("/:id", h.Get)
	}

	admin := group.Group("")
	admin.Use(adminMiddleware)
	{
		admin.POST("", h.Create)
		admin.PATCH("/:id", h.Update)
		admin.DELETE("/:id", h.Delete)
		admin.POST("/:id/photo", h.UploadPhoto)
	}
}
