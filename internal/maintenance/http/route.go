package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers maintenance log routes. Any authenticated user can
// report an issue; resolving and deleting entries require admin.
func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware, adminMiddleware gin.HandlerFunc) {
	group := g.Group("/maintenance")
	group.Use(authMiddleware)
	{
		group.GET("", h.List)
		group.GET("/:id", h.Get)
		group.POST("", h.Create)
	}

	admin := group.Group("")
	admin.Use(adminMiddleware)
	{
		admin.POST("/:id/resolve", h.Resolve)
		admin.DELETE("/:id", h.Delete)
	}
}
