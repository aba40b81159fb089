package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers booking routes. All routes require authentication
// plus the user-flag loader; the service layer enforces owner-vs-admin rules
// per operation, so no route here is admin-gated outright.
func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware, userMiddleware gin.HandlerFunc) {
	group := g.Group("/bookings")
	group.Use(authMiddleware, userMiddleware)
	{
		group.GET("", h.List)
		group.GET("/:id", h.Get)
		group.POST("", h.Create)
		group.PATCH("/:id", h.Update)
		group.DELETE("/:id", h.Delete)

		group.POST("/check-conflicts", h.CheckConflicts)

		group.POST("/:id/approve", h.Approve)
		group.POST("/:id/decline", h.Decline)
		group.POST("/:id/cancel", h.Cancel)
		group.POST("/:id/check-out", h.CheckOut)
		group.POST("/:id/check-in", h.CheckIn)
	}
}
