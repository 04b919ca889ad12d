package events

import (
	"seatflow/internal/shared/identity"
	"seatflow/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

func SetupEventRoutes(router *gin.RouterGroup, controller Controller, issuer *identity.TokenIssuer) {
	publicEvents := router.Group("/events")
	{
		publicEvents.GET("/active", controller.GetActive)     // GET /api/v1/events/active
		publicEvents.GET("/slug/:slug", controller.GetBySlug) // GET /api/v1/events/slug/:slug
		publicEvents.GET("/:id", controller.GetEvent)         // GET /api/v1/events/:id
	}

	adminEvents := router.Group("/admin/events")
	adminEvents.Use(middleware.JWTAuth(issuer), middleware.RequireAdmin())
	{
		adminEvents.GET("", controller.ListEvents)          // GET /api/v1/admin/events
		adminEvents.GET("/:id", controller.GetManagedEvent) // GET /api/v1/admin/events/:id
		adminEvents.PUT("/:id", controller.UpdateEvent)     // PUT /api/v1/admin/events/:id

		adminEvents.POST("", middleware.RequireSuperAdmin(), controller.CreateEvent)       // POST /api/v1/admin/events
		adminEvents.DELETE("/:id", middleware.RequireSuperAdmin(), controller.DeleteEvent) // DELETE /api/v1/admin/events/:id
	}
}
