package reservations

import (
	"seatflow/internal/shared/identity"
	"seatflow/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

func SetupReservationRoutes(router *gin.RouterGroup, controller *Controller, issuer *identity.TokenIssuer) {
	router.POST("/events/:id/reservations", controller.Reserve) // POST /api/v1/events/:id/reservations

	admin := router.Group("/admin")
	admin.Use(middleware.JWTAuth(issuer), middleware.RequireAdmin())
	{
		admin.GET("/events/:id/reservations", controller.ListReservations) // GET /api/v1/admin/events/:id/reservations
		admin.GET("/reservations/:id", controller.GetReservation)
		admin.POST("/reservations/:id/confirm", controller.Confirm)
		admin.POST("/reservations/:id/cancel", controller.Cancel)
		admin.POST("/reservations/:id/reopen", controller.Reopen)
	}
}
