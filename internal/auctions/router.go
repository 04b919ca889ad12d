package auctions

import (
	"seatflow/internal/shared/identity"
	"seatflow/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

func SetupAuctionRoutes(router *gin.RouterGroup, controller *Controller, issuer *identity.TokenIssuer) {
	router.POST("/events/:id/bids", controller.PlaceBid) // POST /api/v1/events/:id/bids

	admin := router.Group("/admin")
	admin.Use(middleware.JWTAuth(issuer), middleware.RequireAdmin())
	{
		admin.GET("/events/:id/bids", controller.ListBids) // GET /api/v1/admin/events/:id/bids?session=
		admin.POST("/bids/:id/assign", controller.AssignVIPSeat)
		admin.DELETE("/bids/:id", controller.DeleteBid)
	}
}
