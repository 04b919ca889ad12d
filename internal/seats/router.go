package seats

import (
	"github.com/gin-gonic/gin"
)

func SetupSeatRoutes(rg *gin.RouterGroup, controller *Controller) {
	events := rg.Group("/events")
	{
		events.GET("/:id/sessions/:session/seats", controller.GetSeatMap) // GET /api/v1/events/:id/sessions/:session/seats
	}
}
