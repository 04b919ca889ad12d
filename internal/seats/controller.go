package seats

import (
	"net/http"

	"seatflow/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type Controller struct {
	service Service
}

func NewController(service Service) *Controller {
	return &Controller{service: service}
}

// GetSeatMap godoc
// @Summary      Seat map for one session
// @Tags         seats
// @Produce      json
// @Param        id       path  string  true  "Event ID"
// @Param        session  path  string  true  "Session ID (session<N>, legacy rodada<N> accepted)"
// @Success      200  {object}  response.StandardApiResponse{data=SeatMap}
// @Router       /events/{id}/sessions/{session}/seats [get]
func (c *Controller) GetSeatMap(ctx *gin.Context) {
	eventID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid event ID", nil, err.Error())
		return
	}

	seatMap, err := c.service.GetSeatMap(ctx.Request.Context(), eventID, ctx.Param("session"))
	if err != nil {
		response.RespondError(ctx, "Failed to get seat map", err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Seat map retrieved successfully", seatMap, nil)
}
