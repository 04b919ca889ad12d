package auctions

import (
	"net/http"

	"seatflow/internal/shared/middleware"
	"seatflow/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type Controller struct {
	service Service
	events  EventReader
}

func NewController(service Service, eventReader EventReader) *Controller {
	return &Controller{service: service, events: eventReader}
}

// PlaceBid godoc
// @Summary      Bid for a session's VIP seat
// @Tags         auctions
// @Accept       json
// @Produce      json
// @Param        id    path  string           true  "Event ID"
// @Param        body  body  PlaceBidRequest  true  "Bid"
// @Success      201  {object}  response.StandardApiResponse{data=BidReceipt}
// @Failure      400  {object}  response.StandardApiResponse
// @Router       /events/{id}/bids [post]
func (ctrl *Controller) PlaceBid(c *gin.Context) {
	eventID, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req PlaceBidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	bid, err := ctrl.service.PlaceBid(c.Request.Context(), eventID, req)
	if err != nil {
		response.RespondError(c, "Failed to place bid", err)
		return
	}

	receipt := BidReceipt{ID: bid.ID, SessionID: bid.SessionID, Amount: bid.Amount, CreatedAt: bid.CreatedAt}
	if event, err := ctrl.events.GetEvent(c.Request.Context(), eventID); err == nil {
		receipt.MinimumBid = ctrl.service.MinimumBid(event)
	}
	response.RespondJSON(c, "success", http.StatusCreated, "Bid placed successfully", receipt, nil)
}

// ListBids godoc
// @Summary      Ranked bids of an event
// @Tags         admin-auctions
// @Produce      json
// @Security     BearerAuth
// @Param        id       path   string  true   "Event ID"
// @Param        session  query  string  false  "Session id"
// @Success      200  {object}  response.StandardApiResponse{data=[]BidResponse}
// @Router       /admin/events/{id}/bids [get]
func (ctrl *Controller) ListBids(c *gin.Context) {
	eventID, ok := parseID(c, "id")
	if !ok {
		return
	}

	var query ListBidsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid query parameters", nil, err.Error())
		return
	}

	principal, _ := middleware.PrincipalFrom(c)
	ranked, err := ctrl.service.ListBids(c.Request.Context(), principal, eventID, query.SessionID)
	if err != nil {
		response.RespondError(c, "Failed to list bids", err)
		return
	}
	response.RespondJSON(c, "success", http.StatusOK, "Bids retrieved successfully", ToRankedResponses(ranked), nil)
}

// AssignVIPSeat godoc
// @Summary      Give the VIP seat to a bid
// @Tags         admin-auctions
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Bid ID"
// @Success      200  {object}  response.StandardApiResponse{data=AssignmentResponse}
// @Failure      409  {object}  response.StandardApiResponse
// @Router       /admin/bids/{id}/assign [post]
func (ctrl *Controller) AssignVIPSeat(c *gin.Context) {
	bidID, ok := parseID(c, "id")
	if !ok {
		return
	}

	principal, _ := middleware.PrincipalFrom(c)
	assignment, err := ctrl.service.AssignVIPSeat(c.Request.Context(), principal, bidID)
	if err != nil {
		response.RespondError(c, "Failed to assign VIP seat", err)
		return
	}

	resView := assignment.Reservation.ToResponse(nil)
	if event, err := ctrl.events.GetEvent(c.Request.Context(), assignment.Bid.EventID); err == nil {
		resView = assignment.Reservation.ToResponse(event.Sessions())
	}
	response.RespondJSON(c, "success", http.StatusOK, "VIP seat assigned successfully", AssignmentResponse{
		Bid:         assignment.Bid.toResponse(1),
		SeatNumber:  assignment.Seat.SeatNumber,
		Reservation: resView,
	}, nil)
}

// DeleteBid godoc
// @Summary      Delete a bid
// @Tags         admin-auctions
// @Security     BearerAuth
// @Param        id  path  string  true  "Bid ID"
// @Success      200  {object}  response.StandardApiResponse
// @Router       /admin/bids/{id} [delete]
func (ctrl *Controller) DeleteBid(c *gin.Context) {
	bidID, ok := parseID(c, "id")
	if !ok {
		return
	}

	principal, _ := middleware.PrincipalFrom(c)
	if err := ctrl.service.DeleteBid(c.Request.Context(), principal, bidID); err != nil {
		response.RespondError(c, "Failed to delete bid", err)
		return
	}
	response.RespondJSON(c, "success", http.StatusOK, "Bid deleted successfully", nil, nil)
}

func parseID(c *gin.Context, param string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(param))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid "+param, nil, err.Error())
		return uuid.Nil, false
	}
	return id, true
}
