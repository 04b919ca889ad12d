package reservations

import (
	"context"
	"net/http"

	"seatflow/internal/shared/apperrors"
	"seatflow/internal/shared/identity"
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

// Reserve godoc
// @Summary      Reserve a seat for a session
// @Tags         reservations
// @Accept       json
// @Produce      json
// @Param        id    path  string          true  "Event ID"
// @Param        body  body  ReserveRequest  true  "Reservation"
// @Success      201  {object}  response.StandardApiResponse{data=ReceiptResponse}
// @Failure      409  {object}  response.StandardApiResponse
// @Router       /events/{id}/reservations [post]
func (ctrl *Controller) Reserve(c *gin.Context) {
	eventID, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req ReserveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	res, err := ctrl.service.Reserve(c.Request.Context(), eventID, req)
	if err != nil {
		if apperrors.IsConflict(err) {
			// public callers never see who holds the seat
			response.RespondJSON(c, "error", http.StatusConflict, "Seat is no longer available for this session", nil, nil)
			return
		}
		response.RespondError(c, "Failed to reserve seat", err)
		return
	}

	event, err := ctrl.events.GetEvent(c.Request.Context(), eventID)
	if err != nil {
		response.RespondError(c, "Failed to load event", err)
		return
	}
	response.RespondJSON(c, "success", http.StatusCreated, "Seat reserved successfully", res.ToReceipt(event.Sessions()), nil)
}

// ListReservations godoc
// @Summary      List an event's reservations
// @Tags         admin-reservations
// @Produce      json
// @Security     BearerAuth
// @Param        id       path   string  true   "Event ID"
// @Param        session  query  string  false  "Session id (legacy rows included)"
// @Param        status   query  string  false  "reserved or occupied"
// @Success      200  {object}  response.StandardApiResponse{data=[]ReservationResponse}
// @Router       /admin/events/{id}/reservations [get]
func (ctrl *Controller) ListReservations(c *gin.Context) {
	eventID, ok := parseID(c, "id")
	if !ok {
		return
	}

	var filter ListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid query parameters", nil, err.Error())
		return
	}
	if filter.Status != "" && filter.Status != StatusReserved && filter.Status != StatusOccupied {
		response.RespondJSON(c, "error", http.StatusBadRequest, "status must be reserved or occupied", nil, nil)
		return
	}

	principal, _ := middleware.PrincipalFrom(c)
	list, err := ctrl.service.List(c.Request.Context(), principal, eventID, filter)
	if err != nil {
		response.RespondError(c, "Failed to list reservations", err)
		return
	}

	event, err := ctrl.events.GetEvent(c.Request.Context(), eventID)
	if err != nil {
		response.RespondError(c, "Failed to load event", err)
		return
	}
	response.RespondJSON(c, "success", http.StatusOK, "Reservations retrieved successfully", ToResponses(list, event.Sessions()), nil)
}

func (ctrl *Controller) Confirm(c *gin.Context) {
	ctrl.transition(c, "confirmed", ctrl.service.Confirm)
}

func (ctrl *Controller) Cancel(c *gin.Context) {
	ctrl.transition(c, "cancelled", ctrl.service.Cancel)
}

func (ctrl *Controller) Reopen(c *gin.Context) {
	ctrl.transition(c, "reopened", ctrl.service.Reopen)
}

func (ctrl *Controller) GetReservation(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	principal, _ := middleware.PrincipalFrom(c)
	res, err := ctrl.service.Get(c.Request.Context(), principal, id)
	if err != nil {
		response.RespondError(c, "Failed to get reservation", err)
		return
	}
	ctrl.respond(c, "Reservation retrieved successfully", res)
}

type transitionFunc func(ctx context.Context, p *identity.Principal, id uuid.UUID) (*Reservation, error)

func (ctrl *Controller) transition(c *gin.Context, verb string, fn transitionFunc) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	p, _ := middleware.PrincipalFrom(c)
	res, err := fn(c.Request.Context(), p, id)
	if err != nil {
		response.RespondError(c, "Failed to update reservation", err)
		return
	}
	ctrl.respond(c, "Reservation "+verb+" successfully", res)
}

func (ctrl *Controller) respond(c *gin.Context, msg string, res *Reservation) {
	event, err := ctrl.events.GetEvent(c.Request.Context(), res.EventID)
	if err != nil {
		response.RespondJSON(c, "success", http.StatusOK, msg, res.ToResponse(nil), nil)
		return
	}
	response.RespondJSON(c, "success", http.StatusOK, msg, res.ToResponse(event.Sessions()), nil)
}

func parseID(c *gin.Context, param string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(param))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid "+param, nil, err.Error())
		return uuid.Nil, false
	}
	return id, true
}
