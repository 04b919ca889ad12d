package events

import (
	"net/http"

	"seatflow/internal/shared/middleware"
	"seatflow/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type Controller interface {
	CreateEvent(c *gin.Context)
	UpdateEvent(c *gin.Context)
	DeleteEvent(c *gin.Context)
	GetEvent(c *gin.Context)
	GetManagedEvent(c *gin.Context)
	GetBySlug(c *gin.Context)
	GetActive(c *gin.Context)
	ListEvents(c *gin.Context)
}

type controller struct {
	service           Service
	defaultVIPSeat    int
	defaultMinimumBid float64
}

func NewController(service Service, defaultVIPSeat int, defaultMinimumBid float64) Controller {
	return &controller{
		service:           service,
		defaultVIPSeat:    defaultVIPSeat,
		defaultMinimumBid: defaultMinimumBid,
	}
}

// CreateEvent godoc
// @Summary      Create an event with its sessions and seat layout
// @Tags         admin-events
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  EventRequest  true  "Event"
// @Success      201  {object}  response.StandardApiResponse{data=EventResponse}
// @Router       /admin/events [post]
func (ctrl *controller) CreateEvent(c *gin.Context) {
	var req EventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	principal, _ := middleware.PrincipalFrom(c)
	event, err := ctrl.service.CreateEvent(c.Request.Context(), principal, req)
	if err != nil {
		response.RespondError(c, "Failed to create event", err)
		return
	}

	response.RespondJSON(c, "success", http.StatusCreated, "Event created successfully", ctrl.toResponse(event), nil)
}

func (ctrl *controller) UpdateEvent(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req EventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	principal, _ := middleware.PrincipalFrom(c)
	event, err := ctrl.service.UpdateEvent(c.Request.Context(), principal, id, req)
	if err != nil {
		response.RespondError(c, "Failed to update event", err)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Event updated successfully", ctrl.toResponse(event), nil)
}

func (ctrl *controller) DeleteEvent(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	principal, _ := middleware.PrincipalFrom(c)
	if err := ctrl.service.DeleteEvent(c.Request.Context(), principal, id); err != nil {
		response.RespondError(c, "Failed to delete event", err)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Event deleted successfully", nil, nil)
}

func (ctrl *controller) GetEvent(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	event, err := ctrl.service.GetEvent(c.Request.Context(), id)
	if err != nil {
		response.RespondError(c, "Failed to get event", err)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Event retrieved successfully", ctrl.toResponse(event), nil)
}

func (ctrl *controller) GetManagedEvent(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	principal, _ := middleware.PrincipalFrom(c)
	event, err := ctrl.service.GetManagedEvent(c.Request.Context(), principal, id)
	if err != nil {
		response.RespondError(c, "Failed to get event", err)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Event retrieved successfully", ctrl.toResponse(event), nil)
}

// GetBySlug godoc
// @Summary      Active event by slug, falling back to the most recent active event
// @Tags         events
// @Produce      json
// @Param        slug  path  string  true  "Event slug"
// @Success      200  {object}  response.StandardApiResponse{data=EventResponse}
// @Router       /events/slug/{slug} [get]
func (ctrl *controller) GetBySlug(c *gin.Context) {
	event, fallback, err := ctrl.service.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		response.RespondError(c, "Event not found", err)
		return
	}

	resp := ctrl.toResponse(event)
	resp.Fallback = fallback
	response.RespondJSON(c, "success", http.StatusOK, "Event retrieved successfully", resp, nil)
}

func (ctrl *controller) GetActive(c *gin.Context) {
	event, err := ctrl.service.GetActive(c.Request.Context())
	if err != nil {
		response.RespondError(c, "No active event", err)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Event retrieved successfully", ctrl.toResponse(event), nil)
}

func (ctrl *controller) ListEvents(c *gin.Context) {
	var query EventListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid query parameters", nil, err.Error())
		return
	}

	principal, _ := middleware.PrincipalFrom(c)
	page, err := ctrl.service.ListEvents(c.Request.Context(), principal, query)
	if err != nil {
		response.RespondError(c, "Failed to list events", err)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Events retrieved successfully", page, nil)
}

func (ctrl *controller) toResponse(event *Event) EventResponse {
	return event.ToResponse(ctrl.defaultVIPSeat, ctrl.defaultMinimumBid)
}

func parseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid event ID", nil, err.Error())
		return uuid.Nil, false
	}
	return id, true
}
