package reports

import (
	"net/http"

	"seatflow/internal/shared/middleware"
	"seatflow/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Controller defines the reports controller interface
type Controller interface {
	GetOccupiedList(c *gin.Context)
	ExportOccupiedCSV(c *gin.Context)
	GetSummary(c *gin.Context)
}

type controller struct {
	service Service
}

// NewController creates a new reports controller instance
func NewController(service Service) Controller {
	return &controller{service: service}
}

// GetOccupiedList godoc
// @Summary      Occupied seats of a session
// @Tags         admin-reports
// @Produce      json
// @Security     BearerAuth
// @Param        id       path   string  true   "Event ID"
// @Param        session  query  string  false  "Session id, optional for single-session events"
// @Success      200  {object}  response.StandardApiResponse{data=OccupiedReport}
// @Router       /admin/events/{id}/reports/occupied [get]
func (ctrl *controller) GetOccupiedList(c *gin.Context) {
	eventID, ok := eventIDParam(c)
	if !ok {
		return
	}

	principal, _ := middleware.PrincipalFrom(c)
	report, err := ctrl.service.OccupiedList(c.Request.Context(), principal, eventID, c.Query("session"))
	if err != nil {
		response.RespondError(c, "Failed to build occupied list", err)
		return
	}
	response.RespondJSON(c, "success", http.StatusOK, "Occupied list retrieved successfully", report, nil)
}

// ExportOccupiedCSV godoc
// @Summary      Download the occupied list as CSV
// @Tags         admin-reports
// @Produce      text/csv
// @Security     BearerAuth
// @Param        id       path   string  true   "Event ID"
// @Param        session  query  string  false  "Session id"
// @Success      200  {file}  file
// @Router       /admin/events/{id}/reports/occupied.csv [get]
func (ctrl *controller) ExportOccupiedCSV(c *gin.Context) {
	eventID, ok := eventIDParam(c)
	if !ok {
		return
	}

	principal, _ := middleware.PrincipalFrom(c)
	fileName, data, err := ctrl.service.ExportCSV(c.Request.Context(), principal, eventID, c.Query("session"))
	if err != nil {
		response.RespondError(c, "Failed to export occupied list", err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+fileName+`"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", data)
}

// GetSummary godoc
// @Summary      Per-session seat usage
// @Tags         admin-reports
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Event ID"
// @Success      200  {object}  response.StandardApiResponse{data=EventSummary}
// @Router       /admin/events/{id}/reports/summary [get]
func (ctrl *controller) GetSummary(c *gin.Context) {
	eventID, ok := eventIDParam(c)
	if !ok {
		return
	}

	principal, _ := middleware.PrincipalFrom(c)
	summary, err := ctrl.service.Summary(c.Request.Context(), principal, eventID)
	if err != nil {
		response.RespondError(c, "Failed to build summary", err)
		return
	}
	response.RespondJSON(c, "success", http.StatusOK, "Summary retrieved successfully", summary, nil)
}

func eventIDParam(c *gin.Context) (uuid.UUID, bool) {
	eventID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid event ID", nil, err.Error())
		return uuid.Nil, false
	}
	return eventID, true
}
