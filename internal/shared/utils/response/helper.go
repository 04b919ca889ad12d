package response

import (
	"errors"
	"net/http"

	"seatflow/internal/shared/apperrors"
	"seatflow/pkg/logger"

	"github.com/gin-gonic/gin"
)

func RespondJSON(c *gin.Context, status string, code int, message string, data interface{}, errors interface{}) {
	c.JSON(code, StandardApiResponse{
		Status:     status,
		StatusCode: code,
		Message:    message,
		Data:       data,
		Errors:     errors,
		RequestID:  c.GetString(logger.RequestIDKey),
	})
}

// RespondError renders a domain error with the status code its kind maps to.
// Infrastructure details are not echoed back to the client.
func RespondError(c *gin.Context, message string, err error) {
	code := apperrors.HTTPStatus(err)
	c.Error(err)

	var details interface{}
	var validation *apperrors.ValidationError
	var conflict *apperrors.ConflictError
	switch {
	case errors.As(err, &validation):
		details = validation.Problems
	case errors.As(err, &conflict):
		details = gin.H{"resource": conflict.Resource, "occupant": conflict.Occupant}
	case code == http.StatusServiceUnavailable, code == http.StatusInternalServerError:
		details = nil
	default:
		details = err.Error()
	}

	RespondJSON(c, "error", code, message, nil, details)
}
