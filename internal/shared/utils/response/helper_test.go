package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"seatflow/internal/shared/apperrors"
	"seatflow/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func render(t *testing.T, err error) (*httptest.ResponseRecorder, StandardApiResponse) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	RespondError(c, "request failed", err)

	var body StandardApiResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w, body
}

func TestRespondErrorValidationListsProblems(t *testing.T) {
	w, body := render(t, apperrors.NewValidation("row 2 must be positive"))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "error", body.Status)
	assert.Equal(t, []interface{}{"row 2 must be positive"}, body.Errors)
}

func TestRespondErrorHidesInfrastructureDetails(t *testing.T) {
	w, body := render(t, apperrors.NewExternal("insert reservation", errors.New("dial tcp 10.0.0.3:5432")))

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Nil(t, body.Errors)
	assert.NotContains(t, w.Body.String(), "10.0.0.3")
}

func TestRespondErrorNotFound(t *testing.T) {
	w, body := render(t, apperrors.NewNotFound("bid", "42"))

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "bid 42 not found", body.Errors)
}

func TestRespondErrorConflictNamesOccupant(t *testing.T) {
	w, body := render(t, apperrors.NewConflict("seat 27", "MARIA LOPEZ"))

	assert.Equal(t, http.StatusConflict, w.Code)
	details, ok := body.Errors.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "MARIA LOPEZ", details["occupant"])
}

func TestRespondJSONEchoesRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set(logger.RequestIDKey, "req-42")

	RespondJSON(c, "success", http.StatusOK, "ok", nil, nil)

	var body StandardApiResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "req-42", body.RequestID)
}
