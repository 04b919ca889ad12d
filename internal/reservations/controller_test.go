package reservations

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"seatflow/internal/shared/identity"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReservationRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	f := newFixture(t, false)
	issuer := identity.NewTokenIssuer("secret", "seatflow", time.Hour, time.Hour)

	engine := gin.New()
	SetupReservationRoutes(engine.Group("/api/v1"), NewController(f.svc, &fakeEvents{event: f.event}), issuer)

	reserve := func(req ReserveRequest) *httptest.ResponseRecorder {
		body, _ := json.Marshal(req)
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodPost, "/api/v1/events/"+f.event.ID.String()+"/reservations", bytes.NewReader(body))
		r.Header.Set("Content-Type", "application/json")
		engine.ServeHTTP(w, r)
		return w
	}

	w := reserve(f.request(15, "session1"))
	require.Equal(t, http.StatusCreated, w.Code)
	assert.NotContains(t, w.Body.String(), "MARÍA")

	var created struct {
		Data ReceiptResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, 15, created.Data.SeatNumber)
	assert.Equal(t, 3, created.Data.RowNumber)

	w = reserve(f.request(15, "session1"))
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.NotContains(t, w.Body.String(), "MARÍA")

	pair, err := issuer.Issue(f.super)
	require.NoError(t, err)

	admin := func(method, path string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		r := httptest.NewRequest(method, path, nil)
		r.Header.Set("Authorization", "Bearer "+pair.AccessToken)
		engine.ServeHTTP(w, r)
		return w
	}

	w = admin(http.MethodGet, "/api/v1/admin/events/"+f.event.ID.String()+"/reservations?session=session1")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "MARÍA PÉREZ")

	w = admin(http.MethodPost, "/api/v1/admin/reservations/"+created.Data.ID.String()+"/confirm")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"occupied"`)

	w = admin(http.MethodPost, "/api/v1/admin/reservations/"+uuid.NewString()+"/cancel")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = admin(http.MethodGet, "/api/v1/admin/events/"+f.event.ID.String()+"/reservations?status=bogus")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	anon := httptest.NewRecorder()
	engine.ServeHTTP(anon, httptest.NewRequest(http.MethodPost, "/api/v1/admin/reservations/"+created.Data.ID.String()+"/cancel", nil))
	assert.Equal(t, http.StatusUnauthorized, anon.Code)
}
