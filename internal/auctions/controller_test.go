package auctions

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

func TestAuctionRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	f := newFixture(t, true)
	issuer := identity.NewTokenIssuer("secret", "seatflow", time.Hour, time.Hour)

	engine := gin.New()
	SetupAuctionRoutes(engine.Group("/api/v1"), NewController(f.svc, &fakeEvents{event: f.event}), issuer)

	bid := func(req PlaceBidRequest) *httptest.ResponseRecorder {
		body, _ := json.Marshal(req)
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodPost, "/api/v1/events/"+f.event.ID.String()+"/bids", bytes.NewReader(body))
		r.Header.Set("Content-Type", "application/json")
		engine.ServeHTTP(w, r)
		return w
	}

	w := bid(PlaceBidRequest{SessionID: "session1", FullName: "Ana Díaz", Phone: "04145551212", Amount: 30})
	require.Equal(t, http.StatusCreated, w.Code)
	var placed struct {
		Data BidReceipt `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &placed))
	assert.Equal(t, 13.0, placed.Data.MinimumBid)

	w = bid(PlaceBidRequest{SessionID: "session1", FullName: "Luis", Phone: "04145551313", Amount: 5})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	pair, err := issuer.Issue(f.super)
	require.NoError(t, err)
	admin := func(method, path string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		r := httptest.NewRequest(method, path, nil)
		r.Header.Set("Authorization", "Bearer "+pair.AccessToken)
		engine.ServeHTTP(w, r)
		return w
	}

	w = admin(http.MethodGet, "/api/v1/admin/events/"+f.event.ID.String()+"/bids?session=session1")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"rank":1`)

	w = admin(http.MethodPost, "/api/v1/admin/bids/"+placed.Data.ID.String()+"/assign")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"seat_number":27`)

	w = admin(http.MethodPost, "/api/v1/admin/bids/"+placed.Data.ID.String()+"/assign")
	assert.Equal(t, http.StatusConflict, w.Code)

	w = admin(http.MethodDelete, "/api/v1/admin/bids/"+placed.Data.ID.String())
	assert.Equal(t, http.StatusOK, w.Code)

	w = admin(http.MethodDelete, "/api/v1/admin/bids/"+uuid.NewString())
	assert.Equal(t, http.StatusNotFound, w.Code)

	anon := httptest.NewRecorder()
	engine.ServeHTTP(anon, httptest.NewRequest(http.MethodGet, "/api/v1/admin/events/"+f.event.ID.String()+"/bids", nil))
	assert.Equal(t, http.StatusUnauthorized, anon.Code)
}
