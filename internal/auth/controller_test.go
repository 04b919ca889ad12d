package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc, _, issuer := newTestService()
	_, err := svc.EnsureSuperAdmin(context.Background(), "root", "rootpass", "")
	require.NoError(t, err)

	engine := gin.New()
	NewRouter(NewController(svc), issuer).SetupRoutes(engine.Group("/api/v1"))

	post := func(path string, body interface{}) *httptest.ResponseRecorder {
		raw, _ := json.Marshal(body)
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
		req.Header.Set("Content-Type", "application/json")
		engine.ServeHTTP(w, req)
		return w
	}

	w := post("/api/v1/auth/login", LoginRequest{Username: "root", Password: "bad"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = post("/api/v1/auth/login", map[string]string{"username": "root"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = post("/api/v1/auth/login", LoginRequest{Username: "root", Password: "rootpass"})
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Data AuthResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.NotEmpty(t, body.Data.AccessToken)

	me := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+body.Data.AccessToken)
	engine.ServeHTTP(me, req)
	assert.Equal(t, http.StatusOK, me.Code)
	assert.Contains(t, me.Body.String(), `"username":"root"`)

	anon := httptest.NewRecorder()
	engine.ServeHTTP(anon, httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil))
	assert.Equal(t, http.StatusUnauthorized, anon.Code)
}
