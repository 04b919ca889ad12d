package ratelimit

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetRateLimitType(t *testing.T) {
	tests := []struct {
		path   string
		method string
		want   RateLimitType
	}{
		{"/health", http.MethodGet, RateLimitTypeHealth},
		{"/api/v1/admin/events/:id/reservations", http.MethodGet, RateLimitTypeAdmin},
		{"/api/v1/admin/reservations/:id/confirm", http.MethodPost, RateLimitTypeAdmin},
		{"/api/v1/auth/login", http.MethodPost, RateLimitTypeAuth},
		{"/api/v1/events/:id/reservations", http.MethodPost, RateLimitTypeReservation},
		{"/api/v1/events/:id/bids", http.MethodPost, RateLimitTypeReservation},
		{"/api/v1/events/slug/:slug", http.MethodGet, RateLimitTypePublic},
		{"/api/v1/events/:id/sessions/:session/seats", http.MethodGet, RateLimitTypePublic},
		{"/swagger/*any", http.MethodGet, RateLimitTypeDefault},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, getRateLimitType(tt.path, tt.method))
		})
	}
}

func TestGetClientIP(t *testing.T) {
	gin.SetMode(gin.TestMode)

	newCtx := func(headers map[string]string) *gin.Context {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
		c.Request.RemoteAddr = "10.0.0.9:5555"
		for k, v := range headers {
			c.Request.Header.Set(k, v)
		}
		return c
	}

	assert.Equal(t, "203.0.113.7", getClientIP(newCtx(map[string]string{"X-Forwarded-For": "203.0.113.7, 10.0.0.1"})))
	assert.Equal(t, "198.51.100.2", getClientIP(newCtx(map[string]string{"X-Real-IP": "198.51.100.2"})))
	assert.Equal(t, "10.0.0.9", getClientIP(newCtx(nil)))
}

func TestDisabledLimiterAllowsWithoutRedis(t *testing.T) {
	limiter := NewRateLimiter(nil, &Config{Enabled: false, WindowDuration: time.Minute, ReservationRequests: 5})

	result, err := limiter.IsAllowed(context.Background(), "1.2.3.4", RateLimitTypeReservation)
	require.NoError(t, err)
	assert.True(t, result.Allowed)
	assert.Equal(t, 5, result.Limit)
}

func TestWhitelistedIPSkipsRedis(t *testing.T) {
	limiter := NewRateLimiter(nil, &Config{Enabled: true, WindowDuration: time.Minute, AdminRequests: 9, WhitelistedIPs: []string{"127.0.0.1"}})

	result, err := limiter.IsAllowed(context.Background(), "127.0.0.1", RateLimitTypeAdmin)
	require.NoError(t, err)
	assert.True(t, result.Allowed)
	assert.Equal(t, 9, result.Remaining)
}
