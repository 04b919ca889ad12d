package middleware

import (
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

func setupEngine(issuer *identity.TokenIssuer) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()

	admin := engine.Group("/admin", JWTAuth(issuer), RequireAdmin())
	admin.GET("/whoami", func(c *gin.Context) {
		p, _ := PrincipalFrom(c)
		c.String(http.StatusOK, p.Username)
	})

	super := engine.Group("/super", JWTAuth(issuer), RequireSuperAdmin())
	super.GET("/ok", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	engine.GET("/public", OptionalAuth(issuer), func(c *gin.Context) {
		if _, ok := PrincipalFrom(c); ok {
			c.String(http.StatusOK, "admin")
			return
		}
		c.String(http.StatusOK, "anonymous")
	})
	return engine
}

func do(engine *gin.Engine, path, token string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	engine.ServeHTTP(w, req)
	return w
}

func TestJWTAuth(t *testing.T) {
	issuer := identity.NewTokenIssuer("secret", "seatflow", time.Hour, time.Hour)
	engine := setupEngine(issuer)
	eventID := uuid.New()

	pair, err := issuer.Issue(&identity.Principal{AdminID: uuid.New(), Username: "giros", Role: identity.RoleEventAdmin, EventID: &eventID})
	require.NoError(t, err)

	t.Run("missing header", func(t *testing.T) {
		assert.Equal(t, http.StatusUnauthorized, do(engine, "/admin/whoami", "").Code)
	})

	t.Run("garbage token", func(t *testing.T) {
		assert.Equal(t, http.StatusUnauthorized, do(engine, "/admin/whoami", "not-a-jwt").Code)
	})

	t.Run("refresh token rejected", func(t *testing.T) {
		assert.Equal(t, http.StatusUnauthorized, do(engine, "/admin/whoami", pair.RefreshToken).Code)
	})

	t.Run("valid access token", func(t *testing.T) {
		w := do(engine, "/admin/whoami", pair.AccessToken)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "giros", w.Body.String())
	})

	t.Run("event admin blocked from super routes", func(t *testing.T) {
		assert.Equal(t, http.StatusForbidden, do(engine, "/super/ok", pair.AccessToken).Code)
	})
}

func TestOptionalAuth(t *testing.T) {
	issuer := identity.NewTokenIssuer("secret", "seatflow", time.Hour, time.Hour)
	engine := setupEngine(issuer)

	pair, err := issuer.Issue(&identity.Principal{AdminID: uuid.New(), Role: identity.RoleSuperAdmin})
	require.NoError(t, err)

	assert.Equal(t, "anonymous", do(engine, "/public", "").Body.String())
	assert.Equal(t, "anonymous", do(engine, "/public", "bogus").Body.String())
	assert.Equal(t, "admin", do(engine, "/public", pair.AccessToken).Body.String())
}
