package reports

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

func TestReportRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	f := newFixture(t)
	issuer := identity.NewTokenIssuer("secret", "seatflow", time.Hour, time.Hour)

	engine := gin.New()
	SetupReportRoutes(engine.Group("/api/v1"), NewController(f.svc), issuer)

	pair, err := issuer.Issue(f.super)
	require.NoError(t, err)
	get := func(path, token string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, path, nil)
		if token != "" {
			r.Header.Set("Authorization", "Bearer "+token)
		}
		engine.ServeHTTP(w, r)
		return w
	}
	base := "/api/v1/admin/events/" + f.event.ID.String() + "/reports"

	w := get(base+"/occupied?session=session1", pair.AccessToken)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "LEGADO")

	w = get(base+"/occupied.csv?session=session1", pair.AccessToken)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, `attachment; filename="Sala_Principal_Rodada_1_08-08-2025.csv"`, w.Header().Get("Content-Disposition"))
	assert.Contains(t, w.Header().Get("Content-Type"), "text/csv")

	w = get(base+"/summary", pair.AccessToken)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"available":24`)

	w = get("/api/v1/admin/events/"+uuid.NewString()+"/reports/summary", pair.AccessToken)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = get(base+"/occupied?session=session1", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
