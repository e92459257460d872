package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealthCheck(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	NewHealthHandler("tracker-backend", "1.0.0", nil).RegisterRoutes(router)

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest("GET", "/health", nil))

	require.Equal(t, http.StatusOK, rr.Code)

	var resp HealthResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "healthy", resp.Status)
	assert.Equal(t, "tracker-backend", resp.Service)
	assert.Equal(t, "1.0.0", resp.Version)
	assert.Equal(t, "disabled", resp.DB, "no pool wired in this test")
}

func TestHealthzAlias(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	NewHealthHandler("tracker-backend", "1.0.0", nil).RegisterRoutes(router)

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest("GET", "/healthz", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
}
