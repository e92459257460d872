package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"golang.org/x/time/rate"
)

func adminRouter(key string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(AdminKey(key))
	r.POST("/x", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": true}) })
	return r
}

func TestAdminKeyAccepted(t *testing.T) {
	r := adminRouter("secret")

	req := httptest.NewRequest("POST", "/x", nil)
	req.Header.Set("X-Admin-Key", "secret")
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestAdminKeyRejected(t *testing.T) {
	cases := map[string]string{
		"missing": "",
		"wrong":   "nope",
	}
	for name, key := range cases {
		t.Run(name, func(t *testing.T) {
			r := adminRouter("secret")

			req := httptest.NewRequest("POST", "/x", nil)
			if key != "" {
				req.Header.Set("X-Admin-Key", key)
			}
			rr := httptest.NewRecorder()
			r.ServeHTTP(rr, req)

			assert.Equal(t, http.StatusUnauthorized, rr.Code)
			assert.JSONEq(t, `{"error":"Unauthorized"}`, rr.Body.String())
		})
	}
}

func TestAdminKeyEmptyConfigRejectsAll(t *testing.T) {
	r := adminRouter("")

	req := httptest.NewRequest("POST", "/x", nil)
	req.Header.Set("X-Admin-Key", "")
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestRequestIDEchoed(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID())
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest("GET", "/x", nil)
	req.Header.Set("X-Request-Id", "rid-123")
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	assert.Equal(t, "rid-123", rr.Header().Get("X-Request-Id"))
}

func TestRequestIDGenerated(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID())
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest("GET", "/x", nil))

	assert.NotEmpty(t, rr.Header().Get("X-Request-Id"))
}

func TestRateLimitThrottles(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RateLimit(rate.Limit(1), 2))
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	codes := make([]int, 0, 4)
	for i := 0; i < 4; i++ {
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, httptest.NewRequest("GET", "/x", nil))
		codes = append(codes, rr.Code)
	}

	assert.Equal(t, http.StatusOK, codes[0])
	assert.Equal(t, http.StatusOK, codes[1], "burst of 2 allowed")
	assert.Equal(t, http.StatusTooManyRequests, codes[2])
	assert.Equal(t, http.StatusTooManyRequests, codes[3])
}
