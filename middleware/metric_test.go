package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrometheusMiddlewareCountsByBranch(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(PrometheusMiddleware())
	r.GET("/orders", func(c *gin.Context) {
		c.Set("branch", "branch-1")
		c.Status(http.StatusOK)
	})
	r.GET("/login", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/orders", nil))
	require.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/login", nil))
	require.Equal(t, http.StatusOK, w.Code)

	branched := HttpRequestsTotal.WithLabelValues(http.MethodGet, "/orders", "200", "branch-1")
	assert.Equal(t, float64(1), testutil.ToFloat64(branched))

	unbranched := HttpRequestsTotal.WithLabelValues(http.MethodGet, "/login", "200", "none")
	assert.Equal(t, float64(1), testutil.ToFloat64(unbranched),
		"requests without auth claims land in the none bucket")
}
