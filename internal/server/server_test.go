package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/invoice-insights/invoice-insights/internal/common"
)

func TestRequestIDReachesRequestContext(t *testing.T) {
	gin.SetMode(gin.TestMode)
	s := New(Deps{})

	r := gin.New()
	r.Use(s.requestLogger())
	var seen string
	r.GET("/ping", func(c *gin.Context) {
		seen = common.RequestIDFromContext(c.Request.Context())
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))

	require.NotEmpty(t, seen)
	assert.Equal(t, seen, w.Header().Get("X-Request-ID"))
}
