package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/invoice-insights/invoice-insights/internal/repository"
)

func (s *Server) handleHealth(c *gin.Context) {
	if s.pool != nil {
		if err := repository.HealthCheck(c.Request.Context(), s.pool, 2*time.Second, s.logger); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "database": "unreachable"})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
