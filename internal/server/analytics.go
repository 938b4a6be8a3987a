package server

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

func (s *Server) handleAnalyticsSummary(c *gin.Context) {
	stats, err := s.analytics.Summary(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (s *Server) handleAnalyticsVendors(c *gin.Context) {
	limit := int32(10)
	if v := c.Query("limit"); v != "" {
		n, err := strconv.ParseInt(v, 10, 32)
		if err != nil || n <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive number"})
			return
		}
		limit = int32(n)
	}

	rows, err := s.analytics.ExpensesByVendor(c.Request.Context(), limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"vendors": rows})
}

func (s *Server) handleAnalyticsCategories(c *gin.Context) {
	rows, err := s.analytics.ExpensesByCategory(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"categories": rows})
}

func (s *Server) handleAnalyticsMonthly(c *gin.Context) {
	rows, err := s.analytics.MonthlySpend(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"months": rows})
}

func (s *Server) handleAnalyticsStatuses(c *gin.Context) {
	rows, err := s.analytics.StatusCounts(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"statuses": rows})
}
