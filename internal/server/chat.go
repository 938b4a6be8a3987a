package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/invoice-insights/invoice-insights/internal/entity"
)

type chatRequest struct {
	Question string `json:"question" binding:"required"`
	Filters  struct {
		Vendor   string `json:"vendor"`
		Category string `json:"category"`
		Status   string `json:"status"`
		DateFrom string `json:"date_from"`
		DateTo   string `json:"date_to"`
		Limit    int32  `json:"limit"`
	} `json:"filters"`
}

func (s *Server) handleChat(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "question is required"})
		return
	}

	filter := entity.InvoiceFilter{
		VendorName: req.Filters.Vendor,
		Category:   req.Filters.Category,
		Status:     req.Filters.Status,
		Limit:      req.Filters.Limit,
	}
	if req.Filters.DateFrom != "" {
		t, err := time.Parse("2006-01-02", req.Filters.DateFrom)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "date_from must be YYYY-MM-DD"})
			return
		}
		filter.DateFrom = &t
	}
	if req.Filters.DateTo != "" {
		t, err := time.Parse("2006-01-02", req.Filters.DateTo)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "date_to must be YYYY-MM-DD"})
			return
		}
		filter.DateTo = &t
	}

	answer, err := s.chat.Ask(c.Request.Context(), req.Question, filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, answer)
}
