package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

func (s *Server) handleGenerateReport(c *gin.Context) {
	period := c.DefaultQuery("period", "all time")
	withNarrative := c.DefaultQuery("narrative", "true") != "false"

	report, err := s.reports.Generate(c.Request.Context(), period, withNarrative)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

func (s *Server) handleExportReport(c *gin.Context) {
	filter, err := parseInvoiceFilter(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	data, err := s.exporter.ExportInvoicesXLSX(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}

	filename := fmt.Sprintf("invoices-%s.xlsx", time.Now().UTC().Format("20060102-150405"))
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}
