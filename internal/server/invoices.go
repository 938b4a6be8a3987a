package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/invoice-insights/invoice-insights/internal/entity"
)

func (s *Server) handleUploadInvoice(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "multipart field 'file' is required"})
		return
	}
	if fileHeader.Size > s.maxUploadBytes {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "file too large"})
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		respondError(c, err)
		return
	}
	defer f.Close()

	inv, err := s.invoices.Upload(c.Request.Context(), fileHeader.Filename, f)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, inv)
}

func (s *Server) handleListInvoices(c *gin.Context) {
	filter, err := parseInvoiceFilter(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	invs, err := s.invoices.List(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	if invs == nil {
		invs = []*entity.Invoice{}
	}
	c.JSON(http.StatusOK, gin.H{"invoices": invs, "count": len(invs)})
}

func (s *Server) handleGetInvoice(c *gin.Context) {
	id, ok := pathUUID(c)
	if !ok {
		return
	}
	inv, err := s.invoices.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, inv)
}

func (s *Server) handleInvoiceDocument(c *gin.Context) {
	id, ok := pathUUID(c)
	if !ok {
		return
	}
	url, err := s.invoices.DocumentURL(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"url": url})
}

func (s *Server) handleUpdateInvoice(c *gin.Context) {
	id, ok := pathUUID(c)
	if !ok {
		return
	}

	var fields map[string]any
	if err := c.ShouldBindJSON(&fields); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "request body must be a JSON object"})
		return
	}

	inv, err := s.invoices.UpdateFields(c.Request.Context(), id, fields)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, inv)
}

func (s *Server) handleReprocessInvoice(c *gin.Context) {
	id, ok := pathUUID(c)
	if !ok {
		return
	}
	if err := s.invoices.Reprocess(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"status": "queued"})
}

func (s *Server) handleDeleteInvoice(c *gin.Context) {
	id, ok := pathUUID(c)
	if !ok {
		return
	}
	if err := s.invoices.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// parseInvoiceFilter reads the shared list/report/chat filter query params.
func parseInvoiceFilter(c *gin.Context) (entity.InvoiceFilter, error) {
	var f entity.InvoiceFilter
	f.VendorName = c.Query("vendor")
	f.Category = c.Query("category")
	f.Status = c.Query("status")

	if v := c.Query("date_from"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			return f, errBadDate("date_from")
		}
		f.DateFrom = &t
	}
	if v := c.Query("date_to"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			return f, errBadDate("date_to")
		}
		f.DateTo = &t
	}
	if v := c.Query("min_amount"); v != "" {
		a, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return f, errBadNumber("min_amount")
		}
		f.MinAmount = &a
	}
	if v := c.Query("max_amount"); v != "" {
		a, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return f, errBadNumber("max_amount")
		}
		f.MaxAmount = &a
	}
	if v := c.Query("limit"); v != "" {
		n, err := strconv.ParseInt(v, 10, 32)
		if err != nil || n < 0 {
			return f, errBadNumber("limit")
		}
		f.Limit = int32(n)
	}
	if v := c.Query("offset"); v != "" {
		n, err := strconv.ParseInt(v, 10, 32)
		if err != nil || n < 0 {
			return f, errBadNumber("offset")
		}
		f.Offset = int32(n)
	}
	return f, nil
}

type paramError string

func (e paramError) Error() string { return string(e) }

func errBadDate(name string) error {
	return paramError(name + " must be YYYY-MM-DD")
}

func errBadNumber(name string) error {
	return paramError(name + " must be a number")
}
