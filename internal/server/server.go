package server

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/invoice-insights/invoice-insights/internal/chat"
	"github.com/invoice-insights/invoice-insights/internal/common"
	"github.com/invoice-insights/invoice-insights/internal/invoices"
	"github.com/invoice-insights/invoice-insights/internal/repository"
	"github.com/invoice-insights/invoice-insights/internal/reports"
)

// Server wires the HTTP API over the application services.
type Server struct {
	invoices  *invoices.Service
	analytics repository.AnalyticsRepository
	reports   *reports.Service
	exporter  *reports.Exporter
	chat      *chat.Service
	pool      *pgxpool.Pool
	logger    *slog.Logger

	maxUploadBytes int64
}

type Deps struct {
	Invoices       *invoices.Service
	Analytics      repository.AnalyticsRepository
	Reports        *reports.Service
	Exporter       *reports.Exporter
	Chat           *chat.Service
	Pool           *pgxpool.Pool
	Logger         *slog.Logger
	MaxUploadBytes int64
}

func New(deps Deps) *Server {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	maxUpload := deps.MaxUploadBytes
	if maxUpload <= 0 {
		maxUpload = 25 << 20
	}
	return &Server{
		invoices:       deps.Invoices,
		analytics:      deps.Analytics,
		reports:        deps.Reports,
		exporter:       deps.Exporter,
		chat:           deps.Chat,
		pool:           deps.Pool,
		logger:         logger,
		maxUploadBytes: maxUpload,
	}
}

// Router builds the gin engine with all routes registered.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), s.requestLogger())
	r.MaxMultipartMemory = s.maxUploadBytes

	r.GET("/healthz", s.handleHealth)

	api := r.Group("/api/v1")
	{
		api.POST("/invoices", s.handleUploadInvoice)
		api.GET("/invoices", s.handleListInvoices)
		api.GET("/invoices/:id", s.handleGetInvoice)
		api.GET("/invoices/:id/document", s.handleInvoiceDocument)
		api.PATCH("/invoices/:id", s.handleUpdateInvoice)
		api.POST("/invoices/:id/reprocess", s.handleReprocessInvoice)
		api.DELETE("/invoices/:id", s.handleDeleteInvoice)

		api.GET("/analytics/summary", s.handleAnalyticsSummary)
		api.GET("/analytics/vendors", s.handleAnalyticsVendors)
		api.GET("/analytics/categories", s.handleAnalyticsCategories)
		api.GET("/analytics/monthly", s.handleAnalyticsMonthly)
		api.GET("/analytics/statuses", s.handleAnalyticsStatuses)

		api.GET("/reports", s.handleGenerateReport)
		api.GET("/reports/export", s.handleExportReport)

		api.POST("/chat", s.handleChat)
	}

	return r
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		reqID := uuid.New().String()
		c.Set("request_id", reqID)
		c.Header("X-Request-ID", reqID)
		// Services see the id through the request context, not gin's.
		c.Request = c.Request.WithContext(common.WithRequestID(c.Request.Context(), reqID))

		c.Next()

		s.logger.Info("http.request",
			"req_id", reqID,
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
	}
}

// respondError maps application errors to HTTP responses.
func respondError(c *gin.Context, err error) {
	c.JSON(common.HTTPStatus(err), gin.H{"error": common.PublicMessage(err)})
}

// pathUUID parses the :id path parameter, answering 400 itself on failure.
func pathUUID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(400, gin.H{"error": "id must be a valid UUID"})
		return uuid.Nil, false
	}
	return id, true
}
