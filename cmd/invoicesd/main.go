package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/joho/godotenv"

	"github.com/invoice-insights/invoice-insights/internal/async"
	"github.com/invoice-insights/invoice-insights/internal/chat"
	"github.com/invoice-insights/invoice-insights/internal/common"
	"github.com/invoice-insights/invoice-insights/internal/invoices"
	"github.com/invoice-insights/invoice-insights/internal/llm"
	"github.com/invoice-insights/invoice-insights/internal/llm/openai"
	"github.com/invoice-insights/invoice-insights/internal/pipeline"
	"github.com/invoice-insights/invoice-insights/internal/reports"
	"github.com/invoice-insights/invoice-insights/internal/repository"
	"github.com/invoice-insights/invoice-insights/internal/server"
	"github.com/invoice-insights/invoice-insights/internal/storage"
	"github.com/invoice-insights/invoice-insights/internal/textract"
)

func main() {
	// Setup structured logger that outputs messages with variables but no time/level
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			// Remove time and level attributes, keep message and other variables
			if a.Key == slog.TimeKey || a.Key == slog.LevelKey {
				return slog.Attr{}
			}
			return a
		},
	}))
	slog.SetDefault(logger)

	if err := godotenv.Load(); err != nil {
		logger.Info("no .env file loaded", "reason", err)
	}

	cfg := common.LoadConfig()
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := repository.Open(ctx, repository.Config{
		DSN:              cfg.Database.DSN,
		MaxConns:         cfg.Database.MaxConns,
		MinConns:         cfg.Database.MinConns,
		MaxConnLifetime:  cfg.Database.MaxConnLifetime,
		MaxConnIdleTime:  cfg.Database.MaxConnIdleTime,
		DialTimeout:      cfg.Database.DialTimeout,
		StatementTimeout: cfg.Database.StatementTimeout,
	}, logger)
	if err != nil {
		logger.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer repository.Close(pool, logger)

	if err := repository.HealthCheck(ctx, pool, 5*time.Second, logger); err != nil {
		logger.Error("failed to ping database", "error", err)
		os.Exit(1)
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.AWS.Region))
	if err != nil {
		logger.Error("failed to load AWS configuration", "error", err)
		os.Exit(1)
	}

	store := storage.NewObjectStore(awsCfg, cfg.AWS.S3Bucket, cfg.AWS.PresignTTL, logger)
	analyzer := textract.NewClient(awsCfg, cfg.AWS.S3Bucket, logger)

	invoiceRepo := repository.NewInvoiceRepository(pool, logger)
	analyticsRepo := repository.NewAnalyticsRepository(pool, logger)

	processor := pipeline.NewProcessor(invoiceRepo, analyzer, cfg.AWS.PollInterval, cfg.AWS.PollTimeout, logger)
	queue := async.NewProcessorQueue(processor, logger,
		async.WithWorkers(cfg.Pipeline.Workers),
		async.WithQueueSize(cfg.Pipeline.QueueSize),
		async.WithProcessTimeout(cfg.Pipeline.ProcessTimeout),
	)

	var completer *openai.Client
	if cfg.LLM.APIKey != "" {
		completer = openai.NewClient(openai.Config{
			Model:       cfg.LLM.Model,
			APIKey:      cfg.LLM.APIKey,
			Temperature: cfg.LLM.Temperature,
			Timeout:     cfg.LLM.Timeout,
		}, logger)
	} else {
		logger.Warn("OPENAI_API_KEY not set; chat and report narratives disabled")
	}

	invoiceSvc := invoices.NewService(invoiceRepo, store, queue, logger)
	reportSvc := reports.NewService(analyticsRepo, completerOrNil(completer), logger)
	exporter := reports.NewExporter(invoiceRepo, logger)
	chatSvc := chat.NewService(invoiceRepo, completerOrNil(completer), logger)

	srv := server.New(server.Deps{
		Invoices:       invoiceSvc,
		Analytics:      analyticsRepo,
		Reports:        reportSvc,
		Exporter:       exporter,
		Chat:           chatSvc,
		Pool:           pool,
		Logger:         logger,
		MaxUploadBytes: cfg.Server.MaxUploadBytes,
	})

	httpServer := &http.Server{
		Addr:    cfg.Server.HTTPAddr,
		Handler: srv.Router(),
	}

	go func() {
		logger.Info("http server listening", "addr", cfg.Server.HTTPAddr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http serve failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("http shutdown error", "error", err)
	}
	queue.Shutdown(shutdownCtx)
	logger.Info("stopped")
}

// completerOrNil keeps a typed-nil *openai.Client out of the llm.Completer
// interface value.
func completerOrNil(c *openai.Client) llm.Completer {
	if c == nil {
		return nil
	}
	return c
}
