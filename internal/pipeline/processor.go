package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/invoice-insights/invoice-insights/constants"
	"github.com/invoice-insights/invoice-insights/internal/parse"
	"github.com/invoice-insights/invoice-insights/internal/repository"
	"github.com/invoice-insights/invoice-insights/internal/textract"
)

// Analyzer is the slice of the document-analysis client the pipeline needs.
type Analyzer interface {
	textract.PageFetcher
	StartExpenseAnalysis(ctx context.Context, s3Key, requestToken, jobTag string) (string, error)
}

// Processor runs an uploaded invoice through analysis, parsing, and persistence.
// Every failure path lands the invoice in a distinct status so operators can
// tell where it died without reading logs.
type Processor struct {
	repo     repository.InvoiceRepository
	analyzer Analyzer
	parser   *parse.Parser
	logger   *slog.Logger

	pollInterval time.Duration
	pollTimeout  time.Duration
}

func NewProcessor(repo repository.InvoiceRepository, analyzer Analyzer, pollInterval, pollTimeout time.Duration, logger *slog.Logger) *Processor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Processor{
		repo:         repo,
		analyzer:     analyzer,
		parser:       parse.NewParser(logger),
		logger:       logger,
		pollInterval: pollInterval,
		pollTimeout:  pollTimeout,
	}
}

// ProcessInvoice drives one invoice from uploaded to processed (or a failure
// status). The returned error is for the worker log; the invoice's status row
// is already updated by the time it returns.
func (p *Processor) ProcessInvoice(ctx context.Context, invoiceID uuid.UUID) error {
	log := p.logger.With("invoice_id", invoiceID)

	inv, err := p.repo.GetByID(ctx, invoiceID)
	if err != nil {
		return fmt.Errorf("load invoice: %w", err)
	}
	if inv.S3Key == nil || *inv.S3Key == "" {
		p.markFailed(ctx, invoiceID, constants.StatusS3UploadFailed, log)
		return fmt.Errorf("invoice %s has no stored document", invoiceID)
	}

	if err := p.repo.UpdateStatus(ctx, invoiceID, constants.StatusProcessing); err != nil {
		return fmt.Errorf("mark processing: %w", err)
	}

	jobID, err := p.analyzer.StartExpenseAnalysis(ctx, *inv.S3Key, invoiceID.String(), invoiceID.String())
	if err != nil {
		p.markFailed(ctx, invoiceID, constants.StatusTextractSubmitFail, log)
		return fmt.Errorf("submit analysis: %w", err)
	}
	if err := p.repo.UpdateTextractJob(ctx, invoiceID, jobID); err != nil {
		log.Warn("pipeline.job_id_not_recorded", "job_id", jobID, "error", err)
	}

	poller := textract.NewPoller(p.analyzer, p.pollInterval, p.pollTimeout, p.logger)
	status, err := poller.PollUntilDone(ctx, jobID)
	if err != nil {
		p.markFailed(ctx, invoiceID, constants.StatusTextractFailed, log)
		return fmt.Errorf("poll analysis: %w", err)
	}
	switch status {
	case textract.JobStatusSucceeded:
	case textract.JobStatusFailed:
		p.markFailed(ctx, invoiceID, constants.StatusTextractFailed, log)
		return fmt.Errorf("analysis job %s failed", jobID)
	default:
		p.markFailed(ctx, invoiceID, constants.StatusTextractUnknown, log)
		return fmt.Errorf("analysis job %s ended with status %s", jobID, status)
	}

	jobResult, err := textract.CollectResults(ctx, p.analyzer, jobID, p.logger)
	if err != nil {
		p.markFailed(ctx, invoiceID, constants.StatusTextractFailed, log)
		return fmt.Errorf("collect results: %w", err)
	}

	result := p.parser.Parse(jobResult.Documents)

	upd, err := buildParsedUpdate(result)
	if err != nil {
		p.markFailed(ctx, invoiceID, constants.StatusError, log)
		return fmt.Errorf("encode parse result: %w", err)
	}
	if err := p.repo.UpdateParsedData(ctx, invoiceID, upd); err != nil {
		p.markFailed(ctx, invoiceID, constants.StatusDBUpdateFailed, log)
		return fmt.Errorf("persist parse result: %w", err)
	}

	log.Info("pipeline.completed", "status", upd.Status, "job_id", jobID)
	return nil
}

// buildParsedUpdate converts a parse result into the repository's update shape.
// A result with nothing usable lands as parsing_failed, diagnostics included.
func buildParsedUpdate(result *parse.Result) (repository.ParsedUpdate, error) {
	upd := repository.ParsedUpdate{
		VendorName:   optString(result.Vendor),
		InvoiceID:    optString(result.InvoiceID),
		CurrencyCode: optString(result.Currency),
		Subtotal:     decimalToFloat(result.Subtotal),
		Tax:          decimalToFloat(result.Tax),
		TotalAmount:  decimalToFloat(result.Total),
		Status:       constants.StatusProcessed,
	}
	if result.Empty() {
		upd.Status = constants.StatusParsingFailed
	}

	if result.InvoiceDate != "" {
		if t, err := time.Parse("2006-01-02", result.InvoiceDate); err == nil {
			upd.InvoiceDate = &t
		}
	}
	if result.DueDate != "" {
		if t, err := time.Parse("2006-01-02", result.DueDate); err == nil {
			upd.DueDate = &t
		}
	}

	lineItems, err := json.Marshal(result.LineItems)
	if err != nil {
		return repository.ParsedUpdate{}, fmt.Errorf("marshal line items: %w", err)
	}
	upd.LineItems = lineItems

	detail, err := json.Marshal(result.Diagnostics)
	if err != nil {
		return repository.ParsedUpdate{}, fmt.Errorf("marshal diagnostics: %w", err)
	}
	upd.ParsedDataDetail = detail

	return upd, nil
}

func (p *Processor) markFailed(ctx context.Context, invoiceID uuid.UUID, status constants.InvoiceStatus, log *slog.Logger) {
	if err := p.repo.UpdateStatus(ctx, invoiceID, status); err != nil {
		log.Error("pipeline.status_update_failed", "status", status, "error", err)
	}
}

func optString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func decimalToFloat(d *decimal.Decimal) *float64 {
	if d == nil {
		return nil
	}
	f, _ := d.Float64()
	return &f
}
