package reports

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/invoice-insights/invoice-insights/internal/entity"
	"github.com/invoice-insights/invoice-insights/internal/llm"
	"github.com/invoice-insights/invoice-insights/internal/repository"
)

// Report is a generated spending report: aggregates plus an LLM-written
// narrative and schema-validated highlights.
type Report struct {
	Period      string                  `json:"period"`
	GeneratedAt time.Time               `json:"generated_at"`
	Stats       *entity.SummaryStats    `json:"stats"`
	ByVendor    []*entity.VendorSpend   `json:"by_vendor"`
	ByCategory  []*entity.CategorySpend `json:"by_category"`
	Monthly     []*entity.MonthlySpend  `json:"monthly"`
	Narrative   string                  `json:"narrative,omitempty"`
	Highlights  *llm.ReportHighlights   `json:"highlights,omitempty"`
}

type Service struct {
	analytics repository.AnalyticsRepository
	completer llm.Completer
	logger    *slog.Logger
}

func NewService(analytics repository.AnalyticsRepository, completer llm.Completer, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{analytics: analytics, completer: completer, logger: logger}
}

// Generate builds the report for a period label ("2023-05" or "all time").
// Narrative and highlights degrade gracefully: an LLM failure leaves them
// empty and the aggregates still return.
func (s *Service) Generate(ctx context.Context, period string, withNarrative bool) (*Report, error) {
	start := time.Now()

	stats, err := s.analytics.Summary(ctx)
	if err != nil {
		return nil, fmt.Errorf("summary stats: %w", err)
	}
	byVendor, err := s.analytics.ExpensesByVendor(ctx, 10)
	if err != nil {
		return nil, fmt.Errorf("vendor breakdown: %w", err)
	}
	byCategory, err := s.analytics.ExpensesByCategory(ctx)
	if err != nil {
		return nil, fmt.Errorf("category breakdown: %w", err)
	}
	monthly, err := s.analytics.MonthlySpend(ctx)
	if err != nil {
		return nil, fmt.Errorf("monthly breakdown: %w", err)
	}

	report := &Report{
		Period:      period,
		GeneratedAt: time.Now().UTC(),
		Stats:       stats,
		ByVendor:    byVendor,
		ByCategory:  byCategory,
		Monthly:     monthly,
	}

	if withNarrative && s.completer != nil && stats.TotalInvoices > 0 {
		s.attachNarrative(ctx, report)
	}

	s.logger.Info("reports.generated",
		"period", period,
		"invoices", stats.TotalInvoices,
		"with_narrative", report.Narrative != "",
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return report, nil
}

func (s *Service) attachNarrative(ctx context.Context, report *Report) {
	narrative, err := s.completer.Complete(ctx,
		llm.BuildReportNarrativeMessages(report.Period, report.Stats, report.ByVendor, report.ByCategory, report.Monthly))
	if err != nil {
		s.logger.Warn("reports.narrative_failed", "period", report.Period, "error", err)
	} else {
		report.Narrative = narrative
	}

	raw, err := s.completer.CompleteJSON(ctx,
		llm.BuildReportHighlightsMessages(report.Period, report.Stats, report.ByVendor, report.ByCategory, report.Monthly))
	if err != nil {
		s.logger.Warn("reports.highlights_failed", "period", report.Period, "error", err)
		return
	}
	if err := llm.ValidateJSONAgainstSchema(llm.BuildHighlightsJSONSchema(), raw); err != nil {
		s.logger.Warn("reports.highlights_invalid", "period", report.Period, "error", err)
		return
	}
	var highlights llm.ReportHighlights
	if err := json.Unmarshal(raw, &highlights); err != nil {
		s.logger.Warn("reports.highlights_decode_failed", "period", report.Period, "error", err)
		return
	}
	report.Highlights = &highlights
}
