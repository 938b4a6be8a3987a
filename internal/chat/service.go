package chat

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/invoice-insights/invoice-insights/internal/common"
	"github.com/invoice-insights/invoice-insights/internal/entity"
	"github.com/invoice-insights/invoice-insights/internal/llm"
	"github.com/invoice-insights/invoice-insights/internal/repository"
)

// contextLimit caps how many invoices go into a prompt. The most recent rows
// matter most for ad-hoc questions and the model's window is finite.
const contextLimit = 100

// Service answers free-text questions about ingested invoices by assembling a
// filtered invoice context and handing it to the LLM.
type Service struct {
	invoices  repository.InvoiceRepository
	completer llm.Completer
	logger    *slog.Logger
}

func NewService(invoices repository.InvoiceRepository, completer llm.Completer, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{invoices: invoices, completer: completer, logger: logger}
}

// Answer is the reply plus how much context backed it.
type Answer struct {
	Reply        string `json:"reply"`
	InvoicesUsed int    `json:"invoices_used"`
}

func (s *Service) Ask(ctx context.Context, question string, filter entity.InvoiceFilter) (*Answer, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return nil, common.InvalidInputError("question is required")
	}
	if s.completer == nil {
		return nil, common.InternalError("chat is not configured; set OPENAI_API_KEY")
	}

	start := time.Now()
	if filter.Limit <= 0 || filter.Limit > contextLimit {
		filter.Limit = contextLimit
	}

	invs, err := s.invoices.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("load invoice context: %w", err)
	}
	if len(invs) == 0 {
		return &Answer{Reply: "No invoices match the given filters.", InvoicesUsed: 0}, nil
	}

	reply, err := s.completer.Complete(ctx, llm.BuildChatMessages(question, invs))
	if err != nil {
		s.logger.Error("chat.completion_failed", "error", err)
		return nil, fmt.Errorf("chat completion: %w", err)
	}

	s.logger.Info("chat.answered",
		"question_len", len(question),
		"invoices_used", len(invs),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return &Answer{Reply: reply, InvoicesUsed: len(invs)}, nil
}
