package parse

import (
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/invoice-insights/invoice-insights/internal/textract"
)

// Diagnostics records what the parser saw and what it could not normalize, so
// a stored result can be inspected without re-running the analysis job.
type Diagnostics struct {
	SummaryFieldsDetected  []RawField   `json:"summary_fields_detected"`
	Errors                 []string     `json:"errors"`
	LineItemGroupsRawCount int          `json:"line_item_groups_raw_count"`
	DiscardedDocuments     int          `json:"discarded_documents,omitempty"`
	DroppedLineItems       [][]RawField `json:"dropped_line_items,omitempty"`
}

// Result is the canonical parse of one expense document. Pointer amounts are
// nil when no usable value was detected; string fields are empty in that case.
type Result struct {
	Vendor      string           `json:"vendor_name,omitempty"`
	InvoiceID   string           `json:"invoice_id,omitempty"`
	InvoiceDate string           `json:"invoice_date,omitempty"`
	DueDate     string           `json:"due_date,omitempty"`
	Subtotal    *decimal.Decimal `json:"subtotal,omitempty"`
	Tax         *decimal.Decimal `json:"tax,omitempty"`
	Total       *decimal.Decimal `json:"total_amount,omitempty"`
	Currency    string           `json:"currency,omitempty"`
	LineItems   []LineItem       `json:"line_items"`
	Diagnostics Diagnostics      `json:"diagnostics"`
}

// Empty reports whether nothing at all was recovered from the document. The
// pipeline uses this to mark an invoice as failed rather than processed.
func (r *Result) Empty() bool {
	return r.Vendor == "" && r.InvoiceID == "" && r.InvoiceDate == "" &&
		r.DueDate == "" && r.Subtotal == nil && r.Tax == nil &&
		r.Total == nil && len(r.LineItems) == 0
}

// Parser normalizes expense-analysis documents into canonical invoice results.
// Parse never fails: bad input degrades to a result with diagnostics attached.
type Parser struct {
	logger *slog.Logger
}

func NewParser(logger *slog.Logger) *Parser {
	if logger == nil {
		logger = slog.Default()
	}
	return &Parser{logger: logger}
}

// Parse normalizes the first detected document. Additional documents in the
// same file are discarded with a diagnostic; upstream segmentation of a single
// invoice into multiple documents is rare and usually spurious.
func (p *Parser) Parse(docs []textract.ExpenseDocument) *Result {
	result := &Result{
		LineItems:   []LineItem{},
		Diagnostics: Diagnostics{Errors: []string{}},
	}

	if len(docs) == 0 {
		p.logger.Warn("parse.no_documents")
		result.Diagnostics.Errors = append(result.Diagnostics.Errors, "No expense documents detected")
		return result
	}
	if len(docs) > 1 {
		discarded := len(docs) - 1
		result.Diagnostics.DiscardedDocuments = discarded
		result.Diagnostics.Errors = append(result.Diagnostics.Errors,
			fmt.Sprintf("Multiple expense documents detected; discarded %d beyond the first", discarded))
		p.logger.Warn("parse.documents_discarded", "discarded", discarded)
	}

	doc := docs[0]
	fm := NewFieldMap(doc.SummaryFields)
	result.Diagnostics.SummaryFieldsDetected = fm.Raw()
	result.Diagnostics.LineItemGroupsRawCount = len(doc.LineItemGroups)

	summary, errs := MapSummary(fm)
	result.Vendor = summary.Vendor
	result.InvoiceID = summary.InvoiceID
	result.InvoiceDate = summary.InvoiceDate
	result.DueDate = summary.DueDate
	result.Subtotal = summary.Subtotal
	result.Tax = summary.Tax
	result.Total = summary.Total
	result.Currency = summary.Currency
	result.Diagnostics.Errors = append(result.Diagnostics.Errors, errs...)

	items, droppedRows := ExtractLineItems(doc.LineItemGroups, p.logger)
	if items != nil {
		result.LineItems = items
	}
	result.Diagnostics.DroppedLineItems = droppedRows

	p.logger.Info("parse.completed",
		"vendor", result.Vendor,
		"invoice_id", result.InvoiceID,
		"line_items", len(result.LineItems),
		"errors", len(result.Diagnostics.Errors))
	return result
}
