package llm

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/invoice-insights/invoice-insights/internal/entity"
)

// BuildChatMessages frames a user's question about their invoices. The invoice
// context is serialized compactly; the model must answer only from it.
func BuildChatMessages(question string, invoices []*entity.Invoice) []ChatMessage {
	sys := strings.Join([]string{
		"You are an assistant answering questions about a company's ingested invoices.",
		"Answer ONLY from the invoice data provided; if the data cannot answer the question, say so.",
		"Quote amounts with their currency code and dates as YYYY-MM-DD.",
		"Be concise.",
	}, " ")

	var b strings.Builder
	b.WriteString("Invoice data (JSON, one object per line):\n")
	for _, inv := range invoices {
		line, err := json.Marshal(compactInvoice(inv))
		if err != nil {
			continue
		}
		b.Write(line)
		b.WriteByte('\n')
	}
	b.WriteString("\nQuestion: ")
	b.WriteString(question)

	return []ChatMessage{
		{Role: "system", Content: sys},
		{Role: "user", Content: b.String()},
	}
}

// BuildReportNarrativeMessages asks for a prose summary of a reporting period.
func BuildReportNarrativeMessages(period string, stats *entity.SummaryStats, vendors []*entity.VendorSpend, categories []*entity.CategorySpend, monthly []*entity.MonthlySpend) []ChatMessage {
	sys := strings.Join([]string{
		"You are a financial analyst writing a short spending report for a small business.",
		"Write 2-3 paragraphs of plain prose. No markdown headers, no bullet lists.",
		"Mention concrete figures from the data.",
	}, " ")

	return []ChatMessage{
		{Role: "system", Content: sys},
		{Role: "user", Content: reportDataPrompt(period, stats, vendors, categories, monthly) +
			"\n\nWrite the narrative now."},
	}
}

// BuildReportHighlightsMessages asks for the structured highlights, schema attached.
func BuildReportHighlightsMessages(period string, stats *entity.SummaryStats, vendors []*entity.VendorSpend, categories []*entity.CategorySpend, monthly []*entity.MonthlySpend) []ChatMessage {
	schema, _ := json.MarshalIndent(BuildHighlightsJSONSchema(), "", "  ")
	sys := strings.Join([]string{
		"You extract report highlights from spending data.",
		"Return ONLY JSON that matches the provided schema. Never output null; omit absent fields.",
	}, " ")

	return []ChatMessage{
		{Role: "system", Content: sys},
		{Role: "user", Content: reportDataPrompt(period, stats, vendors, categories, monthly)},
		{Role: "system", Content: "JSON Schema:\n" + string(schema)},
	}
}

func reportDataPrompt(period string, stats *entity.SummaryStats, vendors []*entity.VendorSpend, categories []*entity.CategorySpend, monthly []*entity.MonthlySpend) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Reporting period: %s\n\n", period)
	if stats != nil {
		fmt.Fprintf(&b, "Totals: %d invoices, %.2f total spend, %.2f average invoice, %d distinct vendors.\n",
			stats.TotalInvoices, stats.TotalSpend, stats.AverageInvoice, stats.VendorCount)
	}
	if len(vendors) > 0 {
		b.WriteString("\nSpend by vendor:\n")
		for _, v := range vendors {
			fmt.Fprintf(&b, "- %s: %.2f across %d invoices\n", v.VendorName, v.TotalSpend, v.InvoiceCount)
		}
	}
	if len(categories) > 0 {
		b.WriteString("\nSpend by category:\n")
		for _, c := range categories {
			fmt.Fprintf(&b, "- %s: %.2f across %d invoices\n", c.Category, c.TotalSpend, c.InvoiceCount)
		}
	}
	if len(monthly) > 0 {
		b.WriteString("\nSpend by month:\n")
		for _, m := range monthly {
			fmt.Fprintf(&b, "- %s: %.2f across %d invoices\n", m.Month, m.TotalSpend, m.InvoiceCount)
		}
	}
	return b.String()
}

// compactInvoice keeps prompt size down: only the fields a question could be
// about, nil-valued fields omitted.
func compactInvoice(inv *entity.Invoice) map[string]any {
	m := map[string]any{
		"id":     inv.ID.String(),
		"status": inv.Status,
	}
	if inv.VendorName != nil {
		m["vendor"] = *inv.VendorName
	}
	if inv.InvoiceID != nil {
		m["invoice_id"] = *inv.InvoiceID
	}
	if inv.InvoiceDate != nil {
		m["invoice_date"] = inv.InvoiceDate.Format("2006-01-02")
	}
	if inv.DueDate != nil {
		m["due_date"] = inv.DueDate.Format("2006-01-02")
	}
	if inv.TotalAmount != nil {
		m["total"] = *inv.TotalAmount
	}
	if inv.Subtotal != nil {
		m["subtotal"] = *inv.Subtotal
	}
	if inv.Tax != nil {
		m["tax"] = *inv.Tax
	}
	if inv.CurrencyCode != nil {
		m["currency"] = *inv.CurrencyCode
	}
	if inv.UserCategory != nil {
		m["category"] = *inv.UserCategory
	}
	return m
}
