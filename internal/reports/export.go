package reports

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/invoice-insights/invoice-insights/internal/entity"
	"github.com/invoice-insights/invoice-insights/internal/repository"
)

// Exporter produces XLSX workbooks of invoice data.
type Exporter struct {
	invoices repository.InvoiceRepository
	logger   *slog.Logger
}

func NewExporter(invoices repository.InvoiceRepository, logger *slog.Logger) *Exporter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Exporter{invoices: invoices, logger: logger}
}

// ExportInvoicesXLSX returns an XLSX workbook (as bytes) for the filter.
func (e *Exporter) ExportInvoicesXLSX(ctx context.Context, filter entity.InvoiceFilter) ([]byte, error) {
	start := time.Now()

	invs, err := e.invoices.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("query invoices: %w", err)
	}

	f := excelize.NewFile()
	const sheet = "Invoices"
	if index, _ := f.GetSheetIndex(sheet); index == -1 {
		_, err := f.NewSheet(sheet)
		if err != nil {
			return nil, err
		}
	}
	activeIndex, _ := f.GetSheetIndex(sheet)
	f.SetActiveSheet(activeIndex)

	headers := []string{
		"Invoice Date",
		"Due Date",
		"Vendor",
		"Invoice ID",
		"Category",
		"Subtotal",
		"Tax",
		"Total",
		"Currency",
		"Status",
		"Original Filename",
	}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	row := 2
	for _, inv := range invs {
		write := func(col int, v any) {
			cell, _ := excelize.CoordinatesToCellName(col, row)
			_ = f.SetCellValue(sheet, cell, v)
		}

		write(1, dateOrEmpty(inv.InvoiceDate))
		write(2, dateOrEmpty(inv.DueDate))
		write(3, strOrEmpty(inv.VendorName))
		write(4, strOrEmpty(inv.InvoiceID))
		write(5, strOrEmpty(inv.UserCategory))
		writeAmount(write, 6, inv.Subtotal)
		writeAmount(write, 7, inv.Tax)
		writeAmount(write, 8, inv.TotalAmount)
		write(9, strOrEmpty(inv.CurrencyCode))
		write(10, string(inv.Status))
		write(11, inv.OriginalFilename)

		row++
	}

	// Widen a few columns
	_ = f.SetColWidth(sheet, "A", "B", 14) // dates
	_ = f.SetColWidth(sheet, "C", "C", 28) // vendor
	_ = f.SetColWidth(sheet, "D", "E", 20) // invoice id, category
	_ = f.SetColWidth(sheet, "F", "H", 12) // amounts
	_ = f.SetColWidth(sheet, "K", "K", 36) // filename

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}

	e.logger.Info("export.xlsx.ok",
		"rows", len(invs),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return buf.Bytes(), nil
}

func writeAmount(write func(int, any), col int, v *float64) {
	if v == nil {
		write(col, "")
		return
	}
	write(col, *v)
}

func dateOrEmpty(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02")
}

func strOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
