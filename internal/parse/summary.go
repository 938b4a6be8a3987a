package parse

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Candidate key lists per canonical field, ordered by reliability. The first
// key present in the document wins, regardless of how many others also match.
var (
	vendorKeys      = []string{"VENDOR_NAME", "VENDOR", "SUPPLIER_NAME", "MERCHANT_NAME"}
	invoiceIDKeys   = []string{"INVOICE_NO", "REFERENCE", "INVOICE_RECEIPT_ID", "RECEIPT_NUMBER", "INVOICE_ID", "DOCUMENT_NUMBER", "INV_NO"}
	invoiceDateKeys = []string{"INVOICE_RECEIPT_DATE", "ISSUE_DATE", "EXPENSE_DATE", "DATE", "TRANSACTION_DATE", "INVOICE_DATE"}
	dueDateKeys     = []string{"DUE_DATE", "PAYMENT_DUE_DATE"}
	totalKeys       = []string{"TOTAL_GBP", "TOTAL_DUE_GBP", "AMOUNT_£", "TOTAL", "AMOUNT_DUE", "BALANCE_DUE", "GRAND_TOTAL", "NET_AMOUNT"}
	subtotalKeys    = []string{"SUBTOTAL", "SUB_TOTAL"}
	taxKeys         = []string{"TAX", "TOTAL_TAX_AMOUNT", "VAT", "GST"}
)

// Summary holds the canonical header fields mapped out of a document. Pointer
// fields are nil when nothing usable was detected.
type Summary struct {
	Vendor      string
	InvoiceID   string
	InvoiceDate string
	DueDate     string
	Subtotal    *decimal.Decimal
	Tax         *decimal.Decimal
	Total       *decimal.Decimal
	Currency    string
}

// MapSummary resolves canonical fields from a document's field map. Date and
// amount values that fail to normalize are recorded as recoverable errors and
// leave the field unset.
func MapSummary(fm *FieldMap) (Summary, []string) {
	var s Summary
	var errs []string

	if v, _, ok := fm.First(vendorKeys...); ok {
		s.Vendor = strings.TrimSpace(v)
	} else if v, ok := fm.Get("ISSUED_BY_SIGNATURE"); ok {
		// Last resort: signature blocks often carry the issuing company name.
		s.Vendor = strings.TrimSpace(v)
	}

	if v, _, ok := fm.First(invoiceIDKeys...); ok {
		s.InvoiceID = strings.TrimSpace(v)
	}

	if v, _, ok := fm.First(invoiceDateKeys...); ok {
		if iso, err := ParseDate(v); err == nil {
			s.InvoiceDate = iso
		} else {
			errs = append(errs, "Date parsing error for invoice date: "+v)
		}
	}
	if v, _, ok := fm.First(dueDateKeys...); ok {
		if iso, err := ParseDate(v); err == nil {
			s.DueDate = iso
		} else {
			errs = append(errs, "Date parsing error for due date: "+v)
		}
	}

	if v, _, ok := fm.First(subtotalKeys...); ok {
		s.Subtotal = ParseDecimal(v)
	}
	if v, _, ok := fm.First(taxKeys...); ok {
		s.Tax = ParseDecimal(v)
	}

	var totalRaw, totalKey string
	if v, k, ok := fm.First(totalKeys...); ok {
		totalRaw = v
		totalKey = k
		s.Total = ParseDecimal(v)
	}

	s.Currency = inferCurrency(fm, totalKey, totalRaw)
	return s, errs
}

// inferCurrency derives the currency from the matched total's label and raw
// value, falling back to an explicit currency field.
func inferCurrency(fm *FieldMap, totalKey, totalRaw string) string {
	if totalKey != "" {
		hint := strings.ToLower(totalKey + " " + fm.OriginalLabel(totalKey) + " " + totalRaw)
		switch {
		case strings.Contains(hint, "gbp") || strings.Contains(hint, "£"):
			return "GBP"
		case strings.Contains(hint, "usd") || strings.Contains(hint, "$"):
			return "USD"
		case strings.Contains(hint, "eur") || strings.Contains(hint, "€"):
			return "EUR"
		}
	}
	if v, _, ok := fm.First("CURRENCY", "CURRENCY_CODE"); ok {
		return strings.ToUpper(strings.TrimSpace(v))
	}
	return ""
}
