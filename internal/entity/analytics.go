package entity

// SummaryStats aggregates spend across processed invoices.
type SummaryStats struct {
	TotalInvoices  int64    `json:"total_invoices"`
	TotalSpend     float64  `json:"total_spend"`
	AverageInvoice float64  `json:"average_invoice"`
	MinInvoice     *float64 `json:"min_invoice,omitempty"`
	MaxInvoice     *float64 `json:"max_invoice,omitempty"`
	VendorCount    int64    `json:"vendor_count"`
}

// VendorSpend is one row of the per-vendor aggregation.
type VendorSpend struct {
	VendorName   string  `json:"vendor_name"`
	InvoiceCount int64   `json:"invoice_count"`
	TotalSpend   float64 `json:"total_spend"`
}

// CategorySpend is one row of the per-category aggregation. Uncategorized
// invoices report under the empty category.
type CategorySpend struct {
	Category     string  `json:"category"`
	InvoiceCount int64   `json:"invoice_count"`
	TotalSpend   float64 `json:"total_spend"`
}

// MonthlySpend is one row of the month-by-month aggregation, keyed YYYY-MM.
type MonthlySpend struct {
	Month        string  `json:"month"`
	InvoiceCount int64   `json:"invoice_count"`
	TotalSpend   float64 `json:"total_spend"`
}

// StatusCount is one row of the processing-status breakdown.
type StatusCount struct {
	Status string `json:"status"`
	Count  int64  `json:"count"`
}
