package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/invoice-insights/invoice-insights/constants"
)

// Invoice represents an ingested invoice for data transfer between layers.
// Parsed amounts are pointers so an unparsed value stays NULL rather than zero.
type Invoice struct {
	ID               uuid.UUID                `json:"id"`
	OriginalFilename string                   `json:"original_filename"`
	S3Bucket         *string                  `json:"s3_bucket,omitempty"`
	S3Key            *string                  `json:"s3_key,omitempty"`
	Status           constants.InvoiceStatus  `json:"status"`
	TextractJobID    *string                  `json:"textract_job_id,omitempty"`
	VendorName       *string                  `json:"vendor_name,omitempty"`
	InvoiceID        *string                  `json:"invoice_id,omitempty"`
	InvoiceDate      *time.Time               `json:"invoice_date,omitempty"`
	DueDate          *time.Time               `json:"due_date,omitempty"`
	Subtotal         *float64                 `json:"subtotal,omitempty"`
	Tax              *float64                 `json:"tax,omitempty"`
	TotalAmount      *float64                 `json:"total_amount,omitempty"`
	CurrencyCode     *string                  `json:"currency_code,omitempty"`
	UserCategory     *string                  `json:"user_category,omitempty"`
	LineItems        json.RawMessage          `json:"line_items,omitempty"`
	ParsedDataDetail json.RawMessage          `json:"parsed_data_detail,omitempty"`
	UploadedAt       time.Time                `json:"uploaded_at"`
	UpdatedAt        time.Time                `json:"updated_at"`
}

// InvoiceFilter narrows list, report, and chat-context queries. Zero values
// mean "no constraint" for every field.
type InvoiceFilter struct {
	VendorName string     `json:"vendor_name,omitempty"`
	Category   string     `json:"category,omitempty"`
	Status     string     `json:"status,omitempty"`
	DateFrom   *time.Time `json:"date_from,omitempty"`
	DateTo     *time.Time `json:"date_to,omitempty"`
	MinAmount  *float64   `json:"min_amount,omitempty"`
	MaxAmount  *float64   `json:"max_amount,omitempty"`
	Limit      int32      `json:"limit,omitempty"`
	Offset     int32      `json:"offset,omitempty"`
}
