package constants

// InvoiceStatus is the canonical status for rows in invoices.
type InvoiceStatus string

// Stable values (store these exact strings in DB).
const (
	StatusPendingUpload      InvoiceStatus = "pending_upload" // row created, blob not stored yet
	StatusUploaded           InvoiceStatus = "uploaded"       // blob stored in S3
	StatusProcessing         InvoiceStatus = "processing"     // Textract job submitted / polling
	StatusProcessed          InvoiceStatus = "processed"      // parsed fields persisted
	StatusParsingFailed      InvoiceStatus = "parsing_failed" // extraction yielded nothing usable
	StatusTextractFailed     InvoiceStatus = "textract_failed"
	StatusTextractSubmitFail InvoiceStatus = "textract_submission_failed"
	StatusTextractUnknown    InvoiceStatus = "textract_unknown_status"
	StatusS3UploadFailed     InvoiceStatus = "s3_upload_failed"
	StatusDBUpdateFailed     InvoiceStatus = "db_update_failed_post_textract"
	StatusError              InvoiceStatus = "error"
)

// failureStatuses are the statuses that mark an invoice as failed.
var failureStatuses = map[InvoiceStatus]struct{}{
	StatusParsingFailed:      {},
	StatusTextractFailed:     {},
	StatusTextractSubmitFail: {},
	StatusTextractUnknown:    {},
	StatusS3UploadFailed:     {},
	StatusDBUpdateFailed:     {},
	StatusError:              {},
}

// IsFailure reports whether the status denotes a failed invoice.
func (s InvoiceStatus) IsFailure() bool {
	_, ok := failureStatuses[s]
	return ok
}
