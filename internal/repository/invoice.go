package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/invoice-insights/invoice-insights/constants"
	"github.com/invoice-insights/invoice-insights/internal/common"
	"github.com/invoice-insights/invoice-insights/internal/entity"
)

const invoiceColumns = `id, original_filename, s3_bucket, s3_key, status, textract_job_id,
	vendor_name, invoice_id, invoice_date, due_date, subtotal, tax, total_amount,
	currency_code, user_category, line_items, parsed_data_detail, uploaded_at, updated_at`

// editableColumns is the allowlist for user-driven field updates. Anything
// outside it (status, S3 details, parse output) moves only through the
// dedicated update methods.
var editableColumns = map[string]struct{}{
	"vendor_name":   {},
	"invoice_id":    {},
	"invoice_date":  {},
	"due_date":      {},
	"subtotal":      {},
	"tax":           {},
	"total_amount":  {},
	"currency_code": {},
	"user_category": {},
}

// ParsedUpdate carries the parse output persisted after a job completes.
type ParsedUpdate struct {
	VendorName       *string
	InvoiceID        *string
	InvoiceDate      *time.Time
	DueDate          *time.Time
	Subtotal         *float64
	Tax              *float64
	TotalAmount      *float64
	CurrencyCode     *string
	LineItems        json.RawMessage
	ParsedDataDetail json.RawMessage
	Status           constants.InvoiceStatus
}

type InvoiceRepository interface {
	Create(ctx context.Context, originalFilename string) (*entity.Invoice, error)
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Invoice, error)
	List(ctx context.Context, filter entity.InvoiceFilter) ([]*entity.Invoice, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status constants.InvoiceStatus) error
	UpdateS3Details(ctx context.Context, id uuid.UUID, bucket, key string) error
	UpdateTextractJob(ctx context.Context, id uuid.UUID, jobID string) error
	UpdateParsedData(ctx context.Context, id uuid.UUID, upd ParsedUpdate) error
	UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]any) (*entity.Invoice, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type invoiceRepository struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

func NewInvoiceRepository(pool *pgxpool.Pool, logger *slog.Logger) InvoiceRepository {
	return &invoiceRepository{pool: pool, logger: logger}
}

func (r *invoiceRepository) Create(ctx context.Context, originalFilename string) (*entity.Invoice, error) {
	id := uuid.New()
	row := r.pool.QueryRow(ctx, `
		INSERT INTO invoices (id, original_filename, status)
		VALUES ($1, $2, $3)
		RETURNING `+invoiceColumns,
		id, originalFilename, constants.StatusPendingUpload)

	inv, err := scanInvoice(row)
	if err != nil {
		r.logger.Error("failed to create invoice", "filename", originalFilename, "error", err)
		return nil, common.WrapError(err, "create invoice")
	}
	r.logger.Info("invoice created", "invoice_id", inv.ID, "filename", originalFilename)
	return inv, nil
}

func (r *invoiceRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Invoice, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+invoiceColumns+` FROM invoices WHERE id = $1`, id)
	inv, err := scanInvoice(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		r.logger.Error("failed to get invoice", "invoice_id", id, "error", err)
		return nil, common.WrapError(err, "get invoice")
	}
	return inv, nil
}

func (r *invoiceRepository) List(ctx context.Context, filter entity.InvoiceFilter) ([]*entity.Invoice, error) {
	where, args := buildInvoiceFilter(filter)
	query := `SELECT ` + invoiceColumns + ` FROM invoices` + where +
		` ORDER BY uploaded_at DESC`
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}
	if filter.Offset > 0 {
		args = append(args, filter.Offset)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		r.logger.Error("failed to list invoices", "error", err)
		return nil, common.WrapError(err, "list invoices")
	}
	defer rows.Close()

	var invoices []*entity.Invoice
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, common.WrapError(err, "scan invoice")
		}
		invoices = append(invoices, inv)
	}
	return invoices, rows.Err()
}

func (r *invoiceRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status constants.InvoiceStatus) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE invoices SET status = $1, updated_at = now() WHERE id = $2`, status, id)
	if err != nil {
		r.logger.Error("failed to update invoice status", "invoice_id", id, "status", status, "error", err)
		return common.WrapError(err, "update invoice status")
	}
	if tag.RowsAffected() == 0 {
		return common.ErrNotFound
	}
	r.logger.Info("invoice status updated", "invoice_id", id, "status", status)
	return nil
}

func (r *invoiceRepository) UpdateS3Details(ctx context.Context, id uuid.UUID, bucket, key string) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE invoices SET s3_bucket = $1, s3_key = $2, status = $3, updated_at = now()
		WHERE id = $4`,
		bucket, key, constants.StatusUploaded, id)
	if err != nil {
		r.logger.Error("failed to update s3 details", "invoice_id", id, "error", err)
		return common.WrapError(err, "update s3 details")
	}
	if tag.RowsAffected() == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *invoiceRepository) UpdateTextractJob(ctx context.Context, id uuid.UUID, jobID string) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE invoices SET textract_job_id = $1, updated_at = now() WHERE id = $2`, jobID, id)
	if err != nil {
		r.logger.Error("failed to record analysis job", "invoice_id", id, "job_id", jobID, "error", err)
		return common.WrapError(err, "update analysis job")
	}
	if tag.RowsAffected() == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *invoiceRepository) UpdateParsedData(ctx context.Context, id uuid.UUID, upd ParsedUpdate) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE invoices SET
			vendor_name = $1, invoice_id = $2, invoice_date = $3, due_date = $4,
			subtotal = $5, tax = $6, total_amount = $7, currency_code = $8,
			line_items = $9, parsed_data_detail = $10, status = $11, updated_at = now()
		WHERE id = $12`,
		upd.VendorName, upd.InvoiceID, upd.InvoiceDate, upd.DueDate,
		upd.Subtotal, upd.Tax, upd.TotalAmount, upd.CurrencyCode,
		upd.LineItems, upd.ParsedDataDetail, upd.Status, id)
	if err != nil {
		r.logger.Error("failed to persist parsed data", "invoice_id", id, "error", err)
		return common.WrapError(err, "update parsed data")
	}
	if tag.RowsAffected() == 0 {
		return common.ErrNotFound
	}
	r.logger.Info("parsed data persisted", "invoice_id", id, "status", upd.Status)
	return nil
}

func (r *invoiceRepository) UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]any) (*entity.Invoice, error) {
	if len(fields) == 0 {
		return nil, common.NewAppError("INVALID_INPUT", "no fields to update", common.ErrInvalidInput)
	}

	sets := make([]string, 0, len(fields)+1)
	args := make([]any, 0, len(fields)+1)
	for col, val := range fields {
		if _, ok := editableColumns[col]; !ok {
			return nil, common.NewAppError("INVALID_INPUT",
				fmt.Sprintf("field %q is not editable", col), common.ErrInvalidInput)
		}
		args = append(args, val)
		sets = append(sets, fmt.Sprintf("%s = $%d", col, len(args)))
	}
	sets = append(sets, "updated_at = now()")
	args = append(args, id)

	query := fmt.Sprintf(`UPDATE invoices SET %s WHERE id = $%d RETURNING %s`,
		strings.Join(sets, ", "), len(args), invoiceColumns)

	row := r.pool.QueryRow(ctx, query, args...)
	inv, err := scanInvoice(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		r.logger.Error("failed to update invoice fields", "invoice_id", id, "error", err)
		return nil, common.WrapError(err, "update invoice fields")
	}
	r.logger.Info("invoice fields updated", "invoice_id", id, "fields", len(fields))
	return inv, nil
}

func (r *invoiceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM invoices WHERE id = $1`, id)
	if err != nil {
		r.logger.Error("failed to delete invoice", "invoice_id", id, "error", err)
		return common.WrapError(err, "delete invoice")
	}
	if tag.RowsAffected() == 0 {
		return common.ErrNotFound
	}
	r.logger.Info("invoice deleted", "invoice_id", id)
	return nil
}

// buildInvoiceFilter renders a WHERE clause for the filter's set fields.
func buildInvoiceFilter(f entity.InvoiceFilter) (string, []any) {
	var clauses []string
	var args []any

	add := func(clause string, val any) {
		args = append(args, val)
		clauses = append(clauses, fmt.Sprintf(clause, len(args)))
	}

	if f.VendorName != "" {
		add("vendor_name ILIKE $%d", "%"+f.VendorName+"%")
	}
	if f.Category != "" {
		add("user_category = $%d", f.Category)
	}
	if f.Status != "" {
		add("status = $%d", f.Status)
	}
	if f.DateFrom != nil {
		add("invoice_date >= $%d", *f.DateFrom)
	}
	if f.DateTo != nil {
		add("invoice_date <= $%d", *f.DateTo)
	}
	if f.MinAmount != nil {
		add("total_amount >= $%d", *f.MinAmount)
	}
	if f.MaxAmount != nil {
		add("total_amount <= $%d", *f.MaxAmount)
	}

	if len(clauses) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(clauses, " AND "), args
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanInvoice(row rowScanner) (*entity.Invoice, error) {
	var inv entity.Invoice
	err := row.Scan(
		&inv.ID, &inv.OriginalFilename, &inv.S3Bucket, &inv.S3Key, &inv.Status,
		&inv.TextractJobID, &inv.VendorName, &inv.InvoiceID, &inv.InvoiceDate,
		&inv.DueDate, &inv.Subtotal, &inv.Tax, &inv.TotalAmount, &inv.CurrencyCode,
		&inv.UserCategory, &inv.LineItems, &inv.ParsedDataDetail,
		&inv.UploadedAt, &inv.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &inv, nil
}
