package repository

import (
	"context"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/invoice-insights/invoice-insights/internal/common"
	"github.com/invoice-insights/invoice-insights/internal/entity"
)

// processedFilter restricts aggregations to invoices whose parse produced a
// usable total; failed and in-flight invoices would skew every figure.
const processedFilter = `status = 'processed' AND total_amount IS NOT NULL`

type AnalyticsRepository interface {
	Summary(ctx context.Context) (*entity.SummaryStats, error)
	ExpensesByVendor(ctx context.Context, limit int32) ([]*entity.VendorSpend, error)
	ExpensesByCategory(ctx context.Context) ([]*entity.CategorySpend, error)
	MonthlySpend(ctx context.Context) ([]*entity.MonthlySpend, error)
	StatusCounts(ctx context.Context) ([]*entity.StatusCount, error)
}

type analyticsRepository struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

func NewAnalyticsRepository(pool *pgxpool.Pool, logger *slog.Logger) AnalyticsRepository {
	return &analyticsRepository{pool: pool, logger: logger}
}

func (r *analyticsRepository) Summary(ctx context.Context) (*entity.SummaryStats, error) {
	var s entity.SummaryStats
	err := r.pool.QueryRow(ctx, `
		SELECT COUNT(*),
		       COALESCE(SUM(total_amount), 0),
		       COALESCE(AVG(total_amount), 0),
		       MIN(total_amount),
		       MAX(total_amount),
		       COUNT(DISTINCT vendor_name)
		FROM invoices
		WHERE `+processedFilter).
		Scan(&s.TotalInvoices, &s.TotalSpend, &s.AverageInvoice,
			&s.MinInvoice, &s.MaxInvoice, &s.VendorCount)
	if err != nil {
		r.logger.Error("failed to compute summary stats", "error", err)
		return nil, common.WrapError(err, "summary stats")
	}
	return &s, nil
}

func (r *analyticsRepository) ExpensesByVendor(ctx context.Context, limit int32) ([]*entity.VendorSpend, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := r.pool.Query(ctx, `
		SELECT COALESCE(vendor_name, 'Unknown'), COUNT(*), SUM(total_amount)
		FROM invoices
		WHERE `+processedFilter+`
		GROUP BY 1
		ORDER BY 3 DESC
		LIMIT $1`, limit)
	if err != nil {
		r.logger.Error("failed to aggregate by vendor", "error", err)
		return nil, common.WrapError(err, "expenses by vendor")
	}
	defer rows.Close()

	var out []*entity.VendorSpend
	for rows.Next() {
		var v entity.VendorSpend
		if err := rows.Scan(&v.VendorName, &v.InvoiceCount, &v.TotalSpend); err != nil {
			return nil, common.WrapError(err, "scan vendor spend")
		}
		out = append(out, &v)
	}
	return out, rows.Err()
}

func (r *analyticsRepository) ExpensesByCategory(ctx context.Context) ([]*entity.CategorySpend, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT COALESCE(user_category, 'Uncategorized'), COUNT(*), SUM(total_amount)
		FROM invoices
		WHERE `+processedFilter+`
		GROUP BY 1
		ORDER BY 3 DESC`)
	if err != nil {
		r.logger.Error("failed to aggregate by category", "error", err)
		return nil, common.WrapError(err, "expenses by category")
	}
	defer rows.Close()

	var out []*entity.CategorySpend
	for rows.Next() {
		var c entity.CategorySpend
		if err := rows.Scan(&c.Category, &c.InvoiceCount, &c.TotalSpend); err != nil {
			return nil, common.WrapError(err, "scan category spend")
		}
		out = append(out, &c)
	}
	return out, rows.Err()
}

func (r *analyticsRepository) MonthlySpend(ctx context.Context) ([]*entity.MonthlySpend, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT to_char(invoice_date, 'YYYY-MM'), COUNT(*), SUM(total_amount)
		FROM invoices
		WHERE `+processedFilter+` AND invoice_date IS NOT NULL
		GROUP BY 1
		ORDER BY 1`)
	if err != nil {
		r.logger.Error("failed to aggregate monthly spend", "error", err)
		return nil, common.WrapError(err, "monthly spend")
	}
	defer rows.Close()

	var out []*entity.MonthlySpend
	for rows.Next() {
		var m entity.MonthlySpend
		if err := rows.Scan(&m.Month, &m.InvoiceCount, &m.TotalSpend); err != nil {
			return nil, common.WrapError(err, "scan monthly spend")
		}
		out = append(out, &m)
	}
	return out, rows.Err()
}

func (r *analyticsRepository) StatusCounts(ctx context.Context) ([]*entity.StatusCount, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT status, COUNT(*)
		FROM invoices
		GROUP BY status
		ORDER BY 2 DESC`)
	if err != nil {
		r.logger.Error("failed to count statuses", "error", err)
		return nil, common.WrapError(err, "status counts")
	}
	defer rows.Close()

	var out []*entity.StatusCount
	for rows.Next() {
		var s entity.StatusCount
		if err := rows.Scan(&s.Status, &s.Count); err != nil {
			return nil, common.WrapError(err, "scan status count")
		}
		out = append(out, &s)
	}
	return out, rows.Err()
}
