package invoices

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/invoice-insights/invoice-insights/internal/entity"
	"github.com/invoice-insights/invoice-insights/internal/repository"
)

type fakeInvoiceRepo struct {
	repository.InvoiceRepository
	updated map[string]any
}

func (f *fakeInvoiceRepo) UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]any) (*entity.Invoice, error) {
	f.updated = fields
	return &entity.Invoice{ID: id}, nil
}

func TestUpdateFieldsValidation(t *testing.T) {
	tests := []struct {
		name    string
		fields  map[string]any
		wantErr string
	}{
		{"lowercase currency", map[string]any{"currency_code": "usd"}, "currency_code"},
		{"blank vendor", map[string]any{"vendor_name": "   "}, "vendor_name"},
		{"vendor too long", map[string]any{"vendor_name": strings.Repeat("x", 256)}, "vendor_name"},
		{"invoice id too long", map[string]any{"invoice_id": strings.Repeat("9", 101)}, "invoice_id"},
		{"unknown category", map[string]any{"user_category": "spaceships"}, "category"},
		{"bad date format", map[string]any{"invoice_date": "05/04/2023"}, "invoice_date"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeInvoiceRepo{}
			svc := NewService(repo, nil, nil, nil)

			_, err := svc.UpdateFields(context.Background(), uuid.New(), tt.fields)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
			assert.Nil(t, repo.updated)
		})
	}
}

func TestUpdateFieldsNormalizesInput(t *testing.T) {
	repo := &fakeInvoiceRepo{}
	svc := NewService(repo, nil, nil, nil)

	_, err := svc.UpdateFields(context.Background(), uuid.New(), map[string]any{
		"vendor_name":   "Acme Corp",
		"currency_code": "USD",
		"user_category": "software",
		"invoice_date":  "2023-05-04",
	})
	require.NoError(t, err)

	assert.Equal(t, "Acme Corp", repo.updated["vendor_name"])
	assert.Equal(t, "USD", repo.updated["currency_code"])
	assert.Equal(t, "SoftwareServices", repo.updated["user_category"])
	parsed, ok := repo.updated["invoice_date"].(time.Time)
	require.True(t, ok)
	assert.Equal(t, "2023-05-04", parsed.Format("2006-01-02"))
}
