package parse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/invoice-insights/invoice-insights/internal/textract"
)

func field(label, value string) textract.Field {
	return textract.Field{Type: label, Value: value, Confidence: 99}
}

func TestParseCanonicalInvoice(t *testing.T) {
	doc := textract.ExpenseDocument{
		SummaryFields: []textract.Field{
			field("Vendor Name", "Acme Corp"),
			field("Invoice No.", "INV-100"),
			field("Total", "$1,234.56"),
			field("Date", "04/05/2023"),
		},
		LineItemGroups: []textract.LineItemGroup{
			{
				Index: 1,
				Items: []textract.LineItem{
					{Fields: []textract.Field{
						field("Item", "Widget"),
						field("Price", "1,234.56"),
						field("Quantity", "1"),
					}},
				},
			},
		},
	}

	result := NewParser(nil).Parse([]textract.ExpenseDocument{doc})

	assert.Equal(t, "Acme Corp", result.Vendor)
	assert.Equal(t, "INV-100", result.InvoiceID)
	assert.Equal(t, "2023-05-04", result.InvoiceDate)
	require.NotNil(t, result.Total)
	assert.Equal(t, "1234.56", result.Total.String())
	assert.Equal(t, "USD", result.Currency)

	require.Len(t, result.LineItems, 1)
	item := result.LineItems[0]
	assert.Equal(t, "Widget", item.Description)
	require.NotNil(t, item.Amount)
	assert.Equal(t, "1234.56", item.Amount.String())
	require.NotNil(t, item.Quantity)
	assert.Equal(t, "1", item.Quantity.String())

	assert.Empty(t, result.Diagnostics.Errors)
	assert.Len(t, result.Diagnostics.SummaryFieldsDetected, 4)
	assert.Equal(t, 1, result.Diagnostics.LineItemGroupsRawCount)
}

func TestParseCandidateKeyPrecedence(t *testing.T) {
	doc := textract.ExpenseDocument{
		SummaryFields: []textract.Field{
			field("Merchant Name", "Fallback Ltd"),
			field("Vendor", "Preferred Ltd"),
			field("Receipt Number", "R-9"),
			field("Invoice No", "INV-1"),
			field("Amount Due", "50.00"),
			field("Total (GBP)", "40.00"),
		},
	}

	result := NewParser(nil).Parse([]textract.ExpenseDocument{doc})

	assert.Equal(t, "Preferred Ltd", result.Vendor)
	assert.Equal(t, "INV-1", result.InvoiceID)
	require.NotNil(t, result.Total)
	assert.Equal(t, "40", result.Total.String())
	assert.Equal(t, "GBP", result.Currency)
}

func TestParseVendorSignatureFallback(t *testing.T) {
	doc := textract.ExpenseDocument{
		SummaryFields: []textract.Field{
			field("Issued By (Signature)", "Northwind Traders"),
			field("Total", "£10.00"),
		},
	}

	result := NewParser(nil).Parse([]textract.ExpenseDocument{doc})

	assert.Equal(t, "Northwind Traders", result.Vendor)
	assert.Equal(t, "GBP", result.Currency)
}

func TestParseCurrencyFieldFallback(t *testing.T) {
	doc := textract.ExpenseDocument{
		SummaryFields: []textract.Field{
			field("Total", "99.00"),
			field("Currency", "eur"),
		},
	}

	result := NewParser(nil).Parse([]textract.ExpenseDocument{doc})
	assert.Equal(t, "EUR", result.Currency)
}

func TestParseDateErrorIsRecoverable(t *testing.T) {
	doc := textract.ExpenseDocument{
		SummaryFields: []textract.Field{
			field("Vendor Name", "Acme Corp"),
			field("Date", "sometime last week"),
			field("Due Date", "whenever"),
		},
	}

	result := NewParser(nil).Parse([]textract.ExpenseDocument{doc})

	assert.Equal(t, "Acme Corp", result.Vendor)
	assert.Empty(t, result.InvoiceDate)
	assert.Empty(t, result.DueDate)
	assert.Contains(t, result.Diagnostics.Errors, "Date parsing error for invoice date: sometime last week")
	assert.Contains(t, result.Diagnostics.Errors, "Date parsing error for due date: whenever")
}

func TestParseLineItemFiltering(t *testing.T) {
	doc := textract.ExpenseDocument{
		LineItemGroups: []textract.LineItemGroup{
			{Items: []textract.LineItem{
				{Fields: []textract.Field{
					field("Description", "Consulting"),
					field("Description", "March"),
					field("Unit Price", "100.00"),
					field("Qty", "2"),
					field("Price", "200.00"),
					field("Product Code", "CONS-03"),
				}},
				{Fields: []textract.Field{
					field("Expense Row", "ignored"),
				}},
				{Fields: []textract.Field{
					field("Quantity", "3"),
				}},
			}},
		},
	}

	result := NewParser(nil).Parse([]textract.ExpenseDocument{doc})

	require.Len(t, result.LineItems, 2)

	full := result.LineItems[0]
	assert.Equal(t, "Consulting March", full.Description)
	assert.Equal(t, "CONS-03", full.ProductCode)
	require.NotNil(t, full.UnitPrice)
	assert.Equal(t, "100", full.UnitPrice.String())
	require.NotNil(t, full.Quantity)
	assert.Equal(t, "2", full.Quantity.String())
	require.NotNil(t, full.Amount)
	assert.Equal(t, "200", full.Amount.String())

	qtyOnly := result.LineItems[1]
	assert.Empty(t, qtyOnly.Description)
	require.NotNil(t, qtyOnly.Quantity)
	assert.Equal(t, "3", qtyOnly.Quantity.String())

	// The row with nothing usable is gone from line_items but its raw fields
	// stay visible in the diagnostics.
	require.Len(t, result.Diagnostics.DroppedLineItems, 1)
	droppedRow := result.Diagnostics.DroppedLineItems[0]
	require.Len(t, droppedRow, 1)
	assert.Equal(t, "Expense Row", droppedRow[0].Label)
	assert.Equal(t, "ignored", droppedRow[0].Value)
}

func TestParseLineItemRawFields(t *testing.T) {
	doc := textract.ExpenseDocument{
		LineItemGroups: []textract.LineItemGroup{
			{
				Index: 1,
				Items: []textract.LineItem{
					{Fields: []textract.Field{
						field("Item", "Widget"),
						field("Price", "10.00"),
						field("Warranty Period", "12 months"),
					}},
					{Fields: []textract.Field{
						field("Product Code", "CODE-ONLY-XYZ"),
					}},
				},
			},
		},
	}

	result := NewParser(nil).Parse([]textract.ExpenseDocument{doc})

	// A kept item carries every detected field, recognized or not.
	require.Len(t, result.LineItems, 1)
	kept := result.LineItems[0]
	require.Len(t, kept.RawFields, 3)
	assert.Equal(t, "Warranty Period", kept.RawFields[2].Label)
	assert.Equal(t, "12 months", kept.RawFields[2].Value)

	// A product-code-only row has no description, amount, or quantity, so it
	// is dropped, but its fields must still surface in the diagnostics.
	require.Len(t, result.Diagnostics.DroppedLineItems, 1)
	droppedRow := result.Diagnostics.DroppedLineItems[0]
	require.Len(t, droppedRow, 1)
	assert.Equal(t, "Product Code", droppedRow[0].Label)
	assert.Equal(t, "CODE-ONLY-XYZ", droppedRow[0].Value)
}

func TestParseMultipleDocumentsDiscarded(t *testing.T) {
	docs := []textract.ExpenseDocument{
		{SummaryFields: []textract.Field{field("Vendor Name", "First Doc Ltd")}},
		{SummaryFields: []textract.Field{field("Vendor Name", "Second Doc Ltd")}},
		{SummaryFields: []textract.Field{field("Vendor Name", "Third Doc Ltd")}},
	}

	result := NewParser(nil).Parse(docs)

	assert.Equal(t, "First Doc Ltd", result.Vendor)
	assert.Equal(t, 2, result.Diagnostics.DiscardedDocuments)
	assert.Contains(t, result.Diagnostics.Errors,
		"Multiple expense documents detected; discarded 2 beyond the first")
}

func TestParseNoDocuments(t *testing.T) {
	result := NewParser(nil).Parse(nil)

	assert.True(t, result.Empty())
	assert.NotNil(t, result.LineItems)
	assert.Contains(t, result.Diagnostics.Errors, "No expense documents detected")
}

func TestResultEmpty(t *testing.T) {
	var r Result
	assert.True(t, r.Empty())

	r.Vendor = "Acme"
	assert.False(t, r.Empty())
}

func TestDuplicateLabelsLastWins(t *testing.T) {
	fm := NewFieldMap([]textract.Field{
		field("Total", "10.00"),
		field("Total:", "20.00"),
	})

	v, ok := fm.Get("TOTAL")
	require.True(t, ok)
	assert.Equal(t, "20.00", v)
	assert.Len(t, fm.Raw(), 2)
	assert.Equal(t, 1, fm.Len())
}
