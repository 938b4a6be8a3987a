package parse

import (
	"log/slog"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/invoice-insights/invoice-insights/internal/textract"
)

// LineItem is one normalized invoice line. Pointer fields are nil when the row
// carried no usable value for them. RawFields preserves every detection on the
// row, including field types the folding does not recognize.
type LineItem struct {
	Description string           `json:"description,omitempty"`
	ProductCode string           `json:"product_code,omitempty"`
	Quantity    *decimal.Decimal `json:"quantity,omitempty"`
	UnitPrice   *decimal.Decimal `json:"unit_price,omitempty"`
	Amount      *decimal.Decimal `json:"amount,omitempty"`
	RawFields   []RawField       `json:"raw_fields,omitempty"`
}

// ExtractLineItems flattens every group's rows into normalized line items. A
// row is kept only when it has at least a description, an amount, or a
// quantity; other rows are dropped, with their raw fields returned so the
// result's diagnostics still show what was on them.
func ExtractLineItems(groups []textract.LineItemGroup, logger *slog.Logger) (items []LineItem, dropped [][]RawField) {
	if logger == nil {
		logger = slog.Default()
	}
	for _, group := range groups {
		for _, row := range group.Items {
			item := extractRow(row)
			if item.Description != "" || item.Amount != nil || item.Quantity != nil {
				items = append(items, item)
				continue
			}
			if len(item.RawFields) > 0 {
				dropped = append(dropped, item.RawFields)
				logger.Warn("parse.line_item_dropped",
					"group", group.Index, "raw_fields", len(item.RawFields))
			}
		}
	}
	return items, dropped
}

func extractRow(row textract.LineItem) LineItem {
	var item LineItem
	var descParts []string

	for _, f := range row.Fields {
		value := strings.TrimSpace(f.Value)
		if f.Type == "" && value == "" {
			continue
		}
		item.RawFields = append(item.RawFields, RawField{
			Label:      f.Type,
			Value:      f.Value,
			Confidence: f.Confidence,
		})
		if value == "" {
			continue
		}
		switch NormalizeLabel(f.Type) {
		case "ITEM", "DESCRIPTION", "SERVICE", "PRODUCT_NAME":
			descParts = append(descParts, value)
		case "PRODUCT_CODE", "SKU", "ITEM_CODE":
			item.ProductCode = value
		case "PRICE":
			item.Amount = ParseDecimal(value)
		case "QUANTITY", "QTY", "UNITS":
			item.Quantity = ParseDecimal(value)
		case "UNIT_PRICE":
			item.UnitPrice = ParseDecimal(value)
		}
	}

	item.Description = strings.Join(descParts, " ")
	return item
}
