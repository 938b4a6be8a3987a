package parse

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeLabel(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"simple", "Total", "TOTAL"},
		{"trailing dot", "Invoice No.", "INVOICE_NO"},
		{"parenthesized unit", "Total (GBP)", "TOTAL_GBP"},
		{"colon and spaces", "Due Date:", "DUE_DATE"},
		{"hash", "Receipt #", "RECEIPT"},
		{"repeated separators", "Amount  Due..", "AMOUNT_DUE"},
		{"already normalized", "VENDOR_NAME", "VENDOR_NAME"},
		{"surrounding whitespace", "  Subtotal  ", "SUBTOTAL"},
		{"only punctuation", ".:()", ""},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeLabel(tt.in))
		})
	}
}
