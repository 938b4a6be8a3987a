package parse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDecimal(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"us thousands", "1,234.56", "1234.56"},
		{"european thousands", "1.234,56", "1234.56"},
		{"dollar symbol", "$1,234.56", "1234.56"},
		{"pound symbol", "£99.00", "99"},
		{"euro symbol", "€250,00", "250"},
		{"accounting negative", "(45.00)", "-45"},
		{"comma decimal", "12,5", "12.5"},
		{"comma thousands no dot", "1,234", "1234"},
		{"multiple commas short final group", "1,234,5", "12345"},
		{"multiple comma thousands", "1,234,567", "1234567"},
		{"plain integer", "100", "100"},
		{"leading minus", "-3.50", "-3.5"},
		{"doubled decimal point", "12..34", "12.34"},
		{"embedded text", "USD 45.99", "45.99"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseDecimal(tt.in)
			require.NotNil(t, got)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestParseDecimalUnusable(t *testing.T) {
	for _, in := range []string{"", "   ", "-", ".", "N/A", "free", "$"} {
		t.Run("input "+in, func(t *testing.T) {
			assert.Nil(t, ParseDecimal(in))
		})
	}
}
