package common

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidatorCollectsErrors(t *testing.T) {
	v := NewValidator().
		Field("vendor_name", "  ", Required).
		Field("invoice_id", strings.Repeat("9", 101), MaxLen(100)).
		Field("currency_code", "usd", CurrencyCode)

	require.True(t, v.HasErrors())
	assert.Len(t, v.Errors(), 3)

	err := v.Error()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "vendor_name")
	assert.Contains(t, err.Error(), "invoice_id")
	assert.Contains(t, err.Error(), "currency_code")
	assert.Equal(t, 400, HTTPStatus(err))
}

func TestValidatorPassesCleanInput(t *testing.T) {
	v := NewValidator().
		Field("vendor_name", "Acme Corp", Required, MaxLen(255)).
		Field("currency_code", "GBP", CurrencyCode)

	assert.False(t, v.HasErrors())
	assert.NoError(t, v.Error())
	assert.Empty(t, v.ErrorMessage())
}

func TestCurrencyCodeRule(t *testing.T) {
	for _, ok := range []string{"USD", "GBP", "EUR"} {
		assert.Nil(t, CurrencyCode("currency_code", ok), ok)
	}
	for _, bad := range []string{"usd", "US", "DOLLARS", "", "U$D"} {
		assert.NotNil(t, CurrencyCode("currency_code", bad), bad)
	}
}

func TestRequestIDContextRoundTrip(t *testing.T) {
	ctx := WithRequestID(t.Context(), "req-123")
	assert.Equal(t, "req-123", RequestIDFromContext(ctx))
	assert.Empty(t, RequestIDFromContext(t.Context()))
}
