package currency

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultRegistry_DecimalPlaces(t *testing.T) {
	r := DefaultRegistry()

	dp, err := r.DecimalPlaces("USD")
	require.NoError(t, err)
	assert.EqualValues(t, 2, dp)

	dp, err = r.DecimalPlaces("JPY")
	require.NoError(t, err)
	assert.EqualValues(t, 0, dp)

	dp, err = r.DecimalPlaces("KWD")
	require.NoError(t, err)
	assert.EqualValues(t, 3, dp)
}

func TestDefaultRegistry_UnknownCurrency(t *testing.T) {
	r := DefaultRegistry()

	_, err := r.DecimalPlaces("XYZ")
	require.Error(t, err)
	var unsupported *UnsupportedCurrencyError
	assert.ErrorAs(t, err, &unsupported)
	assert.Equal(t, "XYZ", unsupported.Code)
}

func TestConformsToPrecision(t *testing.T) {
	r := DefaultRegistry()

	ok, err := r.ConformsToPrecision("USD", decimal.RequireFromString("10.00"))
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = r.ConformsToPrecision("USD", decimal.RequireFromString("0.001"))
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = r.ConformsToPrecision("JPY", decimal.RequireFromString("100"))
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = r.ConformsToPrecision("JPY", decimal.RequireFromString("100.5"))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestParseDecimal(t *testing.T) {
	d, err := ParseDecimal("123.456")
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("123.456").Equal(d))

	_, err = ParseDecimal("not-a-number")
	assert.Error(t, err)

	_, err = ParseDecimal("")
	assert.Error(t, err)
}

func TestNewRegistry_RejectsMalformedCode(t *testing.T) {
	_, err := NewRegistry(map[string]int32{"usd": 2})
	assert.Error(t, err)

	_, err = NewRegistry(map[string]int32{"USD": -1})
	assert.Error(t, err)
}
