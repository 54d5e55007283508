package fxadaptor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// S9 — Decimal rate.
func TestBuildDecimalRate(t *testing.T) {
	got, err := BuildDecimalRate("123456", 4)
	require.NoError(t, err)
	assert.Equal(t, "12.3456", got)

	got, err = BuildDecimalRate("123456", 7)
	require.NoError(t, err)
	assert.Equal(t, "0.123456", got)

	got, err = BuildDecimalRate("123456", 0)
	require.NoError(t, err)
	assert.Equal(t, "123456", got)
}

func TestBuildDecimalRate_InvalidInput(t *testing.T) {
	_, err := BuildDecimalRate("", 2)
	var invalid *InvalidInputError
	assert.ErrorAs(t, err, &invalid)

	_, err = BuildDecimalRate("12a34", 2)
	assert.ErrorAs(t, err, &invalid)

	_, err = BuildDecimalRate("1234", -1)
	assert.ErrorAs(t, err, &invalid)
}

// Invariant 6 — decimal-rate round trip.
func TestBuildDecimalRate_RoundTrip(t *testing.T) {
	cases := []struct {
		digits string
		places int
	}{
		{"1", 0}, {"12345", 2}, {"7", 3}, {"999999999999999999999999", 10},
	}
	for _, c := range cases {
		out, err := BuildDecimalRate(c.digits, c.places)
		require.NoError(t, err)

		// Removing the inserted decimal point should recover the original
		// digit string's integer value: no digit is lost, added or moved.
		scaled := removeDecimalPoint(out)
		assert.Equal(t, trimLeadingZeros(c.digits), trimLeadingZeros(scaled))
	}
}

func removeDecimalPoint(s string) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		if s[i] != '.' {
			out = append(out, s[i])
		}
	}
	return string(out)
}

func trimLeadingZeros(s string) string {
	i := 0
	for i < len(s)-1 && s[i] == '0' {
		i++
	}
	return s[i:]
}
