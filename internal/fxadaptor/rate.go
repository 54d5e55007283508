// Package fxadaptor maps generic FX rate records into the partner bank's
// Citi pain-01 inner rate block (§4.6). It is an orthogonal mapping used on
// the rate-publishing ingress path, not part of the settlement flow, but it
// owns its own decimal-shape contract so it lives alongside the netting
// core as part of the hard core.
package fxadaptor

import "regexp"

var digitString = regexp.MustCompile(`^\d+$`)

// BuildDecimalRate inserts a decimal point decimalPlaces positions from the
// right of rateDigits (§4.6). decimalPlaces == 0 returns the digits
// unchanged; decimalPlaces >= len(rateDigits) prepends "0."; otherwise the
// integer part is the left slice and the fractional part the right slice.
func BuildDecimalRate(rateDigits string, decimalPlaces int) (string, error) {
	if rateDigits == "" || !digitString.MatchString(rateDigits) {
		return "", &InvalidInputError{Field: "rate_digits", Reason: "must be a non-empty digit string"}
	}
	if decimalPlaces < 0 {
		return "", &InvalidInputError{Field: "decimal_places", Reason: "must be a non-negative integer"}
	}

	if decimalPlaces == 0 {
		return rateDigits, nil
	}
	length := len(rateDigits)
	if decimalPlaces >= length {
		return "0." + rateDigits, nil
	}
	split := length - decimalPlaces
	return rateDigits[:split] + "." + rateDigits[split:], nil
}
