// Package currency implements the fixed-precision decimal and currency
// registry collaborators used throughout the settlement netting pipeline.
//
// The Decimal type itself is github.com/shopspring/decimal: an arbitrary
// precision, base-10 decimal backed by big.Int, so it already satisfies the
// "no binary floating point, >=22 significant digits, exact comparisons"
// guarantee the netting engine depends on. This package only adds the
// currency-aware behavior on top (the decimal-places table and rounding
// conformance check) that shopspring/decimal has no opinion on.
package currency

import (
	"fmt"
	"regexp"

	"github.com/shopspring/decimal"
)

// Code is an ISO 4217 currency code, always three uppercase ASCII letters.
type Code string

var codePattern = regexp.MustCompile(`^[A-Z]{3}$`)

// UnsupportedCurrencyError is returned when a code is not present in the
// registry, or is not shaped like an ISO 4217 code at all.
type UnsupportedCurrencyError struct {
	Code string
}

func (e *UnsupportedCurrencyError) Error() string {
	return fmt.Sprintf("unsupported currency: %q", e.Code)
}

// Registry is an immutable code -> decimal-places table. A Registry is safe
// for concurrent use by multiple goroutines since it is never mutated after
// construction.
type Registry struct {
	decimalPlaces map[Code]int32
}

// NewRegistry builds a Registry from an explicit table. Codes must already
// be three upper-case letters; any other code (including lower case) is
// rejected, as is a negative decimal-places value.
func NewRegistry(table map[string]int32) (*Registry, error) {
	r := &Registry{decimalPlaces: make(map[Code]int32, len(table))}
	for code, dp := range table {
		if !codePattern.MatchString(code) {
			return nil, fmt.Errorf("currency: malformed code %q", code)
		}
		if dp < 0 {
			return nil, fmt.Errorf("currency: negative decimal places for %q", code)
		}
		r.decimalPlaces[Code(code)] = dp
	}
	return r, nil
}

// DefaultRegistry returns the process-wide table seeded at startup. It
// covers the currencies named by the teacher's domain model (USD, EUR, CNY,
// MWK) plus the 0-dp and 3-dp edge cases (JPY, KWD) so the "decimal places
// vary per currency" invariant has something non-trivial to exercise.
func DefaultRegistry() *Registry {
	r, err := NewRegistry(map[string]int32{
		"USD": 2,
		"EUR": 2,
		"GBP": 2,
		"CNY": 2,
		"MWK": 2,
		"JPY": 0,
		"KWD": 3,
	})
	if err != nil {
		// The embedded table is a compile-time constant; a failure here is
		// a defect in this file, not a runtime condition.
		panic(err)
	}
	return r
}

// DecimalPlaces looks up the number of fractional digits for code.
func (r *Registry) DecimalPlaces(code Code) (int32, error) {
	dp, ok := r.decimalPlaces[code]
	if !ok {
		return 0, &UnsupportedCurrencyError{Code: string(code)}
	}
	return dp, nil
}

// ConformsToPrecision reports whether amount already has at most the
// currency's number of fractional digits, using banker's-rounding
// round-to-dp as an equality test. The rounding mode used by round_to does
// not affect acceptance: round_to(dp) == amount either holds or it doesn't.
func (r *Registry) ConformsToPrecision(code Code, amount decimal.Decimal) (bool, error) {
	dp, err := r.DecimalPlaces(code)
	if err != nil {
		return false, err
	}
	return RoundTo(amount, dp).Equal(amount), nil
}

// RoundTo rounds d to dp fractional digits using banker's rounding
// (round-half-to-even), per §4.1.
func RoundTo(d decimal.Decimal, dp int32) decimal.Decimal {
	return d.RoundBank(dp)
}

// ParseDecimal parses s into a Decimal, accepting an optional leading sign
// and an optional fractional part, and rejecting exponents and underscore
// digit separators — the wire format §4.1 specifies.
func ParseDecimal(s string) (decimal.Decimal, error) {
	if !decimalLiteral.MatchString(s) {
		return decimal.Decimal{}, fmt.Errorf("currency: malformed decimal literal %q", s)
	}
	return decimal.NewFromString(s)
}

var decimalLiteral = regexp.MustCompile(`^[+-]?\d+(\.\d+)?$`)

// Canonical returns the canonical string form of d. shopspring's
// Decimal.String drops trailing fractional zeros ("10.00" becomes "10",
// "0.10" becomes "0.1") and never uses an exponent, so no further
// normalization is applied here.
func Canonical(d decimal.Decimal) string {
	return d.String()
}
