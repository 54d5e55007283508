package netting

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Sentinel errors for the error kinds that carry no evidence (§7).
var (
	ErrEmptySettlement = errors.New("netting: settlement window has no positions")
	ErrMixedCurrencies = errors.New("netting: positions do not share a single currency")
	ErrFailedToBalance = errors.New("netting: debtor stack did not empty (defect)")
)

// MultipleAccountsError is raised by C2 when a participant holds more than
// one account in the window.
type MultipleAccountsError struct {
	ParticipantID int64
}

func (e *MultipleAccountsError) Error() string {
	return fmt.Sprintf("netting: participant %d has more than one account", e.ParticipantID)
}

// DuplicateParticipantError is raised by C2 when a participant_id repeats.
type DuplicateParticipantError struct {
	ParticipantID int64
}

func (e *DuplicateParticipantError) Error() string {
	return fmt.Sprintf("netting: duplicate participant %d", e.ParticipantID)
}

// PrecisionOffender names one position whose amount does not conform to its
// currency's decimal places.
type PrecisionOffender struct {
	ParticipantID int64
	Amount        decimal.Decimal
}

// InvalidPrecisionError aggregates every offending position found during
// the (non-short-circuiting) precision conformance pass.
type InvalidPrecisionError struct {
	Offenders []PrecisionOffender
}

func (e *InvalidPrecisionError) Error() string {
	return fmt.Sprintf("netting: %d position(s) violate currency precision", len(e.Offenders))
}

// NonZeroSumError is raised by C2 when the positions in a window do not sum
// to exactly zero.
type NonZeroSumError struct {
	Sum decimal.Decimal
}

func (e *NonZeroSumError) Error() string {
	return fmt.Sprintf("netting: settlement window does not balance, sum = %s", e.Sum.String())
}
