package netting

import (
	"kyd-netting/internal/currency"
)

// Compute runs the greedy two-pointer settle-largest-creditor-against-
// largest-debtor algorithm of §4.3 over positions already validated and
// sorted by Validator.Validate (ascending amount, ties broken by ascending
// participant id).
//
// Positions must sum to exactly zero; Validator.Validate already enforces
// this, so FailedToBalance below signals a defect rather than a normal
// rejection path.
func Compute(positions []ParticipantPosition, code currency.Code) (*PaymentMatrix, error) {
	matrix := newPaymentMatrix(code)

	splitAt := len(positions)
	for i, p := range positions {
		if p.Amount.IsPositive() {
			splitAt = i
			break
		}
	}

	creditors := make([]ParticipantPosition, splitAt)
	copy(creditors, positions[:splitAt])
	debtors := make([]ParticipantPosition, len(positions)-splitAt)
	copy(debtors, positions[splitAt:])

	dTail := len(debtors) - 1

	for cIdx := range creditors {
		c := &creditors[cIdx]

		for dTail >= 0 && c.Amount.Add(debtors[dTail].Amount).Sign() <= 0 {
			d := debtors[dTail]
			matrix.add(d.ParticipantID, c.ParticipantID, d.Amount)
			c.Amount = c.Amount.Add(d.Amount)
			dTail--
		}

		if c.Amount.IsNegative() {
			if dTail < 0 {
				return nil, ErrFailedToBalance
			}
			d := &debtors[dTail]
			matrix.add(d.ParticipantID, c.ParticipantID, c.Amount.Neg())
			d.Amount = d.Amount.Add(c.Amount)
		}
	}

	if dTail >= 0 {
		return nil, ErrFailedToBalance
	}

	return matrix, nil
}
