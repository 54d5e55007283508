package netting

import (
	"fmt"
	"sort"

	"kyd-netting/internal/currency"
)

// Validator canonicalizes and validates a SettlementWindowInput for the
// netting engine, per §4.2. It holds only a reference to the immutable
// currency registry and carries no other state, so a single Validator can
// be shared across concurrent calls.
type Validator struct {
	registry *currency.Registry
}

// NewValidator constructs a Validator backed by the given currency registry.
func NewValidator(registry *currency.Registry) *Validator {
	return &Validator{registry: registry}
}

// Validate runs the ordered checks of §4.2 and, on success, returns the
// canonicalized positions sorted ascending by amount (creditors first),
// ties broken by ascending participant id, plus the window's common
// currency.
func (v *Validator) Validate(input SettlementWindowInput) ([]ParticipantPosition, currency.Code, error) {
	// 1. Non-empty.
	if len(input.Participants) == 0 {
		return nil, "", ErrEmptySettlement
	}

	// 2. One account per participant.
	for _, p := range input.Participants {
		if len(p.Accounts) != 1 {
			return nil, "", &MultipleAccountsError{ParticipantID: p.ID}
		}
	}

	// 3. Unique participants.
	seen := make(map[int64]struct{}, len(input.Participants))
	for _, p := range input.Participants {
		if _, dup := seen[p.ID]; dup {
			return nil, "", &DuplicateParticipantError{ParticipantID: p.ID}
		}
		seen[p.ID] = struct{}{}
	}

	// 4. Uniform currency.
	commonCode := input.Participants[0].Accounts[0].NetSettlementAmount.Currency
	for _, p := range input.Participants {
		if p.Accounts[0].NetSettlementAmount.Currency != commonCode {
			return nil, "", ErrMixedCurrencies
		}
	}

	// 5. Known currency.
	if _, err := v.registry.DecimalPlaces(currency.Code(commonCode)); err != nil {
		return nil, "", err
	}

	positions := make([]ParticipantPosition, 0, len(input.Participants))
	for _, p := range input.Participants {
		acct := p.Accounts[0]
		amount, err := currency.ParseDecimal(acct.NetSettlementAmount.Amount)
		if err != nil {
			return nil, "", fmt.Errorf("netting: participant %d: %w", p.ID, err)
		}
		positions = append(positions, ParticipantPosition{
			ParticipantID: p.ID,
			AccountID:     acct.ID,
			Amount:        amount,
			Currency:      currency.Code(commonCode),
		})
	}

	// 6. Precision conformance — aggregates every offender, does not
	// short-circuit on the first one.
	var offenders []PrecisionOffender
	for _, pos := range positions {
		ok, err := v.registry.ConformsToPrecision(pos.Currency, pos.Amount)
		if err != nil {
			return nil, "", err
		}
		if !ok {
			offenders = append(offenders, PrecisionOffender{
				ParticipantID: pos.ParticipantID,
				Amount:        pos.Amount,
			})
		}
	}
	if len(offenders) > 0 {
		return nil, "", &InvalidPrecisionError{Offenders: offenders}
	}

	// 7. Zero sum.
	sum := positions[0].Amount
	for _, pos := range positions[1:] {
		sum = sum.Add(pos.Amount)
	}
	if !sum.IsZero() {
		return nil, "", &NonZeroSumError{Sum: sum}
	}

	sort.SliceStable(positions, func(i, j int) bool {
		if !positions[i].Amount.Equal(positions[j].Amount) {
			return positions[i].Amount.LessThan(positions[j].Amount)
		}
		return positions[i].ParticipantID < positions[j].ParticipantID
	})

	return positions, currency.Code(commonCode), nil
}
