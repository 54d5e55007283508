// Package netting implements the settlement input validator (C2), the
// minimum-payments netting engine (C3), and the payment-matrix model (C4).
package netting

import (
	"kyd-netting/internal/currency"

	"github.com/shopspring/decimal"
)

// MoneyAmount is the wire shape of a signed amount plus its currency, as it
// appears inside a SettlementWindowInput.
type MoneyAmount struct {
	Amount   string `json:"amount" validate:"required"`
	Currency string `json:"currency" validate:"required,len=3"`
}

// AccountInput is one settlement account belonging to a participant.
type AccountInput struct {
	ID                  int64       `json:"id" validate:"required"`
	NetSettlementAmount MoneyAmount `json:"netSettlementAmount" validate:"required"`
}

// ParticipantInput is one entry of the "participants" array in the wire
// format (§6). A valid settlement window holds exactly one account per
// participant; more than one is the MultipleAccounts error.
type ParticipantInput struct {
	ID       int64          `json:"id" validate:"required"`
	Accounts []AccountInput `json:"accounts" validate:"required,min=1,dive"`
}

// SettlementWindowInput is the raw JSON shape accepted at the engine
// boundary (§6), before canonicalization by the validator.
type SettlementWindowInput struct {
	ID           int64              `json:"id" validate:"required"`
	State        string             `json:"state" validate:"required"`
	Participants []ParticipantInput `json:"participants" validate:"dive"`
}

// ParticipantPosition is a canonicalized, validated position: exactly one
// account, a parsed Decimal amount, and a known currency. C3 operates only
// on slices of these.
type ParticipantPosition struct {
	ParticipantID int64
	AccountID     int64
	Amount        decimal.Decimal
	Currency      currency.Code
}
