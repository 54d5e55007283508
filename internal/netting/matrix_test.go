package netting

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPaymentMatrix_DeterministicIteration(t *testing.T) {
	m := newPaymentMatrix("USD")
	m.add(3, 2, decimal.RequireFromString("1"))
	m.add(1, 2, decimal.RequireFromString("2"))
	m.add(1, 3, decimal.RequireFromString("3"))

	entries := m.Entries()
	require.Len(t, entries, 3)
	assert.Equal(t, int64(1), entries[0].PayerID)
	assert.Equal(t, int64(2), entries[0].PayeeID)
	assert.Equal(t, int64(1), entries[1].PayerID)
	assert.Equal(t, int64(3), entries[1].PayeeID)
	assert.Equal(t, int64(3), entries[2].PayerID)
}

func TestPaymentMatrix_AuditDetectsCurrencyMismatch(t *testing.T) {
	m := newPaymentMatrix("USD")
	m.add(1, 2, decimal.RequireFromString("5"))
	positions := []ParticipantPosition{
		{ParticipantID: 1, Amount: decimal.RequireFromString("5"), Currency: "EUR"},
		{ParticipantID: 2, Amount: decimal.RequireFromString("-5"), Currency: "USD"},
	}
	assert.Error(t, m.Audit(positions))
}

func TestPaymentMatrix_AuditDetectsBrokenConservation(t *testing.T) {
	m := newPaymentMatrix("USD")
	m.add(1, 2, decimal.RequireFromString("4"))
	positions := []ParticipantPosition{
		{ParticipantID: 1, Amount: decimal.RequireFromString("5"), Currency: "USD"},
		{ParticipantID: 2, Amount: decimal.RequireFromString("-5"), Currency: "USD"},
	}
	assert.Error(t, m.Audit(positions))
}

func TestPaymentMatrix_Fingerprint_StableAcrossEquivalentBuilds(t *testing.T) {
	a := newPaymentMatrix("USD")
	a.add(1, 2, decimal.RequireFromString("5"))
	a.add(1, 3, decimal.RequireFromString("2"))

	b := newPaymentMatrix("USD")
	b.add(1, 3, decimal.RequireFromString("2"))
	b.add(1, 2, decimal.RequireFromString("5"))

	assert.Equal(t, a.Fingerprint(), b.Fingerprint())
}

func TestPaymentMatrix_ControlSumFor(t *testing.T) {
	m := newPaymentMatrix("USD")
	m.add(1, 2, decimal.RequireFromString("5"))
	m.add(1, 3, decimal.RequireFromString("2"))
	m.add(4, 2, decimal.RequireFromString("9"))

	assert.True(t, m.ControlSumFor(1).Equal(decimal.RequireFromString("7")))
	assert.True(t, m.ControlSumFor(4).Equal(decimal.RequireFromString("9")))
	assert.True(t, m.ControlSum().Equal(decimal.RequireFromString("16")))
}
