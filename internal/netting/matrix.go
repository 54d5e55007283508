package netting

import (
	"fmt"
	"sort"

	"kyd-netting/internal/currency"

	"github.com/shopspring/decimal"
)

// PaymentMatrix is the immutable (once built) sparse payer -> payee ->
// amount mapping produced by the engine (§3, §4.4). Callers never mutate a
// PaymentMatrix directly; the unexported add method, called by Compute
// (engine.go), is the only writer.
type PaymentMatrix struct {
	Currency currency.Code
	entries  map[int64]map[int64]decimal.Decimal
}

func newPaymentMatrix(code currency.Code) *PaymentMatrix {
	return &PaymentMatrix{
		Currency: code,
		entries:  make(map[int64]map[int64]decimal.Decimal),
	}
}

// add accumulates amount onto the (payer, payee) cell. The netting
// algorithm only ever assigns each (payer, payee) pair once, but
// accumulating rather than overwriting keeps the matrix correct even if a
// future refinement of the algorithm revisits a pair.
func (m *PaymentMatrix) add(payer, payee int64, amount decimal.Decimal) {
	row, ok := m.entries[payer]
	if !ok {
		row = make(map[int64]decimal.Decimal)
		m.entries[payer] = row
	}
	row[payee] = row[payee].Add(amount)
}

// Payers returns the payer ids in ascending order.
func (m *PaymentMatrix) Payers() []int64 {
	ids := make([]int64, 0, len(m.entries))
	for id := range m.entries {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Payees returns the payee ids for a given payer in ascending order.
func (m *PaymentMatrix) Payees(payer int64) []int64 {
	row := m.entries[payer]
	ids := make([]int64, 0, len(row))
	for id := range row {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// AmountAt returns the transfer amount for a (payer, payee) cell.
func (m *PaymentMatrix) AmountAt(payer, payee int64) decimal.Decimal {
	return m.entries[payer][payee]
}

// Entry is one flattened (payer, payee, amount) cell, in the deterministic
// iteration order of §4.4: payers ascending, payees ascending within payer.
type Entry struct {
	PayerID int64
	PayeeID int64
	Amount  decimal.Decimal
}

// Entries flattens the matrix in deterministic order.
func (m *PaymentMatrix) Entries() []Entry {
	var out []Entry
	for _, payer := range m.Payers() {
		for _, payee := range m.Payees(payer) {
			out = append(out, Entry{PayerID: payer, PayeeID: payee, Amount: m.entries[payer][payee]})
		}
	}
	return out
}

// TransactionCount returns the total number of nonzero cells.
func (m *PaymentMatrix) TransactionCount() int {
	n := 0
	for _, row := range m.entries {
		n += len(row)
	}
	return n
}

// ControlSum returns the sum of every transfer amount in the matrix.
func (m *PaymentMatrix) ControlSum() decimal.Decimal {
	sum := decimal.Zero
	for _, row := range m.entries {
		for _, amount := range row {
			sum = sum.Add(amount)
		}
	}
	return sum
}

// ControlSumFor returns the sum of transfer amounts restricted to the given
// payer, used by the emitter's per-payer PmtInf.CtrlSum (§4.5 step 5).
func (m *PaymentMatrix) ControlSumFor(payer int64) decimal.Decimal {
	sum := decimal.Zero
	for _, amount := range m.entries[payer] {
		sum = sum.Add(amount)
	}
	return sum
}

// Audit re-checks invariants 1-4 of §3 against the positions the matrix was
// computed from. It is used by the test suite and by the HTTP handler
// (internal/handler), which runs it before calling painfile.Emit; the
// emitter itself does not call it.
func (m *PaymentMatrix) Audit(positions []ParticipantPosition) error {
	debit := make(map[int64]decimal.Decimal)
	credit := make(map[int64]decimal.Decimal)
	for _, pos := range positions {
		switch {
		case pos.Amount.IsPositive():
			debit[pos.ParticipantID] = pos.Amount
		case pos.Amount.IsNegative():
			credit[pos.ParticipantID] = pos.Amount.Abs()
		}
		if pos.Currency != m.Currency {
			return fmt.Errorf("netting: audit: position currency %s does not match matrix currency %s", pos.Currency, m.Currency)
		}
	}

	outgoing := make(map[int64]decimal.Decimal)
	incoming := make(map[int64]decimal.Decimal)
	for _, e := range m.Entries() {
		if !e.Amount.IsPositive() {
			return fmt.Errorf("netting: audit: non-positive amount at payer %d, payee %d", e.PayerID, e.PayeeID)
		}
		outgoing[e.PayerID] = outgoing[e.PayerID].Add(e.Amount)
		incoming[e.PayeeID] = incoming[e.PayeeID].Add(e.Amount)
	}

	for payer, total := range outgoing {
		want, ok := debit[payer]
		if !ok || !total.Equal(want) {
			return fmt.Errorf("netting: audit: payer %d outgoing total %s does not match debit %s", payer, total, want)
		}
	}
	for payee, total := range incoming {
		want, ok := credit[payee]
		if !ok || !total.Equal(want) {
			return fmt.Errorf("netting: audit: payee %d incoming total %s does not match credit %s", payee, total, want)
		}
	}

	return nil
}
