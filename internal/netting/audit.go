package netting

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// Fingerprint produces a single SHA-256 digest over the matrix's
// deterministic entry ordering (payer, payee, amount), so two computations
// of the same settlement window can be compared for equality without a
// full structural diff. Grounded on the hash-chain pattern in
// internal/ledger/service.go (calculateHash), applied here to a whole
// matrix snapshot instead of a single ledger entry.
func (m *PaymentMatrix) Fingerprint() string {
	h := sha256.New()
	fmt.Fprintf(h, "%s|", m.Currency)
	for _, e := range m.Entries() {
		fmt.Fprintf(h, "%d>%d:%s;", e.PayerID, e.PayeeID, e.Amount.String())
	}
	return hex.EncodeToString(h.Sum(nil))
}
