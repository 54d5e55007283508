package painfile

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strconv"
	"strings"
	"time"

	"kyd-netting/internal/netting"
	"kyd-netting/internal/randsrc"
)

// Emit runs the six ordered steps of §4.5 and returns the serialized
// pain.001.001.03 document. skeleton is never mutated: Emit clones its
// prototype blocks before writing into them, so repeated calls against the
// same skeleton value produce independent documents (§9 open question).
func Emit(matrix *netting.PaymentMatrix, dir Directory, windowID int64, skeleton Document, src randsrc.Source) (string, error) {
	// Step 1: sanity check.
	if skeleton.XMLNS != Namespace {
		return "", &BadTemplateError{Reason: fmt.Sprintf("skeleton xmlns %q does not match %q", skeleton.XMLNS, Namespace)}
	}

	// Step 2: directory coverage.
	for _, payer := range matrix.Payers() {
		if _, ok := dir.Lookup(payer); !ok {
			return "", &UnknownParticipantError{ParticipantID: payer}
		}
		for _, payee := range matrix.Payees(payer) {
			if _, ok := dir.Lookup(payee); !ok {
				return "", &UnknownParticipantError{ParticipantID: payee}
			}
		}
	}

	doc := cloneDocument(skeleton)
	pmtInfPrototype := doc.CstmrCdtTrfInitn.PmtInf[0]
	txPrototype := pmtInfPrototype.CdtTrfTxInf[0]

	// Step 3: populate GrpHdr.
	msgID, err := randsrc.MsgID(src)
	if err != nil {
		return "", fmt.Errorf("painfile: %w", err)
	}
	doc.CstmrCdtTrfInitn.GrpHdr = GroupHeader{
		MsgId:   msgID,
		CreDtTm: currentInstant(),
		NbOfTxs: matrix.TransactionCount(),
		CtrlSum: matrix.ControlSum().String(),
	}

	// Step 4: stamp the remittance field on the prototype, before cloning
	// it per payee.
	txPrototype.RmtInf = &RemittanceInfo{Ustrd: fmt.Sprintf("Settlement Window %d", windowID)}

	// Step 5: expand per-payer PmtInf groups.
	payers := matrix.Payers()
	pmtInfGroups := make([]PaymentInfo, 0, len(payers))
	reqdExctnDt := today()

	for payerOrdinal, payer := range payers {
		payerEntry, _ := dir.Lookup(payer)

		payeeIDs := matrix.Payees(payer)
		ctrlSum := matrix.ControlSumFor(payer)

		group := clonePaymentInfo(pmtInfPrototype)
		group.PmtInfId = strconv.Itoa(payerOrdinal)
		group.NbOfTxs = len(payeeIDs)
		group.CtrlSum = ctrlSum.String()
		group.ReqdExctnDt = reqdExctnDt
		group.Dbtr = Debtor{
			Nm:      payerEntry.Name,
			PstlAdr: PostalAddress{Ctry: payerEntry.Country},
			Id:      PartyId{OrgId: OrgId{BICOrBEI: HubBIC}},
		}
		group.DbtrAcct = Account{
			Id:  AccountId{Othr: OtherId{Id: stripLeadingZeros(payerEntry.AccountID)}},
			Ccy: string(matrix.Currency),
		}

		group.CdtTrfTxInf = make([]CreditTransferTx, 0, len(payeeIDs))
		for _, payee := range payeeIDs {
			payeeEntry, _ := dir.Lookup(payee)
			amount := matrix.AmountAt(payer, payee)

			endToEndID, err := randsrc.EndToEndID(src)
			if err != nil {
				return "", fmt.Errorf("painfile: %w", err)
			}

			tx := cloneCreditTransferTx(txPrototype)
			tx.PmtId = PaymentId{EndToEndId: endToEndID}
			tx.Amt = Amount{InstdAmt: InstructedAmount{
				Ccy:   string(matrix.Currency),
				Value: amount.String(),
			}}
			tx.Cdtr = Creditor{
				Nm:       payeeEntry.Name,
				PstlAdr:  PostalAddress{Ctry: payeeEntry.Country},
				CtctDtls: ContactDetails{Nm: CasablancaJVOrg},
			}
			tx.CdtrAcct = Account{
				Id: AccountId{Othr: OtherId{Id: stripLeadingZeros(payeeEntry.AccountID)}},
			}

			group.CdtTrfTxInf = append(group.CdtTrfTxInf, tx)
		}

		pmtInfGroups = append(pmtInfGroups, group)
	}

	// Step 6: attach and serialize.
	doc.CstmrCdtTrfInitn.PmtInf = pmtInfGroups

	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	enc := xml.NewEncoder(&buf)
	enc.Indent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return "", fmt.Errorf("painfile: encode: %w", err)
	}
	return buf.String(), nil
}

// currentInstant formats the current instant as ISO 8601 with milliseconds,
// per §4.5 step 3.
func currentInstant() string {
	return time.Now().UTC().Format("2006-01-02T15:04:05.000Z")
}

// today formats the current date, per §4.5 step 5's ReqdExctnDt.
func today() string {
	return time.Now().UTC().Format("2006-01-02")
}

// stripLeadingZeros removes leading "0" characters from a directory account
// id, per §4.5 step 5, leaving a single "0" for an all-zero input.
func stripLeadingZeros(s string) string {
	trimmed := strings.TrimLeft(s, "0")
	if trimmed == "" {
		return "0"
	}
	return trimmed
}
