// Package painfile implements the ISO 20022 pain.001.001.03 emitter (§4.5):
// it takes a computed netting.PaymentMatrix and a DfspDirectory and produces
// a serialized CustomerCreditTransferInitiation document.
//
// The struct tree below is grounded on the teacher's pkg/iso20022/messages.go
// (GroupHeader/Amount/PartyIdentification naming) and deepened with the
// PmtInf/DbtrAcct/CdtrAcct layers from the pack's sepa pain.001 generator,
// since the teacher's own pacs.008 skeleton only covers a single flat
// transaction and pain.001.001.03 needs the per-payer grouping §4.5
// requires.
package painfile

import "encoding/xml"

// Namespace is the only pain.001.001.03 root namespace the emitter accepts.
const Namespace = "urn:iso:std:iso:20022:tech:xsd:pain.001.001.03"

// Document is the root element. XMLNS is read from the skeleton's xmlns
// attribute and re-emitted unchanged.
type Document struct {
	XMLName          xml.Name         `xml:"Document"`
	XMLNS            string           `xml:"xmlns,attr"`
	CstmrCdtTrfInitn CstmrCdtTrfInitn `xml:"CstmrCdtTrfInitn"`
}

// CstmrCdtTrfInitn holds the group header plus one PmtInf per payer. The
// skeleton carries exactly one representative PmtInf, used as the
// per-payer prototype (§4.5 inputs).
type CstmrCdtTrfInitn struct {
	GrpHdr GroupHeader   `xml:"GrpHdr"`
	PmtInf []PaymentInfo `xml:"PmtInf"`
}

// GroupHeader is populated in step 3 of §4.5.
type GroupHeader struct {
	MsgId   string `xml:"MsgId"`
	CreDtTm string `xml:"CreDtTm"`
	NbOfTxs int    `xml:"NbOfTxs"`
	CtrlSum string `xml:"CtrlSum"`
}

// PaymentInfo is one per-payer payment information group (step 5).
type PaymentInfo struct {
	PmtInfId    string             `xml:"PmtInfId"`
	NbOfTxs     int                `xml:"NbOfTxs"`
	CtrlSum     string             `xml:"CtrlSum"`
	ReqdExctnDt string             `xml:"ReqdExctnDt"`
	Dbtr        Debtor             `xml:"Dbtr"`
	DbtrAcct    Account            `xml:"DbtrAcct"`
	CdtTrfTxInf []CreditTransferTx `xml:"CdtTrfTxInf"`
}

// Debtor carries the payer's directory-sourced identification.
type Debtor struct {
	Nm      string        `xml:"Nm"`
	PstlAdr PostalAddress `xml:"PstlAdr"`
	Id      PartyId       `xml:"Id"`
}

// PostalAddress only carries the country, per §4.5's field list.
type PostalAddress struct {
	Ctry string `xml:"Ctry"`
}

// PartyId wraps the org identification block.
type PartyId struct {
	OrgId OrgId `xml:"OrgId"`
}

// OrgId carries the fixed hub BIC.
type OrgId struct {
	BICOrBEI string `xml:"BICOrBEI"`
}

// Account is shared by DbtrAcct and CdtrAcct.
type Account struct {
	Id  AccountId `xml:"Id"`
	Ccy string    `xml:"Ccy,omitempty"`
}

// AccountId wraps the other-identification block holding the account number.
type AccountId struct {
	Othr OtherId `xml:"Othr"`
}

// OtherId carries the stripped-of-leading-zeros account number.
type OtherId struct {
	Id string `xml:"Id"`
}

// CreditTransferTx is one per-payee credit transfer entry, cloned from the
// skeleton's prototype for every payee of a payer (step 5's inner loop).
type CreditTransferTx struct {
	PmtId    PaymentId       `xml:"PmtId"`
	Amt      Amount          `xml:"Amt"`
	Cdtr     Creditor        `xml:"Cdtr"`
	CdtrAcct Account         `xml:"CdtrAcct"`
	RmtInf   *RemittanceInfo `xml:"RmtInf,omitempty"`
}

// PaymentId carries the transfer's EndToEndId.
type PaymentId struct {
	EndToEndId string `xml:"EndToEndId"`
}

// Amount wraps the instructed amount.
type Amount struct {
	InstdAmt InstructedAmount `xml:"InstdAmt"`
}

// InstructedAmount is the Ccy-attributed decimal text value.
type InstructedAmount struct {
	Ccy   string `xml:"Ccy,attr"`
	Value string `xml:",chardata"`
}

// Creditor carries the payee's directory-sourced identification plus the
// constant contact-details name §4.5 prescribes.
type Creditor struct {
	Nm       string         `xml:"Nm"`
	PstlAdr  PostalAddress  `xml:"PstlAdr"`
	CtctDtls ContactDetails `xml:"CtctDtls"`
}

// ContactDetails carries the constant "Casablanca JV Org" name.
type ContactDetails struct {
	Nm string `xml:"Nm"`
}

// RemittanceInfo carries the "Settlement Window {id}" stamp (step 4).
type RemittanceInfo struct {
	Ustrd string `xml:"Ustrd"`
}

// CasablancaJVOrg is the constant CtctDtls.Nm value §4.5 mandates absent a
// directory override.
const CasablancaJVOrg = "Casablanca JV Org"

// HubBIC is the fixed Dbtr.Id.OrgId.BICOrBEI value for every payment-info
// group the hub issues.
const HubBIC = "CITICIAX"

// clonePaymentInfo copies a prototype PaymentInfo, discarding its
// CdtTrfTxInf slice, which the emitter rebuilds per payer (§9's "treat the
// template as an immutable tree; deep-clone before mutation").
func clonePaymentInfo(p PaymentInfo) PaymentInfo {
	clone := p
	clone.CdtTrfTxInf = nil
	return clone
}

// cloneCreditTransferTx copies a prototype CreditTransferTx, including a
// fresh RemittanceInfo allocation so mutating the clone never touches the
// prototype (or a sibling clone) it was copied from.
func cloneCreditTransferTx(tx CreditTransferTx) CreditTransferTx {
	clone := tx
	if tx.RmtInf != nil {
		rmt := *tx.RmtInf
		clone.RmtInf = &rmt
	}
	return clone
}

// cloneDocument copies the skeleton's GrpHdr and prototype blocks, leaving
// the original skeleton value the caller passed in untouched. This is what
// makes repeated Emit calls against the same skeleton build independent
// documents instead of the teacher's in-place mutation (§9 open question,
// resolved as "independent").
func cloneDocument(skeleton Document) Document {
	clone := skeleton
	clone.CstmrCdtTrfInitn.PmtInf = make([]PaymentInfo, len(skeleton.CstmrCdtTrfInitn.PmtInf))
	for i, pmtInf := range skeleton.CstmrCdtTrfInitn.PmtInf {
		cloned := clonePaymentInfo(pmtInf)
		cloned.CdtTrfTxInf = make([]CreditTransferTx, len(pmtInf.CdtTrfTxInf))
		for j, tx := range pmtInf.CdtTrfTxInf {
			cloned.CdtTrfTxInf[j] = cloneCreditTransferTx(tx)
		}
		clone.CstmrCdtTrfInitn.PmtInf[i] = cloned
	}
	return clone
}
