package painfile

import "encoding/xml"

// ParseSkeleton parses a pain.001.001.03 envelope that already contains one
// representative PmtInf and one representative CdtTrfTxInf, used as
// prototypes by Emit. It does not run the namespace sanity check of §4.5
// step 1 — that happens in Emit, since a BadTemplate there carries the same
// error kind the rest of the emission pipeline uses.
func ParseSkeleton(data []byte) (Document, error) {
	var doc Document
	if err := xml.Unmarshal(data, &doc); err != nil {
		return Document{}, &BadTemplateError{Reason: err.Error()}
	}
	if len(doc.CstmrCdtTrfInitn.PmtInf) == 0 {
		return Document{}, &BadTemplateError{Reason: "skeleton carries no PmtInf prototype"}
	}
	if len(doc.CstmrCdtTrfInitn.PmtInf[0].CdtTrfTxInf) == 0 {
		return Document{}, &BadTemplateError{Reason: "skeleton's PmtInf prototype carries no CdtTrfTxInf prototype"}
	}
	return doc, nil
}
