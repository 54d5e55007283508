package painfile

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSkeleton_Valid(t *testing.T) {
	data, err := os.ReadFile("testdata/skeleton.xml")
	require.NoError(t, err)

	doc, err := ParseSkeleton(data)
	require.NoError(t, err)
	assert.Equal(t, Namespace, doc.XMLNS)
	require.Len(t, doc.CstmrCdtTrfInitn.PmtInf, 1)
	require.Len(t, doc.CstmrCdtTrfInitn.PmtInf[0].CdtTrfTxInf, 1)
	assert.Equal(t, "CITICIAX", doc.CstmrCdtTrfInitn.PmtInf[0].Dbtr.Id.OrgId.BICOrBEI)
}

func TestParseSkeleton_MalformedXML(t *testing.T) {
	_, err := ParseSkeleton([]byte("<Document><Unclosed></Document>"))
	var bad *BadTemplateError
	assert.ErrorAs(t, err, &bad)
}

func TestParseSkeleton_MissingPmtInf(t *testing.T) {
	_, err := ParseSkeleton([]byte(`<Document xmlns="urn:iso:std:iso:20022:tech:xsd:pain.001.001.03"><CstmrCdtTrfInitn></CstmrCdtTrfInitn></Document>`))
	var bad *BadTemplateError
	assert.ErrorAs(t, err, &bad)
}

func TestParseSkeleton_MissingCdtTrfTxInf(t *testing.T) {
	data := []byte(`<Document xmlns="urn:iso:std:iso:20022:tech:xsd:pain.001.001.03">
  <CstmrCdtTrfInitn>
    <PmtInf><PmtInfId>x</PmtInfId></PmtInf>
  </CstmrCdtTrfInitn>
</Document>`)
	_, err := ParseSkeleton(data)
	var bad *BadTemplateError
	assert.ErrorAs(t, err, &bad)
}
