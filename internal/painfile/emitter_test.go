package painfile

import (
	"os"
	"strings"
	"testing"

	"kyd-netting/internal/netting"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// repeatingSource is a deterministic randsrc.Source for tests: it cycles a
// fixed non-zero byte pattern so EndToEndID never hits its all-zero re-roll
// branch and MsgID output is reproducible across runs.
type repeatingSource struct {
	pattern []byte
	pos     int
}

func (r *repeatingSource) Read(p []byte) (int, error) {
	for i := range p {
		p[i] = r.pattern[r.pos%len(r.pattern)]
		r.pos++
	}
	return len(p), nil
}

func newRepeatingSource() *repeatingSource {
	return &repeatingSource{pattern: []byte{0x1a, 0x2b, 0x3c, 0x4d, 0x5e, 0x6f, 0x70, 0x81}}
}

func loadSkeleton(t *testing.T) Document {
	t.Helper()
	data, err := os.ReadFile("testdata/skeleton.xml")
	require.NoError(t, err)
	doc, err := ParseSkeleton(data)
	require.NoError(t, err)
	return doc
}

func testDirectory() Directory {
	return Directory{
		"1": {Name: "Atlas Bank", Country: "US", AccountID: "00012345"},
		"2": {Name: "Borealis Trust", Country: "GB", AccountID: "00098765"},
	}
}

func buildMatrix(t *testing.T) *netting.PaymentMatrix {
	t.Helper()
	positions := []netting.ParticipantPosition{
		{ParticipantID: 2, AccountID: 2, Amount: decimal.RequireFromString("-10.00"), Currency: "USD"},
		{ParticipantID: 1, AccountID: 1, Amount: decimal.RequireFromString("10.00"), Currency: "USD"},
	}
	matrix, err := netting.Compute(positions, "USD")
	require.NoError(t, err)
	return matrix
}

func TestEmit_Success(t *testing.T) {
	skeleton := loadSkeleton(t)
	matrix := buildMatrix(t)
	dir := testDirectory()

	xmlOut, err := Emit(matrix, dir, 42, skeleton, newRepeatingSource())
	require.NoError(t, err)

	assert.Contains(t, xmlOut, "<NbOfTxs>1</NbOfTxs>")
	assert.Contains(t, xmlOut, "<CtrlSum>10</CtrlSum>")
	assert.Contains(t, xmlOut, "Settlement Window 42")
	assert.Contains(t, xmlOut, "Atlas Bank")
	assert.Contains(t, xmlOut, "Borealis Trust")
	assert.Contains(t, xmlOut, "Casablanca JV Org")
	assert.Contains(t, xmlOut, "<Id>12345</Id>")
	assert.Contains(t, xmlOut, "<Id>98765</Id>")
	assert.Contains(t, xmlOut, "<BICOrBEI>CITICIAX</BICOrBEI>")
}

func TestEmit_BadNamespace(t *testing.T) {
	skeleton := loadSkeleton(t)
	skeleton.XMLNS = "urn:wrong"
	matrix := buildMatrix(t)

	_, err := Emit(matrix, testDirectory(), 1, skeleton, newRepeatingSource())
	var bad *BadTemplateError
	assert.ErrorAs(t, err, &bad)
}

// S8 — directory missing a participant.
func TestEmit_UnknownParticipant(t *testing.T) {
	skeleton := loadSkeleton(t)
	matrix := buildMatrix(t)
	dir := Directory{"1": {Name: "Atlas Bank", Country: "US", AccountID: "1"}}

	_, err := Emit(matrix, dir, 1, skeleton, newRepeatingSource())
	var unknown *UnknownParticipantError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, int64(2), unknown.ParticipantID)
}

// §9 open question: repeated Emit calls against the same skeleton value
// produce independent documents, and never mutate the caller's skeleton.
func TestEmit_DoesNotMutateSkeleton(t *testing.T) {
	skeleton := loadSkeleton(t)
	matrix := buildMatrix(t)
	dir := testDirectory()

	_, err := Emit(matrix, dir, 1, skeleton, newRepeatingSource())
	require.NoError(t, err)

	require.Len(t, skeleton.CstmrCdtTrfInitn.PmtInf, 1)
	require.Len(t, skeleton.CstmrCdtTrfInitn.PmtInf[0].CdtTrfTxInf, 1)
	assert.Equal(t, "PROTOTYPE", skeleton.CstmrCdtTrfInitn.PmtInf[0].PmtInfId)

	second, err := Emit(matrix, dir, 2, skeleton, newRepeatingSource())
	require.NoError(t, err)
	assert.True(t, strings.Contains(second, "Settlement Window 2"))
}

func TestEmit_EndToEndIdIsTenHexChars(t *testing.T) {
	skeleton := loadSkeleton(t)
	matrix := buildMatrix(t)

	xmlOut, err := Emit(matrix, testDirectory(), 1, skeleton, newRepeatingSource())
	require.NoError(t, err)

	start := strings.Index(xmlOut, "<EndToEndId>") + len("<EndToEndId>")
	end := strings.Index(xmlOut, "</EndToEndId>")
	require.Greater(t, end, start)
	assert.Len(t, xmlOut[start:end], 10)
}
