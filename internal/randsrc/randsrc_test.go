package randsrc

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMsgID_Length(t *testing.T) {
	src := bytes.NewReader(bytes.Repeat([]byte{0xab}, 27))
	id, err := MsgID(src)
	require.NoError(t, err)
	assert.Len(t, id, 35)
}

func TestEndToEndID_Length(t *testing.T) {
	src := bytes.NewReader(bytes.Repeat([]byte{0xcd}, 5))
	id, err := EndToEndID(src)
	require.NoError(t, err)
	assert.Len(t, id, 10)
}

func TestEndToEndID_RerollsOnAllZero(t *testing.T) {
	src := bytes.NewReader(append(make([]byte, 5), 0x01, 0x02, 0x03, 0x04, 0x05))
	id, err := EndToEndID(src)
	require.NoError(t, err)
	assert.Equal(t, "0102030405", id)
}

func TestEndToEndID_ExhaustsRerollAttempts(t *testing.T) {
	src := bytes.NewReader(make([]byte, 5*65))
	_, err := EndToEndID(src)
	assert.Error(t, err)
}

func TestCSPRNG_ReturnsReadableSource(t *testing.T) {
	src := CSPRNG()
	buf := make([]byte, 8)
	n, err := src.Read(buf)
	require.NoError(t, err)
	assert.Equal(t, 8, n)
}
