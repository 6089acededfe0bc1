package sflv

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// buildTuple assembles a minimal SFLV-encoded byte sequence for tests:
// S (nnint) | F (1 byte) | L (nnint) | V.
func buildTuple(seq uint16, selector uint8, format byte, value []byte) []byte {
	s := (uint64(seq) << SeqNumShift) | uint64(selector)
	out := []byte{0x01, byte(s)}
	out = append(out, format)
	out = append(out, 0x01, byte(len(value)))
	out = append(out, value...)
	return out
}

func TestParseBasic(t *testing.T) {
	stream := buildTuple(5, 0, 0x03, []byte{0xAA, 0xBB, 0xCC})
	tup, err := Parse(stream, 0)
	require.NoError(t, err)
	require.Equal(t, uint16(5), tup.SequenceNumber)
	require.Equal(t, uint8(0), tup.Selector)
	require.Equal(t, byte(0x03), tup.Format)
	require.Equal(t, []byte{0xAA, 0xBB, 0xCC}, tup.Value)
	require.Equal(t, len(stream), tup.ValueEndOffset)
}

func TestParseSelectorBit(t *testing.T) {
	stream := buildTuple(7, 1, 0x05, nil)
	tup, err := Parse(stream, 0)
	require.NoError(t, err)
	require.Equal(t, uint16(7), tup.SequenceNumber)
	require.Equal(t, uint8(1), tup.Selector)
	require.Empty(t, tup.Value)
}

func TestParseAtNonZeroOffset(t *testing.T) {
	prefix := []byte{0xDE, 0xAD, 0xBE, 0xEF}
	tuple := buildTuple(1, 0, 0x07, []byte{0x01})
	stream := append(append([]byte{}, prefix...), tuple...)
	tup, err := Parse(stream, len(prefix))
	require.NoError(t, err)
	require.Equal(t, len(stream), tup.ValueEndOffset)
}

func TestParseTruncated(t *testing.T) {
	stream := buildTuple(1, 0, 0x01, []byte{0x01, 0x02})
	for cut := 0; cut < len(stream); cut++ {
		_, err := Parse(stream[:cut], 0)
		require.Error(t, err, "cut=%d", cut)
	}
}

func TestParseEmptyValue(t *testing.T) {
	stream := buildTuple(0, 0, 0x00, nil)
	tup, err := Parse(stream, 0)
	require.NoError(t, err)
	require.Empty(t, tup.Value)
	require.Equal(t, len(stream), tup.ValueEndOffset)
}
