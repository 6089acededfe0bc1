package nnint

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestReadUint64LE(t *testing.T) {
	// Scenario B from spec.md.
	b := []byte{0xAB, 0xCD, 0xEF, 0x12, 0x13, 0x65, 0x23, 0x89}
	require.Equal(t, uint64(0x1312EFCDAB), ReadUint64LE(b, 5))
	require.Equal(t, uint64(0), ReadUint64LE(b, 0))
	require.Equal(t, uint64(0x8923651312EFCDAB), ReadUint64LE(b, 8))
}

func TestValueAndSize(t *testing.T) {
	tests := []struct {
		name     string
		p        []byte
		wantVal  uint64
		wantSize int
	}{
		{"3 byte value", []byte{0x03, 0xCD, 0xEF, 0x12}, 0x12EFCD, 4},
		{"8 byte value", []byte{0x08, 0xAB, 0xCD, 0xEF, 0x12, 0x13, 0x65, 0x23, 0x89}, 0x8923651312EFCDAB, 9},
		{"zero value", []byte{0x01, 0x00}, 0, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.wantVal, Value(tt.p))
			require.Equal(t, tt.wantSize, Size(tt.p))
		})
	}
}

func TestEncodedSizeRoundTrip(t *testing.T) {
	values := []uint64{0, 1, 0x12EFCD, 0xFF, 0x100, 0xFFFFFFFF, 0x8923651312EFCDAB}
	for _, v := range values {
		encoded := Encode(v)
		require.Equal(t, EncodedSize(v), len(encoded))
		require.Equal(t, Size(encoded), len(encoded))
		require.Equal(t, v, Value(encoded))
	}
}

func TestEncodedSizeZeroIsTwoBytes(t *testing.T) {
	require.Equal(t, 2, EncodedSize(0))
	require.Equal(t, []byte{0x01, 0x00}, Encode(0))
}

func TestIntEncodedSizeBoundaries(t *testing.T) {
	tests := []struct {
		v    int64
		size int
	}{
		{0, 1},
		{-1, 1},
		{1, 1},
		{127, 1},
		{128, 2},
		{-128, 1},
		{-129, 2},
		{32767, 2},
		{32768, 3},
		{-9223372036854775808, 8}, // math.MinInt64
		{9223372036854775807, 8},  // math.MaxInt64
	}
	for _, tt := range tests {
		require.Equalf(t, tt.size, IntEncodedSize(tt.v), "value %d", tt.v)
	}
}

func TestEncodeIntRoundTrip(t *testing.T) {
	values := []int64{0, -1, 1, -5, 127, -128, 32767, -32768, 1 << 40, -(1 << 40),
		9223372036854775807, -9223372036854775808}
	for _, v := range values {
		enc := EncodeInt(v)
		require.Equal(t, IntEncodedSize(v), len(enc))
		require.Equal(t, v, DecodeInt(enc))
	}
}

func TestDecodeIntEmpty(t *testing.T) {
	require.Equal(t, int64(0), DecodeInt(nil))
}
