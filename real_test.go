package bej

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDecomposeRealSpecExamples(t *testing.T) {
	d := decomposeReal(0.001)
	require.Equal(t, int64(0), d.whole)
	require.Equal(t, uint64(2), d.leadingZeros)
	require.Equal(t, uint64(1), d.fract)

	d = decomposeReal(-5576.90001)
	require.Equal(t, int64(-5576), d.whole)
	require.Equal(t, uint64(0), d.leadingZeros)
	require.Equal(t, uint64(90001), d.fract)
}

func TestRealValueRoundTrip(t *testing.T) {
	cases := []float64{0, 1, -1, 0.001, 123.456, -5576.90001, 100, -100.5}
	for _, v := range cases {
		encoded := encodeRealValue(nil, v)
		decoded, n, err := decodeRealValue(encoded)
		require.NoError(t, err)
		require.Equal(t, len(encoded), n)
		require.InDelta(t, v, decoded, 1e-9)
	}
}

func TestRealValueEncodedSizeMatchesEncoded(t *testing.T) {
	v := -5576.90001
	require.Equal(t, len(encodeRealValue(nil, v)), realValueEncodedSize(v))
}

func TestDecodeRealValueTruncated(t *testing.T) {
	encoded := encodeRealValue(nil, 123.456)
	for cut := 0; cut < len(encoded); cut++ {
		_, _, err := decodeRealValue(encoded[:cut])
		require.Error(t, err, "cut=%d", cut)
	}
}
