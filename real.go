package bej

import (
	"strconv"
	"strings"

	"github.com/openbmc/libbej/internal/nnint"
)

// decomposedReal is the component breakdown of a bejReal V-field, per
// spec.md §4.3: a whole part, a count of leading zeros in the fractional
// part, and the fractional digits themselves read as an integer.
type decomposedReal struct {
	whole        int64
	leadingZeros uint64
	fract        uint64
}

// decomposeReal splits v into its bejReal components using Go's shortest
// round-trip decimal formatting, rather than the repeated-multiply-by-ten
// approach: multiplying the fractional part by 10 in floating point
// accumulates representational error and can break exact round-trips for
// values like -5576.90001.
func decomposeReal(v float64) decomposedReal {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	intPart, fracPart, hasFrac := strings.Cut(s, ".")

	whole, _ := strconv.ParseInt(intPart, 10, 64)
	if neg {
		whole = -whole
	}

	var leadingZeros uint64
	var fract uint64
	if hasFrac && fracPart != "" {
		trimmed := strings.TrimRight(fracPart, "0")
		for i := 0; i < len(trimmed) && trimmed[i] == '0'; i++ {
			leadingZeros++
		}
		if trimmed != "" {
			fract, _ = strconv.ParseUint(trimmed[leadingZeros:], 10, 64)
		}
	}

	return decomposedReal{whole: whole, leadingZeros: leadingZeros, fract: fract}
}

// composeReal reassembles a float64 from its bejReal components.
func composeReal(d decomposedReal) float64 {
	s := strconv.FormatInt(d.whole, 10)
	if d.fract != 0 || d.leadingZeros != 0 {
		frac := strconv.FormatUint(d.fract, 10)
		s += "." + strings.Repeat("0", int(d.leadingZeros)) + frac
	}
	// whole==0 cannot itself carry a sign, so a value strictly between 0
	// and -1 loses its sign on this path; see DESIGN.md.
	v, _ := strconv.ParseFloat(s, 64)
	return v
}

// encodeRealValue appends v's bejReal V-field encoding to dst. Exponents are
// never emitted (expLen is always 0); every value this codec produces is
// expressed purely via whole/leadingZeros/fract.
func encodeRealValue(dst []byte, v float64) []byte {
	d := decomposeReal(v)
	wholeBytes := nnint.EncodeInt(d.whole)

	dst = nnint.Append(dst, uint64(len(wholeBytes)))
	dst = append(dst, wholeBytes...)
	dst = nnint.Append(dst, d.leadingZeros)
	dst = nnint.Append(dst, d.fract)
	dst = nnint.Append(dst, 0) // expLen
	return dst
}

// decodeRealValue parses a bejReal V-field from b, returning the decoded
// value and the number of bytes consumed.
func decodeRealValue(b []byte) (float64, int, error) {
	off := 0
	readNnint := func() (uint64, error) {
		if off >= len(b) {
			return 0, newError(ErrInvalidSize, "bejReal field truncated")
		}
		n := nnint.Size(b[off:])
		if off+n > len(b) {
			return 0, newError(ErrInvalidSize, "bejReal field truncated")
		}
		v := nnint.Value(b[off : off+n])
		off += n
		return v, nil
	}

	wholeLen, err := readNnint()
	if err != nil {
		return 0, 0, err
	}
	if off+int(wholeLen) > len(b) {
		return 0, 0, newError(ErrInvalidSize, "bejReal whole field truncated")
	}
	whole := nnint.DecodeInt(b[off : off+int(wholeLen)])
	off += int(wholeLen)

	leadingZeros, err := readNnint()
	if err != nil {
		return 0, 0, err
	}
	fract, err := readNnint()
	if err != nil {
		return 0, 0, err
	}
	expLen, err := readNnint()
	if err != nil {
		return 0, 0, err
	}
	if expLen > 0 {
		if off+int(expLen) > len(b) {
			return 0, 0, newError(ErrInvalidSize, "bejReal exponent field truncated")
		}
		off += int(expLen) // exponent bytes skipped, not applied: emitters in this codec never set it
	}

	v := composeReal(decomposedReal{whole: whole, leadingZeros: leadingZeros, fract: fract})
	return v, off, nil
}

func realValueEncodedSize(v float64) int {
	d := decomposeReal(v)
	wholeLen := nnint.IntEncodedSize(d.whole)
	size := nnint.EncodedSize(uint64(wholeLen))
	size += wholeLen
	size += nnint.EncodedSize(d.leadingZeros)
	size += nnint.EncodedSize(d.fract)
	size += nnint.EncodedSize(0)
	return size
}
