package bej

import (
	"testing"

	"github.com/openbmc/libbej/internal/bejtest"
	"github.com/openbmc/libbej/internal/nnint"
	"github.com/stretchr/testify/require"
)

func TestDictionaryHeaderFields(t *testing.T) {
	dict, err := NewDictionary(bejtest.DummySimple())
	require.NoError(t, err)
	require.Equal(t, 3, dict.EntryCount())
	require.False(t, dict.Header.Truncated)
}

func TestDictionaryPropertyByName(t *testing.T) {
	dict, err := NewDictionary(bejtest.DummySimple())
	require.NoError(t, err)

	rec, _, err := dict.PropertyByName(dict.PropertyHeadOffset(), "Identifier")
	require.NoError(t, err)
	require.Equal(t, uint16(0), rec.SequenceNumber)

	rec, _, err = dict.PropertyByName(dict.PropertyHeadOffset(), "Name")
	require.NoError(t, err)
	require.Equal(t, uint16(1), rec.SequenceNumber)

	_, _, err = dict.PropertyByName(dict.PropertyHeadOffset(), "Missing")
	require.Error(t, err)
	require.Equal(t, ErrUnknownProperty, CodeOf(err))
}

func TestDictionaryPropertyBySequence(t *testing.T) {
	dict, err := NewDictionary(bejtest.DummySimple())
	require.NoError(t, err)

	root, err := dict.recordAt(0)
	require.NoError(t, err)

	rec, _, err := dict.Property(root.ChildPointerOffset, 1)
	require.NoError(t, err)
	name, err := dict.PropertyName(rec)
	require.NoError(t, err)
	require.Equal(t, "Name", name)
}

func TestDictionaryPropertyUnboundedScan(t *testing.T) {
	// Property scans every remaining entry from startOffset, not just the
	// count the matched parent declared for its own children.
	dict, err := NewDictionary(bejtest.DriveOEM())
	require.NoError(t, err)

	root, err := dict.recordAt(0)
	require.NoError(t, err)
	rec, _, err := dict.Property(root.ChildPointerOffset, 1)
	require.NoError(t, err)
	name, err := dict.PropertyName(rec)
	require.NoError(t, err)
	require.Equal(t, "Oem", name)

	// Drives (entry 3) lies past the root's two declared children (entries
	// 1 and 2), so only an unbounded scan from the root's child pointer
	// reaches it.
	rec, _, err = dict.PropertyByName(root.ChildPointerOffset, "Drives")
	require.NoError(t, err)
	name, err = dict.PropertyName(rec)
	require.NoError(t, err)
	require.Equal(t, "Drives", name)
}

func TestDictionaryPropertyNameRejectsMissingTerminator(t *testing.T) {
	buf := bejtest.DummySimple()
	dict, err := NewDictionary(buf)
	require.NoError(t, err)
	rec, err := dict.recordAt(1)
	require.NoError(t, err)
	name, err := dict.PropertyName(rec)
	require.NoError(t, err)
	require.Equal(t, "Identifier", name)

	corrupt := append([]byte(nil), buf...)
	namesOff := 12 + dict.EntryCount()*10
	termIdx := namesOff + int(rec.NameOffset) + int(rec.NameLength) - 1
	corrupt[termIdx] = 'X'
	corruptDict, err := NewDictionary(corrupt)
	require.NoError(t, err)
	_, err = corruptDict.PropertyName(rec)
	require.Error(t, err)
	require.Equal(t, ErrInvalidSize, CodeOf(err))
}

func TestDictionaryResolveLocator(t *testing.T) {
	dict, err := NewDictionary(bejtest.DriveOEM())
	require.NoError(t, err)

	// locator path Oem(seq 1) -> Drives(seq 0), major dictionary throughout
	// (selector bit 0).
	tuples := append(nnint.Encode(1<<1), nnint.Encode(0<<1)...)
	locator := append(nnint.Encode(uint64(len(tuples))), tuples...)

	rec, _, err := dict.ResolveLocator(locator)
	require.NoError(t, err)
	name, err := dict.PropertyName(rec)
	require.NoError(t, err)
	require.Equal(t, "Drives", name)
}

func TestDictionaryResolveLocatorRejectsLengthMismatch(t *testing.T) {
	dict, err := NewDictionary(bejtest.DriveOEM())
	require.NoError(t, err)

	locator := append(nnint.Encode(99), nnint.Encode(1<<1)...)
	_, _, err = dict.ResolveLocator(locator)
	require.Error(t, err)
	require.Equal(t, ErrInvalidSize, CodeOf(err))
}

func TestDictionaryTooShort(t *testing.T) {
	_, err := NewDictionary([]byte{0x00, 0x01})
	require.Error(t, err)
	require.Equal(t, ErrInvalidSize, CodeOf(err))
}

func TestDictionaryTruncatedNamePool(t *testing.T) {
	buf := bejtest.DummySimple()
	_, err := NewDictionary(buf[:14])
	require.Error(t, err)
}
