package bej

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParsePLDMHeaderRoundTrip(t *testing.T) {
	block := writePLDMHeader(nil, SchemaClassMajor)
	hdr, err := parsePLDMHeader(block)
	require.NoError(t, err)
	require.Equal(t, Version, hdr.Version)
	require.Equal(t, SchemaClassMajor, hdr.SchemaClass)
}

func TestParsePLDMHeaderTooShort(t *testing.T) {
	_, err := parsePLDMHeader([]byte{0x01, 0x02, 0x03})
	require.Error(t, err)
	require.Equal(t, ErrInvalidSize, CodeOf(err))
}

func TestFormatTupleFields(t *testing.T) {
	f := NewFormatTuple(TypeInteger, true, false, true)
	require.Equal(t, TypeInteger, f.Type())
	require.True(t, f.DeferredBinding())
	require.False(t, f.ReadOnly())
	require.True(t, f.Nullable())
}

func TestPrincipalDataTypeString(t *testing.T) {
	require.Equal(t, "Set", TypeSet.String())
	require.Equal(t, "ResourceLinkExpansion", TypeResourceLinkExpansion.String())
	require.Equal(t, "Unknown", PrincipalDataType(99).String())
}
