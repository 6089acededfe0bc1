package bej

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParentLinkChildOrderPreserved(t *testing.T) {
	set := NewSet("Oem", 1)
	a := NewInteger("A", 0, 1)
	b := NewInteger("B", 1, 2)
	c := NewInteger("C", 2, 3)
	set.LinkChild(a)
	set.LinkChild(b)
	set.LinkChild(c)

	require.Equal(t, 3, set.ChildCount())
	children := set.Children()
	require.Equal(t, []Node{a, b, c}, children)
}

func TestPropertyAnnotationDefaults(t *testing.T) {
	pa := NewPropertyAnnotation("@Redfish.AllowableValues", 0)
	require.True(t, pa.Annotated())
	require.Equal(t, SelectorAnnotation, pa.Selector())
	require.Equal(t, KindPropertyAnnotation, pa.Kind)
}

func TestLeafConstructors(t *testing.T) {
	require.Equal(t, int64(42), NewInteger("n", 0, 42).Value)
	require.Equal(t, "Enabled", NewEnum("State", 0, "Enabled").Value)
	require.Equal(t, "hi", NewString("S", 0, "hi").Value)
	require.InDelta(t, 3.14, NewReal("R", 0, 3.14).Value, 0.0001)
	require.True(t, NewBool("B", 0, true).Value)
	require.Equal(t, "N", NewNull("N", 0).Name())
}
