package bej

import (
	"github.com/openbmc/libbej/internal/nnint"
)

// Dictionaries bundles the two dictionaries an encode or decode operation
// needs: the schema's own major dictionary, and the shared annotation
// dictionary used for "@"-prefixed properties.
type Dictionaries struct {
	Major      *Dictionary
	Annotation *Dictionary
}

// EncodeOptions configures Encode. The zero value is a valid, minimal
// configuration.
type EncodeOptions struct {
	// SchemaClass is written into the PLDM block header. Defaults to
	// SchemaClassMajor.
	SchemaClass SchemaClass
	// MajorSchemaStartingOffset overrides the dictionary entry index used
	// to resolve the root node. 0 (the default) means "use
	// Major.PropertyHeadOffset()"; any other value is used verbatim, for
	// encoding a subsection of a resource identified by a BEJ locator.
	MajorSchemaStartingOffset uint16
}

// Encode serializes root into a complete PLDM-framed BEJ byte stream, using
// dicts to resolve every node's dictionary offsets.
func Encode(root Node, dicts Dictionaries, opts EncodeOptions) ([]byte, error) {
	if root == nil {
		return nil, newError(ErrNullParameter, "root node is nil")
	}
	if dicts.Major == nil {
		return nil, newError(ErrNullParameter, "major dictionary is nil")
	}

	startOffset := dicts.Major.PropertyHeadOffset()
	if opts.MajorSchemaStartingOffset != 0 {
		startOffset = opts.MajorSchemaStartingOffset
	}

	enc := &encoder{dicts: dicts}
	if err := enc.sizePass(root, startOffset, false, 0); err != nil {
		return nil, err
	}

	out := writePLDMHeader(make([]byte, 0, PLDMBlockHeaderSize+root.meta().sflSize+root.meta().vSize), opts.SchemaClass)
	out, err := enc.emit(out, root, false, 0)
	if err != nil {
		return nil, err
	}
	return out, nil
}

type encoder struct {
	dicts Dictionaries
}

func (e *encoder) dictFor(n Node) *Dictionary {
	if n.Selector() == SelectorAnnotation {
		return e.dicts.Annotation
	}
	return e.dicts.Major
}

// sizePass resolves n's dictionary offset and computes its sflSize/vSize via
// a post-order traversal. Go's call stack already gives us that for free
// through plain recursion, which is what the teacher's own tree walkers use
// for workloads without pathological depth, so the "explicit stack" the wire
// protocol implies is realized here as ordinary recursion over a bounded
// property tree.
//
// parentDictOffset/isArrayElement/elementIndex let a node resolve its own
// dictionary entry: named children look themselves up by name under their
// parent's offset; the root takes the entry at parentDictOffset directly;
// array elements look up sequence number 0 starting at parentDictOffset (the
// array-element rule, mirrored in decoder.go).
func (e *encoder) sizePass(n Node, parentDictOffset uint16, isArrayElement bool, elementIndex uint16) error {
	dict := e.dictFor(n)
	if dict == nil {
		return newError(ErrInvalidSchemaType, "node requires a dictionary that was not supplied")
	}

	var rec PropertyRecord
	var err error
	switch {
	case isArrayElement:
		rec, _, err = dict.Property(parentDictOffset, 0)
	case n.Name() == "":
		rec, err = dict.recordAt(int(parentDictOffset))
	default:
		rec, _, err = dict.PropertyByName(parentDictOffset, n.Name())
	}
	if err != nil {
		return wrapError(ErrUnknownProperty, "resolving dictionary entry for \""+n.Name()+"\"", err)
	}
	// dictOffset is this node's own child_pointer_offset: the starting
	// entry index its own children resolve their names/sequences from.
	n.meta().dictOffset = rec.ChildPointerOffset

	seq := n.SequenceNumber()
	if isArrayElement {
		seq = elementIndex
	}

	switch t := n.(type) {
	case *Parent:
		vSize := 0
		if t.Kind == KindSet || t.Kind == KindArray {
			vSize = nnint.EncodedSize(uint64(t.ChildCount()))
		}
		i := uint16(0)
		for _, child := range t.Children() {
			childIsElement := t.Kind == KindArray
			if err := e.sizePass(child, n.meta().dictOffset, childIsElement, i); err != nil {
				return err
			}
			vSize += child.meta().sflSize + child.meta().vSize
			i++
		}
		n.meta().vSize = vSize
	case *IntegerNode:
		n.meta().vSize = nnint.IntEncodedSize(t.Value)
	case *EnumNode:
		_, idx, err := dict.PropertyByName(n.meta().dictOffset, t.Value)
		if err != nil {
			return wrapError(ErrUnknownProperty, "resolving enum value \""+t.Value+"\"", err)
		}
		n.meta().vSize = nnint.EncodedSize(uint64(idx))
	case *StringNode:
		n.meta().vSize = len(t.Value) + 1
	case *RealNode:
		n.meta().vSize = realValueEncodedSize(t.Value)
	case *BoolNode:
		n.meta().vSize = 1
	case *NullNode:
		n.meta().vSize = 0
	default:
		return newError(ErrInvalidSchemaType, "unknown node type")
	}

	sRaw := uint64(seq)<<1 | uint64(n.Selector())
	n.meta().sflSize = nnint.EncodedSize(sRaw) + 1 /* F */ + nnint.EncodedSize(uint64(n.meta().vSize)) /* L */
	return nil
}

func (e *encoder) emit(dst []byte, n Node, isArrayElement bool, elementIndex uint16) ([]byte, error) {
	dict := e.dictFor(n)
	seq := n.SequenceNumber()
	if isArrayElement {
		seq = elementIndex
	}

	var typ PrincipalDataType
	switch t := n.(type) {
	case *Parent:
		switch t.Kind {
		case KindSet:
			typ = TypeSet
		case KindArray:
			typ = TypeArray
		case KindPropertyAnnotation:
			typ = TypePropertyAnnotation
		}
	case *IntegerNode:
		typ = TypeInteger
	case *EnumNode:
		typ = TypeEnum
	case *StringNode:
		typ = TypeString
	case *RealNode:
		typ = TypeReal
	case *BoolNode:
		typ = TypeBoolean
	case *NullNode:
		typ = TypeNull
	}

	sRaw := uint64(seq)<<1 | uint64(n.Selector())
	dst = nnint.Append(dst, sRaw)
	dst = append(dst, byte(NewFormatTuple(typ, false, false, false)))
	dst = nnint.Append(dst, uint64(n.meta().vSize))

	switch t := n.(type) {
	case *Parent:
		if t.Kind == KindSet || t.Kind == KindArray {
			dst = nnint.Append(dst, uint64(t.ChildCount()))
		}
		i := uint16(0)
		for _, child := range t.Children() {
			var err error
			dst, err = e.emit(dst, child, t.Kind == KindArray, i)
			if err != nil {
				return nil, err
			}
			i++
		}
	case *IntegerNode:
		dst = nnint.AppendInt(dst, t.Value)
	case *EnumNode:
		_, idx, err := dict.PropertyByName(n.meta().dictOffset, t.Value)
		if err != nil {
			return nil, wrapError(ErrUnknownProperty, "resolving enum value \""+t.Value+"\"", err)
		}
		dst = nnint.Append(dst, uint64(idx))
	case *StringNode:
		dst = append(dst, []byte(t.Value)...)
		dst = append(dst, 0)
	case *RealNode:
		dst = encodeRealValue(dst, t.Value)
	case *BoolNode:
		if t.Value {
			dst = append(dst, 0xFF)
		} else {
			dst = append(dst, 0)
		}
	case *NullNode:
		// zero-length V
	}
	return dst, nil
}
