package bej

import (
	"github.com/openbmc/libbej/internal/nnint"
	"github.com/openbmc/libbej/internal/sflv"
)

// maxSFLVIterations bounds the number of SFLV tuples a single Decode call
// will process, guarding against a corrupt or adversarial stream whose
// length fields describe an unbounded or cyclic structure.
const maxSFLVIterations = 1_000_000

// DecodeCallbacks holds the set of callbacks Decode invokes as it walks a
// BEJ stream. Any field may be left nil; a nil callback is simply skipped.
// A struct of optional function fields is used instead of an interface so
// that callers genuinely only need to implement the events they care about.
type DecodeCallbacks struct {
	SetStart            func(name string, annotated bool)
	SetEnd              func()
	ArrayStart          func(name string, annotated bool)
	ArrayEnd            func()
	PropertyAnnotationStart func(name string)
	PropertyAnnotationEnd   func()
	Integer  func(name string, v int64, annotated bool)
	Enum     func(name string, v string, annotated bool)
	String   func(name string, v string, annotated bool)
	Real     func(name string, v float64, annotated bool)
	Bool     func(name string, v bool, annotated bool)
	Null     func(name string, annotated bool)
	// PropertyEnd fires exactly once between two siblings: after a
	// property finishes (and after any nested sections that end with it
	// are closed), provided the enclosing section is still open. It does
	// not fire after the last property of a section, nor at end of stream.
	PropertyEnd func()
}

// DecodeOptions configures Decode. The zero value is a valid, minimal
// configuration.
type DecodeOptions struct {
	// MajorSchemaStartingOffset overrides the dictionary entry index used
	// to resolve the root node. 0 (the default) means "use
	// Major.PropertyHeadOffset()"; any other value is used verbatim, for
	// decoding a subsection of a resource identified by a BEJ locator.
	MajorSchemaStartingOffset uint16
}

type sectionType int

const (
	sectionNone sectionType = iota
	sectionSet
	sectionArray
)

// sectionFrame is one entry of the decoder's explicit section stack, pushed
// whenever a Set, Array, or PropertyAnnotation section is entered and
// popped exactly when the stream cursor reaches endOffset.
type sectionFrame struct {
	kind             sectionType
	addPropertyName  bool
	savedMainOff     uint16
	savedAnnoOff     uint16
	endOffset        int
	nextElementIndex uint16
}

type decodeState struct {
	stream  []byte
	dicts   Dictionaries
	cb      DecodeCallbacks
	opts    DecodeOptions
	stack   []sectionFrame
	mainOff uint16
	annoOff uint16
}

// Decode parses a complete PLDM-framed BEJ byte stream, invoking cb's
// callbacks as it walks the structure depth-first.
func Decode(block []byte, dicts Dictionaries, cb DecodeCallbacks, opts DecodeOptions) error {
	if dicts.Major == nil {
		return newError(ErrNullParameter, "major dictionary is nil")
	}
	hdr, err := parsePLDMHeader(block)
	if err != nil {
		return err
	}
	if hdr.Version != Version {
		return newError(ErrNotSupported, "unsupported BEJ version")
	}
	switch hdr.SchemaClass {
	case SchemaClassMajor, SchemaClassEvent:
	case SchemaClassAnnotation:
		return newError(ErrNotSupported, "Annotation schema class is not a valid top-level block")
	case SchemaClassCollectionMember, SchemaClassError:
		return newError(ErrNotSupported, "CollectionMember/Error schema classes are reserved")
	default:
		return newError(ErrNotSupported, "unsupported schema class")
	}

	st := &decodeState{
		stream: block[PLDMBlockHeaderSize:],
		dicts:  dicts,
		cb:     cb,
		opts:   opts,
	}
	return st.run()
}

func (st *decodeState) dictFor(selector uint8) *Dictionary {
	if selector == uint8(SelectorAnnotation) {
		return st.dicts.Annotation
	}
	return st.dicts.Major
}

func (st *decodeState) run() error {
	offset := 0
	iterations := 0

	for offset < len(st.stream) {
		iterations++
		if iterations > maxSFLVIterations {
			return newError(ErrNotSupported, "SFLV iteration cap exceeded")
		}

		tup, err := sflv.Parse(st.stream, offset)
		if err != nil {
			return wrapError(ErrInvalidSize, "parsing SFLV tuple", err)
		}

		preMainOff, preAnnoOff := st.mainOff, st.annoOff
		isRoot := len(st.stack) == 0 && offset == 0
		addPropertyName := true
		if len(st.stack) > 0 {
			addPropertyName = st.stack[len(st.stack)-1].addPropertyName
		}

		// resolvedOwnIndex is this node's own child_pointer_offset. It
		// only becomes the active parent-index (via setChildOffset, or
		// mainOff directly for a PropertyAnnotation) if this node turns
		// out to be a Set, Array, or PropertyAnnotation,
		// since only containers' children need it; leaves leave the
		// section's shared parent-index untouched so later siblings keep
		// resolving correctly.
		var name string
		var resolvedOwnIndex uint16
		switch {
		case isRoot:
			// The root Set/Array is anonymous: it inherits the dictionary's
			// own head entry directly rather than being looked up as
			// someone else's child. Its own children resolve starting at
			// its child_pointer_offset, not at the head entry's own index.
			dict := st.dictFor(tup.Selector)
			if dict == nil {
				return newError(ErrInvalidSchemaType, "property references a dictionary that was not supplied")
			}
			headIdx := dict.PropertyHeadOffset()
			if st.opts.MajorSchemaStartingOffset != 0 {
				headIdx = st.opts.MajorSchemaStartingOffset
			}
			rec, err := dict.recordAt(int(headIdx))
			if err != nil {
				return err
			}
			resolvedOwnIndex = rec.ChildPointerOffset
		default:
			dict := st.dictFor(tup.Selector)
			if dict == nil {
				return newError(ErrInvalidSchemaType, "property references a dictionary that was not supplied")
			}
			// Array elements always resolve their dictionary entry at
			// sequence 0 regardless of their wire sequence number; this
			// is what lets a nested Set/Array array element discover its
			// own children's schema.
			lookupSeq := tup.SequenceNumber
			if st.inArrayElementContext() {
				lookupSeq = 0
			}
			rec, _, err := dict.Property(st.curOffset(tup.Selector), lookupSeq)
			if err != nil {
				return wrapError(ErrUnknownProperty, "resolving property by sequence number", err)
			}
			if addPropertyName {
				name, err = dict.PropertyName(rec)
				if err != nil {
					return err
				}
			}
			// resolvedOwnIndex is this node's own child_pointer_offset: the
			// starting entry index its own children resolve from.
			resolvedOwnIndex = rec.ChildPointerOffset
		}
		if isRoot {
			addPropertyName = true
		}

		annotated := st.topAnnotated()
		valueStart := tup.ValueEndOffset - len(tup.Value)

		format := FormatTuple(tup.Format)
		switch format.Type() {
		case TypeSet:
			countSize, err := childCountPrefixSize(tup.Value)
			if err != nil {
				return err
			}
			st.setChildOffset(tup.Selector, resolvedOwnIndex)
			st.push(sectionSet, tup.ValueEndOffset, addPropertyName, preMainOff, preAnnoOff)
			if st.cb.SetStart != nil {
				st.cb.SetStart(name, annotated)
			}
			offset = valueStart + countSize
			if offset == tup.ValueEndOffset {
				if err := st.drain(offset); err != nil {
					return err
				}
			}
			continue
		case TypeArray:
			countSize, err := childCountPrefixSize(tup.Value)
			if err != nil {
				return err
			}
			st.setChildOffset(tup.Selector, resolvedOwnIndex)
			st.push(sectionArray, tup.ValueEndOffset, false, preMainOff, preAnnoOff)
			if st.cb.ArrayStart != nil {
				st.cb.ArrayStart(name, annotated)
			}
			offset = valueStart + countSize
			if offset == tup.ValueEndOffset {
				if err := st.drain(offset); err != nil {
					return err
				}
			}
			continue
		case TypePropertyAnnotation:
			// Spec text has entering a PropertyAnnotation section advance
			// the main dictionary offset specifically, not whichever
			// dictionary the section's own selector bit points to.
			st.mainOff = resolvedOwnIndex
			st.pushAnnotation(tup.ValueEndOffset, preMainOff, preAnnoOff)
			if st.cb.PropertyAnnotationStart != nil {
				st.cb.PropertyAnnotationStart(name)
			}
			offset = valueStart
			if len(tup.Value) == 0 {
				if err := st.drain(offset); err != nil {
					return err
				}
			}
			continue
		case TypeInteger:
			v := nnint.DecodeInt(tup.Value)
			if st.cb.Integer != nil {
				st.cb.Integer(name, v, annotated)
			}
		case TypeEnum:
			idx := nnint.Value(tup.Value)
			dict := st.dictFor(tup.Selector)
			rec, err := dict.recordAt(int(idx))
			if err != nil {
				return wrapError(ErrUnknownProperty, "resolving enum member", err)
			}
			enumName, err := dict.PropertyName(rec)
			if err != nil {
				return err
			}
			if st.cb.Enum != nil {
				st.cb.Enum(name, enumName, annotated)
			}
		case TypeString:
			v := trimNulTerminator(tup.Value)
			if st.cb.String != nil {
				st.cb.String(name, v, annotated)
			}
		case TypeReal:
			v, _, err := decodeRealValue(tup.Value)
			if err != nil {
				return err
			}
			if st.cb.Real != nil {
				st.cb.Real(name, v, annotated)
			}
		case TypeBoolean:
			v := len(tup.Value) > 0 && tup.Value[0] != 0
			if st.cb.Bool != nil {
				st.cb.Bool(name, v, annotated)
			}
		case TypeNull:
			if st.cb.Null != nil {
				st.cb.Null(name, annotated)
			}
		default:
			return newError(ErrInvalidSchemaType, "unsupported principal data type in stream")
		}

		offset = tup.ValueEndOffset
		if err := st.drain(offset); err != nil {
			return err
		}
	}
	return nil
}

func (st *decodeState) inArrayElementContext() bool {
	if len(st.stack) == 0 {
		return false
	}
	top := st.stack[len(st.stack)-1]
	return top.kind == sectionArray
}

func (st *decodeState) topAnnotated() bool {
	for i := len(st.stack) - 1; i >= 0; i-- {
		if st.stack[i].kind == sectionNone {
			return true
		}
	}
	return false
}

func (st *decodeState) curOffset(selector uint8) uint16 {
	if selector == uint8(SelectorAnnotation) {
		return st.annoOff
	}
	return st.mainOff
}

func (st *decodeState) setChildOffset(selector uint8, off uint16) {
	if selector == uint8(SelectorAnnotation) {
		st.annoOff = off
	} else {
		st.mainOff = off
	}
}

func (st *decodeState) push(kind sectionType, endOffset int, addPropertyName bool, savedMainOff, savedAnnoOff uint16) {
	st.stack = append(st.stack, sectionFrame{
		kind:            kind,
		addPropertyName: addPropertyName,
		savedMainOff:    savedMainOff,
		savedAnnoOff:    savedAnnoOff,
		endOffset:       endOffset,
	})
}

// pushAnnotation enters a PropertyAnnotation section. Its caller advances
// the main dictionary offset (not the annotation offset) to the annotation
// section's own childPointerOffset; each child tuple then resolves against
// whichever dictionary its own selector bit names.
func (st *decodeState) pushAnnotation(endOffset int, savedMainOff, savedAnnoOff uint16) {
	st.stack = append(st.stack, sectionFrame{
		kind:            sectionNone,
		addPropertyName: true,
		savedMainOff:    savedMainOff,
		savedAnnoOff:    savedAnnoOff,
		endOffset:       endOffset,
	})
}

// drain pops every section frame whose endOffset has been reached by
// offset, invoking SetEnd/ArrayEnd and exactly one PropertyEnd per sibling
// boundary, however many nested sections close at once.
func (st *decodeState) drain(offset int) error {
	for {
		if len(st.stack) == 0 {
			return nil
		}
		top := st.stack[len(st.stack)-1]
		if top.endOffset != offset {
			if st.cb.PropertyEnd != nil {
				st.cb.PropertyEnd()
			}
			return nil
		}
		st.stack = st.stack[:len(st.stack)-1]
		st.mainOff = top.savedMainOff
		st.annoOff = top.savedAnnoOff
		switch top.kind {
		case sectionSet:
			if st.cb.SetEnd != nil {
				st.cb.SetEnd()
			}
		case sectionArray:
			if st.cb.ArrayEnd != nil {
				st.cb.ArrayEnd()
			}
		case sectionNone:
			if st.cb.PropertyAnnotationEnd != nil {
				st.cb.PropertyAnnotationEnd()
			}
		}
	}
}

// childCountPrefixSize validates and measures the nnint(child_count) prefix
// that opens every bejSet/bejArray value, returning its encoded size.
func childCountPrefixSize(value []byte) (int, error) {
	if len(value) < 1 {
		return 0, newError(ErrInvalidSize, "Set/Array value missing child-count prefix")
	}
	size := nnint.Size(value)
	if size > len(value) {
		return 0, newError(ErrInvalidSize, "Set/Array child-count nnint runs past value end")
	}
	return size, nil
}

func trimNulTerminator(b []byte) string {
	if len(b) > 0 && b[len(b)-1] == 0 {
		b = b[:len(b)-1]
	}
	return string(b)
}
