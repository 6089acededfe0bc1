package bej

// Node is any element of a BEJ property tree: either a Parent (Set, Array,
// or PropertyAnnotation) or one of the leaf node types.
type Node interface {
	// Name is the property's own name as it appears in its parent's
	// dictionary, or "" for an anonymous array element or the root node.
	Name() string
	// SequenceNumber is the wire sequence number this node encodes with.
	// For array elements the encoder ignores it and writes the element's
	// index in the array instead (see the array-element rule in
	// decoder.go).
	SequenceNumber() uint16
	// Selector reports which dictionary (major or annotation) this node's
	// name resolves against.
	Selector() DictionarySelector
	Annotated() bool

	meta() *nodeMeta
}

// nodeMeta holds per-node bookkeeping populated by the encoder's first pass
// and consumed by its second pass. It is unexported: callers build trees
// through the exported constructors and LinkChild, never by touching this
// directly.
type nodeMeta struct {
	// dictOffset is the dictionary entry index at which this node's own
	// children should be looked up (the node's resolved ChildPointerOffset).
	dictOffset uint16
	// sflSize is the byte size of this node's own S, F and L fields
	// combined (excludes V).
	sflSize int
	// vSize is the byte size of this node's V field: for a leaf, its
	// encoded value; for a Parent, the sum of its children's SFLV sizes,
	// plus the child-count nnint for a Set or Array.
	vSize int
}

func (m *nodeMeta) meta() *nodeMeta { return m }

type nodeBase struct {
	name      string
	seq       uint16
	selector  DictionarySelector
	annotated bool
	nodeMeta
}

func (b *nodeBase) Name() string                    { return b.name }
func (b *nodeBase) SequenceNumber() uint16          { return b.seq }
func (b *nodeBase) Selector() DictionarySelector    { return b.selector }
func (b *nodeBase) Annotated() bool                 { return b.annotated }
func (b *nodeBase) setAnnotated(v bool)             { b.annotated = v }
func (b *nodeBase) setSelector(s DictionarySelector) { b.selector = s }

// ParentKind distinguishes the three BEJ container shapes.
type ParentKind int

const (
	KindSet ParentKind = iota
	KindArray
	KindPropertyAnnotation
)

// Parent is a BEJ Set, Array, or PropertyAnnotation container node. Children
// are held in a singly-linked list with a tail pointer, giving O(1)
// append and preserving insertion order for encoding.
type Parent struct {
	nodeBase
	Kind ParentKind

	head, tail *childLink
	count      int
}

type childLink struct {
	node Node
	next *childLink
}

// NewSet creates a Set container node named name.
func NewSet(name string, seq uint16) *Parent {
	return &Parent{nodeBase: nodeBase{name: name, seq: seq}, Kind: KindSet}
}

// NewArray creates an Array container node named name.
func NewArray(name string, seq uint16) *Parent {
	return &Parent{nodeBase: nodeBase{name: name, seq: seq}, Kind: KindArray}
}

// NewPropertyAnnotation creates a PropertyAnnotation container node for the
// annotated property name (e.g. "@Redfish.AllowableValues").
func NewPropertyAnnotation(name string, seq uint16) *Parent {
	p := &Parent{nodeBase: nodeBase{name: name, seq: seq}, Kind: KindPropertyAnnotation}
	p.setAnnotated(true)
	p.setSelector(SelectorAnnotation)
	return p
}

// LinkChild appends child to the end of p's child list in O(1).
func (p *Parent) LinkChild(child Node) {
	link := &childLink{node: child}
	if p.tail == nil {
		p.head = link
	} else {
		p.tail.next = link
	}
	p.tail = link
	p.count++
}

// ChildCount returns the number of children linked to p.
func (p *Parent) ChildCount() int { return p.count }

// Children returns p's children in insertion order.
func (p *Parent) Children() []Node {
	out := make([]Node, 0, p.count)
	for l := p.head; l != nil; l = l.next {
		out = append(out, l.node)
	}
	return out
}

// IntegerNode is a leaf holding a signed integer value.
type IntegerNode struct {
	nodeBase
	Value int64
}

func NewInteger(name string, seq uint16, v int64) *IntegerNode {
	return &IntegerNode{nodeBase: nodeBase{name: name, seq: seq}, Value: v}
}

// EnumNode is a leaf holding an enum value, stored as the enum member's
// string name and resolved against the dictionary at encode time.
type EnumNode struct {
	nodeBase
	Value string
}

func NewEnum(name string, seq uint16, value string) *EnumNode {
	return &EnumNode{nodeBase: nodeBase{name: name, seq: seq}, Value: value}
}

// StringNode is a leaf holding a UTF-8 string value.
type StringNode struct {
	nodeBase
	Value string
}

func NewString(name string, seq uint16, v string) *StringNode {
	return &StringNode{nodeBase: nodeBase{name: name, seq: seq}, Value: v}
}

// RealNode is a leaf holding a bejReal-encoded floating point value.
type RealNode struct {
	nodeBase
	Value float64
}

func NewReal(name string, seq uint16, v float64) *RealNode {
	return &RealNode{nodeBase: nodeBase{name: name, seq: seq}, Value: v}
}

// BoolNode is a leaf holding a boolean value.
type BoolNode struct {
	nodeBase
	Value bool
}

func NewBool(name string, seq uint16, v bool) *BoolNode {
	return &BoolNode{nodeBase: nodeBase{name: name, seq: seq}, Value: v}
}

// NullNode is a leaf with no value; it encodes as a zero-length V field.
type NullNode struct {
	nodeBase
}

func NewNull(name string, seq uint16) *NullNode {
	return &NullNode{nodeBase: nodeBase{name: name, seq: seq}}
}
