package jsonh

import (
	"github.com/cockroachdb/apd/v3"
)

// NodeKind identifies which arm of the Node sum type is populated.
type NodeKind int

const (
	NodeNull NodeKind = iota
	NodeBool
	NodeString
	NodeNumber
	NodeArray
	NodeObject
)

// objectEntry is one key/value pair of an object Node, kept in a slice so
// that iteration order can track insertion order of the last write for
// each key (spec.md §3, Value node).
type objectEntry struct {
	key string
	val *Node
}

// Node is the recursive value tree spec.md §3 calls a "Value node": Null,
// Bool, Str, Num, Arr, or Obj. Exactly one arm is meaningful for a given
// Kind().
type Node struct {
	kind NodeKind

	boolVal  bool
	strVal   string
	numExact *apd.Decimal // populated when the builder ran with BigNumbers
	numFloat float64      // populated otherwise
	arrVal   []*Node
	objVal   []objectEntry
	objIdx   map[string]int
}

// NewNull returns a null value node.
func NewNull() *Node { return &Node{kind: NodeNull} }

// NewBool returns a boolean value node.
func NewBool(b bool) *Node { return &Node{kind: NodeBool, boolVal: b} }

// NewString returns a string value node.
func NewString(s string) *Node { return &Node{kind: NodeString, strVal: s} }

// NewFloat returns a number value node backed by a float64.
func NewFloat(f float64) *Node { return &Node{kind: NodeNumber, numFloat: f} }

// NewDecimal returns a number value node backed by an exact apd.Decimal.
func NewDecimal(d *apd.Decimal) *Node { return &Node{kind: NodeNumber, numExact: d} }

// NewArray returns an empty array value node.
func NewArray() *Node { return &Node{kind: NodeArray} }

// NewObject returns an empty object value node.
func NewObject() *Node { return &Node{kind: NodeObject} }

// Kind reports which arm of the sum type this Node occupies.
func (n *Node) Kind() NodeKind { return n.kind }

// Bool returns the boolean payload; the zero value if Kind() != NodeBool.
func (n *Node) Bool() bool { return n.boolVal }

// String returns the string payload; the zero value if Kind() != NodeString.
func (n *Node) String() string { return n.strVal }

// IsExact reports whether this number node carries an exact apd.Decimal
// (BigNumbers mode) rather than a float64.
func (n *Node) IsExact() bool { return n.numExact != nil }

// Decimal returns the exact numeric payload, or nil if this node was built
// in float64 mode.
func (n *Node) Decimal() *apd.Decimal { return n.numExact }

// Float64 returns the numeric payload as a float64, converting from the
// exact representation (with overflow saturating to ±Inf) when necessary.
func (n *Node) Float64() float64 {
	if n.numExact != nil {
		f, _ := n.numExact.Float64()
		return f
	}
	return n.numFloat
}

// Array returns the element slice; nil if Kind() != NodeArray.
func (n *Node) Array() []*Node { return n.arrVal }

// Keys returns object keys in iteration order (insertion order of the
// last write for each key). Nil if Kind() != NodeObject.
func (n *Node) Keys() []string {
	if n.kind != NodeObject {
		return nil
	}
	keys := make([]string, len(n.objVal))
	for i, e := range n.objVal {
		keys[i] = e.key
	}
	return keys
}

// Get returns the value for key and whether it was present.
func (n *Node) Get(key string) (*Node, bool) {
	if n.objIdx == nil {
		return nil, false
	}
	i, ok := n.objIdx[key]
	if !ok {
		return nil, false
	}
	return n.objVal[i].val, true
}

// appendItem appends val to an array node.
func (n *Node) appendItem(val *Node) {
	n.arrVal = append(n.arrVal, val)
}

// setProperty implements last-write-wins with the overwritten key moving
// to the end, so that Keys() reflects insertion order of the last write
// (spec.md §3: "iteration order = insertion order of last write").
func (n *Node) setProperty(key string, val *Node) {
	if n.objIdx == nil {
		n.objIdx = make(map[string]int)
	}
	if i, ok := n.objIdx[key]; ok {
		n.objVal = append(n.objVal[:i], n.objVal[i+1:]...)
		delete(n.objIdx, key)
		for k, idx := range n.objIdx {
			if idx > i {
				n.objIdx[k] = idx - 1
			}
		}
	}
	n.objIdx[key] = len(n.objVal)
	n.objVal = append(n.objVal, objectEntry{key: key, val: val})
}

// Interface converts the node tree into an any tree of the kind
// encoding/json already knows how to marshal (nil, bool, string, float64,
// []any, map[string]any). This is the conversion ParseElement composes
// with parse_node; the core never writes JSONH itself (spec.md §1
// Non-goals).
func (n *Node) Interface() any {
	switch n.kind {
	case NodeNull:
		return nil
	case NodeBool:
		return n.boolVal
	case NodeString:
		return n.strVal
	case NodeNumber:
		return n.Float64()
	case NodeArray:
		out := make([]any, len(n.arrVal))
		for i, e := range n.arrVal {
			out[i] = e.Interface()
		}
		return out
	case NodeObject:
		out := make(map[string]any, len(n.objVal))
		for _, e := range n.objVal {
			out[e.key] = e.val.Interface()
		}
		return out
	default:
		return nil
	}
}
