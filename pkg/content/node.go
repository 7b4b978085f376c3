package content

import (
	"encoding/json"
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"
)

// Kind identifies the variant held by a Node.
type Kind uint8

// Node kinds.
const (
	Null Kind = iota
	Scalar
	List
	Map
)

func (k Kind) String() string {
	switch k {
	case Scalar:
		return "scalar"
	case List:
		return "list"
	case Map:
		return "map"
	}
	return "null"
}

// Node is one value of a content tree: a map, a list, a scalar or null.
// Nodes are treated as immutable once built; Merge returns new nodes and
// shares unchanged subtrees with its inputs.
type Node struct {
	fields map[string]*Node
	value  string
	items  []*Node
	kind   Kind
}

// NewScalar returns a scalar node.
func NewScalar(v string) *Node { return &Node{kind: Scalar, value: v} }

// NewList returns a list node holding items.
func NewList(items ...*Node) *Node { return &Node{kind: List, items: items} }

// NewMap returns a map node holding fields. The map is copied.
func NewMap(fields map[string]*Node) *Node {
	return &Node{kind: Map, fields: maps.Clone(fields)}
}

// NewNull returns a null node.
func NewNull() *Node { return &Node{kind: Null} }

// Kind returns the node variant. A nil node is Null.
func (n *Node) Kind() Kind {
	if n == nil {
		return Null
	}
	return n.kind
}

// IsNull reports whether n is nil or a null node.
func (n *Node) IsNull() bool { return n.Kind() == Null }

// Value returns the scalar text, or "" for other kinds.
func (n *Node) Value() string {
	if n.Kind() != Scalar {
		return ""
	}
	return n.value
}

// Items returns the list elements, or nil for other kinds.
func (n *Node) Items() []*Node {
	if n.Kind() != List {
		return nil
	}
	return slices.Clone(n.items)
}

// Keys returns the sorted map keys, or nil for other kinds.
func (n *Node) Keys() []string {
	if n.Kind() != Map {
		return nil
	}
	return slices.Sorted(maps.Keys(n.fields))
}

// Field returns the direct child stored under key.
func (n *Node) Field(key string) (*Node, bool) {
	if n.Kind() != Map {
		return nil, false
	}
	c, ok := n.fields[key]
	return c, ok
}

// Len returns the number of fields or items; 0 for scalars and null.
func (n *Node) Len() int {
	switch n.Kind() {
	case Map:
		return len(n.fields)
	case List:
		return len(n.items)
	}
	return 0
}

// Lookup walks a dotted path ("k1.name") through nested maps.
// Numeric segments index into lists. A missing segment or a null
// value at the end of the path reports false.
func (n *Node) Lookup(path string) (*Node, bool) {
	cur := n
	for seg := range strings.SplitSeq(path, ".") {
		switch cur.Kind() {
		case Map:
			next, ok := cur.fields[seg]
			if !ok {
				return nil, false
			}
			cur = next
		case List:
			i, err := strconv.Atoi(seg)
			if err != nil || i < 0 || i >= len(cur.items) {
				return nil, false
			}
			cur = cur.items[i]
		default:
			return nil, false
		}
	}
	if cur.IsNull() {
		return nil, false
	}
	return cur, true
}

// LookupFold is Lookup for trees parsed case-insensitively: the path is
// lowercased before walking.
func (n *Node) LookupFold(path string) (*Node, bool) {
	return n.Lookup(strings.ToLower(path))
}

// String returns the scalar text for scalars and a JSON rendering otherwise.
func (n *Node) String() string {
	if n.Kind() == Scalar {
		return n.value
	}
	data, err := json.Marshal(n)
	if err != nil {
		return fmt.Sprintf("<%s>", n.Kind())
	}
	return string(data)
}

// Any converts the tree into plain Go values: map[string]any, []any, string or nil.
func (n *Node) Any() any {
	switch n.Kind() {
	case Map:
		m := make(map[string]any, len(n.fields))
		for k, v := range n.fields {
			m[k] = v.Any()
		}
		return m
	case List:
		l := make([]any, 0, len(n.items))
		for _, v := range n.items {
			l = append(l, v.Any())
		}
		return l
	case Scalar:
		return n.value
	}
	return nil
}

// MarshalJSON implements json.Marshaler.
func (n *Node) MarshalJSON() ([]byte, error) {
	return json.Marshal(n.Any())
}

// FromAny builds a tree from decoded JSON or YAML values.
// When foldKeys is set map keys are lowercased; on collisions the
// later key in iteration order wins, so callers should not rely on it.
func FromAny(v any, foldKeys bool) *Node {
	switch t := v.(type) {
	case nil:
		return NewNull()
	case *Node:
		return t
	case map[string]any:
		fields := make(map[string]*Node, len(t))
		for k, c := range t {
			fields[foldKey(k, foldKeys)] = FromAny(c, foldKeys)
		}
		return &Node{kind: Map, fields: fields}
	case map[any]any:
		fields := make(map[string]*Node, len(t))
		for k, c := range t {
			fields[foldKey(fmt.Sprint(k), foldKeys)] = FromAny(c, foldKeys)
		}
		return &Node{kind: Map, fields: fields}
	case []any:
		items := make([]*Node, 0, len(t))
		for _, c := range t {
			items = append(items, FromAny(c, foldKeys))
		}
		return &Node{kind: List, items: items}
	case string:
		return NewScalar(t)
	case json.Number:
		return NewScalar(t.String())
	case bool:
		return NewScalar(strconv.FormatBool(t))
	case float64:
		return NewScalar(strconv.FormatFloat(t, 'f', -1, 64))
	}
	return NewScalar(fmt.Sprint(v))
}

func foldKey(k string, fold bool) string {
	if fold {
		return strings.ToLower(k)
	}
	return k
}
