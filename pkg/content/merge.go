package content

import "maps"

// Merge combines two trees, src taking priority over dst:
//   - both maps: keys are merged recursively
//   - both lists: src items are appended after dst items
//   - anything else: src replaces dst
//
// Neither input is modified. A nil src leaves dst as is.
func Merge(dst, src *Node) *Node {
	switch {
	case src == nil:
		return dst
	case dst == nil:
		return src
	case dst.kind == Map && src.kind == Map:
		fields := make(map[string]*Node, len(dst.fields)+len(src.fields))
		maps.Copy(fields, dst.fields)
		for k, v := range src.fields {
			if existing, ok := fields[k]; ok {
				fields[k] = Merge(existing, v)
				continue
			}
			fields[k] = v
		}
		return &Node{kind: Map, fields: fields}
	case dst.kind == List && src.kind == List:
		items := make([]*Node, 0, len(dst.items)+len(src.items))
		items = append(items, dst.items...)
		items = append(items, src.items...)
		return &Node{kind: List, items: items}
	}
	return src
}

// MergeAll merges trees in order, each one taking priority over the previous ones.
func MergeAll(trees ...*Node) *Node {
	var out *Node
	for _, t := range trees {
		out = Merge(out, t)
	}
	return out
}
