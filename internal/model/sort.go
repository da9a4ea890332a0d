package model

import "sort"

// SortBySize sorts node ids by size descending. Equal sizes keep their
// order in ids, which for children is enumeration order.
func (t *Tree) SortBySize(ids []NodeID) {
	sort.SliceStable(ids, func(i, j int) bool {
		return t.Node(ids[i]).Size > t.Node(ids[j]).Size
	})
}

// SizedChildren returns the children of id with a positive size, largest first
func (t *Tree) SizedChildren(id NodeID) []NodeID {
	n := t.Node(id)
	if n == nil {
		return nil
	}
	out := make([]NodeID, 0, len(n.Children))
	for _, c := range n.Children {
		if t.Node(c).Size > 0 {
			out = append(out, c)
		}
	}
	t.SortBySize(out)
	return out
}
