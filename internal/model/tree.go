package model

import (
	"math"
	"time"
)

// Timestamp sentinels of an empty tree. Callers must check IsEmpty before
// trusting Oldest/Newest.
var (
	MaxTime = time.Unix(math.MaxInt64-62135596801, 999999999).UTC()
	MinTime = time.Time{}
)

// Tree owns every node of one scan. Nodes live in a slice and refer to each
// other by NodeID, so the parent links never form ownership cycles.
type Tree struct {
	nodes []Node
	root  NodeID

	// Oldest and Newest bound the modification times observed while building
	Oldest time.Time
	Newest time.Time
}

// NewTree creates an empty tree
func NewTree() *Tree {
	return &Tree{
		root:   NoNode,
		Oldest: MaxTime,
		Newest: MinTime,
	}
}

// IsEmpty reports whether the tree has no root
func (t *Tree) IsEmpty() bool {
	return t == nil || t.root == NoNode
}

// Root returns the root node id, or NoNode
func (t *Tree) Root() NodeID {
	if t == nil {
		return NoNode
	}
	return t.root
}

// Len returns the number of nodes
func (t *Tree) Len() int {
	if t == nil {
		return 0
	}
	return len(t.nodes)
}

// Node returns the node with the given id, or nil if id is out of range
func (t *Tree) Node(id NodeID) *Node {
	if t == nil || id < 0 || int(id) >= len(t.nodes) {
		return nil
	}
	return &t.nodes[id]
}

// SetRoot stores n as the root and discards any previous content
func (t *Tree) SetRoot(n Node) NodeID {
	n.Parent = NoNode
	n.Children = nil
	t.nodes = append(t.nodes[:0], n)
	t.root = 0
	return t.root
}

// AddChild appends n to parent's children. A file's size is added to every
// ancestor exactly once, so directory sizes are always complete rollups of
// the files attached so far.
func (t *Tree) AddChild(parent NodeID, n Node) NodeID {
	n.Parent = parent
	n.Children = nil
	if n.IsDir {
		n.Size = 0
	}

	id := NodeID(len(t.nodes))
	t.nodes = append(t.nodes, n)
	t.nodes[parent].Children = append(t.nodes[parent].Children, id)

	if !n.IsDir && n.Size != 0 {
		for p := parent; p != NoNode; p = t.nodes[p].Parent {
			t.nodes[p].Size += n.Size
		}
	}
	return id
}

// Observe widens the Oldest/Newest bounds to include ts
func (t *Tree) Observe(ts time.Time) {
	if ts.Before(t.Oldest) {
		t.Oldest = ts
	}
	if ts.After(t.Newest) {
		t.Newest = ts
	}
}

// Span returns Newest - Oldest, or 0 for an empty tree
func (t *Tree) Span() time.Duration {
	if t.IsEmpty() || t.Newest.Before(t.Oldest) {
		return 0
	}
	return t.Newest.Sub(t.Oldest)
}

// Walk visits nodes breadth-first from the root until fn returns false
func (t *Tree) Walk(fn func(id NodeID, n *Node) bool) {
	if t.IsEmpty() {
		return
	}
	queue := []NodeID{t.root}
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		n := &t.nodes[id]
		if !fn(id, n) {
			return
		}
		queue = append(queue, n.Children...)
	}
}

// Find returns the id of the node with the given path, or NoNode
func (t *Tree) Find(path string) NodeID {
	found := NoNode
	t.Walk(func(id NodeID, n *Node) bool {
		if n.Path == path {
			found = id
			return false
		}
		return true
	})
	return found
}

// Ancestors returns the ids from id's parent up to the root
func (t *Tree) Ancestors(id NodeID) []NodeID {
	var out []NodeID
	n := t.Node(id)
	for n != nil && n.Parent != NoNode {
		out = append(out, n.Parent)
		n = t.Node(n.Parent)
	}
	return out
}
