package model

import "time"

// NodeID identifies a node inside its Tree
type NodeID int32

// NoNode is the NodeID of a missing node (no root, no parent)
const NoNode NodeID = -1

// Node represents a file or directory in the scanned tree
type Node struct {
	Path         string
	Name         string
	Size         int64 // bytes; for directories the sum of all descendant files
	IsDir        bool
	LastModified time.Time

	Parent   NodeID
	Children []NodeID
}

// IsLeaf reports whether the node has no children
func (n *Node) IsLeaf() bool {
	return len(n.Children) == 0
}
