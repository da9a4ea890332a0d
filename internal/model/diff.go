package model

import "sort"

// Change describes how one path differs between two scans of the same root
type Change struct {
	Path      string
	IsDir     bool
	Before    int64 // 0 for a new path
	After     int64 // 0 for a deleted path
	IsNew     bool
	IsDeleted bool
}

// Delta returns the size difference, positive when the path grew
func (c Change) Delta() int64 {
	return c.After - c.Before
}

// Diff compares cur against prev by path. Unchanged paths are left out and
// the largest changes come first. Trees with different root paths are not
// comparable and yield nil.
func Diff(prev, cur *Tree) []Change {
	if prev.IsEmpty() || cur.IsEmpty() {
		return nil
	}
	if prev.Node(prev.Root()).Path != cur.Node(cur.Root()).Path {
		return nil
	}

	prevByPath := make(map[string]*Node, prev.Len())
	prev.Walk(func(_ NodeID, n *Node) bool {
		prevByPath[n.Path] = n
		return true
	})

	var changes []Change
	cur.Walk(func(_ NodeID, n *Node) bool {
		p, ok := prevByPath[n.Path]
		if !ok {
			changes = append(changes, Change{Path: n.Path, IsDir: n.IsDir, After: n.Size, IsNew: true})
			return true
		}
		delete(prevByPath, n.Path)
		if p.Size != n.Size {
			changes = append(changes, Change{Path: n.Path, IsDir: n.IsDir, Before: p.Size, After: n.Size})
		}
		return true
	})

	// Whatever is left in the index disappeared
	for path, n := range prevByPath {
		changes = append(changes, Change{Path: path, IsDir: n.IsDir, Before: n.Size, IsDeleted: true})
	}

	sort.SliceStable(changes, func(i, j int) bool {
		di, dj := abs(changes[i].Delta()), abs(changes[j].Delta())
		if di != dj {
			return di > dj
		}
		return changes[i].Path < changes[j].Path
	})
	return changes
}

func abs(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}
