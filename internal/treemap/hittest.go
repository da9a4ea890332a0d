package treemap

import "github.com/lumipallolabs/diskmap/internal/model"

// HitTest returns the deepest entry whose rectangle contains p. It descends
// from the root, taking the first containing child in child order at each
// level, and stops when no child contains p.
func HitTest(p model.Point, tree *model.Tree, m *Map) (Entry, bool) {
	if tree.IsEmpty() || m == nil {
		return Entry{}, false
	}

	var best Entry
	found := false

	candidates := []model.NodeID{tree.Root()}
	for len(candidates) > 0 {
		hit, ok := firstContaining(p, candidates, m)
		if !ok {
			break
		}
		best, found = hit, true
		candidates = tree.Node(hit.Node).Children
	}
	return best, found
}

func firstContaining(p model.Point, ids []model.NodeID, m *Map) (Entry, bool) {
	for _, id := range ids {
		if e, ok := m.Lookup(id); ok && e.Rect.Contains(p) {
			return e, true
		}
	}
	return Entry{}, false
}

// HitTest is a convenience wrapper around the package-level HitTest
func (m *Map) HitTest(p model.Point, tree *model.Tree) (Entry, bool) {
	return HitTest(p, tree, m)
}
