package render

import (
	"github.com/lumipallolabs/diskmap/internal/model"
	"github.com/lumipallolabs/diskmap/internal/treemap"
)

// MinLabelSide is the smallest rectangle side that gets a label
const MinLabelSide = 16

// Scene is what every renderer draws: a tree, its map and a palette
type Scene struct {
	Tree     *model.Tree
	Map      *treemap.Map
	Palette  Palette
	Selected model.NodeID // highlighted entry, or model.NoNode
}

// NewScene creates a scene with the default palette and no selection
func NewScene(tree *model.Tree, m *treemap.Map) Scene {
	return Scene{Tree: tree, Map: m, Palette: DefaultPalette(), Selected: model.NoNode}
}

// Bounds returns the union of every entry rectangle
func (s Scene) Bounds() model.Rect {
	var bounds model.Rect
	for i, e := range s.Map.Entries() {
		if i == 0 {
			bounds = e.Rect
			continue
		}
		bounds = bounds.Union(e.Rect)
	}
	return bounds
}

func showLabel(r model.Rect) bool {
	return r.W > MinLabelSide && r.H > MinLabelSide
}
