package layout

import (
	"fmt"
	"sort"

	"github.com/jeffwilliams/squarify"
	"github.com/lumipallolabs/diskmap/internal/model"
)

// Strategy subdivides a container into one rectangle per area, in input order
type Strategy func(container model.Rect, areas []float64) ([]model.Rect, error)

// Strategy names accepted by Lookup
const (
	StrategySquarified = "squarified"
	StrategyReference  = "reference"
)

var strategies = map[string]Strategy{
	StrategySquarified: Squarify,
	StrategyReference:  Reference,
}

// Lookup returns the strategy registered under name. The empty name selects
// the squarified strategy.
func Lookup(name string) (Strategy, error) {
	if name == "" {
		name = StrategySquarified
	}
	s, ok := strategies[name]
	if !ok {
		return nil, fmt.Errorf("unknown layout strategy %q (available: %v)", name, Names())
	}
	return s, nil
}

// Names lists the registered strategies
func Names() []string {
	names := make([]string, 0, len(strategies))
	for n := range strategies {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// areaItem wraps one area for the squarify library
type areaItem struct {
	index    int
	size     float64
	children []*areaItem
}

// Size implements squarify.TreeSizer
func (a *areaItem) Size() float64 { return a.size }

// NumChildren implements squarify.TreeSizer
func (a *areaItem) NumChildren() int { return len(a.children) }

// Child implements squarify.TreeSizer
func (a *areaItem) Child(i int) squarify.TreeSizer { return a.children[i] }

// Reference subdivides with github.com/jeffwilliams/squarify. It enforces the
// same preconditions as Squarify and is used to compare layouts.
func Reference(container model.Rect, areas []float64) ([]model.Rect, error) {
	if err := validate(container, areas); err != nil {
		return nil, err
	}

	root := &areaItem{index: -1}
	for i, a := range areas {
		root.children = append(root.children, &areaItem{index: i, size: a})
		root.size += a
	}

	blocks, metas := squarify.Squarify(root, squarify.Rect{
		X: container.X,
		Y: container.Y,
		W: container.W,
		H: container.H,
	}, squarify.Options{
		MaxDepth: 1,
		Sort:     true,
	})

	// Areas the library skipped keep an empty rectangle at the origin
	rects := make([]model.Rect, len(areas))
	for i := range rects {
		rects[i] = model.Rect{X: container.X, Y: container.Y}
	}

	for i, block := range blocks {
		// squarify returns the root's children at depth 0
		if i >= len(metas) || metas[i].Depth != 0 {
			continue
		}
		item, ok := block.TreeSizer.(*areaItem)
		if !ok || item.index < 0 {
			continue
		}
		rects[item.index] = model.NewRect(block.X, block.Y, block.W, block.H)
	}
	return rects, nil
}
