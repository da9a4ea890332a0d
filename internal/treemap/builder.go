package treemap

import (
	"context"
	"fmt"

	"github.com/lumipallolabs/diskmap/internal/layout"
	"github.com/lumipallolabs/diskmap/internal/logging"
	"github.com/lumipallolabs/diskmap/internal/model"
)

// Options controls layout constants, in layout units
type Options struct {
	TitleMargin float64 // reserved above the children for the label
	MinSide     float64 // rectangles narrower than this get no children
	MinArea     float64 // smallest child area kept on the map
	Inset       float64 // gutter around each child
	PaletteSize int
	Strategy    layout.Strategy
}

// DefaultOptions returns the standard layout constants
func DefaultOptions() Options {
	return Options{
		TitleMargin: 16,
		MinSide:     4,
		MinArea:     64 * 64,
		Inset:       2,
		PaletteSize: 50,
		Strategy:    layout.Squarify,
	}
}

// Builder lays out trees
type Builder struct {
	opts Options
}

// NewBuilder creates a treemap builder
func NewBuilder(opts Options) *Builder {
	if opts.Strategy == nil {
		opts.Strategy = layout.Squarify
	}
	return &Builder{opts: opts}
}

// pair is a node waiting for its rectangle to be subdivided
type pair struct {
	node model.NodeID
	rect model.Rect
}

// Build lays tree out inside container breadth-first. Cancellation returns
// the entries placed so far with a nil error. A layout error stops the build;
// the partial map is returned with it.
func (b *Builder) Build(ctx context.Context, container model.Rect, tree *model.Tree) (*Map, error) {
	m := newMap()
	if tree.IsEmpty() {
		return m, nil
	}

	queue := []pair{{node: tree.Root(), rect: container}}
	for len(queue) > 0 {
		if ctx.Err() != nil {
			logging.Layout.Debug("layout cancelled", "placed", m.Len(), "pending", len(queue))
			break
		}

		p := queue[0]
		queue = queue[1:]

		n := tree.Node(p.node)
		m.add(Entry{
			Node: p.node,
			Rect: p.rect,
			Label: Label{
				Text:     n.Name,
				Position: p.rect.Origin(),
				Size:     b.opts.TitleMargin,
			},
			Color: ColorIndex(tree, n, b.opts.PaletteSize),
		})

		children, err := b.subdivide(tree, p)
		if err != nil {
			return m, fmt.Errorf("layout %s: %w", n.Path, err)
		}
		queue = append(queue, children...)
	}

	return m, nil
}

// childArea is a child's share of the parent's rectangle
type childArea struct {
	node model.NodeID
	area float64
}

func (b *Builder) subdivide(tree *model.Tree, p pair) ([]pair, error) {
	// Leave space for the title
	inner := model.NewRect(p.rect.X, p.rect.Y+b.opts.TitleMargin, p.rect.W, p.rect.H-b.opts.TitleMargin)
	if inner.W < b.opts.MinSide || inner.H < b.opts.MinSide {
		return nil, nil
	}

	sized := tree.SizedChildren(p.node)
	if len(sized) == 0 {
		return nil, nil
	}

	var totalSize float64
	for _, id := range sized {
		totalSize += float64(tree.Node(id).Size)
	}
	ratio := inner.Area() / totalSize

	areas := make([]childArea, len(sized))
	for i, id := range sized {
		areas[i] = childArea{node: id, area: float64(tree.Node(id).Size) * ratio}
	}
	areas = enforceMinArea(areas, b.opts.MinArea)

	values := make([]float64, len(areas))
	for i, a := range areas {
		values[i] = a.area
	}

	rects, err := b.opts.Strategy(inner, values)
	if err != nil {
		return nil, err
	}

	pairs := make([]pair, len(areas))
	for i, a := range areas {
		pairs[i] = pair{node: a.node, rect: rects[i].Inset(b.opts.Inset)}
	}
	return pairs, nil
}

// enforceMinArea drops the smallest child and spreads its area over the rest
// until every child clears minArea or only one is left. areas must be sorted
// largest first.
func enforceMinArea(areas []childArea, minArea float64) []childArea {
	for len(areas) > 1 && areas[len(areas)-1].area < minArea {
		last := areas[len(areas)-1]
		areas = areas[:len(areas)-1]
		share := last.area / float64(len(areas))
		for i := range areas {
			areas[i].area += share
		}
	}
	return areas
}
