package treemap

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/lumipallolabs/diskmap/internal/layout"
	"github.com/lumipallolabs/diskmap/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	day0  = time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	day5  = day0.Add(5 * 24 * time.Hour)
	day10 = day0.Add(10 * 24 * time.Hour)
)

// sampleTree builds
//
//	/r
//	├── a (600)
//	├── b (300)
//	└── c/
//	    └── d (100)
func sampleTree() (*model.Tree, map[string]model.NodeID) {
	tree := model.NewTree()
	ids := map[string]model.NodeID{}
	ids["/r"] = tree.SetRoot(model.Node{Path: "/r", Name: "r", IsDir: true, LastModified: day10})
	ids["/r/a"] = tree.AddChild(ids["/r"], model.Node{Path: "/r/a", Name: "a", Size: 600, LastModified: day10})
	ids["/r/b"] = tree.AddChild(ids["/r"], model.Node{Path: "/r/b", Name: "b", Size: 300, LastModified: day5})
	ids["/r/c"] = tree.AddChild(ids["/r"], model.Node{Path: "/r/c", Name: "c", IsDir: true, LastModified: day0})
	ids["/r/c/d"] = tree.AddChild(ids["/r/c"], model.Node{Path: "/r/c/d", Name: "d", Size: 100, LastModified: day0})
	tree.Observe(day10)
	tree.Observe(day0)
	return tree, ids
}

func sampleContainer() model.Rect {
	return model.Rect{X: 0, Y: 0, W: 400, H: 416}
}

func TestBuildEmptyTree(t *testing.T) {
	m, err := NewBuilder(DefaultOptions()).Build(context.Background(), sampleContainer(), model.NewTree())
	require.NoError(t, err)
	assert.Equal(t, 0, m.Len())
}

func TestBuildSingleFile(t *testing.T) {
	tree := model.NewTree()
	root := tree.SetRoot(model.Node{Path: "/f", Name: "f", Size: 42})

	m, err := NewBuilder(DefaultOptions()).Build(context.Background(), sampleContainer(), tree)
	require.NoError(t, err)
	require.Equal(t, 1, m.Len())

	e := m.Entries()[0]
	assert.Equal(t, root, e.Node)
	assert.Equal(t, sampleContainer(), e.Rect)
	assert.Equal(t, "f", e.Label.Text)
	assert.Equal(t, model.Point{X: 0, Y: 0}, e.Label.Position)
	assert.Equal(t, 16.0, e.Label.Size)
}

func TestBuildPlacesChildren(t *testing.T) {
	tree, ids := sampleTree()

	m, err := NewBuilder(DefaultOptions()).Build(context.Background(), sampleContainer(), tree)
	require.NoError(t, err)
	require.Equal(t, 5, m.Len())

	// Breadth-first, children largest first
	var order []model.NodeID
	for _, e := range m.Entries() {
		order = append(order, e.Node)
	}
	assert.Equal(t, []model.NodeID{ids["/r"], ids["/r/a"], ids["/r/b"], ids["/r/c"], ids["/r/c/d"]}, order)

	want := map[string]model.Rect{
		"/r":     {X: 0, Y: 0, W: 400, H: 416},
		"/r/a":   {X: 2, Y: 18, W: 396, H: 236},
		"/r/b":   {X: 2, Y: 258, W: 296, H: 156},
		"/r/c":   {X: 302, Y: 258, W: 96, H: 156},
		"/r/c/d": {X: 304, Y: 276, W: 92, H: 136},
	}
	for path, r := range want {
		e, ok := m.Lookup(ids[path])
		require.True(t, ok, path)
		assert.InDelta(t, r.X, e.Rect.X, 1e-6, path)
		assert.InDelta(t, r.Y, e.Rect.Y, 1e-6, path)
		assert.InDelta(t, r.W, e.Rect.W, 1e-6, path)
		assert.InDelta(t, r.H, e.Rect.H, 1e-6, path)
	}
}

func TestBuildChildrenStayInsideParent(t *testing.T) {
	tree, _ := sampleTree()

	m, err := NewBuilder(DefaultOptions()).Build(context.Background(), sampleContainer(), tree)
	require.NoError(t, err)

	for _, e := range m.Entries() {
		n := tree.Node(e.Node)
		if n.Parent == model.NoNode {
			continue
		}
		parent, ok := m.Lookup(n.Parent)
		require.True(t, ok)
		assert.True(t, parent.Rect.ContainsRect(e.Rect, 1e-6), "%s escapes its parent", n.Path)
		assert.GreaterOrEqual(t, e.Rect.Y, parent.Rect.Y+16, "%s overlaps the title", n.Path)
	}
}

func TestBuildSkipsZeroSizeChildren(t *testing.T) {
	tree, ids := sampleTree()
	empty := tree.AddChild(ids["/r"], model.Node{Path: "/r/empty", Name: "empty", IsDir: true})

	m, err := NewBuilder(DefaultOptions()).Build(context.Background(), sampleContainer(), tree)
	require.NoError(t, err)

	_, ok := m.Lookup(empty)
	assert.False(t, ok)
	assert.Equal(t, 5, m.Len())
}

func TestBuildTooSmallForChildren(t *testing.T) {
	tree, _ := sampleTree()

	// 19 - 16 leaves 3 units, below the minimum side
	m, err := NewBuilder(DefaultOptions()).Build(context.Background(), model.Rect{W: 400, H: 19}, tree)
	require.NoError(t, err)
	assert.Equal(t, 1, m.Len())
}

func TestBuildAreaFloor(t *testing.T) {
	tree := model.NewTree()
	root := tree.SetRoot(model.Node{Path: "/r", Name: "r", IsDir: true})
	big := tree.AddChild(root, model.Node{Path: "/r/big", Name: "big", Size: 1000})
	tiny := tree.AddChild(root, model.Node{Path: "/r/tiny", Name: "tiny", Size: 1})

	m, err := NewBuilder(DefaultOptions()).Build(context.Background(), model.Rect{W: 100, H: 116}, tree)
	require.NoError(t, err)

	_, ok := m.Lookup(tiny)
	assert.False(t, ok, "tiny child should be culled")

	e, ok := m.Lookup(big)
	require.True(t, ok)
	// The survivor absorbs the dropped area and fills the whole content area
	assert.InDelta(t, 2.0, e.Rect.X, 1e-6)
	assert.InDelta(t, 18.0, e.Rect.Y, 1e-6)
	assert.InDelta(t, 96.0, e.Rect.W, 1e-6)
	assert.InDelta(t, 96.0, e.Rect.H, 1e-6)
}

func TestEnforceMinArea(t *testing.T) {
	areas := []childArea{{node: 1, area: 9000}, {node: 2, area: 5000}, {node: 3, area: 100}, {node: 4, area: 50}}

	got := enforceMinArea(areas, 4096)
	require.Len(t, got, 2)

	var total float64
	for _, a := range got {
		total += a.area
	}
	assert.InDelta(t, 14150.0, total, 1e-9)
	assert.Equal(t, model.NodeID(1), got[0].node)
	assert.Equal(t, model.NodeID(2), got[1].node)

	// A lone child is kept no matter how small
	lone := enforceMinArea([]childArea{{node: 1, area: 10}}, 4096)
	assert.Len(t, lone, 1)
}

func TestBuildIsIdempotent(t *testing.T) {
	tree, _ := sampleTree()
	b := NewBuilder(DefaultOptions())

	first, err := b.Build(context.Background(), sampleContainer(), tree)
	require.NoError(t, err)
	second, err := b.Build(context.Background(), sampleContainer(), tree)
	require.NoError(t, err)

	assert.Equal(t, first.Entries(), second.Entries())
	assert.Equal(t, first.Fingerprint(), second.Fingerprint())

	other, err := b.Build(context.Background(), model.Rect{W: 300, H: 316}, tree)
	require.NoError(t, err)
	assert.NotEqual(t, first.Fingerprint(), other.Fingerprint())
}

func TestBuildCancelled(t *testing.T) {
	tree, _ := sampleTree()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	m, err := NewBuilder(DefaultOptions()).Build(ctx, sampleContainer(), tree)
	require.NoError(t, err)
	assert.Equal(t, 0, m.Len())
}

func TestBuildCancelledMidway(t *testing.T) {
	tree, ids := sampleTree()
	ctx, cancel := context.WithCancel(context.Background())

	opts := DefaultOptions()
	opts.Strategy = func(r model.Rect, areas []float64) ([]model.Rect, error) {
		cancel()
		return layout.Squarify(r, areas)
	}

	m, err := NewBuilder(opts).Build(ctx, sampleContainer(), tree)
	require.NoError(t, err)
	require.Equal(t, 1, m.Len())
	_, ok := m.Lookup(ids["/r"])
	assert.True(t, ok)
}

func TestBuildLayoutErrorKeepsPartialMap(t *testing.T) {
	tree, _ := sampleTree()

	opts := DefaultOptions()
	opts.Strategy = func(r model.Rect, areas []float64) ([]model.Rect, error) {
		return nil, &layout.LayoutError{Container: r, Reason: "broken"}
	}

	m, err := NewBuilder(opts).Build(context.Background(), sampleContainer(), tree)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "/r")

	var layoutErr *layout.LayoutError
	assert.True(t, errors.As(err, &layoutErr))
	assert.Equal(t, 1, m.Len())
}

func TestBuildReferenceStrategy(t *testing.T) {
	tree, _ := sampleTree()

	opts := DefaultOptions()
	opts.Strategy = layout.Reference

	m, err := NewBuilder(opts).Build(context.Background(), sampleContainer(), tree)
	require.NoError(t, err)
	assert.Equal(t, 5, m.Len())
}

func TestBuildColors(t *testing.T) {
	tree, ids := sampleTree()

	m, err := NewBuilder(DefaultOptions()).Build(context.Background(), sampleContainer(), tree)
	require.NoError(t, err)

	colors := map[string]int{"/r/a": 0, "/r/b": 24, "/r/c": 49}
	for path, want := range colors {
		e, _ := m.Lookup(ids[path])
		assert.Equal(t, want, e.Color, path)
	}
}
