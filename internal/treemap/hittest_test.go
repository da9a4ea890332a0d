package treemap

import (
	"context"
	"testing"

	"github.com/lumipallolabs/diskmap/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHitTest(t *testing.T) {
	tree, ids := sampleTree()
	m, err := NewBuilder(DefaultOptions()).Build(context.Background(), sampleContainer(), tree)
	require.NoError(t, err)

	tests := []struct {
		name string
		p    model.Point
		want string
	}{
		{"deepest leaf", model.Point{X: 350, Y: 350}, "/r/c/d"},
		{"directory gutter", model.Point{X: 303, Y: 260}, "/r/c"},
		{"file", model.Point{X: 200, Y: 100}, "/r/a"},
		{"root title", model.Point{X: 1, Y: 1}, "/r"},
		{"edge is inside", model.Point{X: 400, Y: 416}, "/r"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, ok := HitTest(tt.p, tree, m)
			require.True(t, ok)
			assert.Equal(t, ids[tt.want], e.Node, "got %s", tree.Node(e.Node).Path)
		})
	}
}

func TestHitTestOutside(t *testing.T) {
	tree, _ := sampleTree()
	m, err := NewBuilder(DefaultOptions()).Build(context.Background(), sampleContainer(), tree)
	require.NoError(t, err)

	_, ok := m.HitTest(model.Point{X: 500, Y: 500}, tree)
	assert.False(t, ok)
	_, ok = m.HitTest(model.Point{X: -1, Y: 10}, tree)
	assert.False(t, ok)
}

func TestHitTestEmpty(t *testing.T) {
	_, ok := HitTest(model.Point{X: 1, Y: 1}, model.NewTree(), newMap())
	assert.False(t, ok)

	tree, _ := sampleTree()
	_, ok = HitTest(model.Point{X: 1, Y: 1}, tree, nil)
	assert.False(t, ok)
}

func TestHitTestPartialMap(t *testing.T) {
	tree, ids := sampleTree()

	// A map that stopped after the root still answers with the root
	m := newMap()
	m.add(Entry{Node: ids["/r"], Rect: sampleContainer()})

	e, ok := HitTest(model.Point{X: 350, Y: 350}, tree, m)
	require.True(t, ok)
	assert.Equal(t, ids["/r"], e.Node)
}
