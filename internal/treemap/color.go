package treemap

import (
	"math"
	"time"

	"github.com/lumipallolabs/diskmap/internal/model"
)

// MinColorSpan is the shortest timestamp span that gets graded colors
const MinColorSpan = 24 * time.Hour

// ColorIndex maps a node's modification time to a palette index: 0 for the
// newest, paletteLen-1 for the oldest. Trees spanning less than a day use 0.
func ColorIndex(tree *model.Tree, n *model.Node, paletteLen int) int {
	if paletteLen < 2 || n == nil {
		return 0
	}
	span := tree.Span()
	if span < MinColorSpan {
		return 0
	}

	grade := float64(tree.Newest.Sub(n.LastModified)) / float64(span)
	// File times are not part of the bounds and can fall outside them
	grade = math.Max(0, math.Min(1, grade))

	return int(math.Floor(float64(paletteLen-1) * grade))
}
