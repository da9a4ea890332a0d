// Package layout subdivides rectangles into squarified treemap rows.
package layout

import (
	"fmt"
	"math"

	"github.com/lumipallolabs/diskmap/internal/model"
)

// Epsilon absorbs floating point error in area and extent comparisons
const Epsilon = 1e-5

// LayoutError reports a subdivision request that violates its preconditions
type LayoutError struct {
	Container model.Rect
	Reason    string
}

func (e *LayoutError) Error() string {
	return fmt.Sprintf("layout %v: %s", e.Container, e.Reason)
}

// orientation of a row inside the remaining container
type orientation int

const (
	horizontal orientation = iota // row spans the width, rectangles side by side
	vertical                      // row spans the height, rectangles stacked
)

func (o orientation) next() orientation {
	if o == horizontal {
		return vertical
	}
	return horizontal
}

// Squarify splits container into one rectangle per area, in input order.
// Areas must sum to the container area. Rows alternate orientation, starting
// with a vertical row when the container is wider than tall.
func Squarify(container model.Rect, areas []float64) ([]model.Rect, error) {
	if err := validate(container, areas); err != nil {
		return nil, err
	}

	orient := horizontal
	if container.W > container.H {
		orient = vertical
	}

	rects := make([]model.Rect, 0, len(areas))
	remaining := areas
	for len(remaining) > 0 {
		row, rest, done := layoutRow(container, remaining, orient)
		rects = append(rects, row...)
		if done {
			break
		}
		container = rest
		remaining = remaining[len(row):]
		orient = orient.next()
	}
	return rects, nil
}

func validate(container model.Rect, areas []float64) error {
	if !(container.W >= Epsilon) || !(container.H >= Epsilon) {
		return &LayoutError{Container: container, Reason: "container has no area"}
	}

	var sum float64
	for i, a := range areas {
		if a < 0 || math.IsNaN(a) || math.IsInf(a, 0) {
			return &LayoutError{Container: container, Reason: fmt.Sprintf("invalid area %v at index %d", a, i)}
		}
		sum += a
	}
	if math.Abs(container.Area()-sum) > Epsilon {
		return &LayoutError{
			Container: container,
			Reason:    fmt.Sprintf("areas sum to %v, container area is %v", sum, container.Area()),
		}
	}
	return nil
}

// layoutRow grows a row from the front of areas while the worst aspect ratio
// does not get worse. It returns the committed row and the container left
// over, or done when the row took every remaining area.
func layoutRow(container model.Rect, areas []float64, orient orientation) (row []model.Rect, rest model.Rect, done bool) {
	worst := math.Inf(1)
	for take := 1; ; take++ {
		if take > len(areas) {
			return row, model.Rect{}, true
		}

		candidate := placeRow(container, areas[:take], orient)
		candidateWorst := worstAspectRatio(candidate)
		if candidateWorst > worst {
			return row, carve(container, row), false
		}

		worst = candidateWorst
		row = candidate
	}
}

// placeRow lays areas out along the row's long axis, each taking a share of
// the row length proportional to its area
func placeRow(container model.Rect, areas []float64, orient orientation) []model.Rect {
	length, cross := container.W, container.H
	if orient == vertical {
		length, cross = container.H, container.W
	}

	var total float64
	for _, a := range areas {
		total += a
	}
	// Every rectangle in the row shares the same thickness. Accumulated
	// rounding must not push it past the container.
	thickness := 0.0
	if length > 0 {
		thickness = math.Min(total/length, cross)
	}

	row := make([]model.Rect, len(areas))
	x, y := container.X, container.Y
	for i, a := range areas {
		along := 0.0
		if total > 0 {
			along = a / total * length
		}
		if orient == horizontal {
			row[i] = model.NewRect(x, y, along, thickness)
			x += along
		} else {
			row[i] = model.NewRect(x, y, thickness, along)
			y += along
		}
	}
	return row
}

func worstAspectRatio(row []model.Rect) float64 {
	worst := 0.0
	for _, r := range row {
		worst = math.Max(worst, r.AspectRatio())
	}
	return worst
}

// carve removes the row's bounding box from container: a full-width row is
// cut from the top, anything else from the left
func carve(container model.Rect, row []model.Rect) model.Rect {
	bounds := row[0]
	for _, r := range row[1:] {
		bounds = bounds.Union(r)
	}

	w := math.Min(bounds.W, container.W)
	h := math.Min(bounds.H, container.H)
	if math.Abs(container.W-w) < Epsilon {
		return model.NewRect(container.X, container.Y+h, container.W, container.H-h)
	}
	return model.NewRect(container.X+w, container.Y, container.W-w, container.H)
}
