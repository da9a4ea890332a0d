package model

import (
	"fmt"
	"math"
)

// Point is a position in layout units
type Point struct {
	X, Y float64
}

// Rect is an axis-aligned rectangle in layout units
type Rect struct {
	X, Y float64
	W, H float64
}

// NewRect creates a rectangle, clamping negative extents to zero
func NewRect(x, y, w, h float64) Rect {
	return Rect{X: x, Y: y, W: math.Max(w, 0), H: math.Max(h, 0)}
}

// Right returns the x coordinate of the right edge
func (r Rect) Right() float64 { return r.X + r.W }

// Bottom returns the y coordinate of the bottom edge
func (r Rect) Bottom() float64 { return r.Y + r.H }

// Area returns W*H
func (r Rect) Area() float64 { return r.W * r.H }

// Origin returns the top-left corner
func (r Rect) Origin() Point { return Point{X: r.X, Y: r.Y} }

// IsEmpty reports whether the rectangle has no area
func (r Rect) IsEmpty() bool {
	return !(r.W > 0) || !(r.H > 0)
}

// Contains reports whether p lies inside r, edges included
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X <= r.Right() && p.Y >= r.Y && p.Y <= r.Bottom()
}

// ContainsRect reports whether o lies inside r within tolerance eps
func (r Rect) ContainsRect(o Rect, eps float64) bool {
	return o.X >= r.X-eps && o.Y >= r.Y-eps &&
		o.Right() <= r.Right()+eps && o.Bottom() <= r.Bottom()+eps
}

// Intersects reports whether the interiors of r and o overlap
func (r Rect) Intersects(o Rect) bool {
	return r.X < o.Right() && o.X < r.Right() && r.Y < o.Bottom() && o.Y < r.Bottom()
}

// Union returns the smallest rectangle containing r and o
func (r Rect) Union(o Rect) Rect {
	x := math.Min(r.X, o.X)
	y := math.Min(r.Y, o.Y)
	return Rect{
		X: x,
		Y: y,
		W: math.Max(r.Right(), o.Right()) - x,
		H: math.Max(r.Bottom(), o.Bottom()) - y,
	}
}

// Inset shrinks r by d on every side; extents never go negative
func (r Rect) Inset(d float64) Rect {
	return NewRect(r.X+d, r.Y+d, r.W-2*d, r.H-2*d)
}

// Scale resizes r by f around its center
func (r Rect) Scale(f float64) Rect {
	w, h := r.W*f, r.H*f
	return Rect{
		X: r.X + (r.W-w)/2,
		Y: r.Y + (r.H-h)/2,
		W: w,
		H: h,
	}
}

// AspectRatio returns longer side / shorter side. A degenerate rectangle
// has an infinite ratio.
func (r Rect) AspectRatio() float64 {
	long, short := math.Max(r.W, r.H), math.Min(r.W, r.H)
	if !(short > 0) {
		return math.Inf(1)
	}
	return long / short
}

func (r Rect) String() string {
	return fmt.Sprintf("(%.2f,%.2f %.2fx%.2f)", r.X, r.Y, r.W, r.H)
}
