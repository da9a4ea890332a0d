// Package render draws treemaps as SVG, PNG or styled terminal text.
package render

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"
)

// Default palette endpoints: bright green for the newest entries fading to
// a dark green for the oldest
const (
	DefaultNewest = "#7CFC00"
	DefaultOldest = "#0B3D0B"
	DefaultSize   = 50
)

// Palette maps color indexes from treemap entries to colors. Index 0 is the
// newest color.
type Palette []colorful.Color

// DefaultPalette returns the standard 50-step green palette
func DefaultPalette() Palette {
	p, _ := NewPalette(DefaultNewest, DefaultOldest, DefaultSize)
	return p
}

// NewPalette blends n colors from newest to oldest in HCL space
func NewPalette(newest, oldest string, n int) (Palette, error) {
	if n < 1 {
		return nil, fmt.Errorf("palette size must be positive, got %d", n)
	}
	from, err := colorful.Hex(newest)
	if err != nil {
		return nil, fmt.Errorf("newest color: %w", err)
	}
	to, err := colorful.Hex(oldest)
	if err != nil {
		return nil, fmt.Errorf("oldest color: %w", err)
	}

	p := make(Palette, n)
	for i := range p {
		t := 0.0
		if n > 1 {
			t = float64(i) / float64(n-1)
		}
		p[i] = from.BlendHcl(to, t).Clamped()
	}
	// Keep the endpoints exact, HCL round trips drift by a bit
	p[0] = from
	if n > 1 {
		p[n-1] = to
	}
	return p, nil
}

// At returns the color for index i, clamped to the palette
func (p Palette) At(i int) colorful.Color {
	if len(p) == 0 {
		return colorful.Color{}
	}
	i = max(0, min(i, len(p)-1))
	return p[i]
}

// Hex returns the color for index i as #rrggbb
func (p Palette) Hex(i int) string {
	return p.At(i).Hex()
}

// TextColor picks black or white, whichever reads better on background i
func (p Palette) TextColor(i int) colorful.Color {
	_, _, l := p.At(i).Hcl()
	if l > 0.6 {
		return colorful.Color{}
	}
	return colorful.Color{R: 1, G: 1, B: 1}
}
