package render

import (
	"fmt"
	"io"

	"github.com/fogleman/gg"
)

// PNG rasterizes the scene at the map's own scale and encodes it to w
func PNG(w io.Writer, s Scene) error {
	b := s.Bounds()
	width, height := int(b.Right()+0.5), int(b.Bottom()+0.5)
	if width < 1 || height < 1 {
		return fmt.Errorf("nothing to render: bounds %v", b)
	}

	dc := gg.NewContext(width, height)
	dc.SetRGB(0, 0, 0)
	dc.Clear()

	for _, e := range s.Map.Entries() {
		c := s.Palette.At(e.Color)
		dc.DrawRectangle(e.Rect.X, e.Rect.Y, e.Rect.W, e.Rect.H)
		dc.SetRGB(c.R, c.G, c.B)
		dc.FillPreserve()
		if e.Node == s.Selected {
			dc.SetRGB(1, 1, 1)
			dc.SetLineWidth(2)
		} else {
			dc.SetRGB(0, 0, 0)
			dc.SetLineWidth(0.5)
		}
		dc.Stroke()
	}

	for _, e := range s.Map.Entries() {
		if !showLabel(e.Rect) {
			continue
		}
		tw, _ := dc.MeasureString("M")
		text := truncate(e.Label.Text, int((e.Rect.W-4)/tw))
		if text == "" {
			continue
		}
		c := s.Palette.TextColor(e.Color)
		dc.SetRGB(c.R, c.G, c.B)
		dc.DrawStringAnchored(text, e.Label.Position.X+2, e.Label.Position.Y+2, 0, 1)
	}

	if err := dc.EncodePNG(w); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}
