package render

import (
	"bytes"
	"fmt"
	"html"

	"github.com/lumipallolabs/diskmap/internal/model"
)

// SVG renders the scene as a standalone SVG document
func SVG(s Scene) []byte {
	b := s.Bounds()

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="%.1f %.1f %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		b.X, b.Y, b.W, b.H, b.W, b.H)
	buf.WriteString(`  <style>.entry { stroke: #000; stroke-width: 0.5; } .selected { stroke: #fff; stroke-width: 2; } text { font-family: monospace; dominant-baseline: hanging; }</style>` + "\n")

	for _, e := range s.Map.Entries() {
		class := "entry"
		if e.Node == s.Selected {
			class = "entry selected"
		}
		n := s.Tree.Node(e.Node)
		fmt.Fprintf(&buf, `  <rect class="%s" x="%.2f" y="%.2f" width="%.2f" height="%.2f" fill="%s"><title>%s</title></rect>`+"\n",
			class, e.Rect.X, e.Rect.Y, e.Rect.W, e.Rect.H, s.Palette.Hex(e.Color), html.EscapeString(n.Path))
	}

	for _, e := range s.Map.Entries() {
		if !showLabel(e.Rect) {
			continue
		}
		renderLabel(&buf, s, e.Rect, e.Label.Text, e.Label.Position, e.Label.Size, e.Color)
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func renderLabel(buf *bytes.Buffer, s Scene, r model.Rect, text string, at model.Point, size float64, color int) {
	fontSize := size * 0.75
	// Monospace glyphs are roughly 0.6 em wide
	maxChars := int((r.W - 4) / (fontSize * 0.6))
	text = truncate(text, maxChars)
	if text == "" {
		return
	}
	fmt.Fprintf(buf, `  <text x="%.2f" y="%.2f" font-size="%.1f" fill="%s">%s</text>`+"\n",
		at.X+2, at.Y+2, fontSize, s.Palette.TextColor(color).Hex(), html.EscapeString(text))
}

// truncate shortens s to n runes, marking the cut with "~"
func truncate(s string, n int) string {
	r := []rune(s)
	if n <= 0 {
		return ""
	}
	if len(r) <= n {
		return s
	}
	if n == 1 {
		return "~"
	}
	return string(r[:n-1]) + "~"
}
