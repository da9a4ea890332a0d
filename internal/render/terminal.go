package render

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lumipallolabs/diskmap/internal/model"
)

// Terminal cells in layout units. A cell is twice as tall as wide, and one
// row fits the title margin.
const (
	CellWidth  = 8
	CellHeight = 16
)

// HighlightColor marks the selected entry's label
var HighlightColor = lipgloss.Color("#C084FC")

// CellRect converts a cols x rows terminal area to layout units
func CellRect(cols, rows int) model.Rect {
	return model.NewRect(0, 0, float64(cols*CellWidth), float64(rows*CellHeight))
}

// CellPoint returns the layout point at the center of a terminal cell
func CellPoint(col, row int) model.Point {
	return model.Point{
		X: (float64(col) + 0.5) * CellWidth,
		Y: (float64(row) + 0.5) * CellHeight,
	}
}

type cell struct {
	color    int // palette index, -1 for background
	ch       rune
	selected bool
}

type cellStyle struct {
	color    int
	selected bool
}

// Terminal renders the scene into cols x rows styled cells. Entries are
// painted in map order so children cover their parents.
func Terminal(s Scene, cols, rows int) string {
	if cols < 1 || rows < 1 {
		return ""
	}

	grid := make([][]cell, rows)
	for y := range grid {
		grid[y] = make([]cell, cols)
		for x := range grid[y] {
			grid[y][x] = cell{color: -1, ch: ' '}
		}
	}

	for _, e := range s.Map.Entries() {
		x0, x1 := toCells(e.Rect.X, e.Rect.Right(), CellWidth, cols)
		y0, y1 := toCells(e.Rect.Y, e.Rect.Bottom(), CellHeight, rows)
		for y := y0; y < y1; y++ {
			for x := x0; x < x1; x++ {
				grid[y][x] = cell{color: e.Color, ch: ' '}
			}
		}

		if !showLabel(e.Rect) || y0 >= y1 {
			continue
		}
		text := []rune(truncate(e.Label.Text, x1-x0))
		for i, r := range text {
			grid[y0][x0+i].ch = r
			grid[y0][x0+i].selected = e.Node == s.Selected
		}
	}

	styles := map[cellStyle]lipgloss.Style{}
	styleFor := func(c cell) lipgloss.Style {
		key := cellStyle{color: c.color, selected: c.selected}
		if st, ok := styles[key]; ok {
			return st
		}
		st := lipgloss.NewStyle()
		switch {
		case c.selected:
			st = st.Background(HighlightColor).Foreground(lipgloss.Color("#FFFFFF")).Bold(true)
		case c.color >= 0:
			st = st.Background(lipgloss.Color(s.Palette.Hex(c.color))).
				Foreground(lipgloss.Color(s.Palette.TextColor(c.color).Hex()))
		}
		styles[key] = st
		return st
	}

	lines := make([]string, rows)
	var run strings.Builder
	for y, row := range grid {
		var line strings.Builder
		start := 0
		for x := 1; x <= len(row); x++ {
			if x < len(row) && row[x].color == row[start].color && row[x].selected == row[start].selected {
				continue
			}
			run.Reset()
			for _, c := range row[start:x] {
				run.WriteRune(c.ch)
			}
			line.WriteString(styleFor(row[start]).Render(run.String()))
			start = x
		}
		lines[y] = line.String()
	}
	return strings.Join(lines, "\n")
}

// toCells maps the span [lo, hi) in layout units to cell indexes, clipped
// to limit
func toCells(lo, hi, unit float64, limit int) (int, int) {
	a := int(math.Round(lo / unit))
	b := int(math.Round(hi / unit))
	a = max(0, min(a, limit))
	b = max(a, min(b, limit))
	return a, b
}
