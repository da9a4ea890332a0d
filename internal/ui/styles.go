package ui

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/lumipallolabs/diskmap/internal/model"
)

var (
	ColorPrimary    = lipgloss.Color("#C084FC") // soft violet
	ColorDanger     = lipgloss.Color("#FF5555")
	ColorMuted      = lipgloss.Color("#4A5568")
	ColorBackground = lipgloss.Color("#1F1F23")
	ColorCyan       = lipgloss.Color("#00FFFF")
	ColorText       = lipgloss.Color("#E4E4E7")
)

var (
	HeaderStyle = lipgloss.NewStyle().
			Background(ColorBackground).
			Foreground(ColorText)

	TitleStyle = lipgloss.NewStyle().
			Background(ColorPrimary).
			Foreground(lipgloss.Color("#FFFFFF")).
			Padding(0, 1).
			Bold(true)

	BusyStyle = lipgloss.NewStyle().
			Foreground(ColorCyan).
			Bold(true)

	InfoStyle = lipgloss.NewStyle().
			Foreground(ColorText)

	MutedStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorDanger)

	HelpOverlayStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(ColorPrimary).
				Padding(1, 3)
)

// FormatSize formats bytes to a human readable string
func FormatSize(bytes int64) string {
	if bytes < 0 {
		return "-" + humanize.IBytes(uint64(-bytes))
	}
	return humanize.IBytes(uint64(bytes))
}

// FormatTime formats a time for display, using shorter format for current year
func FormatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	if t.Year() == time.Now().Year() {
		return t.Format("Jan 2 15:04")
	}
	return t.Format("Jan 2, 2006 15:04")
}

// FormatChanges summarizes the files of a rescan diff, e.g.
// "2 files changed, +600 B (largest new.bin)". Directory rollups are not
// counted. Returns "" when no file changed.
func FormatChanges(changes []model.Change) string {
	var (
		files   int
		delta   int64
		largest string
	)
	for _, c := range changes {
		if c.IsDir {
			continue
		}
		if files == 0 {
			largest = filepath.Base(c.Path)
		}
		files++
		delta += c.Delta()
	}
	if files == 0 {
		return ""
	}

	noun := "files"
	if files == 1 {
		noun = "file"
	}
	sign := "+"
	if delta < 0 {
		sign = ""
	}
	return fmt.Sprintf("%d %s changed, %s%s (largest %s)", files, noun, sign, FormatSize(delta), largest)
}
