package components

import (
	"fmt"
	"math"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizdeck/internal/ui/theme"
)

// ringSegments traces a ring clockwise from twelve o'clock. Each entry
// is the row, column, and glyph of one segment.
type ringSegment struct {
	row   int
	col   int
	glyph rune
}

var ringLayout = []ringSegment{
	{0, 5, '─'}, {0, 6, '─'}, {0, 7, '╮'},
	{1, 9, '│'}, {2, 9, '│'}, {3, 9, '│'},
	{4, 7, '╯'}, {4, 6, '─'}, {4, 5, '─'}, {4, 4, '─'}, {4, 3, '─'},
	{4, 1, '╰'},
	{3, 0, '│'}, {2, 0, '│'}, {1, 0, '│'},
	{0, 1, '╭'}, {0, 3, '─'}, {0, 4, '─'},
}

// RingGauge renders a score as a ring that fills clockwise, with the
// percentage in the middle.
type RingGauge struct {
	Percent float64
}

// NewRingGauge creates a gauge at the given percent, clamped to 0..100.
func NewRingGauge(percent float64) RingGauge {
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}
	return RingGauge{Percent: percent}
}

// View renders the gauge as a five-line block.
func (g RingGauge) View() string {
	filledCount := int(math.Round(g.Percent / 100 * float64(len(ringLayout))))

	const rows, cols = 5, 10
	grid := make([][]string, rows)
	for r := range grid {
		grid[r] = make([]string, cols)
		for c := range grid[r] {
			grid[r][c] = " "
		}
	}

	filled := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true)
	empty := lipgloss.NewStyle().Foreground(theme.Border)

	for i, seg := range ringLayout {
		style := empty
		if i < filledCount {
			style = filled
		}
		grid[seg.row][seg.col] = style.Render(string(seg.glyph))
	}

	label := fmt.Sprintf("%d%%", int(math.Round(g.Percent)))
	labelStart := (cols - len(label)) / 2
	styledLabel := lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(label)
	midRow := rows / 2
	for c := labelStart; c < labelStart+len(label) && c < cols; c++ {
		grid[midRow][c] = ""
	}
	grid[midRow][labelStart] = styledLabel

	lines := make([]string, rows)
	for r := range grid {
		lines[r] = strings.TrimRight(strings.Join(grid[r], ""), " ")
	}
	return strings.Join(lines, "\n")
}
