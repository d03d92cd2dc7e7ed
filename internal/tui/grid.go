package tui

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/verte-zerg/cancatch/internal/model"
)

const (
	gridCols   = 3
	cellWidth  = 9
	cellHeight = 3
	cellGap    = 1
	marginLeft = 2
	gridTop    = 4
	flashFor   = 250 * time.Millisecond
)

const (
	goodGlyph  = "🥫"
	badGlyph   = "🛢"
	emptyGlyph = "·"
)

// keypad maps number keys to slots so the keys mirror the grid.
var keypad = map[string]int{
	"7": 0, "8": 1, "9": 2,
	"4": 3, "5": 4, "6": 5,
	"1": 6, "2": 7, "3": 8,
}

type cell struct {
	occupied   bool
	kind       model.Kind
	serial     uint64
	flashing   bool
	flashKind  model.Kind
	flashUntil time.Duration
}

var (
	emptyCellStyle = lipgloss.NewStyle().Background(lipgloss.Color("#1F2A33")).Foreground(lipgloss.Color("#4A5A66"))
	goodCellStyle  = lipgloss.NewStyle().Background(lipgloss.Color("#FFC907")).Foreground(lipgloss.Color("#1A1A1A")).Bold(true)
	badCellStyle   = lipgloss.NewStyle().Background(lipgloss.Color("#7A4B2A")).Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	flashGoodStyle = lipgloss.NewStyle().Background(lipgloss.Color("#4FCB53"))
	flashBadStyle  = lipgloss.NewStyle().Background(lipgloss.Color("#F5402C"))
)

// centerText pads s with spaces to width display cells.
func centerText(s string, width int) string {
	w := runewidth.StringWidth(s)
	if w >= width {
		return runewidth.Truncate(s, width, "")
	}
	left := (width - w) / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", width-w-left)
}

func cellLines(glyph string) []string {
	lines := make([]string, cellHeight)
	blank := strings.Repeat(" ", cellWidth)
	for i := range lines {
		lines[i] = blank
	}
	lines[cellHeight/2] = centerText(glyph, cellWidth)
	return lines
}

func renderCell(c cell, label string, now time.Duration) string {
	style := emptyCellStyle
	glyph := label
	switch {
	case c.occupied && c.kind == model.Bad:
		style, glyph = badCellStyle, badGlyph
	case c.occupied:
		style, glyph = goodCellStyle, goodGlyph
	case c.flashing && now < c.flashUntil:
		style = flashGoodStyle
		if c.flashKind == model.Bad {
			style = flashBadStyle
		}
		glyph = ""
	}
	lines := cellLines(glyph)
	for i, line := range lines {
		lines[i] = style.Render(line)
	}
	return strings.Join(lines, "\n")
}

// slotLabel returns the keypad key for a slot.
func slotLabel(slot int) string {
	for k, v := range keypad {
		if v == slot {
			return k
		}
	}
	return emptyGlyph
}

func renderGrid(cells []cell, now time.Duration) string {
	rows := make([]string, 0, len(cells)/gridCols)
	gap := strings.Repeat(" ", cellGap)
	for r := 0; r*gridCols < len(cells); r++ {
		parts := make([]string, 0, gridCols*2)
		for c := 0; c < gridCols && r*gridCols+c < len(cells); c++ {
			if c > 0 {
				parts = append(parts, gap)
			}
			slot := r*gridCols + c
			parts = append(parts, renderCell(cells[slot], slotLabel(slot), now))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, parts...))
	}
	return strings.Join(rows, "\n"+strings.Repeat("\n", cellGap-1)+"\n")
}

func gridWidth() int {
	return gridCols*cellWidth + (gridCols-1)*cellGap
}

// slotAt maps screen coordinates to a slot, reporting false for gaps and
// anything outside the grid.
func slotAt(x, y, slots int) (int, bool) {
	x -= marginLeft
	y -= gridTop
	if x < 0 || y < 0 {
		return 0, false
	}
	col, colOff := x/(cellWidth+cellGap), x%(cellWidth+cellGap)
	row, rowOff := y/(cellHeight+cellGap), y%(cellHeight+cellGap)
	if col >= gridCols || colOff >= cellWidth || rowOff >= cellHeight {
		return 0, false
	}
	slot := row*gridCols + col
	if slot >= slots {
		return 0, false
	}
	return slot, true
}
