package stats

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// column describes one table column.
type column struct {
	title string
	right bool
}

// formatTable lays rows out under cols, padding every cell to the widest
// entry of its column in terminal cells. Missing cells render blank.
func formatTable(cols []column, rows [][]string) []string {
	if len(cols) == 0 {
		return nil
	}
	widths := make([]int, len(cols))
	for i, c := range cols {
		widths[i] = runewidth.StringWidth(c.title)
	}
	for _, row := range rows {
		for i := range cols {
			if i < len(row) {
				widths[i] = max(widths[i], runewidth.StringWidth(row[i]))
			}
		}
	}

	header := make([]string, len(cols))
	for i, c := range cols {
		header[i] = c.title
	}
	lines := make([]string, 0, len(rows)+1)
	lines = append(lines, joinCells(cols, widths, header))
	for _, row := range rows {
		lines = append(lines, joinCells(cols, widths, row))
	}
	return lines
}

func joinCells(cols []column, widths []int, row []string) string {
	cells := make([]string, len(cols))
	for i, c := range cols {
		var value string
		if i < len(row) {
			value = row[i]
		}
		pad := strings.Repeat(" ", max(widths[i]-runewidth.StringWidth(value), 0))
		if c.right {
			cells[i] = pad + value
		} else {
			cells[i] = value + pad
		}
	}
	return strings.Join(cells, " ")
}
