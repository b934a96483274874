package table

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type Alignment int

const (
	AlignLeft Alignment = iota
	AlignRight
)

const columnGap = "  "

// Format lays rows out in columns as wide as their widest cell, measured in
// terminal cells so styled text lines up. A left-aligned final cell is not
// padded.
func Format(rows [][]string, alignments []Alignment) []string {
	if len(rows) == 0 {
		return nil
	}
	widths := columnWidths(rows)
	out := make([]string, 0, len(rows))
	for _, row := range rows {
		cells := make([]string, len(row))
		for c, cell := range row {
			right := c < len(alignments) && alignments[c] == AlignRight
			switch {
			case right:
				cells[c] = lipgloss.PlaceHorizontal(widths[c], lipgloss.Right, cell)
			case c == len(row)-1:
				cells[c] = cell
			default:
				cells[c] = lipgloss.PlaceHorizontal(widths[c], lipgloss.Left, cell)
			}
		}
		out = append(out, strings.Join(cells, columnGap))
	}
	return out
}

func columnWidths(rows [][]string) []int {
	var widths []int
	for _, row := range rows {
		for c, cell := range row {
			if c == len(widths) {
				widths = append(widths, 0)
			}
			widths[c] = max(widths[c], lipgloss.Width(cell))
		}
	}
	return widths
}
