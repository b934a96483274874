package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"
)

const ellipsis = "…"

// styledLine is one screen row before rendering. When highlightFrom > 0 the
// first highlightFrom runes use prefixStyle and the rest use style.
type styledLine struct {
	text          string
	style         *lipgloss.Style
	prefixStyle   *lipgloss.Style
	highlightFrom int
	raw           bool // text is pre-rendered ANSI; never restyled
}

// fit shortens the line to width cells.
func (l styledLine) fit(width int) styledLine {
	if width <= 0 {
		return l
	}
	if l.raw {
		if lipgloss.Width(l.text) > width {
			l.text = truncate.StringWithTail(l.text, uint(width-1), ellipsis)
		}
		return l
	}
	l.text = truncateText(l.text, width)
	return l
}

func (l styledLine) render() string {
	if l.raw {
		return l.text
	}
	runes := []rune(l.text)
	if l.highlightFrom <= 0 || l.highlightFrom >= len(runes) {
		return render(l.style, l.text)
	}
	return render(l.prefixStyle, string(runes[:l.highlightFrom])) +
		render(l.style, string(runes[l.highlightFrom:]))
}

// limitHeight keeps at most height rows, turning the last kept row into an
// ellipsis when something was cut.
func limitHeight(lines []styledLine, height, width int) []styledLine {
	if height <= 0 || len(lines) <= height {
		return lines
	}
	kept := append([]styledLine(nil), lines[:height-1]...)
	return append(kept, styledLine{text: truncateText(ellipsis, width)})
}

func applyWidth(lines []styledLine, width int) []styledLine {
	out := make([]styledLine, len(lines))
	for i, line := range lines {
		out[i] = line.fit(width)
	}
	return out
}

func renderLines(lines []styledLine) string {
	rows := make([]string, len(lines))
	for i, line := range lines {
		rows[i] = line.render()
	}
	return strings.Join(rows, "\n")
}

// truncateText cuts plain text to width runes, the last being an ellipsis.
func truncateText(text string, width int) string {
	runes := []rune(text)
	if width <= 0 || len(runes) <= width {
		return text
	}
	if width == 1 {
		return string(runes[0])
	}
	return string(runes[:width-1]) + ellipsis
}
