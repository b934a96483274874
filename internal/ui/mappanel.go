package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"

	"github.com/atomicstack/mapping-example/internal/menu"
)

const (
	mapPanelMinWidth = 40  // below this the map stays inline
	mapPanelFraction = 0.6 // share of the width given to the map panel
)

var (
	mapBorderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	mapCountStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// hasSideMap reports whether the map gets its own panel on the right.
func (m *Model) hasSideMap() bool {
	return m.orientation == OrientationLandscape && m.activeHasMap() && m.mapPanelWidth() > 0
}

// mapPanelWidth returns 0 when the terminal is too narrow to split.
func (m *Model) mapPanelWidth() int {
	if m.width <= 0 {
		return 0
	}
	w := int(float64(m.width) * mapPanelFraction)
	if w < mapPanelMinWidth {
		return 0
	}
	return w
}

func (m *Model) menuColumnWidth() int {
	return m.width - m.mapPanelWidth()
}

func (m *Model) isMapPanel(el menu.Element) bool {
	return el.Kind == menu.KindPanel && el.ID != "" && el.ID == m.app.Config.MapPanel
}

// mapTitle labels the map panel with its center and zoom.
func (m *Model) mapTitle(el menu.Element) string {
	title := el.Title
	if title == "" {
		title = "Map"
	}
	if m.mapView == nil {
		return title
	}
	lat, lon := m.mapView.Center()
	title = fmt.Sprintf("%s %s z%d", title, menu.FormatLocation(lat, lon), m.mapView.Zoom())
	if m.fetching {
		title += " (loading…)"
	}
	return title
}

// inlineMapRows is the height left for an inline map once the rest of the
// card and the chrome around it are accounted for.
func (m *Model) inlineMapRows(card *menu.Card) int {
	if m.height <= 0 {
		return inlineMapMaxRows
	}
	used := 3 + len(card.Elements) // header, status, prompt, one line per element
	if m.currentInfo() != "" {
		used += 2
	}
	if m.showFooter {
		used += 2
	}
	return min(inlineMapMaxRows, max(inlineMapMinRows, m.height-used))
}

func (m *Model) inlineMapLines(width, rows int) []styledLine {
	if m.mapView == nil {
		return []styledLine{{text: "(map unavailable)", style: styles.Info}}
	}
	if width <= 0 {
		width = inlineMapDefaultCols
	}
	rendered := strings.Split(m.mapView.Render(width, rows), "\n")
	lines := make([]styledLine, 0, len(rendered))
	for _, row := range rendered {
		lines = append(lines, styledLine{text: row, raw: true})
	}
	return lines
}

// renderMapPanel builds the bordered map box with exactly height rows of
// totalWidth columns.
func (m *Model) renderMapPanel(totalWidth, height int) string {
	const (
		tlc = "╭"
		trc = "╮"
		blc = "╰"
		brc = "╯"
		hz  = "─"
		vt  = "│"
	)
	innerW := max(1, totalWidth-2)
	innerH := max(1, height-2)

	titleLabel := "Map"
	countInfo := ""
	var contentLines []string
	rawANSI := false
	bodyStyle := styles.PanelBody

	switch {
	case m.mapView == nil:
		contentLines = []string{"Map unavailable"}
		bodyStyle = styles.Error
	default:
		lat, lon := m.mapView.Center()
		titleLabel = fmt.Sprintf("Map: %s z%d", menu.FormatLocation(lat, lon), m.mapView.Zoom())
		if n := len(m.mapView.Markers()); n > 0 || !m.fetching {
			countInfo = fmt.Sprintf(" %d points ", n)
			contentLines = strings.Split(m.mapView.Render(innerW, innerH), "\n")
			rawANSI = true
		} else {
			contentLines = []string{"Loading…"}
		}
	}

	titleSeg := " " + titleLabel + " "
	countSeg := countInfo
	dashes := totalWidth - 4 - lipgloss.Width(titleSeg) - lipgloss.Width(countSeg)
	if dashes < 0 {
		countSeg = ""
		dashes = totalWidth - 4 - lipgloss.Width(titleSeg)
	}
	if dashes < 0 {
		titleSeg = " … "
		dashes = totalWidth - 4 - lipgloss.Width(titleSeg)
	}
	dashes = max(0, dashes)
	topLine := mapBorderStyle.Render(tlc+hz) +
		styles.PanelTitle.Render(titleSeg) +
		mapBorderStyle.Render(strings.Repeat(hz, dashes)) +
		mapCountStyle.Render(countSeg) +
		mapBorderStyle.Render(hz+trc)
	bottomLine := mapBorderStyle.Render(blc + strings.Repeat(hz, innerW) + brc)

	rows := make([]string, 0, height)
	rows = append(rows, topLine)
	for i := 0; i < innerH; i++ {
		var content string
		if i < len(contentLines) {
			content = contentLines[i]
		}
		w := lipgloss.Width(content)
		if w > innerW {
			content = truncate.StringWithTail(content, uint(innerW-1), "…")
			w = lipgloss.Width(content)
		}
		if w < innerW {
			content += strings.Repeat(" ", innerW-w)
		}
		if !rawANSI && bodyStyle != nil {
			content = bodyStyle.Render(content)
		}
		rows = append(rows, mapBorderStyle.Render(vt)+content+mapBorderStyle.Render(vt))
	}
	rows = append(rows, bottomLine)
	return strings.Join(rows, "\n")
}
