// Package mapview draws placemarks on a character grid centred on a
// location. It stands in for a real tile-based map widget.
package mapview

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/atomicstack/mapping-example/internal/format/table"
	"github.com/atomicstack/mapping-example/internal/logging/events"
	"github.com/atomicstack/mapping-example/internal/placemark"
	"github.com/atomicstack/mapping-example/internal/theme"
)

const (
	MinZoom = 1
	MaxZoom = 21

	gridRune   = '.'
	centerRune = '+'
)

// ErrInvalidZoom rejects zoom levels outside [MinZoom, MaxZoom].
var ErrInvalidZoom = errors.New("invalid zoom")

// Map is a map handle: a center, a zoom and the markers placed on it.
type Map struct {
	lat     float64
	lon     float64
	zoom    int
	markers []placemark.Placemark
}

// New initialises a map at lat/lon. It fails for an invalid center or zoom.
func New(lat, lon float64, zoom int) (*Map, error) {
	if err := placemark.Validate(lat, lon); err != nil {
		return nil, fmt.Errorf("map init: %w", err)
	}
	if zoom < MinZoom || zoom > MaxZoom {
		return nil, fmt.Errorf("map init: %w: %d not in [%d,%d]", ErrInvalidZoom, zoom, MinZoom, MaxZoom)
	}
	events.Map.Init(lat, lon, zoom)
	return &Map{lat: lat, lon: lon, zoom: zoom}, nil
}

func (m *Map) Center() (float64, float64) {
	return m.lat, m.lon
}

func (m *Map) Zoom() int {
	return m.zoom
}

// Place replaces the markers shown on the map.
func (m *Map) Place(points []placemark.Placemark) {
	m.markers = append(m.markers[:0], points...)
	events.Map.Markers(len(m.markers))
}

func (m *Map) Markers() []placemark.Placemark {
	dup := make([]placemark.Placemark, len(m.markers))
	copy(dup, m.markers)
	return dup
}

// Render draws the map into width x height cells: a grid with the center
// crosshair and one symbol per marker, followed by a legend keyed by those
// symbols. Markers projected outside the grid appear only in the legend.
func (m *Map) Render(width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	styles := theme.Default()
	legend := m.legend()
	gridHeight := height - len(legend)
	if gridHeight < 3 {
		gridHeight = min(height, 3)
		legend = legend[:max(0, min(len(legend), height-gridHeight))]
	}

	cells := make([][]rune, gridHeight)
	for r := range cells {
		cells[r] = []rune(strings.Repeat(string(gridRune), width))
	}
	cr, cc := gridHeight/2, width/2
	cells[cr][cc] = centerRune
	for i, p := range m.markers {
		r, c := m.project(p, width, gridHeight)
		if r < 0 || r >= gridHeight || c < 0 || c >= width {
			continue
		}
		cells[r][c] = symbol(i)
	}

	lines := make([]string, 0, height)
	for _, row := range cells {
		var b strings.Builder
		for _, ch := range row {
			switch {
			case ch == gridRune:
				b.WriteString(styles.MapGrid.Render(string(ch)))
			case ch == centerRune:
				b.WriteString(styles.MapCenter.Render(string(ch)))
			default:
				b.WriteString(styles.MapMarker.Render(string(ch)))
			}
		}
		lines = append(lines, b.String())
	}
	for _, line := range legend {
		lines = append(lines, styles.MapLegend.Render(line))
	}
	return strings.Join(lines, "\n")
}

// project maps a point onto grid cells. The visible longitude span halves
// with every zoom step; rows cover twice the degrees of columns because
// terminal cells are roughly twice as tall as they are wide.
func (m *Map) project(p placemark.Placemark, width, height int) (int, int) {
	span := 360 / math.Pow(2, float64(m.zoom-1))
	degPerCol := span / float64(width)
	degPerRow := degPerCol * 2
	col := width/2 + int(math.Round((p.Lon-m.lon)/degPerCol))
	row := height/2 - int(math.Round((p.Lat-m.lat)/degPerRow))
	return row, col
}

func (m *Map) legend() []string {
	if len(m.markers) == 0 {
		return nil
	}
	rows := make([][]string, 0, len(m.markers))
	for i, p := range m.markers {
		rows = append(rows, []string{string(symbol(i)), p.Title, formatCoord(p.Lat), formatCoord(p.Lon)})
	}
	return table.Format(rows, []table.Alignment{table.AlignLeft, table.AlignLeft, table.AlignRight, table.AlignRight})
}

func symbol(i int) rune {
	switch {
	case i < 9:
		return rune('1' + i)
	case i < 9+26:
		return rune('a' + i - 9)
	}
	return '*'
}

// formatCoord prints at most six decimals, dropping trailing zeros.
func formatCoord(v float64) string {
	s := strconv.FormatFloat(v, 'f', 6, 64)
	s = strings.TrimSuffix(strings.TrimRight(s, "0"), ".")
	if s == "-0" {
		return "0"
	}
	return s
}
