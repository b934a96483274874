package mapview

import (
	"errors"
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"

	"github.com/atomicstack/mapping-example/internal/placemark"
)

func TestNewRejectsBadInput(t *testing.T) {
	if _, err := New(95, 0, 10); !errors.Is(err, placemark.ErrInvalidLocation) {
		t.Fatalf("expected ErrInvalidLocation, got %v", err)
	}
	if _, err := New(0, 0, 0); !errors.Is(err, ErrInvalidZoom) {
		t.Fatalf("expected ErrInvalidZoom, got %v", err)
	}
	if _, err := New(0, 0, 22); !errors.Is(err, ErrInvalidZoom) {
		t.Fatalf("expected ErrInvalidZoom, got %v", err)
	}
}

func TestRenderPlacesGridMarkers(t *testing.T) {
	m, err := New(10, 20, 15)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	m.Place(placemark.Grid(10, 20))
	out := ansi.Strip(m.Render(40, 20))
	lines := strings.Split(out, "\n")
	if len(lines) != 20 {
		t.Fatalf("expected 20 lines, got %d", len(lines))
	}
	grid := strings.Join(lines[:11], "\n")
	for _, sym := range []string{"1", "2", "3", "4", "5", "6", "7", "8", "9"} {
		if !strings.Contains(grid, sym) {
			t.Fatalf("expected marker %s on grid:\n%s", sym, grid)
		}
	}
	center := lines[5]
	if []rune(center)[20] != '1' {
		t.Fatalf("expected own placemark at the center, got %q", center)
	}
	if !strings.Contains(out, "Top Left") || !strings.Contains(out, "10.002") {
		t.Fatalf("expected legend entries, got:\n%s", out)
	}
}

func TestRenderTopLeftIsUpAndLeft(t *testing.T) {
	m, _ := New(10, 20, 15)
	m.Place([]placemark.Placemark{{Lat: 10.002, Lon: 19.998, Title: "Top Left"}})
	r, c := m.project(m.Markers()[0], 40, 11)
	if r >= 5 || c >= 20 {
		t.Fatalf("expected marker above and left of center, got row %d col %d", r, c)
	}
}

func TestRenderEmptyMap(t *testing.T) {
	m, _ := New(0, 0, 5)
	out := ansi.Strip(m.Render(5, 3))
	if strings.Count(out, "+") != 1 {
		t.Fatalf("expected a single crosshair, got:\n%s", out)
	}
	if m.Render(0, 10) != "" {
		t.Fatalf("expected empty render for zero width")
	}
}

func TestFormatCoord(t *testing.T) {
	cases := map[float64]string{
		10 + 0.002: "10.002",
		10.1254567: "10.125457",
		52.88:      "52.88",
		-7.96:      "-7.96",
		-0.0000001: "0",
		20:         "20",
	}
	for in, want := range cases {
		if got := formatCoord(in); got != want {
			t.Fatalf("formatCoord(%v): expected %q, got %q", in, want, got)
		}
	}
}
