package ui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/mapping-example/internal/placemark"
)

func openLocationForm(t *testing.T, h *Harness) {
	t.Helper()
	enterRootItem(t, h, "Map")
	card := h.Model().currentLevel()
	card.Cursor = card.IndexOf("2")
	h.Send(tea.KeyMsg{Type: tea.KeyEnter})
	if h.Model().mode != ModeLocationForm {
		t.Fatalf("expected location form open")
	}
}

func TestLocationFormRecentersMap(t *testing.T) {
	h := newTestHarness(t, testConfig())
	openLocationForm(t, h)
	if got := h.Model().locationForm.Value(); got != "10, 20" {
		t.Fatalf("expected current center prefilled, got %q", got)
	}
	if !strings.Contains(plainView(h), "Map center (lat, lon)") {
		t.Fatalf("expected form title in view, got:\n%s", plainView(h))
	}

	h.Send(tea.KeyMsg{Type: tea.KeyCtrlU})
	h.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("11.5, 21.5")})
	h.Send(tea.KeyMsg{Type: tea.KeyEnter})

	m := h.Model()
	if m.mode != ModeMenu || m.locationForm != nil {
		t.Fatalf("expected form closed")
	}
	if lat, lon := m.app.Location.Center(); lat != 11.5 || lon != 21.5 {
		t.Fatalf("expected stored center 11.5,21.5, got %v,%v", lat, lon)
	}
	if lat, lon := m.mapView.Center(); lat != 11.5 || lon != 21.5 {
		t.Fatalf("expected map re-centered, got %v,%v", lat, lon)
	}
	found := false
	for _, p := range m.mapView.Markers() {
		if p == (placemark.Placemark{Lat: 11.5, Lon: 21.5, Title: "My Placemark!"}) {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected center placemark at new location, got %#v", m.mapView.Markers())
	}
}

func TestLocationFormRejectsMalformedInput(t *testing.T) {
	h := newTestHarness(t, testConfig())
	openLocationForm(t, h)
	h.Send(tea.KeyMsg{Type: tea.KeyCtrlU})
	h.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("north")})
	h.Send(tea.KeyMsg{Type: tea.KeyEnter})
	m := h.Model()
	if m.mode != ModeLocationForm {
		t.Fatalf("expected form to stay open")
	}
	if m.locationForm.Error() == "" {
		t.Fatalf("expected a form error")
	}
	h.Send(tea.KeyMsg{Type: tea.KeyEsc})
	if h.Model().mode != ModeMenu {
		t.Fatalf("expected esc to cancel the form")
	}
	if h.Quit() {
		t.Fatalf("expected cancel not to quit")
	}
	if lat, lon := h.Model().app.Location.Center(); lat != 10 || lon != 20 {
		t.Fatalf("expected center unchanged, got %v,%v", lat, lon)
	}
}

func TestLocationOutOfRangeIsReported(t *testing.T) {
	h := newTestHarness(t, testConfig())
	openLocationForm(t, h)
	h.Send(tea.KeyMsg{Type: tea.KeyCtrlU})
	h.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("95, 20")})
	h.Send(tea.KeyMsg{Type: tea.KeyEnter})
	m := h.Model()
	if !strings.Contains(m.errMsg, placemark.ErrInvalidLocation.Error()) {
		t.Fatalf("expected invalid location error, got %q", m.errMsg)
	}
	if lat, _ := m.app.Location.Center(); lat != 10 {
		t.Fatalf("expected center unchanged, got %v", lat)
	}
}
