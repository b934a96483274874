package ui

import (
	"fmt"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/mapping-example/internal/menu"
)

func TestRootPaginationRespectsViewport(t *testing.T) {
	cfg := testConfig()
	cfg.Menu = make([]menu.MenuEntry, 10)
	for i := range cfg.Menu {
		cfg.Menu[i] = menu.MenuEntry{Title: fmt.Sprintf("place-%02d", i+1)}
	}
	h := newTestHarness(t, cfg)
	h.Send(tea.WindowSizeMsg{Width: 40, Height: 8})

	view := plainView(h)
	if strings.Contains(view, "place-07") {
		t.Fatalf("expected place-07 outside the initial viewport, view =\n%s", view)
	}
	for i := 0; i < 7; i++ {
		h.Send(tea.KeyMsg{Type: tea.KeyDown})
	}
	view = plainView(h)
	if !strings.Contains(view, "place-08") {
		t.Fatalf("expected place-08 visible after scrolling, view =\n%s", view)
	}
	if strings.Contains(view, "place-01") {
		t.Fatalf("expected place-01 scrolled out, view =\n%s", view)
	}
	if n := len(strings.Split(view, "\n")); n > 8 {
		t.Fatalf("expected at most 8 rows, got %d", n)
	}
}

func TestEndToEndMapSession(t *testing.T) {
	h := newTestHarness(t, testConfig())
	h.Send(tea.WindowSizeMsg{Width: 120, Height: 30})

	enterRootItem(t, h, "Map")
	if n := len(h.Model().mapView.Markers()); n != 9 {
		t.Fatalf("expected 9 markers, got %d", n)
	}
	h.Send(tea.KeyMsg{Type: tea.KeyEsc})
	enterRootItem(t, h, "About")
	if strings.Contains(plainView(h), "╭") {
		t.Fatalf("expected no map panel on the About card")
	}
	h.Send(tea.KeyMsg{Type: tea.KeyEsc})
	h.Send(tea.KeyMsg{Type: tea.KeyEsc})
	if !h.Quit() {
		t.Fatalf("expected esc at root to quit")
	}
}
