package app

import (
	"errors"
	"testing"

	"github.com/atomicstack/mapping-example/internal/menu"
	"github.com/atomicstack/mapping-example/internal/placemark"
)

func testConfig(entries ...menu.MenuEntry) Config {
	return Config{
		Endpoint: LocalEndpoint,
		Lat:      10,
		Lon:      20,
		Zoom:     15,
		MapPanel: "maps_div",
		Menu:     entries,
	}
}

func TestNewBuildsIndexAndNavigation(t *testing.T) {
	ctx, err := New(testConfig(
		menu.MenuEntry{Title: "Map", Elements: []menu.ElementSpec{{Kind: menu.KindPanel, ID: "maps_div"}}},
		menu.MenuEntry{Title: "Places"},
	))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ctx.Index.Len() != 2 {
		t.Fatalf("expected 2 entries, got %d", ctx.Index.Len())
	}
	if ctx.Nav.IsBackAvailable() {
		t.Fatalf("expected fresh navigation state")
	}
	if _, ok := ctx.Source.(placemark.Local); !ok {
		t.Fatalf("expected local source, got %T", ctx.Source)
	}
	mc := ctx.MenuContext()
	if mc.Card != "" || mc.Lat != 10 || mc.Lon != 20 || mc.MapPanel != "maps_div" {
		t.Fatalf("unexpected menu context %#v", mc)
	}
	ctx.Nav.SelectMenuItem("Map")
	if got := ctx.MenuContext().Card; got != "Map" {
		t.Fatalf("expected active card in context, got %q", got)
	}
}

func TestNewRejectsDuplicateTitles(t *testing.T) {
	_, err := New(testConfig(menu.MenuEntry{Title: "Map"}, menu.MenuEntry{Title: "Map"}))
	var dupErr *menu.DuplicateMenuTitleError
	if !errors.As(err, &dupErr) {
		t.Fatalf("expected DuplicateMenuTitleError, got %v", err)
	}
}

func TestSourceForEndpoint(t *testing.T) {
	if _, ok := SourceFor("http://example.invalid").(*placemark.Client); !ok {
		t.Fatalf("expected HTTP client for URL endpoints")
	}
	if _, ok := SourceFor(" LOCAL ").(placemark.Local); !ok {
		t.Fatalf("expected local source regardless of case")
	}
}
