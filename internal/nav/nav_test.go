package nav

import (
	"errors"
	"reflect"
	"testing"

	"github.com/atomicstack/mapping-example/internal/menu"
)

func buildIndex(t *testing.T, entries []menu.MenuEntry) *menu.Index {
	t.Helper()
	idx, err := menu.Build(entries, menu.BuildRegistry())
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	return idx
}

func twoCards(t *testing.T) *menu.Index {
	return buildIndex(t, []menu.MenuEntry{
		{Title: "Map", Elements: []menu.ElementSpec{{Kind: menu.KindPanel, ID: "maps_div"}}},
		{Title: "About"},
	})
}

func TestControllerStartsAtRoot(t *testing.T) {
	c := New(twoCards(t))
	if c.State() != Root {
		t.Fatalf("expected root state, got %s", c.State())
	}
	if c.Active() != nil {
		t.Fatalf("expected no active card")
	}
	if c.IsBackAvailable() {
		t.Fatalf("expected back to be hidden at start")
	}
}

func TestSelectThenBackRestoresRoot(t *testing.T) {
	idx := twoCards(t)
	c := New(idx)
	if !c.SelectMenuItem("Map") {
		t.Fatalf("expected Map to be selected")
	}
	mapCard, _ := idx.Card("Map")
	if c.Active() != mapCard || c.State() != InCard {
		t.Fatalf("expected Map card active")
	}
	if !c.IsBackAvailable() {
		t.Fatalf("expected back to be visible after select")
	}
	if err := c.GoBack(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Active() != nil || c.State() != Root {
		t.Fatalf("expected root after back")
	}
	if c.IsBackAvailable() {
		t.Fatalf("expected back hidden after returning to root")
	}
}

func TestGoBackOnEmptyHistoryLeavesStateUnchanged(t *testing.T) {
	c := New(twoCards(t))
	err := c.GoBack()
	if !errors.Is(err, ErrEmptyHistory) {
		t.Fatalf("expected ErrEmptyHistory, got %v", err)
	}
	if c.State() != Root || c.Depth() != 0 || c.IsBackAvailable() {
		t.Fatalf("expected untouched root state")
	}
	if err := c.GoBack(); !errors.Is(err, ErrEmptyHistory) {
		t.Fatalf("expected repeated back to fail the same way, got %v", err)
	}
}

func TestSelectUnknownTitleIsNoop(t *testing.T) {
	c := New(twoCards(t))
	c.SelectMenuItem("Map")
	before := c.Active()
	if c.SelectMenuItem("Nowhere") {
		t.Fatalf("expected unknown title to be rejected")
	}
	if c.Active() != before || c.Depth() != 1 {
		t.Fatalf("expected state unchanged after unknown title")
	}
}

func TestBackAvailabilityTracksSelectsMinusBacks(t *testing.T) {
	c := New(twoCards(t))
	ops := []struct {
		selectTitle string
		want        bool
	}{
		{"Map", true},
		{"About", true},
		{"", true},
		{"", false},
		{"", false},
		{"About", true},
	}
	for i, op := range ops {
		if op.selectTitle != "" {
			c.SelectMenuItem(op.selectTitle)
		} else {
			_ = c.GoBack()
		}
		if got := c.IsBackAvailable(); got != op.want {
			t.Fatalf("step %d: expected back=%v, got %v", i, op.want, got)
		}
	}
}

func TestNestedSelectionUnwindsInOrder(t *testing.T) {
	idx := twoCards(t)
	c := New(idx)
	c.SelectMenuItem("Map")
	c.SelectMenuItem("About")
	c.SelectMenuItem("Map")
	if c.Depth() != 3 {
		t.Fatalf("expected depth 3, got %d", c.Depth())
	}
	if got := c.Breadcrumbs(); !reflect.DeepEqual(got, []string{"Map", "About", "Map"}) {
		t.Fatalf("unexpected breadcrumbs %v", got)
	}
	about, _ := idx.Card("About")
	mapCard, _ := idx.Card("Map")
	_ = c.GoBack()
	if c.Active() != about || !c.IsBackAvailable() || c.State() != InCard {
		t.Fatalf("expected About active with back visible")
	}
	_ = c.GoBack()
	if c.Active() != mapCard || !c.IsBackAvailable() {
		t.Fatalf("expected Map active with back visible")
	}
	_ = c.GoBack()
	if c.State() != Root || c.IsBackAvailable() {
		t.Fatalf("expected root with back hidden")
	}
}

func TestPlacesEndToEnd(t *testing.T) {
	entries, err := menu.ParseEntries([]byte("- title: Places\n  elements:\n    - ui_type: panel\n"))
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	idx := buildIndex(t, entries)
	if got := idx.Titles(); !reflect.DeepEqual(got, []string{"Places"}) {
		t.Fatalf("expected index keyed by Places, got %v", got)
	}
	card, _ := idx.Card("Places")
	if len(card.Elements) != 1 || card.Elements[0].Kind != menu.KindPanel {
		t.Fatalf("expected single panel card, got %#v", card.Elements)
	}

	c := New(idx)
	c.SelectMenuItem("Places")
	if c.State() != InCard || c.Active() != card || !c.IsBackAvailable() {
		t.Fatalf("expected Places card active with back visible")
	}
	if err := c.GoBack(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.State() != Root || c.IsBackAvailable() {
		t.Fatalf("expected root with back hidden")
	}
}

func TestOnChangeReportsTransitions(t *testing.T) {
	c := New(twoCards(t))
	var seen []Transition
	c.OnChange(func(tr Transition) { seen = append(seen, tr) })
	c.SelectMenuItem("Map")
	c.SelectMenuItem("Unknown")
	_ = c.GoBack()
	_ = c.GoBack()
	if len(seen) != 2 {
		t.Fatalf("expected 2 transitions, got %d", len(seen))
	}
	if seen[0].To == nil || seen[0].To.Title != "Map" || seen[0].Back {
		t.Fatalf("unexpected first transition %#v", seen[0])
	}
	if seen[1].To != nil || !seen[1].Back || seen[1].From.Title != "Map" {
		t.Fatalf("unexpected second transition %#v", seen[1])
	}
}

func TestNilIndexRejectsSelection(t *testing.T) {
	c := New(nil)
	if c.SelectMenuItem("Map") {
		t.Fatalf("expected selection to fail without an index")
	}
}
