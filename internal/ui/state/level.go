package state

import "github.com/atomicstack/mapping-example/internal/menu"

// RootID identifies the top-level menu list.
const RootID = "root"

// Level holds the cursor, filter and viewport of one on-screen list: the
// root menu titles, or the buttons of a card.
type Level struct {
	ID             string
	Title          string
	Items          []menu.Item
	Full           []menu.Item
	Filter         string
	FilterCursor   int
	Cursor         int
	LastCursor     int
	Card           *menu.Card
	ViewportOffset int
}

// NewLevel constructs a Level for items. card is nil for the root list.
func NewLevel(id, title string, items []menu.Item, card *menu.Card) *Level {
	l := &Level{
		ID:         id,
		Title:      title,
		LastCursor: -1,
		Card:       card,
	}
	l.UpdateItems(items)
	return l
}

// IsRoot reports whether the level lists menu titles rather than buttons.
func (l *Level) IsRoot() bool {
	return l.Card == nil
}

// IndexOf returns the index for a given item identifier.
func (l *Level) IndexOf(id string) int {
	if id == "" {
		return -1
	}
	for i, item := range l.Items {
		if item.ID == id {
			return i
		}
	}
	return -1
}

// Selected returns the item under the cursor.
func (l *Level) Selected() (menu.Item, bool) {
	if l.Cursor < 0 || l.Cursor >= len(l.Items) {
		return menu.Item{}, false
	}
	return l.Items[l.Cursor], true
}

// UpdateItems refreshes the level items, keeping the viewport when it still fits.
func (l *Level) UpdateItems(items []menu.Item) {
	prevOffset := l.ViewportOffset
	l.Full = CloneItems(items)
	l.applyFilter()
	if len(l.Items) == 0 {
		l.ViewportOffset = 0
		return
	}
	if prevOffset < 0 || prevOffset > len(l.Items)-1 {
		l.ViewportOffset = 0
		return
	}
	l.ViewportOffset = prevOffset
}

// CloneItems produces a shallow copy of the provided menu items.
func CloneItems(items []menu.Item) []menu.Item {
	dup := make([]menu.Item, len(items))
	copy(dup, items)
	return dup
}
