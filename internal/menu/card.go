package menu

import "strconv"

// Element is one built UI element of a card. Panels carry an optional ID for
// later lookup; buttons carry a label and, when bound, an action.
type Element struct {
	Kind    ElementKind
	ID      string
	Text    string
	Title   string
	Handler string
	Action  Action
}

// Bound reports whether pressing the element runs an action.
func (e Element) Bound() bool {
	return e.Kind == KindButton && e.Action != nil
}

// Label is the text shown for the element.
func (e Element) Label() string {
	switch {
	case e.Kind == KindButton && e.Text != "":
		return e.Text
	case e.Title != "":
		return e.Title
	case e.ID != "":
		return e.ID
	}
	return string(e.Kind)
}

// Card is the container built from one menu entry.
type Card struct {
	Title    string
	Elements []Element
}

// Panel finds a panel element by ID.
func (c *Card) Panel(id string) (Element, bool) {
	if c == nil || id == "" {
		return Element{}, false
	}
	for _, el := range c.Elements {
		if el.Kind == KindPanel && el.ID == id {
			return el, true
		}
	}
	return Element{}, false
}

// ButtonItems lists the card's buttons as selectable items. Item IDs are the
// element positions within the card.
func (c *Card) ButtonItems() []Item {
	if c == nil {
		return nil
	}
	items := make([]Item, 0, len(c.Elements))
	for i, el := range c.Elements {
		if el.Kind != KindButton {
			continue
		}
		items = append(items, Item{ID: strconv.Itoa(i), Label: el.Label()})
	}
	return items
}

// Element returns the element an item from ButtonItems refers to.
func (c *Card) Element(item Item) (Element, bool) {
	if c == nil {
		return Element{}, false
	}
	idx, err := strconv.Atoi(item.ID)
	if err != nil || idx < 0 || idx >= len(c.Elements) {
		return Element{}, false
	}
	return c.Elements[idx], true
}
