// Package nav tracks which card is on screen and the history of views that
// back navigation returns through.
package nav

import (
	"errors"

	"github.com/atomicstack/mapping-example/internal/logging/events"
	"github.com/atomicstack/mapping-example/internal/menu"
)

// ErrEmptyHistory is returned by GoBack when there is nothing to return to.
var ErrEmptyHistory = errors.New("navigation history is empty")

// State names the two kinds of view the controller can be in.
type State int

const (
	Root State = iota
	InCard
)

func (s State) String() string {
	if s == InCard {
		return "in-card"
	}
	return "root"
}

// Index is the lookup the controller navigates over; *menu.Index satisfies it.
type Index interface {
	Card(title string) (*menu.Card, bool)
}

// Transition describes one change of active view.
type Transition struct {
	From *menu.Card
	To   *menu.Card
	Back bool
}

// Controller owns the active card and the history stack. A nil card stands
// for the root menu list, both as the active view and inside history.
type Controller struct {
	index    Index
	active   *menu.Card
	history  []*menu.Card
	onChange []func(Transition)
}

// New returns a controller positioned at the root menu.
func New(index Index) *Controller {
	return &Controller{index: index}
}

// OnChange registers fn to run after every successful transition.
func (c *Controller) OnChange(fn func(Transition)) {
	if fn == nil {
		return
	}
	c.onChange = append(c.onChange, fn)
}

// SelectMenuItem activates the card for title, pushing the current view onto
// history. Unknown titles leave the controller untouched and report false.
func (c *Controller) SelectMenuItem(title string) bool {
	if c.index == nil {
		events.Nav.UnknownTitle(title)
		return false
	}
	card, ok := c.index.Card(title)
	if !ok || card == nil {
		events.Nav.UnknownTitle(title)
		return false
	}
	from := c.active
	c.history = append(c.history, c.active)
	c.active = card
	events.Nav.Select(title, len(c.history))
	c.notify(Transition{From: from, To: card})
	return true
}

// GoBack reactivates the most recent view in history.
func (c *Controller) GoBack() error {
	if len(c.history) == 0 {
		events.Nav.EmptyHistory()
		return ErrEmptyHistory
	}
	last := len(c.history) - 1
	from := c.active
	c.active = c.history[last]
	c.history[last] = nil
	c.history = c.history[:last]
	events.Nav.Back(titleOf(c.active), len(c.history))
	c.notify(Transition{From: from, To: c.active, Back: true})
	return nil
}

// IsBackAvailable reports whether history holds at least one view.
func (c *Controller) IsBackAvailable() bool {
	return len(c.history) > 0
}

func (c *Controller) State() State {
	if c.active == nil {
		return Root
	}
	return InCard
}

// Active returns the active card, or nil at the root menu.
func (c *Controller) Active() *menu.Card {
	return c.active
}

// Depth is the number of views held in history.
func (c *Controller) Depth() int {
	return len(c.history)
}

// Breadcrumbs lists the card titles from history followed by the active card.
// Root entries are skipped.
func (c *Controller) Breadcrumbs() []string {
	crumbs := make([]string, 0, len(c.history)+1)
	for _, card := range c.history {
		if card != nil {
			crumbs = append(crumbs, card.Title)
		}
	}
	if c.active != nil {
		crumbs = append(crumbs, c.active.Title)
	}
	return crumbs
}

func (c *Controller) notify(t Transition) {
	for _, fn := range c.onChange {
		fn(t)
	}
}

func titleOf(card *menu.Card) string {
	if card == nil {
		return ""
	}
	return card.Title
}
