package ui

import (
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/mapping-example/internal/logging/events"
	"github.com/atomicstack/mapping-example/internal/menu"
	"github.com/atomicstack/mapping-example/internal/nav"
	"github.com/atomicstack/mapping-example/internal/ui/command"
	uistate "github.com/atomicstack/mapping-example/internal/ui/state"
)

func (m *Model) handleEscapeKey() tea.Cmd {
	if err := m.app.Nav.GoBack(); err != nil {
		if errors.Is(err, nav.ErrEmptyHistory) {
			return tea.Quit
		}
		m.errMsg = err.Error()
		return nil
	}
	m.syncViewport(m.currentLevel())
	m.errMsg = ""
	m.forceClearInfo()
	return nil
}

func (m *Model) handleEnterKey() tea.Cmd {
	current := m.currentLevel()
	if current == nil || len(current.Items) == 0 {
		return nil
	}
	item, ok := current.Selected()
	if !ok {
		return nil
	}
	events.UI.MenuEnter(current.ID, item.ID, item.Label, current.Filter)
	beforeCursor := current.FilterCursorPos()
	current.SetFilter("", 0)
	m.noteFilterCursorChange(current, beforeCursor)
	m.errMsg = ""
	m.forceClearInfo()
	if current.IsRoot() {
		if !m.app.Nav.SelectMenuItem(item.ID) {
			m.setInfo(fmt.Sprintf("No card for %s", item.Label))
		}
		return nil
	}
	return m.pressButton(current.Card, item)
}

// pressButton runs the action bound to a card button. Unbound buttons are
// inert and only report that.
func (m *Model) pressButton(card *menu.Card, item menu.Item) tea.Cmd {
	el, ok := card.Element(item)
	if !ok {
		return nil
	}
	events.UI.ButtonPress(card.Title, el.Label(), el.Bound())
	if !el.Bound() {
		m.setInfo(fmt.Sprintf("%s has no action", el.Label()))
		return nil
	}
	return m.bus.Execute(m.app.MenuContext(), command.Request{
		ID:      el.Handler,
		Label:   el.Label(),
		Handler: el.Action,
		Item:    item,
	})
}

func (m *Model) moveCursorUp() {
	if current := m.currentLevel(); current != nil {
		if current.MoveCursorUp() {
			events.UI.MenuCursor(current.ID, current.Cursor)
		}
		m.syncViewport(current)
	}
}

func (m *Model) moveCursorDown() {
	if current := m.currentLevel(); current != nil {
		if current.MoveCursorDown() {
			events.UI.MenuCursor(current.ID, current.Cursor)
		}
		m.syncViewport(current)
	}
}

func (m *Model) moveCursorPageUp() {
	if current := m.currentLevel(); current != nil {
		if moved := current.MoveCursorPageUp(m.maxVisibleItems()); moved {
			events.UI.MenuCursor(current.ID, current.Cursor)
		}
		m.syncViewport(current)
	}
}

func (m *Model) moveCursorPageDown() {
	if current := m.currentLevel(); current != nil {
		if moved := current.MoveCursorPageDown(m.maxVisibleItems()); moved {
			events.UI.MenuCursor(current.ID, current.Cursor)
		}
		m.syncViewport(current)
	}
}

func (m *Model) moveCursorHome() {
	if current := m.currentLevel(); current != nil {
		if moved := current.MoveCursorHome(); moved {
			events.UI.MenuCursor(current.ID, current.Cursor)
		}
		m.syncViewport(current)
	}
}

func (m *Model) moveCursorEnd() {
	if current := m.currentLevel(); current != nil {
		if moved := current.MoveCursorEnd(); moved {
			events.UI.MenuCursor(current.ID, current.Cursor)
		}
		m.syncViewport(current)
	}
}

func (m *Model) syncViewport(l *level) {
	if l == nil {
		return
	}
	l.EnsureCursorVisible(m.maxVisibleItems())
}

func (m *Model) handleKeyMsg(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	if m.mode != ModeMenu {
		return nil
	}
	if handled, cmd := m.handleTextInput(keyMsg); handled {
		return cmd
	}
	switch keyMsg.String() {
	case "ctrl+c", "q":
		return tea.Quit
	case "esc":
		return m.handleEscapeKey()
	case "enter":
		return m.handleEnterKey()
	case "up":
		m.moveCursorUp()
	case "down":
		m.moveCursorDown()
	case "pgup":
		m.moveCursorPageUp()
	case "pgdown":
		m.moveCursorPageDown()
	case "home":
		m.moveCursorHome()
	case "end":
		m.moveCursorEnd()
	}
	return nil
}

// currentLevel is the root title list, or the button list of the active card.
func (m *Model) currentLevel() *level {
	card := m.app.Nav.Active()
	if card == nil {
		return m.root
	}
	return m.levelFor(card)
}

func (m *Model) levelFor(card *menu.Card) *level {
	if lvl, ok := m.cardLevels[card]; ok {
		return lvl
	}
	lvl := uistate.NewLevel(card.Title, card.Title, card.ButtonItems(), card)
	m.cardLevels[card] = lvl
	m.syncViewport(lvl)
	return lvl
}

// noteTransition records a newly activated card so page-show runs once the
// current message has been handled.
func (m *Model) noteTransition(t nav.Transition) {
	m.pendingShow = t.To
}

func (m *Model) flushPageShow() tea.Cmd {
	card := m.pendingShow
	m.pendingShow = nil
	if card == nil {
		return nil
	}
	m.levelFor(card)
	return m.pageShow(card)
}

// pageShow initialises the map for cards hosting the map panel and asks for
// the placemarks around the current center.
func (m *Model) pageShow(card *menu.Card) tea.Cmd {
	panel := m.app.Config.MapPanel
	if _, ok := card.Panel(panel); !ok {
		return nil
	}
	events.UI.PageShow(card.Title, panel)
	if !m.initMap() {
		return nil
	}
	return m.requestPlacemarks()
}

// activeHasMap reports whether the card on screen hosts the map panel.
func (m *Model) activeHasMap() bool {
	_, ok := m.app.Nav.Active().Panel(m.app.Config.MapPanel)
	return ok
}
