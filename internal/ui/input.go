package ui

import (
	"unicode"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/atomicstack/mapping-example/internal/logging/events"
)

const filterPlaceholder = "(type to search)"

// caretMove is a filter-cursor movement bound to a key.
type caretMove struct {
	move func(*level) bool
	word bool
}

var caretMoves = map[string]caretMove{
	"ctrl+a": {move: (*level).MoveFilterCursorStart},
	"home":   {move: (*level).MoveFilterCursorStart},
	"ctrl+e": {move: (*level).MoveFilterCursorEnd},
	"end":    {move: (*level).MoveFilterCursorEnd},
	"left":   {move: (*level).MoveFilterCursorRuneBackward},
	"right":  {move: (*level).MoveFilterCursorRuneForward},
	"alt+b":  {move: (*level).MoveFilterCursorWordBackward, word: true},
	"alt+f":  {move: (*level).MoveFilterCursorWordForward, word: true},
}

func (m *Model) updateFilterCursorModel(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	m.filterCursor, cmd = m.filterCursor.Update(msg)
	return cmd
}

func (m *Model) noteFilterCursorChange(l *level, before int) {
	if l != nil && before != l.FilterCursorPos() {
		m.filterCursorDirty = true
	}
}

// handleTextInput applies key presses that edit the filter of the current
// level. It reports false for keys the filter does not consume, so they fall
// through to navigation. home/end only move the caret while a filter is typed.
func (m *Model) handleTextInput(msg tea.KeyMsg) (bool, tea.Cmd) {
	current := m.currentLevel()
	if current == nil {
		return false, nil
	}
	key := msg.String()
	if mv, ok := caretMoves[key]; ok {
		if (key == "home" || key == "end") && current.Filter == "" {
			return false, nil
		}
		before := current.FilterCursorPos()
		if !mv.move(current) {
			return false, nil
		}
		m.noteFilterCursorChange(current, before)
		if mv.word {
			events.Filter.CursorWord(current.ID, current.FilterCursor)
		} else {
			events.Filter.Cursor(current.ID, current.FilterCursor)
		}
		return true, nil
	}
	switch key {
	case "ctrl+u":
		if current.Filter == "" {
			return false, nil
		}
		m.editFilter(current, func(l *level) bool {
			l.SetFilter("", 0)
			return true
		})
		events.Filter.Cleared(current.ID)
		return true, nil
	case "ctrl+w":
		if !m.editFilter(current, (*level).DeleteFilterWordBackward) {
			return false, nil
		}
		events.Filter.WordBackspace(current.ID, current.Filter)
		return true, nil
	}
	switch msg.Type {
	case tea.KeyBackspace, tea.KeyCtrlH:
		if !m.editFilter(current, (*level).DeleteFilterRuneBackward) {
			return false, nil
		}
		events.Filter.Backspace(current.ID, current.Filter)
		return true, nil
	case tea.KeySpace:
		return m.appendToFilter(current, " "), nil
	case tea.KeyRunes:
		if msg.Alt || len(msg.Runes) == 0 {
			return false, nil
		}
		for _, r := range msg.Runes {
			if unicode.IsControl(r) || unicode.IsSpace(r) {
				return false, nil
			}
		}
		return m.appendToFilter(current, string(msg.Runes)), nil
	}
	return false, nil
}

func (m *Model) appendToFilter(current *level, text string) bool {
	if !m.editFilter(current, func(l *level) bool { return l.InsertFilterText(text) }) {
		return false
	}
	events.Filter.Append(current.ID, current.Filter)
	return true
}

// editFilter runs a filter mutation and, when it changed something, clears
// stale status and keeps the cursor in view.
func (m *Model) editFilter(current *level, edit func(*level) bool) bool {
	before := current.FilterCursorPos()
	if !edit(current) {
		return false
	}
	m.noteFilterCursorChange(current, before)
	m.forceClearInfo()
	m.errMsg = ""
	m.syncViewport(current)
	return true
}

// filterPrompt renders the search line with the caret drawn over the rune
// at the filter cursor (or over the placeholder's first rune when empty).
func (m *Model) filterPrompt() string {
	prompt := render(styles.FilterPrompt, "» ")
	current := m.currentLevel()
	if current == nil {
		return prompt
	}
	if styles.Cursor != nil {
		m.filterCursor.Style = styles.Cursor.Copy()
	}
	m.filterCursor.TextStyle = lipgloss.Style{}
	if styles.Filter != nil {
		m.filterCursor.TextStyle = styles.Filter.Copy()
	}
	if current.Filter == "" {
		runes := []rune(filterPlaceholder)
		if styles.FilterPlaceholder != nil {
			m.filterCursor.TextStyle = styles.FilterPlaceholder.Copy()
		}
		return prompt + m.renderFilterCursor(string(runes[0])) + render(styles.FilterPlaceholder, string(runes[1:]))
	}
	runes := []rune(current.Filter)
	pos := current.FilterCursorPos()
	caret, after := " ", ""
	if pos < len(runes) {
		caret = string(runes[pos])
		after = render(styles.Filter, string(runes[pos+1:]))
	}
	return prompt + render(styles.Filter, string(runes[:pos])) + m.renderFilterCursor(caret) + after
}

func (m *Model) renderFilterCursor(char string) string {
	if char == "" {
		char = " "
	}
	m.filterCursor.SetChar(char)
	base := m.filterCursor.TextStyle.Copy().Inline(true)
	if m.filterCursor.Blink {
		return base.Render(char)
	}
	if styles.Cursor != nil {
		return base.Inherit(styles.Cursor.Copy().Inline(true)).Blink(false).Render(char)
	}
	return base.Reverse(true).Render(char)
}

func render(style *lipgloss.Style, value string) string {
	if style == nil || value == "" {
		return value
	}
	return style.Render(value)
}
