package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/mapping-example/internal/menu"
)

func (m *Model) handleLocationForm(msg tea.Msg) (bool, tea.Cmd) {
	if m.locationForm == nil {
		m.mode = ModeMenu
		return false, nil
	}
	cmd, done, cancel := m.locationForm.Update(msg)
	if cancel || done {
		m.locationForm = nil
		m.mode = ModeMenu
	}
	return true, cmd
}

func (m *Model) startLocationForm(prompt menu.LocatePrompt) tea.Cmd {
	m.locationForm = menu.NewLocationForm(prompt)
	m.mode = ModeLocationForm
	if m.staticCursor {
		return m.locationForm.SetCursorMode(cursor.CursorStatic)
	}
	return nil
}

func (m *Model) viewLocationFormWithHeader(header string) string {
	lines := []string{}
	if header != "" {
		lines = append(lines, header)
	}
	lines = append(lines, m.locationForm.Title(), "", m.locationForm.InputView())
	if err := m.locationForm.Error(); err != "" {
		lines = append(lines, "", styles.Error.Render(err))
	}
	lines = append(lines, "", m.locationForm.Help())
	return strings.Join(lines, "\n")
}
