package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/mapping-example/internal/menu"
)

// handleLocatePromptMsg opens the location form. A prompt without an initial
// value is seeded with the stored map center so the user edits rather than
// retypes it.
func (m *Model) handleLocatePromptMsg(msg tea.Msg) tea.Cmd {
	prompt, ok := msg.(menu.LocatePrompt)
	if !ok {
		return nil
	}
	m.forceClearInfo()
	m.errMsg = ""
	if prompt.Initial == "" {
		prompt.Initial = menu.FormatLocation(m.app.Location.Center())
	}
	if m.verbose {
		m.setInfo("Enter a new map center")
	}
	return m.startLocationForm(prompt)
}
