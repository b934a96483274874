package ui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func TestHandleTextInputAppendsRunes(t *testing.T) {
	h := newTestHarness(t, testConfig())
	m := h.Model()
	handled, _ := m.handleTextInput(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("abo")})
	if !handled {
		t.Fatalf("expected key press to be handled")
	}
	current := m.currentLevel()
	if current.Filter != "abo" {
		t.Fatalf("expected filter 'abo', got %q", current.Filter)
	}
	if pos := current.FilterCursorPos(); pos != 3 {
		t.Fatalf("expected cursor at end, got %d", pos)
	}
}

func TestHandleTextInputCursorMovement(t *testing.T) {
	m := newTestHarness(t, testConfig()).Model()
	current := m.currentLevel()
	current.SetFilter("map view", len("map view"))

	steps := []struct {
		key  tea.KeyMsg
		want int
	}{
		{tea.KeyMsg{Type: tea.KeyLeft}, 7},
		{tea.KeyMsg{Type: tea.KeyRight}, 8},
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("b"), Alt: true}, 4},
		{tea.KeyMsg{Type: tea.KeyCtrlA}, 0},
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("f"), Alt: true}, 4},
		{tea.KeyMsg{Type: tea.KeyEnd}, 8},
	}
	for _, step := range steps {
		if handled, _ := m.handleTextInput(step.key); !handled {
			t.Fatalf("%s: expected key to be handled", step.key)
		}
		if pos := current.FilterCursorPos(); pos != step.want {
			t.Fatalf("%s: expected cursor %d, got %d", step.key, step.want, pos)
		}
	}
}

func TestHomeEndFallThroughWithoutFilter(t *testing.T) {
	h := newTestHarness(t, testConfig())
	h.Send(tea.KeyMsg{Type: tea.KeyEnd})
	if got := h.Model().root.Cursor; got != 2 {
		t.Fatalf("expected end to move the list cursor, got %d", got)
	}
	h.Send(tea.KeyMsg{Type: tea.KeyHome})
	if got := h.Model().root.Cursor; got != 0 {
		t.Fatalf("expected home to move the list cursor, got %d", got)
	}
}

func TestBackspaceAndClearFilter(t *testing.T) {
	h := newTestHarness(t, testConfig())
	h.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("zz")})
	root := h.Model().root
	if len(root.Items) != 0 {
		t.Fatalf("expected no matches, got %#v", root.Items)
	}
	if !strings.Contains(plainView(h), `No matches for "zz"`) {
		t.Fatalf("expected empty-match notice, got:\n%s", plainView(h))
	}
	h.Send(tea.KeyMsg{Type: tea.KeyBackspace})
	if root.Filter != "z" {
		t.Fatalf("expected one rune removed, got %q", root.Filter)
	}
	h.Send(tea.KeyMsg{Type: tea.KeyCtrlU})
	if root.Filter != "" || len(root.Items) != 3 {
		t.Fatalf("expected filter cleared, got %q with %d items", root.Filter, len(root.Items))
	}
}

func TestFilterPromptPlaceholder(t *testing.T) {
	m := newTestHarness(t, testConfig()).Model()
	prompt := m.filterPrompt()
	if !strings.Contains(prompt, "type to search") {
		t.Fatalf("expected placeholder in prompt, got %q", prompt)
	}
}
