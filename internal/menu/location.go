package menu

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

var errLocationFormat = errors.New("expected \"lat, lon\"")

// LocationSetMsg carries a new map center chosen by the user.
type LocationSetMsg struct {
	Context Context
	Lat     float64
	Lon     float64
}

// FormatLocation renders coordinates the way LocationForm expects them.
func FormatLocation(lat, lon float64) string {
	return strconv.FormatFloat(lat, 'f', -1, 64) + ", " + strconv.FormatFloat(lon, 'f', -1, 64)
}

// ParseLocation reads "lat, lon" (comma or whitespace separated).
func ParseLocation(raw string) (float64, float64, error) {
	fields := strings.FieldsFunc(raw, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})
	if len(fields) != 2 {
		return 0, 0, errLocationFormat
	}
	lat, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return 0, 0, fmt.Errorf("latitude: %w", err)
	}
	lon, err := strconv.ParseFloat(fields[1], 64)
	if err != nil {
		return 0, 0, fmt.Errorf("longitude: %w", err)
	}
	return lat, lon, nil
}

// LocationForm collects a new map center.
type LocationForm struct {
	input textinput.Model
	ctx   Context
	help  string
	title string
	err   string
}

func NewLocationForm(prompt LocatePrompt) *LocationForm {
	ti := textinput.New()
	ti.Placeholder = "52.88, -7.96"
	ti.CharLimit = 48
	if prompt.Initial != "" {
		ti.SetValue(prompt.Initial)
		ti.CursorEnd()
	}
	ti.Focus()
	return &LocationForm{
		input: ti,
		ctx:   prompt.Context,
		help:  "Press Enter to move the map. Esc to cancel.",
		title: "Map center (lat, lon)",
	}
}

func (f *LocationForm) Context() Context  { return f.ctx }
func (f *LocationForm) Title() string     { return f.title }
func (f *LocationForm) Help() string      { return f.help }
func (f *LocationForm) Error() string     { return f.err }
func (f *LocationForm) Value() string     { return strings.TrimSpace(f.input.Value()) }
func (f *LocationForm) InputView() string { return f.input.View() }

// SetCursorMode switches the input caret between blinking and static.
func (f *LocationForm) SetCursorMode(mode cursor.Mode) tea.Cmd {
	return f.input.Cursor.SetMode(mode)
}

// Update returns the follow-up command plus done/cancel flags.
func (f *LocationForm) Update(msg tea.Msg) (tea.Cmd, bool, bool) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "ctrl+u":
			if f.input.Value() != "" {
				f.input.SetValue("")
				f.input.CursorStart()
			}
			f.err = ""
			return nil, false, false
		}
		switch key.Type {
		case tea.KeyEsc:
			return nil, false, true
		case tea.KeyEnter:
			lat, lon, err := ParseLocation(f.Value())
			if err != nil {
				f.err = err.Error()
				return nil, false, false
			}
			ctx := f.ctx
			return func() tea.Msg {
				return LocationSetMsg{Context: ctx, Lat: lat, Lon: lon}
			}, true, false
		}
	}
	f.err = ""
	updated, cmd := f.input.Update(msg)
	f.input = updated
	return cmd, false, false
}
