package menu

import (
	"strings"
	"unicode"

	tea "github.com/charmbracelet/bubbletea"
)

// Item represents a selectable menu entry.
type Item struct {
	ID    string
	Label string
}

// Context carries runtime data handed to button actions.
type Context struct {
	Card     string
	MapPanel string
	Lat      float64
	Lon      float64
	Zoom     int
}

// Action runs when a bound button is pressed.
type Action func(Context, Item) tea.Cmd

// ActionResult communicates the outcome of executing a menu action.
type ActionResult struct {
	Info string
	Err  error
}

// MapShowMsg asks the UI to initialise the map widget and populate it.
type MapShowMsg struct {
	Context Context
}

// MapRefreshMsg asks the UI to fetch placemarks for the current map center.
type MapRefreshMsg struct {
	Context Context
}

// LocatePrompt requests interactive input of a new map center.
type LocatePrompt struct {
	Context Context
	Initial string
}

// BuiltinHandlers maps dotted handler keys to the actions every build knows.
func BuiltinHandlers() map[string]Action {
	return map[string]Action{
		"map.show":    MapShowAction,
		"map.refresh": MapRefreshAction,
		"map.locate":  MapLocateAction,
		"app.quit":    QuitAction,
	}
}

func MapShowAction(ctx Context, _ Item) tea.Cmd {
	return func() tea.Msg { return MapShowMsg{Context: ctx} }
}

func MapRefreshAction(ctx Context, _ Item) tea.Cmd {
	return func() tea.Msg { return MapRefreshMsg{Context: ctx} }
}

func MapLocateAction(ctx Context, _ Item) tea.Cmd {
	return func() tea.Msg {
		return LocatePrompt{Context: ctx, Initial: FormatLocation(ctx.Lat, ctx.Lon)}
	}
}

func QuitAction(Context, Item) tea.Cmd {
	return tea.Quit
}

// ItemsFromTitles turns menu titles into list items keyed by title.
func ItemsFromTitles(titles []string) []Item {
	items := make([]Item, 0, len(titles))
	for _, title := range titles {
		items = append(items, Item{ID: title, Label: prettyLabel(title)})
	}
	return items
}

func prettyLabel(id string) string {
	if id == "" {
		return id
	}
	parts := strings.FieldsFunc(id, func(r rune) bool {
		return r == '-' || r == '_' || unicode.IsSpace(r)
	})
	return strings.Join(parts, " ")
}
