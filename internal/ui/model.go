package ui

import (
	"context"
	"errors"
	"reflect"
	"time"

	"github.com/charmbracelet/bubbles/cursor"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/mapping-example/internal/app"
	"github.com/atomicstack/mapping-example/internal/mapview"
	"github.com/atomicstack/mapping-example/internal/menu"
	"github.com/atomicstack/mapping-example/internal/theme"
	"github.com/atomicstack/mapping-example/internal/ui/command"
	uistate "github.com/atomicstack/mapping-example/internal/ui/state"
)

type level = uistate.Level

type Mode int

const (
	ModeMenu Mode = iota
	ModeLocationForm
)

const (
	OrientationPortrait  = "portrait"
	OrientationLandscape = "landscape"
)

const (
	menuHeaderSeparator = "→"
	defaultRootTitle    = "Menu"
	backIndicator       = "‹ Back"
)

var styles = theme.Default()

type msgHandler func(tea.Msg) tea.Cmd

// Model implements the Bubble Tea model for the card menu and its map.
type Model struct {
	app *app.Context
	ctx context.Context

	root       *level
	cardLevels map[*menu.Card]*level

	mode         Mode
	locationForm *menu.LocationForm
	staticCursor bool

	mapView     *mapview.Map
	fetching    bool
	fetchFailed bool
	pendingShow *menu.Card

	errMsg      string
	infoMsg     string
	infoExpire  time.Time
	width       int
	height      int
	fixedWidth  bool
	fixedHeight bool
	orientation string
	showFooter  bool
	verbose     bool

	filterCursor      cursor.Model
	filterCursorDirty bool

	handlers map[reflect.Type]msgHandler
	bus      *command.Bus
}

// NewModel builds the UI around an application context. The root level lists
// the menu titles in definition order.
func NewModel(appCtx *app.Context) *Model {
	cfg := appCtx.Config
	m := &Model{
		app:         appCtx,
		ctx:         context.Background(),
		root:        uistate.NewLevel(uistate.RootID, defaultRootTitle, appCtx.Index.Items(), nil),
		cardLevels:  make(map[*menu.Card]*level),
		mode:        ModeMenu,
		orientation: OrientationPortrait,
		showFooter:  cfg.ShowFooter,
		verbose:     cfg.Verbose,
		bus:         command.New(),
	}
	if cfg.Width > 0 {
		m.width = cfg.Width
		m.fixedWidth = true
	}
	if cfg.Height > 0 {
		m.height = cfg.Height
		m.fixedHeight = true
	}
	m.orientation = orientationFor(m.width, m.height)
	m.syncViewport(m.root)
	c := cursor.New()
	if styles.Cursor != nil {
		c.Style = styles.Cursor.Copy()
	}
	if styles.Filter != nil {
		c.TextStyle = styles.Filter.Copy()
	}
	c.SetChar(" ")
	m.filterCursor = c
	appCtx.Nav.OnChange(m.noteTransition)
	m.registerHandlers()
	return m
}

// Init is part of the tea.Model interface.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{}
	if f := m.app.Fetcher; f != nil {
		cmds = append(cmds, waitForBackendEvent(f))
	}
	if cmd := m.filterCursor.Focus(); cmd != nil {
		cmds = append(cmds, cmd)
	}
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

// Update responds to Bubble Tea messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmds := make([]tea.Cmd, 0, 4)
	if cmd := m.updateFilterCursorModel(msg); cmd != nil {
		cmds = append(cmds, cmd)
	}
	if handled, cmd := m.handleActiveForm(msg); handled {
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
		return m, m.finishUpdate(cmds)
	}
	if handler := m.handlerFor(msg); handler != nil {
		if cmd := handler(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return m, m.finishUpdate(cmds)
}

// handleActiveForm routes key presses, and anything without a typed handler
// (cursor blinks), to the open form.
func (m *Model) handleActiveForm(msg tea.Msg) (bool, tea.Cmd) {
	if m.mode != ModeLocationForm {
		return false, nil
	}
	if _, isKey := msg.(tea.KeyMsg); !isKey && m.handlerFor(msg) != nil {
		return false, nil
	}
	return m.handleLocationForm(msg)
}

func (m *Model) registerHandlers() {
	m.handlers = map[reflect.Type]msgHandler{
		reflect.TypeOf(tea.KeyMsg{}):          m.handleKeyMsg,
		reflect.TypeOf(tea.WindowSizeMsg{}):   m.handleWindowSizeMsg,
		reflect.TypeOf(menu.ActionResult{}):   m.handleActionResultMsg,
		reflect.TypeOf(menu.MapShowMsg{}):     m.handleMapShowMsg,
		reflect.TypeOf(menu.MapRefreshMsg{}):  m.handleMapRefreshMsg,
		reflect.TypeOf(menu.LocatePrompt{}):   m.handleLocatePromptMsg,
		reflect.TypeOf(menu.LocationSetMsg{}): m.handleLocationSetMsg,
		reflect.TypeOf(backendEventMsg{}):     m.handleBackendEventMsg,
		reflect.TypeOf(backendDoneMsg{}):      m.handleBackendDoneMsg,
	}
}

func (m *Model) handlerFor(msg tea.Msg) msgHandler {
	if msg == nil || m.handlers == nil {
		return nil
	}
	t := reflect.TypeOf(msg)
	if handler, ok := m.handlers[t]; ok {
		return handler
	}
	if t.Kind() == reflect.Ptr {
		if handler, ok := m.handlers[t.Elem()]; ok {
			return handler
		}
	}
	return nil
}

func (m *Model) finishUpdate(cmds []tea.Cmd) tea.Cmd {
	if cmd := m.flushPageShow(); cmd != nil {
		cmds = append(cmds, cmd)
	}
	if m.filterCursorDirty {
		m.filterCursorDirty = false
		m.filterCursor.Blink = false
		if cmd := m.filterCursor.BlinkCmd(); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

// Run drives the program until the user quits or ctx is cancelled. The fetch
// worker lives exactly as long as the program.
func Run(ctx context.Context, appCtx *app.Context) error {
	appCtx.StartFetcher(ctx)
	defer appCtx.Close()
	model := NewModel(appCtx)
	model.ctx = ctx
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := program.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return err
	}
	return nil
}

func orientationFor(width, height int) string {
	if width > 2*height {
		return OrientationLandscape
	}
	return OrientationPortrait
}
