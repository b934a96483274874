package ui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/mapping-example/internal/backend"
)

func waitForBackendEvent(f *backend.Fetcher) tea.Cmd {
	return func() tea.Msg {
		evt, ok := <-f.Events()
		if !ok {
			return backendDoneMsg{}
		}
		return backendEventMsg{event: evt}
	}
}

// fetchCmd runs a single fetch outside the worker, for models without one.
func fetchCmd(ctx context.Context, source backend.Source, lat, lon float64) tea.Cmd {
	if ctx == nil {
		ctx = context.Background()
	}
	return func() tea.Msg {
		data, err := source.Fetch(ctx, lat, lon)
		return backendEventMsg{event: backend.Event{
			Kind: backend.KindPlacemarks,
			Lat:  lat,
			Lon:  lon,
			Data: data,
			Err:  err,
		}}
	}
}

type backendEventMsg struct {
	event backend.Event
}

type backendDoneMsg struct{}

func (m *Model) handleBackendEventMsg(msg tea.Msg) tea.Cmd {
	eventMsg, ok := msg.(backendEventMsg)
	if !ok {
		return nil
	}
	m.applyBackendEvent(eventMsg.event)
	if f := m.app.Fetcher; f != nil {
		return waitForBackendEvent(f)
	}
	return nil
}

func (m *Model) handleBackendDoneMsg(tea.Msg) tea.Cmd {
	m.app.Fetcher = nil
	m.fetching = false
	return nil
}

// applyBackendEvent stores the fetched grid and places it on the map when it
// belongs to the map's current center. Results for an older center are kept
// in the store only, and their failures never reach the status line.
func (m *Model) applyBackendEvent(evt backend.Event) {
	res := m.app.Dispatcher.Handle(evt)
	if m.staleEvent(evt) {
		return
	}
	m.fetching = false
	if res.Err != nil {
		m.fetchFailed = true
		m.errMsg = fmt.Sprintf("placemarks: %v", res.Err)
		return
	}
	if m.fetchFailed {
		m.fetchFailed = false
		m.errMsg = ""
	}
	if res.PlacemarksUpdated && m.mapView != nil {
		m.mapView.Place(m.app.Placemarks.Points())
	}
}

// staleEvent reports whether evt was fetched for a center other than the
// map's current one.
func (m *Model) staleEvent(evt backend.Event) bool {
	if m.mapView == nil {
		return false
	}
	lat, lon := m.mapView.Center()
	return lat != evt.Lat || lon != evt.Lon
}
