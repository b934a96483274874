package ui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/mapping-example/internal/logging"
	"github.com/atomicstack/mapping-example/internal/logging/events"
	"github.com/atomicstack/mapping-example/internal/mapview"
	"github.com/atomicstack/mapping-example/internal/menu"
	"github.com/atomicstack/mapping-example/internal/placemark"
)

func (m *Model) handleActionResultMsg(msg tea.Msg) tea.Cmd {
	result, ok := msg.(menu.ActionResult)
	if !ok {
		return nil
	}
	if result.Err != nil {
		m.errMsg = result.Err.Error()
		m.forceClearInfo()
		events.Action.Error(result.Err)
		return nil
	}
	if result.Info != "" {
		m.setInfo(result.Info)
	} else {
		m.forceClearInfo()
	}
	events.Action.Success(result.Info)
	return nil
}

func (m *Model) handleMapShowMsg(msg tea.Msg) tea.Cmd {
	if _, ok := msg.(menu.MapShowMsg); !ok {
		return nil
	}
	if !m.initMap() {
		return nil
	}
	return m.requestPlacemarks()
}

func (m *Model) handleMapRefreshMsg(msg tea.Msg) tea.Cmd {
	if _, ok := msg.(menu.MapRefreshMsg); !ok {
		return nil
	}
	if m.mapView == nil && !m.initMap() {
		return nil
	}
	if m.verbose {
		m.setInfo("Refreshing placemarks")
	}
	return m.requestPlacemarks()
}

func (m *Model) handleLocationSetMsg(msg tea.Msg) tea.Cmd {
	update, ok := msg.(menu.LocationSetMsg)
	if !ok {
		return nil
	}
	if err := placemark.Validate(update.Lat, update.Lon); err != nil {
		m.errMsg = err.Error()
		events.Action.Error(err)
		return nil
	}
	m.app.Location.SetCenter(update.Lat, update.Lon)
	events.Action.Success(menu.FormatLocation(update.Lat, update.Lon))
	if !m.initMap() {
		return nil
	}
	return m.requestPlacemarks()
}

// initMap (re)creates the map widget at the stored center and zoom. Failures
// land on the status line; the card stays usable without a map.
func (m *Model) initMap() bool {
	lat, lon := m.app.Location.Center()
	mv, err := mapview.New(lat, lon, m.app.Location.Zoom())
	if err != nil {
		logging.Error(err)
		m.mapView = nil
		m.errMsg = fmt.Sprintf("map init failed: %v", err)
		return false
	}
	m.mapView = mv
	if m.app.Placemarks.Loaded() {
		if plat, plon := m.app.Placemarks.Center(); plat == lat && plon == lon {
			mv.Place(m.app.Placemarks.Points())
		}
	}
	return true
}

// requestPlacemarks asks for the grid around the map center. With a running
// fetch worker the result arrives on its event channel; otherwise the fetch
// runs as a one-shot command.
func (m *Model) requestPlacemarks() tea.Cmd {
	if m.mapView == nil {
		return nil
	}
	lat, lon := m.mapView.Center()
	if f := m.app.Fetcher; f != nil {
		m.fetching = true
		f.Request(lat, lon)
		return nil
	}
	if m.app.Source == nil {
		return nil
	}
	m.fetching = true
	return fetchCmd(m.ctx, m.app.Source, lat, lon)
}
