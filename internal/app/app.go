// Package app owns the objects shared by every UI event handler: the menu
// index, the navigation controller and the map collaborators.
package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/atomicstack/mapping-example/internal/backend"
	"github.com/atomicstack/mapping-example/internal/data/dispatcher"
	"github.com/atomicstack/mapping-example/internal/logging"
	"github.com/atomicstack/mapping-example/internal/menu"
	"github.com/atomicstack/mapping-example/internal/nav"
	"github.com/atomicstack/mapping-example/internal/placemark"
	"github.com/atomicstack/mapping-example/internal/state"
)

// LocalEndpoint selects the in-process point source instead of HTTP.
const LocalEndpoint = "local"

// Config describes user-provided application options.
type Config struct {
	Width      int
	Height     int
	ShowFooter bool
	Verbose    bool
	Endpoint   string
	Lat        float64
	Lon        float64
	Zoom       int
	MapPanel   string
	Refresh    time.Duration
	Menu       []menu.MenuEntry
}

// Context is built once at startup and handed to every event handler.
type Context struct {
	Config     Config
	Handlers   *menu.Registry
	Index      *menu.Index
	Nav        *nav.Controller
	Location   state.LocationStore
	Placemarks state.PlacemarkStore
	Dispatcher *dispatcher.Dispatcher
	Source     backend.Source
	Fetcher    *backend.Fetcher
}

// New builds the menu index and navigation state. A menu that fails to
// build (duplicate title, unknown element type) is returned as an error so
// the program does not start. Unresolved handlers are only logged.
func New(cfg Config, extra ...map[string]menu.Action) (*Context, error) {
	handlers := menu.BuildRegistry(extra...)
	index, err := menu.Build(cfg.Menu, handlers)
	if err != nil {
		return nil, fmt.Errorf("build menu: %w", err)
	}
	for _, w := range index.Warnings() {
		logging.Logger().Warn("menu handler unresolved", zap.Error(w))
	}
	placemarks := state.NewPlacemarkStore()
	return &Context{
		Config:     cfg,
		Handlers:   handlers,
		Index:      index,
		Nav:        nav.New(index),
		Location:   state.NewLocationStore(cfg.Lat, cfg.Lon, cfg.Zoom),
		Placemarks: placemarks,
		Dispatcher: dispatcher.New(placemarks),
		Source:     SourceFor(cfg.Endpoint),
	}, nil
}

// SourceFor picks the placemark source for endpoint.
func SourceFor(endpoint string) backend.Source {
	if strings.EqualFold(strings.TrimSpace(endpoint), LocalEndpoint) {
		return placemark.Local{}
	}
	return placemark.NewClient(endpoint, nil)
}

// StartFetcher launches the background fetch worker bound to ctx.
func (c *Context) StartFetcher(ctx context.Context) {
	if c.Fetcher != nil || c.Source == nil {
		return
	}
	c.Fetcher = backend.NewFetcher(ctx, c.Source, backend.DefaultMinInterval, c.Config.Refresh)
}

// Close stops the fetch worker, if any.
func (c *Context) Close() {
	if c.Fetcher != nil {
		c.Fetcher.Stop()
	}
}

// MenuContext snapshots what a button action needs to know.
func (c *Context) MenuContext() menu.Context {
	lat, lon := c.Location.Center()
	ctx := menu.Context{
		MapPanel: c.Config.MapPanel,
		Lat:      lat,
		Lon:      lon,
		Zoom:     c.Location.Zoom(),
	}
	if card := c.Nav.Active(); card != nil {
		ctx.Card = card.Title
	}
	return ctx
}
