package dispatcher

import (
	"github.com/atomicstack/mapping-example/internal/backend"
	"github.com/atomicstack/mapping-example/internal/logging/events"
	"github.com/atomicstack/mapping-example/internal/state"
)

type Result struct {
	PlacemarksUpdated bool
	Err               error
}

type Dispatcher struct {
	placemarks state.PlacemarkStore
}

func New(p state.PlacemarkStore) *Dispatcher {
	return &Dispatcher{placemarks: p}
}

// Handle applies a fetcher event to the stores. Failed fetches keep the
// previous grid and record the error.
func (d *Dispatcher) Handle(evt backend.Event) Result {
	var res Result
	if evt.Err != nil {
		d.placemarks.SetErr(evt.Err)
		events.Placemark.Error(evt.Err)
		res.Err = evt.Err
		return res
	}
	switch evt.Kind {
	case backend.KindPlacemarks:
		d.placemarks.SetPoints(evt.Lat, evt.Lon, evt.Data.Points)
		events.Map.Markers(len(evt.Data.Points))
		res.PlacemarksUpdated = true
	}
	return res
}
