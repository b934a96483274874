package events

import "github.com/atomicstack/mapping-example/internal/logging"

type PlacemarkTracer struct{}

type MapTracer struct{}

var (
	Placemark = PlacemarkTracer{}
	Map       = MapTracer{}
)

func (PlacemarkTracer) Request(lat, lon float64) {
	logging.Trace("placemark.request", map[string]interface{}{"lat": lat, "lon": lon})
}

func (PlacemarkTracer) Result(count int) {
	logging.Trace("placemark.result", map[string]interface{}{"count": count})
}

func (PlacemarkTracer) Error(err error) {
	if err == nil {
		return
	}
	logging.Trace("placemark.error", map[string]interface{}{"error": err.Error()})
}

func (PlacemarkTracer) Served(requestID string, lat, lon float64, count int) {
	logging.Trace("placemark.served", map[string]interface{}{
		"request": requestID,
		"lat":     lat,
		"lon":     lon,
		"count":   count,
	})
}

func (MapTracer) Init(lat, lon float64, zoom int) {
	logging.Trace("map.init", map[string]interface{}{"lat": lat, "lon": lon, "zoom": zoom})
}

func (MapTracer) Markers(count int) {
	logging.Trace("map.markers", map[string]interface{}{"count": count})
}
