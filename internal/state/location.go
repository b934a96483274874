package state

// LocationStore tracks the map center and zoom the UI is showing.
type LocationStore interface {
	Center() (float64, float64)
	SetCenter(lat, lon float64)
	Zoom() int
	SetZoom(int)
}

type locationStore struct {
	lat  float64
	lon  float64
	zoom int
}

func NewLocationStore(lat, lon float64, zoom int) LocationStore {
	return &locationStore{lat: lat, lon: lon, zoom: zoom}
}

func (l *locationStore) Center() (float64, float64) {
	return l.lat, l.lon
}

func (l *locationStore) SetCenter(lat, lon float64) {
	l.lat = lat
	l.lon = lon
}

func (l *locationStore) Zoom() int {
	return l.zoom
}

func (l *locationStore) SetZoom(zoom int) {
	l.zoom = zoom
}
