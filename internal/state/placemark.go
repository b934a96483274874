package state

import "github.com/atomicstack/mapping-example/internal/placemark"

// PlacemarkStore holds the most recent grid fetched from the point source.
type PlacemarkStore interface {
	Points() []placemark.Placemark
	SetPoints(lat, lon float64, points []placemark.Placemark)
	Center() (float64, float64)
	Loaded() bool
	Err() error
	SetErr(error)
}

type placemarkStore struct {
	points []placemark.Placemark
	lat    float64
	lon    float64
	loaded bool
	err    error
}

func NewPlacemarkStore() PlacemarkStore {
	return &placemarkStore{}
}

func (p *placemarkStore) Points() []placemark.Placemark {
	return clonePlacemarks(p.points)
}

// SetPoints replaces the grid and clears any previous fetch error.
func (p *placemarkStore) SetPoints(lat, lon float64, points []placemark.Placemark) {
	p.points = clonePlacemarks(points)
	p.lat = lat
	p.lon = lon
	p.loaded = true
	p.err = nil
}

func (p *placemarkStore) Center() (float64, float64) {
	return p.lat, p.lon
}

func (p *placemarkStore) Loaded() bool {
	return p.loaded
}

func (p *placemarkStore) Err() error {
	return p.err
}

func (p *placemarkStore) SetErr(err error) {
	p.err = err
}

func clonePlacemarks(points []placemark.Placemark) []placemark.Placemark {
	if len(points) == 0 {
		return nil
	}
	dup := make([]placemark.Placemark, len(points))
	copy(dup, points)
	return dup
}
