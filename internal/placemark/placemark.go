// Package placemark produces the fixed grid of labelled points returned by
// the point source, and the client used to fetch it over HTTP.
package placemark

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/atomicstack/mapping-example/internal/logging/events"
)

const (
	// DefaultLat and DefaultLon are used when a request omits a coordinate.
	DefaultLat = 52.88
	DefaultLon = -7.96

	// Offset is the spacing, in degrees, between neighbouring grid points.
	Offset = 0.002
)

// ErrInvalidLocation rejects coordinates outside the valid lat/lon ranges.
var ErrInvalidLocation = errors.New("invalid location")

// Placemark is a labelled geographic point.
type Placemark struct {
	Lat   float64 `json:"lat"`
	Lon   float64 `json:"lon"`
	Title string  `json:"title"`
}

// Request asks for the grid around an optional location.
type Request struct {
	Lat *float64 `json:"lat,omitempty"`
	Lon *float64 `json:"lon,omitempty"`
}

// Response carries the grid in its fixed order.
type Response struct {
	Points []Placemark `json:"points"`
}

type cell struct {
	title string
	dLat  float64
	dLon  float64
}

var layout = []cell{
	{"My Placemark!", 0, 0},
	{"Top Left", Offset, -Offset},
	{"Top Middle", Offset, 0},
	{"Top Right", Offset, Offset},
	{"Middle Left", 0, -Offset},
	{"Middle Right", 0, Offset},
	{"Bottom Left", -Offset, -Offset},
	{"Bottom Middle", -Offset, 0},
	{"Bottom Right", -Offset, Offset},
}

// NewRequest builds a request carrying both coordinates.
func NewRequest(lat, lon float64) Request {
	return Request{Lat: &lat, Lon: &lon}
}

// Resolve returns the request location with defaults applied.
func Resolve(req Request) (float64, float64) {
	lat, lon := DefaultLat, DefaultLon
	if req.Lat != nil {
		lat = *req.Lat
	}
	if req.Lon != nil {
		lon = *req.Lon
	}
	return lat, lon
}

// Validate checks that lat/lon fall inside [-90,90] and [-180,180].
func Validate(lat, lon float64) error {
	if math.IsNaN(lat) || lat < -90 || lat > 90 {
		return fmt.Errorf("%w: latitude %v out of range", ErrInvalidLocation, lat)
	}
	if math.IsNaN(lon) || lon < -180 || lon > 180 {
		return fmt.Errorf("%w: longitude %v out of range", ErrInvalidLocation, lon)
	}
	return nil
}

// Grid returns the input point followed by its eight neighbours, top row
// first, each row left to right. Neighbours sit exactly Offset away.
func Grid(lat, lon float64) []Placemark {
	points := make([]Placemark, 0, len(layout))
	for _, c := range layout {
		points = append(points, Placemark{
			Lat:   lat + c.dLat,
			Lon:   lon + c.dLon,
			Title: c.title,
		})
	}
	return points
}

// Points resolves, validates and expands a request.
func Points(req Request) (Response, error) {
	lat, lon := Resolve(req)
	if err := Validate(lat, lon); err != nil {
		return Response{}, err
	}
	return Response{Points: Grid(lat, lon)}, nil
}

// Local computes the grid in-process. It satisfies the same Fetch contract as
// Client so the UI can run without the service.
type Local struct{}

func (Local) Fetch(ctx context.Context, lat, lon float64) (Response, error) {
	if err := ctx.Err(); err != nil {
		return Response{}, err
	}
	events.Placemark.Request(lat, lon)
	resp, err := Points(NewRequest(lat, lon))
	if err != nil {
		events.Placemark.Error(err)
		return Response{}, err
	}
	events.Placemark.Result(len(resp.Points))
	return resp, nil
}
