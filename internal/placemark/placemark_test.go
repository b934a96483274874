package placemark

import (
	"context"
	"errors"
	"math"
	"testing"
)

func near(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestGridAroundTenTwenty(t *testing.T) {
	points := Grid(10, 20)
	if len(points) != 9 {
		t.Fatalf("expected 9 points, got %d", len(points))
	}
	want := []Placemark{
		{Lat: 10, Lon: 20, Title: "My Placemark!"},
		{Lat: 10.002, Lon: 19.998, Title: "Top Left"},
	}
	for _, w := range want {
		found := false
		for _, p := range points {
			if p.Title == w.Title && near(p.Lat, w.Lat) && near(p.Lon, w.Lon) {
				found = true
				break
			}
		}
		if !found {
			t.Fatalf("expected grid to contain %#v, got %#v", w, points)
		}
	}
}

func TestGridKeepsInputPrecision(t *testing.T) {
	lat, lon := 10.1234567, 20.7654321
	points := Grid(lat, lon)
	if points[0].Lat != lat || points[0].Lon != lon {
		t.Fatalf("expected center %v,%v unchanged, got %#v", lat, lon, points[0])
	}
	if !near(points[1].Lat, 10.1254567) || !near(points[1].Lon, 20.7634321) {
		t.Fatalf("expected top left at 10.1254567,20.7634321, got %v,%v", points[1].Lat, points[1].Lon)
	}
	for i, p := range points[1:] {
		c := layout[i+1]
		if !near(p.Lat-lat, c.dLat) || !near(p.Lon-lon, c.dLon) {
			t.Fatalf("%s: expected offset %v,%v from center, got %v,%v",
				p.Title, c.dLat, c.dLon, p.Lat-lat, p.Lon-lon)
		}
	}
}

func TestGridOrder(t *testing.T) {
	points := Grid(0, 0)
	titles := []string{
		"My Placemark!", "Top Left", "Top Middle", "Top Right",
		"Middle Left", "Middle Right",
		"Bottom Left", "Bottom Middle", "Bottom Right",
	}
	for i, title := range titles {
		if points[i].Title != title {
			t.Fatalf("position %d: expected %q, got %q", i, title, points[i].Title)
		}
	}
	if points[3].Lat != 0.002 || points[3].Lon != 0.002 {
		t.Fatalf("expected top right at +d,+d, got %#v", points[3])
	}
	if points[7].Lat != -0.002 || points[7].Lon != 0 {
		t.Fatalf("expected bottom middle at -d,0, got %#v", points[7])
	}
}

func TestResolveAppliesDefaults(t *testing.T) {
	lat, lon := Resolve(Request{})
	if lat != DefaultLat || lon != DefaultLon {
		t.Fatalf("expected defaults, got %v,%v", lat, lon)
	}
	only := 1.5
	lat, lon = Resolve(Request{Lat: &only})
	if lat != 1.5 || lon != DefaultLon {
		t.Fatalf("expected partial default, got %v,%v", lat, lon)
	}
}

func TestPointsRejectsOutOfRange(t *testing.T) {
	cases := []Request{NewRequest(91, 0), NewRequest(-90.5, 0), NewRequest(0, 180.1), NewRequest(0, -181)}
	for _, req := range cases {
		if _, err := Points(req); !errors.Is(err, ErrInvalidLocation) {
			t.Fatalf("expected ErrInvalidLocation for %v,%v, got %v", *req.Lat, *req.Lon, err)
		}
	}
	resp, err := Points(NewRequest(90, -180))
	if err != nil {
		t.Fatalf("expected boundary values to pass, got %v", err)
	}
	if len(resp.Points) != 9 {
		t.Fatalf("expected 9 points, got %d", len(resp.Points))
	}
}

func TestLocalFetch(t *testing.T) {
	resp, err := Local{}.Fetch(context.Background(), 10, 20)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(resp.Points) != 9 {
		t.Fatalf("expected 9 points, got %d", len(resp.Points))
	}
	if _, err := (Local{}).Fetch(context.Background(), 100, 0); !errors.Is(err, ErrInvalidLocation) {
		t.Fatalf("expected ErrInvalidLocation, got %v", err)
	}
}
