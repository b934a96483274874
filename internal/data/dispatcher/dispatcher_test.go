package dispatcher

import (
	"errors"
	"testing"

	"github.com/atomicstack/mapping-example/internal/backend"
	"github.com/atomicstack/mapping-example/internal/placemark"
	"github.com/atomicstack/mapping-example/internal/state"
)

func TestHandleStoresPoints(t *testing.T) {
	store := state.NewPlacemarkStore()
	d := New(store)
	res := d.Handle(backend.Event{Kind: backend.KindPlacemarks, Lat: 10, Lon: 20, Data: placemark.Response{Points: placemark.Grid(10, 20)}})
	if !res.PlacemarksUpdated || res.Err != nil {
		t.Fatalf("unexpected result %#v", res)
	}
	if len(store.Points()) != 9 {
		t.Fatalf("expected 9 stored points, got %d", len(store.Points()))
	}
}

func TestHandleErrorKeepsPreviousPoints(t *testing.T) {
	store := state.NewPlacemarkStore()
	store.SetPoints(1, 1, placemark.Grid(1, 1))
	d := New(store)
	res := d.Handle(backend.Event{Kind: backend.KindPlacemarks, Err: errors.New("offline")})
	if res.PlacemarksUpdated || res.Err == nil {
		t.Fatalf("expected error result, got %#v", res)
	}
	if len(store.Points()) != 9 || store.Err() == nil {
		t.Fatalf("expected previous grid kept and error recorded")
	}
}
