package ui

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/atomicstack/mapping-example/internal/app"
	"github.com/atomicstack/mapping-example/internal/backend"
	"github.com/atomicstack/mapping-example/internal/placemark"
)

func TestFetchFailureKeepsMarkers(t *testing.T) {
	h := newTestHarness(t, testConfig())
	enterRootItem(t, h, "Map")
	h.Send(backendEventMsg{event: backend.Event{Kind: backend.KindPlacemarks, Lat: 10, Lon: 20, Err: errors.New("connection refused")}})
	m := h.Model()
	if !strings.Contains(m.errMsg, "connection refused") {
		t.Fatalf("expected fetch error on status line, got %q", m.errMsg)
	}
	if n := len(m.mapView.Markers()); n != 9 {
		t.Fatalf("expected previous markers kept, got %d", n)
	}

	data, err := placemark.Local{}.Fetch(context.Background(), 10, 20)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	h.Send(backendEventMsg{event: backend.Event{Kind: backend.KindPlacemarks, Lat: 10, Lon: 20, Data: data}})
	if h.Model().errMsg != "" {
		t.Fatalf("expected error cleared after a successful fetch, got %q", h.Model().errMsg)
	}
}

func TestStaleFetchIsNotPlaced(t *testing.T) {
	h := newTestHarness(t, testConfig())
	enterRootItem(t, h, "Map")
	before := h.Model().mapView.Markers()
	stale := placemark.Response{Points: placemark.Grid(40, 5)}
	h.Send(backendEventMsg{event: backend.Event{Kind: backend.KindPlacemarks, Lat: 40, Lon: 5, Data: stale}})
	after := h.Model().mapView.Markers()
	if len(after) != len(before) || after[0] != before[0] {
		t.Fatalf("expected markers for the map center kept, got %#v", after)
	}
	if lat, lon := h.Model().app.Placemarks.Center(); lat != 40 || lon != 5 {
		t.Fatalf("expected store to record the latest fetch, got %v,%v", lat, lon)
	}
}

func TestStaleFetchFailureIsNotReported(t *testing.T) {
	h := newTestHarness(t, testConfig())
	enterRootItem(t, h, "Map")
	h.Send(backendEventMsg{event: backend.Event{Kind: backend.KindPlacemarks, Lat: 40, Lon: 5, Err: errors.New("timeout")}})
	m := h.Model()
	if m.errMsg != "" || m.fetchFailed {
		t.Fatalf("expected failure for an old center ignored, got %q", m.errMsg)
	}

	h.Send(backendEventMsg{event: backend.Event{Kind: backend.KindPlacemarks, Lat: 10, Lon: 20, Err: errors.New("refused")}})
	h.Send(backendEventMsg{event: backend.Event{Kind: backend.KindPlacemarks, Lat: 40, Lon: 5, Data: placemark.Response{Points: placemark.Grid(40, 5)}}})
	if !strings.Contains(h.Model().errMsg, "refused") {
		t.Fatalf("expected current-center error kept after a stale success, got %q", h.Model().errMsg)
	}
}

func TestFetcherResultsReachTheMap(t *testing.T) {
	appCtx, err := app.New(testConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	appCtx.Fetcher = backend.NewFetcher(ctx, placemark.Local{}, time.Millisecond, 0)
	defer appCtx.Close()

	h := NewHarness(NewModel(appCtx))
	enterRootItem(t, h, "Map")
	if !h.Model().fetching {
		t.Fatalf("expected fetch queued on the worker")
	}
	// The wait command blocks until the worker delivers. The follow-up wait
	// it returns is dropped so the test does not block on an idle worker.
	msg := waitForBackendEvent(appCtx.Fetcher)()
	if _, ok := msg.(backendEventMsg); !ok {
		t.Fatalf("expected backend event, got %T", msg)
	}
	if _, next := h.Model().Update(msg); next == nil {
		t.Fatalf("expected the model to keep waiting on the worker")
	}
	if n := len(h.Model().mapView.Markers()); n != 9 {
		t.Fatalf("expected 9 markers from the worker, got %d", n)
	}
}
