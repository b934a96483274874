package backend

import (
	"context"
	"sync"
	"time"

	"github.com/atomicstack/mapping-example/internal/placemark"
)

// DefaultMinInterval spaces out consecutive fetches.
const DefaultMinInterval = 250 * time.Millisecond

// Kind represents the type of data emitted by the fetcher.
type Kind int

const (
	KindPlacemarks Kind = iota
)

// Event conveys a fetched grid or the error that replaced it.
type Event struct {
	Kind Kind
	Lat  float64
	Lon  float64
	Data placemark.Response
	Err  error
}

// Source fetches the grid around a location; *placemark.Client satisfies it.
type Source interface {
	Fetch(ctx context.Context, lat, lon float64) (placemark.Response, error)
}

type center struct {
	lat, lon float64
}

// Fetcher runs placemark fetches on a single worker goroutine. Requests
// coalesce: only the latest center is fetched once the worker is free.
type Fetcher struct {
	source   Source
	refresh  time.Duration
	throttle *throttle

	ctx    context.Context
	cancel context.CancelFunc

	mu      sync.Mutex
	pending *center
	last    *center
	wake    chan struct{}

	events chan Event
	wg     sync.WaitGroup
}

// NewFetcher starts a worker fetching from source. minInterval is enforced
// between fetches; a positive refresh re-fetches the last center periodically.
func NewFetcher(parent context.Context, source Source, minInterval, refresh time.Duration) *Fetcher {
	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := context.WithCancel(parent)
	f := &Fetcher{
		source:   source,
		refresh:  refresh,
		throttle: newThrottle(minInterval),
		ctx:      ctx,
		cancel:   cancel,
		wake:     make(chan struct{}, 1),
		events:   make(chan Event, 16),
	}

	f.wg.Add(1)
	go f.run()

	go func() {
		f.wg.Wait()
		close(f.events)
	}()

	return f
}

// Request queues a fetch for lat/lon, replacing any fetch not yet started.
func (f *Fetcher) Request(lat, lon float64) {
	f.mu.Lock()
	f.pending = &center{lat: lat, lon: lon}
	f.mu.Unlock()
	select {
	case f.wake <- struct{}{}:
	default:
	}
}

// Events returns a channel of fetch results. It is closed after Stop once
// the worker exits.
func (f *Fetcher) Events() <-chan Event {
	return f.events
}

// Stop cancels the worker. An in-flight fetch is abandoned via its context.
func (f *Fetcher) Stop() {
	f.cancel()
}

// Wait blocks until the worker has exited and the events channel is closed.
func (f *Fetcher) Wait() {
	f.wg.Wait()
}

func (f *Fetcher) run() {
	defer f.wg.Done()

	var tick <-chan time.Time
	if f.refresh > 0 {
		ticker := time.NewTicker(f.refresh)
		defer ticker.Stop()
		tick = ticker.C
	}

	for {
		select {
		case <-f.ctx.Done():
			return
		case <-f.wake:
			f.mu.Lock()
			next := f.pending
			f.pending = nil
			f.mu.Unlock()
			if next != nil && !f.fetch(*next) {
				return
			}
		case <-tick:
			f.mu.Lock()
			last := f.last
			f.mu.Unlock()
			if last != nil && !f.fetch(*last) {
				return
			}
		}
	}
}

func (f *Fetcher) fetch(c center) bool {
	if !f.throttle.wait(f.ctx) {
		return false
	}
	f.mu.Lock()
	f.last = &c
	f.mu.Unlock()

	data, err := f.source.Fetch(f.ctx, c.lat, c.lon)
	if f.ctx.Err() != nil {
		return false
	}
	evt := Event{Kind: KindPlacemarks, Lat: c.lat, Lon: c.lon, Data: data, Err: err}
	select {
	case <-f.ctx.Done():
		return false
	case f.events <- evt:
		return true
	}
}
