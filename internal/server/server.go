// Package server exposes the placemark grid over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/atomicstack/mapping-example/internal/metric"
)

const (
	// DefaultPort is the default HTTP server port.
	DefaultPort = 9876

	// DefaultReadTimeout is the maximum duration for reading the entire request,
	// including the body.
	DefaultReadTimeout = 10 * time.Second

	// DefaultWriteTimeout is the maximum duration before timing out writes of the response.
	DefaultWriteTimeout = 10 * time.Second

	// DefaultIdleTimeout is the maximum amount of time to wait for the next request
	// when keep-alives are enabled.
	DefaultIdleTimeout = 60 * time.Second

	// DefaultShutdownTimeout is the maximum duration to wait for active connections
	// to close during shutdown.
	DefaultShutdownTimeout = 5 * time.Second

	// DefaultMaxHeaderBytes caps the size of request headers.
	DefaultMaxHeaderBytes = 1 << 20
)

// Server serves placemark grids until its context is canceled.
type Server interface {
	// Serve starts the HTTP server and blocks until the context is canceled.
	// Returns nil on graceful shutdown.
	Serve(ctx context.Context) error

	// IsRunning reports whether the socket is bound and accepting connections.
	IsRunning() bool

	// Addr is the bound listen address, empty until Serve has bound it.
	Addr() string

	// Handler exposes the routed handler, mainly for tests.
	Handler() http.Handler
}

type server struct {
	router          *mux.Router
	port            int
	readTimeout     time.Duration
	writeTimeout    time.Duration
	idleTimeout     time.Duration
	shutdownTimeout time.Duration
	maxHeaderBytes  int
	log             *zap.Logger
	registry        *prometheus.Registry
	requests        *metric.Counter
	extra           []route

	mu      sync.RWMutex
	running bool
	addr    string
}

type route struct {
	path    string
	handler http.Handler
}

// Option is a functional option for configuring the Server.
type Option func(*server)

// WithPort sets the listen port. Zero picks a free port.
func WithPort(port int) Option {
	return func(s *server) { s.port = port }
}

func WithReadTimeout(d time.Duration) Option {
	return func(s *server) { s.readTimeout = d }
}

func WithWriteTimeout(d time.Duration) Option {
	return func(s *server) { s.writeTimeout = d }
}

func WithIdleTimeout(d time.Duration) Option {
	return func(s *server) { s.idleTimeout = d }
}

// WithShutdownTimeout sets the grace period given to in-flight requests.
func WithShutdownTimeout(d time.Duration) Option {
	return func(s *server) { s.shutdownTimeout = d }
}

func WithMaxHeaderBytes(n int) Option {
	return func(s *server) { s.maxHeaderBytes = n }
}

// WithLogger replaces the no-op logger.
func WithLogger(l *zap.Logger) Option {
	return func(s *server) {
		if l != nil {
			s.log = l
		}
	}
}

// WithHandler mounts an additional handler at path.
func WithHandler(path string, handler http.Handler) Option {
	return func(s *server) {
		s.extra = append(s.extra, route{path: path, handler: handler})
	}
}

// New creates the placemark server. Each instance owns its own prometheus
// registry so several can coexist in one process.
func New(opts ...Option) Server {
	reg := prometheus.NewRegistry()
	s := &server{
		port:            DefaultPort,
		readTimeout:     DefaultReadTimeout,
		writeTimeout:    DefaultWriteTimeout,
		idleTimeout:     DefaultIdleTimeout,
		shutdownTimeout: DefaultShutdownTimeout,
		maxHeaderBytes:  DefaultMaxHeaderBytes,
		log:             zap.NewNop(),
		registry:        reg,
		requests: metric.NewCounterWithRegistry(reg,
			"placemark_requests_total", "Placemark grid requests by method and outcome.",
			"method", "outcome"),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.router = s.routes()

	s.log.Info("server initialized",
		zap.Int("port", s.port),
		zap.Duration("read_timeout", s.readTimeout),
		zap.Duration("write_timeout", s.writeTimeout))

	return s
}

func (s *server) Handler() http.Handler {
	return s.router
}

func (s *server) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.running
}

func (s *server) Addr() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.addr
}

// Serve binds the listener, then runs the HTTP server and a shutdown watcher
// in an errgroup. Context cancellation triggers a graceful shutdown.
func (s *server) Serve(ctx context.Context) error {
	srv := &http.Server{
		Addr:           fmt.Sprintf(":%d", s.port),
		Handler:        s.router,
		ReadTimeout:    s.readTimeout,
		WriteTimeout:   s.writeTimeout,
		IdleTimeout:    s.idleTimeout,
		MaxHeaderBytes: s.maxHeaderBytes,
		ErrorLog:       zap.NewStdLog(s.log),
	}

	listener, err := net.Listen("tcp", srv.Addr)
	if err != nil {
		return fmt.Errorf("failed to create listener: %w", err)
	}
	s.log.Info("starting server", zap.String("addr", listener.Addr().String()))

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s.mu.Lock()
		s.running = true
		s.addr = listener.Addr().String()
		s.mu.Unlock()

		defer func() {
			s.mu.Lock()
			s.running = false
			s.mu.Unlock()
		}()

		if err := srv.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gCtx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
		defer cancel()

		s.log.Info("shutting down server", zap.Duration("grace_period", s.shutdownTimeout))
		start := time.Now()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.log.Error("server shutdown error", zap.Error(err))
			return fmt.Errorf("shutdown: %w", err)
		}
		s.log.Info("server shutdown complete", zap.Duration("duration", time.Since(start)))
		return nil
	})

	return g.Wait()
}
