package app

import (
	"context"

	"github.com/atomicstack/mapping-example/internal/logging"
	"github.com/atomicstack/mapping-example/internal/server"
)

// ServeConfig describes the point-source service options.
type ServeConfig struct {
	Port     int
	LogLevel string
}

// Serve runs the placemark service until ctx is canceled.
func Serve(ctx context.Context, cfg ServeConfig) error {
	logging.EnableConsole(cfg.LogLevel)
	srv := server.New(
		server.WithPort(cfg.Port),
		server.WithLogger(logging.Logger()),
	)
	return srv.Serve(ctx)
}
