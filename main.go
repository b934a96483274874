package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/atomicstack/mapping-example/internal/app"
	"github.com/atomicstack/mapping-example/internal/config"
	"github.com/atomicstack/mapping-example/internal/logging"
	"github.com/atomicstack/mapping-example/internal/logging/events"
	"github.com/atomicstack/mapping-example/internal/ui"
)

const appName = "mapping-example"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	var err error
	// os.Exit skips deferred calls, keep this the only one
	defer func() {
		stop()
		if err != nil {
			// the log may be closed by now, report directly
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}()
	err = newCommand().Run(ctx, os.Args)
}

func newCommand() *cli.Command {
	return &cli.Command{
		Name:            appName,
		Usage:           "menu-driven terminal map with a placemark grid service",
		HideHelpCommand: true,
		DefaultCommand:  "ui",
		Before:          setupLogging,
		After:           teardownLogging,
		OnUsageError:    usageErrorHandler,
		ExitErrHandler:  exitErrHandler,
		Flags:           config.RootFlags(),
		Commands: []*cli.Command{
			{
				Name:         "ui",
				Usage:        "Runs the interactive menu and map",
				OnUsageError: usageErrorHandler,
				Flags:        config.UIFlags(),
				Action:       runUI,
			},
			{
				Name:         "serve",
				Usage:        "Serves 3x3 placemark grids over HTTP",
				OnUsageError: usageErrorHandler,
				Flags:        config.ServeFlags(),
				Action:       runServe,
			},
			{
				Name:   "dumpconfig",
				Usage:  "Writes the embedded default configuration (YAML) to STDOUT",
				Action: dumpConfig,
			},
		},
	}
}

func setupLogging(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	logging.Configure(cmd.String("log-file"))
	logging.SetTraceEnabled(cmd.Bool("trace"))
	return ctx, nil
}

func teardownLogging(_ context.Context, _ *cli.Command) (err error) {
	if er := logging.Logger().Sync(); er != nil && !isIgnorableSyncError(er) {
		err = multierr.Append(err, fmt.Errorf("unable to flush log: %w", er))
	}
	if er := logging.Close(); er != nil {
		err = multierr.Append(err, fmt.Errorf("unable to close log: %w", er))
	}
	return err
}

// stderr sync fails on terminals with EINVAL/ENOTTY
func isIgnorableSyncError(err error) bool {
	return errors.Is(err, syscall.EINVAL) || errors.Is(err, syscall.ENOTTY)
}

func exitErrHandler(_ context.Context, _ *cli.Command, err error) {
	logging.Logger().Error("program ended with error", zap.Error(err))
}

func usageErrorHandler(_ context.Context, _ *cli.Command, err error, _ bool) error {
	return err
}

func runUI(ctx context.Context, cmd *cli.Command) (err error) {
	cfg, err := config.FromCommand(cmd)
	if err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}
	traceStartup(cfg)
	defer func() { events.App.Stop("ui", err) }()

	appCtx, err := app.New(cfg.App)
	if err != nil {
		return err
	}
	return ui.Run(ctx, appCtx)
}

func runServe(ctx context.Context, cmd *cli.Command) (err error) {
	cfg, err := config.FromCommand(cmd)
	if err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}
	traceStartup(cfg)
	defer func() { events.App.Stop("serve", err) }()
	return app.Serve(ctx, cfg.Serve)
}

func dumpConfig(_ context.Context, _ *cli.Command) error {
	if _, err := os.Stdout.Write(config.Prepare()); err != nil {
		return fmt.Errorf("unable to write configuration: %w", err)
	}
	return nil
}

func traceStartup(cfg config.Config) {
	events.App.Start(startupTracePayload(cfg))
}

// startupTracePayload bundles runtime context for trace logging.
func startupTracePayload(cfg config.Config) map[string]interface{} {
	flags := make(map[string]interface{}, len(cfg.Flags))
	for k, v := range cfg.Flags {
		flags[k] = v
	}
	flags["trace"] = cfg.Logging.Trace
	flags["logFile"] = cfg.Logging.FilePath
	payload := map[string]interface{}{
		"argv":   cfg.Args,
		"flags":  flags,
		"config": cfg,
	}
	if exe, err := os.Executable(); err == nil {
		payload["executable"] = exe
	} else {
		payload["executableError"] = err.Error()
	}
	if cwd, err := os.Getwd(); err == nil {
		payload["cwd"] = cwd
	} else {
		payload["cwdError"] = err.Error()
	}
	payload["tty"] = collectTTYDetails()
	return payload
}

type ttyDetails struct {
	Detected *ttyDetected     `json:"detected,omitempty"`
	Probes   []ttyProbeResult `json:"probes"`
}

type ttyDetected struct {
	Source string `json:"source"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

type ttyProbeResult struct {
	Name       string `json:"name"`
	IsTerminal bool   `json:"is_terminal"`
	Width      int    `json:"width,omitempty"`
	Height     int    `json:"height,omitempty"`
	Error      string `json:"error,omitempty"`
}

// collectTTYDetails inspects standard descriptors for terminal support and dimensions.
func collectTTYDetails() ttyDetails {
	probes := []struct {
		name string
		fd   uintptr
	}{
		{"stdin", os.Stdin.Fd()},
		{"stdout", os.Stdout.Fd()},
		{"stderr", os.Stderr.Fd()},
	}
	results := make([]ttyProbeResult, 0, len(probes))
	var detected *ttyDetected
	for _, probe := range probes {
		entry := ttyProbeResult{Name: probe.name}
		fd := int(probe.fd)
		if fd >= 0 && term.IsTerminal(fd) {
			entry.IsTerminal = true
			if width, height, err := term.GetSize(fd); err == nil {
				entry.Width = width
				entry.Height = height
				if detected == nil {
					detected = &ttyDetected{Source: probe.name, Width: width, Height: height}
				}
			} else {
				entry.Error = err.Error()
			}
		}
		results = append(results, entry)
	}
	return ttyDetails{Detected: detected, Probes: results}
}
