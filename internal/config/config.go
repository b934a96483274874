package config

import (
	"bytes"
	"context"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strconv"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/multierr"
	yaml "gopkg.in/yaml.v3"

	"github.com/atomicstack/mapping-example/internal/app"
	"github.com/atomicstack/mapping-example/internal/mapview"
	"github.com/atomicstack/mapping-example/internal/menu"
	"github.com/atomicstack/mapping-example/internal/placemark"
	"github.com/atomicstack/mapping-example/internal/server"
)

//go:embed default.yaml
var defaultFile []byte

const envPrefix = "MAPPING_EXAMPLE_"

// Config captures runtime configuration for the application.
type Config struct {
	App     app.Config
	Serve   app.ServeConfig
	Logging Logging
	File    string
	Flags   map[string]string
	Args    []string
}

type Logging struct {
	FilePath string
	Trace    bool
}

// File mirrors the YAML configuration file.
type File struct {
	Map  MapSettings      `yaml:"map"`
	Menu []menu.MenuEntry `yaml:"menu"`
}

type MapSettings struct {
	Lat   float64 `yaml:"lat"`
	Lon   float64 `yaml:"lon"`
	Zoom  int     `yaml:"zoom"`
	Panel string  `yaml:"panel"`
}

func env(name string) cli.ValueSourceChain {
	return cli.EnvVars(envPrefix + name)
}

// RootFlags are shared by every command.
func RootFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Sources: env("CONFIG"), Usage: "load menu and map settings from `FILE` (YAML)"},
		&cli.StringFlag{Name: "log-file", Sources: env("LOG_FILE"), Usage: "path to the log `FILE`"},
		&cli.BoolFlag{Name: "trace", Sources: env("TRACE"), Usage: "enable verbose JSON trace logging"},
	}
}

// UIFlags configure the interactive menu.
func UIFlags() []cli.Flag {
	return []cli.Flag{
		&cli.IntFlag{Name: "width", Sources: env("WIDTH"), Usage: "desired viewport width in cells (0 uses terminal width)"},
		&cli.IntFlag{Name: "height", Sources: env("HEIGHT"), Usage: "desired viewport height in rows (0 uses terminal height)"},
		&cli.BoolFlag{Name: "footer", Sources: env("FOOTER"), Usage: "enable footer hint row"},
		&cli.BoolFlag{Name: "verbose", Sources: env("VERBOSE"), Usage: "print success messages for actions"},
		&cli.StringFlag{Name: "endpoint", Value: placemark.DefaultEndpoint, Sources: env("ENDPOINT"),
			Usage: "placemark service `URL` (\"" + app.LocalEndpoint + "\" computes points in-process)"},
		&cli.FloatFlag{Name: "lat", Sources: env("LAT"), Usage: "initial map center latitude (overrides config file)"},
		&cli.FloatFlag{Name: "lon", Sources: env("LON"), Usage: "initial map center longitude (overrides config file)"},
		&cli.IntFlag{Name: "zoom", Sources: env("ZOOM"), Usage: "initial map zoom level (overrides config file)"},
		&cli.DurationFlag{Name: "refresh", Sources: env("REFRESH"), Usage: "re-fetch placemarks every `INTERVAL` (0 disables)"},
	}
}

// ServeFlags configure the placemark service.
func ServeFlags() []cli.Flag {
	return []cli.Flag{
		&cli.IntFlag{Name: "port", Value: server.DefaultPort, Sources: env("PORT"), Usage: "listen `PORT`"},
		&cli.StringFlag{Name: "log-level", Value: "info", Sources: env("LOG_LEVEL"), Usage: "console log `LEVEL` (debug, info, warn, error)"},
	}
}

// Default returns the embedded configuration.
func Default() (*File, error) {
	return decode(defaultFile, &File{})
}

// Prepare returns the embedded configuration file as written.
func Prepare() []byte {
	return append([]byte(nil), defaultFile...)
}

// LoadFile superimposes the file at path on the embedded defaults. An empty
// path yields the defaults alone. A menu in the file replaces the default one.
func LoadFile(path string) (*File, error) {
	f, err := Default()
	if err != nil {
		return nil, fmt.Errorf("failed to process default configuration: %w", err)
	}
	if path == "" {
		return f, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if f, err = decode(data, f); err != nil {
		return nil, fmt.Errorf("failed to process configuration file: %w", err)
	}
	return f, nil
}

func decode(data []byte, f *File) (*File, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(f); err != nil {
		return nil, fmt.Errorf("failed to decode configuration data: %w", err)
	}
	return f, nil
}

// FromCommand assembles the configuration from parsed command-line flags
// (root flags are looked up through the command lineage) and the YAML file.
func FromCommand(cmd *cli.Command) (Config, error) {
	path := cmd.String("config")
	file, err := LoadFile(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		App: app.Config{
			Width:      int(cmd.Int("width")),
			Height:     int(cmd.Int("height")),
			ShowFooter: cmd.Bool("footer"),
			Verbose:    cmd.Bool("verbose"),
			Endpoint:   cmd.String("endpoint"),
			Lat:        file.Map.Lat,
			Lon:        file.Map.Lon,
			Zoom:       file.Map.Zoom,
			MapPanel:   file.Map.Panel,
			Refresh:    cmd.Duration("refresh"),
			Menu:       file.Menu,
		},
		Serve: app.ServeConfig{
			Port:     int(cmd.Int("port")),
			LogLevel: cmd.String("log-level"),
		},
		Logging: Logging{
			FilePath: cmd.String("log-file"),
			Trace:    cmd.Bool("trace"),
		},
		File: path,
		Args: cmd.Args().Slice(),
	}
	if cmd.IsSet("lat") {
		cfg.App.Lat = cmd.Float("lat")
	}
	if cmd.IsSet("lon") {
		cfg.App.Lon = cmd.Float("lon")
	}
	if cmd.IsSet("zoom") {
		cfg.App.Zoom = int(cmd.Int("zoom"))
	}
	cfg.Flags = flagValues(cfg)

	if err := Validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func flagValues(cfg Config) map[string]string {
	return map[string]string{
		"config":   cfg.File,
		"width":    strconv.Itoa(cfg.App.Width),
		"height":   strconv.Itoa(cfg.App.Height),
		"footer":   strconv.FormatBool(cfg.App.ShowFooter),
		"verbose":  strconv.FormatBool(cfg.App.Verbose),
		"endpoint": cfg.App.Endpoint,
		"lat":      strconv.FormatFloat(cfg.App.Lat, 'f', -1, 64),
		"lon":      strconv.FormatFloat(cfg.App.Lon, 'f', -1, 64),
		"zoom":     strconv.Itoa(cfg.App.Zoom),
		"refresh":  cfg.App.Refresh.String(),
		"port":     strconv.Itoa(cfg.Serve.Port),
		"logFile":  cfg.Logging.FilePath,
	}
}

// Validate reports every problem with cfg at once.
func Validate(cfg Config) error {
	var err error
	if cfg.App.Width < 0 {
		err = multierr.Append(err, fmt.Errorf("width must be >= 0 (got %d)", cfg.App.Width))
	}
	if cfg.App.Height < 0 {
		err = multierr.Append(err, fmt.Errorf("height must be >= 0 (got %d)", cfg.App.Height))
	}
	if cfg.App.Zoom < mapview.MinZoom || cfg.App.Zoom > mapview.MaxZoom {
		err = multierr.Append(err, fmt.Errorf("zoom must be within %d..%d (got %d)", mapview.MinZoom, mapview.MaxZoom, cfg.App.Zoom))
	}
	if verr := placemark.Validate(cfg.App.Lat, cfg.App.Lon); verr != nil {
		err = multierr.Append(err, fmt.Errorf("map center: %w", verr))
	}
	if cfg.App.Refresh < 0 {
		err = multierr.Append(err, fmt.Errorf("refresh must be >= 0 (got %s)", cfg.App.Refresh))
	}
	if cfg.Serve.Port < 0 || cfg.Serve.Port > 65535 {
		err = multierr.Append(err, fmt.Errorf("port must be within 0..65535 (got %d)", cfg.Serve.Port))
	}
	if len(cfg.App.Menu) == 0 {
		err = multierr.Append(err, errors.New("menu has no entries"))
	}
	return err
}

// Parse runs args through a throwaway command carrying every flag and
// returns the resulting configuration without starting anything.
func Parse(ctx context.Context, args []string) (Config, error) {
	var cfg Config
	flags := append(append(RootFlags(), UIFlags()...), ServeFlags()...)
	cmd := &cli.Command{
		Name:  "config",
		Flags: flags,
		Action: func(_ context.Context, cmd *cli.Command) (err error) {
			cfg, err = FromCommand(cmd)
			return err
		},
	}
	if err := cmd.Run(ctx, append([]string{"config"}, args...)); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
