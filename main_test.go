package main

import (
	"testing"

	"github.com/atomicstack/mapping-example/internal/app"
	"github.com/atomicstack/mapping-example/internal/config"
)

func TestCollectTTYDetailsIncludesStandardDescriptors(t *testing.T) {
	info := collectTTYDetails()
	if len(info.Probes) != 3 {
		t.Fatalf("expected 3 probe entries, got %d", len(info.Probes))
	}
	expected := []string{"stdin", "stdout", "stderr"}
	for i, name := range expected {
		if info.Probes[i].Name != name {
			t.Fatalf("expected probe %d name %q, got %q", i, name, info.Probes[i].Name)
		}
	}
}

func TestStartupTracePayloadIncludesFlags(t *testing.T) {
	cfg := config.Config{
		App: app.Config{
			Width:      80,
			Height:     24,
			ShowFooter: true,
			Verbose:    true,
			Endpoint:   app.LocalEndpoint,
			Lat:        10,
			Lon:        20,
			Zoom:       15,
		},
		Logging: config.Logging{
			FilePath: "trace.log",
			Trace:    true,
		},
		Flags: map[string]string{
			"endpoint": app.LocalEndpoint,
			"width":    "80",
			"height":   "24",
			"footer":   "true",
			"verbose":  "true",
		},
		Args: []string{"--endpoint", app.LocalEndpoint},
	}

	payload := startupTracePayload(cfg)

	flagsValue, ok := payload["flags"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected flags map in payload")
	}
	if flagsValue["endpoint"] != app.LocalEndpoint {
		t.Fatalf("expected endpoint flag %q, got %v", app.LocalEndpoint, flagsValue["endpoint"])
	}
	if flagsValue["width"] != "80" {
		t.Fatalf("expected width 80, got %v", flagsValue["width"])
	}
	if flagsValue["footer"] != "true" {
		t.Fatalf("expected footer flag true, got %v", flagsValue["footer"])
	}
	if flagsValue["trace"] != true {
		t.Fatalf("expected trace flag true, got %v", flagsValue["trace"])
	}
	if flagsValue["logFile"] != "trace.log" {
		t.Fatalf("expected log file trace.log, got %v", flagsValue["logFile"])
	}

	if _, ok := payload["tty"].(ttyDetails); !ok {
		t.Fatalf("expected tty details in payload")
	}
	cfgValue, ok := payload["config"].(config.Config)
	if !ok {
		t.Fatalf("expected config in payload")
	}
	if cfgValue.App.Endpoint != cfg.App.Endpoint || cfgValue.App.Zoom != cfg.App.Zoom {
		t.Fatalf("expected app config %#v, got %#v", cfg.App, cfgValue.App)
	}
}

func TestCommandTree(t *testing.T) {
	cmd := newCommand()
	if cmd.DefaultCommand != "ui" {
		t.Fatalf("expected default command ui, got %q", cmd.DefaultCommand)
	}
	names := map[string]bool{}
	for _, sub := range cmd.Commands {
		names[sub.Name] = true
	}
	for _, want := range []string{"ui", "serve", "dumpconfig"} {
		if !names[want] {
			t.Fatalf("expected %s command, got %v", want, names)
		}
	}
}
