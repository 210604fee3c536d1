package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/charmbracelet/log"
)

func TestEmbeddedDefaultsMatch(t *testing.T) {
	cfg, err := parse(defaultHostYAML)
	if err != nil {
		t.Fatalf("embedded defaults do not parse: %v", err)
	}
	if !reflect.DeepEqual(cfg.Engine.ClearColor, DefaultHostConfig().Engine.ClearColor) {
		t.Errorf("clear color = %v", cfg.Engine.ClearColor)
	}
	if cfg.Engine.Backend != "soft" || cfg.Serve.Port != 23235 || cfg.Preview.TickRate != 30 {
		t.Errorf("embedded defaults drifted from DefaultHostConfig: %+v", cfg)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("embedded defaults invalid: %v", err)
	}
}

func TestLoadCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "host.yaml")
	data := []byte(`
engine:
  resolution: 320x200
  quit_after: 10
log:
  level: debug
`)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Engine.Resolution != "320x200" || cfg.Engine.QuitAfter != 10 {
		t.Errorf("engine = %+v", cfg.Engine)
	}
	// Unset values keep defaults
	if cfg.Engine.Backend != "soft" || cfg.Engine.FixedFPS != 60 {
		t.Errorf("defaults lost: %+v", cfg.Engine)
	}
	if cfg.Log.ParsedLevel() != log.DebugLevel {
		t.Errorf("ParsedLevel() = %v, expected debug", cfg.Log.ParsedLevel())
	}
}

func TestLoadMissingCustomPath(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("Load() should fail for a missing custom path")
	}
}

func TestLoadBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "host.yaml")
	if err := os.WriteFile(path, []byte("engine: [unclosed"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("Load() should fail for invalid YAML")
	}
}

func TestEngineArgs(t *testing.T) {
	cfg := DefaultHostConfig()
	cfg.Engine.QuitAfter = 5
	cfg.Engine.Verbose = true
	cfg.Engine.Args = []string{"--extra"}

	got := cfg.EngineArgs("prog")
	expected := []string{
		"prog",
		"--resolution", "640x360",
		"--clear-color", "0.1,0.1,0.12",
		"--fixed-fps", "60",
		"--quit-after", "5",
		"--verbose",
		"--extra",
	}
	if !reflect.DeepEqual(got, expected) {
		t.Errorf("EngineArgs() = %v\nexpected %v", got, expected)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *HostConfig)
	}{
		{"no backend", func(c *HostConfig) { c.Engine.Backend = "" }},
		{"negative fps", func(c *HostConfig) { c.Engine.FixedFPS = -1 }},
		{"negative quit", func(c *HostConfig) { c.Engine.QuitAfter = -1 }},
		{"zero tick rate", func(c *HostConfig) { c.Preview.TickRate = 0 }},
		{"bad port", func(c *HostConfig) { c.Serve.Port = 70000 }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultHostConfig()
			tc.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("Validate() should fail")
			}
		})
	}
}

func TestLogLevelFallback(t *testing.T) {
	if got := (LogConfig{Level: "loud"}).ParsedLevel(); got != log.InfoLevel {
		t.Errorf("ParsedLevel() = %v, expected info", got)
	}
}

func TestServeAddr(t *testing.T) {
	if got := DefaultHostConfig().Serve.Addr(); got != "0.0.0.0:23235" {
		t.Errorf("Addr() = %q", got)
	}
}
