// Package config provides YAML-based configuration loading for the engine
// host, its storage, the terminal preview and the SSH frame viewer.
package config

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/log"
)

// HostConfig contains all configuration for the host and its tools.
type HostConfig struct {
	Engine  EngineConfig  `yaml:"engine"`
	Log     LogConfig     `yaml:"log"`
	Storage StorageConfig `yaml:"storage"`
	Assets  AssetsConfig  `yaml:"assets"`
	Preview PreviewConfig `yaml:"preview"`
	Serve   ServeConfig   `yaml:"serve"`
}

// EngineConfig defines the engine backend and its start arguments.
type EngineConfig struct {
	Backend    string     `yaml:"backend"`     // registry name, e.g. "soft"
	Resolution string     `yaml:"resolution"`  // WxH
	ClearColor [3]float64 `yaml:"clear_color"` // r, g, b in [0, 1]
	FixedFPS   int        `yaml:"fixed_fps"`
	QuitAfter  int        `yaml:"quit_after"` // frames, 0 = never
	Verbose    bool       `yaml:"verbose"`
	Args       []string   `yaml:"args"` // passed through after the generated flags
}

// LogConfig defines logging behavior.
type LogConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
}

// StorageConfig defines the texture and frame database.
type StorageConfig struct {
	Path string `yaml:"path"` // ~ is expanded
}

// AssetsConfig defines where file-based textures are looked up.
type AssetsConfig struct {
	Dir string `yaml:"dir"`
}

// PreviewConfig defines the terminal preview.
type PreviewConfig struct {
	TickRate int    `yaml:"tick_rate"` // steps per second
	Scene    string `yaml:"scene"`     // manifest path, optional
}

// ServeConfig defines the SSH frame viewer.
type ServeConfig struct {
	Host        string `yaml:"host"`
	Port        int    `yaml:"port"`
	HostKeyPath string `yaml:"host_key_path"`
	MaxSessions int    `yaml:"max_sessions"`
}

// ParsedLevel returns the configured log level, defaulting to info.
func (c LogConfig) ParsedLevel() log.Level {
	level, err := log.ParseLevel(c.Level)
	if err != nil {
		return log.InfoLevel
	}
	return level
}

// EngineArgs renders the engine section as the argv passed to the engine.
// program becomes argv[0].
func (c HostConfig) EngineArgs(program string) []string {
	e := c.Engine
	args := []string{program}
	if e.Resolution != "" {
		args = append(args, "--resolution", e.Resolution)
	}
	args = append(args, "--clear-color", fmt.Sprintf("%s,%s,%s",
		formatFloat(e.ClearColor[0]), formatFloat(e.ClearColor[1]), formatFloat(e.ClearColor[2])))
	if e.FixedFPS > 0 {
		args = append(args, "--fixed-fps", strconv.Itoa(e.FixedFPS))
	}
	if e.QuitAfter > 0 {
		args = append(args, "--quit-after", strconv.Itoa(e.QuitAfter))
	}
	if e.Verbose {
		args = append(args, "--verbose")
	}
	return append(args, e.Args...)
}

// Addr returns the SSH listen address.
func (c ServeConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// Validate checks values the loaders cannot default.
func (c HostConfig) Validate() error {
	if c.Engine.Backend == "" {
		return fmt.Errorf("config: engine.backend is required")
	}
	if c.Engine.FixedFPS < 0 {
		return fmt.Errorf("config: engine.fixed_fps must not be negative")
	}
	if c.Engine.QuitAfter < 0 {
		return fmt.Errorf("config: engine.quit_after must not be negative")
	}
	if c.Preview.TickRate <= 0 {
		return fmt.Errorf("config: preview.tick_rate must be positive")
	}
	if c.Serve.Port <= 0 || c.Serve.Port > 65535 {
		return fmt.Errorf("config: serve.port %d out of range", c.Serve.Port)
	}
	return nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
