package config

import (
	_ "embed"
)

//go:embed defaults/host.yaml
var defaultHostYAML []byte

// DefaultHostConfig returns the default host configuration.
func DefaultHostConfig() HostConfig {
	return HostConfig{
		Engine: EngineConfig{
			Backend:    "soft",
			Resolution: "640x360",
			ClearColor: [3]float64{0.1, 0.1, 0.12},
			FixedFPS:   60,
		},
		Log: LogConfig{
			Level: "info",
		},
		Storage: StorageConfig{
			Path: "~/.enginehost/enginehost.db",
		},
		Assets: AssetsConfig{
			Dir: "./assets",
		},
		Preview: PreviewConfig{
			TickRate: 30,
		},
		Serve: ServeConfig{
			Host:        "0.0.0.0",
			Port:        23235,
			HostKeyPath: ".ssh/enginehost_ed25519",
			MaxSessions: 16,
		},
	}
}
