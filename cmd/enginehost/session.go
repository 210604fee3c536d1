package main

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/enginehost/internal/assets"
	"github.com/vovakirdan/enginehost/internal/config"
	"github.com/vovakirdan/enginehost/internal/core"
	"github.com/vovakirdan/enginehost/internal/extension"
	"github.com/vovakirdan/enginehost/internal/extension/wasmext"
	"github.com/vovakirdan/enginehost/internal/host"
	"github.com/vovakirdan/enginehost/internal/imagebridge"
	"github.com/vovakirdan/enginehost/internal/manifest"
	"github.com/vovakirdan/enginehost/internal/registry"
	"github.com/vovakirdan/enginehost/internal/storage"
)

// loadConfig resolves the host config and applies global flag overrides.
func loadConfig() (config.HostConfig, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, err
	}
	if flagDBPath != "" {
		cfg.Storage.Path = flagDBPath
	}
	if flagLogLevel != "" {
		cfg.Log.Level = flagLogLevel
	}
	if flagBackend != "" {
		cfg.Engine.Backend = flagBackend
	}
	return cfg, cfg.Validate()
}

func newLogger(cfg config.HostConfig) *log.Logger {
	return log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "enginehost",
		Level:           cfg.Log.ParsedLevel(),
	})
}

// sessionOptions are the per-command knobs shared by run, preview and serve.
type sessionOptions struct {
	manifest  string
	extension string // wasm module path
	export    string // wasm entry point
	quitAfter int    // overrides config when > 0
}

// session is a started host with its collaborators.
type session struct {
	cfg    config.HostConfig
	log    *log.Logger
	store  *storage.Store
	host   *host.Host
	wasm   *wasmext.Initializer
	result manifest.Result
}

// chainLoader asks the store first, then the assets directory.
func chainLoader(loaders ...imagebridge.Loader) imagebridge.Loader {
	return imagebridge.LoaderFunc(func(name string) (core.ImageDescriptor, bool) {
		for _, l := range loaders {
			if l == nil {
				continue
			}
			if desc, ok := l.LoadImage(name); ok {
				return desc, true
			}
		}
		return core.ImageDescriptor{}, false
	})
}

// openSession starts the configured engine and applies the manifest.
// The store is optional: failing to open it only disables stored textures
// and frame archiving.
func openSession(ctx context.Context, opts sessionOptions) (*session, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	if opts.quitAfter > 0 {
		cfg.Engine.QuitAfter = opts.quitAfter
	}
	logger := newLogger(cfg)

	s := &session{cfg: cfg, log: logger}

	store, err := storage.Open(cfg.Storage.Path)
	if err != nil {
		logger.Warn("could not open texture database", "error", err)
	} else {
		s.store = store
	}

	images := imagebridge.New(logger)
	var stored imagebridge.Loader
	if s.store != nil {
		stored = s.store
	}
	images.SetLoader(chainLoader(stored, assets.NewDirLoader(cfg.Assets.Dir, logger)))

	ext := extension.NewRegistry()
	if opts.extension != "" {
		s.wasm, err = wasmext.Load(ctx, opts.extension, opts.export, logger)
		if err != nil {
			s.close()
			return nil, err
		}
		ext.BindExtension(s.wasm, nil)
	}

	rt, err := registry.CreateWithLogger(cfg.Engine.Backend, logger)
	if err != nil {
		s.close()
		return nil, err
	}

	s.host, err = host.New(host.Config{
		Runtime:    rt,
		Extensions: ext,
		Images:     images,
		Logger:     logger,
	})
	if err != nil {
		s.close()
		return nil, err
	}

	res := s.host.Start(cfg.EngineArgs("enginehost"))
	switch res.Status {
	case host.ExitRequested:
		s.close()
		return nil, nil
	case host.Failed:
		s.close()
		return nil, fmt.Errorf("engine start failed: %w", res.Err)
	}

	if opts.manifest != "" {
		m, err := manifest.LoadFile(opts.manifest)
		if err != nil {
			s.close()
			return nil, err
		}
		s.result, err = manifest.Apply(s.host, m)
		if err != nil {
			s.close()
			return nil, err
		}
		logger.Info("scene loaded", "manifest", opts.manifest,
			"meshes", s.result.Meshes, "lights", s.result.Lights)
	}

	return s, nil
}

// fail prints an error and exits.
func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}

// close stops the engine and releases everything the session opened.
func (s *session) close() {
	if s.host != nil {
		s.host.Close()
	}
	if s.wasm != nil {
		s.wasm.Close()
	}
	if s.store != nil {
		s.store.Close()
	}
}
