package soft

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/pflag"

	"github.com/vovakirdan/enginehost/internal/core"
	"github.com/vovakirdan/enginehost/internal/engine"
)

// Version is reported by --version.
const Version = "0.1.0"

// Options are the engine settings parsed from arguments.
type Options struct {
	Width     int
	Height    int
	Clear     core.Color
	FixedFPS  int
	QuitAfter int // frames; 0 runs until asked to quit
	Verbose   bool
}

// DefaultOptions returns the settings used when no arguments are given.
func DefaultOptions() Options {
	return Options{
		Width:    640,
		Height:   360,
		Clear:    core.Color{R: 0.1, G: 0.1, B: 0.12},
		FixedFPS: 60,
	}
}

// ParseArgs parses engine arguments. Help and version requests print to out
// and return engine.ErrHelp.
func ParseArgs(execPath string, args []string, out io.Writer) (Options, error) {
	opts := DefaultOptions()

	fs := pflag.NewFlagSet(execPath, pflag.ContinueOnError)
	fs.SetOutput(out)

	resolution := fs.String("resolution", fmt.Sprintf("%dx%d", opts.Width, opts.Height), "viewport size as WxH")
	clearColor := fs.String("clear-color", formatColor(opts.Clear), "background color as r,g,b in [0,1]")
	fs.IntVar(&opts.FixedFPS, "fixed-fps", opts.FixedFPS, "simulated frames per second")
	fs.IntVar(&opts.QuitAfter, "quit-after", 0, "quit after N frames (0 = never)")
	fs.BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose engine logging")
	version := fs.Bool("version", false, "print version and exit")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return opts, engine.ErrHelp
		}
		return opts, fmt.Errorf("soft: %w", err)
	}
	if *version {
		fmt.Fprintf(out, "enginehost soft renderer %s\n", Version)
		return opts, engine.ErrHelp
	}

	w, h, err := ParseResolution(*resolution)
	if err != nil {
		return opts, err
	}
	opts.Width, opts.Height = w, h

	if opts.Clear, err = ParseColor(*clearColor); err != nil {
		return opts, err
	}
	if opts.FixedFPS <= 0 {
		return opts, fmt.Errorf("soft: fixed-fps must be positive, got %d", opts.FixedFPS)
	}
	if opts.QuitAfter < 0 {
		return opts, fmt.Errorf("soft: quit-after must not be negative, got %d", opts.QuitAfter)
	}
	return opts, nil
}

// ParseResolution parses "WxH".
func ParseResolution(s string) (int, int, error) {
	ws, hs, ok := strings.Cut(strings.ToLower(s), "x")
	if !ok {
		return 0, 0, fmt.Errorf("soft: resolution %q is not WxH", s)
	}
	w, err := strconv.Atoi(strings.TrimSpace(ws))
	if err != nil {
		return 0, 0, fmt.Errorf("soft: resolution width: %w", err)
	}
	h, err := strconv.Atoi(strings.TrimSpace(hs))
	if err != nil {
		return 0, 0, fmt.Errorf("soft: resolution height: %w", err)
	}
	if w <= 0 || h <= 0 || w > engine.MaxImageSize || h > engine.MaxImageSize {
		return 0, 0, fmt.Errorf("soft: resolution %dx%d out of range", w, h)
	}
	return w, h, nil
}

// ParseColor parses "r,g,b" with components in [0,1].
func ParseColor(s string) (core.Color, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return core.Color{}, fmt.Errorf("soft: color %q is not r,g,b", s)
	}
	var c [3]float32
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 32)
		if err != nil {
			return core.Color{}, fmt.Errorf("soft: color component %q: %w", p, err)
		}
		c[i] = float32(v)
	}
	return core.Color{R: c[0], G: c[1], B: c[2]}, nil
}

func formatColor(c core.Color) string {
	return fmt.Sprintf("%g,%g,%g", c.R, c.G, c.B)
}
