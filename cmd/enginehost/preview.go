package main

import (
	"context"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/enginehost/internal/platform/tui"
)

var flagTickRate int

var previewCmd = &cobra.Command{
	Use:   "preview [manifest]",
	Short: "Watch the engine render in the terminal",
	Long: `Start the engine and show its viewport in the terminal using half-block
characters. The engine is stepped once per tick.

Controls:
  P/Space    - Pause
  N          - Step once while paused
  S          - Archive the current frame
  ?          - Toggle help
  Q/Ctrl+C   - Quit

Examples:
  enginehost preview scene.yaml
  enginehost preview scene.yaml --tick-rate 10`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPreview,
}

func init() {
	previewCmd.Flags().IntVar(&flagTickRate, "tick-rate", 0, "Engine steps per second (default from config)")
	addExtensionFlags(previewCmd)
}

func runPreview(_ *cobra.Command, args []string) {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		fail("preview needs a terminal")
	}

	s, err := openSession(context.Background(), sessionOptions{
		manifest:  manifestArg(args),
		extension: flagExtension,
		export:    flagExport,
	})
	if err != nil {
		fail("%v", err)
	}
	if s == nil {
		return
	}

	tickRate := s.cfg.Preview.TickRate
	if flagTickRate > 0 {
		tickRate = flagTickRate
	}

	var saver tui.FrameSaver
	if s.store != nil {
		saver = s.store
	}

	label := "preview"
	if m := manifestArg(args); m != "" {
		label = filepath.Base(m)
	}

	runErr := tui.Run(s.host, saver, label, tickRate)
	s.close()

	if runErr != nil {
		fail("preview: %v", runErr)
	}
}
