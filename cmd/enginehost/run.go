package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/enginehost/internal/assets"
)

var (
	flagFrames    int
	flagOut       string
	flagArchive   string
	flagExtension string
	flagExport    string
)

var runCmd = &cobra.Command{
	Use:   "run [manifest]",
	Short: "Render a scene and capture the viewport",
	Long: `Start the engine, inject the scene described by the manifest, step the
engine and capture the final viewport.

The engine stops early if it requests to quit (for example because of
engine.quit_after in the config).

Output:
  --out frame.png    - Write the last frame as PNG (or .bmp)
  --archive <label>  - Store the last frame in the database under label

Examples:
  enginehost run scene.yaml
  enginehost run scene.yaml --frames 30 --out frame.png
  enginehost run scene.yaml --archive nightly
  enginehost run scene.yaml --extension ext.wasm`,
	Args: cobra.MaximumNArgs(1),
	Run:  runRun,
}

func init() {
	runCmd.Flags().IntVar(&flagFrames, "frames", 1, "Number of engine iterations to run")
	runCmd.Flags().StringVar(&flagOut, "out", "", "Write the last frame to this PNG/BMP file")
	runCmd.Flags().StringVar(&flagArchive, "archive", "", "Archive the last frame under this label")
	addExtensionFlags(runCmd)
}

// addExtensionFlags registers the wasm extension flags on cmd.
func addExtensionFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&flagExtension, "extension", "", "WebAssembly module providing the extension initializer")
	cmd.Flags().StringVar(&flagExport, "export", "", "Extension entry point export (default enginehost_init)")
}

func manifestArg(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return ""
}

func runRun(_ *cobra.Command, args []string) {
	if flagFrames < 1 {
		fail("--frames must be at least 1")
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
		return // help or version was printed by the engine
	}
	defer s.close()

	steps := 0
	for steps < flagFrames {
		quit, err := s.host.Step()
		if err != nil {
			fail("step: %v", err)
		}
		steps++
		if quit {
			s.log.Info("engine requested quit", "frames", steps)
			break
		}
	}

	w, h, err := s.host.ViewportSize()
	if err != nil {
		fail("%v", err)
	}
	fmt.Printf("Rendered %d frame(s) at %dx%d (%d meshes, %d lights)\n",
		steps, w, h, s.result.Meshes, s.result.Lights)

	if flagOut != "" {
		img, err := s.host.Snapshot()
		if err != nil {
			fail("capture: %v", err)
		}
		if err := assets.Save(flagOut, img); err != nil {
			fail("%v", err)
		}
		fmt.Printf("Wrote %s\n", flagOut)
	}

	if flagArchive != "" {
		if s.store == nil {
			fail("cannot archive: database unavailable")
		}
		frame, err := s.host.Frame()
		if err != nil {
			fail("capture: %v", err)
		}
		id, err := s.store.SaveFrame(flagArchive, frame)
		if err != nil {
			fail("%v", err)
		}
		fmt.Printf("Archived frame #%d as %q\n", id, flagArchive)
	}
}
