// enginehost embeds a rendering engine and drives it from the command line.
//
// Usage:
//
//	enginehost run [manifest]        - Start the engine, inject a scene, render frames
//	enginehost preview [manifest]    - Interactive terminal preview
//	enginehost serve [manifest]      - Stream frames to SSH viewers
//	enginehost assets import|list    - Manage stored textures
//	enginehost frames list|export    - Manage archived frames
//	enginehost formats               - List boundary image formats
//	enginehost backends              - List engine backends
//
// Global flags:
//
//	--config <path>     - Host config YAML
//	--db <path>         - Texture and frame database
//	--log-level <level> - debug, info, warn or error
//	--backend <name>    - Engine backend
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Import backends to register them
	_ "github.com/vovakirdan/enginehost/internal/engine/soft"
)

var (
	// Global flags
	flagConfig   string
	flagDBPath   string
	flagLogLevel string
	flagBackend  string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "enginehost",
	Short: "Embed a rendering engine and drive it headlessly",
	Long: `enginehost starts an embedded engine, injects geometry and lights described
in scene manifests, and captures the rendered viewport.

Available commands:
  run       - Render a manifest and write the result to an image
  preview   - Watch the engine render in the terminal
  serve     - Stream the engine's frames to SSH viewers
  assets    - Import and list stored textures
  frames    - List and export archived frames
  formats   - Show the image formats the boundary accepts
  backends  - Show registered engine backends

Examples:
  enginehost run scene.yaml --frames 10 --out frame.png
  enginehost preview scene.yaml
  enginehost serve scene.yaml --ssh :2222
  enginehost assets import brick.png`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to host config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to texture/frame database (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagBackend, "backend", "", "Engine backend (overrides config)")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(previewCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(assetsCmd)
	rootCmd.AddCommand(framesCmd)
	rootCmd.AddCommand(formatsCmd)
	rootCmd.AddCommand(backendsCmd)
}
