package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/enginehost/internal/assets"
	"github.com/vovakirdan/enginehost/internal/storage"
)

var flagAssetName string

var assetsCmd = &cobra.Command{
	Use:   "assets",
	Short: "Manage textures stored in the database",
	Long: `Textures in the database are resolved by name when a mesh asks for one.
Names are matched after Unicode NFC normalization; the assets directory
from the config is searched when the database has no match.`,
}

var assetsImportCmd = &cobra.Command{
	Use:   "import <file>...",
	Short: "Decode PNG/BMP/WebP files and store them as RGBA8 textures",
	Long: `Decode each file and store it under its base name without extension.

Examples:
  enginehost assets import brick.png grass.webp
  enginehost assets import ./tex/wall_01.bmp --name wall`,
	Args: cobra.MinimumNArgs(1),
	Run:  runAssetsImport,
}

var assetsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored textures",
	Args:  cobra.NoArgs,
	Run:   runAssetsList,
}

func init() {
	assetsImportCmd.Flags().StringVar(&flagAssetName, "name", "", "Texture name (only with a single file)")
	assetsCmd.AddCommand(assetsImportCmd)
	assetsCmd.AddCommand(assetsListCmd)
}

func openStore() *storage.Store {
	cfg, err := loadConfig()
	if err != nil {
		fail("%v", err)
	}
	store, err := storage.Open(cfg.Storage.Path)
	if err != nil {
		fail("%v", err)
	}
	return store
}

func runAssetsImport(_ *cobra.Command, args []string) {
	if flagAssetName != "" && len(args) > 1 {
		fail("--name needs exactly one file")
	}

	store := openStore()
	defer store.Close()

	for _, path := range args {
		desc, err := assets.DecodeFile(path)
		if err != nil {
			fail("%v", err)
		}

		name := flagAssetName
		if name == "" {
			name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		}
		if err := store.PutTexture(name, desc); err != nil {
			fail("%v", err)
		}
		fmt.Printf("Imported %s as %q (%dx%d %s)\n", path, storage.TextureKey(name), desc.Width, desc.Height, desc.Format)
	}
}

func runAssetsList(_ *cobra.Command, _ []string) {
	store := openStore()
	defer store.Close()

	entries, err := store.Textures()
	if err != nil {
		fail("%v", err)
	}
	if len(entries) == 0 {
		fmt.Println("No textures stored.")
		fmt.Println("Run 'enginehost assets import <file>' to add one.")
		return
	}

	maxNameLen := 4 // "Name" header
	for _, e := range entries {
		maxNameLen = max(maxNameLen, len(e.Name))
	}

	fmt.Printf("  %-*s  %-10s  %-11s  %-9s  %s\n", maxNameLen, "Name", "Format", "Size", "Bytes", "Added")
	fmt.Printf("  %-*s  %-10s  %-11s  %-9s  %s\n", maxNameLen, "----", "------", "----", "-----", "-----")
	for _, e := range entries {
		fmt.Printf("  %-*s  %-10s  %-11s  %-9s  %s\n",
			maxNameLen, e.Name, e.Format,
			fmt.Sprintf("%dx%d", e.Width, e.Height),
			humanize.Bytes(uint64(e.Size)),
			humanize.Time(e.CreatedAt))
	}
}
