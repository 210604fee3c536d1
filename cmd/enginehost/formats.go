package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/enginehost/internal/core"
	"github.com/vovakirdan/enginehost/internal/format"
)

var formatsCmd = &cobra.Command{
	Use:   "formats",
	Short: "List the image formats accepted at the boundary",
	Long: `Shows every boundary image format, its numeric value, the engine format it
maps to, and the byte size of a 4x4 base level.`,
	Args: cobra.NoArgs,
	Run:  runFormats,
}

func runFormats(_ *cobra.Command, _ []string) {
	fmt.Printf("  %-3s  %-14s  %-14s  %-10s  %s\n", "#", "Boundary", "Engine", "Compressed", "4x4 bytes")
	fmt.Printf("  %-3s  %-14s  %-14s  %-10s  %s\n", "-", "--------", "------", "----------", "---------")
	for f := core.ImageFormat(0); f < core.ImageFormatMax; f++ {
		ef := format.ToEngine(f)
		compressed := "no"
		if ef.Compressed() {
			compressed = "yes"
		}
		fmt.Printf("  %-3d  %-14s  %-14s  %-10s  %d\n", int32(f), f, ef, compressed, ef.LevelSize(4, 4))
	}
}
