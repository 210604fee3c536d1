package main

import (
	"fmt"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/enginehost/internal/assets"
)

var (
	flagFrameLabel string
	flagFrameLimit int
)

var framesCmd = &cobra.Command{
	Use:   "frames",
	Short: "List and export archived frames",
}

var framesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List archived frames, newest first",
	Args:  cobra.NoArgs,
	Run:   runFramesList,
}

var framesExportCmd = &cobra.Command{
	Use:   "export <id> <file>",
	Short: "Write an archived frame to a PNG or BMP file",
	Long: `Examples:
  enginehost frames export 12 frame.png
  enginehost frames export 12 frame.bmp`,
	Args: cobra.ExactArgs(2),
	Run:  runFramesExport,
}

func init() {
	framesListCmd.Flags().StringVar(&flagFrameLabel, "label", "", "Only frames archived under this label")
	framesListCmd.Flags().IntVar(&flagFrameLimit, "limit", 20, "Maximum number of frames to list")
	framesCmd.AddCommand(framesListCmd)
	framesCmd.AddCommand(framesExportCmd)
}

func runFramesList(_ *cobra.Command, _ []string) {
	store := openStore()
	defer store.Close()

	entries, err := store.Frames(flagFrameLabel, flagFrameLimit)
	if err != nil {
		fail("%v", err)
	}
	if len(entries) == 0 {
		fmt.Println("No frames archived.")
		return
	}

	fmt.Printf("  %-6s  %-16s  %-11s  %s\n", "ID", "Label", "Size", "Captured")
	fmt.Printf("  %-6s  %-16s  %-11s  %s\n", "--", "-----", "----", "--------")
	for _, e := range entries {
		fmt.Printf("  %-6d  %-16s  %-11s  %s\n",
			e.ID, e.Label, fmt.Sprintf("%dx%d", e.Width, e.Height), humanize.Time(e.CreatedAt))
	}
}

func runFramesExport(_ *cobra.Command, args []string) {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		fail("invalid frame id %q", args[0])
	}

	store := openStore()
	defer store.Close()

	entry, frame, err := store.Frame(id)
	if err != nil {
		fail("frame %d: %v", id, err)
	}
	if err := assets.Save(args[1], assets.FrameImage(frame)); err != nil {
		fail("%v", err)
	}
	fmt.Printf("Wrote frame #%d (%s, %dx%d) to %s\n", entry.ID, entry.Label, entry.Width, entry.Height, args[1])
}
