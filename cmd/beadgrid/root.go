package main

import (
	"log/slog"
	"os"

	"github.com/setanarut/beadgrid"
	"github.com/spf13/cobra"
)

func newRootCmd(base beadgrid.Config) *cobra.Command {
	var verbose bool
	root := &cobra.Command{
		Use:   "beadgrid",
		Short: "Turn images into fuse-bead patterns",
		Long: "beadgrid resamples an image onto a bead grid, matches every cell to a\n" +
			"bead brand's catalogue and reports the beads you need.",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelInfo
			if verbose {
				level = slog.LevelDebug
			}
			h := slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})
			slog.SetDefault(slog.New(h))
		},
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", os.Getenv(beadgrid.EnvPrefix+"VERBOSE") != "", "log pipeline stages")

	root.AddCommand(
		newGenerateCmd(base),
		newPreviewCmd(base),
		newAnalyzeCmd(base),
		newBrandsCmd(),
	)
	return root
}
