package main

import (
	"fmt"

	"github.com/setanarut/beadgrid"
	"github.com/setanarut/beadgrid/render"
	"github.com/spf13/cobra"
)

func newPreviewCmd(base beadgrid.Config) *cobra.Command {
	var top int
	cmd := &cobra.Command{
		Use:   "preview <image>",
		Short: "Show a pattern in the terminal",
		Args:  cobra.ExactArgs(1),
	}
	flags := bindConfigFlags(cmd, base)
	cmd.Flags().IntVar(&top, "top", 10, "number of materials to list, 0 for all")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		cfg, err := flags.config()
		if err != nil {
			return err
		}
		p, err := loadAndGenerate(cmd, args[0], cfg)
		if err != nil {
			return err
		}
		w := cmd.OutOrStdout()
		fmt.Fprint(w, render.Terminal(p, render.TerminalWidth(100)-2))

		total := p.Total()
		fmt.Fprintf(w, "%s  %dx%d  %d beads  %d colors\n", p.Brand.DisplayName(), p.Width, p.Height, total, len(p.Materials))
		shown := p.Materials
		if top > 0 && len(shown) > top {
			shown = shown[:top]
		}
		for _, m := range shown {
			fmt.Fprintf(w, "\033[48;2;%d;%d;%dm    \033[0m %s\n", m.Hex.R, m.Hex.G, m.Hex.B, render.LegendLine(m, total))
		}
		if rest := len(p.Materials) - len(shown); rest > 0 {
			fmt.Fprintf(w, "... %d more\n", rest)
		}
		return nil
	}
	return cmd
}
