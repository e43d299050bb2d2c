package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/setanarut/beadgrid"
	"github.com/setanarut/beadgrid/palette"
	"github.com/setanarut/beadgrid/utils"
	"github.com/spf13/cobra"
)

func newAnalyzeCmd(base beadgrid.Config) *cobra.Command {
	var (
		k      int
		method string
		brand  string
	)
	cmd := &cobra.Command{
		Use:   "analyze <image>",
		Short: "List the dominant colors of an image and the beads closest to them",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := utils.ParsePaletteMethod(method)
			if err != nil {
				return err
			}
			b, err := palette.ParseBrand(brand)
			if err != nil {
				return err
			}
			resolver, err := palette.NewResolver(b)
			if err != nil {
				return err
			}
			img, err := utils.ReadImage(args[0])
			if err != nil {
				return err
			}
			suggestions, err := utils.SuggestBeads(img, k, m, resolver)
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintf(tw, "BEAD\tHEX\tSHARE\tSOURCE\n")
			for _, s := range suggestions {
				src := ""
				for i, c := range s.Sources {
					if i > 0 {
						src += " "
					}
					src += c.Hex()
				}
				fmt.Fprintf(tw, "%s\t%s\t%.1f%%\t%s\n", s.Entry.ID, s.Entry.Hex.Hex(), 100*s.Weight, src)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().IntVarP(&k, "colors", "k", 8, "number of source colors to extract")
	cmd.Flags().StringVar(&method, "method", utils.PaletteMethodDominantColor.String(), "extraction method (dominantcolor, kmeans)")
	cmd.Flags().StringVarP(&brand, "brand", "b", base.Brand.String(), "bead brand to match against")
	return cmd
}
