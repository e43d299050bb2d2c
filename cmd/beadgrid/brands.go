package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/setanarut/beadgrid/palette"
	"github.com/spf13/cobra"
)

func newBrandsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "brands",
		Short: "List the supported bead brands",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintf(tw, "BRAND\tNAME\tCOLORS\n")
			for _, b := range palette.Brands() {
				n := "any"
				if c := palette.Catalogue(b); c != nil {
					n = fmt.Sprint(len(c))
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\n", b, b.DisplayName(), n)
			}
			return tw.Flush()
		},
	}
}
