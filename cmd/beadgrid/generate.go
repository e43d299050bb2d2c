package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/setanarut/beadgrid"
	"github.com/setanarut/beadgrid/render"
	"github.com/setanarut/beadgrid/utils"
	"github.com/spf13/cobra"
)

func newGenerateCmd(base beadgrid.Config) *cobra.Command {
	var (
		out       string
		materials string
		matOut    string
		legend    string
	)
	cmd := &cobra.Command{
		Use:   "generate <image>",
		Short: "Write a bead pattern image and its materials list",
		Args:  cobra.ExactArgs(1),
	}
	flags := bindConfigFlags(cmd, base)
	cmd.Flags().StringVarP(&out, "out", "o", "", "pattern image path (default <image>_pattern.png)")
	cmd.Flags().StringVar(&materials, "materials", "text", "materials list format (text, json, none)")
	cmd.Flags().StringVar(&matOut, "materials-out", "", "write the materials list to a file instead of stdout")
	cmd.Flags().StringVar(&legend, "legend", "", "also write a materials legend image")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		format, err := parseMaterialsFormat(materials)
		if err != nil {
			return err
		}
		cfg, err := flags.config()
		if err != nil {
			return err
		}
		p, err := loadAndGenerate(cmd, args[0], cfg)
		if err != nil {
			return err
		}

		img, err := render.Pattern(p, render.OptionsFromConfig(cfg))
		if err != nil {
			return err
		}
		if out == "" {
			out = strings.TrimSuffix(args[0], filepath.Ext(args[0])) + "_pattern.png"
		}
		if err := utils.SaveImage(img, out); err != nil {
			return err
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "wrote %s (%dx%d beads, %d colors)\n", out, p.Width, p.Height, len(p.Materials))

		if legend != "" && len(p.Materials) > 0 {
			limg, err := render.Legend(p.Materials, 24)
			if err != nil {
				return err
			}
			if err := utils.SaveImage(limg, legend); err != nil {
				return err
			}
		}

		if matOut == "" {
			return writeMaterials(cmd.OutOrStdout(), p, format)
		}
		f, err := os.Create(matOut)
		if err != nil {
			return err
		}
		if err := writeMaterials(f, p, format); err != nil {
			f.Close()
			return err
		}
		return f.Close()
	}
	return cmd
}

func loadAndGenerate(cmd *cobra.Command, path string, cfg beadgrid.Config) (*beadgrid.Pattern, error) {
	img, err := utils.ReadImage(path)
	if err != nil {
		return nil, err
	}
	p, err := beadgrid.Generate(cmd.Context(), img, cfg)
	if err != nil {
		return nil, fmt.Errorf("generate %s: %w", path, err)
	}
	return p, nil
}

type materialsReport struct {
	Brand     string               `json:"brand"`
	Width     int                  `json:"width"`
	Height    int                  `json:"height"`
	Total     int                  `json:"total"`
	Materials []beadgrid.BeadColor `json:"materials"`
}

// parseMaterialsFormat accepts text, json or none.
func parseMaterialsFormat(s string) (string, error) {
	switch f := strings.ToLower(strings.TrimSpace(s)); f {
	case "text", "json", "none":
		return f, nil
	case "":
		return "none", nil
	}
	return "", fmt.Errorf("unknown materials format %q", s)
}

// writeMaterials expects a format returned by parseMaterialsFormat.
func writeMaterials(w io.Writer, p *beadgrid.Pattern, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(materialsReport{
			Brand:     p.Brand.String(),
			Width:     p.Width,
			Height:    p.Height,
			Total:     p.Total(),
			Materials: p.Materials,
		})
	case "text":
		total := p.Total()
		tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		fmt.Fprintf(tw, "ID\tHEX\tCOUNT\tSHARE\n")
		for _, m := range p.Materials {
			fmt.Fprintf(tw, "%s\t%s\t%d\t%.1f%%\n", m.ID, m.Hex.Hex(), m.Count, 100*beadgrid.Share(m.Count, total))
		}
		fmt.Fprintf(tw, "total\t\t%d\t\n", total)
		return tw.Flush()
	}
	return nil
}
