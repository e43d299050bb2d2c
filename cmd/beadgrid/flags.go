package main

import (
	"strings"

	"github.com/setanarut/beadgrid"
	"github.com/setanarut/beadgrid/palette"
	"github.com/spf13/cobra"
)

// configFlags binds the pattern settings to a command's flags. Enum-valued
// settings are kept as strings until config() parses them.
type configFlags struct {
	cfg       beadgrid.Config
	brand     string
	shape     string
	size      string
	kernel    string
	gridColor string
}

func bindConfigFlags(cmd *cobra.Command, base beadgrid.Config) *configFlags {
	f := &configFlags{
		cfg:       base,
		brand:     base.Brand.String(),
		shape:     string(base.BeadShape),
		size:      string(base.BeadSize),
		kernel:    string(base.DitherKernel),
		gridColor: base.GridColor.Hex(),
	}
	fs := cmd.Flags()
	fs.IntVarP(&f.cfg.PixelWidth, "width", "w", base.PixelWidth, "grid width in beads")
	fs.StringVarP(&f.brand, "brand", "b", f.brand, "bead brand ("+strings.Join(brandNames(), ", ")+")")
	fs.IntVar(&f.cfg.Brightness, "brightness", base.Brightness, "brightness percent, 100 is neutral")
	fs.IntVar(&f.cfg.Contrast, "contrast", base.Contrast, "contrast percent, 100 is neutral")
	fs.IntVar(&f.cfg.Saturation, "saturation", base.Saturation, "saturation percent, 100 is neutral")
	fs.IntVar(&f.cfg.PosterizeLevels, "posterize", base.PosterizeLevels, "posterize level count, 0 disables")
	fs.IntVar(&f.cfg.ColorLimit, "colors", base.ColorLimit, "maximum distinct colors (0, 16, 32, 64, 128)")
	fs.BoolVar(&f.cfg.Mirrored, "mirror", base.Mirrored, "flip the pattern horizontally")
	fs.BoolVar(&f.cfg.Dithering, "dither", base.Dithering, "diffuse matching error into neighbouring beads")
	fs.StringVar(&f.kernel, "dither-kernel", f.kernel, "error diffusion kernel")
	fs.Float32Var(&f.cfg.DitherStrength, "dither-strength", base.DitherStrength, "share of the error to diffuse, in (0,1]")
	fs.BoolVar(&f.cfg.KeepTransparent, "keep-transparent", base.KeepTransparent, "leave transparent areas without beads")
	fs.StringVar(&f.shape, "shape", f.shape, "bead shape in exports (square, circle)")
	fs.StringVar(&f.size, "bead-size", f.size, "bead size (2.6mm, 5mm)")
	fs.IntVar(&f.cfg.ExportDPI, "dpi", base.ExportDPI, "export resolution (72, 300)")
	fs.BoolVar(&f.cfg.ShowLabels, "labels", base.ShowLabels, "draw bead ids on exports")
	fs.Float64Var(&f.cfg.GridOpacity, "grid-opacity", base.GridOpacity, "gridline opacity in [0,1]")
	fs.StringVar(&f.gridColor, "grid-color", f.gridColor, "gridline color as #RRGGBB")
	return f
}

// config parses the string flags and normalizes the result.
func (f *configFlags) config() (beadgrid.Config, error) {
	cfg := f.cfg
	var err error
	if cfg.Brand, err = palette.ParseBrand(f.brand); err != nil {
		return cfg, err
	}
	if cfg.BeadShape, err = beadgrid.ParseBeadShape(f.shape); err != nil {
		return cfg, err
	}
	if cfg.BeadSize, err = beadgrid.ParseBeadSize(f.size); err != nil {
		return cfg, err
	}
	if cfg.DitherKernel, err = beadgrid.ParseDitherKernel(f.kernel); err != nil {
		return cfg, err
	}
	if cfg.GridColor, err = palette.ParseHex(f.gridColor); err != nil {
		return cfg, err
	}
	return cfg.Normalize()
}

func brandNames() []string {
	var names []string
	for _, b := range palette.Brands() {
		names = append(names, b.String())
	}
	return names
}
