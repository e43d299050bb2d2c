package render

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"math"
	"slices"

	"github.com/disintegration/imaging"
	"github.com/setanarut/beadgrid"
	"github.com/setanarut/beadgrid/palette"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// ErrUnsupportedDPI is returned for export resolutions outside
// beadgrid.ExportDPIs.
var ErrUnsupportedDPI = errors.New("unsupported export dpi")

// Options controls pattern rasterization.
type Options struct {
	DPI         int
	BeadMM      float64
	Shape       beadgrid.BeadShape
	GridColor   palette.RGB
	GridOpacity float64
	ShowLabels  bool
}

// OptionsFromConfig copies the export fields of cfg.
func OptionsFromConfig(cfg beadgrid.Config) Options {
	return Options{
		DPI:         cfg.ExportDPI,
		BeadMM:      cfg.BeadSize.Millimeters(),
		Shape:       cfg.BeadShape,
		GridColor:   cfg.GridColor,
		GridOpacity: cfg.GridOpacity,
		ShowLabels:  cfg.ShowLabels,
	}
}

const minCellPx = 4

// CellSize is the edge length of one bead in pixels at dpi.
func CellSize(beadMM float64, dpi int) int {
	return max(minCellPx, int(math.Round(beadMM/25.4*float64(dpi))))
}

// majorEvery is the cell interval of the thicker gridlines.
const majorEvery = 10

var labelFace = basicfont.Face7x13

// Pattern rasterizes p onto a white canvas.
func Pattern(p *beadgrid.Pattern, opts Options) (*image.NRGBA, error) {
	if !slices.Contains(beadgrid.ExportDPIs, opts.DPI) {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedDPI, opts.DPI)
	}
	if p == nil || p.Width <= 0 || p.Height <= 0 {
		return nil, beadgrid.ErrEmptyImage
	}
	cs := CellSize(opts.BeadMM, opts.DPI)
	dst := imaging.New(p.Width*cs, p.Height*cs, color.White)

	var mask image.Image
	if opts.Shape == beadgrid.Circle {
		mask = circleMask(cs)
	}
	for _, cell := range p.Cells {
		if cell.Empty {
			continue
		}
		r := image.Rect(cell.X*cs, cell.Y*cs, (cell.X+1)*cs, (cell.Y+1)*cs)
		src := image.NewUniform(cell.Entry.Hex)
		if mask != nil {
			draw.DrawMask(dst, r, src, image.Point{}, mask, image.Point{}, draw.Over)
		} else {
			draw.Draw(dst, r, src, image.Point{}, draw.Src)
		}
	}

	if opts.GridOpacity > 0 {
		drawGrid(dst, p.Width, p.Height, cs, opts)
	}
	if opts.ShowLabels {
		drawLabels(dst, p, cs)
	}
	return dst, nil
}

// circleMask is an antialiased disc inscribed in a size×size square.
func circleMask(size int) *image.Alpha {
	m := image.NewAlpha(image.Rect(0, 0, size, size))
	c := float64(size) / 2
	rad := c - 0.5
	for y := range size {
		for x := range size {
			d := math.Hypot(float64(x)+0.5-c, float64(y)+0.5-c)
			cov := max(0, min(1, rad-d+0.5))
			m.SetAlpha(x, y, color.Alpha{A: uint8(math.Round(cov * 255))})
		}
	}
	return m
}

func lineWidths(cs int) (minor, major int) {
	minor = max(1, cs/16)
	major = max(minor+1, cs/8)
	return minor, major
}

// drawGrid collects every gridline into one mask so crossings are blended
// once.
func drawGrid(dst *image.NRGBA, w, h, cs int, opts Options) {
	bounds := dst.Bounds()
	mask := image.NewAlpha(bounds)
	on := image.NewUniform(color.Opaque)
	minor, major := lineWidths(cs)
	width := func(i, last int) int {
		if i%majorEvery == 0 || i == last {
			return major
		}
		return minor
	}
	for i := 0; i <= w; i++ {
		lw := width(i, w)
		x := min(i*cs-lw/2, bounds.Max.X-lw)
		draw.Draw(mask, image.Rect(x, 0, x+lw, bounds.Max.Y).Intersect(bounds), on, image.Point{}, draw.Src)
	}
	for j := 0; j <= h; j++ {
		lw := width(j, h)
		y := min(j*cs-lw/2, bounds.Max.Y-lw)
		draw.Draw(mask, image.Rect(0, y, bounds.Max.X, y+lw).Intersect(bounds), on, image.Point{}, draw.Src)
	}

	a := uint8(math.Round(max(0, min(1, opts.GridOpacity)) * 255))
	src := image.NewUniform(color.NRGBA{R: opts.GridColor.R, G: opts.GridColor.G, B: opts.GridColor.B, A: a})
	draw.DrawMask(dst, bounds, src, image.Point{}, mask, image.Point{}, draw.Over)
}

// LabelColor picks black or white text for a bead of color c.
func LabelColor(c palette.RGB) color.Color {
	if palette.Luminance(c) > 140 {
		return color.Black
	}
	return color.White
}

func drawLabels(dst *image.NRGBA, p *beadgrid.Pattern, cs int) {
	metrics := labelFace.Metrics()
	textH := (metrics.Ascent + metrics.Descent).Ceil()
	if textH > cs-2 {
		return
	}
	d := &font.Drawer{Dst: dst, Face: labelFace}
	for _, cell := range p.Cells {
		if cell.Empty {
			continue
		}
		adv := d.MeasureString(cell.Entry.ID).Ceil()
		if adv > cs-2 {
			continue
		}
		x := cell.X*cs + (cs-adv)/2
		y := cell.Y*cs + (cs-textH)/2 + metrics.Ascent.Ceil()
		d.Src = image.NewUniform(LabelColor(cell.Entry.Hex))
		d.Dot = fixed.P(x, y)
		d.DrawString(cell.Entry.ID)
	}
}
