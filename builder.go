package beadgrid

import (
	"context"
	"fmt"
	"image"
	"log/slog"
	"runtime"
	"time"

	"github.com/setanarut/beadgrid/palette"
	"golang.org/x/sync/errgroup"
)

// Cell is one bead position of a generated pattern.
type Cell struct {
	X, Y  int
	Entry palette.Entry
	// Sample is the color the cell was matched from, after tone,
	// posterize and any diffused error.
	Sample palette.RGB
	// Empty cells hold no bead (KeepTransparent only).
	Empty bool
}

// Pattern is the result of one generation pass. It is never updated in
// place; a new config produces a new Pattern.
type Pattern struct {
	Width, Height int
	Brand         palette.Brand
	Config        Config
	Cells         []Cell // row-major
	Materials     []BeadColor
}

// At returns the cell at column x, row y.
func (p *Pattern) At(x, y int) Cell {
	return p.Cells[y*p.Width+x]
}

// Grid returns the resolved entries as rows.
func (p *Pattern) Grid() [][]palette.Entry {
	rows := make([][]palette.Entry, p.Height)
	for y := range p.Height {
		rows[y] = make([]palette.Entry, p.Width)
		for x := range p.Width {
			rows[y][x] = p.Cells[y*p.Width+x].Entry
		}
	}
	return rows
}

// Total is the number of beads in the pattern.
func (p *Pattern) Total() int {
	return TotalBeads(p.Materials)
}

// PatternBuilder runs the conversion stages for one image and config. The
// intermediate state is exported for inspection and belongs to a single
// Build call.
type PatternBuilder struct {
	InputImage image.Image
	Config     Config
	Logger     *slog.Logger

	Resolver palette.Resolver
	Samples  *sampleGrid
	Adjusted []palette.RGB
	Sources  []palette.RGB
	Entries  []palette.Entry
}

func NewPatternBuilder(input image.Image, cfg Config) *PatternBuilder {
	return &PatternBuilder{
		InputImage: input,
		Config:     cfg,
	}
}

// Generate normalizes cfg and converts img into a bead pattern. It is safe to
// call concurrently; each call works on its own state.
func Generate(ctx context.Context, img image.Image, cfg Config) (*Pattern, error) {
	cfg, err := cfg.Normalize()
	if err != nil {
		return nil, err
	}
	return NewPatternBuilder(img, cfg).Build(ctx)
}

// Build runs resample, mirror, tone, posterize, dither-or-direct resolution,
// the color limit and aggregation, in that order.
func (pb *PatternBuilder) Build(ctx context.Context) (*Pattern, error) {
	log := pb.Logger
	if log == nil {
		log = slog.Default()
	}
	cfg := pb.Config
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	resolver, err := palette.NewResolver(cfg.Brand)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	pb.Resolver = resolver
	start := time.Now()

	if err := pb.resample(ctx); err != nil {
		return nil, err
	}
	log.Debug("resampled", "width", pb.Samples.W, "height", pb.Samples.H, "mirrored", cfg.Mirrored)
	if pb.Samples.W != cfg.PixelWidth {
		log.Debug("grid narrowed to cap height", "requested", cfg.PixelWidth, "max_height", MaxPixels)
	}

	if err := pb.adjust(ctx); err != nil {
		return nil, err
	}

	if cfg.Dithering {
		taps, err := ditherTaps(cfg.DitherKernel, cfg.DitherStrength)
		if err != nil {
			return nil, err
		}
		grid := &sampleGrid{W: pb.Samples.W, H: pb.Samples.H, Pix: pb.Adjusted, Empty: pb.Samples.Empty}
		pb.Entries, pb.Sources, err = ditherResolve(ctx, grid, resolver, taps)
		if err != nil {
			return nil, err
		}
		log.Debug("dithered", "kernel", cfg.DitherKernel, "strength", cfg.DitherStrength)
	} else {
		if err := pb.resolveDirect(ctx); err != nil {
			return nil, err
		}
		log.Debug("resolved", "brand", cfg.Brand)
	}

	if n := limitColors(pb.Entries, pb.Sources, pb.Samples.isEmpty, resolver, cfg.ColorLimit); n > 0 {
		log.Debug("color limit applied", "limit", cfg.ColorLimit, "reassigned", n)
	}

	p := pb.assemble()
	log.Debug("pattern generated",
		"cells", len(p.Cells), "colors", len(p.Materials), "beads", p.Total(), "elapsed", time.Since(start))
	return p, nil
}

func (pb *PatternBuilder) resample(ctx context.Context) error {
	grid, err := resample(ctx, pb.InputImage, pb.Config.PixelWidth, pb.Config.KeepTransparent)
	if err != nil {
		return err
	}
	if pb.Config.Mirrored {
		grid.mirror()
	}
	pb.Samples = grid
	return nil
}

// adjust applies tone and posterize to every sample, one row per task.
func (pb *PatternBuilder) adjust(ctx context.Context) error {
	cfg := pb.Config
	w := pb.Samples.W
	pb.Adjusted = make([]palette.RGB, len(pb.Samples.Pix))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, runtime.GOMAXPROCS(0)))
	for y := range pb.Samples.H {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			for i := y * w; i < (y+1)*w; i++ {
				c := AdjustTone(pb.Samples.Pix[i], cfg.Brightness, cfg.Contrast, cfg.Saturation)
				pb.Adjusted[i] = Posterize(c, cfg.PosterizeLevels)
			}
			return nil
		})
	}
	return g.Wait()
}

// resolveDirect matches every cell on its own. Rows are independent, so they
// are split across workers.
func (pb *PatternBuilder) resolveDirect(ctx context.Context) error {
	w, h := pb.Samples.W, pb.Samples.H
	pb.Entries = make([]palette.Entry, w*h)
	pb.Sources = pb.Adjusted

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, runtime.GOMAXPROCS(0)))
	for y := range h {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			for x := range w {
				i := y*w + x
				if pb.Samples.isEmpty(i) {
					continue
				}
				pb.Entries[i] = pb.Resolver.Resolve(pb.Adjusted[i])
			}
			return nil
		})
	}
	return g.Wait()
}

func (pb *PatternBuilder) assemble() *Pattern {
	w, h := pb.Samples.W, pb.Samples.H
	p := &Pattern{
		Width:  w,
		Height: h,
		Brand:  pb.Config.Brand,
		Config: pb.Config,
		Cells:  make([]Cell, w*h),
	}
	for y := range h {
		for x := range w {
			i := y*w + x
			if pb.Samples.isEmpty(i) {
				p.Cells[i] = Cell{X: x, Y: y, Empty: true}
				continue
			}
			p.Cells[i] = Cell{X: x, Y: y, Entry: pb.Entries[i], Sample: pb.Sources[i]}
		}
	}
	p.Materials = aggregate(pb.Entries, pb.Samples.isEmpty, pb.Resolver)
	if p.Materials == nil {
		p.Materials = []BeadColor{}
	}
	return p
}
