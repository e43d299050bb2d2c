package beadgrid

import (
	"context"
	"image"
	"math"
	"runtime"

	"github.com/disintegration/imaging"
	"github.com/setanarut/beadgrid/palette"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// sampleGrid holds one representative color per bead cell, row-major.
type sampleGrid struct {
	W, H  int
	Pix   []palette.RGB
	Empty []bool // nil unless KeepTransparent produced empty cells
}

func (g *sampleGrid) offset(x, y int) int {
	return y*g.W + x
}

// span is the run of source pixels covered by one output cell along one axis.
type span struct {
	start   int
	weights []float64 // normalized, sum to 1
}

// GridHeight is the row count that keeps the source aspect ratio.
func GridHeight(srcW, srcH, targetW int) int {
	if srcW <= 0 || srcH <= 0 || targetW <= 0 {
		return 0
	}
	return max(1, int(math.Round(float64(srcH)*float64(targetW)/float64(srcW))))
}

// GridSize is the grid for a targetW-wide pattern of a srcW×srcH image. When
// the aspect-preserving height would exceed MaxPixels, the height is capped
// and the width narrowed to keep the aspect ratio.
func GridSize(srcW, srcH, targetW int) (w, h int) {
	h = GridHeight(srcW, srcH, targetW)
	if h <= MaxPixels {
		return targetW, h
	}
	w = max(1, int(math.Round(float64(srcW)*MaxPixels/float64(srcH))))
	return min(w, targetW), MaxPixels
}

// boxSpans splits [0,src) into n equal intervals and weights every source
// pixel by its fractional overlap with each interval.
func boxSpans(src, n int) []span {
	spans := make([]span, n)
	scale := float64(src) / float64(n)
	for i := range n {
		a := float64(i) * float64(src) / float64(n)
		b := float64(i+1) * float64(src) / float64(n)
		first := int(math.Floor(a))
		last := min(int(math.Ceil(b))-1, src-1)
		first = min(first, last)
		ws := make([]float64, 0, last-first+1)
		for s := first; s <= last; s++ {
			overlap := min(b, float64(s+1)) - max(a, float64(s))
			ws = append(ws, max(0, overlap)/scale)
		}
		spans[i] = span{start: first, weights: ws}
	}
	return spans
}

// resample reduces img to the GridSize grid. Each cell is the area-weighted
// mean of the source rectangle it covers, averaged with premultiplied alpha.
// Both passes walk the sparse spans: the horizontal pass fills H one source
// row at a time, the vertical pass sums weighted rows of H.
func resample(ctx context.Context, img image.Image, targetW int, keepTransparent bool) (*sampleGrid, error) {
	if img == nil {
		return nil, ErrEmptyImage
	}
	bounds := img.Bounds()
	srcW, srcH := bounds.Dx(), bounds.Dy()
	if srcW <= 0 || srcH <= 0 {
		return nil, ErrEmptyImage
	}
	outW, outH := GridSize(srcW, srcH, targetW)

	src := imaging.Clone(img)
	xSpans := boxSpans(srcW, outW)
	ySpans := boxSpans(srcH, outH)

	// H: srcH × (outW*4), columns interleaved as premultiplied r,g,b then alpha.
	const nc = 4
	h := mat.NewDense(srcH, outW*nc, nil)
	hRaw := h.RawMatrix()

	g, gctx := errgroup.WithContext(ctx)
	workers := max(1, runtime.GOMAXPROCS(0))
	rowsPer := (srcH + workers - 1) / workers
	for y0 := 0; y0 < srcH; y0 += rowsPer {
		y1 := min(srcH, y0+rowsPer)
		g.Go(func() error {
			for y := y0; y < y1; y++ {
				if err := gctx.Err(); err != nil {
					return err
				}
				row := hRaw.Data[y*hRaw.Stride : y*hRaw.Stride+outW*nc]
				pix := src.Pix[y*src.Stride : y*src.Stride+srcW*4]
				for ox, sp := range xSpans {
					var r, gr, b, a float64
					for k, w := range sp.weights {
						off := (sp.start + k) * 4
						alpha := float64(pix[off+3]) / 255.0
						wa := w * alpha
						r += wa * float64(pix[off])
						gr += wa * float64(pix[off+1])
						b += wa * float64(pix[off+2])
						a += wa
					}
					o := ox * nc
					row[o], row[o+1], row[o+2], row[o+3] = r, gr, b, a
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := mat.NewDense(outH, outW*nc, nil)
	g, gctx = errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for oy, sp := range ySpans {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			dst := out.RawRowView(oy)
			for k, w := range sp.weights {
				floats.AddScaled(dst, w, h.RawRowView(sp.start+k))
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	grid := &sampleGrid{W: outW, H: outH, Pix: make([]palette.RGB, outW*outH)}
	for y := range outH {
		for x := range outW {
			o := x * nc
			pr, pg, pb, a := out.At(y, o), out.At(y, o+1), out.At(y, o+2), out.At(y, o+3)
			i := grid.offset(x, y)
			if keepTransparent {
				if a < 0.5 {
					if grid.Empty == nil {
						grid.Empty = make([]bool, outW*outH)
					}
					grid.Empty[i] = true
					continue
				}
				grid.Pix[i] = palette.RGB{R: clamp8(pr / a), G: clamp8(pg / a), B: clamp8(pb / a)}
				continue
			}
			// Composite partial coverage onto white.
			bg := 255 * (1 - a)
			grid.Pix[i] = palette.RGB{R: clamp8(pr + bg), G: clamp8(pg + bg), B: clamp8(pb + bg)}
		}
	}
	return grid, nil
}

// mirror flips the grid horizontally in place.
func (g *sampleGrid) mirror() {
	for y := range g.H {
		row := g.Pix[y*g.W : (y+1)*g.W]
		for l, r := 0, g.W-1; l < r; l, r = l+1, r-1 {
			row[l], row[r] = row[r], row[l]
		}
		if g.Empty != nil {
			er := g.Empty[y*g.W : (y+1)*g.W]
			for l, r := 0, g.W-1; l < r; l, r = l+1, r-1 {
				er[l], er[r] = er[r], er[l]
			}
		}
	}
}

func (g *sampleGrid) isEmpty(i int) bool {
	return g.Empty != nil && g.Empty[i]
}
