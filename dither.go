package beadgrid

import (
	"context"
	"fmt"
	"strings"

	"github.com/makeworld-the-better-one/dither/v2"
	"github.com/setanarut/beadgrid/palette"
)

// DitherKernel names an error diffusion matrix.
type DitherKernel string

const (
	FloydSteinberg      DitherKernel = "floyd-steinberg"
	FalseFloydSteinberg DitherKernel = "false-floyd-steinberg"
	Atkinson            DitherKernel = "atkinson"
	SierraLite          DitherKernel = "sierra-lite"
	Stucki              DitherKernel = "stucki"
	Burkes              DitherKernel = "burkes"
	JarvisJudiceNinke   DitherKernel = "jarvis-judice-ninke"
)

var ditherKernels = map[DitherKernel]dither.ErrorDiffusionMatrix{
	FloydSteinberg:      dither.FloydSteinberg,
	FalseFloydSteinberg: dither.FalseFloydSteinberg,
	Atkinson:            dither.Atkinson,
	SierraLite:          dither.SierraLite,
	Stucki:              dither.Stucki,
	Burkes:              dither.Burkes,
	JarvisJudiceNinke:   dither.JarvisJudiceNinke,
}

// DitherKernels lists the supported kernel names.
func DitherKernels() []DitherKernel {
	return []DitherKernel{FloydSteinberg, FalseFloydSteinberg, Atkinson, SierraLite, Stucki, Burkes, JarvisJudiceNinke}
}

// ParseDitherKernel matches a kernel name case-insensitively.
func ParseDitherKernel(s string) (DitherKernel, error) {
	k := DitherKernel(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := ditherKernels[k]; !ok {
		return "", &ConfigError{"DitherKernel", s, "unknown kernel"}
	}
	return k, nil
}

// tap is one neighbor that receives a share of the error.
type tap struct {
	dx, dy int
	weight float64
}

// kernelTaps flattens a diffusion matrix into offsets from the current pixel.
func kernelTaps(m dither.ErrorDiffusionMatrix) []tap {
	if len(m) == 0 {
		return nil
	}
	cur := m.CurrentPixel()
	var taps []tap
	for dy, row := range m {
		for col, w := range row {
			if w == 0 {
				continue
			}
			taps = append(taps, tap{dx: col - cur, dy: dy, weight: float64(w)})
		}
	}
	return taps
}

func ditherTaps(k DitherKernel, strength float32) ([]tap, error) {
	m, ok := ditherKernels[k]
	if !ok {
		return nil, fmt.Errorf("%w: unknown dither kernel %q", ErrInvalidConfig, k)
	}
	if strength != 1 {
		m = dither.ErrorDiffusionStrength(m, strength)
	}
	return kernelTaps(m), nil
}

// ditherResolve resolves samples in raster order, pushing each cell's
// quantization error into its unprocessed neighbors. samples is the
// pre-quantization color each cell was resolved from.
func ditherResolve(ctx context.Context, grid *sampleGrid, resolver palette.Resolver, taps []tap) (entries []palette.Entry, samples []palette.RGB, err error) {
	w, h := grid.W, grid.H
	work := make([][3]float64, len(grid.Pix))
	for i, c := range grid.Pix {
		work[i] = [3]float64{float64(c.R), float64(c.G), float64(c.B)}
	}
	entries = make([]palette.Entry, len(grid.Pix))
	samples = make([]palette.RGB, len(grid.Pix))

	for y := range h {
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}
		for x := range w {
			i := grid.offset(x, y)
			if grid.isEmpty(i) {
				continue
			}
			cur := palette.RGB{R: clamp8(work[i][0]), G: clamp8(work[i][1]), B: clamp8(work[i][2])}
			e := resolver.Resolve(cur)
			entries[i] = e
			samples[i] = cur

			errR := float64(cur.R) - float64(e.Hex.R)
			errG := float64(cur.G) - float64(e.Hex.G)
			errB := float64(cur.B) - float64(e.Hex.B)
			if errR == 0 && errG == 0 && errB == 0 {
				continue
			}
			for _, t := range taps {
				nx, ny := x+t.dx, y+t.dy
				if nx < 0 || nx >= w || ny < 0 || ny >= h {
					continue
				}
				if ny == y && nx <= x {
					continue
				}
				n := grid.offset(nx, ny)
				if grid.isEmpty(n) {
					continue
				}
				work[n][0] += errR * t.weight
				work[n][1] += errG * t.weight
				work[n][2] += errB * t.weight
			}
		}
	}
	return entries, samples, nil
}
