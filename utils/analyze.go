package utils

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"log/slog"
	"math"
	"slices"
	"strings"

	"github.com/cenkalti/dominantcolor"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/muesli/clusters"
	"github.com/muesli/kmeans"
	"github.com/setanarut/beadgrid/palette"
)

// ErrNoColors is returned when an image yields no opaque samples.
var ErrNoColors = errors.New("no colors found in image")

type PaletteMethod int

const (
	PaletteMethodDominantColor PaletteMethod = iota
	PaletteMethodKMeans
)

func (m PaletteMethod) String() string {
	switch m {
	case PaletteMethodKMeans:
		return "kmeans"
	default:
		return "dominantcolor"
	}
}

// ParsePaletteMethod accepts "dominantcolor" (or "dominant") and "kmeans".
func ParsePaletteMethod(s string) (PaletteMethod, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "dominantcolor", "dominant", "":
		return PaletteMethodDominantColor, nil
	case "kmeans", "k-means":
		return PaletteMethodKMeans, nil
	}
	return 0, fmt.Errorf("unknown palette method %q", s)
}

// Swatch is one extracted source color and its share of the image.
type Swatch struct {
	Color  palette.RGB
	Weight float64
}

// SortSwatchesByBrightness orders swatches from darkest to brightest by
// relative luminance in linear RGB.
func SortSwatchesByBrightness(swatches []Swatch) {
	slices.SortStableFunc(swatches, func(a, b Swatch) int {
		return compareBrightness(a.Color, b.Color)
	})
}

func compareBrightness(a, b palette.RGB) int {
	ya, yb := relativeLuminance(a), relativeLuminance(b)
	switch {
	case ya < yb:
		return -1
	case ya > yb:
		return 1
	}
	return 0
}

func relativeLuminance(c palette.RGB) float64 {
	r, g, b := c.Colorful().LinearRgb()
	return 0.2126*r + 0.7152*g + 0.0722*b
}

type weightedColor struct {
	col    colorful.Color
	weight float64
}

func dominantCandidates(img image.Image, k int) []weightedColor {
	found := dominantcolor.FindWeight(img, max(24, k*8))
	out := make([]weightedColor, 0, len(found))
	for _, c := range found {
		col, _ := colorful.MakeColor(color.RGBA{R: c.RGBA.R, G: c.RGBA.G, B: c.RGBA.B, A: 255})
		out = append(out, weightedColor{col: col.Clamped(), weight: max(c.Weight, 1e-6)})
	}
	return out
}

// maxKMeansSamples bounds the k-means dataset; larger images are strided.
const maxKMeansSamples = 12000

func kmeansCandidates(img image.Image, k int) ([]weightedColor, error) {
	b := img.Bounds()
	width, height := b.Dx(), b.Dy()
	step := 1
	if width*height > maxKMeansSamples {
		step = int(math.Sqrt(float64(width*height)/maxKMeansSamples)) + 1
	}

	var dataset clusters.Observations
	for y := b.Min.Y; y < b.Max.Y; y += step {
		for x := b.Min.X; x < b.Max.X; x += step {
			r, g, bl, a := img.At(x, y).RGBA()
			if a == 0 {
				continue
			}
			// Undo premultiplication so edge pixels keep their hue.
			dataset = append(dataset, clusters.Coordinates{
				float64(r) / float64(a),
				float64(g) / float64(a),
				float64(bl) / float64(a),
			})
		}
	}
	if len(dataset) == 0 {
		return nil, nil
	}

	n := min(max(k*4, k+2), len(dataset))
	cc, err := kmeans.New().Partition(dataset, n)
	if err != nil {
		return nil, fmt.Errorf("kmeans partition: %w", err)
	}
	slices.SortStableFunc(cc, func(a, b clusters.Cluster) int {
		return len(b.Observations) - len(a.Observations)
	})

	out := make([]weightedColor, 0, len(cc))
	for _, c := range cc {
		if len(c.Center) < 3 || len(c.Observations) == 0 {
			continue
		}
		col := colorful.Color{R: c.Center[0], G: c.Center[1], B: c.Center[2]}.Clamped()
		out = append(out, weightedColor{col: col, weight: float64(len(c.Observations))})
	}
	return out, nil
}

// selectDiverse picks k candidates greedily: the heaviest first, then
// whichever candidate is farthest in CIELAB from everything picked so far,
// scaled by its weight.
func selectDiverse(cands []weightedColor, k int) []weightedColor {
	if k <= 0 || len(cands) == 0 {
		return nil
	}
	k = min(k, len(cands))
	labs := make([][3]float64, len(cands))
	maxW, seed := 0.0, 0
	for i, c := range cands {
		l, a, b := c.col.Lab()
		labs[i] = [3]float64{l, a, b}
		if c.weight > maxW {
			maxW, seed = c.weight, i
		}
	}

	picked := []int{seed}
	used := make([]bool, len(cands))
	used[seed] = true
	for len(picked) < k {
		best, bestScore := -1, -1.0
		for i := range cands {
			if used[i] {
				continue
			}
			nearest := math.MaxFloat64
			for _, p := range picked {
				d0 := labs[i][0] - labs[p][0]
				d1 := labs[i][1] - labs[p][1]
				d2 := labs[i][2] - labs[p][2]
				nearest = min(nearest, d0*d0+d1*d1+d2*d2)
			}
			score := math.Sqrt(nearest) * (0.55 + 0.45*math.Sqrt(cands[i].weight/maxW))
			if score > bestScore {
				best, bestScore = i, score
			}
		}
		if best < 0 {
			break
		}
		used[best] = true
		picked = append(picked, best)
	}

	out := make([]weightedColor, len(picked))
	for i, p := range picked {
		out[i] = cands[p]
	}
	return out
}

// ExtractPalette returns up to k representative source colors with weights
// normalized to sum to 1. The k-means method falls back to dominant colors
// when clustering yields nothing.
func ExtractPalette(img image.Image, k int, method PaletteMethod) ([]Swatch, error) {
	if img == nil || img.Bounds().Empty() {
		return nil, ErrNoColors
	}
	if k <= 0 {
		return nil, fmt.Errorf("palette size must be positive, got %d", k)
	}

	var cands []weightedColor
	if method == PaletteMethodKMeans {
		var err error
		cands, err = kmeansCandidates(img, k)
		if err != nil {
			return nil, err
		}
		if len(cands) == 0 {
			slog.Warn("kmeans returned an empty palette, falling back to dominant colors")
		}
	}
	if len(cands) == 0 {
		cands = dominantCandidates(img, k)
	}
	if len(cands) == 0 {
		return nil, ErrNoColors
	}

	selected := selectDiverse(cands, k)
	total := 0.0
	for _, c := range selected {
		total += c.weight
	}
	out := make([]Swatch, len(selected))
	for i, c := range selected {
		out[i] = Swatch{Color: palette.FromColorful(c.col), Weight: c.weight / total}
	}
	return out, nil
}

// Suggestion is a catalogue entry proposed for a source image.
type Suggestion struct {
	Entry palette.Entry
	// Weight is the summed share of every swatch that resolved to Entry.
	Weight float64
	// Sources are the swatches that resolved to Entry.
	Sources []palette.RGB
}

// SuggestBeads extracts k source colors and maps each to its nearest entry
// under resolver. Swatches resolving to the same entry are merged. The result
// is ordered dark to bright.
func SuggestBeads(img image.Image, k int, method PaletteMethod, resolver palette.Resolver) ([]Suggestion, error) {
	swatches, err := ExtractPalette(img, k, method)
	if err != nil {
		return nil, err
	}
	index := make(map[string]int)
	var out []Suggestion
	for _, s := range swatches {
		e := resolver.Resolve(s.Color)
		if i, ok := index[e.ID]; ok {
			out[i].Weight += s.Weight
			out[i].Sources = append(out[i].Sources, s.Color)
			continue
		}
		index[e.ID] = len(out)
		out = append(out, Suggestion{Entry: e, Weight: s.Weight, Sources: []palette.RGB{s.Color}})
	}
	slices.SortStableFunc(out, func(a, b Suggestion) int {
		return compareBrightness(a.Entry.Hex, b.Entry.Hex)
	})
	return out, nil
}
