package beadgrid

import (
	"fmt"
	"math"

	"github.com/setanarut/beadgrid/palette"
)

// PosterizeSchedule maps a merge-strength index to a per-channel level count.
// Index 0 disables posterization, index 10 merges hardest (2 levels).
var PosterizeSchedule = [...]int{0, 40, 30, 24, 18, 14, 10, 7, 5, 3, 2}

// PosterizeLevelAt returns the level count for a schedule index.
func PosterizeLevelAt(index int) (int, error) {
	if index < 0 || index >= len(PosterizeSchedule) {
		return 0, &ConfigError{"PosterizeIndex", index, fmt.Sprintf("must be within [0,%d]", len(PosterizeSchedule)-1)}
	}
	return PosterizeSchedule[index], nil
}

// PosterizeIndexOf is the inverse of PosterizeLevelAt.
func PosterizeIndexOf(levels int) (int, bool) {
	for i, l := range PosterizeSchedule {
		if l == levels {
			return i, true
		}
	}
	return 0, false
}

// NearestPosterizeLevel snaps levels to the closest schedule member. Ties go
// to the larger level count.
func NearestPosterizeLevel(levels int) int {
	best := PosterizeSchedule[0]
	bestDiff := math.MaxInt
	for _, l := range PosterizeSchedule {
		d := levels - l
		if d < 0 {
			d = -d
		}
		if d < bestDiff || (d == bestDiff && l > best) {
			best = l
			bestDiff = d
		}
	}
	return best
}

// Posterize quantizes each channel to levels evenly spaced steps over
// [0,255]. levels == 0 is a pass-through; levels == 1 is treated as 2.
func Posterize(c palette.RGB, levels int) palette.RGB {
	if levels <= 0 {
		return c
	}
	levels = max(2, levels)
	step := 255.0 / float64(levels-1)
	q := func(v uint8) uint8 {
		return clamp8(math.Round(float64(v)/step) * step)
	}
	return palette.RGB{R: q(c.R), G: q(c.G), B: q(c.B)}
}

func clamp8(v float64) uint8 {
	return uint8(max(0, min(255, math.Round(v))))
}
