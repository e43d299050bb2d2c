package beadgrid

import "github.com/setanarut/beadgrid/palette"

// AdjustTone applies brightness, contrast and saturation, in that order.
// Arguments are percentages and 100 leaves the color untouched. Channels are
// clamped to [0,255] after every step.
func AdjustTone(c palette.RGB, brightness, contrast, saturation int) palette.RGB {
	if brightness == 100 && contrast == 100 && saturation == 100 {
		return c
	}
	r, g, b := float64(c.R), float64(c.G), float64(c.B)

	if brightness != 100 {
		k := float64(brightness) / 100
		r, g, b = clampF(r*k), clampF(g*k), clampF(b*k)
	}
	if contrast != 100 {
		k := float64(contrast) / 100
		r = clampF((r-127.5)*k + 127.5)
		g = clampF((g-127.5)*k + 127.5)
		b = clampF((b-127.5)*k + 127.5)
	}
	if saturation != 100 {
		k := float64(saturation) / 100
		y := 0.299*r + 0.587*g + 0.114*b
		r = clampF(y + (r-y)*k)
		g = clampF(y + (g-y)*k)
		b = clampF(y + (b-y)*k)
	}
	return palette.RGB{R: clamp8(r), G: clamp8(g), B: clamp8(b)}
}

func clampF(v float64) float64 {
	return max(0, min(255, v))
}
