package palette

import (
	"fmt"
	"image/color"
	"math"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// RGB is an opaque 8-bit sRGB color.
type RGB struct {
	R, G, B uint8
}

// ParseHex parses "#RRGGBB" (case-insensitive).
func ParseHex(s string) (RGB, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return RGB{}, fmt.Errorf("parse hex %q: %w", s, err)
	}
	r, g, b := c.RGB255()
	return RGB{r, g, b}, nil
}

// MustParseHex is ParseHex for static data.
func MustParseHex(s string) RGB {
	c, err := ParseHex(s)
	if err != nil {
		panic(err)
	}
	return c
}

// FromColor drops alpha after converting to non-premultiplied 8-bit RGB.
func FromColor(c color.Color) RGB {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return RGB{n.R, n.G, n.B}
}

// Hex returns the uppercase "#RRGGBB" form.
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

func (c RGB) String() string {
	return c.Hex()
}

// RGBA implements color.Color.
func (c RGB) RGBA() (r, g, b, a uint32) {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: 255}.RGBA()
}

// Colorful converts to a go-colorful color (channels in [0,1]).
func (c RGB) Colorful() colorful.Color {
	return colorful.Color{R: float64(c.R) / 255.0, G: float64(c.G) / 255.0, B: float64(c.B) / 255.0}
}

// FromColorful clamps and rounds a go-colorful color to 8 bits.
func FromColorful(c colorful.Color) RGB {
	r, g, b := c.Clamped().RGB255()
	return RGB{r, g, b}
}

// Luminance is the BT.601 luma 0.299R + 0.587G + 0.114B, in [0,255].
func Luminance(c RGB) float64 {
	return 0.299*float64(c.R) + 0.587*float64(c.G) + 0.114*float64(c.B)
}

// Score ranks how well candidate stands in for target; lower is closer.
// Euclidean RGB distance plus 1.5x the luminance gap, so that tone errors
// cost more than they would in plain RGB.
func Score(target, candidate RGB) float64 {
	dr := float64(target.R) - float64(candidate.R)
	dg := float64(target.G) - float64(candidate.G)
	db := float64(target.B) - float64(candidate.B)
	lumDiff := math.Abs(Luminance(target) - Luminance(candidate))
	return math.Sqrt(dr*dr+dg*dg+db*db) + lumDiff*1.5
}

func identityID(c RGB) string {
	return strings.ToUpper(c.Hex())
}

// MarshalText encodes c as "#RRGGBB".
func (c RGB) MarshalText() ([]byte, error) {
	return []byte(c.Hex()), nil
}

func (c *RGB) UnmarshalText(text []byte) error {
	v, err := ParseHex(string(text))
	if err != nil {
		return err
	}
	*c = v
	return nil
}
