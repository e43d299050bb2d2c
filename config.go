package beadgrid

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/setanarut/beadgrid/palette"
)

const (
	MinPixels = 8
	MaxPixels = 200
)

var (
	// ErrInvalidConfig wraps every configuration violation.
	ErrInvalidConfig = errors.New("invalid pattern config")
	// ErrEmptyImage is returned for nil or zero-area input images.
	ErrEmptyImage = errors.New("empty image")
)

// ConfigError names the offending field. It matches ErrInvalidConfig with
// errors.Is.
type ConfigError struct {
	Field  string
	Value  any
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("%v: %s=%v: %s", ErrInvalidConfig, e.Field, e.Value, e.Reason)
}

func (e *ConfigError) Unwrap() error {
	return ErrInvalidConfig
}

// BeadShape is a rendering hint; the pipeline ignores it.
type BeadShape string

const (
	Square BeadShape = "square"
	Circle BeadShape = "circle"
)

// BeadSize is the physical bead diameter tag.
type BeadSize string

const (
	BeadSizeMini     BeadSize = "2.6mm"
	BeadSizeStandard BeadSize = "5mm"
)

// Millimeters returns the bead pitch in mm.
func (s BeadSize) Millimeters() float64 {
	switch s {
	case BeadSizeStandard:
		return 5.0
	default:
		return 2.6
	}
}

// Export resolutions.
const (
	DPIPreview = 72
	DPIPrint   = 300
)

// ExportDPIs is the closed set of export resolutions.
var ExportDPIs = []int{DPIPreview, DPIPrint}

// ColorLimits is the closed set of color limits; 0 means unlimited.
var ColorLimits = []int{0, 16, 32, 64, 128}

// Config is a pattern request. Treat it as a value: build a new Config for
// every change and call Generate again.
type Config struct {
	// Grid width in beads, clamped to [MinPixels, MaxPixels]. Images taller
	// than wide may get a narrower grid so the height stays within MaxPixels.
	PixelWidth int
	// Gridline opacity in [0,1] (export only).
	GridOpacity float64
	GridColor   palette.RGB
	BeadShape   BeadShape
	// Tone percentages, 100 is neutral.
	Brightness int
	Contrast   int
	Saturation int
	// Posterize level count, 0 disables. Snapped to PosterizeSchedule.
	PosterizeLevels int
	Brand           palette.Brand
	ShowLabels      bool
	BeadSize        BeadSize
	// ExportDPI is 72 or 300.
	ExportDPI int
	// ColorLimit caps distinct output colors; 0 is unlimited.
	ColorLimit int
	Mirrored   bool
	Dithering  bool
	// DitherKernel selects the error diffusion matrix.
	DitherKernel DitherKernel
	// DitherStrength scales the diffused error, in (0,1].
	DitherStrength float32
	// KeepTransparent leaves mostly transparent cells empty instead of
	// compositing them onto white.
	KeepTransparent bool
}

// DefaultConfig returns the editor defaults.
func DefaultConfig() Config {
	return Config{
		PixelWidth:      32,
		GridOpacity:     0.75,
		GridColor:       palette.RGB{},
		BeadShape:       Square,
		Brightness:      100,
		Contrast:        100,
		Saturation:      100,
		PosterizeLevels: 0,
		Brand:           palette.Mard,
		ShowLabels:      true,
		BeadSize:        BeadSizeMini,
		ExportDPI:       DPIPreview,
		ColorLimit:      0,
		Mirrored:        false,
		Dithering:       false,
		DitherKernel:    FloydSteinberg,
		DitherStrength:  1.0,
	}
}

const maxTonePercent = 300

// Normalize clamps PixelWidth and PosterizeLevels into range and rejects
// every other out-of-range field. The receiver is not modified.
func (c Config) Normalize() (Config, error) {
	c.PixelWidth = max(MinPixels, min(MaxPixels, c.PixelWidth))
	c.PosterizeLevels = NearestPosterizeLevel(c.PosterizeLevels)
	return c, c.Validate()
}

// Validate reports the first field outside its closed set. Unlike Normalize
// it clamps nothing, and it accepts any positive PixelWidth up to MaxPixels
// so the pipeline can be driven below the editor minimum.
func (c Config) Validate() error {
	if c.PixelWidth < 1 || c.PixelWidth > MaxPixels {
		return &ConfigError{"PixelWidth", c.PixelWidth, fmt.Sprintf("must be within [1,%d]", MaxPixels)}
	}
	if _, ok := PosterizeIndexOf(c.PosterizeLevels); !ok {
		return &ConfigError{"PosterizeLevels", c.PosterizeLevels, "not in posterize schedule"}
	}
	if c.GridOpacity < 0 || c.GridOpacity > 1 {
		return &ConfigError{"GridOpacity", c.GridOpacity, "must be within [0,1]"}
	}
	if c.BeadShape != Square && c.BeadShape != Circle {
		return &ConfigError{"BeadShape", c.BeadShape, "must be square or circle"}
	}
	tones := []struct {
		name string
		v    int
	}{{"Brightness", c.Brightness}, {"Contrast", c.Contrast}, {"Saturation", c.Saturation}}
	for _, tone := range tones {
		if tone.v < 0 || tone.v > maxTonePercent {
			return &ConfigError{tone.name, tone.v, fmt.Sprintf("must be within [0,%d]", maxTonePercent)}
		}
	}
	if !c.Brand.Valid() {
		return &ConfigError{"Brand", int(c.Brand), "unknown brand"}
	}
	if c.BeadSize != BeadSizeMini && c.BeadSize != BeadSizeStandard {
		return &ConfigError{"BeadSize", c.BeadSize, "must be 2.6mm or 5mm"}
	}
	if !slices.Contains(ExportDPIs, c.ExportDPI) {
		return &ConfigError{"ExportDPI", c.ExportDPI, "must be 72 or 300"}
	}
	if !slices.Contains(ColorLimits, c.ColorLimit) {
		return &ConfigError{"ColorLimit", c.ColorLimit, "must be one of 0, 16, 32, 64, 128"}
	}
	if _, ok := ditherKernels[c.DitherKernel]; !ok {
		return &ConfigError{"DitherKernel", c.DitherKernel, "unknown kernel"}
	}
	if c.DitherStrength <= 0 || c.DitherStrength > 1 {
		return &ConfigError{"DitherStrength", c.DitherStrength, "must be within (0,1]"}
	}
	return nil
}

// ParseBeadShape accepts "square" or "circle".
func ParseBeadShape(s string) (BeadShape, error) {
	switch shape := BeadShape(strings.ToLower(strings.TrimSpace(s))); shape {
	case Square, Circle:
		return shape, nil
	}
	return "", &ConfigError{"BeadShape", s, "must be square or circle"}
}

// ParseBeadSize accepts "2.6mm" or "5mm".
func ParseBeadSize(s string) (BeadSize, error) {
	switch size := BeadSize(strings.ToLower(strings.TrimSpace(s))); size {
	case BeadSizeMini, BeadSizeStandard:
		return size, nil
	}
	return "", &ConfigError{"BeadSize", s, "must be 2.6mm or 5mm"}
}
