package beadgrid

import (
	"fmt"
	"os"
	"strconv"

	"github.com/setanarut/beadgrid/palette"
)

// EnvPrefix prefixes every environment variable read by ConfigFromEnv.
const EnvPrefix = "BEADGRID_"

// ConfigFromEnv overlays BEADGRID_* environment variables on base. Unset
// variables keep the base value. The result is not normalized.
func ConfigFromEnv(base Config) (Config, error) {
	return configFromLookup(base, os.LookupEnv)
}

func configFromLookup(c Config, lookup func(string) (string, bool)) (Config, error) {
	var err error
	get := func(name string) (string, bool) {
		return lookup(EnvPrefix + name)
	}
	setInt := func(name string, dst *int) {
		if v, ok := get(name); ok && err == nil {
			n, perr := strconv.Atoi(v)
			if perr != nil {
				err = fmt.Errorf("%s%s: %w", EnvPrefix, name, perr)
				return
			}
			*dst = n
		}
	}
	setBool := func(name string, dst *bool) {
		if v, ok := get(name); ok && err == nil {
			b, perr := strconv.ParseBool(v)
			if perr != nil {
				err = fmt.Errorf("%s%s: %w", EnvPrefix, name, perr)
				return
			}
			*dst = b
		}
	}
	setParsed := func(name string, parse func(string) error) {
		if v, ok := get(name); ok && err == nil {
			if perr := parse(v); perr != nil {
				err = fmt.Errorf("%s%s: %w", EnvPrefix, name, perr)
			}
		}
	}

	setInt("WIDTH", &c.PixelWidth)
	setInt("BRIGHTNESS", &c.Brightness)
	setInt("CONTRAST", &c.Contrast)
	setInt("SATURATION", &c.Saturation)
	setInt("POSTERIZE", &c.PosterizeLevels)
	setInt("DPI", &c.ExportDPI)
	setInt("COLOR_LIMIT", &c.ColorLimit)
	setBool("LABELS", &c.ShowLabels)
	setBool("MIRROR", &c.Mirrored)
	setBool("DITHER", &c.Dithering)
	setBool("KEEP_TRANSPARENT", &c.KeepTransparent)
	setParsed("GRID_OPACITY", func(v string) error {
		f, err := strconv.ParseFloat(v, 64)
		c.GridOpacity = f
		return err
	})
	setParsed("GRID_COLOR", func(v string) (err error) {
		c.GridColor, err = palette.ParseHex(v)
		return err
	})
	setParsed("BRAND", func(v string) (err error) {
		c.Brand, err = palette.ParseBrand(v)
		return err
	})
	setParsed("SHAPE", func(v string) (err error) {
		c.BeadShape, err = ParseBeadShape(v)
		return err
	})
	setParsed("BEAD_SIZE", func(v string) (err error) {
		c.BeadSize, err = ParseBeadSize(v)
		return err
	})
	setParsed("DITHER_KERNEL", func(v string) (err error) {
		c.DitherKernel, err = ParseDitherKernel(v)
		return err
	})
	setParsed("DITHER_STRENGTH", func(v string) error {
		f, err := strconv.ParseFloat(v, 32)
		c.DitherStrength = float32(f)
		return err
	})
	return c, err
}
