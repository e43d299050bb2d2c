package beadgrid

import (
	"errors"
	"testing"

	"github.com/setanarut/beadgrid/palette"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg, err := DefaultConfig().Normalize()
	if err != nil {
		t.Fatalf("default config rejected: %v", err)
	}
	if cfg != DefaultConfig() {
		t.Errorf("Normalize changed the default config: %+v", cfg)
	}
}

func TestNormalizeClamps(t *testing.T) {
	cfg := DefaultConfig()
	cfg.PixelWidth = 3
	cfg.PosterizeLevels = 11
	got, err := cfg.Normalize()
	if err != nil {
		t.Fatal(err)
	}
	if got.PixelWidth != MinPixels {
		t.Errorf("width = %d, want %d", got.PixelWidth, MinPixels)
	}
	if got.PosterizeLevels != 10 {
		t.Errorf("posterize = %d, want 10", got.PosterizeLevels)
	}
	if cfg.PixelWidth != 3 {
		t.Error("Normalize modified its receiver")
	}

	cfg.PixelWidth = 5000
	got, _ = cfg.Normalize()
	if got.PixelWidth != MaxPixels {
		t.Errorf("width = %d, want %d", got.PixelWidth, MaxPixels)
	}
}

func TestNormalizeRejects(t *testing.T) {
	tests := []struct {
		field  string
		mutate func(*Config)
	}{
		{"ExportDPI", func(c *Config) { c.ExportDPI = 150 }},
		{"ColorLimit", func(c *Config) { c.ColorLimit = 20 }},
		{"GridOpacity", func(c *Config) { c.GridOpacity = 1.5 }},
		{"BeadShape", func(c *Config) { c.BeadShape = "hexagon" }},
		{"BeadSize", func(c *Config) { c.BeadSize = "3mm" }},
		{"Brightness", func(c *Config) { c.Brightness = -1 }},
		{"Saturation", func(c *Config) { c.Saturation = 301 }},
		{"Brand", func(c *Config) { c.Brand = palette.Brand(99) }},
		{"DitherKernel", func(c *Config) { c.DitherKernel = "ordered" }},
		{"DitherStrength", func(c *Config) { c.DitherStrength = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.field, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			_, err := cfg.Normalize()
			if !errors.Is(err, ErrInvalidConfig) {
				t.Fatalf("err = %v, want ErrInvalidConfig", err)
			}
			var ce *ConfigError
			if !errors.As(err, &ce) || ce.Field != tt.field {
				t.Fatalf("err = %v, want field %s", err, tt.field)
			}
		})
	}
}

func TestValidateRejectsOffSchedulePosterize(t *testing.T) {
	cfg := DefaultConfig()
	cfg.PosterizeLevels = 4
	if err := cfg.Validate(); !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("Validate accepted posterize 4: %v", err)
	}
	cfg.PixelWidth = 0
	cfg.PosterizeLevels = 0
	if err := cfg.Validate(); !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("Validate accepted width 0: %v", err)
	}
}

func TestParseEnums(t *testing.T) {
	if s, err := ParseBeadShape("Circle"); err != nil || s != Circle {
		t.Errorf("ParseBeadShape = %v, %v", s, err)
	}
	if s, err := ParseBeadSize("5MM"); err != nil || s != BeadSizeStandard {
		t.Errorf("ParseBeadSize = %v, %v", s, err)
	}
	if _, err := ParseDitherKernel("bayer"); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("ParseDitherKernel(bayer) = %v", err)
	}
	if BeadSizeStandard.Millimeters() != 5 || BeadSizeMini.Millimeters() != 2.6 {
		t.Error("unexpected bead pitch")
	}
}
