package beadgrid

import (
	"context"
	"errors"
	"image"
	"image/color"
	"reflect"
	"testing"

	"github.com/setanarut/beadgrid/palette"
)

func TestPosterize(t *testing.T) {
	for v := 0; v < 256; v += 5 {
		c := palette.RGB{R: uint8(v), G: uint8(255 - v), B: uint8(v / 2)}
		if got := Posterize(c, 0); got != c {
			t.Fatalf("Posterize(%v, 0) = %v", c, got)
		}
	}
	seen := map[uint8]bool{}
	for v := range 256 {
		got := Posterize(palette.RGB{R: uint8(v), G: uint8(v), B: uint8(v)}, 2)
		seen[got.R] = true
	}
	if len(seen) != 2 || !seen[0] || !seen[255] {
		t.Errorf("levels=2 produced %v", seen)
	}
}

func TestPosterizeSchedule(t *testing.T) {
	for i, l := range PosterizeSchedule {
		got, err := PosterizeLevelAt(i)
		if err != nil || got != l {
			t.Errorf("PosterizeLevelAt(%d) = %d, %v", i, got, err)
		}
		if j, ok := PosterizeIndexOf(l); !ok || j != i {
			t.Errorf("PosterizeIndexOf(%d) = %d, %v", l, j, ok)
		}
	}
	if _, err := PosterizeLevelAt(11); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("index 11 accepted: %v", err)
	}
	cases := map[int]int{-5: 0, 1: 2, 4: 5, 6: 7, 12: 14, 16: 18, 27: 30, 35: 40, 99: 40}
	for in, want := range cases {
		if got := NearestPosterizeLevel(in); got != want {
			t.Errorf("NearestPosterizeLevel(%d) = %d, want %d", in, got, want)
		}
	}
}

func TestAdjustTone(t *testing.T) {
	c := palette.RGB{R: 200, G: 90, B: 30}
	if got := AdjustTone(c, 100, 100, 100); got != c {
		t.Errorf("neutral tone changed %v to %v", c, got)
	}
	if got := AdjustTone(c, 0, 100, 100); got != (palette.RGB{}) {
		t.Errorf("brightness 0 = %v, want black", got)
	}
	if got := AdjustTone(c, 100, 0, 100); got != (palette.RGB{R: 128, G: 128, B: 128}) {
		t.Errorf("contrast 0 = %v, want mid gray", got)
	}
	if got := AdjustTone(c, 100, 100, 0); got.R != got.G || got.G != got.B {
		t.Errorf("saturation 0 = %v, want gray", got)
	}
	if got := AdjustTone(c, 300, 100, 100); got.R != 255 || got.G != 255 || got.B != 90 {
		t.Errorf("brightness 300 = %v", got)
	}
}

func TestGridHeight(t *testing.T) {
	tests := []struct{ w, h, tw, want int }{
		{100, 100, 32, 32},
		{200, 100, 32, 16},
		{100, 300, 10, 30},
		{1000, 1, 8, 1},
		{0, 10, 8, 0},
	}
	for _, tt := range tests {
		if got := GridHeight(tt.w, tt.h, tt.tw); got != tt.want {
			t.Errorf("GridHeight(%d,%d,%d) = %d, want %d", tt.w, tt.h, tt.tw, got, tt.want)
		}
	}
}

func TestGridSizeCapsHeight(t *testing.T) {
	tests := []struct{ w, h, tw, wantW, wantH int }{
		{100, 100, 200, 200, 200},
		{100, 200, 200, 100, 200},
		{2, 400, 200, 1, 200},
		{1, 10000, 200, 1, 200},
		{300, 400, 200, 150, 200},
		{400, 2, 200, 200, 1},
	}
	for _, tt := range tests {
		w, h := GridSize(tt.w, tt.h, tt.tw)
		if w != tt.wantW || h != tt.wantH {
			t.Errorf("GridSize(%d,%d,%d) = %dx%d, want %dx%d", tt.w, tt.h, tt.tw, w, h, tt.wantW, tt.wantH)
		}
	}
}

func TestGenerateTallStripStaysBounded(t *testing.T) {
	cfg := DefaultConfig()
	cfg.PixelWidth = 200
	for _, size := range [][2]int{{2, 400}, {1, 10000}} {
		img := uniformImage(size[0], size[1], color.NRGBA{40, 90, 160, 255})
		p, err := Generate(context.Background(), img, cfg)
		if err != nil {
			t.Fatal(err)
		}
		if p.Height != MaxPixels || p.Width != 1 {
			t.Errorf("%dx%d image: grid %dx%d, want 1x%d", size[0], size[1], p.Width, p.Height, MaxPixels)
		}
		if p.Total() != p.Width*p.Height {
			t.Errorf("total = %d, want %d", p.Total(), p.Width*p.Height)
		}
	}
}

func TestBoxSpansPartitionUnity(t *testing.T) {
	for _, c := range [][2]int{{10, 3}, {7, 7}, {3, 10}, {1000, 200}, {1, 1}} {
		for i, sp := range boxSpans(c[0], c[1]) {
			sum := 0.0
			for _, w := range sp.weights {
				sum += w
			}
			if sum < 1-1e-9 || sum > 1+1e-9 {
				t.Errorf("boxSpans(%d,%d)[%d] weights sum to %v", c[0], c[1], i, sum)
			}
		}
	}
}

func TestResampleAverages(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 1))
	img.SetNRGBA(0, 0, color.NRGBA{0, 0, 0, 255})
	img.SetNRGBA(1, 0, color.NRGBA{255, 255, 255, 255})
	grid, err := resample(context.Background(), img, 1, false)
	if err != nil {
		t.Fatal(err)
	}
	if grid.W != 1 || grid.H != 1 {
		t.Fatalf("grid %dx%d, want 1x1", grid.W, grid.H)
	}
	if got := grid.Pix[0]; got != (palette.RGB{R: 128, G: 128, B: 128}) {
		t.Errorf("average = %v, want #808080", got)
	}

	gray := uniformImage(50, 50, color.NRGBA{120, 60, 30, 255})
	grid, err = resample(context.Background(), gray, 7, false)
	if err != nil {
		t.Fatal(err)
	}
	for i, c := range grid.Pix {
		if c != (palette.RGB{R: 120, G: 60, B: 30}) {
			t.Fatalf("cell %d = %v", i, c)
		}
	}
}

func TestResampleTransparency(t *testing.T) {
	clear := uniformImage(4, 4, color.NRGBA{})
	grid, err := resample(context.Background(), clear, 4, false)
	if err != nil {
		t.Fatal(err)
	}
	if grid.Pix[0] != (palette.RGB{R: 255, G: 255, B: 255}) || grid.Empty != nil {
		t.Errorf("transparent cell = %v, empty=%v; want white", grid.Pix[0], grid.Empty)
	}

	grid, err = resample(context.Background(), clear, 4, true)
	if err != nil {
		t.Fatal(err)
	}
	for i := range grid.Pix {
		if !grid.isEmpty(i) {
			t.Fatalf("cell %d not empty with KeepTransparent", i)
		}
	}
}

func TestResampleEmptyImage(t *testing.T) {
	if _, err := resample(context.Background(), nil, 8, false); !errors.Is(err, ErrEmptyImage) {
		t.Errorf("nil image: %v", err)
	}
	zero := image.NewNRGBA(image.Rect(0, 0, 0, 5))
	if _, err := resample(context.Background(), zero, 8, false); !errors.Is(err, ErrEmptyImage) {
		t.Errorf("zero-width image: %v", err)
	}
}

func TestMirror(t *testing.T) {
	g := &sampleGrid{W: 3, H: 1, Pix: []palette.RGB{{R: 1}, {R: 2}, {R: 3}}, Empty: []bool{true, false, false}}
	g.mirror()
	if g.Pix[0].R != 3 || g.Pix[2].R != 1 || !g.Empty[2] || g.Empty[0] {
		t.Errorf("mirror = %v %v", g.Pix, g.Empty)
	}
}

func TestKernelTaps(t *testing.T) {
	taps, err := ditherTaps(FloydSteinberg, 1)
	if err != nil {
		t.Fatal(err)
	}
	want := []tap{
		{dx: 1, dy: 0, weight: float64(float32(7.0 / 16))},
		{dx: -1, dy: 1, weight: float64(float32(3.0 / 16))},
		{dx: 0, dy: 1, weight: float64(float32(5.0 / 16))},
		{dx: 1, dy: 1, weight: float64(float32(1.0 / 16))},
	}
	if !reflect.DeepEqual(taps, want) {
		t.Errorf("taps = %v, want %v", taps, want)
	}
	for _, k := range DitherKernels() {
		taps, err := ditherTaps(k, 0.5)
		if err != nil {
			t.Fatalf("%s: %v", k, err)
		}
		if len(taps) == 0 || taps[0].dx != 1 || taps[0].dy != 0 {
			t.Errorf("%s: first tap %v, want the right-hand neighbor", k, taps)
		}
		for _, tp := range taps {
			if tp.dy == 0 && tp.dx <= 0 {
				t.Errorf("%s: tap %v points at a processed cell", k, tp)
			}
		}
	}
}

func TestDitherSingleCellMatchesDirect(t *testing.T) {
	img := uniformImage(1, 1, color.NRGBA{37, 142, 201, 255})
	cfg := DefaultConfig()
	cfg.PixelWidth = 1

	direct, err := NewPatternBuilder(img, cfg).Build(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	cfg.Dithering = true
	dithered, err := NewPatternBuilder(img, cfg).Build(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if direct.Cells[0].Entry != dithered.Cells[0].Entry {
		t.Errorf("dithered %v, direct %v", dithered.Cells[0].Entry, direct.Cells[0].Entry)
	}
}

func TestDitherDiverges(t *testing.T) {
	img := gradientImage(64, 8)
	cfg := DefaultConfig()
	cfg.PixelWidth = 64

	flat, err := Generate(context.Background(), img, cfg)
	if err != nil {
		t.Fatal(err)
	}
	cfg.Dithering = true
	dith, err := Generate(context.Background(), img, cfg)
	if err != nil {
		t.Fatal(err)
	}
	if reflect.DeepEqual(flat.Grid(), dith.Grid()) {
		t.Error("dithering had no effect on a gradient")
	}
	if dith.Total() != 64*dith.Height {
		t.Errorf("dithered total = %d", dith.Total())
	}
}

func TestGenerateSinglePixelRed(t *testing.T) {
	img := uniformImage(1, 1, color.NRGBA{255, 0, 0, 255})
	cfg := DefaultConfig()
	cfg.PixelWidth = 1
	cfg.Brand = palette.Mard

	p, err := NewPatternBuilder(img, cfg).Build(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if p.Width != 1 || p.Height != 1 || len(p.Cells) != 1 {
		t.Fatalf("grid %dx%d", p.Width, p.Height)
	}
	red := palette.RGB{R: 255}
	got := p.Cells[0].Entry
	for _, e := range palette.Catalogue(palette.Mard) {
		if palette.Score(red, e.Hex) < palette.Score(red, got.Hex) {
			t.Fatalf("%s scores better than %s", e.ID, got.ID)
		}
	}
	if len(p.Materials) != 1 || p.Materials[0].Count != 1 || p.Materials[0].ID != got.ID {
		t.Errorf("materials = %+v", p.Materials)
	}
}

func TestGenerateColorLimitUniformGray(t *testing.T) {
	img := uniformImage(320, 320, color.NRGBA{128, 128, 128, 255})
	cfg := DefaultConfig()
	cfg.ColorLimit = 16
	p, err := Generate(context.Background(), img, cfg)
	if err != nil {
		t.Fatal(err)
	}
	if len(p.Materials) > 16 {
		t.Errorf("%d colors, want <= 16", len(p.Materials))
	}
	if p.Total() != 1024 {
		t.Errorf("total = %d, want 1024", p.Total())
	}
}

func TestGenerateColorLimitNoise(t *testing.T) {
	img := noiseImage(200, 120, 3)
	for _, limit := range []int{16, 32} {
		for _, brand := range []palette.Brand{palette.Mard, palette.Original} {
			cfg := DefaultConfig()
			cfg.PixelWidth = 100
			cfg.Brand = brand
			cfg.ColorLimit = limit
			p, err := Generate(context.Background(), img, cfg)
			if err != nil {
				t.Fatal(err)
			}
			if len(p.Materials) > limit {
				t.Errorf("%s limit %d: %d colors", brand, limit, len(p.Materials))
			}
			if p.Total() != p.Width*p.Height {
				t.Errorf("%s limit %d: total %d, want %d", brand, limit, p.Total(), p.Width*p.Height)
			}
		}
	}
}

func TestMaterialsSortedAndDeterministic(t *testing.T) {
	img := noiseImage(90, 60, 11)
	cfg := DefaultConfig()
	cfg.PixelWidth = 45
	cfg.Dithering = true

	a, err := Generate(context.Background(), img, cfg)
	if err != nil {
		t.Fatal(err)
	}
	b, err := Generate(context.Background(), img, cfg)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(a, b) {
		t.Error("identical inputs produced different patterns")
	}
	for i := 1; i < len(a.Materials); i++ {
		if a.Materials[i].Count > a.Materials[i-1].Count {
			t.Fatalf("materials not sorted at %d: %+v", i, a.Materials[i-1:i+1])
		}
	}
	if a.Total() != a.Width*a.Height {
		t.Errorf("total = %d, want %d", a.Total(), a.Width*a.Height)
	}
}

func TestGenerateOriginalIdentity(t *testing.T) {
	img := uniformImage(16, 16, color.NRGBA{0x12, 0xab, 0xcd, 255})
	cfg := DefaultConfig()
	cfg.Brand = palette.Original
	cfg.PixelWidth = 8
	p, err := Generate(context.Background(), img, cfg)
	if err != nil {
		t.Fatal(err)
	}
	if len(p.Materials) != 1 || p.Materials[0].ID != "#12ABCD" || p.Materials[0].Count != 64 {
		t.Errorf("materials = %+v", p.Materials)
	}
}

func TestGenerateKeepTransparent(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 8, 8))
	for y := range 8 {
		for x := range 4 {
			img.SetNRGBA(x, y, color.NRGBA{255, 0, 0, 255})
		}
	}
	cfg := DefaultConfig()
	cfg.PixelWidth = 8
	cfg.KeepTransparent = true
	p, err := Generate(context.Background(), img, cfg)
	if err != nil {
		t.Fatal(err)
	}
	if p.Total() != 32 {
		t.Errorf("total = %d, want 32", p.Total())
	}
	if !p.At(7, 0).Empty || p.At(0, 0).Empty {
		t.Error("wrong cells marked empty")
	}

	cfg.Mirrored = true
	p, err = Generate(context.Background(), img, cfg)
	if err != nil {
		t.Fatal(err)
	}
	if !p.At(0, 0).Empty || p.At(7, 0).Empty {
		t.Error("mirror did not flip empty cells")
	}
}

func TestGenerateFullyTransparentIsValid(t *testing.T) {
	cfg := DefaultConfig()
	cfg.KeepTransparent = true
	p, err := Generate(context.Background(), uniformImage(10, 10, color.NRGBA{}), cfg)
	if err != nil {
		t.Fatal(err)
	}
	if p.Materials == nil || len(p.Materials) != 0 || p.Total() != 0 {
		t.Errorf("materials = %#v", p.Materials)
	}
	if Share(0, p.Total()) != 0 {
		t.Error("Share divided by zero total")
	}
}

func TestGenerateErrors(t *testing.T) {
	if _, err := Generate(context.Background(), nil, DefaultConfig()); !errors.Is(err, ErrEmptyImage) {
		t.Errorf("nil image: %v", err)
	}
	cfg := DefaultConfig()
	cfg.ExportDPI = 96
	if _, err := Generate(context.Background(), uniformImage(4, 4, color.White), cfg); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("bad dpi: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := Generate(ctx, noiseImage(64, 64, 1), DefaultConfig()); !errors.Is(err, context.Canceled) {
		t.Errorf("cancelled context: %v", err)
	}
}
