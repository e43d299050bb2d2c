package palette

import (
	"errors"
	"math/rand"
	"testing"
)

func TestCatalogueInvariants(t *testing.T) {
	for _, b := range Brands() {
		if b == Original {
			if Catalogue(b) != nil {
				t.Fatalf("Original should have no catalogue")
			}
			continue
		}
		entries := Catalogue(b)
		if len(entries) != 291 {
			t.Fatalf("%v: got %d entries, want 291", b, len(entries))
		}
		if err := checkCatalogue(entries); err != nil {
			t.Fatalf("%v: %v", b, err)
		}
	}
	if got := Catalogue(Mard)[0].ID; got != "M1" {
		t.Errorf("first Mard id = %q, want M1", got)
	}
	if got := Catalogue(Manman)[290].ID; got != "MM291" {
		t.Errorf("last Manman id = %q, want MM291", got)
	}
}

func TestCatalogueReturnsCopy(t *testing.T) {
	entries := Catalogue(Coco)
	entries[0].ID = "changed"
	if Catalogue(Coco)[0].ID != "C1" {
		t.Fatal("Catalogue leaked internal state")
	}
}

func TestCheckCatalogueRejectsBadData(t *testing.T) {
	if err := checkCatalogue(nil); err == nil {
		t.Error("empty catalogue accepted")
	}
	dup := []Entry{{ID: "A"}, {ID: "B"}, {ID: "A"}}
	if err := checkCatalogue(dup); err == nil {
		t.Error("duplicate ids accepted")
	}
}

func TestParseBrand(t *testing.T) {
	for _, b := range Brands() {
		got, err := ParseBrand(b.String())
		if err != nil || got != b {
			t.Errorf("ParseBrand(%q) = %v, %v", b.String(), got, err)
		}
	}
	if b, err := ParseBrand(" mixiaowo "); err != nil || b != Mixiaowo {
		t.Errorf("case-insensitive parse failed: %v %v", b, err)
	}
	if _, err := ParseBrand("Hama"); !errors.Is(err, ErrUnknownBrand) {
		t.Errorf("unknown brand error = %v", err)
	}
	if _, err := NewResolver(Brand(42)); !errors.Is(err, ErrUnknownBrand) {
		t.Errorf("NewResolver(42) error = %v", err)
	}
}

func TestParseHex(t *testing.T) {
	c, err := ParseHex("#fa0c01")
	if err != nil {
		t.Fatal(err)
	}
	if c != (RGB{0xFA, 0x0C, 0x01}) {
		t.Errorf("got %v", c)
	}
	if c.Hex() != "#FA0C01" {
		t.Errorf("Hex() = %s", c.Hex())
	}
	if _, err := ParseHex("red"); err == nil {
		t.Error("expected error for non-hex input")
	}
}

func TestScore(t *testing.T) {
	c := RGB{10, 200, 30}
	if Score(c, c) != 0 {
		t.Error("score of identical colors must be zero")
	}
	black, white := RGB{0, 0, 0}, RGB{255, 255, 255}
	// sqrt(3*255^2) + 1.5*255
	want := 441.6729559300637 + 382.5
	if got := Score(black, white); got < want-1e-9 || got > want+1e-9 {
		t.Errorf("Score(black, white) = %v, want %v", got, want)
	}
	if Score(black, white) != Score(white, black) {
		t.Error("score should be symmetric")
	}
}

func TestResolveIsNearest(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for _, b := range Brands()[1:] {
		r := MustResolver(b)
		entries := Catalogue(b)
		for range 200 {
			c := RGB{uint8(rng.Intn(256)), uint8(rng.Intn(256)), uint8(rng.Intn(256))}
			got := r.Resolve(c)
			if r.Position(got.ID) < 0 {
				t.Fatalf("%v: resolved id %q not in catalogue", b, got.ID)
			}
			best := Score(c, got.Hex)
			for _, e := range entries {
				if Score(c, e.Hex) < best {
					t.Fatalf("%v: %v resolved to %s but %s scores lower", b, c, got.ID, e.ID)
				}
			}
		}
	}
}

func TestResolveTieGoesToFirstEntry(t *testing.T) {
	entries := []Entry{
		{ID: "a", Hex: RGB{10, 10, 10}},
		{ID: "b", Hex: RGB{10, 10, 10}},
		{ID: "c", Hex: RGB{200, 200, 200}},
	}
	r := MustResolver(Mard).Restrict(entries)
	if got := r.Resolve(RGB{12, 12, 12}); got.ID != "a" {
		t.Errorf("tie resolved to %q, want a", got.ID)
	}
	if r.Position("c") != 2 || r.Position("zzz") != -1 {
		t.Error("unexpected positions in restricted resolver")
	}
}

func TestResolveIdentity(t *testing.T) {
	r := MustResolver(Original)
	if !r.Identity() {
		t.Fatal("Original resolver should be identity")
	}
	c := RGB{0xab, 0x01, 0xff}
	got := r.Resolve(c)
	if got.Hex != c {
		t.Errorf("identity changed color: %v", got.Hex)
	}
	if got.ID != "#AB01FF" || got.Name != OriginalName {
		t.Errorf("identity entry = %+v", got)
	}
	if r.Position(got.ID) != -1 {
		t.Error("identity resolver has no catalogue order")
	}
}

func TestResolvePureRed(t *testing.T) {
	r := MustResolver(Mard)
	got := r.Resolve(RGB{255, 0, 0})
	for _, e := range Catalogue(Mard) {
		if Score(RGB{255, 0, 0}, e.Hex) < Score(RGB{255, 0, 0}, got.Hex) {
			t.Fatalf("%s beats %s", e.ID, got.ID)
		}
	}
}
