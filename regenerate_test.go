package beadgrid

import (
	"context"
	"errors"
	"image/color"
	"sync"
	"testing"
)

func TestRegeneratorLatestWins(t *testing.T) {
	var r Regenerator
	img := noiseImage(400, 400, 5)

	cfg := DefaultConfig()
	cfg.PixelWidth = 200
	cfg.Dithering = true

	var wg sync.WaitGroup
	errs := make([]error, 8)
	for i := range errs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, errs[i] = r.Submit(context.Background(), img, cfg)
		}()
	}
	wg.Wait()

	ok := 0
	for _, err := range errs {
		switch {
		case err == nil:
			ok++
		case errors.Is(err, ErrSuperseded):
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	// The last submission to start can never be superseded.
	if ok == 0 {
		t.Error("no submission completed")
	}

	final := DefaultConfig()
	p, err := r.Submit(context.Background(), uniformImage(8, 8, color.White), final)
	if err != nil {
		t.Fatal(err)
	}
	if r.Current() != p {
		t.Error("Current is not the latest pattern")
	}
}

func TestRegeneratorCancel(t *testing.T) {
	var r Regenerator
	r.Cancel()
	if r.Current() != nil {
		t.Error("fresh regenerator has a pattern")
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := r.Submit(ctx, noiseImage(32, 32, 2), DefaultConfig()); !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
	if r.Current() != nil {
		t.Error("failed submission replaced Current")
	}
}
