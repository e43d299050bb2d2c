package beadgrid

import (
	"context"
	"errors"
	"image"
	"sync"
)

// ErrSuperseded is returned by Regenerator.Submit when a newer request
// replaced the call before it finished.
var ErrSuperseded = errors.New("generation superseded by a newer request")

// Regenerator serializes editor-driven regeneration: the latest request wins,
// older in-flight generations are cancelled and their results dropped.
type Regenerator struct {
	mu      sync.Mutex
	seq     uint64
	cancel  context.CancelFunc
	current *Pattern
}

// Submit cancels any in-flight generation and generates a pattern for img
// and cfg. The result becomes Current unless a newer Submit started first.
func (r *Regenerator) Submit(ctx context.Context, img image.Image, cfg Config) (*Pattern, error) {
	r.mu.Lock()
	if r.cancel != nil {
		r.cancel()
	}
	r.seq++
	seq := r.seq
	ctx, cancel := context.WithCancel(ctx)
	r.cancel = cancel
	r.mu.Unlock()

	p, err := Generate(ctx, img, cfg)

	r.mu.Lock()
	defer r.mu.Unlock()
	if seq != r.seq {
		cancel()
		return nil, ErrSuperseded
	}
	r.cancel = nil
	cancel()
	if err != nil {
		return nil, err
	}
	r.current = p
	return p, nil
}

// Current returns the most recent completed pattern, or nil.
func (r *Regenerator) Current() *Pattern {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.current
}

// Cancel aborts the in-flight generation, if any.
func (r *Regenerator) Cancel() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.cancel != nil {
		r.cancel()
		r.cancel = nil
	}
	r.seq++
}
