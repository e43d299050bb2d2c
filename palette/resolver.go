package palette

import (
	"errors"
	"fmt"
	"math"
)

// ErrUnknownBrand is returned for brands outside the registry.
var ErrUnknownBrand = errors.New("unknown bead brand")

type resolverKind int

const (
	identityKind resolverKind = iota
	catalogueKind
)

// Resolver maps sampled colors to catalogue entries. The zero value is an
// identity resolver.
type Resolver struct {
	kind      resolverKind
	brand     Brand
	entries   []Entry
	positions map[string]int
}

// NewResolver returns the resolver for b: identity for Original, a catalogue
// scan otherwise.
func NewResolver(b Brand) (Resolver, error) {
	if b == Original {
		return Resolver{kind: identityKind, brand: Original}, nil
	}
	entries, ok := catalogues[b]
	if !ok {
		return Resolver{}, fmt.Errorf("%w: %v", ErrUnknownBrand, b)
	}
	return newCatalogueResolver(b, entries), nil
}

// MustResolver is NewResolver for brands known to be valid.
func MustResolver(b Brand) Resolver {
	r, err := NewResolver(b)
	if err != nil {
		panic(err)
	}
	return r
}

func newCatalogueResolver(b Brand, entries []Entry) Resolver {
	positions := make(map[string]int, len(entries))
	for i, e := range entries {
		if _, ok := positions[e.ID]; !ok {
			positions[e.ID] = i
		}
	}
	return Resolver{kind: catalogueKind, brand: b, entries: entries, positions: positions}
}

// Brand returns the brand this resolver matches against.
func (r Resolver) Brand() Brand {
	return r.brand
}

// Identity reports whether r passes colors through unchanged.
func (r Resolver) Identity() bool {
	return r.kind == identityKind
}

// Entries returns the candidate entries; nil for identity resolvers.
func (r Resolver) Entries() []Entry {
	return r.entries
}

// Resolve returns the entry closest to c under Score. Catalogue order breaks
// ties: the first entry with the lowest score wins.
func (r Resolver) Resolve(c RGB) Entry {
	switch r.kind {
	case identityKind:
		return Entry{ID: identityID(c), Hex: c, Name: OriginalName}
	case catalogueKind:
		if len(r.entries) == 0 {
			panic(fmt.Sprintf("palette: %v resolver has no entries", r.brand))
		}
		best := r.entries[0]
		minScore := math.Inf(1)
		for _, e := range r.entries {
			score := Score(c, e.Hex)
			if score < minScore {
				minScore = score
				best = e
			}
		}
		return best
	default:
		panic(fmt.Sprintf("palette: unknown resolver kind %d", r.kind))
	}
}

// Restrict returns a catalogue resolver limited to entries, keeping their
// order. It works for identity resolvers too; the synthesized entries then
// become the candidate set.
func (r Resolver) Restrict(entries []Entry) Resolver {
	subset := make([]Entry, len(entries))
	copy(subset, entries)
	return newCatalogueResolver(r.brand, subset)
}

// Position returns the catalogue index of id, or -1 when r has no catalogue
// order for it.
func (r Resolver) Position(id string) int {
	if r.kind != catalogueKind {
		return -1
	}
	if i, ok := r.positions[id]; ok {
		return i
	}
	return -1
}
