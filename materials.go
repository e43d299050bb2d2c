package beadgrid

import (
	"cmp"
	"slices"

	"github.com/setanarut/beadgrid/palette"
)

// BeadColor is one row of the materials list.
type BeadColor struct {
	ID    string        `json:"id"`
	Hex   palette.RGB   `json:"hex"`
	Name  string        `json:"name,omitempty"`
	Brand palette.Brand `json:"brand"`
	Count int           `json:"count"`
}

// TotalBeads sums the counts of a materials list.
func TotalBeads(materials []BeadColor) int {
	total := 0
	for _, m := range materials {
		total += m.Count
	}
	return total
}

// Share returns count/total, or 0 when total is 0.
func Share(count, total int) float64 {
	if total <= 0 {
		return 0
	}
	return float64(count) / float64(total)
}

// aggregate counts non-empty cells per entry and sorts by descending count.
// Ties go to catalogue order, then ID.
func aggregate(entries []palette.Entry, empty func(int) bool, resolver palette.Resolver) []BeadColor {
	index := make(map[string]int)
	var out []BeadColor
	for i, e := range entries {
		if empty(i) {
			continue
		}
		if j, ok := index[e.ID]; ok {
			out[j].Count++
			continue
		}
		index[e.ID] = len(out)
		out = append(out, BeadColor{ID: e.ID, Hex: e.Hex, Name: e.Name, Brand: resolver.Brand(), Count: 1})
	}
	sortMaterials(out, resolver)
	return out
}

func sortMaterials(materials []BeadColor, resolver palette.Resolver) {
	slices.SortStableFunc(materials, func(a, b BeadColor) int {
		if c := cmp.Compare(b.Count, a.Count); c != 0 {
			return c
		}
		if c := cmp.Compare(resolver.Position(a.ID), resolver.Position(b.ID)); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
}

// limitColors keeps the limit most frequent entries and re-resolves every
// other cell against that subset, starting from the color the cell was
// originally resolved from. It returns the number of reassigned cells.
func limitColors(entries []palette.Entry, sources []palette.RGB, empty func(int) bool, resolver palette.Resolver, limit int) int {
	if limit <= 0 {
		return 0
	}
	ranked := aggregate(entries, empty, resolver)
	if len(ranked) <= limit {
		return 0
	}
	kept := ranked[:limit]
	retained := make(map[string]struct{}, limit)
	subset := make([]palette.Entry, 0, limit)
	for _, m := range kept {
		retained[m.ID] = struct{}{}
	}
	// Keep catalogue order so ties still go to the earlier entry.
	if resolver.Identity() {
		for _, m := range kept {
			subset = append(subset, palette.Entry{ID: m.ID, Hex: m.Hex, Name: m.Name})
		}
	} else {
		for _, e := range resolver.Entries() {
			if _, ok := retained[e.ID]; ok {
				subset = append(subset, e)
			}
		}
	}
	restricted := resolver.Restrict(subset)

	reassigned := 0
	for i, e := range entries {
		if empty(i) {
			continue
		}
		if _, ok := retained[e.ID]; ok {
			continue
		}
		entries[i] = restricted.Resolve(sources[i])
		reassigned++
	}
	return reassigned
}
