package biome

import "sort"

// MaxBlend is the maximum number of biomes participating in a blend.
const MaxBlend = 4

// Entry is one (biome, weight) pair of a Blend.
type Entry struct {
	ID     byte
	Weight float64
}

// Blend is a weighted combination of up to four biomes at one climate
// point. Entries are sorted by descending weight and the weights sum
// to 1. A Blend is constructed fresh per voxel column and never
// persisted.
type Blend struct {
	entries [MaxBlend]Entry
	n       int
}

// Len returns the number of biomes in the blend, in [1, MaxBlend] for
// any blend produced by SelectBlend.
func (b Blend) Len() int {
	return b.n
}

// Entry returns the i-th entry. Entries are ordered by descending
// weight.
func (b Blend) Entry(i int) Entry {
	return b.entries[i]
}

// Dominant returns the highest-weighted entry.
func (b Blend) Dominant() Entry {
	return b.entries[0]
}

// SelectBlend classifies a climate point into a soft biome blend.
// Inputs are clamped to [-1, 1]. Each biome is weighted by its signed
// distance to the point: fully inside the blend zone the weight is 1,
// within it the weight follows the hermite smoothstep of
// (distance+width)/(2·width), and beyond it the weight is 0. Biomes
// with weight above a small epsilon are kept, sorted descending,
// truncated to MaxBlend and renormalised to sum 1.
func (r *Registry) SelectBlend(t, m, c float64) Blend {
	t, m, c = clampClimate(t), clampClimate(m), clampClimate(c)
	width := r.blendWidth

	type candidate struct {
		idx    int
		weight float64
	}
	var candidates []candidate
	for i, d := range r.defs {
		dist := d.SignedDistance(t, m, c)
		var w float64
		switch {
		case dist >= width:
			w = 1
		case dist > -width:
			u := (dist + width) / (2 * width)
			w = u * u * (3 - 2*u)
		}
		if w > 0.001 {
			candidates = append(candidates, candidate{idx: i, weight: w})
		}
	}

	if len(candidates) == 0 {
		// No biome covers this point at all: fall back to the single
		// highest-priority biome so the blend is never empty.
		var b Blend
		b.entries[0] = Entry{ID: r.highestPriority().ID, Weight: 1}
		b.n = 1
		return b
	}

	sort.SliceStable(candidates, func(a, b int) bool {
		ca, cb := candidates[a], candidates[b]
		if ca.weight != cb.weight {
			return ca.weight > cb.weight
		}
		da, db := r.defs[ca.idx], r.defs[cb.idx]
		if da.Priority != db.Priority {
			return da.Priority > db.Priority
		}
		return da.ID < db.ID
	})
	if len(candidates) > MaxBlend {
		candidates = candidates[:MaxBlend]
	}

	var total float64
	for _, c := range candidates {
		total += c.weight
	}
	var b Blend
	for i, c := range candidates {
		b.entries[i] = Entry{ID: r.defs[c.idx].ID, Weight: c.weight / total}
	}
	b.n = len(candidates)
	return b
}
