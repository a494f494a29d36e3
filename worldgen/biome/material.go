package biome

import (
	"math"

	"github.com/segmentio/fasthash/fnv1a"
)

// dominantWeight is the blend weight above which material selection
// short-circuits to the dominant biome without dithering.
const dominantWeight = 0.9

// BlendedMaterial resolves the material for a voxel under a biome
// blend. When one biome clearly dominates (weight above 0.9, or a
// single-entry blend) its depth-based material is returned directly.
// Near boundaries a biome is instead picked stochastically: the
// blend's leading weights and the depth are hashed into a value in
// [0, 1) which walks the cumulative weights. This dithers the material
// choice across boundary voxels rather than blending geometry,
// producing the speckled biome transitions the meshing layer expects.
func (r *Registry) BlendedMaterial(b Blend, depth float64, underwater bool) byte {
	if b.Len() == 0 {
		return 0
	}
	dom := b.Dominant()
	if b.Len() == 1 || dom.Weight > dominantWeight {
		d, _ := r.Lookup(dom.ID)
		return d.MaterialAtDepth(depth, underwater)
	}

	u := ditherValue(b, depth)
	var cumulative float64
	pick := b.Entry(b.Len() - 1).ID
	for i := 0; i < b.Len(); i++ {
		cumulative += b.Entry(i).Weight
		if u < cumulative {
			pick = b.Entry(i).ID
			break
		}
	}
	d, _ := r.Lookup(pick)
	return d.MaterialAtDepth(depth, underwater)
}

// ditherValue hashes the blend's leading weights and the depth into a
// deterministic pseudo-random value in [0, 1). The exact formula is a
// replaceable heuristic; it only needs to be stable and well spread.
func ditherValue(b Blend, depth float64) float64 {
	h := fnv1a.Init64
	for i := 0; i < b.Len(); i++ {
		e := b.Entry(i)
		h = fnv1a.AddUint64(h, uint64(e.ID))
		h = fnv1a.AddUint64(h, math.Float64bits(e.Weight))
	}
	h = fnv1a.AddUint64(h, math.Float64bits(depth))
	return float64(h>>11) / float64(1<<53)
}
