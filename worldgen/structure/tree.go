// Package structure implements deterministic placement and stamping of
// discrete structures, currently trees. Structures may cross chunk
// boundaries: injection for a target chunk re-derives the candidates
// of every neighbouring chunk from its seed and stamps only the voxels
// falling inside the target, so per-chunk generation stays
// embarrassingly parallel and no neighbour state is ever mutated.
package structure

// CanopyShape selects the canopy volume of a tree template.
type CanopyShape uint8

const (
	// Sphere writes leaves within a Euclidean radius of the canopy
	// centre.
	Sphere CanopyShape = iota
	// Cone tapers the canopy radius linearly with height.
	Cone
	// FlatDisc writes a flat XY disc one voxel thick on either side of
	// the canopy centre.
	FlatDisc
	// RoundedCube bounds the canopy by the Chebyshev radius with a
	// Manhattan cap that rounds the corners off.
	RoundedCube
)

// SpawnRule is the declarative spawn predicate of a template over the
// candidate column's terrain height, slope, surface material and
// biome. Zero-valued fields do not constrain.
type SpawnRule struct {
	MinHeight   float64
	MaxHeight   float64
	MaxSlopeDeg float64
	// Surfaces and Biomes, when non-empty, restrict the rule to the
	// listed surface materials and biome IDs.
	Surfaces []byte
	Biomes   []byte
}

// Allows reports whether a column satisfies the rule.
func (s SpawnRule) Allows(height, slopeDeg float64, surface, biomeID byte) bool {
	if s.MaxHeight != 0 && (height < s.MinHeight || height > s.MaxHeight) {
		return false
	}
	if s.MaxHeight == 0 && height < s.MinHeight {
		return false
	}
	if s.MaxSlopeDeg > 0 && slopeDeg > s.MaxSlopeDeg {
		return false
	}
	if len(s.Surfaces) > 0 && !containsByte(s.Surfaces, surface) {
		return false
	}
	if len(s.Biomes) > 0 && !containsByte(s.Biomes, biomeID) {
		return false
	}
	return true
}

func containsByte(list []byte, v byte) bool {
	for _, b := range list {
		if b == v {
			return true
		}
	}
	return false
}

// Template describes one tree species. Dimensions are in voxels.
type Template struct {
	Name string

	TrunkHeight   int
	TrunkVariance int
	// TrunkRadius 0 stamps a single column; larger values stamp a
	// Manhattan-distance "plus" cross-section of that radius.
	TrunkRadius int

	CanopyRadius   int
	CanopyVariance int
	CanopyShape    CanopyShape

	// ZOffset shifts the trunk base relative to the terrain surface,
	// e.g. to sink roots one voxel into the ground.
	ZOffset int

	TrunkMaterial byte
	LeafMaterial  byte

	Spawn SpawnRule
}

// maxHorizontal returns the widest horizontal reach of the template in
// voxels.
func (t Template) maxHorizontal() int {
	r := t.CanopyRadius + t.CanopyVariance
	if t.TrunkRadius > r {
		r = t.TrunkRadius
	}
	return r
}

// maxVertical returns the tallest vertical reach of the template in
// voxels, canopy included.
func (t Template) maxVertical() int {
	return t.TrunkHeight + t.TrunkVariance + t.CanopyRadius + t.CanopyVariance + 2
}
