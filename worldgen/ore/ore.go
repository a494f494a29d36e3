// Package ore implements threshold-noise ore vein placement. Veins are
// evaluated per voxel as a pure function of world position, world seed
// and configuration, so placement is identical no matter which chunk
// or goroutine asks.
package ore

import (
	"math"
	"sort"

	"github.com/df-mc/terragen/internal/nmath"
	"github.com/df-mc/terragen/worldgen/noise"
	"github.com/go-gl/mathgl/mgl64"
)

// Shape selects the spatial character of a vein's noise field.
type Shape uint8

const (
	// Blob produces roughly isotropic pockets.
	Blob Shape = iota
	// Streak stretches the noise field along a per-position direction,
	// producing elongated veins.
	Streak
)

// MinSurfaceDepth is the depth below the terrain surface above which
// no ore is ever placed. The shallow band is what a smooth mesher
// samples for surface materials; ore speckles there read as artefacts.
const MinSurfaceDepth = 10.0

// Vein configures one ore type.
type Vein struct {
	Name     string
	Material byte
	// MinDepth and MaxDepth bound the depth band of the vein. A
	// MaxDepth of 0 means unbounded.
	MinDepth float64
	MaxDepth float64
	Shape    Shape
	// Frequency is the vein noise frequency; Threshold is the minimum
	// normalised noise value, in [0, 1], at which ore appears.
	Frequency float64
	Threshold float64
	// SeedOffset further decorrelates the vein's noise field from
	// other veins with the same name-derived seed.
	SeedOffset int32
	// Rarity in [0, 1] thins placement: candidates additionally pass a
	// deterministic position hash with this probability. 1 (or 0,
	// unset) disables the gate.
	Rarity float64
	// StreakStretch is the elongation factor for Streak veins.
	StreakStretch float64
	// Priority orders veins; the highest-priority matching vein wins.
	Priority int
}

// seed derives the vein's noise seed from the world seed.
func (v Vein) seed(worldSeed int64) int32 {
	return noise.DeriveSeed(worldSeed, "ore/"+v.Name) + v.SeedOffset
}

// params synthesises the vein's noise parameters.
func (v Vein) params(worldSeed int64) noise.Params {
	return noise.Params{
		Type:        noise.Perlin,
		Seed:        v.seed(worldSeed),
		Frequency:   v.Frequency,
		Octaves:     2,
		Persistence: 0.5,
		Lacunarity:  2,
	}
}

// samplePos returns the position the vein noise is sampled at. Streak
// veins compress the position along a per-position pseudo-random unit
// direction, which elongates the resulting features along it.
func (v Vein) samplePos(pos mgl64.Vec3) mgl64.Vec3 {
	if v.Shape != Streak || v.StreakStretch <= 1 {
		return pos
	}
	yaw := math.Sin(pos[0]*0.0131+pos[1]*0.0173) * math.Pi
	pitch := math.Cos(pos[1]*0.0117+pos[2]*0.0071) * (math.Pi / 2)
	dir := mgl64.Vec3{
		math.Cos(pitch) * math.Cos(yaw),
		math.Cos(pitch) * math.Sin(yaw),
		math.Sin(pitch),
	}
	along := pos.Dot(dir)
	return pos.Sub(dir.Mul(along * (1 - 1/v.StreakStretch)))
}

// matches reports whether the vein places ore at pos for the given
// depth and world seed.
func (v Vein) matches(pos mgl64.Vec3, depth float64, worldSeed int64) bool {
	if depth < v.MinDepth {
		return false
	}
	if v.MaxDepth > 0 && depth > v.MaxDepth {
		return false
	}
	n := (noise.FBM(v.samplePos(pos), v.params(worldSeed)) + 1) / 2
	if n < v.Threshold {
		return false
	}
	if v.Rarity > 0 && v.Rarity < 1 {
		if positionHash(pos, worldSeed) > v.Rarity {
			return false
		}
	}
	return true
}

// positionHash maps a position to a deterministic value in [0, 1)
// using the classic sine-dot-product hash.
func positionHash(pos mgl64.Vec3, worldSeed int64) float64 {
	s := math.Sin(pos[0]*12.9898+pos[1]*78.233+pos[2]*37.719+float64(worldSeed&0xFFFF)) * 43758.5453
	return nmath.Clamp(s-math.Floor(s), 0, 1)
}

// Table is an ore configuration pre-sorted by descending priority. The
// sort happens once at construction; a Table must be replaced rather
// than mutated when the ore configuration changes.
type Table struct {
	sorted []Vein
}

// NewTable builds a Table from the vein list.
func NewTable(veins []Vein) *Table {
	t := &Table{sorted: append([]Vein(nil), veins...)}
	sort.SliceStable(t.sorted, func(a, b int) bool {
		return t.sorted[a].Priority > t.sorted[b].Priority
	})
	return t
}

// Merge combines the table with a biome-local vein list. With replace
// set, only the local veins remain; otherwise they are appended to the
// world table. The receiver is not modified.
func (t *Table) Merge(local []Vein, replace bool) *Table {
	if replace {
		return NewTable(local)
	}
	if len(local) == 0 {
		return t
	}
	combined := make([]Vein, 0, len(t.sorted)+len(local))
	combined = append(combined, t.sorted...)
	combined = append(combined, local...)
	return NewTable(combined)
}

// Len returns the number of veins in the table.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.sorted)
}

// Check evaluates ore placement at a world position. It returns the
// material of the highest-priority matching vein. Positions within
// MinSurfaceDepth of the surface never place ore; callers are expected
// to invoke Check only for solid voxels.
func (t *Table) Check(pos mgl64.Vec3, depth float64, worldSeed int64) (byte, bool) {
	if t == nil || depth <= MinSurfaceDepth {
		return 0, false
	}
	for _, v := range t.sorted {
		if v.matches(pos, depth, worldSeed) {
			return v.Material, true
		}
	}
	return 0, false
}
