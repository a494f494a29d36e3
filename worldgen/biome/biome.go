// Package biome implements climate-space biome classification and
// blending, material resolution by depth and water state, and the
// height-based material override rules applied on top.
//
// A Registry is built explicitly from a definition table and passed
// into generation; there is no package-level biome state. All caches
// (id lookup, priority order) are built eagerly at construction, so a
// published Registry is immutable and safe for concurrent readers.
// Configuration changes are handled by building a new Registry and
// swapping it in, never by mutating one in place.
package biome

import (
	"errors"
	"sort"

	"github.com/brentp/intintmap"
	"github.com/df-mc/terragen/internal/nmath"
	"github.com/df-mc/terragen/worldgen/ore"
)

// ErrNoBiomes is returned when a Registry is constructed from an empty
// definition table. Callers should fall back to Default() rather than
// treat this as fatal.
var ErrNoBiomes = errors.New("biome: definition table is empty")

// Range is a closed climate interval in [-1, 1].
type Range struct {
	Min, Max float64
}

// SignedDistance returns the distance of v to the nearest edge of the
// range: positive inside, roughly zero on a boundary, negative
// outside.
func (r Range) SignedDistance(v float64) float64 {
	a, b := v-r.Min, r.Max-v
	if a < b {
		return a
	}
	return b
}

// Contains reports whether v lies within the range.
func (r Range) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

// OreMode controls how a biome's local ore list combines with the
// world ore table.
type OreMode uint8

const (
	// OreAdditive appends the biome's veins to the world table.
	OreAdditive OreMode = iota
	// OreReplace uses only the biome's veins inside this biome.
	OreReplace
)

// Definition is one biome in the configuration table. Definitions are
// read-only value data at generation time.
type Definition struct {
	ID   byte
	Name string
	// Priority orders biomes when several match the same climate
	// point and breaks blend-weight ties. Higher wins. This replaces
	// the name-keyed special casing of certain biomes found in older
	// tables.
	Priority int

	Temperature     Range
	Moisture        Range
	Continentalness Range

	// Materials by depth below the surface, with underwater
	// counterparts for the two shallow bands. SurfaceDepth is the
	// thickness of the surface band; DeepDepth is where the deep
	// material starts.
	Surface              byte
	Subsurface           byte
	Deep                 byte
	SurfaceUnderwater    byte
	SubsurfaceUnderwater byte
	SurfaceDepth         float64
	DeepDepth            float64

	// Ores is the optional biome-local vein list, combined with the
	// world table according to OreMode.
	Ores    []ore.Vein
	OreMode OreMode

	// CaveMultiplier scales cave carving inside the biome; 0 disables
	// carving entirely. CaveMinDepth, when non-zero, overrides the
	// minimum carve depth of every cave layer within the biome.
	CaveMultiplier float64
	CaveMinDepth   float64

	// TreeDensity is the expected tree count per chunk column area.
	TreeDensity float64
}

// SignedDistance returns the signed distance of a climate point to the
// biome's region: the minimum of the per-axis edge distances.
func (d Definition) SignedDistance(t, m, c float64) float64 {
	dist := d.Temperature.SignedDistance(t)
	if v := d.Moisture.SignedDistance(m); v < dist {
		dist = v
	}
	if v := d.Continentalness.SignedDistance(c); v < dist {
		dist = v
	}
	return dist
}

// MaterialAtDepth resolves the biome's material for a voxel at the
// given depth below the terrain surface. When underwater, the surface
// and subsurface bands use the underwater materials; the deep material
// is unaffected.
func (d Definition) MaterialAtDepth(depth float64, underwater bool) byte {
	surface, subsurface := d.Surface, d.Subsurface
	if underwater {
		surface, subsurface = d.SurfaceUnderwater, d.SubsurfaceUnderwater
	}
	switch {
	case d.DeepDepth > 0 && depth >= d.DeepDepth:
		return d.Deep
	case depth >= d.SurfaceDepth:
		return subsurface
	default:
		return surface
	}
}

// Registry holds a validated biome table with its lookup caches. A
// Registry is immutable once constructed.
type Registry struct {
	defs       []Definition
	byID       *intintmap.Map
	byPriority []int // indices into defs, highest priority first
	blendWidth float64
}

// DefaultBlendWidth is the climate-space half-width of the blend zone
// used when a Registry is constructed with a non-positive width.
const DefaultBlendWidth = 0.08

// NewRegistry builds a Registry from the definition table. The id
// lookup map and priority order are built here, eagerly: generation
// workers only ever read a fully constructed Registry.
func NewRegistry(defs []Definition, blendWidth float64) (*Registry, error) {
	if len(defs) == 0 {
		return nil, ErrNoBiomes
	}
	if blendWidth <= 0 {
		blendWidth = DefaultBlendWidth
	}
	r := &Registry{
		defs:       append([]Definition(nil), defs...),
		byID:       intintmap.New(len(defs)*2, 0.6),
		byPriority: make([]int, len(defs)),
		blendWidth: blendWidth,
	}
	for i, d := range r.defs {
		r.byID.Put(int64(d.ID), int64(i))
		r.byPriority[i] = i
	}
	sort.SliceStable(r.byPriority, func(a, b int) bool {
		da, db := r.defs[r.byPriority[a]], r.defs[r.byPriority[b]]
		if da.Priority != db.Priority {
			return da.Priority > db.Priority
		}
		return da.ID < db.ID
	})
	return r, nil
}

// Lookup returns the definition with the given id. When the id is
// unknown the first biome in priority order is returned with ok set to
// false, so callers always have a usable definition.
func (r *Registry) Lookup(id byte) (Definition, bool) {
	if i, ok := r.byID.Get(int64(id)); ok {
		return r.defs[i], true
	}
	return r.defs[r.byPriority[0]], false
}

// Len returns the number of biomes in the table.
func (r *Registry) Len() int {
	return len(r.defs)
}

// All returns the definition table in its configured order. The
// returned slice must not be modified.
func (r *Registry) All() []Definition {
	return r.defs
}

// BlendWidth returns the configured climate blend half-width.
func (r *Registry) BlendWidth() float64 {
	return r.blendWidth
}

// highestPriority returns the definition that wins when no biome's
// range contains a climate point.
func (r *Registry) highestPriority() Definition {
	return r.defs[r.byPriority[0]]
}

// Select returns the single best biome for a climate point: the
// highest-priority biome whose ranges contain the clamped point, or
// the overall highest-priority biome when none match.
func (r *Registry) Select(t, m, c float64) Definition {
	t, m, c = clampClimate(t), clampClimate(m), clampClimate(c)
	for _, i := range r.byPriority {
		d := r.defs[i]
		if d.Temperature.Contains(t) && d.Moisture.Contains(m) && d.Continentalness.Contains(c) {
			return d
		}
	}
	return r.highestPriority()
}

func clampClimate(v float64) float64 {
	return nmath.Clamp(v, -1, 1)
}
