package topology

import (
	"math"

	"github.com/df-mc/terragen/internal/nmath"
	"github.com/df-mc/terragen/worldgen/noise"
	"github.com/go-gl/mathgl/mgl64"
)

// FalloffCurve selects how island terrain blends down toward the edge
// height across the falloff zone.
type FalloffCurve uint8

const (
	// FalloffLinear blends with 1-t.
	FalloffLinear FalloffCurve = iota
	// FalloffSmooth blends with the inverted hermite 3t²-2t³.
	FalloffSmooth
	// FalloffSquared blends with (1-t)².
	FalloffSquared
	// FalloffExponential blends with e^(-3t).
	FalloffExponential
)

// Apply evaluates the curve at t in [0, 1], returning the remaining
// terrain weight (1 at the island interior edge, ~0 at the outer rim).
func (c FalloffCurve) Apply(t float64) float64 {
	t = nmath.Clamp(t, 0, 1)
	switch c {
	case FalloffSmooth:
		return 1 - (t * t * (3 - 2*t))
	case FalloffSquared:
		return (1 - t) * (1 - t)
	case FalloffExponential:
		return math.Exp(-3 * t)
	default:
		return 1 - t
	}
}

// IslandParams configures the bounded-island model. The island is
// centred on the world origin; terrain inside Radius behaves like the
// planar model and blends toward EdgeHeight across the Falloff zone.
type IslandParams struct {
	Planar PlanarParams
	// Radius is the distance from the centre where the falloff zone
	// begins. Falloff is the width of that zone; beyond Radius+Falloff
	// the model reports air.
	Radius  float64
	Falloff float64
	// EdgeHeight is the height terrain approaches at the island rim.
	EdgeHeight float64
	// Rectangular switches the distance metric from radial (circular
	// island) to Chebyshev (rectangular island).
	Rectangular bool
	Curve       FalloffCurve
}

// Island bounds planar terrain inside a finite footprint. Outside the
// full extent the model reports a large negative signed distance so
// that no voxel there can become solid.
type Island struct {
	Space
	p IslandParams
}

// NewIsland creates a bounded-island model over the given voxel space.
func NewIsland(space Space, p IslandParams) *Island {
	if p.Planar.MaxHeight <= p.Planar.MinHeight {
		p.Planar.MinHeight, p.Planar.MaxHeight = -1024, 1024
	}
	if p.Radius <= 0 {
		p.Radius = 1
	}
	if p.Falloff < 0 {
		p.Falloff = 0
	}
	return &Island{Space: space, p: p}
}

// edgeDistance returns the horizontal distance of pos from the island
// centre under the configured metric.
func (m *Island) edgeDistance(pos mgl64.Vec3) float64 {
	dx, dy := pos[0]-m.Origin[0], pos[1]-m.Origin[1]
	if m.p.Rectangular {
		return math.Max(nmath.Abs(dx), nmath.Abs(dy))
	}
	return math.Hypot(dx, dy)
}

// falloffFactor returns the terrain weight at pos: 1 inside the island
// radius, the curve value within the falloff zone and 0 beyond it.
func (m *Island) falloffFactor(pos mgl64.Vec3) float64 {
	d := m.edgeDistance(pos)
	if d <= m.p.Radius {
		return 1
	}
	if m.p.Falloff == 0 || d >= m.p.Radius+m.p.Falloff {
		return 0
	}
	return m.p.Curve.Apply((d - m.p.Radius) / m.p.Falloff)
}

// heightFromSample blends the shaped planar height toward the edge
// height by the falloff factor at pos.
func (m *Island) heightFromSample(pos mgl64.Vec3, sample float64, sh Shaping) float64 {
	if sh.ScaleMul == 0 {
		sh.ScaleMul = 1
	}
	base := nmath.Clamp(m.p.Planar.SeaLevel+m.p.Planar.BaseHeight+sh.Offset+sample*m.p.Planar.HeightScale*sh.ScaleMul,
		m.p.Planar.MinHeight, m.p.Planar.MaxHeight)
	f := m.falloffFactor(pos)
	return nmath.Lerp(m.p.EdgeHeight, base, f)
}

func (m *Island) HeightAt(pos mgl64.Vec3, p noise.Params, sh Shaping) float64 {
	if m.outside(pos) {
		return m.p.EdgeHeight
	}
	return m.heightFromSample(pos, noise.FBM(m.NoisePos(pos), p), sh)
}

func (m *Island) SurfaceCoord(pos mgl64.Vec3) float64 {
	return pos[2]
}

func (m *Island) DensityAt(pos mgl64.Vec3, sample float64, sh Shaping) float64 {
	if m.outside(pos) {
		return AirSentinel
	}
	return m.heightFromSample(pos, sample, sh) - pos[2]
}

func (m *Island) NoisePos(pos mgl64.Vec3) mgl64.Vec3 {
	return mgl64.Vec3{pos[0], pos[1], 0}
}

func (m *Island) Bounds() (minZ, maxZ int32) {
	return m.chunkLayer(math.Min(m.p.Planar.MinHeight, m.p.EdgeHeight)), m.chunkLayer(m.p.Planar.MaxHeight)
}

func (m *Island) MaterialAtDepth(depth float64) byte {
	return m.p.Planar.Materials.AtDepth(depth)
}

// outside reports whether pos lies beyond the island's full extent.
func (m *Island) outside(pos mgl64.Vec3) bool {
	return m.edgeDistance(pos) >= m.p.Radius+m.p.Falloff
}

// SeaLevel exposes the configured water surface elevation.
func (m *Island) SeaLevel() float64 {
	return m.p.Planar.SeaLevel
}
