package topology

import (
	"github.com/df-mc/terragen/worldgen/noise"
	"github.com/go-gl/mathgl/mgl64"
)

// sphereNoiseScale is the constant the normalised direction from the
// planet centre is multiplied by before noise sampling. Sampling on a
// scaled unit sphere rather than in Cartesian space keeps terrain
// features coherent all the way around the planet, with no seams at
// the poles or the date line.
const sphereNoiseScale = 256.0

// SphereParams configures the spherical-planet model.
type SphereParams struct {
	Centre       mgl64.Vec3
	PlanetRadius float64
	BaseHeight   float64
	HeightScale  float64
	// SeaRadius is the radial distance of the water surface; 0
	// disables water.
	SeaRadius float64
	Materials LegacyMaterials
}

// Sphere models a spherical planet. "Height" becomes radial distance
// from the planet centre: the terrain surface sits at
// PlanetRadius + BaseHeight + noise*HeightScale*0.5 and the signed
// distance of a position is the terrain radius minus its distance from
// the centre.
type Sphere struct {
	Space
	p SphereParams
}

// NewSphere creates a spherical model over the given voxel space.
func NewSphere(space Space, p SphereParams) *Sphere {
	if p.PlanetRadius <= 0 {
		p.PlanetRadius = 1
	}
	return &Sphere{Space: space, p: p}
}

// terrainRadius converts a noise sample into the surface radius under
// the given shaping.
func (m *Sphere) terrainRadius(sample float64, sh Shaping) float64 {
	if sh.ScaleMul == 0 {
		sh.ScaleMul = 1
	}
	return m.p.PlanetRadius + m.p.BaseHeight + sh.Offset + sample*m.p.HeightScale*0.5*sh.ScaleMul
}

func (m *Sphere) HeightAt(pos mgl64.Vec3, p noise.Params, sh Shaping) float64 {
	return m.terrainRadius(noise.FBM(m.NoisePos(pos), p), sh)
}

// SurfaceCoord returns the radial distance of pos from the planet
// centre, the spherical analogue of elevation.
func (m *Sphere) SurfaceCoord(pos mgl64.Vec3) float64 {
	return pos.Sub(m.p.Centre).Len()
}

func (m *Sphere) DensityAt(pos mgl64.Vec3, sample float64, sh Shaping) float64 {
	return m.terrainRadius(sample, sh) - m.SurfaceCoord(pos)
}

// NoisePos maps pos onto the scaled unit sphere around the planet
// centre. Positions exactly at the centre sample a fixed direction.
func (m *Sphere) NoisePos(pos mgl64.Vec3) mgl64.Vec3 {
	dir := pos.Sub(m.p.Centre)
	if l := dir.Len(); l > 0 {
		dir = dir.Mul(1 / l)
	} else {
		dir = mgl64.Vec3{0, 0, 1}
	}
	return dir.Mul(sphereNoiseScale)
}

func (m *Sphere) Bounds() (minZ, maxZ int32) {
	extent := m.p.PlanetRadius + m.p.BaseHeight + m.p.HeightScale
	return m.chunkLayer(m.p.Centre[2] - extent), m.chunkLayer(m.p.Centre[2] + extent)
}

func (m *Sphere) MaterialAtDepth(depth float64) byte {
	return m.p.Materials.AtDepth(depth)
}

// SeaLevel exposes the radial distance of the water surface. A zero
// value disables water entirely.
func (m *Sphere) SeaLevel() float64 {
	return m.p.SeaRadius
}
