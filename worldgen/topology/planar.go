package topology

import (
	"github.com/df-mc/terragen/internal/nmath"
	"github.com/df-mc/terragen/worldgen/noise"
	"github.com/go-gl/mathgl/mgl64"
)

// PlanarParams configures the infinite flat-world model.
type PlanarParams struct {
	SeaLevel    float64
	BaseHeight  float64
	HeightScale float64
	MinHeight   float64
	MaxHeight   float64
	Materials   LegacyMaterials
}

// Planar is the default topology: terrain height is a clamped function
// of 2D noise over the XY plane and the signed distance is simply the
// height above or below a voxel's elevation.
type Planar struct {
	Space
	p PlanarParams
}

// NewPlanar creates a planar model over the given voxel space.
func NewPlanar(space Space, p PlanarParams) *Planar {
	if p.MaxHeight <= p.MinHeight {
		p.MinHeight, p.MaxHeight = -1024, 1024
	}
	return &Planar{Space: space, p: p}
}

// heightFromSample turns a normalised noise sample into a clamped
// terrain height under the given shaping.
func (m *Planar) heightFromSample(sample float64, sh Shaping) float64 {
	if sh.ScaleMul == 0 {
		sh.ScaleMul = 1
	}
	h := m.p.SeaLevel + m.p.BaseHeight + sh.Offset + sample*m.p.HeightScale*sh.ScaleMul
	return nmath.Clamp(h, m.p.MinHeight, m.p.MaxHeight)
}

func (m *Planar) HeightAt(pos mgl64.Vec3, p noise.Params, sh Shaping) float64 {
	return m.heightFromSample(noise.FBM(m.NoisePos(pos), p), sh)
}

func (m *Planar) SurfaceCoord(pos mgl64.Vec3) float64 {
	return pos[2]
}

func (m *Planar) DensityAt(pos mgl64.Vec3, sample float64, sh Shaping) float64 {
	return m.heightFromSample(sample, sh) - pos[2]
}

func (m *Planar) NoisePos(pos mgl64.Vec3) mgl64.Vec3 {
	return mgl64.Vec3{pos[0], pos[1], 0}
}

func (m *Planar) Bounds() (minZ, maxZ int32) {
	return m.chunkLayer(m.p.MinHeight), m.chunkLayer(m.p.MaxHeight)
}

func (m *Planar) MaterialAtDepth(depth float64) byte {
	return m.p.Materials.AtDepth(depth)
}

// SeaLevel exposes the configured water surface elevation.
func (m *Planar) SeaLevel() float64 {
	return m.p.SeaLevel
}
