package topology

import (
	"github.com/df-mc/terragen/internal/nmath"
	"github.com/df-mc/terragen/worldgen/noise"
	"github.com/go-gl/mathgl/mgl64"
)

// ContinentalShaper modulates a model's effective terrain parameters
// by a third climate axis, continentalness, so that oceans and
// continental interiors form at a larger scale than the base terrain
// noise. The shaper produces a height offset interpolated piecewise
// linearly across three control points (continentalness -1, 0 and +1)
// and a separate linear height-scale multiplier.
type ContinentalShaper struct {
	Enabled bool
	Noise   noise.Params

	// OffsetOcean, OffsetCoast and OffsetInland are the height offsets
	// applied at continentalness -1, 0 and +1 respectively.
	OffsetOcean  float64
	OffsetCoast  float64
	OffsetInland float64

	// ScaleOcean and ScaleInland are the height-scale multipliers at
	// continentalness -1 and +1; values in between interpolate
	// linearly. Zero values are treated as 1.
	ScaleOcean  float64
	ScaleInland float64
}

// Shape returns the height offset and height-scale multiplier for the
// clamped continentalness value c.
func (s ContinentalShaper) Shape(c float64) (offset, scaleMul float64) {
	if !s.Enabled {
		return 0, 1
	}
	c = nmath.Clamp(c, -1, 1)
	if c < 0 {
		offset = nmath.Lerp(s.OffsetCoast, s.OffsetOcean, -c)
	} else {
		offset = nmath.Lerp(s.OffsetCoast, s.OffsetInland, c)
	}
	lo, hi := s.ScaleOcean, s.ScaleInland
	if lo == 0 {
		lo = 1
	}
	if hi == 0 {
		hi = 1
	}
	scaleMul = nmath.Lerp(lo, hi, (c+1)/2)
	return offset, scaleMul
}

// At samples the continentalness field at the model-mapped noise
// position np and returns the resulting Shaping. Callers obtain np
// from Model.NoisePos so that spherical worlds sample continentalness
// on the sphere as well.
func (s ContinentalShaper) At(np mgl64.Vec3) Shaping {
	if !s.Enabled {
		return NoShaping
	}
	offset, scaleMul := s.Shape(noise.FBM(np, s.Noise))
	return Shaping{Offset: offset, ScaleMul: scaleMul}
}
