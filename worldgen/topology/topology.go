// Package topology defines the pluggable world shape models that turn
// noise samples into signed terrain distances. Three models are
// provided: an infinite plane, a bounded island and a spherical
// planet. All models share one contract: a positive signed distance
// means solid terrain, negative means air, and quantising the signed
// distance to a byte places the iso-surface exactly at 127.
package topology

import (
	"math"

	"github.com/df-mc/terragen/internal/nmath"
	"github.com/df-mc/terragen/worldgen/noise"
	"github.com/go-gl/mathgl/mgl64"
)

// AirSentinel is the signed distance reported for positions outside a
// bounded world's extent. It is large enough that no subsequent layer
// can turn the voxel solid again.
const AirSentinel = -1 << 20

// Shaping carries the continentalness-derived modulation of a model's
// effective terrain parameters: a height offset and a multiplier on
// the height scale. NoShaping is the identity.
type Shaping struct {
	Offset   float64
	ScaleMul float64
}

// NoShaping leaves a model's configured parameters untouched.
var NoShaping = Shaping{ScaleMul: 1}

// Model is implemented by every world topology. Implementations must
// be immutable after construction; a single Model is shared by all
// generation workers.
type Model interface {
	// HeightAt returns the terrain surface coordinate of the column
	// through pos: an elevation for planar worlds, a radial distance
	// for spherical ones.
	HeightAt(pos mgl64.Vec3, p noise.Params, sh Shaping) float64
	// SurfaceCoord maps pos onto the same scalar axis as HeightAt, so
	// that HeightAt(pos) - SurfaceCoord(pos) is the depth of pos below
	// the surface.
	SurfaceCoord(pos mgl64.Vec3) float64
	// DensityAt converts a prepared noise sample into the signed
	// distance at pos. Positive values are solid terrain.
	DensityAt(pos mgl64.Vec3, sample float64, sh Shaping) float64
	// NoisePos maps pos to the coordinate the 2D terrain noise is
	// sampled at. Planar worlds drop the vertical axis; spherical
	// worlds sample along the direction from the planet centre so that
	// features wrap coherently.
	NoisePos(pos mgl64.Vec3) mgl64.Vec3
	// Bounds returns the inclusive chunk layer range that can contain
	// terrain.
	Bounds() (minZ, maxZ int32)
	// MaterialAtDepth is the legacy depth-based material fallback used
	// when no biome table is configured.
	MaterialAtDepth(depth float64) byte
	// SeaLevel returns the water surface on the same scalar axis as
	// HeightAt: an elevation for planar worlds, a radial distance for
	// spherical ones.
	SeaLevel() float64
}

// ChunkPos identifies a chunk by its coordinates along the three axes.
// Z is the vertical axis.
type ChunkPos [3]int32

// Space holds the voxel grid layout shared by all topology models:
// chunk edge length in voxels, voxel edge length in world units and
// the world-space origin of chunk (0, 0, 0).
type Space struct {
	ChunkSize int
	VoxelSize float64
	Origin    mgl64.Vec3
}

// WorldToChunk returns the chunk containing the world position pos and
// the local voxel coordinate of pos within it.
func (s Space) WorldToChunk(pos mgl64.Vec3) (ChunkPos, [3]int) {
	span := float64(s.ChunkSize) * s.VoxelSize
	var cp ChunkPos
	var local [3]int
	for i := 0; i < 3; i++ {
		rel := pos[i] - s.Origin[i]
		c := math.Floor(rel / span)
		cp[i] = int32(c)
		local[i] = nmath.Clamp(int((rel-c*span)/s.VoxelSize), 0, s.ChunkSize-1)
	}
	return cp, local
}

// ChunkToWorld returns the world position of the voxel at the local
// coordinate within the chunk at pos.
func (s Space) ChunkToWorld(pos ChunkPos, local [3]int) mgl64.Vec3 {
	span := float64(s.ChunkSize) * s.VoxelSize
	return mgl64.Vec3{
		s.Origin[0] + float64(pos[0])*span + float64(local[0])*s.VoxelSize,
		s.Origin[1] + float64(pos[1])*span + float64(local[1])*s.VoxelSize,
		s.Origin[2] + float64(pos[2])*span + float64(local[2])*s.VoxelSize,
	}
}

// chunkLayer returns the chunk Z coordinate containing elevation z.
func (s Space) chunkLayer(z float64) int32 {
	span := float64(s.ChunkSize) * s.VoxelSize
	return int32(math.Floor((z - s.Origin[2]) / span))
}

// DensityByte quantises a signed distance to the byte density stored
// per voxel. The distance is normalised by the voxel size, clamped to
// [-1, 1] and mapped to [0, 255] with 127 exactly at the surface. The
// mapping is monotonic in the signed distance.
func DensityByte(signed, voxelSize float64) uint8 {
	if voxelSize <= 0 {
		voxelSize = 1
	}
	n := nmath.Clamp(signed/voxelSize, -1, 1)
	return uint8(nmath.Clamp(math.Round(127+n*128), 0, 255))
}

// LegacyMaterials is the depth-keyed material fallback shared by the
// models, active only when the biome engine is disabled.
type LegacyMaterials struct {
	Surface, Subsurface, Deep byte
	SubsurfaceDepth, DeepDepth float64
}

// AtDepth resolves a material for the given depth below the surface.
func (l LegacyMaterials) AtDepth(depth float64) byte {
	switch {
	case depth >= l.DeepDepth && l.DeepDepth > 0:
		return l.Deep
	case depth >= l.SubsurfaceDepth && l.SubsurfaceDepth > 0:
		return l.Subsurface
	default:
		return l.Surface
	}
}
