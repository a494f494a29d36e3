// Package chunk contains the per-chunk generation orchestrator: it
// combines the topology, biome, carving, ore and structure layers into
// the dense voxel buffer handed to meshing.
package chunk

import (
	"github.com/df-mc/terragen/worldgen/topology"
)

// SurfaceThreshold is the density value of the iso-surface. Densities
// above it are solid.
const SurfaceThreshold = 127

// VoxelSample is the per-voxel generation output: the surface
// material, the solidity density, the dominant biome and a reserved
// byte. Samples are produced once per voxel per chunk generation and
// immutable afterwards.
type VoxelSample struct {
	Material byte
	Density  byte
	Biome    byte
	Flags    byte
}

// Solid reports whether the sample is above the iso-surface.
func (v VoxelSample) Solid() bool {
	return v.Density > SurfaceThreshold
}

// Buffer is the dense voxel output of one chunk, indexed
// x + y·size + z·size². The buffer is owned by a single generation
// call and never shared between workers while being written.
type Buffer struct {
	pos    topology.ChunkPos
	size   int
	voxels []VoxelSample
}

// NewBuffer allocates a zeroed buffer for the chunk at pos.
func NewBuffer(pos topology.ChunkPos, size int) *Buffer {
	return &Buffer{pos: pos, size: size, voxels: make([]VoxelSample, size*size*size)}
}

// Pos returns the chunk position the buffer belongs to.
func (b *Buffer) Pos() topology.ChunkPos {
	return b.pos
}

// Size returns the chunk edge length in voxels.
func (b *Buffer) Size() int {
	return b.size
}

// Len returns the voxel count of the buffer.
func (b *Buffer) Len() int {
	return len(b.voxels)
}

// Index maps a local voxel coordinate to its buffer index.
func (b *Buffer) Index(x, y, z int) int {
	return x + y*b.size + z*b.size*b.size
}

// At returns the sample at the local coordinate. Out-of-bounds
// coordinates return the zero sample.
func (b *Buffer) At(x, y, z int) VoxelSample {
	if !b.inBounds(x, y, z) {
		return VoxelSample{}
	}
	return b.voxels[b.Index(x, y, z)]
}

// Set stores the sample at the local coordinate. Out-of-bounds
// coordinates are ignored.
func (b *Buffer) Set(x, y, z int, v VoxelSample) {
	if !b.inBounds(x, y, z) {
		return
	}
	b.voxels[b.Index(x, y, z)] = v
}

// Raw exposes the backing voxel slice, for serialisation and meshing.
// The slice must be treated as read-only once generation completes.
func (b *Buffer) Raw() []VoxelSample {
	return b.voxels
}

func (b *Buffer) inBounds(x, y, z int) bool {
	return x >= 0 && y >= 0 && z >= 0 && x < b.size && y < b.size && z < b.size
}

// Solid implements structure.Canvas.
func (b *Buffer) Solid(x, y, z int) bool {
	return b.At(x, y, z).Solid()
}

// Place implements structure.Canvas: it writes a fully solid structure
// voxel, keeping the biome already assigned to the position.
func (b *Buffer) Place(x, y, z int, material byte) {
	if !b.inBounds(x, y, z) {
		return
	}
	v := &b.voxels[b.Index(x, y, z)]
	v.Material = material
	v.Density = 255
}
