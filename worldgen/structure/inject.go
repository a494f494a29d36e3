package structure

import (
	"math"

	"github.com/df-mc/terragen/worldgen/topology"
)

// Terrain provides the read-only column queries tree placement needs.
// The chunk orchestrator implements it over its topology model and
// biome registry.
type Terrain interface {
	// HeightAt returns the terrain surface elevation of the column
	// through (x, y).
	HeightAt(x, y float64) float64
	// SurfaceInfo returns the surface material, biome and water state
	// of the column through (x, y).
	SurfaceInfo(x, y float64) (surface byte, biome byte, underwater bool)
	// TreeDensity returns the expected tree count of the chunk column
	// at (cx, cy).
	TreeDensity(cx, cy int32) float64
}

// Canvas receives stamped structure voxels for one target chunk, in
// local voxel coordinates.
type Canvas interface {
	// Solid reports whether the voxel at the local coordinate is
	// currently solid.
	Solid(x, y, z int) bool
	// Place writes a solid structure voxel at the local coordinate.
	Place(x, y, z int, material byte)
}

// Injector scatters and stamps trees. An Injector is immutable and
// safe for concurrent use across chunk workers.
type Injector struct {
	templates        []Template
	space            topology.Space
	worldSeed        int64
	rejectUnderwater bool

	maxHorizontal int
	chunkRadius   int32
}

// NewInjector builds an Injector over the template list. With
// rejectUnderwater set, candidates whose column surface lies below the
// water level are discarded.
func NewInjector(templates []Template, space topology.Space, worldSeed int64, rejectUnderwater bool) *Injector {
	inj := &Injector{
		templates:        append([]Template(nil), templates...),
		space:            space,
		worldSeed:        worldSeed,
		rejectUnderwater: rejectUnderwater,
	}
	for _, t := range inj.templates {
		if h := t.maxHorizontal(); h > inj.maxHorizontal {
			inj.maxHorizontal = h
		}
	}
	if space.ChunkSize > 0 {
		inj.chunkRadius = int32((inj.maxHorizontal + space.ChunkSize - 1) / space.ChunkSize)
	}
	return inj
}

// Inject stamps every tree overlapping the target chunk into canvas.
// Trees rooted in neighbouring chunk columns within the template
// radius are re-derived from those chunks' seeds and clipped to the
// target bounds, so the same tree appears identically in every chunk
// it spans.
func (inj *Injector) Inject(target topology.ChunkPos, canvas Canvas, terrain Terrain) {
	if len(inj.templates) == 0 || inj.space.ChunkSize <= 0 {
		return
	}
	for dx := -inj.chunkRadius; dx <= inj.chunkRadius; dx++ {
		for dy := -inj.chunkRadius; dy <= inj.chunkRadius; dy++ {
			inj.injectFrom(target, target[0]+dx, target[1]+dy, canvas, terrain)
		}
	}
}

// injectFrom evaluates the candidate trees rooted in the chunk column
// (cx, cy) and stamps their voxels that fall inside the target chunk.
func (inj *Injector) injectFrom(target topology.ChunkPos, cx, cy int32, canvas Canvas, terrain Terrain) {
	r := newRNG(chunkSeed(inj.worldSeed, cx, cy))

	density := terrain.TreeDensity(cx, cy)
	if density < 0 {
		density = 0
	}
	count := int(density)
	if r.Float64() < density-math.Floor(density) {
		count++
	}

	size := inj.space.ChunkSize
	for i := 0; i < count; i++ {
		// All draws happen before any rejection so the stream stays
		// aligned no matter which candidates fail.
		vx := r.Intn(size)
		vy := r.Intn(size)
		tmpl := inj.templates[r.Intn(len(inj.templates))]
		trunkVar := r.IntRange(tmpl.TrunkVariance)
		canopyVar := r.IntRange(tmpl.CanopyVariance)

		gx := int(cx)*size + vx
		gy := int(cy)*size + vy
		x := inj.space.Origin[0] + float64(gx)*inj.space.VoxelSize
		y := inj.space.Origin[1] + float64(gy)*inj.space.VoxelSize

		height := terrain.HeightAt(x, y)
		surface, biomeID, underwater := terrain.SurfaceInfo(x, y)
		if underwater && inj.rejectUnderwater {
			continue
		}
		if !tmpl.Spawn.Allows(height, inj.slopeAt(terrain, x, y), surface, biomeID) {
			continue
		}

		gz := int(math.Floor((height-inj.space.Origin[2])/inj.space.VoxelSize)) + 1 + tmpl.ZOffset
		inj.stamp(target, canvas, tmpl, gx, gy, gz, trunkVar, canopyVar)
	}
}

// slopeAt estimates the terrain slope at a column in degrees, from the
// central-difference gradient of four neighbouring height samples.
func (inj *Injector) slopeAt(terrain Terrain, x, y float64) float64 {
	step := inj.space.VoxelSize
	gx := (terrain.HeightAt(x+step, y) - terrain.HeightAt(x-step, y)) / (2 * step)
	gy := (terrain.HeightAt(x, y+step) - terrain.HeightAt(x, y-step)) / (2 * step)
	return math.Atan(math.Hypot(gx, gy)) * 180 / math.Pi
}

// stamp writes one tree into the target chunk, clipping every voxel to
// the target bounds.
func (inj *Injector) stamp(target topology.ChunkPos, canvas Canvas, tmpl Template, gx, gy, gz, trunkVar, canopyVar int) {
	trunkHeight := tmpl.TrunkHeight + trunkVar
	if trunkHeight < 1 {
		trunkHeight = 1
	}
	radius := tmpl.CanopyRadius + canopyVar
	if radius < 0 {
		radius = 0
	}

	// Trunk: a single column, widened to a Manhattan "plus"
	// cross-section when the template has a trunk radius.
	for z := 0; z < trunkHeight; z++ {
		if tmpl.TrunkRadius <= 0 {
			inj.place(target, canvas, gx, gy, gz+z, tmpl.TrunkMaterial, false)
			continue
		}
		for ox := -tmpl.TrunkRadius; ox <= tmpl.TrunkRadius; ox++ {
			for oy := -tmpl.TrunkRadius; oy <= tmpl.TrunkRadius; oy++ {
				if abs(ox)+abs(oy) > tmpl.TrunkRadius {
					continue
				}
				inj.place(target, canvas, gx+ox, gy+oy, gz+z, tmpl.TrunkMaterial, false)
			}
		}
	}

	inj.stampCanopy(target, canvas, tmpl, gx, gy, gz+trunkHeight, radius)
}

// stampCanopy writes the canopy volume centred on (gx, gy, cz). Canopy
// voxels are only written where currently non-solid: terrain is never
// overwritten by leaves.
func (inj *Injector) stampCanopy(target topology.ChunkPos, canvas Canvas, tmpl Template, gx, gy, cz, radius int) {
	if radius <= 0 {
		return
	}
	switch tmpl.CanopyShape {
	case Cone:
		// Radius tapers linearly with height above the trunk top.
		for k := 0; k <= radius; k++ {
			rr := radius - k
			for ox := -rr; ox <= rr; ox++ {
				for oy := -rr; oy <= rr; oy++ {
					if ox*ox+oy*oy > rr*rr {
						continue
					}
					inj.place(target, canvas, gx+ox, gy+oy, cz+k, tmpl.LeafMaterial, true)
				}
			}
		}
	case FlatDisc:
		for oz := -1; oz <= 1; oz++ {
			for ox := -radius; ox <= radius; ox++ {
				for oy := -radius; oy <= radius; oy++ {
					if ox*ox+oy*oy > radius*radius {
						continue
					}
					inj.place(target, canvas, gx+ox, gy+oy, cz+oz, tmpl.LeafMaterial, true)
				}
			}
		}
	case RoundedCube:
		manhattan := (3 * radius) / 2
		for ox := -radius; ox <= radius; ox++ {
			for oy := -radius; oy <= radius; oy++ {
				for oz := -radius; oz <= radius; oz++ {
					if abs(ox)+abs(oy)+abs(oz) > manhattan {
						continue
					}
					inj.place(target, canvas, gx+ox, gy+oy, cz+oz, tmpl.LeafMaterial, true)
				}
			}
		}
	default: // Sphere
		for ox := -radius; ox <= radius; ox++ {
			for oy := -radius; oy <= radius; oy++ {
				for oz := -radius; oz <= radius; oz++ {
					if ox*ox+oy*oy+oz*oz > radius*radius {
						continue
					}
					inj.place(target, canvas, gx+ox, gy+oy, cz+oz, tmpl.LeafMaterial, true)
				}
			}
		}
	}
}

// place clips a global voxel coordinate to the target chunk and writes
// it. With onlyAir set the voxel is skipped when already solid.
func (inj *Injector) place(target topology.ChunkPos, canvas Canvas, gx, gy, gz int, mat byte, onlyAir bool) {
	size := inj.space.ChunkSize
	if floorDiv(gx, size) != int(target[0]) || floorDiv(gy, size) != int(target[1]) || floorDiv(gz, size) != int(target[2]) {
		return
	}
	lx, ly, lz := gx-int(target[0])*size, gy-int(target[1])*size, gz-int(target[2])*size
	if onlyAir && canvas.Solid(lx, ly, lz) {
		return
	}
	canvas.Place(lx, ly, lz, mat)
}

func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
