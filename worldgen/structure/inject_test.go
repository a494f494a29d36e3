package structure

import (
	"testing"

	"github.com/df-mc/terragen/worldgen/material"
	"github.com/df-mc/terragen/worldgen/topology"
)

// flatTerrain is a Terrain with a constant surface height and a single
// tree density for every chunk column.
type flatTerrain struct {
	height  float64
	density float64
}

func (f flatTerrain) HeightAt(x, y float64) float64 { return f.height }

func (f flatTerrain) SurfaceInfo(x, y float64) (byte, byte, bool) {
	return material.Grass, 1, false
}

func (f flatTerrain) TreeDensity(cx, cy int32) float64 { return f.density }

// recordCanvas records placements of one target chunk keyed by local
// coordinate.
type recordCanvas struct {
	size   int
	placed map[[3]int]byte
}

func newRecordCanvas(size int) *recordCanvas {
	return &recordCanvas{size: size, placed: map[[3]int]byte{}}
}

func (c *recordCanvas) Solid(x, y, z int) bool {
	_, ok := c.placed[[3]int{x, y, z}]
	return ok
}

func (c *recordCanvas) Place(x, y, z int, mat byte) {
	if x < 0 || y < 0 || z < 0 || x >= c.size || y >= c.size || z >= c.size {
		panic("placement outside the target chunk")
	}
	c.placed[[3]int{x, y, z}] = mat
}

func testTemplate() Template {
	return Template{
		Name:        "oak",
		TrunkHeight: 4, TrunkVariance: 1,
		CanopyRadius: 2, CanopyVariance: 1, CanopyShape: Sphere,
		TrunkMaterial: material.Wood, LeafMaterial: material.Leaves,
	}
}

func testSpace() topology.Space {
	return topology.Space{ChunkSize: 16, VoxelSize: 1}
}

func TestInjectDeterministic(t *testing.T) {
	t.Parallel()
	inj := NewInjector([]Template{testTemplate()}, testSpace(), 99, false)
	terrain := flatTerrain{height: 10, density: 4}
	target := topology.ChunkPos{0, 0, 0}

	a := newRecordCanvas(16)
	inj.Inject(target, a, terrain)
	b := newRecordCanvas(16)
	inj.Inject(target, b, terrain)

	if len(a.placed) == 0 {
		t.Fatalf("no tree voxels placed with density 4")
	}
	if len(a.placed) != len(b.placed) {
		t.Fatalf("placements differ between runs: %d vs %d", len(a.placed), len(b.placed))
	}
	for k, mat := range a.placed {
		if b.placed[k] != mat {
			t.Fatalf("placement at %v differs between runs: %v vs %v", k, mat, b.placed[k])
		}
	}
}

func TestInjectSeedChangesLayout(t *testing.T) {
	t.Parallel()
	terrain := flatTerrain{height: 10, density: 4}
	target := topology.ChunkPos{0, 0, 0}

	a := newRecordCanvas(16)
	NewInjector([]Template{testTemplate()}, testSpace(), 1, false).Inject(target, a, terrain)
	b := newRecordCanvas(16)
	NewInjector([]Template{testTemplate()}, testSpace(), 2, false).Inject(target, b, terrain)

	if len(a.placed) == len(b.placed) {
		same := true
		for k, mat := range a.placed {
			if b.placed[k] != mat {
				same = false
				break
			}
		}
		if same {
			t.Fatalf("tree layout identical across different world seeds")
		}
	}
}

func TestInjectNeighbourTreesReachTarget(t *testing.T) {
	t.Parallel()
	// Trees exist only in the chunk column east of the target, so any
	// placement inside the target must come from a neighbour-rooted
	// tree whose canopy crosses the boundary.
	inj := NewInjector([]Template{testTemplate()}, testSpace(), 7, false)
	terrain := neighbourTerrain{flatTerrain{height: 10}}
	target := topology.ChunkPos{0, 0, 0}

	canvas := newRecordCanvas(16)
	inj.Inject(target, canvas, terrain)
	if len(canvas.placed) == 0 {
		t.Fatalf("no neighbour-rooted tree voxels reached the target chunk")
	}
	reach := inj.maxHorizontal
	for k := range canvas.placed {
		if k[0] < 16-reach {
			t.Fatalf("voxel at %v lies further than the template reach %d from the shared boundary", k, reach)
		}
	}
}

// neighbourTerrain only grows trees in the chunk column at (1, 0).
type neighbourTerrain struct {
	flatTerrain
}

func (n neighbourTerrain) TreeDensity(cx, cy int32) float64 {
	if cx == 1 && cy == 0 {
		return 400
	}
	return 0
}

func TestInjectRespectsUnderwaterRejection(t *testing.T) {
	t.Parallel()
	terrain := underwaterTerrain{flatTerrain{height: 10, density: 6}}
	target := topology.ChunkPos{0, 0, 0}

	rejecting := newRecordCanvas(16)
	NewInjector([]Template{testTemplate()}, testSpace(), 5, true).Inject(target, rejecting, terrain)
	if len(rejecting.placed) != 0 {
		t.Fatalf("underwater rejection placed %d voxels", len(rejecting.placed))
	}

	allowing := newRecordCanvas(16)
	NewInjector([]Template{testTemplate()}, testSpace(), 5, false).Inject(target, allowing, terrain)
	if len(allowing.placed) == 0 {
		t.Fatalf("no placements with rejection disabled")
	}
}

// underwaterTerrain reports every column as underwater.
type underwaterTerrain struct {
	flatTerrain
}

func (u underwaterTerrain) SurfaceInfo(x, y float64) (byte, byte, bool) {
	return material.Sand, 0, true
}

func TestSpawnRule(t *testing.T) {
	t.Parallel()
	rule := SpawnRule{
		MinHeight: 5, MaxHeight: 50, MaxSlopeDeg: 30,
		Surfaces: []byte{material.Grass},
		Biomes:   []byte{2, 3},
	}
	if !rule.Allows(20, 10, material.Grass, 2) {
		t.Fatalf("rule rejected a valid column")
	}
	if rule.Allows(60, 10, material.Grass, 2) {
		t.Fatalf("rule accepted a column above MaxHeight")
	}
	if rule.Allows(20, 45, material.Grass, 2) {
		t.Fatalf("rule accepted a column above MaxSlopeDeg")
	}
	if rule.Allows(20, 10, material.Sand, 2) {
		t.Fatalf("rule accepted a disallowed surface material")
	}
	if rule.Allows(20, 10, material.Grass, 9) {
		t.Fatalf("rule accepted a disallowed biome")
	}
	if !(SpawnRule{}).Allows(-100, 89, material.Mud, 200) {
		t.Fatalf("zero rule constrained a column")
	}
}

func TestCanopyNeverOverwritesSolid(t *testing.T) {
	t.Parallel()
	inj := NewInjector([]Template{testTemplate()}, testSpace(), 13, false)
	terrain := flatTerrain{height: 4, density: 8}
	target := topology.ChunkPos{0, 0, 0}

	canvas := newRecordCanvas(16)
	// Pre-fill a slab of terrain overlapping the canopy zone; leaves
	// must not replace it, trunks may.
	for x := 0; x < 16; x++ {
		for y := 0; y < 16; y++ {
			for z := 0; z < 8; z++ {
				canvas.placed[[3]int{x, y, z}] = material.Stone
			}
		}
	}
	inj.Inject(target, canvas, terrain)
	for k, mat := range canvas.placed {
		if k[2] < 8 && mat == material.Leaves {
			t.Fatalf("leaf voxel overwrote solid terrain at %v", k)
		}
	}
}
