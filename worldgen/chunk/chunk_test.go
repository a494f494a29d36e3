package chunk

import (
	"sync"
	"testing"

	"github.com/df-mc/terragen/worldgen/biome"
	"github.com/df-mc/terragen/worldgen/carve"
	"github.com/df-mc/terragen/worldgen/material"
	"github.com/df-mc/terragen/worldgen/noise"
	"github.com/df-mc/terragen/worldgen/ore"
	"github.com/df-mc/terragen/worldgen/topology"
)

func testSpace() topology.Space {
	return topology.Space{ChunkSize: 16, VoxelSize: 1}
}

// flatModel returns a planar model with all noise influence removed:
// the terrain surface sits exactly at elevation 0 everywhere.
func flatModel() topology.Model {
	return topology.NewPlanar(testSpace(), topology.PlanarParams{
		Materials: topology.LegacyMaterials{
			Surface: material.Grass, Subsurface: material.Dirt, Deep: material.Stone,
			SubsurfaceDepth: 1.5, DeepDepth: 6,
		},
	})
}

func terrainParams() noise.Params {
	return noise.Params{Type: noise.Perlin, Seed: 1, Frequency: 0.01, Octaves: 3, Persistence: 0.5, Lacunarity: 2}
}

func TestBufferIndexing(t *testing.T) {
	t.Parallel()
	b := NewBuffer(topology.ChunkPos{1, 2, 3}, 16)
	if b.Len() != 16*16*16 {
		t.Fatalf("Len = %d, want %d", b.Len(), 16*16*16)
	}
	if got := b.Index(3, 5, 7); got != 3+5*16+7*256 {
		t.Fatalf("Index(3, 5, 7) = %d, want x + y*size + z*size^2", got)
	}
	v := VoxelSample{Material: material.Stone, Density: 200, Biome: 4}
	b.Set(3, 5, 7, v)
	if got := b.At(3, 5, 7); got != v {
		t.Fatalf("At after Set = %+v, want %+v", got, v)
	}
	if got := b.Raw()[b.Index(3, 5, 7)]; got != v {
		t.Fatalf("Raw slice does not reflect Set")
	}
	if got := b.At(-1, 0, 0); got != (VoxelSample{}) {
		t.Fatalf("out-of-bounds At = %+v, want the zero sample", got)
	}
	b.Set(16, 0, 0, v) // must not panic
}

func TestBufferCanvas(t *testing.T) {
	t.Parallel()
	b := NewBuffer(topology.ChunkPos{}, 8)
	if b.Solid(1, 1, 1) {
		t.Fatalf("empty buffer reported a solid voxel")
	}
	b.Set(1, 1, 1, VoxelSample{Biome: 3, Density: 40})
	b.Place(1, 1, 1, material.Wood)
	got := b.At(1, 1, 1)
	if got.Material != material.Wood || got.Density != 255 {
		t.Fatalf("Place result = %+v, want a fully solid wood voxel", got)
	}
	if got.Biome != 3 {
		t.Fatalf("Place cleared the biome id")
	}
	if !b.Solid(1, 1, 1) {
		t.Fatalf("placed voxel not solid")
	}
}

func TestGenerateFlatSurface(t *testing.T) {
	t.Parallel()
	g := New(Config{
		WorldSeed: 1,
		Space:     testSpace(),
		Model:     flatModel(),
		Terrain:   terrainParams(),
	})

	below := g.Generate(topology.ChunkPos{0, 0, -1})
	for x := 0; x < 16; x++ {
		for y := 0; y < 16; y++ {
			// World z = -1, one voxel below the surface: fully solid
			// surface material.
			top := below.At(x, y, 15)
			if top.Density != 255 {
				t.Fatalf("density one voxel below the surface = %d, want 255", top.Density)
			}
			if top.Material != material.Grass {
				t.Fatalf("surface material = %v, want grass", material.Name(top.Material))
			}
			// Deeper voxels move through the depth bands.
			if mat := below.At(x, y, 13).Material; mat != material.Dirt {
				t.Fatalf("material at depth 3 = %v, want dirt", material.Name(mat))
			}
			if mat := below.At(x, y, 5).Material; mat != material.Stone {
				t.Fatalf("material at depth 11 = %v, want stone", material.Name(mat))
			}
		}
	}

	above := g.Generate(topology.ChunkPos{0, 0, 0})
	for x := 0; x < 16; x++ {
		for y := 0; y < 16; y++ {
			// World z = 0 is exactly the iso-surface.
			if d := above.At(x, y, 0).Density; d != 127 {
				t.Fatalf("density at the surface = %d, want 127", d)
			}
			if s := above.At(x, y, 0); s.Solid() {
				t.Fatalf("iso-surface voxel classified solid")
			}
			if d := above.At(x, y, 8).Density; d != 0 {
				t.Fatalf("density well above the surface = %d, want 0", d)
			}
		}
	}
}

func fullConfig() Config {
	return Config{
		WorldSeed: 42,
		Space:     testSpace(),
		Model: topology.NewPlanar(testSpace(), topology.PlanarParams{
			BaseHeight: 4, HeightScale: 24,
			Materials: topology.LegacyMaterials{Surface: material.Grass, Subsurface: material.Dirt, Deep: material.Stone, SubsurfaceDepth: 1.5, DeepDepth: 6},
		}),
		Shaper: topology.ContinentalShaper{
			Enabled:     true,
			Noise:       noise.Params{Type: noise.Perlin, Seed: 5, Frequency: 0.0005, Octaves: 2, Persistence: 0.5, Lacunarity: 2},
			OffsetOcean: -30, OffsetInland: 20, ScaleOcean: 0.5, ScaleInland: 1.2,
		},
		Terrain:     terrainParams(),
		Temperature: noise.Params{Type: noise.Perlin, Seed: 2, Frequency: 0.001, Octaves: 2, Persistence: 0.5, Lacunarity: 2},
		Moisture:    noise.Params{Type: noise.Perlin, Seed: 3, Frequency: 0.001, Octaves: 2, Persistence: 0.5, Lacunarity: 2},
		Biomes:      biome.Default(),
		Ores: ore.NewTable([]ore.Vein{
			{Name: "coal", Material: material.CoalOre, MinDepth: 12, Frequency: 0.09, Threshold: 0.7},
		}),
		Carver: carve.NewCarver([]carve.Layer{{
			Name: "cheese", Type: carve.Cheese, Enabled: true,
			Noise:     noise.Params{Type: noise.Perlin, Seed: 9, Frequency: 0.02, Octaves: 2, Persistence: 0.5, Lacunarity: 2},
			Threshold: 0.4, Falloff: 0.15, Strength: 1, MinDepth: 6, FadeWidth: 4,
		}}, 42),
		CaveWall: material.Stone,
	}
}

func equalBuffers(a, b *Buffer) bool {
	if a.Len() != b.Len() {
		return false
	}
	for i, v := range a.Raw() {
		if b.Raw()[i] != v {
			return false
		}
	}
	return true
}

func TestGenerateDeterministic(t *testing.T) {
	t.Parallel()
	conf := fullConfig()
	g1, g2 := New(conf), New(conf)
	for _, pos := range []topology.ChunkPos{{0, 0, -1}, {3, -2, 0}, {-5, 7, -2}} {
		if !equalBuffers(g1.Generate(pos), g2.Generate(pos)) {
			t.Fatalf("buffers for %v differ between generators with equal configuration", pos)
		}
	}
}

func TestGenerateSeedSensitivity(t *testing.T) {
	t.Parallel()
	conf := fullConfig()
	a := New(conf).Generate(topology.ChunkPos{0, 0, -1})
	conf.WorldSeed = 43
	conf.Terrain.Seed = 77
	b := New(conf).Generate(topology.ChunkPos{0, 0, -1})
	if equalBuffers(a, b) {
		t.Fatalf("different seeds produced identical chunks")
	}
}

func TestGenerateAssignsBiomes(t *testing.T) {
	t.Parallel()
	g := New(fullConfig())
	buf := g.Generate(topology.ChunkPos{0, 0, -1})
	reg := biome.Default()
	for _, v := range buf.Raw() {
		if !v.Solid() {
			continue
		}
		if _, ok := reg.Lookup(v.Biome); !ok {
			t.Fatalf("solid voxel carries unknown biome id %d", v.Biome)
		}
	}
}

func TestQueueMatchesSynchronousGeneration(t *testing.T) {
	t.Parallel()
	g := New(fullConfig())
	q := NewQueue(g, 4, 8, nil)
	defer q.Close()

	positions := []topology.ChunkPos{{0, 0, -1}, {1, 0, -1}, {0, 1, -1}, {2, 2, 0}, {-1, -1, -2}}
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		results = map[topology.ChunkPos]*Buffer{}
	)
	for _, pos := range positions {
		wg.Add(1)
		if _, err := q.Submit(pos, func(res Result) {
			mu.Lock()
			results[res.Pos] = res.Buffer
			mu.Unlock()
			wg.Done()
		}); err != nil {
			t.Fatalf("Submit(%v) error: %v", pos, err)
		}
	}
	wg.Wait()

	for _, pos := range positions {
		if !equalBuffers(results[pos], g.Generate(pos)) {
			t.Fatalf("queued generation of %v differs from synchronous generation", pos)
		}
	}
}

func TestQueueClosed(t *testing.T) {
	t.Parallel()
	q := NewQueue(New(fullConfig()), 1, 1, nil)
	q.Close()
	if _, err := q.Submit(topology.ChunkPos{}, nil); err != ErrQueueClosed {
		t.Fatalf("Submit after Close error = %v, want ErrQueueClosed", err)
	}
	// Close is idempotent.
	q.Close()
}
