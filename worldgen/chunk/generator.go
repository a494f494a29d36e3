package chunk

import (
	"github.com/df-mc/terragen/worldgen/biome"
	"github.com/df-mc/terragen/worldgen/carve"
	"github.com/df-mc/terragen/worldgen/noise"
	"github.com/df-mc/terragen/worldgen/ore"
	"github.com/df-mc/terragen/worldgen/structure"
	"github.com/df-mc/terragen/worldgen/topology"
	"github.com/go-gl/mathgl/mgl64"
)

// Config holds the layer stack a Generator runs. All referenced values
// must be immutable once the Generator is built: the same Config is
// read concurrently by every worker.
type Config struct {
	// WorldSeed is the master seed every layer derives its own seeds
	// from.
	WorldSeed int64
	// Space is the voxel grid layout; Model the world topology.
	Space topology.Space
	Model topology.Model
	// Shaper modulates terrain height by the continentalness field. The
	// same field doubles as the third climate axis of biome selection.
	Shaper topology.ContinentalShaper
	// Terrain, Temperature and Moisture are the base noise fields.
	Terrain     noise.Params
	Temperature noise.Params
	Moisture    noise.Params
	// Biomes may be nil, in which case materials fall back to the
	// model's depth-keyed table and no trees or biome ores are placed.
	Biomes *biome.Registry
	Rules  *biome.RuleSet
	// Ores is the world ore table, merged per biome according to each
	// definition's OreMode.
	Ores   *ore.Table
	Carver *carve.Carver
	Trees  *structure.Injector
	// CaveWall, when non-zero, overrides the material of voxels touched
	// by carving, so cavity walls expose rock instead of topsoil.
	CaveWall byte
}

// Generator produces voxel buffers for chunks. It holds no mutable
// state: Generate is a pure function of the chunk position and the
// configuration, so generators are shared freely across workers and
// any two calls for the same position yield identical buffers.
type Generator struct {
	conf Config
	// biomeOres caches the merged per-biome ore tables, keyed by biome
	// id. Built once at construction.
	biomeOres map[byte]*ore.Table
}

// New builds a Generator from the layer stack. The per-biome ore
// tables are merged eagerly here so the per-voxel path never
// allocates.
func New(conf Config) *Generator {
	g := &Generator{conf: conf, biomeOres: map[byte]*ore.Table{}}
	if conf.Biomes != nil {
		for _, d := range conf.Biomes.All() {
			if len(d.Ores) == 0 && d.OreMode != biome.OreReplace {
				continue
			}
			g.biomeOres[d.ID] = conf.Ores.Merge(d.Ores, d.OreMode == biome.OreReplace)
		}
	}
	return g
}

// oreTable returns the ore table in effect inside the given biome.
func (g *Generator) oreTable(biomeID byte) *ore.Table {
	if t, ok := g.biomeOres[biomeID]; ok {
		return t
	}
	return g.conf.Ores
}

// climate samples the three climate axes at a noise position and
// derives the terrain shaping from the continentalness value.
func (g *Generator) climate(np mgl64.Vec3) (t, m, c float64, sh topology.Shaping) {
	t = noise.FBM(np, g.conf.Temperature)
	m = noise.FBM(np, g.conf.Moisture)
	sh = topology.NoShaping
	if g.conf.Shaper.Enabled {
		c = noise.FBM(np, g.conf.Shaper.Noise)
		sh.Offset, sh.ScaleMul = g.conf.Shaper.Shape(c)
	}
	return t, m, c, sh
}

// Generate produces the voxel buffer of the chunk at pos. Voxels are
// filled bottom-up per column: terrain density and biome material
// first, then cave carving, then ore substitution, and finally the
// tree injection pass over the finished buffer.
func (g *Generator) Generate(pos topology.ChunkPos) *Buffer {
	size := g.conf.Space.ChunkSize
	buf := NewBuffer(pos, size)
	model := g.conf.Model
	sea := model.SeaLevel()

	// Climate, shaping and the terrain sample only depend on the
	// model's noise position. For planar worlds that position is
	// constant over a column, so the cache below collapses the work to
	// once per column; spherical worlds recompute per voxel.
	var (
		cached  bool
		cnp     mgl64.Vec3
		sh      topology.Shaping
		sample  float64
		blend   biome.Blend
		def     biome.Definition
		caveMul float64
		caveMin float64
	)

	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			cached = false
			for z := 0; z < size; z++ {
				wpos := g.conf.Space.ChunkToWorld(pos, [3]int{x, y, z})
				np := model.NoisePos(wpos)
				if !cached || np != cnp {
					cnp, cached = np, true
					var t, m, c float64
					t, m, c, sh = g.climate(np)
					sample = noise.FBM(np, g.conf.Terrain)
					caveMul, caveMin = 1, 0
					if g.conf.Biomes != nil {
						blend = g.conf.Biomes.SelectBlend(t, m, c)
						def, _ = g.conf.Biomes.Lookup(blend.Dominant().ID)
						caveMul, caveMin = def.CaveMultiplier, def.CaveMinDepth
					}
				}

				signed := model.DensityAt(wpos, sample, sh)
				if signed <= topology.AirSentinel/2 {
					// Outside a bounded world's extent.
					buf.Set(x, y, z, VoxelSample{})
					continue
				}

				v := VoxelSample{Density: topology.DensityByte(signed, g.conf.Space.VoxelSize)}
				if g.conf.Biomes != nil {
					v.Biome = blend.Dominant().ID
				}
				if !v.Solid() {
					buf.Set(x, y, z, v)
					continue
				}

				depth := signed
				surface := signed + model.SurfaceCoord(wpos)
				underwater := surface < sea

				var mat byte
				if g.conf.Biomes != nil {
					mat = g.conf.Biomes.BlendedMaterial(blend, depth, underwater)
					mat = g.conf.Rules.Apply(mat, surface, depth)
				} else {
					mat = model.MaterialAtDepth(depth)
				}

				if cv := g.conf.Carver.CarveAt(wpos, depth, caveMul, caveMin); cv > 0 {
					v.Density = carve.Apply(v.Density, cv)
					if g.conf.CaveWall != 0 {
						mat = g.conf.CaveWall
					}
				}

				if v.Solid() {
					if oreMat, ok := g.oreTable(v.Biome).Check(wpos, depth, g.conf.WorldSeed); ok {
						mat = oreMat
					}
				}

				v.Material = mat
				buf.Set(x, y, z, v)
			}
		}
	}

	if g.conf.Trees != nil {
		g.conf.Trees.Inject(pos, buf, g)
	}
	return buf
}

// HeightAt implements structure.Terrain over the generator's topology
// and shaping stack.
func (g *Generator) HeightAt(x, y float64) float64 {
	wpos := mgl64.Vec3{x, y, 0}
	np := g.conf.Model.NoisePos(wpos)
	_, _, _, sh := g.climate(np)
	return g.conf.Model.HeightAt(wpos, g.conf.Terrain, sh)
}

// SurfaceInfo implements structure.Terrain: the surface material,
// dominant biome and water state of the column through (x, y).
func (g *Generator) SurfaceInfo(x, y float64) (byte, byte, bool) {
	wpos := mgl64.Vec3{x, y, 0}
	np := g.conf.Model.NoisePos(wpos)
	t, m, c, sh := g.climate(np)
	height := g.conf.Model.HeightAt(wpos, g.conf.Terrain, sh)
	underwater := height < g.conf.Model.SeaLevel()
	if g.conf.Biomes == nil {
		return g.conf.Model.MaterialAtDepth(0), 0, underwater
	}
	b := g.conf.Biomes.SelectBlend(t, m, c)
	mat := g.conf.Biomes.BlendedMaterial(b, 0, underwater)
	mat = g.conf.Rules.Apply(mat, height, 0)
	return mat, b.Dominant().ID, underwater
}

// MaterialAt resolves the material a voxel at the given depth below
// the surface of the column through (x, y) would receive, before cave
// and ore substitution. Map and minimap consumers use it to colour
// terrain without generating chunks.
func (g *Generator) MaterialAt(x, y, depth float64) byte {
	wpos := mgl64.Vec3{x, y, 0}
	np := g.conf.Model.NoisePos(wpos)
	t, m, c, sh := g.climate(np)
	height := g.conf.Model.HeightAt(wpos, g.conf.Terrain, sh)
	underwater := height < g.conf.Model.SeaLevel()
	if g.conf.Biomes == nil {
		return g.conf.Model.MaterialAtDepth(depth)
	}
	b := g.conf.Biomes.SelectBlend(t, m, c)
	mat := g.conf.Biomes.BlendedMaterial(b, depth, underwater)
	return g.conf.Rules.Apply(mat, height, depth)
}

// TreeDensity implements structure.Terrain: the expected tree count of
// a chunk column, taken from the biome at the column's centre.
func (g *Generator) TreeDensity(cx, cy int32) float64 {
	if g.conf.Biomes == nil {
		return 0
	}
	span := float64(g.conf.Space.ChunkSize) * g.conf.Space.VoxelSize
	x := g.conf.Space.Origin[0] + (float64(cx)+0.5)*span
	y := g.conf.Space.Origin[1] + (float64(cy)+0.5)*span
	np := g.conf.Model.NoisePos(mgl64.Vec3{x, y, 0})
	t, m, c, _ := g.climate(np)
	return g.conf.Biomes.Select(t, m, c).TreeDensity
}
