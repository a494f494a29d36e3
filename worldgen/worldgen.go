// Package worldgen assembles the terrain generation layers into a
// configured engine: topology, climate and biomes, cave carving, ore
// placement and tree injection, with asynchronous chunk workers and an
// optional persistent chunk cache on top.
package worldgen

import (
	"log/slog"
	"runtime"

	"github.com/df-mc/terragen/worldgen/biome"
	"github.com/df-mc/terragen/worldgen/carve"
	"github.com/df-mc/terragen/worldgen/chunk"
	"github.com/df-mc/terragen/worldgen/material"
	"github.com/df-mc/terragen/worldgen/noise"
	"github.com/df-mc/terragen/worldgen/ore"
	"github.com/df-mc/terragen/worldgen/store"
	"github.com/df-mc/terragen/worldgen/structure"
	"github.com/df-mc/terragen/worldgen/topology"
)

// Config contains options for building a generation Engine. The zero
// value of every field is usable: an empty Config yields a planar
// world with the built-in biome, ore, cave and tree tables.
type Config struct {
	// Log is the Logger used for engine diagnostics. If nil, Log is set
	// to slog.Default().
	Log *slog.Logger
	// Seed is the master world seed. Every layer derives its own seeds
	// from it, so two engines with equal Seed and configuration produce
	// identical worlds. 0 is a valid seed.
	Seed int64
	// ChunkSize is the chunk edge length in voxels and VoxelSize the
	// voxel edge length in world units. They default to 32 and 1.
	ChunkSize int
	VoxelSize float64
	// Model is the world topology. If nil, a planar model with default
	// parameters is used.
	Model topology.Model
	// Shaper modulates terrain height by continentalness. When enabled
	// with an unseeded noise field, the seed and sensible field
	// parameters are filled in from Seed.
	Shaper topology.ContinentalShaper
	// Terrain, Temperature and Moisture configure the base noise
	// fields. Zero-valued fields are replaced by defaults with seeds
	// derived from Seed.
	Terrain     noise.Params
	Temperature noise.Params
	Moisture    noise.Params
	// Biomes is the biome table. If nil, the built-in table is used
	// unless DisableBiomes is set, in which case materials fall back to
	// the model's depth-keyed table.
	Biomes        *biome.Registry
	DisableBiomes bool
	// Rules are the height-based material overrides applied after biome
	// material resolution. If nil, the built-in snow cap and beach
	// rules are used.
	Rules *biome.RuleSet
	// Ores is the world ore table; nil selects the built-in table.
	Ores *ore.Table
	// Caves is the cave layer list; nil selects the built-in layers.
	// An empty, non-nil slice disables carving.
	Caves []carve.Layer
	// Trees is the tree template list; nil selects the built-in
	// templates. An empty, non-nil slice disables trees. Trees are
	// never placed on spherical worlds.
	Trees []structure.Template
	// AllowUnderwaterTrees keeps tree candidates whose column surface
	// lies below the water level.
	AllowUnderwaterTrees bool
	// CaveWall is the material carved cavity walls are rewritten to. If
	// 0, stone is used.
	CaveWall byte
	// Workers controls the number of asynchronous chunk workers. If set
	// to 0 or lower, the worker count is derived from the host's
	// available CPUs. QueueSize limits how many generation jobs may
	// wait for a worker; 0 or lower chooses a size proportional to the
	// worker count. Raise both when pre-generating terrain heavily.
	Workers   int
	QueueSize int
	// Store is an optional persistent chunk cache. The Engine takes
	// ownership and closes it on Close.
	Store *store.DB
}

// New creates an Engine using fields of conf. Chunks may be generated
// synchronously with Engine.Chunk or asynchronously with
// Engine.Request afterwards.
func (conf Config) New() *Engine {
	if conf.Log == nil {
		conf.Log = slog.Default()
	}
	if conf.ChunkSize <= 0 {
		conf.ChunkSize = 32
	}
	if conf.VoxelSize <= 0 {
		conf.VoxelSize = 1
	}
	space := topology.Space{ChunkSize: conf.ChunkSize, VoxelSize: conf.VoxelSize}
	if conf.Model == nil {
		conf.Model = topology.NewPlanar(space, defaultPlanarParams())
	}
	conf.Terrain = fillNoise(conf.Terrain, conf.Seed, "terrain", 0.004, 4)
	conf.Temperature = fillNoise(conf.Temperature, conf.Seed, "climate/temperature", 0.0008, 2)
	conf.Moisture = fillNoise(conf.Moisture, conf.Seed, "climate/moisture", 0.0008, 2)
	if conf.Shaper.Enabled {
		conf.Shaper.Noise = fillNoise(conf.Shaper.Noise, conf.Seed, "climate/continentalness", 0.0004, 3)
	}
	if conf.Biomes == nil && !conf.DisableBiomes {
		conf.Biomes = biome.Default()
	}
	if conf.DisableBiomes {
		conf.Biomes = nil
	}
	if conf.Rules == nil {
		conf.Rules = defaultRules(conf.Model.SeaLevel())
	}
	if conf.Ores == nil {
		conf.Ores = ore.NewTable(defaultVeins())
	}
	if conf.Caves == nil {
		conf.Caves = defaultCaves()
	}
	if conf.Trees == nil {
		conf.Trees = defaultTrees()
	}
	if conf.CaveWall == 0 {
		conf.CaveWall = material.Stone
	}
	if conf.Workers <= 0 {
		conf.Workers = runtime.NumCPU()
	}
	if conf.QueueSize <= 0 {
		conf.QueueSize = conf.Workers * 16
	}

	var trees *structure.Injector
	if _, sphere := conf.Model.(*topology.Sphere); !sphere && len(conf.Trees) > 0 {
		trees = structure.NewInjector(conf.Trees, space, conf.Seed, !conf.AllowUnderwaterTrees)
	}

	gen := chunk.New(chunk.Config{
		WorldSeed:   conf.Seed,
		Space:       space,
		Model:       conf.Model,
		Shaper:      conf.Shaper,
		Terrain:     conf.Terrain,
		Temperature: conf.Temperature,
		Moisture:    conf.Moisture,
		Biomes:      conf.Biomes,
		Rules:       conf.Rules,
		Ores:        conf.Ores,
		Carver:      carve.NewCarver(conf.Caves, conf.Seed),
		Trees:       trees,
		CaveWall:    conf.CaveWall,
	})
	e := &Engine{
		conf:  conf,
		space: space,
		gen:   gen,
		queue: chunk.NewQueue(gen, conf.Workers, conf.QueueSize, conf.Log),
	}
	conf.Log.Debug("engine created", "seed", conf.Seed, "chunkSize", conf.ChunkSize, "workers", conf.Workers)
	return e
}

// fillNoise substitutes defaults for the zero fields of a noise
// parameter set, deriving the seed from the world seed and a name.
func fillNoise(p noise.Params, seed int64, name string, freq float64, octaves int) noise.Params {
	if p.Seed == 0 {
		p.Seed = noise.DeriveSeed(seed, name)
	}
	if p.Frequency == 0 {
		p.Frequency = freq
	}
	if p.Octaves == 0 {
		p.Octaves = octaves
	}
	if p.Persistence == 0 {
		p.Persistence = 0.5
	}
	if p.Lacunarity == 0 {
		p.Lacunarity = 2
	}
	return p
}

func defaultPlanarParams() topology.PlanarParams {
	return topology.PlanarParams{
		SeaLevel:    0,
		BaseHeight:  10,
		HeightScale: 48,
		MinHeight:   -512,
		MaxHeight:   512,
		Materials: topology.LegacyMaterials{
			Surface: material.Grass, Subsurface: material.Dirt, Deep: material.Stone,
			SubsurfaceDepth: 1.5, DeepDepth: 6,
		},
	}
}

// defaultRules places beach sand in a narrow band around the water
// surface and snow caps high above it.
func defaultRules(sea float64) *biome.RuleSet {
	return biome.NewRuleSet([]biome.HeightRule{
		{MinHeight: sea + 90, MaxHeight: 1 << 16, Material: material.Snow, SurfaceOnly: true, MaxDepth: 2, Priority: 10},
		{MinHeight: sea - 2, MaxHeight: sea + 2.5, Material: material.Sand, SurfaceOnly: true, MaxDepth: 3, Priority: 5},
	})
}

func defaultVeins() []ore.Vein {
	return []ore.Vein{
		{Name: "coal", Material: material.CoalOre, MinDepth: 12, Frequency: 0.09, Threshold: 0.78, Priority: 0},
		{Name: "copper", Material: material.CopperOre, MinDepth: 16, MaxDepth: 120, Frequency: 0.08, Threshold: 0.8, Priority: 1},
		{Name: "iron", Material: material.IronOre, MinDepth: 24, Frequency: 0.07, Shape: ore.Streak, StreakStretch: 3, Threshold: 0.82, Priority: 2},
		{Name: "gold", Material: material.GoldOre, MinDepth: 48, Frequency: 0.06, Threshold: 0.85, Rarity: 0.6, Priority: 3},
		{Name: "diamond", Material: material.DiamondOre, MinDepth: 96, Frequency: 0.05, Threshold: 0.88, Rarity: 0.35, Priority: 4},
	}
}

func defaultCaves() []carve.Layer {
	return []carve.Layer{
		{
			Name: "cheese", Type: carve.Cheese, Enabled: true,
			Noise:          noise.Params{Type: noise.Perlin, Frequency: 0.015, Octaves: 3, Persistence: 0.5, Lacunarity: 2},
			VerticalSquash: 1.6, Threshold: 0.58, Falloff: 0.12, Strength: 1,
			MinDepth: 8, FadeWidth: 5,
		},
		{
			Name: "spaghetti", Type: carve.Spaghetti, Enabled: true,
			Noise:          noise.Params{Type: noise.Perlin, Frequency: 0.02, Octaves: 2, Persistence: 0.5, Lacunarity: 2},
			VerticalSquash: 1.2, Threshold: 0.08, Falloff: 0.35, Strength: 1,
			MinDepth: 6, FadeWidth: 4,
			SecondSeedOffset: 131, SecondFreqMul: 1.13,
		},
		{
			Name: "noodle", Type: carve.Noodle, Enabled: true,
			Noise:          noise.Params{Type: noise.Perlin, Frequency: 0.035, Octaves: 2, Persistence: 0.5, Lacunarity: 2},
			VerticalSquash: 1, Threshold: 0.045, Falloff: 0.4, Strength: 1,
			MinDepth: 20, MaxDepth: 220, FadeWidth: 6,
			SecondSeedOffset: 977, SecondFreqMul: 0.91,
		},
	}
}

func defaultTrees() []structure.Template {
	return []structure.Template{
		{
			Name:        "oak",
			TrunkHeight: 5, TrunkVariance: 2,
			CanopyRadius: 3, CanopyVariance: 1, CanopyShape: structure.Sphere,
			ZOffset:       -1,
			TrunkMaterial: material.Wood, LeafMaterial: material.Leaves,
			Spawn: structure.SpawnRule{MaxSlopeDeg: 35, Surfaces: []byte{material.Grass, material.Dirt}},
		},
		{
			Name:        "pine",
			TrunkHeight: 8, TrunkVariance: 3,
			CanopyRadius: 2, CanopyVariance: 1, CanopyShape: structure.Cone,
			ZOffset:       -1,
			TrunkMaterial: material.Wood, LeafMaterial: material.Leaves,
			Spawn: structure.SpawnRule{MinHeight: 20, MaxSlopeDeg: 40, Surfaces: []byte{material.Grass, material.Dirt, material.Snow}},
		},
		{
			Name:        "swamp_bush",
			TrunkHeight: 2, TrunkVariance: 1,
			CanopyRadius: 2, CanopyShape: structure.FlatDisc,
			TrunkMaterial: material.Wood, LeafMaterial: material.Leaves,
			Spawn: structure.SpawnRule{MaxSlopeDeg: 15, Surfaces: []byte{material.Mud, material.Grass}},
		},
	}
}
