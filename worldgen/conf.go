package worldgen

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/df-mc/terragen/worldgen/noise"
	"github.com/df-mc/terragen/worldgen/store"
	"github.com/df-mc/terragen/worldgen/structure"
	"github.com/df-mc/terragen/worldgen/topology"
)

// UserConfig is the user configuration for a generation engine. It
// holds the settings that affect the generated world, such as the seed
// and topology, and the paths of the asset tables. UserConfig may be
// serialised to TOML and can be converted to a Config by calling
// UserConfig.Config().
type UserConfig struct {
	World struct {
		// Seed controls all procedural generation. Worlds with equal
		// seeds and settings are identical.
		Seed int64
		// ChunkSize is the chunk edge length in voxels, VoxelSize the
		// voxel edge length in world units.
		ChunkSize int
		VoxelSize float64
		// Topology selects the world shape. Valid values are "planar",
		// "island" and "sphere".
		Topology string
		// SaveData controls whether generated chunks are cached on disk
		// in Folder. Chunks are always regenerable; the cache only
		// saves time.
		SaveData bool
		Folder   string
		// GeneratorWorkers is the number of background workers
		// dedicated to generating chunks. Set to 0 to derive a default
		// from the host's CPU count. GeneratorQueueSize determines how
		// many generation jobs can wait for a worker; 0 chooses a size
		// proportional to the worker count. Increase both if the logs
		// report generation queue saturation.
		GeneratorWorkers   int
		GeneratorQueueSize int
	}
	Terrain struct {
		// Noise selects the base terrain noise: "perlin", "simplex",
		// "cellular" or "voronoi".
		Noise     string
		Frequency float64
		Octaves   int
	}
	Planar struct {
		SeaLevel    float64
		BaseHeight  float64
		HeightScale float64
		MinHeight   float64
		MaxHeight   float64
	}
	Island struct {
		// Radius is where the edge falloff starts and Falloff the width
		// of the blend zone; beyond their sum everything is air.
		Radius     float64
		Falloff    float64
		EdgeHeight float64
		// Rectangular switches the island footprint from circular to
		// rectangular. Curve is one of "linear", "smooth", "squared"
		// and "exponential".
		Rectangular bool
		Curve       string
	}
	Sphere struct {
		PlanetRadius float64
		BaseHeight   float64
		HeightScale  float64
		SeaRadius    float64
	}
	Continents struct {
		// Enabled turns on continentalness shaping of terrain height.
		Enabled   bool
		Frequency float64
		// OffsetOcean, OffsetCoast and OffsetInland are the height
		// offsets at continentalness -1, 0 and +1; ScaleOcean and
		// ScaleInland the height-scale multipliers at the extremes.
		OffsetOcean  float64
		OffsetCoast  float64
		OffsetInland float64
		ScaleOcean   float64
		ScaleInland  float64
	}
	Trees struct {
		Enabled bool
		// AllowUnderwater keeps tree candidates whose column surface
		// lies below the water level.
		AllowUnderwater bool
	}
	Assets struct {
		// Paths of the TOML asset tables. Empty paths select the
		// built-in tables.
		Biomes string
		Ores   string
		Caves  string
		Trees  string
		Rules  string
	}
}

// Config converts a UserConfig to a Config, so that it may be used for
// creating an Engine. An error is returned if the topology settings
// are invalid, an asset table fails to load or the chunk cache cannot
// be opened.
func (uc UserConfig) Config(log *slog.Logger) (Config, error) {
	conf := Config{
		Log:                  log,
		Seed:                 uc.World.Seed,
		ChunkSize:            uc.World.ChunkSize,
		VoxelSize:            uc.World.VoxelSize,
		Workers:              uc.World.GeneratorWorkers,
		QueueSize:            uc.World.GeneratorQueueSize,
		AllowUnderwaterTrees: uc.Trees.AllowUnderwater,
	}
	if conf.ChunkSize <= 0 {
		conf.ChunkSize = 32
	}
	if conf.VoxelSize <= 0 {
		conf.VoxelSize = 1
	}
	space := topology.Space{ChunkSize: conf.ChunkSize, VoxelSize: conf.VoxelSize}

	var err error
	if conf.Model, err = uc.model(space); err != nil {
		return conf, err
	}
	if t := strings.TrimSpace(uc.Terrain.Noise); t != "" {
		nt, ok := parseNoiseType(t)
		if !ok {
			return conf, fmt.Errorf("parse terrain noise: unknown type %q", t)
		}
		conf.Terrain.Type = nt
	}
	conf.Terrain.Frequency = uc.Terrain.Frequency
	conf.Terrain.Octaves = uc.Terrain.Octaves

	if uc.Continents.Enabled {
		conf.Shaper = topology.ContinentalShaper{
			Enabled:      true,
			Noise:        noise.Params{Frequency: uc.Continents.Frequency},
			OffsetOcean:  uc.Continents.OffsetOcean,
			OffsetCoast:  uc.Continents.OffsetCoast,
			OffsetInland: uc.Continents.OffsetInland,
			ScaleOcean:   uc.Continents.ScaleOcean,
			ScaleInland:  uc.Continents.ScaleInland,
		}
	}

	if path := uc.Assets.Biomes; path != "" {
		if conf.Biomes, err = LoadBiomes(path); err != nil {
			return conf, fmt.Errorf("load biomes: %w", err)
		}
	}
	if path := uc.Assets.Ores; path != "" {
		if conf.Ores, err = LoadOres(path); err != nil {
			return conf, fmt.Errorf("load ores: %w", err)
		}
	}
	if path := uc.Assets.Caves; path != "" {
		if conf.Caves, err = LoadCaves(path); err != nil {
			return conf, fmt.Errorf("load caves: %w", err)
		}
	}
	if path := uc.Assets.Trees; path != "" {
		if conf.Trees, err = LoadTrees(path); err != nil {
			return conf, fmt.Errorf("load trees: %w", err)
		}
	}
	if path := uc.Assets.Rules; path != "" {
		if conf.Rules, err = LoadRules(path); err != nil {
			return conf, fmt.Errorf("load height rules: %w", err)
		}
	}
	if !uc.Trees.Enabled {
		conf.Trees = []structure.Template{}
	}
	if uc.World.SaveData {
		if conf.Store, err = store.Open(uc.World.Folder); err != nil {
			return conf, fmt.Errorf("open chunk cache: %w", err)
		}
	}
	return conf, nil
}

// model builds the topology model selected by the configuration.
func (uc UserConfig) model(space topology.Space) (topology.Model, error) {
	planar := topology.PlanarParams{
		SeaLevel:    uc.Planar.SeaLevel,
		BaseHeight:  uc.Planar.BaseHeight,
		HeightScale: uc.Planar.HeightScale,
		MinHeight:   uc.Planar.MinHeight,
		MaxHeight:   uc.Planar.MaxHeight,
		Materials:   defaultPlanarParams().Materials,
	}
	switch strings.ToLower(strings.TrimSpace(uc.World.Topology)) {
	case "", "planar", "flat", "infinite":
		return topology.NewPlanar(space, planar), nil
	case "island", "bounded":
		curve, ok := parseFalloffCurve(uc.Island.Curve)
		if !ok {
			return nil, fmt.Errorf("parse island falloff curve: unknown curve %q", uc.Island.Curve)
		}
		return topology.NewIsland(space, topology.IslandParams{
			Planar:      planar,
			Radius:      uc.Island.Radius,
			Falloff:     uc.Island.Falloff,
			EdgeHeight:  uc.Island.EdgeHeight,
			Rectangular: uc.Island.Rectangular,
			Curve:       curve,
		}), nil
	case "sphere", "planet":
		return topology.NewSphere(space, topology.SphereParams{
			PlanetRadius: uc.Sphere.PlanetRadius,
			BaseHeight:   uc.Sphere.BaseHeight,
			HeightScale:  uc.Sphere.HeightScale,
			SeaRadius:    uc.Sphere.SeaRadius,
			Materials:    defaultPlanarParams().Materials,
		}), nil
	}
	return nil, fmt.Errorf("parse topology: unknown model %q", uc.World.Topology)
}

// DefaultConfig returns a configuration with the default values filled
// out.
func DefaultConfig() UserConfig {
	c := UserConfig{}
	c.World.Seed = 0
	c.World.ChunkSize = 32
	c.World.VoxelSize = 1
	c.World.Topology = "planar"
	c.World.SaveData = true
	c.World.Folder = "chunks"
	c.Terrain.Noise = "perlin"
	c.Terrain.Frequency = 0.004
	c.Terrain.Octaves = 4
	c.Planar.BaseHeight = 10
	c.Planar.HeightScale = 48
	c.Planar.MinHeight = -512
	c.Planar.MaxHeight = 512
	c.Island.Radius = 768
	c.Island.Falloff = 256
	c.Island.EdgeHeight = -48
	c.Island.Curve = "smooth"
	c.Sphere.PlanetRadius = 512
	c.Sphere.BaseHeight = 16
	c.Sphere.HeightScale = 40
	c.Continents.Enabled = true
	c.Continents.Frequency = 0.0004
	c.Continents.OffsetOcean = -40
	c.Continents.OffsetCoast = -6
	c.Continents.OffsetInland = 28
	c.Continents.ScaleOcean = 0.35
	c.Continents.ScaleInland = 1.25
	c.Trees.Enabled = true
	return c
}
