package worldgen

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/df-mc/terragen/worldgen/biome"
	"github.com/df-mc/terragen/worldgen/carve"
	"github.com/df-mc/terragen/worldgen/material"
	"github.com/df-mc/terragen/worldgen/noise"
	"github.com/df-mc/terragen/worldgen/ore"
	"github.com/df-mc/terragen/worldgen/structure"
	"github.com/df-mc/terragen/worldgen/topology"
	"github.com/pelletier/go-toml"
)

// ErrUnknownMaterial is returned when an asset table refers to a
// material name outside the built-in set.
var ErrUnknownMaterial = errors.New("unknown material name")

// rangeEntry is a two-element [min, max] climate interval in an asset
// table.
type rangeEntry []float64

func (r rangeEntry) toRange(what string) (biome.Range, error) {
	if len(r) != 2 {
		return biome.Range{}, fmt.Errorf("%v: expected [min, max], got %d values", what, len(r))
	}
	if r[0] > r[1] {
		return biome.Range{}, fmt.Errorf("%v: min %v exceeds max %v", what, r[0], r[1])
	}
	return biome.Range{Min: r[0], Max: r[1]}, nil
}

func parseMaterial(name, what string) (byte, error) {
	if strings.TrimSpace(name) == "" {
		return material.Air, nil
	}
	id, ok := material.ByName(name)
	if !ok {
		return 0, fmt.Errorf("%v: %w: %q", what, ErrUnknownMaterial, name)
	}
	return id, nil
}

func parseNoiseType(name string) (noise.Type, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "perlin":
		return noise.Perlin, true
	case "simplex":
		return noise.Simplex, true
	case "cellular":
		return noise.Cellular, true
	case "voronoi":
		return noise.Voronoi, true
	}
	return noise.Perlin, false
}

func parseFalloffCurve(name string) (topology.FalloffCurve, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "linear":
		return topology.FalloffLinear, true
	case "smooth":
		return topology.FalloffSmooth, true
	case "squared":
		return topology.FalloffSquared, true
	case "exponential":
		return topology.FalloffExponential, true
	}
	return topology.FalloffLinear, false
}

func parseOreShape(name string) (ore.Shape, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "blob":
		return ore.Blob, true
	case "streak":
		return ore.Streak, true
	}
	return ore.Blob, false
}

func parseCaveType(name string) (carve.LayerType, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "cheese":
		return carve.Cheese, true
	case "spaghetti":
		return carve.Spaghetti, true
	case "noodle":
		return carve.Noodle, true
	}
	return carve.Cheese, false
}

func parseCanopyShape(name string) (structure.CanopyShape, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "sphere":
		return structure.Sphere, true
	case "cone":
		return structure.Cone, true
	case "flat_disc", "disc":
		return structure.FlatDisc, true
	case "rounded_cube", "cube":
		return structure.RoundedCube, true
	}
	return structure.Sphere, false
}

// oreEntry is one vein in an ore asset table.
type oreEntry struct {
	Name          string  `toml:"name"`
	Material      string  `toml:"material"`
	MinDepth      float64 `toml:"min_depth"`
	MaxDepth      float64 `toml:"max_depth"`
	Shape         string  `toml:"shape"`
	Frequency     float64 `toml:"frequency"`
	Threshold     float64 `toml:"threshold"`
	SeedOffset    int64   `toml:"seed_offset"`
	Rarity        float64 `toml:"rarity"`
	StreakStretch float64 `toml:"streak_stretch"`
	Priority      int64   `toml:"priority"`
}

func (e oreEntry) vein() (ore.Vein, error) {
	mat, err := parseMaterial(e.Material, "ore "+e.Name)
	if err != nil {
		return ore.Vein{}, err
	}
	shape, ok := parseOreShape(e.Shape)
	if !ok {
		return ore.Vein{}, fmt.Errorf("ore %v: unknown shape %q", e.Name, e.Shape)
	}
	return ore.Vein{
		Name:          e.Name,
		Material:      mat,
		MinDepth:      e.MinDepth,
		MaxDepth:      e.MaxDepth,
		Shape:         shape,
		Frequency:     e.Frequency,
		Threshold:     e.Threshold,
		SeedOffset:    int32(e.SeedOffset),
		Rarity:        e.Rarity,
		StreakStretch: e.StreakStretch,
		Priority:      int(e.Priority),
	}, nil
}

func veins(entries []oreEntry) ([]ore.Vein, error) {
	out := make([]ore.Vein, 0, len(entries))
	for _, e := range entries {
		v, err := e.vein()
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

type biomesFile struct {
	BlendWidth float64 `toml:"blend_width"`
	Biomes     []struct {
		Name                 string     `toml:"name"`
		ID                   int64      `toml:"id"`
		Priority             int64      `toml:"priority"`
		Temperature          rangeEntry `toml:"temperature"`
		Moisture             rangeEntry `toml:"moisture"`
		Continentalness      rangeEntry `toml:"continentalness"`
		Surface              string     `toml:"surface"`
		Subsurface           string     `toml:"subsurface"`
		Deep                 string     `toml:"deep"`
		SurfaceUnderwater    string     `toml:"surface_underwater"`
		SubsurfaceUnderwater string     `toml:"subsurface_underwater"`
		SurfaceDepth         float64    `toml:"surface_depth"`
		DeepDepth            float64    `toml:"deep_depth"`
		Ores                 []oreEntry `toml:"ores"`
		OreMode              string     `toml:"ore_mode"`
		CaveMultiplier       float64    `toml:"cave_multiplier"`
		CaveMinDepth         float64    `toml:"cave_min_depth"`
		TreeDensity          float64    `toml:"tree_density"`
	} `toml:"biomes"`
}

// LoadBiomes reads a biome table from the TOML file at path and builds
// a Registry from it.
func LoadBiomes(path string) (*biome.Registry, error) {
	contents, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read biome table: %w", err)
	}
	var file biomesFile
	if err := toml.Unmarshal(contents, &file); err != nil {
		return nil, fmt.Errorf("decode biome table: %w", err)
	}
	defs := make([]biome.Definition, 0, len(file.Biomes))
	for _, b := range file.Biomes {
		d := biome.Definition{
			ID:             byte(b.ID),
			Name:           b.Name,
			Priority:       int(b.Priority),
			SurfaceDepth:   b.SurfaceDepth,
			DeepDepth:      b.DeepDepth,
			CaveMultiplier: b.CaveMultiplier,
			CaveMinDepth:   b.CaveMinDepth,
			TreeDensity:    b.TreeDensity,
		}
		if d.Temperature, err = b.Temperature.toRange("biome " + b.Name + " temperature"); err != nil {
			return nil, err
		}
		if d.Moisture, err = b.Moisture.toRange("biome " + b.Name + " moisture"); err != nil {
			return nil, err
		}
		if d.Continentalness, err = b.Continentalness.toRange("biome " + b.Name + " continentalness"); err != nil {
			return nil, err
		}
		mats := []struct {
			name string
			dst  *byte
		}{
			{b.Surface, &d.Surface},
			{b.Subsurface, &d.Subsurface},
			{b.Deep, &d.Deep},
			{b.SurfaceUnderwater, &d.SurfaceUnderwater},
			{b.SubsurfaceUnderwater, &d.SubsurfaceUnderwater},
		}
		for _, m := range mats {
			if *m.dst, err = parseMaterial(m.name, "biome "+b.Name); err != nil {
				return nil, err
			}
		}
		if d.Ores, err = veins(b.Ores); err != nil {
			return nil, fmt.Errorf("biome %v: %w", b.Name, err)
		}
		switch strings.ToLower(strings.TrimSpace(b.OreMode)) {
		case "", "additive":
			d.OreMode = biome.OreAdditive
		case "replace":
			d.OreMode = biome.OreReplace
		default:
			return nil, fmt.Errorf("biome %v: unknown ore mode %q", b.Name, b.OreMode)
		}
		defs = append(defs, d)
	}
	reg, err := biome.NewRegistry(defs, file.BlendWidth)
	if err != nil {
		return nil, fmt.Errorf("build biome registry: %w", err)
	}
	return reg, nil
}

type oresFile struct {
	Ores []oreEntry `toml:"ores"`
}

// LoadOres reads the world ore table from the TOML file at path.
func LoadOres(path string) (*ore.Table, error) {
	contents, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read ore table: %w", err)
	}
	var file oresFile
	if err := toml.Unmarshal(contents, &file); err != nil {
		return nil, fmt.Errorf("decode ore table: %w", err)
	}
	vs, err := veins(file.Ores)
	if err != nil {
		return nil, err
	}
	return ore.NewTable(vs), nil
}

type cavesFile struct {
	Caves []struct {
		Name             string  `toml:"name"`
		Type             string  `toml:"type"`
		Enabled          bool    `toml:"enabled"`
		NoiseType        string  `toml:"noise"`
		Frequency        float64 `toml:"frequency"`
		Octaves          int64   `toml:"octaves"`
		VerticalSquash   float64 `toml:"vertical_squash"`
		Threshold        float64 `toml:"threshold"`
		Falloff          float64 `toml:"falloff"`
		Strength         float64 `toml:"strength"`
		MinDepth         float64 `toml:"min_depth"`
		MaxDepth         float64 `toml:"max_depth"`
		FadeWidth        float64 `toml:"fade_width"`
		SecondSeedOffset int64   `toml:"second_seed_offset"`
		SecondFreqMul    float64 `toml:"second_freq_mul"`
	} `toml:"caves"`
}

// LoadCaves reads the cave layer list from the TOML file at path.
func LoadCaves(path string) ([]carve.Layer, error) {
	contents, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read cave table: %w", err)
	}
	var file cavesFile
	if err := toml.Unmarshal(contents, &file); err != nil {
		return nil, fmt.Errorf("decode cave table: %w", err)
	}
	layers := make([]carve.Layer, 0, len(file.Caves))
	for _, c := range file.Caves {
		lt, ok := parseCaveType(c.Type)
		if !ok {
			return nil, fmt.Errorf("cave %v: unknown type %q", c.Name, c.Type)
		}
		nt, ok := parseNoiseType(c.NoiseType)
		if !ok {
			return nil, fmt.Errorf("cave %v: unknown noise type %q", c.Name, c.NoiseType)
		}
		layers = append(layers, carve.Layer{
			Name:    c.Name,
			Type:    lt,
			Enabled: c.Enabled,
			Noise: noise.Params{
				Type:        nt,
				Frequency:   c.Frequency,
				Octaves:     int(c.Octaves),
				Persistence: 0.5,
				Lacunarity:  2,
			},
			VerticalSquash:   c.VerticalSquash,
			Threshold:        c.Threshold,
			Falloff:          c.Falloff,
			Strength:         c.Strength,
			MinDepth:         c.MinDepth,
			MaxDepth:         c.MaxDepth,
			FadeWidth:        c.FadeWidth,
			SecondSeedOffset: int32(c.SecondSeedOffset),
			SecondFreqMul:    c.SecondFreqMul,
		})
	}
	return layers, nil
}

type treesFile struct {
	Trees []struct {
		Name           string   `toml:"name"`
		TrunkHeight    int64    `toml:"trunk_height"`
		TrunkVariance  int64    `toml:"trunk_variance"`
		TrunkRadius    int64    `toml:"trunk_radius"`
		CanopyRadius   int64    `toml:"canopy_radius"`
		CanopyVariance int64    `toml:"canopy_variance"`
		CanopyShape    string   `toml:"canopy_shape"`
		ZOffset        int64    `toml:"z_offset"`
		Trunk          string   `toml:"trunk"`
		Leaves         string   `toml:"leaves"`
		MinHeight      float64  `toml:"min_height"`
		MaxHeight      float64  `toml:"max_height"`
		MaxSlopeDeg    float64  `toml:"max_slope_deg"`
		Surfaces       []string `toml:"surfaces"`
		Biomes         []int64  `toml:"biomes"`
	} `toml:"trees"`
}

// LoadTrees reads the tree template list from the TOML file at path.
func LoadTrees(path string) ([]structure.Template, error) {
	contents, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read tree table: %w", err)
	}
	var file treesFile
	if err := toml.Unmarshal(contents, &file); err != nil {
		return nil, fmt.Errorf("decode tree table: %w", err)
	}
	templates := make([]structure.Template, 0, len(file.Trees))
	for _, t := range file.Trees {
		shape, ok := parseCanopyShape(t.CanopyShape)
		if !ok {
			return nil, fmt.Errorf("tree %v: unknown canopy shape %q", t.Name, t.CanopyShape)
		}
		trunk, err := parseMaterial(t.Trunk, "tree "+t.Name+" trunk")
		if err != nil {
			return nil, err
		}
		leaves, err := parseMaterial(t.Leaves, "tree "+t.Name+" leaves")
		if err != nil {
			return nil, err
		}
		rule := structure.SpawnRule{
			MinHeight:   t.MinHeight,
			MaxHeight:   t.MaxHeight,
			MaxSlopeDeg: t.MaxSlopeDeg,
		}
		for _, s := range t.Surfaces {
			mat, err := parseMaterial(s, "tree "+t.Name+" surface")
			if err != nil {
				return nil, err
			}
			rule.Surfaces = append(rule.Surfaces, mat)
		}
		for _, b := range t.Biomes {
			rule.Biomes = append(rule.Biomes, byte(b))
		}
		templates = append(templates, structure.Template{
			Name:           t.Name,
			TrunkHeight:    int(t.TrunkHeight),
			TrunkVariance:  int(t.TrunkVariance),
			TrunkRadius:    int(t.TrunkRadius),
			CanopyRadius:   int(t.CanopyRadius),
			CanopyVariance: int(t.CanopyVariance),
			CanopyShape:    shape,
			ZOffset:        int(t.ZOffset),
			TrunkMaterial:  trunk,
			LeafMaterial:   leaves,
			Spawn:          rule,
		})
	}
	return templates, nil
}

type rulesFile struct {
	Rules []struct {
		MinHeight   float64 `toml:"min_height"`
		MaxHeight   float64 `toml:"max_height"`
		Material    string  `toml:"material"`
		SurfaceOnly bool    `toml:"surface_only"`
		MaxDepth    float64 `toml:"max_depth"`
		Priority    int64   `toml:"priority"`
	} `toml:"rules"`
}

// LoadRules reads the height-rule table from the TOML file at path.
func LoadRules(path string) (*biome.RuleSet, error) {
	contents, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read height rules: %w", err)
	}
	var file rulesFile
	if err := toml.Unmarshal(contents, &file); err != nil {
		return nil, fmt.Errorf("decode height rules: %w", err)
	}
	rules := make([]biome.HeightRule, 0, len(file.Rules))
	for _, r := range file.Rules {
		mat, err := parseMaterial(r.Material, "height rule")
		if err != nil {
			return nil, err
		}
		rules = append(rules, biome.HeightRule{
			MinHeight:   r.MinHeight,
			MaxHeight:   r.MaxHeight,
			Material:    mat,
			SurfaceOnly: r.SurfaceOnly,
			MaxDepth:    r.MaxDepth,
			Priority:    int(r.Priority),
		})
	}
	return biome.NewRuleSet(rules), nil
}
