package biome

import "github.com/df-mc/terragen/worldgen/material"

// Built-in biome IDs.
const (
	Ocean byte = iota
	Plains
	Forest
	Desert
	Tundra
	Mountains
	Swamp
)

// DefaultDefinitions returns the built-in biome table used when no
// configuration is supplied or when the configured table turns out to
// be empty. The ranges partition the climate cube loosely on purpose:
// overlap is what the blend zone feeds on.
func DefaultDefinitions() []Definition {
	return []Definition{
		{
			ID: Ocean, Name: "ocean", Priority: 10,
			Temperature:     Range{-1, 1},
			Moisture:        Range{-1, 1},
			Continentalness: Range{-1, -0.25},
			Surface:         material.Gravel, Subsurface: material.Sand, Deep: material.Stone,
			SurfaceUnderwater: material.Sand, SubsurfaceUnderwater: material.Gravel,
			SurfaceDepth: 3, DeepDepth: 12,
			CaveMultiplier: 0.25,
		},
		{
			ID: Plains, Name: "plains", Priority: 0,
			Temperature:     Range{-0.4, 0.6},
			Moisture:        Range{-0.5, 0.5},
			Continentalness: Range{-0.3, 1},
			Surface:         material.Grass, Subsurface: material.Dirt, Deep: material.Stone,
			SurfaceUnderwater: material.Sand, SubsurfaceUnderwater: material.Gravel,
			SurfaceDepth: 1, DeepDepth: 6,
			CaveMultiplier: 1, TreeDensity: 0.4,
		},
		{
			ID: Forest, Name: "forest", Priority: 5,
			Temperature:     Range{-0.3, 0.5},
			Moisture:        Range{0.1, 1},
			Continentalness: Range{-0.2, 1},
			Surface:         material.Grass, Subsurface: material.Dirt, Deep: material.Stone,
			SurfaceUnderwater: material.Mud, SubsurfaceUnderwater: material.Clay,
			SurfaceDepth: 1, DeepDepth: 5,
			CaveMultiplier: 1, TreeDensity: 3.5,
		},
		{
			ID: Desert, Name: "desert", Priority: 3,
			Temperature:     Range{0.4, 1},
			Moisture:        Range{-1, -0.1},
			Continentalness: Range{-0.2, 1},
			Surface:         material.Sand, Subsurface: material.Sandstone, Deep: material.Stone,
			SurfaceUnderwater: material.Sand, SubsurfaceUnderwater: material.Sandstone,
			SurfaceDepth: 4, DeepDepth: 10,
			CaveMultiplier: 1.2,
		},
		{
			ID: Tundra, Name: "tundra", Priority: 3,
			Temperature:     Range{-1, -0.35},
			Moisture:        Range{-1, 1},
			Continentalness: Range{-0.2, 1},
			Surface:         material.Snow, Subsurface: material.Dirt, Deep: material.Stone,
			SurfaceUnderwater: material.Ice, SubsurfaceUnderwater: material.Gravel,
			SurfaceDepth: 1, DeepDepth: 4,
			CaveMultiplier: 0.8, TreeDensity: 0.3,
		},
		{
			ID: Mountains, Name: "mountains", Priority: 8,
			Temperature:     Range{-0.6, 0.3},
			Moisture:        Range{-1, 1},
			Continentalness: Range{0.45, 1},
			Surface:         material.Stone, Subsurface: material.Stone, Deep: material.Stone,
			SurfaceUnderwater: material.Gravel, SubsurfaceUnderwater: material.Stone,
			SurfaceDepth: 2, DeepDepth: 8,
			CaveMultiplier: 1.4, CaveMinDepth: 4, TreeDensity: 0.15,
		},
		{
			ID: Swamp, Name: "swamp", Priority: 2,
			Temperature:     Range{0, 0.7},
			Moisture:        Range{0.4, 1},
			Continentalness: Range{-0.35, 0.2},
			Surface:         material.Mud, Subsurface: material.Clay, Deep: material.Stone,
			SurfaceUnderwater: material.Mud, SubsurfaceUnderwater: material.Clay,
			SurfaceDepth: 2, DeepDepth: 7,
			CaveMultiplier: 0.6, TreeDensity: 1.2,
		},
	}
}

// Default returns a Registry over the built-in biome table with the
// default blend width. It never fails.
func Default() *Registry {
	r, err := NewRegistry(DefaultDefinitions(), DefaultBlendWidth)
	if err != nil {
		// The built-in table is never empty.
		panic(err)
	}
	return r
}
