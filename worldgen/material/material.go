// Package material declares the canonical material identifiers used by
// the built-in configuration tables. The generation core treats
// materials as opaque bytes supplied by configuration; these constants
// only exist so the default tables and tools can refer to materials by
// name.
package material

// Canonical material IDs. 0 is always air.
const (
	Air byte = iota
	Stone
	Dirt
	Grass
	Sand
	Gravel
	Snow
	Ice
	Clay
	Sandstone
	Mud
	Wood
	Leaves
	CoalOre
	IronOre
	GoldOre
	CopperOre
	DiamondOre
	Basalt
	Obsidian
)

var names = map[byte]string{
	Air:        "air",
	Stone:      "stone",
	Dirt:       "dirt",
	Grass:      "grass",
	Sand:       "sand",
	Gravel:     "gravel",
	Snow:       "snow",
	Ice:        "ice",
	Clay:       "clay",
	Sandstone:  "sandstone",
	Mud:        "mud",
	Wood:       "wood",
	Leaves:     "leaves",
	CoalOre:    "coal_ore",
	IronOre:    "iron_ore",
	GoldOre:    "gold_ore",
	CopperOre:  "copper_ore",
	DiamondOre: "diamond_ore",
	Basalt:     "basalt",
	Obsidian:   "obsidian",
}

var ids = func() map[string]byte {
	m := make(map[string]byte, len(names))
	for id, name := range names {
		m[name] = id
	}
	return m
}()

// Name returns the canonical name of a material ID, or "unknown" for
// IDs outside the built-in set.
func Name(id byte) string {
	if n, ok := names[id]; ok {
		return n
	}
	return "unknown"
}

// ByName resolves a canonical material name to its ID.
func ByName(name string) (byte, bool) {
	id, ok := ids[name]
	return id, ok
}
