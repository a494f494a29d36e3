package ore

import (
	"testing"

	"github.com/df-mc/terragen/worldgen/material"
	"github.com/go-gl/mathgl/mgl64"
)

// alwaysVein matches every position in its depth window: threshold 0
// accepts any normalised noise value and rarity 0 disables the hash
// gate.
func alwaysVein(name string, mat byte, minDepth, maxDepth float64, priority int) Vein {
	return Vein{
		Name: name, Material: mat,
		MinDepth: minDepth, MaxDepth: maxDepth,
		Frequency: 0.1, Threshold: 0, Priority: priority,
	}
}

func TestCheckShallowDepth(t *testing.T) {
	t.Parallel()
	table := NewTable([]Vein{alwaysVein("coal", material.CoalOre, 0, 0, 0)})
	pos := mgl64.Vec3{10, 20, -5}
	if _, ok := table.Check(pos, MinSurfaceDepth, 1); ok {
		t.Fatalf("Check placed ore at the surface depth limit")
	}
	if _, ok := table.Check(pos, MinSurfaceDepth-3, 1); ok {
		t.Fatalf("Check placed ore above the surface depth limit")
	}
	if _, ok := table.Check(pos, MinSurfaceDepth+1, 1); !ok {
		t.Fatalf("Check placed no ore just below the surface depth limit")
	}
}

func TestCheckDepthWindow(t *testing.T) {
	t.Parallel()
	table := NewTable([]Vein{alwaysVein("gold", material.GoldOre, 50, 120, 0)})
	pos := mgl64.Vec3{1, 2, 3}
	if _, ok := table.Check(pos, 30, 1); ok {
		t.Fatalf("vein placed above its minimum depth")
	}
	if _, ok := table.Check(pos, 150, 1); ok {
		t.Fatalf("vein placed below its maximum depth")
	}
	if mat, ok := table.Check(pos, 80, 1); !ok || mat != material.GoldOre {
		t.Fatalf("Check(depth 80) = %v, %v, want gold ore", mat, ok)
	}
}

func TestCheckUnboundedMaxDepth(t *testing.T) {
	t.Parallel()
	table := NewTable([]Vein{alwaysVein("coal", material.CoalOre, 12, 0, 0)})
	if _, ok := table.Check(mgl64.Vec3{0, 0, 0}, 1e6, 1); !ok {
		t.Fatalf("vein with MaxDepth 0 did not place at extreme depth")
	}
}

func TestCheckPriority(t *testing.T) {
	t.Parallel()
	table := NewTable([]Vein{
		alwaysVein("coal", material.CoalOre, 0, 0, 1),
		alwaysVein("diamond", material.DiamondOre, 0, 0, 9),
	})
	mat, ok := table.Check(mgl64.Vec3{5, 5, -40}, 40, 1)
	if !ok || mat != material.DiamondOre {
		t.Fatalf("Check = %v, %v, want the higher-priority diamond vein", mat, ok)
	}
}

func TestCheckDeterministic(t *testing.T) {
	t.Parallel()
	table := NewTable([]Vein{{
		Name: "iron", Material: material.IronOre,
		MinDepth: 12, Frequency: 0.08, Threshold: 0.6,
		Shape: Streak, StreakStretch: 3,
	}})
	for x := 0; x < 8; x++ {
		for z := 0; z < 8; z++ {
			pos := mgl64.Vec3{float64(x) * 3.7, 12.5, float64(z)*2.9 - 60}
			m1, ok1 := table.Check(pos, 60, 42)
			m2, ok2 := table.Check(pos, 60, 42)
			if m1 != m2 || ok1 != ok2 {
				t.Fatalf("Check(%v) not deterministic: (%v, %v) then (%v, %v)", pos, m1, ok1, m2, ok2)
			}
		}
	}
}

func TestCheckSeedSensitivity(t *testing.T) {
	t.Parallel()
	table := NewTable([]Vein{{
		Name: "coal", Material: material.CoalOre,
		MinDepth: 12, Frequency: 0.05, Threshold: 0.55,
	}})
	differs := false
	for x := 0; x < 32 && !differs; x++ {
		for y := 0; y < 32 && !differs; y++ {
			pos := mgl64.Vec3{float64(x) * 5.1, float64(y) * 4.3, -80}
			_, a := table.Check(pos, 80, 1)
			_, b := table.Check(pos, 80, 2)
			if a != b {
				differs = true
			}
		}
	}
	if !differs {
		t.Fatalf("ore placement identical across different world seeds")
	}
}

func TestMerge(t *testing.T) {
	t.Parallel()
	world := NewTable([]Vein{alwaysVein("coal", material.CoalOre, 0, 0, 1)})
	local := []Vein{alwaysVein("basalt", material.Basalt, 0, 0, 5)}

	additive := world.Merge(local, false)
	if additive.Len() != 2 {
		t.Fatalf("additive merge has %d veins, want 2", additive.Len())
	}
	if mat, _ := additive.Check(mgl64.Vec3{1, 1, 1}, 40, 1); mat != material.Basalt {
		t.Fatalf("additive merge returned %v, want the higher-priority local vein", mat)
	}

	replaced := world.Merge(local, true)
	if replaced.Len() != 1 {
		t.Fatalf("replace merge has %d veins, want 1", replaced.Len())
	}
	if world.Len() != 1 {
		t.Fatalf("Merge modified the receiver")
	}
}

func TestNilTable(t *testing.T) {
	t.Parallel()
	var table *Table
	if _, ok := table.Check(mgl64.Vec3{}, 100, 1); ok {
		t.Fatalf("nil table placed ore")
	}
	if table.Len() != 0 {
		t.Fatalf("nil table Len = %d, want 0", table.Len())
	}
}
