package topology

import (
	"math"
	"testing"

	"github.com/df-mc/terragen/worldgen/noise"
	"github.com/go-gl/mathgl/mgl64"
)

func testSpace() Space {
	return Space{ChunkSize: 16, VoxelSize: 1}
}

func TestDensityByte(t *testing.T) {
	t.Parallel()
	if got := DensityByte(0, 1); got != 127 {
		t.Fatalf("DensityByte(0) = %d, want 127", got)
	}
	if got := DensityByte(1, 1); got != 255 {
		t.Fatalf("DensityByte(full voxel) = %d, want 255", got)
	}
	if got := DensityByte(-5, 1); got != 0 {
		t.Fatalf("DensityByte(deep air) = %d, want 0", got)
	}

	prev := uint8(0)
	for signed := -2.0; signed <= 2.0; signed += 0.01 {
		d := DensityByte(signed, 1)
		if d < prev {
			t.Fatalf("DensityByte not monotonic: %d after %d at signed %v", d, prev, signed)
		}
		prev = d
	}
}

func TestPlanarFlatWorldSurface(t *testing.T) {
	t.Parallel()
	m := NewPlanar(testSpace(), PlanarParams{SeaLevel: 0, BaseHeight: 0, HeightScale: 1000})

	// Zero-amplitude noise: the surface must sit exactly at z=0.
	if signed := m.DensityAt(mgl64.Vec3{10, 20, 0}, 0, NoShaping); signed != 0 {
		t.Fatalf("signed distance at surface = %v, want 0", signed)
	}
	if d := DensityByte(m.DensityAt(mgl64.Vec3{10, 20, 0}, 0, NoShaping), 1); d != 127 {
		t.Fatalf("density at surface = %d, want 127", d)
	}
	if d := DensityByte(m.DensityAt(mgl64.Vec3{10, 20, -1}, 0, NoShaping), 1); d != 255 {
		t.Fatalf("density one voxel below surface = %d, want 255", d)
	}
	if d := DensityByte(m.DensityAt(mgl64.Vec3{10, 20, 1}, 0, NoShaping), 1); d >= 127 {
		t.Fatalf("density above surface = %d, want < 127", d)
	}
}

func TestPlanarShaping(t *testing.T) {
	t.Parallel()
	m := NewPlanar(testSpace(), PlanarParams{SeaLevel: 10, HeightScale: 50})

	base := m.heightFromSample(0.5, NoShaping)
	offset := m.heightFromSample(0.5, Shaping{Offset: 7, ScaleMul: 1})
	if got, want := offset-base, 7.0; math.Abs(got-want) > 1e-9 {
		t.Fatalf("shaping offset shifted height by %v, want %v", got, want)
	}
	scaled := m.heightFromSample(0.5, Shaping{ScaleMul: 2})
	if got, want := scaled-10, 2*(base-10); math.Abs(got-want) > 1e-9 {
		t.Fatalf("shaping scale produced relief %v, want %v", got, want)
	}
}

func TestIslandFalloffCurves(t *testing.T) {
	t.Parallel()
	for _, c := range []FalloffCurve{FalloffLinear, FalloffSmooth, FalloffSquared, FalloffExponential} {
		if got := c.Apply(0); got < 0.99 {
			t.Fatalf("curve %d at t=0: %v, want 1", c, got)
		}
		prev := math.Inf(1)
		for tt := 0.0; tt <= 1.0; tt += 0.05 {
			v := c.Apply(tt)
			if v > prev+1e-12 {
				t.Fatalf("curve %d not monotonically decreasing at t=%v", c, tt)
			}
			prev = v
		}
	}
	if got := FalloffExponential.Apply(1); math.Abs(got-math.Exp(-3)) > 1e-12 {
		t.Fatalf("exponential curve at t=1: %v, want e^-3", got)
	}
}

func TestIslandBlendsTowardEdge(t *testing.T) {
	t.Parallel()
	m := NewIsland(testSpace(), IslandParams{
		Planar:     PlanarParams{SeaLevel: 0, BaseHeight: 40, HeightScale: 0},
		Radius:     100,
		Falloff:    50,
		EdgeHeight: -20,
		Curve:      FalloffLinear,
	})

	inner := m.heightFromSample(mgl64.Vec3{50, 0, 0}, 0, NoShaping)
	if inner != 40 {
		t.Fatalf("interior height = %v, want 40", inner)
	}
	mid := m.heightFromSample(mgl64.Vec3{125, 0, 0}, 0, NoShaping)
	if math.Abs(mid-10) > 1e-9 { // halfway through a linear falloff from 40 to -20
		t.Fatalf("falloff midpoint height = %v, want 10", mid)
	}
	if signed := m.DensityAt(mgl64.Vec3{500, 0, 0}, 0, NoShaping); signed != AirSentinel {
		t.Fatalf("outside extent signed distance = %v, want air sentinel", signed)
	}
}

func TestIslandRectangularMetric(t *testing.T) {
	t.Parallel()
	m := NewIsland(testSpace(), IslandParams{
		Planar:      PlanarParams{BaseHeight: 10},
		Radius:      100,
		Falloff:     10,
		Rectangular: true,
	})
	// Under the Chebyshev metric the corner (99, 99) is still inside.
	if d := m.edgeDistance(mgl64.Vec3{99, 99, 0}); d != 99 {
		t.Fatalf("chebyshev distance = %v, want 99", d)
	}
	if m.outside(mgl64.Vec3{99, 99, 0}) {
		t.Fatalf("corner inside the radius reported as outside")
	}
}

func TestSphereRadialDensity(t *testing.T) {
	t.Parallel()
	m := NewSphere(testSpace(), SphereParams{PlanetRadius: 100})

	// With a zero sample the surface is exactly at the planet radius.
	if signed := m.DensityAt(mgl64.Vec3{100, 0, 0}, 0, NoShaping); signed != 0 {
		t.Fatalf("signed distance at planet radius = %v, want 0", signed)
	}
	if signed := m.DensityAt(mgl64.Vec3{0, 0, 50}, 0, NoShaping); signed != 50 {
		t.Fatalf("signed distance halfway to the centre = %v, want 50", signed)
	}
	if signed := m.DensityAt(mgl64.Vec3{0, 150, 0}, 0, NoShaping); signed != -50 {
		t.Fatalf("signed distance above the surface = %v, want -50", signed)
	}
}

func TestSphereNoiseWrapsCoherently(t *testing.T) {
	t.Parallel()
	m := NewSphere(testSpace(), SphereParams{PlanetRadius: 100, HeightScale: 20})
	p := noise.Params{Type: noise.Perlin, Seed: 5, Frequency: 0.01, Octaves: 3, Persistence: 0.5, Lacunarity: 2}

	// Two positions along the same radial direction sample the same
	// noise and therefore agree on the terrain radius.
	a := m.HeightAt(mgl64.Vec3{50, 50, 10}, p, NoShaping)
	b := m.HeightAt(mgl64.Vec3{100, 100, 20}, p, NoShaping)
	if a != b {
		t.Fatalf("terrain radius differs along one radial direction: %v != %v", a, b)
	}
}

func TestSpaceRoundTrip(t *testing.T) {
	t.Parallel()
	s := Space{ChunkSize: 32, VoxelSize: 0.5, Origin: mgl64.Vec3{-8, 4, 0}}
	for _, cp := range []ChunkPos{{0, 0, 0}, {3, -2, 1}, {-5, 7, -3}} {
		for _, local := range [][3]int{{0, 0, 0}, {31, 31, 31}, {5, 17, 9}} {
			pos := s.ChunkToWorld(cp, local)
			gotCP, gotLocal := s.WorldToChunk(pos)
			if gotCP != cp || gotLocal != local {
				t.Fatalf("round trip %v/%v -> %v -> %v/%v", cp, local, pos, gotCP, gotLocal)
			}
		}
	}
}
