// Package noise implements the seeded noise primitives used by the
// terrain generation pipeline: Perlin, simplex and cellular/Voronoi
// noise together with fractal (FBM) composition.
//
// Every function in this package is a pure function of its inputs.
// Identical (position, seed) pairs always produce identical results,
// regardless of goroutine or call order. Chunks are regenerated and
// streamed independently, so this determinism is a hard contract, not
// an optimisation.
package noise

import (
	"github.com/df-mc/terragen/internal/nmath"
	"github.com/go-gl/mathgl/mgl64"
)

// Type identifies one of the base noise functions.
type Type uint8

const (
	Perlin Type = iota
	Simplex
	Cellular
	Voronoi
)

// String returns the lower-case name of the noise type.
func (t Type) String() string {
	switch t {
	case Perlin:
		return "perlin"
	case Simplex:
		return "simplex"
	case Cellular:
		return "cellular"
	case Voronoi:
		return "voronoi"
	}
	return "unknown"
}

// Params describes a single noise field. Params values are immutable
// per sampling call; subsystems synthesise many distinct instances
// (temperature, moisture, continentalness, per cave layer, per ore)
// from a shared world seed and a named offset using DeriveSeed.
type Params struct {
	Type        Type
	Seed        int32
	Frequency   float64
	Octaves     int
	Persistence float64
	Lacunarity  float64
	// Amplitude scales the final fractal sum. A zero value is treated
	// as 1 so that a zero Params is still usable.
	Amplitude float64
}

// sample evaluates the base noise function of p at pos, returning a
// value in [-1, 1]. Cellular and Voronoi noise expose their F1
// distance remapped to [-1, 1].
func (p Params) sample(pos mgl64.Vec3) float64 {
	switch p.Type {
	case Simplex:
		return Simplex3(pos, p.Seed)
	case Cellular:
		f1, _ := Cellular3(pos, p.Seed)
		return nmath.Clamp(f1, 0, 1)*2 - 1
	case Voronoi:
		f1, _, _ := Voronoi3(pos, p.Seed)
		return nmath.Clamp(f1, 0, 1)*2 - 1
	default:
		return Perlin3(pos, p.Seed)
	}
}

// FBM evaluates the fractal sum of the base noise described by p at
// pos. Each octave multiplies the frequency by p.Lacunarity and the
// amplitude by p.Persistence; the sum is divided by the total
// amplitude so the result stays within [-1, 1] for any octave count.
func FBM(pos mgl64.Vec3, p Params) float64 {
	octaves := p.Octaves
	if octaves < 1 {
		octaves = 1
	}
	freq := p.Frequency
	if freq == 0 {
		freq = 1
	}
	amp, sum, norm := 1.0, 0.0, 0.0
	for i := 0; i < octaves; i++ {
		sum += p.sample(pos.Mul(freq)) * amp
		norm += amp
		freq *= p.Lacunarity
		amp *= p.Persistence
	}
	if norm == 0 {
		return 0
	}
	out := sum / norm
	if p.Amplitude != 0 {
		out *= p.Amplitude
	}
	return out
}
