// Package carve implements the layered cave system: per-layer noise
// fields subtract density from already solid terrain. Layers compose
// by union, taking the strongest carve at a point rather than summing,
// so overlapping systems join into one cavity instead of blasting
// through to full air.
package carve

import (
	"github.com/df-mc/terragen/internal/nmath"
	"github.com/df-mc/terragen/worldgen/noise"
	"github.com/go-gl/mathgl/mgl64"
)

// LayerType selects the carving algorithm of a layer.
type LayerType uint8

const (
	// Cheese carves wherever a single noise field exceeds its
	// threshold, producing large open chambers.
	Cheese LayerType = iota
	// Spaghetti carves winding tunnels where two independent noise
	// fields are simultaneously near zero.
	Spaghetti
	// Noodle behaves like Spaghetti; tables use it with tighter
	// thresholds for thin crawl spaces.
	Noodle
)

// Layer configures one cave layer.
type Layer struct {
	Name    string
	Type    LayerType
	Enabled bool
	// Noise is the layer's primary field. Spaghetti and Noodle layers
	// derive a second independent field from it via SecondSeedOffset
	// and SecondFreqMul.
	Noise noise.Params
	// VerticalSquash scales the vertical axis of the sample position.
	// Values above 1 flatten cave systems; 0 is treated as 1.
	VerticalSquash float64
	// Threshold and Falloff shape the carve response; Strength scales
	// the final carve of this layer (0 is treated as 1).
	Threshold float64
	Falloff   float64
	Strength  float64
	// MinDepth and MaxDepth bound the layer vertically, with a
	// smoothstep fade of FadeWidth on either side. MaxDepth 0 means
	// unbounded below.
	MinDepth  float64
	MaxDepth  float64
	FadeWidth float64

	SecondSeedOffset int32
	SecondFreqMul    float64
}

// samplePos applies the vertical squash to a world position.
func (l Layer) samplePos(pos mgl64.Vec3) mgl64.Vec3 {
	squash := l.VerticalSquash
	if squash == 0 {
		squash = 1
	}
	return mgl64.Vec3{pos[0], pos[1], pos[2] * squash}
}

// secondParams derives the layer's second, independent noise field.
func (l Layer) secondParams() noise.Params {
	p := l.Noise
	p.Seed += l.SecondSeedOffset
	if l.SecondFreqMul > 0 {
		p.Frequency *= l.SecondFreqMul
	}
	return p
}

// depthFade returns the [0, 1] multiplier from the layer's depth band,
// fading in over FadeWidth below MinDepth and out above MaxDepth.
func (l Layer) depthFade(minDepth, depth float64) float64 {
	fade := 1.0
	if w := l.FadeWidth; w > 0 {
		fade *= nmath.Smoothstep(minDepth-w, minDepth, depth)
		if l.MaxDepth > 0 {
			fade *= 1 - nmath.Smoothstep(l.MaxDepth, l.MaxDepth+w, depth)
		}
	} else {
		if depth < minDepth {
			return 0
		}
		if l.MaxDepth > 0 && depth > l.MaxDepth {
			return 0
		}
	}
	return fade
}

// carveAt evaluates the layer's raw carve value in [0, 1] at pos.
func (l Layer) carveAt(pos mgl64.Vec3, depth, minDepth float64) float64 {
	if depth < minDepth-l.FadeWidth {
		return 0
	}
	if l.MaxDepth > 0 && depth > l.MaxDepth+l.FadeWidth {
		return 0
	}

	sp := l.samplePos(pos)
	var carve float64
	switch l.Type {
	case Spaghetti, Noodle:
		// A tunnel exists only where both fields are simultaneously
		// near zero.
		n1 := noise.FBM(sp, l.Noise)
		if nmath.Abs(n1) >= l.Threshold {
			return 0
		}
		n2 := noise.FBM(sp, l.secondParams())
		if nmath.Abs(n2) >= l.Threshold {
			return 0
		}
		s1 := 1 - nmath.Abs(n1)/l.Threshold
		s2 := 1 - nmath.Abs(n2)/l.Threshold
		carve = nmath.Smoothstep(0, l.Falloff, s1*s2)
	default:
		n := noise.FBM(sp, l.Noise)
		if n <= l.Threshold {
			return 0
		}
		if l.Falloff > 0 {
			carve = nmath.Clamp((n-l.Threshold)/l.Falloff, 0, 1)
		} else {
			carve = 1
		}
	}

	if l.Strength > 0 {
		carve *= l.Strength
	}
	return nmath.Clamp(carve*l.depthFade(minDepth, depth), 0, 1)
}

// Carver evaluates a cave layer list against world positions. The
// layer list is fixed at construction.
type Carver struct {
	layers    []Layer
	worldSeed int64
}

// NewCarver builds a Carver over the enabled layers of the
// configuration. Layers with an unseeded noise field get a seed
// derived from the world seed and the layer name.
func NewCarver(layers []Layer, worldSeed int64) *Carver {
	c := &Carver{worldSeed: worldSeed}
	for _, l := range layers {
		if !l.Enabled {
			continue
		}
		if l.Noise.Seed == 0 {
			l.Noise.Seed = noise.DeriveSeed(worldSeed, "cave/"+l.Name)
		}
		c.layers = append(c.layers, l)
	}
	return c
}

// Len returns the number of enabled layers.
func (c *Carver) Len() int {
	if c == nil {
		return 0
	}
	return len(c.layers)
}

// CarveAt returns the fractional carve in [0, 1] at pos for a voxel at
// the given depth. biomeMul scales the result (0 disables carving in
// the biome); biomeMinDepth, when positive, overrides each layer's
// MinDepth. Union across layers takes the maximum carve, never the
// sum.
func (c *Carver) CarveAt(pos mgl64.Vec3, depth, biomeMul, biomeMinDepth float64) float64 {
	if c == nil || biomeMul <= 0 || depth <= 0 {
		return 0
	}
	var carve float64
	for _, l := range c.layers {
		minDepth := l.MinDepth
		if biomeMinDepth > 0 {
			minDepth = biomeMinDepth
		}
		if v := l.carveAt(pos, depth, minDepth); v > carve {
			carve = v
		}
	}
	return nmath.Clamp(carve*biomeMul, 0, 1)
}

// Apply subtracts a carve fraction from a byte density, flooring at 0.
// Only already solid voxels should be passed in.
func Apply(density uint8, carve float64) uint8 {
	if carve <= 0 {
		return density
	}
	d := float64(density) - carve*255
	if d < 0 {
		return 0
	}
	return uint8(d)
}
