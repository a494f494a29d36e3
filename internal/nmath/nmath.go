// Package nmath holds small numeric helpers shared by the generation
// packages. All helpers are pure and inline-friendly.
package nmath

import "golang.org/x/exp/constraints"

// Clamp limits v to the range [lo, hi].
func Clamp[T constraints.Ordered](v, lo, hi T) T {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Lerp interpolates linearly between a and b by t.
func Lerp[T constraints.Float](a, b, t T) T {
	return a + (b-a)*t
}

// Smoothstep returns the hermite interpolation 3t²-2t³ of v remapped
// from [edge0, edge1] to [0, 1]. Degenerate edges collapse to a step.
func Smoothstep[T constraints.Float](edge0, edge1, v T) T {
	if edge0 == edge1 {
		if v < edge0 {
			return 0
		}
		return 1
	}
	t := Clamp((v-edge0)/(edge1-edge0), 0, 1)
	return t * t * (3 - 2*t)
}

// Fade is the classic Perlin fade curve 6t⁵-15t⁴+10t³.
func Fade[T constraints.Float](t T) T {
	return t * t * t * (t*(t*6-15) + 10)
}

// Abs returns the absolute value of v.
func Abs[T constraints.Signed | constraints.Float](v T) T {
	if v < 0 {
		return -v
	}
	return v
}

// Frac returns the fractional part of v, always in [0, 1) for v ≥ 0.
func Frac[T constraints.Float](v T) T {
	return v - T(int64(v))
}
