package noise

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// grad3 is the 12-entry gradient set of the standard 3D simplex scheme:
// the midpoints of the edges of a cube.
var grad3 = [12][3]float64{
	{1, 1, 0}, {-1, 1, 0}, {1, -1, 0}, {-1, -1, 0},
	{1, 0, 1}, {-1, 0, 1}, {1, 0, -1}, {-1, 0, -1},
	{0, 1, 1}, {0, -1, 1}, {0, 1, -1}, {0, -1, -1},
}

// Skew factors for 3 dimensions.
const (
	skew3   = 1.0 / 3.0
	unskew3 = 1.0 / 6.0
)

// Simplex3 samples 3D simplex noise at pos for the given seed,
// returning a value in [-1, 1]. The simplex corner order is selected
// by ranking the three skewed in-cell coordinates, as in the reference
// implementation.
func Simplex3(pos mgl64.Vec3, seed int32) float64 {
	x, y, z := pos[0], pos[1], pos[2]

	// Skew the input space to find the containing simplex cell.
	s := (x + y + z) * skew3
	i := int32(math.Floor(x + s))
	j := int32(math.Floor(y + s))
	k := int32(math.Floor(z + s))

	t := float64(i+j+k) * unskew3
	x0 := x - (float64(i) - t)
	y0 := y - (float64(j) - t)
	z0 := z - (float64(k) - t)

	// Rank the coordinates to pick the simplex corner traversal order.
	var i1, j1, k1, i2, j2, k2 int32
	if x0 >= y0 {
		switch {
		case y0 >= z0:
			i1, j1, k1, i2, j2, k2 = 1, 0, 0, 1, 1, 0
		case x0 >= z0:
			i1, j1, k1, i2, j2, k2 = 1, 0, 0, 1, 0, 1
		default:
			i1, j1, k1, i2, j2, k2 = 0, 0, 1, 1, 0, 1
		}
	} else {
		switch {
		case y0 < z0:
			i1, j1, k1, i2, j2, k2 = 0, 0, 1, 0, 1, 1
		case x0 < z0:
			i1, j1, k1, i2, j2, k2 = 0, 1, 0, 0, 1, 1
		default:
			i1, j1, k1, i2, j2, k2 = 0, 1, 0, 1, 1, 0
		}
	}

	x1 := x0 - float64(i1) + unskew3
	y1 := y0 - float64(j1) + unskew3
	z1 := z0 - float64(k1) + unskew3
	x2 := x0 - float64(i2) + 2*unskew3
	y2 := y0 - float64(j2) + 2*unskew3
	z2 := z0 - float64(k2) + 2*unskew3
	x3 := x0 - 1 + 3*unskew3
	y3 := y0 - 1 + 3*unskew3
	z3 := z0 - 1 + 3*unskew3

	gi0 := pidx(i+seed+pidx(j+seed+pidx(k+seed))) % 12
	gi1 := pidx(i+i1+seed+pidx(j+j1+seed+pidx(k+k1+seed))) % 12
	gi2 := pidx(i+i2+seed+pidx(j+j2+seed+pidx(k+k2+seed))) % 12
	gi3 := pidx(i+1+seed+pidx(j+1+seed+pidx(k+1+seed))) % 12

	var n float64
	n += corner(gi0, x0, y0, z0)
	n += corner(gi1, x1, y1, z1)
	n += corner(gi2, x2, y2, z2)
	n += corner(gi3, x3, y3, z3)

	// Scale to cover [-1, 1].
	return 32 * n
}

func corner(gi int32, x, y, z float64) float64 {
	t := 0.6 - x*x - y*y - z*z
	if t < 0 {
		return 0
	}
	t *= t
	g := grad3[gi]
	return t * t * (g[0]*x + g[1]*y + g[2]*z)
}
