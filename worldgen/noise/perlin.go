package noise

import (
	"math"

	"github.com/df-mc/terragen/internal/nmath"
	"github.com/go-gl/mathgl/mgl64"
)

// perm is Ken Perlin's reference permutation table. The seed is folded
// into the lookup index rather than into a shuffled copy of the table,
// which keeps Perlin3 allocation-free and safe for concurrent use.
var perm = [256]uint8{
	151, 160, 137, 91, 90, 15, 131, 13, 201, 95, 96, 53, 194, 233, 7, 225,
	140, 36, 103, 30, 69, 142, 8, 99, 37, 240, 21, 10, 23, 190, 6, 148,
	247, 120, 234, 75, 0, 26, 197, 62, 94, 252, 219, 203, 117, 35, 11, 32,
	57, 177, 33, 88, 237, 149, 56, 87, 174, 20, 125, 136, 171, 168, 68, 175,
	74, 165, 71, 134, 139, 48, 27, 166, 77, 146, 158, 231, 83, 111, 229, 122,
	60, 211, 133, 230, 220, 105, 92, 41, 55, 46, 245, 40, 244, 102, 143, 54,
	65, 25, 63, 161, 1, 216, 80, 73, 209, 76, 132, 187, 208, 89, 18, 169,
	200, 196, 135, 130, 116, 188, 159, 86, 164, 100, 109, 198, 173, 186, 3, 64,
	52, 217, 226, 250, 124, 123, 5, 202, 38, 147, 118, 126, 255, 82, 85, 212,
	207, 206, 59, 227, 47, 16, 58, 17, 182, 189, 28, 42, 223, 183, 170, 213,
	119, 248, 152, 2, 44, 154, 163, 70, 221, 153, 101, 155, 167, 43, 172, 9,
	129, 22, 39, 253, 19, 98, 108, 110, 79, 113, 224, 232, 178, 185, 112, 104,
	218, 246, 97, 228, 251, 34, 242, 193, 238, 210, 144, 12, 191, 179, 162, 241,
	81, 51, 145, 235, 249, 14, 239, 107, 49, 192, 214, 31, 181, 199, 106, 157,
	184, 84, 204, 176, 115, 121, 50, 45, 127, 4, 150, 254, 138, 236, 205, 93,
	222, 114, 67, 29, 24, 72, 243, 141, 128, 195, 78, 66, 215, 61, 156, 180,
}

func pidx(i int32) int32 {
	return int32(perm[uint8(i)])
}

// grad projects the corner offset (x, y, z) onto one of 12 gradient
// directions selected by the low bits of hash.
func grad(hash int32, x, y, z float64) float64 {
	switch hash & 15 {
	case 0:
		return x + y
	case 1:
		return -x + y
	case 2:
		return x - y
	case 3:
		return -x - y
	case 4:
		return x + z
	case 5:
		return -x + z
	case 6:
		return x - z
	case 7:
		return -x - z
	case 8:
		return y + z
	case 9:
		return -y + z
	case 10:
		return y - z
	case 11:
		return -y - z
	case 12:
		return y + x
	case 13:
		return -y + z
	case 14:
		return y - x
	default:
		return -y - z
	}
}

// Perlin3 samples classic 3D Perlin noise at pos for the given seed.
// The result lies in [-1, 1]. The permutation lookup is indexed by
// (lattice coordinate + seed) & 255, so distinct seeds shift the
// lattice rather than reshuffling it.
func Perlin3(pos mgl64.Vec3, seed int32) float64 {
	fx, fy, fz := math.Floor(pos[0]), math.Floor(pos[1]), math.Floor(pos[2])
	xi, yi, zi := int32(fx), int32(fy), int32(fz)
	x, y, z := pos[0]-fx, pos[1]-fy, pos[2]-fz

	u, v, w := nmath.Fade(x), nmath.Fade(y), nmath.Fade(z)

	a := pidx(xi+seed) + yi + seed
	aa := pidx(a) + zi + seed
	ab := pidx(a+1) + zi + seed
	b := pidx(xi+1+seed) + yi + seed
	ba := pidx(b) + zi + seed
	bb := pidx(b+1) + zi + seed

	return nmath.Lerp(
		nmath.Lerp(
			nmath.Lerp(grad(pidx(aa), x, y, z), grad(pidx(ba), x-1, y, z), u),
			nmath.Lerp(grad(pidx(ab), x, y-1, z), grad(pidx(bb), x-1, y-1, z), u),
			v),
		nmath.Lerp(
			nmath.Lerp(grad(pidx(aa+1), x, y, z-1), grad(pidx(ba+1), x-1, y, z-1), u),
			nmath.Lerp(grad(pidx(ab+1), x, y-1, z-1), grad(pidx(bb+1), x-1, y-1, z-1), u),
			v),
		w)
}
