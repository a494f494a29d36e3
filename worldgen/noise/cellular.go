package noise

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/segmentio/fasthash/fnv1a"
)

// cellHash mixes the integer coordinates of a unit cell with the seed
// into a stable 64-bit hash.
func cellHash(cx, cy, cz, seed int32) uint64 {
	h := fnv1a.Init64
	h = fnv1a.AddUint64(h, uint64(uint32(cx)))
	h = fnv1a.AddUint64(h, uint64(uint32(cy)))
	h = fnv1a.AddUint64(h, uint64(uint32(cz)))
	h = fnv1a.AddUint64(h, uint64(uint32(seed)))
	return h
}

// featurePoint derives the feature point of a cell from its hash. Each
// axis offset lies in [0, 1) within the cell.
func featurePoint(cx, cy, cz, seed int32) (float64, float64, float64) {
	h := cellHash(cx, cy, cz, seed)
	const mask, scale = 0x1FFFFF, 1.0 / (1 << 21)
	ox := float64(h&mask) * scale
	oy := float64((h>>21)&mask) * scale
	oz := float64((h>>42)&mask) * scale
	return float64(cx) + ox, float64(cy) + oy, float64(cz) + oz
}

// Cellular3 samples 3D cellular (Worley) noise at pos for the given
// seed. It scans the 3×3×3 neighbourhood of unit cells around pos and
// returns the two smallest Euclidean distances to any cell's feature
// point, F1 ≤ F2.
func Cellular3(pos mgl64.Vec3, seed int32) (f1, f2 float64) {
	f1, f2, _ = worley(pos, seed)
	return f1, f2
}

// Voronoi3 behaves like Cellular3 but additionally identifies the cell
// owning the nearest feature point: the winning cell's coordinates are
// hashed with a seed salt into a stable per-cell identifier.
func Voronoi3(pos mgl64.Vec3, seed int32) (f1, f2 float64, cell uint32) {
	return worley(pos, seed)
}

// voronoiIDSalt decorrelates the cell identifier stream from the
// feature point stream of the same seed.
const voronoiIDSalt int32 = 0x5bd1

func worley(pos mgl64.Vec3, seed int32) (f1, f2 float64, cell uint32) {
	bx := int32(math.Floor(pos[0]))
	by := int32(math.Floor(pos[1]))
	bz := int32(math.Floor(pos[2]))

	f1, f2 = math.MaxFloat64, math.MaxFloat64
	var wx, wy, wz int32
	for dx := int32(-1); dx <= 1; dx++ {
		for dy := int32(-1); dy <= 1; dy++ {
			for dz := int32(-1); dz <= 1; dz++ {
				cx, cy, cz := bx+dx, by+dy, bz+dz
				px, py, pz := featurePoint(cx, cy, cz, seed)
				ex, ey, ez := px-pos[0], py-pos[1], pz-pos[2]
				d := math.Sqrt(ex*ex + ey*ey + ez*ez)
				if d < f1 {
					f2 = f1
					f1 = d
					wx, wy, wz = cx, cy, cz
				} else if d < f2 {
					f2 = d
				}
			}
		}
	}
	return f1, f2, uint32(cellHash(wx, wy, wz, seed+voronoiIDSalt))
}
