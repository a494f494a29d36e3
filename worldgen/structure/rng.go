package structure

import "github.com/segmentio/fasthash/fnv1a"

// treeSalt separates the tree scatter hash stream from the salts of
// the other subsystems, so tree positions never correlate with ore or
// cave patterns that share the world seed.
const treeSalt uint64 = 0x7472656573 // "trees"

// chunkSeed derives the deterministic scatter seed of one chunk
// column from the world seed and the chunk's horizontal coordinates.
// The vertical coordinate is deliberately excluded: trees root at the
// terrain surface, wherever that falls vertically.
func chunkSeed(worldSeed int64, cx, cy int32) uint64 {
	h := fnv1a.Init64
	h = fnv1a.AddUint64(h, treeSalt)
	h = fnv1a.AddUint64(h, uint64(worldSeed))
	h = fnv1a.AddUint64(h, uint64(uint32(cx)))
	h = fnv1a.AddUint64(h, uint64(uint32(cy)))
	return h
}

// rng is a splitmix64 stream. Every chunk column gets its own stream,
// so candidate draws are reproducible regardless of which target chunk
// triggers them.
type rng struct {
	state uint64
}

func newRNG(seed uint64) *rng {
	return &rng{state: seed}
}

func (r *rng) next() uint64 {
	r.state += 0x9E3779B97F4A7C15
	v := r.state
	v = (v ^ (v >> 30)) * 0xBF58476D1CE4E5B9
	v = (v ^ (v >> 27)) * 0x94D049BB133111EB
	return v ^ (v >> 31)
}

// Float64 returns a value in [0, 1).
func (r *rng) Float64() float64 {
	return float64(r.next()>>11) / float64(1<<53)
}

// Intn returns a value in [0, n). n must be positive.
func (r *rng) Intn(n int) int {
	return int(r.next() % uint64(n))
}

// IntRange returns a value in [-v, v].
func (r *rng) IntRange(v int) int {
	if v <= 0 {
		return 0
	}
	return r.Intn(2*v+1) - v
}
