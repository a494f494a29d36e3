package worldgen

import (
	"errors"
	"sync"

	"github.com/df-mc/terragen/worldgen/biome"
	"github.com/df-mc/terragen/worldgen/chunk"
	"github.com/df-mc/terragen/worldgen/noise"
	"github.com/df-mc/terragen/worldgen/store"
	"github.com/df-mc/terragen/worldgen/topology"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
)

// Engine is a configured world generator. All methods are safe for
// concurrent use: generation reads only immutable configuration, so
// results for a position are identical no matter which goroutine or
// worker produces them.
type Engine struct {
	conf  Config
	space topology.Space
	gen   *chunk.Generator
	queue *chunk.Queue

	closeOnce sync.Once
	closeErr  error
}

// Seed returns the master world seed.
func (e *Engine) Seed() int64 {
	return e.conf.Seed
}

// Space returns the voxel grid layout of the engine.
func (e *Engine) Space() topology.Space {
	return e.space
}

// Chunk returns the voxel buffer of the chunk at pos, loading it from
// the chunk cache when present and generating and caching it
// otherwise.
func (e *Engine) Chunk(pos topology.ChunkPos) (*chunk.Buffer, error) {
	if e.conf.Store != nil {
		buf, err := e.conf.Store.Load(pos)
		if err == nil {
			return buf, nil
		}
		if !errors.Is(err, store.ErrNotFound) {
			return nil, err
		}
	}
	buf := e.gen.Generate(pos)
	e.storeChunk(buf)
	return buf, nil
}

// Request enqueues asynchronous generation of the chunk at pos and
// returns the request token. done is invoked exactly once; for cached
// chunks it runs before Request returns, otherwise on a worker
// goroutine once generation completes.
func (e *Engine) Request(pos topology.ChunkPos, done func(chunk.Result)) (uuid.UUID, error) {
	if e.conf.Store != nil {
		if buf, err := e.conf.Store.Load(pos); err == nil {
			id := uuid.New()
			done(chunk.Result{ID: id, Pos: pos, Buffer: buf})
			return id, nil
		} else if !errors.Is(err, store.ErrNotFound) {
			return uuid.Nil, err
		}
	}
	return e.queue.Submit(pos, func(res chunk.Result) {
		e.storeChunk(res.Buffer)
		done(res)
	})
}

// storeChunk writes a freshly generated buffer to the chunk cache.
// Cache failures are logged, not propagated: the buffer itself is
// valid and regenerating later is always possible.
func (e *Engine) storeChunk(buf *chunk.Buffer) {
	if e.conf.Store == nil {
		return
	}
	if err := e.conf.Store.Store(buf); err != nil {
		e.conf.Log.Error("store chunk: "+err.Error(), "pos", buf.Pos())
	}
}

// HeightAt returns the terrain surface height of the column through
// the world position (x, y), continentalness shaping included.
func (e *Engine) HeightAt(x, y float64) float64 {
	return e.gen.HeightAt(x, y)
}

// MaterialAtDepth returns the material a voxel at the given depth
// below the surface of the column through (x, y) would receive, before
// cave and ore substitution.
func (e *Engine) MaterialAtDepth(x, y, depth float64) byte {
	return e.gen.MaterialAt(x, y, depth)
}

// BiomeAt returns the dominant biome at the world position (x, y). The
// bool is false when the biome system is disabled.
func (e *Engine) BiomeAt(x, y float64) (biome.Definition, bool) {
	if e.conf.Biomes == nil {
		return biome.Definition{}, false
	}
	np := e.conf.Model.NoisePos(mgl64.Vec3{x, y, 0})
	t := noise.FBM(np, e.conf.Temperature)
	m := noise.FBM(np, e.conf.Moisture)
	var c float64
	if e.conf.Shaper.Enabled {
		c = noise.FBM(np, e.conf.Shaper.Noise)
	}
	return e.conf.Biomes.Select(t, m, c), true
}

// Bounds returns the inclusive chunk layer range that can contain
// terrain under the configured topology.
func (e *Engine) Bounds() (minZ, maxZ int32) {
	return e.conf.Model.Bounds()
}

// Close drains the generation queue and closes the chunk cache. It may
// be called multiple times; calls after the first return the first
// error.
func (e *Engine) Close() error {
	e.closeOnce.Do(func() {
		e.queue.Close()
		if e.conf.Store != nil {
			e.closeErr = e.conf.Store.Close()
		}
	})
	return e.closeErr
}
