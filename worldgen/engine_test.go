package worldgen

import (
	"sync"
	"testing"

	"github.com/df-mc/terragen/worldgen/chunk"
	"github.com/df-mc/terragen/worldgen/store"
	"github.com/df-mc/terragen/worldgen/topology"
)

func testEngine(t *testing.T, conf Config) *Engine {
	t.Helper()
	if conf.Log == nil {
		conf.Log = testLogger()
	}
	if conf.ChunkSize == 0 {
		conf.ChunkSize = 16
	}
	if conf.Workers == 0 {
		conf.Workers = 2
	}
	e := conf.New()
	t.Cleanup(func() {
		if err := e.Close(); err != nil {
			t.Errorf("close engine: %v", err)
		}
	})
	return e
}

func sameBuffers(a, b *chunk.Buffer) bool {
	if a.Len() != b.Len() {
		return false
	}
	for i, v := range a.Raw() {
		if b.Raw()[i] != v {
			return false
		}
	}
	return true
}

func TestEngineDeterministic(t *testing.T) {
	t.Parallel()
	e1 := testEngine(t, Config{Seed: 1234})
	e2 := testEngine(t, Config{Seed: 1234})

	pos := topology.ChunkPos{0, 0, -1}
	b1, err := e1.Chunk(pos)
	if err != nil {
		t.Fatalf("Chunk: %v", err)
	}
	b2, err := e2.Chunk(pos)
	if err != nil {
		t.Fatalf("Chunk: %v", err)
	}
	if !sameBuffers(b1, b2) {
		t.Fatalf("engines with equal seed and configuration disagree on chunk %v", pos)
	}
	if e1.HeightAt(12.5, -40.25) != e2.HeightAt(12.5, -40.25) {
		t.Fatalf("engines with equal seed disagree on terrain height")
	}
}

func TestEngineSeedSensitivity(t *testing.T) {
	t.Parallel()
	e1 := testEngine(t, Config{Seed: 1})
	e2 := testEngine(t, Config{Seed: 2})
	pos := topology.ChunkPos{0, 0, -1}
	b1, _ := e1.Chunk(pos)
	b2, _ := e2.Chunk(pos)
	if sameBuffers(b1, b2) {
		t.Fatalf("different seeds produced identical chunks")
	}
}

func TestEngineBiomeAt(t *testing.T) {
	t.Parallel()
	e := testEngine(t, Config{Seed: 7})
	if _, ok := e.BiomeAt(100, 200); !ok {
		t.Fatalf("BiomeAt reported no biome with the default table")
	}

	legacy := testEngine(t, Config{Seed: 7, DisableBiomes: true})
	if _, ok := legacy.BiomeAt(100, 200); ok {
		t.Fatalf("BiomeAt reported a biome with the biome system disabled")
	}
}

func TestEngineRequest(t *testing.T) {
	t.Parallel()
	e := testEngine(t, Config{Seed: 99})
	pos := topology.ChunkPos{1, 2, -1}

	var (
		wg  sync.WaitGroup
		got *chunk.Buffer
	)
	wg.Add(1)
	if _, err := e.Request(pos, func(res chunk.Result) {
		got = res.Buffer
		wg.Done()
	}); err != nil {
		t.Fatalf("Request: %v", err)
	}
	wg.Wait()

	want, err := e.Chunk(pos)
	if err != nil {
		t.Fatalf("Chunk: %v", err)
	}
	if !sameBuffers(got, want) {
		t.Fatalf("asynchronous result differs from synchronous generation")
	}
}

func TestEngineStoreCaching(t *testing.T) {
	t.Parallel()
	db, err := store.Open(t.TempDir())
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	e := testEngine(t, Config{Seed: 5, Store: db})

	pos := topology.ChunkPos{0, 1, -1}
	first, err := e.Chunk(pos)
	if err != nil {
		t.Fatalf("Chunk: %v", err)
	}
	// The chunk must now be served from the cache, byte for byte.
	cached, err := db.Load(pos)
	if err != nil {
		t.Fatalf("chunk not written to the cache: %v", err)
	}
	if !sameBuffers(first, cached) {
		t.Fatalf("cached chunk differs from the generated one")
	}
	again, err := e.Chunk(pos)
	if err != nil {
		t.Fatalf("Chunk from cache: %v", err)
	}
	if !sameBuffers(first, again) {
		t.Fatalf("cache read differs from the original chunk")
	}
}
