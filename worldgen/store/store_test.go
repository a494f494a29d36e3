package store

import (
	"errors"
	"testing"

	"github.com/df-mc/terragen/worldgen/chunk"
	"github.com/df-mc/terragen/worldgen/topology"
)

func TestStoreRoundTrip(t *testing.T) {
	t.Parallel()
	db, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer db.Close()

	pos := topology.ChunkPos{3, -7, 1}
	buf := chunk.NewBuffer(pos, 16)
	voxels := buf.Raw()
	for i := range voxels {
		voxels[i] = chunk.VoxelSample{
			Material: byte(i % 19),
			Density:  byte((i * 7) % 256),
			Biome:    byte(i % 6),
		}
	}
	if err := db.Store(buf); err != nil {
		t.Fatalf("Store: %v", err)
	}

	loaded, err := db.Load(pos)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.Pos() != pos || loaded.Size() != 16 {
		t.Fatalf("loaded chunk header = %v size %d, want %v size 16", loaded.Pos(), loaded.Size(), pos)
	}
	for i, v := range voxels {
		if loaded.Raw()[i] != v {
			t.Fatalf("voxel %d = %+v after round trip, want %+v", i, loaded.Raw()[i], v)
		}
	}
}

func TestLoadMissing(t *testing.T) {
	t.Parallel()
	db, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer db.Close()

	if _, err := db.Load(topology.ChunkPos{9, 9, 9}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Load of a missing chunk returned %v, want ErrNotFound", err)
	}
}

func TestStoreOverwrite(t *testing.T) {
	t.Parallel()
	db, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer db.Close()

	pos := topology.ChunkPos{0, 0, 0}
	first := chunk.NewBuffer(pos, 8)
	first.Raw()[0] = chunk.VoxelSample{Material: 1, Density: 200}
	if err := db.Store(first); err != nil {
		t.Fatalf("Store: %v", err)
	}
	second := chunk.NewBuffer(pos, 8)
	second.Raw()[0] = chunk.VoxelSample{Material: 2, Density: 150}
	if err := db.Store(second); err != nil {
		t.Fatalf("Store: %v", err)
	}

	loaded, err := db.Load(pos)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := loaded.Raw()[0]; got.Material != 2 || got.Density != 150 {
		t.Fatalf("voxel after overwrite = %+v, want the second write", got)
	}
}
