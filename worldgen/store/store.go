// Package store persists generated chunk buffers in a LevelDB
// database. The store is a pure cache: every chunk can be regenerated
// from the seed and configuration, so losing the database only costs
// time. Voxel payloads are DEFLATE-compressed before storage, which
// makes the mostly-air chunks above the surface nearly free.
package store

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/df-mc/goleveldb/leveldb"
	"github.com/df-mc/goleveldb/leveldb/opt"
	"github.com/df-mc/terragen/worldgen/chunk"
	"github.com/df-mc/terragen/worldgen/topology"
	"github.com/klauspost/compress/flate"
)

// ErrNotFound is returned by Load when no chunk is stored at a
// position.
var ErrNotFound = errors.New("store: chunk not found")

// chunkVersion is the payload format version. Bump it when the voxel
// encoding changes; stale entries are treated as missing and simply
// regenerated.
const chunkVersion = 1

// DB is a chunk cache backed by LevelDB. All methods are safe for
// concurrent use.
type DB struct {
	ldb *leveldb.DB
}

// Open opens or creates the chunk database in dir. Values are
// compressed before insertion, so LevelDB's own block compression is
// disabled.
func Open(dir string) (*DB, error) {
	ldb, err := leveldb.OpenFile(dir, &opt.Options{
		Compression: opt.NoCompression,
		BlockSize:   16 * opt.KiB,
	})
	if err != nil {
		return nil, fmt.Errorf("open chunk db: %w", err)
	}
	return &DB{ldb: ldb}, nil
}

// key encodes a chunk position as the 13-byte database key.
func key(pos topology.ChunkPos) []byte {
	k := make([]byte, 13)
	k[0] = 'c'
	binary.LittleEndian.PutUint32(k[1:], uint32(pos[0]))
	binary.LittleEndian.PutUint32(k[5:], uint32(pos[1]))
	binary.LittleEndian.PutUint32(k[9:], uint32(pos[2]))
	return k
}

// Store writes the buffer to the database, replacing any previous
// entry for its position.
func (db *DB) Store(buf *chunk.Buffer) error {
	payload := make([]byte, 2+4*buf.Len())
	payload[0] = chunkVersion
	payload[1] = byte(buf.Size())
	for i, v := range buf.Raw() {
		off := 2 + i*4
		payload[off] = v.Material
		payload[off+1] = v.Density
		payload[off+2] = v.Biome
		payload[off+3] = v.Flags
	}

	var compressed bytes.Buffer
	w, err := flate.NewWriter(&compressed, flate.BestSpeed)
	if err != nil {
		return fmt.Errorf("compress chunk: %w", err)
	}
	if _, err := w.Write(payload); err != nil {
		return fmt.Errorf("compress chunk: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("compress chunk: %w", err)
	}
	if err := db.ldb.Put(key(buf.Pos()), compressed.Bytes(), nil); err != nil {
		return fmt.Errorf("store chunk %v: %w", buf.Pos(), err)
	}
	return nil
}

// Load reads the chunk at pos. ErrNotFound is returned when the chunk
// has not been stored, or was stored with an older payload version.
func (db *DB) Load(pos topology.ChunkPos) (*chunk.Buffer, error) {
	value, err := db.ldb.Get(key(pos), nil)
	if errors.Is(err, leveldb.ErrNotFound) {
		return nil, ErrNotFound
	} else if err != nil {
		return nil, fmt.Errorf("load chunk %v: %w", pos, err)
	}

	r := flate.NewReader(bytes.NewReader(value))
	payload, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("decompress chunk %v: %w", pos, err)
	}
	_ = r.Close()

	if len(payload) < 2 || payload[0] != chunkVersion {
		return nil, ErrNotFound
	}
	size := int(payload[1])
	if len(payload) != 2+4*size*size*size {
		return nil, fmt.Errorf("load chunk %v: payload size mismatch", pos)
	}
	buf := chunk.NewBuffer(pos, size)
	voxels := buf.Raw()
	for i := range voxels {
		off := 2 + i*4
		voxels[i] = chunk.VoxelSample{
			Material: payload[off],
			Density:  payload[off+1],
			Biome:    payload[off+2],
			Flags:    payload[off+3],
		}
	}
	return buf, nil
}

// Close flushes and closes the database.
func (db *DB) Close() error {
	return db.ldb.Close()
}
