package noise

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"
)

// DeriveSeed derives a subsystem seed from the world seed and a name.
// Distinct names yield uncorrelated noise fields, so temperature,
// moisture, continentalness, cave layers and ore veins may all share
// one world seed without their patterns lining up.
func DeriveSeed(worldSeed int64, name string) int32 {
	var d xxhash.Digest
	d.Reset()
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], uint64(worldSeed))
	_, _ = d.Write(buf[:])
	_, _ = d.WriteString(name)
	return int32(uint32(d.Sum64()))
}

// DeriveSeed64 is the 64-bit variant of DeriveSeed, used where a full
// RNG stream seed is needed rather than a noise lattice offset.
func DeriveSeed64(worldSeed int64, name string) uint64 {
	var d xxhash.Digest
	d.Reset()
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], uint64(worldSeed))
	_, _ = d.Write(buf[:])
	_, _ = d.WriteString(name)
	return d.Sum64()
}
