package server

import (
	"encoding/binary"
	"math"

	"lukechampine.com/blake3"

	"github.com/lightyear-wars/lywars/game"
)

// PlanetStateDigest hashes the dynamic fields of every planet, in index
// order, for the optional desync-detection extension (SPEC_FULL §3.5). It
// never participates in the authoritative protocol — two peers computing
// different digests means only that a bug or packet loss left them
// diverged. The server loop does not call it; it only computes the digest
// and never corrects anything.
func PlanetStateDigest(world *game.World) [32]byte {
	buf := make([]byte, 0, len(world.Planets)*12)
	var scratch [12]byte
	for _, p := range world.Planets {
		// Truncate to float32 precision first: planet dynamic fields are
		// f32 on the wire, and the digest should match what peers actually
		// exchange, not the server's internal float64 precision.
		binary.LittleEndian.PutUint32(scratch[0:4], math.Float32bits(float32(p.CurrentFleetSize)))
		binary.LittleEndian.PutUint32(scratch[4:8], uint32(p.Owner))
		binary.LittleEndian.PutUint32(scratch[8:12], uint32(p.Claimant))
		buf = append(buf, scratch[:]...)
	}
	return blake3.Sum256(buf)
}
