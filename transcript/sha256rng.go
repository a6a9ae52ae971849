package transcript

import (
	"crypto/sha256"
	"encoding/binary"
	"hash"
)

// Sha256Rng is a SHA-256 transcript: absorbs feed a single running
// hasher, and each challenge folds a counter into the stream and
// squeezes from a snapshot digest. It mirrors the hash-chain RNG
// construction common in non-sponge Fiat-Shamir implementations.
type Sha256Rng struct {
	h       hash.Hash
	counter uint32
}

// NewSha256Rng creates a SHA-256 transcript from a seed.
func NewSha256Rng(seed uint32) *Sha256Rng {
	s := &Sha256Rng{h: sha256.New()}
	s.h.Write([]byte("ligerito/sha256rng"))
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], seed)
	s.h.Write(b[:])
	return s
}

func (s *Sha256Rng) Absorb(data []byte) {
	var n [8]byte
	binary.LittleEndian.PutUint64(n[:], uint64(len(data)))
	s.h.Write(n[:])
	s.h.Write(data)
}

func (s *Sha256Rng) AbsorbRoot(root [32]byte) {
	s.Absorb(root[:])
}

func (s *Sha256Rng) ChallengeBytes(n int) []byte {
	var c [4]byte
	binary.LittleEndian.PutUint32(c[:], s.counter)
	s.counter++
	s.h.Write(c[:])

	// Sum snapshots without disturbing the running state.
	var block [32]byte
	s.h.Sum(block[:0])

	out := make([]byte, n)
	for off := 0; off < n; {
		off += copy(out[off:], block[:])
		if off < n {
			block = sha256.Sum256(block[:])
		}
	}
	return out
}
