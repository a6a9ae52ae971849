package transcript

import (
	"encoding/binary"

	"golang.org/x/crypto/sha3"
)

// Sponge is a SHAKE-256 transcript. The state is a rolling 32-byte
// capacity: every absorb rehashes state plus message, and challenges
// squeeze from state plus a counter without consuming absorbs.
type Sponge struct {
	state   [32]byte
	counter uint64
}

// NewSponge creates a sponge transcript bound to a domain label.
func NewSponge(domain []byte) *Sponge {
	s := &Sponge{}
	h := sha3.NewShake256()
	h.Write([]byte("ligerito/sponge"))
	h.Write(domain)
	h.Read(s.state[:])
	return s
}

func (s *Sponge) Absorb(data []byte) {
	h := sha3.NewShake256()
	h.Write(s.state[:])
	var n [8]byte
	binary.LittleEndian.PutUint64(n[:], uint64(len(data)))
	h.Write(n[:])
	h.Write(data)
	h.Read(s.state[:])
}

func (s *Sponge) AbsorbRoot(root [32]byte) {
	s.Absorb(root[:])
}

func (s *Sponge) ChallengeBytes(n int) []byte {
	h := sha3.NewShake256()
	h.Write(s.state[:])
	var c [8]byte
	binary.LittleEndian.PutUint64(c[:], s.counter)
	s.counter++
	h.Write(c[:])
	out := make([]byte, n)
	h.Read(out)
	return out
}
