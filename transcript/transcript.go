// Package transcript implements the Fiat-Shamir transcripts used by the
// commitment protocol. A transcript absorbs protocol messages and
// deterministically derives challenges; prover and verifier hold
// independent instances and stay synchronized only if they absorb the
// identical message sequence in the identical order.
//
// Two interchangeable backends are provided: a SHAKE-256 sponge and a
// SHA-256 counter construction. Helpers layer field-element challenges
// and query sampling on top of the byte-level interface.
package transcript

import (
	"encoding/binary"
	"errors"
	"fmt"
	"sort"

	"github.com/bits-and-blooms/bitset"

	"github.com/zeratul-zk/ligerito/binfield"
)

// Transcript is the byte-level Fiat-Shamir interface. Implementations
// are deterministic: the same absorb sequence yields the same challenge
// stream.
type Transcript interface {
	// Absorb commits the message to the transcript state.
	Absorb(data []byte)
	// AbsorbRoot commits a Merkle root.
	AbsorbRoot(root [32]byte)
	// ChallengeBytes derives n pseudo-random bytes and advances the
	// challenge counter, so successive calls differ even without
	// interleaved absorbs.
	ChallengeBytes(n int) []byte
}

var errQueryDomain = errors.New("transcript: empty query domain")

// Challenge derives one field element.
func Challenge[F binfield.Element[F]](t Transcript) F {
	var z F
	return z.SetBytes(t.ChallengeBytes(z.ByteLen()))
}

// Challenges derives n field elements.
func Challenges[F binfield.Element[F]](t Transcript, n int) []F {
	out := make([]F, n)
	for i := range out {
		out[i] = Challenge[F](t)
	}
	return out
}

// AbsorbElem commits a single field element.
func AbsorbElem[F binfield.Element[F]](t Transcript, e F) {
	t.Absorb(e.Bytes())
}

// AbsorbElems commits a vector of field elements as one message.
func AbsorbElems[F binfield.Element[F]](t Transcript, es []F) {
	var z F
	buf := make([]byte, 0, len(es)*z.ByteLen())
	for _, e := range es {
		buf = append(buf, e.Bytes()...)
	}
	t.Absorb(buf)
}

// Query samples a position in [0, max) by reduction of a 64-bit
// challenge. max must be positive.
func Query(t Transcript, max int) (int, error) {
	if max <= 0 {
		return 0, errQueryDomain
	}
	v := binary.LittleEndian.Uint64(t.ChallengeBytes(8))
	return int(v % uint64(max)), nil
}

// DistinctQueries samples count distinct positions in [0, max) by
// rejection, returned sorted ascending.
func DistinctQueries(t Transcript, max, count int) ([]int, error) {
	if max <= 0 {
		return nil, errQueryDomain
	}
	if count < 0 || count > max {
		return nil, fmt.Errorf("transcript: cannot draw %d distinct queries from %d positions", count, max)
	}
	seen := bitset.New(uint(max))
	out := make([]int, 0, count)
	for len(out) < count {
		q, err := Query(t, max)
		if err != nil {
			return nil, err
		}
		if !seen.Test(uint(q)) {
			seen.Set(uint(q))
			out = append(out, q)
		}
	}
	sort.Ints(out)
	return out, nil
}
