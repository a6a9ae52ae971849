// Package reedsolomon implements systematic Reed-Solomon codes over
// binary fields using additive FFTs in the novel polynomial basis.
//
// A message of length 2^n is interpreted as evaluations of a polynomial
// over the subspace spanned by v_0..v_{n-1}; the codeword extends those
// evaluations to inv-rate many cosets of that subspace. Coset zero is
// the subspace itself, which makes the code systematic.
package reedsolomon

import (
	"errors"
	"math/bits"

	"github.com/zeratul-zk/ligerito/binfield"
)

var errGeometry = errors.New("reedsolomon: message and block lengths must be powers of two with message dividing block")

// Encoder holds precomputed twiddle factors for one code geometry.
// It is safe for concurrent use once constructed.
type Encoder[F binfield.Element[F]] struct {
	msgLen   int
	blockLen int
	logMsg   int
	norms    []F
	cosets   [][]F
}

// NewEncoder precomputes twiddles for all cosets of a code with the
// given message and block lengths.
func NewEncoder[F binfield.Element[F]](msgLen, blockLen int) (*Encoder[F], error) {
	if msgLen <= 0 || blockLen < msgLen ||
		msgLen&(msgLen-1) != 0 || blockLen&(blockLen-1) != 0 {
		return nil, errGeometry
	}
	logMsg := bits.Len(uint(msgLen)) - 1
	invRate := blockLen / msgLen

	var z F
	norms := SubspaceEvals[F](logMsg)
	cosets := make([][]F, invRate)
	for r := 0; r < invRate; r++ {
		beta := z.FromBits(uint64(r * msgLen))
		cosets[r] = computeTwiddles(logMsg, beta, norms)
	}
	return &Encoder[F]{
		msgLen:   msgLen,
		blockLen: blockLen,
		logMsg:   logMsg,
		norms:    norms,
		cosets:   cosets,
	}, nil
}

func (e *Encoder[F]) MessageLen() int { return e.msgLen }
func (e *Encoder[F]) BlockLen() int   { return e.blockLen }

// Norms exposes the subspace evaluations W_k(v_k) shared by all cosets.
func (e *Encoder[F]) Norms() []F { return e.norms }

// EncodeInPlace expands the message stored in block[:MessageLen()] to a
// full codeword. block must have length BlockLen(); its tail is
// overwritten. The message prefix is preserved verbatim.
func (e *Encoder[F]) EncodeInPlace(block []F) error {
	if len(block) != e.blockLen {
		return errGeometry
	}
	m := e.msgLen
	ifft(block[:m], e.cosets[0])
	for r := len(e.cosets) - 1; r >= 1; r-- {
		seg := block[r*m : (r+1)*m]
		copy(seg, block[:m])
		fft(seg, e.cosets[r])
	}
	fft(block[:m], e.cosets[0])
	return nil
}

// Encode is the allocating variant of EncodeInPlace.
func (e *Encoder[F]) Encode(message []F) ([]F, error) {
	if len(message) != e.msgLen {
		return nil, errGeometry
	}
	block := make([]F, e.blockLen)
	copy(block, message)
	if err := e.EncodeInPlace(block); err != nil {
		return nil, err
	}
	return block, nil
}
