// Package binfield implements the binary extension fields GF(2^16),
// GF(2^32), GF(2^64) and GF(2^128).
//
// Elements are polynomials over GF(2) represented by their coefficient
// bits, reduced modulo a fixed irreducible polynomial per width. Addition
// is XOR, so every element is its own additive inverse and all the usual
// characteristic-2 shortcuts apply. Multiplication is carry-less
// (polynomial) multiplication followed by reduction.
//
// The zero value of every element type is the field zero, all types are
// comparable, and arithmetic never allocates.
package binfield

import "math/bits"

// Element is the constraint satisfied by every field element type in this
// package. It is parameterized on the concrete type so that operations
// stay monomorphic and free of boxing.
//
// FromBits interprets its argument as polynomial coefficient bits and
// reduces modulo the field's irreducible polynomial; for values below
// 2^degree it is the identity on representations.
type Element[E any] interface {
	comparable

	Add(E) E
	Mul(E) E
	Inv() E
	Pow(uint64) E

	One() E
	IsZero() bool
	FromBits(uint64) E

	// ByteLen returns the serialized size; Bytes and SetBytes use
	// little-endian coefficient order.
	ByteLen() int
	Bytes() []byte
	SetBytes([]byte) E
}

// reduce64 reduces a carry-less product of degree < 64 modulo irr, where
// irr includes the leading x^width term. Only valid for width <= 32.
func reduce64(acc, irr uint64, width uint) uint64 {
	for acc>>width != 0 {
		top := uint(63 - bits.LeadingZeros64(acc))
		acc ^= irr << (top - width)
	}
	return acc
}
