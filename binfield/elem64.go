package binfield

import (
	"encoding/binary"
	"math/bits"
)

// Elem64 is an element of GF(2^64) modulo x^64 + x^4 + x^3 + x + 1.
type Elem64 uint64

const irr64Low = 0x1B

func (e Elem64) Add(other Elem64) Elem64 { return e ^ other }

func (e Elem64) Mul(other Elem64) Elem64 {
	// 128-bit carry-less product of e and other.
	var hi, lo uint64
	a := uint64(e)
	for i := uint(0); i < 64; i++ {
		if other>>i&1 == 1 {
			lo ^= a << i
			if i != 0 {
				hi ^= a >> (64 - i)
			}
		}
	}
	// Cancel bits of degree >= 64, highest first.
	for hi != 0 {
		s := uint(63 - bits.LeadingZeros64(hi))
		hi ^= 1 << s
		lo ^= irr64Low << s
		hi ^= irr64Low >> (64 - s)
	}
	return Elem64(lo)
}

// Inv computes e^(2^64-2) by an addition chain of 63 steps. Panics on
// zero, which has no inverse.
func (e Elem64) Inv() Elem64 {
	if e == 0 {
		panic("binfield: inverse of zero")
	}
	t := e
	for i := 0; i < 62; i++ {
		t = t.Mul(t).Mul(e)
	}
	return t.Mul(t)
}

func (e Elem64) Pow(exp uint64) Elem64 {
	result := Elem64(1)
	base := e
	for exp > 0 {
		if exp&1 == 1 {
			result = result.Mul(base)
		}
		base = base.Mul(base)
		exp >>= 1
	}
	return result
}

func (e Elem64) One() Elem64  { return 1 }
func (e Elem64) IsZero() bool { return e == 0 }
func (e Elem64) ByteLen() int { return 8 }

func (e Elem64) FromBits(v uint64) Elem64 { return Elem64(v) }

func (e Elem64) Bytes() []byte {
	b := make([]byte, 8)
	binary.LittleEndian.PutUint64(b, uint64(e))
	return b
}

func (e Elem64) SetBytes(b []byte) Elem64 {
	var buf [8]byte
	copy(buf[:], b)
	return Elem64(binary.LittleEndian.Uint64(buf[:]))
}
