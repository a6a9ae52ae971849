package binfield

import (
	"encoding/binary"
	"fmt"
)

// Elem128 is an element of GF(2^128) modulo x^128 + x^7 + x^2 + x + 1.
// Lo holds coefficient bits 0..63, Hi bits 64..127.
type Elem128 struct {
	Hi, Lo uint64
}

const irr128Low = 0x87

func (e Elem128) Add(other Elem128) Elem128 {
	return Elem128{Hi: e.Hi ^ other.Hi, Lo: e.Lo ^ other.Lo}
}

func (e Elem128) Mul(other Elem128) Elem128 {
	// Shift-and-add: walk the bits of other while keeping a := e·x^i
	// reduced, so the accumulator never exceeds 128 bits.
	var rHi, rLo uint64
	aHi, aLo := e.Hi, e.Lo
	for i := uint(0); i < 128; i++ {
		var bit uint64
		if i < 64 {
			bit = other.Lo >> i & 1
		} else {
			bit = other.Hi >> (i - 64) & 1
		}
		if bit == 1 {
			rHi ^= aHi
			rLo ^= aLo
		}
		carry := aHi >> 63
		aHi = aHi<<1 | aLo>>63
		aLo <<= 1
		if carry == 1 {
			aLo ^= irr128Low
		}
	}
	return Elem128{Hi: rHi, Lo: rLo}
}

// Inv computes e^(2^128-2) by an addition chain of 127 steps. Panics on
// zero, which has no inverse.
func (e Elem128) Inv() Elem128 {
	if e.IsZero() {
		panic("binfield: inverse of zero")
	}
	t := e
	for i := 0; i < 126; i++ {
		t = t.Mul(t).Mul(e)
	}
	return t.Mul(t)
}

func (e Elem128) Pow(exp uint64) Elem128 {
	result := e.One()
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

func (e Elem128) One() Elem128 { return Elem128{Lo: 1} }
func (e Elem128) IsZero() bool { return e.Hi == 0 && e.Lo == 0 }
func (e Elem128) ByteLen() int { return 16 }

func (e Elem128) FromBits(v uint64) Elem128 { return Elem128{Lo: v} }

func (e Elem128) Bytes() []byte {
	b := make([]byte, 16)
	binary.LittleEndian.PutUint64(b[:8], e.Lo)
	binary.LittleEndian.PutUint64(b[8:], e.Hi)
	return b
}

func (e Elem128) SetBytes(b []byte) Elem128 {
	var buf [16]byte
	copy(buf[:], b)
	return Elem128{
		Lo: binary.LittleEndian.Uint64(buf[:8]),
		Hi: binary.LittleEndian.Uint64(buf[8:]),
	}
}

func (e Elem128) String() string {
	return fmt.Sprintf("0x%016x%016x", e.Hi, e.Lo)
}
