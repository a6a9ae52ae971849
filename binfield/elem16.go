package binfield

import "encoding/binary"

// Elem16 is an element of GF(2^16) modulo x^16 + x^5 + x^3 + x^2 + 1.
type Elem16 uint16

const irr16 = 1<<16 | 0x2D

func (e Elem16) Add(other Elem16) Elem16 { return e ^ other }

func (e Elem16) Mul(other Elem16) Elem16 {
	var acc uint64
	a := uint64(e)
	for i := uint(0); i < 16; i++ {
		if other>>i&1 == 1 {
			acc ^= a << i
		}
	}
	return Elem16(reduce64(acc, irr16, 16))
}

// Inv computes e^(2^16-2). Panics on zero, which has no inverse.
func (e Elem16) Inv() Elem16 {
	if e == 0 {
		panic("binfield: inverse of zero")
	}
	return e.Pow(1<<16 - 2)
}

func (e Elem16) Pow(exp uint64) Elem16 {
	result := Elem16(1)
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

func (e Elem16) One() Elem16    { return 1 }
func (e Elem16) IsZero() bool   { return e == 0 }
func (e Elem16) ByteLen() int   { return 2 }

func (e Elem16) FromBits(v uint64) Elem16 {
	return Elem16(reduce64(v, irr16, 16))
}

func (e Elem16) Bytes() []byte {
	b := make([]byte, 2)
	binary.LittleEndian.PutUint16(b, uint16(e))
	return b
}

func (e Elem16) SetBytes(b []byte) Elem16 {
	var buf [2]byte
	copy(buf[:], b)
	return Elem16(binary.LittleEndian.Uint16(buf[:]))
}
