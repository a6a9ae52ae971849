package binfield

import "encoding/binary"

// Elem32 is an element of GF(2^32) modulo the Conway polynomial
// x^32 + x^15 + x^9 + x^7 + x^4 + x^3 + 1.
type Elem32 uint32

const irr32 = 1<<32 | 0x8299

func (e Elem32) Add(other Elem32) Elem32 { return e ^ other }

func (e Elem32) Mul(other Elem32) Elem32 {
	var acc uint64
	a := uint64(e)
	for i := uint(0); i < 32; i++ {
		if other>>i&1 == 1 {
			acc ^= a << i
		}
	}
	return Elem32(reduce64(acc, irr32, 32))
}

// Inv computes e^(2^32-2) by an addition chain of 31 steps. Panics on
// zero, which has no inverse.
func (e Elem32) Inv() Elem32 {
	if e == 0 {
		panic("binfield: inverse of zero")
	}
	t := e
	for i := 0; i < 30; i++ {
		t = t.Mul(t).Mul(e)
	}
	return t.Mul(t)
}

func (e Elem32) Pow(exp uint64) Elem32 {
	result := Elem32(1)
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

func (e Elem32) One() Elem32  { return 1 }
func (e Elem32) IsZero() bool { return e == 0 }
func (e Elem32) ByteLen() int { return 4 }

func (e Elem32) FromBits(v uint64) Elem32 {
	return Elem32(reduce64(v, irr32, 32))
}

func (e Elem32) Bytes() []byte {
	b := make([]byte, 4)
	binary.LittleEndian.PutUint32(b, uint32(e))
	return b
}

func (e Elem32) SetBytes(b []byte) Elem32 {
	var buf [4]byte
	copy(buf[:], b)
	return Elem32(binary.LittleEndian.Uint32(buf[:]))
}
