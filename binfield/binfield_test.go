package binfield

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func genElem[E Element[E]]() gopter.Gen {
	return gen.UInt64().Map(func(v uint64) E {
		var z E
		return z.FromBits(v)
	})
}

func genElem128Wide() gopter.Gen {
	return gopter.CombineGens(gen.UInt64(), gen.UInt64()).Map(func(vs []interface{}) Elem128 {
		return Elem128{Hi: vs[0].(uint64), Lo: vs[1].(uint64)}
	})
}

func fieldAxioms[E Element[E]](t *testing.T, g gopter.Gen) {
	t.Helper()

	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	var zero E
	one := zero.One()

	properties.Property("addition is an involution", prop.ForAll(
		func(a, b E) bool {
			return a.Add(b).Add(b) == a
		}, g, g,
	))

	properties.Property("multiplication commutes", prop.ForAll(
		func(a, b E) bool {
			return a.Mul(b) == b.Mul(a)
		}, g, g,
	))

	properties.Property("multiplication associates", prop.ForAll(
		func(a, b, c E) bool {
			return a.Mul(b).Mul(c) == a.Mul(b.Mul(c))
		}, g, g, g,
	))

	properties.Property("multiplication distributes over addition", prop.ForAll(
		func(a, b, c E) bool {
			return a.Mul(b.Add(c)) == a.Mul(b).Add(a.Mul(c))
		}, g, g, g,
	))

	properties.Property("one is the multiplicative identity", prop.ForAll(
		func(a E) bool {
			return a.Mul(one) == a
		}, g,
	))

	properties.Property("nonzero elements invert", prop.ForAll(
		func(a E) bool {
			if a.IsZero() {
				return true
			}
			return a.Mul(a.Inv()) == one
		}, g,
	))

	properties.Property("pow agrees with repeated multiplication", prop.ForAll(
		func(a E) bool {
			return a.Pow(5) == a.Mul(a).Mul(a).Mul(a).Mul(a)
		}, g,
	))

	properties.Property("bytes round-trip", prop.ForAll(
		func(a E) bool {
			return zero.SetBytes(a.Bytes()) == a
		}, g,
	))

	properties.TestingRun(t)
}

func TestElem16Axioms(t *testing.T)  { fieldAxioms[Elem16](t, genElem[Elem16]()) }
func TestElem32Axioms(t *testing.T)  { fieldAxioms[Elem32](t, genElem[Elem32]()) }
func TestElem64Axioms(t *testing.T)  { fieldAxioms[Elem64](t, genElem[Elem64]()) }
func TestElem128Axioms(t *testing.T) { fieldAxioms[Elem128](t, genElem128Wide()) }

func TestReductionConstants(t *testing.T) {
	// x^degree reduces to the low part of each irreducible.
	assert.Equal(t, Elem16(0x2D), Elem16(1<<8).Mul(Elem16(1<<8)))
	assert.Equal(t, Elem32(0x8299), Elem32(1<<16).Mul(Elem32(1<<16)))
	assert.Equal(t, Elem64(0x1B), Elem64(1<<32).Mul(Elem64(1<<32)))
	assert.Equal(t, Elem128{Lo: 0x87}, Elem128{Hi: 1}.Mul(Elem128{Hi: 1}))
}

func TestFromBitsReduces(t *testing.T) {
	assert.Equal(t, Elem16(0x2D), Elem16(0).FromBits(1<<16))
	assert.Equal(t, Elem32(0x8299), Elem32(0).FromBits(1<<32))
	assert.Equal(t, Elem16(5^0x2D), Elem16(0).FromBits(1<<16|5))
}

func TestFermatOrder(t *testing.T) {
	for _, a := range []Elem16{1, 2, 0x1234, 0xFFFF} {
		assert.Equal(t, Elem16(1), a.Pow(1<<16-1))
	}
}

func TestInvZeroPanics(t *testing.T) {
	require.Panics(t, func() { Elem16(0).Inv() })
	require.Panics(t, func() { Elem32(0).Inv() })
	require.Panics(t, func() { Elem64(0).Inv() })
	require.Panics(t, func() { Elem128{}.Inv() })
}

func TestEmbeddingsPreserveAdditionOnly(t *testing.T) {
	a, b := Elem16(0x1234), Elem16(0xA0F3)
	assert.Equal(t, Embed16To32(a).Add(Embed16To32(b)), Embed16To32(a.Add(b)))
	assert.Equal(t, Embed16To128(a).Add(Embed16To128(b)), Embed16To128(a.Add(b)))

	// x^8 · x^8 wraps in GF(2^16) but not in GF(2^32): the embedding is
	// not multiplicative.
	x := Elem16(1 << 8)
	narrow := Embed16To32(x.Mul(x))
	wide := Embed16To32(x).Mul(Embed16To32(x))
	assert.Equal(t, Elem32(0x2D), narrow)
	assert.Equal(t, Elem32(0x10000), wide)
	assert.NotEqual(t, narrow, wide)
}

func TestBytesLayout(t *testing.T) {
	e := Elem128{Hi: 0x0102030405060708, Lo: 0x1112131415161718}
	b := e.Bytes()
	require.Len(t, b, 16)
	assert.Equal(t, byte(0x18), b[0])
	assert.Equal(t, byte(0x01), b[15])
	assert.Equal(t, e, Elem128{}.SetBytes(b))

	short := Elem32(0).SetBytes([]byte{0x2A})
	assert.Equal(t, Elem32(0x2A), short)
}
