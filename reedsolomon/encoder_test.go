package reedsolomon

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zeratul-zk/ligerito/binfield"
)

func randomVec16(rng *rand.Rand, n int) []binfield.Elem16 {
	v := make([]binfield.Elem16, n)
	for i := range v {
		v[i] = binfield.Elem16(rng.Uint32())
	}
	return v
}

func TestEncoderGeometry(t *testing.T) {
	enc, err := NewEncoder[binfield.Elem16](256, 1024)
	require.NoError(t, err)
	assert.Equal(t, 256, enc.MessageLen())
	assert.Equal(t, 1024, enc.BlockLen())

	_, err = NewEncoder[binfield.Elem16](3, 12)
	assert.Error(t, err)
	_, err = NewEncoder[binfield.Elem16](16, 8)
	assert.Error(t, err)
}

func TestEncodeIsSystematic(t *testing.T) {
	enc, err := NewEncoder[binfield.Elem16](4, 16)
	require.NoError(t, err)

	message := []binfield.Elem16{1, 2, 3, 4}
	encoded, err := enc.Encode(message)
	require.NoError(t, err)

	require.Len(t, encoded, 16)
	assert.Equal(t, message, encoded[:4])

	allZero := true
	for _, x := range encoded[4:] {
		if !x.IsZero() {
			allZero = false
		}
	}
	assert.False(t, allZero, "parity symbols are all zero")
}

func TestFFTRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	norms := SubspaceEvals[binfield.Elem16](6)
	var z binfield.Elem16
	tw := computeTwiddles(6, z.FromBits(192), norms)

	v := randomVec16(rng, 64)
	got := append([]binfield.Elem16(nil), v...)
	ifft(got, tw)
	fft(got, tw)
	assert.Equal(t, v, got)
}

func TestEncodeIsLinear(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	enc, err := NewEncoder[binfield.Elem16](32, 128)
	require.NoError(t, err)

	a := randomVec16(rng, 32)
	b := randomVec16(rng, 32)
	sum := make([]binfield.Elem16, 32)
	for i := range sum {
		sum[i] = a[i].Add(b[i])
	}

	ea, err := enc.Encode(a)
	require.NoError(t, err)
	eb, err := enc.Encode(b)
	require.NoError(t, err)
	es, err := enc.Encode(sum)
	require.NoError(t, err)
	for i := range es {
		assert.Equal(t, es[i], ea[i].Add(eb[i]))
	}
}

// Every codeword position q must equal the basis combination of the
// message's coefficients at the point with representation q.
func TestCodewordMatchesBasisEvaluation(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	const logMsg, msgLen, blockLen = 4, 16, 64

	enc, err := NewEncoder[binfield.Elem16](msgLen, blockLen)
	require.NoError(t, err)

	message := randomVec16(rng, msgLen)
	encoded, err := enc.Encode(message)
	require.NoError(t, err)

	coeffs := InterpolateSubspace(message, enc.Norms())
	require.Len(t, coeffs, msgLen)

	var z binfield.Elem16
	for q := 0; q < blockLen; q++ {
		want := BasisCombination(coeffs, enc.Norms(), z.FromBits(uint64(q)))
		assert.Equal(t, want, encoded[q], "position %d", q)
	}
}

func TestScaledBasisMultiplicative(t *testing.T) {
	norms := SubspaceEvals[binfield.Elem32](4)
	var z binfield.Elem32
	x := z.FromBits(0xBEEF)

	basis := make([]binfield.Elem32, 16)
	ScaledBasis(basis, norms, x, z.One())

	assert.Equal(t, z.One(), basis[0])
	// X_j factors over the set bits of j.
	for j := 1; j < 16; j++ {
		want := z.One()
		for k := 0; k < 4; k++ {
			if j>>uint(k)&1 == 1 {
				want = want.Mul(basis[1<<uint(k)])
			}
		}
		assert.Equal(t, want, basis[j], "index %d", j)
	}
}
