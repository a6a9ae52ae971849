package ligerito

import (
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zeratul-zk/ligerito/binfield"
	"github.com/zeratul-zk/ligerito/transcript"
)

func testParams() Params {
	return Params{
		RecursiveSteps: 2,
		InitialDim:     8,
		InitialK:       4,
		LogDims:        []int{6, 4},
		Ks:             []int{2, 2},
		NumQueries:     30,
	}
}

func testParams3() Params {
	return Params{
		RecursiveSteps: 3,
		InitialDim:     10,
		InitialK:       4,
		LogDims:        []int{8, 6, 4},
		Ks:             []int{2, 2, 2},
		NumQueries:     30,
	}
}

func randomPoly16(rng *rand.Rand, n int) []binfield.Elem16 {
	poly := make([]binfield.Elem16, n)
	for i := range poly {
		poly[i] = binfield.Elem16(rng.Uint32())
	}
	return poly
}

func proveVerify16(t *testing.T, params Params, poly []binfield.Elem16, mk func() transcript.Transcript) *Proof[binfield.Elem16, binfield.Elem128] {
	t.Helper()
	pcfg, err := NewProverConfig[binfield.Elem16, binfield.Elem128](params, binfield.Embed16To128)
	require.NoError(t, err)
	vcfg, err := NewVerifierConfig[binfield.Elem16, binfield.Elem128](params, binfield.Embed16To128)
	require.NoError(t, err)

	proof, err := Prove(pcfg, poly, mk())
	require.NoError(t, err)
	require.NoError(t, Verify(vcfg, proof, mk()))
	// Verification must be repeatable on the same proof.
	require.NoError(t, Verify(vcfg, proof, mk()))
	return proof
}

func TestProveVerifyRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	params := testParams()
	poly := randomPoly16(rng, 1<<params.LogSize())

	for name, mk := range map[string]func() transcript.Transcript{
		"sponge":    func() transcript.Transcript { return transcript.NewSponge([]byte("roundtrip")) },
		"sha256rng": func() transcript.Transcript { return transcript.NewSha256Rng(7) },
	} {
		t.Run(name, func(t *testing.T) {
			proveVerify16(t, params, poly, mk)
		})
	}
}

func TestProveVerifyThreeLevels(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	params := testParams3()
	poly := randomPoly16(rng, 1<<params.LogSize())
	proveVerify16(t, params, poly, func() transcript.Transcript {
		return transcript.NewSponge([]byte("three"))
	})
}

func TestProveVerifyElem32Base(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	params := testParams()
	poly := make([]binfield.Elem32, 1<<params.LogSize())
	for i := range poly {
		poly[i] = binfield.Elem32(rng.Uint32())
	}

	pcfg, err := NewProverConfig[binfield.Elem32, binfield.Elem128](params, binfield.Embed32To128)
	require.NoError(t, err)
	vcfg, err := NewVerifierConfig[binfield.Elem32, binfield.Elem128](params, binfield.Embed32To128)
	require.NoError(t, err)

	proof, err := Prove(pcfg, poly, transcript.NewSponge([]byte("e32")))
	require.NoError(t, err)
	require.NoError(t, Verify(vcfg, proof, transcript.NewSponge([]byte("e32"))))
}

// An all-ones polynomial sums to zero over any even-length hypercube;
// the accepting transcript must carry that through.
func TestAllOnesPolynomial(t *testing.T) {
	params := testParams()
	poly := make([]binfield.Elem16, 1<<params.LogSize())
	for i := range poly {
		poly[i] = 1
	}
	var total binfield.Elem16
	for _, v := range poly {
		total = total.Add(v)
	}
	assert.True(t, total.IsZero())

	proveVerify16(t, params, poly, func() transcript.Transcript {
		return transcript.NewSponge([]byte("ones"))
	})
}

func TestProofIsDeterministic(t *testing.T) {
	rng := rand.New(rand.NewSource(4))
	params := testParams()
	poly := randomPoly16(rng, 1<<params.LogSize())
	pcfg, err := NewProverConfig[binfield.Elem16, binfield.Elem128](params, binfield.Embed16To128)
	require.NoError(t, err)

	p1, err := Prove(pcfg, poly, transcript.NewSponge([]byte("det")))
	require.NoError(t, err)
	p2, err := Prove(pcfg, poly, transcript.NewSponge([]byte("det")))
	require.NoError(t, err)

	b1, err := p1.MarshalBinary()
	require.NoError(t, err)
	b2, err := p2.MarshalBinary()
	require.NoError(t, err)
	assert.Equal(t, b1, b2)
}

func TestProofSerializationRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	params := testParams()
	poly := randomPoly16(rng, 1<<params.LogSize())
	proof := proveVerify16(t, params, poly, func() transcript.Transcript {
		return transcript.NewSponge([]byte("serde"))
	})

	data, err := proof.MarshalBinary()
	require.NoError(t, err)

	var decoded Proof[binfield.Elem16, binfield.Elem128]
	require.NoError(t, decoded.UnmarshalBinary(data))
	assert.Empty(t, cmp.Diff(proof, &decoded))

	vcfg, err := NewVerifierConfig[binfield.Elem16, binfield.Elem128](params, binfield.Embed16To128)
	require.NoError(t, err)
	assert.NoError(t, Verify(vcfg, &decoded, transcript.NewSponge([]byte("serde"))))

	assert.Error(t, decoded.UnmarshalBinary([]byte{0xFF, 0x00}))
}

func TestMismatchedTranscriptBackends(t *testing.T) {
	rng := rand.New(rand.NewSource(6))
	params := testParams()
	poly := randomPoly16(rng, 1<<params.LogSize())
	pcfg, err := NewProverConfig[binfield.Elem16, binfield.Elem128](params, binfield.Embed16To128)
	require.NoError(t, err)
	vcfg, err := NewVerifierConfig[binfield.Elem16, binfield.Elem128](params, binfield.Embed16To128)
	require.NoError(t, err)

	proof, err := Prove(pcfg, poly, transcript.NewSponge([]byte("x")))
	require.NoError(t, err)
	assert.Error(t, Verify(vcfg, proof, transcript.NewSha256Rng(0)))
}

func TestRejectMutations(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	params := testParams()
	poly := randomPoly16(rng, 1<<params.LogSize())
	pcfg, err := NewProverConfig[binfield.Elem16, binfield.Elem128](params, binfield.Embed16To128)
	require.NoError(t, err)
	vcfg, err := NewVerifierConfig[binfield.Elem16, binfield.Elem128](params, binfield.Embed16To128)
	require.NoError(t, err)

	freshProof := func() *Proof[binfield.Elem16, binfield.Elem128] {
		proof, err := Prove(pcfg, poly, transcript.NewSponge([]byte("mut")))
		require.NoError(t, err)
		return proof
	}
	verify := func(p *Proof[binfield.Elem16, binfield.Elem128]) error {
		return Verify(vcfg, p, transcript.NewSponge([]byte("mut")))
	}
	require.NoError(t, verify(freshProof()))

	t.Run("claimed total", func(t *testing.T) {
		p := freshProof()
		p.Triples[0].Total = p.Triples[0].Total.Add(p.Triples[0].Total.One())
		err := verify(p)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrClaimMismatch)
	})

	t.Run("round endpoint", func(t *testing.T) {
		p := freshProof()
		p.Triples[1].S0 = p.Triples[1].S0.Add(p.Triples[1].S0.One())
		err := verify(p)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrClaimMismatch)
	})

	t.Run("opened row", func(t *testing.T) {
		p := freshProof()
		p.InitialOpening.Rows[0][0] = p.InitialOpening.Rows[0][0].Add(1)
		err := verify(p)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrMerkleVerification)
	})

	t.Run("commitment root", func(t *testing.T) {
		p := freshProof()
		p.InitialCommitment.Root[0] ^= 1
		assert.Error(t, verify(p))
	})

	t.Run("final evaluation", func(t *testing.T) {
		p := freshProof()
		p.FinalEval[0] = p.FinalEval[0].Add(p.FinalEval[0].One())
		assert.Error(t, verify(p))
	})

	t.Run("truncated rounds", func(t *testing.T) {
		p := freshProof()
		p.Triples = p.Triples[:len(p.Triples)-1]
		err := verify(p)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrTranscriptExhausted)
	})

	t.Run("missing commitments", func(t *testing.T) {
		p := freshProof()
		p.RecursiveCommitments = p.RecursiveCommitments[:1]
		err := verify(p)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("wrong final vector length", func(t *testing.T) {
		p := freshProof()
		p.FinalEval = p.FinalEval[:len(p.FinalEval)-1]
		err := verify(p)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrDimensionMismatch)
	})

	t.Run("reject error reports stage", func(t *testing.T) {
		p := freshProof()
		p.Triples[0].Total = p.Triples[0].Total.Add(p.Triples[0].Total.One())
		err := verify(p)
		var rej *RejectError
		require.ErrorAs(t, err, &rej)
		assert.NotEmpty(t, rej.Stage)
	})
}

// Full-size scenario: an autosized 2^20 commitment over the
// GF(2^32) → GF(2^128) embedding, with all-zero and all-one inputs.
func TestAutosized2To20(t *testing.T) {
	if testing.Short() {
		t.Skip("full-size scenario")
	}
	params, err := Autosize(1 << 20)
	require.NoError(t, err)
	pcfg, err := NewProverConfig[binfield.Elem32, binfield.Elem128](params, binfield.Embed32To128)
	require.NoError(t, err)
	vcfg, err := NewVerifierConfig[binfield.Elem32, binfield.Elem128](params, binfield.Embed32To128)
	require.NoError(t, err)

	for name, fill := range map[string]binfield.Elem32{"zeros": 0, "ones": 1} {
		t.Run(name, func(t *testing.T) {
			poly := make([]binfield.Elem32, 1<<20)
			for i := range poly {
				poly[i] = fill
			}
			proof, err := Prove(pcfg, poly, transcript.NewSponge([]byte(name)))
			require.NoError(t, err)
			require.NoError(t, Verify(vcfg, proof, transcript.NewSponge([]byte(name))))
		})
	}
}

func TestProveInputValidation(t *testing.T) {
	params := testParams()
	pcfg, err := NewProverConfig[binfield.Elem16, binfield.Elem128](params, binfield.Embed16To128)
	require.NoError(t, err)

	_, err = Prove(pcfg, make([]binfield.Elem16, 100), transcript.NewSponge(nil))
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = Prove[binfield.Elem16, binfield.Elem128](nil, nil, nil)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestParamsValidate(t *testing.T) {
	good := testParams()
	require.NoError(t, good.Validate())

	cases := map[string]func(*Params){
		"single step":      func(p *Params) { p.RecursiveSteps = 1; p.Ks = []int{2}; p.LogDims = []int{6} },
		"broken chain":     func(p *Params) { p.LogDims = []int{6, 5} },
		"length mismatch":  func(p *Params) { p.Ks = []int{2} },
		"zero queries":     func(p *Params) { p.NumQueries = 0 },
		"too many queries": func(p *Params) { p.NumQueries = 100 },
		"degenerate":       func(p *Params) { p.InitialK = 0 },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			p := testParams()
			p.LogDims = append([]int(nil), p.LogDims...)
			p.Ks = append([]int(nil), p.Ks...)
			mutate(&p)
			assert.ErrorIs(t, p.Validate(), ErrInvalidInput)
		})
	}
}

func TestAutosize(t *testing.T) {
	for logSize := 20; logSize <= 30; logSize++ {
		p, err := Autosize(1 << logSize)
		require.NoError(t, err, "log size %d", logSize)
		assert.Equal(t, logSize, p.LogSize())
		assert.Equal(t, DefaultNumQueries, p.NumQueries)
		require.NoError(t, p.Validate())
	}

	// Sizes below the table clamp to its low end; above it the initial
	// column count grows instead.
	small, err := Autosize(1 << 12)
	require.NoError(t, err)
	ref, err := Autosize(1 << 20)
	require.NoError(t, err)
	assert.Equal(t, ref, small)

	wide, err := Autosize(1 << 31)
	require.NoError(t, err)
	assert.Equal(t, 31, wide.LogSize())
	top, err := Autosize(1 << 30)
	require.NoError(t, err)
	assert.Equal(t, top.InitialDim, wide.InitialDim)
	assert.Equal(t, top.InitialK+1, wide.InitialK)

	_, err = Autosize(1000)
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = Autosize(0)
	assert.ErrorIs(t, err, ErrInvalidInput)
}
